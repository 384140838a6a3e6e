package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jyotsnat2004/doclens/internal/doc"
	"github.com/jyotsnat2004/doclens/internal/extractor"
	"github.com/jyotsnat2004/doclens/internal/pipeline"
)

var (
	outlineInputDir  string
	outlineOutputDir string
)

var outlineCmd = &cobra.Command{
	Use:   "outline [files...]",
	Short: "Extract heading outlines to JSON",
	Long: `Extract a leveled heading outline from each input document and write
one <name>.json per input. With --input, every supported file in the
directory is processed; positional arguments name individual files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		inputs := args
		if outlineInputDir != "" {
			entries, err := os.ReadDir(outlineInputDir)
			if err != nil {
				return fmt.Errorf("read input dir: %w", err)
			}
			for _, e := range entries {
				if e.IsDir() || !extractor.IsSupportedExtension(e.Name()) {
					continue
				}
				inputs = append(inputs, filepath.Join(outlineInputDir, e.Name()))
			}
		}
		if len(inputs) == 0 {
			return fmt.Errorf("no input files (pass file paths or --input DIR)")
		}
		if err := os.MkdirAll(outlineOutputDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}

		engine := pipeline.NewEngine(cfg, log)

		var failed int
		for _, path := range inputs {
			name := filepath.Base(path)
			outline, err := outlineFile(engine, path)
			if err != nil {
				// A document that cannot be read still produces a
				// well-formed error outline instead of aborting the batch.
				log.Error("outline failed", "file", name, "error", err)
				outline = doc.Outline{
					Title:   "Error Processing " + name,
					Entries: []doc.OutlineEntry{},
				}
				failed++
			}

			stem := strings.TrimSuffix(name, filepath.Ext(name))
			outPath := filepath.Join(outlineOutputDir, stem+".json")
			if err := writeJSON(outPath, outline); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}

			status := okStyle.Render("ok")
			if err != nil {
				status = errStyle.Render("error")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				status, headingStyle.Render(name), dimStyle.Render(fmt.Sprintf("(%d headings)", len(outline.Entries))))
		}

		summary := fmt.Sprintf("%d processed, %d failed", len(inputs)-failed, failed)
		fmt.Fprintln(cmd.OutOrStdout(), summaryBoxStyle.Render(summary))
		return nil
	},
}

func init() {
	outlineCmd.Flags().StringVar(&outlineInputDir, "input", "", "directory of documents to process")
	outlineCmd.Flags().StringVar(&outlineOutputDir, "output", ".", "directory for JSON outlines")
	rootCmd.AddCommand(outlineCmd)
}

func outlineFile(engine *pipeline.Engine, path string) (doc.Outline, error) {
	blocks, err := readBlocks(path)
	if err != nil {
		return doc.Outline{}, err
	}
	return engine.Outline(pipeline.Document{Name: filepath.Base(path), Blocks: blocks}), nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
