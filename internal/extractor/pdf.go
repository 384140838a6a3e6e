package extractor

import (
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/jyotsnat2004/doclens/internal/doc"
)

// PDFExtractor handles PDF files. It reads positioned text runs with font
// metadata from the content stream and groups them into line blocks; the
// normalizer later collapses wrapped lines into paragraphs. When the content
// stream yields nothing it falls back to plain text extraction (and
// optionally pdftotext), producing layout-free blocks.
type PDFExtractor struct {
	FallbackPdftotext bool
}

func (p *PDFExtractor) Extract(r io.Reader, filename string) ([]doc.Block, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "doclens-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	blocks, err := extractPositioned(tmpPath)
	if err == nil && len(blocks) > 0 {
		return blocks, nil
	}

	text, textErr := extractPlainText(tmpPath)
	if textErr != nil && p.FallbackPdftotext {
		text, textErr = extractPdftotext(tmpPath)
	}
	if textErr != nil {
		if err != nil {
			return nil, fmt.Errorf("extract pdf: %w", err)
		}
		return nil, fmt.Errorf("extract pdf text: %w", textErr)
	}
	return plainTextBlocks(text), nil
}

// extractPositioned reads per-run font and position data per page and
// assembles line-level blocks in top-to-bottom reading order.
func extractPositioned(path string) (blocks []doc.Block, err error) {
	defer func() {
		// The pdf library panics on some malformed content streams.
		if r := recover(); r != nil {
			blocks = nil
			err = fmt.Errorf("pdf content stream: %v", r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := reader.NumPage()
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		texts := page.Content().Text
		if len(texts) == 0 {
			continue
		}
		for _, line := range groupLines(texts) {
			line.Page = pageNum
			line.Order = len(blocks)
			blocks = append(blocks, line)
		}
	}
	return blocks, nil
}

// groupLines clusters positioned text runs into visual lines. Runs are
// considered part of the same line when their baselines differ by less than
// half the font size.
func groupLines(texts []pdflib.Text) []doc.Block {
	sorted := make([]pdflib.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y // top of page first
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []doc.Block
	var cur []pdflib.Text
	flush := func() {
		if len(cur) == 0 {
			return
		}
		if b, ok := lineBlock(cur); ok {
			lines = append(lines, b)
		}
		cur = nil
	}

	for _, t := range sorted {
		if t.S == "" {
			continue
		}
		if len(cur) > 0 {
			tol := cur[0].FontSize * 0.5
			if tol <= 0 {
				tol = 2
			}
			if math.Abs(t.Y-cur[0].Y) > tol {
				flush()
			}
		}
		cur = append(cur, t)
	}
	flush()
	return lines
}

func lineBlock(runs []pdflib.Text) (doc.Block, bool) {
	var sb strings.Builder
	var maxSize float64
	bold := true
	bbox := doc.BBox{Left: math.Inf(1), Bottom: math.Inf(1), Right: math.Inf(-1), Top: math.Inf(-1)}

	for _, t := range runs {
		sb.WriteString(t.S)
		if t.FontSize > maxSize {
			maxSize = t.FontSize
		}
		if !isBoldFont(t.Font) {
			bold = false
		}
		if t.X < bbox.Left {
			bbox.Left = t.X
		}
		if t.X+t.W > bbox.Right {
			bbox.Right = t.X + t.W
		}
		if t.Y < bbox.Bottom {
			bbox.Bottom = t.Y
		}
		if t.Y+t.FontSize > bbox.Top {
			bbox.Top = t.Y + t.FontSize
		}
	}

	text := strings.Join(strings.Fields(sb.String()), " ")
	if text == "" {
		return doc.Block{}, false
	}
	return doc.Block{
		Text:      text,
		FontSize:  maxSize,
		Bold:      bold,
		BBox:      bbox,
		HasLayout: true,
	}, true
}

func isBoldFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bold") || strings.Contains(lower, "black") || strings.Contains(lower, "heavy")
}

func extractPlainText(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i > 1 {
			buf.WriteString("\f") // form feed as page separator
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}

// plainTextBlocks converts form-feed separated page text into layout-free
// blocks, one per non-empty line.
func plainTextBlocks(text string) []doc.Block {
	var blocks []doc.Block
	for i, page := range strings.Split(text, "\f") {
		for _, line := range strings.Split(page, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			blocks = append(blocks, doc.Block{
				Text:  line,
				Page:  i + 1,
				Order: len(blocks),
			})
		}
	}
	return blocks
}
