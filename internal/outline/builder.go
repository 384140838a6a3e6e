package outline

import (
	"strings"

	"github.com/jyotsnat2004/doclens/internal/doc"
)

// Build orders classified candidates into a document outline. The title is
// the page-1 candidate carrying the document-wide maximum font size; failing
// that, the first H1 heading is promoted. A block used as title is never
// duplicated into the heading list. The returned candidate slice is aligned
// with the outline entries and carries the source block orders the section
// segmenter needs.
//
// Given identical inputs the output is byte-identical: candidates arrive in
// source order and every tie-break is positional.
func Build(cands []Candidate, blocks []doc.Block, fallbackTitle string) (doc.Outline, []Candidate) {
	out := doc.Outline{
		Title:   fallbackTitle,
		Entries: []doc.OutlineEntry{},
	}
	if len(cands) == 0 {
		return out, nil
	}

	titleIdx := pickTitle(cands, blocks)
	if titleIdx >= 0 {
		out.Title = cands[titleIdx].Block.Text
	}

	seen := make(map[string]bool)
	var emitted []Candidate
	for i, c := range cands {
		if i == titleIdx {
			continue
		}
		// Repeated heading text (running headers, footers) keeps its first
		// occurrence only.
		key := strings.ToLower(c.Block.Text)
		if seen[key] {
			continue
		}
		seen[key] = true

		out.Entries = append(out.Entries, doc.OutlineEntry{
			Level: c.Level,
			Text:  c.Block.Text,
			Page:  c.Block.Page,
		})
		emitted = append(emitted, c)
	}
	return out, emitted
}

// pickTitle returns the index of the title candidate, or -1. A title block
// must be distinguished: it alone carries the document-wide maximum font
// size, and it sits on the first page. Without a distinguished block the
// first H1 heading is promoted instead.
func pickTitle(cands []Candidate, blocks []doc.Block) int {
	maxFont := 0.0
	atMax := 0
	for _, b := range blocks {
		if !b.HasLayout || b.FontSize <= 0 {
			continue
		}
		if b.FontSize > maxFont {
			maxFont = b.FontSize
			atMax = 1
		} else if b.FontSize == maxFont {
			atMax++
		}
	}

	if maxFont > 0 && atMax == 1 {
		for i, c := range cands {
			if c.Block.Page == 1 && c.Block.HasLayout && c.Block.FontSize == maxFont {
				return i
			}
		}
	}

	for i, c := range cands {
		if c.Level == doc.LevelH1 {
			return i
		}
	}
	return -1
}
