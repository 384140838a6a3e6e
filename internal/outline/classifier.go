package outline

import (
	"math"

	"github.com/jyotsnat2004/doclens/internal/config"
	"github.com/jyotsnat2004/doclens/internal/doc"
)

// Candidate is a block that qualified as a heading, with its resolved level
// and the signal families that fired on it. Candidates are never mutated
// after creation.
type Candidate struct {
	Block   doc.Block
	Level   doc.Level
	Score   float64
	Reasons []Signal
}

// Classify assigns each normalized block a heading level or rejects it,
// combining the font, pattern and content signal families under a strict
// precedence: the font signal is authoritative when layout metadata is
// present and the block is strictly larger than the document's modal body
// size; otherwise the pattern signal decides; the content signal only ever
// raises a level, or qualifies a short line on its own. Documents without
// any layout metadata degrade to pattern+content classification.
func Classify(blocks []doc.Block, cfg config.Outline) []Candidate {
	bodySize := modalFontSize(blocks)

	var cands []Candidate
	for _, b := range blocks {
		level, reasons := classifyBlock(b, bodySize, cfg)
		if level == doc.LevelNone {
			continue
		}
		cands = append(cands, Candidate{
			Block:   b,
			Level:   level,
			Score:   b.FontSize + float64(len(reasons)),
			Reasons: reasons,
		})
	}
	return cands
}

func classifyBlock(b doc.Block, bodySize float64, cfg config.Outline) (doc.Level, []Signal) {
	if len(b.Text) < cfg.MinHeadingChars {
		return doc.LevelNone, nil
	}

	font, boldRaised := fontSignal(b, cfg)
	fontAuthoritative := font.fired && bodySize > 0 && b.FontSize > bodySize
	pattern := patternSignal(b.Text, cfg)
	content := contentSignal(b.Text)

	level := doc.LevelNone
	switch {
	case fontAuthoritative:
		level = font.level
	case pattern.fired:
		level = pattern.level
	case content.fired && wordCount(b.Text) <= cfg.MaxHeadingWords:
		// Content alone promotes only with the short-line structural cue.
		level = content.level
	}
	if level == doc.LevelNone {
		return doc.LevelNone, nil
	}

	// Content acts as an escalator over a font or pattern-proposed level.
	if content.fired && content.level.Above(level) {
		level = content.level
	}

	// Reasons record every fired family, not just the deciding one.
	var reasons []Signal
	if font.fired && fontAuthoritative {
		reasons = append(reasons, SignalFont)
		if boldRaised {
			reasons = append(reasons, SignalBold)
		}
	}
	if pattern.fired {
		reasons = append(reasons, SignalPattern)
	}
	if content.fired {
		reasons = append(reasons, SignalContent)
	}
	return level, reasons
}

// modalFontSize returns the most frequent font size among layout-carrying
// blocks, the document's body size baseline. Ties resolve to the smaller
// size so headings at the tied size stay distinguishable. Returns 0 when no
// block carries layout metadata.
func modalFontSize(blocks []doc.Block) float64 {
	counts := make(map[float64]int)
	for _, b := range blocks {
		if !b.HasLayout || b.FontSize <= 0 {
			continue
		}
		counts[math.Round(b.FontSize*2)/2]++
	}

	var mode float64
	best := 0
	for size, n := range counts {
		if n > best || (n == best && size < mode) {
			mode = size
			best = n
		}
	}
	return mode
}
