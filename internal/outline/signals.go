package outline

import (
	"regexp"
	"strings"

	"github.com/jyotsnat2004/doclens/internal/config"
	"github.com/jyotsnat2004/doclens/internal/doc"
)

// Signal tags which classification signal family fired on a block.
type Signal string

const (
	SignalFont    Signal = "font"
	SignalBold    Signal = "bold"
	SignalPattern Signal = "pattern"
	SignalContent Signal = "content"
)

// proposal is the tagged result of one signal family.
type proposal struct {
	level doc.Level
	fired bool
}

var (
	reNumbered3 = regexp.MustCompile(`^\d+\.\d+\.\d+\.?\s+\S`)
	reNumbered2 = regexp.MustCompile(`^\d+\.\d+\.?\s+\S`)
	reNumbered1 = regexp.MustCompile(`^\d+\.\s+\S`)
	reAllCaps   = regexp.MustCompile(`^[A-Z][A-Z0-9\s\-&:,\.]+$`)
	reTitleCase = regexp.MustCompile(`^[A-Z][a-z]+([\s\-][A-Z][a-z]+)*$`)
)

// Keyword vocabularies for the content signal, tiered by the level they
// conventionally indicate.
var (
	h1Keywords = []string{
		"introduction", "conclusion", "abstract", "summary", "chapter",
		"executive summary", "table of contents", "references", "appendix",
	}
	h2Keywords = []string{
		"method", "methodology", "results", "discussion", "analysis",
		"background", "acknowledgments",
	}
	h3Keywords = []string{
		"overview", "review", "related work", "literature review",
	}
)

// fontSignal maps a block's font size onto a level via the ascending tiers,
// then escalates one step for bold weight, capped at H1. The bold return
// reports whether that escalation happened.
func fontSignal(b doc.Block, cfg config.Outline) (p proposal, bold bool) {
	if !b.HasLayout {
		return proposal{}, false
	}
	switch {
	case b.FontSize >= cfg.H1FontSize:
		p = proposal{level: doc.LevelH1, fired: true}
	case b.FontSize >= cfg.H2FontSize:
		p = proposal{level: doc.LevelH2, fired: true}
	case b.FontSize >= cfg.H3FontSize:
		p = proposal{level: doc.LevelH3, fired: true}
	default:
		return proposal{}, false
	}
	if b.Bold {
		if raised := p.level.Raise(); raised != p.level {
			p.level = raised
			bold = true
		}
	}
	return p, bold
}

// patternSignal checks text shape: numeric prefixes, fully upper-case short
// lines, and title-case short lines. Shape checks beyond numeric prefixes
// require the short-line structural cue.
func patternSignal(text string, cfg config.Outline) proposal {
	words := wordCount(text)
	if words == 0 || words > cfg.MaxHeadingWords {
		return proposal{}
	}
	switch {
	case reNumbered3.MatchString(text):
		return proposal{level: doc.LevelH3, fired: true}
	case reNumbered2.MatchString(text):
		return proposal{level: doc.LevelH2, fired: true}
	case reNumbered1.MatchString(text):
		return proposal{level: doc.LevelH1, fired: true}
	case reAllCaps.MatchString(text) && hasLetter(text):
		return proposal{level: doc.LevelH1, fired: true}
	case reTitleCase.MatchString(text):
		return proposal{level: doc.LevelH2, fired: true}
	}
	return proposal{}
}

// contentSignal checks the block text against the tiered section-name
// vocabulary with case-insensitive word matching.
func contentSignal(text string) proposal {
	lower := strings.ToLower(text)
	switch {
	case containsAnyKeyword(lower, h1Keywords):
		return proposal{level: doc.LevelH1, fired: true}
	case containsAnyKeyword(lower, h2Keywords):
		return proposal{level: doc.LevelH2, fired: true}
	case containsAnyKeyword(lower, h3Keywords):
		return proposal{level: doc.LevelH3, fired: true}
	}
	return proposal{}
}

// containsAnyKeyword matches whole words (or whole phrases for multi-word
// keywords) so that "methodical" does not fire on "method".
func containsAnyKeyword(lower string, keywords []string) bool {
	for _, kw := range keywords {
		idx := strings.Index(lower, kw)
		for idx >= 0 {
			before := idx == 0 || !isWordChar(lower[idx-1])
			afterIdx := idx + len(kw)
			after := afterIdx >= len(lower) || !isWordChar(lower[afterIdx])
			if before && after {
				return true
			}
			next := strings.Index(lower[idx+1:], kw)
			if next < 0 {
				break
			}
			idx += 1 + next
		}
	}
	return false
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}

func hasLetter(s string) bool {
	for _, r := range s {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' {
			return true
		}
	}
	return false
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
