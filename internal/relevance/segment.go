// Package relevance segments documents into sections and ranks sections and
// passages against a persona profile.
package relevance

import (
	"strings"

	"github.com/jyotsnat2004/doclens/internal/doc"
	"github.com/jyotsnat2004/doclens/internal/outline"
)

// Segment groups a document's normalized blocks into sections bounded by the
// classified headings. Each heading starts a section absorbing all following
// blocks up to the next heading or document end; blocks preceding the first
// heading form an untitled leading section. The heading block itself is the
// section title, not body text.
func Segment(docID string, blocks []doc.Block, headings []outline.Candidate) []doc.Section {
	starts := make(map[int]doc.OutlineEntry, len(headings))
	for _, h := range headings {
		starts[h.Block.Order] = doc.OutlineEntry{
			Level: h.Level,
			Text:  h.Block.Text,
			Page:  h.Block.Page,
		}
	}

	var sections []doc.Section
	var current *doc.Section

	flush := func() {
		if current == nil {
			return
		}
		texts := make([]string, 0, len(current.Blocks))
		for _, b := range current.Blocks {
			texts = append(texts, b.Text)
		}
		current.BodyText = strings.Join(texts, " ")
		sections = append(sections, *current)
		current = nil
	}

	for _, b := range blocks {
		if entry, ok := starts[b.Order]; ok {
			flush()
			e := entry
			current = &doc.Section{
				DocumentID: docID,
				Heading:    &e,
				PageStart:  entry.Page,
			}
			continue
		}
		if current == nil {
			// Untitled leading section.
			current = &doc.Section{
				DocumentID: docID,
				PageStart:  b.Page,
			}
		}
		current.Blocks = append(current.Blocks, b)
	}
	flush()

	return sections
}
