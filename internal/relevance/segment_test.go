package relevance

import (
	"testing"

	"github.com/jyotsnat2004/doclens/internal/doc"
	"github.com/jyotsnat2004/doclens/internal/outline"
)

func TestSegmentSplitsAtHeadings(t *testing.T) {
	blocks := []doc.Block{
		{Text: "Preamble before any heading.", Page: 1, Order: 0},
		{Text: "1. Methods", Page: 1, Order: 1},
		{Text: "We describe the experimental setup.", Page: 1, Order: 2},
		{Text: "2. Results", Page: 2, Order: 3},
		{Text: "Accuracy improved by twelve percent.", Page: 2, Order: 4},
		{Text: "Latency dropped as well.", Page: 2, Order: 5},
	}
	headings := []outline.Candidate{
		{Block: blocks[1], Level: doc.LevelH1},
		{Block: blocks[3], Level: doc.LevelH1},
	}

	sections := Segment("paper.pdf", blocks, headings)
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}

	lead := sections[0]
	if lead.Heading != nil {
		t.Errorf("leading section must be untitled, got heading %+v", lead.Heading)
	}
	if lead.BodyText != "Preamble before any heading." {
		t.Errorf("unexpected leading body %q", lead.BodyText)
	}

	methods := sections[1]
	if methods.Title() != "1. Methods" {
		t.Errorf("expected section title %q, got %q", "1. Methods", methods.Title())
	}
	if methods.PageStart != 1 {
		t.Errorf("expected PageStart 1, got %d", methods.PageStart)
	}
	if len(methods.Blocks) != 1 || methods.Blocks[0].Order != 2 {
		t.Errorf("heading block must not appear in section body, got %+v", methods.Blocks)
	}

	results := sections[2]
	if results.BodyText != "Accuracy improved by twelve percent. Latency dropped as well." {
		t.Errorf("unexpected results body %q", results.BodyText)
	}
	if results.DocumentID != "paper.pdf" {
		t.Errorf("expected DocumentID carried through, got %q", results.DocumentID)
	}
}

func TestSegmentHeadingOnlyDocument(t *testing.T) {
	blocks := []doc.Block{
		{Text: "Appendix", Page: 9, Order: 0},
	}
	headings := []outline.Candidate{{Block: blocks[0], Level: doc.LevelH1}}

	sections := Segment("doc.pdf", blocks, headings)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].BodyText != "" || len(sections[0].Blocks) != 0 {
		t.Errorf("expected empty body for heading-only section, got %+v", sections[0])
	}
	if sections[0].PageStart != 9 {
		t.Errorf("expected PageStart 9, got %d", sections[0].PageStart)
	}
}

func TestSegmentNoHeadingsYieldsSingleSection(t *testing.T) {
	blocks := []doc.Block{
		{Text: "First paragraph.", Page: 1, Order: 0},
		{Text: "Second paragraph.", Page: 2, Order: 1},
	}

	sections := Segment("flat.txt", blocks, nil)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Heading != nil {
		t.Errorf("expected untitled section")
	}
	if sections[0].PageStart != 1 {
		t.Errorf("expected PageStart from first block, got %d", sections[0].PageStart)
	}
}
