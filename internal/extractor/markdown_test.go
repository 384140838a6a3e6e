package extractor

import (
	"strings"
	"testing"
)

func TestMarkdownExtractorHeadingLevels(t *testing.T) {
	input := `# Title Heading

Intro paragraph with some prose.

## Second Level

### Third Level

#### Deep Level

Closing paragraph.
`
	blocks, err := (&MarkdownExtractor{}).Extract(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatal(err)
	}

	byText := make(map[string]float64)
	for _, b := range blocks {
		byText[b.Text] = b.FontSize
		if !b.HasLayout {
			t.Errorf("markdown blocks must carry synthetic layout, %q does not", b.Text)
		}
		if b.Bold {
			t.Errorf("synthetic heading blocks must not set bold, %q does", b.Text)
		}
	}

	want := map[string]float64{
		"Title Heading":                    18,
		"Intro paragraph with some prose.": 11,
		"Second Level":                     15,
		"Third Level":                      13,
		"Deep Level":                       13,
		"Closing paragraph.":               11,
	}
	for text, size := range want {
		got, ok := byText[text]
		if !ok {
			t.Errorf("missing block %q, have %v", text, byText)
			continue
		}
		if got != size {
			t.Errorf("%q: expected synthetic size %v, got %v", text, size, got)
		}
	}
}

func TestMarkdownExtractorParagraphTextEmittedOnce(t *testing.T) {
	input := `# Report

Closing paragraph.

Results are *mostly* stable, see [the site](https://example.com) for more.

First line
continues here.
`
	blocks, err := (&MarkdownExtractor{}).Extract(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"Report",
		"Closing paragraph.",
		"Results are mostly stable, see the site for more.",
		"First line continues here.",
	}
	if len(blocks) != len(want) {
		t.Fatalf("expected %d blocks, got %d: %+v", len(want), len(blocks), blocks)
	}
	for i, text := range want {
		if blocks[i].Text != text {
			t.Errorf("block %d: expected %q, got %q", i, text, blocks[i].Text)
		}
	}
}

func TestMarkdownExtractorOrderIsSequential(t *testing.T) {
	input := "# A\n\npara one\n\n## B\n\npara two\n"
	blocks, err := (&MarkdownExtractor{}).Extract(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(blocks))
	}
	for i, b := range blocks {
		if b.Order != i {
			t.Errorf("expected order %d, got %d for %q", i, b.Order, b.Text)
		}
	}
}
