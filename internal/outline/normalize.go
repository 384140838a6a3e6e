package outline

import (
	"math"
	"strings"

	"github.com/jyotsnat2004/doclens/internal/config"
	"github.com/jyotsnat2004/doclens/internal/doc"
)

// Normalize cleans a raw block sequence: whitespace is collapsed, empty
// blocks are dropped, and consecutive line-wrapped fragments of one visual
// paragraph (same page, same font size, vertically adjacent) are merged into
// a single block. Pure function of its inputs; the originals are not
// modified.
func Normalize(blocks []doc.Block, cfg config.Outline) []doc.Block {
	out := make([]doc.Block, 0, len(blocks))

	for _, b := range blocks {
		b.Text = strings.Join(strings.Fields(b.Text), " ")
		if b.Text == "" {
			continue
		}
		if len(out) > 0 && mergeable(out[len(out)-1], b, cfg) {
			prev := &out[len(out)-1]
			prev.Text += " " + b.Text
			prev.Bold = prev.Bold && b.Bold
			prev.BBox = union(prev.BBox, b.BBox)
			continue
		}
		out = append(out, b)
	}
	return out
}

// mergeable reports whether b is a wrapped continuation line of a. Only
// blocks with real geometry participate; structured formats emit whole
// paragraphs already.
func mergeable(a, b doc.Block, cfg config.Outline) bool {
	if !a.HasLayout || !b.HasLayout {
		return false
	}
	if !hasGeometry(a.BBox) || !hasGeometry(b.BBox) {
		return false
	}
	if a.Page != b.Page {
		return false
	}
	if math.Abs(a.FontSize-b.FontSize) > 0.1 {
		return false
	}
	gap := math.Abs(a.BBox.Bottom - b.BBox.Top)
	return gap <= cfg.MergeGapPt
}

func hasGeometry(b doc.BBox) bool {
	return b != doc.BBox{}
}

func union(a, b doc.BBox) doc.BBox {
	return doc.BBox{
		Left:   math.Min(a.Left, b.Left),
		Right:  math.Max(a.Right, b.Right),
		Top:    math.Max(a.Top, b.Top),
		Bottom: math.Min(a.Bottom, b.Bottom),
	}
}
