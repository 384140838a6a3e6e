package doc

// Level tags an outline entry with its hierarchical importance.
type Level string

const (
	LevelTitle Level = "Title"
	LevelH1    Level = "H1"
	LevelH2    Level = "H2"
	LevelH3    Level = "H3"
	LevelNone  Level = ""
)

// Depth returns the numeric depth of a heading level: H1=1, H2=2, H3=3.
// Title and None return 0 and 4 respectively so that comparisons treat
// Title as above H1 and None as below H3.
func (l Level) Depth() int {
	switch l {
	case LevelTitle:
		return 0
	case LevelH1:
		return 1
	case LevelH2:
		return 2
	case LevelH3:
		return 3
	}
	return 4
}

// Raise moves a level one step toward H1. Raising H1 (or Title) is a no-op.
func (l Level) Raise() Level {
	switch l {
	case LevelH2:
		return LevelH1
	case LevelH3:
		return LevelH2
	}
	return l
}

// Above reports whether l is a higher (more important) level than other.
func (l Level) Above(other Level) bool {
	return l.Depth() < other.Depth()
}

// BBox is an axis-aligned bounding box in page coordinates. The coordinate
// origin follows the source parser; only relative vertical distance between
// consecutive blocks is interpreted.
type BBox struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	h := b.Top - b.Bottom
	if h < 0 {
		return -h
	}
	return h
}

// Block is one parsed unit of document text with layout metadata.
// Blocks are produced once by an extractor and consumed read-only.
type Block struct {
	Text     string
	Page     int // 1-based
	FontSize float64
	Bold     bool
	BBox     BBox
	Order    int // position in natural reading order

	// HasLayout reports whether font and position metadata were available
	// in the source. When false the heading classifier runs in degraded
	// pattern/content-only mode.
	HasLayout bool
}

// OutlineEntry is one tagged heading in a document outline.
type OutlineEntry struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Outline is the per-document result: a title plus a flat, source-ordered
// heading list. Levels are tagged, never nested.
type Outline struct {
	Title   string         `json:"title"`
	Entries []OutlineEntry `json:"outline"`
}

// Section is a run of blocks governed by one heading. Blocks preceding the
// first heading form an untitled leading section (Heading == nil).
type Section struct {
	DocumentID string
	Heading    *OutlineEntry
	PageStart  int
	Blocks     []Block
	BodyText   string
}

// Title returns the section heading text, or empty for the untitled
// leading section.
func (s Section) Title() string {
	if s.Heading == nil {
		return ""
	}
	return s.Heading.Text
}
