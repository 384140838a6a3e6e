package extractor

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/jyotsnat2004/doclens/internal/doc"
)

// MarkdownExtractor handles Markdown files using goldmark. ATX headings are
// mapped onto synthetic font sizes so their explicit levels reach the
// classifier through the same layout signal PDFs use.
type MarkdownExtractor struct{}

func (p *MarkdownExtractor) Extract(r io.Reader, filename string) ([]doc.Block, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	root := md.Parser().Parse(reader)

	var blocks []doc.Block
	emit := func(t string, level int) {
		t = strings.TrimSpace(t)
		if t == "" {
			return
		}
		b := doc.Block{
			Text:      t,
			Page:      1,
			FontSize:  bodyFontSize,
			HasLayout: true,
			Order:     len(blocks),
		}
		if level > 0 {
			b.FontSize = headingFontSize(level)
		}
		blocks = append(blocks, b)
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			emit(string(node.Text(src)), node.Level)
		default:
			emit(mdText(n, src), 0)
		}
	}

	return blocks, nil
}

// mdText gets the text content of a goldmark AST node. Block nodes with
// inline children cover the same source ranges as their Lines, so only one
// of the two may be read.
func mdText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.ChildCount() == 0 {
		if n.Type() == ast.TypeBlock {
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				buf.Write(line.Value(src))
			}
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		} else {
			buf.WriteString(mdText(c, src))
			if c.Type() == ast.TypeBlock {
				buf.WriteByte(' ')
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
