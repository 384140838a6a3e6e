package extractor

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/jyotsnat2004/doclens/internal/doc"
)

// HTMLExtractor handles HTML files. Heading tags h1-h6 map onto synthetic
// font sizes; paragraph-level elements become body blocks.
type HTMLExtractor struct{}

func (p *HTMLExtractor) Extract(r io.Reader, filename string) ([]doc.Block, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

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

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingTagLevel(n.Data); level > 0 {
				emit(textContent(n), level)
				return
			}
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "p", "li", "td", "blockquote", "pre":
				emit(textContent(n), 0)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(root); body != nil {
		walk(body)
	} else {
		walk(root)
	}

	return blocks, nil
}

func headingTagLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4", "h5", "h6":
		return 3
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
