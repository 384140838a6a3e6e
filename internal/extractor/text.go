package extractor

import (
	"bufio"
	"io"
	"strings"

	"github.com/jyotsnat2004/doclens/internal/doc"
)

// TextExtractor handles plain text files. Text files carry no layout
// metadata, so every block is emitted with HasLayout=false and the heading
// classifier runs in its degraded pattern/content mode.
type TextExtractor struct{}

func (p *TextExtractor) Extract(r io.Reader, filename string) ([]doc.Block, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var blocks []doc.Block
	var current strings.Builder

	flush := func() {
		t := strings.TrimSpace(current.String())
		if t != "" {
			blocks = append(blocks, doc.Block{
				Text:  t,
				Page:  1,
				Order: len(blocks),
			})
		}
		current.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
		} else {
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(strings.TrimSpace(line))
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return blocks, nil
}
