package extractor

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jyotsnat2004/doclens/internal/doc"
)

// Extractor converts raw document bytes into an ordered block sequence.
// Blocks carry layout metadata when the source format provides it; formats
// with explicit structural levels (markdown, html, docx) map headings onto
// synthetic font sizes so the downstream classifier sees one representation.
type Extractor interface {
	Extract(r io.Reader, filename string) ([]doc.Block, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".pdf":
		return &PDFExtractor{FallbackPdftotext: true}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Synthetic layout applied by structured-format extractors. The sizes sit
// inside the default classifier tiers so explicit heading levels survive the
// round trip through font classification.
const bodyFontSize = 11.0

func headingFontSize(level int) float64 {
	switch level {
	case 1:
		return 18
	case 2:
		return 15
	default:
		return 13
	}
}
