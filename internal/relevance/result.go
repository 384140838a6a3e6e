package relevance

import "unicode/utf8"

// Metadata describes one analysis run.
type Metadata struct {
	InputDocuments      []string `json:"input_documents"`
	Persona             string   `json:"persona"`
	JobToBeDone         string   `json:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp"`
}

// ExtractedSection is one ranked section in the analysis output.
type ExtractedSection struct {
	Document       string `json:"document"`
	PageNumber     int    `json:"page_number"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
}

// SubSection is one ranked passage mined from the selected top sections.
type SubSection struct {
	Document       string `json:"document"`
	PageNumber     int    `json:"page_number"`
	RefinedText    string `json:"refined_text"`
	ImportanceRank int    `json:"importance_rank"`
}

// AnalysisResult is the cross-document ranking output. On total failure the
// section and passage lists are empty and Error is set; the shape never
// changes.
type AnalysisResult struct {
	Metadata           Metadata           `json:"metadata"`
	ExtractedSections  []ExtractedSection `json:"extracted_sections"`
	SubSectionAnalysis []SubSection       `json:"sub_section_analysis"`
	Error              string             `json:"error,omitempty"`
}

// Refine truncates passage text to the configured excerpt length without
// splitting a word when avoidable. The cut never lands inside a multi-byte
// rune.
func Refine(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}
	end := maxChars
	for end > 0 && !utf8.RuneStart(text[end]) {
		end--
	}
	cut := text[:end]
	if idx := lastSpace(cut); idx > maxChars/2 {
		cut = cut[:idx]
	}
	return cut
}

func lastSpace(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ' ' {
			return i
		}
	}
	return -1
}
