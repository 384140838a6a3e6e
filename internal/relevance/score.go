package relevance

import (
	"sort"
	"strings"
	"unicode"

	"github.com/jyotsnat2004/doclens/internal/config"
	"github.com/jyotsnat2004/doclens/internal/doc"
	"github.com/jyotsnat2004/doclens/internal/persona"
)

// ScoredSection is a section plus its relevance sub-scores. Rank is assigned
// by the ranker after the cross-document sort, 1-based.
type ScoredSection struct {
	Section  doc.Section
	DocOrder int // position of the document in the input set
	Ordinal  int // position of the section within its document

	PersonaScore   float64
	JobScore       float64
	QualityScore   float64
	PositionScore  float64
	CompositeScore float64
	Rank           int
}

// ScoredPassage is a paragraph-level excerpt scored independently of the
// section ranking.
type ScoredPassage struct {
	DocumentID string
	Page       int
	Text       string
	DocOrder   int
	SectionOrd int
	Index      int // paragraph position within the section

	PersonaScore   float64
	JobScore       float64
	QualityScore   float64
	PositionScore  float64
	CompositeScore float64
	Rank           int
}

type weightedTerm struct {
	term   string
	weight float64
	phrase bool
}

// Scorer computes relevance sub-scores against one resolved profile. It is
// stateless over its inputs and safe for concurrent use.
type Scorer struct {
	cfg          config.Scoring
	personaTerms []weightedTerm
	personaTotal float64
	jobTerms     []weightedTerm
	jobTotal     float64
}

// NewScorer prepares a scorer for the given profile. Term order is fixed up
// front so repeated runs accumulate floating point sums identically.
func NewScorer(prof *persona.Profile, cfg config.Scoring) *Scorer {
	s := &Scorer{cfg: cfg}
	s.personaTerms, s.personaTotal = sortTerms(prof.Keywords)
	s.jobTerms, s.jobTotal = sortTerms(prof.JobTerms)
	return s
}

func sortTerms(m map[string]float64) ([]weightedTerm, float64) {
	terms := make([]weightedTerm, 0, len(m))
	total := 0.0
	for t, w := range m {
		terms = append(terms, weightedTerm{term: t, weight: w, phrase: strings.Contains(t, " ")})
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].term < terms[j].term })
	for _, t := range terms {
		total += t.weight
	}
	return terms, total
}

// ScoreSections scores every section of one document. docOrder is the
// document's position in the input set; ordinals follow section order.
func (s *Scorer) ScoreSections(sections []doc.Section, docOrder int) []ScoredSection {
	scored := make([]ScoredSection, 0, len(sections))
	for i, sec := range sections {
		text := sec.Title() + " " + sec.BodyText
		sc := ScoredSection{
			Section:  sec,
			DocOrder: docOrder,
			Ordinal:  i,
		}
		sc.PersonaScore, sc.JobScore, sc.QualityScore, sc.PositionScore, sc.CompositeScore =
			s.scoreText(text, i, sec.PageStart)
		scored = append(scored, sc)
	}
	return scored
}

// ScorePassages scores the paragraph-level sub-units of one already-selected
// section, keeping at most perSection of them, best first. Passages with no
// persona or job affinity at all are not mined.
func (s *Scorer) ScorePassages(sec ScoredSection, perSection int) []ScoredPassage {
	var passages []ScoredPassage
	for i, b := range sec.Section.Blocks {
		p := ScoredPassage{
			DocumentID: sec.Section.DocumentID,
			Page:       b.Page,
			Text:       b.Text,
			DocOrder:   sec.DocOrder,
			SectionOrd: sec.Ordinal,
			Index:      i,
		}
		p.PersonaScore, p.JobScore, p.QualityScore, p.PositionScore, p.CompositeScore =
			s.scoreText(b.Text, sec.Ordinal, b.Page)
		if p.PersonaScore+p.JobScore == 0 {
			continue
		}
		passages = append(passages, p)
	}

	sort.SliceStable(passages, func(i, j int) bool {
		if passages[i].CompositeScore != passages[j].CompositeScore {
			return passages[i].CompositeScore > passages[j].CompositeScore
		}
		return passages[i].Index < passages[j].Index
	})
	if len(passages) > perSection {
		passages = passages[:perSection]
	}
	return passages
}

// scoreText computes the four sub-scores, each in [0,1], and their
// fixed-weight composite.
func (s *Scorer) scoreText(text string, ordinal, page int) (personaScore, jobScore, quality, position, composite float64) {
	words := strings.Fields(strings.ToLower(text))
	freq := make(map[string]int, len(words))
	for _, w := range words {
		freq[strings.TrimFunc(w, isTermPunct)]++
	}
	lower := strings.ToLower(text)

	personaScore = s.matchScore(lower, freq, len(words), s.personaTerms, s.personaTotal)
	jobScore = s.matchScore(lower, freq, len(words), s.jobTerms, s.jobTotal)
	quality = s.qualityScore(text, len(words))
	position = s.positionScore(ordinal, page)

	composite = s.cfg.PersonaWeight*personaScore +
		s.cfg.JobWeight*jobScore +
		s.cfg.QualityWeight*quality +
		s.cfg.PositionWeight*position
	return
}

// matchScore sums term weights by occurrence, normalized by text length so
// sheer verbosity is not rewarded, then scaled into [0,1].
func (s *Scorer) matchScore(lower string, freq map[string]int, words int, terms []weightedTerm, total float64) float64 {
	if words == 0 || total == 0 {
		return 0
	}
	raw := 0.0
	for _, t := range terms {
		n := 0
		if t.phrase {
			n = strings.Count(lower, t.term)
		} else {
			n = freq[t.term]
		}
		raw += t.weight * float64(n)
	}
	return clamp01(raw * s.cfg.TermScale / float64(words))
}

// qualityScore is a cheap informativeness proxy: monotonic in length up to a
// saturation point, with small bonuses for numerals and punctuation variety.
func (s *Scorer) qualityScore(text string, words int) float64 {
	if words == 0 {
		return 0
	}
	var length float64
	switch {
	case words < s.cfg.MinWords:
		length = 0.5 * float64(words) / float64(s.cfg.MinWords)
	case words >= s.cfg.IdealWords:
		length = 1
	default:
		length = 0.5 + 0.5*float64(words-s.cfg.MinWords)/float64(s.cfg.IdealWords-s.cfg.MinWords)
	}

	digits := 0.0
	for _, r := range text {
		if unicode.IsDigit(r) {
			digits = 1
			break
		}
	}

	variety := 0.0
	for _, p := range ".,;:!?()" {
		if strings.ContainsRune(text, p) {
			variety++
		}
	}
	variety /= 8

	return clamp01(0.7*length + 0.1*digits + 0.2*variety)
}

// positionScore decreases monotonically with section ordinal and page,
// modeling the convention that framing material appears early.
func (s *Scorer) positionScore(ordinal, page int) float64 {
	if page < 1 {
		page = 1
	}
	return 1 / (1 + s.cfg.OrdinalDecay*float64(ordinal) + s.cfg.PageDecay*float64(page-1))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func isTermPunct(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
