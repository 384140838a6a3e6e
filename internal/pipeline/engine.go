package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/jyotsnat2004/doclens/internal/config"
	"github.com/jyotsnat2004/doclens/internal/doc"
	"github.com/jyotsnat2004/doclens/internal/outline"
	"github.com/jyotsnat2004/doclens/internal/persona"
	"github.com/jyotsnat2004/doclens/internal/relevance"
)

// Document is one input to an analysis run: a display name plus the ordered
// block sequence produced by an extractor.
type Document struct {
	Name   string
	Blocks []doc.Block
}

// DocumentOutline pairs a document name with its extracted outline.
type DocumentOutline struct {
	Document string      `json:"document"`
	Outline  doc.Outline `json:"result"`
}

// Engine runs the core analysis chain. All methods are safe for concurrent
// use; the engine holds only immutable configuration and counters.
type Engine struct {
	cfg   config.Config
	log   *slog.Logger
	stats *Stats
}

// NewEngine creates an engine with the given configuration.
func NewEngine(cfg config.Config, log *slog.Logger) *Engine {
	return &Engine{
		cfg:   cfg,
		log:   log,
		stats: NewStats(time.Hour),
	}
}

// Stats exposes the engine's processing counters and latency window.
func (e *Engine) Stats() *Stats {
	return e.stats
}

// Outline runs the per-document chain (normalize, classify, build) and
// returns the document outline. A document with no blocks, or one that
// faults internally, degrades to an error-titled empty outline; nothing
// escapes the boundary.
func (e *Engine) Outline(d Document) (result doc.Outline) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			e.stats.CountPanic()
			e.log.Error("outline extraction fault", "document", d.Name, "panic", r)
			result = errorOutline(d.Name)
		}
		e.stats.Record(time.Since(start).Milliseconds())
	}()

	if len(d.Blocks) == 0 {
		e.stats.CountEmptyDoc()
		e.log.Warn("no blocks for document", "document", d.Name)
		return errorOutline(d.Name)
	}
	if !hasLayout(d.Blocks) {
		// Degraded pattern/content-only classification; supported, counted.
		e.stats.CountDegradedMetadata()
		e.log.Info("no layout metadata, degraded classification", "document", d.Name)
	}

	normalized := outline.Normalize(d.Blocks, e.cfg.Outline)
	cands := outline.Classify(normalized, e.cfg.Outline)
	built, _ := outline.Build(cands, normalized, d.Name)
	return built
}

// Analyze scores and ranks sections and passages across the whole document
// set for one persona/job pair. Documents are processed concurrently with
// bounded parallelism; the cross-document sort waits for every document.
// A document that faults is dropped from the ranking, never the batch.
func (e *Engine) Analyze(ctx context.Context, docs []Document, personaText, jobText string) *relevance.AnalysisResult {
	result := &relevance.AnalysisResult{
		Metadata: relevance.Metadata{
			InputDocuments:      docNames(docs),
			Persona:             personaText,
			JobToBeDone:         jobText,
			ProcessingTimestamp: time.Now().UTC().Format(time.RFC3339),
		},
		ExtractedSections:  []relevance.ExtractedSection{},
		SubSectionAnalysis: []relevance.SubSection{},
	}

	prof := persona.Resolve(personaText, jobText)
	if prof.Empty() {
		e.stats.CountDegradedProfile()
		e.log.Warn("unresolvable persona/job, scoring on quality and position only")
	}
	e.log.Info("profile resolved", "category", prof.Category, "keywords", len(prof.Keywords))
	scorer := relevance.NewScorer(prof, e.cfg.Scoring)

	results := make(chan docResult, len(docs))
	sem := make(chan struct{}, e.cfg.MaxConcurrentDocs)

	for i, d := range docs {
		select {
		case <-ctx.Done():
			results <- docResult{idx: i}
			continue
		case sem <- struct{}{}:
		}
		go func(i int, d Document) {
			defer func() { <-sem }()
			results <- e.scoreDocument(i, d, scorer)
		}(i, d)
	}

	// Join point: the global sort needs every document's sections.
	var all []relevance.ScoredSection
	valid := 0
	for range docs {
		r := <-results
		if !r.ok {
			continue
		}
		valid++
		all = append(all, r.sections...)
	}

	if valid == 0 {
		result.Error = "no documents could be processed"
		return result
	}

	top := relevance.RankSections(all, e.cfg.Select.TopSections)
	for _, s := range top {
		result.ExtractedSections = append(result.ExtractedSections, relevance.ExtractedSection{
			Document:       s.Section.DocumentID,
			PageNumber:     s.Section.PageStart,
			SectionTitle:   s.Section.Title(),
			ImportanceRank: s.Rank,
		})
	}

	// Passages compete only within the selected sections, not globally.
	var passages []relevance.ScoredPassage
	for _, s := range top {
		passages = append(passages, scorer.ScorePassages(s, e.cfg.Select.PassagesPerSection)...)
	}
	for _, p := range relevance.RankPassages(passages, e.cfg.Select.TopPassages) {
		result.SubSectionAnalysis = append(result.SubSectionAnalysis, relevance.SubSection{
			Document:       p.DocumentID,
			PageNumber:     p.Page,
			RefinedText:    relevance.Refine(p.Text, e.cfg.Select.MaxPassageChars),
			ImportanceRank: p.Rank,
		})
	}

	return result
}

type docResult struct {
	idx      int
	sections []relevance.ScoredSection
	ok       bool
}

// scoreDocument runs one document's chain up to scored sections, recovering
// any internal fault so the batch continues without it.
func (e *Engine) scoreDocument(idx int, d Document, scorer *relevance.Scorer) (r docResult) {
	r.idx = idx
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			e.stats.CountPanic()
			e.log.Error("document scoring fault", "document", d.Name, "panic", rec)
			r.sections = nil
			r.ok = false
		}
		e.stats.Record(time.Since(start).Milliseconds())
	}()

	if len(d.Blocks) == 0 {
		e.stats.CountEmptyDoc()
		e.log.Warn("no blocks for document", "document", d.Name)
		return r
	}
	if !hasLayout(d.Blocks) {
		e.stats.CountDegradedMetadata()
	}

	normalized := outline.Normalize(d.Blocks, e.cfg.Outline)
	cands := outline.Classify(normalized, e.cfg.Outline)
	_, headings := outline.Build(cands, normalized, d.Name)
	sections := relevance.Segment(d.Name, normalized, headings)

	r.sections = scorer.ScoreSections(sections, idx)
	r.ok = true
	return r
}

func errorOutline(name string) doc.Outline {
	return doc.Outline{
		Title:   "Error Processing " + name,
		Entries: []doc.OutlineEntry{},
	}
}

func hasLayout(blocks []doc.Block) bool {
	for _, b := range blocks {
		if b.HasLayout {
			return true
		}
	}
	return false
}

func docNames(docs []Document) []string {
	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Name)
	}
	return names
}
