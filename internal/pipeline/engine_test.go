package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/jyotsnat2004/doclens/internal/config"
	"github.com/jyotsnat2004/doclens/internal/doc"
)

func testEngine() *Engine {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEngine(config.Default(), log)
}

func reportBlocks() []doc.Block {
	mk := func(text string, page int, size float64, order int) doc.Block {
		return doc.Block{
			Text: text, Page: page, FontSize: size, Order: order,
			BBox:      doc.BBox{Left: 72, Top: 700 - float64(order)*100, Right: 540, Bottom: 688 - float64(order)*100},
			HasLayout: true,
		}
	}
	return []doc.Block{
		mk("Quarterly Performance Report", 1, 24, 0),
		mk("1. Revenue Analysis", 1, 16, 1),
		mk("Revenue grew nine percent this quarter, driven by strong market performance and improved metrics across all regions.", 1, 11, 2),
		mk("2. Strategy Outlook", 2, 16, 3),
		mk("The growth strategy targets new market segments with a detailed forecast and competitive benchmark assessments.", 2, 11, 4),
	}
}

func TestOutlineExtractsTitleAndHeadings(t *testing.T) {
	e := testEngine()
	out := e.Outline(Document{Name: "report.pdf", Blocks: reportBlocks()})

	if out.Title != "Quarterly Performance Report" {
		t.Fatalf("expected document title promoted, got %q", out.Title)
	}
	if len(out.Entries) != 2 {
		t.Fatalf("expected 2 headings, got %d: %+v", len(out.Entries), out.Entries)
	}
	if out.Entries[0].Text != "1. Revenue Analysis" || out.Entries[0].Level != doc.LevelH1 {
		t.Errorf("unexpected first entry %+v", out.Entries[0])
	}
	if out.Entries[1].Page != 2 {
		t.Errorf("expected page anchor 2, got %d", out.Entries[1].Page)
	}
}

func TestOutlineEmptyDocumentProducesErrorOutline(t *testing.T) {
	e := testEngine()
	out := e.Outline(Document{Name: "blank.pdf"})

	if out.Title != "Error Processing blank.pdf" {
		t.Fatalf("expected error title, got %q", out.Title)
	}
	if out.Entries == nil || len(out.Entries) != 0 {
		t.Fatalf("expected empty, non-nil outline, got %#v", out.Entries)
	}

	data, err := json.Marshal(out)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"title":"Error Processing blank.pdf","outline":[]}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}

	if snap := e.Stats().Snapshot(); snap.EmptyDocuments != 1 {
		t.Errorf("expected empty-document counter at 1, got %d", snap.EmptyDocuments)
	}
}

func TestOutlineCountsDegradedMetadata(t *testing.T) {
	e := testEngine()
	e.Outline(Document{Name: "plain.txt", Blocks: []doc.Block{
		{Text: "INTRODUCTION", Page: 1, Order: 0},
		{Text: "Plain text content without any layout metadata at all.", Page: 1, Order: 1},
	}})

	if snap := e.Stats().Snapshot(); snap.DegradedMetadata != 1 {
		t.Errorf("expected degraded-metadata counter at 1, got %d", snap.DegradedMetadata)
	}
}

func TestAnalyzeRanksAcrossDocuments(t *testing.T) {
	e := testEngine()
	docs := []Document{
		{Name: "report.pdf", Blocks: reportBlocks()},
		{Name: "unrelated.txt", Blocks: []doc.Block{
			{Text: "NOTICES", Page: 1, Order: 0},
			{Text: "The cafeteria is closed on Fridays until further notice this season.", Page: 1, Order: 1},
		}},
	}

	res := e.Analyze(context.Background(), docs,
		"Investment Analyst", "Analyze revenue trends and market performance")

	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if !reflect.DeepEqual(res.Metadata.InputDocuments, []string{"report.pdf", "unrelated.txt"}) {
		t.Errorf("input order must be preserved, got %v", res.Metadata.InputDocuments)
	}
	if len(res.ExtractedSections) == 0 {
		t.Fatal("expected ranked sections")
	}
	for i, s := range res.ExtractedSections {
		if s.ImportanceRank != i+1 {
			t.Errorf("expected contiguous 1-based ranks, got %d at %d", s.ImportanceRank, i)
		}
	}
	if res.ExtractedSections[0].Document != "report.pdf" {
		t.Errorf("expected the keyword-rich document on top, got %s", res.ExtractedSections[0].Document)
	}
	if len(res.SubSectionAnalysis) == 0 {
		t.Fatal("expected ranked passages from the selected sections")
	}
	for _, p := range res.SubSectionAnalysis {
		if p.RefinedText == "" {
			t.Errorf("passage text must not be empty")
		}
	}
}

func TestAnalyzeDeterministicAcrossRuns(t *testing.T) {
	e := testEngine()
	docs := []Document{
		{Name: "report.pdf", Blocks: reportBlocks()},
	}

	a := e.Analyze(context.Background(), docs, "Investment Analyst", "Analyze revenue trends")
	b := e.Analyze(context.Background(), docs, "Investment Analyst", "Analyze revenue trends")

	if !reflect.DeepEqual(a.ExtractedSections, b.ExtractedSections) {
		t.Errorf("section ranking differs across identical runs")
	}
	if !reflect.DeepEqual(a.SubSectionAnalysis, b.SubSectionAnalysis) {
		t.Errorf("passage ranking differs across identical runs")
	}
}

func TestAnalyzeAllDocumentsEmpty(t *testing.T) {
	e := testEngine()
	docs := []Document{
		{Name: "a.pdf"},
		{Name: "b.pdf"},
	}

	res := e.Analyze(context.Background(), docs, "Student", "Exam preparation")
	if res.Error != "no documents could be processed" {
		t.Fatalf("expected batch error, got %q", res.Error)
	}
	if res.ExtractedSections == nil || len(res.ExtractedSections) != 0 {
		t.Errorf("expected empty, non-nil section list")
	}
	if res.SubSectionAnalysis == nil || len(res.SubSectionAnalysis) != 0 {
		t.Errorf("expected empty, non-nil passage list")
	}
	if !reflect.DeepEqual(res.Metadata.InputDocuments, []string{"a.pdf", "b.pdf"}) {
		t.Errorf("metadata must list every input, got %v", res.Metadata.InputDocuments)
	}
}

func TestAnalyzeEmptyProfileScoresOnQualityAndPosition(t *testing.T) {
	e := testEngine()
	docs := []Document{{Name: "report.pdf", Blocks: reportBlocks()}}

	res := e.Analyze(context.Background(), docs, "", "")
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if len(res.ExtractedSections) == 0 {
		t.Fatal("expected sections ranked on quality and position alone")
	}
	if snap := e.Stats().Snapshot(); snap.DegradedProfiles != 1 {
		t.Errorf("expected degraded-profile counter at 1, got %d", snap.DegradedProfiles)
	}
}
