package pipeline

import (
	"testing"
	"time"

	"github.com/jyotsnat2004/doclens/internal/relevance"
)

func TestNewJobInitialState(t *testing.T) {
	files := []FileInput{
		{Name: "a.pdf", Data: []byte("x")},
		{Name: "b.md", Data: []byte("y")},
	}
	job := NewJob("Travel Planner", "Plan a trip of 4 days", files)

	if job.ID == "" {
		t.Fatal("expected generated job ID")
	}
	if job.Status != StatusQueued || job.Phase != "queued" {
		t.Errorf("expected queued state, got %s/%s", job.Status, job.Phase)
	}
	if job.Progress.TotalDocuments != 2 {
		t.Errorf("expected 2 total documents, got %d", job.Progress.TotalDocuments)
	}
	if len(job.Files()) != 2 {
		t.Errorf("expected files retained, got %d", len(job.Files()))
	}
	if job.Result() != nil {
		t.Errorf("expected nil result before completion")
	}
}

func TestJobProgressAndResult(t *testing.T) {
	job := NewJob("p", "j", []FileInput{{Name: "a.pdf"}})

	job.SetStatus(StatusExtracting, "extracting")
	job.IncrExtracted()
	job.AddError("a.pdf: parse failure")
	job.SetResult(&relevance.AnalysisResult{Error: ""})
	job.SetStatus(StatusCompleted, "done")

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Errorf("expected completed, got %s", snap.Status)
	}
	if snap.Progress.DocumentsExtracted != 1 {
		t.Errorf("expected 1 extracted, got %d", snap.Progress.DocumentsExtracted)
	}
	if len(snap.Progress.Errors) != 1 || snap.Progress.Errors[0] != "a.pdf: parse failure" {
		t.Errorf("unexpected errors %v", snap.Progress.Errors)
	}
	if job.Result() == nil {
		t.Errorf("expected stored result")
	}
}

func TestJobSnapshotErrorsNeverNil(t *testing.T) {
	job := NewJob("p", "j", nil)
	if job.Snapshot().Progress.Errors == nil {
		t.Fatal("expected empty, non-nil error list in snapshot")
	}
}

func TestJobStorePutGetCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	job := NewJob("p", "j", nil)
	store.Put(job)
	if store.Get(job.ID) != job {
		t.Fatal("expected job retrievable by ID")
	}
	if store.Get("missing") != nil {
		t.Fatal("expected nil for unknown ID")
	}

	time.Sleep(80 * time.Millisecond)
	store.Cleanup()
	if store.Get(job.ID) != nil {
		t.Errorf("expected expired job evicted")
	}
}

func TestJobStoreCleanupKeepsFreshJobs(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := NewJob("p", "j", nil)
	store.Put(job)
	store.Cleanup()
	if store.Get(job.ID) == nil {
		t.Fatal("expected fresh job to survive cleanup")
	}
}
