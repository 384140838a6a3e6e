package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jyotsnat2004/doclens/internal/config"
	"github.com/jyotsnat2004/doclens/internal/extractor"
)

// Orchestrator manages asynchronous analysis jobs submitted over the API.
// Uploaded files are extracted into blocks, then handed to the engine for
// concurrent per-document scoring and the cross-document ranking.
type Orchestrator struct {
	engine *Engine
	jobs   *JobStore
	queue  chan *Job
	log    *slog.Logger
	cfg    config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the job pipeline around an engine.
func NewOrchestrator(cfg config.Config, engine *Engine, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		engine: engine,
		jobs:   NewJobStore(cfg.JobTTL),
		queue:  make(chan *Job, cfg.MaxQueueSize),
		log:    log,
		cfg:    cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					o.process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Engine returns the underlying engine for direct synchronous use by API
// handlers.
func (o *Orchestrator) Engine() *Engine {
	return o.engine
}

// process runs one analysis job end to end. Per-file extraction failures
// degrade that document to an empty block set; the engine then reports it
// through its own degraded paths rather than failing the batch.
func (o *Orchestrator) process(ctx context.Context, job *Job) {
	log := o.log.With("job_id", job.ID)

	job.SetStatus(StatusExtracting, "extracting")
	files := job.Files()
	docs := make([]Document, 0, len(files))
	hadErrors := false
	for _, f := range files {
		d := Document{Name: f.Name}
		ext, err := extractor.ForFile(f.Name)
		if err != nil {
			log.Warn("unsupported file", "file", f.Name, "error", err)
			job.AddError(fmt.Sprintf("%s: %s", f.Name, err))
			hadErrors = true
		} else {
			blocks, err := ext.Extract(bytes.NewReader(f.Data), f.Name)
			if err != nil {
				log.Error("extraction failed", "file", f.Name, "error", err)
				job.AddError(fmt.Sprintf("%s: %s", f.Name, err))
				hadErrors = true
			} else {
				d.Blocks = blocks
			}
		}
		docs = append(docs, d)
		job.IncrExtracted()
	}

	job.SetStatus(StatusAnalyzing, "analyzing")
	result := o.engine.Analyze(ctx, docs, job.Persona, job.JobToBeDone)
	job.SetResult(result)

	switch {
	case result.Error != "":
		job.SetStatus(StatusFailed, "done")
	case hadErrors:
		job.SetStatus(StatusPartial, "done")
	default:
		job.SetStatus(StatusCompleted, "done")
	}
	log.Info("analysis complete",
		"documents", len(docs),
		"sections", len(result.ExtractedSections),
		"passages", len(result.SubSectionAnalysis),
	)
}
