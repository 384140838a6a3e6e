package pipeline

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jyotsnat2004/doclens/internal/relevance"
)

// JobStatus represents the state of an analysis job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusExtracting JobStatus = "extracting"
	StatusAnalyzing  JobStatus = "analyzing"
	StatusCompleted  JobStatus = "completed"
	StatusPartial    JobStatus = "partial"
	StatusFailed     JobStatus = "failed"
)

// FileInput is one uploaded document pending extraction.
type FileInput struct {
	Name string
	Data []byte
}

// Job tracks one persona analysis run over a document set.
type Job struct {
	mu sync.Mutex

	ID          string `json:"job_id"`
	Persona     string `json:"persona"`
	JobToBeDone string `json:"job_to_be_done"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	files  []FileInput
	result *relevance.AnalysisResult
	errors []string
}

// Progress tracks processing progress.
type Progress struct {
	TotalDocuments     int      `json:"total_documents"`
	DocumentsExtracted int      `json:"documents_extracted"`
	Errors             []string `json:"errors"`
}

// NewJob creates a queued analysis job over the given files.
func NewJob(personaText, jobText string, files []FileInput) *Job {
	now := time.Now()
	return &Job{
		ID:          uuid.NewString(),
		Persona:     personaText,
		JobToBeDone: jobText,
		Status:      StatusQueued,
		Phase:       "queued",
		Progress:    Progress{TotalDocuments: len(files)},
		CreatedAt:   now,
		UpdatedAt:   now,
		files:       files,
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// IncrExtracted atomically increments the extracted document count.
func (j *Job) IncrExtracted() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.DocumentsExtracted++
	j.UpdatedAt = time.Now()
}

// Files returns the pending file inputs.
func (j *Job) Files() []FileInput {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.files
}

// SetResult stores the finished analysis result.
func (j *Job) SetResult(r *relevance.AnalysisResult) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = r
	j.UpdatedAt = time.Now()
}

// Result returns the analysis result, nil until completion.
func (j *Job) Result() *relevance.AnalysisResult {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	Persona     string    `json:"persona"`
	JobToBeDone string    `json:"job_to_be_done"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Progress    Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:          j.ID,
		Persona:     j.Persona,
		JobToBeDone: j.JobToBeDone,
		Status:      j.Status,
		Phase:       j.Phase,
		Progress: Progress{
			TotalDocuments:     j.Progress.TotalDocuments,
			DocumentsExtracted: j.Progress.DocumentsExtracted,
			Errors:             errs,
		},
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
