package pipeline

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
}

// StatsSnapshot is a point-in-time aggregate of per-document processing
// latencies and degradation counters.
type StatsSnapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`

	EmptyDocuments   int64 `json:"empty_documents"`
	DegradedMetadata int64 `json:"degraded_metadata"`
	DegradedProfiles int64 `json:"degraded_profiles"`
	RecoveredFaults  int64 `json:"recovered_faults"`
}

// Stats tracks recent per-document processing latencies within a rolling
// window, plus counters for every degraded path so fallbacks stay
// observable without changing result shapes.
type Stats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration

	emptyDocs        atomic.Int64
	degradedMetadata atomic.Int64
	degradedProfiles atomic.Int64
	recoveredFaults  atomic.Int64
}

func NewStats(maxAge time.Duration) *Stats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Stats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

func (s *Stats) Record(durationMs int64) {
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{
		timestamp:  now,
		durationMs: durationMs,
	})
}

func (s *Stats) CountEmptyDoc()         { s.emptyDocs.Add(1) }
func (s *Stats) CountDegradedMetadata() { s.degradedMetadata.Add(1) }
func (s *Stats) CountDegradedProfile()  { s.degradedProfiles.Add(1) }
func (s *Stats) CountPanic()            { s.recoveredFaults.Add(1) }

func (s *Stats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	snap := StatsSnapshot{
		EmptyDocuments:   s.emptyDocs.Load(),
		DegradedMetadata: s.degradedMetadata.Load(),
		DegradedProfiles: s.degradedProfiles.Load(),
		RecoveredFaults:  s.recoveredFaults.Load(),
	}
	if len(s.samples) == 0 {
		return snap
	}

	values := make([]int64, 0, len(s.samples))
	var sum int64
	for _, sm := range s.samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	snap.Count = len(values)
	snap.MinMs = values[0]
	snap.MaxMs = values[len(values)-1]
	snap.AvgMs = float64(sum) / float64(len(values))
	snap.P50Ms = percentile(values, 50)
	snap.P95Ms = percentile(values, 95)
	snap.P99Ms = percentile(values, 99)
	return snap
}

func (s *Stats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
