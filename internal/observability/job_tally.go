package observability

import (
	"sort"
	"sync"
	"time"
)

// Job results as reported by the worker.
const (
	JobDone   = "done"
	JobRetry  = "retry"
	JobFailed = "failed"
)

type JobTypeStats struct {
	Claimed     uint64        `json:"claimed"`
	Done        uint64        `json:"done"`
	Retried     uint64        `json:"retried"`
	Failed      uint64        `json:"failed"`
	AvgDuration time.Duration `json:"avgDurationNs"`
	MaxDuration time.Duration `json:"maxDurationNs"`

	total time.Duration
	runs  uint64
}

// JobTally keeps per-process job counters for the worker readiness page.
// Prometheus has the same data; this is for humans poking /readyz.
type JobTally struct {
	mu     sync.Mutex
	byType map[string]*JobTypeStats
}

func NewJobTally() *JobTally {
	return &JobTally{byType: make(map[string]*JobTypeStats)}
}

func (t *JobTally) stats(jobType string) *JobTypeStats {
	s, ok := t.byType[jobType]
	if !ok {
		s = &JobTypeStats{}
		t.byType[jobType] = s
	}
	return s
}

func (t *JobTally) Claimed(jobType string) {
	t.mu.Lock()
	t.stats(jobType).Claimed++
	t.mu.Unlock()
}

func (t *JobTally) Finished(jobType, result string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.stats(jobType)
	switch result {
	case JobDone:
		s.Done++
	case JobRetry:
		s.Retried++
	case JobFailed:
		s.Failed++
	}
	s.runs++
	s.total += d
	if d > s.MaxDuration {
		s.MaxDuration = d
	}
}

type JobTallySnapshot struct {
	Totals JobTypeStats            `json:"totals"`
	ByType map[string]JobTypeStats `json:"byType"`
}

func (t *JobTally) Snapshot() JobTallySnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := JobTallySnapshot{ByType: make(map[string]JobTypeStats, len(t.byType))}

	types := make([]string, 0, len(t.byType))
	for k := range t.byType {
		types = append(types, k)
	}
	sort.Strings(types)

	for _, k := range types {
		s := *t.byType[k]
		if s.runs > 0 {
			s.AvgDuration = s.total / time.Duration(s.runs)
		}
		out.ByType[k] = s

		out.Totals.Claimed += s.Claimed
		out.Totals.Done += s.Done
		out.Totals.Retried += s.Retried
		out.Totals.Failed += s.Failed
		out.Totals.runs += s.runs
		out.Totals.total += s.total
		if s.MaxDuration > out.Totals.MaxDuration {
			out.Totals.MaxDuration = s.MaxDuration
		}
	}
	if out.Totals.runs > 0 {
		out.Totals.AvgDuration = out.Totals.total / time.Duration(out.Totals.runs)
	}
	return out
}
