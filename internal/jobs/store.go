package jobs

import (
	"context"
	"io"
	"sync"
	"time"
)

// queuedOutput is reported for identifiers the store has no record of.
const queuedOutput = "Job is queued and waiting to start...\nPlease wait, this may take a few moments."

// DefaultRetention is how long terminal job records are kept before eviction.
const DefaultRetention = 60 * time.Minute

type record struct {
	status Status
	output []byte
	done   time.Time
}

// Store is an in-memory job status and output registry safe for concurrent
// use by the worker (writes) and status handlers (reads).
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*record
}

func NewStore() *Store {
	return &Store{jobs: make(map[string]*record)}
}

// Get returns a snapshot for id. Unknown identifiers, including jobs not yet
// picked up by the worker and jobs already evicted, read as Queued.
func (s *Store) Get(id string) Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.jobs[id]
	if !ok {
		return Result{Status: StatusQueued, Output: queuedOutput}
	}
	return Result{Status: rec.status, Output: string(rec.output)}
}

// SetStatus records a lifecycle transition, creating the record if needed.
// Terminal transitions stamp the eviction clock.
func (s *Store) SetStatus(id string, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.record(id)
	rec.status = status
	if status.Terminal() {
		rec.done = time.Now()
	}
}

// Sink returns a writer that appends to id's output buffer. The writer is
// safe to use concurrently with Get.
func (s *Store) Sink(id string) io.Writer {
	return &sink{store: s, id: id}
}

// Len reports the number of live records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// Sweep evicts terminal records whose retention window ended before now and
// returns how many were removed.
func (s *Store) Sweep(retention time.Duration, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, rec := range s.jobs {
		if rec.status.Terminal() && now.Sub(rec.done) >= retention {
			delete(s.jobs, id)
			evicted++
		}
	}
	return evicted
}

// Janitor sweeps periodically until ctx is cancelled.
func (s *Store) Janitor(ctx context.Context, interval, retention time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(retention, now)
		}
	}
}

// record returns the entry for id, creating it in the Queued state. Callers
// must hold mu.
func (s *Store) record(id string) *record {
	rec, ok := s.jobs[id]
	if !ok {
		rec = &record{status: StatusQueued}
		s.jobs[id] = rec
	}
	return rec
}

type sink struct {
	store *Store
	id    string
}

func (w *sink) Write(p []byte) (int, error) {
	w.store.mu.Lock()
	defer w.store.mu.Unlock()

	rec := w.store.record(w.id)
	rec.output = append(rec.output, p...)
	return len(p), nil
}
