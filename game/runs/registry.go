package runs

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRunNotFound      = errors.New("run not found")
	ErrRunAlreadyExists = errors.New("run already exists")
	ErrInvalidRun       = errors.New("invalid run")
)

// Registry stores completed runs in memory
type Registry struct {
	runs map[string]*Run
	mu   sync.RWMutex
	now  func() time.Time
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		runs: make(map[string]*Run),
		now:  time.Now,
	}
}

// Add stores run, assigning an ID and creation time when missing
func (r *Registry) Add(run *Run) (*Run, error) {
	if run == nil {
		return nil, ErrInvalidRun
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = r.now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(run.ID)
	if _, exists := r.runs[key]; exists {
		return nil, ErrRunAlreadyExists
	}
	r.runs[key] = run
	return run, nil
}

// Get returns the run with the given ID
func (r *Registry) Get(id string) (*Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, exists := r.runs[strings.ToLower(id)]
	if !exists {
		return nil, ErrRunNotFound
	}
	return run, nil
}

// List returns runs newest first. A limit of zero or less returns all runs.
func (r *Registry) List(limit int) []*Run {
	r.mu.RLock()
	result := make([]*Run, 0, len(r.runs))
	for _, run := range r.runs {
		result = append(result, run)
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// Delete removes a run
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(id)
	if _, exists := r.runs[key]; !exists {
		return ErrRunNotFound
	}
	delete(r.runs, key)
	return nil
}

// CleanupExpired removes runs created more than maxAge ago and returns how
// many were removed
func (r *Registry) CleanupExpired(maxAge time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxAge)
	removed := 0

	for id, run := range r.runs {
		if run.CreatedAt.Before(cutoff) {
			delete(r.runs, id)
			removed++
		}
	}

	return removed
}

// Count returns the number of stored runs
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.runs)
}
