package pdf2md

import (
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a conversion job. Jobs move Pending ->
// Running -> Done or Failed; a terminal job is never re-processed.
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusDone
	StatusFailed
)

// String returns the display name of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status is Done or Failed.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusFailed
}

// Job is one source-PDF-to-Markdown conversion unit.
type Job struct {
	ID         string
	SourcePath string
	Status     Status
	Err        error
	// OutputPath is set when the job completes successfully.
	OutputPath string
}

// NewJob creates a pending job for the given source file.
func NewJob(sourcePath string) *Job {
	return &Job{
		ID:         uuid.NewString(),
		SourcePath: sourcePath,
		Status:     StatusPending,
	}
}

// ResolveOutputDir returns the directory the job's markdown file should be
// written to: the configured directory if set, otherwise the source file's
// own parent directory.
func (j *Job) ResolveOutputDir(configured string) string {
	if configured != "" {
		return configured
	}
	return filepath.Dir(j.SourcePath)
}

// Selection is an ordered set of conversion jobs. Insertion order is
// preserved for display; re-adding a source path that is already present is
// a no-op. A Selection is safe for concurrent use, so files may be queued
// from the UI thread while a runner iterates an earlier snapshot.
type Selection struct {
	mu   sync.Mutex
	jobs []*Job
	seen map[string]bool
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{
		seen: make(map[string]bool),
	}
}

// Add appends a pending job for sourcePath. It returns the job and true when
// the path was added, or the existing nil job and false for a duplicate.
func (s *Selection) Add(sourcePath string) (*Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seen[sourcePath] {
		return nil, false
	}
	job := NewJob(sourcePath)
	s.jobs = append(s.jobs, job)
	s.seen[sourcePath] = true
	return job, true
}

// Jobs returns a snapshot of the jobs in insertion order. Jobs added after
// the snapshot was taken are not included.
func (s *Selection) Jobs() []*Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make([]*Job, len(s.jobs))
	copy(jobs, s.jobs)
	return jobs
}

// Len returns the number of jobs in the selection.
func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Clear removes all jobs. Re-selecting a previously converted file after
// Clear creates a fresh pending job.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = nil
	s.seen = make(map[string]bool)
}
