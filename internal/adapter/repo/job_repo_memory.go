package repo

import (
	"context"
	"sync"
	"time"

	"imagestudio/internal/domain"
)

// JobRepositoryMemory keeps jobs in process memory. It is the default when no
// database is configured.
type JobRepositoryMemory struct {
	mu   sync.RWMutex
	jobs map[string]domain.Job
	now  func() time.Time
}

func NewMemoryJobRepository() *JobRepositoryMemory {
	return &JobRepositoryMemory{
		jobs: make(map[string]domain.Job),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *JobRepositoryMemory) Create(ctx context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = r.now()
	}
	job.UpdatedAt = job.CreatedAt
	r.jobs[job.ID] = cloneJob(*job)
	return nil
}

func (r *JobRepositoryMemory) Complete(ctx context.Context, jobID string, resultJSON []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return domain.ErrNotFound
	}
	job.Status = domain.JobStatusSucceeded
	job.ResultJSON = append([]byte(nil), resultJSON...)
	job.UpdatedAt = r.now()
	r.jobs[jobID] = job
	return nil
}

func (r *JobRepositoryMemory) GetByID(ctx context.Context, jobID string) (*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneJob(job)
	return &out, nil
}

func cloneJob(j domain.Job) domain.Job {
	j.RequestJSON = append([]byte(nil), j.RequestJSON...)
	if j.ResultJSON != nil {
		j.ResultJSON = append([]byte(nil), j.ResultJSON...)
	}
	return j
}

var _ domain.JobRepository = (*JobRepositoryMemory)(nil)
