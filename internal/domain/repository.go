package domain

import "context"

// JobRepository defines persistence for job entities.
type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	Complete(ctx context.Context, jobID string, resultJSON []byte) error
	GetByID(ctx context.Context, jobID string) (*Job, error)
}
