package repo

import (
	"context"
	"fmt"
	"time"

	"imagestudio/internal/domain"
	"imagestudio/internal/infra"
	"imagestudio/internal/sqlinline"
)

// JobRepositoryPG implements domain.JobRepository on PostgreSQL.
type JobRepositoryPG struct {
	db infra.SQLExecutor
}

// NewJobRepository creates a job repository over a marker-aware executor,
// usually an *infra.SQLRunner.
func NewJobRepository(db infra.SQLExecutor) *JobRepositoryPG {
	return &JobRepositoryPG{db: db}
}

// EnsureSchema creates the jobs table when missing.
func (r *JobRepositoryPG) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, sqlinline.QCreateJobsTable); err != nil {
		return fmt.Errorf("create jobs table: %w", err)
	}
	return nil
}

// Create inserts a new job record.
func (r *JobRepositoryPG) Create(ctx context.Context, job *domain.Job) error {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	job.UpdatedAt = job.CreatedAt
	_, err := r.db.Exec(ctx, sqlinline.QInsertJob,
		job.ID,
		string(job.Type),
		string(job.Status),
		[]byte(job.RequestJSON),
		job.CreatedAt,
	)
	return err
}

// Complete marks a job as succeeded with its result payload.
func (r *JobRepositoryPG) Complete(ctx context.Context, jobID string, resultJSON []byte) error {
	tag, err := r.db.Exec(ctx, sqlinline.QCompleteJob, jobID, nullableBytes(resultJSON))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID fetches a job by its identifier.
func (r *JobRepositoryPG) GetByID(ctx context.Context, jobID string) (*domain.Job, error) {
	row := r.db.QueryRow(ctx, sqlinline.QSelectJob, jobID)
	var (
		job             domain.Job
		jobType, status string
		request, result []byte
	)
	if err := row.Scan(
		&job.ID,
		&jobType,
		&status,
		&request,
		&result,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	job.Type = domain.JobType(jobType)
	job.Status = domain.JobStatus(status)
	job.RequestJSON = request
	if len(result) > 0 {
		job.ResultJSON = result
	}
	return &job, nil
}

func nullableBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}

var _ domain.JobRepository = (*JobRepositoryPG)(nil)
