package domain

import (
	"encoding/json"
	"time"
)

// JobType enumerates supported generation job categories.
type JobType string

const (
	JobTypeGenerate JobType = "generate"
	JobTypeExpand   JobType = "expand"
	JobTypeErase    JobType = "erase"
	JobTypeFill     JobType = "fill"
)

// JobStatus enumerates job lifecycle states. Simulated jobs never fail and
// cannot be cancelled, so there is no running or failed state.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusSucceeded JobStatus = "succeeded"
)

// Job encapsulates the lifecycle of a simulated generation.
type Job struct {
	ID          string          `json:"id"`
	Type        JobType         `json:"type"`
	Status      JobStatus       `json:"status"`
	RequestJSON json.RawMessage `json:"request"`
	ResultJSON  json.RawMessage `json:"result,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Done reports whether the job has completed.
func (j Job) Done() bool {
	return j.Status == JobStatusSucceeded
}
