// Package generation simulates the image-generation backend: every submitted
// job completes on its own timer with a result computed by the caller.
package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"imagestudio/internal/domain"
)

// ResolveFunc produces the job result once the delay has elapsed. It runs on
// the timer goroutine.
type ResolveFunc func(job domain.Job) (any, error)

// Submitter queues generation work and returns a job handle to poll.
type Submitter interface {
	Submit(ctx context.Context, jobType domain.JobType, request any, resolve ResolveFunc) (*domain.Job, error)
}

var errSimulatorClosed = errors.New("generation: simulator closed")

// Timer is the handle returned by an after-func.
type Timer interface {
	Stop() bool
}

// Simulator completes jobs after a fixed delay. Jobs are independent: there
// is no ordering between them and no cancellation once submitted.
type Simulator struct {
	repo   domain.JobRepository
	delay  time.Duration
	logger zerolog.Logger

	afterFunc func(time.Duration, func()) Timer
	newID     func() string

	mu      sync.Mutex
	pending map[string]Timer
	closed  bool
}

// Option customises a Simulator.
type Option func(*Simulator)

// WithAfterFunc replaces time.AfterFunc, mainly for tests.
func WithAfterFunc(fn func(time.Duration, func()) Timer) Option {
	return func(s *Simulator) { s.afterFunc = fn }
}

// WithIDGenerator replaces uuid.NewString for job identifiers.
func WithIDGenerator(fn func() string) Option {
	return func(s *Simulator) { s.newID = fn }
}

func NewSimulator(repo domain.JobRepository, delay time.Duration, logger zerolog.Logger, opts ...Option) *Simulator {
	s := &Simulator{
		repo:   repo,
		delay:  delay,
		logger: logger.With().Str("component", "generation").Logger(),
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		newID:   uuid.NewString,
		pending: make(map[string]Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit stores a queued job and schedules its completion.
func (s *Simulator) Submit(ctx context.Context, jobType domain.JobType, request any, resolve ResolveFunc) (*domain.Job, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, errSimulatorClosed
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", jobType, err)
	}
	job := &domain.Job{
		ID:          s.newID(),
		Type:        jobType,
		Status:      domain.JobStatusQueued,
		RequestJSON: payload,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errSimulatorClosed
	}
	snapshot := *job
	s.pending[job.ID] = s.afterFunc(s.delay, func() { s.complete(snapshot, resolve) })
	s.logger.Info().Str("job_id", job.ID).Str("job_type", string(jobType)).Dur("delay", s.delay).Msg("job queued")
	return job, nil
}

// Pending returns the number of jobs still waiting on their timer.
func (s *Simulator) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Close stops outstanding timers. Jobs that never fire stay queued.
func (s *Simulator) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, t := range s.pending {
		t.Stop()
		delete(s.pending, id)
	}
}

func (s *Simulator) complete(job domain.Job, resolve ResolveFunc) {
	s.mu.Lock()
	delete(s.pending, job.ID)
	s.mu.Unlock()

	var result any = map[string]any{}
	if resolve != nil {
		out, err := resolve(job)
		if err != nil {
			s.logger.Error().Err(err).Str("job_id", job.ID).Msg("resolve job result")
			out = map[string]string{"error": err.Error()}
		}
		result = out
	}
	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Error().Err(err).Str("job_id", job.ID).Msg("encode job result")
		payload = []byte(`{}`)
	}
	if err := s.repo.Complete(context.Background(), job.ID, payload); err != nil {
		s.logger.Error().Err(err).Str("job_id", job.ID).Msg("complete job")
		return
	}
	s.logger.Info().Str("job_id", job.ID).Str("job_type", string(job.Type)).Msg("job completed")
}

var _ Submitter = (*Simulator)(nil)
