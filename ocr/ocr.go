// Package ocr drives the server side text extraction queue for case documents.
package ocr

import (
	"context"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jrsteele09/appeals-client/api"
	"github.com/jrsteele09/appeals-client/internal/errors"
	"github.com/rs/zerolog/log"
)

// Job states reported by the queue
const (
	JobWaiting   = "waiting"
	JobActive    = "active"
	JobDelayed   = "delayed"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// QueuedJob is returned when a document is queued for processing
type QueuedJob struct {
	JobID      string `json:"jobId" yaml:"jobId"`
	DocumentID string `json:"documentId,omitempty" yaml:"documentId,omitempty"`
	Status     string `json:"status,omitempty" yaml:"status,omitempty"`
	Message    string `json:"message,omitempty" yaml:"message,omitempty"`
}

// QueueResult is returned when every pending document is queued
type QueueResult struct {
	Message string      `json:"message,omitempty" yaml:"message,omitempty"`
	Queued  int         `json:"queued" yaml:"queued"`
	Jobs    []QueuedJob `json:"jobs,omitempty" yaml:"jobs,omitempty"`
}

type Job struct {
	ID          string  `json:"id" yaml:"id"`
	DocumentID  string  `json:"documentId,omitempty" yaml:"documentId,omitempty"`
	Status      string  `json:"status" yaml:"status"`
	Progress    float64 `json:"progress,omitempty" yaml:"progress,omitempty"`
	Attempts    int     `json:"attempts,omitempty" yaml:"attempts,omitempty"`
	Error       string  `json:"error,omitempty" yaml:"error,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	CompletedAt string  `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
}

// Done reports whether the job reached a final state
func (j *Job) Done() bool {
	return j.Status == JobCompleted || j.Status == JobFailed
}

type DocumentStatus struct {
	DocumentID  string `json:"documentId" yaml:"documentId"`
	OcrStatus   string `json:"ocrStatus" yaml:"ocrStatus"`
	PageCount   int    `json:"pageCount,omitempty" yaml:"pageCount,omitempty"`
	ProcessedAt string `json:"processedAt,omitempty" yaml:"processedAt,omitempty"`
	Error       string `json:"error,omitempty" yaml:"error,omitempty"`
}

type QueueStats struct {
	Waiting   int `json:"waiting" yaml:"waiting"`
	Active    int `json:"active" yaml:"active"`
	Completed int `json:"completed" yaml:"completed"`
	Failed    int `json:"failed" yaml:"failed"`
	Delayed   int `json:"delayed" yaml:"delayed"`
}

type DocumentStats struct {
	Total      int `json:"total" yaml:"total"`
	Pending    int `json:"pending" yaml:"pending"`
	Processing int `json:"processing" yaml:"processing"`
	Completed  int `json:"completed" yaml:"completed"`
	Failed     int `json:"failed" yaml:"failed"`
}

type Service struct {
	client       *api.Client
	pollInterval time.Duration
	pollMax      time.Duration
}

type ServiceOption func(*Service)

// WithPolling sets the first poll interval and the cap between polls used by WaitForJob
func WithPolling(initial, maxInterval time.Duration) ServiceOption {
	return func(s *Service) {
		s.pollInterval = initial
		s.pollMax = maxInterval
	}
}

func NewService(client *api.Client, options ...ServiceOption) *Service {
	s := &Service{client: client, pollInterval: 500 * time.Millisecond, pollMax: 5 * time.Second}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *Service) ProcessPending(ctx context.Context) (*QueueResult, error) {
	var out QueueResult
	if err := s.client.Post(ctx, "/ocr/process/pending", nil, &out); err != nil {
		return nil, errors.Wrapf(err, "process pending documents")
	}
	return &out, nil
}

func (s *Service) Process(ctx context.Context, documentID string) (*QueuedJob, error) {
	var out QueuedJob
	if err := s.client.Post(ctx, "/ocr/process/"+url.PathEscape(documentID), nil, &out); err != nil {
		return nil, errors.Wrapf(err, "process document %s", documentID)
	}
	return &out, nil
}

// Reprocess queues a document whose previous extraction failed
func (s *Service) Reprocess(ctx context.Context, documentID string) (*QueuedJob, error) {
	var out QueuedJob
	if err := s.client.Post(ctx, "/ocr/reprocess/"+url.PathEscape(documentID), nil, &out); err != nil {
		return nil, errors.Wrapf(err, "reprocess document %s", documentID)
	}
	return &out, nil
}

func (s *Service) DocumentStatus(ctx context.Context, documentID string) (*DocumentStatus, error) {
	var out DocumentStatus
	if err := s.client.Get(ctx, "/ocr/status/"+url.PathEscape(documentID), nil, &out); err != nil {
		return nil, errors.Wrapf(err, "get document %s status", documentID)
	}
	return &out, nil
}

func (s *Service) QueueStats(ctx context.Context) (*QueueStats, error) {
	var out QueueStats
	if err := s.client.Get(ctx, "/ocr/queue/stats", nil, &out); err != nil {
		return nil, errors.Wrapf(err, "get queue stats")
	}
	return &out, nil
}

func (s *Service) RecentJobs(ctx context.Context) ([]Job, error) {
	var out []Job
	if err := s.client.Get(ctx, "/ocr/queue/jobs", nil, &out); err != nil {
		return nil, errors.Wrapf(err, "get recent jobs")
	}
	return out, nil
}

func (s *Service) JobStatus(ctx context.Context, jobID string) (*Job, error) {
	var out Job
	if err := s.client.Get(ctx, "/ocr/queue/job/"+url.PathEscape(jobID), nil, &out); err != nil {
		return nil, errors.Wrapf(err, "get job %s", jobID)
	}
	return &out, nil
}

func (s *Service) DocumentStats(ctx context.Context) (*DocumentStats, error) {
	var out DocumentStats
	if err := s.client.Get(ctx, "/ocr/documents/stats", nil, &out); err != nil {
		return nil, errors.Wrapf(err, "get document stats")
	}
	return &out, nil
}

var errJobPending = errors.New("job still pending")

// WaitForJob polls a job with exponential backoff until it completes or fails, or ctx ends.
// A failed job is returned together with ErrJobFailed. Server errors stop the polling.
func (s *Service) WaitForJob(ctx context.Context, jobID string) (*Job, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.pollInterval
	b.MaxInterval = s.pollMax
	b.MaxElapsedTime = 0 // bounded by ctx

	var last *Job
	job, err := backoff.RetryWithData(func() (*Job, error) {
		job, err := s.JobStatus(ctx, jobID)
		if err != nil {
			if errors.Is(err, errors.ErrNoResponse) {
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}
		last = job
		if !job.Done() {
			log.Debug().Str("jobId", jobID).Str("status", job.Status).Msg("waiting for ocr job")
			return nil, errJobPending
		}
		return job, nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return last, err
	}
	if job.Status == JobFailed {
		return job, errors.Wrapf(errors.ErrJobFailed, "job %s: %s", jobID, job.Error)
	}
	return job, nil
}
