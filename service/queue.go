package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	dmn "github.com/gridweave/gridweave-api/domain"
	"github.com/gridweave/gridweave-api/gridgen"
	"github.com/gridweave/gridweave-api/service/i"
)

const (
	defaultQueuePrefix  = "gridweave"
	defaultPollInterval = 500 * time.Millisecond
	defaultDrainBatch   = 4
	jobsQueueKeyFmt     = "%s:jobs"
)

var (
	ErrJobNotEnqueued = errors.New("generation job could not be enqueued")
)

// GenerationJob is the queued form of a grid generation request.
type GenerationJob struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        uuid.UUID `json:"owner_id"`
	StartX         int       `json:"start_x"`
	StartZ         int       `json:"start_z"`
	EndX           int       `json:"end_x"`
	EndZ           int       `json:"end_z"`
	Spacing        int       `json:"spacing"`
	FillPercent    int       `json:"fill_percent"`
	AllowBranching bool      `json:"allow_branching"`
	Seed           int64     `json:"seed"`
	EnqueuedAt     int64     `json:"enqueued_at"`
}

// Params reassembles the generation parameters carried by the job.
func (j *GenerationJob) Params() *gridgen.Params {
	return &gridgen.Params{
		Start:          gridgen.Point{X: j.StartX, Z: j.StartZ},
		End:            gridgen.Point{X: j.EndX, Z: j.EndZ},
		Spacing:        j.Spacing,
		AllowBranching: j.AllowBranching,
		FillPercent:    j.FillPercent,
		Seed:           j.Seed,
	}
}

func newGenerationJob(ownerID uuid.UUID, p *gridgen.Params) *GenerationJob {
	return &GenerationJob{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		StartX:         p.Start.X,
		StartZ:         p.Start.Z,
		EndX:           p.End.X,
		EndZ:           p.End.Z,
		Spacing:        p.Spacing,
		FillPercent:    p.FillPercent,
		AllowBranching: p.AllowBranching,
		Seed:           p.Seed,
		EnqueuedAt:     time.Now().UnixNano(),
	}
}

// QueueHandler is called with every record a drained job produced.
type QueueHandler func(*dmn.GridRecord)

// QueueOptions tunes the generation queue.
type QueueOptions struct {
	Prefix       string        // Redis key prefix
	PollInterval time.Duration // How often the worker polls for jobs
	DrainBatch   int64         // Jobs drained per poll
	Handler      QueueHandler  // Optional hook invoked per finished job
}

// GenerationQueue buffers batch generation requests in a shared sorted
// queue, ordered by enqueue time, and drains them on a background worker.
type GenerationQueue struct {
	sortedQueue i.SortedQueue
	grids       i.GridManager
	logger      i.Logger
	opts        *QueueOptions
	stop        chan struct{}
	stopOnce    sync.Once
}

// NewGenerationQueue creates a generation queue over the given sorted queue
// and grid manager. Nil options fall back to defaults.
func NewGenerationQueue(sortedQueue i.SortedQueue, grids i.GridManager, logger i.Logger, opts *QueueOptions) (*GenerationQueue, error) {
	if sortedQueue == nil || grids == nil || logger == nil {
		return nil, errors.New("generation queue requires a sorted queue, a grid manager and a logger")
	}

	if opts == nil {
		opts = &QueueOptions{}
	}
	if opts.Prefix == "" {
		opts.Prefix = defaultQueuePrefix
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.DrainBatch <= 0 {
		opts.DrainBatch = defaultDrainBatch
	}

	return &GenerationQueue{
		sortedQueue: sortedQueue,
		grids:       grids,
		logger:      logger,
		opts:        opts,
		stop:        make(chan struct{}),
	}, nil
}

// Enqueue validates the parameters and pushes one generation job, returning
// the job ID. Jobs are scored by enqueue time, so they drain in order.
func (q *GenerationQueue) Enqueue(ctx context.Context, ownerID uuid.UUID, params *gridgen.Params) (uuid.UUID, error) {
	// Reject bad parameter sets before they reach a worker.
	if _, err := gridgen.New(params); err != nil {
		return uuid.Nil, err
	}

	job := newGenerationJob(ownerID, params)
	raw, err := json.Marshal(job)
	if err != nil {
		return uuid.Nil, err
	}

	if err := q.sortedQueue.Enqueue(ctx, q.queueKey(), float64(job.EnqueuedAt), string(raw)); err != nil {
		q.logger.Error(fmt.Sprintf("Enqueueing generation job: %s", err))
		return uuid.Nil, ErrJobNotEnqueued
	}

	q.logger.Info(fmt.Sprintf("Generation job enqueued: ID=%s Owner=%s", job.ID, ownerID))
	return job.ID, nil
}

// Pending returns how many jobs are waiting in the queue.
func (q *GenerationQueue) Pending(ctx context.Context) int64 {
	return q.sortedQueue.Count(ctx, q.queueKey())
}

// Start launches the background worker. It runs until Stop is called or the
// context is canceled.
func (q *GenerationQueue) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(q.opts.PollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-q.stop:
				return
			case <-ticker.C:
				q.drain(ctx)
			}
		}
	}()
}

// Stop terminates the background worker.
func (q *GenerationQueue) Stop() {
	q.stopOnce.Do(func() {
		close(q.stop)
	})
}

// drain pops up to one batch of jobs and runs them, returning how many
// grids were generated.
func (q *GenerationQueue) drain(ctx context.Context) int {
	raws, err := q.sortedQueue.DequeTops(ctx, q.queueKey(), q.opts.DrainBatch)
	if err != nil {
		q.logger.Error(fmt.Sprintf("Draining generation queue: %s", err))
		return 0
	}

	generated := 0
	for _, raw := range raws {
		var job GenerationJob
		if err := json.Unmarshal([]byte(raw), &job); err != nil {
			q.logger.Warning(fmt.Sprintf("Non-job value in queue: %s", raw))
			continue
		}

		record, err := q.grids.Generate(ctx, job.OwnerID, job.Params())
		if err != nil {
			q.logger.Error(fmt.Sprintf("Running generation job %s: %s", job.ID, err))
			continue
		}

		generated++
		if q.opts.Handler != nil {
			go q.opts.Handler(record)
		}
	}
	return generated
}

func (q *GenerationQueue) queueKey() string {
	return fmt.Sprintf(jobsQueueKeyFmt, q.opts.Prefix)
}
