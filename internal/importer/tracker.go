// Package importer drives the bulk-import workflow: validate the archive
// locally, upload it, then poll the job status until a terminal state.
// Polling is a chain of single-shot deferred calls, so cancellation works
// through a generation counter: a reset bumps the generation and any poll
// response carrying a stale generation is discarded instead of applied.
package importer

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/quillbox/quill/internal/api"
	"github.com/quillbox/quill/internal/validation"
)

// State is the tracker's position in the import workflow.
type State int

const (
	Idle State = iota
	Uploading
	Polling
	Terminal
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Uploading:
		return "uploading"
	case Polling:
		return "polling"
	case Terminal:
		return "terminal"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy means an import is already in flight.
	ErrBusy = errors.New("an import is already in progress")
	// ErrPollLimit means the attempt cap was reached before a terminal
	// status. The job may still be running server-side; it is retryable
	// by checking status again later.
	ErrPollLimit = errors.New("gave up polling after the configured attempt limit")
	// ErrPollTimeout means the wall-clock budget ran out first.
	ErrPollTimeout = errors.New("gave up polling after the configured timeout")
)

// Client is the slice of the API surface the tracker needs.
type Client interface {
	UploadImportArchive(ctx context.Context, filename string, content io.Reader) (*api.ImportJob, error)
	ImportJobStatus(ctx context.Context, jobID int64) (*api.ImportJob, error)
}

// Policy tunes the poll loop. The zero values of MaxAttempts and Timeout
// mean unlimited, matching the platform's historical behavior; the default
// config caps both.
type Policy struct {
	// Interval is the base delay between polls.
	Interval time.Duration
	// BackoffFactor multiplies the delay after each poll; 1.0 keeps it fixed.
	BackoffFactor float64
	// MaxInterval caps the grown delay. 0 means uncapped.
	MaxInterval time.Duration
	// MaxAttempts stops polling after this many status calls. 0 means unlimited.
	MaxAttempts int
	// Timeout stops polling this long after the upload completed. 0 means none.
	Timeout time.Duration
}

// DefaultPolicy polls every 2 seconds with a 10 minute budget.
func DefaultPolicy() Policy {
	return Policy{
		Interval:      2 * time.Second,
		BackoffFactor: 1.0,
		Timeout:       10 * time.Minute,
	}
}

// Snapshot is a point-in-time copy of the tracker state, safe to hold
// across further transitions.
type Snapshot struct {
	State    State
	Job      *api.ImportJob
	Err      error
	Attempts int
}

type scheduleFunc func(d time.Duration, fn func())

// Tracker is safe for concurrent use; all transitions happen under one
// mutex and network calls happen outside it.
type Tracker struct {
	client Client
	policy Policy

	mu         sync.Mutex
	state      State
	gen        uint64
	job        *api.ImportJob
	err        error
	attempts   int
	pollingFor time.Time
	done       chan struct{}

	schedule scheduleFunc
	onUpdate func(Snapshot)
}

type Option func(*Tracker)

// WithScheduler replaces the timer used to defer polls. Tests pass a
// synchronous or capturing scheduler.
func WithScheduler(schedule func(d time.Duration, fn func())) Option {
	return func(t *Tracker) { t.schedule = schedule }
}

// WithUpdateHandler registers a callback invoked after every transition
// with a fresh snapshot. Used by the CLI to render progress.
func WithUpdateHandler(fn func(Snapshot)) Option {
	return func(t *Tracker) { t.onUpdate = fn }
}

func NewTracker(client Client, policy Policy, opts ...Option) *Tracker {
	t := &Tracker{
		client: client,
		policy: policy,
		state:  Idle,
		schedule: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start validates and uploads the archive, then schedules the first status
// poll. Validation failures are returned before any network traffic and
// leave the tracker Idle.
func (t *Tracker) Start(ctx context.Context, filename string, size int64, content io.Reader) error {
	if err := validation.ValidateImportArchive(filename, size); err != nil {
		return err
	}

	t.mu.Lock()
	if t.state == Uploading || t.state == Polling {
		t.mu.Unlock()
		return ErrBusy
	}
	t.gen++
	gen := t.gen
	t.state = Uploading
	t.job = nil
	t.err = nil
	t.attempts = 0
	t.done = make(chan struct{})
	t.mu.Unlock()
	t.notify()

	job, err := t.client.UploadImportArchive(ctx, filename, content)

	t.mu.Lock()
	if t.gen != gen {
		// Reset raced the upload; the response belongs to a dead attempt.
		t.mu.Unlock()
		return nil
	}
	if err != nil {
		t.state = Idle
		t.err = err
		done := t.done
		t.done = nil
		t.mu.Unlock()
		close(done)
		t.notify()
		return err
	}
	t.state = Polling
	t.job = job
	t.pollingFor = time.Now()
	t.mu.Unlock()
	t.notify()

	// First poll fires immediately; later ones follow the policy interval.
	t.schedule(0, func() { t.pollOnce(ctx, gen) })
	return nil
}

func (t *Tracker) pollOnce(ctx context.Context, gen uint64) {
	t.mu.Lock()
	if t.gen != gen || t.state != Polling {
		t.mu.Unlock()
		return
	}
	jobID := t.job.JobID
	t.mu.Unlock()

	job, err := t.client.ImportJobStatus(ctx, jobID)

	t.mu.Lock()
	if t.gen != gen || t.state != Polling {
		// Stale response after a reset: discard, never apply.
		t.mu.Unlock()
		return
	}

	t.attempts++
	if err != nil {
		// Transient poll failure: keep the last good snapshot and retry.
		t.err = err
	} else {
		t.err = nil
		t.job = job
		if job.Status.Terminal() {
			t.settleLocked(nil)
			return
		}
	}

	if t.policy.MaxAttempts > 0 && t.attempts >= t.policy.MaxAttempts {
		t.settleLocked(ErrPollLimit)
		return
	}
	if t.policy.Timeout > 0 && time.Since(t.pollingFor) >= t.policy.Timeout {
		t.settleLocked(ErrPollTimeout)
		return
	}

	delay := t.nextDelayLocked()
	t.mu.Unlock()
	t.notify()
	t.schedule(delay, func() { t.pollOnce(ctx, gen) })
}

// settleLocked finishes the attempt. Callers hold the mutex; it is
// released here.
func (t *Tracker) settleLocked(err error) {
	t.state = Terminal
	if err != nil {
		t.err = err
	}
	done := t.done
	t.done = nil
	t.mu.Unlock()
	if done != nil {
		close(done)
	}
	t.notify()
}

func (t *Tracker) nextDelayLocked() time.Duration {
	delay := t.policy.Interval
	if t.policy.BackoffFactor > 1.0 {
		for i := 1; i < t.attempts; i++ {
			delay = time.Duration(float64(delay) * t.policy.BackoffFactor)
			if t.policy.MaxInterval > 0 && delay >= t.policy.MaxInterval {
				return t.policy.MaxInterval
			}
		}
	}
	if t.policy.MaxInterval > 0 && delay > t.policy.MaxInterval {
		delay = t.policy.MaxInterval
	}
	return delay
}

// Reset clears all job state and returns the tracker to Idle. Any poll
// whose request predates the reset is discarded when it lands.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.gen++
	t.state = Idle
	t.job = nil
	t.err = nil
	t.attempts = 0
	done := t.done
	t.done = nil
	t.mu.Unlock()
	if done != nil {
		close(done)
	}
	t.notify()
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Tracker) snapshotLocked() Snapshot {
	snap := Snapshot{State: t.state, Err: t.err, Attempts: t.attempts}
	if t.job != nil {
		job := *t.job
		job.Errors = append([]string(nil), t.job.Errors...)
		snap.Job = &job
	}
	return snap
}

// Wait blocks until the current attempt settles (terminal status, upload
// failure, or reset) or the context is done.
func (t *Tracker) Wait(ctx context.Context) (Snapshot, error) {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done == nil {
		return t.Snapshot(), nil
	}
	select {
	case <-ctx.Done():
		return t.Snapshot(), ctx.Err()
	case <-done:
		return t.Snapshot(), nil
	}
}

func (t *Tracker) notify() {
	if t.onUpdate != nil {
		t.onUpdate(t.Snapshot())
	}
}
