// Package trainer runs Network operations on a dedicated goroutine so callers can
// train, test and reset without blocking, while the network only ever sees one
// operation at a time.
package trainer

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"

	"nnplay/m"
)

// ErrClosed is returned for requests submitted after Close.
var ErrClosed = errors.New("trainer: runner closed")

type Op string

const (
	OpTrain   Op = "train"
	OpTest    Op = "test"
	OpReset   Op = "reset"
	OpInspect Op = "inspect"
)

// Result describes a finished request.
type Result struct {
	Op     Op
	Epochs int
	MSE    float64
	Output []float64
	Took   time.Duration
	Err    error
}

// Options configures a Runner.
type Options struct {
	// Checkpoint is the number of epochs trained between cancellation checks.
	Checkpoint int
	QueueSize  int
	Logger     *slog.Logger
	// OnCheckpoint runs on the worker goroutine after every checkpoint. It must not wait
	// on the Runner: it may submit a request without reading its channel, and only while
	// the queue has room, since submitting to a full queue blocks the worker on itself.
	OnCheckpoint func(epochs int, mse float64)
	// OnDone runs on the worker goroutine after every request, before its result is
	// delivered on the request's channel. It must not wait on the Runner, see OnCheckpoint.
	OnDone func(Result)
}

type job struct {
	ctx context.Context
	op  Op
	run func(ctx context.Context) Result
	out chan Result
}

// Runner owns a Network and executes requests against it in submission order.
type Runner struct {
	net  *m.Network
	opts Options

	mu      sync.Mutex
	closed  bool
	jobs    chan job
	stopped chan struct{}
}

// New starts the worker goroutine. The caller must not use net directly until Close
// returns.
func New(net *m.Network, opts Options) *Runner {
	if opts.Checkpoint <= 0 {
		opts.Checkpoint = 100
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 16
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := &Runner{
		net:     net,
		opts:    opts,
		jobs:    make(chan job, opts.QueueSize),
		stopped: make(chan struct{}),
	}
	go r.loop()
	return r
}

func (r *Runner) loop() {
	defer close(r.stopped)
	for j := range r.jobs {
		var res Result
		if err := j.ctx.Err(); err != nil {
			res = Result{Op: j.op, Err: err}
		} else {
			start := time.Now()
			res = j.run(j.ctx)
			res.Op = j.op
			res.Took = time.Since(start)
		}
		if r.opts.OnDone != nil {
			r.opts.OnDone(res)
		}
		j.out <- res
	}
}

func (r *Runner) submit(ctx context.Context, op Op, run func(ctx context.Context) Result) <-chan Result {
	out := make(chan Result, 1)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		out <- Result{Op: op, Err: ErrClosed}
		return out
	}
	r.jobs <- job{ctx: ctx, op: op, run: run, out: out}
	return out
}

// Train runs epochs passes over samples in chunks of Options.Checkpoint epochs.
// Cancelling ctx stops training at the next checkpoint; epochs already trained are kept.
func (r *Runner) Train(ctx context.Context, samples []m.TrainingData, epochs int) <-chan Result {
	return r.submit(ctx, OpTrain, func(ctx context.Context) Result {
		return r.train(ctx, samples, epochs)
	})
}

func (r *Runner) train(ctx context.Context, samples []m.TrainingData, epochs int) Result {
	var res Result
	if epochs < 0 {
		res.Err = errors.Errorf("epochs must be >= 0 (got %d)", epochs)
		return res
	}
	if err := r.net.CheckSamples(samples); err != nil {
		res.Err = err
		return res
	}

	log := r.opts.Logger.With("samples", len(samples), "epochs", epochs)
	log.Info("training started")
	for res.Epochs < epochs {
		if err := ctx.Err(); err != nil {
			log.Info("training cancelled", "done", res.Epochs)
			res.Err = err
			break
		}
		n := min(r.opts.Checkpoint, epochs-res.Epochs)
		if err := r.net.Train(samples, n); err != nil {
			res.Err = err
			return res
		}
		res.Epochs += n

		mse, err := r.net.MeanSquaredError(samples)
		if err != nil {
			res.Err = err
			return res
		}
		res.MSE = mse
		log.Debug("checkpoint", "done", res.Epochs, "mse", mse)
		if r.opts.OnCheckpoint != nil {
			r.opts.OnCheckpoint(res.Epochs, mse)
		}
	}
	if res.Err == nil {
		log.Info("training finished", "mse", res.MSE)
	}
	return res
}

// Test propagates sample.VectorIn and returns the network output.
func (r *Runner) Test(ctx context.Context, sample m.TrainingData) <-chan Result {
	return r.submit(ctx, OpTest, func(context.Context) Result {
		out, err := r.net.Propagate(sample)
		return Result{Output: out, Err: err}
	})
}

func (r *Runner) Reset(ctx context.Context) <-chan Result {
	return r.submit(ctx, OpReset, func(context.Context) Result {
		r.net.Reset()
		r.opts.Logger.Info("network reset", "sizes", r.net.Sizes())
		return Result{}
	})
}

// Inspect calls fn with exclusive access to the network, e.g. to read its layers for
// rendering. fn must not keep the pointer.
func (r *Runner) Inspect(ctx context.Context, fn func(*m.Network) error) <-chan Result {
	return r.submit(ctx, OpInspect, func(context.Context) Result {
		return Result{Err: fn(r.net)}
	})
}

// Close waits for queued requests to finish and stops the worker. It is safe to call
// more than once.
func (r *Runner) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.jobs)
	}
	r.mu.Unlock()
	<-r.stopped
}
