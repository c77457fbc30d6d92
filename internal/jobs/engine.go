package jobs

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"mixtape/internal/shared"
	"mixtape/internal/tasks"
)

// RunFunc executes one playlist generation, streaming progress to out.
type RunFunc func(ctx context.Context, req tasks.Request, out io.Writer) (string, error)

type job struct {
	id  string
	req tasks.Request
}

// Engine owns the job queue and its single worker goroutine. Jobs run one at
// a time in submission order; submission itself never blocks on a running job.
type Engine struct {
	run    RunFunc
	store  *Store
	logger *log.Logger

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []job
	closed bool
	wg     sync.WaitGroup
}

// NewEngine creates an Engine. Call [Engine.Start] before submitting.
func NewEngine(run RunFunc, store *Store, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	e := &Engine{run: run, store: store, logger: logger}
	e.cond = sync.NewCond(&e.mu)
	return e
}

// Start launches the worker goroutine. ctx is passed to each job run.
func (e *Engine) Start(ctx context.Context) {
	e.wg.Add(1)
	go e.worker(ctx)
}

// Stop shuts the engine down. The in-flight job, if any, finishes; jobs still
// queued are abandoned and keep reading as Queued from the store. Stop blocks
// until the worker exits. Submissions after Stop are rejected.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.cond.Broadcast()
	e.wg.Wait()
}

// Submit enqueues a generation request and returns the new job's identifier
// without waiting for any queued or running work.
func (e *Engine) Submit(req tasks.Request) (string, error) {
	id := shared.GenerateID()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return "", fmt.Errorf("%w: job engine stopped", shared.ErrServiceUnavailable)
	}
	e.queue = append(e.queue, job{id: id, req: req})
	depth := len(e.queue)
	e.mu.Unlock()
	e.cond.Signal()

	e.logger.Info("job queued", "job_id", id, "queue_depth", depth)
	return id, nil
}

func (e *Engine) worker(ctx context.Context) {
	defer e.wg.Done()
	e.logger.Debug("worker started")

	for {
		e.mu.Lock()
		for len(e.queue) == 0 && !e.closed {
			e.cond.Wait()
		}
		if e.closed {
			abandoned := len(e.queue)
			e.mu.Unlock()
			if abandoned > 0 {
				e.logger.Warn("worker stopping with queued jobs abandoned", "count", abandoned)
			}
			return
		}
		next := e.queue[0]
		e.queue = e.queue[1:]
		e.mu.Unlock()

		e.process(ctx, next)
	}
}

// process runs one job, translating the run's outcome into a terminal status.
// A panic in the pipeline marks the job Error and leaves the worker alive.
func (e *Engine) process(ctx context.Context, j job) {
	out := e.store.Sink(j.id)

	e.store.SetStatus(j.id, StatusInProgress)
	fmt.Fprintln(out, "Starting playlist generation...")
	fmt.Fprintf(out, "Received job: prompt=%q, length=%d, name=%q\n", j.req.Prompt, j.req.Length, j.req.Name)
	e.logger.Info("job started", "job_id", j.id)

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(out, "An error occurred: %v\n", r)
			e.store.SetStatus(j.id, StatusError)
			e.logger.Error("job panicked", "job_id", j.id, "panic", r)
		}
	}()

	result, err := e.run(ctx, j.req, out)
	if err != nil {
		fmt.Fprintf(out, "An error occurred: %v\n", err)
		e.store.SetStatus(j.id, StatusError)
		e.logger.Error("job failed", "job_id", j.id, "error", err)
		return
	}

	fmt.Fprintln(out, result)
	e.store.SetStatus(j.id, StatusComplete)
	e.logger.Info("job complete", "job_id", j.id)
}
