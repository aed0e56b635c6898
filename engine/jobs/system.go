package jobs

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/vivace/engine/containers"
	"github.com/spaghettifunk/vivace/engine/core"
)

var ErrNoWorkers = fmt.Errorf("attempting to create job system with less than 1 worker")
var ErrNegativeQueueSize = fmt.Errorf("attempting to create job system with a queue size of less than 1")
var ErrShuttingDown = fmt.Errorf("job system is shutting down")

type System struct {
	numWorkers int

	mu     sync.Mutex
	cond   *sync.Cond
	closed bool
	// One pending queue per priority, drained high to low.
	pending [PriorityHigh + 1]*containers.RingQueue[Job]

	wg sync.WaitGroup
}

func NewSystem(numWorkers int, queueSize int) (*System, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if queueSize <= 0 {
		return nil, ErrNegativeQueueSize
	}

	js := &System{
		numWorkers: numWorkers,
	}
	js.cond = sync.NewCond(&js.mu)
	for p := PriorityLow; p <= PriorityHigh; p++ {
		js.pending[p] = containers.NewRingQueue[Job](queueSize)
	}

	js.start()

	return js, nil
}

func (js *System) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go js.worker()
	}
}

func (js *System) worker() {
	defer js.wg.Done()
	for {
		js.mu.Lock()
		for js.pendingEmpty() && !js.closed {
			js.cond.Wait()
		}
		if js.pendingEmpty() && js.closed {
			js.mu.Unlock()
			return
		}
		job := js.pop()
		js.mu.Unlock()

		js.run(job)
	}
}

// Callers hold js.mu.
func (js *System) pendingEmpty() bool {
	for p := PriorityHigh; p >= PriorityLow; p-- {
		if !js.pending[p].IsEmpty() {
			return false
		}
	}
	return true
}

// Callers hold js.mu and have checked pendingEmpty.
func (js *System) pop() Job {
	for p := PriorityHigh; p > PriorityLow; p-- {
		if job, err := js.pending[p].Dequeue(); err == nil {
			return job
		}
	}
	job, _ := js.pending[PriorityLow].Dequeue()
	return job
}

func (js *System) run(job Job) {
	clock := core.NewClock()
	clock.Start()
	err := job.EntryPoint()
	clock.Update()
	core.MetricsRecordJob(clock.Elapsed(), err != nil)

	if err != nil {
		if job.OnFail != nil {
			job.OnFail(err)
		} else {
			// Failures without an error callback are swallowed on purpose;
			// the log line is the only trace they leave.
			core.LogError("job %s failed: %s", job.ID, err.Error())
		}
		return
	}
	if job.OnSuccess != nil {
		job.OnSuccess()
	}
}

/**
 * @brief Submits the provided job to be queued for execution.
 * Never blocks; returns an error when the system is shutting down or the
 * priority's queue is full.
 */
func (js *System) Submit(job Job) error {
	js.mu.Lock()
	defer js.mu.Unlock()
	if js.closed {
		return ErrShuttingDown
	}
	if job.Priority < PriorityLow || job.Priority > PriorityHigh {
		job.Priority = PriorityNormal
	}
	if err := js.pending[job.Priority].Enqueue(job); err != nil {
		return err
	}
	js.cond.Signal()
	return nil
}

/**
 * @brief Shuts the job system down. Already-queued jobs are drained first.
 */
func (js *System) Shutdown() error {
	js.mu.Lock()
	js.closed = true
	js.cond.Broadcast()
	js.mu.Unlock()

	js.wg.Wait()
	return nil
}
