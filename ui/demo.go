package ui

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DemoDelay is the artificial work time of each demo task.
const DemoDelay = 50 * time.Millisecond

// DemoState is the lifecycle of the one-shot threading demo.
type DemoState int

const (
	DemoNotRun DemoState = iota
	DemoRunning
	DemoDone
)

func (s DemoState) String() string {
	switch s {
	case DemoNotRun:
		return "not-run"
	case DemoRunning:
		return "running"
	case DemoDone:
		return "done"
	}
	return fmt.Sprintf("DemoState(%d)", int(s))
}

// ThreadingResult is the output of the demo run. It is written once.
type ThreadingResult struct {
	Log           []string
	ElapsedMillis float64
}

// ElapsedLine formats the recorded run time.
func (r ThreadingResult) ElapsedLine() string {
	return fmt.Sprintf("Elapsed: %.3f ms", r.ElapsedMillis)
}

type demoTask struct {
	input int
	run   func(int) string
}

var demoTasks = []demoTask{
	{input: 10, run: func(n int) string { return fmt.Sprintf("Thread 1 cubed: %d", n*n*n) }},
	{input: 5, run: func(n int) string { return fmt.Sprintf("Thread 2 squared: %d", n*n) }},
}

// DemoRunner runs the two demo tasks concurrently the first time a result is
// asked for and serves the cached result afterwards, including its timing.
type DemoRunner struct {
	mu     sync.Mutex
	state  DemoState
	done   chan struct{}
	result ThreadingResult

	now   func() time.Time
	sleep func(time.Duration)
	delay time.Duration
}

func NewDemoRunner() *DemoRunner {
	return &DemoRunner{now: time.Now, sleep: time.Sleep, delay: DemoDelay}
}

func (d *DemoRunner) State() DemoState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Result blocks until the demo has run once and returns its result. Callers
// arriving while a run is in flight wait for that run.
func (d *DemoRunner) Result() ThreadingResult {
	d.mu.Lock()
	switch d.state {
	case DemoDone:
		r := d.result
		d.mu.Unlock()
		return r
	case DemoRunning:
		done := d.done
		d.mu.Unlock()
		<-done
		d.mu.Lock()
		defer d.mu.Unlock()
		return d.result
	}
	d.state = DemoRunning
	d.done = make(chan struct{})
	d.mu.Unlock()

	r := d.run()

	d.mu.Lock()
	d.result = r
	d.state = DemoDone
	close(d.done)
	d.mu.Unlock()
	return r
}

func (d *DemoRunner) run() ThreadingResult {
	log := make([]string, len(demoTasks))
	start := d.now()

	var g errgroup.Group
	for i, task := range demoTasks {
		i, task := i, task
		g.Go(func() error {
			d.sleep(d.delay)
			log[i] = task.run(task.input)
			return nil
		})
	}
	_ = g.Wait() // tasks never fail

	elapsed := d.now().Sub(start)
	return ThreadingResult{
		Log:           log,
		ElapsedMillis: float64(elapsed.Microseconds()) / 1000,
	}
}
