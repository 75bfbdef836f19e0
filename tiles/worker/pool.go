// Package worker bounds the number of concurrent tile fetches.
package worker

import "sync"

// Pool runs submitted tasks on a fixed set of workers. Submissions after
// Shutdown are dropped.
type Pool struct {
	tasks chan func()
	once  sync.Once
	quit  chan struct{}
	wg    sync.WaitGroup
}

// NewPool starts maxWorkers goroutines consuming the task queue.
func NewPool(maxWorkers int) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	p := &Pool{
		tasks: make(chan func(), 128),
		quit:  make(chan struct{}),
	}
	for i := 0; i < maxWorkers; i++ {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.quit:
			return
		case task := <-p.tasks:
			task()
		}
	}
}

// Submit queues a task, blocking if the queue is full and a worker has not
// freed up yet.
func (p *Pool) Submit(task func()) {
	select {
	case <-p.quit:
	case p.tasks <- task:
	}
}

// Shutdown stops the workers. Queued tasks that have not started are dropped.
func (p *Pool) Shutdown() {
	p.once.Do(func() { close(p.quit) })
	p.wg.Wait()
}
