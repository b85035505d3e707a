package dispatch

import (
	"sync"

	"go.uber.org/zap"
)

// Loop is a single-consumer task queue. All mutations to shared in-memory
// state (the room cache, in particular) run on the loop goroutine; async
// store completions post into it instead of touching state from their own
// goroutines. Tasks run in posting order.
type Loop struct {
	tasks  chan func()
	quit   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
	logger *zap.Logger
}

func NewLoop(logger *zap.Logger) *Loop {
	return &Loop{
		tasks:  make(chan func(), 256),
		quit:   make(chan struct{}),
		logger: logger,
	}
}

// Start launches the consumer goroutine.
func (l *Loop) Start() {
	l.wg.Add(1)
	go l.run()
}

func (l *Loop) run() {
	defer l.wg.Done()
	for {
		select {
		case fn := <-l.tasks:
			l.invoke(fn)
		case <-l.quit:
			// drain whatever was queued before Stop
			for {
				select {
				case fn := <-l.tasks:
					l.invoke(fn)
				default:
					return
				}
			}
		}
	}
}

func (l *Loop) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("dispatch task panicked", zap.Any("panic", r))
		}
	}()
	fn()
}

// Post enqueues fn. It is dropped if the loop has been stopped.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.quit:
	case l.tasks <- fn:
	}
}

// PostWait enqueues fn and blocks until it has run. Must not be called from
// the loop goroutine itself.
func (l *Loop) PostWait(fn func()) {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
	case <-l.quit:
	}
}

// Stop drains queued tasks and stops the consumer. Safe to call more than once.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.quit) })
	l.wg.Wait()
}
