package irq

import (
	"log"
	"sync"
)

// A Controller owns a set of interrupt lines and the goroutines that deliver
// their events. It plays the role the NVIC plays on a microcontroller:
// devices pend lines through it, and it dispatches handlers asynchronously
// with respect to the main flow.
type Controller struct {
	mu      sync.Mutex
	lines   map[string]*Line
	stop    chan struct{}
	wg      sync.WaitGroup
	started bool
}

// NewController creates a controller with no lines.
func NewController() *Controller {
	return &Controller{
		lines: make(map[string]*Line),
		stop:  make(chan struct{}),
	}
}

// CreateLine registers an interrupt line with its handler. Lines must be
// created before the controller starts. Names must be unique.
func (c *Controller) CreateLine(name string, handler Handler) *Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		log.Panicf("cannot create line %s after the controller started", name)
	}

	if _, ok := c.lines[name]; ok {
		log.Panicf("line %s already exists", name)
	}

	l := newLine(name, handler)
	c.lines[name] = l

	return l
}

// Line returns the line with the given name, or nil.
func (c *Controller) Line(name string) *Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lines[name]
}

// Pend records one event on the line. If the line is enabled and not
// suspended, the handler runs soon after; otherwise the event waits.
func (c *Controller) Pend(l *Line) {
	l.pending.Add(1)
	l.wake()
}

// Start launches one delivery goroutine per line.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		log.Panic("controller already started")
	}
	c.started = true

	for _, l := range c.lines {
		c.wg.Add(1)
		go l.deliver(c.stop, &c.wg)
	}
}

// Stop terminates delivery and waits for in-flight handlers to finish.
// Events still pending are discarded.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return
	}

	close(c.stop)
	c.wg.Wait()

	c.started = false
	c.stop = make(chan struct{})
}
