// Package irq models interrupt delivery and the discipline for sharing state
// between an interrupt handler and the main control flow.
//
// A Line stands in for one interrupt source. Devices pend it, a delivery
// goroutine runs the registered handler, and a mutex per line stands in for
// suspending the interrupt: while any context holds the line's critical
// section, the handler cannot run, so events pend and are delivered once the
// section is released, in order and without loss.
//
// Access to state shared with a handler is only possible through a
// CriticalSection token. Main-context code obtains one with Line.Free;
// handlers receive one because delivery already holds the line. There is no
// way to reach shared state without the token, which rules out the
// unsynchronized read racing an interrupt-context write.
package irq

import (
	"log"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// A Handler is invoked in interrupt context when its line fires. The critical
// section it receives proves the line is suspended for the duration of the
// call; it must be used for every access to state shared with the main flow.
type Handler func(cs *CriticalSection)

// A CriticalSection witnesses that one interrupt line is suspended. It cannot
// be constructed outside this package and must not outlive the scope it was
// handed to.
type CriticalSection struct {
	line *Line
}

// Line returns the line the critical section suspends.
func (cs *CriticalSection) Line() *Line {
	return cs.line
}

// A Line is one interrupt source with a registered handler.
type Line struct {
	name    string
	handler Handler

	mu      sync.Mutex
	holder  atomic.Uint64
	pending atomic.Uint32
	enabled atomic.Bool
	fired   atomic.Uint64

	notify chan struct{}
}

func newLine(name string, handler Handler) *Line {
	if handler == nil {
		log.Panicf("line %s: handler must not be nil", name)
	}

	return &Line{
		name:    name,
		handler: handler,
		notify:  make(chan struct{}, 1),
	}
}

// Name returns the name of the line.
func (l *Line) Name() string {
	return l.name
}

// Enable unmasks the line. Events pended while the line was masked are
// delivered afterwards.
func (l *Line) Enable() {
	l.enabled.Store(true)
	l.wake()
}

// Disable masks the line. Pending events accumulate until Enable.
func (l *Line) Disable() {
	l.enabled.Store(false)
}

// Enabled tells if the line is unmasked.
func (l *Line) Enabled() bool {
	return l.enabled.Load()
}

// Pending returns the number of events waiting to be delivered.
func (l *Line) Pending() uint32 {
	return l.pending.Load()
}

// Fired returns the number of handler invocations completed so far.
func (l *Line) Fired() uint64 {
	return l.fired.Load()
}

// Free runs op with the line suspended, like a firmware interrupt-free
// section. The handler cannot run while op does, and the suspension is lifted
// on every exit path, including a panic inside op.
//
// Op must be short and must never wait on this line firing: the line cannot
// fire while suspended, so such a wait can never finish. Re-entering Free on
// the same line from inside op panics instead of deadlocking on the
// suspension it already holds.
func (l *Line) Free(op func(cs *CriticalSection)) {
	gid := goroutineID()
	if l.holder.Load() == gid {
		log.Panicf("line %s: free section re-entered from its own scope",
			l.name)
	}

	l.mu.Lock()
	l.holder.Store(gid)
	defer func() {
		l.holder.Store(0)
		l.mu.Unlock()
	}()

	op(&CriticalSection{line: l})
}

// goroutineID parses the current goroutine's ID out of the first stack trace
// line, "goroutine N [state]:". The runtime offers no API for it; the ID is
// only compared against itself to detect re-entry, never stored across
// goroutine lifetimes.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	s := strings.TrimPrefix(string(buf[:n]), "goroutine ")
	id, err := strconv.ParseUint(s[:strings.IndexByte(s, ' ')], 10, 64)
	if err != nil {
		log.Panicf("malformed stack header %q", string(buf[:n]))
	}

	return id
}

func (l *Line) wake() {
	select {
	case l.notify <- struct{}{}:
	default:
	}
}

// deliver loops until stop closes, invoking the handler once per pended
// event. The handler runs with the line's mutex held, so it is mutually
// exclusive with every Free section on this line.
func (l *Line) deliver(stop <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	gid := goroutineID()

	for {
		select {
		case <-stop:
			return
		case <-l.notify:
		}

		for l.pending.Load() > 0 {
			select {
			case <-stop:
				return
			default:
			}

			if !l.enabled.Load() {
				break
			}

			l.mu.Lock()
			l.holder.Store(gid)
			l.pending.Add(^uint32(0))
			l.handler(&CriticalSection{line: l})
			l.fired.Add(1)
			l.holder.Store(0)
			l.mu.Unlock()
		}
	}
}
