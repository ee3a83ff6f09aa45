package irq

import "log"

// A Cell holds a value shared between the main flow and the handler of one
// interrupt line, typically the control handle of the peripheral the handler
// services. The value is reachable only under the line's critical section, so
// a handler can never observe a half-written update from the main flow or the
// other way around.
//
// The slot starts empty, is populated exactly once during setup, and is never
// repopulated.
type Cell[T any] struct {
	line      *Line
	populated bool
	value     T
}

// NewCell creates an empty cell tied to the given line.
func NewCell[T any](line *Line) *Cell[T] {
	if line == nil {
		log.Panic("a cell must be tied to a line")
	}

	return &Cell[T]{line: line}
}

// Line returns the line whose critical section guards the cell.
func (c *Cell[T]) Line() *Line {
	return c.line
}

// Populate stores the value into the empty slot. It requires the critical
// section of the cell's own line and panics on a second call.
func (c *Cell[T]) Populate(cs *CriticalSection, v T) {
	c.mustMatch(cs)

	if c.populated {
		log.Panic("cell already populated")
	}

	c.value = v
	c.populated = true
}

// Borrow returns the value in the slot, or false if the slot is still empty.
// The returned pointer must not be retained past the critical section.
func (c *Cell[T]) Borrow(cs *CriticalSection) (*T, bool) {
	c.mustMatch(cs)

	if !c.populated {
		return nil, false
	}

	return &c.value, true
}

// WithExclusiveAccess suspends the cell's line, hands the value to op, and
// resumes delivery when op returns, on every exit path. It reports whether
// the slot was populated; op does not run on an empty slot.
//
// Handlers already run inside the critical section and must use Borrow with
// the section they were given instead. Nesting WithExclusiveAccess inside op,
// or calling it from the line's own handler, panics rather than deadlocking
// on the suspension that scope already holds.
func (c *Cell[T]) WithExclusiveAccess(op func(v *T)) bool {
	ran := false

	c.line.Free(func(cs *CriticalSection) {
		v, ok := c.Borrow(cs)
		if !ok {
			return
		}

		op(v)
		ran = true
	})

	return ran
}

func (c *Cell[T]) mustMatch(cs *CriticalSection) {
	if cs == nil || cs.line != c.line {
		log.Panic("cell accessed with a critical section of a different line")
	}
}
