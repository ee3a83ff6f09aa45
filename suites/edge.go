package suites

import (
	"time"

	"github.com/sarchlab/periphsim/board"
	"github.com/sarchlab/periphsim/dev/edge"
	"github.com/sarchlab/periphsim/harness"
	"github.com/sarchlab/periphsim/irq"
	"github.com/sarchlab/periphsim/poll"
)

const edgeBase = 0x4001_0400

// edgeState is everything the edge checks share with the interrupt handler.
type edgeState struct {
	total   irq.EdgeCounter
	cleared irq.EdgeCounter
	cell    *irq.Cell[*edge.Driver]
	button  *edge.Comp
}

// BuildEdge creates the external-interrupt suite on the board: a button
// device pends a line, the handler counts edges and clears the pending bit
// under the line's critical section, and the checks wait on the counter with
// a bounded poll. The board must not be started yet.
func BuildEdge(brd *board.Board, reporter harness.Reporter) *harness.Runner {
	s := &edgeState{}

	line := brd.Controller().CreateLine("EXTI0",
		func(cs *irq.CriticalSection) {
			s.total.Increment()

			d, ok := s.cell.Borrow(cs)
			if !ok {
				return
			}

			if (*d).Pending() {
				(*d).ClearPending()
				s.cleared.Increment()
			}
		})
	s.cell = irq.NewCell[*edge.Driver](line)

	button, driver := edge.MakeBuilder().
		WithName("Button").
		WithBase(edgeBase).
		WithBoard(brd).
		WithLine(line).
		Build()
	s.button = button

	line.Free(func(cs *irq.CriticalSection) {
		s.cell.Populate(cs, driver)
	})

	driver.EnableRising()
	driver.EnableFalling()
	line.Enable()

	runner := harness.NewRunner("EXTI", reporter)

	runner.AddCheck(harness.Check{
		Name: "Rising Edge",
		Run: func(r harness.Reporter) harness.Result {
			return s.waitForEdges(r, 1, func() { s.button.Press() })
		},
	})
	runner.AddCheck(harness.Check{
		Name: "Falling Edge",
		Run: func(r harness.Reporter) harness.Result {
			return s.waitForEdges(r, 1, func() { s.button.Release() })
		},
	})
	runner.AddCheck(harness.Check{
		Name: "Multiple Edges",
		Run: func(r harness.Reporter) harness.Result {
			return s.waitForEdges(r, 4, func() {
				for i := 0; i < 2; i++ {
					s.button.Press()
					time.Sleep(time.Millisecond)
					s.button.Release()
					time.Sleep(time.Millisecond)
				}
			})
		},
	})
	runner.AddCheck(harness.Check{
		Name: "Pending Cleared",
		Run:  s.pendingCleared,
	})

	return runner
}

// waitForEdges applies the stimulus and polls the interrupt counter until it
// advanced by want.
func (s *edgeState) waitForEdges(
	r harness.Reporter,
	want uint32,
	stimulus func(),
) harness.Result {
	before := s.total.Load()
	target := before + want

	go stimulus()

	outcome := poll.Until(func() bool {
		return s.total.Load() >= target
	}, poll.InputBudget)

	observed := s.total.Load()
	r.WriteString("Total interrupts: ")
	r.WriteHex8(uint8(observed))
	r.WriteString("\n")

	return harness.Result{
		Pass:     outcome.OK(),
		Observed: observed - before,
		Expected: want,
		Detail:   outcome.String(),
	}
}

// pendingCleared verifies the handler left no pending bit latched: every
// delivered interrupt cleared the bit inside the critical section.
func (s *edgeState) pendingCleared(r harness.Reporter) harness.Result {
	pendingClear := false
	s.cell.WithExclusiveAccess(func(d **edge.Driver) {
		pendingClear = !(*d).Pending()
	})

	cleared := s.cleared.Load()
	total := s.total.Load()

	r.WriteString("Cleared: ")
	r.WriteHex8(uint8(cleared))
	r.WriteString(" of ")
	r.WriteHex8(uint8(total))
	r.WriteString("\n")

	return harness.Result{
		Pass:     pendingClear && cleared > 0,
		Observed: cleared,
		Expected: total,
	}
}
