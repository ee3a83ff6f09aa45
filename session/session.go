// Package session assembles a board, its check suites, recording, and
// monitoring into one runnable unit.
package session

import (
	"io"

	"github.com/sarchlab/periphsim/board"
	"github.com/sarchlab/periphsim/datarecording"
	"github.com/sarchlab/periphsim/harness"
	"github.com/sarchlab/periphsim/monitoring"
	"github.com/sarchlab/periphsim/serial"
	"github.com/sarchlab/periphsim/suites"
)

// A Session owns everything one run needs: the board, the recorder the check
// outcomes land in, the optional monitor, and the suite runners.
type Session struct {
	id string

	board        *board.Board
	dataRecorder datarecording.DataRecorder
	sink         *datarecording.CheckSink
	monitor      *monitoring.Monitor

	runners []*harness.Runner
}

// ID returns the unique ID of the session.
func (s *Session) ID() string {
	return s.id
}

// Board returns the board the session drives.
func (s *Session) Board() *board.Board {
	return s.board
}

// DataRecorder returns the recorder check outcomes are persisted into.
func (s *Session) DataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// Monitor returns the monitor, or nil when monitoring is disabled.
func (s *Session) Monitor() *monitoring.Monitor {
	return s.monitor
}

// AddSuite wires a suite's devices onto the board and registers its runner.
// Suites must be added before Run, while the board clock is still stopped.
func (s *Session) AddSuite(build suites.BuildFunc, out io.Writer) *harness.Runner {
	runner := build(s.board, serial.NewWriter(out))
	runner.AddSink(s.sink)

	if s.monitor != nil {
		s.monitor.RegisterRunner(runner)
	}

	s.runners = append(s.runners, runner)

	return runner
}

// Run starts the board, executes every registered suite in order, and stops
// the board again. It reports whether all checks of all suites passed.
func (s *Session) Run() bool {
	s.board.Start()
	defer s.board.Stop()

	allPassed := true
	for _, r := range s.runners {
		summary := r.Run()
		if !summary.AllPassed() {
			allPassed = false
		}
	}

	return allPassed
}

// Terminate flushes and closes the session's recorder.
func (s *Session) Terminate() {
	s.dataRecorder.Close()
}
