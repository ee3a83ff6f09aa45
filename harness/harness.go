// Package harness sequences pass/fail checks against simulated hardware and
// reports the outcome as text. The harness is deliberately linear: a check
// that fails never aborts the checks after it, and the only state carried
// across checks is the pair of pass/fail counters.
package harness

import (
	"sync/atomic"

	"github.com/rs/xid"
)

// A Reporter accepts report text fragments and hex-rendered values. The
// reporter owns formatting concerns such as line-ending translation; the
// harness only supplies content.
type Reporter interface {
	WriteString(s string)
	WriteHex8(v uint8)
	WriteHex16(v uint16)
	WriteHex32(v uint32)
}

// A Result is the outcome of one check.
type Result struct {
	Pass     bool
	Observed uint32
	Expected uint32
	Detail   string
}

// A Check arranges hardware state, waits or samples, and compares what it
// observed against what it expected. Checks write intermediate output through
// the reporter they are handed.
type Check struct {
	Name string
	Run  func(r Reporter) Result
}

// A Record is the persisted form of one check outcome.
type Record struct {
	RunID     string
	Seq       int
	Suite     string
	CheckName string
	Pass      bool
	Observed  uint32
	Expected  uint32
	Detail    string
}

// A ResultSink receives check records as they complete.
type ResultSink interface {
	RecordCheck(rec Record)
}

// A Summary is the final tally of a run.
type Summary struct {
	Passed int
	Failed int
}

// AllPassed tells if no check failed.
func (s Summary) AllPassed() bool {
	return s.Failed == 0
}

// A Runner executes a named sequence of checks.
type Runner struct {
	name     string
	id       string
	reporter Reporter
	checks   []Check
	sinks    []ResultSink

	passed  atomic.Int32
	failed  atomic.Int32
	current atomic.Int32
}

// NewRunner creates a runner that reports through the given reporter.
func NewRunner(name string, reporter Reporter) *Runner {
	return &Runner{
		name:     name,
		id:       xid.New().String(),
		reporter: reporter,
	}
}

// Name returns the name of the suite the runner executes.
func (r *Runner) Name() string {
	return r.name
}

// ID returns the unique ID of this run.
func (r *Runner) ID() string {
	return r.id
}

// AddCheck appends a check to the sequence.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// AddSink registers a sink that receives each check record.
func (r *Runner) AddSink(s ResultSink) {
	r.sinks = append(r.sinks, s)
}

// NumChecks returns the number of registered checks.
func (r *Runner) NumChecks() int {
	return len(r.checks)
}

// Passed returns the number of checks passed so far. Safe to call while the
// runner is running.
func (r *Runner) Passed() int {
	return int(r.passed.Load())
}

// Failed returns the number of checks failed so far. Safe to call while the
// runner is running.
func (r *Runner) Failed() int {
	return int(r.failed.Load())
}

// Current returns the number of checks completed so far. Safe to call while
// the runner is running.
func (r *Runner) Current() int {
	return int(r.current.Load())
}

// Run executes every check in order and returns the tally. Checks run even if
// earlier ones failed; only the summary communicates overall success.
func (r *Runner) Run() Summary {
	r.reporter.WriteString(r.name + " Peripheral Test\n")

	for i, c := range r.checks {
		r.runOne(i, c)
	}

	summary := Summary{Passed: r.Passed(), Failed: r.Failed()}
	r.writeSummary(summary)

	return summary
}

func (r *Runner) runOne(seq int, c Check) {
	r.reporter.WriteString("\n--- " + c.Name + " ---\n")

	result := c.Run(r.reporter)

	if result.Pass {
		r.passed.Add(1)
		r.reporter.WriteString(c.Name + ": PASS\n")
	} else {
		r.failed.Add(1)
		r.reporter.WriteString(c.Name + ": FAIL\n")
	}

	r.current.Add(1)

	rec := Record{
		RunID:     r.id,
		Seq:       seq,
		Suite:     r.name,
		CheckName: c.Name,
		Pass:      result.Pass,
		Observed:  result.Observed,
		Expected:  result.Expected,
		Detail:    result.Detail,
	}
	for _, s := range r.sinks {
		s.RecordCheck(rec)
	}
}

func (r *Runner) writeSummary(s Summary) {
	r.reporter.WriteString("\n=== Test Summary ===\n")

	r.reporter.WriteString("Tests passed: ")
	r.reporter.WriteHex8(uint8(s.Passed))
	r.reporter.WriteString("\n")

	r.reporter.WriteString("Tests failed: ")
	r.reporter.WriteHex8(uint8(s.Failed))
	r.reporter.WriteString("\n")

	if s.AllPassed() {
		r.reporter.WriteString(r.name + " TEST PASSED\n")
	} else {
		r.reporter.WriteString(r.name + " TEST FAILED\n")
	}
}
