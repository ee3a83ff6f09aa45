// Package suites assembles the ready-made peripheral check suites. Each
// builder wires its devices onto a board and returns a harness runner whose
// checks poll, sample, and count interrupts exactly the way the firmware
// tests did.
package suites

import (
	"github.com/sarchlab/periphsim/board"
	"github.com/sarchlab/periphsim/counter"
	"github.com/sarchlab/periphsim/dev/freerun"
	"github.com/sarchlab/periphsim/harness"
	"github.com/sarchlab/periphsim/poll"
)

const (
	timerBase        = 0x4000_0000
	timerBackupBase  = 0x4000_0400
	timerReload      = 999
	timerWrapsWanted = 3
)

// BuildTimer creates the timer suite on the board: one counter without a
// trustworthy update flag, exercised through wraparound sampling, and one
// with the flag, exercised through plain polling. The board must not be
// started yet.
func BuildTimer(brd *board.Board, reporter harness.Reporter) *harness.Runner {
	_, tim2 := freerun.MakeBuilder().
		WithName("TIM2").
		WithBase(timerBase).
		WithBoard(brd).
		WithUnreliableUpdateFlag().
		Build()

	_, tim3 := freerun.MakeBuilder().
		WithName("TIM3").
		WithBase(timerBackupBase).
		WithBoard(brd).
		Build()

	runner := harness.NewRunner("Timer", reporter)

	runner.AddCheck(harness.Check{
		Name: "Countdown Wrap",
		Run:  func(r harness.Reporter) harness.Result { return timerCountdown(tim2, r) },
	})
	runner.AddCheck(harness.Check{
		Name: "Update Flag",
		Run:  func(r harness.Reporter) harness.Result { return timerUpdateFlag(tim3, r) },
	})
	runner.AddCheck(harness.Check{
		Name: "Periodic Wrap Count",
		Run:  func(r harness.Reporter) harness.Result { return timerPeriodic(tim2, r) },
	})

	return runner
}

// timerCountdown waits for one full cycle of a counter whose update flag
// never fires, so the wrap has to be read off the count sequence.
func timerCountdown(drv *freerun.Driver, r harness.Reporter) harness.Result {
	drv.Stop()
	drv.Configure(0, timerReload)
	drv.Start()

	sampler, err := counter.MakeSampler(timerReload)
	if err != nil {
		return harness.Result{Pass: false, Detail: err.Error()}
	}

	outcome := poll.Until(func() bool {
		return sampler.Observe(drv.Count()) || drv.UpdateFlagSet()
	}, poll.ExtendedBudget)

	r.WriteString("Count after wait: ")
	r.WriteHex32(drv.Count())
	r.WriteString("\n")

	return harness.Result{
		Pass:     outcome.OK(),
		Observed: drv.Count(),
		Expected: 0,
		Detail:   outcome.String(),
	}
}

// timerUpdateFlag waits for the update flag of a counter that reliably sets
// it on wrap.
func timerUpdateFlag(drv *freerun.Driver, r harness.Reporter) harness.Result {
	drv.Stop()
	drv.Configure(0, timerReload)
	drv.Start()

	outcome := poll.Until(drv.UpdateFlagSet, poll.ExtendedBudget)

	r.WriteString("Status after wait: ")
	if drv.UpdateFlagSet() {
		r.WriteString("UIF set\n")
	} else {
		r.WriteString("UIF clear\n")
	}

	drv.ClearUpdateFlag()

	return harness.Result{
		Pass:   outcome.OK(),
		Detail: outcome.String(),
	}
}

// timerPeriodic counts several complete cycles through the sampler and
// checks none are missed or double counted.
func timerPeriodic(drv *freerun.Driver, r harness.Reporter) harness.Result {
	drv.Stop()
	drv.Configure(0, timerReload)
	drv.Start()

	cycles, err := counter.MakeCycleCounter(timerReload)
	if err != nil {
		return harness.Result{Pass: false, Detail: err.Error()}
	}

	outcome := poll.Until(func() bool {
		return cycles.Observe(drv.Count()) >= timerWrapsWanted
	}, poll.ExtendedBudget)

	r.WriteString("Cycles counted: ")
	r.WriteHex8(uint8(cycles.Cycles()))
	r.WriteString("\n")

	return harness.Result{
		Pass:     outcome.OK() && cycles.Cycles() == timerWrapsWanted,
		Observed: uint32(cycles.Cycles()),
		Expected: timerWrapsWanted,
		Detail:   outcome.String(),
	}
}
