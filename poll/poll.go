// Package poll provides the bounded busy-wait primitive firmware-style checks
// use to wait on hardware status flags. There is no scheduler to yield to in
// the model this package serves, so a wait is a counted retry loop: it either
// sees the condition become true or runs out of budget. Running out of budget
// is an outcome, not an error.
package poll

import (
	"log"
	"runtime"
)

// Outcome is the result of a bounded wait.
type Outcome int

const (
	// OutcomeTimeout means the budget was exhausted before the condition
	// became true.
	OutcomeTimeout Outcome = iota

	// OutcomeSuccess means the condition became true within the budget.
	OutcomeSuccess
)

// OK tells if the outcome is a success.
func (o Outcome) OK() bool {
	return o == OutcomeSuccess
}

func (o Outcome) String() string {
	if o == OutcomeSuccess {
		return "success"
	}

	return "timeout"
}

// Retry budgets matching the ones the firmware tests were tuned with. They
// count retries, not wall-clock time; callers pick the constant that matches
// the peripheral being waited on.
const (
	InitBudget     = 10_000
	DMABudget      = 100_000
	ExtendedBudget = 500_000
	InputBudget    = 500_000
	TimerBudget    = 100_000_000
)

// Until evaluates cond until it is true or the budget is exhausted. A budget
// of B performs at most B+1 evaluations, so a budget of 0 still evaluates the
// condition exactly once. A negative budget panics.
//
// Between evaluations the poller briefly yields the processor. The condition
// must be a plain read of hardware state with no side effects.
func Until(cond func() bool, budget int) Outcome {
	return MakePoller().WithBudget(budget).Poll(cond)
}

// A Poller runs bounded busy-waits with a configured budget and
// inter-evaluation delay.
type Poller struct {
	budget int
	delay  func()
}

// MakePoller creates a poller with a zero budget and the default delay.
func MakePoller() Poller {
	return Poller{
		delay: runtime.Gosched,
	}
}

// WithBudget sets the retry budget.
func (p Poller) WithBudget(budget int) Poller {
	p.budget = budget
	return p
}

// WithDelay replaces the delay executed between evaluations. Tests use this
// to advance simulated hardware deterministically.
func (p Poller) WithDelay(delay func()) Poller {
	p.delay = delay
	return p
}

// Poll evaluates cond until it is true or the budget is exhausted.
func (p Poller) Poll(cond func() bool) Outcome {
	if p.budget < 0 {
		log.Panicf("poll budget must not be negative, got %d", p.budget)
	}

	for i := 0; ; i++ {
		if cond() {
			return OutcomeSuccess
		}

		if i == p.budget {
			return OutcomeTimeout
		}

		p.delay()
	}
}
