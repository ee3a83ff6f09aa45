package poll

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Poller", func() {
	noDelay := func() {}

	It("should evaluate at most budget+1 times before timing out", func() {
		evaluations := 0
		neverTrue := func() bool {
			evaluations++
			return false
		}

		outcome := MakePoller().
			WithBudget(10).
			WithDelay(noDelay).
			Poll(neverTrue)

		Expect(outcome).To(Equal(OutcomeTimeout))
		Expect(outcome.OK()).To(BeFalse())
		Expect(evaluations).To(Equal(11))
	})

	It("should evaluate exactly once with a zero budget", func() {
		evaluations := 0
		delays := 0
		neverTrue := func() bool {
			evaluations++
			return false
		}

		outcome := MakePoller().
			WithBudget(0).
			WithDelay(func() { delays++ }).
			Poll(neverTrue)

		Expect(outcome).To(Equal(OutcomeTimeout))
		Expect(evaluations).To(Equal(1))
		Expect(delays).To(Equal(0))
	})

	It("should return success after one evaluation if already true", func() {
		evaluations := 0
		alwaysTrue := func() bool {
			evaluations++
			return true
		}

		outcome := MakePoller().
			WithBudget(1_000_000).
			WithDelay(noDelay).
			Poll(alwaysTrue)

		Expect(outcome).To(Equal(OutcomeSuccess))
		Expect(outcome.OK()).To(BeTrue())
		Expect(evaluations).To(Equal(1))
	})

	It("should succeed when the condition turns true mid-wait", func() {
		evaluations := 0
		trueOnThird := func() bool {
			evaluations++
			return evaluations == 3
		}

		outcome := MakePoller().
			WithBudget(10).
			WithDelay(noDelay).
			Poll(trueOnThird)

		Expect(outcome).To(Equal(OutcomeSuccess))
		Expect(evaluations).To(Equal(3))
	})

	It("should run the delay between evaluations but not after the last", func() {
		delays := 0

		MakePoller().
			WithBudget(4).
			WithDelay(func() { delays++ }).
			Poll(func() bool { return false })

		Expect(delays).To(Equal(4))
	})

	It("should panic on a negative budget", func() {
		Expect(func() {
			MakePoller().WithBudget(-1).Poll(func() bool { return true })
		}).To(Panic())
	})

	It("should report outcomes as text", func() {
		Expect(OutcomeSuccess.String()).To(Equal("success"))
		Expect(OutcomeTimeout.String()).To(Equal("timeout"))
	})
})

var _ = Describe("Until", func() {
	It("should wait with the default delay", func() {
		count := 0
		outcome := Until(func() bool {
			count++
			return count > 2
		}, 5)

		Expect(outcome).To(Equal(OutcomeSuccess))
	})
})
