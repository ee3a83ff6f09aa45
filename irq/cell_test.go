package irq

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakePeriph struct {
	a, b, c, d uint64
}

var _ = Describe("Cell", func() {
	var (
		controller *Controller
		line       *Line
		cell       *Cell[fakePeriph]
	)

	BeforeEach(func() {
		controller = NewController()
	})

	AfterEach(func() {
		controller.Stop()
	})

	It("should skip access on an empty slot", func() {
		line = controller.CreateLine("EXTI0", func(_ *CriticalSection) {})
		cell = NewCell[fakePeriph](line)

		ran := cell.WithExclusiveAccess(func(_ *fakePeriph) {
			Fail("op must not run on an empty slot")
		})

		Expect(ran).To(BeFalse())
	})

	It("should populate exactly once", func() {
		line = controller.CreateLine("EXTI0", func(_ *CriticalSection) {})
		cell = NewCell[fakePeriph](line)

		line.Free(func(cs *CriticalSection) {
			cell.Populate(cs, fakePeriph{a: 1})
		})

		Expect(func() {
			line.Free(func(cs *CriticalSection) {
				cell.Populate(cs, fakePeriph{a: 2})
			})
		}).To(Panic())

		ran := cell.WithExclusiveAccess(func(p *fakePeriph) {
			Expect(p.a).To(Equal(uint64(1)))
		})
		Expect(ran).To(BeTrue())
	})

	It("should panic instead of deadlocking on nested exclusive access", func() {
		line = controller.CreateLine("EXTI0", func(_ *CriticalSection) {})
		cell = NewCell[fakePeriph](line)

		line.Free(func(cs *CriticalSection) {
			cell.Populate(cs, fakePeriph{a: 1})
		})

		Expect(func() {
			cell.WithExclusiveAccess(func(_ *fakePeriph) {
				cell.WithExclusiveAccess(func(_ *fakePeriph) {})
			})
		}).To(Panic())

		// The slot stays reachable once the rejected nesting unwound.
		ran := cell.WithExclusiveAccess(func(p *fakePeriph) {
			Expect(p.a).To(Equal(uint64(1)))
		})
		Expect(ran).To(BeTrue())
	})

	It("should reject a critical section of another line", func() {
		line = controller.CreateLine("EXTI0", func(_ *CriticalSection) {})
		other := controller.CreateLine("EXTI1", func(_ *CriticalSection) {})
		cell = NewCell[fakePeriph](line)

		Expect(func() {
			other.Free(func(cs *CriticalSection) {
				cell.Populate(cs, fakePeriph{})
			})
		}).To(Panic())
	})

	It("should never expose a torn value to the handler", func() {
		// The handler flips every field of the shared struct on each
		// delivery. The main flow reads under exclusive access while
		// deliveries race against it. A mixed-field observation would mean
		// the mutual exclusion is broken.
		var cellForHandler *Cell[fakePeriph]

		line = controller.CreateLine("EXTI0", func(cs *CriticalSection) {
			p, ok := cellForHandler.Borrow(cs)
			if !ok {
				return
			}

			next := p.a + 1
			p.a, p.b, p.c, p.d = next, next, next, next
		})
		cell = NewCell[fakePeriph](line)
		cellForHandler = cell

		line.Enable()
		controller.Start()

		line.Free(func(cs *CriticalSection) {
			cell.Populate(cs, fakePeriph{})
		})

		for i := 0; i < 2_000; i++ {
			controller.Pend(line)

			cell.WithExclusiveAccess(func(p *fakePeriph) {
				Expect(p.b).To(Equal(p.a))
				Expect(p.c).To(Equal(p.a))
				Expect(p.d).To(Equal(p.a))
			})
		}

		Eventually(line.Fired).Should(Equal(uint64(2_000)))

		cell.WithExclusiveAccess(func(p *fakePeriph) {
			Expect(p.a).To(Equal(uint64(2_000)))
		})
	})
})
