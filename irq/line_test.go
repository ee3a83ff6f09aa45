package irq

import (
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Line", func() {
	var (
		controller *Controller
		counter    EdgeCounter
	)

	BeforeEach(func() {
		controller = NewController()
		counter = EdgeCounter{}
	})

	AfterEach(func() {
		controller.Stop()
	})

	It("should deliver every pended event to the handler", func() {
		line := controller.CreateLine("EXTI0", func(_ *CriticalSection) {
			counter.Increment()
		})
		line.Enable()
		controller.Start()

		for i := 0; i < 100; i++ {
			controller.Pend(line)
		}

		Eventually(counter.Load).Should(Equal(uint32(100)))
		Eventually(line.Pending).Should(Equal(uint32(0)))
		Eventually(line.Fired).Should(Equal(uint64(100)))
	})

	It("should hold events while the line is masked", func() {
		line := controller.CreateLine("EXTI1", func(_ *CriticalSection) {
			counter.Increment()
		})
		controller.Start()

		controller.Pend(line)
		controller.Pend(line)

		Consistently(counter.Load).Should(Equal(uint32(0)))
		Expect(line.Pending()).To(Equal(uint32(2)))

		line.Enable()

		Eventually(counter.Load).Should(Equal(uint32(2)))
	})

	It("should not lose events pended during a free section", func() {
		line := controller.CreateLine("EXTI2", func(_ *CriticalSection) {
			counter.Increment()
		})
		line.Enable()
		controller.Start()

		var observedDuringFree uint32
		line.Free(func(_ *CriticalSection) {
			controller.Pend(line)
			controller.Pend(line)
			controller.Pend(line)

			// The handler cannot run while this section is open.
			observedDuringFree = counter.Load()
		})

		Expect(observedDuringFree).To(Equal(uint32(0)))
		Eventually(counter.Load).Should(Equal(uint32(3)))
	})

	It("should resume delivery after a panic inside a free section", func() {
		line := controller.CreateLine("EXTI3", func(_ *CriticalSection) {
			counter.Increment()
		})
		line.Enable()
		controller.Start()

		Expect(func() {
			line.Free(func(_ *CriticalSection) {
				panic("check failed")
			})
		}).To(Panic())

		controller.Pend(line)

		Eventually(counter.Load).Should(Equal(uint32(1)))
	})

	It("should panic instead of deadlocking on a re-entered free section", func() {
		line := controller.CreateLine("EXTI6", func(_ *CriticalSection) {})

		Expect(func() {
			line.Free(func(_ *CriticalSection) {
				line.Free(func(_ *CriticalSection) {})
			})
		}).To(Panic())
	})

	It("should release the suspension after a rejected re-entry", func() {
		line := controller.CreateLine("EXTI7", func(_ *CriticalSection) {
			counter.Increment()
		})
		line.Enable()
		controller.Start()

		Expect(func() {
			line.Free(func(_ *CriticalSection) {
				line.Free(func(_ *CriticalSection) {})
			})
		}).To(Panic())

		controller.Pend(line)

		Eventually(counter.Load).Should(Equal(uint32(1)))
	})

	It("should reject duplicate line names", func() {
		handler := func(_ *CriticalSection) {}
		controller.CreateLine("EXTI4", handler)

		Expect(func() {
			controller.CreateLine("EXTI4", handler)
		}).To(Panic())
	})

	It("should reject a nil handler", func() {
		Expect(func() {
			controller.CreateLine("EXTI5", nil)
		}).To(Panic())
	})
})

var _ = Describe("EdgeCounter", func() {
	It("should not lose concurrent increments", func() {
		controller := NewController()
		defer controller.Stop()

		counter := EdgeCounter{}
		line := controller.CreateLine("EXTI0", func(_ *CriticalSection) {
			counter.Increment()
		})
		line.Enable()
		controller.Start()

		const n = 10_000
		var reads atomic.Uint32
		done := make(chan struct{})

		go func() {
			defer close(done)
			for i := 0; i < n; i++ {
				controller.Pend(line)
				reads.Store(counter.Load())
			}
		}()

		<-done
		Eventually(counter.Load).Should(Equal(uint32(n)))
	})
})
