package edge_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/periphsim/board"
	"github.com/sarchlab/periphsim/dev/edge"
	"github.com/sarchlab/periphsim/irq"
)

var _ = Describe("Edge source", func() {
	var (
		brd     *board.Board
		line    *irq.Line
		counter irq.EdgeCounter
		cell    *irq.Cell[*edge.Driver]
		driver  *edge.Driver
		button  *edge.Comp
	)

	BeforeEach(func() {
		brd = board.MakeBuilder().
			WithName("TestBoard").
			WithManualClock().
			Build()

		counter = irq.EdgeCounter{}
		cell = nil

		line = brd.Controller().CreateLine("EXTI0", func(cs *irq.CriticalSection) {
			counter.Increment()

			d, ok := cell.Borrow(cs)
			if !ok {
				return
			}
			(*d).ClearPending()
		})
		cell = irq.NewCell[*edge.Driver](line)

		button, driver = edge.MakeBuilder().
			WithName("Button").
			WithBase(0x4001_0400).
			WithBoard(brd).
			WithLine(line).
			Build()

		line.Free(func(cs *irq.CriticalSection) {
			cell.Populate(cs, driver)
		})

		line.Enable()
		brd.Start()
	})

	AfterEach(func() {
		brd.Stop()
	})

	It("should fire on a rising edge and clear the pending bit", func() {
		driver.EnableRising()

		button.Press()

		Eventually(counter.Load).Should(Equal(uint32(1)))
		Eventually(driver.Pending).Should(BeFalse())
	})

	It("should not fire on an edge that is not enabled", func() {
		driver.EnableRising()

		button.Press()
		Eventually(counter.Load).Should(Equal(uint32(1)))

		// Falling triggers were never enabled.
		button.Release()
		Consistently(counter.Load).Should(Equal(uint32(1)))
	})

	It("should count both edges when both triggers are enabled", func() {
		driver.EnableRising()
		driver.EnableFalling()

		for i := 0; i < 3; i++ {
			button.Press()
			button.Release()
		}

		Eventually(counter.Load).Should(Equal(uint32(6)))
	})

	It("should ignore a press while already pressed", func() {
		driver.EnableRising()

		button.Press()
		button.Press()

		Eventually(counter.Load).Should(Equal(uint32(1)))
		Consistently(counter.Load).Should(Equal(uint32(1)))
	})
})
