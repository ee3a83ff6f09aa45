package xfer_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/periphsim/board"
	"github.com/sarchlab/periphsim/dev/xfer"
)

var _ = Describe("Transfer channel", func() {
	var brd *board.Board

	BeforeEach(func() {
		brd = board.MakeBuilder().
			WithName("TestBoard").
			WithManualClock().
			Build()
	})

	It("should count the remaining items down to zero", func() {
		_, driver := xfer.MakeBuilder().
			WithName("DMA1").
			WithBase(0x4002_0000).
			WithBoard(brd).
			Build()

		driver.Setup(16)
		driver.Enable()

		brd.Step(10)
		Expect(driver.Remaining()).To(Equal(uint32(6)))
		Expect(driver.Complete()).To(BeFalse())

		brd.Step(6)
		Expect(driver.Remaining()).To(Equal(uint32(0)))
		Expect(driver.CompleteFlagSet()).To(BeTrue())
		Expect(driver.Complete()).To(BeTrue())
	})

	It("should move several items per tick when configured to", func() {
		_, driver := xfer.MakeBuilder().
			WithName("DMA1").
			WithBase(0x4002_0000).
			WithBoard(brd).
			WithItemsPerTick(7).
			Build()

		driver.Setup(16)
		driver.Enable()

		brd.Step(2)
		Expect(driver.Remaining()).To(Equal(uint32(2)))

		brd.Step(1)
		Expect(driver.Remaining()).To(Equal(uint32(0)))
		Expect(driver.Complete()).To(BeTrue())
	})

	It("should not move items while disabled", func() {
		_, driver := xfer.MakeBuilder().
			WithName("DMA1").
			WithBase(0x4002_0000).
			WithBoard(brd).
			Build()

		driver.Setup(16)
		brd.Step(10)

		Expect(driver.Remaining()).To(Equal(uint32(16)))

		driver.Enable()
		brd.Step(3)
		driver.Disable()
		brd.Step(10)

		Expect(driver.Remaining()).To(Equal(uint32(13)))
	})

	It("should report completion by count alone without the flag", func() {
		_, driver := xfer.MakeBuilder().
			WithName("DMA2").
			WithBase(0x4002_0400).
			WithBoard(brd).
			WithUnreliableCompleteFlag().
			Build()

		driver.Setup(4)
		driver.Enable()
		brd.Step(4)

		Expect(driver.CompleteFlagSet()).To(BeFalse())
		Expect(driver.Remaining()).To(Equal(uint32(0)))
		Expect(driver.Complete()).To(BeTrue())
	})

	It("should reject a zero transfer rate", func() {
		Expect(func() {
			xfer.MakeBuilder().WithItemsPerTick(0)
		}).To(Panic())
	})
})
