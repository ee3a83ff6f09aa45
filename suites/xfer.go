package suites

import (
	"github.com/sarchlab/periphsim/board"
	"github.com/sarchlab/periphsim/dev/xfer"
	"github.com/sarchlab/periphsim/harness"
	"github.com/sarchlab/periphsim/poll"
)

const (
	xferBase       = 0x4002_0000
	xferBackupBase = 0x4002_0400
	xferCount      = 16
)

// BuildXfer creates the block-transfer suite on the board: one channel with
// a completion flag and one that only exposes completion through the
// remaining count. Both are judged with the same policy: complete means the
// flag is set or the count reached zero. The board must not be started yet.
func BuildXfer(brd *board.Board, reporter harness.Reporter) *harness.Runner {
	_, dma1 := xfer.MakeBuilder().
		WithName("DMA1").
		WithBase(xferBase).
		WithBoard(brd).
		Build()

	_, dma2 := xfer.MakeBuilder().
		WithName("DMA2").
		WithBase(xferBackupBase).
		WithBoard(brd).
		WithUnreliableCompleteFlag().
		Build()

	runner := harness.NewRunner("DMA", reporter)

	runner.AddCheck(harness.Check{
		Name: "Transfer Complete",
		Run:  func(r harness.Reporter) harness.Result { return xferComplete(dma1, r) },
	})
	runner.AddCheck(harness.Check{
		Name: "Remaining Zero",
		Run:  func(r harness.Reporter) harness.Result { return xferRemainingZero(dma1, r) },
	})
	runner.AddCheck(harness.Check{
		Name: "Flagless Transfer",
		Run:  func(r harness.Reporter) harness.Result { return xferComplete(dma2, r) },
	})

	return runner
}

// xferComplete runs one transfer and waits for completion under the
// harmonized policy.
func xferComplete(drv *xfer.Driver, r harness.Reporter) harness.Result {
	drv.Disable()
	drv.Setup(xferCount)
	drv.Enable()

	outcome := poll.Until(drv.Complete, poll.DMABudget)

	r.WriteString("Remaining after wait: ")
	r.WriteHex16(uint16(drv.Remaining()))
	r.WriteString("\n")

	return harness.Result{
		Pass:     outcome.OK(),
		Observed: drv.Remaining(),
		Expected: 0,
		Detail:   outcome.String(),
	}
}

// xferRemainingZero verifies the count register drained completely on the
// previous transfer.
func xferRemainingZero(drv *xfer.Driver, r harness.Reporter) harness.Result {
	remaining := drv.Remaining()

	r.WriteString("NDTR after transfer: ")
	r.WriteHex16(uint16(remaining))
	r.WriteString("\n")

	return harness.Result{
		Pass:     remaining == 0,
		Observed: remaining,
		Expected: 0,
	}
}
