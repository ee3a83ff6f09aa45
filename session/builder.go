package session

import (
	"time"

	"github.com/rs/xid"

	"github.com/sarchlab/periphsim/board"
	"github.com/sarchlab/periphsim/datarecording"
	"github.com/sarchlab/periphsim/monitoring"
)

// Builder can be used to build a session.
type Builder struct {
	boardName      string
	tickInterval   time.Duration
	monitorOn      bool
	monitorPort    int
	outputFileName string
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		boardName: "STM32F3",
		monitorOn: true,
	}
}

// WithBoardName sets the name of the session's board.
func (b Builder) WithBoardName(name string) Builder {
	b.boardName = name
	return b
}

// WithTickInterval sets the wall-clock duration of one board clock tick.
func (b Builder) WithTickInterval(d time.Duration) Builder {
	b.tickInterval = d
	return b
}

// WithoutMonitoring sets the session to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}
}

// Build builds the session.
func (b Builder) Build() *Session {
	b.parametersMustBeValid()

	s := &Session{}
	s.id = xid.New().String()

	s.board = board.MakeBuilder().
		WithName(b.boardName).
		WithTickInterval(b.tickInterval).
		Build()

	outputPath := b.outputFileName
	if outputPath == "" {
		outputPath = "periphsim_run_" + s.id
	}
	s.dataRecorder = datarecording.New(outputPath)
	s.sink = datarecording.NewCheckSink(s.dataRecorder)

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		s.monitor.RegisterBoard(s.board)
		s.monitor.StartServer()
	}

	return s
}
