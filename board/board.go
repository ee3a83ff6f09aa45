// Package board hosts simulated devices behind one address space and one
// interrupt controller, and drives them with a shared clock. It plays the
// role the simulator plays for real firmware: the harness only ever sees
// registers changing and interrupts firing.
package board

import (
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sarchlab/periphsim/hw"
	"github.com/sarchlab/periphsim/irq"
)

// A Device is a piece of simulated hardware that advances on board clock
// ticks.
type Device interface {
	Name() string
	Tick()
}

// A Board owns the address space, the interrupt controller, and the clock
// that ticks every attached device.
type Board struct {
	name         string
	space        *hw.Space
	controller   *irq.Controller
	tickInterval time.Duration
	manualClock  bool

	mu      sync.Mutex
	devices []Device
	started bool

	pauseLock    sync.Mutex
	isPaused     bool
	isPausedLock sync.Mutex

	stop  chan struct{}
	wg    sync.WaitGroup
	ticks atomic.Uint64
}

// Name returns the name of the board.
func (b *Board) Name() string {
	return b.name
}

// Space returns the board's address space.
func (b *Board) Space() *hw.Space {
	return b.space
}

// Controller returns the board's interrupt controller.
func (b *Board) Controller() *irq.Controller {
	return b.controller
}

// Ticks returns the number of clock ticks elapsed since Start.
func (b *Board) Ticks() uint64 {
	return b.ticks.Load()
}

// AttachDevice adds a device to the clock distribution. Devices must attach
// before the board starts.
func (b *Board) AttachDevice(d Device) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		log.Panicf("cannot attach device %s after the board started", d.Name())
	}

	b.devices = append(b.devices, d)
}

// MapView maps the program-side view of a device's register file into the
// board's address space.
func (b *Board) MapView(view *hw.OwnedRegs) {
	b.space.Map(view)
}

// Devices returns the attached devices.
func (b *Board) Devices() []Device {
	b.mu.Lock()
	defer b.mu.Unlock()

	devices := make([]Device, len(b.devices))
	copy(devices, b.devices)

	return devices
}

// DeviceByName returns the attached device with the given name, or nil.
func (b *Board) DeviceByName(name string) Device {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, d := range b.devices {
		if d.Name() == name {
			return d
		}
	}

	return nil
}

// Start launches interrupt delivery and, unless the board uses a manual
// clock, the clock goroutine.
func (b *Board) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		log.Panic("board already started")
	}
	b.started = true

	b.controller.Start()

	if !b.manualClock {
		b.wg.Add(1)
		go b.clockLoop()
	}
}

// Stop halts the clock and interrupt delivery. A paused board must be
// continued before it can stop.
func (b *Board) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started {
		return
	}

	close(b.stop)
	b.wg.Wait()
	b.controller.Stop()

	b.started = false
	b.stop = make(chan struct{})
}

// Pause suspends the clock until Continue is called.
func (b *Board) Pause() {
	b.isPausedLock.Lock()
	defer b.isPausedLock.Unlock()

	if b.isPaused {
		return
	}

	b.pauseLock.Lock()
	b.isPaused = true
}

// Continue resumes a paused clock.
func (b *Board) Continue() {
	b.isPausedLock.Lock()
	defer b.isPausedLock.Unlock()

	if !b.isPaused {
		return
	}

	b.pauseLock.Unlock()
	b.isPaused = false
}

// Step advances the clock by n ticks. Only boards built with a manual clock
// can be stepped.
func (b *Board) Step(n int) {
	if !b.manualClock {
		log.Panic("only a manual-clock board can be stepped")
	}

	for i := 0; i < n; i++ {
		b.tickDevices()
	}
}

func (b *Board) clockLoop() {
	defer b.wg.Done()

	for {
		select {
		case <-b.stop:
			return
		default:
		}

		b.pauseLock.Lock()
		b.tickDevices()
		b.pauseLock.Unlock()

		if b.tickInterval > 0 {
			time.Sleep(b.tickInterval)
		} else {
			runtime.Gosched()
		}
	}
}

func (b *Board) tickDevices() {
	for _, d := range b.devices {
		d.Tick()
	}

	b.ticks.Add(1)
}
