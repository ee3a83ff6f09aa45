package suites

import (
	"fmt"
	"sort"

	"github.com/sarchlab/periphsim/board"
	"github.com/sarchlab/periphsim/harness"
)

// A BuildFunc wires a suite's devices onto a not-yet-started board and
// returns the runner for its checks.
type BuildFunc func(brd *board.Board, reporter harness.Reporter) *harness.Runner

var registry = map[string]BuildFunc{
	"timer": BuildTimer,
	"exti":  BuildEdge,
	"dma":   BuildXfer,
}

// Names lists the available suite names in stable order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Lookup returns the builder for a suite name.
func Lookup(name string) (BuildFunc, error) {
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown suite %q, available: %v",
			name, Names())
	}

	return build, nil
}
