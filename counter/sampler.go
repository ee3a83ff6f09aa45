// Package counter detects completed cycles of a free-running hardware counter
// from its numeric sequence alone. Simulated timers do not always assert
// their update flag when the count rolls through zero, so cycle detection
// cannot rely on it: a wrap is instead inferred when the count decreases
// between two consecutive samples and the earlier sample was already past the
// midpoint of the configured range.
//
// The heuristic holds only if samples are taken often enough that the counter
// cannot complete more than one full cycle between them. That is a caller
// obligation; an undersampled counter undercounts silently.
package counter

import "fmt"

// A Sampler watches one free-running counter with a fixed reload ceiling.
type Sampler struct {
	ceiling uint32
	prev    uint32
	primed  bool
}

// MakeSampler creates a sampler for a counter that wraps back to zero after
// reaching ceiling. A ceiling below 2 leaves no upper half to detect wraps
// from and is rejected.
func MakeSampler(ceiling uint32) (Sampler, error) {
	if ceiling < 2 {
		return Sampler{}, fmt.Errorf(
			"counter ceiling must be at least 2, got %d", ceiling)
	}

	return Sampler{ceiling: ceiling}, nil
}

// Ceiling returns the reload value the sampler was configured with.
func (s *Sampler) Ceiling() uint32 {
	return s.ceiling
}

// Observe feeds the next sample and reports whether the counter completed a
// cycle since the previous one. The first observation only primes the sampler
// and never reports a wrap.
func (s *Sampler) Observe(current uint32) bool {
	if !s.primed {
		s.prev = current
		s.primed = true

		return false
	}

	wrapped := current < s.prev && s.prev > s.ceiling/2
	s.prev = current

	return wrapped
}

// A CycleCounter accumulates completed cycles over a stream of samples.
type CycleCounter struct {
	sampler Sampler
	cycles  uint64
}

// MakeCycleCounter creates a cycle counter for the given ceiling.
func MakeCycleCounter(ceiling uint32) (CycleCounter, error) {
	s, err := MakeSampler(ceiling)
	if err != nil {
		return CycleCounter{}, err
	}

	return CycleCounter{sampler: s}, nil
}

// Observe feeds the next sample and returns the total number of completed
// cycles so far.
func (c *CycleCounter) Observe(current uint32) uint64 {
	if c.sampler.Observe(current) {
		c.cycles++
	}

	return c.cycles
}

// Cycles returns the number of completed cycles observed so far.
func (c *CycleCounter) Cycles() uint64 {
	return c.cycles
}
