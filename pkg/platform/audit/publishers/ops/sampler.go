package ops

import (
	"math/rand"
	"sync"
)

// Sampler decides which operations events are kept. Report lookups can be
// frequent, so they are sampled down while rarer actions keep the default.
type Sampler struct {
	mu          sync.RWMutex
	defaultRate float64
	rates       map[string]float64
	random      func() float64
}

// NewSampler creates a sampler keeping defaultRate of events, clamped to [0, 1].
func NewSampler(defaultRate float64) *Sampler {
	return &Sampler{
		defaultRate: clamp(defaultRate),
		rates:       make(map[string]float64),
		random:      rand.Float64,
	}
}

// Keep reports whether an event for action should be recorded. Rates of 0
// and 1 are exact.
func (s *Sampler) Keep(action string) bool {
	rate := s.rateFor(action)
	switch {
	case rate >= 1:
		return true
	case rate <= 0:
		return false
	}
	return s.random() < rate
}

// SetRate overrides the rate for one action.
func (s *Sampler) SetRate(action string, rate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[action] = clamp(rate)
}

func (s *Sampler) rateFor(action string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rate, ok := s.rates[action]; ok {
		return rate
	}
	return s.defaultRate
}

func clamp(rate float64) float64 {
	return min(max(rate, 0), 1)
}
