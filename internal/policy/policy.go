// Package policy provides the built-in scripted action policies.
// Each policy registers itself with the registry in init().
package policy

import (
	"github.com/maxogod/AI-Donkey-Kong/internal/agent"
)

// slots resolves observation labels to indices.
type slots map[string]int

func newSlots(schema []string) slots {
	s := make(slots, len(schema))
	for i, label := range schema {
		s[label] = i
	}
	return s
}

// get returns the value for label, or fallback when the label is absent.
func (s slots) get(obs agent.Observation, label string, fallback float64) float64 {
	i, ok := s[label]
	if !ok || i >= len(obs) {
		return fallback
	}
	return obs[i]
}
