// Package registry provides a global registry for action policies.
// Policies register themselves in init() functions, allowing the runner,
// the viewer and the trainer bridge to instantiate them by name.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/maxogod/AI-Donkey-Kong/internal/agent"
	"github.com/maxogod/AI-Donkey-Kong/internal/core"
)

// ErrUnknownPolicy is returned by Create for unregistered IDs.
var ErrUnknownPolicy = errors.New("registry: unknown policy")

// Policy chooses one action pair per tick from the observation alone,
// the same contract an external trainer gets.
type Policy interface {
	// ID returns a unique identifier (e.g., "random", "climber").
	// Used for CLI flags and episode storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset prepares the policy for a new episode. The schema labels
	// each observation slot; seed drives any randomness.
	Reset(schema []string, seed int64)

	// Act picks the action for the next tick.
	Act(obs agent.Observation) core.ActionPair
}

// PolicyInfo contains metadata about a registered policy.
type PolicyInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a policy.
type Factory func() Policy

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a policy factory to the registry.
// Panics if a policy with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: policy %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered policies, sorted by ID.
func List() []PolicyInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PolicyInfo, 0, len(factories))
	for id := range factories {
		result = append(result, PolicyInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a new policy by its ID.
func Create(id string) (Policy, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPolicy, id)
	}
	return f(), nil
}

// Exists checks if a policy with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
