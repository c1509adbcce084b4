package agent

import (
	"testing"

	"github.com/maxogod/AI-Donkey-Kong/internal/core"
)

func TestEpsilonExplorerZeroIsIdentity(t *testing.T) {
	e := NewEpsilonExplorer(0, 1)
	a := core.Act(1, 3)
	for i := 0; i < 50; i++ {
		if got := e.Decorate(a); got != a {
			t.Fatalf("Decorate() = %v, expected %v", got, a)
		}
	}
}

func TestEpsilonExplorerDeterministic(t *testing.T) {
	a, b := NewEpsilonExplorer(1, 42), NewEpsilonExplorer(1, 42)
	for i := 0; i < 100; i++ {
		x, y := a.Decorate(core.Noop), b.Decorate(core.Noop)
		if x != y {
			t.Fatalf("step %d: %v != %v", i, x, y)
		}
		if !x.Horizontal.Valid() || !x.Vertical.Valid() {
			t.Fatalf("step %d: invalid action %v", i, x)
		}
	}
}

func TestActionDecoratorFunc(t *testing.T) {
	d := ActionDecoratorFunc(func(core.ActionPair) core.ActionPair {
		return core.Act(2, 1)
	})
	if got := d.Decorate(core.Noop); got != core.Act(2, 1) {
		t.Errorf("Decorate() = %v, expected %v", got, core.Act(2, 1))
	}
}
