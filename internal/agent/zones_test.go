package agent

import (
	"testing"

	"github.com/maxogod/AI-Donkey-Kong/internal/config"
)

func TestZoneLedgerFirstVisitAndRevisit(t *testing.T) {
	cfg := config.DefaultAgentConfig()
	l := NewZoneLedger(cfg.Zones, cfg.Rewards, false)

	for _, z := range cfg.Zones {
		r, ok := l.OnZoneTrigger(z.Name)
		if !ok {
			t.Fatalf("OnZoneTrigger(%q) ok = false", z.Name)
		}
		if expected := cfg.Rewards.BaseZoneReward + z.Bonus; !approx(r, expected) {
			t.Errorf("first visit %s = %v, expected %v", z.Name, r, expected)
		}
	}

	prev := 0.0
	for i, z := range cfg.Zones {
		r, _ := l.OnZoneTrigger(z.Name)
		if expected := cfg.Rewards.ReenterPenalty - z.Bonus; !approx(r, expected) {
			t.Errorf("revisit %s = %v, expected %v", z.Name, r, expected)
		}
		if i > 0 && r >= prev {
			t.Errorf("revisit %s = %v, expected less than %v", z.Name, r, prev)
		}
		prev = r
	}
}

func TestZoneLedgerUnknownZone(t *testing.T) {
	cfg := config.DefaultAgentConfig()
	l := NewZoneLedger(cfg.Zones, cfg.Rewards, false)

	r, ok := l.OnZoneTrigger("Nowhere")
	if ok || r != 0 {
		t.Errorf("OnZoneTrigger(unknown) = (%v, %v), expected (0, false)", r, ok)
	}
	if l.VisitedCount() != 0 {
		t.Errorf("VisitedCount() = %d, expected 0", l.VisitedCount())
	}
}

func TestZoneLedgerRearm(t *testing.T) {
	cfg := config.DefaultAgentConfig()

	tests := []struct {
		name  string
		rearm bool
		third float64
	}{
		{"sticky", false, cfg.Rewards.ReenterPenalty - 0.1},
		{"rearm", true, cfg.Rewards.BaseZoneReward + 0.1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := NewZoneLedger(cfg.Zones, cfg.Rewards, tc.rearm)
			l.OnZoneTrigger("Zone3")
			l.OnZoneTrigger("Zone3")
			if got := l.Visited("Zone3"); got == tc.rearm {
				t.Errorf("Visited after revisit = %v, expected %v", got, !tc.rearm)
			}
			r, _ := l.OnZoneTrigger("Zone3")
			if !approx(r, tc.third) {
				t.Errorf("third trigger = %v, expected %v", r, tc.third)
			}
		})
	}
}

func TestZoneLedgerReset(t *testing.T) {
	cfg := config.DefaultAgentConfig()
	l := NewZoneLedger(cfg.Zones, cfg.Rewards, false)
	l.OnZoneTrigger("Zone1")
	l.OnZoneTrigger("Zone4")
	l.Reset()

	for i, rec := range l.Records() {
		if rec.Visited {
			t.Errorf("Records()[%d].Visited = true after Reset", i)
		}
		if rec.Bonus != cfg.Zones[i].Bonus {
			t.Errorf("Records()[%d].Bonus = %v, expected %v", i, rec.Bonus, cfg.Zones[i].Bonus)
		}
	}
}
