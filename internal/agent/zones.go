package agent

import "github.com/maxogod/AI-Donkey-Kong/internal/config"

// ZoneRecord is the ledger entry of one checkpoint zone.
type ZoneRecord struct {
	Name    string
	Visited bool
	Bonus   float64 // Fixed at configuration time
}

// ZoneLedger tracks checkpoint visitation for one agent.
// Zones keep their configured order.
type ZoneLedger struct {
	schedule []config.ZoneConfig
	records  []ZoneRecord
	index    map[string]int
	base     float64
	reenter  float64
	rearm    bool
}

// NewZoneLedger creates a ledger from the configured zone schedule.
func NewZoneLedger(zones []config.ZoneConfig, rewards config.RewardConfig, rearm bool) *ZoneLedger {
	l := &ZoneLedger{
		schedule: append([]config.ZoneConfig(nil), zones...),
		index:    make(map[string]int, len(zones)),
		base:     rewards.BaseZoneReward,
		reenter:  rewards.ReenterPenalty,
		rearm:    rearm,
	}
	for i, z := range l.schedule {
		l.index[z.Name] = i
	}
	l.Reset()
	return l
}

// Reset marks every zone unvisited and restores the static bonus schedule.
func (l *ZoneLedger) Reset() {
	l.records = make([]ZoneRecord, len(l.schedule))
	for i, z := range l.schedule {
		l.records[i] = ZoneRecord{Name: z.Name, Bonus: z.Bonus}
	}
}

// OnZoneTrigger applies a trigger entry and returns the reward it earns.
// Unknown names return ok=false and no reward.
func (l *ZoneLedger) OnZoneTrigger(name string) (reward float64, ok bool) {
	i, ok := l.index[name]
	if !ok {
		return 0, false
	}
	rec := &l.records[i]
	if !rec.Visited {
		rec.Visited = true
		return l.base + rec.Bonus, true
	}
	if l.rearm {
		rec.Visited = false
	}
	return l.reenter - rec.Bonus, true
}

// Visited reports whether the named zone has been visited this episode.
func (l *ZoneLedger) Visited(name string) bool {
	i, ok := l.index[name]
	return ok && l.records[i].Visited
}

// Known reports whether name is a configured checkpoint zone.
func (l *ZoneLedger) Known(name string) bool {
	_, ok := l.index[name]
	return ok
}

// VisitedCount returns how many zones are currently marked visited.
func (l *ZoneLedger) VisitedCount() int {
	n := 0
	for _, r := range l.records {
		if r.Visited {
			n++
		}
	}
	return n
}

// Records returns a copy of the ledger in checkpoint order.
func (l *ZoneLedger) Records() []ZoneRecord {
	return append([]ZoneRecord(nil), l.records...)
}
