package env

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/maxogod/AI-Donkey-Kong/internal/agent"
	"github.com/maxogod/AI-Donkey-Kong/internal/arena"
	"github.com/maxogod/AI-Donkey-Kong/internal/config"
	"github.com/maxogod/AI-Donkey-Kong/internal/core"
	"github.com/maxogod/AI-Donkey-Kong/internal/policy"
)

func newEnv(t *testing.T, mutate func(*config.AgentConfig), opts ...Option) *Env {
	t.Helper()
	cfg := config.DefaultAgentConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	rt := core.DefaultConfig()
	rt.Seed = 42
	opts = append([]Option{WithLogger(log.New(&bytes.Buffer{}))}, opts...)
	e, err := New(cfg, rt, opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e
}

func TestResetStartsFreshEpisode(t *testing.T) {
	e := newEnv(t, nil)

	obs := e.Reset()
	if len(obs) != e.ObservationSize() {
		t.Errorf("len(obs) = %d, expected %d", len(obs), e.ObservationSize())
	}
	first := e.EpisodeID()
	if _, err := uuid.Parse(first); err != nil {
		t.Errorf("EpisodeID() = %q, not a UUID: %v", first, err)
	}

	e.Reset()
	if e.EpisodeID() == first {
		t.Errorf("EpisodeID() repeated across resets")
	}
	if e.Done() {
		t.Errorf("Done() = true right after Reset")
	}
}

func TestTimeoutSummary(t *testing.T) {
	e := newEnv(t, func(c *config.AgentConfig) { c.Episode.MaxTicks = 50 })

	sum, err := RunEpisode(context.Background(), e, policy.Idle{}, nil)
	if err != nil {
		t.Fatalf("RunEpisode() failed: %v", err)
	}
	if sum.Outcome != agent.OutcomeTimeout || sum.Ticks != 50 {
		t.Errorf("summary = %+v, expected timeout after 50 ticks", sum)
	}
	if episodes, wins := e.Episodes(); episodes != 1 || wins != 0 {
		t.Errorf("Episodes() = %d, %d, expected 1, 0", episodes, wins)
	}

	after := e.Step(core.Act(1, 1))
	if !after.Terminal || after.Reward != 0 {
		t.Errorf("Step() after done = %+v, expected terminal with zero reward", after)
	}
}

func TestClimberReachesFirstZone(t *testing.T) {
	e := newEnv(t, func(c *config.AgentConfig) { c.Episode.MaxTicks = 300 })

	var ticks int
	sum, err := RunEpisode(context.Background(), e, policy.NewClimber(), func(Tick) { ticks++ })
	if err != nil {
		t.Fatalf("RunEpisode() failed: %v", err)
	}
	if sum.ZonesVisited < 1 {
		t.Errorf("ZonesVisited = %d, expected at least 1", sum.ZonesVisited)
	}
	if ticks != sum.Ticks {
		t.Errorf("onTick called %d times, expected %d", ticks, sum.Ticks)
	}
}

func TestEpisodesAreDeterministic(t *testing.T) {
	run := func() Summary {
		e := newEnv(t, func(c *config.AgentConfig) { c.Episode.MaxTicks = 400 }, WithExploration(0.2))
		sum, err := RunEpisode(context.Background(), e, policy.NewRandom(), nil)
		if err != nil {
			t.Fatalf("RunEpisode() failed: %v", err)
		}
		sum.EpisodeID = ""
		return sum
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("summaries differ:\n%+v\n%+v", a, b)
	}
}

func TestCurriculumAdvancesWithEpisodes(t *testing.T) {
	e := newEnv(t, func(c *config.AgentConfig) {
		c.Episode.MaxTicks = 5
		c.Arena.Difficulty.Progression.MaxAt = 2
	})

	for i := 0; i < 2; i++ {
		if _, err := RunEpisode(context.Background(), e, policy.Idle{}, nil); err != nil {
			t.Fatal(err)
		}
	}
	e.Reset()
	if got := e.Summary().Difficulty; math.Abs(got-1) > 1e-9 {
		t.Errorf("Difficulty = %v, expected 1", got)
	}
}

func TestRunEpisodeHonorsContext(t *testing.T) {
	e := newEnv(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := RunEpisode(ctx, e, policy.Idle{}, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("RunEpisode() error = %v, expected context.Canceled", err)
	}
}

func TestTeleportToWarpPoint(t *testing.T) {
	e := newEnv(t, nil)
	e.Reset()
	warp := e.Config().Arena.DebugWarp

	e.Teleport(core.V(warp.X, warp.Y))
	res := e.Step(core.Noop)
	if res.Terminal {
		t.Fatalf("warp ended the episode: %s", res.Cause)
	}
	pos := e.Agent().State().Position
	if math.Abs(pos.X-warp.X) > 0.1 || math.Abs(pos.Y-warp.Y) > 0.1 {
		t.Errorf("position = %v, expected near (%v, %v)", pos, warp.X, warp.Y)
	}
}

func TestRenderDrawsArena(t *testing.T) {
	e := newEnv(t, nil)
	e.Reset()
	dst := core.NewScreen(40, 20)
	e.Render(dst)
	if !strings.ContainsRune(dst.String(), arena.PlayerChar) {
		t.Errorf("render missing the player:\n%s", dst.String())
	}
}

func TestSummaryAndTickConversions(t *testing.T) {
	e := newEnv(t, func(c *config.AgentConfig) { c.Episode.MaxTicks = 10 })

	var last Tick
	sum, err := RunEpisode(context.Background(), e, policy.Idle{}, func(tk Tick) { last = tk })
	if err != nil {
		t.Fatal(err)
	}

	ep := sum.Episode("idle")
	if ep.EpisodeID != sum.EpisodeID || ep.Policy != "idle" || ep.Outcome != "timeout" || ep.Ticks != 10 {
		t.Errorf("Episode() = %+v", ep)
	}

	rec := last.Record()
	if rec.EpisodeID != sum.EpisodeID || rec.Tick != 10 || !rec.Terminal || rec.Phase != last.Phase.String() {
		t.Errorf("Record() = %+v", rec)
	}
}
