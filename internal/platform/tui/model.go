package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/maxogod/AI-Donkey-Kong/internal/agent"
	"github.com/maxogod/AI-Donkey-Kong/internal/core"
	"github.com/maxogod/AI-Donkey-Kong/internal/env"
	"github.com/maxogod/AI-Donkey-Kong/internal/registry"
	"github.com/maxogod/AI-Donkey-Kong/internal/storage"
)

const (
	// holdTicks keeps a horizontal key press active between key repeats.
	holdTicks = 8
	// restartTicks is the pause after an episode ends under a policy.
	restartTicks = 90
	// chromeRows are the status and help lines below the arena.
	chromeRows = 2
)

// ManualPolicy is the policy name stored for manually played episodes.
const ManualPolicy = "manual"

// Model is the Bubble Tea model that runs one environment.
type Model struct {
	env    *env.Env
	policy registry.Policy // nil when only manual control is available
	store  *storage.Store
	logger *log.Logger
	config core.RuntimeConfig
	screen *core.Screen
	keys   KeyMap
	help   help.Model

	manual    bool
	pending   core.ActionPair
	hold      int
	obs       agent.Observation
	last      env.StepResult
	paused    bool
	quitting  bool
	saved     bool
	restartIn int
}

// NewModel creates a viewer. With a nil policy the agent is driven by the
// keyboard; otherwise the policy plays and tab toggles manual control.
func NewModel(e *env.Env, p registry.Policy, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "tui", Level: log.WarnLevel})
	}
	h := help.New()
	h.ShowAll = false

	return Model{
		env:    e,
		policy: p,
		store:  store,
		logger: logger,
		config: cfg,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-chromeRows, 1)),
		keys:   DefaultKeyMap(),
		help:   h,
		manual: p == nil,
	}
}

// Init starts the first episode and the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(func() tea.Msg { return restartMsg{} }, tickCmd(m.config.TickRate))
}

type restartMsg struct{}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-chromeRows, 1))
		m.help.Width = msg.Width
		return m, nil

	case restartMsg:
		m.restart()
		return m, nil

	case TickMsg:
		m.tick()
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		return m, nil
	case key.Matches(msg, m.keys.Restart):
		m.restart()
		return m, nil
	case key.Matches(msg, m.keys.Control):
		if m.policy != nil {
			m.manual = !m.manual
			m.pending = core.Noop
			m.hold = 0
		}
		return m, nil
	}

	if !m.manual {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		m.pending.Horizontal = core.HorizontalLeft
		m.hold = holdTicks
	case key.Matches(msg, m.keys.Right):
		m.pending.Horizontal = core.HorizontalRight
		m.hold = holdTicks
	case key.Matches(msg, m.keys.Jump):
		m.pending.Vertical = core.VerticalJump
	case key.Matches(msg, m.keys.Up):
		m.pending.Vertical = core.VerticalClimbUp
	case key.Matches(msg, m.keys.Down):
		m.pending.Vertical = core.VerticalClimbDown
	case key.Matches(msg, m.keys.Warp):
		warp := m.env.Config().Arena.DebugWarp
		m.env.Teleport(core.V(warp.X, warp.Y))
	}
	return m, nil
}

// restart begins a new episode.
func (m *Model) restart() {
	m.obs = m.env.Reset()
	if m.policy != nil {
		m.policy.Reset(m.env.Schema(), m.env.Summary().Seed)
	}
	m.last = env.StepResult{}
	m.pending = core.Noop
	m.hold = 0
	m.saved = false
	m.restartIn = 0
}

// tick advances the environment once.
func (m *Model) tick() {
	if m.paused {
		return
	}

	if m.env.Done() {
		// Manual episodes wait for an explicit restart.
		if m.restartIn > 0 && !m.manual {
			m.restartIn--
			if m.restartIn == 0 {
				m.restart()
			}
		}
		return
	}

	action := m.pending
	if !m.manual {
		action = m.policy.Act(m.obs)
	}

	m.last = m.env.Step(action)
	m.obs = m.last.Observation

	m.pending.Vertical = core.VerticalStill
	if m.hold > 0 {
		m.hold--
	}
	if m.hold == 0 {
		m.pending.Horizontal = core.HorizontalStill
	}

	if m.last.Terminal {
		m.saveEpisode()
		m.restartIn = restartTicks
	}
}

// saveEpisode records the finished episode once.
func (m *Model) saveEpisode() {
	if m.saved || m.store == nil {
		return
	}
	m.saved = true

	name := ManualPolicy
	if m.policy != nil && !m.manual {
		name = m.policy.ID()
	}
	if _, err := m.store.SaveEpisode(m.env.Summary().Episode(name)); err != nil {
		m.logger.Warn("cannot save episode", "error", err)
	}
}

// saveScreenshot saves the current arena to a text file.
func (m *Model) saveScreenshot() {
	m.env.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".kong", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("episode_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, the episode continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// status describes the episode in one line.
func (m Model) status() string {
	sum := m.env.Summary()
	zones := m.env.Agent().Zones()
	episodes, wins := m.env.Episodes()

	control := ManualPolicy
	if !m.manual {
		control = m.policy.ID()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, " %s | ep %d (%d won) | tick %d | reward %+.3f | zones %d/%d | %s",
		control, episodes, wins, sum.Ticks, sum.Reward, sum.ZonesVisited, len(zones), m.env.Agent().Phase())
	if m.paused {
		sb.WriteString(" | paused")
	}
	line := statusStyle.Render(sb.String())

	if m.env.Done() && sum.Outcome != agent.OutcomeNone {
		text := fmt.Sprintf(" %s: %s", strings.ToUpper(sum.Outcome.String()), sum.Cause)
		switch sum.Outcome {
		case agent.OutcomeWin:
			line += winStyle.Render(text)
		case agent.OutcomeDeath:
			line += deathStyle.Render(text)
		default:
			line += timeoutStyle.Render(text)
		}
	}
	return line
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.env.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.status() + "\n" + m.help.View(m.keys)
}

// Manual reports whether the keyboard is driving the agent.
func (m Model) Manual() bool { return m.manual }

// Run starts the Bubble Tea program for the environment.
func Run(e *env.Env, p registry.Policy, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(e, p, store, cfg, logger)

	prog := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := prog.Run()
	return err
}
