package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/maxogod/AI-Donkey-Kong/internal/registry"
	"github.com/maxogod/AI-Donkey-Kong/internal/storage"
)

const maxEpisodes = 100

// EpisodesKeyMap defines the key bindings for the episode browser.
type EpisodesKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Next     key.Binding
	Prev     key.Binding
	SortMode key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k EpisodesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.SortMode, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k EpisodesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.SortMode, k.Quit},
	}
}

// DefaultEpisodesKeyMap returns default key bindings.
func DefaultEpisodesKeyMap() EpisodesKeyMap {
	return EpisodesKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next policy"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev policy"),
		),
		SortMode: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "recent/best"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// EpisodesModel browses stored episodes per policy.
type EpisodesModel struct {
	policies []string // "" first, meaning every policy
	cursor   int
	best     bool
	store    *storage.Store
	episodes []storage.Episode
	stats    storage.Stats
	err      error
	table    table.Model
	help     help.Model
	keys     EpisodesKeyMap
	width    int
	height   int
	quitting bool
}

// NewEpisodesModel creates the browser.
func NewEpisodesModel(store *storage.Store, width, height int) EpisodesModel {
	policies := []string{""}
	for _, p := range registry.List() {
		policies = append(policies, p.ID)
	}
	policies = append(policies, ManualPolicy)

	m := EpisodesModel{
		policies: policies,
		store:    store,
		keys:     DefaultEpisodesKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *EpisodesModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Outcome", Width: 8},
		{Title: "Reward", Width: 8},
		{Title: "Ticks", Width: 7},
		{Title: "Zones", Width: 5},
		{Title: "Best Y", Width: 7},
		{Title: "Policy", Width: 8},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *EpisodesModel) load() {
	m.episodes, m.stats, m.err = nil, storage.Stats{}, nil
	if m.store != nil {
		policy := m.policies[m.cursor]
		if m.best {
			m.episodes, m.err = m.store.BestEpisodes(policy, maxEpisodes)
		} else {
			m.episodes, m.err = m.store.RecentEpisodes(policy, maxEpisodes)
		}
		if m.err == nil {
			m.stats, m.err = m.store.Stats(policy)
		}
	}

	rows := make([]table.Row, len(m.episodes))
	for i, e := range m.episodes {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			e.Outcome,
			fmt.Sprintf("%+.3f", e.Reward),
			fmt.Sprintf("%d", e.Ticks),
			fmt.Sprintf("%d", e.ZonesVisited),
			fmt.Sprintf("%.2f", e.HighestY),
			e.Policy,
			e.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the browser.
func (m EpisodesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m EpisodesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cursor = (m.cursor + 1) % len(m.policies)
			m.load()
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cursor = (m.cursor + len(m.policies) - 1) % len(m.policies)
			m.load()
			return m, nil
		case key.Matches(msg, m.keys.SortMode):
			m.best = !m.best
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.load()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m EpisodesModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	mode := "RECENT"
	if m.best {
		mode = "BEST"
	}
	b.WriteString(titleStyle.Render(mode + " EPISODES"))
	b.WriteString("\n\n")

	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabs := make([]string, len(m.policies))
	for i, p := range m.policies {
		name := p
		if name == "" {
			name = "all"
		}
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.tableContent()))
	b.WriteString("\n")

	statStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	b.WriteString(statStyle.Render(fmt.Sprintf(
		"%d episodes | win rate %.1f%% | mean reward %+.3f | best %+.3f | mean ticks %.0f",
		m.stats.Episodes, m.stats.WinRate()*100, m.stats.MeanReward, m.stats.BestReward, m.stats.MeanTicks)))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m EpisodesModel) tableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 4)
	switch {
	case m.err != nil:
		return emptyStyle.Render("Cannot load episodes: " + m.err.Error())
	case len(m.episodes) == 0:
		return emptyStyle.Render("No episodes recorded yet.\nRun `kong run` to record some.")
	}
	return m.table.View()
}

// Rows returns the number of episodes shown.
func (m EpisodesModel) Rows() int { return len(m.episodes) }

// Policy returns the selected policy filter, "" for all.
func (m EpisodesModel) Policy() string { return m.policies[m.cursor] }

// RunEpisodes runs the episode browser.
func RunEpisodes(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewEpisodesModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
