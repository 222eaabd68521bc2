package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dance/internal/rhythm"
	"github.com/vovakirdan/tui-dance/internal/storage"
)

const (
	minWidthForStats = 96 // Minimum width to show the stats panel
	statsWidth       = 26
	maxScores        = 100
)

// ScoreSource is the read side of the score store.
type ScoreSource interface {
	TopScores(difficulty string, limit int) ([]storage.ScoreEntry, error)
	GetStats(difficulty string) (*storage.Stats, error)
}

var _ ScoreSource = (*storage.Store)(nil)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	panelStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	emptyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Next, k.Prev, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next difficulty")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev difficulty")),
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the best sessions of each difficulty.
type ScoreboardModel struct {
	levels   []rhythm.Level
	cursor   int
	store    ScoreSource
	scores   []storage.ScoreEntry
	stats    *storage.Stats
	loadErr  error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a new scoreboard model. A nil store shows
// empty tables.
func NewScoreboardModel(store ScoreSource, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		levels: rhythm.Levels,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// Level returns the difficulty currently shown.
func (m ScoreboardModel) Level() rhythm.Level {
	return m.levels[m.cursor]
}

func (m ScoreboardModel) showStats() bool {
	return m.width >= minWidthForStats
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Combo", Width: 6},
		{Title: "P/G/M", Width: 12},
		{Title: "Acc", Width: 8},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)), // title, tabs, borders and help
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

// load fetches scores and stats for the current difficulty.
func (m *ScoreboardModel) load() {
	m.scores, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil {
		name := m.Level().String()
		scores, err := m.store.TopScores(name, maxScores)
		if err == nil {
			m.stats, err = m.store.GetStats(name)
		}
		m.scores, m.loadErr = scores, err
	}
	m.updateTableRows()
}

func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.MaxCombo),
			fmt.Sprintf("%d/%d/%d", s.Perfect, s.Good, s.Miss),
			fmt.Sprintf("%.2f%%", s.Accuracy),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cursor = (m.cursor + 1) % len(m.levels)
			m.load()
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cursor = (m.cursor + len(m.levels) - 1) % len(m.levels)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(boardTitleStyle.Render("DANCE HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	body := panelStyle.Render(m.renderTableContent())
	if m.showStats() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", m.renderStats())
	}
	b.WriteString(centerText(body, m.width))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.levels))
	for i, l := range m.levels {
		name := rhythm.ProfileFor(l).Name
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) renderTableContent() string {
	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load scores:\n" + m.loadErr.Error())
	case len(m.scores) == 0:
		return emptyStyle.Render("No scores recorded yet.\nFinish a session to set one!")
	}
	return m.table.View()
}

func (m ScoreboardModel) renderStats() string {
	st := m.stats
	if st == nil {
		st = &storage.Stats{Difficulty: m.Level().String()}
	}
	last := "never"
	if !st.LastPlayed.IsZero() {
		last = st.LastPlayed.Format("Jan 02 15:04")
	}
	lines := []string{
		boardTitleStyle.Render("Stats"),
		"",
		fmt.Sprintf("Sessions  %d", st.Sessions),
		fmt.Sprintf("Best      %d", st.HighScore),
		fmt.Sprintf("Average   %.0f", st.AvgScore),
		fmt.Sprintf("Combo     %d", st.BestCombo),
		fmt.Sprintf("Accuracy  %.2f%%", st.AvgAccuracy),
		fmt.Sprintf("Perfects  %d", st.TotalPerfect),
		fmt.Sprintf("Last      %s", last),
	}
	return panelStyle.Width(statsWidth).Render(strings.Join(lines, "\n"))
}

// centerText pads every line of s to sit in the middle of width columns.
func centerText(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if pad := (width - lipgloss.Width(line)) / 2; pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + line
		}
	}
	return strings.Join(lines, "\n")
}

// RunScoreboard runs the scoreboard screen until the user quits.
func RunScoreboard(store ScoreSource, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
