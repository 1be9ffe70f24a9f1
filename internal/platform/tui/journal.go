package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy/internal/storage"
)

// shortIDLen is how much of a run ID the browser shows; enough for replay lookups.
const shortIDLen = 8

// JournalKeyMap defines the key bindings for the journal browser.
type JournalKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Select, k.Quit},
	}
}

// DefaultJournalKeyMap returns the default journal browser bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JournalModel is the Bubble Tea model for browsing journaled runs.
// Choosing a run quits the program; Selected reports the choice.
type JournalModel struct {
	runs     []storage.Run
	table    table.Model
	help     help.Model
	keys     JournalKeyMap
	width    int
	height   int
	selected string
	quitting bool
}

// NewJournalModel creates a browser over runs, newest first as given.
func NewJournalModel(runs []storage.Run, width, height int) JournalModel {
	h := help.New()
	h.ShowAll = false

	m := JournalModel{
		runs:   runs,
		keys:   DefaultJournalKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a table sized for the current terminal.
func (m *JournalModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: shortIDLen},
		{Title: "Seed", Width: 20},
		{Title: "Ticks", Width: 7},
		{Title: "Jumps", Width: 6},
		{Title: "Status", Width: 9},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for title, help, and borders
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

// updateTableRows fills the table from the runs.
func (m *JournalModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = JournalRow(r)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// JournalRow formats a run as a table row.
func JournalRow(r storage.Run) table.Row {
	id := r.ID
	if len(id) > shortIDLen {
		id = id[:shortIDLen]
	}
	status := "playing"
	if r.Finished {
		status = "finished"
	}
	date := ""
	if !r.CreatedAt.IsZero() {
		date = r.CreatedAt.Format("Jan 02 15:04")
	}
	return table.Row{
		id,
		fmt.Sprintf("%d", r.Seed),
		fmt.Sprintf("%d", r.Ticks),
		fmt.Sprintf("%d", r.JumpCount),
		status,
		date,
	}
}

// Init initializes the journal model.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal browser.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if i := m.table.Cursor(); i >= 0 && i < len(m.runs) {
				m.selected = m.runs[i].ID
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the journal browser.
func (m JournalModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle.Render("FLAPPY RUNS")))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	b.WriteString(hudStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m JournalModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs journaled yet.\nPlay with --journal to record one.")
	}
	return m.table.View()
}

// Selected returns the ID of the chosen run, or "" if none was chosen.
func (m JournalModel) Selected() string {
	return m.selected
}

// RunJournalBrowser shows the runs and returns the ID the player picked,
// or "" if they quit without picking.
func RunJournalBrowser(runs []storage.Run, width, height int) (string, error) {
	p := tea.NewProgram(
		NewJournalModel(runs, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(JournalModel)
	if !ok {
		return "", nil
	}
	return m.Selected(), nil
}
