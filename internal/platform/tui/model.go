package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy/internal/core"
	"github.com/vovakirdan/flappy/internal/games/flappy"
)

// footerRows is the height reserved below the canvas for the help line.
const footerRows = 1

// Model is the Bubble Tea model that hosts one game.
// Every TickMsg pumps the game once; the game draws into canvas.
type Model struct {
	game     *flappy.Game
	canvas   *Canvas
	keys     KeyMap
	help     help.Model
	quitting bool
}

// NewModel creates a model for a game that renders into canvas.
func NewModel(game *flappy.Game, canvas *Canvas) Model {
	h := help.New()
	h.ShowAll = false
	return Model{
		game:   game,
		canvas: canvas,
		keys:   DefaultKeyMap(),
		help:   h,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.game.TickRate())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		m.game.Pump()
		return m, tickCmd(m.game.TickRate())
	}

	return m, nil
}

// handleKey processes keyboard input. Unbound keys are ignored.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionJump:
		m.game.Jump()
	}
	return m, nil
}

// handleResize fits the canvas to the terminal, leaving room for the footer.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.canvas.Resize(msg.Width, max(msg.Height-footerRows, 0))
	m.help.Width = msg.Width
	return m, nil
}

// View renders the canvas and the help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.canvas.Screen()))
	b.WriteString("\n")
	b.WriteString(hudStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(game *flappy.Game, canvas *Canvas) error {
	p := tea.NewProgram(
		NewModel(game, canvas),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// CanvasSize returns the canvas size for a terminal of the given size.
func CanvasSize(width, height int) (cols, rows int) {
	return max(width, 0), max(height-footerRows, 0)
}
