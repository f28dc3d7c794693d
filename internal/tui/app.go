package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/christopherklint97/contribcal/internal/contributions"
	"github.com/christopherklint97/contribcal/internal/heatmap"
)

type viewState int

const (
	loadingView viewState = iota
	errorView
	gridView
)

// Fetcher is satisfied by *contributions.Client.
type Fetcher interface {
	Fetch(ctx context.Context, username string, year int) (*contributions.Set, error)
}

type contributionsMsg struct {
	username string
	year     int
	set      *contributions.Set
	err      error
}

type App struct {
	state   viewState
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	errMsg  string

	fetcher  Fetcher
	username string
	year     int
	palette  heatmap.Palette
	styles   [heatmap.MaxLevel + 1]lipgloss.Style

	calendar   heatmap.Calendar
	cursorWeek int
	cursorDay  int
	tooltip    heatmap.TooltipState
	width      int
}

func NewApp(fetcher Fetcher, username string, year int, palette heatmap.Palette) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return &App{
		state:    loadingView,
		spinner:  s,
		help:     help.New(),
		keys:     defaultKeys,
		fetcher:  fetcher,
		username: username,
		year:     year,
		palette:  palette,
		styles:   levelStyles(palette),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.fetch())
}

func (a *App) fetch() tea.Cmd {
	username, year := a.username, a.year
	return func() tea.Msg {
		set, err := a.fetcher.Fetch(context.Background(), username, year)
		return contributionsMsg{username: username, year: year, set: set, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.help.Width = msg.Width
		return a, nil
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
	case contributionsMsg:
		return a.handleContributions(msg)
	}

	switch a.state {
	case loadingView:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	case gridView:
		return a.updateGrid(msg)
	}

	return a, nil
}

func (a *App) handleContributions(msg contributionsMsg) (tea.Model, tea.Cmd) {
	// A result for another user or year belongs to a superseded request.
	if msg.username != a.username || msg.year != a.year {
		return a, nil
	}

	if msg.err != nil {
		a.state = errorView
		a.errMsg = msg.err.Error()
		return a, nil
	}

	a.calendar = msg.set.Calendar(a.year)
	a.state = gridView
	a.cursorWeek, a.cursorDay = 0, 0
	if len(a.calendar.Weeks) > 0 {
		for i, d := range a.calendar.Weeks[0] {
			if a.calendar.InYear(d) {
				a.cursorDay = i
				break
			}
		}
	}
	return a, nil
}

func (a *App) updateGrid(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch {
	case key.Matches(keyMsg, a.keys.Left):
		a.moveCursor(-1, 0)
	case key.Matches(keyMsg, a.keys.Right):
		a.moveCursor(1, 0)
	case key.Matches(keyMsg, a.keys.Up):
		a.moveCursor(0, -1)
	case key.Matches(keyMsg, a.keys.Down):
		a.moveCursor(0, 1)
	case key.Matches(keyMsg, a.keys.Leave):
		a.tooltip.Leave()
	}
	return a, nil
}

// moveCursor shifts the cursor and hovers the cell it lands on.
func (a *App) moveCursor(dWeek, dDay int) {
	week := clamp(a.cursorWeek+dWeek, 0, len(a.calendar.Weeks)-1)
	day := clamp(a.cursorDay+dDay, 0, 6)

	a.cursorWeek, a.cursorDay = week, day
	if d, ok := a.calendar.Cell(week, day); ok {
		a.tooltip.Enter(d, cellRect(week, day), gridRect(len(a.calendar.Weeks)), tooltipOffset)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (a *App) View() string {
	switch a.state {
	case loadingView:
		return a.spinner.View() + " Loading contributions..."
	case errorView:
		return boxStyle.Render(errorStyle.Render("Failed to load contributions") + "\n" + dimStyle.Render(a.errMsg))
	case gridView:
		return a.gridView()
	}
	return ""
}
