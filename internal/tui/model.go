// Package tui is the interactive terminal search form.
package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dharmasatrya/flightfinder/internal/models"
	"github.com/dharmasatrya/flightfinder/internal/render"
	"github.com/dharmasatrya/flightfinder/internal/search"
	"github.com/dharmasatrya/flightfinder/internal/session"
)

// Focusable fields, in tab order. Text inputs come first so their index
// doubles as the position in Model.inputs.
const (
	fieldSource = iota
	fieldDestination
	fieldDate
	fieldAdults
	fieldSort
	fieldClass
	fieldCount
)

var (
	sortOrders = []models.SortOrder{models.SortByPrice, models.SortByDuration}
	classes    = []models.ClassOfService{models.ClassEconomy, models.ClassBusiness}
)

// searchDoneMsg carries the outcome of the request started by submit
type searchDoneMsg struct {
	result *search.Result
	err    error
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Width(26)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	buttonStyle  = lipgloss.NewStyle().Padding(0, 2).Background(lipgloss.Color("#7C3AED")).Foreground(lipgloss.Color("#FFFFFF"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// Model is the Bubbletea model for the search form
type Model struct {
	ctx        context.Context
	searcher   session.Searcher
	session    *session.Session
	inputs     []textinput.Model
	focus      int
	sortIndex  int
	classIndex int
	spinner    spinner.Model
	styles     render.Styles
	width      int
	quitting   bool
}

func New(ctx context.Context, searcher session.Searcher, sess *session.Session) Model {
	if sess == nil {
		sess = session.New()
	}

	inputs := make([]textinput.Model, fieldAdults+1)
	placeholders := []string{"JFK", "LAX", "YYYY-MM-DD", "1"}
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 10
		ti.Width = 20
		inputs[i] = ti
	}
	inputs[fieldAdults].CharLimit = 2
	inputs[fieldAdults].SetValue("1")
	inputs[fieldSource].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:      ctx,
		searcher: searcher,
		session:  sess,
		inputs:   inputs,
		spinner:  sp,
		styles:   render.Colored(),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case searchDoneMsg:
		if msg.err != nil {
			m.session.Fail(msg.err)
		} else {
			m.session.Complete(msg.result.Flights)
		}
		return m, nil

	case spinner.TickMsg:
		if m.session.State() != session.Searching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "tab", "down":
		return m.setFocus((m.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case "enter":
		return m.submit()
	case "left", "right":
		if m.focus == fieldSort || m.focus == fieldClass {
			step := 1
			if msg.String() == "left" {
				step = -1
			}
			m.cycle(step)
			return m, nil
		}
	}
	return m.updateInput(msg)
}

func (m *Model) cycle(step int) {
	switch m.focus {
	case fieldSort:
		m.sortIndex = (m.sortIndex + step + len(sortOrders)) % len(sortOrders)
	case fieldClass:
		m.classIndex = (m.classIndex + step + len(classes)) % len(classes)
	}
}

func (m Model) setFocus(field int) (tea.Model, tea.Cmd) {
	m.focus = field
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == field {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus >= len(m.inputs) {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// Criteria reads the form. An unparseable adult count becomes 0 so that
// validation rejects it.
func (m Model) Criteria() models.SearchCriteria {
	adults, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldAdults].Value()))
	if err != nil {
		adults = 0
	}
	return models.SearchCriteria{
		SourceAirportCode:      strings.TrimSpace(m.inputs[fieldSource].Value()),
		DestinationAirportCode: strings.TrimSpace(m.inputs[fieldDestination].Value()),
		Date:                   strings.TrimSpace(m.inputs[fieldDate].Value()),
		SortOrder:              sortOrders[m.sortIndex],
		ClassOfService:         classes[m.classIndex],
		NumAdults:              adults,
	}
}

// submit is a no-op while a search is in flight.
func (m Model) submit() (tea.Model, tea.Cmd) {
	criteria := m.Criteria()
	if err := m.session.Begin(criteria); err != nil {
		return m, nil
	}

	searcher, ctx := m.searcher, m.ctx
	run := func() tea.Msg {
		res, err := searcher.Search(ctx, criteria)
		return searchDoneMsg{result: res, err: err}
	}
	return m, tea.Batch(m.spinner.Tick, run)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Flight Search"))
	b.WriteString("\n")

	labels := []string{"Source Airport Code", "Destination Airport Code", "Date", "Number of Adults"}
	for i, in := range m.inputs {
		b.WriteString(m.label(i, labels[i]))
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString(m.label(fieldSort, "Sort Order"))
	b.WriteString(m.selector(fieldSort, string(sortOrders[m.sortIndex])))
	b.WriteString("\n")
	b.WriteString(m.label(fieldClass, "Class of Service"))
	b.WriteString(m.selector(fieldClass, string(classes[m.classIndex])))
	b.WriteString("\n\n")

	if m.session.CanSubmit() {
		b.WriteString(buttonStyle.Render("Search Flights"))
	} else {
		b.WriteString(m.spinner.View() + " Searching...")
	}
	b.WriteString("\n\n")

	snap := m.session.Snapshot()
	b.WriteString(render.Error(snap.Error, m.styles))
	b.WriteString(render.Results(snap.Flights, m.styles))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab/shift+tab: move • ←/→: change option • enter: search • esc: quit"))
	return b.String()
}

func (m Model) label(field int, text string) string {
	if m.focus == field {
		return labelStyle.Render(focusedStyle.Render("> " + text))
	}
	return labelStyle.Render("  " + text)
}

func (m Model) selector(field int, value string) string {
	if m.focus == field {
		return focusedStyle.Render("< " + value + " >")
	}
	return "  " + value
}

// Run starts the program on the terminal's alternate screen.
func Run(ctx context.Context, searcher session.Searcher) error {
	p := tea.NewProgram(New(ctx, searcher, nil), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
