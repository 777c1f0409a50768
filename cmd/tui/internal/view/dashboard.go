package view

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/stackfield/crmd/internal/dashboard"
)

type DashboardModel struct {
	CommonModel
	svc    *dashboard.Service
	tenant string

	widgets []dashboard.RenderedWidget
	cursor  int

	picking bool
	form    *huh.Form
	pickID  string

	loading bool
	err     error
	status  string
}

func NewDashboardModel(svc *dashboard.Service, tenant string) DashboardModel {
	return DashboardModel{
		svc:     svc,
		tenant:  tenant,
		loading: true,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	if m.picking {
		return "Navigate | Enter: add | Esc: cancel"
	}

	return "Esc: back | left/right: select | a: add widget | x: remove | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

		return m, m.loadCmd()

	case dashLoadMsg:
		m.loading = false
		m.err = msg.err
		m.widgets = msg.widgets

		if m.cursor >= len(m.widgets) {
			m.cursor = 0
		}

		return m, nil

	case dashActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = ""

		return m, m.loadCmd()
	}

	if m.picking {
		return m.updatePicker(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "left", "h":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l":
			if m.cursor < len(m.widgets)-1 {
				m.cursor++
			}
		case "a":
			return m.enterPicker()
		case "x":
			if m.cursor < len(m.widgets) {
				return m, m.removeCmd(m.widgets[m.cursor].Entry.ID)
			}
		}
	}

	return m, nil
}

func (m DashboardModel) enterPicker() (tea.Model, tea.Cmd) {
	active := make(map[string]bool, len(m.widgets))
	for _, w := range m.widgets {
		active[w.Entry.ID] = true
	}

	var options []huh.Option[string]

	for _, entry := range m.svc.Catalog() {
		if !active[entry.ID] {
			options = append(options, huh.NewOption(entry.Name, entry.ID))
		}
	}

	if len(options) == 0 {
		m.status = "Every widget is already on the board."
		return m, nil
	}

	m.pickID = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("widget").
				Title("Add Widget").
				Options(options...).
				Value(&m.pickID),
		),
	).WithWidth(40).WithShowHelp(false)
	m.picking = true

	return m, m.form.Init()
}

func (m DashboardModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.picking = false
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.picking = false
	m.form = nil

	return m, m.addCmd(m.pickID)
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.picking && m.form != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
	}

	if len(m.widgets) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No widgets on the board.\n\n('a' to add, Esc to back)")
	}

	content := m.renderGrid()

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// renderGrid lays the widgets out row by row, sized from their grid cells
// relative to the breakpoint the terminal width maps to.
func (m DashboardModel) renderGrid() string {
	bp := m.breakpoint()

	usable := m.Width - 4
	if usable < 20 {
		usable = 80
	}

	byRow := make(map[int][]int)

	var ys []int

	for i, w := range m.widgets {
		if _, ok := byRow[w.Cell.Y]; !ok {
			ys = append(ys, w.Cell.Y)
		}

		byRow[w.Cell.Y] = append(byRow[w.Cell.Y], i)
	}

	sort.Ints(ys)

	var rows []string

	for _, y := range ys {
		idxs := byRow[y]
		sort.Slice(idxs, func(a, b int) bool {
			return m.widgets[idxs[a]].Cell.X < m.widgets[idxs[b]].Cell.X
		})

		var boxes []string

		for _, i := range idxs {
			boxes = append(boxes, m.renderWidget(i, usable, bp))
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m DashboardModel) renderWidget(i, usable int, bp dashboard.Breakpoint) string {
	w := m.widgets[i]

	width := usable * w.Cell.W / bp.Cols
	if width < 24 {
		width = 24
	}

	border := lipgloss.Color("240")
	if i == m.cursor {
		border = lipgloss.Color("63")
	}

	title := lipgloss.NewStyle().Bold(true).Render(w.Entry.Name)

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width).
		Render(title + "\n" + w.Body)
}

// breakpoint maps the terminal width onto the same column tiers the web
// grid uses.
func (m DashboardModel) breakpoint() dashboard.Breakpoint {
	switch {
	case m.Width >= 160:
		return dashboard.Breakpoints[0]
	case m.Width >= 120:
		return dashboard.Breakpoints[1]
	case m.Width >= 80:
		return dashboard.Breakpoints[2]
	default:
		return dashboard.Breakpoints[3]
	}
}

// Messages

type dashLoadMsg struct {
	widgets []dashboard.RenderedWidget
	err     error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	bp := m.breakpoint()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		widgets, err := m.svc.Render(ctx, m.tenant, bp)

		return dashLoadMsg{widgets: widgets, err: err}
	}
}

type dashActionMsg struct {
	err error
}

func (m DashboardModel) addCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.svc.AddWidget(ctx, m.tenant, id)

		return dashActionMsg{err: err}
	}
}

func (m DashboardModel) removeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.svc.RemoveWidget(ctx, m.tenant, id)

		return dashActionMsg{err: err}
	}
}
