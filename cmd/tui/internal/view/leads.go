package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/stackfield/crmd/internal/billing"
	"github.com/stackfield/crmd/internal/lead"
	"github.com/stackfield/crmd/internal/store"
)

type leadsState int

const (
	leadsStateBrowse leadsState = iota
	leadsStateEdit
	leadsStateConvert
)

// LeadsModel browses and edits leads through the optimistic cache: every
// mutation lands in the table immediately and the write syncs behind. The
// Sync column shows "~" while a write is in flight and "!" when it failed.
type LeadsModel struct {
	CommonModel
	svc    *lead.Service
	tenant string
	cache  *store.Cached[lead.Lead]

	state leadsState
	table table.Model
	rows  []lead.Lead
	form  *huh.Form

	statusFilterIdx int

	loading bool
	err     error
	status  string

	// Form bindings
	editID      string
	formName    string
	formCompany string
	formEmail   string
	formPhone   string
	formScore   string

	convOpp   bool
	convTitle string
	convValue string
}

var leadStatusFilters = []*lead.Status{
	nil,
	new(lead.StatusNew),
	new(lead.StatusContacted),
	new(lead.StatusQualified),
	new(lead.StatusLost),
	new(lead.StatusConverted),
}

func NewLeadsModel(svc *lead.Service, syncer *store.Syncer, tenant string) LeadsModel {
	// The element type is a plain value on purpose: the cache and the
	// syncer goroutine hold their own copies, so an edit in the event loop
	// can never touch a record a queued write is reading.
	cache := store.NewCached(syncer,
		store.Funcs[lead.Lead]{
			ID: func(l lead.Lead) string { return l.ID },
			SetID: func(l lead.Lead, id string) lead.Lead {
				l.ID = id
				return l
			},
			SetSync: func(l lead.Lead, s store.SyncStatus) lead.Lead {
				l.SyncStatus = s
				return l
			},
		},
		store.Persist[lead.Lead]{
			Create: func(ctx context.Context, rec lead.Lead) (lead.Lead, error) {
				created, err := svc.Create(ctx, tenant, lead.CreateParams{
					Name:    rec.Name,
					Company: rec.Company,
					Email:   rec.Email,
					Phone:   rec.Phone,
					Score:   rec.Score,
					Status:  rec.Status,
				})
				if err != nil {
					return lead.Lead{}, err
				}

				return *created, nil
			},
			Update: func(ctx context.Context, rec lead.Lead) error {
				return svc.Update(ctx, &rec)
			},
			Remove: func(ctx context.Context, id string) error {
				return svc.Delete(ctx, tenant, id)
			},
		},
	)

	columns := []table.Column{
		{Title: "Name", Width: 22},
		{Title: "Company", Width: 20},
		{Title: "Email", Width: 26},
		{Title: "Score", Width: 6},
		{Title: "Status", Width: 11},
		{Title: "Sync", Width: 4},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return LeadsModel{
		svc:     svc,
		tenant:  tenant,
		cache:   cache,
		table:   t,
		loading: true,
	}
}

func (m LeadsModel) Title() string { return "Leads" }

func (m LeadsModel) ShortHelp() string {
	switch m.state {
	case leadsStateEdit, leadsStateConvert:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | e: edit | c: convert | s: status filter | x: delete | r: reload"
}

func (m LeadsModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), leadsTick())
}

func (m LeadsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case leadsLoadMsg:
		m.loading = false
		m.err = msg.err
		m.refreshTable()

		return m, nil

	case leadsTickMsg:
		// Background sync flips statuses without a key press; repaint
		// from the cache so the Sync column tracks them.
		m.refreshTable()
		return m, leadsTick()

	case leadsActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = msg.note

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case leadsStateBrowse:
		return m.updateBrowse(msg)
	case leadsStateEdit, leadsStateConvert:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m LeadsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterEdit(nil)
		case "e":
			if l, ok := m.selected(); ok {
				return m.enterEdit(&l)
			}
		case "c":
			if l, ok := m.selected(); ok {
				return m.enterConvert(l)
			}
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(leadStatusFilters)
			m.refreshTable()

			return m, nil
		case "x":
			if l, ok := m.selected(); ok {
				m.cache.Delete(l.ID)
				m.refreshTable()
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LeadsModel) enterEdit(l *lead.Lead) (tea.Model, tea.Cmd) {
	if l == nil {
		m.editID = ""
		m.formName = ""
		m.formCompany = ""
		m.formEmail = ""
		m.formPhone = ""
		m.formScore = "0"
	} else {
		m.editID = l.ID
		m.formName = l.Name
		m.formCompany = l.Company
		m.formEmail = l.Email
		m.formPhone = l.Phone
		m.formScore = strconv.Itoa(l.Score)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("company").
				Title("Company").
				Value(&m.formCompany),

			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.formEmail),

			huh.NewInput().
				Key("phone").
				Title("Phone").
				Value(&m.formPhone),

			huh.NewInput().
				Key("score").
				Title("Score (0-100)").
				Value(&m.formScore).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 || n > 100 {
						return fmt.Errorf("score must be 0-100")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = leadsStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m LeadsModel) enterConvert(l lead.Lead) (tea.Model, tea.Cmd) {
	if l.Status.Terminal() {
		m.status = fmt.Sprintf("%s is already %s.", l.Name, strings.ToLower(string(l.Status)))
		return m, nil
	}

	m.editID = l.ID
	m.convOpp = true
	m.convTitle = fmt.Sprintf("%s - %s", l.Company, l.Name)
	m.convValue = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("opportunity").
				Title("Create opportunity?").
				Value(&m.convOpp),

			huh.NewInput().
				Key("title").
				Title("Opportunity Title").
				Value(&m.convTitle),

			huh.NewInput().
				Key("value").
				Title("Value").
				Placeholder("1,500.00").
				Value(&m.convValue).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := billing.ParseMoney(s)
					return err
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = leadsStateConvert
	m.table.Blur()

	return m, m.form.Init()
}

func (m LeadsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = leadsStateBrowse
			m.form = nil
			m.table.Focus()

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

	state := m.state
	m.state = leadsStateBrowse
	m.form = nil
	m.table.Focus()

	if state == leadsStateConvert {
		return m, m.convertCmd()
	}

	m.applyEdit()
	m.refreshTable()

	return m, nil
}

// applyEdit commits the form through the cache. The table shows the change
// immediately; the database write follows on the syncer.
func (m *LeadsModel) applyEdit() {
	score, _ := strconv.Atoi(strings.TrimSpace(m.formScore))

	if m.editID == "" {
		m.cache.Create(lead.Lead{
			TenantID: m.tenant,
			Name:     m.formName,
			Company:  m.formCompany,
			Email:    m.formEmail,
			Phone:    m.formPhone,
			Score:    score,
			Status:   lead.StatusNew,
		})

		return
	}

	l, ok := m.cache.Get(m.editID)
	if !ok {
		return
	}

	l.Name = m.formName
	l.Company = m.formCompany
	l.Email = m.formEmail
	l.Phone = m.formPhone
	l.Score = score

	_ = m.cache.Update(l)
}

func (m LeadsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading leads...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	filterLabel := "All"
	if f := leadStatusFilters[m.statusFilterIdx]; f != nil {
		filterLabel = string(*f)
	}

	header := fmt.Sprintf("Filter: [s] Status: %s | %d leads",
		lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(filterLabel),
		len(m.rows),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state != leadsStateBrowse && m.form != nil {
		title := "New Lead"
		if m.state == leadsStateConvert {
			title = "Convert Lead"
		} else if m.editID != "" {
			title = "Edit Lead"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m LeadsModel) selected() (lead.Lead, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return lead.Lead{}, false
	}

	return m.rows[idx], true
}

func (m *LeadsModel) refreshTable() {
	filter := leadStatusFilters[m.statusFilterIdx]

	m.rows = m.rows[:0]

	for _, l := range m.cache.List() {
		if filter != nil && l.Status != *filter {
			continue
		}

		m.rows = append(m.rows, l)
	}

	rows := make([]table.Row, 0, len(m.rows))
	for _, l := range m.rows {
		rows = append(rows, table.Row{
			l.Name,
			l.Company,
			l.Email,
			strconv.Itoa(l.Score),
			string(l.Status),
			SyncBadge(l.SyncStatus),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type leadsLoadMsg struct {
	err error
}

func (m LeadsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.cache.Load(ctx, func(ctx context.Context) ([]lead.Lead, error) {
			leads, err := m.svc.List(ctx, m.tenant, lead.ListFilter{})
			if err != nil {
				return nil, err
			}

			items := make([]lead.Lead, 0, len(leads))
			for _, l := range leads {
				items = append(items, *l)
			}

			return items, nil
		})

		return leadsLoadMsg{err: err}
	}
}

type leadsTickMsg struct{}

func leadsTick() tea.Cmd {
	return tea.Tick(time.Second/2, func(time.Time) tea.Msg {
		return leadsTickMsg{}
	})
}

type leadsActionMsg struct {
	note string
	err  error
}

func (m LeadsModel) convertCmd() tea.Cmd {
	id := m.editID
	opts := lead.ConvertOptions{CreateOpportunity: m.convOpp}

	if m.convOpp {
		opts.OpportunityTitle = m.convTitle
		if v := strings.TrimSpace(m.convValue); v != "" {
			opts.OpportunityValue, _ = billing.ParseMoney(v)
		}
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.svc.Convert(ctx, m.tenant, id, opts)
		if err != nil {
			return leadsActionMsg{err: err}
		}

		note := fmt.Sprintf("Converted %s.", result.Lead.Name)
		if !result.ContactCreated {
			note += " Attached to existing contact."
		}

		return leadsActionMsg{note: note}
	}
}
