package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/stackfield/crmd/cmd/tui/internal/view"
	"github.com/stackfield/crmd/internal/activity"
	activityStore "github.com/stackfield/crmd/internal/activity/store"
	"github.com/stackfield/crmd/internal/billing"
	billingStore "github.com/stackfield/crmd/internal/billing/store"
	"github.com/stackfield/crmd/internal/config"
	"github.com/stackfield/crmd/internal/contact"
	contactStore "github.com/stackfield/crmd/internal/contact/store"
	"github.com/stackfield/crmd/internal/dashboard"
	dashboardStore "github.com/stackfield/crmd/internal/dashboard/store"
	"github.com/stackfield/crmd/internal/database"
	"github.com/stackfield/crmd/internal/importer"
	"github.com/stackfield/crmd/internal/lead"
	leadStore "github.com/stackfield/crmd/internal/lead/store"
	"github.com/stackfield/crmd/internal/opportunity"
	opportunityStore "github.com/stackfield/crmd/internal/opportunity/store"
	"github.com/stackfield/crmd/internal/store"
	"github.com/stackfield/crmd/internal/task"
	taskStore "github.com/stackfield/crmd/internal/task/store"
)

type model struct {
	tenant string

	leadService      *lead.Service
	billingService   *billing.Service
	importService    *importer.Service
	dashboardService *dashboard.Service
	syncer           *store.Syncer

	currentView View

	dashboardView view.DashboardModel
	leadsView     view.LeadsModel
	importView    view.ImportModel
	invoiceView   view.InvoiceModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewLeads     View = 2
	ViewImport    View = 3
	ViewInvoice   View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), cfg.Server.Timeout)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	tenant := cfg.App.Tenant
	recorder := activity.NewRecorder(activityStore.New(db))

	contactSvc := contact.NewService(contactStore.New(db))
	opportunitySvc := opportunity.NewService(opportunityStore.New(db))
	leadSvc := lead.NewService(leadStore.New(db), contactSvc, opportunitySvc, recorder)
	taskSvc := task.NewService(taskStore.New(db))
	billingSvc := billing.NewService(billingStore.New(db))
	activitySvc := activity.NewService(activityStore.New(db))
	importSvc := importer.NewService(leadSvc)

	registry := dashboard.NewRegistry()
	dashboard.RegisterBuiltins(registry, dashboard.Sources{
		Pipeline: opportunitySvc,
		Tasks:    taskSvc,
		Activity: activitySvc,
		Revenue:  billingSvc,
		Leads:    leadSvc,
	})
	dashboardSvc := dashboard.NewService(dashboardStore.New(db), registry)

	syncer := store.NewSyncer(64)
	syncer.Start()

	return model{
		tenant:           tenant,
		leadService:      leadSvc,
		billingService:   billingSvc,
		importService:    importSvc,
		dashboardService: dashboardSvc,
		syncer:           syncer,
		currentView:      ViewMenu,
		dashboardView:    view.NewDashboardModel(dashboardSvc, tenant),
		leadsView:        view.NewLeadsModel(leadSvc, syncer, tenant),
		importView:       view.NewImportModel(importSvc, leadSvc, tenant),
		invoiceView:      view.NewInvoiceModel(billingSvc, tenant),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				// Let queued optimistic writes land before exiting.
				m.syncer.Close()
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.dashboardService, m.tenant)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewLeads
				m.leadsView = view.NewLeadsModel(m.leadService, m.syncer, m.tenant)

				return m, m.leadsView.Init()
			case "3":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService, m.leadService, m.tenant)

				return m, m.importView.Init()
			case "4":
				m.currentView = ViewInvoice
				m.invoiceView = view.NewInvoiceModel(m.billingService, m.tenant)

				return m, m.invoiceView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewLeads:
		var newModel tea.Model
		newModel, cmd = m.leadsView.Update(msg)
		m.leadsView = newModel.(view.LeadsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewInvoice:
		var newModel tea.Model
		newModel, cmd = m.invoiceView.Update(msg)
		m.invoiceView = newModel.(view.InvoiceModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"crmd console\n\n" +
				"1. Dashboard\n" +
				"2. Leads\n" +
				"3. Import Leads\n" +
				"4. Open Invoices\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewLeads:
		return m.leadsView.View()
	case ViewImport:
		return m.importView.View()
	case ViewInvoice:
		return m.invoiceView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
