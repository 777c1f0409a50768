package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/stackfield/crmd/internal/activity"
	activityStore "github.com/stackfield/crmd/internal/activity/store"
	"github.com/stackfield/crmd/internal/assistant"
	"github.com/stackfield/crmd/internal/billing"
	billingStore "github.com/stackfield/crmd/internal/billing/store"
	"github.com/stackfield/crmd/internal/config"
	"github.com/stackfield/crmd/internal/contact"
	contactStore "github.com/stackfield/crmd/internal/contact/store"
	"github.com/stackfield/crmd/internal/dashboard"
	dashboardStore "github.com/stackfield/crmd/internal/dashboard/store"
	"github.com/stackfield/crmd/internal/database"
	"github.com/stackfield/crmd/internal/email"
	emailStore "github.com/stackfield/crmd/internal/email/store"
	crmdHttp "github.com/stackfield/crmd/internal/http"
	assistantHandler "github.com/stackfield/crmd/internal/http/assistant"
	billingHandler "github.com/stackfield/crmd/internal/http/billing"
	contactHandler "github.com/stackfield/crmd/internal/http/contact"
	dashboardHandler "github.com/stackfield/crmd/internal/http/dashboard"
	emailHandler "github.com/stackfield/crmd/internal/http/email"
	importHandler "github.com/stackfield/crmd/internal/http/importcsv"
	leadHandler "github.com/stackfield/crmd/internal/http/lead"
	caseHandler "github.com/stackfield/crmd/internal/http/legalcase"
	mediaHandler "github.com/stackfield/crmd/internal/http/media"
	opportunityHandler "github.com/stackfield/crmd/internal/http/opportunity"
	taskHandler "github.com/stackfield/crmd/internal/http/task"
	"github.com/stackfield/crmd/internal/importer"
	"github.com/stackfield/crmd/internal/lead"
	leadStore "github.com/stackfield/crmd/internal/lead/store"
	"github.com/stackfield/crmd/internal/legalcase"
	caseStore "github.com/stackfield/crmd/internal/legalcase/store"
	"github.com/stackfield/crmd/internal/media"
	mediaStore "github.com/stackfield/crmd/internal/media/store"
	"github.com/stackfield/crmd/internal/opportunity"
	opportunityStore "github.com/stackfield/crmd/internal/opportunity/store"
	"github.com/stackfield/crmd/internal/task"
	taskStore "github.com/stackfield/crmd/internal/task/store"
)

func main() {
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
	defer db.Close()

	recorder := activity.NewRecorder(activityStore.New(db))

	var (
		contactService     = contact.NewService(contactStore.New(db))
		opportunityService = opportunity.NewService(opportunityStore.New(db))
		leadService        = lead.NewService(leadStore.New(db), contactService, opportunityService, recorder)
		caseService        = legalcase.NewService(caseStore.New(db), recorder)
		taskService        = task.NewService(taskStore.New(db))
		billingService     = billing.NewService(billingStore.New(db))
		mediaService       = media.NewService(mediaStore.New(db))
		activityService    = activity.NewService(activityStore.New(db))
		emailService       = email.NewService(emailStore.New(db), email.NewClient(cfg.Email.BaseURL, cfg.Email.APIKey, cfg.Email.From))
		importService      = importer.NewService(leadService)
		assistantService   = assistant.NewService(
			assistant.NewClient(cfg.AI.BaseURL, cfg.AI.Model, cfg.AI.APIKey),
			taskService, leadService, caseService, emailService,
		)
	)

	registry := dashboard.NewRegistry()
	dashboard.RegisterBuiltins(registry, dashboard.Sources{
		Pipeline: opportunityService,
		Tasks:    taskService,
		Activity: activityService,
		Revenue:  billingService,
		Leads:    leadService,
	})
	dashboardService := dashboard.NewService(dashboardStore.New(db), registry)

	router := crmdHttp.New(cfg.Auth.Secret, crmdHttp.Handlers{
		Leads:         leadHandler.NewHandler(leadService),
		Contacts:      contactHandler.NewHandler(contactService),
		Opportunities: opportunityHandler.NewHandler(opportunityService),
		Cases:         caseHandler.NewHandler(caseService),
		Tasks:         taskHandler.NewHandler(taskService),
		Billing:       billingHandler.NewHandler(billingService),
		Dashboard:     dashboardHandler.NewHandler(dashboardService),
		Assistant:     assistantHandler.NewHandler(assistantService),
		Import:        importHandler.NewHandler(importService),
		Media:         mediaHandler.NewHandler(mediaService),
		Email:         emailHandler.NewHandler(emailService),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
