package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stackfield/crmd/internal/activity"
	"github.com/stackfield/crmd/internal/billing"
	"github.com/stackfield/crmd/internal/lead"
	"github.com/stackfield/crmd/internal/opportunity"
	"github.com/stackfield/crmd/internal/task"
)

// Data sources for the built-in widgets. Satisfied by the feature services.
type (
	PipelineSource interface {
		List(ctx context.Context, tenantID string, filter opportunity.ListFilter) ([]*opportunity.Opportunity, error)
	}

	TaskSource interface {
		Overdue(ctx context.Context, tenantID string, now time.Time) ([]*task.Task, error)
	}

	ActivitySource interface {
		Recent(ctx context.Context, tenantID string, limit int) ([]*activity.Entry, error)
	}

	RevenueSource interface {
		Revenue(ctx context.Context, tenantID string) (*billing.RevenueSummary, error)
	}

	LeadSource interface {
		List(ctx context.Context, tenantID string, filter lead.ListFilter) ([]*lead.Lead, error)
	}
)

type Sources struct {
	Pipeline PipelineSource
	Tasks    TaskSource
	Activity ActivitySource
	Revenue  RevenueSource
	Leads    LeadSource
}

// RegisterBuiltins fills the registry with the stock widget set.
func RegisterBuiltins(r *Registry, src Sources) {
	r.Register(CatalogEntry{
		ID:          "pipeline-summary",
		Name:        "Pipeline Summary",
		Description: "Opportunity counts and value per stage",
		Component:   "pipeline_summary",
	}, pipelineSummary(src.Pipeline))

	r.Register(CatalogEntry{
		ID:          "overdue-tasks",
		Name:        "Overdue Tasks",
		Description: "Open tasks past their due date",
		Component:   "overdue_tasks",
	}, overdueTasks(src.Tasks))

	r.Register(CatalogEntry{
		ID:          "recent-activity",
		Name:        "Recent Activity",
		Description: "Latest changes across the workspace",
		Component:   "recent_activity",
	}, recentActivity(src.Activity))

	r.Register(CatalogEntry{
		ID:          "revenue",
		Name:        "Revenue",
		Description: "Billed, collected and outstanding totals",
		Component:   "revenue",
	}, revenue(src.Revenue))

	r.Register(CatalogEntry{
		ID:          "lead-scores",
		Name:        "Lead Scores",
		Description: "Lead count per score band",
		Component:   "lead_scores",
	}, leadScores(src.Leads))
}

func money(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

func pipelineSummary(src PipelineSource) Renderer {
	return func(ctx context.Context, tenantID string) (string, error) {
		opps, err := src.List(ctx, tenantID, opportunity.ListFilter{})
		if err != nil {
			return "", fmt.Errorf("loading pipeline: %w", err)
		}

		var b strings.Builder

		for _, s := range opportunity.Summarize(opps) {
			fmt.Fprintf(&b, "%-14s %3d  %s\n", s.Stage, s.Count, money(s.Value))
		}

		return b.String(), nil
	}
}

func overdueTasks(src TaskSource) Renderer {
	return func(ctx context.Context, tenantID string) (string, error) {
		tasks, err := src.Overdue(ctx, tenantID, time.Now())
		if err != nil {
			return "", fmt.Errorf("loading overdue tasks: %w", err)
		}

		if len(tasks) == 0 {
			return "Nothing overdue\n", nil
		}

		var b strings.Builder

		for _, t := range tasks {
			due := ""
			if t.DueDate != nil {
				due = t.DueDate.Format("Jan 2")
			}

			fmt.Fprintf(&b, "%s (due %s)\n", t.Title, due)
		}

		return b.String(), nil
	}
}

func recentActivity(src ActivitySource) Renderer {
	return func(ctx context.Context, tenantID string) (string, error) {
		entries, err := src.Recent(ctx, tenantID, 10)
		if err != nil {
			return "", fmt.Errorf("loading activity: %w", err)
		}

		if len(entries) == 0 {
			return "No recent activity\n", nil
		}

		var b strings.Builder

		for _, e := range entries {
			fmt.Fprintf(&b, "%s %s %s %s\n", e.OccurredAt.Format("Jan 2 15:04"), e.Actor, e.Verb, e.EntityKind)
		}

		return b.String(), nil
	}
}

func revenue(src RevenueSource) Renderer {
	return func(ctx context.Context, tenantID string) (string, error) {
		sum, err := src.Revenue(ctx, tenantID)
		if err != nil {
			return "", fmt.Errorf("loading revenue: %w", err)
		}

		return fmt.Sprintf("Billed      %s\nCollected   %s\nOutstanding %s\n",
			money(sum.Billed), money(sum.Collected), money(sum.Outstanding)), nil
	}
}

var scoreBands = []struct {
	label    string
	min, max int
}{
	{"cold (0-24)", 0, 24},
	{"warm (25-49)", 25, 49},
	{"hot (50-74)", 50, 74},
	{"on fire (75-100)", 75, 100},
}

func leadScores(src LeadSource) Renderer {
	return func(ctx context.Context, tenantID string) (string, error) {
		leads, err := src.List(ctx, tenantID, lead.ListFilter{})
		if err != nil {
			return "", fmt.Errorf("loading leads: %w", err)
		}

		counts := make([]int, len(scoreBands))

		for _, l := range leads {
			for i, band := range scoreBands {
				if l.Score >= band.min && l.Score <= band.max {
					counts[i]++
					break
				}
			}
		}

		var b strings.Builder

		for i, band := range scoreBands {
			fmt.Fprintf(&b, "%-18s %d\n", band.label, counts[i])
		}

		return b.String(), nil
	}
}
