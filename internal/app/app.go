package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"ai-trainer/internal/config"
	"ai-trainer/internal/inquiry"
	"ai-trainer/internal/metrics"
	"ai-trainer/internal/planner"
	"ai-trainer/internal/render"
)

// App holds the application's dependencies.
type App struct {
	cfg          *config.Config
	session      *planner.Session
	inquiries    *inquiry.Log
	metricsStore *metrics.Store
	out          io.Writer

	closers []func() error
}

// NewApp creates and initializes a new App instance.
func NewApp(
	cfg *config.Config,
	session *planner.Session,
	inquiries *inquiry.Log,
	metricsStore *metrics.Store,
	out io.Writer,
) *App {
	return &App{
		cfg:          cfg,
		session:      session,
		inquiries:    inquiries,
		metricsStore: metricsStore,
		out:          out,
	}
}

// Close cancels in-flight generation and releases clients and connections.
func (a *App) Close() {
	a.session.Close()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("Warning: failed to close resource: %v", err)
		}
	}
}

// GeneratePlan requests a new plan and prints it. A plan that could not be
// saved is still printed.
func (a *App) GeneratePlan(ctx context.Context, prefs planner.UserPreferences, tab render.Tab) error {
	fmt.Fprintf(a.out, "Generating %s plan (%s, %s, %s min)...\n", prefs.Goal, prefs.FitnessLevel, prefs.Cuisine, prefs.AvailableTime)

	outcome, err := a.session.Generate(ctx, prefs)
	if err != nil {
		return fmt.Errorf("failed to generate plan: %w", err)
	}
	if !outcome.Persisted {
		fmt.Fprintln(a.out, "Warning: the plan could not be saved and will be lost when you exit.")
	}

	fmt.Fprintln(a.out)
	return render.Plan(a.out, outcome.Plan, tab)
}

// ShowPlan prints the saved plan, if any.
func (a *App) ShowPlan(ctx context.Context, tab render.Tab) error {
	plan, err := a.session.Restore(ctx)
	if err != nil {
		return fmt.Errorf("failed to load saved plan: %w", err)
	}
	if plan == nil {
		fmt.Fprintln(a.out, "No saved plan. Run 'ai-trainer generate' to create one.")
		return nil
	}
	return render.Plan(a.out, plan, tab)
}

// ClearPlan deletes the saved plan.
func (a *App) ClearPlan(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear plan: %w", err)
	}
	fmt.Fprintln(a.out, "Saved plan cleared.")
	return nil
}

// SubmitInquiry validates and stores a contact-form submission. Validation
// problems are printed per field and returned as inquiry.ValidationErrors.
func (a *App) SubmitInquiry(ctx context.Context, q inquiry.Inquiry) error {
	saved, err := a.inquiries.Submit(ctx, q)
	var verrs inquiry.ValidationErrors
	if errors.As(err, &verrs) {
		fmt.Fprintln(a.out, "Please fix the following:")
		for _, field := range []string{"fullName", "phone", "email", "goal", "preferredBranch", "membership", "bestTime", "message", "consent"} {
			if msg, ok := verrs[field]; ok {
				fmt.Fprintf(a.out, "  %s: %s\n", field, msg)
			}
		}
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to submit inquiry: %w", err)
	}

	fmt.Fprintf(a.out, "Thanks %s! Your inquiry %s was received; we'll reach out in the %s.\n",
		saved.FullName, saved.ID, strings.ToLower(saved.BestTime))
	return nil
}

// ListInquiries prints stored inquiries, newest first.
func (a *App) ListInquiries(ctx context.Context) error {
	list, err := a.inquiries.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list inquiries: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No inquiries yet.")
		return nil
	}
	for _, q := range list {
		fmt.Fprintf(a.out, "%s  %-20s %-14s %-16s %s/%s",
			q.CreatedAt.Format("2006-01-02 15:04"), q.FullName, q.Phone, q.Goal, q.Membership, q.BestTime)
		if q.PreferredBranch != "" {
			fmt.Fprintf(a.out, " @ %s", q.PreferredBranch)
		}
		fmt.Fprintln(a.out)
		if q.Message != "" {
			fmt.Fprintf(a.out, "    %s\n", q.Message)
		}
	}
	return nil
}

// Usage prints daily token totals for the last N days.
func (a *App) Usage(ctx context.Context, days int) error {
	usage, err := a.metricsStore.GetDailyUsage(ctx, days)
	if err != nil {
		return fmt.Errorf("failed to fetch usage: %w", err)
	}

	fmt.Fprintf(a.out, "LLM activity, last %d days\n", days)
	if len(usage) == 0 {
		fmt.Fprintln(a.out, "  No data yet")
		return nil
	}
	for _, d := range usage {
		fmt.Fprintf(a.out, "  %s: %d tokens (%d prompt / %d completion), %d calls, %d failed\n",
			d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalPrompt, d.TotalCompletion, d.TotalExecution, d.Failed)
	}
	return nil
}

// CleanupMetrics removes metric rows older than the given number of days.
func (a *App) CleanupMetrics(ctx context.Context, days int) error {
	affected, err := a.metricsStore.Cleanup(ctx, days)
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}
	fmt.Fprintf(a.out, "Successfully removed %d old metric records.\n", affected)
	return nil
}

// Status prints the active configuration and process health.
func (a *App) Status() {
	health := metrics.GetSysHealth(a.cfg.DataDir)

	fmt.Fprintln(a.out, "AI Trainer status")
	fmt.Fprintf(a.out, "  Provider: %s (%s)\n", a.cfg.AIProvider, a.model())
	fmt.Fprintf(a.out, "  Storage:  %s\n", a.cfg.StorageDriver)
	fmt.Fprintf(a.out, "  Timeout:  %s\n", a.cfg.GenerationTimeout)
	fmt.Fprintf(a.out, "  RAM:      %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB)
	fmt.Fprintf(a.out, "  Data:     %d files, %s in %s\n", health.DataFiles, health.DataDiskSize, a.cfg.DataDir)
}

func (a *App) model() string {
	if a.cfg.AIProvider == config.ProviderOpenRouter {
		return a.cfg.OpenRouterModel
	}
	return a.cfg.GeminiModel
}
