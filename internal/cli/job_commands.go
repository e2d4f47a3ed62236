package cli

import (
	"context"
	"fmt"

	"time-track-invoice/internal/billing"
)

// JobCommands handles the job subcommands
type JobCommands struct {
	app *App
}

// NewJobCommands creates a new job command handler
func NewJobCommands(app *App) *JobCommands {
	return &JobCommands{app: app}
}

// Add creates a new job with an hourly rate and optional client.
func (c *JobCommands) Add(ctx context.Context, name, rateArg, clientID string) error {
	rate, err := parseAmount(rateArg)
	if err != nil {
		return c.app.errorHandler.Handle("add job", err)
	}

	job, err := c.app.api.CreateJob(ctx, name, rate, clientID)
	if err != nil {
		return c.app.errorHandler.Handle("add job", err)
	}

	fmt.Fprintf(c.app.out, "Added job: %s (%s/h) [%s]\n",
		job.Name,
		billing.FormatCurrencyWith(c.app.config.Display.CurrencyPrefix, job.HourlyRate),
		job.ID)
	return nil
}

// List prints every job with its sessions and totals, most recently
// created job first.
func (c *JobCommands) List(ctx context.Context) error {
	views, err := c.app.api.ListJobs(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("list jobs", err)
	}

	if len(views) == 0 {
		fmt.Fprintln(c.app.out, "No jobs found")
		return nil
	}

	prefix := c.app.config.Display.CurrencyPrefix
	dateFormat := c.app.config.Display.DateFormat

	for _, view := range views {
		fmt.Fprintf(c.app.out, "%s (%s/h)",
			view.Job.Name,
			billing.FormatCurrencyWith(prefix, view.Job.HourlyRate))
		if view.ClientName != "" {
			fmt.Fprintf(c.app.out, " - %s", view.ClientName)
		}
		fmt.Fprintf(c.app.out, "  [%s]\n", view.Job.ID)

		for _, session := range view.Sessions {
			fmt.Fprintf(c.app.out, "  %s  %s  [%s]\n",
				session.StartTime.Format(dateFormat),
				billing.FormatDuration(session.Duration),
				session.ID)
		}

		fmt.Fprintf(c.app.out, "  Total: %s, %s\n",
			billing.FormatDuration(view.Totals.TotalDuration),
			billing.FormatCurrencyWith(prefix, view.Totals.TotalEarnings))
	}
	return nil
}

// Assign links a job to a client; an empty client ID clears the link.
func (c *JobCommands) Assign(ctx context.Context, jobID, clientID string) error {
	if err := c.app.api.AssignClient(ctx, jobID, clientID); err != nil {
		return c.app.errorHandler.Handle("assign client", err)
	}
	if clientID == "" {
		fmt.Fprintf(c.app.out, "Unassigned client from job %s\n", jobID)
	} else {
		fmt.Fprintf(c.app.out, "Assigned client %s to job %s\n", clientID, jobID)
	}
	return nil
}

// Delete removes a job. Its sessions are retained.
func (c *JobCommands) Delete(ctx context.Context, jobID string) error {
	if err := c.app.api.DeleteJob(ctx, jobID); err != nil {
		return c.app.errorHandler.Handle("delete job", err)
	}
	fmt.Fprintf(c.app.out, "Deleted job %s\n", jobID)
	return nil
}
