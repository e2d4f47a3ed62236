package cli

import (
	"context"
	"fmt"

	"time-track-invoice/internal/billing"
	"time-track-invoice/internal/services"
)

// SessionCommands handles the timer and manual entry subcommands
type SessionCommands struct {
	app *App
}

// NewSessionCommands creates a new session command handler
func NewSessionCommands(app *App) *SessionCommands {
	return &SessionCommands{app: app}
}

// Start begins a running session for the job. With watch set it stays in
// the foreground and prints the elapsed time until interrupted.
func (c *SessionCommands) Start(ctx context.Context, jobID string, watch bool) error {
	session, err := c.app.api.StartTimer(ctx, jobID)
	if err != nil {
		return c.app.errorHandler.Handle("start timer", err)
	}
	fmt.Fprintf(c.app.out, "Started timer for job %s at %s\n",
		session.JobID, session.StartTime.Format("15:04:05"))

	if !watch {
		return nil
	}

	for elapsed := range services.WatchElapsed(ctx, session, c.app.config.Display.TimerInterval) {
		fmt.Fprintf(c.app.out, "\r%s", billing.FormatDuration(elapsed))
	}
	fmt.Fprintln(c.app.out)
	return nil
}

// Stop ends the active session for the job and prints the billed duration.
func (c *SessionCommands) Stop(ctx context.Context, jobID string) error {
	session, err := c.app.api.StopTimer(ctx, jobID)
	if err != nil {
		return c.app.errorHandler.Handle("stop timer", err)
	}
	fmt.Fprintf(c.app.out, "Stopped timer for job %s: %s billed\n",
		session.JobID, billing.FormatDuration(session.Duration))
	return nil
}

// Manual records an already-finished interval for a job.
func (c *SessionCommands) Manual(ctx context.Context, jobID, startArg, endArg string) error {
	start, err := parseDate(startArg)
	if err != nil {
		return c.app.errorHandler.Handle("add manual entry", err)
	}
	end, err := parseDate(endArg)
	if err != nil {
		return c.app.errorHandler.Handle("add manual entry", err)
	}

	session, err := c.app.api.AddManualEntry(ctx, jobID, start, end)
	if err != nil {
		return c.app.errorHandler.Handle("add manual entry", err)
	}
	fmt.Fprintf(c.app.out, "Added manual entry for job %s: %s billed\n",
		session.JobID, billing.FormatDuration(session.Duration))
	return nil
}

// Delete removes a session.
func (c *SessionCommands) Delete(ctx context.Context, sessionID string) error {
	if err := c.app.api.DeleteSession(ctx, sessionID); err != nil {
		return c.app.errorHandler.Handle("delete session", err)
	}
	fmt.Fprintf(c.app.out, "Deleted session %s\n", sessionID)
	return nil
}

// Current shows the running session, if any.
func (c *SessionCommands) Current(ctx context.Context) error {
	session, err := c.app.api.ActiveSession(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("show current session", err)
	}
	if session == nil {
		fmt.Fprintln(c.app.out, "No session running")
		return nil
	}
	fmt.Fprintf(c.app.out, "Running session for job %s, elapsed %s\n",
		session.JobID, billing.FormatDuration(session.Elapsed(timeNow())))
	return nil
}
