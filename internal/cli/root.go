package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"time-track-invoice/internal/api"
	"time-track-invoice/internal/config"
	"time-track-invoice/internal/domain"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	app    *App
	config *config.Config
}

// NewRootCommand creates the root cobra command with all subcommands
func NewRootCommand(apiInstance api.API, cfg *config.Config) *RootCommand {
	root := &RootCommand{
		app:    NewApp(apiInstance, cfg),
		config: cfg,
	}

	root.cmd = &cobra.Command{
		Use:   "tti",
		Short: "Track time against jobs and turn it into invoices",
		Long: `Time Track Invoice (tti) tracks time spent on jobs and computes
client invoices from the tracked sessions.

Tracked time is billed in 15-minute increments: stopping a timer rounds
the elapsed time up to the next quarter hour.

EXAMPLES:
  tti job add "Website redesign" 40          # Add a job at 40/h
  tti start <job-id>                         # Start the timer
  tti stop <job-id>                          # Stop and bill the session
  tti manual <job-id> "2026-03-02 09:00" "2026-03-02 11:30"
  tti client add "Acme Ltd" --email billing@acme.example
  tti job assign <job-id> <client-id>
  tti invoice compute <client-id> 2026-03-01 2026-03-31 --save
  tti settings set --field owner-name="J Smith"

CONFIGURATION:
  Configuration follows this priority order: environment variables >
  config file > defaults. Set TTI_CONFIG_FILE to point at a YAML file.

    TTI_DB_DIR                   Database directory (default: ~/.tti)
    TTI_DB_FILENAME              Database filename (default: tti.db)
    TTI_DISPLAY_CURRENCY         Currency prefix (default: GBP)
    TTI_DISPLAY_DATE_FORMAT      Date display format (default: 02/01/2006)
    TTI_APP_TIMEOUT              Application timeout (default: 60s)
    TTI_APP_VERBOSE              Enable verbose logging (default: false)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.addJobCommands()
	root.addSessionCommands()
	root.addClientCommands()
	root.addInvoiceCommands()
	root.addSettingsCommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// SetArgs sets the arguments for the root command, used by tests.
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetOutput redirects command output, used by tests.
func (r *RootCommand) SetOutput(w io.Writer) {
	r.app.SetOutput(w)
}

// commandContext builds the bounded context commands run under.
func (r *RootCommand) commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.appTimeout())
}

func (r *RootCommand) appTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

func (r *RootCommand) addJobCommands() {
	handler := NewJobCommands(r.app)

	jobCmd := &cobra.Command{
		Use:   "job",
		Short: "Manage jobs",
	}

	var clientID string
	addCmd := &cobra.Command{
		Use:   "add [name] [hourly rate]",
		Short: "Add a new job",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Add(ctx, args[0], args[1], clientID)
		},
	}
	addCmd.Flags().StringVar(&clientID, "client", "", "Client ID to assign the job to")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs with their sessions and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.List(ctx)
		},
	}

	assignCmd := &cobra.Command{
		Use:   "assign [job id] [client id]",
		Short: "Assign a job to a client (omit client id to unassign)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			clientID := ""
			if len(args) > 1 {
				clientID = args[1]
			}
			return handler.Assign(ctx, args[0], clientID)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [job id]",
		Short: "Delete a job (its sessions are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Delete(ctx, args[0])
		},
	}

	jobCmd.AddCommand(addCmd, listCmd, assignCmd, deleteCmd)
	r.cmd.AddCommand(jobCmd)
}

func (r *RootCommand) addSessionCommands() {
	handler := NewSessionCommands(r.app)

	var watch bool
	startCmd := &cobra.Command{
		Use:   "start [job id]",
		Short: "Start the timer for a job",
		Long: `Start a running session for the given job.

Only one session can be running at a time: starting while any timer is
active fails, regardless of which job it belongs to.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The watch loop stays in the foreground until interrupted,
			// so it cannot run under the application timeout.
			if watch {
				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return handler.Start(ctx, args[0], true)
			}
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Start(ctx, args[0], false)
		},
	}
	startCmd.Flags().BoolVar(&watch, "watch", false, "Stay in the foreground and show elapsed time")

	stopCmd := &cobra.Command{
		Use:   "stop [job id]",
		Short: "Stop the timer for a job",
		Long: `Stop the running session for the given job. The elapsed time is
rounded up to the next 15-minute increment for billing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Stop(ctx, args[0])
		},
	}

	manualCmd := &cobra.Command{
		Use:   "manual [job id] [start] [end]",
		Short: "Record a finished work interval",
		Long: `Record an already-finished interval for a job. Manual entries may
overlap a running timer.

Example:
  tti manual <job-id> "2026-03-02 09:00" "2026-03-02 11:30"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Manual(ctx, args[0], args[1], args[2])
		},
	}

	currentCmd := &cobra.Command{
		Use:   "current",
		Short: "Show the running session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Current(ctx)
		},
	}

	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Manage individual sessions",
	}
	sessionDeleteCmd := &cobra.Command{
		Use:   "delete [session id]",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Delete(ctx, args[0])
		},
	}
	sessionCmd.AddCommand(sessionDeleteCmd)

	r.cmd.AddCommand(startCmd, stopCmd, manualCmd, currentCmd, sessionCmd)
}

func (r *RootCommand) addClientCommands() {
	handler := NewClientCommands(r.app)

	clientCmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients",
	}

	var details domain.Client
	addClientFlags := func(cmd *cobra.Command) {
		flags := cmd.Flags()
		flags.StringVar(&details.Email, "email", "", "Client email address")
		flags.StringVar(&details.Phone, "phone", "", "Client phone number")
		flags.StringVar(&details.Address, "address", "", "Street address")
		flags.StringVar(&details.Town, "town", "", "Town")
		flags.StringVar(&details.County, "county", "", "County")
		flags.StringVar(&details.Postcode, "postcode", "", "Postcode")
		flags.StringVar(&details.Terms, "terms", "", "Payment terms")
	}

	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a new client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			client := details
			client.Name = args[0]
			return handler.Add(ctx, client)
		},
	}
	addClientFlags(addCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.List(ctx)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [client id]",
		Short: "Show a client's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Show(ctx, args[0])
		},
	}

	var updateDetails domain.Client
	updateCmd := &cobra.Command{
		Use:   "update [client id] [name]",
		Short: "Update a client's details",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			client := updateDetails
			client.Name = args[1]
			return handler.Update(ctx, args[0], client)
		},
	}
	flags := updateCmd.Flags()
	flags.StringVar(&updateDetails.Email, "email", "", "Client email address")
	flags.StringVar(&updateDetails.Phone, "phone", "", "Client phone number")
	flags.StringVar(&updateDetails.Address, "address", "", "Street address")
	flags.StringVar(&updateDetails.Town, "town", "", "Town")
	flags.StringVar(&updateDetails.County, "county", "", "County")
	flags.StringVar(&updateDetails.Postcode, "postcode", "", "Postcode")
	flags.StringVar(&updateDetails.Terms, "terms", "", "Payment terms")

	deleteCmd := &cobra.Command{
		Use:   "delete [client id]",
		Short: "Delete a client and unlink its jobs",
		Long: `Delete a client. Jobs that referenced the client are unlinked but
otherwise untouched; their sessions and rates are preserved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Delete(ctx, args[0])
		},
	}

	clientCmd.AddCommand(addCmd, listCmd, showCmd, updateCmd, deleteCmd)
	r.cmd.AddCommand(clientCmd)
}

func (r *RootCommand) addInvoiceCommands() {
	handler := NewInvoiceCommands(r.app)

	invoiceCmd := &cobra.Command{
		Use:   "invoice",
		Short: "Compute and manage invoices",
	}

	var manualItems []string
	var save bool
	computeCmd := &cobra.Command{
		Use:   "compute [client id] [from] [to]",
		Short: "Compute an invoice for a client over a period",
		Long: `Aggregate a client's finished sessions within the period into one
line item per job and print the invoice. Both period bounds are
inclusive and filter on session start times.

Manual line items carry a description and a fixed amount:
  tti invoice compute <client-id> 2026-03-01 2026-03-31 \
      --item "Hosting=25.00" --item "Domain renewal=12.99" --save`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Compute(ctx, args[0], args[1], args[2], manualItems, save)
		},
	}
	computeCmd.Flags().StringArrayVar(&manualItems, "item", nil, "Manual line item as description=amount (repeatable)")
	computeCmd.Flags().BoolVar(&save, "save", false, "Persist the computed invoice")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.List(ctx)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [invoice id]",
		Short: "Render a saved invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Show(ctx, args[0])
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [invoice id]",
		Short: "Delete a saved invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Delete(ctx, args[0])
		},
	}

	invoiceCmd.AddCommand(computeCmd, listCmd, showCmd, deleteCmd)
	r.cmd.AddCommand(invoiceCmd)
}

func (r *RootCommand) addSettingsCommands() {
	handler := NewSettingsCommands(r.app)

	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage business details used on invoices",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show business details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Show(ctx)
		},
	}

	var fields []string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Update business details fields",
		Long: `Update individual business details fields, leaving the rest
untouched.

Fields: owner-name, address, town, county, postcode, phone, email,
vat-number, terms, account-name, sort-code, account-number

Example:
  tti settings set --field owner-name="J Smith" --field vat-number=GB123456789`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			parsed, err := parseFieldArgs(fields)
			if err != nil {
				return err
			}
			return handler.Set(ctx, parsed)
		},
	}
	setCmd.Flags().StringArrayVar(&fields, "field", nil, "Field to set as name=value (repeatable)")

	settingsCmd.AddCommand(showCmd, setCmd)
	r.cmd.AddCommand(settingsCmd)
}
