package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"time-track-invoice/internal/api"
	"time-track-invoice/internal/config"
	"time-track-invoice/internal/domain"
	"time-track-invoice/internal/repository/sqlite"
	"time-track-invoice/internal/services"
)

func setupCLI(t *testing.T) (api.API, *config.Config) {
	dbPath := filepath.Join(t.TempDir(), "tti.db")

	repo, err := sqlite.New(dbPath, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	cfg := config.NewConfig()
	container := services.NewServiceContainer(repo, cfg, zap.NewNop())
	return api.New(container), cfg
}

// runCommand executes one CLI invocation against a fresh command tree
// and captures its output.
func runCommand(t *testing.T, apiInstance api.API, cfg *config.Config, args ...string) (string, error) {
	root := NewRootCommand(apiInstance, cfg)
	var buf bytes.Buffer
	root.SetOutput(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestJobAddAndListCommands(t *testing.T) {
	apiInstance, cfg := setupCLI(t)

	out, err := runCommand(t, apiInstance, cfg, "job", "add", "Website redesign", "39.50")
	require.NoError(t, err)
	assert.Contains(t, out, "Added job: Website redesign (GBP 39.50/h)")

	out, err = runCommand(t, apiInstance, cfg, "job", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Website redesign")
	assert.Contains(t, out, "Total: 0h 0m 0s, GBP 0.00")
}

func TestJobListEmpty(t *testing.T) {
	apiInstance, cfg := setupCLI(t)

	out, err := runCommand(t, apiInstance, cfg, "job", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No jobs found")
}

func TestStartStopCommands(t *testing.T) {
	apiInstance, cfg := setupCLI(t)

	job, err := apiInstance.CreateJob(context.Background(), "tracked", decimal.RequireFromString("40"), "")
	require.NoError(t, err)

	out, err := runCommand(t, apiInstance, cfg, "start", job.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Started timer for job "+job.ID)

	// A second start is refused while the timer runs
	_, err = runCommand(t, apiInstance, cfg, "start", job.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")

	out, err = runCommand(t, apiInstance, cfg, "stop", job.ID)
	require.NoError(t, err)
	// Any elapsed time bills at least one 15-minute block
	assert.Contains(t, out, "0h 15m 0s billed")
}

func TestStartWatchRunsUntilCancelled(t *testing.T) {
	apiInstance, cfg := setupCLI(t)
	cfg.Display.TimerInterval = 10 * time.Millisecond

	job, err := apiInstance.CreateJob(context.Background(), "tracked", decimal.RequireFromString("40"), "")
	require.NoError(t, err)

	app := NewApp(apiInstance, cfg)
	var buf bytes.Buffer
	app.SetOutput(&buf)
	handler := NewSessionCommands(app)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- handler.Start(ctx, job.ID, true) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not stop on cancel")
	}
	assert.Contains(t, buf.String(), "Started timer for job "+job.ID)
}

func TestStopWithoutRunningTimer(t *testing.T) {
	apiInstance, cfg := setupCLI(t)

	job, err := apiInstance.CreateJob(context.Background(), "idle", decimal.RequireFromString("40"), "")
	require.NoError(t, err)

	_, err = runCommand(t, apiInstance, cfg, "stop", job.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestManualCommand(t *testing.T) {
	apiInstance, cfg := setupCLI(t)

	job, err := apiInstance.CreateJob(context.Background(), "tracked", decimal.RequireFromString("40"), "")
	require.NoError(t, err)

	day := time.Now().Add(-24 * time.Hour).Format("2006-01-02")
	out, err := runCommand(t, apiInstance, cfg, "manual", job.ID, day+" 09:00", day+" 09:10")
	require.NoError(t, err)
	assert.Contains(t, out, "0h 15m 0s billed")
}

func TestCurrentCommand(t *testing.T) {
	apiInstance, cfg := setupCLI(t)

	out, err := runCommand(t, apiInstance, cfg, "current")
	require.NoError(t, err)
	assert.Contains(t, out, "No session running")
}

func TestClientCommands(t *testing.T) {
	apiInstance, cfg := setupCLI(t)

	out, err := runCommand(t, apiInstance, cfg, "client", "add", "Acme Ltd",
		"--email", "billing@acme.example", "--postcode", "AB1 2CD")
	require.NoError(t, err)
	assert.Contains(t, out, "Added client: Acme Ltd")

	out, err = runCommand(t, apiInstance, cfg, "client", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme Ltd <billing@acme.example>")
}

func TestClientDeleteUnlinksJobs(t *testing.T) {
	apiInstance, cfg := setupCLI(t)

	client, err := apiInstance.CreateClient(context.Background(), domain.Client{Name: "Acme Ltd"})
	require.NoError(t, err)
	job, err := apiInstance.CreateJob(context.Background(), "design", decimal.RequireFromString("40"), client.ID)
	require.NoError(t, err)

	_, err = runCommand(t, apiInstance, cfg, "client", "delete", client.ID)
	require.NoError(t, err)

	unlinked, err := apiInstance.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.False(t, unlinked.HasClient())
}

func TestInvoiceComputeCommand(t *testing.T) {
	apiInstance, cfg := setupCLI(t)

	client, err := apiInstance.CreateClient(context.Background(), domain.Client{Name: "Acme Ltd"})
	require.NoError(t, err)
	job, err := apiInstance.CreateJob(context.Background(), "Website redesign", decimal.RequireFromString("20"), client.ID)
	require.NoError(t, err)

	start := time.Now().Add(-72 * time.Hour).Truncate(time.Hour)
	_, err = apiInstance.AddManualEntry(context.Background(), job.ID, start, start.Add(50*time.Minute))
	require.NoError(t, err)

	from := start.AddDate(0, 0, -1).Format("2006-01-02")
	to := time.Now().Format("2006-01-02")

	out, err := runCommand(t, apiInstance, cfg, "invoice", "compute", client.ID, from, to,
		"--item", "Hosting=25.00", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "To: Acme Ltd")
	assert.Contains(t, out, "Website redesign")
	assert.Contains(t, out, "Hosting")
	// 50 minutes bill one hour at 20/h, plus the manual item
	assert.Contains(t, out, "Total: GBP 45.00")
	assert.Contains(t, out, "Saved invoice")

	out, err = runCommand(t, apiInstance, cfg, "invoice", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "GBP 45.00")
}

func TestSettingsCommands(t *testing.T) {
	apiInstance, cfg := setupCLI(t)

	out, err := runCommand(t, apiInstance, cfg, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No settings configured")

	_, err = runCommand(t, apiInstance, cfg, "settings", "set",
		"--field", "owner-name=J Smith", "--field", "sort-code=12-34-56")
	require.NoError(t, err)

	out, err = runCommand(t, apiInstance, cfg, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "J Smith")
	assert.Contains(t, out, "12-34-56")

	_, err = runCommand(t, apiInstance, cfg, "settings", "set", "--field", "bogus=1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown settings field")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2026-03-02", false},
		{"2026-03-02 09:30", false},
		{"02/03/2026", false},
		{"02/03/2026 09:30", false},
		{"not a date", true},
		{"2026-13-45", true},
	}

	for _, tt := range tests {
		_, err := parseDate(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
		} else {
			assert.NoError(t, err, "input %q", tt.input)
		}
	}
}

func TestParseAmount(t *testing.T) {
	amount, err := parseAmount(" 39.50 ")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("39.5")))

	_, err = parseAmount("not a number")
	assert.Error(t, err)
}

func TestEndOfDay(t *testing.T) {
	bare := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	extended := endOfDay(bare)
	assert.Equal(t, 23, extended.Hour())
	assert.Equal(t, bare.AddDate(0, 0, 1).Add(-time.Nanosecond), extended)

	withTime := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, withTime, endOfDay(withTime))
}

func TestParseManualItems(t *testing.T) {
	items, err := parseManualItems([]string{"Hosting=25.00", "Domain renewal=12.99"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Hosting", items[0].Description)
	assert.True(t, items[0].Amount.Equal(decimal.RequireFromString("25")))
	assert.Equal(t, "Domain renewal", items[1].Description)

	_, err = parseManualItems([]string{"missing-amount"})
	assert.Error(t, err)
	_, err = parseManualItems([]string{"=5"})
	assert.Error(t, err)
	_, err = parseManualItems([]string{"Hosting=not-a-number"})
	assert.Error(t, err)
}
