package terminal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/clocksynk/dashboard/pkg/models/api"
)

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "clocksynk.yaml")
	cfg := fmt.Sprintf(`
timezone: UTC
storage:
  driver: sqlite
  sqlite_path: %s
dispatch:
  timeout: 2s
  channels: [log]
finance:
  providers: [static]
  static:
    revenue: 12000
    expenses: 4000
    burn_rate: 4000
    runway: 10
log:
  level: error
`, filepath.Join(dir, "clocksynk.db"))
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

func writeFixtures(t *testing.T, dir string) string {
	t.Helper()
	now := time.Now().UTC()
	ts := func(d time.Duration) string { return now.Add(-d).Format(time.RFC3339) }

	path := filepath.Join(dir, "fixtures.yaml")
	data := fmt.Sprintf(`
tasks:
  - id: t1
    title: Ship invoicing
    status: done
    createdAt: %s
    updatedAt: %s
  - id: t2
    title: Draft roadmap
    createdAt: %s
ideas:
  - id: i1
    title: Slack digest
    submittedBy: jared
    createdAt: %s
`, ts(48*time.Hour), ts(24*time.Hour), ts(36*time.Hour), ts(12*time.Hour))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cli := NewCLI(Options{Output: &out})
	cli.SetArgs(args)
	err := cli.Execute()
	return out.String(), err
}

func TestCLI_SeedAndReport(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	cfg := writeConfig(t, dir)
	fixtures := writeFixtures(t, dir)

	out, err := run(t, "--config", cfg, "seed", "--file", fixtures)
	require.NoError(t, err)
	assert.Equal(t, "seeded 3 records (0 already present)\n", out)

	out, err = run(t, "--config", cfg, "seed", "--file", fixtures)
	require.NoError(t, err)
	assert.Equal(t, "seeded 0 records (3 already present)\n", out)

	out, err = run(t, "--config", cfg, "report", "weekly")
	require.NoError(t, err)
	var weekly api.WeeklyReport
	require.NoError(t, json.Unmarshal([]byte(out), &weekly))
	assert.Equal(t, 50, weekly.Metrics.TaskCompletion)
	assert.Equal(t, 1, weekly.Metrics.TasksCompleted)
	assert.Equal(t, 2, weekly.Metrics.NewTasksThisWeek)
	require.Len(t, weekly.Highlights, 2)
	assert.Equal(t, "New idea submitted: Slack digest", weekly.Highlights[0].Description)

	out, err = run(t, "--config", cfg, "report", "monthly", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, time.Now().UTC().Format("January 2006"))

	xlsxPath := filepath.Join(dir, "monthly.xlsx")
	_, err = run(t, "--config", cfg, "report", "monthly", "--format", "xlsx", "--out", xlsxPath)
	require.NoError(t, err)
	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Summary")

	out, err = run(t, "--config", cfg, "report", "weekly", "--send")
	require.NoError(t, err)
	var res api.SendResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Success)
	assert.Equal(t, "delivered", res.Delivery)
	assert.True(t, strings.HasPrefix(res.Subject, "ClockSynk Weekly Team Report - Week of "))
}

func TestCLI_ReportArguments(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	cfg := writeConfig(t, dir)

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing kind", args: []string{"--config", cfg, "report"}},
		{name: "unknown kind", args: []string{"--config", cfg, "report", "quarterly"}},
		{name: "unknown format", args: []string{"--config", cfg, "report", "weekly", "--format", "pdf"}},
		{name: "xlsx to stdout", args: []string{"--config", cfg, "report", "weekly", "--format", "xlsx"}},
		{name: "seed without file", args: []string{"--config", cfg, "seed"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestCLI_FinanceProviders(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	cfg := writeConfig(t, dir)

	out, err := run(t, "--config", cfg, "finance", "providers")
	require.NoError(t, err)
	assert.Equal(t, "  aws\n  azure\n  quickbooks\n* static\n", out)
}

func TestCLI_WebReturnsWhenPortTaken(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()
	_, port, err := net.SplitHostPort(taken.Addr().String())
	require.NoError(t, err)

	dir := t.TempDir()
	path := writeConfig(t, dir)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = fmt.Fprintf(f, "server:\n  host: 127.0.0.1\n  port: \"%s\"\n  shutdown_timeout: 1s\nschedule:\n  enabled: true\n", port)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	done := make(chan error, 1)
	go func() {
		_, err := run(t, "--config", path, "web")
		done <- err
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "address already in use")
	case <-time.After(10 * time.Second):
		t.Fatal("web command did not return after the listener failed")
	}

	// The database is usable by the next command.
	out, err := run(t, "--config", path, "report", "weekly")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
