package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/ftahirops/hostdash/metrics"
	"github.com/ftahirops/hostdash/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// executeCmd runs the root command in isolation from the user's home config.
func executeCmd(t *testing.T, stdin string, args ...string) (int, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	code := run(rootCmd, args)
	return code, buf.String()
}

func stubProvider(t *testing.T) {
	t.Helper()
	avail := uint64(4 << 30)
	snap := model.Snapshot{
		CPU:    model.CPUStats{OverallPercent: 12.5, PerCore: []float64{10, 15}, CoreCount: 2},
		Memory: model.MemoryStats{Total: 16 << 30, Used: 12 << 30, Available: &avail, Percent: 75},
		Disk:   model.DiskStats{Total: 100 << 30, Used: 30 << 30, Percent: 30},
		Processes: []model.ProcessSample{
			{PID: 42, Name: "busy", CPUPercent: model.Percent(9.5)},
		},
	}
	orig := newProvider
	newProvider = func(kind string, log logrus.FieldLogger) (metrics.Provider, error) {
		return &metrics.Static{Snap: snap}, nil
	}
	t.Cleanup(func() { newProvider = orig })
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestVersionCommand(t *testing.T) {
	orig := version
	version = "1.2.3"
	defer func() { version = orig }()

	code, out := executeCmd(t, "", "version")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "hostdash v1.2.3")
	assert.Contains(t, out, "go: "+runtime.Version())

	code, out = executeCmd(t, "", "version", "--short")
	require.Equal(t, 0, code)
	assert.Equal(t, "1.2.3\n", out)
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "dev", formatVersion("dev"))
	assert.Equal(t, "v1.0.0", formatVersion("1.0.0"))
	assert.Equal(t, "v2.0.0", formatVersion("v2.0.0"))
}

func TestConfigCommandAppliesFileAndFlags(t *testing.T) {
	path := writeConfig(t, "ui:\n  backend: tea\ndisk:\n  file: /tmp/x.txt\n")
	code, out := executeCmd(t, "", "config", "--config", path, "--provider", "procfs")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "backend: tea")
	assert.Contains(t, out, "provider: procfs")
	assert.Contains(t, out, "file: /tmp/x.txt")
	assert.Contains(t, out, "frame_interval: 100ms")
}

func TestConfigCommandRejectsInvalid(t *testing.T) {
	code, out := executeCmd(t, "", "config", "--backend", "curses")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Error: invalid config: ui.backend must be one of")
}

func TestReportCommandRendersEveryPage(t *testing.T) {
	stubProvider(t)
	file := filepath.Join(t.TempDir(), "projecttwo.txt")
	require.NoError(t, os.WriteFile(file, make([]byte, 1024), 0o644))
	path := writeConfig(t, "disk:\n  file: "+file+"\n")

	code, out := executeCmd(t, "", "report", "--config", path)
	require.Equal(t, 0, code, out)

	for _, want := range []string{
		"Starting Program",
		"CPU 12.5% | Memory 75.0% | Disk / 30.0% | 1 processes",
		"[1:CPU]",
		"Top 5 CPU Processes (1 tracked)",
		"PID 42",
		"[2:Memory]",
		"Total:      16.00 GB",
		"[3:Disk/File]",
		"Size:      1.00 KB",
		"[4:Threading]",
		"Thread 1 cubed: 1000",
		"Thread 2 squared: 25",
		"Done with threading!",
		"[5:Errors]",
		"You can't divide by zero!",
		"Execution complete.",
		"Press 1-5 to switch pages, q to quit | 80x21",
	} {
		assert.Contains(t, out, want)
	}
}

func TestReportCommandRejectsSmallSize(t *testing.T) {
	code, out := executeCmd(t, "", "report", "--width", "40")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Error: report size 40x21 below minimum 80x21")
}

func TestDashboardRequiresTerminal(t *testing.T) {
	stubProvider(t)
	orig := isTerminal
	isTerminal = func() bool { return false }
	defer func() { isTerminal = orig }()

	code, out := executeCmd(t, "\n")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Press Enter to start...")
	assert.Contains(t, out, "Unable to start the dashboard: screen surface initialization failed")
}

func TestWaitForEnter(t *testing.T) {
	require.NoError(t, waitForEnter(context.Background(), strings.NewReader("\n")))
	require.NoError(t, waitForEnter(context.Background(), strings.NewReader("")))

	r, w := io.Pipe()
	defer w.Close()
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)
	assert.ErrorIs(t, waitForEnter(ctx, r), errInterrupted)
}

func TestDashboardInterruptedAtPrompt(t *testing.T) {
	stubProvider(t)
	t.Setenv("HOME", t.TempDir())
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	r, w := io.Pipe()
	t.Cleanup(func() { _ = w.Close() })
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rootCmd.SetContext(ctx)
	t.Cleanup(func() { rootCmd.SetContext(context.Background()) })

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetIn(r)

	time.AfterFunc(20*time.Millisecond, cancel)
	code := run(rootCmd, nil)

	assert.Equal(t, 0, code)
	out := buf.String()
	assert.Contains(t, out, "Press Enter to start...")
	assert.Contains(t, out, "Interrupted. Goodbye.")
	assert.NotContains(t, out, "Unable to start the dashboard")
}
