// Package cmd wires configuration, metrics, pages and a terminal backend
// into the hostdash command line.
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ftahirops/hostdash/config"
	"github.com/ftahirops/hostdash/engine"
	"github.com/ftahirops/hostdash/logging"
	"github.com/ftahirops/hostdash/metrics"
	"github.com/ftahirops/hostdash/surface"
	"github.com/ftahirops/hostdash/ui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Persistent flags
var (
	cfgFile      string
	backendFlag  string
	providerFlag string
	logFileFlag  string
	logLevelFlag string
)

// Seams replaced in tests.
var (
	newProvider = metrics.New
	isTerminal  = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	}
)

var rootCmd = &cobra.Command{
	Use:   "hostdash",
	Short: "Full-screen host metrics dashboard",
	Long: `hostdash shows live CPU, memory and disk usage of this host in a
full-screen terminal dashboard, next to a concurrency demo and an error
handling demo.

Keys:
  1-5   switch pages
  q     quit
  ^C    interrupt

Examples:
  hostdash
  hostdash --backend tea
  hostdash report
  hostdash config`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ~/.config/hostdash/config.yaml)")
	pf.StringVar(&backendFlag, "backend", "", "terminal backend: tcell or tea")
	pf.StringVar(&providerFlag, "provider", "", "metrics provider: gopsutil or procfs")
	pf.StringVar(&logFileFlag, "log-file", "", "write a rotated diagnostic log to this file")
	pf.StringVar(&logLevelFlag, "log-level", "", "log level: trace, debug, info, warn, error")
}

// Execute runs the command line and returns the process exit status.
func Execute() int {
	return run(rootCmd, os.Args[1:])
}

func run(root *cobra.Command, args []string) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return 0
	}
	out := root.OutOrStdout()
	if errors.Is(err, surface.ErrInit) {
		fmt.Fprintf(out, "Unable to start the dashboard: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Error: %v\n", err)
	return 1
}

// env is what every subcommand needs after configuration is loaded.
type env struct {
	cfg      *config.Config
	log      *logrus.Logger
	provider metrics.Provider
}

func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}
	provider, err := newProvider(cfg.Metrics.Provider, log)
	if err != nil {
		_ = logging.Close(log)
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"backend":  cfg.UI.Backend,
		"provider": cfg.Metrics.Provider,
		"command":  cmd.Name(),
	}).Info("starting")
	return &env{cfg: cfg, log: log, provider: provider}, nil
}

func (e *env) close() { _ = logging.Close(e.log) }

func (e *env) registry() *ui.Registry {
	return ui.NewRegistry(ui.DefaultPages(ui.PageDeps{
		Provider:       e.provider,
		SampleInterval: e.cfg.Metrics.SampleInterval,
		Mount:          e.cfg.Metrics.Mount,
		File:           e.cfg.Disk.File,
		Log:            e.log,
	})...)
}

func (e *env) options(m *engine.Metrics) engine.Options {
	return engine.Options{
		FrameDelay:      e.cfg.UI.FrameInterval,
		UndersizedDelay: e.cfg.UI.UndersizedInterval,
		Log:             e.log.WithField("component", "controller"),
		Metrics:         m,
	}
}

func dashboardCommand(cmd *cobra.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := cmd.OutOrStdout()
	printBanner(out)
	if err := waitForEnter(ctx, cmd.InOrStdin()); err != nil {
		if errors.Is(err, errInterrupted) {
			fmt.Fprintln(out, "Interrupted. Goodbye.")
			e.log.Info("interrupted at start prompt")
			return nil
		}
		return err
	}
	if !isTerminal() {
		return fmt.Errorf("%w: standard input and output must be a terminal", surface.ErrInit)
	}

	m := engine.NewMetrics()
	var interrupted bool
	switch e.cfg.UI.Backend {
	case "tea":
		interrupted, err = runTea(ctx, e, m)
	default:
		interrupted, err = runTcell(ctx, cancel, e, m)
	}
	if path := e.cfg.Telemetry.Textfile; path != "" {
		if werr := m.WriteTextfile(path); werr != nil {
			e.log.WithError(werr).WithField("path", path).Warn("telemetry textfile not written")
		}
	}
	if err != nil {
		e.log.WithError(err).Error("dashboard failed")
		return err
	}
	if interrupted {
		fmt.Fprintln(out, "Interrupted. Goodbye.")
	}
	e.log.Info("exited")
	return nil
}

// errInterrupted reports a cancellation before the dashboard started.
var errInterrupted = errors.New("interrupted")

// waitForEnter blocks until one line, or end of input, is read, or ctx is
// done. The reader goroutine is left behind on cancellation; the process is
// about to exit.
func waitForEnter(ctx context.Context, in io.Reader) error {
	read := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(in).ReadString('\n')
		read <- err
	}()

	select {
	case <-ctx.Done():
		return errInterrupted
	case err := <-read:
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read start line: %w", err)
		}
		return nil
	}
}

func runTcell(ctx context.Context, interrupt context.CancelFunc, e *env, m *engine.Metrics) (bool, error) {
	ts, err := surface.NewTcell(interrupt)
	if err != nil {
		return false, err
	}
	if err := ts.Init(); err != nil {
		return false, err
	}
	defer ts.Close()

	c := engine.New(ts, e.registry(), e.options(m))
	if err := c.Run(ctx); err != nil {
		return false, err
	}
	return ctx.Err() != nil, nil
}

func runTea(ctx context.Context, e *env, m *engine.Metrics) (bool, error) {
	grid := surface.NewGrid(engine.MinHeight, engine.MinWidth)
	if err := grid.Init(); err != nil {
		return false, err
	}
	defer grid.Close()

	c := engine.New(grid, e.registry(), e.options(m))
	host := surface.NewTeaHost(grid, surface.DriverFunc(func() (bool, time.Duration) {
		mode, delay := c.Step(ctx)
		return mode == engine.Terminated, delay
	}))
	if err := host.Run(ctx); err != nil {
		return false, err
	}
	return host.Interrupted() || ctx.Err() != nil, nil
}
