package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"portfoliowidget/internal/export"
	"portfoliowidget/internal/logger"
	"portfoliowidget/internal/tui"
	"portfoliowidget/internal/widget"
	"portfoliowidget/pkg/portfolioclient"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	configPath string
	baseURL    string
	timeout    time.Duration
	outPath    string
	logFile    string
	verbose    bool
}

var opts options

func main() {
	// ctrl+c outside the TUI should still cancel in-flight requests
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "portfolio-widget",
		Short:        "Show the Alpaca portfolio history widget",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := resolveClient(cmd)
			if err != nil {
				return err
			}
			log, err := tuiLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			view := widget.NewPortfolioView(client, widget.WithLogger(log))
			defer view.Unmount()

			_, err = tea.NewProgram(tui.NewModel(cmd.Context(), view)).Run()
			return err
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML or JSON config file with base_url and timeout")
	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", defaultBaseURL, "portfolio api base url")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", defaultTimeout, "request timeout")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log widget events (to --log-file while the TUI is up)")
	root.Flags().StringVar(&opts.logFile, "log-file", "portfolio-widget.log", "where the TUI writes logs when --verbose is set")

	root.AddCommand(newShowCmd(), newExportCmd())
	return root
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Render the widget once after it loads and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, timeout, err := resolveClient(cmd)
			if err != nil {
				return err
			}
			return runShow(cmd.Context(), client, timeout, cmd.OutOrStdout())
		},
	}
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the equity history as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, timeout, err := resolveClient(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.outPath != "" {
				f, err := os.Create(opts.outPath)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", opts.outPath, err)
				}
				defer f.Close()
				out = f
			}
			return runExport(cmd.Context(), client, timeout, out)
		},
	}
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}

// runShow mounts a view, waits for the fetch to settle and prints it. A
// view that ends in the failed state is reported as an error.
func runShow(ctx context.Context, fetcher widget.HistoryFetcher, timeout time.Duration, out io.Writer) error {
	view := widget.NewPortfolioView(fetcher, widget.WithLogger(cliLogger()))
	defer view.Unmount()

	if err := view.Mount(ctx); err != nil {
		return err
	}

	select {
	case <-view.Done():
	case <-time.After(timeout):
		view.Unmount()
		fmt.Fprint(out, view.Render())
		return fmt.Errorf("portfolio history did not load within %s", timeout)
	case <-ctx.Done():
		return ctx.Err()
	}

	fmt.Fprint(out, view.Render())
	if state := view.State(); state.Phase == widget.Failed {
		return state.Err
	}
	return nil
}

func runExport(ctx context.Context, fetcher widget.HistoryFetcher, timeout time.Duration, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	history, err := fetcher.FetchHistory(ctx)
	if err != nil {
		return err
	}
	return export.WriteEquityCSV(out, history.Equity)
}

// resolveClient merges the config file with flags; flags that were set
// explicitly win.
func resolveClient(cmd *cobra.Command) (*portfolioclient.Client, time.Duration, error) {
	cfg, err := LoadConfig(opts.configPath)
	if err != nil {
		return nil, 0, err
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, 0, err
	}

	baseURL := cfg.BaseURL
	if cmd.Flags().Changed("base-url") {
		baseURL = opts.baseURL
	}
	if cmd.Flags().Changed("timeout") {
		timeout = opts.timeout
	}
	if timeout <= 0 {
		return nil, 0, fmt.Errorf("timeout must be positive, got %s", timeout)
	}

	client := portfolioclient.New(baseURL, portfolioclient.WithHTTPClient(&http.Client{
		Timeout: timeout,
	}))
	return client, timeout, nil
}

// tuiLogger keeps stderr clear while bubbletea owns the screen. The
// package globals are swapped too so nothing falls back to stderr.
func tuiLogger() (*zap.SugaredLogger, error) {
	log := logger.Nop()
	if opts.verbose {
		var err error
		log, err = logger.NewFile(opts.logFile)
		if err != nil {
			return nil, err
		}
	}
	zap.ReplaceGlobals(log.Desugar())
	return log, nil
}

func cliLogger() *zap.SugaredLogger {
	if !opts.verbose {
		return logger.Nop()
	}
	return logger.New()
}
