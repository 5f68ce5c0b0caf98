package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/amishk599/tailor/internal/ai"
	"github.com/amishk599/tailor/internal/config"
	"github.com/amishk599/tailor/internal/model"
	"github.com/amishk599/tailor/internal/notifier"
	"github.com/amishk599/tailor/internal/store"
	"github.com/amishk599/tailor/internal/tui"
	"github.com/amishk599/tailor/internal/workflow"
)

var (
	cfgPath string
	debug   bool
	noSave  bool
	offline bool
	plain   bool
)

var rootCmd = &cobra.Command{
	Use:           "tailor",
	Short:         "Tailor a resume to a job description with an LLM",
	Long:          "tailor parses a resume into structured JSON, scores it against a job description, rewrites individual sections and exports the result as plain text.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: TAILOR_CONFIG env var or ./tailor.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noSave, "no-save", false, "do not read or write the saved snapshot")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "never call a provider; use demo content for every step")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "disable spinners and interactive views")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > TAILOR_CONFIG env var > "./tailor.yaml".
// Only the implicit default may be missing, in which case defaults are used.
func loadConfig(path string) (*config.Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	if path != "" {
		return config.Load(path)
	}
	if env := os.Getenv("TAILOR_CONFIG"); env != "" {
		return config.Load(env)
	}
	return config.LoadOrDefault("tailor.yaml")
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// interactive reports whether spinners and bubbletea views may take over the
// terminal.
func interactive() bool {
	if plain {
		return false
	}
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// app bundles everything a command needs.
type app struct {
	cfg     *config.Config
	ctrl    *workflow.Controller
	logger  *slog.Logger
	console *notifier.ConsoleNotifier // nil unless interactive
	close   func() error
}

// newApp loads config, opens the snapshot store and restores the controller.
func newApp() (*app, error) {
	logger := setupLogger(debug)
	tty := interactive()

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Debug("config loaded",
		"store", cfg.Store.Path,
		"snapshot", cfg.Store.Snapshot,
		"timeout", cfg.Providers.Timeout.String(),
	)

	var snapStore model.SnapshotStore
	closeFn := func() error { return nil }
	if noSave {
		logger.Debug("no-save mode enabled, snapshot will not be persisted")
		snapStore = store.NewNopStore()
	} else {
		sqlStore, err := store.NewSQLiteStore(cfg.Store.Path, cfg.Store.Snapshot)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		snapStore = sqlStore
		closeFn = sqlStore.Close
	}

	// Spinners and alt-screen views own the terminal, so interactive runs
	// report through styled notices and keep logs quiet unless --debug.
	stepLogger := logger
	var (
		n       model.Notifier = notifier.NewLogNotifier(logger)
		console *notifier.ConsoleNotifier
	)
	if tty {
		console = notifier.NewConsoleNotifier(os.Stderr)
		n = console
		if !debug {
			stepLogger = discardLogger()
		}
	}

	ctrl := workflow.NewController(setupAssistant(cfg, stepLogger), snapStore, n, stepLogger)
	if err := ctrl.Restore(); err != nil {
		closeFn()
		return nil, err
	}

	return &app{cfg: cfg, ctrl: ctrl, logger: logger, console: console, close: closeFn}, nil
}

func setupAssistant(cfg *config.Config, logger *slog.Logger) workflow.Assistant {
	if offline {
		logger.Debug("offline mode enabled, using demo content")
		return ai.NewNopAssistant()
	}

	// The adapter bounds every call with its own timer; the client timeout
	// only guards against a stuck connection.
	httpClient := &http.Client{Timeout: 2 * cfg.Providers.Timeout}
	adapter := ai.NewAdapter(
		providerSettings(cfg.Providers.OpenAI),
		providerSettings(cfg.Providers.Anthropic),
		httpClient,
		logger,
		ai.WithDefaultTimeout(cfg.Providers.Timeout),
	)
	return ai.NewAssistant(adapter, logger)
}

func providerSettings(p config.ProviderConfig) ai.ProviderSettings {
	return ai.ProviderSettings{
		BaseURL:   p.BaseURL,
		Model:     p.Model,
		MaxTokens: p.MaxTokens,
		Version:   p.Version,
	}
}

// withApp runs fn with a fully wired app and closes it afterwards.
func withApp(fn func(a *app) error) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(); err != nil {
			a.logger.Warn("closing store", "error", err)
		}
	}()
	return fn(a)
}

// runStep runs fn behind a spinner when the terminal allows it. Notices
// raised meanwhile are printed once the spinner is gone.
func runStep[T any](ctx context.Context, a *app, message string, fn func(ctx context.Context) (T, error)) (T, error) {
	if !interactive() || a.console == nil {
		return fn(ctx)
	}
	a.console.Hold()
	defer func() {
		if err := a.console.Release(); err != nil {
			a.logger.Warn("printing notices", "error", err)
		}
	}()
	return tui.RunLoader(ctx, message, fn)
}

// readInput returns the text of path ("-" for stdin) or literal when path is
// empty.
func readInput(ctx context.Context, path, literal string) (string, error) {
	if path == "" {
		return literal, nil
	}
	return readDocument(ctx, path)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
