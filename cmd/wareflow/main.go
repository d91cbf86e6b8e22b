package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"wareflow/internal/config"
	"wareflow/internal/debug"
	"wareflow/internal/orders"
	"wareflow/internal/store"
	"wareflow/internal/ui"
	"wareflow/internal/ui/theme"
	"wareflow/internal/warehouse"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"
)

const (
	storeOpenTimeout = 10 * time.Second
	jsonTimeout      = 10 * time.Second
	spinnerDelay     = 150 * time.Millisecond
)

func main() {
	if err := config.Initialize(config.WithDotEnv(".env")); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("wareflow", flag.ContinueOnError)
	versionFlag := fs.Bool("version", false, "Print version information and exit")
	flags := registerRuntimeFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if *versionFlag {
		printVersion()
		os.Exit(0)
	}

	runtime := computeRuntimeOptions(flags, fs.Changed)
	choice, err := chooseStore(chooseStoreOptions{
		Current:     storeChoice{Driver: runtime.driver, DSN: runtime.dsn},
		FlagSet:     fs.Changed("driver"),
		Interactive: !runtime.jsonOutput,
		Out:         os.Stdout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	runtime.driver, runtime.dsn = choice.Driver, choice.DSN
	if err := config.ApplyOverrides(runtime.storeOverrides()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := debug.Init(runtime.debug, debug.WithLevel(config.GetString(config.KeyDebugLevel))); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log unavailable: %v\n", err)
	}
	defer debug.Close()

	if runtime.theme != "" && !theme.SetTheme(runtime.theme) {
		debug.Logf("unknown theme %q, keeping %s", runtime.theme, theme.CurrentName())
	}

	runtime.summary = os.Stdout
	newAnimator := func() startupAnimator {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return NewStartupDisplay(os.Stdout)
		}
		return newStartupSpinner(os.Stderr, spinnerDelay)
	}

	err = runWithRuntime(runtime, ui.NewApp, func(app *ui.App) programRunner {
		return tea.NewProgram(app, tea.WithAltScreen())
	}, newAnimator, printOrdersJSON(os.Stdout, runtime.query()), openService(runtime))
	if err != nil {
		debug.Logf("exit with error: %v", err)
		debug.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

type appBuilder func(ui.Config) (*ui.App, error)

// startupAnimator receives startup stages until the UI takes over the screen.
type startupAnimator interface {
	ui.StartupReporter
	Stop()
}

// jsonPrinter writes the order list instead of starting the UI.
type jsonPrinter func(ctx context.Context, svc *warehouse.Service) error

// serviceOpener connects the store and returns the service plus its closer.
type serviceOpener func(ctx context.Context, reporter ui.StartupReporter) (*warehouse.Service, func() error, error)

func runWithRuntime(runtime runtimeOptions, builder appBuilder, factory programFactory, newAnimator func() startupAnimator, printJSON jsonPrinter, open serviceOpener) error {
	var animator startupAnimator
	if !runtime.jsonOutput && newAnimator != nil {
		animator = newAnimator()
	}
	stopped := false
	stop := func() {
		if animator != nil && !stopped {
			stopped = true
			animator.Stop()
		}
	}
	defer stop()

	var reporter ui.StartupReporter
	if animator != nil {
		reporter = animator
		reporter.Stage(ui.StartupStageInit, "Reading configuration...")
	}

	var svc *warehouse.Service
	if open != nil {
		ctx, cancel := context.WithTimeout(context.Background(), storeOpenTimeout)
		opened, closeStore, err := open(ctx, reporter)
		cancel()
		if err != nil {
			stop()
			return fmt.Errorf("open store: %w", err)
		}
		defer func() {
			if cerr := closeStore(); cerr != nil {
				debug.Logf("close store: %v", cerr)
			}
		}()
		svc = opened
	}

	if runtime.jsonOutput {
		if printJSON == nil {
			return fmt.Errorf("json printer is nil")
		}
		ctx, cancel := context.WithTimeout(context.Background(), jsonTimeout)
		defer cancel()
		return printJSON(ctx, svc)
	}

	if builder == nil {
		stop()
		return fmt.Errorf("app builder is nil")
	}
	var refresh time.Duration
	if runtime.autoRefresh {
		refresh = runtime.refreshInterval
	}
	app, err := builder(ui.Config{
		Service:         svc,
		OutputFormat:    runtime.outputFormat,
		Version:         Version,
		ShowArchived:    runtime.showArchived,
		RefreshInterval: refresh,
		StartupReporter: reporter,
	})
	stop()
	if err != nil {
		return fmt.Errorf("initialize UI: %w", err)
	}

	if err := runProgram(app, factory); err != nil {
		return err
	}
	if runtime.summary != nil {
		printExitSummary(runtime.summary, ExitSummary{
			Version:     Version,
			EndStats:    app.Stats(),
			SessionInfo: app.SessionInfo(),
		})
	}
	return nil
}

func runProgram(app *ui.App, factory programFactory) error {
	if factory == nil {
		return fmt.Errorf("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}

// openService opens the configured store, seeds demo data into an empty one
// when enabled, and wraps it in a warehouse service.
func openService(runtime runtimeOptions) serviceOpener {
	return func(ctx context.Context, reporter ui.StartupReporter) (*warehouse.Service, func() error, error) {
		opts, err := store.OptionsFromConfig()
		if err != nil {
			return nil, nil, err
		}
		report(reporter, ui.StartupStageOpeningStore, fmt.Sprintf("Opening %s store...", opts.Driver))
		debug.Logf("opening %s store (path=%q)", opts.Driver, opts.Path)

		st, err := store.Open(ctx, opts)
		if err != nil {
			return nil, nil, err
		}
		if runtime.seedDemo {
			report(reporter, ui.StartupStageSeeding, "Checking for demo data...")
			seeded, err := store.SeedDemo(ctx, st, time.Now())
			if err != nil {
				_ = st.Close()
				return nil, nil, fmt.Errorf("seed demo data: %w", err)
			}
			if seeded {
				debug.Log("seeded demo data into empty store")
			}
		}
		return warehouse.New(st, warehouse.WithAuthor(runtime.author)), st.Close, nil
	}
}

func report(reporter ui.StartupReporter, stage ui.StartupStage, detail string) {
	if reporter != nil {
		reporter.Stage(stage, detail)
	}
}

type runtimeFlags struct {
	autoRefreshSeconds *int
	driver             *string
	dbPath             *string
	dsn                *string
	outputFormat       *string
	theme              *string
	filter             *string
	search             *string
	jsonOutput         *bool
	showArchived       *bool
	seedDemo           *bool
	debug              *bool
}

type runtimeOptions struct {
	refreshInterval time.Duration
	autoRefresh     bool
	driver          string
	dbPath          string
	dsn             string
	outputFormat    string
	theme           string
	author          string
	filter          orders.Filter
	search          string
	jsonOutput      bool
	showArchived    bool
	seedDemo        bool
	debug           bool

	summary io.Writer
}

func registerRuntimeFlags(fs *flag.FlagSet) runtimeFlags {
	return runtimeFlags{
		autoRefreshSeconds: fs.Int("auto-refresh-seconds", sanitizeAutoRefreshSeconds(config.GetInt(config.KeyAutoRefreshSeconds)), "Auto-refresh interval in seconds (0 disables auto refresh)"),
		driver:             fs.String("driver", config.GetString(config.KeyDatabaseDriver), "Store backend (sqlite, postgres, memory)"),
		dbPath:             fs.String("db-path", config.GetString(config.KeyDatabasePath), "Path to the SQLite database file"),
		dsn:                fs.String("dsn", config.GetString(config.KeyDatabaseDSN), "Postgres connection string"),
		outputFormat:       fs.String("output-format", config.GetString(config.KeyOutputFormat), "Detail panel markdown style (rich, light, plain)"),
		theme:              fs.String("theme", config.GetString(config.KeyTheme), "Colour theme"),
		filter:             fs.String("filter", string(orders.FilterAll), "Order bucket for --json (all, open, late, completed)"),
		search:             fs.String("search", "", "Free-text order search for --json"),
		jsonOutput:         fs.Bool("json", config.GetBool(config.KeyOutputJSON), "Print orders as JSON and exit"),
		showArchived:       fs.Bool("show-archived", config.GetBool(config.KeyShowArchived), "Include archived orders"),
		seedDemo:           fs.Bool("seed-demo", config.GetBool(config.KeySeedDemo), "Seed demo data into an empty store"),
		debug:              fs.BoolP("debug", "d", false, "Write a debug log"),
	}
}

// computeRuntimeOptions resolves every setting from config, letting flags
// that were set explicitly on the command line win.
func computeRuntimeOptions(flags runtimeFlags, changed func(string) bool) runtimeOptions {
	set := func(name string) bool {
		return changed != nil && changed(name)
	}
	stringOpt := func(key, name string, value *string) string {
		if set(name) && value != nil {
			return strings.TrimSpace(*value)
		}
		return strings.TrimSpace(config.GetString(key))
	}
	boolOpt := func(key, name string, value *bool) bool {
		if set(name) && value != nil {
			return *value
		}
		return config.GetBool(key)
	}

	seconds := sanitizeAutoRefreshSeconds(config.GetInt(config.KeyAutoRefreshSeconds))
	if set("auto-refresh-seconds") && flags.autoRefreshSeconds != nil {
		seconds = sanitizeAutoRefreshSeconds(*flags.autoRefreshSeconds)
	}

	opts := runtimeOptions{
		refreshInterval: time.Duration(seconds) * time.Second,
		autoRefresh:     seconds > 0,
		driver:          strings.ToLower(stringOpt(config.KeyDatabaseDriver, "driver", flags.driver)),
		dbPath:          stringOpt(config.KeyDatabasePath, "db-path", flags.dbPath),
		dsn:             stringOpt(config.KeyDatabaseDSN, "dsn", flags.dsn),
		outputFormat:    stringOpt(config.KeyOutputFormat, "output-format", flags.outputFormat),
		theme:           stringOpt(config.KeyTheme, "theme", flags.theme),
		author:          strings.TrimSpace(config.GetString(config.KeyAuthor)),
		filter:          orders.FilterAll,
		jsonOutput:      boolOpt(config.KeyOutputJSON, "json", flags.jsonOutput),
		showArchived:    boolOpt(config.KeyShowArchived, "show-archived", flags.showArchived),
		seedDemo:        boolOpt(config.KeySeedDemo, "seed-demo", flags.seedDemo),
	}
	if flags.filter != nil {
		opts.filter = orders.ParseFilter(*flags.filter)
	}
	if flags.search != nil {
		opts.search = strings.TrimSpace(*flags.search)
	}
	if flags.debug != nil {
		opts.debug = *flags.debug
	}
	return opts
}

// storeOverrides pushes the resolved database settings back into config so
// store.OptionsFromConfig sees command-line values.
func (r runtimeOptions) storeOverrides() map[string]any {
	return map[string]any{
		config.KeyDatabaseDriver: r.driver,
		config.KeyDatabasePath:   r.dbPath,
		config.KeyDatabaseDSN:    r.dsn,
	}
}

func (r runtimeOptions) query() orders.Query {
	return orders.Query{
		ShowArchived: r.showArchived,
		Search:       r.search,
		Filter:       r.filter,
	}
}

func sanitizeAutoRefreshSeconds(seconds int) int {
	if seconds < 0 {
		return 0
	}
	return seconds
}
