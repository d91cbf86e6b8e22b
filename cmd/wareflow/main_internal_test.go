package main

import (
	"sync"
	"testing"
	"time"

	"wareflow/internal/config"
	"wareflow/internal/orders"

	flag "github.com/spf13/pflag"
)

var configInitOnce sync.Once

func ensureTestConfig(t *testing.T) {
	t.Helper()
	configInitOnce.Do(func() {
		dir := t.TempDir()
		if err := config.Initialize(
			config.WithProjectConfig(""),
			config.WithUserConfig(""),
			config.WithWorkingDir(dir),
		); err != nil {
			t.Fatalf("init config: %v", err)
		}
	})
	overrides := map[string]any{
		config.KeyAutoRefreshSeconds: 3,
		config.KeyDatabaseDriver:     config.DriverSQLite,
		config.KeyDatabasePath:       "",
		config.KeyDatabaseDSN:        "",
		config.KeyOutputFormat:       "rich",
		config.KeyOutputJSON:         false,
		config.KeyShowArchived:       false,
		config.KeySeedDemo:           true,
	}
	if err := config.ApplyOverrides(overrides); err != nil {
		t.Fatalf("apply overrides: %v", err)
	}
}

func buildRuntimeOptionsForArgs(t *testing.T, args []string, overrides ...map[string]any) runtimeOptions {
	t.Helper()
	ensureTestConfig(t)
	if len(overrides) > 0 && len(overrides[0]) > 0 {
		if err := config.ApplyOverrides(overrides[0]); err != nil {
			t.Fatalf("apply custom overrides: %v", err)
		}
	}

	fs := flag.NewFlagSet("wareflow-test", flag.ContinueOnError)
	flags := registerRuntimeFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse args: %v", err)
	}
	return computeRuntimeOptions(flags, fs.Changed)
}

func TestComputeRuntimeOptions_AutoRefreshSecondsFlagOverridesConfig(t *testing.T) {
	opts := buildRuntimeOptionsForArgs(t, []string{"--auto-refresh-seconds=5"}, map[string]any{config.KeyAutoRefreshSeconds: 9})
	if opts.refreshInterval != 5*time.Second {
		t.Fatalf("expected refresh interval 5s, got %v", opts.refreshInterval)
	}
	if !opts.autoRefresh {
		t.Fatalf("expected positive seconds to enable auto refresh")
	}
}

func TestComputeRuntimeOptions_AutoRefreshSecondsZeroDisables(t *testing.T) {
	opts := buildRuntimeOptionsForArgs(t, []string{"--auto-refresh-seconds=0"})
	if opts.autoRefresh || opts.refreshInterval != 0 {
		t.Fatalf("expected zero seconds to disable auto refresh, got %v", opts.refreshInterval)
	}
}

func TestComputeRuntimeOptions_ConfigSecondsUsed(t *testing.T) {
	opts := buildRuntimeOptionsForArgs(t, []string{}, map[string]any{config.KeyAutoRefreshSeconds: 7})
	if opts.refreshInterval != 7*time.Second {
		t.Fatalf("expected config auto refresh seconds to drive interval, got %v", opts.refreshInterval)
	}
}

func TestComputeRuntimeOptions_NegativeSecondsDisable(t *testing.T) {
	opts := buildRuntimeOptionsForArgs(t, []string{"--auto-refresh-seconds=-5"})
	if opts.autoRefresh || opts.refreshInterval != 0 {
		t.Fatalf("expected negative seconds to disable auto refresh, got %v", opts.refreshInterval)
	}
}

func TestComputeRuntimeOptions_DBPathOverride(t *testing.T) {
	opts := buildRuntimeOptionsForArgs(t, []string{"--db-path", " /tmp/custom.db "})
	if opts.dbPath != "/tmp/custom.db" {
		t.Fatalf("expected db path trimmed, got %q", opts.dbPath)
	}
}

func TestComputeRuntimeOptions_DriverFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "config default", args: nil, want: config.DriverSQLite},
		{name: "memory", args: []string{"--driver", "memory"}, want: config.DriverMemory},
		{name: "upper case and whitespace", args: []string{"--driver", "  POSTGRES "}, want: config.DriverPostgres},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := buildRuntimeOptionsForArgs(t, tt.args)
			if opts.driver != tt.want {
				t.Fatalf("driver = %q, want %q", opts.driver, tt.want)
			}
		})
	}
}

func TestComputeRuntimeOptions_ConfigWinsWhenFlagNotSet(t *testing.T) {
	opts := buildRuntimeOptionsForArgs(t, nil, map[string]any{
		config.KeyShowArchived: true,
		config.KeyOutputJSON:   true,
		config.KeySeedDemo:     false,
	})
	if !opts.showArchived || !opts.jsonOutput || opts.seedDemo {
		t.Fatalf("expected config values, got %+v", opts)
	}
}

func TestComputeRuntimeOptions_BoolFlagsOverrideConfig(t *testing.T) {
	opts := buildRuntimeOptionsForArgs(t, []string{"--json", "--show-archived", "--seed-demo=false", "-d"})
	if !opts.jsonOutput || !opts.showArchived || opts.seedDemo || !opts.debug {
		t.Fatalf("expected flag values, got %+v", opts)
	}
}

func TestComputeRuntimeOptions_JSONQuery(t *testing.T) {
	opts := buildRuntimeOptionsForArgs(t, []string{"--filter", "LATE", "--search", " sonepar ", "--show-archived"})
	q := opts.query()
	if q.Filter != orders.FilterLate || q.Search != "sonepar" || !q.ShowArchived {
		t.Fatalf("unexpected query %+v", q)
	}
}

func TestStoreOverrides(t *testing.T) {
	opts := buildRuntimeOptionsForArgs(t, []string{"--driver", "postgres", "--dsn", "postgres://localhost/wareflow"})
	if err := config.ApplyOverrides(opts.storeOverrides()); err != nil {
		t.Fatalf("apply overrides: %v", err)
	}
	if got := config.GetString(config.KeyDatabaseDriver); got != config.DriverPostgres {
		t.Fatalf("driver = %q", got)
	}
	if got := config.GetString(config.KeyDatabaseDSN); got != "postgres://localhost/wareflow" {
		t.Fatalf("dsn = %q", got)
	}
}

func TestSanitizeAutoRefreshSeconds(t *testing.T) {
	if sanitizeAutoRefreshSeconds(-1) != 0 || sanitizeAutoRefreshSeconds(4) != 4 {
		t.Fatal("negative seconds must clamp to zero")
	}
}
