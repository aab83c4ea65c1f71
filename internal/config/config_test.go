package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/onehabit/internal/constants"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	if *cfg != *want {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
	if cfg.Analytics.PatternWindowDays != constants.DefaultPatternWindowDays {
		t.Errorf("PatternWindowDays = %d", cfg.Analytics.PatternWindowDays)
	}
	if cfg.Backup.Keep != constants.MaxBackups {
		t.Errorf("Backup.Keep = %d", cfg.Backup.Keep)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/habits.db
profile:
  user: alice
  timezone: America/New_York
log:
  level: debug
  json: true
analytics:
  pattern_window_days: 14
backup:
  enabled: true
  keep: 3
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/habits.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Profile.User != "alice" || cfg.Profile.Timezone != "America/New_York" {
		t.Errorf("Profile = %+v", cfg.Profile)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.JSON {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Analytics.PatternWindowDays != 14 {
		t.Errorf("PatternWindowDays = %d, want 14", cfg.Analytics.PatternWindowDays)
	}
	if cfg.Analytics.BestDayMinSamples != constants.BestDayMinSamples {
		t.Errorf("BestDayMinSamples = %d, want default", cfg.Analytics.BestDayMinSamples)
	}
	if !cfg.Backup.Enabled || cfg.Backup.Keep != 3 {
		t.Errorf("Backup = %+v", cfg.Backup)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "profile:\n  user: alice\nlog:\n  max_size_mb: 5\n")
	t.Setenv("ONEHABIT_PROFILE_USER", "bob")
	t.Setenv("ONEHABIT_LOG_MAX_SIZE_MB", "20")
	t.Setenv("ONEHABIT_ANALYTICS_TREND_DAYS", "14")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Profile.User != "bob" {
		t.Errorf("Profile.User = %q, want bob", cfg.Profile.User)
	}
	if cfg.Log.MaxSizeMB != 20 {
		t.Errorf("Log.MaxSizeMB = %d, want 20", cfg.Log.MaxSizeMB)
	}
	if cfg.Analytics.TrendDays != 14 {
		t.Errorf("Analytics.TrendDays = %d, want 14", cfg.Analytics.TrendDays)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"timezone", "profile:\n  timezone: Mars/Olympus\n", "timezone"},
		{"log level", "log:\n  level: loud\n", "log level"},
		{"window", "analytics:\n  pattern_window_days: -3\n", "pattern_window_days"},
		{"yaml", "profile: [unclosed\n", "failed to load config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"ONEHABIT_DATABASE_PATH":                  "database.path",
		"ONEHABIT_LOG_MAX_SIZE_MB":                "log.max_size_mb",
		"ONEHABIT_ANALYTICS_BEST_DAY_MIN_SAMPLES": "analytics.best_day_min_samples",
		"ONEHABIT_DEBUG":                          "debug",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandHome("~/.config/onehabit"); got != filepath.Join(home, ".config/onehabit") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/var/lib/onehabit.db"); got != "/var/lib/onehabit.db" {
		t.Errorf("ExpandHome() changed an absolute path: %q", got)
	}
	if got := ExpandHome("postgres://localhost/onehabit"); got != "postgres://localhost/onehabit" {
		t.Errorf("ExpandHome() changed a connection string: %q", got)
	}
}
