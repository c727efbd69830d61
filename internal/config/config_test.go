package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/cobra"

	cfg "github.com/lockam/lockam/internal/config"
)

// isolate points the user config and data dirs at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))
	t.Setenv("HOME", tmp)
	return tmp
}

func TestLoadConfig_DefaultsOnly(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG layout only applies on linux")
	}
	tmp := isolate(t)

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Database.Type != "sqlite" || got.Credentials.Policy != "single" || got.Language != "en" {
		t.Fatalf("unexpected defaults: %+v", got)
	}
	wantDSN := filepath.Join(tmp, "data", "lockam", "lockam.db")
	if got.Database.DSN != wantDSN {
		t.Fatalf("DSN = %q, want %q", got.Database.DSN, wantDSN)
	}
	if got.Install.Marker != filepath.Join(tmp, "data", "lockam", ".installed") {
		t.Fatalf("marker = %q", got.Install.Marker)
	}
	if got.Validation.MinAgeYears != 5 {
		t.Fatalf("min age = %d", got.Validation.MinAgeYears)
	}
}

func TestLoadConfig_ReadsExplicitFile(t *testing.T) {
	isolate(t)
	yaml := "database:\n  type: postgres\n  dsn: postgres://user@localhost/lockam\ncredentials:\n  policy: multi\nlanguage: de\n"
	file := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Database.Type != "postgres" || got.Credentials.Policy != "multi" || got.Language != "de" {
		t.Fatalf("file values not applied: %+v", got)
	}
	if got.Validation.MinAgeYears != 5 {
		t.Fatalf("defaults must fill keys the file omits, got %d", got.Validation.MinAgeYears)
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(file, []byte("database: [unterminated\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "lockam.yaml")
	if err := os.WriteFile(file, []byte("credentials:\n  policy: single\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	t.Setenv("LOCKAM_CREDENTIALS_POLICY", "multi")

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Credentials.Policy != "multi" {
		t.Fatalf("env override not applied: %q", got.Credentials.Policy)
	}
}

func TestLoadConfig_FlagsWin(t *testing.T) {
	isolate(t)
	t.Setenv("LOCKAM_INSTALL_MARKER", "/from/env")

	cmd := &cobra.Command{}
	cmd.Flags().String("install.marker", "", "")
	cmd.Flags().Bool("debug", false, "")
	if err := cmd.Flags().Set("install.marker", "/from/flag"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := cmd.Flags().Set("debug", "true"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	got, err := cfg.LoadConfig[cfg.Config](cmd, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Install.Marker != "/from/flag" || !got.Debug {
		t.Fatalf("flags not applied: %+v", got)
	}
}

func TestLoadConfig_UnsetFlagKeepsDefault(t *testing.T) {
	isolate(t)
	cmd := &cobra.Command{}
	cmd.Flags().String("language", "", "")

	got, err := cfg.LoadConfig[cfg.Config](cmd, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Language != "en" {
		t.Fatalf("language = %q, want en", got.Language)
	}
}

func TestWriteConfigFile_RoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits differ on windows")
	}
	isolate(t)

	c := cfg.Config{}
	c.Database.Type = "sqlite"
	c.Database.DSN = "/var/lib/lockam/lockam.db"
	c.Install.Marker = "/var/lib/lockam/.installed"
	c.Credentials.Policy = "multi"
	c.Validation.MinAgeYears = 13
	c.Language = "de"

	path, err := cfg.WriteConfigFile(&c, false)
	if err != nil {
		t.Fatalf("WriteConfigFile: %v", err)
	}
	want, _ := cfg.GetConfigPath(false)
	if path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", fi.Mode().Perm())
	}

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got != c {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, c)
	}
}

func TestGetConfigPath_System(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("system path depends on ProgramData")
	}
	p, err := cfg.GetConfigPath(true)
	if err != nil {
		t.Fatalf("GetConfigPath: %v", err)
	}
	if p != "/etc/lockam/lockam.yaml" {
		t.Fatalf("system path = %q", p)
	}
}
