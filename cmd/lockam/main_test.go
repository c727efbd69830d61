package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lockam/lockam/internal/credentials"
	"github.com/lockam/lockam/internal/setup"
)

// testEnv isolates config and data dirs and returns the flags pointing the
// store and marker into a temp dir.
func testEnv(t *testing.T, extra ...string) []string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))
	t.Setenv("HOME", tmp)
	base := []string{
		"--database.dsn", filepath.Join(tmp, "data", "lockam.db"),
		"--install.marker", filepath.Join(tmp, "data", ".installed"),
		"--language", "en",
	}
	return append(base, extra...)
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func with(env []string, args ...string) []string {
	return append(append([]string{}, args...), env...)
}

func setupArgs(env []string, password string) (string, []string) {
	return password + "\n", with(env, "setup",
		"--full-name", "Ada Lovelace",
		"--email", "ada@example.com",
		"--username", "admin",
		"--dob", "1990-12-10",
		"--password-stdin")
}

func TestNewRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()
	want := []string{"status", "setup", "login", "users", "export", "db", "config"}
	for _, n := range want {
		found := false
		for _, c := range cmd.Commands() {
			if c.Name() == n {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected subcommand %s to be registered", n)
		}
	}
	if cmd.Version == "" {
		t.Fatalf("expected a version string")
	}
}

func TestStatus_FreshDevice(t *testing.T) {
	env := testEnv(t)
	out, err := run(t, "", with(env, "status")...)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "fresh install") || !strings.Contains(out, "No admin registered.") {
		t.Fatalf("unexpected status output:\n%s", out)
	}
}

func TestSetupLoginFlow(t *testing.T) {
	env := testEnv(t)

	stdin, args := setupArgs(env, "engine42")
	out, err := run(t, stdin, args...)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if !strings.Contains(out, "installed successfully") || !strings.Contains(out, "admin") {
		t.Fatalf("unexpected setup output:\n%s", out)
	}

	out, err = run(t, "", with(env, "status")...)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Install state: installed") || !strings.Contains(out, "Registered users: admin") {
		t.Fatalf("unexpected status output:\n%s", out)
	}

	out, err = run(t, "engine42\n", with(env, "login")...)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Login successful.") {
		t.Fatalf("unexpected login output:\n%s", out)
	}

	_, err = run(t, "engine43\n", with(env, "login")...)
	if !errors.Is(err, errLoginFailed) {
		t.Fatalf("wrong password: expected errLoginFailed, got %v", err)
	}

	stdin, args = setupArgs(env, "engine42")
	if _, err := run(t, stdin, args...); !errors.Is(err, setup.ErrAlreadyInstalled) {
		t.Fatalf("second setup: expected ErrAlreadyInstalled, got %v", err)
	}
}

func TestSetup_PromptsForMissingValues(t *testing.T) {
	env := testEnv(t)
	stdin := strings.Join([]string{"Ada Lovelace", "", "admin", "1990-12-10", "engine42", "engine42"}, "\n") + "\n"
	if _, err := run(t, stdin, with(env, "setup")...); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := run(t, "engine42\n", with(env, "login")...); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestSetup_PasswordMismatch(t *testing.T) {
	env := testEnv(t)
	stdin := "Ada Lovelace\n\nadmin\n1990-12-10\nengine42\nengine24\n"
	_, err := run(t, stdin, with(env, "setup")...)
	if err == nil || !strings.Contains(err.Error(), "do not match") {
		t.Fatalf("expected mismatch error, got %v", err)
	}
}

func TestSetup_InvalidInputLeavesDeviceFresh(t *testing.T) {
	env := testEnv(t)
	stdin, args := setupArgs(env, "12")
	_, err := run(t, stdin, args...)
	if err == nil || !strings.Contains(err.Error(), "Password") {
		t.Fatalf("expected password validation error, got %v", err)
	}
	marker := env[3]
	if _, statErr := os.Stat(marker); !os.IsNotExist(statErr) {
		t.Fatalf("marker must not exist after failed setup: %v", statErr)
	}

	_, err = run(t, "engine42\n", with(env, "setup",
		"--full-name", "Ada Lovelace", "--username", "admin",
		"--dob", "10/12/1990", "--email", "", "--password-stdin")...)
	if err == nil || !strings.Contains(err.Error(), "YYYY-MM-DD") {
		t.Fatalf("expected date format error, got %v", err)
	}
}

func TestUsers_MultiPolicy(t *testing.T) {
	env := testEnv(t, "--credentials.policy", "multi")

	for _, u := range []string{"alice", "bob"} {
		if _, err := run(t, "secret-"+u+"\n", with(env, "users", "add", u, "--password-stdin")...); err != nil {
			t.Fatalf("users add %s: %v", u, err)
		}
	}
	_, err := run(t, "another1\n", with(env, "users", "add", "alice", "--password-stdin")...)
	if !errors.Is(err, credentials.ErrDuplicateUser) {
		t.Fatalf("duplicate add: expected ErrDuplicateUser, got %v", err)
	}

	out, err := run(t, "", with(env, "users", "list")...)
	if err != nil {
		t.Fatalf("users list: %v", err)
	}
	if out != "alice\nbob\n" {
		t.Fatalf("users list output = %q", out)
	}

	if _, err := run(t, "alice\nsecret-alice\n", with(env, "login")...); err != nil {
		t.Fatalf("login alice: %v", err)
	}
	if _, err := run(t, "secret-bob\n", with(env, "login", "--username", "bob")...); err != nil {
		t.Fatalf("login bob: %v", err)
	}
	if _, err := run(t, "mallory\nsecret-alice\n", with(env, "login")...); !errors.Is(err, errLoginFailed) {
		t.Fatalf("unknown user login: %v", err)
	}

	if _, err := run(t, "", with(env, "users", "remove", "alice")...); err != nil {
		t.Fatalf("users remove: %v", err)
	}
	if _, err := run(t, "", with(env, "users", "remove", "alice")...); !errors.Is(err, errUserNotFound) {
		t.Fatalf("second remove: expected errUserNotFound, got %v", err)
	}
}

func TestUsers_SinglePolicyRefusesManagement(t *testing.T) {
	env := testEnv(t)
	if _, err := run(t, "secret1\n", with(env, "users", "add", "alice", "--password-stdin")...); !errors.Is(err, credentials.ErrPolicyMismatch) {
		t.Fatalf("users add: expected ErrPolicyMismatch, got %v", err)
	}
	if _, err := run(t, "", with(env, "users", "remove", "alice")...); !errors.Is(err, credentials.ErrPolicyMismatch) {
		t.Fatalf("users remove: expected ErrPolicyMismatch, got %v", err)
	}
}

func TestUsersAdd_ValidatesInput(t *testing.T) {
	env := testEnv(t, "--credentials.policy", "multi")
	if _, err := run(t, "secret1\n", with(env, "users", "add", "x!", "--password-stdin")...); err == nil {
		t.Fatalf("expected username validation error")
	}
	if _, err := run(t, "has space\n", with(env, "users", "add", "carol", "--password-stdin")...); err == nil {
		t.Fatalf("expected password validation error")
	}
}

func TestExport_NoSecrets(t *testing.T) {
	env := testEnv(t)

	out, err := run(t, "", with(env, "export")...)
	if err != nil {
		t.Fatalf("export on empty store: %v", err)
	}
	if strings.TrimSpace(out) != "{}" {
		t.Fatalf("expected empty object, got %q", out)
	}

	stdin, args := setupArgs(env, "engine42")
	if _, err := run(t, stdin, args...); err != nil {
		t.Fatalf("setup: %v", err)
	}

	for _, format := range []string{"json", "yaml"} {
		out, err := run(t, "", with(env, "export", "--format", format)...)
		if err != nil {
			t.Fatalf("export %s: %v", format, err)
		}
		if !strings.Contains(out, "admin") || !strings.Contains(out, "install_id") {
			t.Fatalf("export %s missing fields:\n%s", format, out)
		}
		if strings.Contains(out, "salt") || strings.Contains(out, "hash") || strings.Contains(out, "engine42") {
			t.Fatalf("export %s leaks secrets:\n%s", format, out)
		}
	}

	if _, err := run(t, "", with(env, "export", "--format", "xml")...); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestDBMaintain(t *testing.T) {
	env := testEnv(t)
	out, err := run(t, "", with(env, "db", "maintain", "--timeout", "30")...)
	if err != nil {
		t.Fatalf("db maintain: %v", err)
	}
	if !strings.Contains(out, "maintenance completed") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestConfigWriteAndShow(t *testing.T) {
	env := testEnv(t, "--credentials.policy", "multi")
	out, err := run(t, "", with(env, "config", "write")...)
	if err != nil {
		t.Fatalf("config write: %v", err)
	}
	path := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "lockam", "lockam.yaml")
	if !strings.Contains(out, path) {
		t.Fatalf("expected path in output, got %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "policy: multi") {
		t.Fatalf("written config lacks policy:\n%s", data)
	}

	// The written file is now picked up without the policy flag.
	out, err = run(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "policy: multi") {
		t.Fatalf("config show did not read the written file:\n%s", out)
	}
}

func TestExplicitConfigMissing(t *testing.T) {
	env := testEnv(t)
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := run(t, "", with(env, "status", "--config", missing)...); err == nil {
		t.Fatalf("expected error for missing --config file")
	}
}

func TestInvalidPolicy(t *testing.T) {
	env := testEnv(t, "--credentials.policy", "both")
	if _, err := run(t, "", with(env, "status")...); err == nil {
		t.Fatalf("expected policy parse error")
	}
}

func TestGermanMessages(t *testing.T) {
	env := testEnv(t)
	env[len(env)-1] = "de"
	out, err := run(t, "", with(env, "status")...)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Lockam-Status") {
		t.Fatalf("expected German output:\n%s", out)
	}
}
