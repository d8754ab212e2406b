package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bizcard/pkg/log"
	"bizcard/test/fixtures"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { log.SetDefault(nil) })

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--env", ""))
	err := cmd.Execute()
	return out.String(), err
}

func TestPlatformsCmd(t *testing.T) {
	out, err := execute(t, "platforms")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 25 || lines[0] != "behance" {
		t.Errorf("unexpected platforms output %q", out)
	}
}

func TestResolveCmd(t *testing.T) {
	out, err := execute(t, "resolve", "Linked In", "@satya")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var got resolveOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %q", out)
	}
	want := resolveOutput{Platform: "Linked In", Username: "satya", ProfileURL: "https://linkedin.com/in/satya", IsValid: true}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestResolveCmd_RequiresTwoArgs(t *testing.T) {
	if _, err := execute(t, "resolve", "github"); err == nil {
		t.Error("expected an argument error")
	}
}

func TestImportCmd_SQLite(t *testing.T) {
	dir := t.TempDir()
	seedFile := filepath.Join(dir, "cards.yaml")
	if err := os.WriteFile(seedFile, []byte(fixtures.SeedYAML()), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	t.Setenv("BIZCARD_DATABASE_DSN", filepath.Join(dir, "db", "cards.db"))
	t.Setenv("BIZCARD_SERVER_BASE_URL", "https://cards.example.com")

	out, err := execute(t, "import", seedFile, "--user", "user-1")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.HasPrefix(out, "imported 2 cards\n") {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.Contains(out, "https://cards.example.com/card/") {
		t.Error("public card should print its share URL")
	}
	if !strings.Contains(out, "Personal\tprivate") {
		t.Error("private card should be marked private")
	}
}

func TestImportCmd_RequiresUser(t *testing.T) {
	if _, err := execute(t, "import", "cards.yaml"); err == nil {
		t.Error("expected missing --user error")
	}
}

func TestMigrateCmd(t *testing.T) {
	t.Setenv("BIZCARD_DATABASE_DSN", filepath.Join(t.TempDir(), "cards.db"))

	out, err := execute(t, "migrate")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "migrations applied" {
		t.Errorf("unexpected output %q", out)
	}

	// Running again is a no-op.
	if _, err := execute(t, "migrate"); err != nil {
		t.Errorf("second migrate error = %v", err)
	}
}

func TestMigrateCmd_MemoryDriver(t *testing.T) {
	t.Setenv("BIZCARD_DATABASE_DRIVER", "memory")

	if _, err := execute(t, "migrate"); err == nil {
		t.Error("migrating the memory store should fail")
	}
}
