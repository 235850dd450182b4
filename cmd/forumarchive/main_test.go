package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"forumarchive/internal/config"
	"forumarchive/internal/testsupport"
)

const sampleThread = `thead_id: "1001"
metadata:
  topic: Welcome
  folder: General
messages:
  - id: "1001.1"
    from: Alice
    date: "Mon Jan 01 10:30:00 2024"
    content: "<p>Hello</p>"
  - id: "1001.2"
    from: Bob
    in_reply_to: "1001.1"
    content: "<p>Hi</p>"
`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	workDir    string
}

// setupCLITestEnv isolates HOME, the working directory, and FORUMARCHIVE_*
// variables, and writes a config file pointing at a fresh store.
func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"FORUMARCHIVE_STORE", "FORUMARCHIVE_OUTPUT", "FORUMARCHIVE_TITLE"} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
	work := t.TempDir()
	t.Chdir(work)

	cfg := testsupport.NewConfig(t, opts...)
	configPath := filepath.Join(testsupport.BaseDir(cfg), "forumarchive.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath, workDir: work}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nstore_dir = %q\noutput_dir = %q\n\n[site]\ntitle = %q\n\n[catalog]\nenabled = %t\n",
		cfg.Paths.StoreDir,
		cfg.Paths.OutputDir,
		cfg.Site.Title,
		cfg.Catalog.Enabled,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
