package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the command tree against a settings file rooted in dir.
func runCLI(t *testing.T, cfg string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", cfg, "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func testSettings(t *testing.T) (cfg, root, downloads string) {
	t.Helper()
	base := t.TempDir()
	root = filepath.Join(base, "config")
	downloads = filepath.Join(base, "Downloads")
	if err := os.Mkdir(root, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg = filepath.Join(base, "config.yml")
	body := fmt.Sprintf("version: 1\ngeneral:\n  product_name: Demo\n  config_root: %s\n  download_dir: %s\njournal:\n  enabled: true\n", root, downloads)
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfg, root, downloads
}

func TestLastURLCommands(t *testing.T) {
	cfg, root, _ := testSettings(t)
	if out, err := runCLI(t, cfg, "last-url", "get"); err != nil || out != "" {
		t.Fatalf("empty store: %q %v", out, err)
	}
	if _, err := runCLI(t, cfg, "last-url", "set", "https://example.com/page"); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, cfg, "last-url", "set", "file:///tmp/x"); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, cfg, "last-url", "get")
	if err != nil || strings.TrimSpace(out) != "https://example.com/page" {
		t.Fatalf("get: %q %v", out, err)
	}
	if _, err := os.Stat(filepath.Join(root, "Demo", "last_url.txt")); err != nil {
		t.Fatalf("record not in data dir: %v", err)
	}
	out, err = runCLI(t, cfg, "datadir")
	if err != nil || strings.TrimSpace(out) != filepath.Join(root, "Demo") {
		t.Fatalf("datadir: %q %v", out, err)
	}
}

func TestMessageCommand(t *testing.T) {
	cfg, _, _ := testSettings(t)
	out, err := runCLI(t, cfg, "message", "start", "--lang", "zh-CN")
	if err != nil || strings.TrimSpace(out) != "开始下载中~" {
		t.Fatalf("got %q %v", out, err)
	}
	out, err = runCLI(t, cfg, "message", "failure", "--lang", "en-US", "--toast")
	if err != nil || strings.TrimSpace(out) != `pakeToast("Download failed, please check your network connection~");` {
		t.Fatalf("got %q %v", out, err)
	}
	if _, err := runCLI(t, cfg, "message", "done"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestUniqueCommand(t *testing.T) {
	cfg, _, _ := testSettings(t)
	dir := t.TempDir()
	p := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, cfg, "unique", p, filepath.Join(dir, "free.txt"))
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "report-1.pdf") + "\n" + filepath.Join(dir, "free.txt") + "\n"
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestSaveAndHistory(t *testing.T) {
	cfg, _, downloads := testSettings(t)
	src := filepath.Join(t.TempDir(), "payload.bin")
	if err := os.WriteFile(src, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	first, err := runCLI(t, cfg, "save", "--file", src, "--name", "notes.txt", "--url", "https://x.com/notes.txt?sig=1")
	if err != nil {
		t.Fatal(err)
	}
	second, err := runCLI(t, cfg, "save", "--file", src, "--name", "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(first) != filepath.Join(downloads, "notes.txt") || strings.TrimSpace(second) != filepath.Join(downloads, "notes-1.txt") {
		t.Fatalf("unexpected paths %q %q", first, second)
	}

	out, err := runCLI(t, cfg, "history")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(out, "saved") != 2 || strings.Contains(out, "sig=1") {
		t.Fatalf("unexpected history:\n%s", out)
	}
	if out, err := runCLI(t, cfg, "history", "--verify"); err != nil {
		t.Fatalf("verify: %v\n%s", err, out)
	}
	if err := os.WriteFile(filepath.Join(downloads, "notes-1.txt"), []byte("tampered"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, cfg, "history", "--verify"); err == nil {
		t.Fatalf("expected verify failure after modification")
	}
	out, err = runCLI(t, cfg, "history", "--clear")
	if err != nil || strings.TrimSpace(out) != "removed 2 entries" {
		t.Fatalf("clear: %q %v", out, err)
	}
}

func TestConfigValidateAndDoctor(t *testing.T) {
	cfg, _, _ := testSettings(t)
	out, err := runCLI(t, cfg, "config", "validate")
	if err != nil || !strings.Contains(out, "source embedded") {
		t.Fatalf("validate: %q %v", out, err)
	}
	out, err = runCLI(t, cfg, "doctor")
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	if !strings.Contains(out, "✓ Data directory writable") {
		t.Fatalf("unexpected doctor output:\n%s", out)
	}
}
