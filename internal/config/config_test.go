package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadSettings(t *testing.T) {
	t.Setenv("PAKESHELL_TEST_DL", "/tmp/pake-dl")
	p := writeSettings(t, `
version: 1
general:
  product_name: Twitter
  download_dir: ${PAKESHELL_TEST_DL}
source:
  mode: packaged
  packaged_dir: /opt/app/.pake
logging:
  level: debug
  format: json
`)
	s, err := Load(p)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s.General.ProductName != "Twitter" || s.General.DownloadDir != "/tmp/pake-dl" {
		t.Fatalf("unexpected general %+v", s.General)
	}
	if s.Source.Mode != SourcePackaged || s.Logging.Format != "json" {
		t.Fatalf("unexpected settings %+v", s)
	}
	if !s.Journal.Enabled {
		t.Fatalf("unset keys should keep defaults")
	}
}

func TestLoadSettingsInvalid(t *testing.T) {
	cases := map[string]string{
		"version":  "version: 2\n",
		"mode":     "version: 1\nsource:\n  mode: remote\n",
		"level":    "version: 1\nlogging:\n  level: loud\n",
		"format":   "version: 1\nlogging:\n  format: xml\n",
		"metrics":  "version: 1\nmetrics:\n  prometheus_textfile:\n    enabled: true\n",
		"yaml":     "version: [1\n",
		"packaged": "version: 1\nsource:\n  mode: packaged\n  packaged_dir: \"\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeSettings(t, body)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "absent.yml"))
	s, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("missing default file should fall back: %v", err)
	}
	if s.Source.Mode != SourceEmbedded {
		t.Fatalf("unexpected defaults %+v", s.Source)
	}
	if _, err := LoadOrDefault(filepath.Join(t.TempDir(), "explicit.yml")); err == nil {
		t.Fatalf("an explicit missing path must fail")
	}
}

func TestExpandTilde(t *testing.T) {
	h, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := expandTilde("~/Downloads")
	if err != nil || !strings.HasPrefix(got, h) {
		t.Fatalf("expandTilde: %q %v", got, err)
	}
}
