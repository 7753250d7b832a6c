package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jxwalker/pakeshell/internal/config"
)

func TestDisabledIsNil(t *testing.T) {
	if m := New(config.DefaultSettings()); m != nil {
		t.Fatalf("expected nil manager when disabled")
	}
	var m *Manager
	m.ObserveSave(10, true)
	m.IncFailed()
	if err := m.Write(); err != nil {
		t.Fatalf("nil manager write: %v", err)
	}
}

func TestWriteTextfile(t *testing.T) {
	s := config.DefaultSettings()
	s.Metrics.PrometheusTextfile = config.PromTextfile{Enabled: true, Path: filepath.Join(t.TempDir(), "prom", "pakeshell.prom")}
	m := New(s)
	m.ObserveSave(100, false)
	m.ObserveSave(50, true)
	m.IncFailed()
	if err := m.Write(); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(s.Metrics.PrometheusTextfile.Path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(b)
	for _, want := range []string{
		"pakeshell_bytes_saved_total 150\n",
		"pakeshell_saves_success_total 2\n",
		"pakeshell_saves_failed_total 1\n",
		"pakeshell_saves_renamed_total 1\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}
