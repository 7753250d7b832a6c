package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jxwalker/pakeshell/internal/config"
)

// Manager accumulates save counters and writes them as a Prometheus textfile.
// A nil *Manager is valid and records nothing.
type Manager struct {
	path string
	mu   sync.Mutex
	// counters
	bytesSaved   int64
	savesSuccess int64
	savesFailed  int64
	renamed      int64
}

func New(s *config.Settings) *Manager {
	if s == nil || !s.Metrics.PrometheusTextfile.Enabled || s.Metrics.PrometheusTextfile.Path == "" {
		return nil
	}
	p := s.Metrics.PrometheusTextfile.Path
	_ = os.MkdirAll(filepath.Dir(p), 0o755)
	return &Manager{path: p}
}

// ObserveSave records one successful save of n bytes; renamed marks a save whose
// name had to be changed to avoid a collision.
func (m *Manager) ObserveSave(n int64, renamed bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bytesSaved += n
	m.savesSuccess++
	if renamed {
		m.renamed++
	}
}

func (m *Manager) IncFailed() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.savesFailed++
	m.mu.Unlock()
}

func (m *Manager) Write() error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := os.CreateTemp(filepath.Dir(m.path), ".metrics.tmp.*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())
	series := []struct {
		name, help, typ string
		value           int64
	}{
		{"pakeshell_bytes_saved_total", "Total bytes of downloads saved to disk.", "counter", m.bytesSaved},
		{"pakeshell_saves_success_total", "Total downloads saved successfully.", "counter", m.savesSuccess},
		{"pakeshell_saves_failed_total", "Total downloads that could not be saved.", "counter", m.savesFailed},
		{"pakeshell_saves_renamed_total", "Saves that were renamed to avoid a filename collision.", "counter", m.renamed},
		{"pakeshell_metrics_timestamp_seconds", "UNIX timestamp when this file was written.", "gauge", time.Now().Unix()},
	}
	for _, s := range series {
		fmt.Fprintf(f, "# HELP %s %s\n", s.name, s.help)
		fmt.Fprintf(f, "# TYPE %s %s\n", s.name, s.typ)
		fmt.Fprintf(f, "%s %d\n", s.name, s.value)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), m.path)
}
