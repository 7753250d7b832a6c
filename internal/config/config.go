package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable that points at the settings file.
const EnvConfigPath = "PAKESHELL_CONFIG"

// Settings mirrors the shell's own YAML settings. They decide where the
// configuration pair comes from and how the shell logs and records its work.
type Settings struct {
	Version int     `yaml:"version" json:"version"`
	General General `yaml:"general" json:"general"`
	Source  Source  `yaml:"source" json:"source"`
	Logging Logging `yaml:"logging" json:"logging"`
	Journal Journal `yaml:"journal" json:"journal"`
	Metrics Metrics `yaml:"metrics" json:"metrics"`
}

type General struct {
	ProductName string `yaml:"product_name" json:"product_name"` // overrides productName from tauri.conf.json
	ConfigRoot  string `yaml:"config_root" json:"config_root"`   // overrides the per-user config root
	DownloadDir string `yaml:"download_dir" json:"download_dir"` // where saved downloads land
}

const (
	SourceEmbedded = "embedded"
	SourcePackaged = "packaged"
)

type Source struct {
	Mode        string `yaml:"mode" json:"mode"` // embedded | packaged
	PackagedDir string `yaml:"packaged_dir" json:"packaged_dir"`
}

type Logging struct {
	Level  string `yaml:"level" json:"level"`   // debug|info|warn|error
	Format string `yaml:"format" json:"format"` // human|json
}

type Journal struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

type Metrics struct {
	PrometheusTextfile PromTextfile `yaml:"prometheus_textfile" json:"prometheus_textfile"`
}

type PromTextfile struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`
}

// DefaultSettings is what the shell runs with when no settings file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Version: 1,
		General: General{DownloadDir: xdg.UserDirs.Download},
		Source:  Source{Mode: SourceEmbedded, PackagedDir: ".pake"},
		Logging: Logging{Level: "info", Format: "human"},
		Journal: Journal{Enabled: true},
	}
}

// DefaultPath returns the settings path from PAKESHELL_CONFIG or the XDG config home.
func DefaultPath() string {
	if env := strings.TrimSpace(os.Getenv(EnvConfigPath)); env != "" {
		return env
	}
	return filepath.Join(xdg.ConfigHome, "pakeshell", "config.yml")
}

// Load reads, parses, expands, and validates a YAML settings file. Keys absent from
// the file keep their DefaultSettings values.
func Load(path string) (*Settings, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	expanded, err := expandTilde(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(expanded)
	if err != nil {
		return nil, err
	}
	// Expand ${ENV} placeholders before unmarshalling
	b = []byte(os.ExpandEnv(string(b)))
	s := DefaultSettings()
	if err := yaml.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", expanded, err)
	}
	if err := s.expandPaths(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadOrDefault loads path, or returns DefaultSettings when path is the default
// location and nothing is there yet.
func LoadOrDefault(path string) (*Settings, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	s, err := Load(path)
	if err != nil && !explicit && errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	return s, err
}

func (s *Settings) expandPaths() error {
	var err error
	if s.General.ConfigRoot, err = expandTilde(s.General.ConfigRoot); err != nil {
		return err
	}
	if s.General.DownloadDir, err = expandTilde(s.General.DownloadDir); err != nil {
		return err
	}
	if s.Source.PackagedDir, err = expandTilde(s.Source.PackagedDir); err != nil {
		return err
	}
	if s.Metrics.PrometheusTextfile.Path, err = expandTilde(s.Metrics.PrometheusTextfile.Path); err != nil {
		return err
	}
	return nil
}

func (s *Settings) Validate() error {
	if s.Version != 1 {
		return fmt.Errorf("unsupported config version: %d", s.Version)
	}
	switch strings.ToLower(s.Source.Mode) {
	case "", SourceEmbedded:
	case SourcePackaged:
		if s.Source.PackagedDir == "" {
			return errors.New("source.packaged_dir is required when source.mode is packaged")
		}
	default:
		return fmt.Errorf("source.mode invalid: %s", s.Source.Mode)
	}
	switch strings.ToLower(s.Logging.Level) {
	case "", "debug", "info", "warn", "error":
		// ok
	default:
		return fmt.Errorf("logging.level invalid: %s", s.Logging.Level)
	}
	switch strings.ToLower(s.Logging.Format) {
	case "", "human", "json":
		// ok
	default:
		return fmt.Errorf("logging.format invalid: %s", s.Logging.Format)
	}
	if s.Metrics.PrometheusTextfile.Enabled && s.Metrics.PrometheusTextfile.Path == "" {
		return errors.New("metrics.prometheus_textfile.path is required when enabled")
	}
	return nil
}

func expandTilde(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	if p[0] != '~' {
		return p, nil
	}
	h, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if p == "~" {
		return h, nil
	}
	return filepath.Join(h, p[2:]), nil
}
