package config

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"

	apperrors "github.com/jxwalker/pakeshell/internal/errors"
)

// Document file names, identical for every source.
const (
	AppDocument  = "pake.json"
	HostDocument = "tauri.conf.json"
)

// AppConfig is the application-settings document (pake.json).
type AppConfig struct {
	Windows        []WindowConfig `json:"windows"`
	UserAgent      PlatformString `json:"user_agent"`
	SystemTray     PlatformBool   `json:"system_tray"`
	SystemTrayPath string         `json:"system_tray_path"`
	Inject         []string       `json:"inject,omitempty"`
	ProxyURL       string         `json:"proxy_url"`
	MultiInstance  bool           `json:"multi_instance"`
}

type WindowConfig struct {
	URL                     string  `json:"url"`
	URLType                 string  `json:"url_type"`
	Title                   *string `json:"title,omitempty"`
	HideTitleBar            bool    `json:"hide_title_bar"`
	Fullscreen              bool    `json:"fullscreen"`
	Maximize                bool    `json:"maximize"`
	Width                   float64 `json:"width"`
	Height                  float64 `json:"height"`
	Resizable               bool    `json:"resizable"`
	AlwaysOnTop             bool    `json:"always_on_top"`
	DarkMode                bool    `json:"dark_mode"`
	ActivationShortcut      string  `json:"activation_shortcut"`
	DisabledWebShortcuts    bool    `json:"disabled_web_shortcuts"`
	HideOnClose             bool    `json:"hide_on_close"`
	Incognito               bool    `json:"incognito"`
	EnableWasm              bool    `json:"enable_wasm"`
	EnableDragDrop          bool    `json:"enable_drag_drop"`
	StartToTray             bool    `json:"start_to_tray"`
	ForceInternalNavigation bool    `json:"force_internal_navigation"`
}

// PlatformString holds one value per desktop OS.
type PlatformString struct {
	MacOS   string `json:"macos"`
	Linux   string `json:"linux"`
	Windows string `json:"windows"`
}

// Current returns the value for the running OS.
func (p PlatformString) Current() string { return pick(p.MacOS, p.Linux, p.Windows) }

type PlatformBool struct {
	MacOS   bool `json:"macos"`
	Linux   bool `json:"linux"`
	Windows bool `json:"windows"`
}

func (p PlatformBool) Current() bool { return pick(p.MacOS, p.Linux, p.Windows) }

func pick[T any](mac, linux, windows T) T {
	switch runtime.GOOS {
	case "darwin":
		return mac
	case "windows":
		return windows
	default:
		return linux
	}
}

// HostConfig is the subset of the host-framework document (tauri.conf.json) the
// shell reads. Other sections are kept raw.
type HostConfig struct {
	ProductName *string         `json:"productName,omitempty"`
	Identifier  string          `json:"identifier"`
	Version     string          `json:"version"`
	App         json.RawMessage `json:"app,omitempty"`
	Build       json.RawMessage `json:"build,omitempty"`
	Bundle      json.RawMessage `json:"bundle,omitempty"`
}

// Product returns productName, or "" when the document does not set one.
func (h *HostConfig) Product() string {
	if h == nil || h.ProductName == nil {
		return ""
	}
	return strings.TrimSpace(*h.ProductName)
}

// Provider supplies the raw configuration pair.
type Provider interface {
	Name() string
	Documents() (app, host []byte, err error)
}

//go:embed defaults/pake.json defaults/tauri.conf.json
var defaultDocs embed.FS

// FSProvider reads the pair from the root of a file system.
type FSProvider struct {
	Label string
	FS    fs.FS
}

// EmbeddedProvider serves the repository-default documents compiled into the binary.
func EmbeddedProvider() FSProvider {
	sub, err := fs.Sub(defaultDocs, "defaults")
	if err != nil {
		panic(err) // the embed pattern above guarantees the directory
	}
	return FSProvider{Label: "embedded", FS: sub}
}

// DirProvider serves a packaged build's documents from dir (usually ".pake").
func DirProvider(dir string) FSProvider {
	return FSProvider{Label: dir, FS: os.DirFS(dir)}
}

func (p FSProvider) Name() string { return p.Label }

func (p FSProvider) Documents() ([]byte, []byte, error) {
	app, err := fs.ReadFile(p.FS, AppDocument)
	if err != nil {
		return nil, nil, apperrors.IOError("read", p.Label+"/"+AppDocument, err)
	}
	host, err := fs.ReadFile(p.FS, HostDocument)
	if err != nil {
		return nil, nil, apperrors.IOError("read", p.Label+"/"+HostDocument, err)
	}
	return app, host, nil
}

// SelectProvider picks the document source named by the settings.
func SelectProvider(s *Settings) Provider {
	if s != nil && strings.EqualFold(s.Source.Mode, SourcePackaged) {
		return DirProvider(s.Source.PackagedDir)
	}
	return EmbeddedProvider()
}

// LoadDocuments reads and parses the pair. Parse failures carry apperrors.ErrConfigParse.
func LoadDocuments(p Provider) (*AppConfig, *HostConfig, error) {
	appRaw, hostRaw, err := p.Documents()
	if err != nil {
		return nil, nil, err
	}
	var app AppConfig
	if err := json.Unmarshal(appRaw, &app); err != nil {
		return nil, nil, apperrors.ConfigParseError(p.Name()+"/"+AppDocument, err)
	}
	var host HostConfig
	if err := json.Unmarshal(hostRaw, &host); err != nil {
		return nil, nil, apperrors.ConfigParseError(p.Name()+"/"+HostDocument, err)
	}
	return &app, &host, nil
}

// MustLoadDocuments is LoadDocuments for process startup: a build whose
// configuration does not parse cannot run, so it panics.
func MustLoadDocuments(p Provider) (*AppConfig, *HostConfig) {
	app, host, err := LoadDocuments(p)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return app, host
}
