// Package i18n picks the download status strings shown to the user.
package i18n

import (
	"fmt"
	"os"
	"strings"
)

// MessageType is a phase of a download operation.
type MessageType int

const (
	Start MessageType = iota
	Success
	Failure
)

func (m MessageType) String() string {
	switch m {
	case Start:
		return "start"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return fmt.Sprintf("MessageType(%d)", int(m))
	}
}

// ParseMessageType accepts the names returned by String.
func ParseMessageType(s string) (MessageType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start":
		return Start, nil
	case "success":
		return Success, nil
	case "failure", "fail":
		return Failure, nil
	}
	return 0, fmt.Errorf("unknown message type %q (want start|success|failure)", s)
}

// DownloadMessages holds one string per download phase.
type DownloadMessages struct {
	Start   string
	Success string
	Failure string
}

func (d DownloadMessages) get(kind MessageType) string {
	switch kind {
	case Success:
		return d.Success
	case Failure:
		return d.Failure
	default:
		return d.Start
	}
}

var EnglishDownloadMessages = DownloadMessages{
	Start:   "Start downloading~",
	Success: "Download successful, saved to download directory~",
	Failure: "Download failed, please check your network connection~",
}

var ChineseDownloadMessages = DownloadMessages{
	Start:   "开始下载中~",
	Success: "下载成功，已保存到下载目录~",
	Failure: "下载失败，请检查你的网络连接~",
}

var catalog = map[Bucket]DownloadMessages{
	Default: EnglishDownloadMessages,
	Chinese: ChineseDownloadMessages,
}

// LocaleVars are probed in this order; the first one that is set wins.
var LocaleVars = []string{"LANG", "LC_ALL", "LC_MESSAGES", "LANGUAGE"}

// EnvResolver looks up a named locale variable.
type EnvResolver interface {
	Lookup(name string) (string, bool)
}

// OSEnv reads the process environment.
type OSEnv struct{}

func (OSEnv) Lookup(name string) (string, bool) { return os.LookupEnv(name) }

// MapEnv is a fixed environment, mostly for tests.
type MapEnv map[string]string

func (m MapEnv) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Selector chooses localized messages.
type Selector struct {
	Env EnvResolver
}

// Locale returns the first set locale variable.
func (s Selector) Locale() (string, bool) {
	if s.Env == nil {
		return "", false
	}
	for _, name := range LocaleVars {
		if v, ok := s.Env.Lookup(name); ok {
			return v, true
		}
	}
	return "", false
}

// Bucket classifies the environment locale, defaulting when none is set.
func (s Selector) Bucket() Bucket {
	if v, ok := s.Locale(); ok {
		return Classify(v)
	}
	return Default
}

// Message returns the string for kind in the environment's language.
func (s Selector) Message(kind MessageType) string {
	return catalog[s.Bucket()].get(kind)
}

// MessageFor returns the string for kind in lang. The environment is not consulted.
func (s Selector) MessageFor(kind MessageType, lang string) string {
	return catalog[Classify(lang)].get(kind)
}

// Resolve uses lang when present and falls back to the environment otherwise.
func (s Selector) Resolve(kind MessageType, lang string, present bool) string {
	if present {
		return s.MessageFor(kind, lang)
	}
	return s.Message(kind)
}

var defaultSelector = Selector{Env: OSEnv{}}

// Message is Selector.Message over the process environment.
func Message(kind MessageType) string { return defaultSelector.Message(kind) }

// MessageFor is Selector.MessageFor.
func MessageFor(kind MessageType, lang string) string { return defaultSelector.MessageFor(kind, lang) }
