package util

import (
	"net/url"
	pathpkg "path"
	"path/filepath"
	"strings"
	"unicode"
)

// SafeFileName returns a filename that is safe to create on every desktop platform.
// Path separators, control characters and the Windows-reserved set <>:"|?* become
// '_'. Unicode letters are kept so localized names survive. Leading and trailing
// spaces and dots are trimmed. Falls back to "download" when nothing usable is left.
func SafeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = pathpkg.Base(strings.TrimSpace(name))
	if name == "/" || name == "." || name == ".." {
		return "download"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsControl(r):
			continue
		case strings.ContainsRune(`<>:"|?*/`, r):
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	clean := strings.Trim(b.String(), " .")
	if clean == "" {
		return "download"
	}
	return clean
}

// URLPathBase extracts the last element of the URL path, ignoring query and fragment.
// Percent-escapes are decoded. If parsing fails or the path is empty, it falls back
// to "download".
func URLPathBase(u string) string {
	s := strings.TrimSpace(u)
	if s == "" {
		return "download"
	}
	if pu, err := url.Parse(s); err == nil && pu != nil {
		b := pathpkg.Base(pu.Path)
		if b != "" && b != "/" && b != "." {
			return b
		}
		return "download"
	}
	// Fallback: strip query/fragment manually then use filepath.Base
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	b := filepath.Base(s)
	if b == "" || b == "/" || b == "." {
		return "download"
	}
	return b
}
