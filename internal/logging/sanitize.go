package logging

import (
	"net/url"
	"strings"
)

// SanitizeURL removes userinfo, query and fragment so remembered URLs can be
// logged without leaking session tokens. Values that do not parse are returned trimmed.
func SanitizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return s
	}
	u.User = nil
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}
