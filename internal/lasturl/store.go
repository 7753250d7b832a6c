// Package lasturl remembers the last page the shell navigated to, so the next
// launch can reopen it.
package lasturl

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/jxwalker/pakeshell/internal/appdata"
	apperrors "github.com/jxwalker/pakeshell/internal/errors"
	"github.com/jxwalker/pakeshell/internal/lockfile"
	"github.com/jxwalker/pakeshell/internal/logging"
	"github.com/jxwalker/pakeshell/internal/util"
)

// FileName is the record's name inside the data directory.
const FileName = "last_url.txt"

// Store is a single-slot, last-write-wins record of the last visited URL.
type Store struct {
	handle appdata.Handle
	log    *logging.Logger
}

// New binds a store to the host handle. A nil logger discards output.
func New(h appdata.Handle, log *logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{handle: h, log: log.With("lasturl")}
}

// Accepted reports whether u uses a scheme the store will persist.
func Accepted(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

// Path returns the record's location, creating the data directory if needed.
func (s *Store) Path() (string, error) {
	dir, err := appdata.PackageDataDir(s.handle)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Save overwrites the record with url. URLs without an http or https scheme are
// ignored and nil is returned.
func (s *Store) Save(url string) error {
	if !Accepted(url) {
		s.log.Debugf("skip non-web url %q", logging.SanitizeURL(url))
		return nil
	}
	p, err := s.Path()
	if err != nil {
		return err
	}
	lk := lockfile.For(p)
	if err := lk.Acquire(context.Background()); err != nil {
		return apperrors.IOError("lock last url", p, err)
	}
	defer func() { _ = lk.Release() }()
	if err := util.WriteAndSync(p, []byte(url)); err != nil {
		return apperrors.IOError("save last url to", p, err)
	}
	s.log.Debugf("saved %s", logging.SanitizeURL(url))
	return nil
}

// Load returns the remembered URL. A missing, unreadable, blank or non-web record
// is reported as ("", false); Load never fails.
func (s *Store) Load() (string, bool) {
	p, err := s.Path()
	if err != nil {
		s.log.Warnf("no data dir: %v", err)
		return "", false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warnf("read %s: %v", p, err)
		}
		return "", false
	}
	u := strings.TrimSpace(string(b))
	if u == "" || !Accepted(u) {
		return "", false
	}
	return u, true
}
