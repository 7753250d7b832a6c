// Package appdata resolves the per-package data directory the shell persists into.
package appdata

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	apperrors "github.com/jxwalker/pakeshell/internal/errors"
)

// DefaultPackageName is used when the host does not report a product name.
const DefaultPackageName = "pake"

// Handle is the capability the host application hands to this package.
type Handle interface {
	// ConfigDir returns the per-user configuration root (it is not created here).
	ConfigDir() (string, error)
	// ProductName returns the resolved product name, or "" when unset.
	ProductName() string
}

// OSHandle is a Handle backed by the platform's XDG/known-folder conventions.
type OSHandle struct {
	Product string
	// Root overrides the configuration root when non-empty.
	Root string
}

func (h OSHandle) ConfigDir() (string, error) {
	if strings.TrimSpace(h.Root) != "" {
		return h.Root, nil
	}
	if xdg.ConfigHome == "" {
		return "", errors.New("per-user config directory is unknown")
	}
	return xdg.ConfigHome, nil
}

func (h OSHandle) ProductName() string { return h.Product }

// PackageName returns the handle's product name, falling back to DefaultPackageName.
func PackageName(h Handle) string {
	if n := strings.TrimSpace(h.ProductName()); n != "" {
		return n
	}
	return DefaultPackageName
}

// DataDir returns <config root>/<packageName> and makes sure it exists. Only the
// last level is created; the config root itself must already be there. Failures
// carry apperrors.ErrIO.
func DataDir(h Handle, packageName string) (string, error) {
	root, err := h.ConfigDir()
	if err != nil {
		return "", apperrors.IOError("resolve config dir for", packageName, err)
	}
	dir := filepath.Join(root, packageName)
	if err := os.Mkdir(dir, 0o755); err != nil {
		if !errors.Is(err, fs.ErrExist) {
			return "", apperrors.IOError("create data dir", dir, err)
		}
		fi, statErr := os.Stat(dir)
		if statErr != nil {
			return "", apperrors.IOError("stat data dir", dir, statErr)
		}
		if !fi.IsDir() {
			return "", apperrors.IOError("use data dir", dir, errors.New("not a directory"))
		}
	}
	return dir, nil
}

// PackageDataDir is DataDir keyed by the handle's own package name.
func PackageDataDir(h Handle) (string, error) {
	return DataDir(h, PackageName(h))
}
