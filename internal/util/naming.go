package util

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ResolveUniquePath returns candidate if nothing exists there. Otherwise it bumps a
// trailing "-<n>" counter on the file stem ("report.pdf" -> "report-1.pdf",
// "report-3.pdf" -> "report-4.pdf") until it finds a free name. Directory and
// extension never change.
//
// Only existence is checked; the file is not created, so a concurrent writer can
// still claim the returned path before the caller does.
func ResolveUniquePath(candidate string) string {
	p := candidate
	for pathExists(p) {
		p = nextCandidate(p)
	}
	return p
}

// nextCandidate derives the following name in the "-<n>" sequence.
func nextCandidate(p string) string {
	dir, name := filepath.Split(p)
	stem, ext := splitName(name)
	if i := strings.LastIndexByte(stem, '-'); i >= 0 {
		if n, ok := parseCounter(stem[i+1:]); ok {
			return dir + stem[:i] + "-" + strconv.FormatUint(n+1, 10) + ext
		}
	}
	return dir + stem + "-1" + ext
}

// splitName splits a file name into stem and extension (with its dot).
// Dot-files such as ".bashrc" are all stem.
func splitName(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	stem = strings.TrimSuffix(name, ext)
	if stem == "" {
		return name, ""
	}
	return stem, ext
}

// parseCounter accepts plain decimal digits that fit in 32 bits.
func parseCounter(s string) (uint64, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return n, true
}

func pathExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
