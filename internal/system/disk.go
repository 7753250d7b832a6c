//go:build !windows

package system

import (
	"fmt"
	"syscall"
)

// FreeSpace returns the bytes available to unprivileged writers on path's filesystem.
func FreeSpace(path string) (uint64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, fmt.Errorf("failed to get disk space for %s: %w", path, err)
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
