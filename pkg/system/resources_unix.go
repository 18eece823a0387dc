//go:build !windows

package system

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// getDiskUsage returns disk usage information for Unix-like systems
func getDiskUsage(path string) (*DiskUsage, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return nil, fmt.Errorf("failed to get disk statistics: %w", err)
	}

	bsize := uint64(stat.Bsize)
	total := stat.Blocks * bsize
	free := stat.Bfree * bsize
	return &DiskUsage{
		Total:     total,
		Used:      total - free,
		Free:      free,
		Available: stat.Bavail * bsize,
	}, nil
}
