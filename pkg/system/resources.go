package system

import (
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// MinFreeSpace is the free space below which a directory is flagged
const MinFreeSpace = 50 * 1024 * 1024

// DiskUsage is the space on the file system holding a path
type DiskUsage struct {
	Total     uint64 `json:"total"`
	Used      uint64 `json:"used"`
	Free      uint64 `json:"free"`
	Available uint64 `json:"available"`
}

// DirectoryStatus describes a directory the client writes to
type DirectoryStatus struct {
	Path     string     `json:"path"`
	Writable bool       `json:"writable"`
	Usage    *DiskUsage `json:"usage,omitempty"`
	Warning  string     `json:"warning,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// OK reports a writable directory
func (s DirectoryStatus) OK() bool { return s.Writable && s.Error == "" }

// ResourceChecker provides system resource checking capabilities
type ResourceChecker struct {
	logger Logger
}

// NewResourceChecker creates a new resource checker
func NewResourceChecker(logger Logger) *ResourceChecker {
	return &ResourceChecker{logger: logger}
}

// CheckDirectory creates path when missing, verifies it is writable and
// reads the free space of its file system
func (rc *ResourceChecker) CheckDirectory(path string) DirectoryStatus {
	status := DirectoryStatus{Path: path}
	abs, err := filepath.Abs(path)
	if err == nil {
		status.Path = abs
	}

	if err := os.MkdirAll(status.Path, 0755); err != nil {
		status.Error = err.Error()
		return status
	}
	probe, err := os.CreateTemp(status.Path, ".connhub-write-*")
	if err != nil {
		status.Error = err.Error()
		return status
	}
	probe.Close()
	os.Remove(probe.Name())
	status.Writable = true

	usage, err := getDiskUsage(status.Path)
	if err != nil {
		if rc.logger != nil {
			rc.logger.Debug("disk usage for %s unavailable: %v", status.Path, err)
		}
		return status
	}
	status.Usage = usage
	if usage.Available < MinFreeSpace {
		status.Warning = "only " + humanize.Bytes(usage.Available) + " free"
	}
	return status
}
