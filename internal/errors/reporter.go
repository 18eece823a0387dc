package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// ErrorReport captures a failed operation so it can be inspected or retried
type ErrorReport struct {
	Timestamp   time.Time         `json:"timestamp"`
	Error       *CatalogError     `json:"error"`
	Environment *EnvironmentInfo  `json:"environment"`
	Context     *OperationContext `json:"context"`
}

// EnvironmentInfo contains information about the runtime environment
type EnvironmentInfo struct {
	OS           string `json:"os"`
	Architecture string `json:"architecture"`
	GoVersion    string `json:"go_version"`
	Version      string `json:"version"`
	ConfigPath   string `json:"config_path,omitempty"`
}

// OperationContext describes the operation that failed
type OperationContext struct {
	Command   string            `json:"command"`
	Arguments []string          `json:"arguments,omitempty"`
	Flags     map[string]string `json:"flags,omitempty"`
	Duration  time.Duration     `json:"duration"`
	// Payload holds the request body so a failed submission can be resent.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ErrorReporter writes and displays error reports
type ErrorReporter struct {
	reportDir string
	version   string
	logger    Logger
}

// NewErrorReporter creates a new error reporter
func NewErrorReporter(reportDir, version string, logger Logger) *ErrorReporter {
	return &ErrorReporter{
		reportDir: reportDir,
		version:   version,
		logger:    logger,
	}
}

// GenerateReport builds a report for err
func (er *ErrorReporter) GenerateReport(err error, ctx *OperationContext) *ErrorReport {
	return &ErrorReport{
		Timestamp: time.Now(),
		Error:     toCatalogError(err),
		Context:   ctx,
		Environment: &EnvironmentInfo{
			OS:           runtime.GOOS,
			Architecture: runtime.GOARCH,
			GoVersion:    runtime.Version(),
			Version:      er.version,
		},
	}
}

// SaveReport writes report as JSON and returns its path
func (er *ErrorReporter) SaveReport(report *ErrorReport) (string, error) {
	if err := os.MkdirAll(er.reportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	name := fmt.Sprintf("error_report_%s_%s.json", report.Timestamp.Format("20060102_150405"), report.Error.Code)
	path := filepath.Join(er.reportDir, name)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	if er.logger != nil {
		er.logger.Debug("error report saved to %s", path)
	}
	return path, nil
}

// LoadReport reads a report written by SaveReport
func LoadReport(path string) (*ErrorReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var report ErrorReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &report, nil
}

// Display writes a user-facing rendering of err
func Display(w io.Writer, err error) {
	if err == nil {
		return
	}
	if ce, ok := As(err); ok {
		fmt.Fprint(w, ce.FormatDetailed())
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
