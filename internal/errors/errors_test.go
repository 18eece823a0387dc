package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	errors, warns, debugs []string
}

func (l *recordingLogger) Error(msg string, args ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(msg, args...))
}
func (l *recordingLogger) Warn(msg string, args ...interface{}) {
	l.warns = append(l.warns, fmt.Sprintf(msg, args...))
}
func (l *recordingLogger) Debug(msg string, args ...interface{}) {
	l.debugs = append(l.debugs, fmt.Sprintf(msg, args...))
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status    int
		wantType  ErrorType
		retryable bool
	}{
		{http.StatusNotFound, ErrorTypeNotFound, false},
		{http.StatusBadRequest, ErrorTypeValidation, false},
		{http.StatusForbidden, ErrorTypePermission, false},
		{http.StatusConflict, ErrorTypeConflict, false},
		{http.StatusTooManyRequests, ErrorTypeNetwork, true},
		{http.StatusBadGateway, ErrorTypeServer, true},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			e := FromStatus(tt.status, "")
			assert.Equal(t, tt.wantType, e.Type)
			assert.Equal(t, tt.retryable, e.Retryable)
			assert.Equal(t, tt.status, e.Status)
			assert.Equal(t, http.StatusText(tt.status), e.Message)
		})
	}
}

func TestAsAndHasCode(t *testing.T) {
	wrapped := fmt.Errorf("vote: %w", NewAlreadyVotedError(7))
	ce, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "7", ce.Context["request"])
	assert.True(t, HasCode(wrapped, CodeAlreadyVoted))
	assert.False(t, IsRetryable(wrapped))
	assert.True(t, stderrors.Is(wrapped, NewConflictError(CodeAlreadyVoted, "")))

	assert.False(t, HasCode(stderrors.New("plain"), CodeAlreadyVoted))
}

func TestErrorHandler_StatsAndLogging(t *testing.T) {
	log := &recordingLogger{}
	h := NewErrorHandler(log)

	h.Handle(nil)
	h.Handle(NewVersionExistsError("ldap", "1.3"))
	h.Handle(stderrors.New("boom"))

	stats := h.GetStats()
	assert.Equal(t, 2, stats.TotalErrors)
	assert.Equal(t, 1, stats.ErrorsByCode[CodeVersionExists])
	assert.Equal(t, 1, stats.ErrorsByType[ErrorTypeUnknown])
	assert.Len(t, log.warns, 1)
	assert.Len(t, log.errors, 1)
	assert.NotEmpty(t, log.debugs)

	h.Reset()
	assert.Zero(t, h.GetStats().TotalErrors)
}

func TestHandleWithRecovery_AddsSuggestions(t *testing.T) {
	h := NewErrorHandler(nil)
	ce := h.HandleWithRecovery(WrapError(stderrors.New("dial tcp: connection refused"),
		ErrorTypeNetwork, CodeRequestFailed, "request failed"))
	assert.Contains(t, ce.Suggestions, "Check if the catalog backend is running")
}

func TestFormatDetailed(t *testing.T) {
	e := NewValidationError(CodeValidationFailed, "form incomplete").
		WithFields([]FieldError{{Field: "license", Code: "required", Message: "license is required"}})
	out := e.FormatDetailed()
	assert.Contains(t, out, "VALIDATION error [VALIDATION_FAILED]: form incomplete")
	assert.Contains(t, out, "license: license is required")
}

func TestReporter_SaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	r := NewErrorReporter(dir, "1.0.0", nil)
	report := r.GenerateReport(FromStatus(http.StatusBadGateway, "upstream down"),
		&OperationContext{Command: "upload", Payload: []byte(`{"a":1}`)})

	path, err := r.SaveReport(report)
	require.NoError(t, err)

	loaded, err := LoadReport(path)
	require.NoError(t, err)
	assert.Equal(t, CodeHTTPStatus, loaded.Error.Code)
	assert.JSONEq(t, `{"a":1}`, string(loaded.Context.Payload))
	assert.Equal(t, "1.0.0", loaded.Environment.Version)

	var buf bytes.Buffer
	Display(&buf, report.Error)
	assert.Contains(t, buf.String(), "upstream down")
}
