package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ErrorType represents the type of error
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNetwork
	ErrorTypeFileSystem
	ErrorTypeParsing
	ErrorTypeConfiguration
	ErrorTypePermission
	ErrorTypeTimeout
	ErrorTypeNotFound
	ErrorTypeConflict
	ErrorTypeServer
)

// String returns the string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeValidation:
		return "VALIDATION"
	case ErrorTypeNetwork:
		return "NETWORK"
	case ErrorTypeFileSystem:
		return "FILESYSTEM"
	case ErrorTypeParsing:
		return "PARSING"
	case ErrorTypeConfiguration:
		return "CONFIGURATION"
	case ErrorTypePermission:
		return "PERMISSION"
	case ErrorTypeTimeout:
		return "TIMEOUT"
	case ErrorTypeNotFound:
		return "NOT_FOUND"
	case ErrorTypeConflict:
		return "CONFLICT"
	case ErrorTypeServer:
		return "SERVER"
	default:
		return "UNKNOWN"
	}
}

// Error codes shared by the catalog client and the wizard
const (
	CodeAlreadyVoted     = "ALREADY_VOTED"
	CodeVersionExists    = "VERSION_EXISTS"
	CodeNotFound         = "NOT_FOUND"
	CodeLoadFailed       = "LOAD_FAILED"
	CodeSubmitFailed     = "SUBMIT_FAILED"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeManifestInvalid  = "MANIFEST_INVALID"
	CodeHTTPStatus       = "HTTP_STATUS"
	CodeRequestFailed    = "REQUEST_FAILED"
	CodeDecodeFailed     = "DECODE_FAILED"
	CodeCacheFailed      = "CACHE_FAILED"
	CodeConfigInvalid    = "CONFIG_INVALID"
)

// FieldError describes one invalid input field
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CatalogError represents an enhanced error with context and suggestions
type CatalogError struct {
	Type        ErrorType         `json:"type"`
	Code        string            `json:"code"`
	Message     string            `json:"message"`
	Status      int               `json:"status,omitempty"`
	Cause       error             `json:"-"`
	Context     map[string]string `json:"context,omitempty"`
	Fields      []FieldError      `json:"fields,omitempty"`
	Suggestions []string          `json:"suggestions,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
	Retryable   bool              `json:"retryable"`
}

// Error implements the error interface
func (e *CatalogError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *CatalogError) Unwrap() error {
	return e.Cause
}

// Is matches another CatalogError with the same type and code
func (e *CatalogError) Is(target error) bool {
	if t, ok := target.(*CatalogError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return false
}

// WithContext adds context to the error
func (e *CatalogError) WithContext(key, value string) *CatalogError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion to the error
func (e *CatalogError) WithSuggestion(suggestion string) *CatalogError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *CatalogError) WithSuggestions(suggestions []string) *CatalogError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithFields attaches per-field validation failures
func (e *CatalogError) WithFields(fields []FieldError) *CatalogError {
	e.Fields = append(e.Fields, fields...)
	return e
}

// WithCause sets the underlying error
func (e *CatalogError) WithCause(err error) *CatalogError {
	e.Cause = err
	return e
}

// SetRetryable marks the error as retryable or not
func (e *CatalogError) SetRetryable(retryable bool) *CatalogError {
	e.Retryable = retryable
	return e
}

// FormatDetailed returns a detailed error message with context and suggestions
func (e *CatalogError) FormatDetailed() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s error [%s]: %s\n", e.Type.String(), e.Code, e.Message)

	if len(e.Fields) > 0 {
		b.WriteString("\nInvalid fields:\n")
		for _, f := range e.Fields {
			fmt.Fprintf(&b, "   %s: %s\n", f.Field, f.Message)
		}
	}
	if len(e.Context) > 0 {
		b.WriteString("\nContext:\n")
		for key, value := range e.Context {
			fmt.Fprintf(&b, "   %s: %s\n", key, value)
		}
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying cause: %v\n", e.Cause)
	}
	if len(e.Suggestions) > 0 {
		b.WriteString("\nSuggestions:\n")
		for _, s := range e.Suggestions {
			fmt.Fprintf(&b, "   - %s\n", s)
		}
	}
	if e.Retryable {
		b.WriteString("\nThis operation can be retried\n")
	}
	return b.String()
}

// NewError creates a new CatalogError
func NewError(errorType ErrorType, code, message string) *CatalogError {
	return &CatalogError{
		Type:      errorType,
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WrapError wraps an existing error with CatalogError
func WrapError(err error, errorType ErrorType, code, message string) *CatalogError {
	e := NewError(errorType, code, message)
	e.Cause = err
	return e
}

// As extracts a CatalogError from err's chain
func As(err error) (*CatalogError, bool) {
	var ce *CatalogError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// HasCode reports whether err carries a CatalogError with code
func HasCode(err error, code string) bool {
	ce, ok := As(err)
	return ok && ce.Code == code
}

// IsRetryable reports whether err is marked retryable
func IsRetryable(err error) bool {
	ce, ok := As(err)
	return ok && ce.Retryable
}

// Common error constructors

// NewValidationError creates a validation error
func NewValidationError(code, message string) *CatalogError {
	return NewError(ErrorTypeValidation, code, message).
		WithSuggestion("Check the input and try again")
}

// NewNetworkError creates a network error
func NewNetworkError(code, message string) *CatalogError {
	return NewError(ErrorTypeNetwork, code, message).
		SetRetryable(true).
		WithSuggestions([]string{
			"Check your internet connection",
			"Verify api.base_url points at the catalog backend",
			"Try again in a few moments",
		})
}

// NewFileSystemError creates a filesystem error
func NewFileSystemError(code, message string) *CatalogError {
	return NewError(ErrorTypeFileSystem, code, message).
		WithSuggestions([]string{
			"Check file permissions",
			"Ensure the path exists",
		})
}

// NewParsingError creates a parsing error
func NewParsingError(code, message string) *CatalogError {
	return NewError(ErrorTypeParsing, code, message).
		WithSuggestions([]string{
			"Verify the file format is correct",
			"Check if the file is corrupted",
		})
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(code, message string) *CatalogError {
	return NewError(ErrorTypeConfiguration, code, message).
		WithSuggestions([]string{
			"Check the configuration file syntax",
			"Run 'connhub config init' to regenerate configuration",
		})
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(code, message string) *CatalogError {
	return NewError(ErrorTypeTimeout, code, message).
		SetRetryable(true).
		WithSuggestions([]string{
			"Increase api.timeout",
			"Try the operation again",
		})
}

// NewNotFoundError creates a not found error
func NewNotFoundError(code, message string) *CatalogError {
	return NewError(ErrorTypeNotFound, code, message).
		WithSuggestion("Verify the identifier with 'connhub list'")
}

// NewConflictError creates a conflict error
func NewConflictError(code, message string) *CatalogError {
	return NewError(ErrorTypeConflict, code, message)
}

// NewAlreadyVotedError reports a repeated vote
func NewAlreadyVotedError(requestID int64) *CatalogError {
	return NewConflictError(CodeAlreadyVoted, "you have already voted for this request").
		WithContext("request", fmt.Sprint(requestID))
}

// NewVersionExistsError reports an upload of an already published version
func NewVersionExistsError(bundle, version string) *CatalogError {
	return NewConflictError(CodeVersionExists,
		fmt.Sprintf("version %s of %s already exists", version, bundle)).
		WithContext("bundle", bundle).
		WithContext("version", version).
		WithSuggestion("Bump the connector version and upload again")
}

// FromStatus maps an HTTP status to a typed error. 5xx and 429 are
// retryable; other 4xx are not.
func FromStatus(status int, message string) *CatalogError {
	if message == "" {
		message = http.StatusText(status)
	}
	var e *CatalogError
	switch {
	case status == http.StatusNotFound:
		e = NewNotFoundError(CodeNotFound, message)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e = NewError(ErrorTypePermission, CodeHTTPStatus, message)
	case status == http.StatusConflict:
		e = NewConflictError(CodeHTTPStatus, message)
	case status == http.StatusTooManyRequests:
		e = NewNetworkError(CodeHTTPStatus, message)
	case status >= 500:
		e = NewError(ErrorTypeServer, CodeHTTPStatus, message).SetRetryable(true)
	case status >= 400:
		e = NewValidationError(CodeHTTPStatus, message)
	default:
		e = NewError(ErrorTypeUnknown, CodeHTTPStatus, message)
	}
	e.Status = status
	return e.WithContext("status", fmt.Sprint(status))
}

// ErrorHandler provides centralized error handling
type ErrorHandler struct {
	mu     sync.Mutex
	logger Logger
	stats  *ErrorStats
}

// Logger interface for error logging
type Logger interface {
	Error(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
}

// ErrorStats tracks error statistics
type ErrorStats struct {
	TotalErrors   int               `json:"total_errors"`
	ErrorsByType  map[ErrorType]int `json:"errors_by_type"`
	ErrorsByCode  map[string]int    `json:"errors_by_code"`
	LastError     *CatalogError     `json:"last_error,omitempty"`
	LastErrorTime time.Time         `json:"last_error_time"`
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
		stats:  newStats(),
	}
}

func newStats() *ErrorStats {
	return &ErrorStats{
		ErrorsByType: make(map[ErrorType]int),
		ErrorsByCode: make(map[string]int),
	}
}

func toCatalogError(err error) *CatalogError {
	if ce, ok := As(err); ok {
		return ce
	}
	return WrapError(err, ErrorTypeUnknown, "UNKNOWN", err.Error())
}

// Handle records err and logs it
func (eh *ErrorHandler) Handle(err error) {
	if err == nil {
		return
	}
	ce := toCatalogError(err)

	eh.mu.Lock()
	eh.stats.TotalErrors++
	eh.stats.ErrorsByType[ce.Type]++
	eh.stats.ErrorsByCode[ce.Code]++
	eh.stats.LastError = ce
	eh.stats.LastErrorTime = time.Now()
	eh.mu.Unlock()

	if eh.logger == nil {
		return
	}
	if ce.Type == ErrorTypeConflict || ce.Type == ErrorTypeValidation {
		eh.logger.Warn("%s [%s] %s", ce.Type.String(), ce.Code, ce.Message)
	} else {
		eh.logger.Error("%s [%s] %s", ce.Type.String(), ce.Code, ce.Error())
	}
	for key, value := range ce.Context {
		eh.logger.Debug("error context: %s = %s", key, value)
	}
}

// HandleWithRecovery handles an error and adds recovery suggestions
func (eh *ErrorHandler) HandleWithRecovery(err error) *CatalogError {
	if err == nil {
		return nil
	}
	ce := toCatalogError(err)
	addRecoverySuggestions(ce)
	eh.Handle(ce)
	return ce
}

func addRecoverySuggestions(err *CatalogError) {
	msg := strings.ToLower(err.Error())
	switch err.Type {
	case ErrorTypeNetwork, ErrorTypeTimeout:
		if strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline") {
			err.WithSuggestion("Consider increasing api.timeout")
		}
		if strings.Contains(msg, "connection refused") {
			err.WithSuggestion("Check if the catalog backend is running")
		}
	case ErrorTypeFileSystem:
		if strings.Contains(msg, "permission denied") {
			err.WithSuggestion("Check permissions of cache.dir")
		}
	case ErrorTypePermission:
		err.WithSuggestion("Check user.name and your access to the catalog")
	}
}

// GetStats returns a copy of the error statistics
func (eh *ErrorHandler) GetStats() ErrorStats {
	eh.mu.Lock()
	defer eh.mu.Unlock()
	s := *eh.stats
	s.ErrorsByType = make(map[ErrorType]int, len(eh.stats.ErrorsByType))
	for k, v := range eh.stats.ErrorsByType {
		s.ErrorsByType[k] = v
	}
	s.ErrorsByCode = make(map[string]int, len(eh.stats.ErrorsByCode))
	for k, v := range eh.stats.ErrorsByCode {
		s.ErrorsByCode[k] = v
	}
	return s
}

// Reset resets error statistics
func (eh *ErrorHandler) Reset() {
	eh.mu.Lock()
	defer eh.mu.Unlock()
	eh.stats = newStats()
}

// Global error handler
var globalErrorHandler *ErrorHandler

// InitGlobalErrorHandler initializes the global error handler
func InitGlobalErrorHandler(logger Logger) {
	globalErrorHandler = NewErrorHandler(logger)
}

// GetGlobalErrorHandler returns the global error handler
func GetGlobalErrorHandler() *ErrorHandler {
	if globalErrorHandler == nil {
		globalErrorHandler = NewErrorHandler(nil)
	}
	return globalErrorHandler
}

// Handle handles an error using the global error handler
func Handle(err error) {
	GetGlobalErrorHandler().Handle(err)
}

// HandleWithRecovery handles an error with recovery using the global error handler
func HandleWithRecovery(err error) *CatalogError {
	return GetGlobalErrorHandler().HandleWithRecovery(err)
}
