package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	return strings.ToUpper(l.zapLevel().String())
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LogLevelDebug:
		return zapcore.DebugLevel
	case LogLevelWarn:
		return zapcore.WarnLevel
	case LogLevelError:
		return zapcore.ErrorLevel
	case LogLevelFatal:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLogLevel parses "debug", "info", "warn", "error" or "fatal"
func ParseLogLevel(s string) (LogLevel, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(s))
	if err != nil {
		return LogLevelInfo, err
	}
	switch lvl {
	case zapcore.DebugLevel:
		return LogLevelDebug, nil
	case zapcore.WarnLevel:
		return LogLevelWarn, nil
	case zapcore.ErrorLevel:
		return LogLevelError, nil
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return LogLevelFatal, nil
	}
	return LogLevelInfo, nil
}

// Logger interface defines the logging contract
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})

	SetLevel(level LogLevel)

	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
}

// LogFormat represents the log output format
type LogFormat int

const (
	LogFormatText LogFormat = iota
	LogFormatJSON
)

// ParseLogFormat maps "json" to LogFormatJSON and anything else to text
func ParseLogFormat(s string) LogFormat {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return LogFormatJSON
	}
	return LogFormatText
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    LogLevel
	Format   LogFormat
	Output   io.Writer
	FilePath string
}

// DefaultLoggerConfig returns a default logger configuration
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:  LogLevelWarn,
		Format: LogFormatText,
		Output: os.Stderr,
	}
}

// ZapLogger implements Logger on top of a zap sugared logger
type ZapLogger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
	file  *os.File
}

// NewLogger creates a new logger with the given configuration
func NewLogger(config *LoggerConfig) (*ZapLogger, error) {
	if config == nil {
		config = DefaultLoggerConfig()
	}
	out := config.Output
	if out == nil {
		out = os.Stderr
	}

	level := zap.NewAtomicLevelAt(config.Level.zapLevel())
	sinks := []zapcore.WriteSyncer{zapcore.AddSync(out)}

	var file *os.File
	if config.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		file = f
		sinks = append(sinks, zapcore.AddSync(f))
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if config.Format == LogFormatJSON {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.NewMultiWriteSyncer(sinks...), level)
	return &ZapLogger{
		sugar: zap.New(core).Sugar(),
		level: level,
		file:  file,
	}, nil
}

// NewZapLogger wraps an existing zap logger. SetLevel on the result can
// only raise the level above what the wrapped core already enables.
func NewZapLogger(l *zap.Logger) *ZapLogger {
	level := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	return &ZapLogger{
		sugar: l.WithOptions(zap.IncreaseLevel(level)).Sugar(),
		level: level,
	}
}

// Debug logs a debug message
func (l *ZapLogger) Debug(msg string, args ...interface{}) { l.sugar.Debugf(msg, args...) }

// Info logs an info message
func (l *ZapLogger) Info(msg string, args ...interface{}) { l.sugar.Infof(msg, args...) }

// Warn logs a warning message
func (l *ZapLogger) Warn(msg string, args ...interface{}) { l.sugar.Warnf(msg, args...) }

// Error logs an error message
func (l *ZapLogger) Error(msg string, args ...interface{}) { l.sugar.Errorf(msg, args...) }

// Fatal logs a fatal message and exits
func (l *ZapLogger) Fatal(msg string, args ...interface{}) { l.sugar.Fatalf(msg, args...) }

// SetLevel sets the logging level
func (l *ZapLogger) SetLevel(level LogLevel) {
	l.level.SetLevel(level.zapLevel())
}

// WithField returns a logger with an additional field
func (l *ZapLogger) WithField(key string, value interface{}) Logger {
	return &ZapLogger{sugar: l.sugar.With(key, value), level: l.level, file: l.file}
}

// WithFields returns a logger with additional fields
func (l *ZapLogger) WithFields(fields map[string]interface{}) Logger {
	kv := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		kv = append(kv, k, v)
	}
	return &ZapLogger{sugar: l.sugar.With(kv...), level: l.level, file: l.file}
}

// Sync flushes buffered entries
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}

// Close flushes the logger and closes the log file, if any
func (l *ZapLogger) Close() error {
	_ = l.sugar.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Global logger instance
var globalLogger Logger

// InitGlobalLogger initializes the global logger
func InitGlobalLogger(config *LoggerConfig) error {
	logger, err := NewLogger(config)
	if err != nil {
		return err
	}
	globalLogger = logger
	return nil
}

// SetGlobalLogger replaces the global logger
func SetGlobalLogger(l Logger) {
	globalLogger = l
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() Logger {
	if globalLogger == nil {
		logger, _ := NewLogger(DefaultLoggerConfig())
		globalLogger = logger
	}
	return globalLogger
}

// NopLogger returns a logger that discards everything
func NopLogger() Logger {
	return NewZapLogger(zap.NewNop())
}

// Convenience functions for global logger
func Debug(msg string, args ...interface{}) {
	GetGlobalLogger().Debug(msg, args...)
}

func Info(msg string, args ...interface{}) {
	GetGlobalLogger().Info(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	GetGlobalLogger().Warn(msg, args...)
}

func Error(msg string, args ...interface{}) {
	GetGlobalLogger().Error(msg, args...)
}

func Fatal(msg string, args ...interface{}) {
	GetGlobalLogger().Fatal(msg, args...)
}
