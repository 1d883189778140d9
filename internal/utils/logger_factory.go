package utils

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	structuredEncodingNameConstant       = "json"
	consoleEncodingNameConstant          = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level %q: expected debug, info, warn, or error"
	unsupportedLogFormatTemplateConstant = "unsupported log format %q: expected structured or console"
)

// LogLevel selects the minimum severity emitted by scangap loggers.
type LogLevel string

// Log levels accepted by the common.log_level setting and --log-level flag.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

func (level LogLevel) zapLevel() (zapcore.Level, error) {
	switch level {
	case LogLevelDebug:
		return zapcore.DebugLevel, nil
	case LogLevelInfo:
		return zapcore.InfoLevel, nil
	case LogLevelWarn:
		return zapcore.WarnLevel, nil
	case LogLevelError:
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InvalidLevel, fmt.Errorf(unsupportedLogLevelTemplateConstant, string(level))
	}
}

// LogFormat selects the output encoding of scangap loggers. Structured emits
// one JSON object per entry for log pipelines; console emits human-readable
// lines for interactive runs.
type LogFormat string

// Log formats accepted by the common.log_format setting and --log-format flag.
const (
	LogFormatStructured LogFormat = "structured"
	LogFormatConsole    LogFormat = "console"
)

func (format LogFormat) encodingName() (string, error) {
	switch format {
	case LogFormatStructured:
		return structuredEncodingNameConstant, nil
	case LogFormatConsole:
		return consoleEncodingNameConstant, nil
	default:
		return "", fmt.Errorf(unsupportedLogFormatTemplateConstant, string(format))
	}
}

// LoggerFactory builds the zap loggers used across the reconciliation
// pipeline.
type LoggerFactory struct{}

// NewLoggerFactory constructs a LoggerFactory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLogger builds a zap.Logger honoring the requested level and format.
// Console loggers trade the production encoder's epoch timestamps for
// readable ones.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	zapLevel, levelError := requestedLogLevel.zapLevel()
	if levelError != nil {
		return nil, levelError
	}

	encodingName, formatError := requestedLogFormat.encodingName()
	if formatError != nil {
		return nil, formatError
	}

	configuration := zap.NewProductionConfig()
	configuration.Level = zap.NewAtomicLevelAt(zapLevel)
	configuration.Encoding = encodingName
	if requestedLogFormat == LogFormatConsole {
		configuration.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		configuration.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	return configuration.Build()
}
