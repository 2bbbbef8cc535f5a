package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[LogLevel]slog.Level{
	DEBUG: slog.LevelDebug,
	INFO:  slog.LevelInfo,
	WARN:  slog.LevelWarn,
	ERROR: slog.LevelError,
}

func ParseLogLevel(level string) LogLevel {
	switch level {
	case "DEBUG", "debug":
		return DEBUG
	case "INFO", "info":
		return INFO
	case "WARN", "warn", "WARNING", "warning":
		return WARN
	case "ERROR", "error":
		return ERROR
	default:
		return INFO
	}
}

type Config struct {
	Level      LogLevel
	OutputFile string
	MaxSize    int64 // bytes; log file rotates when it grows past this
}

// ConfigFromEnv reads LOG_LEVEL and LOG_FILE. Defaults: INFO to stderr.
func ConfigFromEnv() Config {
	return Config{
		Level:      ParseLogLevel(os.Getenv("LOG_LEVEL")),
		OutputFile: os.Getenv("LOG_FILE"),
		MaxSize:    10 * 1024 * 1024,
	}
}

type Logger struct {
	slogger *slog.Logger
	logFile *os.File
}

var globalLogger *Logger

func Initialize(cfg Config) error {
	logger, err := NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	globalLogger = logger
	return nil
}

// NewLogger builds a logger writing to stderr and, when configured, a file.
// Stdout is never used: it carries the MCP protocol stream.
func NewLogger(cfg Config) (*Logger, error) {
	logger := &Logger{}

	writers := []io.Writer{os.Stderr}

	if cfg.OutputFile != "" {
		dir := filepath.Dir(cfg.OutputFile)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}

		if err := rotateLogIfNeeded(cfg.OutputFile, cfg.MaxSize); err != nil {
			return nil, fmt.Errorf("failed to rotate log: %w", err)
		}

		file, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logger.logFile = file
		writers = append(writers, file)
	}

	var writer io.Writer
	if len(writers) == 1 {
		writer = writers[0]
	} else {
		writer = io.MultiWriter(writers...)
	}

	opts := &slog.HandlerOptions{Level: levelNames[cfg.Level]}
	logger.slogger = slog.New(slog.NewTextHandler(writer, opts))

	return logger, nil
}

func rotateLogIfNeeded(filename string, maxSize int64) error {
	info, err := os.Stat(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if info.Size() >= maxSize {
		timestamp := time.Now().Format("20060102-150405")
		backupName := fmt.Sprintf("%s.%s", filename, timestamp)
		if err := os.Rename(filename, backupName); err != nil {
			return fmt.Errorf("failed to rotate log file: %w", err)
		}
	}

	return nil
}

func (l *Logger) Close() error {
	if l.logFile != nil {
		return l.logFile.Close()
	}
	return nil
}

func (l *Logger) log(level LogLevel, msg string, fields map[string]interface{}) {
	attrs := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	l.slogger.Log(context.Background(), levelNames[level], msg, attrs...)
}

func oneField(fields []map[string]interface{}) map[string]interface{} {
	if len(fields) > 0 {
		return fields[0]
	}
	return nil
}

func Debug(msg string, fields ...map[string]interface{}) {
	if globalLogger != nil {
		globalLogger.log(DEBUG, msg, oneField(fields))
	}
}

func Info(msg string, fields ...map[string]interface{}) {
	if globalLogger != nil {
		globalLogger.log(INFO, msg, oneField(fields))
	}
}

func Warn(msg string, fields ...map[string]interface{}) {
	if globalLogger != nil {
		globalLogger.log(WARN, msg, oneField(fields))
	}
}

func Error(msg string, err error, fields ...map[string]interface{}) {
	if globalLogger != nil {
		fieldMap := oneField(fields)
		if err != nil {
			if fieldMap == nil {
				fieldMap = map[string]interface{}{}
			}
			fieldMap["error"] = err.Error()
		}
		globalLogger.log(ERROR, msg, fieldMap)
	}
}

// LogToolCall records the outcome of one tool invocation.
func LogToolCall(toolName string, err error) {
	if err != nil {
		Error(fmt.Sprintf("tool call failed: %s", toolName), err)
	} else {
		Info(fmt.Sprintf("tool call completed: %s", toolName))
	}
}

func Shutdown() error {
	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}
