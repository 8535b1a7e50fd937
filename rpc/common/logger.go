package common

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// --------------------------------------------------------------------------
// Log Levels
// --------------------------------------------------------------------------

type LogLevel uint8

const (
	LevelError LogLevel = iota
	LevelWarning
	LevelInfo
	LevelDebug
)

// --------------------------------------------------------------------------
// Logger Interface
// --------------------------------------------------------------------------

// ILogger is the leveled logger used across the application.
type ILogger interface {
	SetLevel(level LogLevel)
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// --------------------------------------------------------------------------
// Custom Logger
// --------------------------------------------------------------------------

// gkvLogger implements the ILogger interface with custom formatting
type gkvLogger struct {
	name   string
	level  LogLevel
	logger *log.Logger
}

func (l *gkvLogger) SetLevel(level LogLevel) {
	l.level = level
}

func (l *gkvLogger) Debugf(format string, args ...interface{}) {
	if l.level >= LevelDebug {
		l.log("DEBUG", format, args...)
	}
}

func (l *gkvLogger) Infof(format string, args ...interface{}) {
	if l.level >= LevelInfo {
		l.log("INFO", format, args...)
	}
}

func (l *gkvLogger) Warningf(format string, args ...interface{}) {
	if l.level >= LevelWarning {
		l.log("WARN", format, args...)
	}
}

func (l *gkvLogger) Errorf(format string, args ...interface{}) {
	l.log("ERROR", format, args...)
}

func (l *gkvLogger) log(levelStr, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	l.logger.Printf("%-5s | %-15s | %s", levelStr, l.name, message)
}

// --------------------------------------------------------------------------
// Logger Registry
// --------------------------------------------------------------------------

var (
	loggersMu sync.Mutex
	loggers   = map[string]ILogger{}
)

// GetLogger returns the named logger, creating it at INFO level on first
// use. Loggers are shared: two calls with the same name yield the same
// instance, so a level change is visible everywhere.
func GetLogger(pkgName string) ILogger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if l, ok := loggers[pkgName]; ok {
		return l
	}

	l := &gkvLogger{
		name:   pkgName,
		level:  LevelInfo,
		logger: log.New(os.Stdout, "", log.Ldate|log.Ltime),
	}
	loggers[pkgName] = l
	return l
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// ParseLogLevel converts a string level to a LogLevel.
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// InitLoggers sets the configured level on all application loggers.
func InitLoggers(config ServerConfig) error {
	level, err := ParseLogLevel(config.LogLevel)
	if err != nil {
		return err
	}

	for _, name := range []string{"store", "gcache", "transport/rpc", "rpc"} {
		GetLogger(name).SetLevel(level)
	}
	return nil
}
