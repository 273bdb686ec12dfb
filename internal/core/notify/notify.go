// Package notify defines the user-facing notifications raised by dashboard
// operations.
package notify

import (
	"fmt"
	"time"
)

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification represents a single notification event.
type Notification struct {
	Level     Level
	Message   string
	CreatedAt time.Time
}

// New builds a notification stamped with the current time.
func New(level Level, format string, args ...any) Notification {
	return Notification{
		Level:     level,
		Message:   fmt.Sprintf(format, args...),
		CreatedAt: time.Now(),
	}
}

// Infof builds an info-level notification.
func Infof(format string, args ...any) Notification {
	return New(LevelInfo, format, args...)
}

// Warnf builds a warning-level notification.
func Warnf(format string, args ...any) Notification {
	return New(LevelWarning, format, args...)
}

// Errorf builds an error-level notification.
func Errorf(format string, args ...any) Notification {
	return New(LevelError, format, args...)
}
