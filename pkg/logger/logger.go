// Package logger provides logging implementations for the mcloud OAuth2
// server core.
package logger

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/interfaces"
)

// Level names, lowest to highest severity.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var levelRank = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// ConsoleLogger writes levelled, key=value formatted lines to the standard
// log output.
type ConsoleLogger struct {
	level  string
	fields map[string]interface{}
}

// NewConsoleLogger creates a new console logger with the given minimum level
func NewConsoleLogger(level string) interfaces.Logger {
	if _, ok := levelRank[level]; !ok {
		level = LevelInfo
	}
	return &ConsoleLogger{level: level}
}

// NewLogger creates a new logger with default settings
func NewLogger() interfaces.Logger {
	return NewConsoleLogger(LevelInfo)
}

// NewTestLogger creates a logger for testing
func NewTestLogger() interfaces.Logger {
	return NewConsoleLogger(LevelDebug)
}

// Debug logs debug level messages
func (l *ConsoleLogger) Debug(msg string, fields ...map[string]interface{}) {
	l.logWithFields(LevelDebug, msg, fields...)
}

// Info logs info level messages
func (l *ConsoleLogger) Info(msg string, fields ...map[string]interface{}) {
	l.logWithFields(LevelInfo, msg, fields...)
}

// Warn logs warning level messages
func (l *ConsoleLogger) Warn(msg string, fields ...map[string]interface{}) {
	l.logWithFields(LevelWarn, msg, fields...)
}

// Error logs error level messages
func (l *ConsoleLogger) Error(msg string, err error, fields ...map[string]interface{}) {
	var allFields []map[string]interface{}
	if err != nil {
		allFields = append(allFields, map[string]interface{}{"error": err.Error()})
	}
	allFields = append(allFields, fields...)
	l.logWithFields(LevelError, msg, allFields...)
}

// Fatal logs an error and exits the process. Not part of interfaces.Logger;
// reserved for process bootstrap paths.
func (l *ConsoleLogger) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.Error(msg, err, fields...)
	os.Exit(1)
}

// WithFields returns a logger that includes fields on every line
func (l *ConsoleLogger) WithFields(fields map[string]interface{}) interfaces.Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &ConsoleLogger{level: l.level, fields: merged}
}

func (l *ConsoleLogger) logWithFields(level, msg string, fields ...map[string]interface{}) {
	if levelRank[level] < levelRank[l.level] {
		return
	}

	merged := make(map[string]interface{}, len(l.fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, fieldMap := range fields {
		for k, v := range fieldMap {
			merged[k] = v
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", strings.ToUpper(level), msg)

	// Sorted keys keep the output stable across runs.
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, merged[k])
	}

	log.Println(b.String())
}
