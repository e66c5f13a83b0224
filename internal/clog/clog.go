// Package clog is a thin wrapper around zap.Logger that treats a nil
// logger as "silent" everywhere in this module, so legalize and verify
// never have to guard every call site with a nilness check the way the
// teacher's wazevo fragments guard fmt.Printf with a package-level
// SSALoggingEnabled bool. Passing a real *zap.Logger turns that same
// guard into structured, leveled diagnostics.
package clog

import "go.uber.org/zap"

// Debug logs msg at debug level if l is non-nil.
func Debug(l *zap.Logger, msg string, fields ...zap.Field) {
	if l != nil {
		l.Debug(msg, fields...)
	}
}

// Info logs msg at info level if l is non-nil.
func Info(l *zap.Logger, msg string, fields ...zap.Field) {
	if l != nil {
		l.Info(msg, fields...)
	}
}
