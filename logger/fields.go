package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across stubgen.
const (
	FieldComponent = "component"
	FieldModule    = "module"
	FieldPath      = "path"
	FieldFile      = "file"
	FieldCount     = "count"
	FieldTypeID    = "type_id"
	FieldRule      = "rule"
	FieldStrategy  = "self_import"
	FieldError     = "error"
	FieldRun       = "run"
)

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	type Builder struct {
//	    log *zap.SugaredLogger
//	}
//
//	func NewBuilder() *Builder {
//	    return &Builder{log: logger.ComponentLogger("stub.builder")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
