package kwpdf

import "errors"

// Sentinel errors for conversion. Callers match them with errors.Is.
var (
	ErrInputNotFound    = errors.New("input file not found")
	ErrInvalidReport    = errors.New("invalid report")
	ErrSchemaMismatch   = errors.New("report does not match schema")
	ErrNoFontFound      = errors.New("no candidate font found")
	ErrFontRegistration = errors.New("font registration failed")
	ErrRenderBuild      = errors.New("document build failed")
	ErrWriteOutput      = errors.New("write output failed")
)
