package core

import (
	"errors"
	"fmt"
)

// Error classes. Every *ConfigError matches ErrConfiguration and every *RowError
// matches ErrRowValidation under errors.Is.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrRowValidation = errors.New("row validation error")
)

// Configuration error kinds, raised only while a Configuration is constructed.
var (
	ErrDegenerateNumericDomain  = errors.New("degenerate numeric domain")
	ErrDegenerateCategoryDomain = errors.New("degenerate category domain")
	ErrMissingWeight            = errors.New("missing weight")
	ErrUnknownWeight            = errors.New("weight for unknown attribute")
	ErrInvalidWeight            = errors.New("invalid weight")
	ErrInvalidBound             = errors.New("invalid bound")
	ErrDuplicateAttribute       = errors.New("duplicate attribute")
	ErrDuplicateCategory        = errors.New("duplicate category")
	ErrUnknownKind              = errors.New("unknown attribute kind")
	ErrEmptyName                = errors.New("empty attribute name")
	ErrEmptyConfiguration       = errors.New("empty configuration")
	ErrInvalidOption            = errors.New("invalid option")
)

// Row validation error kinds, raised per row by the normalizer.
var (
	ErrMissingAttribute = errors.New("missing attribute")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrOutOfDomain      = errors.New("value out of domain")
	ErrInvalidValue     = errors.New("invalid value")
)

// ConfigError describes why a Configuration could not be constructed.
type ConfigError struct {
	Attribute string
	Kind      error
	Detail    string
}

func (e *ConfigError) Error() string {
	msg := e.Kind.Error()
	if e.Attribute != "" {
		msg = fmt.Sprintf("attribute %q: %s", e.Attribute, msg)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap exposes both the error class and the specific kind.
func (e *ConfigError) Unwrap() []error {
	return []error{ErrConfiguration, e.Kind}
}

// RowError describes why a single row could not be normalized.
type RowError struct {
	RowID     string
	Attribute string
	Kind      error
	Value     any
}

func (e *RowError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("row %q: attribute %q: %s", e.RowID, e.Attribute, e.Kind)
	}
	return fmt.Sprintf("row %q: attribute %q: %s (%v)", e.RowID, e.Attribute, e.Kind, e.Value)
}

// Unwrap exposes both the error class and the specific kind.
func (e *RowError) Unwrap() []error {
	return []error{ErrRowValidation, e.Kind}
}

func configErr(attribute string, kind error, format string, args ...any) *ConfigError {
	return &ConfigError{Attribute: attribute, Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
