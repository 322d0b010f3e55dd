package calendar

import (
	"errors"
	"fmt"
)

// Error kinds returned by Generate. Match them with errors.Is.
var (
	ErrInvalidYear   = errors.New("invalid year")
	ErrInvalidLocale = errors.New("invalid locale")
	ErrTemplate      = errors.New("invalid template")
)

// MinYear and MaxYear bound the years that can be rendered.
const (
	MinYear = 1
	MaxYear = 9999
)

// InvalidYearError reports a year outside [MinYear, MaxYear].
type InvalidYearError struct {
	Year int
}

func (e *InvalidYearError) Error() string {
	return fmt.Sprintf("year must be between %d and %d, got %d", MinYear, MaxYear, e.Year)
}

func (e *InvalidYearError) Unwrap() error { return ErrInvalidYear }

// InvalidLocaleError reports a locale code without a name table.
type InvalidLocaleError struct {
	Locale string
}

func (e *InvalidLocaleError) Error() string {
	return fmt.Sprintf("unknown locale '%s'. Use a locale code like en-GB, sv-SE, de-DE.", e.Locale)
}

func (e *InvalidLocaleError) Unwrap() error { return ErrInvalidLocale }

// TemplateError wraps a failure to compile or execute the bundled template.
type TemplateError struct {
	Err error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("invalid template: %v", e.Err)
}

// Is lets errors.Is match both ErrTemplate and the underlying cause.
func (e *TemplateError) Is(target error) bool { return target == ErrTemplate }

func (e *TemplateError) Unwrap() error { return e.Err }

// ValidateYear returns an *InvalidYearError if year cannot be rendered.
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return &InvalidYearError{Year: year}
	}
	return nil
}
