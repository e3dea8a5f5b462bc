package config

import "fmt"

// ReadError reports a configuration file that could not be opened or read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cannot read configuration file: %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ParseError reports a malformed document, a missing required element, or
// an element whose value has the wrong shape. Field is empty when the
// document itself could not be parsed.
type ParseError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := "invalid configuration"
	if e.Field != "" {
		msg += ": <" + e.Field + ">"
	}
	if e.Reason != "" {
		msg += " " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// DateFormatError reports a date_of_data or time_of_data value that does not
// match its fixed layout, either by length or when parsed.
type DateFormatError struct {
	Field  string // "date_of_data" or "time_of_data".
	Value  string
	Layout string // Human layout, e.g. "yyyymmdd".
	Err    error  // Underlying parse error, if any.
}

func (e *DateFormatError) Error() string {
	msg := fmt.Sprintf("Format for <%s> (in vectorgen XML config file) is:  %s (got %q)", e.Field, e.Layout, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DateFormatError) Unwrap() error { return e.Err }
