package symdex

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be generic and they map well to CLI exit messages.
const (
	ECONFLICT = "conflict"
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract out the code & message.
//
// Any non-application error (such as a disk error) should be reported as an
// EINTERNAL error and the human user should only see "Internal error".
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("symdex error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Parse errors report EINVALID. Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	var pe *ParseError
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	} else if errors.As(err, &pe) {
		return EINVALID
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	var pe *ParseError
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	} else if errors.As(err, &pe) {
		return pe.Error()
	}
	return "Internal error."
}

// ParseError reports malformed index input together with the position of
// the offending entry.
type ParseError struct {
	// Source names the input, usually a file name or URL. May be empty.
	Source string

	// Entry is the 0-based index of the record being parsed, or -1 when the
	// failure is outside any record (e.g. the "var searchData=" header).
	Entry int

	// Offset is the byte offset of the failure. Line and Column are 1-based.
	Offset int
	Line   int
	Column int

	Msg string
}

func (e *ParseError) Error() string {
	var loc string
	if e.Source != "" {
		loc = e.Source + ":"
	}
	loc += fmt.Sprintf("%d:%d", e.Line, e.Column)
	if e.Entry >= 0 {
		return fmt.Sprintf("%s: entry %d: %s", loc, e.Entry, e.Msg)
	}
	return fmt.Sprintf("%s: %s", loc, e.Msg)
}
