package store

import "fmt"

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess   RetCode = iota // 0: command executed successfully
	RetCWrongType                // 1: value at key has the wrong kind
	RetCSyntax                   // 2: unrecognized option token or wrong arity
	RetCRange                    // 3: integer overflow, size limit, index out of range
	RetCDomain                   // 4: result would be NaN or Infinity
	RetCInternal                 // 5: internal error
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCWrongType:
		return "WrongType"
	case RetCSyntax:
		return "Syntax"
	case RetCRange:
		return "Range"
	case RetCDomain:
		return "Domain"
	case RetCInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is the typed error a command reply carries. All errors are local to
// one command: the database state is exactly as before the command.
type Error struct {
	Code RetCode `json:"code"`
	Msg  string  `json:"msg"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("CommandError (code %s): %s", e.Code, e.Msg)
}

// NewError creates a new Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Common command error messages.
const (
	msgNotInteger  = "value is not an integer or out of range"
	msgNotFloat    = "value is not a valid float"
	msgOverflow    = "increment or decrement would overflow"
	msgNanOrInf    = "increment would produce NaN or Infinity"
	msgSyntax      = "syntax error"
	msgOffsetRange = "offset is out of range"
)
