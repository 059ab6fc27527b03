package errcode

import "errors"

// Code is a stable error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	Unsupported   Code = "unsupported"
	InvalidParams Code = "invalid_params"

	// Catalog and plans
	InvalidCatalog Code = "invalid_catalog"
	InvalidPlan    Code = "invalid_plan"

	// Pin acquisition
	BankTaken           Code = "bank_taken"
	UnknownPin          Code = "unknown_pin"
	PinInUse            Code = "pin_in_use"
	UnsupportedFunction Code = "unsupported_function"
	StaleHandle         Code = "stale_handle"
	WrongMode           Code = "wrong_mode"

	// Buses
	UnknownBus Code = "unknown_bus"
	BusInUse   Code = "bus_in_use"
	Busy       Code = "busy"
	Timeout    Code = "timeout"
	Conflict   Code = "conflict"

	Error Code = "error" // generic fallback
)

// E wraps a Code with context and an optional cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is lets errors.Is(err, SomeCode) match a wrapped *E.
func (e *E) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.C
}

// New builds an *E.
func New(c Code, op, msg string) *E { return &E{C: c, Op: op, Msg: msg} }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	type coder interface{ Code() Code }
	var x coder
	if errors.As(err, &x) {
		return x.Code()
	}
	return Error
}
