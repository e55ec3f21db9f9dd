package interp

import (
	"fmt"

	"github.com/paiml/ruchy-sub004/token"
)

// RuntimeError is the evaluator's one error type, carrying a Kind so
// callers (try/catch, the REPL) can branch on category the way the
// teacher's CompilerError carries a Pos for caret rendering — this one
// carries a Kind instead, since runtime errors are reported without
// source re-rendering.
type RuntimeError struct {
	Kind    string
	Message string
	Pos     token.Position
}

func (e *RuntimeError) Error() string {
	if e.Kind == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newRuntimeError(kind, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func typeError(format string, args ...interface{}) *RuntimeError {
	return newRuntimeError("TypeError", format, args...)
}

func nameError(format string, args ...interface{}) *RuntimeError {
	return newRuntimeError("NameError", format, args...)
}

func indexError(format string, args ...interface{}) *RuntimeError {
	return newRuntimeError("IndexError", format, args...)
}

func valueError(format string, args ...interface{}) *RuntimeError {
	return newRuntimeError("ValueError", format, args...)
}

// ThrownValue wraps a user `throw`n value so it can propagate through
// Go's error-return plumbing like any other RuntimeError while still
// carrying the original Value for a matching `catch` clause to bind.
type ThrownValue struct {
	Value Value
}

func (t *ThrownValue) Error() string {
	return fmt.Sprintf("uncaught exception: %s", t.Value.String())
}

// breakSignal, continueSignal and returnSignal are propagated as
// errors through eval's normal (Value, error) return so that
// evaluating a block never needs a side channel: a loop or function
// call unwraps the signal it understands and re-raises anything else
// unchanged, the same "typed sentinel error" idiom the teacher uses
// for its own control-flow unwinding.
type breakSignal struct{ Value Value }

func (*breakSignal) Error() string { return "break outside loop" }

type continueSignal struct{}

func (*continueSignal) Error() string { return "continue outside loop" }

type returnSignal struct{ Value Value }

func (*returnSignal) Error() string { return "return outside function" }
