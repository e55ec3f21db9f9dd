package interp

import "io"

// config holds the functional-options-configurable knobs, mirroring
// the lexer/parser packages' own Option/With* idiom rather than an
// exported struct with public fields.
type config struct {
	stdout                   io.Writer
	nonExhaustiveMatchIsUnit bool
}

// Option configures an Interpreter at construction time.
type Option func(*config)

// WithStdout redirects println/print output away from the default,
// for tests that want to capture it.
func WithStdout(w io.Writer) Option {
	return func(c *config) { c.stdout = w }
}

// WithNonExhaustiveMatchIsUnit makes a Match with no matching arm
// evaluate to Unit instead of raising a RuntimeError, the relaxed
// policy recorded for spec §4.2's open question on non-exhaustive
// matches.
func WithNonExhaustiveMatchIsUnit() Option {
	return func(c *config) { c.nonExhaustiveMatchIsUnit = true }
}
