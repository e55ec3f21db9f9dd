package interp

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/paiml/ruchy-sub004/ast"
	"github.com/paiml/ruchy-sub004/token"
)

// Session wraps an Interpreter with a stable identity for a REPL-style
// driver: a UUID stamped once at creation so a front end can correlate
// `NeedMoreInput` buffering across reconnects (spec §6's REPL
// protocol), plus the running count of top-level expressions it has
// evaluated.
type Session struct {
	ID    uuid.UUID
	Interp *Interpreter
	count int
}

// NewSession creates a fresh Session with a random UUID.
func NewSession(opts ...Option) *Session {
	return &Session{ID: uuid.New(), Interp: New(opts...)}
}

// Eval runs prog.Exprs against the session's persistent global scope
// one expression at a time (unlike Interpreter.Run, state survives
// across calls so a REPL can feed it one line at a time), returning
// NeedMoreInput-style nil-error/nil-value pairs is left to the caller:
// an incomplete parse never reaches here since parsing happens before
// Eval is called.
func (s *Session) Eval(prog *ast.Program) (Value, error) {
	var last Value = Unit{}
	for _, e := range prog.Exprs {
		v, err := s.Interp.eval(s.Interp.Global, e)
		if err != nil {
			return nil, unwrapTopLevel(err)
		}
		last = v
		s.count++
	}
	return last, nil
}

// Count reports how many top-level expressions this session has
// evaluated so far.
func (s *Session) Count() int { return s.count }

// Complete returns every candidate — bound names in the session's
// current scope, reserved built-ins, and language keywords — whose
// spelling starts with prefix, sorted and deduplicated. This is a
// scoped-down version of a full tab-completion engine (no per-type
// method tables, no module-path or dotted-field completions): it
// covers the identifier/keyword completion surface a REPL line editor
// actually needs from a session that only tracks a flat global scope,
// without inventing the module/type registry a fuller completion
// engine would need and that this core has no runtime model for.
func (s *Session) Complete(prefix string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(name string) {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, name := range s.Interp.Global.Names() {
		add(name)
	}
	for _, name := range BuiltinNames() {
		add(name)
	}
	for _, name := range token.Keywords() {
		add(name)
	}
	sort.Strings(out)
	return out
}
