package lint

import "github.com/paiml/ruchy-sub004/token"

// VarKind classifies how a name entered scope, for diagnostic messages
// and for the per-kind "unused" rules spec §4.5 lists separately.
type VarKind int

const (
	VarLet VarKind = iota
	VarParam
	VarLoopVar
	VarMatchBinding
	VarFunction
)

func (k VarKind) String() string {
	switch k {
	case VarParam:
		return "parameter"
	case VarLoopVar:
		return "loop variable"
	case VarMatchBinding:
		return "match binding"
	case VarFunction:
		return "function"
	default:
		return "variable"
	}
}

// VarInfo tracks one binding's origin and whether it has been read.
type VarInfo struct {
	Name string
	Kind VarKind
	Pos  token.Position
	Used bool
}

// Scope is a single frame of a scope chain that mirrors
// interp.Environment's nesting exactly: a Let whose body is
// Literal(Unit) defines into the *current* Scope (no child is pushed),
// matching evalLet/evalLetPattern, so the same "is this let
// statement-level" check governs both the interpreter and the linter.
type Scope struct {
	variables map[string]*VarInfo
	parent    *Scope
}

// NewScope creates a scope nested under parent (nil for the global scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{variables: map[string]*VarInfo{}, parent: parent}
}

// Define records name as bound in s. A binding named "_" is never
// tracked: it is exempt from both undefined and unused checks
// everywhere, per spec.
func (s *Scope) Define(name string, kind VarKind, pos token.Position) *VarInfo {
	if name == "_" {
		return nil
	}
	vi := &VarInfo{Name: name, Kind: kind, Pos: pos}
	s.variables[name] = vi
	return vi
}

// DefinedLocally reports whether name is bound in this scope frame
// only (not any outer frame).
func (s *Scope) DefinedLocally(name string) bool {
	_, ok := s.variables[name]
	return ok
}

// Lookup walks outward from s, marking the binding used on the first
// successful hit, matching Environment.Get's walk-outward semantics.
func (s *Scope) Lookup(name string) (*VarInfo, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if vi, ok := sc.variables[name]; ok {
			vi.Used = true
			return vi, true
		}
	}
	return nil, false
}

// ExistsOutward reports whether name is already bound in some
// ancestor of s (not s itself) — the shadowing condition.
func (s *Scope) ExistsOutward(name string) bool {
	for sc := s.parent; sc != nil; sc = sc.parent {
		if _, ok := sc.variables[name]; ok {
			return true
		}
	}
	return false
}

// Unused returns every binding in this scope frame (only) that was
// never looked up, in definition order is not preserved (map
// iteration) — callers sort if a stable order matters.
func (s *Scope) Unused() []*VarInfo {
	var out []*VarInfo
	for _, vi := range s.variables {
		if !vi.Used {
			out = append(out, vi)
		}
	}
	return out
}
