package types

import "fmt"

// UnificationError reports two concrete types that cannot be made
// equal, or an occurs-check failure (a variable unifying with a type
// that contains it, which would build an infinite type).
type UnificationError struct {
	Left, Right *MonoType
	OccursCheck bool
	VarID       int
}

func (e *UnificationError) Error() string {
	if e.OccursCheck {
		return fmt.Sprintf("occurs check failed: t%d occurs in %s", e.VarID, e.Right)
	}
	return fmt.Sprintf("cannot unify %s with %s", e.Left, e.Right)
}

// Unify finds the most general substitution that makes a and b equal
// under the current substitution s, returning an extended
// substitution. Structural recursion with an occurs-check on variable
// binding, per spec §4.3.
func Unify(s Substitution, a, b *MonoType) (Substitution, error) {
	a, b = s.Apply(a), s.Apply(b)

	if a.Kind == KVar {
		return bindVar(s, a.VarID, b)
	}
	if b.Kind == KVar {
		return bindVar(s, b.VarID, a)
	}
	if a.Kind != b.Kind {
		return s, &UnificationError{Left: a, Right: b}
	}

	switch a.Kind {
	case KInt, KFloat, KBool, KString, KChar, KUnit:
		return s, nil
	case KNamed:
		if a.Name != b.Name {
			return s, &UnificationError{Left: a, Right: b}
		}
		return s, nil
	case KFunction:
		s, err := Unify(s, a.Arg, b.Arg)
		if err != nil {
			return s, err
		}
		return Unify(s, a.Ret, b.Ret)
	case KList, KSeries, KOptional:
		return Unify(s, a.Elem, b.Elem)
	case KResult:
		s, err := Unify(s, a.Ok, b.Ok)
		if err != nil {
			return s, err
		}
		return Unify(s, a.Err, b.Err)
	case KTuple:
		if len(a.Elements) != len(b.Elements) {
			return s, &UnificationError{Left: a, Right: b}
		}
		for i := range a.Elements {
			var err error
			s, err = Unify(s, a.Elements[i], b.Elements[i])
			if err != nil {
				return s, err
			}
		}
		return s, nil
	default:
		return s, &UnificationError{Left: a, Right: b}
	}
}

func bindVar(s Substitution, id int, t *MonoType) (Substitution, error) {
	if t.Kind == KVar && t.VarID == id {
		return s, nil
	}
	if occurs(id, t) {
		return s, &UnificationError{OccursCheck: true, VarID: id, Right: t}
	}
	out := make(Substitution, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	out[id] = t
	return out, nil
}

func occurs(id int, t *MonoType) bool {
	return FreeVars(t)[id]
}
