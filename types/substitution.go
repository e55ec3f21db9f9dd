package types

// Substitution maps type-variable IDs to the MonoType they've been
// unified to. Applying a substitution is a structural walk that
// replaces every KVar whose ID is bound.
type Substitution map[int]*MonoType

// Apply walks t, replacing every bound type variable with its
// substituted value (recursively, so chains of variable-to-variable
// bindings resolve fully).
func (s Substitution) Apply(t *MonoType) *MonoType {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case KVar:
		if bound, ok := s[t.VarID]; ok {
			return s.Apply(bound)
		}
		return t
	case KFunction:
		return Function(s.Apply(t.Arg), s.Apply(t.Ret))
	case KList:
		return List(s.Apply(t.Elem))
	case KSeries:
		return Series(s.Apply(t.Elem))
	case KOptional:
		return Optional(s.Apply(t.Elem))
	case KResult:
		return Result(s.Apply(t.Ok), s.Apply(t.Err))
	case KTuple:
		out := make([]*MonoType, len(t.Elements))
		for i, e := range t.Elements {
			out[i] = s.Apply(e)
		}
		return Tuple(out)
	default:
		return t
	}
}

// ApplyScheme applies s to every free occurrence in scheme.Body,
// leaving the bound (quantified) variables untouched — a bound var
// can't have been unified against since it was generalized away.
func (s Substitution) ApplyScheme(sc *TypeScheme) *TypeScheme {
	bound := make(map[int]bool, len(sc.Vars))
	for _, v := range sc.Vars {
		bound[v] = true
	}
	filtered := make(Substitution, len(s))
	for k, v := range s {
		if !bound[k] {
			filtered[k] = v
		}
	}
	return &TypeScheme{Vars: sc.Vars, Body: filtered.Apply(sc.Body)}
}

// Compose returns a substitution equivalent to applying s2 then s1.
func Compose(s1, s2 Substitution) Substitution {
	out := make(Substitution, len(s1)+len(s2))
	for k, v := range s2 {
		out[k] = s1.Apply(v)
	}
	for k, v := range s1 {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}

// FreeVars collects the set of unbound type-variable IDs occurring in t.
func FreeVars(t *MonoType) map[int]bool {
	out := map[int]bool{}
	var walk func(*MonoType)
	walk = func(t *MonoType) {
		if t == nil {
			return
		}
		switch t.Kind {
		case KVar:
			out[t.VarID] = true
		case KFunction:
			walk(t.Arg)
			walk(t.Ret)
		case KList, KSeries, KOptional:
			walk(t.Elem)
		case KResult:
			walk(t.Ok)
			walk(t.Err)
		case KTuple:
			for _, e := range t.Elements {
				walk(e)
			}
		}
	}
	walk(t)
	return out
}
