package interp

import "github.com/paiml/ruchy-sub004/ast"

// ActorDef is the runtime representation of an actor declaration: its
// declared fields (with default expressions evaluated at spawn time)
// and its message handlers.
type ActorDef struct {
	Name     string
	Fields   []ast.FieldDecl
	Handlers map[string]ast.ActorHandler
}

// ActorRef is the handle value `spawn` returns: the actor's live state
// (an ObjectMut, so handlers can mutate it) plus a FIFO mailbox drained
// synchronously — no goroutines, matching spec §5's "cooperative
// message queue... drained in definition order" note.
type ActorRef struct {
	Def     *ActorDef
	State   *ObjectMut
	Mailbox []Value
}

func (*ActorRef) Type() string     { return "Actor" }
func (a *ActorRef) String() string { return "<actor " + a.Def.Name + ">" }

func (in *Interpreter) defineActor(n *ast.Actor) {
	handlers := map[string]ast.ActorHandler{}
	for _, h := range n.Handlers {
		handlers[h.MessageName] = h
	}
	in.Actors[n.Name] = &ActorDef{Name: n.Name, Fields: n.Fields, Handlers: handlers}
}

func (in *Interpreter) evalSpawn(env *Environment, n *ast.Spawn) (Value, error) {
	ident, ok := n.ActorExpr.(*ast.Identifier)
	if !ok {
		return nil, typeError("spawn requires an actor name")
	}
	def, ok := in.Actors[ident.Name]
	if !ok {
		return nil, nameError("undefined actor %q", ident.Name)
	}
	args, err := in.evalExprs(env, n.Args)
	if err != nil {
		return nil, err
	}
	fields := map[string]Value{}
	for i, f := range def.Fields {
		if i < len(args) {
			fields[f.Name] = args[i]
			continue
		}
		if f.Default != nil {
			v, err := in.eval(env, f.Default)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = v
			continue
		}
		fields[f.Name] = Nil{}
	}
	return &ActorRef{Def: def, State: NewObjectMut(def.Name, fields)}, nil
}

// evalSend enqueues Message on Target's mailbox and immediately drains
// one message by running its matching handler with `self` bound to the
// actor's state — the interpreter "steps" the actor synchronously on
// every send rather than deferring to a scheduler, per spec §5.
func (in *Interpreter) evalSend(env *Environment, n *ast.Send) (Value, error) {
	targetV, err := in.eval(env, n.Target)
	if err != nil {
		return nil, err
	}
	actor, ok := targetV.(*ActorRef)
	if !ok {
		return nil, typeError("send target must be an actor, got %s", targetV.Type())
	}
	msg, err := in.eval(env, n.Message)
	if err != nil {
		return nil, err
	}
	actor.Mailbox = append(actor.Mailbox, msg)
	return in.drainOne(actor)
}

func (in *Interpreter) drainOne(actor *ActorRef) (Value, error) {
	if len(actor.Mailbox) == 0 {
		return Unit{}, nil
	}
	msg := actor.Mailbox[0]
	actor.Mailbox = actor.Mailbox[1:]

	name, args := messageShape(msg)
	handler, ok := actor.Def.Handlers[name]
	if !ok {
		return nil, nameError("actor %q has no handler for message %q", actor.Def.Name, name)
	}
	frame := NewEnclosedEnvironment(in.Global)
	frame.Define("self", actor.State)
	if err := bindParams(in, frame, handler.Params, args); err != nil {
		return nil, err
	}
	v, err := in.eval(frame, handler.Body)
	if err != nil {
		if ret, ok := err.(*returnSignal); ok {
			return ret.Value, nil
		}
		return nil, err
	}
	return v, nil
}

// messageShape extracts a handler name and positional args from a sent
// message: a bare Identifier-turned-String tag, or a tagged Object
// (`__variant`) carrying positional `_0, _1, ...` fields, matching how
// defineEnumConstructors shapes constructed values.
func messageShape(msg Value) (string, []Value) {
	if s, ok := msg.(String); ok {
		return string(s), nil
	}
	obj, ok := msg.(*Object)
	if !ok {
		return "", nil
	}
	variant, _ := obj.Fields["__variant"].(String)
	var args []Value
	for i := 0; ; i++ {
		v, present := obj.Fields[enumFieldName(i)]
		if !present {
			break
		}
		args = append(args, v)
	}
	return string(variant), args
}
