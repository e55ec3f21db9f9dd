package ast

// StructLiteralField is one `name: value` entry of a StructLiteral (or
// `name` shorthand, where Value is nil and the field is filled from a
// same-named binding in scope).
type StructLiteralField struct {
	Name  string
	Value Expr // nil for shorthand
}

// StructLiteral is `Name { field: value, ... }`. When Name is a known
// class, the interpreter builds an instance from the class's field
// defaults overlaid with the given fields, without running any
// constructor; otherwise it builds a plain Object from the given fields.
type StructLiteral struct {
	Base
	Name   string
	Fields []StructLiteralField
}
