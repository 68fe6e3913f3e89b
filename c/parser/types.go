package parser

import "strings"

type TypeKind int

const (
	TypeBase TypeKind = iota
	TypePointer
	TypeArray
	TypeFunction
)

// Type is a C type as written in a declaration. Derived types chain through
// Base: a pointer's pointee, an array's element or a function's result.
type Type struct {
	Kind TypeKind
	// Name is the specifier text of a base type, such as "unsigned long",
	// "struct point" or a typedef name.
	Name       string
	Qualifiers []string
	// Storage holds the storage class and function specifiers of the
	// declaration the type came from. It is not part of String.
	Storage  []string
	Base     *Type
	Size     string
	Params   []*Type
	Variadic bool
}

func NewBaseType(name string) *Type {
	return &Type{Kind: TypeBase, Name: name}
}

func PointerTo(t *Type) *Type {
	return &Type{Kind: TypePointer, Base: t}
}

func ArrayOf(t *Type, size string) *Type {
	return &Type{Kind: TypeArray, Base: t, Size: size}
}

func FunctionReturning(result *Type, params []*Type, variadic bool) *Type {
	return &Type{Kind: TypeFunction, Base: result, Params: params, Variadic: variadic}
}

// Root returns the innermost base type of a derived chain.
func (t *Type) Root() *Type {
	for t != nil && t.Kind != TypeBase {
		t = t.Base
	}
	return t
}

func (t *Type) IsFunction() bool {
	return t != nil && t.Kind == TypeFunction
}

// HasStorage reports whether the declaration carried the given storage
// class or function specifier.
func (t *Type) HasStorage(s string) bool {
	root := t.Root()
	if root == nil {
		return false
	}
	for _, have := range root.Storage {
		if have == s {
			return true
		}
	}
	return false
}

// String renders the type left to right in the manner of Go type syntax:
// "*char", "[10]int", "func(int, *char) void".
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Type) write(b *strings.Builder) {
	quals := strings.Join(t.Qualifiers, " ")
	switch t.Kind {
	case TypeBase:
		if quals != "" {
			b.WriteString(quals + " ")
		}
		b.WriteString(t.Name)
	case TypePointer:
		if quals != "" {
			b.WriteString(quals + " ")
		}
		b.WriteByte('*')
		t.Base.write(b)
	case TypeArray:
		b.WriteString("[" + t.Size + "]")
		t.Base.write(b)
	case TypeFunction:
		b.WriteString("func(")
		for i, p := range t.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			p.write(b)
		}
		if t.Variadic {
			if len(t.Params) > 0 {
				b.WriteString(", ")
			}
			b.WriteString("...")
		}
		b.WriteString(") ")
		t.Base.write(b)
	}
}
