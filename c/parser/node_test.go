package parser

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/cfront/c/token"
	"github.com/nalgeon/be"
)

func literal(kind NodeKind, tk token.Kind, lexeme string) *Node {
	tok := token.Token{Kind: tk, Lexeme: lexeme}
	return &Node{Kind: kind, Token: &tok}
}

func TestIntValue(t *testing.T) {
	tests := []struct {
		lexeme string
		want   uint64
	}{
		{"0", 0},
		{"42", 42},
		{"42u", 42},
		{"42ULL", 42},
		{"0x1F", 31},
		{"0xB", 11},
		{"0b101", 5},
		{"017", 15},
		{"1'000'000", 1000000},
		{"7wb", 7},
	}
	for _, tt := range tests {
		t.Run(tt.lexeme, func(t *testing.T) {
			v, err := literal(KindIntegerLiteral, token.INT_CONSTANT, tt.lexeme).IntValue()
			be.Err(t, err, nil)
			be.Equal(t, v, tt.want)
		})
	}
}

func TestCharAndBoolValues(t *testing.T) {
	v, err := literal(KindCharLiteral, token.CHAR_CONSTANT, `'a'`).IntValue()
	be.Err(t, err, nil)
	be.Equal(t, v, uint64('a'))

	v, err = literal(KindCharLiteral, token.CHAR_CONSTANT, `L'\n'`).IntValue()
	be.Err(t, err, nil)
	be.Equal(t, v, uint64('\n'))

	v, err = literal(KindBoolLiteral, token.TRUE, "true").IntValue()
	be.Err(t, err, nil)
	be.Equal(t, v, uint64(1))

	_, err = literal(KindStringLiteral, token.STRING, `"s"`).IntValue()
	be.True(t, err != nil)
}

func TestFloatValue(t *testing.T) {
	tests := []struct {
		lexeme string
		want   float64
	}{
		{"3.5", 3.5},
		{"1e3", 1000},
		{"2.5f", 2.5},
		{"0x1p-3", 0.125},
		{"1.0L", 1},
	}
	for _, tt := range tests {
		t.Run(tt.lexeme, func(t *testing.T) {
			v, err := literal(KindFloatLiteral, token.FLOAT_CONSTANT, tt.lexeme).FloatValue()
			be.Err(t, err, nil)
			be.Equal(t, v, tt.want)
		})
	}
}

func TestTypeString(t *testing.T) {
	intT := NewBaseType("int")
	charT := &Type{Kind: TypeBase, Name: "char", Qualifiers: []string{"const"}}

	tests := []struct {
		typ  *Type
		want string
	}{
		{intT, "int"},
		{PointerTo(charT), "*const char"},
		{ArrayOf(PointerTo(intT), "10"), "[10]*int"},
		{FunctionReturning(intT, nil, false), "func() int"},
		{FunctionReturning(intT, []*Type{PointerTo(charT)}, true), "func(*const char, ...) int"},
		{PointerTo(FunctionReturning(NewBaseType("void"), []*Type{intT}, false)), "*func(int) void"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			be.Equal(t, tt.typ.String(), tt.want)
		})
	}

	be.Equal(t, ArrayOf(PointerTo(intT), "").Root(), intT)
}

func TestNodeString(t *testing.T) {
	unit, _ := parseUnit(t, "int x = a + 1;")
	want := strings.Join([]string{
		"TranslationUnit",
		"  VariableDeclaration x : int",
		"    BinaryExpression +",
		"      Identifier a",
		"      IntegerLiteral 1",
		"",
	}, "\n")
	be.Equal(t, unit.String(), want)
	be.True(t, strings.Contains(unit.StringWithPositions(), "VariableDeclaration [test.c:1:1-test.c:1:15]"))
}

func TestNodeJSON(t *testing.T) {
	unit, _ := parseUnit(t, "int x = 1;")
	data, err := json.Marshal(unit)
	be.Err(t, err, nil)

	var got struct {
		Kind     string `json:"kind"`
		Children []struct {
			Kind     string `json:"kind"`
			Name     string `json:"name"`
			Type     string `json:"type"`
			Children []struct {
				Value string `json:"value"`
			} `json:"children"`
		} `json:"children"`
	}
	be.Err(t, json.Unmarshal(data, &got), nil)
	be.Equal(t, got.Kind, "TranslationUnit")
	be.Equal(t, got.Children[0].Kind, "VariableDeclaration")
	be.Equal(t, got.Children[0].Name, "x")
	be.Equal(t, got.Children[0].Type, "int")
	be.Equal(t, got.Children[0].Children[0].Value, "1")
}

func TestWalkAndChildLookup(t *testing.T) {
	unit, _ := parseUnit(t, "int f(int a) { if (a) return 1; return 0; }")

	var kinds []NodeKind
	unit.Walk(func(n *Node) bool {
		kinds = append(kinds, n.Kind)
		return true
	})
	be.Equal(t, kinds[0], KindTranslationUnit)
	be.Equal(t, len(kinds), 10)

	returns := 0
	unit.Walk(func(n *Node) bool {
		if n.Kind == KindReturnStatement {
			returns++
		}
		return true
	})
	be.Equal(t, returns, 2)

	fn := unit.Children[0]
	be.Equal(t, fn.FirstChildOfKind(KindParameter).Name, "a")
	be.Equal(t, len(fn.ChildrenOfKind(KindParameter)), 1)
	be.True(t, fn.FirstChildOfKind(KindEnumerator) == nil)

	stopped := 0
	unit.Walk(func(n *Node) bool {
		stopped++
		return n.Kind != KindFunctionDeclaration
	})
	be.Equal(t, stopped, 2)
}

func TestForAccessors(t *testing.T) {
	p := newParser(t, token.C17)
	stmt, err := p.ParseStatement(lex(t, "for (;;) x++;", token.C17))
	be.Err(t, err, nil)
	be.True(t, stmt.Init() == nil)
	be.True(t, stmt.Cond() == nil)
	be.True(t, stmt.Post() == nil)
	be.Equal(t, stmt.Body().Kind, KindExpressionStatement)
}
