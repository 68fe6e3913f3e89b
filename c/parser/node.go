package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/cfront/c/token"
)

type NodeKind int

const (
	KindInvalid NodeKind = iota

	// Declarations
	KindTranslationUnit
	KindFunctionDeclaration
	KindVariableDeclaration
	KindTypeDeclaration
	KindDeclarationGroup
	KindParameter
	KindEnumerator
	KindStaticAssert

	// Statements
	KindCompoundStatement
	KindExpressionStatement
	KindIfStatement
	KindSwitchStatement
	KindCaseStatement
	KindDefaultStatement
	KindWhileStatement
	KindDoWhileStatement
	KindForStatement
	KindGotoStatement
	KindContinueStatement
	KindBreakStatement
	KindReturnStatement
	KindLabeledStatement
	KindNullStatement

	// Expressions
	KindCommaExpression
	KindAssignmentExpression
	KindTernaryExpression
	KindBinaryExpression
	KindCastExpression
	KindUnaryExpression
	KindPostfixExpression
	KindSizeofExpression
	KindAlignofExpression
	KindCallExpression
	KindMemberExpression
	KindArrayAccess
	KindParenExpression
	KindCompoundLiteral
	KindGenericSelection
	KindGenericAssociation
	KindInitializerList
	KindDesignatedInitializer
	KindMemberDesignator
	KindIndexDesignator
	KindIdentifier
	KindIntegerLiteral
	KindFloatLiteral
	KindCharLiteral
	KindStringLiteral
	KindBoolLiteral
	KindNullptrLiteral

	// KindEmpty fills an optional slot that was left out, such as a missing
	// for-loop condition.
	KindEmpty
)

var nodeKindNames = map[NodeKind]string{
	KindInvalid:               "Invalid",
	KindTranslationUnit:       "TranslationUnit",
	KindFunctionDeclaration:   "FunctionDeclaration",
	KindVariableDeclaration:   "VariableDeclaration",
	KindTypeDeclaration:       "TypeDeclaration",
	KindDeclarationGroup:      "DeclarationGroup",
	KindParameter:             "Parameter",
	KindEnumerator:            "Enumerator",
	KindStaticAssert:          "StaticAssert",
	KindCompoundStatement:     "CompoundStatement",
	KindExpressionStatement:   "ExpressionStatement",
	KindIfStatement:           "IfStatement",
	KindSwitchStatement:       "SwitchStatement",
	KindCaseStatement:         "CaseStatement",
	KindDefaultStatement:      "DefaultStatement",
	KindWhileStatement:        "WhileStatement",
	KindDoWhileStatement:      "DoWhileStatement",
	KindForStatement:          "ForStatement",
	KindGotoStatement:         "GotoStatement",
	KindContinueStatement:     "ContinueStatement",
	KindBreakStatement:        "BreakStatement",
	KindReturnStatement:       "ReturnStatement",
	KindLabeledStatement:      "LabeledStatement",
	KindNullStatement:         "NullStatement",
	KindCommaExpression:       "CommaExpression",
	KindAssignmentExpression:  "AssignmentExpression",
	KindTernaryExpression:     "TernaryExpression",
	KindBinaryExpression:      "BinaryExpression",
	KindCastExpression:        "CastExpression",
	KindUnaryExpression:       "UnaryExpression",
	KindPostfixExpression:     "PostfixExpression",
	KindSizeofExpression:      "SizeofExpression",
	KindAlignofExpression:     "AlignofExpression",
	KindCallExpression:        "CallExpression",
	KindMemberExpression:      "MemberExpression",
	KindArrayAccess:           "ArrayAccess",
	KindParenExpression:       "ParenExpression",
	KindCompoundLiteral:       "CompoundLiteral",
	KindGenericSelection:      "GenericSelection",
	KindGenericAssociation:    "GenericAssociation",
	KindInitializerList:       "InitializerList",
	KindDesignatedInitializer: "DesignatedInitializer",
	KindMemberDesignator:      "MemberDesignator",
	KindIndexDesignator:       "IndexDesignator",
	KindIdentifier:            "Identifier",
	KindIntegerLiteral:        "IntegerLiteral",
	KindFloatLiteral:          "FloatLiteral",
	KindCharLiteral:           "CharLiteral",
	KindStringLiteral:         "StringLiteral",
	KindBoolLiteral:           "BoolLiteral",
	KindNullptrLiteral:        "NullptrLiteral",
	KindEmpty:                 "Empty",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsExpression reports whether nodes of kind k are expressions.
func (k NodeKind) IsExpression() bool {
	return k >= KindCommaExpression && k <= KindNullptrLiteral
}

// IsStatement reports whether nodes of kind k are statements.
func (k NodeKind) IsStatement() bool {
	return k >= KindCompoundStatement && k <= KindNullStatement
}

// IsDeclaration reports whether nodes of kind k declare something.
func (k NodeKind) IsDeclaration() bool {
	return k >= KindFunctionDeclaration && k <= KindStaticAssert
}

// Node is one vertex of the syntax tree. Which fields a node uses depends on
// its kind:
//
//	FunctionDeclaration   Name, Type (function), Children: Parameter..., [CompoundStatement]
//	VariableDeclaration   Name, Type, Children: [initializer]
//	TypeDeclaration       Op (TYPEDEF, STRUCT, UNION, ENUM), Name, Type, Children: Enumerator...
//	Parameter             Name (may be empty), Type
//	Enumerator            Name, Children: [value]
//	IfStatement           Children: cond, then, [else]
//	ForStatement          Children: init, cond, post, body; absent parts are NullStatement or Empty
//	BinaryExpression      Op, Token, Children: left, right
//	AssignmentExpression  Op, Token, Children: target, value
//	UnaryExpression       Op, Token, Children: operand
//	MemberExpression      Op (PERIOD, ARROW), Name, Children: object
//	CastExpression        Type, Children: operand
//	SizeofExpression      Type or Children: operand
//	Identifier            Name, Token
//	*Literal              Token; StringLiteral also sets Name to the concatenated lexemes
type Node struct {
	Kind     NodeKind
	Span     token.Span
	Token    *token.Token
	Op       token.Kind
	Name     string
	Type     *Type
	Children []*Node
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	c := n.Children[i]
	if c.Kind == KindEmpty {
		return nil
	}
	return c
}

func (n *Node) Left() *Node  { return n.child(0) }
func (n *Node) Right() *Node { return n.child(1) }

// Operand returns the single operand of a unary, postfix, cast, member,
// sizeof or parenthesized expression.
func (n *Node) Operand() *Node { return n.child(0) }

func (n *Node) Cond() *Node {
	switch n.Kind {
	case KindIfStatement, KindWhileStatement, KindSwitchStatement, KindTernaryExpression:
		return n.child(0)
	case KindDoWhileStatement, KindForStatement:
		return n.child(1)
	}
	return nil
}

func (n *Node) Then() *Node {
	switch n.Kind {
	case KindIfStatement, KindTernaryExpression:
		return n.child(1)
	}
	return nil
}

func (n *Node) Else() *Node {
	switch n.Kind {
	case KindIfStatement, KindTernaryExpression:
		return n.child(2)
	}
	return nil
}

func (n *Node) Body() *Node {
	switch n.Kind {
	case KindFunctionDeclaration:
		return n.FirstChildOfKind(KindCompoundStatement)
	case KindWhileStatement, KindSwitchStatement, KindCaseStatement:
		return n.child(1)
	case KindDoWhileStatement:
		return n.child(0)
	case KindForStatement:
		return n.child(3)
	case KindLabeledStatement, KindDefaultStatement:
		return n.child(len(n.Children) - 1)
	}
	return nil
}

func (n *Node) Post() *Node {
	if n.Kind == KindForStatement {
		return n.child(2)
	}
	return nil
}

// Init returns a variable's initializer, an enumerator's value or a for
// loop's init clause.
func (n *Node) Init() *Node {
	switch n.Kind {
	case KindVariableDeclaration, KindEnumerator:
		return n.child(0)
	case KindForStatement:
		if c := n.child(0); c != nil && c.Kind != KindNullStatement {
			return c
		}
	}
	return nil
}

func (n *Node) Params() []*Node {
	return n.ChildrenOfKind(KindParameter)
}

func (n *Node) Args() []*Node {
	if n.Kind != KindCallExpression || len(n.Children) == 0 {
		return nil
	}
	return n.Children[1:]
}

// ReturnType is the result type of a function declaration.
func (n *Node) ReturnType() *Type {
	if n.Type == nil || n.Type.Kind != TypeFunction {
		return nil
	}
	return n.Type.Base
}

// Value returns the literal source text of identifiers and literals.
func (n *Node) Value() string {
	if n.Name != "" {
		return n.Name
	}
	if n.Token != nil {
		return n.Token.Lexeme
	}
	return ""
}

// IntValue decodes an integer or character constant. Integer suffixes and
// digit separators are ignored.
func (n *Node) IntValue() (uint64, error) {
	switch n.Kind {
	case KindIntegerLiteral:
		text := trimIntSuffix(strings.ReplaceAll(n.Value(), "'", ""))
		if len(text) > 1 && text[0] == '0' && text[1] >= '0' && text[1] <= '9' {
			return strconv.ParseUint(text[1:], 8, 64)
		}
		return strconv.ParseUint(text, 0, 64)
	case KindCharLiteral:
		text := n.Value()
		start := strings.IndexByte(text, '\'')
		if start < 0 || len(text) < start+2 {
			return 0, fmt.Errorf("malformed character constant %s", text)
		}
		v, _, _, err := strconv.UnquoteChar(text[start+1:len(text)-1], '\'')
		return uint64(v), err
	case KindBoolLiteral:
		if n.Token != nil && n.Token.Kind == token.TRUE {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("%s is not an integer constant", n.Kind)
}

var intSuffixes = []string{"uwb", "wbu", "ull", "llu", "wb", "ul", "lu", "ll", "u", "l"}

func trimIntSuffix(text string) string {
	lower := strings.ToLower(text)
	for _, suffix := range intSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return text[:len(text)-len(suffix)]
		}
	}
	return text
}

func (n *Node) FloatValue() (float64, error) {
	if n.Kind != KindFloatLiteral {
		return 0, fmt.Errorf("%s is not a floating constant", n.Kind)
	}
	text := strings.ReplaceAll(n.Value(), "'", "")
	// An exponent always ends in digits, so trailing letters are suffixes.
	text = strings.TrimRight(text, "fFlLdD")
	return strconv.ParseFloat(text, 64)
}

func (n *Node) String() string {
	var b strings.Builder
	n.writeIndent(&b, 0, false)
	return b.String()
}

func (n *Node) StringWithPositions() string {
	var b strings.Builder
	n.writeIndent(&b, 0, true)
	return b.String()
}

func (n *Node) writeIndent(b *strings.Builder, indent int, showPositions bool) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.Kind.String())
	if showPositions {
		b.WriteString(" [" + n.Span.String() + "]")
	}
	if n.Op != token.EOF {
		b.WriteString(" " + n.Op.String())
	} else if n.Token != nil && n.Name == "" {
		b.WriteString(" " + n.Token.Lexeme)
	}
	if n.Name != "" {
		b.WriteString(" " + n.Name)
	}
	if n.Type != nil {
		b.WriteString(" : " + n.Type.String())
	}
	b.WriteByte('\n')
	for _, child := range n.Children {
		child.writeIndent(b, indent+1, showPositions)
	}
}

// Walk calls fn for n and its descendants in depth-first order until fn
// returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}
