package parser

import (
	"strconv"
	"strings"

	"github.com/dhamidi/cfront/c/token"
)

// SExpr renders the tree as a compact s-expression, the form used by the
// testdata files: "a + b * c" becomes (+ a (* b c)).
func (n *Node) SExpr() string {
	var b strings.Builder
	n.writeSExpr(&b)
	return b.String()
}

func atom(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, " ()\t\n") && !strings.HasPrefix(s, `"`) {
		return strconv.Quote(s)
	}
	return s
}

func typeAtom(t *Type) string {
	if t == nil {
		return "_"
	}
	return atom(t.String())
}

func (n *Node) writeSExpr(b *strings.Builder) {
	if n == nil {
		b.WriteString("_")
		return
	}
	list := func(head string, items ...any) {
		b.WriteString("(" + head)
		for _, item := range items {
			b.WriteByte(' ')
			switch v := item.(type) {
			case string:
				b.WriteString(v)
			case *Node:
				v.writeSExpr(b)
			}
		}
		b.WriteByte(')')
	}
	children := func() []any {
		items := make([]any, len(n.Children))
		for i, c := range n.Children {
			items[i] = c
		}
		return items
	}

	switch n.Kind {
	case KindTranslationUnit:
		list("unit", children()...)
	case KindFunctionDeclaration:
		var ps strings.Builder
		ps.WriteString("(params")
		for _, p := range n.Params() {
			ps.WriteString(" " + p.SExpr())
		}
		if n.Type != nil && n.Type.Variadic {
			ps.WriteString(" ...")
		}
		ps.WriteByte(')')
		if body := n.Body(); body != nil {
			list("function", atom(n.Name), typeAtom(n.ReturnType()), ps.String(), body)
		} else {
			list("function", atom(n.Name), typeAtom(n.ReturnType()), ps.String())
		}
	case KindVariableDeclaration:
		list("var", append([]any{atom(n.Name), typeAtom(n.Type)}, children()...)...)
	case KindParameter:
		if n.Name == "" {
			list("param", typeAtom(n.Type))
		} else {
			list("param", atom(n.Name), typeAtom(n.Type))
		}
	case KindTypeDeclaration:
		if n.Op == token.TYPEDEF {
			list("typedef", atom(n.Name), typeAtom(n.Type))
		} else {
			list(n.Op.String(), append([]any{atom(n.Name)}, children()...)...)
		}
	case KindEnumerator:
		list("enumerator", append([]any{atom(n.Name)}, children()...)...)
	case KindDeclarationGroup:
		list("decls", children()...)
	case KindStaticAssert:
		list("static_assert", children()...)

	case KindCompoundStatement:
		list("block", children()...)
	case KindExpressionStatement:
		list("expr", children()...)
	case KindIfStatement:
		list("if", children()...)
	case KindSwitchStatement:
		list("switch", children()...)
	case KindCaseStatement:
		list("case", children()...)
	case KindDefaultStatement:
		list("default", children()...)
	case KindWhileStatement:
		list("while", children()...)
	case KindDoWhileStatement:
		list("do", children()...)
	case KindForStatement:
		list("for", children()...)
	case KindGotoStatement:
		list("goto", atom(n.Name))
	case KindContinueStatement:
		b.WriteString("(continue)")
	case KindBreakStatement:
		b.WriteString("(break)")
	case KindReturnStatement:
		list("return", children()...)
	case KindLabeledStatement:
		list("label", append([]any{atom(n.Name)}, children()...)...)
	case KindNullStatement:
		b.WriteString("(null)")

	case KindBinaryExpression, KindAssignmentExpression, KindCommaExpression:
		list(n.Op.String(), children()...)
	case KindTernaryExpression:
		list("?", children()...)
	case KindUnaryExpression:
		list("unary", append([]any{n.Op.String()}, children()...)...)
	case KindPostfixExpression:
		list("postfix", append([]any{n.Op.String()}, children()...)...)
	case KindCastExpression:
		list("cast", append([]any{typeAtom(n.Type)}, children()...)...)
	case KindSizeofExpression, KindAlignofExpression:
		head := "sizeof"
		if n.Kind == KindAlignofExpression {
			head = "alignof"
		}
		if n.Type != nil {
			list(head, "(type "+typeAtom(n.Type)+")")
		} else {
			list(head, children()...)
		}
	case KindCallExpression:
		list("call", children()...)
	case KindMemberExpression:
		list(n.Op.String(), append(children(), atom(n.Name))...)
	case KindArrayAccess:
		list("index", children()...)
	case KindParenExpression:
		list("paren", children()...)
	case KindCompoundLiteral:
		list("compound", append([]any{typeAtom(n.Type)}, children()...)...)
	case KindInitializerList:
		list("init", children()...)
	case KindDesignatedInitializer:
		list("designate", children()...)
	case KindMemberDesignator:
		list("field", atom(n.Name))
	case KindIndexDesignator:
		list("at", children()...)
	case KindGenericSelection:
		list("generic", children()...)
	case KindGenericAssociation:
		if n.Type == nil {
			list("assoc", append([]any{"default"}, children()...)...)
		} else {
			list("assoc", append([]any{typeAtom(n.Type)}, children()...)...)
		}

	case KindEmpty:
		b.WriteString("_")
	default:
		b.WriteString(atom(n.Value()))
	}
}
