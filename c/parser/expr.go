package parser

import (
	"strings"

	"github.com/dhamidi/cfront/c/token"
)

// binaryLevels lists the left-associative binary operators from loosest to
// tightest binding, logical-or through multiplicative.
var binaryLevels = [][]token.Kind{
	{token.LOR},
	{token.LAND},
	{token.OR},
	{token.XOR},
	{token.AND},
	{token.EQL, token.NEQ},
	{token.LSS, token.GTR, token.LEQ, token.GEQ},
	{token.SHL, token.SHR},
	{token.ADD, token.SUB},
	{token.MUL, token.QUO, token.REM},
}

// parseExpression parses a comma expression.
func (p *Parser) parseExpression() *Node {
	ok := p.enter("expression")
	defer p.exit()
	if !ok {
		return nil
	}

	left := p.parseAssignmentExpression()
	if left == nil {
		return nil
	}
	for p.check(token.COMMA) {
		node := &Node{Kind: KindCommaExpression, Span: token.Span{Start: left.Span.Start}}
		op := p.advance()
		node.Op = op.Kind
		node.Token = &op
		right := p.parseAssignmentExpression()
		if right == nil {
			return nil
		}
		node.AddChild(left)
		node.AddChild(right)
		left = p.finishNode(node)
	}
	return left
}

// parseAssignmentExpression is right-associative: a = b = c is a = (b = c).
func (p *Parser) parseAssignmentExpression() *Node {
	ok := p.enter("assignment")
	defer p.exit()
	if !ok {
		return nil
	}

	left := p.parseConditionalExpression()
	if left == nil {
		return nil
	}
	if !p.peek().Kind.IsAssignment() {
		return left
	}
	node := &Node{Kind: KindAssignmentExpression, Span: token.Span{Start: left.Span.Start}}
	op := p.advance()
	node.Op = op.Kind
	node.Token = &op
	right := p.parseAssignmentExpression()
	if right == nil {
		return nil
	}
	node.AddChild(left)
	node.AddChild(right)
	return p.finishNode(node)
}

// parseConditionalExpression is right-associative: a ? b : c ? d : e is
// a ? b : (c ? d : e).
func (p *Parser) parseConditionalExpression() *Node {
	ok := p.enter("conditional")
	defer p.exit()
	if !ok {
		return nil
	}

	cond := p.parseBinaryExpression(0)
	if cond == nil {
		return nil
	}
	if !p.check(token.QUESTION) {
		return cond
	}
	node := &Node{Kind: KindTernaryExpression, Span: token.Span{Start: cond.Span.Start}}
	q := p.advance()
	node.Token = &q
	node.AddChild(cond)

	then := p.parseExpression()
	if then == nil {
		return nil
	}
	node.AddChild(then)
	if _, ok := p.expect(token.COLON); !ok {
		return nil
	}
	els := p.parseConditionalExpression()
	if els == nil {
		return nil
	}
	node.AddChild(els)
	return p.finishNode(node)
}

// parseBinaryExpression parses binaryLevels[level] and everything binding
// tighter, folding operators of the same level to the left.
func (p *Parser) parseBinaryExpression(level int) *Node {
	if level == len(binaryLevels) {
		return p.parseCastExpression()
	}
	left := p.parseBinaryExpression(level + 1)
	if left == nil {
		return nil
	}
	for p.match(binaryLevels[level]...) {
		node := &Node{Kind: KindBinaryExpression, Span: token.Span{Start: left.Span.Start}}
		op := p.advance()
		node.Op = op.Kind
		node.Token = &op
		right := p.parseBinaryExpression(level + 1)
		if right == nil {
			return nil
		}
		node.AddChild(left)
		node.AddChild(right)
		left = p.finishNode(node)
	}
	return left
}

// startsTypeName reports whether tok can begin a type name in a cast. Only
// keywords count; typedef names are not recognized here.
func startsTypeName(tok token.Token) bool {
	return isTypeKeyword(tok.Kind) || isQualifier(tok.Kind)
}

// parseCastExpression tries "(type) operand" first. The attempt is undone
// through the position history when no type keyword follows the '('.
func (p *Parser) parseCastExpression() *Node {
	ok := p.enter("cast")
	defer p.exit()
	if !ok {
		return nil
	}

	if !p.check(token.LPAREN) {
		return p.parseUnaryExpression()
	}

	p.state.PushPositionHistory()
	open := p.advance()
	if !startsTypeName(p.peek()) {
		p.state.PopPositionHistory()
		return p.parseUnaryExpression()
	}
	p.state.DiscardPositionHistory()

	t := p.parseTypeName()
	if t == nil {
		return nil
	}
	if _, ok := p.expect(token.RPAREN); !ok {
		return nil
	}

	if p.check(token.LBRACE) {
		lit := &Node{Kind: KindCompoundLiteral, Type: t, Span: token.Span{Start: open.Pos}}
		if !p.cfg.Standard.AtLeast(token.C99) {
			p.warn(open, "compound literals require C99")
		}
		init := p.parseInitializerList()
		if init == nil {
			return nil
		}
		lit.AddChild(init)
		return p.parsePostfixSuffix(p.finishNode(lit))
	}

	node := &Node{Kind: KindCastExpression, Type: t, Token: &open, Span: token.Span{Start: open.Pos}}
	operand := p.parseCastExpression()
	if operand == nil {
		return nil
	}
	node.AddChild(operand)
	return p.finishNode(node)
}

func (p *Parser) parseUnaryExpression() *Node {
	ok := p.enter("unary")
	defer p.exit()
	if !ok {
		return nil
	}

	tok := p.peek()
	switch tok.Kind {
	case token.INC, token.DEC:
		node := p.startNode(KindUnaryExpression)
		p.advance()
		node.Op = tok.Kind
		node.Token = &tok
		operand := p.parseUnaryExpression()
		if operand == nil {
			return nil
		}
		node.AddChild(operand)
		return p.finishNode(node)
	case token.AND, token.MUL, token.ADD, token.SUB, token.BNOT, token.NOT:
		node := p.startNode(KindUnaryExpression)
		p.advance()
		node.Op = tok.Kind
		node.Token = &tok
		operand := p.parseCastExpression()
		if operand == nil {
			return nil
		}
		node.AddChild(operand)
		return p.finishNode(node)
	case token.SIZEOF:
		return p.parseSizeof(KindSizeofExpression)
	case token.ALIGNOF, token.ALIGNOF_:
		return p.parseSizeof(KindAlignofExpression)
	}
	return p.parsePostfixExpression()
}

// parseSizeof handles sizeof and alignof. Both take a parenthesized type
// name; sizeof also takes an expression.
func (p *Parser) parseSizeof(kind NodeKind) *Node {
	node := p.startNode(kind)
	kw := p.advance()
	node.Token = &kw

	if p.check(token.LPAREN) {
		p.state.PushPositionHistory()
		p.advance()
		if startsTypeName(p.peek()) || p.isTypedefName(p.peek()) {
			p.state.DiscardPositionHistory()
			t := p.parseTypeName()
			if t == nil {
				return nil
			}
			if _, ok := p.expect(token.RPAREN); !ok {
				return nil
			}
			node.Type = t
			return p.finishNode(node)
		}
		p.state.PopPositionHistory()
	}

	if kind == KindAlignofExpression {
		p.report(NewUnexpectedToken(p.peek(), token.LPAREN).Note("%s requires a parenthesized type name", kw.Lexeme))
		return nil
	}
	operand := p.parseUnaryExpression()
	if operand == nil {
		return nil
	}
	node.AddChild(operand)
	return p.finishNode(node)
}

func (p *Parser) parsePostfixExpression() *Node {
	expr := p.parsePrimaryExpression()
	if expr == nil {
		return nil
	}
	return p.parsePostfixSuffix(expr)
}

func (p *Parser) parsePostfixSuffix(expr *Node) *Node {
	for {
		progress := p.mustProgress()
		switch tok := p.peek(); tok.Kind {
		case token.LBRACK:
			node := &Node{Kind: KindArrayAccess, Token: &tok, Span: token.Span{Start: expr.Span.Start}}
			p.advance()
			index := p.parseExpression()
			if index == nil {
				return nil
			}
			if _, ok := p.expect(token.RBRACK); !ok {
				return nil
			}
			node.AddChild(expr)
			node.AddChild(index)
			expr = p.finishNode(node)
		case token.LPAREN:
			node := &Node{Kind: KindCallExpression, Token: &tok, Span: token.Span{Start: expr.Span.Start}}
			p.advance()
			node.AddChild(expr)
			if !p.parseArguments(node) {
				return nil
			}
			expr = p.finishNode(node)
		case token.PERIOD, token.ARROW:
			node := &Node{Kind: KindMemberExpression, Op: tok.Kind, Token: &tok, Span: token.Span{Start: expr.Span.Start}}
			p.advance()
			member, ok := p.expect(token.IDENT)
			if !ok {
				return nil
			}
			node.Name = member.Lexeme
			node.AddChild(expr)
			expr = p.finishNode(node)
		case token.INC, token.DEC:
			node := &Node{Kind: KindPostfixExpression, Op: tok.Kind, Token: &tok, Span: token.Span{Start: expr.Span.Start}}
			p.advance()
			node.AddChild(expr)
			expr = p.finishNode(node)
		default:
			return expr
		}
		if !progress() {
			return expr
		}
	}
}

// parseArguments parses a call's argument list after the '('.
func (p *Parser) parseArguments(call *Node) bool {
	if p.accept(token.RPAREN) {
		return true
	}
	for {
		progress := p.mustProgress()
		arg := p.parseAssignmentExpression()
		if arg == nil {
			return false
		}
		call.AddChild(arg)
		if !p.accept(token.COMMA) {
			break
		}
		if p.check(token.RPAREN) {
			p.report(NewSyntaxError(p.peek(), "expected expression, found %s", p.peek().Describe()).
				Suggest("remove the trailing ','"))
			return false
		}
		if !progress() {
			break
		}
	}
	_, ok := p.expect(token.RPAREN)
	return ok
}

func (p *Parser) parsePrimaryExpression() *Node {
	tok := p.peek()
	switch tok.Kind {
	case token.IDENT:
		p.advance()
		node := p.tokenNode(KindIdentifier, tok)
		node.Name = tok.Lexeme
		return node
	case token.INT_CONSTANT:
		p.advance()
		return p.tokenNode(KindIntegerLiteral, tok)
	case token.FLOAT_CONSTANT:
		p.advance()
		return p.tokenNode(KindFloatLiteral, tok)
	case token.CHAR_CONSTANT:
		p.advance()
		return p.tokenNode(KindCharLiteral, tok)
	case token.STRING:
		return p.parseStringLiteral()
	case token.TRUE, token.FALSE:
		p.advance()
		return p.tokenNode(KindBoolLiteral, tok)
	case token.NULLPTR:
		p.advance()
		return p.tokenNode(KindNullptrLiteral, tok)
	case token.LPAREN:
		node := p.startNode(KindParenExpression)
		p.advance()
		inner := p.parseExpression()
		if inner == nil {
			return nil
		}
		node.AddChild(inner)
		if _, ok := p.expect(token.RPAREN); !ok {
			return nil
		}
		return p.finishNode(node)
	case token.GENERIC:
		return p.parseGenericSelection()
	}
	p.report(NewSyntaxError(tok, "expected expression, found %s", tok.Describe()))
	return nil
}

// parseStringLiteral joins adjacent string literals into one node.
func (p *Parser) parseStringLiteral() *Node {
	first := p.peek()
	node := p.tokenNode(KindStringLiteral, first)
	var parts []string
	for p.check(token.STRING) {
		parts = append(parts, p.advance().Lexeme)
	}
	node.Name = strings.Join(parts, " ")
	return p.finishNode(node)
}

// parseGenericSelection parses _Generic(controlling, type: expr, default: expr).
func (p *Parser) parseGenericSelection() *Node {
	node := p.startNode(KindGenericSelection)
	kw := p.advance()
	node.Token = &kw
	if _, ok := p.expect(token.LPAREN); !ok {
		return nil
	}
	ctrl := p.parseAssignmentExpression()
	if ctrl == nil {
		return nil
	}
	node.AddChild(ctrl)

	seenDefault := false
	for p.accept(token.COMMA) {
		progress := p.mustProgress()
		assoc := p.startNode(KindGenericAssociation)
		if p.check(token.DEFAULT) {
			def := p.advance()
			if seenDefault {
				p.report(NewSemanticError(def, "duplicate default association in generic selection"))
			}
			seenDefault = true
		} else {
			t := p.parseTypeName()
			if t == nil {
				return nil
			}
			assoc.Type = t
		}
		if _, ok := p.expect(token.COLON); !ok {
			return nil
		}
		value := p.parseAssignmentExpression()
		if value == nil {
			return nil
		}
		assoc.AddChild(value)
		node.AddChild(p.finishNode(assoc))
		if !progress() {
			break
		}
	}
	if len(node.Children) == 1 {
		p.report(NewSyntaxError(p.peek(), "generic selection needs at least one association"))
	}
	if _, ok := p.expect(token.RPAREN); !ok {
		return nil
	}
	return p.finishNode(node)
}
