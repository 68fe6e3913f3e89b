package parser

import "github.com/dhamidi/cfront/c/token"

// parseCompoundStatement parses a braced block. newScope is false for a
// function body, which shares the scope of its parameters.
func (p *Parser) parseCompoundStatement(newScope bool) *Node {
	ok := p.enter("block")
	defer p.exit()
	if !ok {
		return nil
	}

	node := p.startNode(KindCompoundStatement)
	if _, ok := p.expect(token.LBRACE); !ok {
		return nil
	}
	if newScope {
		p.state.EnterScope("block")
		defer p.state.ExitScope()
	}

	failures := 0
	seenStatement := false
	for !p.check(token.RBRACE) && !p.ts.IsAtEnd() && !p.halted {
		progress := p.mustProgress()
		start := p.ts.Position()
		item := p.parseBlockItem(&seenStatement)
		if item != nil {
			node.AddChild(item)
			if !progress() {
				break
			}
			continue
		}

		failures++
		if failures > maxBlockFailures {
			p.report(NewLimitError(p.peek(), "too many errors in block; skipping to its end"))
			if !RecoverFromMissingBrace(p.ts) {
				p.skipToBlockEnd()
			}
			break
		}
		p.recoverAfter(start, true)
	}

	if p.check(token.RBRACE) {
		p.advance()
	} else if !p.halted {
		open := node.Span.Start
		p.report(NewMissingToken(p.peek(), token.RBRACE).Note("block opened at %s", open))
	}
	return p.finishNode(node)
}

// skipToBlockEnd consumes tokens up to the '}' closing the current block.
func (p *Parser) skipToBlockEnd() {
	depth := 0
	for !p.ts.IsAtEnd() {
		switch p.peek().Kind {
		case token.LBRACE:
			depth++
		case token.RBRACE:
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}

// parseBlockItem parses a declaration or a statement. seenStatement tracks
// whether a statement has already appeared in the block, for the C89 rule
// that declarations come first.
func (p *Parser) parseBlockItem(seenStatement *bool) *Node {
	if p.startsDeclaration() && !p.isLabel() {
		if *seenStatement && !p.cfg.Standard.AtLeast(token.C99) {
			p.warn(p.peek(), "ISO C90 forbids mixed declarations and code")
		}
		return p.parseDeclaration()
	}
	*seenStatement = true
	return p.parseStatement()
}

func (p *Parser) isLabel() bool {
	return p.check(token.IDENT) && p.peekN(1).Kind == token.COLON
}

func (p *Parser) parseStatement() *Node {
	ok := p.enter("statement")
	defer p.exit()
	if !ok {
		return nil
	}

	p.skipAttributes()
	switch p.peek().Kind {
	case token.LBRACE:
		return p.parseCompoundStatement(true)
	case token.IF:
		return p.parseIfStatement()
	case token.SWITCH:
		return p.parseSwitchStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.DO:
		return p.parseDoWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.GOTO:
		return p.parseGotoStatement()
	case token.CONTINUE:
		return p.parseJumpStatement(KindContinueStatement)
	case token.BREAK:
		return p.parseJumpStatement(KindBreakStatement)
	case token.RETURN:
		return p.parseReturnStatement()
	case token.CASE:
		return p.parseCaseStatement()
	case token.DEFAULT:
		return p.parseDefaultStatement()
	case token.SEMICOLON:
		node := p.startNode(KindNullStatement)
		p.advance()
		return p.finishNode(node)
	case token.IDENT:
		if p.isLabel() {
			return p.parseLabeledStatement()
		}
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseExpressionStatement() *Node {
	node := p.startNode(KindExpressionStatement)
	expr := p.parseExpression()
	if expr == nil {
		return nil
	}
	node.AddChild(expr)
	if _, ok := p.expect(token.SEMICOLON); !ok {
		return nil
	}
	return p.finishNode(node)
}

// parseCondition parses a parenthesized controlling expression.
func (p *Parser) parseCondition() *Node {
	if _, ok := p.expect(token.LPAREN); !ok {
		return nil
	}
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	if _, ok := p.expect(token.RPAREN); !ok {
		return nil
	}
	return cond
}

// withState parses a sub-statement with flag added to the parser state.
func (p *Parser) withState(flag ParserState, parse func() *Node) *Node {
	saved := p.state.State()
	p.state.AddState(flag)
	defer p.state.SetState(saved)
	return parse()
}

func (p *Parser) parseIfStatement() *Node {
	node := p.startNode(KindIfStatement)
	p.advance()
	cond := p.parseCondition()
	if cond == nil {
		return nil
	}
	node.AddChild(cond)

	then := p.parseSecondaryBlock()
	if then == nil {
		return nil
	}
	node.AddChild(then)

	if p.accept(token.ELSE) {
		els := p.parseSecondaryBlock()
		if els == nil {
			return nil
		}
		node.AddChild(els)
	}
	return p.finishNode(node)
}

// parseSecondaryBlock parses the body of a selection or iteration
// statement, which gets a scope of its own. A braced body is that scope.
func (p *Parser) parseSecondaryBlock() *Node {
	if p.startsDeclaration() && !p.isLabel() {
		p.report(NewSyntaxError(p.peek(), "expected statement, found declaration").
			Suggest("wrap the declaration in braces"))
		return nil
	}
	if p.check(token.LBRACE) {
		return p.parseStatement()
	}
	p.state.EnterScope("")
	defer p.state.ExitScope()
	return p.parseStatement()
}

func (p *Parser) parseSwitchStatement() *Node {
	node := p.startNode(KindSwitchStatement)
	p.advance()
	cond := p.parseCondition()
	if cond == nil {
		return nil
	}
	node.AddChild(cond)
	body := p.withState(StateInSwitch, p.parseSecondaryBlock)
	if body == nil {
		return nil
	}
	node.AddChild(body)
	return p.finishNode(node)
}

func (p *Parser) parseWhileStatement() *Node {
	node := p.startNode(KindWhileStatement)
	p.advance()
	cond := p.parseCondition()
	if cond == nil {
		return nil
	}
	node.AddChild(cond)
	body := p.withState(StateInLoop, p.parseSecondaryBlock)
	if body == nil {
		return nil
	}
	node.AddChild(body)
	return p.finishNode(node)
}

func (p *Parser) parseDoWhileStatement() *Node {
	node := p.startNode(KindDoWhileStatement)
	p.advance()
	body := p.withState(StateInLoop, p.parseSecondaryBlock)
	if body == nil {
		return nil
	}
	node.AddChild(body)
	if _, ok := p.expect(token.WHILE); !ok {
		return nil
	}
	cond := p.parseCondition()
	if cond == nil {
		return nil
	}
	node.AddChild(cond)
	if _, ok := p.expect(token.SEMICOLON); !ok {
		return nil
	}
	return p.finishNode(node)
}

func (p *Parser) parseForStatement() *Node {
	node := p.startNode(KindForStatement)
	kw := p.advance()
	if _, ok := p.expect(token.LPAREN); !ok {
		return nil
	}
	p.state.EnterScope("for")
	defer p.state.ExitScope()

	switch {
	case p.check(token.SEMICOLON):
		empty := p.startNode(KindNullStatement)
		p.advance()
		node.AddChild(p.finishNode(empty))
	case p.startsDeclaration():
		if !p.cfg.Standard.AtLeast(token.C99) {
			p.report(NewSyntaxError(p.peek(), "declaration in 'for' loop initializer requires C99").
				Note("the selected standard is %s", p.cfg.Standard))
		}
		decl := p.parseDeclaration()
		if decl == nil {
			return nil
		}
		node.AddChild(decl)
	default:
		init := p.parseExpressionStatement()
		if init == nil {
			return nil
		}
		node.AddChild(init)
	}

	if p.check(token.SEMICOLON) {
		node.AddChild(&Node{Kind: KindEmpty, Span: p.peek().Span()})
	} else {
		cond := p.parseExpression()
		if cond == nil {
			return nil
		}
		node.AddChild(cond)
	}
	if _, ok := p.expect(token.SEMICOLON); !ok {
		return nil
	}

	if p.check(token.RPAREN) {
		node.AddChild(&Node{Kind: KindEmpty, Span: p.peek().Span()})
	} else {
		post := p.parseExpression()
		if post == nil {
			return nil
		}
		node.AddChild(post)
	}
	if _, ok := p.expect(token.RPAREN); !ok {
		return nil
	}

	body := p.withState(StateInLoop, p.parseSecondaryBlock)
	if body == nil {
		return nil
	}
	node.AddChild(body)
	node.Token = &kw
	return p.finishNode(node)
}

func (p *Parser) parseGotoStatement() *Node {
	node := p.startNode(KindGotoStatement)
	p.advance()
	label, ok := p.expect(token.IDENT)
	if !ok {
		return nil
	}
	node.Name = label.Lexeme
	node.Token = &label
	if _, ok := p.expect(token.SEMICOLON); !ok {
		return nil
	}
	return p.finishNode(node)
}

// parseJumpStatement handles break and continue, reporting them when they
// appear outside the construct they jump out of. The node is kept either way.
func (p *Parser) parseJumpStatement(kind NodeKind) *Node {
	node := p.startNode(kind)
	kw := p.advance()
	node.Token = &kw
	switch {
	case kind == KindContinueStatement && !p.state.HasState(StateInLoop):
		p.report(NewSemanticError(kw, "'continue' statement not in loop statement"))
	case kind == KindBreakStatement && !p.state.HasState(StateInLoop) && !p.state.HasState(StateInSwitch):
		p.report(NewSemanticError(kw, "'break' statement not in loop or switch statement"))
	}
	if _, ok := p.expect(token.SEMICOLON); !ok {
		return nil
	}
	return p.finishNode(node)
}

func (p *Parser) parseReturnStatement() *Node {
	node := p.startNode(KindReturnStatement)
	kw := p.advance()
	node.Token = &kw
	if !p.check(token.SEMICOLON) {
		value := p.parseExpression()
		if value == nil {
			return nil
		}
		node.AddChild(value)
	}
	if _, ok := p.expect(token.SEMICOLON); !ok {
		return nil
	}
	return p.finishNode(node)
}

func (p *Parser) parseCaseStatement() *Node {
	node := p.startNode(KindCaseStatement)
	kw := p.advance()
	node.Token = &kw
	if !p.state.HasState(StateInSwitch) {
		p.report(NewSemanticError(kw, "'case' label not within a switch statement"))
	}
	value := p.parseConditionalExpression()
	if value == nil {
		return nil
	}
	node.AddChild(value)
	if _, ok := p.expect(token.COLON); !ok {
		return nil
	}
	body := p.parseLabelTarget()
	if body == nil {
		return nil
	}
	node.AddChild(body)
	return p.finishNode(node)
}

func (p *Parser) parseDefaultStatement() *Node {
	node := p.startNode(KindDefaultStatement)
	kw := p.advance()
	node.Token = &kw
	if !p.state.HasState(StateInSwitch) {
		p.report(NewSemanticError(kw, "'default' label not within a switch statement"))
	}
	if _, ok := p.expect(token.COLON); !ok {
		return nil
	}
	body := p.parseLabelTarget()
	if body == nil {
		return nil
	}
	node.AddChild(body)
	return p.finishNode(node)
}

func (p *Parser) parseLabeledStatement() *Node {
	node := p.startNode(KindLabeledStatement)
	label := p.advance()
	node.Name = label.Lexeme
	node.Token = &label
	p.advance()
	p.declare(label.Lexeme, SymbolLabel, label.Pos)
	body := p.parseLabelTarget()
	if body == nil {
		return nil
	}
	node.AddChild(body)
	return p.finishNode(node)
}

// parseLabelTarget parses what follows a label. C23 lets a label stand
// before a declaration or at the end of a block.
func (p *Parser) parseLabelTarget() *Node {
	c23 := p.cfg.Standard.AtLeast(token.C23)
	switch {
	case p.check(token.RBRACE):
		if !c23 {
			p.report(NewSyntaxError(p.peek(), "label at end of compound statement requires C23").
				Suggest("add ';' after the label"))
		}
		return &Node{Kind: KindNullStatement, Span: p.peek().Span()}
	case p.startsDeclaration() && !p.isLabel():
		if !c23 {
			p.warn(p.peek(), "a label followed by a declaration requires C23")
		}
		return p.parseDeclaration()
	}
	return p.parseStatement()
}
