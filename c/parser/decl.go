package parser

import (
	"strings"

	"github.com/dhamidi/cfront/c/token"
)

// specifiers collects the declaration specifiers that precede a declarator
// list.
type specifiers struct {
	start     token.Token
	storage   []string
	quals     []string
	words     []string
	typedef   bool
	tag       *Node // struct, union or enum specifier
	defined   bool  // tag carried a body
	tagName   string
	named     string // typedef name, typeof or _Atomic(...) text
	count     int
	failed    bool
}

func (s *specifiers) baseType() *Type {
	var name string
	switch {
	case len(s.words) > 0:
		name = strings.Join(s.words, " ")
	case s.tagName != "":
		name = s.tagName
	case s.named != "":
		name = s.named
	default:
		name = "int"
	}
	return &Type{
		Kind:       TypeBase,
		Name:       name,
		Qualifiers: s.quals,
		Storage:    s.storage,
	}
}

func (s *specifiers) hasType() bool {
	return len(s.words) > 0 || s.tagName != "" || s.named != ""
}

// startsDeclaration reports whether the current token begins a declaration.
func (p *Parser) startsDeclaration() bool {
	tok := p.peek()
	if isDeclarationKeyword(tok.Kind) || isAttributeStart(tok, p.peekN(1)) {
		return true
	}
	if tok.Kind != token.IDENT {
		return false
	}
	if p.isTypedefName(tok) {
		next := p.peekN(1).Kind
		return next != token.COLON && next != token.ASSIGN && next != token.PERIOD &&
			next != token.ARROW && next != token.LPAREN && next != token.LBRACK
	}
	return p.isUnknownTypeName()
}

// isUnknownTypeName guesses that an identifier names a type declared
// somewhere the parser cannot see, such as an unprocessed header: "size_t n"
// is a declaration because two identifiers cannot be adjacent in an
// expression. At file scope "FILE *f" is accepted too.
func (p *Parser) isUnknownTypeName() bool {
	if p.peek().Kind != token.IDENT || p.state.LookupSymbol(p.peek().Lexeme) != nil {
		return false
	}
	next := p.peekN(1)
	if next.Kind == token.IDENT {
		return true
	}
	atFileScope := p.state.CurrentScopeLevel() == 0 && !p.state.HasState(StateInFunction)
	return atFileScope && next.Kind == token.MUL && p.peekN(2).Kind == token.IDENT
}

// startsImplicitInt matches the old "main() {" style with no type.
func (p *Parser) startsImplicitInt() bool {
	return p.peek().Kind == token.IDENT && p.peekN(1).Kind == token.LPAREN &&
		p.state.CurrentScopeLevel() == 0
}

func isAttributeStart(tok, next token.Token) bool {
	return tok.Kind == token.LBRACK && next.Kind == token.LBRACK
}

// skipAttributes skips C23 [[...]] attribute specifiers.
func (p *Parser) skipAttributes() {
	for isAttributeStart(p.peek(), p.peekN(1)) {
		p.skipBalanced(token.LBRACK, token.RBRACK)
	}
}

// skipBalanced consumes from an opening token to its matching closer and
// returns the source text in between.
func (p *Parser) skipBalanced(open, close token.Kind) string {
	start := p.ts.Position()
	if !p.accept(open) {
		return ""
	}
	depth := 1
	for depth > 0 && !p.ts.IsAtEnd() {
		switch p.advance().Kind {
		case open:
			depth++
		case close:
			depth--
		}
	}
	if depth > 0 {
		p.report(NewMissingToken(p.peek(), close))
	}
	return sourceText(p.ts.Range(start, p.ts.Position()))
}

// sourceText joins token lexemes, separating words that would otherwise run
// together.
func sourceText(toks []token.Token) string {
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 && isWordLike(toks[i-1].Kind) && isWordLike(tok.Kind) {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Lexeme)
	}
	return b.String()
}

func isWordLike(k token.Kind) bool {
	return k == token.IDENT || k.IsKeyword() || k.IsLiteral()
}

// parseDeclarationSpecifiers reads storage classes, qualifiers, function
// specifiers and type specifiers in any order. It reports false when it
// found none.
func (p *Parser) parseDeclarationSpecifiers() (*specifiers, bool) {
	s := &specifiers{start: p.peek()}
	for {
		progress := p.mustProgress()
		tok := p.peek()
		switch {
		case isAttributeStart(tok, p.peekN(1)):
			p.skipAttributes()
			continue
		case isStorageClass(tok.Kind) || isFunctionSpecifier(tok.Kind):
			p.advance()
			s.storage = append(s.storage, tok.Lexeme)
			if tok.Kind == token.TYPEDEF {
				s.typedef = true
			}
		case tok.Kind == token.ATOMIC && p.peekN(1).Kind == token.LPAREN:
			p.advance()
			s.named = tok.Lexeme + p.skipBalanced(token.LPAREN, token.RPAREN)
		case isQualifier(tok.Kind):
			p.advance()
			s.quals = append(s.quals, tok.Lexeme)
		case tok.Kind == token.ALIGNAS || tok.Kind == token.ALIGNAS_:
			p.advance()
			s.storage = append(s.storage, tok.Lexeme+p.skipBalanced(token.LPAREN, token.RPAREN))
		case tok.Kind == token.STRUCT || tok.Kind == token.UNION:
			if s.hasType() {
				p.report(NewSyntaxError(tok, "cannot combine %s with previous type specifier", tok.Describe()))
			}
			tag := p.parseStructOrUnion()
			if tag == nil {
				s.failed = true
				return s, false
			}
			s.tag, s.defined = tag, tag.Type != nil
			s.tagName = tag.Op.String() + " " + tagDisplayName(tag.Name)
		case tok.Kind == token.ENUM:
			if s.hasType() {
				p.report(NewSyntaxError(tok, "cannot combine %s with previous type specifier", tok.Describe()))
			}
			tag := p.parseEnum()
			if tag == nil {
				s.failed = true
				return s, false
			}
			s.tag, s.defined = tag, tag.Type != nil
			s.tagName = "enum " + tagDisplayName(tag.Name)
		case tok.Kind == token.TYPEOF || tok.Kind == token.TYPEOF_UNQUAL:
			p.advance()
			s.named = tok.Lexeme + p.skipBalanced(token.LPAREN, token.RPAREN)
		case tok.Kind == token.BITINT:
			p.advance()
			s.words = append(s.words, tok.Lexeme+p.skipBalanced(token.LPAREN, token.RPAREN))
		case isTypeKeyword(tok.Kind):
			p.advance()
			s.words = append(s.words, tok.Lexeme)
		case tok.Kind == token.IDENT && !s.hasType() && (p.isTypedefName(tok) || p.isUnknownTypeName()):
			p.advance()
			s.named = tok.Lexeme
		default:
			return s, s.count > 0
		}
		s.count++
		progress()
	}
}

func tagDisplayName(name string) string {
	if name == "" {
		return "<anonymous>"
	}
	return name
}

// parseStructOrUnion parses a struct or union specifier. Member lists are
// skipped to the matching brace, not parsed.
func (p *Parser) parseStructOrUnion() *Node {
	node := p.startNode(KindTypeDeclaration)
	kw := p.advance()
	node.Op = kw.Kind
	node.Token = &kw
	p.skipAttributes()

	if p.check(token.IDENT) {
		node.Name = p.advance().Lexeme
	}
	if p.check(token.LBRACE) {
		p.skipBalanced(token.LBRACE, token.RBRACE)
		node.Type = NewBaseType(kw.Lexeme + " " + tagDisplayName(node.Name))
	} else if node.Name == "" {
		p.report(NewUnexpectedToken(p.peek(), token.IDENT, token.LBRACE))
		return nil
	}
	if node.Name != "" {
		p.declare(kw.Lexeme+" "+node.Name, SymbolTag, kw.Pos)
	}
	return p.finishNode(node)
}

func (p *Parser) parseEnum() *Node {
	ok := p.enter("enum")
	defer p.exit()
	if !ok {
		return nil
	}

	node := p.startNode(KindTypeDeclaration)
	kw := p.advance()
	node.Op = token.ENUM
	node.Token = &kw
	p.skipAttributes()

	if p.check(token.IDENT) {
		node.Name = p.advance().Lexeme
	}
	if p.accept(token.COLON) {
		// C23 fixed underlying type
		if _, ok := p.parseDeclarationSpecifiers(); !ok {
			p.report(NewSyntaxError(p.peek(), "expected enum underlying type, found %s", p.peek().Describe()))
			return nil
		}
	}
	if node.Name != "" {
		p.declare("enum "+node.Name, SymbolTag, kw.Pos)
	}
	if !p.check(token.LBRACE) {
		if node.Name == "" {
			p.report(NewUnexpectedToken(p.peek(), token.IDENT, token.LBRACE))
			return nil
		}
		return p.finishNode(node)
	}

	p.advance()
	node.Type = NewBaseType("enum " + tagDisplayName(node.Name))
	for !p.check(token.RBRACE) && !p.ts.IsAtEnd() {
		progress := p.mustProgress()
		e := p.startNode(KindEnumerator)
		name, ok := p.expect(token.IDENT)
		if !ok {
			return nil
		}
		e.Name = name.Lexeme
		e.Token = &name
		p.skipAttributes()
		if p.accept(token.ASSIGN) {
			value := p.parseConditionalExpression()
			if value == nil {
				return nil
			}
			e.AddChild(value)
		}
		p.declare(e.Name, SymbolEnumerator, name.Pos)
		node.AddChild(p.finishNode(e))
		if !p.accept(token.COMMA) {
			break
		}
		if !progress() {
			break
		}
	}
	if len(node.Children) == 0 {
		p.report(NewSyntaxError(p.peek(), "enum %s has no enumerators", tagDisplayName(node.Name)))
	}
	if _, ok := p.expect(token.RBRACE); !ok {
		return nil
	}
	return p.finishNode(node)
}

// declarator is the parsed shape of a declarator before it is applied to a
// base type.
type declarator struct {
	name     *token.Token
	pointers [][]string
	inner    *declarator
	suffixes []*suffix
}

type suffix struct {
	function bool
	size     string
	params   []*Node
	variadic bool
	// idents holds a K&R identifier list.
	idents []token.Token
}

// apply derives the declared type from base. Pointers bind tighter than
// the suffixes of the same level, and an inner declarator applies last.
func (d *declarator) apply(base *Type) *Type {
	t := base
	for _, quals := range d.pointers {
		t = PointerTo(t)
		t.Qualifiers = quals
	}
	for i := len(d.suffixes) - 1; i >= 0; i-- {
		s := d.suffixes[i]
		if s.function {
			params := make([]*Type, len(s.params))
			for j, param := range s.params {
				params[j] = param.Type
			}
			t = FunctionReturning(t, params, s.variadic)
		} else {
			t = ArrayOf(t, s.size)
		}
	}
	if d.inner != nil {
		return d.inner.apply(t)
	}
	return t
}

func (d *declarator) ident() *token.Token {
	for x := d; x != nil; x = x.inner {
		if x.name != nil {
			return x.name
		}
	}
	return nil
}

// functionSuffix returns the parameter list that applies directly to the
// declared name, as in "f(int)" or "(f)(int)" but not "(*f)(int)".
func (d *declarator) functionSuffix() *suffix {
	var chain []*declarator
	for x := d; x != nil; x = x.inner {
		chain = append(chain, x)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		x := chain[i]
		if len(x.suffixes) > 0 {
			if x.suffixes[0].function {
				return x.suffixes[0]
			}
			return nil
		}
		if len(x.pointers) > 0 {
			return nil
		}
	}
	return nil
}

type declaratorMode int

const (
	namedDeclarator declaratorMode = iota
	abstractDeclarator
	eitherDeclarator
)

func (p *Parser) parseDeclarator(mode declaratorMode) *declarator {
	ok := p.enter("declarator")
	defer p.exit()
	if !ok {
		return nil
	}

	d := &declarator{}
	for p.check(token.MUL) {
		p.advance()
		var quals []string
		for {
			p.skipAttributes()
			if !isQualifier(p.peek().Kind) {
				break
			}
			quals = append(quals, p.advance().Lexeme)
		}
		d.pointers = append(d.pointers, quals)
	}

	switch tok := p.peek(); {
	case tok.Kind == token.IDENT && mode != abstractDeclarator:
		p.advance()
		d.name = &tok
		p.skipAttributes()
	case tok.Kind == token.LPAREN && p.nestedDeclaratorAhead(mode):
		p.declDepth++
		defer func() { p.declDepth-- }()
		if p.declDepth > maxDeclaratorDepth {
			p.report(NewLimitError(tok, "declarator nested more than %d levels deep", maxDeclaratorDepth))
			return nil
		}
		p.advance()
		d.inner = p.parseDeclarator(mode)
		if d.inner == nil {
			return nil
		}
		if _, ok := p.expect(token.RPAREN); !ok {
			return nil
		}
	case mode == namedDeclarator:
		p.report(NewUnexpectedToken(tok, token.IDENT, token.LPAREN))
		return nil
	}

	for {
		switch {
		case p.check(token.LBRACK) && !isAttributeStart(p.peek(), p.peekN(1)):
			s := p.parseArraySuffix()
			if s == nil {
				return nil
			}
			d.suffixes = append(d.suffixes, s)
		case p.check(token.LPAREN):
			s := p.parseParameterList()
			if s == nil {
				return nil
			}
			d.suffixes = append(d.suffixes, s)
		default:
			return d
		}
	}
}

// nestedDeclaratorAhead decides whether '(' opens a parenthesized
// declarator rather than a parameter list.
func (p *Parser) nestedDeclaratorAhead(mode declaratorMode) bool {
	if mode == namedDeclarator {
		return true
	}
	next := p.peekN(1)
	switch next.Kind {
	case token.MUL, token.LBRACK:
		return true
	case token.LPAREN:
		return mode == eitherDeclarator
	case token.IDENT:
		return mode == eitherDeclarator && !p.isTypedefName(next)
	}
	return false
}

func (p *Parser) parseArraySuffix() *suffix {
	p.advance()
	for p.match(token.STATIC) || isQualifier(p.peek().Kind) {
		p.advance()
	}
	s := &suffix{}
	switch {
	case p.check(token.RBRACK):
	case p.check(token.MUL) && p.peekN(1).Kind == token.RBRACK:
		p.advance()
		s.size = "*"
	default:
		start := p.ts.Position()
		if p.parseAssignmentExpression() == nil {
			return nil
		}
		s.size = sourceText(p.ts.Range(start, p.ts.Position()))
	}
	if _, ok := p.expect(token.RBRACK); !ok {
		return nil
	}
	return s
}

func (p *Parser) parseParameterList() *suffix {
	p.advance()
	s := &suffix{function: true}

	switch {
	case p.accept(token.RPAREN):
		return s
	case p.check(token.VOID) && p.peekN(1).Kind == token.RPAREN:
		p.advance()
		p.advance()
		return s
	case p.check(token.IDENT) && !p.isTypedefName(p.peek()) && !p.isUnknownTypeName() &&
		(p.peekN(1).Kind == token.COMMA || p.peekN(1).Kind == token.RPAREN):
		for {
			name, ok := p.expect(token.IDENT)
			if !ok {
				return nil
			}
			s.idents = append(s.idents, name)
			param := &Node{Kind: KindParameter, Name: name.Lexeme, Token: &name, Span: name.Span(), Type: NewBaseType("int")}
			s.params = append(s.params, param)
			if !p.accept(token.COMMA) {
				break
			}
		}
		if _, ok := p.expect(token.RPAREN); !ok {
			return nil
		}
		return s
	}

	for {
		progress := p.mustProgress()
		if p.accept(token.ELLIPSIS) {
			s.variadic = true
			break
		}
		param := p.parseParameterDeclaration()
		if param == nil {
			return nil
		}
		s.params = append(s.params, param)
		if !p.accept(token.COMMA) {
			break
		}
		if p.check(token.RPAREN) {
			p.report(NewSyntaxError(p.peek(), "expected parameter declaration, found %s", p.peek().Describe()).
				Suggest("remove the trailing ','"))
			return nil
		}
		if !progress() {
			break
		}
	}
	if _, ok := p.expect(token.RPAREN); !ok {
		return nil
	}
	return s
}

func (p *Parser) parseParameterDeclaration() *Node {
	node := p.startNode(KindParameter)
	specs, ok := p.parseDeclarationSpecifiers()
	if specs.failed {
		return nil
	}
	if !ok {
		p.report(NewSyntaxError(p.peek(), "expected parameter declaration, found %s", p.peek().Describe()))
		return nil
	}
	d := p.parseDeclarator(eitherDeclarator)
	if d == nil {
		return nil
	}
	if name := d.ident(); name != nil {
		node.Name = name.Lexeme
		node.Token = name
	}
	node.Type = d.apply(specs.baseType())
	return p.finishNode(node)
}

// parseTypeName parses a specifier list and abstract declarator, as in a
// cast or sizeof.
func (p *Parser) parseTypeName() *Type {
	ok := p.enter("type-name")
	defer p.exit()
	if !ok {
		return nil
	}
	specs, ok := p.parseDeclarationSpecifiers()
	if specs.failed {
		return nil
	}
	if !ok {
		p.report(NewSyntaxError(p.peek(), "expected type name, found %s", p.peek().Describe()))
		return nil
	}
	d := p.parseDeclarator(abstractDeclarator)
	if d == nil {
		return nil
	}
	return d.apply(specs.baseType())
}

// Function definitions

// tryFunctionDefinition runs a silent trial parse of specifiers and
// declarator and reports whether a function body follows. The cursor is
// always restored.
func (p *Parser) tryFunctionDefinition() bool {
	cp := p.state.Mark()
	p.speculating++
	defer func() {
		p.speculating--
		p.state.Rewind(cp)
	}()

	if _, ok := p.parseDeclarationSpecifiers(); !ok && !p.startsImplicitInt() {
		return false
	}
	d := p.parseDeclarator(namedDeclarator)
	if d == nil {
		return false
	}
	fs := d.functionSuffix()
	if fs == nil {
		return false
	}
	if p.check(token.LBRACE) {
		return true
	}
	return len(fs.idents) > 0 && p.startsDeclaration()
}

func (p *Parser) parseFunctionDefinition() *Node {
	node := p.startNode(KindFunctionDeclaration)
	specs, _ := p.parseDeclarationSpecifiers()
	if specs.failed {
		return nil
	}
	if !specs.hasType() && p.cfg.Standard.AtLeast(token.C99) {
		p.warn(specs.start, "type specifier missing, defaults to 'int'")
	}
	d := p.parseDeclarator(namedDeclarator)
	if d == nil {
		return nil
	}
	name := d.ident()
	fs := d.functionSuffix()
	if name == nil || fs == nil {
		return nil
	}
	node.Name = name.Lexeme
	node.Token = name

	if len(fs.idents) > 0 {
		if !p.parseKRDeclarations(fs) {
			return nil
		}
	}
	node.Type = d.apply(specs.baseType())
	for _, param := range fs.params {
		node.AddChild(param)
	}
	p.declare(node.Name, SymbolFunction, name.Pos)

	p.state.EnterScope(node.Name)
	for _, param := range fs.params {
		if param.Name != "" {
			p.declare(param.Name, SymbolParameter, param.Span.Start)
		}
	}
	saved := p.state.State()
	p.state.SetState(StateInFunction)
	body := p.parseCompoundStatement(false)
	p.state.SetState(saved)
	p.state.ExitScope()

	if body == nil {
		return nil
	}
	node.AddChild(body)
	return p.finishNode(node)
}

// parseKRDeclarations reads the old-style parameter declarations between
// the identifier list and the body, filling in parameter types.
func (p *Parser) parseKRDeclarations(fs *suffix) bool {
	byName := make(map[string]*Node, len(fs.params))
	for _, param := range fs.params {
		byName[param.Name] = param
	}
	for p.startsDeclaration() {
		progress := p.mustProgress()
		decl := p.parseDeclaration()
		if decl == nil {
			return false
		}
		vars := []*Node{decl}
		if decl.Kind == KindDeclarationGroup {
			vars = decl.Children
		}
		for _, v := range vars {
			param, ok := byName[v.Name]
			if !ok {
				p.report(NewSemanticError(*v.Token, "declaration of '%s' does not match any parameter", v.Name))
				continue
			}
			param.Type = v.Type
		}
		if !progress() {
			break
		}
	}
	return true
}

// Declarations

// parseDeclaration parses a full declaration through its ';'.
func (p *Parser) parseDeclaration() *Node {
	ok := p.enter("declaration")
	defer p.exit()
	if !ok {
		return nil
	}

	if p.match(token.STATIC_ASSERT, token.STATIC_ASSERT_) {
		return p.parseStaticAssert()
	}

	specs, ok := p.parseDeclarationSpecifiers()
	if specs.failed {
		return nil
	}
	if !ok {
		if !p.startsImplicitInt() {
			p.report(NewSyntaxError(p.peek(), "expected declaration, found %s", p.peek().Describe()))
			return nil
		}
	}
	if !specs.hasType() && p.cfg.Standard.AtLeast(token.C99) {
		p.warn(specs.start, "type specifier missing, defaults to 'int'")
	}

	if p.accept(token.SEMICOLON) {
		if specs.tag != nil {
			return specs.tag
		}
		p.warn(specs.start, "declaration does not declare anything")
		return &Node{Kind: KindDeclarationGroup, Span: specs.start.Span()}
	}

	var items []*Node
	if specs.defined {
		items = append(items, specs.tag)
	}
	base := specs.baseType()
	for {
		progress := p.mustProgress()
		node := p.parseInitDeclarator(specs, base)
		if node == nil {
			return nil
		}
		items = append(items, node)
		if !p.accept(token.COMMA) {
			break
		}
		if !progress() {
			break
		}
	}
	if _, ok := p.expect(token.SEMICOLON); !ok {
		return nil
	}

	if len(items) == 1 {
		items[0].Span.Start = specs.start.Pos
		return p.finishNode(items[0])
	}
	group := &Node{Kind: KindDeclarationGroup, Children: items}
	group.Span = token.Span{Start: specs.start.Pos}
	return p.finishNode(group)
}

func (p *Parser) parseInitDeclarator(specs *specifiers, base *Type) *Node {
	start := p.peek()
	d := p.parseDeclarator(namedDeclarator)
	if d == nil {
		return nil
	}
	name := d.ident()
	if name == nil {
		p.report(NewUnexpectedToken(start, token.IDENT))
		return nil
	}
	t := d.apply(base)

	node := &Node{Name: name.Lexeme, Token: name, Type: t, Span: token.Span{Start: start.Pos}}
	switch {
	case specs.typedef:
		node.Kind = KindTypeDeclaration
		node.Op = token.TYPEDEF
		p.declare(node.Name, SymbolTypedef, name.Pos)
	case t.IsFunction():
		node.Kind = KindFunctionDeclaration
		if fs := d.functionSuffix(); fs != nil {
			for _, param := range fs.params {
				node.AddChild(param)
			}
		}
		p.declare(node.Name, SymbolFunction, name.Pos)
	default:
		node.Kind = KindVariableDeclaration
		p.declare(node.Name, SymbolVariable, name.Pos)
	}

	if p.check(token.ASSIGN) {
		eq := p.advance()
		if node.Kind != KindVariableDeclaration {
			p.report(NewSemanticError(eq, "%s '%s' cannot be initialized", strings.ToLower(kindNoun(node)), node.Name))
		}
		init := p.parseInitializer()
		if init == nil {
			return nil
		}
		if node.Kind == KindVariableDeclaration {
			node.AddChild(init)
		}
	}
	return p.finishNode(node)
}

func kindNoun(n *Node) string {
	switch n.Kind {
	case KindTypeDeclaration:
		return "Typedef"
	case KindFunctionDeclaration:
		return "Function"
	}
	return "Variable"
}

func (p *Parser) parseStaticAssert() *Node {
	node := p.startNode(KindStaticAssert)
	kw := p.advance()
	node.Token = &kw
	if _, ok := p.expect(token.LPAREN); !ok {
		return nil
	}
	cond := p.parseConditionalExpression()
	if cond == nil {
		return nil
	}
	node.AddChild(cond)
	if p.accept(token.COMMA) {
		msg := p.parsePrimaryExpression()
		if msg == nil {
			return nil
		}
		if msg.Kind != KindStringLiteral {
			p.report(NewSyntaxError(p.ts.Previous(1), "expected string literal in static assertion"))
		}
		node.AddChild(msg)
	} else if !p.cfg.Standard.AtLeast(token.C23) {
		p.warn(p.peek(), "static assertion without a message requires C23")
	}
	if _, ok := p.expect(token.RPAREN); !ok {
		return nil
	}
	if _, ok := p.expect(token.SEMICOLON); !ok {
		return nil
	}
	return p.finishNode(node)
}

// Initializers

func (p *Parser) parseInitializer() *Node {
	ok := p.enter("initializer")
	defer p.exit()
	if !ok {
		return nil
	}
	if p.check(token.LBRACE) {
		return p.parseInitializerList()
	}
	return p.parseAssignmentExpression()
}

func (p *Parser) parseInitializerList() *Node {
	node := p.startNode(KindInitializerList)
	p.advance()
	if p.check(token.RBRACE) && !p.cfg.Standard.AtLeast(token.C23) {
		p.warn(p.peek(), "empty initializer requires C23")
	}
	for !p.check(token.RBRACE) && !p.ts.IsAtEnd() {
		progress := p.mustProgress()
		item := p.parseDesignatedInitializer()
		if item == nil {
			return nil
		}
		node.AddChild(item)
		if !p.accept(token.COMMA) {
			break
		}
		if !progress() {
			break
		}
	}
	if _, ok := p.expect(token.RBRACE); !ok {
		return nil
	}
	return p.finishNode(node)
}

func (p *Parser) parseDesignatedInitializer() *Node {
	if !p.match(token.PERIOD, token.LBRACK) {
		return p.parseInitializer()
	}
	node := p.startNode(KindDesignatedInitializer)
	for p.match(token.PERIOD, token.LBRACK) {
		if p.check(token.PERIOD) {
			d := p.startNode(KindMemberDesignator)
			p.advance()
			name, ok := p.expect(token.IDENT)
			if !ok {
				return nil
			}
			d.Name = name.Lexeme
			node.AddChild(p.finishNode(d))
			continue
		}
		d := p.startNode(KindIndexDesignator)
		p.advance()
		index := p.parseConditionalExpression()
		if index == nil {
			return nil
		}
		d.AddChild(index)
		if _, ok := p.expect(token.RBRACK); !ok {
			return nil
		}
		node.AddChild(p.finishNode(d))
	}
	if _, ok := p.expect(token.ASSIGN); !ok {
		return nil
	}
	value := p.parseInitializer()
	if value == nil {
		return nil
	}
	node.AddChild(value)
	return p.finishNode(node)
}
