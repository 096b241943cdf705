package recipe

// node is one parsed KDL node before it is decoded into recipe types
type node struct {
	Name        string
	Pos         Position
	Annotation  string
	Args        []value
	Props       []property
	Children    []*node
	HasChildren bool
}

type value struct {
	Text       string
	Pos        Position
	Annotation string
}

type property struct {
	Key   string
	Value value
	Pos   Position
}

type parser struct {
	toks []token
	i    int
}

// parseDocument turns source text into a node tree. It stops at the first
// syntax error.
func parseDocument(src string) ([]*node, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	nodes, err := p.nodes(false)
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) peekAt(n int) token {
	if p.i+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i+n]
}

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) errorf(pos Position, format string, args ...interface{}) error {
	return syntaxErrorf(pos, format, args...)
}

func (p *parser) skipLineSpace() {
	for {
		switch p.peek().kind {
		case tokNewline, tokSemicolon:
			p.next()
		default:
			return
		}
	}
}

// nodes parses a node list. Inside a block it returns at the closing brace
// without consuming it.
func (p *parser) nodes(inBlock bool) ([]*node, error) {
	var out []*node
	for {
		p.skipLineSpace()
		tok := p.peek()
		switch tok.kind {
		case tokEOF:
			if inBlock {
				return nil, p.errorf(tok.pos, "unclosed children block, expected '}'")
			}
			return out, nil
		case tokRBrace:
			if inBlock {
				return out, nil
			}
			return nil, p.errorf(tok.pos, "unexpected '}'")
		}

		discard := false
		if tok.kind == tokSlashDash {
			p.next()
			p.skipNewlines()
			discard = true
		}

		n, err := p.node()
		if err != nil {
			return nil, err
		}
		if !discard {
			out = append(out, n)
		}
	}
}

func (p *parser) skipNewlines() {
	for p.peek().kind == tokNewline {
		p.next()
	}
}

func (p *parser) annotation() (string, error) {
	open := p.next()
	name := p.next()
	if name.kind != tokWord && name.kind != tokString {
		return "", p.errorf(name.pos, "expected type name after '(', found %s", name.kind)
	}
	if closing := p.next(); closing.kind != tokRParen {
		return "", p.errorf(closing.pos, "expected ')' to close type annotation opened at %d:%d", open.pos.Line, open.pos.Column)
	}
	return name.text, nil
}

func (p *parser) node() (*node, error) {
	n := &node{Pos: p.peek().pos}

	if p.peek().kind == tokLParen {
		ann, err := p.annotation()
		if err != nil {
			return nil, err
		}
		n.Annotation = ann
	}

	name := p.next()
	if name.kind != tokWord && name.kind != tokString {
		return nil, p.errorf(name.pos, "expected node name, found %s", name.kind)
	}
	n.Name = name.text

	for {
		tok := p.peek()
		switch tok.kind {
		case tokNewline, tokSemicolon:
			p.next()
			return n, nil
		case tokEOF, tokRBrace:
			return n, nil
		case tokLBrace:
			if n.HasChildren {
				return nil, p.errorf(tok.pos, "node %q has more than one children block", n.Name)
			}
			children, err := p.block()
			if err != nil {
				return nil, err
			}
			n.Children = children
			n.HasChildren = true
		case tokSlashDash:
			p.next()
			if p.peek().kind == tokLBrace {
				if _, err := p.block(); err != nil {
					return nil, err
				}
				continue
			}
			if n.HasChildren {
				return nil, p.errorf(p.peek().pos, "unexpected entry after children block of %q", n.Name)
			}
			if err := p.entry(&node{}); err != nil {
				return nil, err
			}
		default:
			if n.HasChildren {
				return nil, p.errorf(tok.pos, "unexpected entry after children block of %q", n.Name)
			}
			if err := p.entry(n); err != nil {
				return nil, err
			}
		}
	}
}

func (p *parser) block() ([]*node, error) {
	open := p.next()
	children, err := p.nodes(true)
	if err != nil {
		return nil, err
	}
	if closing := p.next(); closing.kind != tokRBrace {
		return nil, p.errorf(open.pos, "unclosed children block, expected '}'")
	}
	return children, nil
}

// entry parses one argument or property into n
func (p *parser) entry(n *node) error {
	tok := p.peek()
	if (tok.kind == tokWord || tok.kind == tokString) && p.peekAt(1).kind == tokEquals {
		key := p.next()
		p.next()
		v, err := p.value()
		if err != nil {
			return err
		}
		n.Props = append(n.Props, property{Key: key.text, Value: v, Pos: key.pos})
		return nil
	}

	v, err := p.value()
	if err != nil {
		return err
	}
	n.Args = append(n.Args, v)
	return nil
}

func (p *parser) value() (value, error) {
	v := value{Pos: p.peek().pos}
	if p.peek().kind == tokLParen {
		ann, err := p.annotation()
		if err != nil {
			return value{}, err
		}
		v.Annotation = ann
	}
	tok := p.next()
	if tok.kind != tokWord && tok.kind != tokString {
		return value{}, p.errorf(tok.pos, "expected value, found %s", tok.kind)
	}
	v.Text = tok.text
	return v, nil
}
