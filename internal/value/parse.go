package value

import "strings"

// Parse tokenizes a CSS declaration value into a node tree.
//
// The tokenization is deliberately shallow: arithmetic is not parsed, and
// "+"/"-" are ordinary word characters, so "1px+1px" is one word while
// "1px + 1px" is word, space, word, space, word. url() contents are kept
// as a single word because unquoted URLs may contain divider characters.
func Parse(input string) []*Node {
	p := &parser{input: input}
	nodes, _, _ := p.parseNodes(false)
	return nodes
}

type parser struct {
	input string
	pos   int
}

func isSpaceChar(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func isDivChar(c byte) bool {
	return c == ',' || c == '/' || c == ':'
}

// parseNodes reads sibling nodes until the end of input or, when
// inFunction, until the enclosing ")" is consumed. Whitespace that
// immediately precedes the ")" is returned as after rather than emitted
// as a Space node.
func (p *parser) parseNodes(inFunction bool) (nodes []*Node, after string, closed bool) {
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch {
		case isSpaceChar(c):
			start := p.pos
			ws := p.scanSpace()
			switch {
			case inFunction && p.pos >= len(p.input):
				return nodes, ws, false
			case inFunction && p.input[p.pos] == ')':
				p.pos++
				return nodes, ws, true
			case p.pos < len(p.input) && isDivChar(p.input[p.pos]):
				nodes = append(nodes, p.scanDiv(ws))
			default:
				nodes = append(nodes, &Node{Type: Space, Value: ws, SourceIndex: start})
			}
		case isDivChar(c):
			nodes = append(nodes, p.scanDiv(""))
		case c == '\'' || c == '"':
			nodes = append(nodes, p.scanString())
		case c == '(':
			// Bare parentheses parse as a function with an empty name,
			// e.g. media-query-like fragments
			nodes = append(nodes, p.scanFunction("", p.pos))
		case c == ')':
			if inFunction {
				p.pos++
				return nodes, "", true
			}
			// Unbalanced close paren: keep it so the value round-trips
			nodes = append(nodes, &Node{Type: Word, Value: ")", SourceIndex: p.pos})
			p.pos++
		default:
			nodes = append(nodes, p.scanWordOrFunction())
		}
	}
	return nodes, "", false
}

func (p *parser) scanSpace() string {
	start := p.pos
	for p.pos < len(p.input) && isSpaceChar(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

// scanDiv consumes a divider character along with any trailing whitespace.
// Whitespace seen before the divider is passed in as before.
func (p *parser) scanDiv(before string) *Node {
	n := &Node{
		Type:        Div,
		Value:       string(p.input[p.pos]),
		SourceIndex: p.pos,
		Before:      before,
	}
	p.pos++
	n.After = p.scanSpace()
	return n
}

func (p *parser) scanString() *Node {
	quote := p.input[p.pos]
	n := &Node{Type: String, Quote: string(quote), SourceIndex: p.pos}
	p.pos++
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '\\' && p.pos+1 < len(p.input) {
			p.pos += 2
			continue
		}
		if c == quote {
			break
		}
		p.pos++
	}
	n.Value = p.input[start:p.pos]
	if p.pos < len(p.input) {
		p.pos++ // closing quote
	} else {
		n.Unclosed = true
	}
	return n
}

func (p *parser) scanWordOrFunction() *Node {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if isSpaceChar(c) || isDivChar(c) || c == '(' || c == ')' || c == '\'' || c == '"' {
			break
		}
		if c == '\\' && p.pos+1 < len(p.input) {
			p.pos++
		}
		p.pos++
	}
	word := p.input[start:p.pos]
	if p.pos < len(p.input) && p.input[p.pos] == '(' {
		return p.scanFunction(word, start)
	}
	return &Node{Type: Word, Value: word, SourceIndex: start}
}

// scanFunction consumes a function body. The opening paren is at p.pos.
func (p *parser) scanFunction(name string, start int) *Node {
	n := &Node{Type: Function, Value: name, SourceIndex: start}
	p.pos++ // "("
	if strings.EqualFold(name, "url") {
		return p.scanURL(n)
	}
	nodes, after, closed := p.parseNodes(true)
	n.Nodes = nodes
	n.After = after
	n.Unclosed = !closed
	// Whitespace directly after the open paren belongs to the function
	if len(n.Nodes) > 0 && n.Nodes[0].Type == Space {
		n.Before = n.Nodes[0].Value
		n.Nodes = n.Nodes[1:]
	}
	return n
}

func (p *parser) scanURL(n *Node) *Node {
	n.Before = p.scanSpace()
	if p.pos < len(p.input) && (p.input[p.pos] == '\'' || p.input[p.pos] == '"') {
		n.Nodes = append(n.Nodes, p.scanString())
		n.After = p.scanSpace()
	} else {
		start := p.pos
		for p.pos < len(p.input) && p.input[p.pos] != ')' {
			if p.input[p.pos] == '\\' && p.pos+1 < len(p.input) {
				p.pos++
			}
			p.pos++
		}
		raw := p.input[start:p.pos]
		trimmed := strings.TrimRightFunc(raw, func(r rune) bool {
			return r < 128 && isSpaceChar(byte(r))
		})
		if trimmed != "" {
			n.Nodes = append(n.Nodes, &Node{Type: Word, Value: trimmed, SourceIndex: start})
		}
		n.After = raw[len(trimmed):]
	}
	if p.pos < len(p.input) && p.input[p.pos] == ')' {
		p.pos++
	} else {
		n.Unclosed = true
	}
	return n
}
