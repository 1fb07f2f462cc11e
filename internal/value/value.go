// Package value provides a shallow tokenizer for CSS declaration values.
//
// Values are parsed into a tree of nodes (words, spaces, dividers, strings
// and functions) that preserves every byte of the input, so a mutated tree
// can be serialized back into a rewritten value.
package value

import "strings"

// NodeType represents the kind of a value node
type NodeType int

const (
	// Word is a contiguous run of non-space, non-divider characters.
	// Signs and arithmetic characters glue into words: "-1px" and
	// "1px+1px" are each a single word.
	Word NodeType = iota
	// Space is a run of whitespace, newlines included
	Space
	// Div is a divider character: "," "/" or ":", with any adjacent
	// whitespace absorbed into Before/After
	Div
	// String is a quoted string
	String
	// Function is a function name with its argument nodes
	Function
)

func (t NodeType) String() string {
	switch t {
	case Word:
		return "word"
	case Space:
		return "space"
	case Div:
		return "div"
	case String:
		return "string"
	case Function:
		return "function"
	}
	return "unknown"
}

// Node is one node of a parsed value tree
type Node struct {
	Type NodeType
	// Value holds the word text, space text, divider character, string
	// contents (quotes excluded) or function name
	Value string
	// SourceIndex is the byte offset of the node within the parsed value
	SourceIndex int
	// Before and After hold whitespace absorbed by Div and Function nodes
	Before string
	After  string
	// Quote is the quote character for String nodes
	Quote string
	// Unclosed marks a string or function missing its closing delimiter
	Unclosed bool
	// Nodes holds a Function's argument nodes
	Nodes []*Node
}

// Walk calls fn for every node, depth first. Returning false from fn for a
// Function node skips that function's arguments.
func Walk(nodes []*Node, fn func(n *Node) bool) {
	for _, n := range nodes {
		descend := fn(n)
		if n.Type == Function && descend {
			Walk(n.Nodes, fn)
		}
	}
}

// Stringify serializes a node tree back into value text. Unmutated trees
// round-trip byte for byte.
func Stringify(nodes []*Node) string {
	var b strings.Builder
	stringifyNodes(&b, nodes)
	return b.String()
}

func stringifyNodes(b *strings.Builder, nodes []*Node) {
	for _, n := range nodes {
		stringifyNode(b, n)
	}
}

func stringifyNode(b *strings.Builder, n *Node) {
	switch n.Type {
	case Word, Space:
		b.WriteString(n.Value)
	case Div:
		b.WriteString(n.Before)
		b.WriteString(n.Value)
		b.WriteString(n.After)
	case String:
		b.WriteString(n.Quote)
		b.WriteString(n.Value)
		if !n.Unclosed {
			b.WriteString(n.Quote)
		}
	case Function:
		b.WriteString(n.Value)
		b.WriteString("(")
		b.WriteString(n.Before)
		stringifyNodes(b, n.Nodes)
		b.WriteString(n.After)
		if !n.Unclosed {
			b.WriteString(")")
		}
	}
}
