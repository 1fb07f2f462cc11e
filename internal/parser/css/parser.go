package css

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// Parser handles parsing CSS with tree-sitter
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new CSS parser
func NewParser() *Parser {
	parser := sitter.NewParser()
	lang := sitter.NewLanguage(tree_sitter_css.Language())
	parser.SetLanguage(lang)

	return &Parser{
		parser: parser,
	}
}

// Declarations parses CSS source and returns every property declaration,
// in source order, with byte-accurate value spans
func (p *Parser) Declarations(source string) ([]*Declaration, error) {
	tree := p.parser.Parse([]byte(source), nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse CSS")
	}
	defer tree.Close()

	var decls []*Declaration
	p.walkTree(tree.RootNode(), []byte(source), &decls)

	return decls, nil
}

// walkTree recursively walks the tree collecting declaration nodes.
// Declarations nest inside rule sets, at-rules and media queries, so the
// whole tree is visited.
func (p *Parser) walkTree(node *sitter.Node, source []byte, decls *[]*Declaration) {
	if node == nil {
		return
	}

	if node.Kind() == "declaration" {
		p.handleDeclaration(node, source, decls)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		p.walkTree(node.Child(i), source, decls)
	}
}

// handleDeclaration extracts the property name and the raw value span from
// a declaration node
func (p *Parser) handleDeclaration(node *sitter.Node, source []byte, decls *[]*Declaration) {
	var propertyNode *sitter.Node
	valueStart := -1
	valueEnd := -1
	seenColon := false

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		kind := child.Kind()
		switch kind {
		case "property_name":
			propertyNode = child
			continue
		case ":":
			seenColon = true
			continue
		case ";", "important", "!":
			continue
		}

		if !seenColon {
			continue
		}

		start := int(child.StartByte())
		end := int(child.EndByte())
		if valueStart == -1 || start < valueStart {
			valueStart = start
		}
		if end > valueEnd {
			valueEnd = end
		}
	}

	if propertyNode == nil || valueStart == -1 {
		return
	}

	*decls = append(*decls, &Declaration{
		Property:       string(source[propertyNode.StartByte():propertyNode.EndByte()]),
		Value:          string(source[valueStart:valueEnd]),
		StartByte:      int(propertyNode.StartByte()),
		ValueStartByte: valueStart,
		ValueEndByte:   valueEnd,
		Start: Position{
			Line:      uint32(node.StartPosition().Row),
			Character: uint32(node.StartPosition().Column),
		},
	})
}
