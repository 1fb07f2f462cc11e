// Package hexcolor implements the color-no-invalid-hex rule.
package hexcolor

import (
	"fmt"
	"strings"

	"github.com/mazznoer/csscolorparser"
	"stylefix.dev/stylefix/internal/lint"
	"stylefix.dev/stylefix/internal/parser/css"
	"stylefix.dev/stylefix/internal/value"
)

// Name is the rule's identifier in configuration and reports
const Name = "color-no-invalid-hex"

// Rule flags hex colors that no browser would accept. There is no fix:
// the intended color cannot be guessed.
type Rule struct{}

// New creates the rule
func New() *Rule { return &Rule{} }

// Name returns the rule identifier
func (r *Rule) Name() string { return Name }

// CheckDeclaration reports every malformed hex color word in the value
func (r *Rule) CheckDeclaration(decl *css.Declaration, ctx *lint.Context) {
	if !strings.Contains(decl.Value, "#") {
		return
	}

	nodes := value.Parse(decl.Value)
	value.Walk(nodes, func(n *value.Node) bool {
		if n.Type == value.Function && strings.EqualFold(n.Value, "url") {
			// Fragment identifiers in URLs are not colors
			return false
		}
		if n.Type != value.Word || !strings.HasPrefix(n.Value, "#") {
			return true
		}
		if !value.IsStandardSyntaxValue(n.Value) {
			return true
		}
		if _, err := csscolorparser.Parse(n.Value); err != nil {
			start := decl.ValueStartByte + n.SourceIndex
			ctx.Report(lint.Diagnostic{
				Rule:      Name,
				Message:   fmt.Sprintf("Unexpected invalid hex color %q", n.Value),
				StartByte: start,
				EndByte:   start + len(n.Value),
			})
		}
		return true
	})
}
