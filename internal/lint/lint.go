// Package lint defines the rule contract and runs rules over stylesheets.
package lint

import (
	"strings"

	"stylefix.dev/stylefix/internal/parser/css"
)

// Diagnostic is one reported violation
type Diagnostic struct {
	Rule    string
	Message string
	// StartByte and EndByte span the offending text within the source
	StartByte int
	EndByte   int
	// Line and Column are 1-based, derived from StartByte by the runner
	Line   int
	Column int
}

// Context carries the run mode and the diagnostic sink into rules
type Context struct {
	// Fix selects rewrite mode: rules mutate declaration values instead
	// of reporting
	Fix bool
	// Report receives one call per violation in check mode
	Report func(Diagnostic)
}

// Rule checks declarations for one class of violation
type Rule interface {
	Name() string
	CheckDeclaration(decl *css.Declaration, ctx *Context)
}

// position converts a byte offset to 1-based line and column
func position(source string, offset int) (line, column int) {
	if offset > len(source) {
		offset = len(source)
	}
	before := source[:offset]
	line = strings.Count(before, "\n") + 1
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		column = offset - i
	} else {
		column = offset + 1
	}
	return line, column
}
