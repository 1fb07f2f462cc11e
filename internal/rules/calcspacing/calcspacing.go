// Package calcspacing implements the calc-no-unspaced-operator rule:
// "+" and "-" operators inside math function arguments must carry exactly
// one space on each side, and a glued sign that is not a unary prefix must
// be preceded by an explicit operator.
package calcspacing

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"stylefix.dev/stylefix/internal/collections"
	"stylefix.dev/stylefix/internal/lint"
	"stylefix.dev/stylefix/internal/parser/css"
	"stylefix.dev/stylefix/internal/value"
)

// Name is the rule's identifier in configuration and reports
const Name = "calc-no-unspaced-operator"

// mathFunctions are the single-argument math functions plus the comparison
// functions, whose comma-separated arguments flow through the same child
// scan. Matching is case-insensitive.
var mathFunctions = []string{
	"abs", "acos", "asin", "atan", "calc", "clamp", "cos", "exp",
	"max", "min", "sign", "sin", "sqrt", "tan",
}

const operatorChars = "+-"

var (
	operators    = collections.NewSet("+", "-")
	allOperators = collections.NewSet("+", "-", "*", "/")
)

// Rule is the calc-no-unspaced-operator rule
type Rule struct {
	functions collections.Set[string]
	funcCalls *regexp.Regexp
	tokenize  func(string) []*value.Node
}

// New creates the rule. extraFunctions extends the built-in math function
// set with additional names, matched case-insensitively.
func New(extraFunctions ...string) *Rule {
	names := append([]string{}, mathFunctions...)
	for _, name := range extraFunctions {
		names = append(names, strings.ToLower(name))
	}
	sort.Strings(names)

	functions := collections.NewSet(names...)
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = regexp.QuoteMeta(name)
	}
	pattern := `(?i)\b(` + strings.Join(quoted, "|") + `)\(`

	return &Rule{
		functions: functions,
		funcCalls: regexp.MustCompile(pattern),
		tokenize:  value.Parse,
	}
}

// Name returns the rule identifier
func (r *Rule) Name() string { return Name }

func expectedBefore(op string) string {
	return fmt.Sprintf("Expected single space before %q operator", op)
}

func expectedAfter(op string) string {
	return fmt.Sprintf("Expected single space after %q operator", op)
}

func expectedOperatorBeforeSign(op string) string {
	return fmt.Sprintf("Expected an operator before sign %q", op)
}

// CheckDeclaration analyzes one declaration's value. Values that cannot
// contain a relevant call are rejected on the raw text before any
// tokenization happens.
func (r *Rule) CheckDeclaration(decl *css.Declaration, ctx *lint.Context) {
	if !strings.ContainsAny(decl.Value, operatorChars) {
		return
	}
	if !r.funcCalls.MatchString(decl.Value) {
		return
	}

	nodes := r.tokenize(decl.Value)
	changed := false

	complain := func(message string, index int) {
		start := decl.ValueStartByte + index
		ctx.Report(lint.Diagnostic{
			Rule:      Name,
			Message:   message,
			StartByte: start,
			EndByte:   start + 1,
		})
	}

	value.Walk(nodes, func(n *value.Node) bool {
		if n.Type != value.Function {
			return true
		}
		if r.functions.Has(strings.ToLower(n.Value)) {
			r.checkFunction(n, ctx, complain, &changed)
		}
		// Always descend: a matching call may nest inside any function
		return true
	})

	if changed {
		decl.SetValue(value.Stringify(nodes))
	}
}

// checkFunction inspects one matched function's direct arguments. When at
// least one standalone operator token is present the arguments already
// have the expected space-delimited shape and only the spacing around
// each operator is checked; otherwise any sign must be glued inside a
// word and the disambiguation checks run, first argument first, at most
// one per function.
func (r *Rule) checkFunction(fn *value.Node, ctx *lint.Context, complain func(string, int), changed *bool) {
	args := fn.Nodes
	foundOperator := false

	for i, arg := range args {
		if !isOperator(arg, operators) {
			continue
		}
		foundOperator = true

		var before, after *value.Node
		if i > 0 {
			before = args[i-1]
		}
		if i+1 < len(args) {
			after = args[i+1]
		}
		r.checkAroundOperator(arg, before, expectedBefore, ctx, complain, changed)
		r.checkAroundOperator(arg, after, expectedAfter, ctx, complain, changed)
	}

	if foundOperator || len(args) == 0 {
		return
	}

	if r.checkFirstArg(args[0], ctx, complain, changed) {
		return
	}
	if len(args) > 1 {
		r.checkLastArg(args, ctx, complain, changed)
	}
}

// checkAroundOperator validates the whitespace on one side of a
// standalone operator. Whitespace that starts with a newline is
// intentional formatting and is left alone.
func (r *Rule) checkAroundOperator(op, neighbor *value.Node, message func(string) string, ctx *lint.Context, complain func(string, int), changed *bool) {
	if neighbor == nil || neighbor.Type != value.Space || neighbor.Value == " " {
		return
	}

	newlineIndex := firstNewline(neighbor.Value)
	if newlineIndex == 0 {
		return
	}

	if ctx.Fix {
		if newlineIndex > 0 {
			// Keep the line break, drop the run before it
			neighbor.Value = neighbor.Value[newlineIndex:]
		} else {
			neighbor.Value = " "
		}
		*changed = true
		return
	}

	complain(message(op.Value), op.SourceIndex)
}

// checkFirstArg handles a sign glued inside the first argument, e.g.
// calc(1px-1px). A sign at index 0 is a unary prefix of the whole
// argument and is legitimate. Returns whether the argument qualified for
// this check; a qualifying first argument suppresses the trailing sign
// check for the function even when nothing was reported.
func (r *Rule) checkFirstArg(arg *value.Node, ctx *lint.Context, complain func(string, int), changed *bool) bool {
	if arg.Type != value.Word {
		return false
	}
	if !value.IsStandardSyntaxValue(arg.Value) {
		return false
	}
	opIndex := operatorIndex(arg.Value)
	if opIndex <= 0 {
		return false
	}

	op := string(arg.Value[opIndex])
	charBefore := arg.Value[opIndex-1]
	var charAfter byte
	if opIndex+1 < len(arg.Value) {
		charAfter = arg.Value[opIndex+1]
	}

	switch {
	case charBefore != ' ' && charAfter != 0 && charAfter != ' ':
		if ctx.Fix {
			arg.Value = insertCharAt(arg.Value, opIndex+1, ' ')
			arg.Value = insertCharAt(arg.Value, opIndex, ' ')
			*changed = true
		} else {
			complain(expectedBefore(op), arg.SourceIndex+opIndex)
			complain(expectedAfter(op), arg.SourceIndex+opIndex)
		}
	case charBefore != ' ':
		if ctx.Fix {
			arg.Value = insertCharAt(arg.Value, opIndex, ' ')
			*changed = true
		} else {
			complain(expectedBefore(op), arg.SourceIndex+opIndex)
		}
	}

	return true
}

// checkLastArg handles a sign inside the last argument with no operator
// in front of it, e.g. calc(10px -2). A sign that follows a real operator
// and a single space, e.g. calc(10px * -2), is a unary sign and is
// legitimate.
func (r *Rule) checkLastArg(args []*value.Node, ctx *lint.Context, complain func(string, int), changed *bool) {
	last := args[len(args)-1]
	if last.Type != value.Word {
		return
	}
	opIndex := operatorIndex(last.Value)
	if opIndex < 0 {
		return
	}

	// A sign that opens a comma-separated argument is a unary prefix,
	// e.g. min(1px, -2px)
	if opIndex == 0 && args[len(args)-2].Type == value.Div {
		return
	}

	if len(args) >= 3 &&
		isOperator(args[len(args)-3], allOperators) &&
		isSingleSpace(args[len(args)-2]) {
		return
	}

	if ctx.Fix {
		fixed := insertCharAt(last.Value, opIndex+1, ' ')
		fixed = insertCharAt(fixed, opIndex, ' ')
		// The space token before this word already separates it; trim so
		// the fix does not double the spacing
		last.Value = strings.TrimSpace(fixed)
		*changed = true
		return
	}

	op := string(last.Value[opIndex])
	complain(expectedOperatorBeforeSign(op), last.SourceIndex+opIndex)
}

// operatorIndex returns the index of the first "+" or "-" in s that is
// not the sign of a scientific-notation exponent, or -1 when there is
// none. The sign in 1e-5 is part of the number, not an operator.
func operatorIndex(s string) int {
	for i := 0; i < len(s); {
		j := strings.IndexAny(s[i:], operatorChars)
		if j < 0 {
			return -1
		}
		j += i
		if !isExponentSign(s, j) {
			return j
		}
		i = j + 1
	}
	return -1
}

func isExponentSign(s string, i int) bool {
	if i < 2 || i+1 >= len(s) {
		return false
	}
	if s[i-1] != 'e' && s[i-1] != 'E' {
		return false
	}
	if c := s[i-2]; (c < '0' || c > '9') && c != '.' {
		return false
	}
	d := s[i+1]
	return d >= '0' && d <= '9'
}

func isOperator(n *value.Node, ops collections.Set[string]) bool {
	return n != nil && n.Type == value.Word && ops.Has(n.Value)
}

func isSingleSpace(n *value.Node) bool {
	return n != nil && n.Type == value.Space && n.Value == " "
}

// firstNewline returns the index of the first line break in s, counting a
// "\r\n" pair from the "\r", or -1 when there is none
func firstNewline(s string) int {
	i := strings.IndexByte(s, '\n')
	if i > 0 && s[i-1] == '\r' {
		return i - 1
	}
	return i
}

func insertCharAt(s string, index int, c byte) string {
	return s[:index] + string(c) + s[index:]
}
