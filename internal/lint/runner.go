package lint

import (
	"fmt"
	"os"
	"sort"

	"stylefix.dev/stylefix/internal/parser/css"
)

// Runner applies a set of rules to stylesheets
type Runner struct {
	rules  []Rule
	fix    bool
	parser *css.Parser
}

// NewRunner creates a Runner. With fix enabled, rules rewrite declaration
// values and LintSource returns the rewritten stylesheet.
func NewRunner(fix bool, rules ...Rule) *Runner {
	return &Runner{
		rules:  rules,
		fix:    fix,
		parser: css.NewParser(),
	}
}

// Result is the outcome of linting one stylesheet
type Result struct {
	Diagnostics []Diagnostic
	// Output is the stylesheet text, rewritten when Fixed is true
	Output string
	Fixed  bool
}

type edit struct {
	start, end int
	text       string
}

// LintSource runs every rule over every declaration in the source.
// Each declaration's value is rewritten at most once, after all rules
// have seen it.
func (r *Runner) LintSource(source string) (*Result, error) {
	decls, err := r.parser.Declarations(source)
	if err != nil {
		return nil, err
	}

	var diags []Diagnostic
	ctx := &Context{
		Fix: r.fix,
		Report: func(d Diagnostic) {
			diags = append(diags, d)
		},
	}

	var edits []edit
	for _, decl := range decls {
		for _, rule := range r.rules {
			rule.CheckDeclaration(decl, ctx)
		}
		if v, ok := decl.FixedValue(); ok {
			edits = append(edits, edit{decl.ValueStartByte, decl.ValueEndByte, v})
		}
	}

	for i := range diags {
		diags[i].Line, diags[i].Column = position(source, diags[i].StartByte)
	}
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].StartByte < diags[j].StartByte
	})

	result := &Result{Diagnostics: diags, Output: source}
	if len(edits) > 0 {
		result.Output = applyEdits(source, edits)
		result.Fixed = true
	}
	return result, nil
}

// LintFile lints the file at path. In fix mode the file is rewritten in
// place when any rule produced a fix.
func (r *Runner) LintFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	result, err := r.LintSource(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to lint %s: %w", path, err)
	}

	if result.Fixed {
		info, err := os.Stat(path)
		mode := os.FileMode(0o644)
		if err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, []byte(result.Output), mode); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	return result, nil
}

// applyEdits splices replacement texts into source, back to front so
// earlier offsets stay valid
func applyEdits(source string, edits []edit) string {
	sort.Slice(edits, func(i, j int) bool {
		return edits[i].start > edits[j].start
	})
	out := source
	for _, e := range edits {
		out = out[:e.start] + e.text + out[e.end:]
	}
	return out
}
