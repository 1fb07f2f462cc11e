package lint_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stylefix.dev/stylefix/internal/lint"
	"stylefix.dev/stylefix/internal/rules/calcspacing"
	"stylefix.dev/stylefix/internal/rules/hexcolor"
)

func TestLintSource(t *testing.T) {
	t.Run("reports diagnostics with line and column", func(t *testing.T) {
		source := "a {\n  width: calc(1px+1px);\n}\n"
		runner := lint.NewRunner(false, calcspacing.New())

		result, err := runner.LintSource(source)
		require.NoError(t, err)
		require.Len(t, result.Diagnostics, 2)
		assert.False(t, result.Fixed)
		assert.Equal(t, source, result.Output)

		d := result.Diagnostics[0]
		assert.Equal(t, calcspacing.Name, d.Rule)
		assert.Equal(t, 2, d.Line)
		// The "+" sits after "  width: calc(1px"
		assert.Equal(t, 18, d.Column)
		assert.Equal(t, byte('+'), source[d.StartByte])
	})

	t.Run("runs multiple rules over every declaration", func(t *testing.T) {
		source := "a { width: calc(1px+1px); color: #12345; }"
		runner := lint.NewRunner(false, calcspacing.New(), hexcolor.New())

		result, err := runner.LintSource(source)
		require.NoError(t, err)
		require.Len(t, result.Diagnostics, 3)

		rules := make(map[string]int)
		for _, d := range result.Diagnostics {
			rules[d.Rule]++
		}
		assert.Equal(t, 2, rules[calcspacing.Name])
		assert.Equal(t, 1, rules[hexcolor.Name])
	})

	t.Run("diagnostics are ordered by source position", func(t *testing.T) {
		source := "a { color: #12345; width: calc(1px+1px); }"
		runner := lint.NewRunner(false, calcspacing.New(), hexcolor.New())

		result, err := runner.LintSource(source)
		require.NoError(t, err)
		require.Len(t, result.Diagnostics, 3)
		assert.Equal(t, hexcolor.Name, result.Diagnostics[0].Rule)
	})

	t.Run("fix rewrites each violating declaration once", func(t *testing.T) {
		source := "a {\n  width: calc(1px+1px);\n  margin: calc(10px -2) auto;\n}\n"
		runner := lint.NewRunner(true, calcspacing.New())

		result, err := runner.LintSource(source)
		require.NoError(t, err)
		assert.True(t, result.Fixed)
		assert.Empty(t, result.Diagnostics)
		assert.Equal(t, "a {\n  width: calc(1px + 1px);\n  margin: calc(10px - 2) auto;\n}\n", result.Output)
	})

	t.Run("fix leaves clean sources untouched", func(t *testing.T) {
		source := "a { width: calc(1px + 1px); }"
		runner := lint.NewRunner(true, calcspacing.New())

		result, err := runner.LintSource(source)
		require.NoError(t, err)
		assert.False(t, result.Fixed)
		assert.Equal(t, source, result.Output)
	})

	t.Run("fix output is stable under a second pass", func(t *testing.T) {
		source := "a { width: calc(1px  +  1px); padding: min(1px-1px); }"
		runner := lint.NewRunner(true, calcspacing.New())

		first, err := runner.LintSource(source)
		require.NoError(t, err)
		require.True(t, first.Fixed)

		second, err := runner.LintSource(first.Output)
		require.NoError(t, err)
		assert.False(t, second.Fixed)
		assert.Equal(t, first.Output, second.Output)
	})
}

func TestLintFile(t *testing.T) {
	t.Run("rewrites the file in fix mode", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "a.css")
		require.NoError(t, os.WriteFile(path, []byte("a { width: calc(1px+1px); }"), 0o644))

		runner := lint.NewRunner(true, calcspacing.New())
		result, err := runner.LintFile(path)
		require.NoError(t, err)
		assert.True(t, result.Fixed)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "a { width: calc(1px + 1px); }", string(data))
	})

	t.Run("leaves the file alone in check mode", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "a.css")
		content := "a { width: calc(1px+1px); }"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		runner := lint.NewRunner(false, calcspacing.New())
		result, err := runner.LintFile(path)
		require.NoError(t, err)
		require.Len(t, result.Diagnostics, 2)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, string(data))
	})

	t.Run("missing file is an error", func(t *testing.T) {
		runner := lint.NewRunner(false, calcspacing.New())
		_, err := runner.LintFile(filepath.Join(t.TempDir(), "missing.css"))
		assert.Error(t, err)
	})
}
