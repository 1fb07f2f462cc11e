package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"stylefix.dev/stylefix/internal/collections"
	"stylefix.dev/stylefix/internal/config"
	"stylefix.dev/stylefix/internal/lint"
	"stylefix.dev/stylefix/internal/log"
	"stylefix.dev/stylefix/internal/rules/calcspacing"
	"stylefix.dev/stylefix/internal/rules/hexcolor"
)

// exitCode is 0 on a clean run and 1 when diagnostics remain
var exitCode int

var (
	locColor  = color.New(color.Bold)
	ruleColor = color.New(color.FgHiBlack)
	sumColor  = color.New(color.FgRed, color.Bold)
)

func runLint(cmd *cobra.Command, args []string) error {
	fix, _ := cmd.Flags().GetBool("fix")
	configPath, _ := cmd.Flags().GetString("config")
	quiet, _ := cmd.Flags().GetBool("quiet")
	noColor, _ := cmd.Flags().GetBool("no-color")

	if noColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if fix {
		cfg.Fix = true
	}

	rules, err := buildRules(cfg)
	if err != nil {
		return err
	}

	paths, err := expandGlobs(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files matched")
	}

	runner := lint.NewRunner(cfg.Fix, rules...)
	total := 0
	for _, path := range paths {
		result, err := runner.LintFile(path)
		if err != nil {
			return err
		}
		if result.Fixed {
			log.Info("fixed %s", path)
		}
		total += len(result.Diagnostics)
		if quiet {
			continue
		}
		for _, d := range result.Diagnostics {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
				locColor.Sprintf("%s:%d:%d", path, d.Line, d.Column),
				d.Message,
				ruleColor.Sprint(d.Rule))
		}
	}

	if total > 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", sumColor.Sprintf("%d problem(s) found", total))
		}
		exitCode = 1
	}
	return nil
}

func loadConfig(explicit string) (*config.Config, error) {
	if explicit != "" {
		return config.Load(explicit)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if path := config.Find(cwd); path != "" {
		log.Debug("using config %s", path)
		return config.Load(path)
	}
	return config.Default(), nil
}

func buildRules(cfg *config.Config) ([]lint.Rule, error) {
	known := collections.NewSet(calcspacing.Name, hexcolor.Name)
	if err := cfg.Validate(known); err != nil {
		return nil, err
	}

	var rules []lint.Rule
	if cfg.Enabled(calcspacing.Name) {
		rules = append(rules, calcspacing.New(cfg.MathFunctions...))
	}
	if cfg.Enabled(hexcolor.Name) {
		rules = append(rules, hexcolor.New())
	}
	return rules, nil
}

// expandGlobs resolves each argument as a doublestar pattern. An argument
// that matches nothing but names an existing file is used directly.
func expandGlobs(args []string) ([]string, error) {
	seen := collections.NewSet[string]()
	var paths []string
	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(arg); statErr == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if seen.Has(m) {
				continue
			}
			seen.Add(m)
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)
	return paths, nil
}
