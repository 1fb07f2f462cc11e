package value

import (
	"regexp"
	"strings"
)

var (
	interpolationPattern = regexp.MustCompile(`#\{.+?\}|@\{.+?\}|\$\(.+?\)`)
	scssNamespacePattern = regexp.MustCompile(`^.+\.\$`)
)

// IsStandardSyntaxValue reports whether a value fragment is plain CSS as
// opposed to a preprocessor variable or interpolation that must not be
// analyzed.
func IsStandardSyntaxValue(v string) bool {
	normalized := v

	// Ignore a sign or arithmetic prefix before variables, e.g. -$height
	if len(v) > 0 && strings.ContainsRune("-+*/", rune(v[0])) {
		normalized = v[1:]
	}

	// SCSS variable, e.g. $width
	if strings.HasPrefix(normalized, "$") {
		return false
	}

	// SCSS namespaced variable, e.g. sizes.$width
	if scssNamespacePattern.MatchString(v) {
		return false
	}

	// Less variable, e.g. @width
	if strings.HasPrefix(normalized, "@") {
		return false
	}

	// SCSS or Less interpolation
	if interpolationPattern.MatchString(normalized) {
		return false
	}

	return true
}
