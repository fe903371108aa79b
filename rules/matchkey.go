package rules

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrBadPattern reports a match-key pattern that failed to compile. It
// surfaces at registry build time, never during a render.
var ErrBadPattern = errors.New("rules: invalid match pattern")

// MatchKey binds a rule set to resource types. It is a tagged variant:
// either an exact type IRI or a compiled regular expression matched against
// the type's string form. Exactness is checked first.
type MatchKey struct {
	exact   string
	pattern *regexp.Regexp
}

// Exact returns a match key that matches one type IRI by string equality.
func Exact(typeIRI string) MatchKey {
	return MatchKey{exact: typeIRI}
}

// Pattern compiles expr and returns a pattern match key. The expression is
// anchored implicitly so a rule cannot accidentally match a substring of an
// unrelated IRI.
func Pattern(expr string) (MatchKey, error) {
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return MatchKey{}, fmt.Errorf("%w: %q: %v", ErrBadPattern, expr, err)
	}
	return MatchKey{pattern: re}, nil
}

// MustPattern is Pattern for statically known expressions in catalogue
// packages; it panics on a compile failure.
func MustPattern(expr string) MatchKey {
	k, err := Pattern(expr)
	if err != nil {
		panic(err)
	}
	return k
}

// Matches reports whether the key binds to the given type IRI.
func (k MatchKey) Matches(typeIRI string) bool {
	if k.exact != "" {
		return k.exact == typeIRI
	}
	if k.pattern != nil {
		return k.pattern.MatchString(typeIRI)
	}
	return false
}

// IsPattern reports whether the key is a pattern rather than an exact IRI.
func (k MatchKey) IsPattern() bool {
	return k.pattern != nil
}

// String returns the exact IRI or the pattern source. Two keys with equal
// strings are considered the same key for overwrite-on-reload semantics.
func (k MatchKey) String() string {
	if k.exact != "" {
		return k.exact
	}
	if k.pattern != nil {
		return k.pattern.String()
	}
	return ""
}
