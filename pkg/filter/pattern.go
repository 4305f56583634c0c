package filter

import (
	"time"

	"github.com/dlclark/regexp2"
)

// MatchTimeout bounds a single pattern match. A match that runs out of time counts as a hit.
const MatchTimeout = 100 * time.Millisecond

// Pattern is the outcome of compiling a user supplied regular expression.
// Exactly one of the compiled expression and the compile error is set, or
// neither when no expression was supplied.
type Pattern struct {
	re  *regexp2.Regexp
	err error
}

// CompilePattern builds a case-insensitive pattern from expr using ECMAScript
// syntax, so lookarounds and backreferences are available.
// Compilation failures are kept in the returned value instead of being returned.
func CompilePattern(expr string) Pattern {
	if expr == "" {
		return Pattern{}
	}
	re, err := regexp2.Compile(expr, regexp2.ECMAScript|regexp2.IgnoreCase)
	if err != nil {
		return Pattern{err: err}
	}
	re.MatchTimeout = MatchTimeout
	return Pattern{re: re}
}

// Ok reports whether the pattern compiled and can be matched against
func (p Pattern) Ok() bool { return p.re != nil }

// Err returns the compile error, if any
func (p Pattern) Err() error { return p.err }

// MatchString reports whether s matches. A missing or invalid pattern matches everything.
func (p Pattern) MatchString(s string) bool {
	if p.re == nil {
		return true
	}
	ok, err := p.re.MatchString(s)
	if err != nil {
		return true
	}
	return ok
}
