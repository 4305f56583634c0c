// Package filter selects the candidates that satisfy a FilterConfig
package filter

import (
	"strings"

	"github.com/uberswe/domainRadar/pkg/domain"
	"github.com/uberswe/domainRadar/pkg/util"
)

// candidate is the per-item state the predicates look at
type candidate struct {
	original   string
	normalized string
	metrics    domain.Metrics
}

// predicate reports whether a candidate may stay in the result set
type predicate func(c *candidate) bool

// Filter returns the candidates that pass every predicate built from cfg,
// in input order, together with their metrics.
// Metrics are computed on the lower-cased form of each candidate.
func Filter(candidates []string, cfg domain.FilterConfig) []domain.Result {
	chain := buildChain(cfg)

	results := make([]domain.Result, 0, len(candidates))
	for _, name := range candidates {
		normalized := strings.ToLower(name)
		c := candidate{
			original:   name,
			normalized: normalized,
			metrics:    util.EvaluateDomain(normalized),
		}
		if !chain.accepts(&c) {
			continue
		}
		results = append(results, domain.Result{Domain: name, Metrics: c.metrics})
	}
	return results
}

// predicates is an ordered list of inclusion checks
type predicates []predicate

func (p predicates) accepts(c *candidate) bool {
	for _, ok := range p {
		if !ok(c) {
			return false
		}
	}
	return true
}

// buildChain builds the ordered predicate list for cfg. Checks for unset
// criteria are left out of the chain entirely.
func buildChain(cfg domain.FilterConfig) predicates {
	var chain predicates

	if cfg.MinLength != nil && *cfg.MinLength != 0 {
		minLength := *cfg.MinLength
		chain = append(chain, func(c *candidate) bool { return c.metrics.Length >= minLength })
	}
	if cfg.MaxLength != nil && *cfg.MaxLength != 0 {
		maxLength := *cfg.MaxLength
		chain = append(chain, func(c *candidate) bool { return c.metrics.Length <= maxLength })
	}
	if cfg.MaxHyphens != nil {
		maxHyphens := *cfg.MaxHyphens
		chain = append(chain, func(c *candidate) bool { return c.metrics.HyphenCount <= maxHyphens })
	}
	if cfg.OnlyNoHyphen {
		chain = append(chain, func(c *candidate) bool { return c.metrics.HyphenCount == 0 })
	}
	if cfg.OnlyLetters {
		chain = append(chain, func(c *candidate) bool { return util.IsLetterOnly(c.normalized) })
	}
	if !cfg.AllowNumbers {
		chain = append(chain, func(c *candidate) bool { return c.metrics.DigitCount == 0 })
	}
	if cfg.MinReadable != nil && *cfg.MinReadable != 0 {
		minReadable := *cfg.MinReadable
		chain = append(chain, func(c *candidate) bool { return c.metrics.ReadableRatio >= minReadable })
	}

	if prefix := fold(cfg.StartsWith); prefix != "" {
		chain = append(chain, func(c *candidate) bool { return strings.HasPrefix(c.normalized, prefix) })
	}
	if suffix := fold(cfg.EndsWith); suffix != "" {
		chain = append(chain, func(c *candidate) bool { return strings.HasSuffix(c.normalized, suffix) })
	}

	pattern := CompilePattern(cfg.Regex)
	query := fold(cfg.Query)

	if query != "" {
		switch cfg.Mode {
		case domain.MatchStarts:
			chain = append(chain, func(c *candidate) bool { return strings.HasPrefix(c.normalized, query) })
		case domain.MatchEnds:
			chain = append(chain, func(c *candidate) bool { return strings.HasSuffix(c.normalized, query) })
		case domain.MatchRegex:
			// matched against the original spelling below
		default:
			chain = append(chain, func(c *candidate) bool { return strings.Contains(c.normalized, query) })
		}
	}

	// A compiled pattern constrains every mode; an invalid one is ignored.
	if pattern.Ok() {
		chain = append(chain, func(c *candidate) bool { return pattern.MatchString(c.original) })
	}

	return chain
}

// fold trims and lower-cases user supplied text
func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
