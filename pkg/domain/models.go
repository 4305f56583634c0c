// Package domain contains domain-related models and logic
package domain

import (
	"math"
	"strconv"
	"strings"
)

// Metrics holds the lexical measurements for a single candidate
type Metrics struct {
	Length         int     `json:"length"`
	HyphenCount    int     `json:"hyphenCount"`
	DigitCount     int     `json:"digitCount"`
	VowelCount     int     `json:"vowelCount"`
	ConsonantCount int     `json:"consonantCount"`
	ReadableRatio  float64 `json:"readableRatio"` // vowels per consonant, 0 without consonants
	Score          float64 `json:"score"`         // composite desirability, never negative
}

// Result is a candidate that survived filtering together with its metrics
type Result struct {
	Domain string `json:"domain"`
	Metrics
}

// MatchMode selects how the free-text query is compared against a candidate
type MatchMode string

const (
	MatchContains MatchMode = "contains"
	MatchStarts   MatchMode = "starts"
	MatchEnds     MatchMode = "ends"
	MatchRegex    MatchMode = "regex"
)

// ParseMatchMode returns the mode named by s, falling back to MatchContains.
func ParseMatchMode(s string) MatchMode {
	switch m := MatchMode(strings.ToLower(strings.TrimSpace(s))); m {
	case MatchStarts, MatchEnds, MatchRegex:
		return m
	default:
		return MatchContains
	}
}

// SortKey selects the ordering of ranked results
type SortKey string

const (
	SortScore      SortKey = "score"
	SortLengthAsc  SortKey = "length-asc"
	SortLengthDesc SortKey = "length-desc"
	SortHyphen     SortKey = "hyphen"
	SortReadable   SortKey = "readable"
)

// ParseSortKey returns the key named by s, falling back to SortScore.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortLengthAsc, SortLengthDesc, SortHyphen, SortReadable:
		return k
	default:
		return SortScore
	}
}

// FilterConfig is the full set of inclusion and sort criteria for one filter pass.
// Numeric bounds are nil when unset. Values are passed by copy and never mutated
// by the pipeline.
type FilterConfig struct {
	Query        string
	Mode         MatchMode
	Regex        string
	StartsWith   string
	EndsWith     string
	MinLength    *int
	MaxLength    *int
	MaxHyphens   *int
	MinReadable  *float64
	AllowNumbers bool
	OnlyLetters  bool
	OnlyNoHyphen bool
	SortBy       SortKey
}

// DefaultFilterConfig returns the configuration used when nothing else is specified
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		Mode:         MatchContains,
		MinLength:    IntPtr(3),
		MaxLength:    IntPtr(30),
		MaxHyphens:   IntPtr(2),
		MinReadable:  FloatPtr(0),
		AllowNumbers: true,
		SortBy:       SortScore,
	}
}

// WithQuery returns a copy of c using q as the free-text query
func (c FilterConfig) WithQuery(q string) FilterConfig {
	c.Query = q
	return c
}

// Reset returns a copy of c with all text criteria cleared.
// Numeric bounds, toggles and sort key are kept.
func (c FilterConfig) Reset() FilterConfig {
	c.Query = ""
	c.Regex = ""
	c.StartsWith = ""
	c.EndsWith = ""
	return c
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int { return &v }

// FloatPtr returns a pointer to v
func FloatPtr(v float64) *float64 { return &v }

// ParseOptionalInt parses s as an integer bound. Empty or non-numeric text
// yields nil so the corresponding predicate is skipped.
func ParseOptionalInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// ParseOptionalFloat parses s as a real bound, with the same rules as ParseOptionalInt.
func ParseOptionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
