package util

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/uberswe/domainRadar/pkg/domain"
)

// CommentPrefix marks a line of a domain list that carries no data
const CommentPrefix = "#"

var lineBreak = regexp.MustCompile(`\r\n|\r|\n`)

// isBlank reports whether r is trimmed from list lines. A byte order mark counts as blank.
func isBlank(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// SanitizeList turns a raw domain list into candidate names.
// Lines are trimmed, blank lines and comment lines are dropped, and the
// surviving lines keep their order and casing.
func SanitizeList(text string) []string {
	lines := lineBreak.Split(text, -1)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimFunc(line, isBlank)
		if line == "" || strings.HasPrefix(line, CommentPrefix) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// EvaluateDomain calculates the lexical metrics for a domain
//
// The score rewards names that are easy to read and type:
// 1. Length: every character costs 1.5 points
// 2. Hyphens: every dash costs 5 points
// 3. Digits: every digit costs 3 points
// 4. Readability: the vowel/consonant ratio adds 12 points per unit
// 5. Vowels: every vowel adds 0.8 points
//
// Starting from 100, the result is clamped at 0 but not above, so short,
// vowel-rich names can score more than 100.
func EvaluateDomain(name string) domain.Metrics {
	name = strings.ToLower(name)

	m := domain.Metrics{Length: utf8.RuneCountInString(name)}
	for _, r := range name {
		switch {
		case r == '-':
			m.HyphenCount++
		case isDigit(r):
			m.DigitCount++
		case isVowel(r):
			m.VowelCount++
		case isConsonant(r):
			m.ConsonantCount++
		}
	}

	if m.ConsonantCount > 0 {
		m.ReadableRatio = float64(m.VowelCount) / float64(m.ConsonantCount)
	}

	// Explicit conversions keep every product rounded, never fused.
	score := 100 -
		float64(float64(m.Length)*1.5) -
		float64(float64(m.HyphenCount)*5) -
		float64(float64(m.DigitCount)*3) +
		float64(m.ReadableRatio*12) +
		float64(float64(m.VowelCount)*0.8)
	m.Score = math.Max(score, 0)

	return m
}

// isVowel reports whether r is a lower-case vowel, including the accented
// forms used in Portuguese names
func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u',
		'á', 'é', 'í', 'ó', 'ú',
		'à', 'â', 'ê', 'î', 'ô', 'û',
		'ã', 'õ':
		return true
	}
	return false
}

// isConsonant reports whether r is a lower-case ASCII consonant
func isConsonant(r rune) bool {
	return r >= 'b' && r <= 'z' && !isVowel(r)
}

// isLetter checks if a character is an ASCII letter
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isDigit checks if a character is an ASCII digit
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsLetterOnly checks if a domain contains only ASCII letters (no numbers, dots or dashes)
func IsLetterOnly(name string) bool {
	for _, r := range name {
		if !isLetter(r) {
			return false
		}
	}
	return true
}
