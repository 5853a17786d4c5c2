package engine

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxTextLength is the maximum accepted input length in code points.
// Requests exceeding it are rejected before any detector runs.
const MaxTextLength = 10000

var reWhitespace = regexp.MustCompile(`\s+`)

// squashRepeats collapses runs of 4+ identical code points to 2
// ("sooooo" -> "soo"). Keeps repeated-letter emphasis from defeating
// token lookup. Runs of 3 or fewer pass through unchanged.
func squashRepeats(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	rs := []rune(s)
	for i := 0; i < len(rs); {
		j := i
		for j < len(rs) && rs[j] == rs[i] {
			j++
		}
		n := j - i
		if n >= 4 {
			n = 2
		}
		for k := 0; k < n; k++ {
			b.WriteRune(rs[i])
		}
		i = j
	}
	return b.String()
}

// normalizeChain applies NFKC composition and strips control characters in a
// single pass. Built once; transform.Chain values are safe for concurrent use
// through transform.String.
var normalizeChain = transform.Chain(
	norm.NFKC,
	runes.Remove(runes.In(unicode.Cc)),
)

// Normalize validates and cleans raw input text. Every detector downstream
// accepts only normalized text.
//
// Returns ErrEmptyInput when the text is whitespace-only and ErrInputTooLong
// when the trimmed text exceeds MaxTextLength code points.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmptyInput
	}
	if utf8.RuneCountInString(trimmed) > MaxTextLength {
		return "", ErrInputTooLong
	}

	// Collapse whitespace before the control strip so tabs and newlines
	// become word separators instead of disappearing.
	collapsed := reWhitespace.ReplaceAllString(trimmed, " ")

	cleaned, _, err := transform.String(normalizeChain, collapsed)
	if err != nil {
		// Malformed UTF-8 tails are dropped rather than failing the request
		cleaned = strings.ToValidUTF8(collapsed, "")
	}

	cleaned = squashRepeats(cleaned)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "", ErrEmptyInput
	}
	return cleaned, nil
}

// TruncateRunes bounds a string to n code points. Used for classifier input
// truncation and for trimming the stored echo of long texts.
func TruncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
