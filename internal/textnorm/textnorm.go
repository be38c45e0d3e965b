package textnorm

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// FieldClass selects which normalization contract applies to a raw string.
type FieldClass int

const (
	// General canonicalizes free text: NFKC compatibility form with
	// whitespace collapsed.
	General FieldClass = iota
	// BlockNotation canonicalizes block-lot-unit numerals to half-width
	// digits joined by a single ASCII hyphen.
	BlockNotation
	// Postcode reduces the input to exactly seven digits, restoring a
	// dropped leading zero when possible.
	Postcode
)

// FormatError reports input that cannot be repaired by the documented
// correction rules. It is a per-record error and never aborts a batch.
type FormatError struct {
	Field  string
	Input  string
	Reason string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: cannot normalize %q: %s", e.Field, e.Input, e.Reason)
}

// Normalize canonicalizes raw according to the field class. It is a pure
// function and idempotent: normalizing already-normalized text returns it
// unchanged.
func Normalize(raw string, class FieldClass) (string, error) {
	switch class {
	case BlockNotation:
		return NormalizeBlock(raw), nil
	case Postcode:
		return NormalizePostcode(raw)
	default:
		return normalizeGeneral(raw), nil
	}
}

func normalizeGeneral(s string) string {
	if s == "" {
		return ""
	}
	t := norm.NFKC.String(s)
	t = collapseSpaces(t)
	return strings.TrimSpace(t)
}

func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '　' {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// MatchKey produces the half-width, case-folded form used for dictionary
// lookups. Both dictionary surface forms and scanned text must pass through
// the same key function so matching is width-insensitive.
func MatchKey(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

// Widen renders a matching-form string in the full-width display convention
// used by the label application (ASCII letters, digits, and punctuation become
// their full-width counterparts).
func Widen(s string) string {
	return width.Widen.String(s)
}

// blockSeparators are the dash glyphs that survive NFKC and still need to
// collapse onto the canonical hyphen.
var blockSeparators = map[rune]bool{
	'-':      true,
	'‐': true, // hyphen
	'‒': true, // figure dash
	'–': true, // en dash
	'—': true, // em dash
	'―': true, // horizontal bar
	'−': true, // minus sign
	'ー': true, // katakana prolonged sound mark used as a dash
}

// blockWords are notation words that mark block-lot-unit boundaries. Longest
// first so 番地 wins over 番.
var blockWords = []string{"丁目", "番地", "番", "号", "の"}

// NormalizeBlock canonicalizes block-lot-unit notation: digits half-width,
// small kanji numerals converted, every separator glyph or notation word
// replaced by a single ASCII hyphen, surrounding hyphens trimmed.
func NormalizeBlock(s string) string {
	if s == "" {
		return ""
	}
	t := norm.NFKC.String(s)
	t = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '　' {
			return -1
		}
		return r
	}, t)
	t = convertKanjiNumerals(t)
	for _, w := range blockWords {
		t = strings.ReplaceAll(t, w, "-")
	}
	t = strings.Map(func(r rune) rune {
		if blockSeparators[r] {
			return '-'
		}
		return r
	}, t)
	for strings.Contains(t, "--") {
		t = strings.ReplaceAll(t, "--", "-")
	}
	return strings.Trim(t, "-")
}

// WidenBlock renders a canonical block string in the full-width display form.
func WidenBlock(s string) string {
	return width.Widen.String(s)
}

// NormalizePostcode strips everything but digits and validates that exactly
// seven remain, left-padding a single dropped leading zero first (a common
// artifact of numeric storage). The result carries no hyphen.
func NormalizePostcode(s string) (string, error) {
	digits := digitsOnly(norm.NFKC.String(s))
	if len(digits) == 6 && !strings.HasPrefix(digits, "0") {
		digits = "0" + digits
	}
	if len(digits) != 7 {
		return "", &FormatError{
			Field:  "postcode",
			Input:  s,
			Reason: fmt.Sprintf("expected 7 digits, got %d", len(digits)),
		}
	}
	return digits, nil
}

// DigitsOnly drops every rune that is not an ASCII digit after NFKC folding.
func DigitsOnly(s string) string {
	return digitsOnly(norm.NFKC.String(s))
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var kanjiDigits = map[rune]int{
	'一': 1, '二': 2, '三': 3, '四': 4, '五': 5,
	'六': 6, '七': 7, '八': 8, '九': 9,
}

// convertKanjiNumerals rewrites small-magnitude kanji numbers (1..99,
// including the 十 tens form) into ASCII digits. Larger magnitudes are left
// alone; block notation never legitimately uses them.
func convertKanjiNumerals(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i := 0; i < len(runes); {
		value, consumed := readKanjiNumber(runes[i:])
		if consumed > 0 {
			fmt.Fprintf(&b, "%d", value)
			i += consumed
			continue
		}
		b.WriteRune(runes[i])
		i++
	}
	return b.String()
}

func readKanjiNumber(runes []rune) (value, consumed int) {
	i := 0
	if i < len(runes) {
		if d, ok := kanjiDigits[runes[i]]; ok {
			value = d
			i++
		}
	}
	if i < len(runes) && runes[i] == '十' {
		if value == 0 {
			value = 1
		}
		value *= 10
		i++
		if i < len(runes) {
			if d, ok := kanjiDigits[runes[i]]; ok {
				value += d
				i++
			}
		}
	} else if i == 1 && len(runes) > 1 {
		// A lone kanji digit followed by another kanji digit is spelled-out
		// enumeration (一二三), not positional notation; emit digit by digit.
		return value, 1
	}
	if i == 0 {
		return 0, 0
	}
	return value, i
}

// IsASCIIOnly reports whether the string consists solely of printable ASCII,
// the signal used to route English-only addresses to the building line.
func IsASCIIOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
