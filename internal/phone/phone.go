// Package phone decomposes loosely formatted domestic phone numbers into
// area code, local number and extension, repairing the leading zero that
// spreadsheet numeric coercion strips.
package phone

import (
	"strings"

	"github.com/cardbridge/atena/internal/domain"
	"github.com/cardbridge/atena/internal/textnorm"
)

// extensionMarkers introduce an explicit extension in the source data.
var extensionMarkers = []string{"内線", "(内)", "ext.", "ext", "x."}

// Normalize decomposes a raw phone string against the numbering table. It
// fails with *textnorm.FormatError only when the stripped input is empty or
// carries non-digit residue; everything else degrades to a best-effort split.
func Normalize(raw string, table *Table) (domain.PhoneRecord, error) {
	var rec domain.PhoneRecord

	s, _ := textnorm.Normalize(raw, textnorm.General)
	s, ext := splitExtensionMarker(s)

	digits, err := stripToDigits(s, raw)
	if err != nil {
		return rec, err
	}
	extDigits := textnorm.DigitsOnly(ext)

	// Spreadsheet coercion drops the leading zero. Any domestic number
	// starts with 0, so a short non-zero-leading digit string gets it back.
	if digits[0] != '0' && len(digits) < 11 {
		digits = "0" + digits
		rec.CorrectedLeadingZero = true
	}

	if r, ok := table.matchSpecial(digits); ok {
		rec.Class = r.class
		rec.SpecialNumber = true
		rec.AreaCode = r.prefix
		rest := digits[len(r.prefix):]
		local := r.total - len(r.prefix)
		if len(rest) > local {
			rec.LocalNumber = rest[:local]
			rec.Extension = rest[local:]
		} else {
			rec.LocalNumber = rest
		}
	} else {
		rec.Class = domain.PhoneClassGeographic
		area, ok := table.matchArea(digits)
		if !ok {
			// Unknown prefix: keep the conventional 0NN split so the
			// record still renders, per the source tool's fallback.
			area = digits
			if len(area) > 3 {
				area = area[:3]
			}
		}
		rec.AreaCode = area
		rest := digits[len(area):]
		local := geographicTotal - len(area)
		if len(rest) > local {
			rec.LocalNumber = rest[:local]
			rec.Extension = rest[local:]
		} else {
			rec.LocalNumber = rest
		}
	}

	if extDigits != "" {
		rec.Extension += extDigits
	}
	return rec, nil
}

// splitExtensionMarker cuts the input at the first explicit extension marker.
func splitExtensionMarker(s string) (number, ext string) {
	lower := strings.ToLower(s)
	for _, m := range extensionMarkers {
		if i := strings.Index(lower, m); i >= 0 {
			return s[:i], s[i+len(m):]
		}
	}
	return s, ""
}

// stripToDigits removes formatting characters and validates that only digits
// remain.
func stripToDigits(s, raw string) (string, error) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '(' || r == ')' || r == '.' || r == '+' || r == ' ' || r == '/':
		case r == '‐' || r == '−' || r == '―' || r == 'ー' || r == '　':
		default:
			return "", &textnorm.FormatError{
				Field:  "phone",
				Input:  raw,
				Reason: "non-digit residue",
			}
		}
	}
	if b.Len() == 0 {
		return "", &textnorm.FormatError{
			Field:  "phone",
			Input:  raw,
			Reason: "no digits",
		}
	}
	return b.String(), nil
}
