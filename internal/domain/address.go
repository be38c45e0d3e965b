package domain

import "strings"

// AddressRecord is the structured decomposition of one postal address string.
// Empty string means the component was absent. Concatenating the non-empty
// components in schema order reproduces the normalized input; Remainder exists
// precisely to keep that reconstruction lossless when parts of the input match
// nothing.
type AddressRecord struct {
	// PostalCode holds exactly seven digits, zero-padded, no hyphen.
	PostalCode string
	Prefecture string
	City       string
	// TownBlock carries the town name together with the normalized
	// block-lot numerals (e.g. 神南１－１９－１１).
	TownBlock string
	Building  string
	Room      string
	// Remainder is the raw unmatched residue, surfaced for manual review.
	Remainder string
}

// Reconstruct joins the non-empty address components in schema order.
func (a AddressRecord) Reconstruct() string {
	var b strings.Builder
	for _, part := range []string{a.Prefecture, a.City, a.TownBlock, a.Building, a.Room, a.Remainder} {
		b.WriteString(part)
	}
	return b.String()
}

// FormattedPostalCode renders the postal code as NNN-NNNN, or empty when the
// code is absent.
func (a AddressRecord) FormattedPostalCode() string {
	if len(a.PostalCode) != 7 {
		return ""
	}
	return a.PostalCode[:3] + "-" + a.PostalCode[3:]
}

// Line1 is the administrative-plus-block portion used for the first address
// column of the label schema.
func (a AddressRecord) Line1() string {
	return a.Prefecture + a.City + a.TownBlock
}

// Line2 is the building portion used for the second address column.
func (a AddressRecord) Line2() string {
	if a.Building == "" && a.Room == "" {
		return ""
	}
	if a.Room == "" {
		return a.Building
	}
	return a.Building + "　" + a.Room
}
