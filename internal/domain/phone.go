package domain

// PhoneClass identifies the numbering class a phone number belongs to. The
// class determines the expected total digit count and how the area code is
// split from the local number.
type PhoneClass string

const (
	PhoneClassGeographic PhoneClass = "geographic"
	PhoneClassMobile     PhoneClass = "mobile"
	PhoneClassIP         PhoneClass = "ip"
	PhoneClassTollFree   PhoneClass = "toll_free"
	PhoneClassPremium    PhoneClass = "premium"
	PhoneClassM2M        PhoneClass = "m2m"
)

// PhoneRecord is the structured decomposition of one phone number string.
type PhoneRecord struct {
	AreaCode    string
	LocalNumber string
	Extension   string
	Class       PhoneClass

	// SpecialNumber is set when the number matched the special-range table
	// (toll-free, premium, mobile, IP) rather than a geographic area code.
	SpecialNumber bool
	// CorrectedLeadingZero is set when the input was missing its leading
	// zero and the normalizer restored it.
	CorrectedLeadingZero bool
}

// Digits returns the canonical digit string: area code followed by local
// number and extension.
func (p PhoneRecord) Digits() string {
	return p.AreaCode + p.LocalNumber + p.Extension
}

// Hyphenated renders the number as area-local with the local number split in
// half, the conventional domestic display form. The extension, when present,
// is ignored here and surfaced separately by the assembler.
func (p PhoneRecord) Hyphenated() string {
	if p.AreaCode == "" || p.LocalNumber == "" {
		return p.Digits()
	}
	local := p.LocalNumber
	if len(local) <= 4 {
		return p.AreaCode + "-" + local
	}
	cut := len(local) - 4
	return p.AreaCode + "-" + local[:cut] + "-" + local[cut:]
}
