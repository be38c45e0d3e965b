package domain

import "strings"

// ContactRecord is one row of a business-card export as received from the
// ingestion layer. Fields are raw strings exactly as they appeared in the
// source; all normalization happens downstream.
type ContactRecord struct {
	Surname       string
	GivenName     string
	SurnameKana   string
	GivenNameKana string

	Company    string
	Department string
	Title      string

	Email string
	URL   string

	PostalCode        string
	Address           string
	AddressSecondLine string

	CompanyTel    string
	DepartmentTel string
	DirectTel     string
	Fax           string
	Mobile        string

	ExchangedAt string

	// CustomFlags holds the headers of custom columns whose cell value was
	// "1", preserved in input column order.
	CustomFlags []string
}

// HasPersonName reports whether at least one half of the personal name is set.
func (c ContactRecord) HasPersonName() bool {
	return strings.TrimSpace(c.Surname) != "" || strings.TrimSpace(c.GivenName) != ""
}

// PhoneCandidates returns the company phone fields in join order.
func (c ContactRecord) PhoneCandidates() []string {
	return []string{c.CompanyTel, c.DepartmentTel, c.DirectTel, c.Fax, c.Mobile}
}
