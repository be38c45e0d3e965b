// Package kana resolves phonetic readings for personal and company names,
// layering override dictionaries over heuristic conversion.
package kana

import (
	"strings"

	"github.com/cardbridge/atena/internal/dict"
	"github.com/cardbridge/atena/internal/domain"
	"github.com/cardbridge/atena/internal/textnorm"
)

// corpForms are corporate-form designators stripped before kana resolution;
// the label application prints them without a reading.
var corpForms = []string{
	"株式会社", "有限会社", "合同会社", "合資会社", "合名会社",
	"一般社団法人", "公益社団法人", "一般財団法人", "公益財団法人",
	"(株)", "(有)", "(同)",
}

// Resolver resolves readings against a dictionary set.
type Resolver struct {
	conv HeuristicConverter
}

// NewResolver returns a resolver using conv for text no override covers.
func NewResolver(conv HeuristicConverter) *Resolver {
	return &Resolver{conv: conv}
}

// ResolvePerson resolves surname, given name and combined readings. The
// layers are strict: an exact full-name override wins for the combined
// reading; the per-part override composition applies only when both halves
// have an entry; anything left falls to the heuristic.
func (r *Resolver) ResolvePerson(surname, given string, set *dict.Set) domain.PersonKana {
	surname, _ = textnorm.Normalize(surname, textnorm.General)
	given, _ = textnorm.Normalize(given, textnorm.General)

	var pk domain.PersonKana

	se, surOK := set.SurnameOverrides.Lookup(surname)
	ge, givOK := set.GivenNameOverrides.Lookup(given)
	if surOK && givOK {
		pk.Surname = result(se.Canonical, domain.KanaSourceCompositeOverride)
		pk.Given = result(ge.Canonical, domain.KanaSourceCompositeOverride)
		pk.Full = result(se.Canonical+ge.Canonical, domain.KanaSourceCompositeOverride)
	} else {
		pk.Surname = r.heuristic(surname)
		pk.Given = r.heuristic(given)
		pk.Full = result(pk.Surname.Reading+pk.Given.Reading, domain.KanaSourceHeuristic)
	}

	if fe, ok := set.PersonFullOverrides.Lookup(surname + given); ok {
		pk.Full = result(fe.Canonical, domain.KanaSourceFullNameOverride)
	}
	return pk
}

// ResolveCompany resolves a company-name reading. Corporate-form designators
// are stripped first; corporate-term overrides then cover substrings longest
// match first, with unmatched runs passed through the heuristic.
func (r *Resolver) ResolveCompany(name string, set *dict.Set) domain.KanaResult {
	name, _ = textnorm.Normalize(name, textnorm.General)
	name = stripCorpForms(name)
	if name == "" {
		return result("", domain.KanaSourceHeuristic)
	}

	if e, ok := set.CompanyOverrides.Lookup(name); ok {
		return result(e.Canonical, domain.KanaSourceCorporateOverride)
	}

	runes := []rune(name)
	var reading strings.Builder
	var run strings.Builder
	overridden := false

	flush := func() {
		if run.Len() > 0 {
			reading.WriteString(r.conv.Convert(run.String()))
			run.Reset()
		}
	}

	i := 0
	for i < len(runes) {
		if e, n, ok := set.CompanyOverrides.MatchAt(runes, i); ok {
			flush()
			reading.WriteString(e.Canonical)
			overridden = true
			i += n
			continue
		}
		run.WriteRune(runes[i])
		i++
	}
	flush()

	source := domain.KanaSourceHeuristic
	if overridden {
		source = domain.KanaSourceCorporateOverride
	}
	return result(reading.String(), source)
}

func (r *Resolver) heuristic(text string) domain.KanaResult {
	return result(r.conv.Convert(text), domain.KanaSourceHeuristic)
}

func result(reading string, source domain.KanaSource) domain.KanaResult {
	return domain.KanaResult{
		Reading:    reading,
		Source:     source,
		Confidence: source.Confidence(),
	}
}

// stripCorpForms removes corporate-form designators wherever they appear.
func stripCorpForms(name string) string {
	for _, form := range corpForms {
		name = strings.ReplaceAll(name, form, "")
	}
	return strings.TrimSpace(name)
}
