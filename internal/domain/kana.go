package domain

// KanaSource identifies which resolution layer produced a reading.
type KanaSource string

const (
	// KanaSourceFullNameOverride means an exact full-name override entry matched.
	KanaSourceFullNameOverride KanaSource = "full_name_override"
	// KanaSourceCompositeOverride means surname and given-name overrides both
	// matched and were concatenated.
	KanaSourceCompositeOverride KanaSource = "composite_override"
	// KanaSourceCorporateOverride means a corporate-term override supplied at
	// least part of the reading.
	KanaSourceCorporateOverride KanaSource = "corporate_override"
	// KanaSourceHeuristic means the reading came from heuristic conversion only.
	KanaSourceHeuristic KanaSource = "heuristic"
)

// KanaConfidence is the audit tier derived from the resolution source.
type KanaConfidence string

const (
	KanaConfidenceExact       KanaConfidence = "exact"
	KanaConfidenceApproximate KanaConfidence = "approximate"
)

// Confidence maps a source to its audit tier: overrides are exact, heuristic
// conversion is approximate.
func (s KanaSource) Confidence() KanaConfidence {
	if s == KanaSourceHeuristic {
		return KanaConfidenceApproximate
	}
	return KanaConfidenceExact
}

// KanaResult is a resolved phonetic reading for a person or company name.
type KanaResult struct {
	Reading    string
	Source     KanaSource
	Confidence KanaConfidence
}

// PersonKana bundles the per-part and combined readings for a personal name.
type PersonKana struct {
	Surname KanaResult
	Given   KanaResult
	Full    KanaResult
}
