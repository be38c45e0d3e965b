package dict

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/cardbridge/atena/internal/textnorm"
)

// Entry is one dictionary term: the surface form as declared in the source
// file and its canonical form (reading, replacement, or the surface itself for
// plain word lists).
type Entry struct {
	Surface   string
	Canonical string
	Lang      string

	key      string
	keyRunes int
	order    int
}

// Dictionary is an immutable, versioned term set ordered for longest-match
// scanning: entries sorted by surface length descending, ties broken by
// declaration order in the source file.
type Dictionary struct {
	name    string
	version string
	entries []Entry
	byKey   map[string]Entry
}

// NewWordList builds a dictionary from plain words; each word is its own
// canonical form.
func NewWordList(name, version string, words []string, logger *zap.Logger) *Dictionary {
	entries := make([]Entry, 0, len(words))
	for _, w := range words {
		entries = append(entries, Entry{Surface: w, Canonical: w})
	}
	return newDictionary(name, version, entries, logger)
}

// NewOverrides builds a dictionary from explicit surface-to-canonical entries.
func NewOverrides(name, version string, entries []Entry, logger *zap.Logger) *Dictionary {
	return newDictionary(name, version, entries, logger)
}

func newDictionary(name, version string, entries []Entry, logger *zap.Logger) *Dictionary {
	d := &Dictionary{
		name:    name,
		version: version,
		byKey:   make(map[string]Entry, len(entries)),
	}
	slot := make(map[string]int, len(entries))
	for i := range entries {
		e := entries[i]
		e.key = textnorm.MatchKey(e.Surface)
		e.keyRunes = utf8.RuneCountInString(e.key)
		e.order = i
		if e.key == "" {
			continue
		}
		if idx, ok := slot[e.key]; ok {
			prev := d.entries[idx]
			if prev.Canonical != e.Canonical && logger != nil {
				logger.Warn("dictionary conflict, last-loaded entry wins",
					zap.String("dictionary", name),
					zap.String("surface", e.Surface),
					zap.String("previous", prev.Canonical),
					zap.String("kept", e.Canonical))
			}
			d.entries[idx] = e
			d.byKey[e.key] = e
			continue
		}
		slot[e.key] = len(d.entries)
		d.byKey[e.key] = e
		d.entries = append(d.entries, e)
	}
	sort.SliceStable(d.entries, func(i, j int) bool {
		if d.entries[i].keyRunes != d.entries[j].keyRunes {
			return d.entries[i].keyRunes > d.entries[j].keyRunes
		}
		return d.entries[i].order < d.entries[j].order
	})
	return d
}

// Name returns the dictionary identifier used in logs and provenance output.
func (d *Dictionary) Name() string { return d.name }

// Version returns the version string declared by the source file.
func (d *Dictionary) Version() string { return d.version }

// Len returns the number of distinct entries.
func (d *Dictionary) Len() int { return len(d.entries) }

// Lookup finds the entry whose surface form matches term exactly, comparing in
// match-key space so width and case variants hit the same entry.
func (d *Dictionary) Lookup(term string) (Entry, bool) {
	if d == nil {
		return Entry{}, false
	}
	e, ok := d.byKey[textnorm.MatchKey(term)]
	return e, ok
}

// MatchAt returns the longest entry matching at position pos of the rune
// slice, along with the number of runes consumed. The runes must already be in
// match-key-compatible (NFKC) form; comparison is case-insensitive. Ties on
// length resolve to declaration order because entries are pre-sorted.
func (d *Dictionary) MatchAt(runes []rune, pos int) (Entry, int, bool) {
	if d == nil {
		return Entry{}, 0, false
	}
	remaining := len(runes) - pos
	for _, e := range d.entries {
		if e.keyRunes == 0 || e.keyRunes > remaining {
			continue
		}
		window := string(runes[pos : pos+e.keyRunes])
		if strings.ToLower(window) == e.key {
			return e, e.keyRunes, true
		}
	}
	return Entry{}, 0, false
}

// Provenance is a dictionary retained for display and audit only. It exposes
// no lookup surface, so the matching engine cannot consult it by construction.
type Provenance struct {
	name    string
	version string
	count   int
}

// Name returns the provenance dictionary identifier.
func (p *Provenance) Name() string { return p.name }

// Version returns the version string declared by the source file.
func (p *Provenance) Version() string { return p.version }

// Len returns the number of entries held for display.
func (p *Provenance) Len() int { return p.count }

// Set is the full dictionary complement loaded at startup. It is immutable;
// reloading builds a fresh Set and swaps it in atomically via Store.
type Set struct {
	// CorpTerms and BuildingWords drive the address splitter; corporate
	// terms are checked first on equal-length ties (fixed precedence).
	CorpTerms     *Dictionary
	BuildingWords *Dictionary

	PersonFullOverrides *Dictionary
	SurnameOverrides    *Dictionary
	GivenNameOverrides  *Dictionary
	CompanyOverrides    *Dictionary

	// LegacyCompanyKana is kept for provenance display only. The original
	// data set carried it with unresolved intent; it participates in no
	// matching.
	LegacyCompanyKana *Provenance
}

// Versions maps dictionary name to loaded version for provenance display.
func (s *Set) Versions() map[string]string {
	if s == nil {
		return nil
	}
	out := make(map[string]string)
	add := func(name, version string) {
		if version == "" {
			version = "unversioned"
		}
		out[name] = version
	}
	add(s.CorpTerms.Name(), s.CorpTerms.Version())
	add(s.BuildingWords.Name(), s.BuildingWords.Version())
	add(s.PersonFullOverrides.Name(), s.PersonFullOverrides.Version())
	add(s.SurnameOverrides.Name(), s.SurnameOverrides.Version())
	add(s.GivenNameOverrides.Name(), s.GivenNameOverrides.Version())
	add(s.CompanyOverrides.Name(), s.CompanyOverrides.Version())
	if s.LegacyCompanyKana != nil {
		add(s.LegacyCompanyKana.Name(), s.LegacyCompanyKana.Version())
	}
	return out
}

// LoadError reports a missing or malformed dictionary file. It is fatal at
// startup: running with a partial dictionary set would produce splitting
// results that are wrong in an undetectable way.
type LoadError struct {
	File string
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("dictionary load failed for %s: %v", e.File, e.Err)
}

// Unwrap exposes the underlying error.
func (e *LoadError) Unwrap() error { return e.Err }
