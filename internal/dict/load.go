package dict

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// File names expected under the dictionary directory.
const (
	FileBuildingWords     = "bldg_words.json"
	FileCorpTerms         = "corp_terms.json"
	FilePersonOverrides   = "person_kana_overrides.json"
	FileCompanyOverrides  = "company_kana_overrides.json"
	FileLegacyCompanyKana = "company_kana_legacy.json"
)

// Paths locates the dictionary files on disk.
type Paths struct {
	Dir string
}

func (p Paths) file(name string) string {
	return filepath.Join(p.Dir, name)
}

// wordListFile accepts both the current dict style and the legacy bare-list
// style the original data files shipped in.
type wordListFile struct {
	Version string   `json:"version"`
	Words   []string `json:"words"`
}

// overrideSections is the layered person-override file layout.
type overrideSections struct {
	Version string            `json:"version"`
	Full    map[string]string `json:"full"`
	Surname map[string]string `json:"surname"`
	Given   map[string]string `json:"given"`
}

// companyOverrideFile separates English and Japanese corporate-term variants;
// the resolver checks English entries first.
type companyOverrideFile struct {
	Version  string            `json:"version"`
	English  map[string]string `json:"english"`
	Japanese map[string]string `json:"japanese"`
}

// Load parses every dictionary file and assembles an immutable Set. Any
// missing or malformed file fails the whole load; partial dictionary sets are
// never accepted.
func Load(paths Paths, logger *zap.Logger) (*Set, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	building, err := loadWordList(paths.file(FileBuildingWords), "bldg_words", logger)
	if err != nil {
		return nil, err
	}
	corp, err := loadWordList(paths.file(FileCorpTerms), "corp_terms", logger)
	if err != nil {
		return nil, err
	}

	person, err := loadPersonOverrides(paths.file(FilePersonOverrides), logger)
	if err != nil {
		return nil, err
	}

	company, err := loadCompanyOverrides(paths.file(FileCompanyOverrides), logger)
	if err != nil {
		return nil, err
	}

	legacy, err := loadProvenance(paths.file(FileLegacyCompanyKana), "company_kana_legacy")
	if err != nil {
		return nil, err
	}

	set := &Set{
		CorpTerms:           corp,
		BuildingWords:       building,
		PersonFullOverrides: person.full,
		SurnameOverrides:    person.surname,
		GivenNameOverrides:  person.given,
		CompanyOverrides:    company,
		LegacyCompanyKana:   legacy,
	}

	for name, version := range set.Versions() {
		logger.Info("dictionary loaded", zap.String("dictionary", name), zap.String("version", version))
	}
	return set, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	return data, nil
}

func loadWordList(path, name string, logger *zap.Logger) (*Dictionary, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var file wordListFile
	if err := json.Unmarshal(data, &file); err != nil {
		// Legacy bare-list style.
		var words []string
		if listErr := json.Unmarshal(data, &words); listErr != nil {
			return nil, &LoadError{File: path, Err: err}
		}
		file = wordListFile{Words: words}
	}
	if len(file.Words) == 0 {
		return nil, &LoadError{File: path, Err: errors.New("no words declared")}
	}

	entries := make([]Entry, 0, len(file.Words))
	for _, w := range file.Words {
		if w == "" {
			continue
		}
		entries = append(entries, Entry{Surface: w, Canonical: w})
	}
	return newDictionary(name, file.Version, entries, logger), nil
}

type personDictionaries struct {
	full    *Dictionary
	surname *Dictionary
	given   *Dictionary
}

func loadPersonOverrides(path string, logger *zap.Logger) (personDictionaries, error) {
	data, err := readFile(path)
	if err != nil {
		return personDictionaries{}, err
	}
	var file overrideSections
	if err := json.Unmarshal(data, &file); err != nil {
		return personDictionaries{}, &LoadError{File: path, Err: err}
	}
	return personDictionaries{
		full:    newDictionary("person_full_overrides", file.Version, mapEntries(file.Full, ""), logger),
		surname: newDictionary("surname_overrides", file.Version, mapEntries(file.Surname, ""), logger),
		given:   newDictionary("given_name_overrides", file.Version, mapEntries(file.Given, ""), logger),
	}, nil
}

func loadCompanyOverrides(path string, logger *zap.Logger) (*Dictionary, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var file companyOverrideFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	// English variants precede Japanese so equal-length ties prefer them.
	entries := mapEntries(file.English, "en")
	entries = append(entries, mapEntries(file.Japanese, "ja")...)
	return newDictionary("company_kana_overrides", file.Version, entries, logger), nil
}

func loadProvenance(path, name string) (*Provenance, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var file wordListFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	return &Provenance{name: name, version: file.Version, count: len(file.Words)}, nil
}

// mapEntries flattens an override map into entries. JSON object keys decode
// into a Go map with randomized iteration order, so keys are sorted to keep
// the declaration-order tie-break deterministic regardless of storage layout.
func mapEntries(values map[string]string, lang string) []Entry {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		if k == "" || values[k] == "" {
			continue
		}
		entries = append(entries, Entry{Surface: k, Canonical: values[k], Lang: lang})
	}
	return entries
}

// Describe summarises a loaded set for the startup banner.
func Describe(set *Set) string {
	if set == nil {
		return "no dictionaries"
	}
	return fmt.Sprintf("corp_terms=%d bldg_words=%d overrides=%d/%d/%d/%d legacy=%d",
		set.CorpTerms.Len(), set.BuildingWords.Len(),
		set.PersonFullOverrides.Len(), set.SurnameOverrides.Len(),
		set.GivenNameOverrides.Len(), set.CompanyOverrides.Len(),
		legacyCount(set.LegacyCompanyKana))
}

func legacyCount(p *Provenance) int {
	if p == nil {
		return 0
	}
	return p.Len()
}
