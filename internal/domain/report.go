package domain

// RowError records a per-record conversion failure. Failed rows do not abort
// the batch; they are surfaced next to the rows that converted cleanly.
type RowError struct {
	// Row is the 1-based data row number in the source file.
	Row     int
	Column  string
	Message string
}

// ConversionReport is the outcome of converting one uploaded batch.
type ConversionReport struct {
	// ID is the ULID assigned to this conversion run.
	ID string

	Rows      []OutputRow
	Errors    []RowError
	Reviewed  int
	Converted int

	// DictionaryVersions maps dictionary name to the version string loaded
	// at startup, recorded for provenance.
	DictionaryVersions map[string]string
}
