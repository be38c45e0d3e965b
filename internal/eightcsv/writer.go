package eightcsv

import (
	"encoding/csv"
	"io"

	"github.com/cardbridge/atena/internal/domain"
)

// Write emits the label CSV: fixed header first, then one line per row,
// comma-separated UTF-8.
func Write(w io.Writer, rows []domain.OutputRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.AtenaHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.Columns()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
