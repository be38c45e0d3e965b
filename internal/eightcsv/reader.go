// Package eightcsv reads Eight business-card exports (CSV or TSV) and writes
// the fixed-schema address-label CSV.
package eightcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cardbridge/atena/internal/domain"
)

// fixedHeader is the Eight export's fixed column set; everything after it is
// a custom column.
var fixedHeader = []string{
	"会社名", "部署名", "役職", "姓", "名", "e-mail", "郵便番号", "住所",
	"TEL会社", "TEL部門", "TEL直通", "Fax", "携帯電話", "URL", "名刺交換日",
}

// candidates maps each logical field to the header names observed across
// export variants, checked in order. Extend here when a new variant shows up.
var candidates = map[string][]string{
	"surname":      {"姓", "名字", "氏", "姓（漢字）", "Last Name", "Family Name"},
	"given":        {"名", "名前", "名（漢字）", "First Name", "Given Name"},
	"surname_kana": {"姓カナ", "せいカナ", "姓かな", "セイ"},
	"given_kana":   {"名カナ", "めいカナ", "名かな", "メイ"},
	"company":      {"会社名", "勤務先", "会社", "Organization", "Company"},
	"department":   {"部署名", "部署", "Department"},
	"title":        {"役職", "肩書", "Title"},
	"email":        {"e-mail", "E-mail", "メールアドレス", "Email"},
	"url":          {"URL", "ホームページ"},
	"postal":       {"郵便番号", "〒", "Zip", "ZIP", "Postcode"},
	"address":      {"住所", "会社住所", "勤務先住所", "住所1", "Address", "Address1"},
	"address2":     {"住所2", "会社住所2", "Address2"},
	"tel_company":  {"TEL会社", "会社電話", "電話（会社）", "TEL（会社）", "Phone(Work)"},
	"tel_dept":     {"TEL部門", "部門電話"},
	"tel_direct":   {"TEL直通", "直通電話"},
	"fax":          {"Fax", "FAX", "ファックス"},
	"mobile":       {"携帯電話", "携帯", "Mobile"},
	"exchanged_at": {"名刺交換日", "交換日"},
}

// ReadError reports unreadable input, as opposed to per-record conversion
// problems reported downstream.
type ReadError struct {
	Reason string
}

func (e *ReadError) Error() string {
	return "eight csv: " + e.Reason
}

// DetectDelimiter picks tab or comma from the header line, preferring tab so
// TSV exports with commas inside values parse correctly.
func DetectDelimiter(headerLine string) rune {
	if strings.Count(headerLine, "\t") >= strings.Count(headerLine, ",") &&
		strings.Contains(headerLine, "\t") {
		return '\t'
	}
	return ','
}

// Read parses an Eight export into contact records. The delimiter is sniffed
// from the header line; header names are resolved through the candidate
// aliases; custom columns with a "1" cell become CustomFlags in input order.
func Read(r io.Reader) ([]domain.ContactRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ReadError{Reason: fmt.Sprintf("read input: %v", err)}
	}
	text := strings.TrimPrefix(string(data), "\uFEFF")
	if strings.TrimSpace(text) == "" {
		return nil, &ReadError{Reason: "empty input"}
	}

	headerLine := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		headerLine = text[:i]
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = DetectDelimiter(headerLine)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, &ReadError{Reason: fmt.Sprintf("parse csv: %v", err)}
	}
	if len(rows) == 0 {
		return nil, &ReadError{Reason: "missing header row"}
	}

	header := rows[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}

	fixed := make(map[string]bool, len(fixedHeader))
	for _, h := range fixedHeader {
		fixed[h] = true
	}
	var custom []string
	for _, h := range header {
		if h != "" && !fixed[h] {
			custom = append(custom, h)
		}
	}

	pick := func(row []string, logical string) string {
		for _, name := range candidates[logical] {
			i, ok := index[name]
			if !ok || i >= len(row) {
				continue
			}
			if v := strings.TrimSpace(row[i]); v != "" {
				return v
			}
		}
		return ""
	}

	records := make([]domain.ContactRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rec := domain.ContactRecord{
			Surname:           pick(row, "surname"),
			GivenName:         pick(row, "given"),
			SurnameKana:       pick(row, "surname_kana"),
			GivenNameKana:     pick(row, "given_kana"),
			Company:           pick(row, "company"),
			Department:        pick(row, "department"),
			Title:             pick(row, "title"),
			Email:             pick(row, "email"),
			URL:               pick(row, "url"),
			PostalCode:        pick(row, "postal"),
			Address:           pick(row, "address"),
			AddressSecondLine: pick(row, "address2"),
			CompanyTel:        pick(row, "tel_company"),
			DepartmentTel:     pick(row, "tel_dept"),
			DirectTel:         pick(row, "tel_direct"),
			Fax:               pick(row, "fax"),
			Mobile:            pick(row, "mobile"),
			ExchangedAt:       pick(row, "exchanged_at"),
		}
		for _, h := range custom {
			i := index[h]
			if i < len(row) && strings.TrimSpace(row[i]) == "1" {
				rec.CustomFlags = append(rec.CustomFlags, h)
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
