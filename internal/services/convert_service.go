package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/cardbridge/atena/internal/address"
	"github.com/cardbridge/atena/internal/dict"
	"github.com/cardbridge/atena/internal/domain"
	"github.com/cardbridge/atena/internal/eightcsv"
	"github.com/cardbridge/atena/internal/kana"
	"github.com/cardbridge/atena/internal/phone"
	"github.com/cardbridge/atena/internal/textnorm"
)

var (
	errConvertDictionariesRequired = errors.New("convert: dictionary store is required")
	errConvertConverterRequired    = errors.New("convert: kana converter is required")
)

// IncompleteRecordError names the required output column that could not be
// populated for a record.
type IncompleteRecordError struct {
	Column string
}

func (e *IncompleteRecordError) Error() string {
	return fmt.Sprintf("convert: missing required column %s", e.Column)
}

// ConvertService turns contact records into label rows.
type ConvertService interface {
	// Convert processes a batch with partial success: rows that fail
	// validation are reported in the result, never aborting the batch.
	Convert(ctx context.Context, records []domain.ContactRecord) domain.ConversionReport
	// ConvertCSV reads an Eight export from r and writes the label CSV to w.
	ConvertCSV(ctx context.Context, r io.Reader, w io.Writer) (domain.ConversionReport, error)
}

// ConvertServiceDeps wires the dictionary store and conversion dependencies.
type ConvertServiceDeps struct {
	Dictionaries *dict.Store
	PhoneTable   *phone.Table
	Converter    kana.HeuristicConverter
	IDGenerator  func() string
	Logger       *zap.Logger
}

type convertService struct {
	dicts    *dict.Store
	phones   *phone.Table
	resolver *kana.Resolver
	newID    func() string
	logger   *zap.Logger
}

// NewConvertService constructs a ConvertService with the provided dependencies.
func NewConvertService(deps ConvertServiceDeps) (ConvertService, error) {
	if deps.Dictionaries == nil {
		return nil, errConvertDictionariesRequired
	}
	if deps.Converter == nil {
		return nil, errConvertConverterRequired
	}

	table := deps.PhoneTable
	if table == nil {
		table = phone.DefaultTable()
	}
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string { return ulid.Make().String() }
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &convertService{
		dicts:    deps.Dictionaries,
		phones:   table,
		resolver: kana.NewResolver(deps.Converter),
		newID:    idGen,
		logger:   logger,
	}, nil
}

func (s *convertService) Convert(ctx context.Context, records []domain.ContactRecord) domain.ConversionReport {
	set := s.dicts.Current()
	splitter := address.NewSplitter(set)

	report := domain.ConversionReport{
		ID:                 s.newID(),
		DictionaryVersions: set.Versions(),
	}

	for i, rec := range records {
		rowNum := i + 1
		row, flagged, rowErrs := s.assembleRow(rec, set, splitter)
		for _, re := range rowErrs {
			re.Row = rowNum
			report.Errors = append(report.Errors, re)
		}
		if row == nil {
			continue
		}
		report.Rows = append(report.Rows, *row)
		report.Converted++
		if flagged {
			report.Reviewed++
		}
	}

	s.logger.Info("batch converted",
		zap.String("conversion_id", report.ID),
		zap.Int("rows", len(records)),
		zap.Int("converted", report.Converted),
		zap.Int("reviewed", report.Reviewed),
		zap.Int("errors", len(report.Errors)))
	return report
}

func (s *convertService) ConvertCSV(ctx context.Context, r io.Reader, w io.Writer) (domain.ConversionReport, error) {
	records, err := eightcsv.Read(r)
	if err != nil {
		return domain.ConversionReport{}, err
	}
	report := s.Convert(ctx, records)
	if err := eightcsv.Write(w, report.Rows); err != nil {
		return report, err
	}
	return report, nil
}

// assembleRow maps one contact onto the output schema. It returns nil when a
// mandatory column cannot be populated, with the failure in the row errors;
// flagged marks rows needing human review (unmatched residue or heuristic
// readings).
func (s *convertService) assembleRow(rec domain.ContactRecord, set *dict.Set, splitter *address.Splitter) (row *domain.OutputRow, flagged bool, rowErrs []domain.RowError) {
	addr := splitter.Split(rec.Address, rec.AddressSecondLine)

	if addr.PostalCode == "" {
		code, err := textnorm.NormalizePostcode(rec.PostalCode)
		if err == nil {
			addr.PostalCode = code
		} else if strings.TrimSpace(rec.PostalCode) != "" {
			rowErrs = append(rowErrs, domain.RowError{Column: "会社〒", Message: err.Error()})
		}
	}

	var incomplete *IncompleteRecordError
	switch {
	case addr.PostalCode == "":
		incomplete = &IncompleteRecordError{Column: "会社〒"}
	case addr.Prefecture == "" || addr.City == "":
		incomplete = &IncompleteRecordError{Column: "会社住所1"}
	}
	if incomplete != nil {
		rowErrs = append(rowErrs, domain.RowError{Column: incomplete.Column, Message: incomplete.Error()})
		return nil, false, rowErrs
	}

	out := domain.OutputRow{
		Surname:   strings.TrimSpace(rec.Surname),
		GivenName: strings.TrimSpace(rec.GivenName),
		Company:   strings.TrimSpace(rec.Company),
	}
	out.FullName = out.Surname + out.GivenName

	// Readings: kana supplied by the export wins; the resolver covers the
	// rest. Company-only cards skip person resolution entirely.
	if rec.HasPersonName() {
		pk := s.resolver.ResolvePerson(out.Surname, out.GivenName, set)
		out.SurnameKana = pickKana(rec.SurnameKana, pk.Surname)
		out.GivenKana = pickKana(rec.GivenNameKana, pk.Given)
		if rec.SurnameKana == "" && rec.GivenNameKana == "" {
			out.FullNameKana = pk.Full.Reading
			if pk.Full.Confidence == domain.KanaConfidenceApproximate && pk.Full.Reading != "" {
				flagged = true
			}
		} else {
			out.FullNameKana = out.SurnameKana + out.GivenKana
		}
	}

	if out.Company != "" {
		ck := s.resolver.ResolveCompany(out.Company, set)
		out.CompanyKana = ck.Reading
		if ck.Confidence == domain.KanaConfidenceApproximate && ck.Reading != "" {
			flagged = true
		}
	}

	out.CompanyPostal = addr.FormattedPostalCode()
	out.CompanyAddress1 = textnorm.Widen(addr.Line1())
	out.CompanyAddress2 = textnorm.Widen(addr.Line2())
	if addr.Remainder != "" {
		// Unmatched residue goes to the third address column for review
		// instead of being dropped.
		out.CompanyAddress3 = textnorm.Widen(addr.Remainder)
		flagged = true
	}

	tel, telErrs := s.joinPhones(rec.PhoneCandidates())
	out.CompanyTel = tel
	rowErrs = append(rowErrs, telErrs...)

	out.CompanyEmail = strings.TrimSpace(rec.Email)
	out.CompanyURL = strings.TrimSpace(rec.URL)

	out.Department1, out.Department2 = SplitDepartment(rec.Department)
	out.Title = textnorm.Widen(strings.TrimSpace(rec.Title))

	flags := rec.CustomFlags
	for i := 0; i < len(flags) && i < 5; i++ {
		out.Memo[i] = flags[i]
	}
	if len(flags) > 5 {
		out.Note1 = strings.Join(flags[5:], "\n")
	}

	return &out, flagged, rowErrs
}

// joinPhones normalizes each candidate number and joins the survivors with a
// semicolon, no spaces. Unparseable numbers are reported and skipped.
func (s *convertService) joinPhones(candidates []string) (string, []domain.RowError) {
	var nums []string
	var errs []domain.RowError
	for _, raw := range candidates {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		rec, err := phone.Normalize(raw, s.phones)
		if err != nil {
			errs = append(errs, domain.RowError{Column: "会社電話", Message: err.Error()})
			continue
		}
		nums = append(nums, rec.Hyphenated())
	}
	return strings.Join(nums, ";"), errs
}

// pickKana prefers the reading supplied by the export, folded to katakana,
// over the resolved one.
func pickKana(supplied string, resolved domain.KanaResult) string {
	supplied = strings.TrimSpace(supplied)
	if supplied != "" {
		return kana.FoldKatakana(supplied)
	}
	return resolved.Reading
}
