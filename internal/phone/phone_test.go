package phone

import (
	"errors"
	"testing"

	"github.com/cardbridge/atena/internal/domain"
	"github.com/cardbridge/atena/internal/textnorm"
)

func TestNormalize(t *testing.T) {
	table := DefaultTable()

	cases := []struct {
		name string
		in   string
		want domain.PhoneRecord
	}{
		{
			name: "tokyo geographic",
			in:   "03-1234-5678",
			want: domain.PhoneRecord{
				AreaCode: "03", LocalNumber: "12345678",
				Class: domain.PhoneClassGeographic,
			},
		},
		{
			name: "four digit area wins over three",
			in:   "0422-12-3456",
			want: domain.PhoneRecord{
				AreaCode: "0422", LocalNumber: "123456",
				Class: domain.PhoneClassGeographic,
			},
		},
		{
			name: "five digit area",
			in:   "09969-1-2345",
			want: domain.PhoneRecord{
				AreaCode: "09969", LocalNumber: "12345",
				Class: domain.PhoneClassGeographic,
			},
		},
		{
			name: "mobile",
			in:   "090-1234-5678",
			want: domain.PhoneRecord{
				AreaCode: "090", LocalNumber: "12345678",
				Class: domain.PhoneClassMobile, SpecialNumber: true,
			},
		},
		{
			name: "leading zero restored",
			in:   "90-1234-5678",
			want: domain.PhoneRecord{
				AreaCode: "090", LocalNumber: "12345678",
				Class: domain.PhoneClassMobile, SpecialNumber: true,
				CorrectedLeadingZero: true,
			},
		},
		{
			name: "toll free ten digits",
			in:   "0120-123-456",
			want: domain.PhoneRecord{
				AreaCode: "0120", LocalNumber: "123456",
				Class: domain.PhoneClassTollFree, SpecialNumber: true,
			},
		},
		{
			name: "toll free eleven digits",
			in:   "0800-123-4567",
			want: domain.PhoneRecord{
				AreaCode: "0800", LocalNumber: "1234567",
				Class: domain.PhoneClassTollFree, SpecialNumber: true,
			},
		},
		{
			name: "premium beats kagoshima prefix",
			in:   "0990-12-3456",
			want: domain.PhoneRecord{
				AreaCode: "0990", LocalNumber: "123456",
				Class: domain.PhoneClassPremium, SpecialNumber: true,
			},
		},
		{
			name: "ip phone",
			in:   "050-1234-5678",
			want: domain.PhoneRecord{
				AreaCode: "050", LocalNumber: "12345678",
				Class: domain.PhoneClassIP, SpecialNumber: true,
			},
		},
		{
			name: "full width input",
			in:   "０３（１２３４）５６７８",
			want: domain.PhoneRecord{
				AreaCode: "03", LocalNumber: "12345678",
				Class: domain.PhoneClassGeographic,
			},
		},
		{
			name: "trailing digits become extension",
			in:   "03-1234-5678-123",
			want: domain.PhoneRecord{
				AreaCode: "03", LocalNumber: "12345678", Extension: "123",
				Class: domain.PhoneClassGeographic,
			},
		},
		{
			name: "explicit extension marker",
			in:   "03-1234-5678 内線123",
			want: domain.PhoneRecord{
				AreaCode: "03", LocalNumber: "12345678", Extension: "123",
				Class: domain.PhoneClassGeographic,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.in, table)
			if err != nil {
				t.Fatalf("Normalize(%q) error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("Normalize(%q)\n got %+v\nwant %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeErrors(t *testing.T) {
	table := DefaultTable()

	for _, in := range []string{"", "---", "abc-defg"} {
		_, err := Normalize(in, table)
		var ferr *textnorm.FormatError
		if !errors.As(err, &ferr) {
			t.Errorf("Normalize(%q) error = %v, want FormatError", in, err)
		}
	}
}

func TestNormalizeUnknownPrefixFallback(t *testing.T) {
	got, err := Normalize("0999-12-3456", DefaultTable())
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if got.AreaCode != "099" {
		t.Fatalf("AreaCode = %q, want fallback 099", got.AreaCode)
	}
}

func TestRoundTrip(t *testing.T) {
	table := DefaultTable()
	want := map[domain.PhoneClass]int{
		domain.PhoneClassGeographic: 10,
		domain.PhoneClassMobile:     11,
		domain.PhoneClassIP:         11,
	}
	for _, in := range []string{"3-1234-5678", "90-1234-5678", "50-1234-5678"} {
		rec, err := Normalize(in, table)
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", in, err)
		}
		if !rec.CorrectedLeadingZero {
			t.Fatalf("Normalize(%q): leading zero not corrected", in)
		}
		if n := len(rec.Digits()); n != want[rec.Class] {
			t.Fatalf("Normalize(%q): %d digits, want %d for class %s", in, n, want[rec.Class], rec.Class)
		}
	}
}

func TestHyphenated(t *testing.T) {
	rec := domain.PhoneRecord{AreaCode: "03", LocalNumber: "12345678"}
	if got := rec.Hyphenated(); got != "03-1234-5678" {
		t.Fatalf("Hyphenated = %q", got)
	}
	rec = domain.PhoneRecord{AreaCode: "0422", LocalNumber: "123456"}
	if got := rec.Hyphenated(); got != "0422-12-3456" {
		t.Fatalf("Hyphenated = %q", got)
	}
}
