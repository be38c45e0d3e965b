package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/cardbridge/atena/internal/dict"
	"github.com/cardbridge/atena/internal/domain"
)

type stubConverter struct{}

func (stubConverter) Convert(text string) string {
	switch text {
	case "山田":
		return "ヤマダ"
	case "太郎":
		return "タロウ"
	case "":
		return ""
	}
	return "カナ"
}

type recordingConverter func(string) string

func (f recordingConverter) Convert(text string) string { return f(text) }

func convertTestSet() *dict.Set {
	return &dict.Set{
		CorpTerms:           dict.NewWordList("corp_terms", "t1", []string{"日本生命"}, nil),
		BuildingWords:       dict.NewWordList("bldg_words", "t1", []string{"ビル", "タワー"}, nil),
		PersonFullOverrides: dict.NewOverrides("person_full", "t1", nil, nil),
		SurnameOverrides: dict.NewOverrides("surname", "t1", []dict.Entry{
			{Surface: "山田", Canonical: "ヤマダ"},
		}, nil),
		GivenNameOverrides: dict.NewOverrides("given", "t1", []dict.Entry{
			{Surface: "太郎", Canonical: "タロウ"},
		}, nil),
		CompanyOverrides: dict.NewOverrides("company", "t1", []dict.Entry{
			{Surface: "テスト商事", Canonical: "テストショウジ"},
		}, nil),
	}
}

func newTestService(t *testing.T) ConvertService {
	t.Helper()
	svc, err := NewConvertService(ConvertServiceDeps{
		Dictionaries: dict.NewStaticStore(convertTestSet()),
		Converter:    stubConverter{},
		IDGenerator:  func() string { return "01TESTCONVERSIONID" },
	})
	if err != nil {
		t.Fatalf("NewConvertService error: %v", err)
	}
	return svc
}

func sampleContact() domain.ContactRecord {
	return domain.ContactRecord{
		Surname:    "山田",
		GivenName:  "太郎",
		Company:    "テスト商事株式会社",
		Department: "営業部>第一課",
		Title:      "部長",
		Email:      "taro@example.co.jp",
		URL:        "https://example.co.jp",
		PostalCode: "150-0041",
		Address:    "東京都渋谷区神南1-19-11渋谷タワー501",
		CompanyTel: "03-1234-5678",
		Mobile:     "090-1234-5678",
	}
}

func TestConvertAssemblesRow(t *testing.T) {
	svc := newTestService(t)

	report := svc.Convert(context.Background(), []domain.ContactRecord{sampleContact()})
	if report.ID != "01TESTCONVERSIONID" {
		t.Fatalf("ID = %q", report.ID)
	}
	if report.Converted != 1 || len(report.Rows) != 1 {
		t.Fatalf("converted = %d, rows = %d, errors = %v", report.Converted, len(report.Rows), report.Errors)
	}

	row := report.Rows[0]
	if row.FullName != "山田太郎" {
		t.Fatalf("FullName = %q", row.FullName)
	}
	if row.SurnameKana != "ヤマダ" || row.GivenKana != "タロウ" || row.FullNameKana != "ヤマダタロウ" {
		t.Fatalf("kana = %q %q %q", row.SurnameKana, row.GivenKana, row.FullNameKana)
	}
	if row.CompanyPostal != "150-0041" {
		t.Fatalf("CompanyPostal = %q", row.CompanyPostal)
	}
	if row.CompanyAddress1 != "東京都渋谷区神南１－１９－１１" {
		t.Fatalf("CompanyAddress1 = %q", row.CompanyAddress1)
	}
	if row.CompanyAddress2 != "渋谷タワー　５０１" {
		t.Fatalf("CompanyAddress2 = %q", row.CompanyAddress2)
	}
	if row.CompanyTel != "03-1234-5678;090-1234-5678" {
		t.Fatalf("CompanyTel = %q", row.CompanyTel)
	}
	if row.CompanyKana != "テストショウジ" {
		t.Fatalf("CompanyKana = %q", row.CompanyKana)
	}
	if row.Department1 != "営業部" || row.Department2 != "第一課" {
		t.Fatalf("departments = %q %q", row.Department1, row.Department2)
	}
	if row.Title != "部長" {
		t.Fatalf("Title = %q", row.Title)
	}
	if report.DictionaryVersions["corp_terms"] != "t1" {
		t.Fatalf("DictionaryVersions = %v", report.DictionaryVersions)
	}
}

func TestConvertSuppliedKanaWins(t *testing.T) {
	svc := newTestService(t)

	rec := sampleContact()
	rec.SurnameKana = "やまだ"
	rec.GivenNameKana = "たろう"
	report := svc.Convert(context.Background(), []domain.ContactRecord{rec})
	row := report.Rows[0]
	if row.SurnameKana != "ヤマダ" || row.GivenKana != "タロウ" {
		t.Fatalf("kana = %q %q", row.SurnameKana, row.GivenKana)
	}
	if row.FullNameKana != "ヤマダタロウ" {
		t.Fatalf("FullNameKana = %q", row.FullNameKana)
	}
}

func TestConvertPartialBatch(t *testing.T) {
	svc := newTestService(t)

	bad := sampleContact()
	bad.PostalCode = ""
	bad.Address = "渋谷区神南1-19-11"

	report := svc.Convert(context.Background(), []domain.ContactRecord{sampleContact(), bad})
	if report.Converted != 1 {
		t.Fatalf("Converted = %d, want 1", report.Converted)
	}
	if len(report.Errors) == 0 {
		t.Fatal("expected row errors for the incomplete record")
	}
	if report.Errors[0].Row != 2 {
		t.Fatalf("Errors[0].Row = %d, want 2", report.Errors[0].Row)
	}
	if report.Errors[0].Column != "会社〒" {
		t.Fatalf("Errors[0].Column = %q", report.Errors[0].Column)
	}
}

func TestConvertMissingCityReported(t *testing.T) {
	svc := newTestService(t)

	rec := sampleContact()
	rec.Address = "1-2-3 Main Street, Springfield"

	report := svc.Convert(context.Background(), []domain.ContactRecord{rec})
	if report.Converted != 0 {
		t.Fatalf("Converted = %d, want 0", report.Converted)
	}
	if len(report.Errors) != 1 || report.Errors[0].Column != "会社住所1" {
		t.Fatalf("Errors = %v", report.Errors)
	}
}

func TestConvertCustomFlagsToMemo(t *testing.T) {
	svc := newTestService(t)

	rec := sampleContact()
	rec.CustomFlags = []string{"展示会A", "展示会B", "セミナーC", "セミナーD", "訪問E", "紹介F", "紹介G"}

	report := svc.Convert(context.Background(), []domain.ContactRecord{rec})
	row := report.Rows[0]
	want := [5]string{"展示会A", "展示会B", "セミナーC", "セミナーD", "訪問E"}
	if row.Memo != want {
		t.Fatalf("Memo = %v", row.Memo)
	}
	if row.Note1 != "紹介F\n紹介G" {
		t.Fatalf("Note1 = %q", row.Note1)
	}
}

func TestConvertFlagsReviewRows(t *testing.T) {
	svc := newTestService(t)

	rec := sampleContact()
	rec.Address = "東京都渋谷区神南1-19-11某所別館棟"

	report := svc.Convert(context.Background(), []domain.ContactRecord{rec})
	if report.Reviewed != 1 {
		t.Fatalf("Reviewed = %d, want 1", report.Reviewed)
	}
	if report.Rows[0].CompanyAddress3 != "某所別館棟" {
		t.Fatalf("CompanyAddress3 = %q", report.Rows[0].CompanyAddress3)
	}
}

func TestConvertCompanyOnlyRecordSkipsPersonKana(t *testing.T) {
	var converted []string
	svc, err := NewConvertService(ConvertServiceDeps{
		Dictionaries: dict.NewStaticStore(convertTestSet()),
		Converter: recordingConverter(func(text string) string {
			converted = append(converted, text)
			return "カナ"
		}),
		IDGenerator: func() string { return "01TESTCONVERSIONID" },
	})
	if err != nil {
		t.Fatalf("NewConvertService error: %v", err)
	}

	rec := sampleContact()
	rec.Surname = ""
	rec.GivenName = ""

	report := svc.Convert(context.Background(), []domain.ContactRecord{rec})
	if report.Converted != 1 {
		t.Fatalf("Converted = %d, errors = %v", report.Converted, report.Errors)
	}
	row := report.Rows[0]
	if row.FullName != "" || row.SurnameKana != "" || row.GivenKana != "" || row.FullNameKana != "" {
		t.Fatalf("person columns = %q %q %q %q, want all empty",
			row.FullName, row.SurnameKana, row.GivenKana, row.FullNameKana)
	}
	if report.Reviewed != 0 {
		t.Fatalf("Reviewed = %d, want 0", report.Reviewed)
	}
	for _, text := range converted {
		if text == "" {
			t.Fatal("heuristic converter consulted for an absent person name")
		}
	}
}

func TestConvertCSVEndToEnd(t *testing.T) {
	svc := newTestService(t)

	in := "会社名,部署名,役職,姓,名,e-mail,郵便番号,住所,TEL会社,TEL部門,TEL直通,Fax,携帯電話,URL,名刺交換日\n" +
		"テスト商事株式会社,営業部,部長,山田,太郎,taro@example.co.jp,150-0041,東京都渋谷区神南1-19-11渋谷タワー501,03-1234-5678,,,,,,2024-04-01\n"

	var out bytes.Buffer
	report, err := svc.ConvertCSV(context.Background(), strings.NewReader(in), &out)
	if err != nil {
		t.Fatalf("ConvertCSV error: %v", err)
	}
	if report.Converted != 1 {
		t.Fatalf("Converted = %d, errors = %v", report.Converted, report.Errors)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("output lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[1], "山田") || !strings.Contains(lines[1], "150-0041") {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestSplitDepartment(t *testing.T) {
	cases := []struct {
		in, left, right string
	}{
		{"", "", ""},
		{"営業部", "営業部", ""},
		{"営業部>第一課", "営業部", "第一課"},
		{"本部/営業部/第一課", "本部　＋　営業部", "第一課"},
		{"本部/営業部/第一課/第二係", "本部　＋　営業部", "第一課　＋　第二係"},
		{"A/B/C/D/E", "Ａ　＋　Ｂ　＋　Ｃ", "Ｄ　＋　Ｅ"},
		{"A/B/C/D/E/F", "Ａ　＋　Ｂ　＋　Ｃ", "Ｄ　＋　Ｅ　＋　Ｆ"},
		{"営業部　　第一課", "営業部", "第一課"},
	}
	for _, tc := range cases {
		left, right := SplitDepartment(tc.in)
		if left != tc.left || right != tc.right {
			t.Errorf("SplitDepartment(%q) = %q, %q; want %q, %q", tc.in, left, right, tc.left, tc.right)
		}
	}
}
