package address

import (
	"testing"

	"github.com/cardbridge/atena/internal/dict"
	"github.com/cardbridge/atena/internal/domain"
)

func testSet() *dict.Set {
	return &dict.Set{
		CorpTerms: dict.NewWordList("corp_terms", "test", []string{
			"日本生命", "ＮＴＴ", "センター",
		}, nil),
		BuildingWords: dict.NewWordList("bldg_words", "test", []string{
			"ビル", "ビルディング", "タワー", "ハイツ", "コーポ", "マンション",
		}, nil),
	}
}

func TestSplitFullAddress(t *testing.T) {
	sp := NewSplitter(testSet())

	rec := sp.Split("〒150-0041 東京都渋谷区神南１−１９−１１パークコート神南坂 - 501", "")

	want := domain.AddressRecord{
		PostalCode: "1500041",
		Prefecture: "東京都",
		City:       "渋谷区",
		TownBlock:  "神南１－１９－１１",
		Building:   "パークコート神南坂",
		Room:       "501",
	}
	if rec != want {
		t.Fatalf("Split mismatch\n got %+v\nwant %+v", rec, want)
	}
	if got := rec.FormattedPostalCode(); got != "150-0041" {
		t.Fatalf("FormattedPostalCode = %q, want 150-0041", got)
	}
}

func TestSplitKanjiBlockNotation(t *testing.T) {
	sp := NewSplitter(testSet())

	rec := sp.Split("東京都渋谷区神南一丁目１９番１１号", "")

	if rec.Prefecture != "東京都" || rec.City != "渋谷区" {
		t.Fatalf("administrative parts = %q %q", rec.Prefecture, rec.City)
	}
	if rec.TownBlock != "神南１－１９－１１" {
		t.Fatalf("TownBlock = %q, want 神南１－１９－１１", rec.TownBlock)
	}
}

func TestSplitBuildingWordMatch(t *testing.T) {
	sp := NewSplitter(testSet())

	rec := sp.Split("東京都千代田区丸の内1-2-3丸の内ビルディング10階", "")

	if rec.City != "千代田区" {
		t.Fatalf("City = %q, want 千代田区", rec.City)
	}
	if rec.TownBlock != "丸の内１－２－３" {
		t.Fatalf("TownBlock = %q", rec.TownBlock)
	}
	// ビルディング must win over its own prefix ビル, keeping the name whole.
	if rec.Building != "丸の内ビルディング" {
		t.Fatalf("Building = %q, want 丸の内ビルディング", rec.Building)
	}
	if rec.Room != "10階" {
		t.Fatalf("Room = %q, want 10階", rec.Room)
	}
}

func TestSplitBuildingWordBeforeBlock(t *testing.T) {
	sp := NewSplitter(testSet())

	rec := sp.Split("東京都渋谷区道玄坂ビル1-2-3", "")

	if rec.TownBlock != "道玄坂" {
		t.Fatalf("TownBlock = %q, want 道玄坂", rec.TownBlock)
	}
	// A hyphen-joined block run after the building name stays intact on the
	// building line; its last segment is not a room number.
	if rec.Building != "ビル1-2-3" {
		t.Fatalf("Building = %q, want ビル1-2-3", rec.Building)
	}
	if rec.Room != "" {
		t.Fatalf("Room = %q, want empty", rec.Room)
	}
	want := "東京都" + "渋谷区" + "道玄坂" + "ビル1-2-3"
	if got := rec.Reconstruct(); got != want {
		t.Fatalf("Reconstruct = %q, want %q", got, want)
	}
}

func TestSplitBuildingTrailingRoomWithoutHyphen(t *testing.T) {
	sp := NewSplitter(testSet())

	rec := sp.Split("東京都渋谷区道玄坂タワー301", "")

	if rec.Building != "タワー" {
		t.Fatalf("Building = %q, want タワー", rec.Building)
	}
	if rec.Room != "301" {
		t.Fatalf("Room = %q, want 301", rec.Room)
	}
}

func TestSplitNoAdministrativePrefix(t *testing.T) {
	sp := NewSplitter(testSet())

	rec := sp.Split("どこかの集落1-2-3", "")

	if rec.Prefecture != "" || rec.City != "" {
		t.Fatalf("administrative parts = %q %q, want empty", rec.Prefecture, rec.City)
	}
	if rec.TownBlock != "" || rec.Building != "" {
		t.Fatalf("TownBlock = %q, Building = %q, want both empty", rec.TownBlock, rec.Building)
	}
	if rec.Remainder != "どこかの集落1-2-3" {
		t.Fatalf("Remainder = %q, want どこかの集落1-2-3", rec.Remainder)
	}
}

func TestSplitCorpTermPrecedence(t *testing.T) {
	sp := NewSplitter(testSet())

	rec := sp.Split("大阪府大阪市北区梅田1-1-1日本生命ビル", "")

	if rec.Prefecture != "大阪府" {
		t.Fatalf("Prefecture = %q", rec.Prefecture)
	}
	if rec.City != "大阪市北区" {
		t.Fatalf("City = %q, want designated-city form 大阪市北区", rec.City)
	}
	if rec.Building != "日本生命ビル" {
		t.Fatalf("Building = %q, want 日本生命ビル", rec.Building)
	}
}

func TestSplitDesignatedCityWithoutWard(t *testing.T) {
	sp := NewSplitter(testSet())

	// 市川市 must not be cut after the leading 市.
	rec := sp.Split("千葉県市川市八幡2-3-4", "")
	if rec.City != "市川市" {
		t.Fatalf("City = %q, want 市川市", rec.City)
	}
	if rec.TownBlock != "八幡２－３－４" {
		t.Fatalf("TownBlock = %q", rec.TownBlock)
	}
}

func TestSplitFourSegmentBlock(t *testing.T) {
	sp := NewSplitter(testSet())

	rec := sp.Split("東京都港区六本木6-10-1-803", "")
	if rec.TownBlock != "六本木６－１０－１" {
		t.Fatalf("TownBlock = %q", rec.TownBlock)
	}
	if rec.Room != "803" {
		t.Fatalf("Room = %q, want 803", rec.Room)
	}
}

func TestSplitEnglishAddress(t *testing.T) {
	sp := NewSplitter(testSet())

	rec := sp.Split("1-2-3 Main Street, Springfield", "")
	if rec.Prefecture != "" || rec.City != "" || rec.TownBlock != "" {
		t.Fatalf("english address leaked administrative parts: %+v", rec)
	}
	if rec.Building != "1-2-3 Main Street, Springfield" {
		t.Fatalf("Building = %q", rec.Building)
	}
}

func TestSplitSecondLine(t *testing.T) {
	sp := NewSplitter(testSet())

	cases := []struct {
		name     string
		raw      string
		second   string
		building string
		room     string
	}{
		{
			name:     "room on second line",
			raw:      "東京都渋谷区神南1-19-11渋谷タワー",
			second:   "- 501",
			building: "渋谷タワー",
			room:     "501",
		},
		{
			name:     "building on second line",
			raw:      "東京都渋谷区神南1-19-11",
			second:   "渋谷第一ビル",
			building: "渋谷第一ビル",
			room:     "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := sp.Split(tc.raw, tc.second)
			if rec.Building != tc.building {
				t.Fatalf("Building = %q, want %q", rec.Building, tc.building)
			}
			if rec.Room != tc.room {
				t.Fatalf("Room = %q, want %q", rec.Room, tc.room)
			}
		})
	}
}

func TestSplitInsideFacility(t *testing.T) {
	sp := NewSplitter(testSet())

	rec := sp.Split("東京都文京区本郷7-3-1東京大学構内", "")
	if rec.Building != "東京大学構内" {
		t.Fatalf("Building = %q, want 東京大学構内", rec.Building)
	}
	if rec.Remainder != "" {
		t.Fatalf("Remainder = %q, want empty", rec.Remainder)
	}
}

func TestSplitUnmatchedResidue(t *testing.T) {
	sp := NewSplitter(testSet())

	rec := sp.Split("東京都渋谷区神南1-19-11某所別館棟", "")
	if rec.Remainder != "某所別館棟" {
		t.Fatalf("Remainder = %q, want 某所別館棟", rec.Remainder)
	}
	want := "東京都" + "渋谷区" + "神南１－１９－１１" + "某所別館棟"
	if got := rec.Reconstruct(); got != want {
		t.Fatalf("Reconstruct = %q, want %q", got, want)
	}
}

func TestSplitEmpty(t *testing.T) {
	sp := NewSplitter(testSet())
	if rec := sp.Split("", ""); rec != (domain.AddressRecord{}) {
		t.Fatalf("empty input produced %+v", rec)
	}
}
