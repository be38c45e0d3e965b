package address

import "testing"

func TestMatchPrefecture(t *testing.T) {
	cases := []struct {
		in, pref, rest string
	}{
		{"東京都渋谷区神南", "東京都", "渋谷区神南"},
		{"北海道札幌市中央区", "北海道", "札幌市中央区"},
		{"京都府京都市下京区", "京都府", "京都市下京区"},
		{"渋谷区神南", "", "渋谷区神南"},
	}
	for _, tc := range cases {
		pref, rest := matchPrefecture(tc.in)
		if pref != tc.pref || rest != tc.rest {
			t.Errorf("matchPrefecture(%q) = %q, %q; want %q, %q", tc.in, pref, rest, tc.pref, tc.rest)
		}
	}
}

func TestMatchCity(t *testing.T) {
	cases := []struct {
		in, city string
	}{
		{"渋谷区神南1-19-11", "渋谷区"},
		{"千代田区丸の内1-2-3", "千代田区"},
		{"市川市八幡2-3-4", "市川市"},
		{"町田市原町田1-1-1", "町田市"},
		{"大阪市北区梅田1-1-1", "大阪市北区"},
		{"札幌市中央区北一条西2", "札幌市中央区"},
		{"海部郡大治町西條", "海部郡大治町"},
		{"大和郡山市北郡山町", "大和郡山市"},
		// Numerals before any suffix mean no municipality is present.
		{"1-19-11神南", ""},
	}
	for _, tc := range cases {
		city, _ := matchCity(tc.in)
		if city != tc.city {
			t.Errorf("matchCity(%q) = %q, want %q", tc.in, city, tc.city)
		}
	}
}
