package address

import "strings"

// prefectures is the closed administrative table: all 47 prefectures in the
// standard JIS X 0401 order. Matching is an exact prefix test, never a
// dictionary scan.
var prefectures = []string{
	"北海道",
	"青森県", "岩手県", "宮城県", "秋田県", "山形県", "福島県",
	"茨城県", "栃木県", "群馬県", "埼玉県", "千葉県", "東京都", "神奈川県",
	"新潟県", "富山県", "石川県", "福井県", "山梨県", "長野県",
	"岐阜県", "静岡県", "愛知県", "三重県",
	"滋賀県", "京都府", "大阪府", "兵庫県", "奈良県", "和歌山県",
	"鳥取県", "島根県", "岡山県", "広島県", "山口県",
	"徳島県", "香川県", "愛媛県", "高知県",
	"福岡県", "佐賀県", "長崎県", "熊本県", "大分県", "宮崎県", "鹿児島県", "沖縄県",
}

// matchPrefecture strips a leading prefecture name, returning it and the rest.
func matchPrefecture(s string) (string, string) {
	for _, p := range prefectures {
		if strings.HasPrefix(s, p) {
			return p, s[len(p):]
		}
	}
	return "", s
}

// citySuffixes close the municipality grammar. A suffix is only accepted when
// at least one rune precedes it, so names like 市川市 and 町田市 resolve to
// their final suffix.
var citySuffixes = map[rune]bool{'市': true, '区': true, '町': true, '村': true}

// matchCity strips the leading municipality, covering the three grammatical
// shapes of Japanese addresses: county towns (X郡Y町), designated-city wards
// (X市Y区), and plain 市/区/町/村 names.
func matchCity(s string) (string, string) {
	runes := []rune(s)

	if gun := suffixIndex(runes, '郡'); gun > 0 {
		rest := runes[gun+1:]
		end := firstSuffix(rest, '町', '村')
		// A 市 between 郡 and the candidate 町/村 rules out the county
		// reading (大和郡山市北郡山町 is a city, not a county town).
		shi := firstSuffix(rest, '市')
		if end > 0 && (shi < 0 || shi > end) {
			cut := gun + 1 + end + 1
			return string(runes[:cut]), string(runes[cut:])
		}
	}

	end := firstSuffixAny(runes)
	if end <= 0 {
		return "", s
	}

	// A designated city is followed by its ward: extend across 市X区.
	if runes[end] == '市' {
		rest := runes[end+1:]
		if ward := firstSuffix(rest, '区'); ward > 0 && ward <= 4 {
			cut := end + 1 + ward + 1
			return string(runes[:cut]), string(runes[cut:])
		}
	}

	return string(runes[:end+1]), string(runes[end+1:])
}

// suffixIndex finds the first occurrence of the rune at index >= 1 within the
// leading run of non-numeric text.
func suffixIndex(runes []rune, want rune) int {
	for i := 1; i < len(runes) && i < 8; i++ {
		if runes[i] >= '0' && runes[i] <= '9' {
			return -1
		}
		if runes[i] == want {
			return i
		}
	}
	return -1
}

func firstSuffix(runes []rune, want ...rune) int {
	for i := 1; i < len(runes) && i < 8; i++ {
		if runes[i] >= '0' && runes[i] <= '9' {
			return -1
		}
		for _, w := range want {
			if runes[i] == w {
				return i
			}
		}
	}
	return -1
}

func firstSuffixAny(runes []rune) int {
	for i := 1; i < len(runes) && i < 8; i++ {
		if runes[i] >= '0' && runes[i] <= '9' {
			return -1
		}
		if citySuffixes[runes[i]] {
			return i
		}
	}
	return -1
}
