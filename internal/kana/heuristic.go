package kana

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/cardbridge/atena/internal/textnorm"
)

// HeuristicConverter derives a katakana reading for text that no override
// covers. Implementations return the empty string when no reading can be
// derived.
type HeuristicConverter interface {
	Convert(text string) string
}

// DisabledConverter never derives a reading. Override dictionaries and
// supplied readings still apply when heuristic derivation is switched off.
type DisabledConverter struct{}

// Convert implements HeuristicConverter.
func (DisabledConverter) Convert(string) string { return "" }

// KagomeConverter reads kanji and kana text through the kagome morphological
// analyzer and transliterates ASCII runs from romaji.
type KagomeConverter struct {
	tok *tokenizer.Tokenizer
}

// NewKagomeConverter builds a converter backed by the bundled IPA dictionary.
func NewKagomeConverter() (*KagomeConverter, error) {
	tok, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &KagomeConverter{tok: tok}, nil
}

// Convert implements HeuristicConverter.
func (c *KagomeConverter) Convert(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var out strings.Builder
	for _, seg := range segmentASCII(text) {
		if seg.ascii {
			out.WriteString(romajiToKatakana(seg.text))
			continue
		}
		for _, t := range c.tok.Tokenize(seg.text) {
			if reading, ok := t.Reading(); ok && reading != "*" {
				out.WriteString(reading)
				continue
			}
			out.WriteString(hiraganaToKatakana(t.Surface))
		}
	}
	return out.String()
}

type segment struct {
	text  string
	ascii bool
}

// segmentASCII splits text into maximal ASCII and non-ASCII runs so each can
// go through its own conversion path.
func segmentASCII(text string) []segment {
	var segs []segment
	var cur strings.Builder
	curASCII := false
	for _, r := range text {
		ascii := r < 0x80
		if cur.Len() > 0 && ascii != curASCII {
			segs = append(segs, segment{cur.String(), curASCII})
			cur.Reset()
		}
		curASCII = ascii
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		segs = append(segs, segment{cur.String(), curASCII})
	}
	return segs
}

// FoldKatakana canonicalizes a supplied reading: NFKC (half-width katakana to
// full-width) plus hiragana folding.
func FoldKatakana(s string) string {
	folded, _ := textnorm.Normalize(s, textnorm.General)
	return hiraganaToKatakana(folded)
}

// hiraganaToKatakana folds hiragana onto the katakana block; other runes pass
// through unchanged.
func hiraganaToKatakana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 'ぁ' && r <= 'ゖ' {
			runes[i] = r + 0x60
		}
	}
	return string(runes)
}

// romajiSyllables maps romaji syllables to katakana, digraphs before single
// letters.
var romajiSyllables = map[string]string{
	"kya": "キャ", "kyu": "キュ", "kyo": "キョ",
	"sha": "シャ", "shu": "シュ", "sho": "ショ", "shi": "シ",
	"cha": "チャ", "chu": "チュ", "cho": "チョ", "chi": "チ",
	"tsu": "ツ",
	"nya": "ニャ", "nyu": "ニュ", "nyo": "ニョ",
	"hya": "ヒャ", "hyu": "ヒュ", "hyo": "ヒョ",
	"mya": "ミャ", "myu": "ミュ", "myo": "ミョ",
	"rya": "リャ", "ryu": "リュ", "ryo": "リョ",
	"gya": "ギャ", "gyu": "ギュ", "gyo": "ギョ",
	"ja": "ジャ", "ju": "ジュ", "jo": "ジョ", "ji": "ジ",
	"bya": "ビャ", "byu": "ビュ", "byo": "ビョ",
	"pya": "ピャ", "pyu": "ピュ", "pyo": "ピョ",
	"fu": "フ", "fa": "ファ", "fi": "フィ", "fe": "フェ", "fo": "フォ",
	"va": "ヴァ", "vi": "ヴィ", "vu": "ヴ", "ve": "ヴェ", "vo": "ヴォ",
	"ka": "カ", "ki": "キ", "ku": "ク", "ke": "ケ", "ko": "コ",
	"sa": "サ", "si": "シ", "su": "ス", "se": "セ", "so": "ソ",
	"ta": "タ", "ti": "チ", "tu": "ツ", "te": "テ", "to": "ト",
	"na": "ナ", "ni": "ニ", "nu": "ヌ", "ne": "ネ", "no": "ノ",
	"ha": "ハ", "hi": "ヒ", "hu": "フ", "he": "ヘ", "ho": "ホ",
	"ma": "マ", "mi": "ミ", "mu": "ム", "me": "メ", "mo": "モ",
	"ya": "ヤ", "yu": "ユ", "yo": "ヨ",
	"ra": "ラ", "ri": "リ", "ru": "ル", "re": "レ", "ro": "ロ",
	"wa": "ワ", "wo": "ヲ",
	"ga": "ガ", "gi": "ギ", "gu": "グ", "ge": "ゲ", "go": "ゴ",
	"za": "ザ", "zi": "ジ", "zu": "ズ", "ze": "ゼ", "zo": "ゾ",
	"da": "ダ", "di": "ヂ", "du": "ヅ", "de": "デ", "do": "ド",
	"ba": "バ", "bi": "ビ", "bu": "ブ", "be": "ベ", "bo": "ボ",
	"pa": "パ", "pi": "ピ", "pu": "プ", "pe": "ペ", "po": "ポ",
	"a": "ア", "i": "イ", "u": "ウ", "e": "エ", "o": "オ",
}

// loneConsonants approximate a consonant with no vowel by its u-row kana.
var loneConsonants = map[byte]string{
	'k': "ク", 'c': "ク", 'q': "ク", 's': "ス", 't': "ト", 'h': "フ",
	'f': "フ", 'm': "ム", 'r': "ル", 'l': "ル", 'g': "グ", 'z': "ズ",
	'j': "ジ", 'd': "ド", 'b': "ブ", 'p': "プ", 'v': "ヴ", 'w': "ウ",
	'y': "イ", 'x': "クス",
}

// romajiToKatakana transliterates an ASCII run syllable by syllable. Spaces
// become the middle dot, trailing vowel-less n becomes ン, doubled consonants
// become the sokuon.
func romajiToKatakana(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	var out strings.Builder
	i := 0
	for i < len(s) {
		c := s[i]
		if c == ' ' || c == '-' || c == '\'' || c == '.' || c == ',' || c == '&' {
			if c == ' ' {
				out.WriteString("・")
			}
			i++
			continue
		}
		if c < 'a' || c > 'z' {
			out.WriteByte(c)
			i++
			continue
		}
		// Doubled consonant: っsound.
		if i+1 < len(s) && s[i+1] == c && c != 'n' && !isVowel(c) {
			out.WriteString("ッ")
			i++
			continue
		}
		matched := false
		for n := 3; n >= 1; n-- {
			if i+n > len(s) {
				continue
			}
			if kana, ok := romajiSyllables[s[i:i+n]]; ok {
				out.WriteString(kana)
				i += n
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		if c == 'n' {
			out.WriteString("ン")
			i++
			continue
		}
		if k, ok := loneConsonants[c]; ok {
			out.WriteString(k)
		}
		i++
	}
	return out.String()
}

func isVowel(c byte) bool {
	return c == 'a' || c == 'i' || c == 'u' || c == 'e' || c == 'o'
}
