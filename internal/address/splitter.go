package address

import (
	"strings"

	"github.com/cardbridge/atena/internal/dict"
	"github.com/cardbridge/atena/internal/domain"
	"github.com/cardbridge/atena/internal/textnorm"
)

// insideSuffixes are in-facility designators that belong on the building line
// even when they trail the block numerals (NHK内, 大学構内 and the like).
var insideSuffixes = []string{"大学構内", "センター内", "工場内", "構内", "院内", "校内", "内"}

// roomSuffixes terminate a trailing room/floor designator.
var roomSuffixes = []string{"号室", "階", "F", "号"}

// Splitter decomposes normalized address strings against the dictionary set.
type Splitter struct {
	set *dict.Set
}

// NewSplitter returns a splitter bound to the given dictionary set.
func NewSplitter(set *dict.Set) *Splitter {
	return &Splitter{set: set}
}

// Split decomposes a raw address line (plus an optional second line) into an
// AddressRecord. It never fails: input that matches nothing lands in the
// record's Remainder field for manual review.
func (sp *Splitter) Split(raw, secondLine string) domain.AddressRecord {
	var rec domain.AddressRecord

	text, _ := textnorm.Normalize(raw, textnorm.General)
	second := normalizeSecondLine(secondLine)

	text, postal := extractPostal(text)
	rec.PostalCode = postal

	if text == "" && second == "" {
		return rec
	}

	// English-only addresses carry no Japanese administrative structure;
	// the whole string goes to the building line, as the label application
	// prints it verbatim there.
	if textnorm.IsASCIIOnly(text) {
		rec.Building = strings.TrimSpace(text)
		mergeSecondLine(&rec, second)
		return rec
	}

	rec.Prefecture, text = matchPrefecture(text)
	rec.City, text = matchCity(text)

	// Neither prefecture nor city matched: the line carries no recognizable
	// administrative structure, so it stays whole in Remainder for review.
	if rec.Prefecture == "" && rec.City == "" {
		rec.Remainder = strings.TrimSpace(text)
		mergeSecondLine(&rec, second)
		return rec
	}

	sp.scan(text, &rec)
	moveInsideSuffix(&rec)
	mergeSecondLine(&rec, second)
	return rec
}

// scan walks the post-administrative remainder with longest-match-first
// tokenization. Corporate terms take precedence over building words on ties
// because CorpTerms is consulted first at every position.
func (sp *Splitter) scan(text string, rec *domain.AddressRecord) {
	runes := []rune(text)

	var town, building, pending, remainder strings.Builder
	blockSeen := false
	inBuilding := false

	flushPending := func(to *strings.Builder) {
		if pending.Len() > 0 {
			to.WriteString(pending.String())
			pending.Reset()
		}
	}

	i := 0
	for i < len(runes) {
		if sp.set != nil {
			if _, n, ok := sp.set.CorpTerms.MatchAt(runes, i); ok {
				flushPending(&building)
				building.WriteString(string(runes[i : i+n]))
				inBuilding = true
				i += n
				continue
			}
			if _, n, ok := sp.set.BuildingWords.MatchAt(runes, i); ok {
				flushPending(&building)
				building.WriteString(string(runes[i : i+n]))
				inBuilding = true
				i += n
				continue
			}
		}

		if !inBuilding && isBlockRune(runes[i]) {
			run := readBlockRun(runes, i)
			if run > 0 {
				block := textnorm.NormalizeBlock(string(runes[i : i+run]))
				i += run

				switch {
				case !blockSeen:
					block, roomPart := splitTrailingUnit(block)
					town.WriteString(textnorm.WidenBlock(block))
					blockSeen = true
					if roomPart != "" {
						rec.Room = roomPart
						inBuilding = true
					}
				case pending.Len() > 0:
					// Text after the block followed by a second number is
					// the building-plus-room shape.
					flushPending(&building)
					inBuilding = true
					rec.Room = strings.ReplaceAll(block, "-", "")
				default:
					town.WriteString(textnorm.WidenBlock(block))
				}
				continue
			}
		}

		r := runes[i]
		i++
		if r == ' ' {
			continue
		}
		switch {
		case inBuilding:
			building.WriteRune(r)
		case blockSeen:
			pending.WriteRune(r)
		default:
			town.WriteRune(r)
		}
	}

	flushPending(&remainder)

	rec.TownBlock = town.String()
	rec.Building = strings.TrimRight(building.String(), "-‐‒–—―− 　")
	rec.Remainder = remainder.String()

	// Unmatched residue ending in an in-facility designator is a delivery
	// point, not noise: 東京大学構内, ＮＨＫ内.
	for _, suffix := range insideSuffixes {
		if strings.HasSuffix(rec.Remainder, suffix) {
			rec.Building += rec.Remainder
			rec.Remainder = ""
			break
		}
	}

	if rec.Room == "" {
		rec.Building, rec.Room = splitTrailingRoom(rec.Building)
	}
}

// isBlockRune reports whether the rune can start or continue a block-lot run.
func isBlockRune(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	if isDashRune(r) {
		return true
	}
	switch r {
	case '丁', '目', '番', '地', '号':
		return true
	}
	switch r {
	case '〇', '一', '二', '三', '四', '五', '六', '七', '八', '九', '十':
		return true
	}
	return false
}

func isDashRune(r rune) bool {
	switch r {
	case '-', '‐', '‒', '–', '—', '―', '−', 'ー':
		return true
	}
	return false
}

func readBlockRun(runes []rune, start int) int {
	n := 0
	for start+n < len(runes) && isBlockRune(runes[start+n]) {
		n++
	}
	// Trim a trailing bare separator back off the run (a dash that belongs
	// to a continuation marker, not the block).
	for n > 0 && !isDigitOrUnit(runes[start+n-1]) {
		n--
	}
	return n
}

func isDigitOrUnit(r rune) bool {
	return (r >= '0' && r <= '9') || r == '目' || r == '地' || r == '号'
}

// splitTrailingUnit peels the fourth-and-beyond segment off a block run;
// a 1-2-3-4 shaped run conventionally ends in a room number.
func splitTrailingUnit(block string) (string, string) {
	parts := strings.Split(block, "-")
	if len(parts) < 4 {
		return block, ""
	}
	head := strings.Join(parts[:3], "-")
	return head, strings.Join(parts[3:], "")
}

// splitTrailingRoom strips a trailing room/floor designator from the building
// name: a final digit run, optionally suffixed 号室/階/F.
func splitTrailingRoom(building string) (string, string) {
	s := strings.TrimSpace(building)
	if s == "" {
		return "", ""
	}

	suffix := ""
	for _, cand := range roomSuffixes {
		if strings.HasSuffix(s, cand) {
			suffix = cand
			s = strings.TrimSuffix(s, cand)
			break
		}
	}

	runes := []rune(s)
	d := len(runes)
	for d > 0 && runes[d-1] >= '0' && runes[d-1] <= '9' {
		d--
	}
	if d == len(runes) {
		// No digits: undo, nothing to strip.
		return building, ""
	}
	// A digit group hyphen-joined to preceding digits is a block segment
	// that belongs to the building line, not a room number.
	if d >= 2 && isDashRune(runes[d-1]) && runes[d-2] >= '0' && runes[d-2] <= '9' {
		return building, ""
	}
	head := strings.TrimRight(string(runes[:d]), " -")
	if head == "" {
		return building, ""
	}
	return head, string(runes[d:]) + suffix
}

// moveInsideSuffix relocates in-facility designators from the town line onto
// the building line.
func moveInsideSuffix(rec *domain.AddressRecord) {
	for _, suffix := range insideSuffixes {
		if strings.HasSuffix(rec.TownBlock, suffix) && len(rec.TownBlock) > len(suffix) {
			rec.TownBlock = strings.TrimSuffix(rec.TownBlock, suffix)
			rec.Building = suffix + rec.Building
			return
		}
	}
}

// normalizeSecondLine strips the conventional continuation markers (leading
// dashes and whitespace) that carry no semantic content.
func normalizeSecondLine(s string) string {
	t, _ := textnorm.Normalize(s, textnorm.General)
	return strings.TrimLeft(t, "-‐‒–—―−ー 　")
}

// mergeSecondLine folds the second address line into building/room.
func mergeSecondLine(rec *domain.AddressRecord, second string) {
	if second == "" {
		return
	}
	if rec.Room == "" && looksLikeRoom(second) {
		rec.Room = second
		return
	}
	if rec.Building == "" {
		rec.Building = second
		return
	}
	rec.Building += second
}

func looksLikeRoom(s string) bool {
	runes := []rune(s)
	digits := 0
	for i, r := range runes {
		if r >= '0' && r <= '9' {
			digits++
			continue
		}
		// Allow a trailing designator after the digits.
		rest := string(runes[i:])
		for _, cand := range roomSuffixes {
			if rest == cand {
				return digits > 0
			}
		}
		return false
	}
	return digits > 0
}

// extractPostal strips a leading postal code of the NNN-NNNN or NNNNNNN shape,
// returning the remaining text and the seven digits.
func extractPostal(s string) (rest, postal string) {
	t := strings.TrimLeft(s, "〒 ")
	runes := []rune(t)

	digits := make([]rune, 0, 7)
	i := 0
	for i < len(runes) && len(digits) < 7 {
		r := runes[i]
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, r)
		case r == '-' && len(digits) == 3:
			// The conventional hyphen after the third digit.
		default:
			return s, ""
		}
		i++
	}
	if len(digits) != 7 {
		return s, ""
	}
	code, err := textnorm.NormalizePostcode(string(digits))
	if err != nil {
		return s, ""
	}
	return strings.TrimLeft(string(runes[i:]), " "), code
}
