package phone

import "github.com/cardbridge/atena/internal/domain"

// specialRange is a non-geographic numbering range. Special ranges are matched
// before geographic area codes because their prefixes collide with geographic
// ones (0990 premium vs 099 Kagoshima).
type specialRange struct {
	prefix string
	class  domain.PhoneClass
	total  int
}

// specialRanges in longest-prefix-first order.
var specialRanges = []specialRange{
	{"0120", domain.PhoneClassTollFree, 10},
	{"0800", domain.PhoneClassTollFree, 11},
	{"0570", domain.PhoneClassPremium, 10},
	{"0990", domain.PhoneClassPremium, 10},
	{"070", domain.PhoneClassMobile, 11},
	{"080", domain.PhoneClassMobile, 11},
	{"090", domain.PhoneClassMobile, 11},
	{"050", domain.PhoneClassIP, 11},
	{"020", domain.PhoneClassM2M, 11},
}

// geographicTotal is the digit count of every fixed-line domestic number.
const geographicTotal = 10

// areaCodes lists geographic area codes, leading zero included, grouped by
// length. Longest-prefix matching consults longer groups first, so 0422
// (武蔵野) wins over 042 (立川), and 04 only applies where no longer code
// matches.
var areaCodes = map[string]bool{
	// 2 digits
	"03": true, "04": true, "06": true,
	// 3 digits
	"011": true, "015": true, "017": true, "018": true, "019": true,
	"022": true, "023": true, "024": true, "025": true, "026": true,
	"027": true, "028": true, "029": true,
	"042": true, "043": true, "044": true, "045": true, "046": true,
	"047": true, "048": true, "049": true,
	"052": true, "053": true, "054": true, "055": true, "058": true,
	"059": true,
	"072": true, "073": true, "075": true, "076": true, "077": true,
	"078": true, "079": true,
	"082": true, "083": true, "084": true, "086": true, "087": true,
	"088": true, "089": true,
	"092": true, "093": true, "095": true, "096": true, "097": true,
	"098": true, "099": true,
	// 4 digits
	"0123": true, "0134": true, "0138": true, "0143": true, "0144": true,
	"0155": true, "0166": true, "0178": true, "0191": true, "0197": true,
	"0223": true, "0229": true, "0246": true, "0258": true, "0263": true,
	"0265": true, "0266": true, "0267": true, "0270": true, "0276": true,
	"0279": true, "0282": true, "0285": true, "0294": true,
	"0422": true, "0428": true, "0436": true, "0438": true, "0439": true,
	"0463": true, "0465": true, "0466": true, "0467": true, "0470": true,
	"0475": true, "0476": true, "0478": true, "0479": true, "0480": true,
	"0493": true, "0495": true,
	"0531": true, "0532": true, "0533": true, "0538": true, "0539": true,
	"0544": true, "0545": true, "0550": true, "0551": true, "0555": true,
	"0561": true, "0562": true, "0563": true, "0564": true, "0565": true,
	"0566": true, "0568": true, "0572": true, "0573": true, "0574": true,
	"0575": true, "0576": true, "0577": true, "0581": true, "0584": true,
	"0585": true, "0586": true, "0587": true, "0594": true, "0595": true,
	"0596": true, "0597": true, "0598": true, "0599": true,
	"0721": true, "0725": true, "0735": true, "0736": true, "0737": true,
	"0738": true, "0739": true, "0740": true, "0742": true, "0743": true,
	"0744": true, "0745": true, "0746": true, "0747": true, "0748": true,
	"0749": true,
	"0761": true, "0763": true, "0765": true, "0766": true, "0767": true,
	"0768": true, "0770": true, "0771": true, "0772": true, "0773": true,
	"0774": true, "0776": true, "0778": true, "0779": true,
	"0790": true, "0791": true, "0794": true, "0795": true, "0796": true,
	"0797": true, "0798": true, "0799": true,
	"0823": true, "0824": true, "0826": true, "0827": true, "0829": true,
	"0833": true, "0835": true, "0836": true, "0838": true,
	"0852": true, "0853": true, "0854": true, "0855": true, "0856": true,
	"0857": true, "0858": true, "0859": true,
	"0863": true, "0865": true, "0866": true, "0867": true, "0868": true,
	"0869": true,
	"0875": true, "0877": true, "0879": true,
	"0883": true, "0884": true, "0885": true, "0887": true, "0889": true,
	"0893": true, "0894": true, "0895": true, "0896": true, "0897": true,
	"0898": true,
	"0920": true, "0930": true, "0940": true, "0942": true, "0943": true,
	"0944": true, "0946": true, "0947": true, "0948": true, "0949": true,
	"0952": true, "0954": true, "0955": true, "0956": true, "0957": true,
	"0959": true,
	"0964": true, "0965": true, "0966": true, "0967": true, "0968": true,
	"0969": true,
	"0972": true, "0973": true, "0974": true, "0977": true, "0978": true,
	"0979": true,
	"0980": true, "0982": true, "0983": true, "0984": true, "0985": true,
	"0986": true, "0987": true,
	"0993": true, "0994": true, "0995": true, "0996": true, "0997": true,
	// 5 digits
	"01267": true, "01372": true, "01392": true, "01456": true,
	"01457": true, "01466": true, "01547": true, "01558": true,
	"01564": true, "01586": true, "01587": true, "01632": true,
	"01634": true, "01648": true, "01654": true, "01655": true,
	"01656": true, "01658": true,
	"04992": true, "04994": true,
	"05769": true, "05979": true,
	"07468": true,
	"08387": true, "08388": true, "08396": true, "08477": true,
	"08512": true, "08514": true,
	"09496": true, "09802": true, "09912": true, "09913": true,
	"09969": true,
}

// Table resolves numbering prefixes. The zero value is unusable; use
// DefaultTable or NewTable.
type Table struct {
	special   []specialRange
	area      map[string]bool
	maxPrefix int
}

// DefaultTable returns the table embedding the domestic numbering plan.
func DefaultTable() *Table {
	return &Table{special: specialRanges, area: areaCodes, maxPrefix: 5}
}

// NewTable builds a table from an explicit geographic code list, keeping the
// standard special ranges. Intended for tests and partial deployments.
func NewTable(codes []string) *Table {
	area := make(map[string]bool, len(codes))
	max := 0
	for _, c := range codes {
		area[c] = true
		if len(c) > max {
			max = len(c)
		}
	}
	return &Table{special: specialRanges, area: area, maxPrefix: max}
}

// matchSpecial returns the special range whose prefix matches, if any.
func (t *Table) matchSpecial(digits string) (specialRange, bool) {
	for _, r := range t.special {
		if len(digits) >= len(r.prefix) && digits[:len(r.prefix)] == r.prefix {
			return r, true
		}
	}
	return specialRange{}, false
}

// matchArea returns the longest geographic area code prefixing digits.
func (t *Table) matchArea(digits string) (string, bool) {
	limit := t.maxPrefix
	if limit > len(digits) {
		limit = len(digits)
	}
	for n := limit; n >= 2; n-- {
		if t.area[digits[:n]] {
			return digits[:n], true
		}
	}
	return "", false
}
