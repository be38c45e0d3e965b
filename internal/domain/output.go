package domain

// AtenaHeader is the fixed column set required by the destination label
// application. The order is a closed external contract: the writer must emit
// exactly these columns and never reorder or extend them.
var AtenaHeader = []string{
	"姓", "名", "姓かな", "名かな", "姓名", "姓名かな", "ミドルネーム", "ミドルネームかな", "敬称",
	"ニックネーム", "旧姓", "宛先", "自宅〒", "自宅住所1", "自宅住所2", "自宅住所3", "自宅電話",
	"自宅IM ID", "自宅E-mail", "自宅URL", "自宅Social",
	"会社〒", "会社住所1", "会社住所2", "会社住所3", "会社電話", "会社IM ID", "会社E-mail",
	"会社URL", "会社Social",
	"その他〒", "その他住所1", "その他住所2", "その他住所3", "その他電話", "その他IM ID",
	"その他E-mail", "その他URL", "その他Social",
	"会社名かな", "会社名", "部署名1", "部署名2", "役職名",
	"連名", "連名ふりがな", "連名敬称", "連名誕生日",
	"メモ1", "メモ2", "メモ3", "メモ4", "メモ5",
	"備考1", "備考2", "備考3", "誕生日", "性別", "血液型", "趣味", "性格",
}

// OutputRow is one fully assembled label record. Only the assembler creates
// values of this type; it is immutable once built.
type OutputRow struct {
	Surname      string
	GivenName    string
	SurnameKana  string
	GivenKana    string
	FullName     string
	FullNameKana string

	CompanyPostal   string
	CompanyAddress1 string
	CompanyAddress2 string
	CompanyAddress3 string
	CompanyTel      string
	CompanyEmail    string
	CompanyURL      string

	CompanyKana string
	Company     string
	Department1 string
	Department2 string
	Title       string

	Memo  [5]string
	Note1 string
}

// Columns renders the row in AtenaHeader order. Columns not populated by this
// conversion stay empty, matching the destination schema exactly.
func (r OutputRow) Columns() []string {
	cols := make([]string, len(AtenaHeader))

	cols[0] = r.Surname
	cols[1] = r.GivenName
	cols[2] = r.SurnameKana
	cols[3] = r.GivenKana
	cols[4] = r.FullName
	cols[5] = r.FullNameKana
	// 6..20: middle name, honorifics, nickname, home block — unused.
	cols[21] = r.CompanyPostal
	cols[22] = r.CompanyAddress1
	cols[23] = r.CompanyAddress2
	cols[24] = r.CompanyAddress3
	cols[25] = r.CompanyTel
	// 26: company IM ID — unused.
	cols[27] = r.CompanyEmail
	cols[28] = r.CompanyURL
	// 29..38: company social and "other" block — unused.
	cols[39] = r.CompanyKana
	cols[40] = r.Company
	cols[41] = r.Department1
	cols[42] = r.Department2
	cols[43] = r.Title
	// 44..47: joint-name block — unused.
	cols[48] = r.Memo[0]
	cols[49] = r.Memo[1]
	cols[50] = r.Memo[2]
	cols[51] = r.Memo[3]
	cols[52] = r.Memo[4]
	cols[53] = r.Note1
	// 54..60: notes 2-3, birthday, gender, blood type, hobby, character.
	return cols
}
