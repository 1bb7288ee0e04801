package entity

import "fmt"

// 統合対象の主要勘定科目（表示順）。
var (
	KeyBalanceSheetAccounts    = []string{"자산총계", "부채총계", "자본총계", "유동자산", "비유동자산", "유동부채", "비유동부채"}
	KeyIncomeStatementAccounts = []string{"매출액", "영업이익", "당기순이익(손실)", "법인세차감전 순이익"}
)

// Point は1年分の勘定科目の値です。該当がない年は Amount=0、Period/Date は空です。
type Point struct {
	Year   int
	Amount int64
	Period string
	Date   string
}

// Period は事業年度の期数表示です（例: "제55기 (2023)"）。
type Period struct {
	Year   int
	Period string
	Label  string
}

// AccountSeries は区分ごとの「勘定科目名 → 年次推移」です。
type AccountSeries struct {
	CFS map[string][]Point
	OFS map[string][]Point
}

// Get は区分に応じた推移を返します。
func (s AccountSeries) Get(t FsType) map[string][]Point {
	if t == FsSeparate {
		return s.OFS
	}
	return s.CFS
}

// IntegratedStatement は複数年度を統合した財務諸表です。
type IntegratedStatement struct {
	Years           []int
	Periods         []Period
	BalanceSheet    AccountSeries
	IncomeStatement AccountSeries
	Metadata        Metadata
	Detailed        []YearStatement
}

// NewPeriod は年度の期数表示を作成します。name が空なら "<year>년" を使います。
func NewPeriod(year int, name string) Period {
	if name == "" {
		n := fmt.Sprintf("%d년", year)
		return Period{Year: year, Period: n, Label: n}
	}
	return Period{Year: year, Period: name, Label: fmt.Sprintf("%s (%d)", name, year)}
}
