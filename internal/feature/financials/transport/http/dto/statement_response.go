// Package dto defines the JSON shapes of the financial statement API.
package dto

import "github.com/Get2Core/fs-project/internal/feature/financials/domain/entity"

// PointResponse は勘定科目の1年分の値です。
type PointResponse struct {
	Year   int    `json:"year"`
	Amount int64  `json:"amount"`
	Period string `json:"period"`
	Date   string `json:"date"`
}

// PeriodResponse は期数表示です。
type PeriodResponse struct {
	Year   int    `json:"year"`
	Period string `json:"period"`
	Label  string `json:"label"`
}

// SeriesResponse は区分（cfs/ofs）ごとの勘定科目推移です。
type SeriesResponse struct {
	CFS map[string][]PointResponse `json:"cfs"`
	OFS map[string][]PointResponse `json:"ofs"`
}

// MetadataResponse は報告書の識別情報です。
type MetadataResponse struct {
	RceptNo   string `json:"rcept_no"`
	BsnsYear  string `json:"bsns_year"`
	CorpCode  string `json:"corp_code"`
	StockCode string `json:"stock_code"`
	ReprtCode string `json:"reprt_code"`
	ReprtName string `json:"reprt_name"`
}

// AccountItemResponse は詳細テーブル用の勘定科目です。
type AccountItemResponse struct {
	AccountNm       string `json:"account_nm"`
	ThstrmNm        string `json:"thstrm_nm"`
	ThstrmDt        string `json:"thstrm_dt"`
	ThstrmAmount    int64  `json:"thstrm_amount"`
	FrmtrmNm        string `json:"frmtrm_nm"`
	FrmtrmDt        string `json:"frmtrm_dt"`
	FrmtrmAmount    int64  `json:"frmtrm_amount"`
	BfefrmtrmNm     string `json:"bfefrmtrm_nm"`
	BfefrmtrmDt     string `json:"bfefrmtrm_dt"`
	BfefrmtrmAmount int64  `json:"bfefrmtrm_amount"`
	Ord             string `json:"ord"`
	Currency        string `json:"currency"`
}

// StatementPairResponse は連結・個別の勘定科目一覧です。
type StatementPairResponse struct {
	CFS []AccountItemResponse `json:"cfs"`
	OFS []AccountItemResponse `json:"ofs"`
}

// YearStatementResponse は1年度分の詳細データです。
type YearStatementResponse struct {
	Year            int                   `json:"year"`
	BalanceSheet    StatementPairResponse `json:"balance_sheet"`
	IncomeStatement StatementPairResponse `json:"income_statement"`
	Metadata        MetadataResponse      `json:"metadata"`
}

// IntegratedStatementResponse は GET /api/financial-statement のレスポンスです。
// POST /api/explain-financial-statement の financial_data としてそのまま送り返されます。
type IntegratedStatementResponse struct {
	Years           []int                   `json:"years"`
	Periods         []PeriodResponse        `json:"periods"`
	BalanceSheet    SeriesResponse          `json:"balance_sheet"`
	IncomeStatement SeriesResponse          `json:"income_statement"`
	Metadata        MetadataResponse        `json:"metadata"`
	DetailedData    []YearStatementResponse `json:"detailed_data,omitempty"`
}

// FromEntity はエンティティをレスポンスに変換します。
func FromEntity(s *entity.IntegratedStatement) IntegratedStatementResponse {
	out := IntegratedStatementResponse{
		Years:           append([]int{}, s.Years...),
		Periods:         make([]PeriodResponse, 0, len(s.Periods)),
		BalanceSheet:    seriesFromEntity(s.BalanceSheet),
		IncomeStatement: seriesFromEntity(s.IncomeStatement),
		Metadata:        MetadataResponse(s.Metadata),
		DetailedData:    make([]YearStatementResponse, 0, len(s.Detailed)),
	}
	for _, p := range s.Periods {
		out.Periods = append(out.Periods, PeriodResponse(p))
	}
	for _, ys := range s.Detailed {
		out.DetailedData = append(out.DetailedData, YearStatementResponse{
			Year:            ys.Year,
			BalanceSheet:    pairFromEntity(ys.BalanceSheet),
			IncomeStatement: pairFromEntity(ys.IncomeStatement),
			Metadata:        MetadataResponse(ys.Metadata),
		})
	}
	return out
}

// ToEntity はクライアントから送り返されたデータをエンティティに戻します。
// 詳細データは要約に使わないため変換しません。
func (r IntegratedStatementResponse) ToEntity() entity.IntegratedStatement {
	out := entity.IntegratedStatement{
		Years:           append([]int{}, r.Years...),
		Periods:         make([]entity.Period, 0, len(r.Periods)),
		BalanceSheet:    seriesToEntity(r.BalanceSheet),
		IncomeStatement: seriesToEntity(r.IncomeStatement),
		Metadata:        entity.Metadata(r.Metadata),
	}
	for _, p := range r.Periods {
		out.Periods = append(out.Periods, entity.Period(p))
	}
	return out
}

func seriesFromEntity(s entity.AccountSeries) SeriesResponse {
	return SeriesResponse{CFS: pointsFromEntity(s.CFS), OFS: pointsFromEntity(s.OFS)}
}

func pointsFromEntity(m map[string][]entity.Point) map[string][]PointResponse {
	out := make(map[string][]PointResponse, len(m))
	for account, points := range m {
		ps := make([]PointResponse, 0, len(points))
		for _, p := range points {
			ps = append(ps, PointResponse(p))
		}
		out[account] = ps
	}
	return out
}

func seriesToEntity(s SeriesResponse) entity.AccountSeries {
	return entity.AccountSeries{CFS: pointsToEntity(s.CFS), OFS: pointsToEntity(s.OFS)}
}

func pointsToEntity(m map[string][]PointResponse) map[string][]entity.Point {
	out := make(map[string][]entity.Point, len(m))
	for account, points := range m {
		ps := make([]entity.Point, 0, len(points))
		for _, p := range points {
			ps = append(ps, entity.Point(p))
		}
		out[account] = ps
	}
	return out
}

func pairFromEntity(p entity.StatementPair) StatementPairResponse {
	return StatementPairResponse{CFS: itemsFromEntity(p.CFS), OFS: itemsFromEntity(p.OFS)}
}

func itemsFromEntity(items []entity.AccountItem) []AccountItemResponse {
	out := make([]AccountItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, AccountItemResponse(it))
	}
	return out
}
