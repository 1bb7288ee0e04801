package entity

import "strings"

// RawCompanyRow は上流スナップショット（CSV / corpCode.xml）の1行です。
// 取り込み時に検証され、不正な行は InvalidInputRow として数えられます。
type RawCompanyRow struct {
	CorpCode    string
	CorpName    string
	CorpEngName string
	StockCode   string
	ModifyDate  string
}

// Trim は全フィールドの前後空白を除去したコピーを返します。
func (r RawCompanyRow) Trim() RawCompanyRow {
	return RawCompanyRow{
		CorpCode:    strings.TrimSpace(r.CorpCode),
		CorpName:    strings.TrimSpace(r.CorpName),
		CorpEngName: strings.TrimSpace(r.CorpEngName),
		StockCode:   strings.TrimSpace(r.StockCode),
		ModifyDate:  strings.TrimSpace(r.ModifyDate),
	}
}

// ToRecord は検証済みの行を正規化済みの CompanyRecord に変換します。
func (r RawCompanyRow) ToRecord() CompanyRecord {
	return CompanyRecord{
		CorpCode:    r.CorpCode,
		CorpName:    r.CorpName,
		CorpEngName: r.CorpEngName,
		StockCode:   r.StockCode,
		ModifyDate:  r.ModifyDate,
	}.Normalize()
}
