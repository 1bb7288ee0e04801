// Package entity defines the domain models for the directory feature.
package entity

import "strings"

// CompanyRecord はDART企業コード一覧の1法人を表します。
// CorpCode は不変の一意キーで、StockCode が空でない場合のみ上場企業として扱います。
type CompanyRecord struct {
	CorpCode    string // 固有番号（8桁）
	CorpName    string // 会社名（ハングル）
	CorpEngName string // 英文会社名（任意）
	StockCode   string // 銘柄コード（6桁、非上場は空）
	ModifyDate  string // 最終変更日（YYYYMMDD、参考情報）

	// 検索用の小文字射影。独立した属性ではありません。
	CorpNameLower  string
	StockCodeLower string
}

// IsListed は銘柄コードを持つ（上場している）かどうかを返します。
func (c CompanyRecord) IsListed() bool {
	return c.StockCode != ""
}

// Normalize は検索用の小文字射影を再計算したコピーを返します。
func (c CompanyRecord) Normalize() CompanyRecord {
	c.CorpNameLower = strings.ToLower(c.CorpName)
	c.StockCodeLower = strings.ToLower(c.StockCode)
	return c
}

// CompanySummary は検索結果として呼び出し元に返す射影です。
type CompanySummary struct {
	CorpCode  string
	CorpName  string
	StockCode string
	IsListed  bool
}

// Summary はレコードを検索結果の射影に変換します。
func (c CompanyRecord) Summary() CompanySummary {
	return CompanySummary{
		CorpCode:  c.CorpCode,
		CorpName:  c.CorpName,
		StockCode: c.StockCode,
		IsListed:  c.IsListed(),
	}
}
