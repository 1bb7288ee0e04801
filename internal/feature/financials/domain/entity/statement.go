// Package entity defines the financial statement models.
package entity

import (
	"strconv"
	"strings"
)

// AccountRow はOpenDART 단일회사 주요계정 APIの1行（加工前）です。
type AccountRow struct {
	RceptNo         string
	BsnsYear        string
	CorpCode        string
	StockCode       string
	ReprtCode       string
	AccountNm       string
	FsDiv           string // CFS: 連結, OFS: 個別
	FsNm            string
	SjDiv           string // BS: 財務状態表, IS: 損益計算書
	SjNm            string
	ThstrmNm        string
	ThstrmDt        string
	ThstrmAmount    string
	FrmtrmNm        string
	FrmtrmDt        string
	FrmtrmAmount    string
	BfefrmtrmNm     string
	BfefrmtrmDt     string
	BfefrmtrmAmount string
	Ord             string
	Currency        string
}

// AccountItem は金額を数値化した勘定科目です。
type AccountItem struct {
	AccountNm       string
	ThstrmNm        string
	ThstrmDt        string
	ThstrmAmount    int64
	FrmtrmNm        string
	FrmtrmDt        string
	FrmtrmAmount    int64
	BfefrmtrmNm     string
	BfefrmtrmDt     string
	BfefrmtrmAmount int64
	Ord             string
	Currency        string
}

// FsType は連結（cfs）/ 個別（ofs）の区分です。
type FsType string

const (
	FsConsolidated FsType = "cfs"
	FsSeparate     FsType = "ofs"
)

// ParseFsType は文字列を FsType に変換します。ofs 以外はすべて cfs として扱います。
func ParseFsType(s string) FsType {
	if strings.EqualFold(strings.TrimSpace(s), "ofs") {
		return FsSeparate
	}
	return FsConsolidated
}

// DisplayName は区分の韓国語表示名です。
func (t FsType) DisplayName() string {
	if t == FsSeparate {
		return "개별재무제표"
	}
	return "연결재무제표"
}

// StatementPair は連結・個別それぞれの勘定科目一覧です。
type StatementPair struct {
	CFS []AccountItem
	OFS []AccountItem
}

// Get は区分に応じた一覧を返します。
func (p StatementPair) Get(t FsType) []AccountItem {
	if t == FsSeparate {
		return p.OFS
	}
	return p.CFS
}

// Metadata は報告書の識別情報です。
type Metadata struct {
	RceptNo   string
	BsnsYear  string
	CorpCode  string
	StockCode string
	ReprtCode string
	ReprtName string
}

// YearStatement は1事業年度分の加工済み財務諸表です。
type YearStatement struct {
	Year            int
	BalanceSheet    StatementPair
	IncomeStatement StatementPair
	Metadata        Metadata
}

// ParseAmount は "9,999,999" 形式の金額を数値に変換します。空・"-"・変換不能は0です。
func ParseAmount(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

var reportNames = map[string]string{
	"11011": "사업보고서",
	"11012": "반기보고서",
	"11013": "1분기보고서",
	"11014": "3분기보고서",
}

// DefaultReportCode は事業報告書です。
const DefaultReportCode = "11011"

// ReportName は報告書コードの名称を返します。未知のコードは "알 수 없음" です。
func ReportName(code string) string {
	if n, ok := reportNames[code]; ok {
		return n
	}
	return "알 수 없음"
}

// IsValidReportCode は OpenDART が受け付ける報告書コードかどうかを返します。
func IsValidReportCode(code string) bool {
	_, ok := reportNames[code]
	return ok
}
