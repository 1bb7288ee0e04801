package entity

import "strings"

// Tier は検索結果の関連度区分です。値が小さいほど優先されます。
type Tier int

const (
	TierExactName Tier = iota + 1
	TierNamePrefix
	TierExactStockCode
	TierStockCodePrefix
	TierSubstring
	// TierNone はどの条件にも一致しないことを表します。
	TierNone
)

// String はログ出力用の名前を返します。
func (t Tier) String() string {
	switch t {
	case TierExactName:
		return "exact_name"
	case TierNamePrefix:
		return "name_prefix"
	case TierExactStockCode:
		return "exact_stock_code"
	case TierStockCodePrefix:
		return "stock_code_prefix"
	case TierSubstring:
		return "substring"
	default:
		return "none"
	}
}

// RankTier は小文字化済みクエリに対するレコードの最良の Tier を返します。
// 複数の条件に一致する場合は最も小さい Tier になります。
func RankTier(query string, rec CompanyRecord) Tier {
	name, code := rec.CorpNameLower, rec.StockCodeLower
	switch {
	case name == query:
		return TierExactName
	case strings.HasPrefix(name, query):
		return TierNamePrefix
	case code != "" && code == query:
		return TierExactStockCode
	case code != "" && strings.HasPrefix(code, query):
		return TierStockCodePrefix
	case strings.Contains(name, query), code != "" && strings.Contains(code, query):
		return TierSubstring
	default:
		return TierNone
	}
}
