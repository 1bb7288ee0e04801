// Package sqlite はディレクトリストアのSQLite実装（世代の構築・公開・読み取り）を提供します。
package sqlite

import "github.com/Get2Core/fs-project/internal/feature/directory/domain/entity"

// CompanyModel は companies テーブルの行です。
// インデックスは一括ロード後に indexStatements でまとめて作成します。
type CompanyModel struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	CorpCode       string `gorm:"size:16;not null"`
	CorpName       string `gorm:"size:255;not null"`
	CorpEngName    string `gorm:"size:255;not null;default:''"`
	StockCode      string `gorm:"size:16;not null;default:''"`
	ModifyDate     string `gorm:"size:8;not null;default:''"`
	CorpNameLower  string `gorm:"size:255;not null"`
	StockCodeLower string `gorm:"size:16;not null;default:''"`
}

func (CompanyModel) TableName() string {
	return "companies"
}

// MetaModel はストアファイル自身に埋め込む世代情報です。
type MetaModel struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string `gorm:"not null"`
}

func (MetaModel) TableName() string {
	return "directory_meta"
}

const (
	metaGeneration = "generation"
	metaBuiltAt    = "built_at"
)

// indexStatements は検索パターンに合わせたインデックス定義です。
var indexStatements = []string{
	"CREATE UNIQUE INDEX idx_companies_corp_code ON companies(corp_code)",
	"CREATE INDEX idx_companies_stock_code ON companies(stock_code)",
	"CREATE INDEX idx_companies_corp_name_lower ON companies(corp_name_lower)",
	"CREATE INDEX idx_companies_stock_code_lower ON companies(stock_code_lower)",
	"CREATE INDEX idx_companies_listed ON companies(stock_code) WHERE stock_code <> ''",
}

func toModel(e entity.CompanyRecord) CompanyModel {
	return CompanyModel{
		CorpCode:       e.CorpCode,
		CorpName:       e.CorpName,
		CorpEngName:    e.CorpEngName,
		StockCode:      e.StockCode,
		ModifyDate:     e.ModifyDate,
		CorpNameLower:  e.CorpNameLower,
		StockCodeLower: e.StockCodeLower,
	}
}

func toEntity(m CompanyModel) entity.CompanyRecord {
	return entity.CompanyRecord{
		CorpCode:       m.CorpCode,
		CorpName:       m.CorpName,
		CorpEngName:    m.CorpEngName,
		StockCode:      m.StockCode,
		ModifyDate:     m.ModifyDate,
		CorpNameLower:  m.CorpNameLower,
		StockCodeLower: m.StockCodeLower,
	}
}
