// Package entity defines the models of the financial statement explanation.
package entity

import finentity "github.com/Get2Core/fs-project/internal/feature/financials/domain/entity"

// DefaultCompanyName は会社名が指定されなかった場合の呼称です。
const DefaultCompanyName = "회사"

// Request は説明生成の入力です。
type Request struct {
	CompanyName string
	FsType      finentity.FsType
	Statement   finentity.IntegratedStatement
}

// Explanation はAIが生成した財務諸表の説明です。
type Explanation struct {
	Text        string
	CompanyName string
	FsTypeName  string // 연결재무제표 / 개별재무제표
	Summary     string // プロンプトに渡した要約（先頭500文字）
	RetryCount  int
}
