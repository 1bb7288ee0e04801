// Package dto defines the JSON shapes of the explanation API.
package dto

import findto "github.com/Get2Core/fs-project/internal/feature/financials/transport/http/dto"

// ExplainRequest は POST /api/explain-financial-statement のリクエストです。
// financial_data は GET /api/financial-statement のレスポンスそのものです。
type ExplainRequest struct {
	CompanyName   string                              `json:"company_name"`
	FsType        string                              `json:"fs_type"`
	FinancialData *findto.IntegratedStatementResponse `json:"financial_data"`
}

// ExplainResponse は生成された説明です。
type ExplainResponse struct {
	Success     bool   `json:"success"`
	Explanation string `json:"explanation"`
	CompanyName string `json:"company_name"`
	FsType      string `json:"fs_type"`
	Summary     string `json:"summary"`
	RetryCount  int    `json:"retry_count"`
}

// ErrorResponse は説明生成の失敗です。type でクライアントが分岐します。
type ErrorResponse struct {
	Error      string `json:"error"`
	Detail     string `json:"detail,omitempty"`
	Type       string `json:"type"`
	RetryCount *int   `json:"retry_count,omitempty"`
}
