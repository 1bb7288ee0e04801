// Package dto defines the JSON shapes of the directory API.
package dto

import (
	"time"

	"github.com/Get2Core/fs-project/internal/feature/directory/domain/entity"
)

// CompanySummaryResponse は検索結果1件です。非上場企業の stock_code は null です。
type CompanySummaryResponse struct {
	CorpCode  string  `json:"corp_code"`
	CorpName  string  `json:"corp_name"`
	StockCode *string `json:"stock_code"`
	IsListed  bool    `json:"is_listed"`
}

// CompanyResponse は完全一致検索の結果です。
type CompanyResponse struct {
	CorpCode    string  `json:"corp_code"`
	CorpName    string  `json:"corp_name"`
	CorpEngName string  `json:"corp_eng_name"`
	StockCode   *string `json:"stock_code"`
	ModifyDate  string  `json:"modify_date"`
	IsListed    bool    `json:"is_listed"`
}

// StatsResponse は公開中のディレクトリの統計です。
type StatsResponse struct {
	Generation     string    `json:"generation"`
	BuiltAt        string    `json:"built_at"`
	Path           string    `json:"path"`
	Total          int64     `json:"total"`
	Listed         int64     `json:"listed"`
	Unlisted       int64     `json:"unlisted"`
	StoreSizeBytes int64     `json:"store_size_bytes"`
	LoadedAt       time.Time `json:"loaded_at"`
}

// HealthResponse は GET /api/health のレスポンスです。
type HealthResponse struct {
	Status           string `json:"status"` // ok | error
	CompaniesLoaded  int64  `json:"companies_loaded"`
	Generation       string `json:"generation,omitempty"`
	APIKeyConfigured bool   `json:"api_key_configured"`
	GeminiConfigured bool   `json:"gemini_configured"`
	DatabaseExists   bool   `json:"database_exists"`
	DatabasePath     string `json:"database_path"`
	Error            string `json:"error,omitempty"`
	Warning          string `json:"warning,omitempty"`
}

// ReloadResponse は POST /api/reload-data のレスポンスです。
type ReloadResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	CompaniesLoaded int64  `json:"companies_loaded"`
	Generation      string `json:"generation,omitempty"`
}

// BuildReportResponse は再構築の結果です。
type BuildReportResponse struct {
	Generation         string `json:"generation"`
	Path               string `json:"path"`
	TotalRecords       int    `json:"total_records"`
	Rejected           int    `json:"rejected"`
	DuplicatesResolved int    `json:"duplicates_resolved"`
	StockCodeConflicts int    `json:"stock_code_conflicts"`
	Listed             int    `json:"listed"`
	Unlisted           int    `json:"unlisted"`
	StoreSizeBytes     int64  `json:"store_size_bytes"`
	DurationMillis     int64  `json:"duration_ms"`
}

func stockCode(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// FromSummaries は検索結果をレスポンスに変換します。
func FromSummaries(in []entity.CompanySummary) []CompanySummaryResponse {
	out := make([]CompanySummaryResponse, 0, len(in))
	for _, s := range in {
		out = append(out, CompanySummaryResponse{
			CorpCode:  s.CorpCode,
			CorpName:  s.CorpName,
			StockCode: stockCode(s.StockCode),
			IsListed:  s.IsListed,
		})
	}
	return out
}

// FromRecord は企業レコードをレスポンスに変換します。
func FromRecord(r *entity.CompanyRecord) CompanyResponse {
	return CompanyResponse{
		CorpCode:    r.CorpCode,
		CorpName:    r.CorpName,
		CorpEngName: r.CorpEngName,
		StockCode:   stockCode(r.StockCode),
		ModifyDate:  r.ModifyDate,
		IsListed:    r.IsListed(),
	}
}

// FromStats は統計をレスポンスに変換します。
func FromStats(s entity.DirectoryStats) StatsResponse {
	return StatsResponse{
		Generation:     s.Generation,
		BuiltAt:        s.BuiltAt,
		Path:           s.Path,
		Total:          s.Total,
		Listed:         s.Listed,
		Unlisted:       s.Unlisted,
		StoreSizeBytes: s.StoreSizeBytes,
		LoadedAt:       s.LoadedAt,
	}
}

// FromReport はビルドレポートをレスポンスに変換します。
func FromReport(r entity.BuildReport) BuildReportResponse {
	return BuildReportResponse{
		Generation:         r.Generation,
		Path:               r.Path,
		TotalRecords:       r.TotalRecords,
		Rejected:           r.Rejected,
		DuplicatesResolved: r.DuplicatesResolved,
		StockCodeConflicts: r.StockCodeConflicts,
		Listed:             r.Listed,
		Unlisted:           r.Unlisted,
		StoreSizeBytes:     r.StoreSizeBytes,
		DurationMillis:     r.Duration.Milliseconds(),
	}
}
