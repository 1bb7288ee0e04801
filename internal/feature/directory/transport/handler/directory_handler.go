// Package handler はdirectoryフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Get2Core/fs-project/internal/feature/directory/domain"
	"github.com/Get2Core/fs-project/internal/feature/directory/domain/entity"
	"github.com/Get2Core/fs-project/internal/feature/directory/transport/http/dto"
	"github.com/Get2Core/fs-project/internal/feature/directory/usecase"
)

const (
	DefaultSearchLimit = 50
	MaxSearchLimit     = 100
	MinQueryRunes      = usecase.MinQueryRunes

	msgNotReady = "search index not ready"
)

// SearchUsecase は企業ディレクトリの読み取りユースケースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SearchUsecase interface {
	Search(ctx context.Context, query string, limit int) ([]entity.CompanySummary, error)
	GetByCorpCode(ctx context.Context, corpCode string) (*entity.CompanyRecord, error)
	GetByStockCode(ctx context.Context, stockCode string) (*entity.CompanyRecord, error)
	Stats(ctx context.Context) (entity.DirectoryStats, error)
}

// AdminUsecase は運用者向け操作のユースケースです。
type AdminUsecase interface {
	Reload(ctx context.Context) (entity.DirectoryStats, error)
	Rebuild(ctx context.Context) (entity.BuildReport, error)
}

// Integrations は外部APIキーの設定状況です（ヘルスチェック用）。
type Integrations struct {
	OpenDART bool
	Gemini   bool
}

// DirectoryHandler は企業ディレクトリのHTTPリクエストを処理します。
type DirectoryHandler struct {
	uc           SearchUsecase
	admin        AdminUsecase
	integrations Integrations
}

// NewDirectoryHandler は新しい DirectoryHandler を生成します。
func NewDirectoryHandler(uc SearchUsecase, admin AdminUsecase, integrations Integrations) *DirectoryHandler {
	return &DirectoryHandler{uc: uc, admin: admin, integrations: integrations}
}

var printer = message.NewPrinter(language.Korean)

// Search は会社名・銘柄コードで企業を検索します。
//
// エンドポイント例:
// GET /api/search?q=삼성&limit=20
func (h *DirectoryHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "검색어를 입력해주세요."})
		return
	}
	if utf8.RuneCountInString(q) < MinQueryRunes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "검색어는 2글자 이상 입력해주세요."})
		return
	}

	res, err := h.uc.Search(c.Request.Context(), q, parseLimit(c.Query("limit")))
	if err != nil {
		h.storeError(c, err, "search failed")
		return
	}
	c.JSON(http.StatusOK, dto.FromSummaries(res))
}

// parseLimit は limit を 1..MaxSearchLimit に丸めます。未指定・不正値は既定値です。
func parseLimit(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return DefaultSearchLimit
	}
	return min(max(n, 1), MaxSearchLimit)
}

// GetByCorpCode は固有番号で企業を1件返します。
//
// エンドポイント: GET /api/companies/:corp_code
func (h *DirectoryHandler) GetByCorpCode(c *gin.Context) {
	rec, err := h.uc.GetByCorpCode(c.Request.Context(), c.Param("corp_code"))
	h.company(c, rec, err)
}

// GetByStockCode は銘柄コードで企業を1件返します。
//
// エンドポイント: GET /api/companies/stock/:stock_code
func (h *DirectoryHandler) GetByStockCode(c *gin.Context) {
	rec, err := h.uc.GetByStockCode(c.Request.Context(), c.Param("stock_code"))
	h.company(c, rec, err)
}

func (h *DirectoryHandler) company(c *gin.Context, rec *entity.CompanyRecord, err error) {
	if errors.Is(err, domain.ErrCompanyNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "회사를 찾을 수 없습니다."})
		return
	}
	if err != nil {
		h.storeError(c, err, "company lookup failed")
		return
	}
	c.JSON(http.StatusOK, dto.FromRecord(rec))
}

// Stats は公開中の世代の統計を返します。
//
// エンドポイント: GET /api/directory/stats
func (h *DirectoryHandler) Stats(c *gin.Context) {
	stats, err := h.uc.Stats(c.Request.Context())
	if err != nil {
		h.storeError(c, err, "stats failed")
		return
	}
	c.JSON(http.StatusOK, dto.FromStats(stats))
}

// Health はディレクトリと外部APIの設定状況を返します。常に200です。
//
// エンドポイント: GET /api/health
func (h *DirectoryHandler) Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	stats, err := h.uc.Stats(c.Request.Context())
	resp := dto.HealthResponse{
		Status:           "ok",
		CompaniesLoaded:  stats.Total,
		Generation:       stats.Generation,
		APIKeyConfigured: h.integrations.OpenDART,
		GeminiConfigured: h.integrations.Gemini,
		DatabaseExists:   stats.Available,
		DatabasePath:     stats.Path,
	}
	if err != nil {
		resp.Status = "error"
		resp.Error = msgNotReady
	}
	if !h.integrations.OpenDART {
		resp.Warning = "OPENDART_API_KEY가 설정되지 않았습니다."
	}
	c.JSON(http.StatusOK, resp)
}

// Reload はストアファイルを開き直します。
//
// エンドポイント: POST /api/reload-data（管理者のみ）
func (h *DirectoryHandler) Reload(c *gin.Context) {
	stats, err := h.admin.Reload(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ReloadResponse{Success: false, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ReloadResponse{
		Success:         true,
		Message:         printer.Sprintf("%d개의 회사 정보가 준비되었습니다.", stats.Total),
		CompaniesLoaded: stats.Total,
		Generation:      stats.Generation,
	})
}

// Rebuild は上流から企業コード一覧を取得してディレクトリを再構築します。
//
// エンドポイント: POST /api/admin/directory/rebuild（管理者のみ）
func (h *DirectoryHandler) Rebuild(c *gin.Context) {
	report, err := h.admin.Rebuild(c.Request.Context())
	if err != nil {
		var wf *domain.WriteFailureError
		switch {
		case errors.Is(err, domain.ErrBuildInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrEmptyInput):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.As(err, &wf):
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			slog.Error("directory rebuild failed", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, dto.FromReport(report))
}

// storeError は未構築のストアを503、それ以外を500として返します。
func (h *DirectoryHandler) storeError(c *gin.Context, err error, msg string) {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": msgNotReady})
		return
	}
	slog.Error(msg, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "검색 중 오류가 발생했습니다."})
}
