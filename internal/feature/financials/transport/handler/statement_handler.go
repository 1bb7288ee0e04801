// Package handler はfinancialsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Get2Core/fs-project/internal/feature/financials/domain"
	"github.com/Get2Core/fs-project/internal/feature/financials/domain/entity"
	"github.com/Get2Core/fs-project/internal/feature/financials/transport/http/dto"
)

// StatementUsecase は複数年度財務諸表のユースケースインターフェースです。
type StatementUsecase interface {
	GetIntegrated(ctx context.Context, corpCode, bsnsYear, reprtCode string) (*entity.IntegratedStatement, error)
}

// StatementHandler は財務諸表のHTTPリクエストを処理します。
type StatementHandler struct {
	uc StatementUsecase
}

// NewStatementHandler は新しい StatementHandler を生成します。
func NewStatementHandler(uc StatementUsecase) *StatementHandler {
	return &StatementHandler{uc: uc}
}

// GetFinancialStatement は基準年度を含む5年度分の財務諸表を返します。
//
// エンドポイント例:
// GET /api/financial-statement?corp_code=00126380&bsns_year=2023&reprt_code=11011
func (h *StatementHandler) GetFinancialStatement(c *gin.Context) {
	corpCode := c.Query("corp_code")
	if corpCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "회사 고유번호가 필요합니다."})
		return
	}
	bsnsYear := c.Query("bsns_year")
	if bsnsYear == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "사업연도가 필요합니다."})
		return
	}

	st, err := h.uc.GetIntegrated(c.Request.Context(), corpCode, bsnsYear, c.DefaultQuery("reprt_code", entity.DefaultReportCode))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCorpCodeRequired),
			errors.Is(err, domain.ErrInvalidYear),
			errors.Is(err, domain.ErrInvalidReportCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrNoFinancialData):
			c.JSON(http.StatusBadRequest, gin.H{"error": "조회된 데이터가 없습니다. 다른 연도를 선택해주세요."})
		case errors.Is(err, domain.ErrNotConfigured):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "OpenDart API 키가 설정되지 않았습니다."})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.FromEntity(st))
}
