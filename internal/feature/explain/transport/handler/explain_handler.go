// Package handler はexplainフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Get2Core/fs-project/internal/feature/explain/domain"
	"github.com/Get2Core/fs-project/internal/feature/explain/domain/entity"
	"github.com/Get2Core/fs-project/internal/feature/explain/transport/http/dto"
	finentity "github.com/Get2Core/fs-project/internal/feature/financials/domain/entity"
)

// ExplainUsecase は財務諸表説明のユースケースインターフェースです。
type ExplainUsecase interface {
	Explain(ctx context.Context, req entity.Request) (*entity.Explanation, error)
}

// ExplainHandler は財務諸表説明のHTTPリクエストを処理します。
type ExplainHandler struct {
	uc ExplainUsecase
}

// NewExplainHandler は新しい ExplainHandler を生成します。
func NewExplainHandler(uc ExplainUsecase) *ExplainHandler {
	return &ExplainHandler{uc: uc}
}

// Explain は財務データをAIで平易に説明します。
//
// エンドポイント: POST /api/explain-financial-statement
// Content-Type: application/json
func (h *ExplainHandler) Explain(c *gin.Context) {
	var req dto.ExplainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("explain request rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "요청 데이터가 없습니다.", Type: "validation_error"})
		return
	}

	in := entity.Request{
		CompanyName: req.CompanyName,
		FsType:      finentity.ParseFsType(req.FsType),
	}
	if req.FinancialData != nil {
		in.Statement = req.FinancialData.ToEntity()
	}

	out, err := h.uc.Explain(c.Request.Context(), in)
	if err != nil {
		status, body := errorResponse(err)
		slog.Error("explanation failed", "error", err, "company", req.CompanyName, "status", status)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, dto.ExplainResponse{
		Success:     true,
		Explanation: out.Text,
		CompanyName: out.CompanyName,
		FsType:      out.FsTypeName,
		Summary:     out.Summary,
		RetryCount:  out.RetryCount,
	})
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var exhausted *domain.ExhaustedError
	switch {
	case errors.Is(err, domain.ErrNotConfigured):
		return http.StatusInternalServerError, dto.ErrorResponse{
			Error:  "Gemini API 키가 설정되지 않았습니다.",
			Detail: ".env 파일에 GEMINI_API_KEY를 추가해주세요.",
			Type:   "configuration_error",
		}
	case errors.Is(err, domain.ErrMissingFinancialData):
		return http.StatusBadRequest, dto.ErrorResponse{Error: "재무 데이터가 없습니다.", Type: "validation_error"}
	case errors.Is(err, domain.ErrAuthentication):
		return http.StatusUnauthorized, dto.ErrorResponse{
			Error:  "Gemini API 키가 유효하지 않습니다.",
			Detail: "API 키를 확인하고 다시 설정해주세요.",
			Type:   "authentication_error",
		}
	case errors.Is(err, domain.ErrQuotaExceeded):
		return http.StatusTooManyRequests, dto.ErrorResponse{
			Error:  "API 사용 한도를 초과했습니다.",
			Detail: "잠시 후 다시 시도해주세요.",
			Type:   "quota_error",
		}
	case errors.Is(err, domain.ErrSafetyBlocked):
		return http.StatusBadRequest, dto.ErrorResponse{
			Error:  "콘텐츠가 안전 필터에 의해 차단되었습니다.",
			Detail: "다른 데이터로 다시 시도해주세요.",
			Type:   "safety_error",
		}
	case errors.As(err, &exhausted):
		n := exhausted.Attempts
		return http.StatusInternalServerError, dto.ErrorResponse{
			Error:      "AI 서비스 오류",
			Detail:     fmt.Sprintf("%d번 시도했지만 실패했습니다. 잠시 후 다시 시도해주세요.", n),
			Type:       "api_error",
			RetryCount: &n,
		}
	}
	return http.StatusInternalServerError, dto.ErrorResponse{
		Error:  "AI 설명 생성 중 오류가 발생했습니다.",
		Detail: err.Error(),
		Type:   "internal_error",
	}
}
