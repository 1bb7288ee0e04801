package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Get2Core/fs-project/internal/feature/financials/domain"
	"github.com/Get2Core/fs-project/internal/feature/financials/domain/entity"
	"github.com/Get2Core/fs-project/internal/feature/financials/transport/handler"
	"github.com/Get2Core/fs-project/internal/feature/financials/transport/http/dto"
)

// mockStatementUsecase は StatementUsecase インターフェースのモック実装です。
type mockStatementUsecase struct {
	GetIntegratedFunc func(ctx context.Context, corpCode, bsnsYear, reprtCode string) (*entity.IntegratedStatement, error)
}

func (m *mockStatementUsecase) GetIntegrated(ctx context.Context, corpCode, bsnsYear, reprtCode string) (*entity.IntegratedStatement, error) {
	return m.GetIntegratedFunc(ctx, corpCode, bsnsYear, reprtCode)
}

func sampleStatement() *entity.IntegratedStatement {
	return &entity.IntegratedStatement{
		Years:   []int{2023},
		Periods: []entity.Period{entity.NewPeriod(2023, "제 55 기")},
		BalanceSheet: entity.AccountSeries{
			CFS: map[string][]entity.Point{"자산총계": {{Year: 2023, Amount: 1000, Period: "제 55 기", Date: "2023.12.31 현재"}}},
			OFS: map[string][]entity.Point{"자산총계": {{Year: 2023}}},
		},
		IncomeStatement: entity.AccountSeries{
			CFS: map[string][]entity.Point{},
			OFS: map[string][]entity.Point{},
		},
		Metadata: entity.Metadata{RceptNo: "r1", BsnsYear: "2023", CorpCode: "00126380", ReprtCode: "11011", ReprtName: "사업보고서"},
		Detailed: []entity.YearStatement{{
			Year:         2023,
			BalanceSheet: entity.StatementPair{CFS: []entity.AccountItem{{AccountNm: "자산총계", ThstrmAmount: 1000}}},
		}},
	}
}

// TestStatementHandler_GetFinancialStatement はクエリ検証とエラーのステータス変換を検証します。
func TestStatementHandler_GetFinancialStatement(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		mock           func(ctx context.Context, corpCode, bsnsYear, reprtCode string) (*entity.IntegratedStatement, error)
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "missing corp_code",
			url:            "/api/financial-statement?bsns_year=2023",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "회사 고유번호가 필요합니다.",
		},
		{
			name:           "missing bsns_year",
			url:            "/api/financial-statement?corp_code=00126380",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "사업연도가 필요합니다.",
		},
		{
			name: "invalid report code",
			url:  "/api/financial-statement?corp_code=00126380&bsns_year=2023&reprt_code=1",
			mock: func(context.Context, string, string, string) (*entity.IntegratedStatement, error) {
				return nil, domain.ErrInvalidReportCode
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  domain.ErrInvalidReportCode.Error(),
		},
		{
			name: "no data",
			url:  "/api/financial-statement?corp_code=00126380&bsns_year=2023",
			mock: func(context.Context, string, string, string) (*entity.IntegratedStatement, error) {
				return nil, domain.ErrNoFinancialData
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "조회된 데이터가 없습니다. 다른 연도를 선택해주세요.",
		},
		{
			name: "api key missing",
			url:  "/api/financial-statement?corp_code=00126380&bsns_year=2023",
			mock: func(context.Context, string, string, string) (*entity.IntegratedStatement, error) {
				return nil, domain.ErrNotConfigured
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "OpenDart API 키가 설정되지 않았습니다.",
		},
		{
			name: "upstream failure",
			url:  "/api/financial-statement?corp_code=00126380&bsns_year=2023",
			mock: func(context.Context, string, string, string) (*entity.IntegratedStatement, error) {
				return nil, errors.New("connection reset")
			},
			expectedStatus: http.StatusBadGateway,
			expectedError:  "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockStatementUsecase{GetIntegratedFunc: tt.mock}
			if tt.mock == nil {
				mockUC.GetIntegratedFunc = func(context.Context, string, string, string) (*entity.IntegratedStatement, error) {
					t.Fatal("usecase must not be called")
					return nil, nil
				}
			}

			router := gin.New()
			router.GET("/api/financial-statement", handler.NewStatementHandler(mockUC).GetFinancialStatement)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedError, body["error"])
		})
	}
}

// TestStatementHandler_GetFinancialStatement_Success はレスポンスのJSON形状を検証します。
func TestStatementHandler_GetFinancialStatement_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockUC := &mockStatementUsecase{
		GetIntegratedFunc: func(_ context.Context, corpCode, bsnsYear, reprtCode string) (*entity.IntegratedStatement, error) {
			assert.Equal(t, "00126380", corpCode)
			assert.Equal(t, "2023", bsnsYear)
			assert.Equal(t, "11011", reprtCode)
			return sampleStatement(), nil
		},
	}

	router := gin.New()
	router.GET("/api/financial-statement", handler.NewStatementHandler(mockUC).GetFinancialStatement)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/financial-statement?corp_code=00126380&bsns_year=2023", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	for _, key := range []string{"years", "periods", "balance_sheet", "income_statement", "metadata", "detailed_data"} {
		assert.Contains(t, raw, key)
	}
	assert.JSONEq(t, `[{"year":2023,"period":"제 55 기","label":"제 55 기 (2023)"}]`, string(raw["periods"]))
	assert.JSONEq(t, `{"cfs":{"자산총계":[{"year":2023,"amount":1000,"period":"제 55 기","date":"2023.12.31 현재"}]},"ofs":{"자산총계":[{"year":2023,"amount":0,"period":"","date":""}]}}`, string(raw["balance_sheet"]))

	var resp dto.IntegratedStatementResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "사업보고서", resp.Metadata.ReprtName)
	require.Len(t, resp.DetailedData, 1)
	assert.Equal(t, int64(1000), resp.DetailedData[0].BalanceSheet.CFS[0].ThstrmAmount)
	assert.Empty(t, resp.DetailedData[0].IncomeStatement.CFS)

	back := resp.ToEntity()
	assert.Equal(t, int64(1000), back.BalanceSheet.Get(entity.FsConsolidated)["자산총계"][0].Amount)
	assert.Equal(t, []int{2023}, back.Years)
}
