package router

import (
	"github.com/gin-gonic/gin"

	directoryhandler "github.com/Get2Core/fs-project/internal/feature/directory/transport/handler"
	explainhandler "github.com/Get2Core/fs-project/internal/feature/explain/transport/handler"
	financialshandler "github.com/Get2Core/fs-project/internal/feature/financials/transport/handler"
	"github.com/Get2Core/fs-project/internal/platform/http/handler"
	jwtmw "github.com/Get2Core/fs-project/internal/platform/jwt"
	"github.com/Get2Core/fs-project/internal/platform/metrics"
)

func NewRouter(m *metrics.Metrics, checks map[string]handler.ReadyCheck,
	directory *directoryhandler.DirectoryHandler,
	statement *financialshandler.StatementHandler,
	explain *explainhandler.ExplainHandler) *gin.Engine {
	r := gin.Default()
	r.Use(m.Middleware())
	// CORS（ブラウザのフロントエンドから呼ばれる）
	r.Use(newCORS())

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(checks))
	r.GET("/metrics", gin.WrapH(m.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", directory.Health)
		api.GET("/search", directory.Search)
		api.GET("/companies/:corp_code", directory.GetByCorpCode)
		api.GET("/companies/stock/:stock_code", directory.GetByStockCode)
		api.GET("/directory/stats", directory.Stats)

		api.GET("/financial-statement", statement.GetFinancialStatement)
		api.POST("/explain-financial-statement", explain.Explain)
	}

	// 管理者のみ
	// jwtmw.AdminRequired() で JWT と admin ロールを要求します
	admin := r.Group("/api")
	admin.Use(jwtmw.AdminRequired()...)
	{
		admin.POST("/reload-data", directory.Reload)
		admin.POST("/admin/directory/rebuild", directory.Rebuild)
	}

	return r
}
