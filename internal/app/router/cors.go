package router

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// EnvKeyCORSOrigins はカンマ区切りの許可オリジンです。未設定なら全オリジンを許可します。
const EnvKeyCORSOrigins = "CORS_ALLOWED_ORIGINS"

// newCORS は cors.Default() をベースに、管理者APIの Authorization ヘッダーも許可します。
func newCORS() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")

	var origins []string
	for _, o := range strings.Split(os.Getenv(EnvKeyCORSOrigins), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
