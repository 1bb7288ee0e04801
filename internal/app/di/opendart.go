// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"

	finusecase "github.com/Get2Core/fs-project/internal/feature/financials/usecase"
	"github.com/Get2Core/fs-project/internal/platform/cache"
	"github.com/Get2Core/fs-project/internal/platform/externalapi/opendart"
	infrahttp "github.com/Get2Core/fs-project/internal/platform/http"
)

// NewOpenDARTClient creates an OpenDART client over the legacy-TLS HTTP client the API requires.
func NewOpenDARTClient() *opendart.Client {
	cfg := opendart.LoadConfig()
	httpClient := infrahttp.NewLegacyTLSClient(cfg.Timeout)
	return opendart.NewClient(cfg, httpClient)
}

// NewAccountFetcher returns the OpenDART statement fetcher.
// If Redis is available, it is wrapped with a cache that expires at the next 08:00 KST.
// Otherwise, every request goes to OpenDART.
func NewAccountFetcher(rdb *redis.Client, client *opendart.Client) finusecase.AccountFetcher {
	inner := opendart.NewStatementFetcher(client)
	if rdb != nil {
		return cache.NewCachingAccountFetcher(rdb, 0, inner, "financials")
	}
	return inner
}
