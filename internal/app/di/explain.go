package di

import (
	"context"
	"log/slog"

	"github.com/Get2Core/fs-project/internal/feature/explain/adapters/gemini"
	"github.com/Get2Core/fs-project/internal/feature/explain/usecase"
	infrahttp "github.com/Get2Core/fs-project/internal/platform/http"
)

// NewTextGenerator creates the Gemini generator. It returns nil when GEMINI_API_KEY is unset
// or the client cannot be created, and the explanation endpoint then reports a configuration error.
func NewTextGenerator(ctx context.Context) usecase.TextGenerator {
	cfg := gemini.LoadConfig()
	if !cfg.Configured() {
		slog.Warn("GEMINI_API_KEY is not set. AI explanations are disabled.")
		return nil
	}
	g, err := gemini.NewGeminiGenerator(ctx, cfg, infrahttp.NewHTTPClient(gemini.DefaultTimeout))
	if err != nil {
		slog.Error("failed to create gemini client", "error", err)
		return nil
	}
	return g
}
