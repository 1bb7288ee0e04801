// Package gemini はGoogle Gemini APIを使用した財務諸表説明の生成クライアントを提供します。
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"google.golang.org/genai"

	"github.com/Get2Core/fs-project/internal/feature/explain/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
	// DefaultTimeout は1回の生成リクエストの上限です。
	DefaultTimeout = 60 * time.Second

	EnvKeyAPIKey = "GEMINI_API_KEY"
	EnvKeyModel  = "GEMINI_MODEL"
)

// Config はGemini APIの接続設定です。
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // テスト用。空ならSDKの既定値
}

// LoadConfig は環境変数から設定を読み込みます。
func LoadConfig() Config {
	model := os.Getenv(EnvKeyModel)
	if model == "" {
		model = DefaultModel
	}
	return Config{APIKey: os.Getenv(EnvKeyAPIKey), Model: model}
}

// Configured はAPIキーが設定されているかどうかを返します。
func (c Config) Configured() bool {
	return c.APIKey != ""
}

// GeminiGenerator はGoogle Gemini APIを使用してテキストを生成します。
type GeminiGenerator struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// GeminiGeneratorがTextGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.TextGenerator = (*GeminiGenerator)(nil)

// NewGeminiGenerator はAPIキー認証でGeminiGeneratorの新しいインスタンスを生成します。
func NewGeminiGenerator(ctx context.Context, cfg Config, httpClient *http.Client) (*GeminiGenerator, error) {
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &GeminiGenerator{client: client, model: model, config: generationConfig()}, nil
}

// 財務データは安全フィルタの対象外とします。
func generationConfig() *genai.GenerateContentConfig {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	safety := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		safety = append(safety, &genai.SafetySetting{Category: c, Threshold: genai.HarmBlockThresholdBlockNone})
	}
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.7),
		TopP:            genai.Ptr[float32](0.95),
		TopK:            genai.Ptr[float32](40),
		MaxOutputTokens: 8192,
		SafetySettings:  safety,
	}
}

// Generate はプロンプトから説明文を生成します。
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.config)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return "", fmt.Errorf("gemini prompt blocked: %s", fb.BlockReason)
	}

	return resp.Text(), nil
}
