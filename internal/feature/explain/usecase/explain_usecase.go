// Package usecase は財務諸表のAI説明生成を実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cenkalti/backoff/v4"

	"github.com/Get2Core/fs-project/internal/feature/explain/domain"
	"github.com/Get2Core/fs-project/internal/feature/explain/domain/entity"
)

const (
	// MaxAttempts は生成AI呼び出しの最大試行回数です。
	MaxAttempts = 5
	// MinResponseRunes 未満の応答は失敗として扱います。
	MinResponseRunes = 10
)

// TextGenerator はプロンプトからテキストを生成します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ExplainUsecase は財務諸表の説明を生成します。
type ExplainUsecase struct {
	gen        TextGenerator
	newBackOff func() backoff.BackOff
}

// Option は ExplainUsecase の設定を変更します。
type Option func(*ExplainUsecase)

// WithBackOff はリトライ間隔の戦略を差し替えます。
func WithBackOff(f func() backoff.BackOff) Option {
	return func(u *ExplainUsecase) { u.newBackOff = f }
}

// NewExplainUsecase は新しい ExplainUsecase を作成します。gen が nil の場合は未設定として扱います。
func NewExplainUsecase(gen TextGenerator, opts ...Option) *ExplainUsecase {
	u := &ExplainUsecase{gen: gen, newBackOff: defaultBackOff}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// 2s, 4s, 8s, 16s
func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = 16 * time.Second
	b.MaxElapsedTime = 0
	return b
}

// Explain は財務データを要約し、生成AIに説明を依頼します。
// 認証・クォータ・安全フィルタの失敗は即座に返し、それ以外は MaxAttempts 回まで再試行します。
func (u *ExplainUsecase) Explain(ctx context.Context, req entity.Request) (*entity.Explanation, error) {
	if u.gen == nil {
		return nil, domain.ErrNotConfigured
	}
	if isEmpty(req) {
		return nil, domain.ErrMissingFinancialData
	}

	company := strings.TrimSpace(req.CompanyName)
	if company == "" {
		company = entity.DefaultCompanyName
	}
	fsName := req.FsType.DisplayName()
	summary := BuildSummary(req.Statement, req.FsType)
	prompt := BuildPrompt(company, fsName, summary)

	slog.Info("explanation requested", "company", company, "fs_type", fsName)

	attempts := 0
	var text string
	op := func() error {
		attempts++
		out, err := u.gen.Generate(ctx, prompt)
		if err == nil && utf8.RuneCountInString(strings.TrimSpace(out)) < MinResponseRunes {
			err = domain.ErrShortResponse
		}
		if err != nil {
			if class := classify(err); class != nil {
				return backoff.Permanent(fmt.Errorf("%w: %v", class, err))
			}
			slog.Warn("explanation attempt failed", "attempt", attempts, "max", MaxAttempts, "error", err)
			return err
		}
		text = out
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(u.newBackOff(), MaxAttempts-1), ctx)
	if err := backoff.Retry(op, b); err != nil {
		switch {
		case errors.Is(err, domain.ErrAuthentication),
			errors.Is(err, domain.ErrQuotaExceeded),
			errors.Is(err, domain.ErrSafetyBlocked):
			return nil, err
		case ctx.Err() != nil:
			return nil, ctx.Err()
		}
		return nil, &domain.ExhaustedError{Attempts: attempts, Err: err}
	}

	return &entity.Explanation{
		Text:        text,
		CompanyName: company,
		FsTypeName:  fsName,
		Summary:     TruncateSummary(summary),
		RetryCount:  attempts - 1,
	}, nil
}

func isEmpty(req entity.Request) bool {
	st := req.Statement
	return len(st.Years) == 0 && len(st.Periods) == 0 &&
		len(st.BalanceSheet.CFS) == 0 && len(st.BalanceSheet.OFS) == 0 &&
		len(st.IncomeStatement.CFS) == 0 && len(st.IncomeStatement.OFS) == 0
}

var (
	authKeywords  = []string{"API_KEY_INVALID", "INVALID_API_KEY", "INVALID_ARGUMENT: API key", "API key not valid"}
	quotaKeywords = []string{"RESOURCE_EXHAUSTED", "QUOTA_EXCEEDED", "429"}
	safeKeywords  = []string{"SAFETY", "BLOCKED"}
)

// classify はリトライしても解決しないエラーを分類します。一時的なエラーは nil です。
func classify(err error) error {
	msg := err.Error()
	upper := strings.ToUpper(msg)
	switch {
	case containsAny(msg, authKeywords):
		return domain.ErrAuthentication
	case containsAny(upper, quotaKeywords):
		return domain.ErrQuotaExceeded
	case containsAny(upper, safeKeywords):
		return domain.ErrSafetyBlocked
	}
	return nil
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
