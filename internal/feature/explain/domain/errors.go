// Package domain defines domain-level errors for the explain feature.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured は生成AIのAPIキーが設定されていないことを示します。
	ErrNotConfigured = errors.New("generative AI is not configured")

	// ErrMissingFinancialData は説明対象の財務データが空であることを示します。
	ErrMissingFinancialData = errors.New("financial data is required")

	// 以下はリトライしても解決しない失敗の分類です。
	ErrAuthentication = errors.New("generative AI rejected the API key")
	ErrQuotaExceeded  = errors.New("generative AI quota exceeded")
	ErrSafetyBlocked  = errors.New("generative AI blocked the content")

	// ErrShortResponse は応答が空または短すぎることを示します。リトライ対象です。
	ErrShortResponse = errors.New("generative AI response is too short")
)

// ExhaustedError は全リトライが失敗したことを表します。
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("explanation failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}
