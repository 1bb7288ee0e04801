// Package domain defines domain-level errors for the financials feature.
package domain

import "errors"

var (
	// ErrNoFinancialData は対象期間のどの年度にもデータがないことを示します。
	ErrNoFinancialData = errors.New("no financial data for the requested period")

	// ErrInvalidReportCode は報告書コードが 11011〜11014 以外であることを示します。
	ErrInvalidReportCode = errors.New("invalid report code")

	// ErrInvalidYear は事業年度が数値でないか範囲外であることを示します。
	ErrInvalidYear = errors.New("invalid business year")

	// ErrCorpCodeRequired は企業の固有番号が指定されていないことを示します。
	ErrCorpCodeRequired = errors.New("corp_code is required")

	// ErrNotConfigured は OpenDART のAPIキーが設定されていないことを示します。
	ErrNotConfigured = errors.New("opendart api key is not configured")
)
