// Package domain defines domain-level errors for the directory feature.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInputRow は必須の識別子を欠いた入力行です。ビルド全体は失敗しません。
	ErrInvalidInputRow = errors.New("invalid input row")

	// ErrEmptyInput は有効な行が1件もないことを示します。既存のストアはそのまま残ります。
	ErrEmptyInput = errors.New("no valid rows in snapshot")

	// ErrStoreUnavailable はストアが未構築、または読み取れないことを示します。
	// 「一致なし」とは区別して呼び出し元に返します。
	ErrStoreUnavailable = errors.New("directory store unavailable")

	// ErrBuildInProgress は別のビルドが実行中であることを示します。
	ErrBuildInProgress = errors.New("directory build already in progress")

	// ErrCompanyNotFound は完全一致検索で該当する企業がないことを示します。
	ErrCompanyNotFound = errors.New("company not found")
)

// WriteFailureError はストアの作成・書き込みに失敗したことを表します。
// 運用者が原因を特定できるよう、パスと元のOSエラーを保持します。
type WriteFailureError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteFailureError) Error() string {
	return fmt.Sprintf("directory write failure (%s %s): %v", e.Op, e.Path, e.Err)
}

func (e *WriteFailureError) Unwrap() error {
	return e.Err
}
