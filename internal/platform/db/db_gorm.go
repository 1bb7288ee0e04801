// Package db はディレクトリストア用のSQLite接続を提供します。
package db

import (
	"fmt"
	"net/url"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// readPoolSize は読み取り接続プールの上限です。
const readPoolSize = 4

// fileURI は path をSQLiteのURIファイル名にします。
// パス中の ? # % などはエスケープされるため、クエリパラメータと混同されません。
func fileURI(path, query string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: query}
	return u.String(), nil
}

// OpenReadOnly は既存のSQLiteファイルを読み取り専用で開きます。
// ビルダーのプロセスが動いていなくても検索サービス単独で開けます。
// ファイルは公開後に書き換えられない前提で immutable として開きます。
func OpenReadOnly(path string) (*gorm.DB, error) {
	dsn, err := fileURI(path, "mode=ro&immutable=1&_query_only=true")
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(readPoolSize)
	sqlDB.SetMaxIdleConns(readPoolSize)
	return db, nil
}

// OpenWritable は書き込み用にSQLiteファイルを作成（または開き）ます。
// 一括ロード用に同期書き込みを無効化しているため、呼び出し側で公開前にfsyncしてください。
func OpenWritable(path string) (*gorm.DB, error) {
	dsn, err := fileURI(path, "")
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLiteの書き込みは単一接続で行う
	sqlDB.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = MEMORY",
		"PRAGMA synchronous = OFF",
	} {
		if err := db.Exec(pragma).Error; err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return db, nil
}

// Close は gorm.DB の下位接続を閉じます。
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
