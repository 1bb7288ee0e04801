package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Get2Core/fs-project/internal/feature/directory/domain"
	"github.com/Get2Core/fs-project/internal/feature/directory/domain/entity"
	platformdb "github.com/Get2Core/fs-project/internal/platform/db"
)

// insertBatchSize は一括INSERTのバッチサイズです。
const insertBatchSize = 1000

// writeSnapshot は records を世代ごとのファイル <path>.<generation> に書き込み、
// path のシンボリックリンクをその世代へアトミックに付け替えます。
// 世代ファイルは公開後に書き換えないため、古い世代を開いている読み手は別世代の行を読みません。
// 失敗した場合は作りかけのファイルを削除し、path の既存の公開先には触れません。
func writeSnapshot(ctx context.Context, path string, records []entity.CompanyRecord) (stats entity.SnapshotStats, err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return stats, &domain.WriteFailureError{Path: dir, Op: "mkdir", Err: err}
	}

	generation := uuid.NewString()
	base := filepath.Base(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, generation))
	genFile := generationFile(path, generation)
	link := filepath.Join(dir, fmt.Sprintf(".%s.%s.link", base, generation))

	db, err := platformdb.OpenWritable(tmp)
	if err != nil {
		_ = os.Remove(tmp)
		return stats, &domain.WriteFailureError{Path: tmp, Op: "create", Err: err}
	}
	defer func() {
		if db != nil {
			_ = platformdb.Close(db)
		}
		if err != nil {
			for _, f := range []string{tmp, genFile, link} {
				_ = os.Remove(f)
			}
		}
	}()

	listed, err := load(ctx, db, generation, records)
	if err != nil {
		return stats, &domain.WriteFailureError{Path: tmp, Op: "load", Err: err}
	}
	if err := verify(ctx, db, len(records), listed); err != nil {
		return stats, &domain.WriteFailureError{Path: tmp, Op: "verify", Err: err}
	}

	closeErr := platformdb.Close(db)
	db = nil
	if closeErr != nil {
		return stats, &domain.WriteFailureError{Path: tmp, Op: "close", Err: closeErr}
	}
	if err := syncFile(tmp); err != nil {
		return stats, &domain.WriteFailureError{Path: tmp, Op: "fsync", Err: err}
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	if err := os.Rename(tmp, genFile); err != nil {
		return stats, &domain.WriteFailureError{Path: genFile, Op: "rename", Err: err}
	}
	info, err := os.Stat(genFile)
	if err != nil {
		return stats, &domain.WriteFailureError{Path: genFile, Op: "stat", Err: err}
	}

	// 相対リンクにしてディレクトリごと移動しても辿れるようにする
	prev, _ := os.Readlink(path)
	if err := os.Symlink(filepath.Base(genFile), link); err != nil {
		return stats, &domain.WriteFailureError{Path: link, Op: "symlink", Err: err}
	}
	if err := os.Rename(link, path); err != nil {
		return stats, &domain.WriteFailureError{Path: path, Op: "publish", Err: err}
	}

	pruneGenerations(path, genFile, prev)

	return entity.SnapshotStats{
		Generation:     generation,
		Path:           path,
		Records:        len(records),
		Listed:         listed,
		StoreSizeBytes: info.Size(),
	}, nil
}

// generationFile は path に公開される世代のファイル名です。
func generationFile(path, generation string) string {
	return path + "." + generation
}

// pruneGenerations は現在と直前の世代以外の世代ファイルを削除します。
// 直前の世代は、まだ切り替えていない別プロセスの読み手のために残します。
func pruneGenerations(path, current, previous string) {
	dir, base := filepath.Dir(path), filepath.Base(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Warn("failed to list generations", "dir", dir, "error", err)
		return
	}
	keep := map[string]bool{filepath.Base(current): true}
	if previous != "" {
		keep[filepath.Base(previous)] = true
	}
	for _, e := range entries {
		name := e.Name()
		id, ok := strings.CutPrefix(name, base+".")
		if !ok || keep[name] {
			continue
		}
		if _, err := uuid.Parse(id); err != nil {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			slog.Warn("failed to remove superseded generation", "file", name, "error", err)
		}
	}
}

// load はスキーマを作成してレコードを投入し、最後にインデックスを作成します。
func load(ctx context.Context, db *gorm.DB, generation string, records []entity.CompanyRecord) (int, error) {
	tx := db.WithContext(ctx)
	if err := tx.Migrator().CreateTable(&CompanyModel{}, &MetaModel{}); err != nil {
		return 0, fmt.Errorf("create schema: %w", err)
	}

	listed := 0
	models := make([]CompanyModel, 0, len(records))
	for _, r := range records {
		if r.IsListed() {
			listed++
		}
		models = append(models, toModel(r))
	}

	err := tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(&models, insertBatchSize).Error; err != nil {
			return fmt.Errorf("insert companies: %w", err)
		}
		meta := []MetaModel{
			{Key: metaGeneration, Value: generation},
			{Key: metaBuiltAt, Value: time.Now().UTC().Format(time.RFC3339)},
		}
		if err := tx.Create(&meta).Error; err != nil {
			return fmt.Errorf("insert meta: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, stmt := range indexStatements {
		if err := tx.Exec(stmt).Error; err != nil {
			return 0, fmt.Errorf("create index: %w", err)
		}
	}
	return listed, nil
}

// verify は書き込んだ件数が期待どおりであることを確認します。
func verify(ctx context.Context, db *gorm.DB, wantTotal, wantListed int) error {
	var total, listed int64
	if err := db.WithContext(ctx).Model(&CompanyModel{}).Count(&total).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Model(&CompanyModel{}).Where("stock_code <> ''").Count(&listed).Error; err != nil {
		return err
	}
	if total != int64(wantTotal) || listed != int64(wantListed) {
		return fmt.Errorf("row count mismatch: total %d/%d, listed %d/%d", total, wantTotal, listed, wantListed)
	}
	return nil
}

func syncFile(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
