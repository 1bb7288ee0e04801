package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/Get2Core/fs-project/internal/feature/directory/domain"
	"github.com/Get2Core/fs-project/internal/feature/directory/domain/entity"
	"github.com/Get2Core/fs-project/internal/feature/directory/usecase"
	platformdb "github.com/Get2Core/fs-project/internal/platform/db"
)

// Directory は1つのストアファイルに対する公開・読み取りを担います。
// 読み取りは常に「その時点で公開中の世代」1つだけを参照します。
type Directory struct {
	path string

	reloadMu sync.Mutex
	mu       sync.RWMutex
	cur      *generation

	// OnSwap は新しい世代へ切り替わった直後に呼ばれます（メトリクス更新など）。
	OnSwap func(entity.DirectoryStats)

	// watching は Watch が監視を開始した直後に呼ばれます。
	watching func()
}

// generation は読み込み済みの1世代です。作成後は変更しません。
type generation struct {
	db       *gorm.DB
	id       string
	builtAt  string
	file     os.FileInfo
	total    int64
	listed   int64
	loadedAt time.Time
}

var (
	_ usecase.CompanyReader     = (*Directory)(nil)
	_ usecase.SnapshotPublisher = (*Directory)(nil)
)

// NewDirectory は path のストアを扱う Directory を作成します。
// ストアはまだ読み込まれません。Reload を呼ぶまで読み取りは ErrStoreUnavailable になります。
func NewDirectory(path string) (*Directory, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve store path: %w", err)
	}
	return &Directory{path: abs}, nil
}

// Path はストアファイルの絶対パスを返します。
func (d *Directory) Path() string {
	return d.path
}

// Reload はストアファイルを開き直し、読み取り対象を新しい世代へ切り替えます。
// 開けない・壊れている場合は現在の世代を維持したままエラーを返します。
func (d *Directory) Reload(ctx context.Context) error {
	d.reloadMu.Lock()
	defer d.reloadMu.Unlock()

	// path は公開中の世代ファイルへのリンク。世代ファイル自体を開いて固定する
	target, err := filepath.EvalSymlinks(d.path)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	d.mu.RLock()
	same := d.cur != nil && os.SameFile(d.cur.file, info)
	d.mu.RUnlock()
	if same {
		return nil
	}

	gen, err := openGeneration(ctx, target, info)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	d.mu.Lock()
	old := d.cur
	d.cur = gen
	d.mu.Unlock()

	// 書き込みロックを取れた時点で旧世代を読んでいる呼び出しはない
	if old != nil {
		if err := platformdb.Close(old.db); err != nil {
			slog.Warn("failed to close previous generation", "generation", old.id, "error", err)
		}
	}

	slog.Info("directory generation loaded",
		"generation", gen.id,
		"built_at", gen.builtAt,
		"records", gen.total,
		"listed", gen.listed,
		"path", d.path,
		"file", target,
	)
	if d.OnSwap != nil {
		d.OnSwap(gen.stats(d.path))
	}
	return nil
}

func openGeneration(ctx context.Context, path string, info os.FileInfo) (*generation, error) {
	db, err := platformdb.OpenReadOnly(path)
	if err != nil {
		return nil, err
	}

	gen := &generation{db: db, file: info, loadedAt: time.Now()}
	if err := gen.load(ctx); err != nil {
		_ = platformdb.Close(db)
		return nil, err
	}
	return gen, nil
}

func (g *generation) load(ctx context.Context) error {
	var meta []MetaModel
	if err := g.db.WithContext(ctx).Find(&meta).Error; err != nil {
		return fmt.Errorf("read meta: %w", err)
	}
	for _, m := range meta {
		switch m.Key {
		case metaGeneration:
			g.id = m.Value
		case metaBuiltAt:
			g.builtAt = m.Value
		}
	}
	if g.id == "" {
		return errors.New("store has no generation id")
	}

	q := g.db.WithContext(ctx).Model(&CompanyModel{})
	if err := q.Count(&g.total).Error; err != nil {
		return fmt.Errorf("count companies: %w", err)
	}
	if err := g.db.WithContext(ctx).Model(&CompanyModel{}).Where("stock_code <> ''").Count(&g.listed).Error; err != nil {
		return fmt.Errorf("count listed: %w", err)
	}
	return nil
}

func (g *generation) stats(path string) entity.DirectoryStats {
	return entity.DirectoryStats{
		Available:      true,
		Generation:     g.id,
		BuiltAt:        g.builtAt,
		Path:           path,
		Total:          g.total,
		Listed:         g.listed,
		Unlisted:       g.total - g.listed,
		StoreSizeBytes: g.file.Size(),
		LoadedAt:       g.loadedAt,
	}
}

// Publish は records を新しい世代として書き込み、公開後に読み取り対象を切り替えます。
func (d *Directory) Publish(ctx context.Context, records []entity.CompanyRecord) (entity.SnapshotStats, error) {
	stats, err := writeSnapshot(ctx, d.path, records)
	if err != nil {
		return entity.SnapshotStats{}, err
	}
	if err := d.Reload(ctx); err != nil {
		return stats, fmt.Errorf("reload after publish: %w", err)
	}
	return stats, nil
}

// withGeneration は公開中の世代に対して fn を実行します。fn の実行中は世代が切り替わりません。
func (d *Directory) withGeneration(fn func(g *generation) error) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.cur == nil {
		return domain.ErrStoreUnavailable
	}
	return fn(d.cur)
}

// FindCandidates は会社名または銘柄コードの小文字表現に loweredQuery を含むレコードをすべて返します。
func (d *Directory) FindCandidates(ctx context.Context, loweredQuery string) ([]entity.CompanyRecord, error) {
	pattern := containsPattern(loweredQuery)

	var models []CompanyModel
	err := d.withGeneration(func(g *generation) error {
		return g.db.WithContext(ctx).
			Where(`corp_name_lower LIKE ? ESCAPE '\' OR stock_code_lower LIKE ? ESCAPE '\'`, pattern, pattern).
			Find(&models).Error
	})
	if err != nil {
		return nil, readError(err)
	}

	out := make([]entity.CompanyRecord, 0, len(models))
	for _, m := range models {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// FindByCorpCode は固有番号の完全一致で1件返します。
func (d *Directory) FindByCorpCode(ctx context.Context, corpCode string) (*entity.CompanyRecord, error) {
	return d.findOne(ctx, "corp_code = ?", corpCode)
}

// FindByStockCode は銘柄コードの完全一致で上場企業を1件返します。
// 同じ銘柄コードが複数ある場合は corp_code の小さいものを返します。
func (d *Directory) FindByStockCode(ctx context.Context, stockCode string) (*entity.CompanyRecord, error) {
	return d.findOne(ctx, "stock_code = ? AND stock_code <> ''", stockCode)
}

func (d *Directory) findOne(ctx context.Context, cond string, arg string) (*entity.CompanyRecord, error) {
	var m CompanyModel
	err := d.withGeneration(func(g *generation) error {
		return g.db.WithContext(ctx).Where(cond, arg).Order("corp_code").Take(&m).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, readError(err)
	}
	rec := toEntity(m)
	return &rec, nil
}

// Stats は公開中の世代の統計を返します。
func (d *Directory) Stats(_ context.Context) (entity.DirectoryStats, error) {
	var stats entity.DirectoryStats
	err := d.withGeneration(func(g *generation) error {
		stats = g.stats(d.path)
		return nil
	})
	if err != nil {
		return entity.DirectoryStats{Path: d.path}, err
	}
	return stats, nil
}

// Close は公開中の世代を閉じます。以降の読み取りは ErrStoreUnavailable になります。
func (d *Directory) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cur == nil {
		return nil
	}
	err := platformdb.Close(d.cur.db)
	d.cur = nil
	return err
}

// readError はストア読み取り時のエラーを ErrStoreUnavailable に寄せます。
// コンテキストのキャンセルはそのまま返します。
func readError(err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
