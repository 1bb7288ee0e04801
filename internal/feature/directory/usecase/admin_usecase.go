package usecase

import (
	"context"
	"log/slog"

	"github.com/Get2Core/fs-project/internal/feature/directory/domain/entity"
)

// Reloader は公開中のストアファイルを開き直します。
type Reloader interface {
	Reload(ctx context.Context) error
	Stats(ctx context.Context) (entity.DirectoryStats, error)
}

// AdminUsecase は運用者向けの操作（再読み込み・上流からの再構築）をまとめます。
type AdminUsecase struct {
	reloader Reloader
	builder  *BuildUsecase
	source   SnapshotSource
}

// NewAdminUsecase は新しい AdminUsecase を作成します。
func NewAdminUsecase(r Reloader, b *BuildUsecase, source SnapshotSource) *AdminUsecase {
	return &AdminUsecase{reloader: r, builder: b, source: source}
}

// Reload はストアを開き直し、読み込まれた世代の統計を返します。
// 失敗しても以前の世代は使われ続けます。
func (u *AdminUsecase) Reload(ctx context.Context) (entity.DirectoryStats, error) {
	if err := u.reloader.Reload(ctx); err != nil {
		slog.Warn("directory reload failed", "error", err)
		return entity.DirectoryStats{}, err
	}
	return u.reloader.Stats(ctx)
}

// Rebuild は上流から最新のスナップショットを取得して再構築します。
func (u *AdminUsecase) Rebuild(ctx context.Context) (entity.BuildReport, error) {
	return u.builder.Rebuild(ctx, u.source)
}
