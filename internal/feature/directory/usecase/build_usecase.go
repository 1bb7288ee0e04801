package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Get2Core/fs-project/internal/feature/directory/domain"
	"github.com/Get2Core/fs-project/internal/feature/directory/domain/entity"
)

// SnapshotPublisher は正規化済みレコードから新しい世代のストアを作成し、
// 完成した時点でのみ読み取り側に公開（アトミックに差し替え）します。
// 失敗時には以前の世代がそのまま残らなければなりません。
type SnapshotPublisher interface {
	Publish(ctx context.Context, records []entity.CompanyRecord) (entity.SnapshotStats, error)
}

// SnapshotSource は上流スナップショットの取得元です（CSVファイル、OpenDART corpCode.xml など）。
type SnapshotSource interface {
	FetchSnapshot(ctx context.Context) ([]entity.RawCompanyRow, error)
}

// BuildObserver はビルド結果の通知先です（メトリクスなど）。
type BuildObserver interface {
	ObserveBuild(report entity.BuildReport, err error)
}

// BuildUsecase はスナップショットからディレクトリを再構築するユースケースです。
// 同一プロセス内で同時に実行できるビルドは1つだけです。
type BuildUsecase struct {
	publisher SnapshotPublisher
	observer  BuildObserver
	mu        sync.Mutex
	now       func() time.Time
}

// NewBuildUsecase は新しい BuildUsecase を作成します。observer は nil でも構いません。
func NewBuildUsecase(p SnapshotPublisher, observer BuildObserver) *BuildUsecase {
	return &BuildUsecase{publisher: p, observer: observer, now: time.Now}
}

// Rebuild は source からスナップショットを取得して Build を実行します。
func (u *BuildUsecase) Rebuild(ctx context.Context, source SnapshotSource) (entity.BuildReport, error) {
	rows, err := source.FetchSnapshot(ctx)
	if err != nil {
		return entity.BuildReport{}, fmt.Errorf("fetch snapshot: %w", err)
	}
	return u.Build(ctx, rows)
}

// Build は rows を検証・正規化し、新しい世代として公開します。
// 有効な行が0件の場合は domain.ErrEmptyInput を返し、ストアには一切触れません。
func (u *BuildUsecase) Build(ctx context.Context, rows []entity.RawCompanyRow) (report entity.BuildReport, err error) {
	if !u.mu.TryLock() {
		return entity.BuildReport{}, domain.ErrBuildInProgress
	}
	defer u.mu.Unlock()

	start := u.now()
	defer func() {
		report.Duration = u.now().Sub(start)
		if u.observer != nil {
			u.observer.ObserveBuild(report, err)
		}
	}()

	records, norm := normalizeRows(rows)
	report.Rejected = norm.rejected
	report.DuplicatesResolved = norm.duplicates
	report.StockCodeConflicts = norm.stockConflicts

	if norm.rejected > 0 {
		slog.Warn("invalid rows skipped", "rejected", norm.rejected, "reason", domain.ErrInvalidInputRow)
	}
	if norm.stockConflicts > 0 {
		slog.Warn("stock code shared by multiple corp codes", "conflicts", norm.stockConflicts)
	}
	if len(records) == 0 {
		return report, domain.ErrEmptyInput
	}

	stats, err := u.publisher.Publish(ctx, records)
	if err != nil {
		var wf *domain.WriteFailureError
		if errors.As(err, &wf) {
			slog.Error("directory write failed", "path", wf.Path, "op", wf.Op, "error", wf.Err)
		}
		return report, err
	}

	report.Generation = stats.Generation
	report.Path = stats.Path
	report.TotalRecords = stats.Records
	report.Listed = stats.Listed
	report.Unlisted = stats.Records - stats.Listed
	report.StoreSizeBytes = stats.StoreSizeBytes

	slog.Info("directory built",
		"generation", report.Generation,
		"records", report.TotalRecords,
		"listed", report.Listed,
		"unlisted", report.Unlisted,
		"rejected", report.Rejected,
		"duplicates", report.DuplicatesResolved,
		"size_bytes", report.StoreSizeBytes,
	)
	return report, nil
}

type normalizeResult struct {
	rejected       int
	duplicates     int
	stockConflicts int
}

// normalizeRows は行をトリム・検証し、corp_code の重複を後勝ちで解決します。
// 出力順は各 corp_code の最初の出現位置です。
func normalizeRows(rows []entity.RawCompanyRow) ([]entity.CompanyRecord, normalizeResult) {
	var res normalizeResult
	out := make([]entity.CompanyRecord, 0, len(rows))
	index := make(map[string]int, len(rows))

	for _, raw := range rows {
		r := raw.Trim()
		if err := validateRow(r); err != nil {
			res.rejected++
			continue
		}
		rec := r.ToRecord()
		if i, ok := index[rec.CorpCode]; ok {
			out[i] = rec
			res.duplicates++
			continue
		}
		index[rec.CorpCode] = len(out)
		out = append(out, rec)
	}

	owners := make(map[string]string)
	for _, rec := range out {
		if !rec.IsListed() {
			continue
		}
		if owner, ok := owners[rec.StockCode]; ok && owner != rec.CorpCode {
			res.stockConflicts++
			continue
		}
		owners[rec.StockCode] = rec.CorpCode
	}
	return out, res
}

func validateRow(r entity.RawCompanyRow) error {
	if r.CorpCode == "" {
		return fmt.Errorf("%w: empty corp_code", domain.ErrInvalidInputRow)
	}
	if r.CorpName == "" {
		return fmt.Errorf("%w: empty corp_name for %s", domain.ErrInvalidInputRow, r.CorpCode)
	}
	return nil
}
