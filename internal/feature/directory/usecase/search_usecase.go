// Package usecase implements the build and search logic of the company directory.
package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/Get2Core/fs-project/internal/feature/directory/domain"
	"github.com/Get2Core/fs-project/internal/feature/directory/domain/entity"
)

// CompanyReader は公開中の世代に対する読み取り操作を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CompanyReader interface {
	// FindCandidates は小文字化済みクエリを会社名または銘柄コードに部分文字列として含む全レコードを返します。
	// クエリ中のワイルドカード文字はリテラルとして扱わなければなりません。
	FindCandidates(ctx context.Context, loweredQuery string) ([]entity.CompanyRecord, error)
	FindByCorpCode(ctx context.Context, corpCode string) (*entity.CompanyRecord, error)
	FindByStockCode(ctx context.Context, stockCode string) (*entity.CompanyRecord, error)
	Stats(ctx context.Context) (entity.DirectoryStats, error)
}

// SearchUsecase は企業ディレクトリの検索を提供します。状態を持たず並行呼び出しに安全です。
type SearchUsecase struct {
	reader CompanyReader
}

// NewSearchUsecase は新しい SearchUsecase を作成します。
func NewSearchUsecase(r CompanyReader) *SearchUsecase {
	return &SearchUsecase{reader: r}
}

// MinQueryRunes は利用者向けの入口（HTTP・CLI）が受け付けるクエリの最小文字数です。
const MinQueryRunes = 2

type rankedCompany struct {
	tier entity.Tier
	rec  entity.CompanyRecord
}

// Search はクエリに一致する企業を (tier, corp_name) 順に最大 limit 件返します。
// 一致がない場合は空スライスを返し、ストアが使えない場合のみ domain.ErrStoreUnavailable を返します。
func (u *SearchUsecase) Search(ctx context.Context, query string, limit int) ([]entity.CompanySummary, error) {
	q := strings.ToLower(query)
	if q == "" || limit <= 0 {
		// ストアの可用性だけは確認して、未構築を「一致なし」と混同しない
		if _, err := u.reader.Stats(ctx); err != nil {
			return nil, err
		}
		return []entity.CompanySummary{}, nil
	}

	candidates, err := u.reader.FindCandidates(ctx, q)
	if err != nil {
		return nil, err
	}

	ranked := make([]rankedCompany, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c.CorpCode]; dup {
			continue
		}
		seen[c.CorpCode] = struct{}{}
		tier := entity.RankTier(q, c)
		if tier == entity.TierNone {
			continue
		}
		ranked = append(ranked, rankedCompany{tier: tier, rec: c})
	}

	// 全件を順位付けしてから切り詰める
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.tier != b.tier {
			return a.tier < b.tier
		}
		if a.rec.CorpName != b.rec.CorpName {
			return a.rec.CorpName < b.rec.CorpName
		}
		return a.rec.CorpCode < b.rec.CorpCode
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]entity.CompanySummary, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.rec.Summary())
	}
	return out, nil
}

// GetByCorpCode は固有番号で企業を1件取得します。
func (u *SearchUsecase) GetByCorpCode(ctx context.Context, corpCode string) (*entity.CompanyRecord, error) {
	corpCode = strings.TrimSpace(corpCode)
	if corpCode == "" {
		return nil, domain.ErrCompanyNotFound
	}
	return u.reader.FindByCorpCode(ctx, corpCode)
}

// GetByStockCode は銘柄コードで上場企業を1件取得します。
func (u *SearchUsecase) GetByStockCode(ctx context.Context, stockCode string) (*entity.CompanyRecord, error) {
	stockCode = strings.TrimSpace(stockCode)
	if stockCode == "" {
		return nil, domain.ErrCompanyNotFound
	}
	return u.reader.FindByStockCode(ctx, stockCode)
}

// Stats は公開中の世代の統計を返します。
func (u *SearchUsecase) Stats(ctx context.Context) (entity.DirectoryStats, error) {
	return u.reader.Stats(ctx)
}
