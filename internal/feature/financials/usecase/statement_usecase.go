// Package usecase implements the multi-year financial statement lookup.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Get2Core/fs-project/internal/feature/financials/domain"
	"github.com/Get2Core/fs-project/internal/feature/financials/domain/entity"
)

// YearsPerStatement は統合する年度数です（基準年度を含む）。
const YearsPerStatement = 5

// AccountFetcher は1年度分の主要勘定科目を取得します。
// データがない年度は空スライスを返します。
type AccountFetcher interface {
	FetchAccounts(ctx context.Context, corpCode string, year int, reprtCode string) ([]entity.AccountRow, error)
}

// StatementUsecase は複数年度の財務諸表を取得・統合します。
type StatementUsecase struct {
	fetcher AccountFetcher
}

// NewStatementUsecase は新しい StatementUsecase を作成します。
func NewStatementUsecase(f AccountFetcher) *StatementUsecase {
	return &StatementUsecase{fetcher: f}
}

// GetIntegrated は baseYear を最新とする5年度分を古い順に取得して統合します。
// 取得に失敗した年度はログに残して飛ばし、1年度も取れなければ ErrNoFinancialData を返します。
func (u *StatementUsecase) GetIntegrated(ctx context.Context, corpCode, bsnsYear, reprtCode string) (*entity.IntegratedStatement, error) {
	corpCode = strings.TrimSpace(corpCode)
	if corpCode == "" {
		return nil, domain.ErrCorpCodeRequired
	}
	baseYear, err := strconv.Atoi(strings.TrimSpace(bsnsYear))
	if err != nil || baseYear < 2000 || baseYear > 9999 {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidYear, bsnsYear)
	}
	reprtCode = strings.TrimSpace(reprtCode)
	if reprtCode == "" {
		reprtCode = entity.DefaultReportCode
	}
	if !entity.IsValidReportCode(reprtCode) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidReportCode, reprtCode)
	}

	var years []entity.YearStatement
	for year := baseYear - YearsPerStatement + 1; year <= baseYear; year++ {
		rows, err := u.fetcher.FetchAccounts(ctx, corpCode, year, reprtCode)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			if errors.Is(err, domain.ErrNotConfigured) {
				return nil, err
			}
			slog.Warn("financial statement fetch failed", "corp_code", corpCode, "year", year, "error", err)
			continue
		}
		if len(rows) == 0 {
			continue
		}
		ys := ProcessYear(rows)
		ys.Year = year
		years = append(years, ys)
	}

	if len(years) == 0 {
		return nil, domain.ErrNoFinancialData
	}
	out := Integrate(years)
	return &out, nil
}

// ProcessYear は1年度分の行を財務状態表・損益計算書、連結・個別に振り分けます。
// メタデータは先頭行から取ります。
func ProcessYear(rows []entity.AccountRow) entity.YearStatement {
	var ys entity.YearStatement
	if len(rows) == 0 {
		return ys
	}

	first := rows[0]
	ys.Metadata = entity.Metadata{
		RceptNo:   first.RceptNo,
		BsnsYear:  first.BsnsYear,
		CorpCode:  first.CorpCode,
		StockCode: first.StockCode,
		ReprtCode: first.ReprtCode,
		ReprtName: entity.ReportName(first.ReprtCode),
	}

	for _, r := range rows {
		var pair *entity.StatementPair
		switch r.SjDiv {
		case "BS":
			pair = &ys.BalanceSheet
		case "IS":
			pair = &ys.IncomeStatement
		default:
			continue
		}
		item := toItem(r)
		switch r.FsDiv {
		case "CFS":
			pair.CFS = append(pair.CFS, item)
		case "OFS":
			pair.OFS = append(pair.OFS, item)
		}
	}
	return ys
}

func toItem(r entity.AccountRow) entity.AccountItem {
	return entity.AccountItem{
		AccountNm:       r.AccountNm,
		ThstrmNm:        r.ThstrmNm,
		ThstrmDt:        r.ThstrmDt,
		ThstrmAmount:    entity.ParseAmount(r.ThstrmAmount),
		FrmtrmNm:        r.FrmtrmNm,
		FrmtrmDt:        r.FrmtrmDt,
		FrmtrmAmount:    entity.ParseAmount(r.FrmtrmAmount),
		BfefrmtrmNm:     r.BfefrmtrmNm,
		BfefrmtrmDt:     r.BfefrmtrmDt,
		BfefrmtrmAmount: entity.ParseAmount(r.BfefrmtrmAmount),
		Ord:             r.Ord,
		Currency:        r.Currency,
	}
}

// Integrate は年度ごとの財務諸表を主要勘定科目の推移にまとめます。
// years は古い順に並んでいる必要があります。
func Integrate(years []entity.YearStatement) entity.IntegratedStatement {
	out := entity.IntegratedStatement{
		Years:           make([]int, 0, len(years)),
		Periods:         make([]entity.Period, 0, len(years)),
		BalanceSheet:    newSeries(),
		IncomeStatement: newSeries(),
		Detailed:        years,
	}
	if len(years) == 0 {
		return out
	}
	out.Metadata = years[len(years)-1].Metadata

	for _, ys := range years {
		out.Years = append(out.Years, ys.Year)
		name := ""
		if cfs := ys.BalanceSheet.CFS; len(cfs) > 0 {
			name = cfs[0].ThstrmNm
		}
		out.Periods = append(out.Periods, entity.NewPeriod(ys.Year, name))
	}

	for _, fs := range []entity.FsType{entity.FsConsolidated, entity.FsSeparate} {
		bs := out.BalanceSheet.Get(fs)
		for _, account := range entity.KeyBalanceSheetAccounts {
			bs[account] = series(years, account, func(ys entity.YearStatement) []entity.AccountItem {
				return ys.BalanceSheet.Get(fs)
			})
		}
		is := out.IncomeStatement.Get(fs)
		for _, account := range entity.KeyIncomeStatementAccounts {
			is[account] = series(years, account, func(ys entity.YearStatement) []entity.AccountItem {
				return ys.IncomeStatement.Get(fs)
			})
		}
	}
	return out
}

func newSeries() entity.AccountSeries {
	return entity.AccountSeries{
		CFS: make(map[string][]entity.Point),
		OFS: make(map[string][]entity.Point),
	}
}

func series(years []entity.YearStatement, account string, items func(entity.YearStatement) []entity.AccountItem) []entity.Point {
	points := make([]entity.Point, 0, len(years))
	for _, ys := range years {
		p := entity.Point{Year: ys.Year}
		for _, it := range items(ys) {
			if it.AccountNm == account {
				p.Amount = it.ThstrmAmount
				p.Period = it.ThstrmNm
				p.Date = it.ThstrmDt
				break
			}
		}
		points = append(points, p)
	}
	return points
}
