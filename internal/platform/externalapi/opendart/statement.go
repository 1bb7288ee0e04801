package opendart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/cenkalti/backoff/v4"

	findomain "github.com/Get2Core/fs-project/internal/feature/financials/domain"
	finentity "github.com/Get2Core/fs-project/internal/feature/financials/domain/entity"
	finusecase "github.com/Get2Core/fs-project/internal/feature/financials/usecase"
	"github.com/Get2Core/fs-project/internal/platform/externalapi/opendart/dto"
)

// StatementFetcher は fnlttSinglAcnt.json（단일회사 주요계정）を取得します。
type StatementFetcher struct {
	client *Client
}

var _ finusecase.AccountFetcher = (*StatementFetcher)(nil)

// NewStatementFetcher は新しい StatementFetcher を作成します。
func NewStatementFetcher(c *Client) *StatementFetcher {
	return &StatementFetcher{client: c}
}

// FetchAccounts は1年度分の主要勘定科目を返します。データなし（013）は空スライスです。
func (f *StatementFetcher) FetchAccounts(ctx context.Context, corpCode string, year int, reprtCode string) ([]finentity.AccountRow, error) {
	params := url.Values{}
	params.Set("corp_code", corpCode)
	params.Set("bsns_year", strconv.Itoa(year))
	params.Set("reprt_code", reprtCode)

	var body dto.SingleAccountResponse
	_, err := f.client.get(ctx, "fnlttSinglAcnt.json", params, func(r *response) error {
		body = dto.SingleAccountResponse{}
		if err := json.Unmarshal(r.body, &body); err != nil {
			return backoff.Permanent(fmt.Errorf("decode fnlttSinglAcnt: %w", err))
		}
		if body.Status != StatusOK && body.Status != StatusNoData {
			return &StatusError{Code: body.Status, Message: body.Message}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return nil, findomain.ErrNotConfigured
		}
		return nil, err
	}
	if body.Status == StatusNoData {
		return []finentity.AccountRow{}, nil
	}

	rows := make([]finentity.AccountRow, 0, len(body.List))
	for _, a := range body.List {
		rows = append(rows, finentity.AccountRow{
			RceptNo:         a.RceptNo,
			BsnsYear:        a.BsnsYear,
			CorpCode:        a.CorpCode,
			StockCode:       a.StockCode,
			ReprtCode:       a.ReprtCode,
			AccountNm:       a.AccountNm,
			FsDiv:           a.FsDiv,
			FsNm:            a.FsNm,
			SjDiv:           a.SjDiv,
			SjNm:            a.SjNm,
			ThstrmNm:        a.ThstrmNm,
			ThstrmDt:        a.ThstrmDt,
			ThstrmAmount:    a.ThstrmAmount,
			FrmtrmNm:        a.FrmtrmNm,
			FrmtrmDt:        a.FrmtrmDt,
			FrmtrmAmount:    a.FrmtrmAmount,
			BfefrmtrmNm:     a.BfefrmtrmNm,
			BfefrmtrmDt:     a.BfefrmtrmDt,
			BfefrmtrmAmount: a.BfefrmtrmAmount,
			Ord:             a.Ord,
			Currency:        a.Currency,
		})
	}
	return rows, nil
}
