// Package source は上流スナップショット（区切りテキスト）の読み書きを提供します。
package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Get2Core/fs-project/internal/feature/directory/domain/entity"
	"github.com/Get2Core/fs-project/internal/feature/directory/usecase"
)

// Columns はスナップショットの列順です。ヘッダーがない場合はこの順で解釈します。
var Columns = []string{"corp_code", "corp_name", "corp_eng_name", "stock_code", "modify_date"}

const utf8BOM = "\ufeff"

// CSVSource はローカルのCSVファイルからスナップショットを読み込みます。
type CSVSource struct {
	path string
}

var _ usecase.SnapshotSource = (*CSVSource)(nil)

// NewCSVSource は path を読む CSVSource を作成します。
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// FetchSnapshot はファイルを開いて全行を返します。
func (s *CSVSource) FetchSnapshot(ctx context.Context) ([]entity.RawCompanyRow, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close snapshot file", "path", s.path, "error", err)
		}
	}()
	return ReadCSV(ctx, f)
}

// ReadCSV は r から行を読み込みます。
// 先頭行の1列目が corp_code の場合はヘッダーとして扱い、列名で対応付けます。
// 列が足りない行も返し、検証はビルド側に任せます。
func ReadCSV(ctx context.Context, r io.Reader) ([]entity.RawCompanyRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	index := defaultIndex()
	var rows []entity.RawCompanyRow
	for line := 0; ; line++ {
		if line%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read snapshot line %d: %w", line+1, err)
		}

		if line == 0 {
			rec[0] = strings.TrimPrefix(rec[0], utf8BOM)
			if isHeader(rec) {
				index = headerIndex(rec)
				continue
			}
		}
		rows = append(rows, toRow(rec, index))
	}
	return rows, nil
}

func isHeader(rec []string) bool {
	return len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), Columns[0])
}

func defaultIndex() map[string]int {
	idx := make(map[string]int, len(Columns))
	for i, c := range Columns {
		idx[c] = i
	}
	return idx
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func toRow(rec []string, index map[string]int) entity.RawCompanyRow {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}
	return entity.RawCompanyRow{
		CorpCode:    field("corp_code"),
		CorpName:    field("corp_name"),
		CorpEngName: field("corp_eng_name"),
		StockCode:   field("stock_code"),
		ModifyDate:  field("modify_date"),
	}
}

// WriteCSV は rows をヘッダー付きのCSVとして w に書き出します。
// 表計算ソフトで開けるよう先頭にBOMを付けます。
func WriteCSV(w io.Writer, rows []entity.RawCompanyRow) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.CorpCode, r.CorpName, r.CorpEngName, r.StockCode, r.ModifyDate}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile は rows を path に書き出します。
func WriteCSVFile(path string, rows []entity.RawCompanyRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := WriteCSV(f, rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	return f.Close()
}
