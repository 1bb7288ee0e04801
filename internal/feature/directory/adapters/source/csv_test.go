package source

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Get2Core/fs-project/internal/feature/directory/domain/entity"
)

func TestReadCSV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []entity.RawCompanyRow
	}{
		{
			name:  "header with BOM",
			input: "\ufeffcorp_code,corp_name,corp_eng_name,stock_code,modify_date\n00126380,삼성전자,SAMSUNG ELECTRONICS,005930,20240101\n",
			want: []entity.RawCompanyRow{
				{CorpCode: "00126380", CorpName: "삼성전자", CorpEngName: "SAMSUNG ELECTRONICS", StockCode: "005930", ModifyDate: "20240101"},
			},
		},
		{
			name:  "quoted field with comma",
			input: "corp_code,corp_name,corp_eng_name,stock_code,modify_date\n00126380,삼성전자,\"SAMSUNG ELECTRONICS CO,.LTD\",005930,20240101\n",
			want: []entity.RawCompanyRow{
				{CorpCode: "00126380", CorpName: "삼성전자", CorpEngName: "SAMSUNG ELECTRONICS CO,.LTD", StockCode: "005930", ModifyDate: "20240101"},
			},
		},
		{
			name:  "no header uses column order",
			input: "00434003,다코,,,20170630\n",
			want: []entity.RawCompanyRow{
				{CorpCode: "00434003", CorpName: "다코", ModifyDate: "20170630"},
			},
		},
		{
			name:  "reordered header",
			input: "stock_code,corp_name,corp_code\n005930,삼성전자,00126380\n",
			want: []entity.RawCompanyRow{
				{CorpCode: "00126380", CorpName: "삼성전자", StockCode: "005930"},
			},
		},
		{
			name:  "short row kept for validation",
			input: "corp_code,corp_name\n00000001\n",
			want: []entity.RawCompanyRow{
				{CorpCode: "00000001"},
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ReadCSV(context.Background(), strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadCSV_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadCSV(ctx, strings.NewReader("00000001,A\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	t.Parallel()

	rows := []entity.RawCompanyRow{
		{CorpCode: "00126380", CorpName: "삼성전자", CorpEngName: "SAMSUNG ELECTRONICS CO,.LTD", StockCode: "005930", ModifyDate: "20240101"},
		{CorpCode: "00434003", CorpName: "다코", ModifyDate: "20170630"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))
	assert.True(t, strings.HasPrefix(buf.String(), "\ufeffcorp_code,corp_name,"))

	got, err := ReadCSV(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestCSVSource_FetchSnapshot(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "corp_codes.csv")
	rows := []entity.RawCompanyRow{{CorpCode: "00000001", CorpName: "Alpha"}}
	require.NoError(t, WriteCSVFile(path, rows))

	got, err := NewCSVSource(path).FetchSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	_, err = NewCSVSource(filepath.Join(t.TempDir(), "missing.csv")).FetchSnapshot(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
