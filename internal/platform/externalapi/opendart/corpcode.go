package opendart

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cenkalti/backoff/v4"

	"github.com/Get2Core/fs-project/internal/feature/directory/domain/entity"
	"github.com/Get2Core/fs-project/internal/feature/directory/usecase"
	"github.com/Get2Core/fs-project/internal/platform/externalapi/opendart/dto"
)

// CorpCodeSource は corpCode.xml（全法人の固有番号一覧）をスナップショットとして取得します。
type CorpCodeSource struct {
	client *Client
}

var _ usecase.SnapshotSource = (*CorpCodeSource)(nil)

// NewCorpCodeSource は新しい CorpCodeSource を作成します。
func NewCorpCodeSource(c *Client) *CorpCodeSource {
	return &CorpCodeSource{client: c}
}

// FetchSnapshot は corpCode.xml をダウンロードし、ZIP内のXMLを行に変換します。
// エラー時はZIPではなくステータスXMLが返るため StatusError に変換します。
func (s *CorpCodeSource) FetchSnapshot(ctx context.Context) ([]entity.RawCompanyRow, error) {
	resp, err := s.client.get(ctx, "corpCode.xml", nil, checkZipOrStatus)
	if err != nil {
		return nil, err
	}
	return ParseCorpCodeZip(resp.body)
}

func checkZipOrStatus(r *response) error {
	if bytes.HasPrefix(r.body, []byte("PK")) {
		return nil
	}
	var st dto.StatusResponse
	if err := xml.Unmarshal(r.body, &st); err == nil && st.Status != "" {
		return &StatusError{Code: st.Status, Message: st.Message}
	}
	return backoff.Permanent(fmt.Errorf("unexpected corpCode response (content-type %q)", r.contentType))
}

// ParseCorpCodeZip は corpCode.zip の中身を行に変換します。
func ParseCorpCodeZip(data []byte) ([]entity.RawCompanyRow, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open corpCode zip: %w", err)
	}

	var xmlFile *zip.File
	for _, f := range zr.File {
		if strings.EqualFold(path.Ext(f.Name), ".xml") {
			xmlFile = f
			break
		}
	}
	if xmlFile == nil {
		return nil, errors.New("corpCode zip contains no xml file")
	}

	rc, err := xmlFile.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", xmlFile.Name, err)
	}
	defer rc.Close()
	return ParseCorpCodeXML(rc)
}

// ParseCorpCodeXML は CORPCODE.xml を <list> 要素ごとに読み込みます。
func ParseCorpCodeXML(r io.Reader) ([]entity.RawCompanyRow, error) {
	dec := xml.NewDecoder(r)
	var rows []entity.RawCompanyRow
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse corpCode xml: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "list" {
			continue
		}
		var c dto.CorpCode
		if err := dec.DecodeElement(&c, &start); err != nil {
			return nil, fmt.Errorf("parse corpCode entry: %w", err)
		}
		rows = append(rows, entity.RawCompanyRow{
			CorpCode:    c.CorpCode,
			CorpName:    c.CorpName,
			CorpEngName: c.CorpEngName,
			StockCode:   c.StockCode,
			ModifyDate:  c.ModifyDate,
		})
	}
	return rows, nil
}
