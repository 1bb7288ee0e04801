package entity

import "time"

// BuildReport はディレクトリ再構築1回分の診断情報です。
type BuildReport struct {
	Generation         string        // 世代ID（uuid）
	Path               string        // 公開されたストアのパス
	TotalRecords       int           // 書き込んだレコード数
	Rejected           int           // InvalidInputRow として除外した行数
	DuplicatesResolved int           // 後勝ちで上書きされた corp_code の重複数
	StockCodeConflicts int           // 複数法人が同じ銘柄コードを持っていた件数
	Listed             int           // 上場企業数
	Unlisted           int           // 非上場企業数
	StoreSizeBytes     int64         // ストアファイルのサイズ
	Duration           time.Duration // 構築にかかった時間
}

// SnapshotStats はストアへの書き込み結果です。
type SnapshotStats struct {
	Generation     string
	Path           string
	Records        int
	Listed         int
	StoreSizeBytes int64
}

// DirectoryStats は現在公開中の世代の統計です。
type DirectoryStats struct {
	Available      bool
	Generation     string
	BuiltAt        string // RFC3339
	Path           string
	Total          int64
	Listed         int64
	Unlisted       int64
	StoreSizeBytes int64
	LoadedAt       time.Time
}
