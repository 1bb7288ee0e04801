package db

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type kv struct {
	K string `gorm:"primaryKey"`
	V string
}

// TestOpenWritable_ThenReadOnly は書き込み用に作成したファイルを読み取り専用で開けることを検証します。
func TestOpenWritable_ThenReadOnly(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "store.db")

	w, err := OpenWritable(path)
	if err != nil {
		t.Fatalf("OpenWritable: %v", err)
	}
	if err := w.AutoMigrate(&kv{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := w.Create(&kv{K: "a", V: "1"}).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := Close(w); err != nil {
		t.Fatalf("close: %v", err)
	}

	r, err := OpenReadOnly(path)
	if err != nil {
		t.Fatalf("OpenReadOnly: %v", err)
	}
	defer Close(r)

	var got kv
	if err := r.First(&got, "k = ?", "a").Error; err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.V != "1" {
		t.Errorf("expected V '1', got %q", got.V)
	}
}

// TestOpenWritable_PathWithURIChars はURIの予約文字を含むパスでも正しいファイルを開くことを検証します。
func TestOpenWritable_PathWithURIChars(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "we?ird#100% 회사")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, "store.db")

	w, err := OpenWritable(path)
	if err != nil {
		t.Fatalf("OpenWritable: %v", err)
	}
	if err := w.AutoMigrate(&kv{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := w.Create(&kv{K: "a", V: "1"}).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	_ = Close(w)

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected store at %q: %v", path, err)
	}

	r, err := OpenReadOnly(path)
	if err != nil {
		t.Fatalf("OpenReadOnly: %v", err)
	}
	defer Close(r)

	var got kv
	if err := r.First(&got, "k = ?", "a").Error; err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.V != "1" {
		t.Errorf("expected V '1', got %q", got.V)
	}
}

func TestFileURI_Escapes(t *testing.T) {
	t.Parallel()

	uri, err := fileURI("/data/a?b#c%d.db", "mode=ro")
	if err != nil {
		t.Fatalf("fileURI: %v", err)
	}
	if !strings.HasPrefix(uri, "file:///data/") || !strings.HasSuffix(uri, "?mode=ro") {
		t.Errorf("unexpected uri %q", uri)
	}
	for _, raw := range []string{"a?b", "#c", "%d"} {
		if strings.Contains(uri, raw) {
			t.Errorf("uri %q contains unescaped %q", uri, raw)
		}
	}
}

// TestOpenReadOnly_RejectsWrites は読み取り専用接続で書き込みが失敗することを検証します。
func TestOpenReadOnly_RejectsWrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "store.db")
	w, err := OpenWritable(path)
	if err != nil {
		t.Fatalf("OpenWritable: %v", err)
	}
	if err := w.AutoMigrate(&kv{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	_ = Close(w)

	r, err := OpenReadOnly(path)
	if err != nil {
		t.Fatalf("OpenReadOnly: %v", err)
	}
	defer Close(r)

	if err := r.Create(&kv{K: "b", V: "2"}).Error; err == nil {
		t.Error("expected write on read-only connection to fail")
	}
}

// TestOpenReadOnly_MissingFile は存在しないファイルへのクエリが失敗することを検証します。
func TestOpenReadOnly_MissingFile(t *testing.T) {
	t.Parallel()

	r, err := OpenReadOnly(filepath.Join(t.TempDir(), "missing.db"))
	if err != nil {
		return
	}
	defer Close(r)

	var n int64
	if err := r.Raw("SELECT count(*) FROM sqlite_master").Scan(&n).Error; err == nil {
		t.Error("expected error when querying a missing file")
	}
}

// TestClose_Nil は nil を渡しても安全であることを検証します。
func TestClose_Nil(t *testing.T) {
	t.Parallel()

	if err := Close(nil); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}
