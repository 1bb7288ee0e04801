package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce はリネーム直後の連続イベントをまとめる待ち時間です。
const watchDebounce = 200 * time.Millisecond

// Watch はストアファイルのあるディレクトリを監視し、別プロセスのビルダーが
// 新しい世代をリネームで公開したら Reload します。ctx がキャンセルされるまでブロックします。
func (d *Directory) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	// ファイル自体ではなくディレクトリを監視する（リネームで inode が変わるため）
	if err := w.Add(filepath.Dir(d.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(d.path), err)
	}
	if d.watching != nil {
		d.watching()
	}

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != d.path || !ev.Has(fsnotify.Create|fsnotify.Write|fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			if err := d.Reload(ctx); err != nil {
				slog.Warn("directory reload after file change failed", "path", d.path, "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("directory watcher error", "error", err)
		}
	}
}
