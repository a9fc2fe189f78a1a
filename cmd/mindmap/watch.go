package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [config]",
	Short: "Convert once, then reconvert source files when they change",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig(cmd, args)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return newWatcher(newBatch(cfg, logger), watchDebounce).Run(ctx)
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond,
		"Wait this long after the last change before converting")
}

// watcher 监听源文件所在目录,文件变化时重新转换
type watcher struct {
	b        *batch
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
}

func newWatcher(b *batch, debounce time.Duration) *watcher {
	return &watcher{b: b, debounce: debounce, pending: make(map[string]*time.Timer)}
}

// Run 先全量转换一次,然后阻塞直到ctx结束
//
//goland:noinspection GoUnhandledErrorResult
func (w *watcher) Run(ctx context.Context) error {
	if err := w.b.Run(); err != nil {
		return err
	}
	base, files, err := findFiles(w.b.cfg.From)
	if err != nil {
		return &configError{err: err}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	dirs := watchDirs(base, files)
	for _, dir := range dirs {
		if err = fw.Add(dir); err != nil {
			return err
		}
	}
	w.b.log.Info("watching", zap.Strings("dirs", dirs))

	for {
		select {
		case <-ctx.Done():
			w.stopPending()
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.match(ev) {
				w.schedule(ev.Name)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.b.log.Warn("watch error", zap.Error(err))
		}
	}
}

// match 只处理写入和创建事件,并且文件名要符合from中的规则
func (w *watcher) match(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	if w.b.wrote(ev.Name) || w.underTo(ev.Name) {
		return false // 自己生成的文件不能再次转换
	}
	_, input, _ := strings.Cut(w.b.cfg.From, ":")
	_, pattern := filepath.Split(input)
	if pattern == "" {
		return false
	}
	if ok, _ := filepath.Match(pattern, filepath.Base(ev.Name)); ok {
		return true
	}
	// file模式下pattern就是文件名
	return filepath.Clean(input) == filepath.Clean(ev.Name)
}

// underTo 判断文件是否在输出目录下
func (w *watcher) underTo(path string) bool {
	if w.b.cfg.To == "" {
		return false
	}
	to, err := filepath.Abs(w.b.cfg.To)
	if err != nil {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(to, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// schedule 同一文件短时间内多次写入只转换一次
func (w *watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		if err := w.b.convertFile(path); err != nil {
			w.b.log.Error("reconvert failed", zap.String("path", path), zap.Error(err))
		}
	})
}

func (w *watcher) stopPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for k, t := range w.pending {
		t.Stop()
		delete(w.pending, k)
	}
}

// watchDirs recursive模式监听所有子目录,其他模式监听文件所在目录
func watchDirs(base string, files []string) []string {
	seen := make(map[string]struct{})
	var res []string
	add := func(dir string) {
		if dir == "" {
			dir = "."
		}
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			res = append(res, dir)
		}
	}
	if base != "" {
		add(filepath.Clean(base))
		_ = filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
			if err == nil && d.IsDir() {
				add(filepath.Clean(path))
			}
			return nil
		})
	}
	for _, f := range files {
		add(filepath.Dir(f))
	}
	return res
}
