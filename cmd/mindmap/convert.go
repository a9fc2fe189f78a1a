package main

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jan-bar/mindmap"
	"github.com/jan-bar/mindmap/convert/custom"
	"github.com/jan-bar/mindmap/convert/edrawmax"
	"github.com/jan-bar/mindmap/convert/freemind"
	"github.com/jan-bar/mindmap/convert/xmind"
)

var convertCmd = &cobra.Command{
	Use:   "convert [config]",
	Short: "Convert files according to a yaml/json config",
	Long: `Convert files according to a yaml/json config.

The config is read from the given path, or from stdin when omitted:
  cat config.json | mindmap convert

Example config:
  from: "dir:/a/b/*.xmind"
  toType: markdown
  to: /tmp/out`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig(cmd, args)
		if err != nil {
			return err
		}
		return newBatch(cfg, logger).Run()
	},
}

// readConfig 之所以用配置文件,是为了避免命令行的各种转义问题
//
//goland:noinspection GoUnhandledErrorResult
func readConfig(cmd *cobra.Command, args []string) (*Config, error) {
	var read io.Reader = cmd.InOrStdin()
	if len(args) > 0 {
		fr, err := os.Open(args[0])
		if err != nil {
			return nil, &configError{err: err}
		}
		defer fr.Close()
		read = fr
	}
	return LoadConfig(read)
}

// batch 按配置转换一批文件
type batch struct {
	cfg  *Config
	log  *zap.Logger
	base string // recursive模式时的根目录
	now  func() time.Time

	mu      sync.Mutex
	written map[string]struct{} // 已经生成的文件,watch时需要忽略
}

func newBatch(cfg *Config, log *zap.Logger) *batch {
	return &batch{cfg: cfg, log: log, now: time.Now, written: make(map[string]struct{})}
}

// wrote 判断文件是否由本次转换生成
func (b *batch) wrote(path string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.written[filepath.Clean(path)]
	return ok
}

// Run 根据规则查找需要转换的所有文件并逐个转换
func (b *batch) Run() error {
	base, files, err := findFiles(b.cfg.From)
	if err != nil {
		return &configError{err: err}
	}
	b.base = base

	if b.cfg.To != "" {
		if err = os.MkdirAll(b.cfg.To, 0755); err != nil {
			return err
		}
	}

	for _, v := range files {
		if err = b.convertFile(v); err != nil {
			return fmt.Errorf("%s: %w", v, err)
		}
	}
	b.log.Info("convert finished", zap.Int("files", len(files)))
	return nil
}

// convertFile 按配置加载文件,每个文档保存为一个文件
func (b *batch) convertFile(src string) error {
	docs, err := loadDocuments(b.cfg, src, b.log)
	if err != nil {
		return err
	}

	for i, doc := range docs {
		to, err := b.genTo(src, i, len(docs))
		if err != nil {
			return err
		}
		if err = b.save(doc, to); err != nil {
			return err
		}
		b.log.Info("converted", zap.String("from", src), zap.String("to", to))
	}
	return nil
}

// genTo 根据配置方式,生成保存文件路径,有多个sheet时文件名增加序号
func (b *batch) genTo(src string, idx, total int) (string, error) {
	var seq string
	if total > 1 {
		seq = "-" + strconv.Itoa(idx+1)
	}

	if b.cfg.To == "" {
		return fmt.Sprintf("%s-%s%s%s", src,
			b.now().Format("20060102150405"), seq, saveExt(b.cfg)), nil
	}

	name := filepath.Base(src) + seq + saveExt(b.cfg)
	if b.base == "" {
		// 非递归方式,所有文件都保存在目标文件夹同级
		return filepath.Join(b.cfg.To, name), nil
	}

	rel, err := filepath.Rel(b.base, src)
	if err != nil {
		return "", err
	}
	tDir := filepath.Join(b.cfg.To, filepath.Dir(rel))
	if err = os.MkdirAll(tDir, 0755); err != nil {
		return "", err
	}
	// 递归查找出来的文件,保存时也放到目标目录的相对路径下
	return filepath.Join(tDir, name), nil
}

//goland:noinspection GoUnhandledErrorResult
func (b *batch) save(doc *mindmap.Document, path string) error {
	// 先记录再创建,避免Create事件比记录先到
	b.mu.Lock()
	b.written[filepath.Clean(path)] = struct{}{}
	b.mu.Unlock()

	fw, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fw.Close()
	return exportDocument(b.cfg, fw, doc)
}

func saveExt(cfg *Config) string {
	switch cfg.ToType {
	case "custom":
		return ".json"
	case "":
		return mindmap.Exporters["json"].Ext
	default:
		return mindmap.Exporters[cfg.ToType].Ext
	}
}

// exportDocument 根据配置,设置保存文件方案
func exportDocument(cfg *Config, w io.Writer, doc *mindmap.Document) error {
	switch cfg.ToType {
	case "custom":
		var data []byte
		if err := custom.SaveCustom(doc, *cfg.ToCustom, &data, nil); err != nil {
			return err
		}
		_, err := w.Write(data)
		return err
	case "markdown":
		if len(cfg.ToMarkdown) > 0 {
			return doc.SaveToMarkdown(w, cfg.ToMarkdown)
		}
		_, err := io.WriteString(w, mindmap.ConvertToMarkdown(doc.NodeData, cfg.Highlight))
		return err
	case "html":
		page, err := mindmap.ConvertToHTML(doc, &mindmap.HTMLOptions{CustomCSS: cfg.CustomCSS})
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, page)
		return err
	case "":
		return mindmap.Exporters["json"].Export(w, doc)
	default:
		return mindmap.Exporters[cfg.ToType].Export(w, doc)
	}
}

// detectType 根据后缀名判断文件格式
func detectType(fromType, path string) string {
	if fromType != "" && fromType != "auto" {
		return fromType
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mm":
		return "freemind"
	case ".eddx":
		return "edrawmax"
	case ".json":
		return "json"
	case ".mindmap":
		return "youdao"
	default:
		return "xmind"
	}
}

// loadDocuments 根据配置,设置读取文件方案
//
//goland:noinspection GoUnhandledErrorResult
func loadDocuments(cfg *Config, path string, log *zap.Logger) ([]*mindmap.Document, error) {
	typ := detectType(cfg.FromType, path)
	log.Debug("load file", zap.String("path", path), zap.String("type", typ))

	switch typ {
	case "freemind":
		doc, err := freemind.LoadFile(path, freemind.WithLogger(log))
		if err != nil {
			return nil, err
		}
		return []*mindmap.Document{doc}, nil
	case "xmind":
		return xmind.ImportFile(path, xmind.WithLogger(log))
	case "edrawmax":
		return edrawmax.ImportFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc *mindmap.Document
	switch typ {
	case "json":
		doc, err = mindmap.LoadJSON(bytes.NewReader(data))
	case "custom":
		if cfg.FromCustom == nil {
			return nil, &configError{err: fmt.Errorf("fromCustom is required for %s", path)}
		}
		doc, err = custom.LoadCustom(data, *cfg.FromCustom)
	case "youdao":
		doc, err = custom.LoadYouDao(data)
	default:
		err = fmt.Errorf("unknown fromType %q", typ)
	}
	if err != nil {
		return nil, err
	}
	return []*mindmap.Document{doc}, nil
}

func findFiles(s string) (base string, files []string, err error) {
	if tp, input, ok := strings.Cut(s, ":"); ok {
		switch tp {
		case "file":
			// "from": "file:xxx.xmind",直接指定单个文件
			files = []string{input}
			return
		case "dir":
			// "from": "dir:/a/b/*.xmind",通配符匹配目录下文件
			files, err = filepath.Glob(input)
			return
		case "recursive":
			// "from": "recursive:/a/b/*.xmind",此时输入为[文件夹/通配符]
			var pattern string
			base, pattern = filepath.Split(input)
			err = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
				if err != nil || d.IsDir() {
					return err
				}

				ok, err = filepath.Match(pattern, d.Name())
				if ok {
					files = append(files, path)
				}
				return err
			})
			return
		}
	}
	err = fmt.Errorf("from %q illegal", s)
	return
}
