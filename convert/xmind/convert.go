package xmind

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/jan-bar/mindmap"
)

type converter struct {
	log *zap.Logger
}

// Option 转换参数
type Option func(*converter)

// WithLogger 设置日志,默认不输出日志
func WithLogger(log *zap.Logger) Option {
	return func(c *converter) {
		if log != nil {
			c.log = log
		}
	}
}

func newConverter(opts []Option) *converter {
	c := &converter{log: zap.NewNop()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ImportFile 加载xmind文件,每个sheet转换为一个文档
//
//goland:noinspection GoUnhandledErrorResult
func ImportFile(path string, opts ...Option) ([]*mindmap.Document, error) {
	fr, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	fi, err := fr.Stat()
	if err != nil {
		return nil, err
	}
	return Import(fr, fi.Size(), opts...)
}

// Import 读取xmind数据,每个sheet转换为一个文档
func Import(r io.ReaderAt, size int64, opts ...Option) ([]*mindmap.Document, error) {
	sheets, err := Load(r, size)
	if err != nil {
		return nil, err
	}

	docs := make([]*mindmap.Document, 0, len(sheets))
	for _, st := range sheets {
		docs = append(docs, Convert(st, opts...))
	}
	return docs, nil
}

// Convert 将一个sheet转换为统一格式
func Convert(sheet *Sheet, opts ...Option) *mindmap.Document {
	c := newConverter(opts)

	// 所有层级的概要都追加到同一个数组中
	summaries := make([]mindmap.Summary, 0)
	root := &Topic{}
	if sheet.RootTopic != nil {
		root = sheet.RootTopic
	}
	doc := mindmap.NewDocument(c.convertTopic(&summaries, root))
	doc.Summaries = summaries

	for _, rel := range sheet.Relationships {
		var d1, d2 *mindmap.Delta
		if rel.ControlPoints != nil {
			d1, d2 = rel.ControlPoints.Start.Delta(), rel.ControlPoints.End.Delta()
		}
		doc.Arrows = append(doc.Arrows, mindmap.NewArrow(rel.ID, rel.End1ID, rel.End2ID, rel.Title, d1, d2))
	}

	if sheet.TopicPositioning != "" {
		doc.Direction = mindmap.DirectionOf(mindmap.Side)
	}
	if sheet.Theme != nil && (sheet.Theme.CentralTopic != nil ||
		sheet.Theme.MainTopic != nil || sheet.Theme.SubTopic != nil) {
		doc.Theme = ConvertTheme(sheet.Theme)
	}

	c.log.Debug("xmind sheet converted",
		zap.String("sheet", sheet.Title),
		zap.Int("nodes", doc.NodeData.Count()),
		zap.Int("arrows", len(doc.Arrows)),
		zap.Int("summaries", len(doc.Summaries)))
	return doc
}

func (c *converter) convertTopic(summaries *[]mindmap.Summary, tp *Topic) *mindmap.Node {
	nd := &mindmap.Node{
		ID:        tp.ID,
		Topic:     strings.TrimSpace(tp.Title),
		HyperLink: tp.Href,
	}
	if nd.ID == "" {
		nd.ID = mindmap.GetId()
	}
	if nd.Topic == "" {
		nd.Topic = mindmap.Untitled
	}
	if tp.Notes != nil && tp.Notes.Plain != nil && tp.Notes.Plain.Content != "" {
		nd.Note = tp.Notes.Plain.Content
	}
	if tp.Style != nil {
		nd.Style = mindmap.MapStyle(tp.Style.Properties)
	}
	if tp.Branch != "" {
		nd.Expanded = mindmap.Bool(tp.Branch != BranchFolded)
	}
	if len(tp.Labels) > 0 {
		nd.Tags = append([]string(nil), tp.Labels...)
	}
	if tp.Image != nil && tp.Image.Src != "" {
		nd.Image = &mindmap.Image{
			URL:    tp.Image.Src,
			Width:  tp.Image.Width,
			Height: tp.Image.Height,
			Fit:    mindmap.FitContain,
		}
	}

	if len(tp.Summaries) > 0 && tp.Children != nil {
		refs := make([]mindmap.SummaryRef, 0, len(tp.Summaries))
		for _, s := range tp.Summaries {
			refs = append(refs, mindmap.SummaryRef{ID: s.ID, Range: s.Range, TopicID: s.TopicID})
		}
		topics := make([]mindmap.SummaryTopic, 0, len(tp.Children.Summary))
		for _, st := range tp.Children.Summary {
			if st != nil {
				topics = append(topics, mindmap.SummaryTopic{ID: st.ID, Title: st.Title})
			}
		}
		before := len(*summaries)
		mindmap.ResolveSummaries(nd.ID, refs, topics, summaries)
		if dropped := len(refs) - (len(*summaries) - before); dropped > 0 {
			c.log.Debug("xmind summaries dropped", zap.String("topic", nd.ID), zap.Int("count", dropped))
		}
	}

	if tp.Children != nil {
		for _, child := range tp.Children.Attached {
			if child != nil {
				nd.Children = append(nd.Children, c.convertTopic(summaries, child))
			}
		}
	}
	return nd
}

// ConvertTheme 将xmind主题转换为统一主题,只使用中心主题,分支主题,子主题的填充色和文字颜色
func ConvertTheme(th *Theme) *mindmap.Theme {
	res := mindmap.DefaultTheme()
	switch {
	case th.Title != "":
		res.Name = th.Title
	case th.ID != "":
		res.Name = th.ID
	default:
		res.Name = "Custom Theme"
	}

	apply := func(st *Style, bg, fg string) {
		if st == nil {
			return
		}
		if v := st.Properties[mindmap.KeyFill]; v != "" {
			res.CSSVar[bg] = v
		}
		if v := st.Properties[mindmap.KeyColor]; v != "" {
			res.CSSVar[fg] = v
		}
	}
	apply(th.CentralTopic, "--root-bgcolor", "--root-color")
	apply(th.MainTopic, "--main-bgcolor", "--main-color")
	apply(th.SubTopic, "--bgcolor", "--color")
	return res
}
