package freemind

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/jan-bar/mindmap"
)

const formatName = "freemind"

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

// LoadFile 从文件加载FreeMind数据
//
//goland:noinspection GoUnhandledErrorResult
func LoadFile(path string, opts ...Option) (*mindmap.Document, error) {
	fr, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fr.Close()
	return Load(fr, opts...)
}

// Parse 从内存数据加载FreeMind数据
func Parse(data []byte, opts ...Option) (*mindmap.Document, error) {
	return Load(bytes.NewReader(data), opts...)
}

// Load 读取FreeMind文件并转换为统一格式
func Load(r io.Reader, opts ...Option) (*mindmap.Document, error) {
	m, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return Convert(m, opts...)
}

// Decode 解析xml为 Map 结构,不存在map根元素时返回 mindmap.FormatError
func Decode(r io.Reader) (*Map, error) {
	d := xml.NewDecoder(r)
	d.Strict = false // 兼容富文本中不规范的html
	d.AutoClose = xml.HTMLAutoClose
	d.Entity = xml.HTMLEntity
	d.CharsetReader = charset.NewReaderLabel // 支持encoding="ISO-8859-1"等声明

	for {
		tok, err := d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, mindmap.NewFormatError(formatName, "missing map element", nil)
			}
			return nil, mindmap.NewFormatError(formatName, "parse xml", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue // 跳过xml声明,注释等
		}
		if start.Name.Local != "map" {
			return nil, mindmap.NewFormatError(formatName, "missing map element", nil)
		}

		var m Map
		if err = d.DecodeElement(&m, &start); err != nil {
			return nil, mindmap.NewFormatError(formatName, "parse xml", err)
		}
		return &m, nil
	}
}

// Convert 将 Map 转换为统一格式,根节点始终为第一个node元素
func Convert(m *Map, opts ...Option) (*mindmap.Document, error) {
	if m == nil {
		return nil, mindmap.NewFormatError(formatName, "missing map element", nil)
	}
	if len(m.Nodes) == 0 || m.Nodes[0] == nil {
		return nil, mindmap.NewFormatError(formatName, "missing root node", nil)
	}
	c := newConverter(opts)

	root := m.Nodes[0]
	// 先为所有没有ID的节点生成ID,后面转换节点和收集连线都使用同一个ID
	assignIDs(root)

	doc := mindmap.NewDocument(c.convertNode(root))
	c.collectArrows(root, &doc.Arrows)
	doc.Theme = Theme()

	c.log.Debug("freemind converted",
		zap.String("version", m.Version),
		zap.Int("nodes", doc.NodeData.Count()),
		zap.Int("arrows", len(doc.Arrows)))
	return doc, nil
}

func assignIDs(n *Node) {
	if n.ID == "" {
		n.ID = mindmap.GetId()
	}
	for _, child := range n.Nodes {
		if child != nil {
			assignIDs(child)
		}
	}
}

func (c *converter) convertNode(n *Node) *mindmap.Node {
	nd := &mindmap.Node{
		ID:        n.ID,
		Topic:     nodeText(n),
		Style:     nodeStyle(n),
		Note:      nodeNote(n),
		HyperLink: n.Link,
	}

	switch n.Folded {
	case "true":
		nd.Expanded = mindmap.Bool(false)
	case "false":
		nd.Expanded = mindmap.Bool(true)
	}

	for _, icon := range n.Icons {
		if icon.Builtin != "" {
			nd.Tags = append(nd.Tags, icon.Builtin)
		}
	}

	for _, child := range n.Nodes {
		if child != nil {
			nd.Children = append(nd.Children, c.convertNode(child))
		}
	}

	c.log.Debug("freemind node", zap.String("id", nd.ID), zap.String("topic", nd.Topic))
	return nd
}

// collectArrows 按树结构从上往下收集所有连线,连线起点为所在节点
func (c *converter) collectArrows(n *Node, arrows *[]mindmap.Arrow) {
	for _, al := range n.ArrowLinks {
		*arrows = append(*arrows, mindmap.NewArrow(al.ID, n.ID, al.Destination, "", nil, nil))
		c.log.Debug("freemind arrow", zap.String("from", n.ID), zap.String("to", al.Destination))
	}
	for _, child := range n.Nodes {
		if child != nil {
			c.collectArrows(child, arrows)
		}
	}
}

// nodeText 优先使用TEXT属性,其次是NODE类型的富文本
func nodeText(n *Node) string {
	if n.Text != "" {
		return n.Text
	}
	if rich, ok := n.Rich(RichNode); ok {
		if text := mindmap.ExtractPlainText(rich); text != "" {
			return text
		}
	}
	return mindmap.Untitled
}

// nodeNote NOTE类型的富文本作为备注,节点属性按 "名称: 值" 追加在后面
func nodeNote(n *Node) string {
	var lines []string
	if rich, ok := n.Rich(RichNote); ok {
		if text := mindmap.ExtractPlainText(rich); text != "" {
			lines = append(lines, text)
		}
	}
	for _, attr := range n.Attributes {
		if attr.Name != "" {
			lines = append(lines, attr.Name+": "+attr.Value)
		}
	}
	return strings.Join(lines, "\n")
}

func nodeStyle(n *Node) *mindmap.Style {
	p := mindmap.StyleProps{}
	p.Set(mindmap.KeyColor, n.Color).Set(mindmap.KeyFill, n.BackgroundColor)

	if len(n.Fonts) > 0 {
		f := n.Fonts[0]
		p.Set(mindmap.KeyFontFamily, f.Name)
		if f.Size != "" {
			p.Set(mindmap.KeyFontSize, f.Size+"px")
		}
		if f.Bold == "true" {
			p.Set(mindmap.KeyFontWeight, "bold")
		}
		if f.Italic == "true" {
			p.Set(mindmap.KeyFontStyle, "italic")
		}
	}

	if len(n.Edges) > 0 {
		e := n.Edges[0]
		p.Set(mindmap.KeyBorderWidth, edgeWidth(e.Width)+"px").
			Set(mindmap.KeyBorderStyle, edgeStyle(e.Style)).
			Set(mindmap.KeyBorderColor, e.Color)
	}

	// 云朵转换为虚线圆角边框,覆盖上面的边框样式
	if len(n.Clouds) > 0 {
		delete(p, mindmap.KeyBorderColor)
		p.Set(mindmap.KeyBorderWidth, "2px").
			Set(mindmap.KeyBorderStyle, "dashed").
			Set(mindmap.KeyBorderColor, n.Clouds[0].Color).
			Set(mindmap.KeyBorderRadius, "15px")
	}
	return mindmap.MapStyle(p)
}

// edgeWidth FreeMind的宽度为数字或thin,其他情况都当作1
func edgeWidth(w string) string {
	if _, err := strconv.ParseFloat(w, 64); err == nil {
		return w
	}
	return "1"
}

var cssBorderStyles = map[string]struct{}{
	"solid": {}, "dashed": {}, "dotted": {}, "double": {},
	"groove": {}, "ridge": {}, "inset": {}, "outset": {}, "none": {},
}

// edgeStyle FreeMind的连线样式(bezier,linear...)不是css边框样式,统一当作solid
func edgeStyle(s string) string {
	if _, ok := cssBorderStyles[s]; ok {
		return s
	}
	return mindmap.DefaultBorderStyle
}

// Theme FreeMind经典主题
func Theme() *mindmap.Theme {
	return &mindmap.Theme{
		Name:    "FreeMind Classic",
		Palette: []string{"#333333"},
		CSSVar: map[string]string{
			"--root-bgcolor":       "#ffffff",
			"--root-color":         "#000000",
			"--root-border-color":  "#808080",
			"--main-bgcolor":       "#ffffff",
			"--main-color":         "#000000",
			"--bgcolor":            "#ffffff",
			"--color":              "#000000",
			"--selected":           "#0066cc",
			"--gap":                "20px",
			"--panel-bgcolor":      "#f5f5f5",
			"--panel-border-color": "#cccccc",
		},
	}
}
