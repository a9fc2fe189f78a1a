package mindmap

import (
	"encoding/binary"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

/*
下面的结构是统一的思维导图数据模型
xmind,freemind等格式导入后都转换为这里的结构,导出时也只从这里的结构生成
*/
type (
	Document struct {
		NodeData  *Node      `json:"nodeData"`
		Arrows    []Arrow    `json:"arrows"`
		Summaries []Summary  `json:"summaries"`
		Theme     *Theme     `json:"theme,omitempty"`
		Direction *Direction `json:"direction,omitempty"`
	}

	Node struct {
		ID        string   `json:"id"`
		Topic     string   `json:"topic"`
		Style     *Style   `json:"style,omitempty"`
		Note      string   `json:"note,omitempty"`
		HyperLink string   `json:"hyperLink,omitempty"`
		Expanded  *bool    `json:"expanded,omitempty"` // nil表示来源没有折叠信息
		Tags      []string `json:"tags,omitempty"`
		Image     *Image   `json:"image,omitempty"`
		Children  []*Node  `json:"children,omitempty"`
	}

	Style struct {
		Color          string `json:"color,omitempty"`
		Background     string `json:"background,omitempty"`
		FontFamily     string `json:"fontFamily,omitempty"`
		FontSize       string `json:"fontSize,omitempty"`
		FontWeight     string `json:"fontWeight,omitempty"`
		FontStyle      string `json:"fontStyle,omitempty"`
		TextDecoration string `json:"textDecoration,omitempty"`
		Border         string `json:"border,omitempty"`
		BorderRadius   string `json:"borderRadius,omitempty"`
		Width          string `json:"width,omitempty"`
	}

	Image struct {
		URL    string  `json:"url"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
		Fit    string  `json:"fit,omitempty"`
	}

	// Arrow 节点之间非父子关系的连线
	Arrow struct {
		ID     string `json:"id"`
		From   string `json:"from"`
		To     string `json:"to"`
		Label  string `json:"label"`
		Delta1 Delta  `json:"delta1"`
		Delta2 Delta  `json:"delta2"`
	}

	Delta struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}

	// Summary 对parent下[Start,End]范围内子节点的概要
	Summary struct {
		ID     string `json:"id"`
		Label  string `json:"label"`
		Start  int    `json:"start"`
		End    int    `json:"end"`
		Parent string `json:"parent"`
	}

	Theme struct {
		Name    string            `json:"name"`
		Palette []string          `json:"palette"`
		CSSVar  map[string]string `json:"cssVar"`
	}

	Direction int
)

//goland:noinspection GoUnusedConst
const (
	Left  Direction = 0
	Right Direction = 1
	Side  Direction = 2

	Untitled     = "Untitled" // 无法解析主题内容时的默认值
	DefaultLabel = "-"        // 连线没有标题时的默认值
	FitContain   = "contain"
)

// DefaultDelta 连线两端控制点的默认偏移
var DefaultDelta = Delta{X: 50, Y: 50}

// NewDocument 创建文档,连线和概要初始化为空数组,保证json序列化为[]而不是null
func NewDocument(root *Node) *Document {
	return &Document{
		NodeData:  root,
		Arrows:    []Arrow{},
		Summaries: []Summary{},
	}
}

var objectIDCounter uint32

// GetId 生成36进制的随机ID,随机部分取自uuid,并混入自增计数
func GetId() string {
	u := uuid.New()
	v := binary.BigEndian.Uint64(u[:8])
	v ^= uint64(atomic.AddUint32(&objectIDCounter, 1)) << 32
	return strconv.FormatUint(v, 36)
}

// Bool 返回b的指针,方便给 Node.Expanded 赋值
func Bool(b bool) *bool { return &b }

// DirectionOf 返回d的指针,方便给 Document.Direction 赋值
func DirectionOf(d Direction) *Direction { return &d }
