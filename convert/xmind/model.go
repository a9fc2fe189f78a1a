// Package xmind 将xmind文件(content.json或content.xml)转换为统一的思维导图数据
package xmind

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/jan-bar/mindmap"
)

/*
下面的结构和content.json保持一致,content.xml会先转换为这里的结构
标签,子主题等在xmind中可能是单个值也可能是数组,在解析时统一转换为数组
*/
type (
	Sheet struct {
		ID               string         `json:"id"`
		Class            string         `json:"class,omitempty"`
		Title            string         `json:"title"`
		RootTopic        *Topic         `json:"rootTopic"`
		TopicPositioning string         `json:"topicPositioning,omitempty"`
		Theme            *Theme         `json:"theme,omitempty"`
		Relationships    []Relationship `json:"relationships,omitempty"`
	}

	Topic struct {
		ID             string    `json:"id"`
		Class          string    `json:"class,omitempty"`
		Title          string    `json:"title"`
		StructureClass string    `json:"structureClass,omitempty"`
		Style          *Style    `json:"style,omitempty"`
		Branch         string    `json:"branch,omitempty"`
		Labels         Labels    `json:"labels,omitempty"`
		Href           string    `json:"href,omitempty"`
		Image          *Image    `json:"image,omitempty"`
		Notes          *Notes    `json:"notes,omitempty"`
		Children       *Children `json:"children,omitempty"`
		Summaries      []Summary `json:"summaries,omitempty"`
	}

	Style struct {
		ID         string             `json:"id,omitempty"`
		Type       string             `json:"type,omitempty"`
		Properties mindmap.StyleProps `json:"properties,omitempty"`
	}

	// Children 按关系类型分组的子主题,只有 Attached 会成为子节点
	Children struct {
		Attached []*Topic `json:"attached,omitempty"`
		Summary  []*Topic `json:"summary,omitempty"`
		Detached []*Topic `json:"detached,omitempty"`
	}

	Summary struct {
		ID      string `json:"id"`
		Range   string `json:"range"`
		TopicID string `json:"topicId"`
	}

	Notes struct {
		Plain *NotesContent `json:"plain,omitempty"`
	}

	NotesContent struct {
		Content string `json:"content"`
	}

	Image struct {
		Src    string  `json:"src"`
		Width  float64 `json:"width,omitempty"`
		Height float64 `json:"height,omitempty"`
	}

	Relationship struct {
		ID            string         `json:"id"`
		Title         string         `json:"title,omitempty"`
		End1ID        string         `json:"end1Id"`
		End2ID        string         `json:"end2Id"`
		ControlPoints *ControlPoints `json:"controlPoints,omitempty"`
	}

	ControlPoints struct {
		Start *Point `json:"0,omitempty"`
		End   *Point `json:"1,omitempty"`
	}

	// Point 新版xmind的控制点可能只有amount,angle,此时没有x,y
	Point struct {
		X *float64 `json:"x,omitempty"`
		Y *float64 `json:"y,omitempty"`
	}

	Theme struct {
		ID           string `json:"id,omitempty"`
		Title        string `json:"title,omitempty"`
		CentralTopic *Style `json:"centralTopic,omitempty"`
		MainTopic    *Style `json:"mainTopic,omitempty"`
		SubTopic     *Style `json:"subTopic,omitempty"`
	}

	// Labels 兼容三种格式: "a,b" / {"label":"a"} / ["a","b"]
	Labels []string
)

//goland:noinspection GoUnusedConst,SpellCheckingInspection
const (
	ContentJson = "content.json"
	ContentXml  = "content.xml"
	StylesXml   = "styles.xml"
	Manifest    = "manifest.json"
	Metadata    = "metadata.json"

	BranchFolded = "folded"
)

// UnmarshalJSON 无法识别的格式当作没有标签,不影响整个文件的导入
func (l *Labels) UnmarshalJSON(data []byte) error {
	*l = nil
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*l = splitLabels(strings.Split(str, ","))
		return nil
	}

	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		*l = labelList(list)
		return nil
	}

	var obj struct {
		Label json.RawMessage `json:"label"`
	}
	if err := json.Unmarshal(data, &obj); err != nil || len(obj.Label) == 0 {
		return nil
	}
	// label对象只表示一个标签,字符串中的逗号不拆分
	if err := json.Unmarshal(obj.Label, &str); err == nil {
		*l = splitLabels([]string{str})
		return nil
	}
	if err := json.Unmarshal(obj.Label, &list); err == nil {
		*l = labelList(list)
	}
	return nil
}

// labelList 数字和布尔值转为字符串,其他类型丢弃
func labelList(list []json.RawMessage) Labels {
	src := make([]string, 0, len(list))
	for _, v := range list {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			continue
		}
		switch x := val.(type) {
		case string:
			src = append(src, x)
		case float64, bool:
			src = append(src, string(bytes.TrimSpace(v)))
		}
	}
	return splitLabels(src)
}

// splitLabels 去掉两侧空白,丢弃空标签
func splitLabels(src []string) Labels {
	var res Labels
	for _, s := range src {
		if s = strings.TrimSpace(s); s != "" {
			res = append(res, s)
		}
	}
	return res
}

// Delta 控制点不包含坐标时返回nil,调用者使用默认值
func (p *Point) Delta() *mindmap.Delta {
	if p == nil || (p.X == nil && p.Y == nil) {
		return nil
	}
	var d mindmap.Delta
	if p.X != nil {
		d.X = *p.X
	}
	if p.Y != nil {
		d.Y = *p.Y
	}
	return &d
}
