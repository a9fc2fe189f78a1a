// Package freemind 将FreeMind(*.mm)文件转换为统一的思维导图数据
package freemind

import "encoding/xml"

/*
下面的结构参照Freemind.xsd,只保留转换需要用到的字段
所有可能出现多次的子元素都用数组表示,只有一个元素时也是数组
*/
type (
	Map struct {
		XMLName xml.Name `xml:"map"`
		Version string   `xml:"version,attr"`
		Nodes   []*Node  `xml:"node"`
	}

	Node struct {
		ID              string `xml:"ID,attr"`
		Text            string `xml:"TEXT,attr"`
		Color           string `xml:"COLOR,attr"`
		BackgroundColor string `xml:"BACKGROUND_COLOR,attr"`
		Folded          string `xml:"FOLDED,attr"`
		Link            string `xml:"LINK,attr"`
		Position        string `xml:"POSITION,attr"`
		Style           string `xml:"STYLE,attr"`

		ArrowLinks   []ArrowLink   `xml:"arrowlink"`
		Attributes   []Attribute   `xml:"attribute"`
		LinkTargets  []ArrowLink   `xml:"linktarget"`
		Clouds       []Cloud       `xml:"cloud"`
		Edges        []Edge        `xml:"edge"`
		Fonts        []Font        `xml:"font"`
		Hooks        []Hook        `xml:"hook"`
		Icons        []Icon        `xml:"icon"`
		Nodes        []*Node       `xml:"node"`
		RichContents []RichContent `xml:"richcontent"`
	}

	ArrowLink struct {
		ID          string `xml:"ID,attr"`
		Color       string `xml:"COLOR,attr"`
		Source      string `xml:"SOURCE,attr"`
		Destination string `xml:"DESTINATION,attr"`
		StartArrow  string `xml:"STARTARROW,attr"`
		EndArrow    string `xml:"ENDARROW,attr"`
	}

	Attribute struct {
		Name  string `xml:"NAME,attr"`
		Value string `xml:"VALUE,attr"`
	}

	Cloud struct {
		Color string `xml:"COLOR,attr"`
	}

	Edge struct {
		Color string `xml:"COLOR,attr"`
		Style string `xml:"STYLE,attr"`
		Width string `xml:"WIDTH,attr"`
	}

	Font struct {
		Name   string `xml:"NAME,attr"`
		Size   string `xml:"SIZE,attr"`
		Bold   string `xml:"BOLD,attr"`
		Italic string `xml:"ITALIC,attr"`
	}

	Hook struct {
		Name string `xml:"NAME,attr"`
	}

	Icon struct {
		Builtin string `xml:"BUILTIN,attr"`
	}

	// RichContent 内部的html不解析,原样保存到 Inner 中
	RichContent struct {
		Type  string `xml:"TYPE,attr"`
		Inner string `xml:",innerxml"`
	}
)

const (
	RichNode = "NODE"
	RichNote = "NOTE"
)

// Rich 返回第一个指定类型的富文本内容
func (n *Node) Rich(typ string) (string, bool) {
	for _, rc := range n.RichContents {
		if rc.Type == typ {
			return rc.Inner, true
		}
	}
	return "", false
}
