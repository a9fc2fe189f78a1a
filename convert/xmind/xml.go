package xmind

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/jan-bar/mindmap"
)

/*
旧版xmind使用content.xml保存数据,下面的结构只用于解析xml
解析完成后通过 toSheet 转换为和content.json相同的结构
xml属性可能带有命名空间前缀(svg:x,xlink:href),tag中只写本地名称就可以匹配
*/
type (
	xmlContent struct {
		XMLName xml.Name   `xml:"xmap-content"`
		Sheets  []xmlSheet `xml:"sheet"`
	}

	xmlSheet struct {
		ID               string            `xml:"id,attr"`
		TopicPositioning string            `xml:"topic-positioning,attr"`
		Title            string            `xml:"title"`
		Topic            *xmlTopic         `xml:"topic"`
		Relationships    []xmlRelationship `xml:"relationships>relationship"`
	}

	xmlTopic struct {
		ID             string       `xml:"id,attr"`
		StructureClass string       `xml:"structure-class,attr"`
		Branch         string       `xml:"branch,attr"`
		Href           string       `xml:"href,attr"`
		StyleID        string       `xml:"style-id,attr"`
		Title          string       `xml:"title"`
		Labels         []string     `xml:"labels>label"`
		Notes          *xmlNotes    `xml:"notes"`
		Image          *xmlImage    `xml:"img"`
		Children       []xmlTopics  `xml:"children>topics"`
		Summaries      []xmlSummary `xml:"summaries>summary"`
	}

	xmlTopics struct {
		Type   string      `xml:"type,attr"`
		Topics []*xmlTopic `xml:"topic"`
	}

	xmlNotes struct {
		Plain string `xml:"plain"`
	}

	xmlImage struct {
		Src    string `xml:"src,attr"`
		Width  string `xml:"width,attr"`
		Height string `xml:"height,attr"`
	}

	xmlSummary struct {
		ID      string `xml:"id,attr"`
		Range   string `xml:"range,attr"`
		TopicID string `xml:"topic-id,attr"`
	}

	xmlRelationship struct {
		ID            string            `xml:"id,attr"`
		End1          string            `xml:"end1,attr"`
		End2          string            `xml:"end2,attr"`
		Title         string            `xml:"title"`
		ControlPoints []xmlControlPoint `xml:"control-points>control-point"`
	}

	xmlControlPoint struct {
		Index    string `xml:"index,attr"`
		Position *struct {
			X string `xml:"x,attr"`
			Y string `xml:"y,attr"`
		} `xml:"position"`
	}
)

func (xs *xmlSheet) toSheet(styles map[string]mindmap.StyleProps) *Sheet {
	st := &Sheet{
		ID:               xs.ID,
		Title:            strings.TrimSpace(xs.Title),
		TopicPositioning: xs.TopicPositioning,
	}
	if st.Title == "" {
		st.Title = "Sheet"
	}
	if xs.Topic != nil {
		st.RootTopic = xs.Topic.toTopic(styles)
	}

	for _, rel := range xs.Relationships {
		r := Relationship{
			ID:     rel.ID,
			Title:  strings.TrimSpace(rel.Title),
			End1ID: rel.End1,
			End2ID: rel.End2,
		}
		if len(rel.ControlPoints) > 0 {
			r.ControlPoints = &ControlPoints{}
			for i, cp := range rel.ControlPoints {
				idx := cp.Index
				if idx == "" {
					idx = strconv.Itoa(i)
				}
				switch idx {
				case "0":
					r.ControlPoints.Start = cp.point()
				case "1":
					r.ControlPoints.End = cp.point()
				}
			}
		}
		st.Relationships = append(st.Relationships, r)
	}
	return st
}

// point 没有position时返回nil,坐标解析失败当作0
func (cp *xmlControlPoint) point() *Point {
	if cp.Position == nil {
		return nil
	}
	x, _ := strconv.ParseFloat(cp.Position.X, 64)
	y, _ := strconv.ParseFloat(cp.Position.Y, 64)
	return &Point{X: &x, Y: &y}
}

func (xt *xmlTopic) toTopic(styles map[string]mindmap.StyleProps) *Topic {
	tp := &Topic{
		ID:             xt.ID,
		Title:          strings.TrimSpace(xt.Title),
		StructureClass: xt.StructureClass,
		Branch:         xt.Branch,
		Href:           xt.Href,
		Labels:         splitLabels(xt.Labels),
	}

	if props, ok := styles[xt.StyleID]; ok && xt.StyleID != "" {
		tp.Style = &Style{ID: xt.StyleID, Type: "topic", Properties: props}
	}

	if xt.Notes != nil {
		if plain := strings.TrimSpace(xt.Notes.Plain); plain != "" {
			tp.Notes = &Notes{Plain: &NotesContent{Content: plain}}
		}
	}

	if xt.Image != nil && xt.Image.Src != "" {
		w, _ := strconv.ParseFloat(xt.Image.Width, 64)
		h, _ := strconv.ParseFloat(xt.Image.Height, 64)
		tp.Image = &Image{Src: xt.Image.Src, Width: w, Height: h}
	}

	for _, group := range xt.Children {
		if len(group.Topics) == 0 {
			continue
		}
		if tp.Children == nil {
			tp.Children = &Children{}
		}
		topics := make([]*Topic, 0, len(group.Topics))
		for _, t := range group.Topics {
			if t != nil {
				topics = append(topics, t.toTopic(styles))
			}
		}
		switch group.Type {
		case "", "attached": // 没有type时默认为attached
			tp.Children.Attached = append(tp.Children.Attached, topics...)
		case "summary":
			tp.Children.Summary = append(tp.Children.Summary, topics...)
		case "detached":
			tp.Children.Detached = append(tp.Children.Detached, topics...)
		}
	}

	for _, s := range xt.Summaries {
		tp.Summaries = append(tp.Summaries, Summary{ID: s.ID, Range: s.Range, TopicID: s.TopicID})
	}
	return tp
}

// styleAttrs styles.xml中属性的本地名称和样式属性的对应关系
var styleAttrs = map[string]mindmap.StyleKey{
	"color":             mindmap.KeyColor,
	"font-size":         mindmap.KeyFontSize,
	"font-weight":       mindmap.KeyFontWeight,
	"font-family":       mindmap.KeyFontFamily,
	"font-style":        mindmap.KeyFontStyle,
	"text-decoration":   mindmap.KeyTextDecoration,
	"fill":              mindmap.KeyFill,
	"background-color":  mindmap.KeyBackgroundColor,
	"stroke":            mindmap.KeyStroke,
	"width":             mindmap.KeyWidth,
	"border-line-width": mindmap.KeyBorderWidth,
	"border-line-color": mindmap.KeyBorderColor,
	"border-line-style": mindmap.KeyBorderStyle,
}

// decodeStyles 解析styles.xml,返回 style id -> 样式属性
//
//	<style id="xx" type="topic"><topic-properties fo:color="#fff" svg:fill="#000"/></style>
func decodeStyles(r io.Reader) (map[string]mindmap.StyleProps, error) {
	var (
		d      = xml.NewDecoder(r)
		styles = make(map[string]mindmap.StyleProps)
		cur    string
	)
	for {
		tok, err := d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return styles, nil
			}
			return nil, mindmap.NewFormatError(formatName, "decode "+StylesXml, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "style" {
				cur = ""
				for _, a := range t.Attr {
					if a.Name.Local == "id" {
						cur = a.Value
					}
				}
				continue
			}
			if cur == "" || !strings.HasSuffix(t.Name.Local, "-properties") {
				continue
			}
			props := styles[cur]
			if props == nil {
				props = mindmap.StyleProps{}
				styles[cur] = props
			}
			for _, a := range t.Attr {
				if key, ok := styleAttrs[a.Name.Local]; ok {
					props.Set(key, a.Value)
				}
			}
		case xml.EndElement:
			if t.Name.Local == "style" {
				cur = ""
			}
		}
	}
}
