package mindmap

import (
	"encoding/json"
	"strconv"
	"strings"
)

// StyleKey 可以识别的外部样式属性名,不在列表中的属性全部忽略
type StyleKey string

const (
	KeyColor           StyleKey = "fo:color"
	KeyFontSize        StyleKey = "fo:font-size"
	KeyFontWeight      StyleKey = "fo:font-weight"
	KeyFontFamily      StyleKey = "fo:font-family"
	KeyFontStyle       StyleKey = "fo:font-style"
	KeyTextDecoration  StyleKey = "fo:text-decoration"
	KeyFill            StyleKey = "svg:fill"
	KeyBackgroundColor StyleKey = "background-color"
	KeyFillPlain       StyleKey = "fill"
	KeyStroke          StyleKey = "svg:stroke"
	KeyWidth           StyleKey = "svg:width"
	KeyBorderWidth     StyleKey = "border-line-width"
	KeyBorderColor     StyleKey = "border-line-color"
	KeyBorderStyle     StyleKey = "border-line-style"
	KeyBorderRadius    StyleKey = "border-radius"

	DefaultBorderStyle = "solid"
	DefaultBorderColor = "#000000"
)

var styleKeys = map[StyleKey]struct{}{
	KeyColor: {}, KeyFontSize: {}, KeyFontWeight: {}, KeyFontFamily: {},
	KeyFontStyle: {}, KeyTextDecoration: {}, KeyFill: {}, KeyBackgroundColor: {},
	KeyFillPlain: {}, KeyStroke: {}, KeyWidth: {}, KeyBorderWidth: {},
	KeyBorderColor: {}, KeyBorderStyle: {}, KeyBorderRadius: {},
}

// Known 判断是否为可以识别的样式属性
func (k StyleKey) Known() bool {
	_, ok := styleKeys[k]
	return ok
}

// StyleProps 外部格式的样式属性集合
type StyleProps map[StyleKey]string

// Set 只保存可以识别且不为空的属性
func (p StyleProps) Set(k StyleKey, v string) StyleProps {
	if v = strings.TrimSpace(v); v != "" && k.Known() {
		p[k] = v
	}
	return p
}

// UnmarshalJSON 属性值可能是字符串或数字,未知属性直接丢弃
func (p *StyleProps) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	props := make(StyleProps, len(raw))
	for k, v := range raw {
		key := StyleKey(k)
		if !key.Known() {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			props.Set(key, s)
			continue
		}
		var f float64
		if err := json.Unmarshal(v, &f); err == nil {
			props.Set(key, strconv.FormatFloat(f, 'f', -1, 64))
		}
	}
	*p = props
	return nil
}

// first 按顺序返回第一个不为空的属性值
func (p StyleProps) first(keys ...StyleKey) string {
	for _, k := range keys {
		if v := p[k]; v != "" {
			return v
		}
	}
	return ""
}

// MapStyle 将外部样式属性转换为统一样式,没有任何可用属性时返回nil
func MapStyle(p StyleProps) *Style {
	if len(p) == 0 {
		return nil
	}

	s := Style{
		Color:          p[KeyColor],
		Background:     p.first(KeyFill, KeyBackgroundColor, KeyFillPlain),
		FontFamily:     p[KeyFontFamily],
		FontSize:       p[KeyFontSize],
		FontWeight:     p[KeyFontWeight],
		FontStyle:      p[KeyFontStyle],
		TextDecoration: p[KeyTextDecoration],
		BorderRadius:   p[KeyBorderRadius],
		Width:          p[KeyWidth],
	}

	// 只有知道边框宽度时才生成边框,样式和颜色使用默认值
	if width := p[KeyBorderWidth]; width != "" {
		style := p.first(KeyBorderStyle)
		if style == "" {
			style = DefaultBorderStyle
		}
		color := p.first(KeyBorderColor, KeyStroke)
		if color == "" {
			color = DefaultBorderColor
		}
		s.Border = width + " " + style + " " + color
	}

	if s == (Style{}) {
		return nil
	}
	return &s
}
