package mindmap

import (
	"io"
	"strconv"
	"strings"
	"text/template"
)

const (
	HighlightSuffix = " (You Should Insert Sub-Node Here)"

	DefaultMarkdownName   = "default"
	DefaultMarkdownFormat = "{{Repeat \"  \" (Indent ." + MarkdownKeyDeep + ")}}- {{." +
		MarkdownKeyTopic + "}}\n"

	MarkdownKeyDeep   = "Deep" // 所在层级,>=1
	MarkdownKeyTopic  = "Topic"
	MarkdownKeyTags   = "Tags"
	MarkdownKeyNote   = "Note"
	MarkdownKeyLink   = "HyperLink"
	MarkdownKeyFolded = "Folded"
)

// ConvertToMarkdown 将节点树转换为缩进列表,每层缩进两个空格
//
//	highlightID: 不为空时,匹配的节点加粗并增加 HighlightSuffix
func ConvertToMarkdown(root *Node, highlightID string) string {
	var md strings.Builder
	_ = root.Range(func(deep int, nd *Node) error {
		md.WriteString(strings.Repeat("  ", deep-1))
		if highlightID != "" && nd.ID == highlightID {
			md.WriteString("- **" + nd.Topic + HighlightSuffix + "**\n")
		} else {
			md.WriteString("- " + nd.Topic + "\n")
		}
		return nil
	})
	return md.String()
}

// SaveToMarkdown 按模板将文档保存为markdown
//
//	format: key为 DefaultMarkdownName 时修改默认模板,key为数字时表示该层级使用的模板
func (d *Document) SaveToMarkdown(w io.Writer, format map[string]string) error {
	if d == nil || d.NodeData == nil {
		return NewFormatError("document", "nodeData is null", nil)
	}

	defText, ok := format[DefaultMarkdownName]
	if !ok {
		defText = DefaultMarkdownFormat
	}

	tpl, err := template.New(DefaultMarkdownName).Funcs(template.FuncMap{
		"Repeat": strings.Repeat, // 注册用到的方法
		"Indent": func(deep int) int { return deep - 1 },
		"SplitLines": func(s interface{}, sep string) []string {
			switch ss := s.(type) {
			case string:
				return strings.FieldsFunc(ss, func(r rune) bool {
					return strings.ContainsRune(sep, r) // 匹配到分隔符
				})
			default:
				return nil
			}
		},
	}).Parse(defText)
	if err != nil {
		return err
	}

	for k, v := range format {
		if k == DefaultMarkdownName {
			continue
		}
		// 对每个层级创建自定义渲染模板
		if _, err = tpl.New(k).Parse(v); err != nil {
			return err
		}
	}

	return d.NodeData.Range(func(deep int, current *Node) error {
		data := map[string]interface{}{
			MarkdownKeyDeep:  deep,
			MarkdownKeyTopic: current.Topic,
		}
		if len(current.Tags) > 0 {
			data[MarkdownKeyTags] = current.Tags
		}
		if current.Note != "" {
			data[MarkdownKeyNote] = current.Note
		}
		if current.HyperLink != "" {
			data[MarkdownKeyLink] = current.HyperLink
		}
		if current.Expanded != nil && !*current.Expanded {
			data[MarkdownKeyFolded] = true
		}

		tw := tpl.Lookup(strconv.Itoa(deep))
		if tw == nil {
			tw = tpl.Lookup(DefaultMarkdownName)
		}
		return tw.Execute(w, data)
	})
}
