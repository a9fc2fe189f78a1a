package mindmap

import (
	_ "embed"
	"encoding/json"
	"html"
	"strings"
)

var (
	//go:embed assets/renderer.js
	rendererJS string

	//go:embed assets/style.css
	rendererCSS string
)

// HTMLOptions 导出html的可选参数
type HTMLOptions struct {
	Title     string                 // 页面标题,为空时使用中心主题内容
	CustomCSS string                 // 追加的样式
	Config    map[string]interface{} // 覆盖默认的渲染参数
}

// DefaultHTMLConfig 导出的html为只读模式
func DefaultHTMLConfig() map[string]interface{} {
	return map[string]interface{}{
		"el":                   "#mind-elixir",
		"editable":             false,
		"draggable":            false,
		"contextMenu":          false,
		"mouseSelectionButton": 2,
	}
}

// ConvertToHTML 生成内嵌渲染脚本和数据的独立html页面
func ConvertToHTML(d *Document, opts *HTMLOptions) (string, error) {
	if d == nil || d.NodeData == nil {
		return "", NewFormatError("document", "nodeData is null", nil)
	}
	if opts == nil {
		opts = &HTMLOptions{}
	}

	config := DefaultHTMLConfig()
	for k, v := range opts.Config {
		config[k] = v
	}

	// json.Marshal 默认转义 <,>,&,数据中出现 </script> 也不会破坏页面
	data, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	cfg, err := json.Marshal(config)
	if err != nil {
		return "", err
	}

	title := opts.Title
	if title == "" {
		title = d.NodeData.Topic
	}

	var buf strings.Builder
	buf.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>`)
	buf.WriteString(html.EscapeString(title))
	buf.WriteString(`</title>
    <style>html, body {margin: 0;padding: 0;}#mind-elixir{width:100vw;height:100vh;}</style>
    <style>`)
	buf.WriteString(rendererCSS)
	buf.WriteString("</style>\n")
	if opts.CustomCSS != "" {
		buf.WriteString("    <style>")
		buf.WriteString(opts.CustomCSS)
		buf.WriteString("</style>\n")
	}
	buf.WriteString(`</head>
<body>
    <script>`)
	buf.WriteString(rendererJS)
	buf.WriteString(`</script>
    <div id="mind-elixir"></div>
    <script>
        const data = `)
	buf.Write(data)
	buf.WriteString("\n        const mindElixir = new MindElixirLite(")
	buf.Write(cfg)
	buf.WriteString(`)
        mindElixir.init(data)
    </script>
</body>
</html>
`)
	return buf.String(), nil
}
