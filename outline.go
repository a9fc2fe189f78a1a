package mindmap

import (
	"bytes"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var outlineEngine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithXHTML()),
)

// ConvertToOutlineHTML 将markdown列表渲染为不依赖脚本的静态html
func ConvertToOutlineHTML(d *Document) ([]byte, error) {
	if d == nil || d.NodeData == nil {
		return nil, NewFormatError("document", "nodeData is null", nil)
	}

	var body bytes.Buffer
	if err := outlineEngine.Convert([]byte(ConvertToMarkdown(d.NodeData, "")), &body); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"UTF-8\" />\n<title>")
	buf.WriteString(html.EscapeString(d.NodeData.Topic))
	buf.WriteString("</title>\n</head>\n<body>\n")
	buf.Write(body.Bytes())
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}
