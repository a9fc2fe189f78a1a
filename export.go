package mindmap

import (
	"io"
	"sort"
)

// Exporter 一种导出格式
type Exporter struct {
	Ext    string // 保存文件后缀名
	Export func(w io.Writer, d *Document) error
}

// Exporters 所有文本类导出格式,图片导出依赖渲染器,见 ExportImage
var Exporters = map[string]Exporter{
	"json": {Ext: ".json", Export: func(w io.Writer, d *Document) error {
		data, err := ConvertToJSON(d)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}},
	"markdown": {Ext: ".md", Export: func(w io.Writer, d *Document) error {
		if d == nil || d.NodeData == nil {
			return NewFormatError("document", "nodeData is null", nil)
		}
		_, err := io.WriteString(w, ConvertToMarkdown(d.NodeData, ""))
		return err
	}},
	"html": {Ext: ".html", Export: func(w io.Writer, d *Document) error {
		page, err := ConvertToHTML(d, nil)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, page)
		return err
	}},
	"outline": {Ext: ".outline.html", Export: func(w io.Writer, d *Document) error {
		page, err := ConvertToOutlineHTML(d)
		if err != nil {
			return err
		}
		_, err = w.Write(page)
		return err
	}},
}

// ExportFormats 返回排好序的导出格式名称
func ExportFormats() []string {
	res := make([]string, 0, len(Exporters))
	for k := range Exporters {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}
