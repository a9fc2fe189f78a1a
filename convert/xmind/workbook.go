package xmind

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/jan-bar/mindmap"
)

const formatName = "xmind"

// LoadFile 从文件加载xmind数据
// 当文件为
//
//	*.xmind 时会读取压缩包的content.json,不存在时读取content.xml
//	*.*     时会直接按照[*.json,*.xml]这几种格式读取
//
//goland:noinspection GoUnhandledErrorResult
func LoadFile(path string) ([]*Sheet, error) {
	fr, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	fi, err := fr.Stat()
	if err != nil {
		return nil, err
	}
	return Load(fr, fi.Size())
}

// Load 读取xmind数据,压缩包中content.json和content.xml都不存在时返回 mindmap.FormatError
func Load(r io.ReaderAt, size int64) ([]*Sheet, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		// 不是压缩包,尝试直接按照json或xml方式读取
		return loadRaw(io.NewSectionReader(r, 0, size))
	}

	sheets, err := loadZip(zr)
	if err != nil {
		return nil, err
	}
	return validSheets(sheets)
}

//goland:noinspection GoUnhandledErrorResult
func loadZip(zr *zip.Reader) ([]*Sheet, error) {
	rz, err := zr.Open(ContentJson)
	if err == nil {
		defer rz.Close()

		var sheets []*Sheet
		if err = json.NewDecoder(rz).Decode(&sheets); err != nil {
			return nil, mindmap.NewFormatError(formatName, "decode "+ContentJson, err)
		}
		return sheets, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	rx, err := zr.Open(ContentXml)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, mindmap.NewFormatError(formatName,
				"no "+ContentJson+" or "+ContentXml+" found", nil)
		}
		return nil, err
	}
	defer rx.Close()

	styles, err := loadStyles(zr)
	if err != nil {
		return nil, err
	}
	return decodeXML(rx, styles)
}

// loadStyles content.xml中的样式保存在styles.xml中,不存在时返回空
//
//goland:noinspection GoUnhandledErrorResult
func loadStyles(zr *zip.Reader) (map[string]mindmap.StyleProps, error) {
	rs, err := zr.Open(StylesXml)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer rs.Close()
	return decodeStyles(rs)
}

func loadRaw(sr *io.SectionReader) ([]*Sheet, error) {
	data, err := io.ReadAll(sr)
	if err != nil {
		return nil, err
	}

	var sheets []*Sheet
	if err = json.Unmarshal(data, &sheets); err == nil {
		return validSheets(sheets) // 尝试直接用json方式读取成功
	}

	if sheets, err = decodeXML(bytes.NewReader(data), nil); err == nil {
		return validSheets(sheets) // 尝试直接用xml方式读取成功
	}
	var fe *mindmap.FormatError
	if errors.As(err, &fe) {
		return nil, err
	}
	return nil, mindmap.NewFormatError(formatName, "not a zip, json or xml file", err)
}

// validSheets 剔除没有中心主题的sheet,一个都没有时返回错误
func validSheets(sheets []*Sheet) ([]*Sheet, error) {
	res := make([]*Sheet, 0, len(sheets))
	for _, st := range sheets {
		if st != nil && st.RootTopic != nil {
			res = append(res, st)
		}
	}
	if len(res) == 0 {
		return nil, mindmap.NewFormatError(formatName, "no sheet with root topic", nil)
	}
	return res, nil
}

// decodeXML 解析content.xml并转换为和content.json一致的结构
func decodeXML(r io.Reader, styles map[string]mindmap.StyleProps) ([]*Sheet, error) {
	var content xmlContent
	d := xml.NewDecoder(r)
	if err := d.Decode(&content); err != nil {
		return nil, mindmap.NewFormatError(formatName, "decode "+ContentXml, err)
	}
	if len(content.Sheets) == 0 {
		return nil, mindmap.NewFormatError(formatName, "missing sheet element", nil)
	}

	sheets := make([]*Sheet, 0, len(content.Sheets))
	for _, xs := range content.Sheets {
		sheets = append(sheets, xs.toSheet(styles))
	}
	return sheets, nil
}
