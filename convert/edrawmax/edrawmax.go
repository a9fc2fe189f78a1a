// Package edrawmax 导入亿图脑图(*.eddx),每个page转换为一个文档
package edrawmax

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jan-bar/mindmap"
)

const (
	formatName = "edrawmax"
	pagePrefix = "pages/"
	mainIdea   = "MainIdea"
)

type (
	Page struct {
		XMLName xml.Name `xml:"Page"`
		Name    string   `xml:"Name,attr"`
		Shape   []Shape  `xml:"Shape"`
	}
	Shape struct {
		Type      string `xml:"Type,attr"`
		ID        string `xml:"ID,attr"`
		LevelData struct {
			SuperLevel struct {
				V string `xml:"V,attr"`
			} `xml:"SuperLevel"`
		} `xml:"LevelData"`
		Texts struct {
			Text []struct {
				TextBlock struct {
					Text struct {
						Pp struct {
							Tp struct {
								Text string `xml:",chardata"`
							} `xml:"tp"`
						} `xml:"pp"`
					} `xml:"Text"`
				} `xml:"TextBlock"`
			} `xml:"Text"`
		} `xml:"Texts"`
	}
)

// Title 第一个文本块的内容,为空表示不是脑图节点
func (s *Shape) Title() string {
	if len(s.Texts.Text) == 0 {
		return ""
	}
	return strings.TrimSpace(s.Texts.Text[0].TextBlock.Text.Pp.Tp.Text)
}

// ImportFile 加载eddx文件
//
//goland:noinspection GoUnhandledErrorResult
func ImportFile(path string) ([]*mindmap.Document, error) {
	fr, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	fi, err := fr.Stat()
	if err != nil {
		return nil, err
	}
	return Import(fr, fi.Size())
}

// Import 读取pages目录下所有页面,按文件名排序
func Import(r io.ReaderAt, size int64) ([]*mindmap.Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, mindmap.NewFormatError(formatName, "not a zip archive", err)
	}

	var pages []*zip.File
	for _, f := range zr.File {
		if f.Name != pagePrefix && strings.HasPrefix(f.Name, pagePrefix) {
			pages = append(pages, f)
		}
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Name < pages[j].Name })

	docs := make([]*mindmap.Document, 0, len(pages))
	for _, f := range pages {
		pp, err := readPage(f)
		if err != nil {
			return nil, err
		}
		doc, err := Convert(pp)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil, mindmap.NewFormatError(formatName, "no pages found", nil)
	}
	return docs, nil
}

//goland:noinspection GoUnhandledErrorResult
func readPage(f *zip.File) (*Page, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var pp Page
	if err = xml.NewDecoder(rc).Decode(&pp); err != nil {
		return nil, mindmap.NewFormatError(formatName, "decode "+f.Name, err)
	}
	return &pp, nil
}

// Convert 将一个页面转换为文档,子节点可能出现在父节点之前
func Convert(pp *Page) (*mindmap.Document, error) {
	var (
		root    *mindmap.Node
		byID    = make(map[string]*mindmap.Node, len(pp.Shape))
		parents = make(map[*mindmap.Node]string, len(pp.Shape))
		order   = make([]*mindmap.Node, 0, len(pp.Shape))
	)
	for i := range pp.Shape {
		shape := &pp.Shape[i]
		title := shape.Title()
		if title == "" {
			continue // 不为空的节点才是思维导图的节点
		}

		nd := &mindmap.Node{ID: shape.ID, Topic: title}
		if nd.ID == "" {
			nd.ID = mindmap.GetId()
		}
		if shape.Type == mainIdea { // 表示主节点
			if root != nil {
				return nil, mindmap.NewFormatError(formatName, "more than one main idea", nil)
			}
			root = nd
		} else {
			parents[nd] = shape.LevelData.SuperLevel.V
			order = append(order, nd)
		}
		byID[nd.ID] = nd
	}
	if root == nil {
		return nil, mindmap.NewFormatError(formatName, "missing main idea", nil)
	}

	for _, nd := range order {
		parent, ok := byID[parents[nd]]
		if !ok {
			return nil, mindmap.NewFormatError(formatName,
				fmt.Sprintf("shape %q: parent %q not found", nd.ID, parents[nd]), nil)
		}
		parent.Children = append(parent.Children, nd)
	}
	return mindmap.NewDocument(root), nil
}
