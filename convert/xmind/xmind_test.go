package xmind

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jan-bar/mindmap"
)

// buildZip 按顺序写入压缩包成员
func buildZip(t *testing.T, files ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i := 0; i+1 < len(files); i += 2 {
		w, err := zw.Create(files[i])
		require.NoError(t, err)
		_, err = w.Write([]byte(files[i+1]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func importBytes(t *testing.T, data []byte) ([]*mindmap.Document, error) {
	t.Helper()
	return Import(bytes.NewReader(data), int64(len(data)))
}

const contentJSON = `[{
  "id": "sheet1",
  "title": "Sheet 1",
  "topicPositioning": "fixed",
  "rootTopic": {
    "id": "root",
    "title": " Central ",
    "style": {"id": "s", "properties": {"svg:fill": "#ff0000", "fo:color": "#ffffff", "shape-class": "x"}},
    "children": {
      "attached": [
        {"id": "t1", "title": "One", "branch": "folded", "labels": ["a", " b "],
         "notes": {"plain": {"content": "note"}}, "href": "https://example.com",
         "image": {"src": "xap:resources/a.png", "width": 100, "height": 50}},
        {"id": "t2", "title": "", "labels": {"label": "x,y"}},
        {"id": "t3", "title": "Three", "branch": "expanded", "labels": "solo"}
      ],
      "summary": [{"id": "st1", "title": "Sum"}],
      "detached": [{"id": "free", "title": "Floating"}]
    },
    "summaries": [
      {"id": "s1", "range": "(0,1)", "topicId": "st1"},
      {"id": "s2", "range": "(1,2)", "topicId": "missing"}
    ]
  },
  "relationships": [
    {"id": "r1", "end1Id": "t1", "end2Id": "t2"},
    {"id": "r2", "end1Id": "t2", "end2Id": "t3", "title": "rel",
     "controlPoints": {"0": {"x": 10, "y": -5}, "1": {"amount": 0.3, "angle": 1}}}
  ],
  "theme": {"id": "th", "title": "Snow", "centralTopic": {"properties": {"svg:fill": "#000000"}}}
}, {
  "id": "sheet2",
  "title": "Empty"
}]`

func TestImportJSON(t *testing.T) {
	docs, err := importBytes(t, buildZip(t, Manifest, `{}`, ContentJson, contentJSON))
	require.NoError(t, err)
	require.Len(t, docs, 1) // 没有中心主题的sheet被忽略

	doc := docs[0]
	require.NoError(t, doc.Check())

	root := doc.NodeData
	assert.Equal(t, "Central", root.Topic)
	assert.Equal(t, &mindmap.Style{Color: "#ffffff", Background: "#ff0000"}, root.Style)
	assert.Nil(t, root.Expanded)
	require.Len(t, root.Children, 3) // summary和detached不是子节点

	t1, t2, t3 := root.Children[0], root.Children[1], root.Children[2]
	require.NotNil(t, t1.Expanded)
	assert.False(t, *t1.Expanded)
	assert.Equal(t, []string{"a", "b"}, t1.Tags)
	assert.Equal(t, "note", t1.Note)
	assert.Equal(t, "https://example.com", t1.HyperLink)
	assert.Equal(t, &mindmap.Image{URL: "xap:resources/a.png", Width: 100, Height: 50, Fit: mindmap.FitContain}, t1.Image)

	assert.Equal(t, mindmap.Untitled, t2.Topic)
	assert.Equal(t, []string{"x,y"}, t2.Tags)
	assert.Nil(t, t2.Expanded)

	require.NotNil(t, t3.Expanded)
	assert.True(t, *t3.Expanded)
	assert.Equal(t, []string{"solo"}, t3.Tags)

	assert.Equal(t, []mindmap.Summary{{ID: "s1", Label: "Sum", Start: 0, End: 1, Parent: "root"}}, doc.Summaries)

	require.Len(t, doc.Arrows, 2)
	assert.Equal(t, mindmap.Arrow{
		ID: "r1", From: "t1", To: "t2", Label: mindmap.DefaultLabel,
		Delta1: mindmap.Delta{X: 50, Y: 50}, Delta2: mindmap.Delta{X: 50, Y: 50},
	}, doc.Arrows[0])
	assert.Equal(t, "rel", doc.Arrows[1].Label)
	assert.Equal(t, mindmap.Delta{X: 10, Y: -5}, doc.Arrows[1].Delta1)
	assert.Equal(t, mindmap.DefaultDelta, doc.Arrows[1].Delta2)

	require.NotNil(t, doc.Direction)
	assert.Equal(t, mindmap.Side, *doc.Direction)
	require.NotNil(t, doc.Theme)
	assert.Equal(t, "Snow", doc.Theme.Name)
	assert.Equal(t, "#000000", doc.Theme.CSSVar["--root-bgcolor"])
}

const contentXML = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<xmap-content xmlns="urn:xmind:xmap:xmlns:content:2.0" xmlns:xlink="http://www.w3.org/1999/xlink" version="2.0">
  <sheet id="sheet1">
    <topic id="root" structure-class="org.xmind.ui.map.unbalanced" style-id="st-root">
      <title>Central</title>
      <children>
        <topics type="attached">
          <topic id="t1" branch="folded" xlink:href="https://example.com">
            <title>One</title>
            <labels><label>a</label><label>b</label></labels>
            <notes><plain>note</plain></notes>
          </topic>
          <topic id="t2"><title>Two</title></topic>
          <topic id="t3"><title>Three</title></topic>
        </topics>
        <topics type="summary">
          <topic id="st1"><title>Sum</title></topic>
        </topics>
      </children>
      <summaries>
        <summary id="s1" range="(1,2)" topic-id="st1"/>
      </summaries>
    </topic>
    <title>Sheet 1</title>
    <relationships>
      <relationship id="r1" end1="t1" end2="t3">
        <control-points>
          <control-point index="0"><position svg:x="12" svg:y="34" xmlns:svg="http://www.w3.org/2000/svg"/></control-point>
        </control-points>
      </relationship>
    </relationships>
  </sheet>
</xmap-content>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<xmap-styles xmlns="urn:xmind:xmap:xmlns:style:2.0" xmlns:fo="http://www.w3.org/1999/XSL/Format" xmlns:svg="http://www.w3.org/2000/svg">
  <styles>
    <style id="st-root" type="topic">
      <topic-properties fo:color="#ffffff" svg:fill="#336699" border-line-width="2pt" shape-class="x"/>
    </style>
  </styles>
</xmap-styles>`

func TestImportXML(t *testing.T) {
	docs, err := importBytes(t, buildZip(t, ContentXml, contentXML, StylesXml, stylesXML))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	require.NoError(t, doc.Check())
	root := doc.NodeData
	assert.Equal(t, "Central", root.Topic)
	assert.Equal(t, &mindmap.Style{
		Color:      "#ffffff",
		Background: "#336699",
		Border:     "2pt solid #000000",
	}, root.Style)

	require.Len(t, root.Children, 3)
	t1 := root.Children[0]
	assert.Equal(t, "https://example.com", t1.HyperLink)
	assert.Equal(t, []string{"a", "b"}, t1.Tags)
	assert.Equal(t, "note", t1.Note)
	require.NotNil(t, t1.Expanded)
	assert.False(t, *t1.Expanded)

	assert.Equal(t, []mindmap.Summary{{ID: "s1", Label: "Sum", Start: 1, End: 2, Parent: "root"}}, doc.Summaries)

	require.Len(t, doc.Arrows, 1)
	assert.Equal(t, "t1", doc.Arrows[0].From)
	assert.Equal(t, "t3", doc.Arrows[0].To)
	assert.Equal(t, mindmap.Delta{X: 12, Y: 34}, doc.Arrows[0].Delta1)
	assert.Equal(t, mindmap.DefaultDelta, doc.Arrows[0].Delta2)
	assert.Nil(t, doc.Direction)
}

func TestImportJSONPreferred(t *testing.T) {
	// 同时存在时只读取content.json
	docs, err := importBytes(t, buildZip(t,
		ContentXml, contentXML,
		ContentJson, `[{"id":"s","rootTopic":{"id":"r","title":"from json"}}]`))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "from json", docs[0].NodeData.Topic)
	assert.Nil(t, docs[0].NodeData.Children)
}

func TestImportFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		data func(t *testing.T) []byte
	}{
		{name: "no content", data: func(t *testing.T) []byte {
			return buildZip(t, Manifest, `{}`, Metadata, `{}`)
		}},
		{name: "bad content.json", data: func(t *testing.T) []byte {
			return buildZip(t, ContentJson, `{not json`, ContentXml, contentXML)
		}},
		{name: "no root topic", data: func(t *testing.T) []byte {
			return buildZip(t, ContentJson, `[{"id":"s"}]`)
		}},
		{name: "bad content.xml", data: func(t *testing.T) []byte {
			return buildZip(t, ContentXml, `<xmap-content><sheet>`)
		}},
		{name: "not a zip", data: func(t *testing.T) []byte {
			return []byte("plain text")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := importBytes(t, tt.data(t))
			assert.ErrorIs(t, err, mindmap.ErrFormat)
			assert.Nil(t, docs)
		})
	}
}

func TestImportRaw(t *testing.T) {
	docs, err := importBytes(t, []byte(contentJSON))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Central", docs[0].NodeData.Topic)

	docs, err = importBytes(t, []byte(contentXML))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Nil(t, docs[0].NodeData.Style) // 没有styles.xml
}

func TestImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.xmind")
	require.NoError(t, os.WriteFile(path, buildZip(t, ContentJson, contentJSON), 0644))

	docs, err := ImportFile(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	sheets, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Sheet 1", sheets[0].Title)
}

func TestGeneratedIDs(t *testing.T) {
	doc := Convert(&Sheet{RootTopic: &Topic{Children: &Children{Attached: []*Topic{{Title: "a"}, {Title: "b"}}}}})
	require.NoError(t, doc.Check())
	assert.Equal(t, mindmap.Untitled, doc.NodeData.Topic)
	assert.Equal(t, []mindmap.Arrow{}, doc.Arrows)
	assert.Equal(t, []mindmap.Summary{}, doc.Summaries)
}

func TestNestedSummaries(t *testing.T) {
	// 每一层的概要都追加到同一个数组
	sheet := &Sheet{RootTopic: &Topic{
		ID: "root", Title: "root",
		Children: &Children{
			Attached: []*Topic{{
				ID: "a", Title: "a",
				Children: &Children{
					Attached: []*Topic{{ID: "a1", Title: "a1"}, {ID: "a2", Title: "a2"}},
					Summary:  []*Topic{{ID: "sa", Title: "inner"}},
				},
				Summaries: []Summary{{ID: "s-inner", Range: "(0,1)", TopicID: "sa"}},
			}},
			Summary: []*Topic{{ID: "sr", Title: "outer"}},
		},
		Summaries: []Summary{{ID: "s-outer", Range: "(0,0)", TopicID: "sr"}},
	}}
	doc := Convert(sheet)
	assert.Equal(t, []mindmap.Summary{
		{ID: "s-outer", Label: "outer", Start: 0, End: 0, Parent: "root"},
		{ID: "s-inner", Label: "inner", Start: 0, End: 1, Parent: "a"},
	}, doc.Summaries)
}

func TestLabels(t *testing.T) {
	tests := []struct {
		in   string
		want Labels
	}{
		{in: `"a, b,,c"`, want: Labels{"a", "b", "c"}},
		{in: `["x", " ", "y"]`, want: Labels{"x", "y"}},
		{in: `{"label": "one"}`, want: Labels{"one"}},
		{in: `{"label": ["p", "q"]}`, want: Labels{"p", "q"}},
		{in: `{"label": "a,b"}`, want: Labels{"a,b"}},
		{in: `{"label": 7}`, want: nil},
		{in: `[1, "a", null, true, {"k": "v"}]`, want: Labels{"1", "a", "true"}},
		{in: `{}`, want: nil},
		{in: `""`, want: nil},
		{in: `123`, want: nil},
		{in: `null`, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var l Labels
			require.NoError(t, json.Unmarshal([]byte(tt.in), &l))
			assert.Equal(t, tt.want, l)
		})
	}
}

func TestImportOddLabels(t *testing.T) {
	docs, err := importBytes(t, buildZip(t, ContentJson,
		`[{"id":"s","rootTopic":{"id":"r","title":"root","labels":[1,"a"],
		"children":{"attached":[{"id":"c","title":"c","labels":{"label":{"x":1}}}]}}}]`))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	root := docs[0].NodeData
	assert.Equal(t, []string{"1", "a"}, root.Tags)
	require.Len(t, root.Children, 1)
	assert.Nil(t, root.Children[0].Tags)
}
