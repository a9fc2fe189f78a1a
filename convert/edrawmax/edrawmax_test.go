package edrawmax

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jan-bar/mindmap"
)

func shape(id, typ, parent, text string) string {
	return `<Shape ID="` + id + `" Type="` + typ + `"><LevelData><SuperLevel V="` + parent +
		`"/></LevelData><Texts><Text><TextBlock><Text><pp><tp>` + text +
		`</tp></pp></Text></TextBlock></Text></Texts></Shape>`
}

func buildEddx(t *testing.T, pages map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create(pagePrefix)
	require.NoError(t, err)
	for name, data := range pages {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestImport(t *testing.T) {
	// 子节点出现在父节点之前,空文本的形状被忽略
	page1 := `<Page Name="p1">` +
		shape("3", "SubIdea", "2", "grandchild") +
		shape("2", "MainTopic", "1", "child") +
		shape("1", "MainIdea", "", "center") +
		shape("9", "Line", "", "") +
		`</Page>`
	page2 := `<Page Name="p2">` + shape("1", "MainIdea", "", "second") + `</Page>`

	data := buildEddx(t, map[string]string{"pages/page2.xml": page2, "pages/page1.xml": page1})
	docs, err := Import(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, docs, 2)

	doc := docs[0]
	require.NoError(t, doc.Check())
	assert.Equal(t, "center", doc.NodeData.Topic)
	require.Len(t, doc.NodeData.Children, 1)
	assert.Equal(t, "child", doc.NodeData.Children[0].Topic)
	require.Len(t, doc.NodeData.Children[0].Children, 1)
	assert.Equal(t, "grandchild", doc.NodeData.Children[0].Children[0].Topic)

	assert.Equal(t, "second", docs[1].NodeData.Topic)
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "not zip", data: []byte("x")},
		{name: "no pages", data: buildEddx(t, nil)},
		{name: "no main idea", data: buildEddx(t, map[string]string{
			"pages/p.xml": `<Page>` + shape("2", "MainTopic", "1", "child") + `</Page>`,
		})},
		{name: "missing parent", data: buildEddx(t, map[string]string{
			"pages/p.xml": `<Page>` + shape("1", "MainIdea", "", "c") + shape("2", "MainTopic", "7", "x") + `</Page>`,
		})},
		{name: "bad xml", data: buildEddx(t, map[string]string{"pages/p.xml": `<Page>`})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := Import(bytes.NewReader(tt.data), int64(len(tt.data)))
			assert.ErrorIs(t, err, mindmap.ErrFormat)
			assert.Nil(t, docs)
		})
	}
}
