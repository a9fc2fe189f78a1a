package custom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jan-bar/mindmap"
)

func TestLoadCustom(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		// a 表示节点id, b 表示主题内容, c 表示父节点id, d 表示是否为根节点
		data := `[{"a":"2","b":"topic1","c":"1"},{"a":"1","b":"main topic","d":true},
{"a":"3","b":"topic2","c":"1"},{"a":"4","b":"topic3","c":"2"}]`
		doc, err := LoadCustom(data, Keys{ID: "a", Topic: "b", Parent: "c", IsRoot: "d"})
		require.NoError(t, err)
		require.NoError(t, doc.Check())

		assert.Equal(t, "1", doc.NodeData.ID)
		assert.Equal(t, "main topic", doc.NodeData.Topic)
		require.Len(t, doc.NodeData.Children, 2)
		assert.Equal(t, "topic1", doc.NodeData.Children[0].Topic)
		assert.Equal(t, "topic2", doc.NodeData.Children[1].Topic)
		require.Len(t, doc.NodeData.Children[0].Children, 1)
		assert.Equal(t, "4", doc.NodeData.Children[0].Children[0].ID)
	})

	t.Run("struct", func(t *testing.T) {
		type Node struct {
			A string `json:"id"`
			B string `json:"topic"`
			C string `json:"parent,omitempty"`
		}
		data := []Node{{A: "1", B: "main topic"}, {A: "2", B: "", C: "1"}}
		doc, err := LoadCustom(data, Keys{ID: "id", Topic: "topic", Parent: "parent"})
		require.NoError(t, err)
		assert.Equal(t, 2, doc.NodeData.Count())
		assert.Equal(t, mindmap.Untitled, doc.NodeData.Children[0].Topic)
	})

	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `{`},
		{name: "duplicate id", data: `[{"id":"1","topic":"r"},{"id":"1","topic":"x","parent":"1"}]`},
		{name: "two roots", data: `[{"id":"1","topic":"r"},{"id":"2","topic":"x"}]`},
		{name: "no root", data: `[{"id":"1","topic":"r","parent":"2"},{"id":"2","topic":"x","parent":"1"}]`},
		{name: "missing parent", data: `[{"id":"1","topic":"r"},{"id":"2","topic":"x","parent":"9"}]`},
		{name: "cycle", data: `[{"id":"1","topic":"r"},{"id":"2","topic":"x","parent":"3"},{"id":"3","topic":"y","parent":"2"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCustom(tt.data, Keys{ID: "id", Topic: "topic", Parent: "parent"})
			assert.ErrorIs(t, err, mindmap.ErrFormat)
		})
	}
}

func TestLoadYouDao(t *testing.T) {
	data := []byte(`{"meta":{"name":"x"},"format":"node_array","nodes":[
{"id":"root","topic":"YouDao","isroot":true},
{"id":"n1","topic":"child","parentid":"root"}]}`)
	doc, err := LoadYouDao(data)
	require.NoError(t, err)
	assert.Equal(t, "YouDao", doc.NodeData.Topic)
	require.Len(t, doc.NodeData.Children, 1)
	assert.Equal(t, "n1", doc.NodeData.Children[0].ID)

	_, err = LoadYouDao([]byte(`{"meta":{}}`))
	assert.ErrorIs(t, err, mindmap.ErrFormat)
	_, err = LoadYouDao([]byte(`[`))
	assert.ErrorIs(t, err, mindmap.ErrFormat)
}

func TestSaveCustom(t *testing.T) {
	doc := mindmap.NewDocument(&mindmap.Node{ID: "r", Topic: "main\ttopic", Children: []*mindmap.Node{
		{ID: "a", Topic: "A", Children: []*mindmap.Node{{ID: "a1", Topic: `"quoted"`}}},
		{ID: "b", Topic: "B"},
	}})

	t.Run("string", func(t *testing.T) {
		var str string
		err := SaveCustom(doc, Keys{ID: "id", Topic: "topic", Parent: "parent"}, &str, nil)
		require.NoError(t, err)
		assert.JSONEq(t, `[
{"id":"r","topic":"main\ttopic"},
{"id":"a","topic":"A","parent":"r"},
{"id":"a1","topic":"\"quoted\"","parent":"a"},
{"id":"b","topic":"B","parent":"r"}]`, str)
	})

	t.Run("root parent and isRoot", func(t *testing.T) {
		var data []byte
		err := SaveCustom(doc, Keys{ID: "id", Topic: "topic", Parent: "pid,xx", IsRoot: "root,xx"}, &data,
			func(id string) string { return "n-" + id })
		require.NoError(t, err)
		assert.JSONEq(t, `[
{"id":"n-r","topic":"main\ttopic","pid":"","root":true},
{"id":"n-a","topic":"A","pid":"n-r"},
{"id":"n-a1","topic":"\"quoted\"","pid":"n-a"},
{"id":"n-b","topic":"B","pid":"n-r"}]`, string(data))
	})

	t.Run("struct", func(t *testing.T) {
		type Node struct {
			ID     string `json:"id"`
			Topic  string `json:"topic"`
			Parent string `json:"parent"`
			IsRoot bool   `json:"isRoot"`
		}
		var nodes []Node
		err := SaveCustom(doc, Keys{ID: "id", Topic: "topic", Parent: "parent", IsRoot: "isRoot"}, &nodes, nil)
		require.NoError(t, err)
		require.Len(t, nodes, 4)
		assert.True(t, nodes[0].IsRoot)
		assert.False(t, nodes[3].IsRoot)

		// 保存的数据可以原样加载回来
		back, err := LoadCustom(nodes, Keys{ID: "id", Topic: "topic", Parent: "parent", IsRoot: "isRoot"})
		require.NoError(t, err)
		assert.Equal(t, doc.NodeData, back.NodeData)
	})

	assert.Error(t, SaveCustom(&mindmap.Document{}, YouDao, new(string), nil))
}
