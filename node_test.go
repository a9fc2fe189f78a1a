package mindmap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree() *Node {
	return &Node{ID: "root", Topic: "root", Children: []*Node{
		{ID: "a", Topic: "A", Children: []*Node{{ID: "a1", Topic: "same"}}},
		{ID: "b", Topic: "B", Children: []*Node{{ID: "b1", Topic: "same"}}},
	}}
}

func TestNodeRange(t *testing.T) {
	var (
		ids  []string
		deep []int
	)
	err := testTree().Range(func(d int, nd *Node) error {
		ids = append(ids, nd.ID)
		deep = append(deep, d)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "a", "a1", "b", "b1"}, ids)
	assert.Equal(t, []int{1, 2, 3, 2, 3}, deep)

	stop := errors.New("stop")
	cnt := 0
	err = testTree().Range(func(int, *Node) error {
		if cnt++; cnt == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, cnt)
}

func TestNodeFind(t *testing.T) {
	root := testTree()
	require.NotNil(t, root.Find("b1"))
	assert.Equal(t, "same", root.Find("b1").Topic)
	assert.Nil(t, root.Find("none"))
	assert.Len(t, root.FindByTopic("same"), 2)
	assert.Equal(t, 5, root.Count())
}

func TestDocumentCheck(t *testing.T) {
	assert.NoError(t, NewDocument(testTree()).Check())
	assert.Error(t, (&Document{}).Check())

	dup := testTree()
	dup.Children[1].ID = "a"
	assert.Error(t, NewDocument(dup).Check())

	empty := testTree()
	empty.Children[0].Children = []*Node{}
	assert.Error(t, NewDocument(empty).Check())

	noTopic := testTree()
	noTopic.Children[0].Topic = ""
	assert.Error(t, NewDocument(noTopic).Check())
}

func TestGetId(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := GetId()
		require.NotEmpty(t, id)
		_, ok := seen[id]
		require.False(t, ok, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}
