package mindmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToOutlineHTML(t *testing.T) {
	doc := NewDocument(&Node{ID: "r", Topic: "root", Children: []*Node{
		{ID: "a", Topic: "A"},
		{ID: "b", Topic: "B"},
	}})

	page, err := ConvertToOutlineHTML(doc)
	require.NoError(t, err)
	out := string(page)
	assert.Contains(t, out, "<title>root</title>")
	assert.Contains(t, out, "<li>root\n<ul>\n<li>A</li>\n<li>B</li>\n</ul>\n</li>")

	_, err = ConvertToOutlineHTML(nil)
	assert.ErrorIs(t, err, ErrFormat)
}
