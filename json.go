package mindmap

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed assets/document.schema.json
var documentSchema string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("document.schema.json", documentSchema)
	})
	return schema, schemaErr
}

// ConvertToJSON 将文档序列化为json
func ConvertToJSON(d *Document) ([]byte, error) {
	if d == nil || d.NodeData == nil {
		return nil, NewFormatError("document", "nodeData is null", nil)
	}
	return json.Marshal(d)
}

// LoadJSON 加载统一格式的json文档,先按schema校验结构,再检查节点约束
func LoadJSON(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err = dec.Decode(&raw); err != nil {
		return nil, NewFormatError("json", "decode document", err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err = sch.Validate(raw); err != nil {
		return nil, NewFormatError("json", "schema validation", err)
	}

	var doc Document
	if err = json.Unmarshal(data, &doc); err != nil {
		return nil, NewFormatError("json", "decode document", err)
	}
	if err = doc.Check(); err != nil {
		return nil, NewFormatError("json", "check document", err)
	}
	if doc.Arrows == nil {
		doc.Arrows = []Arrow{}
	}
	if doc.Summaries == nil {
		doc.Summaries = []Summary{}
	}
	return &doc, nil
}
