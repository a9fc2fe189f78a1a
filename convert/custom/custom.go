// Package custom 在统一格式和任意"扁平节点数组"之间转换
package custom

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/jan-bar/mindmap"
)

const formatName = "custom"

// Keys 自定义结构中各字段的json tag
type Keys struct {
	ID     string `yaml:"id" json:"id" validate:"required"`
	Topic  string `yaml:"topic" json:"topic" validate:"required"`
	Parent string `yaml:"parent" json:"parent" validate:"required"`
	IsRoot string `yaml:"isRoot" json:"isRoot"`
}

// YouDao 有道云笔记思维导图使用的字段
var YouDao = Keys{ID: "id", Topic: "topic", Parent: "parentid", IsRoot: "isroot"}

// LoadCustom 根据符合要求的任意结构加载
//
//	param
//	  data:
//	    方式1:
//	      使用如下方式进行调用,根节点没有父节点,其他节点均设置父节点ID
//	      LoadCustom([]Nodes{{"root","top"},{"123","one","root"}},Keys{"id","topic","parentId",""})
//	    方式2:
//	      传json string: data := `[{"a":"1","b":"main topic"},{"a":"2","b":"topic1","c":"1"}]`
//	      LoadCustom(data,Keys{"a","b","c",""})
//	  keys.IsRoot: 该字段为bool类型,true表示根节点,为空时以没有父节点ID判断根节点
//	return
//	  *mindmap.Document: 生成的文档,保留原始ID
//	  error: 返回错误
func LoadCustom(data interface{}, keys Keys) (*mindmap.Document, error) {
	var (
		byteData []byte
		err      error
	)
	switch td := data.(type) {
	case string:
		byteData = []byte(td)
	case []byte:
		byteData = td
	default:
		byteData, err = json.Marshal(data)
		if err != nil {
			return nil, err
		}
	}

	newStruct := func(name, tag string) reflect.StructField {
		return reflect.StructField{
			Name: name,
			Type: reflect.TypeOf(""),
			Tag:  reflect.StructTag(`json:"` + tag + `"`),
		}
	}

	stuField := []reflect.StructField{
		newStruct("Id", keys.ID),
		newStruct("Topic", keys.Topic),
		newStruct("ParentId", keys.Parent),
	}
	if keys.IsRoot != "" {
		stuField = append(stuField, reflect.StructField{
			Name: "IsRoot",
			Type: reflect.TypeOf(true),
			Tag:  reflect.StructTag(`json:"` + keys.IsRoot + `"`),
		})
	}

	// 动态创建一个结构体,并new该结构体数组的对象
	nodes := reflect.New(reflect.SliceOf(reflect.StructOf(stuField)))

	// 通过json库将传入对象转换为动态生成的对象
	if err = json.Unmarshal(byteData, nodes.Interface()); err != nil {
		return nil, mindmap.NewFormatError(formatName, "decode nodes", err)
	}

	var (
		node    = nodes.Elem()
		nodeLen = node.Len()
		root    *mindmap.Node
		byID    = make(map[string]*mindmap.Node, nodeLen)
		parents = make([]string, nodeLen)
		order   = make([]*mindmap.Node, nodeLen)
	)
	for i := 0; i < nodeLen; i++ {
		stu := node.Index(i)
		// 动态创建结构三个字段index已知,用如下方法获取每个字段的数据
		nd := &mindmap.Node{ID: stu.Field(0).String(), Topic: stu.Field(1).String()}
		if nd.ID == "" {
			nd.ID = mindmap.GetId()
		}
		if nd.Topic == "" {
			nd.Topic = mindmap.Untitled
		}
		if _, ok := byID[nd.ID]; ok {
			return nil, mindmap.NewFormatError(formatName, fmt.Sprintf("duplicate id %q", nd.ID), nil)
		}
		byID[nd.ID] = nd
		order[i] = nd
		parents[i] = stu.Field(2).String()

		// 优先根据IsRoot字段判断当前节点是根节点
		if (keys.IsRoot != "" && stu.Field(3).Bool()) || parents[i] == "" {
			if root != nil {
				return nil, mindmap.NewFormatError(formatName, "more than one root node", nil)
			}
			root = nd
			parents[i] = ""
		}
	}
	if root == nil {
		return nil, mindmap.NewFormatError(formatName, "missing root node", nil)
	}

	// 父节点可能出现在子节点之后,所以全部创建完成后再建立父子关系
	for i, nd := range order {
		if nd == root {
			continue
		}
		parent, ok := byID[parents[i]]
		if !ok {
			return nil, mindmap.NewFormatError(formatName,
				fmt.Sprintf("node %q: parent %q not found", nd.ID, parents[i]), nil)
		}
		parent.Children = append(parent.Children, nd)
	}

	// 存在环时部分节点无法从根节点遍历到
	if cnt := root.Count(); cnt != nodeLen {
		return nil, mindmap.NewFormatError(formatName,
			fmt.Sprintf("%d nodes unreachable from root", nodeLen-cnt), nil)
	}
	return mindmap.NewDocument(root), nil
}

// LoadYouDao 加载有道云笔记思维导图,节点数据在nodes字段中
func LoadYouDao(data []byte) (*mindmap.Document, error) {
	var node struct {
		Nodes json.RawMessage `json:"nodes"`
	}
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, mindmap.NewFormatError(formatName, "decode youdao", err)
	}
	if len(node.Nodes) == 0 {
		return nil, mindmap.NewFormatError(formatName, "missing nodes", nil)
	}
	return LoadCustom([]byte(node.Nodes), YouDao)
}

// SaveCustom 自定义字段,将数据写入指定对象中
//
//	param
//	  doc: 统一格式的文档
//	  keys.Parent:
//	        "parentId",表示根节点不添加父节点id
//	        "parentId,xx",表示根节点添加值为空的父节点id
//	  keys.IsRoot:
//	        "",表示所有节点都不添加
//	        "isRoot",表示所有节点都添加
//	        "isRoot,xx",表示只添加根节点
//	  v: 可以为 *string,*[]byte,*[]Nodes{} 这几种类型
//	  genId: 外部自定义生成id方案,为nil时使用原始ID
//	return
//	  error: 返回错误
func SaveCustom(doc *mindmap.Document, keys Keys, v interface{}, genId func(id string) string) error {
	if doc == nil || doc.NodeData == nil {
		return errors.New("nodeData is null")
	}
	if genId == nil {
		genId = func(id string) string { return id }
	}

	var (
		buf   strings.Builder
		quote = make([]byte, 0, 128)
		ok    bool
		rk    = 0
	)
	isRootKey := keys.IsRoot
	if isRootKey != "" {
		isRootKey, _, ok = strings.Cut(isRootKey, ",")
		if ok {
			rk = 1
		} else {
			rk = 3
		}
	}
	parentKey, _, rootParent := strings.Cut(keys.Parent, ",")

	writeKV := func(key string, val string) {
		buf.WriteString(`"`)
		buf.WriteString(key)
		buf.WriteString(`":`)
		// 主题内容可能出现'\n','\t'等特殊字符,需要安全的方法在两侧添加引号
		buf.Write(strconv.AppendQuote(quote[:0], val))
	}

	buf.WriteByte('[')
	var loop func(parent, nd *mindmap.Node)
	loop = func(parent, nd *mindmap.Node) {
		if parent != nil {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		writeKV(keys.ID, genId(nd.ID))
		buf.WriteByte(',')
		writeKV(keys.Topic, nd.Topic)
		if parent != nil {
			buf.WriteByte(',')
			writeKV(parentKey, genId(parent.ID))
			if rk&2 != 0 {
				buf.WriteString(`,"` + isRootKey + `":false`)
			}
		} else {
			if rootParent {
				buf.WriteByte(',')
				writeKV(parentKey, "")
			}
			if rk&1 != 0 {
				buf.WriteString(`,"` + isRootKey + `":true`)
			}
		}
		buf.WriteByte('}')
		for _, child := range nd.Children {
			loop(nd, child)
		}
	}
	loop(nil, doc.NodeData)
	buf.WriteByte(']')
	str := buf.String()

	// 根据不同类型设置数据
	switch vt := v.(type) {
	case *string:
		*vt = str
	case *[]byte:
		*vt = []byte(str)
	default:
		return json.Unmarshal([]byte(str), v)
	}
	return nil
}
