package mindmap

import (
	"errors"
	"fmt"
)

var errStop = errors.New("stop range")

// Range 从当前节点深度优先遍历所有子节点
//
//	param
//		f: 外部的回调,deep为所在层级,当前节点为1,返回错误时终止遍历
func (n *Node) Range(f func(deep int, node *Node) error) error {
	var loop func(int, *Node) error
	loop = func(deep int, nd *Node) error {
		if nd == nil {
			return nil
		}
		// 通过回调函数让调用者实现自己的逻辑
		if err := f(deep, nd); err != nil {
			return err
		}
		for _, child := range nd.Children {
			if err := loop(deep+1, child); err != nil {
				return err
			}
		}
		return nil
	}
	return loop(1, n)
}

// Find 根据ID查找节点,找不到返回nil
func (n *Node) Find(id string) (res *Node) {
	_ = n.Range(func(_ int, nd *Node) error {
		if nd.ID == id {
			res = nd // 找到则终止递归
			return errStop
		}
		return nil
	})
	return
}

// FindByTopic 根据主题内容查找所有匹配的节点
func (n *Node) FindByTopic(topic string) (res []*Node) {
	_ = n.Range(func(_ int, nd *Node) error {
		if nd.Topic == topic {
			res = append(res, nd)
		}
		return nil
	})
	return
}

// Count 返回当前节点及所有子节点数量
func (n *Node) Count() (cnt int) {
	_ = n.Range(func(int, *Node) error {
		cnt++
		return nil
	})
	return
}

// Check 检查文档是否满足统一模型的约束
//
//	1. 根节点存在
//	2. 所有节点ID不为空且不重复
//	3. 主题内容不为空,children存在时不为空数组
func (d *Document) Check() error {
	if d == nil || d.NodeData == nil {
		return errors.New("nodeData is null")
	}

	ids := make(map[string]struct{})
	return d.NodeData.Range(func(_ int, nd *Node) error {
		if nd.ID == "" {
			return fmt.Errorf("node %q: empty id", nd.Topic)
		}
		if _, ok := ids[nd.ID]; ok {
			return fmt.Errorf("node %q: duplicate id", nd.ID)
		}
		ids[nd.ID] = struct{}{}
		if nd.Topic == "" {
			return fmt.Errorf("node %q: empty topic", nd.ID)
		}
		if nd.Children != nil && len(nd.Children) == 0 {
			return fmt.Errorf("node %q: empty children", nd.ID)
		}
		return nil
	})
}
