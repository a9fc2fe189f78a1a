package mindmap

import (
	"strconv"
	"strings"
)

// SummaryRef 外部格式中的概要声明,Range格式为 (start,end)
type SummaryRef struct {
	ID      string
	Range   string
	TopicID string
}

// SummaryTopic 被概要声明引用的主题,只需要ID和标题
type SummaryTopic struct {
	ID    string
	Title string
}

// ParseRange 解析 "(start,end)" 格式的范围,定位逗号后去掉两侧括号
func ParseRange(r string) (start, end int, ok bool) {
	left, right, found := strings.Cut(r, ",")
	if !found {
		return 0, 0, false
	}
	left = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(left), "(["))
	right = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(right), ")]"))

	var err error
	if start, err = strconv.Atoi(left); err != nil {
		return 0, 0, false
	}
	if end, err = strconv.Atoi(right); err != nil {
		return 0, 0, false
	}
	return start, end, true
}

// ResolveSummaries 在兄弟概要主题中查找每个概要声明引用的主题,结果追加到out
// 找不到引用主题或范围无法解析的概要直接丢弃
func ResolveSummaries(parentID string, refs []SummaryRef, topics []SummaryTopic, out *[]Summary) {
	for _, ref := range refs {
		for _, tp := range topics {
			if tp.ID != ref.TopicID {
				continue
			}
			start, end, ok := ParseRange(ref.Range)
			if !ok {
				break
			}
			id := ref.ID
			if id == "" {
				id = GetId()
			}
			*out = append(*out, Summary{
				ID:     id,
				Label:  tp.Title,
				Start:  start,
				End:    end,
				Parent: parentID,
			})
			break
		}
	}
}

// NewArrow 创建连线,没有标题时为 DefaultLabel,控制点为nil时使用 DefaultDelta
// 不检查目标节点是否存在
func NewArrow(id, from, to, label string, delta1, delta2 *Delta) Arrow {
	if id == "" {
		id = GetId()
	}
	if label == "" {
		label = DefaultLabel
	}
	a := Arrow{ID: id, From: from, To: to, Label: label, Delta1: DefaultDelta, Delta2: DefaultDelta}
	if delta1 != nil {
		a.Delta1 = *delta1
	}
	if delta2 != nil {
		a.Delta2 = *delta2
	}
	return a
}
