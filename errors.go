package mindmap

import (
	"errors"
	"fmt"
)

// ErrFormat 所有 FormatError 都满足 errors.Is(err, ErrFormat)
var ErrFormat = errors.New("invalid format")

// FormatError 源文件缺少必须的顶层结构,整个转换失败,不会返回部分结果
type FormatError struct {
	Format string // freemind,xmind,json...
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("invalid %s format: %s", e.Format, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// NewFormatError 创建格式错误,err可以为nil
func NewFormatError(format, reason string, err error) error {
	return &FormatError{Format: format, Reason: reason, Err: err}
}
