package main

import (
	"errors"

	"github.com/jan-bar/mindmap"
)

// 进程退出码
const (
	ExitSuccess     = 0
	ExitError       = 1 // 参数错误或运行失败
	ExitConfigError = 2 // 配置文件缺失或校验失败
	ExitDataError   = 3 // 源文件格式错误
)

// configError 配置文件错误,退出码为 ExitConfigError
type configError struct{ err error }

func (e *configError) Error() string { return "config: " + e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var ce *configError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &ce):
		return ExitConfigError
	case errors.Is(err, mindmap.ErrFormat):
		return ExitDataError
	default:
		return ExitError
	}
}
