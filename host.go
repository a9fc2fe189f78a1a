package mindmap

import (
	"context"
	"fmt"
)

// Host 渲染器需要实现的接口,核心代码只通过这两个方法读写数据
type Host interface {
	GetCurrentDocument() *Document
	ReplaceDocument(*Document)
}

type ImageFormat string

const (
	PNG  ImageFormat = "png"
	JPEG ImageFormat = "jpeg"
	WEBP ImageFormat = "webp"

	CapturePadding = 300
	BgColorVar     = "--bgcolor"
)

// CaptureOptions 截图参数,由 ExportImage 根据当前主题生成
type CaptureOptions struct {
	Format     ImageFormat
	Background string
	Padding    int
	Quality    float64
}

// Rasterizer 可以把当前渲染结果截图的渲染器
type Rasterizer interface {
	Host
	Scale() float64
	SetScale(float64)
	Theme() *Theme
	Capture(ctx context.Context, opts CaptureOptions) ([]byte, error)
}

// ExportImage 截图前把缩放重置为1,截图后恢复,背景色使用当前主题的 --bgcolor
func ExportImage(ctx context.Context, r Rasterizer, format ImageFormat) ([]byte, error) {
	opts := CaptureOptions{Format: format, Padding: CapturePadding, Quality: 0.7}
	switch format {
	case PNG:
		opts.Quality = 1
	case JPEG, WEBP:
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	if th := r.Theme(); th != nil {
		opts.Background = th.CSSVar[BgColorVar]
	}

	scale := r.Scale()
	r.SetScale(1)
	defer r.SetScale(scale)

	return r.Capture(ctx, opts)
}

// ImageName 下载文件名为中心主题内容加格式后缀
func ImageName(h Host, format ImageFormat) string {
	if d := h.GetCurrentDocument(); d != nil && d.NodeData != nil {
		return d.NodeData.Topic + "." + string(format)
	}
	return Untitled + "." + string(format)
}
