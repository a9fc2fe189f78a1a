// Package desktop 将文档发送给本机运行的桌面客户端
package desktop

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jan-bar/mindmap"
)

const (
	DefaultBaseURL = "http://127.0.0.1:6595"
	DefaultTimeout = 8 * time.Second
	PingInterval   = 100 * time.Millisecond

	pingPath   = "/ping"
	createPath = "/create-mindmap"
)

// ErrServiceTimeout 等待桌面客户端启动超时
var ErrServiceTimeout = errors.New("desktop service start timeout")

// Client 桌面客户端的本地http服务
type Client struct {
	BaseURL string
	Timeout time.Duration // 等待服务可用的最长时间
	HTTP    *http.Client
	Log     *zap.Logger
}

// NewClient 使用默认参数创建客户端,baseURL为空时使用 DefaultBaseURL
func NewClient(baseURL string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		BaseURL: baseURL,
		Timeout: DefaultTimeout,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		Log:     log,
	}
}

// WaitForService 每 PingInterval 请求一次ping,直到服务返回2xx或超时
func (c *Client) WaitForService(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	limiter := rate.NewLimiter(rate.Every(PingInterval), 1)
	for attempt := 1; ; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w after %d attempts", ErrServiceTimeout, attempt-1)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+pingPath, nil)
		if err != nil {
			return err
		}
		resp, err := c.HTTP.Do(req)
		if err != nil {
			c.Log.Debug("desktop ping failed", zap.Int("attempt", attempt), zap.Error(err))
			continue // 服务还未启动,继续等待
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			c.Log.Debug("desktop service ready", zap.Int("attempt", attempt))
			return nil
		}
	}
}

// Send 发送文档,source为文档来源
func (c *Client) Send(ctx context.Context, doc *mindmap.Document, source string) error {
	data, err := mindmap.ConvertToJSON(doc)
	if err != nil {
		return err
	}
	body, err := json.Marshal(struct {
		Mindmap string `json:"mindmap"` // 文档需要序列化为字符串
		Source  string `json:"source"`
	}{Mindmap: string(data), Source: source})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+createPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("send mindmap: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("send mindmap: unexpected status %s", resp.Status)
	}
	c.Log.Info("mindmap sent to desktop", zap.String("topic", doc.NodeData.Topic))
	return nil
}

// Launch 等待服务可用后发送文档
func (c *Client) Launch(ctx context.Context, doc *mindmap.Document, source string) error {
	if err := c.WaitForService(ctx); err != nil {
		return err
	}
	return c.Send(ctx, doc, source)
}
