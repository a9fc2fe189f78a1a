package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jan-bar/mindmap/convert/custom"
)

// Config 批量转换配置,yaml是json的超集,json格式的配置文件同样可以读取
type Config struct {
	// "from": "file:xxx.xmind",直接指定单个文件
	// "from": "dir:/a/b/*.xmind",通配符匹配目录下文件
	// "from": "recursive:/a/b/*.xmind",此时输入为[文件夹/通配符]
	From string `yaml:"from" validate:"required,startswith=file:|startswith=dir:|startswith=recursive:"`
	// 为空或auto时根据后缀名判断: .xmind,.mm,.eddx,.json,.mindmap
	FromType string `yaml:"fromType" validate:"omitempty,oneof=auto xmind freemind edrawmax json custom youdao"`
	// "fromType": "custom" 时,这里生效的字段名配置项
	FromCustom *custom.Keys `yaml:"fromCustom" validate:"omitempty"`
	// "to": "",为空则保存文件为 src-time.ext
	// "to": "/path"
	//    如果读取为file或dir模式,则保存文件为 /path/base(src).ext
	//    如果读取为recursive模式,则保存文件会创建相同层级路径 /path/rel(src).ext
	To string `yaml:"to"`
	// 保存格式,默认为json
	ToType string `yaml:"toType" validate:"omitempty,oneof=json markdown html outline custom"`
	// "toType": "custom" 时需要用到的自定义json字段配置
	ToCustom *custom.Keys `yaml:"toCustom" validate:"omitempty"`
	// "toType": "markdown" 时的自定义模板,key为default或层级数字
	ToMarkdown map[string]string `yaml:"toMarkdown"`
	// "toType": "markdown" 时需要突出显示的节点ID
	Highlight string `yaml:"highlight"`
	// "toType": "html" 时追加的样式
	CustomCSS string `yaml:"customCss"`
}

var validate = validator.New()

// LoadConfig 读取并校验配置
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &configError{err: errors.New("empty config")}
		}
		return nil, &configError{err: fmt.Errorf("parsing config: %w", err)}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &configError{err: err}
	}
	return &cfg, nil
}

// Validate 校验字段,custom格式必须配置字段名
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if c.FromType == "custom" && c.FromCustom == nil {
		return errors.New("fromcustom is required when fromType is custom")
	}
	if c.ToType == "custom" && c.ToCustom == nil {
		return errors.New("tocustom is required when toType is custom")
	}
	return nil
}

// formatValidationError formats validation errors into readable messages
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch tag := e.Tag(); {
		case tag == "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case tag == "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		case strings.HasPrefix(tag, "startswith"):
			// 多个startswith用|连接时,tag为完整的表达式
			msgs = append(msgs, fmt.Sprintf("%s must start with %s", field,
				strings.ReplaceAll(strings.ReplaceAll(tag, "startswith=", ""), "|", " or ")))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
