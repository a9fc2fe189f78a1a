package mindmap

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	tagRe   = regexp.MustCompile(`<[^>]*>`)
	punctRe = regexp.MustCompile(`[{}",]`)
	spaceRe = regexp.MustCompile(`\s+`)
	decRe   = regexp.MustCompile(`&#(\d+);`)
	hexRe   = regexp.MustCompile(`&#[xX]([0-9A-Fa-f]+);`)

	// &amp; 必须最后替换,否则 "&amp;lt;" 会被二次解码成 "<"
	namedEntities = strings.NewReplacer(
		"&quot;", `"`,
		"&apos;", "'",
		"&lt;", "<",
		"&gt;", ">",
		"&nbsp;", " ",
	)
)

// DecodeEntities 解码html实体,顺序为: 十进制,十六进制,常见命名实体,最后是&amp;
func DecodeEntities(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}
	text = decRe.ReplaceAllStringFunc(text, func(s string) string {
		n, err := strconv.ParseInt(s[2:len(s)-1], 10, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			return s
		}
		return string(rune(n))
	})
	text = hexRe.ReplaceAllStringFunc(text, func(s string) string {
		n, err := strconv.ParseInt(s[3:len(s)-1], 16, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			return s
		}
		return string(rune(n))
	})
	text = namedEntities.Replace(text)
	return strings.ReplaceAll(text, "&amp;", "&")
}

// ExtractPlainText 从富文本中提取纯文本
//
//	raw 为 string 或 []byte 时去掉所有标签,合并空白后解码html实体
//	raw 为其他对象时先转成json字符串,再额外去掉json的标点
//	无法处理的数据返回空字符串
func ExtractPlainText(raw interface{}) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return plainText(v, false)
	case []byte:
		return plainText(string(v), false)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // 保留 <,>,& 原样,后面才能去掉标签
	if err := enc.Encode(raw); err != nil {
		return ""
	}
	return plainText(buf.String(), true)
}

func plainText(s string, object bool) string {
	s = tagRe.ReplaceAllString(s, " ")
	if object {
		s = punctRe.ReplaceAllString(s, " ")
	}
	s = strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
	return DecodeEntities(s)
}
