package markup

import (
	"html"
	"strings"
)

// Attr 是单个 HTML 属性，值在输出时统一转义。
type Attr struct {
	Key   string
	Value string
}

// A 构造属性的简写。
func A(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// Text 转义纯文本，使其可以安全地作为标签内容。
func Text(s string) string {
	return html.EscapeString(s)
}

// Tag 输出 <name attrs>content</name>；content 视为已转义的 HTML。
func Tag(name, content string, attrs ...Attr) string {
	var sb strings.Builder
	writeOpen(&sb, name, attrs)
	sb.WriteString(content)
	sb.WriteString("</")
	sb.WriteString(name)
	sb.WriteByte('>')
	return sb.String()
}

// EmptyTag 输出自闭合标签，例如 input/img。
func EmptyTag(name string, attrs ...Attr) string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(name)
	writeAttrs(&sb, attrs)
	sb.WriteString(" />")
	return sb.String()
}

// Link 输出超链接，text 视为已转义的 HTML。
func Link(href, text string, attrs ...Attr) string {
	all := make([]Attr, 0, len(attrs)+1)
	all = append(all, A("href", href))
	all = append(all, attrs...)
	return Tag("a", text, all...)
}

// Label 输出绑定到 forID 的 label。
func Label(text, forID string) string {
	return Tag("label", Text(text), A("for", forID))
}

// Checkbox 输出复选框，checked 为 true 时附带 checked 属性。
func Checkbox(checked bool, attrs ...Attr) string {
	all := make([]Attr, 0, len(attrs)+2)
	all = append(all, A("type", "checkbox"))
	if checked {
		all = append(all, A("checked", "checked"))
	}
	all = append(all, attrs...)
	return EmptyTag("input", all...)
}

// HiddenInputs 将 URL 参数展开为 hidden input，用于表单回传。
func HiddenInputs(params []Param) string {
	var sb strings.Builder
	for _, p := range params {
		sb.WriteString(EmptyTag("input", A("type", "hidden"), A("name", p.Name), A("value", p.Value)))
	}
	return sb.String()
}

func writeOpen(sb *strings.Builder, name string, attrs []Attr) {
	sb.WriteByte('<')
	sb.WriteString(name)
	writeAttrs(sb, attrs)
	sb.WriteByte('>')
}

func writeAttrs(sb *strings.Builder, attrs []Attr) {
	for _, attr := range attrs {
		if attr.Key == "" {
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(attr.Key)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(attr.Value))
		sb.WriteByte('"')
	}
}
