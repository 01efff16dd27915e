package markup

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Param 是一个查询参数键值对。
type Param struct {
	Name  string
	Value string
}

// URL 是可变的链接构造器，查询参数保持插入顺序，重复 Set 时原位覆盖。
type URL struct {
	base     string
	params   []Param
	fragment string
}

// ParseURL 解析原始地址，拆分出不含查询串的基础地址与有序参数。
func ParseURL(raw string) (*URL, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("解析 URL 失败: %w", err)
	}

	u := &URL{fragment: parsed.Fragment}
	query := parsed.RawQuery
	parsed.RawQuery = ""
	parsed.Fragment = ""
	parsed.ForceQuery = false
	u.base = parsed.String()

	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		decodedName, err := url.QueryUnescape(name)
		if err != nil {
			return nil, fmt.Errorf("解析查询参数 %q 失败: %w", name, err)
		}
		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			return nil, fmt.Errorf("解析查询参数 %q 失败: %w", name, err)
		}
		u.Set(decodedName, decodedValue)
	}
	return u, nil
}

// MustParseURL 在解析失败时 panic，适合常量地址。
func MustParseURL(raw string) *URL {
	u, err := ParseURL(raw)
	if err != nil {
		panic(err)
	}
	return u
}

// Clone 返回独立副本，修改副本不会影响原 URL。
func (u *URL) Clone() *URL {
	if u == nil {
		return &URL{}
	}
	return &URL{
		base:     u.base,
		params:   append([]Param(nil), u.params...),
		fragment: u.fragment,
	}
}

// Set 写入参数，已存在的参数保持原位置并更新取值。
func (u *URL) Set(name, value string) *URL {
	for i := range u.params {
		if u.params[i].Name == name {
			u.params[i].Value = value
			return u
		}
	}
	u.params = append(u.params, Param{Name: name, Value: value})
	return u
}

// SetInt 是 Set 的整数便捷版本。
func (u *URL) SetInt(name string, value int64) *URL {
	return u.Set(name, strconv.FormatInt(value, 10))
}

// Get 返回参数取值以及是否存在。
func (u *URL) Get(name string) (string, bool) {
	for _, p := range u.params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Remove 删除指定参数，不存在时忽略。
func (u *URL) Remove(names ...string) *URL {
	if len(names) == 0 || len(u.params) == 0 {
		return u
	}
	kept := u.params[:0]
	for _, p := range u.params {
		drop := false
		for _, name := range names {
			if p.Name == name {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, p)
		}
	}
	u.params = kept
	return u
}

// Params 返回参数列表副本。
func (u *URL) Params() []Param {
	return append([]Param(nil), u.params...)
}

// OmitQuery 返回去掉查询串与锚点的基础地址。
func (u *URL) OmitQuery() string {
	return u.base
}

// String 输出完整地址，参数按插入顺序编码。
func (u *URL) String() string {
	var sb strings.Builder
	sb.WriteString(u.base)
	for i, p := range u.params {
		if i == 0 {
			sb.WriteByte('?')
		} else {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Name))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	if u.fragment != "" {
		sb.WriteByte('#')
		sb.WriteString(u.fragment)
	}
	return sb.String()
}
