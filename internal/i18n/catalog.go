// Package i18n 基于 golang.org/x/text 的 message catalog 提供本地化文案查询。
package i18n

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Catalog 持有某个语言的文案打印器，缺失的键回退到英文，再回退到键名本身。
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
	known   map[string]struct{}
}

// New 创建指定语言的文案目录，overrides 中的文案覆盖该语言下的同名键。
func New(locale string, overrides map[string]string) (*Catalog, error) {
	tag := language.English
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		parsed, err := language.Parse(trimmed)
		if err != nil {
			return nil, fmt.Errorf("无法解析语言 %q: %w", locale, err)
		}
		tag = parsed
	}

	merged := make(map[string]string, len(defaultStrings)+len(overrides))
	for k, v := range defaultStrings {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}

	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	if tag != language.English {
		if err := setAll(builder, language.English, defaultStrings); err != nil {
			return nil, err
		}
	}
	if err := setAll(builder, tag, merged); err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(merged))
	for k := range merged {
		known[k] = struct{}{}
	}

	return &Catalog{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
		known:   known,
	}, nil
}

// MustNew 在失败时 panic，供测试与内置默认值使用。
func MustNew(locale string, overrides map[string]string) *Catalog {
	c, err := New(locale, overrides)
	if err != nil {
		panic(err)
	}
	return c
}

// String 返回键对应的文案；未登记的键原样返回。
func (c *Catalog) String(key string) string {
	if _, ok := c.known[key]; !ok {
		return key
	}
	return c.printer.Sprintf(key)
}

// Locale 返回当前语言标签。
func (c *Catalog) Locale() string {
	return c.tag.String()
}

// setAll 登记文案；String 经 Printer.Sprintf 输出，文案中的 % 需转义为 %%。
func setAll(builder *catalog.Builder, tag language.Tag, strs map[string]string) error {
	for _, key := range sortedKeys(strs) {
		msg := strings.ReplaceAll(strs[key], "%", "%%")
		if err := builder.SetString(tag, key, msg); err != nil {
			return fmt.Errorf("注册文案 %s/%s 失败: %w", tag, key, err)
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
