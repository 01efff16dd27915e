package viewpattern

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/dataform/viewpatterns/internal/markup"
)

// Options 是单次解析的配置包。Filter 与 BaseURL 由 Replacements 在任何分类解析器
// 运行之前写入一次，之后只读；不要在两个视图的并发解析之间复用同一个 Options。
type Options struct {
	Filter  *Filter     `mapstructure:"-"`
	BaseURL *markup.URL `mapstructure:"-"`

	// Edit 当前未被解析器使用，保留给扩展。
	Edit               bool  `mapstructure:"edit"`
	EntriesCount       int   `mapstructure:"entriescount"`
	EntriesFilterCount int   `mapstructure:"entriesfiltercount"`
	HideNewEntry       bool  `mapstructure:"hidenewentry"`
	ShowEntryActions   bool  `mapstructure:"showentryactions"`
	ReturnView         int64 `mapstructure:"ret"`
}

// DecodeOptions 以弱类型方式把字符串键值（例如查询参数）解码为 Options。
// 未知键被忽略。
func DecodeOptions(raw map[string]string) (*Options, error) {
	opts := &Options{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           opts,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 options 解码器失败: %w", err)
	}
	input := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		input[k] = v
	}
	if err := decoder.Decode(input); err != nil {
		return nil, fmt.Errorf("解析 options 失败: %w", err)
	}
	return opts, nil
}
