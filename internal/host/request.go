package host

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Request 是视图页面的请求参数，与宿主页面的查询/表单参数同名。
type Request struct {
	DataSource  int64   `mapstructure:"d"`
	View        int64   `mapstructure:"view"`
	Filter      int64   `mapstructure:"filter"`
	Page        int     `mapstructure:"page"`
	EntryIDs    []int64 `mapstructure:"eids"`
	UserSearch  string  `mapstructure:"usersearch"`
	UserPerPage int     `mapstructure:"userperpage"`
	SessionKey  string  `mapstructure:"sesskey"`
	ReturnView  int64   `mapstructure:"ret"`
}

// ParseRequest 以弱类型方式解析字符串参数，eids 支持逗号分隔。
func ParseRequest(raw map[string]string) (Request, error) {
	var req Request
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &req,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			trimHook,
			mapstructure.StringToSliceHookFunc(","),
			dropEmptyHook,
		),
	})
	if err != nil {
		return Request{}, fmt.Errorf("创建请求解码器失败: %w", err)
	}

	input := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		input[k] = v
	}
	if err := decoder.Decode(input); err != nil {
		return Request{}, fmt.Errorf("解析请求参数失败: %w", err)
	}
	if req.Page < 0 {
		req.Page = 0
	}
	return req, nil
}

func trimHook(from reflect.Type, _ reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	return strings.TrimSpace(data.(string)), nil
}

// dropEmptyHook 去掉逗号列表中的空元素，避免 "1,,2" 被弱类型解码出 ID 0。
func dropEmptyHook(from reflect.Type, _ reflect.Type, data interface{}) (interface{}, error) {
	items, ok := data.([]string)
	if !ok || from.Kind() != reflect.Slice {
		return data, nil
	}
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}
	return kept, nil
}
