package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Load 读取并解析 TOML 配置文件，同时注入默认值与校验逻辑。
func Load(path string) (*Config, error) {
	if path == "" {
		path = "config.toml"
	}

	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置失败: %w", err)
	}

	if err := rejectViewLevelBaseURL(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(durationDecodeHook())); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	applyGlobalDefaults(&cfg.Global)
	for i := range cfg.DataSources {
		applyDataSourceDefaults(&cfg.DataSources[i])
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ListenPort", 5000)
	v.SetDefault("LogLevel", "info")
	v.SetDefault("LogFilePath", "")
	v.SetDefault("LogMaxSize", 100)
	v.SetDefault("LogMaxBackups", 10)
	v.SetDefault("LogCompress", true)
	v.SetDefault("Locale", "en")
	v.SetDefault("Role", "student")
	v.SetDefault("EnablePortfolios", false)
	v.SetDefault("ReadTimeout", "10s")
	v.SetDefault("WriteTimeout", "10s")
}

func applyGlobalDefaults(g *GlobalConfig) {
	if g.ListenPort == 0 {
		g.ListenPort = 5000
	}
	if strings.TrimSpace(g.PublicURL) == "" {
		g.PublicURL = fmt.Sprintf("http://localhost:%d", g.ListenPort)
	}
	g.PublicURL = strings.TrimRight(strings.TrimSpace(g.PublicURL), "/")
	g.Role = strings.ToLower(strings.TrimSpace(g.Role))
	if g.ReadTimeout.DurationValue() == 0 {
		g.ReadTimeout = Duration(10 * time.Second)
	}
	if g.WriteTimeout.DurationValue() == 0 {
		g.WriteTimeout = Duration(10 * time.Second)
	}
}

func applyDataSourceDefaults(ds *DataSourceConfig) {
	if strings.TrimSpace(ds.Name) == "" {
		ds.Name = fmt.Sprintf("dataform-%d", ds.ID)
	}
	for i := range ds.Views {
		if ds.Views[i].Name == "" {
			ds.Views[i].Name = fmt.Sprintf("view-%d", ds.Views[i].ID)
		}
		if ds.Views[i].PerPage < 0 {
			ds.Views[i].PerPage = 0
		}
	}
}

func durationDecodeHook() mapstructure.DecodeHookFunc {
	targetType := reflect.TypeOf(Duration(0))

	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != targetType {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			if v == "" {
				return Duration(0), nil
			}
			if parsed, err := time.ParseDuration(v); err == nil {
				return Duration(parsed), nil
			}
			if seconds, err := strconv.ParseFloat(v, 64); err == nil {
				return Duration(time.Duration(seconds * float64(time.Second))), nil
			}
			return nil, fmt.Errorf("无法解析 Duration 字段: %s", v)
		case int:
			return Duration(time.Duration(v) * time.Second), nil
		case int64:
			return Duration(time.Duration(v) * time.Second), nil
		case float64:
			return Duration(time.Duration(v * float64(time.Second))), nil
		case time.Duration:
			return Duration(v), nil
		case Duration:
			return v, nil
		default:
			return nil, fmt.Errorf("不支持的 Duration 类型: %T", v)
		}
	}
}

// rejectViewLevelBaseURL 拒绝视图级 BaseURL，视图地址统一由 PublicURL 推导。
func rejectViewLevelBaseURL(v *viper.Viper) error {
	raw := v.Get("DataSource")
	sources, ok := raw.([]interface{})
	if !ok {
		return nil
	}

	for idx, entry := range sources {
		ds, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		name := fmt.Sprintf("#%d", idx)
		if rawName, ok := lookupFold(ds, "Name").(string); ok && rawName != "" {
			name = rawName
		}
		views, ok := lookupFold(ds, "View").([]interface{})
		if !ok {
			continue
		}
		for _, view := range views {
			m, ok := view.(map[string]interface{})
			if !ok {
				continue
			}
			if lookupFold(m, "BaseURL") != nil {
				return newFieldError(dataSourceField(name, "View.BaseURL"), "不支持视图级地址，请使用全局 PublicURL")
			}
		}
	}

	return nil
}

// lookupFold 忽略大小写读取键值，viper 会把嵌套表的键统一转为小写。
func lookupFold(m map[string]interface{}, key string) interface{} {
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}
