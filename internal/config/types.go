package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration 提供更灵活的反序列化能力，同时兼容纯秒整数与 Go Duration 字符串。
type Duration time.Duration

// UnmarshalText 使 Viper 可以识别诸如 "30s"、"5m" 或纯数字秒值等配置写法。
func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		*d = Duration(0)
		return nil
	}

	if seconds, err := time.ParseDuration(raw); err == nil {
		*d = Duration(seconds)
		return nil
	}

	if intVal, err := parseInt(raw); err == nil {
		*d = Duration(time.Duration(intVal) * time.Second)
		return nil
	}

	return fmt.Errorf("invalid duration value: %s", raw)
}

// DurationValue 返回真实的 time.Duration，便于调用方计算。
func (d Duration) DurationValue() time.Duration {
	return time.Duration(d)
}

// parseInt 支持十进制或 0x 前缀的十六进制字符串解析。
func parseInt(value string) (int64, error) {
	if strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X") {
		return strconv.ParseInt(value, 0, 64)
	}
	return strconv.ParseInt(value, 10, 64)
}

// GlobalConfig 描述全局运行时行为，所有数据源共享同一份参数。
type GlobalConfig struct {
	ListenPort    int    `mapstructure:"ListenPort"`
	LogLevel      string `mapstructure:"LogLevel"`
	LogFilePath   string `mapstructure:"LogFilePath"`
	LogMaxSize    int    `mapstructure:"LogMaxSize"`
	LogMaxBackups int    `mapstructure:"LogMaxBackups"`
	LogCompress   bool   `mapstructure:"LogCompress"`
	// PublicURL 是视图页面对外的根地址，视图地址为 PublicURL/view。
	PublicURL string `mapstructure:"PublicURL"`
	// PixURL 是图标根地址，默认 PublicURL/pix。
	PixURL           string            `mapstructure:"PixURL"`
	Locale           string            `mapstructure:"Locale"`
	Strings          map[string]string `mapstructure:"Strings"`
	EnablePortfolios bool              `mapstructure:"EnablePortfolios"`
	// Role 决定访问者的能力：guest/student/teacher/manager。
	Role         string   `mapstructure:"Role"`
	ReadTimeout  Duration `mapstructure:"ReadTimeout"`
	WriteTimeout Duration `mapstructure:"WriteTimeout"`
}

// EntryConfig 是数据源中的一条条目。
type EntryConfig struct {
	ID      int64  `mapstructure:"ID"`
	Content string `mapstructure:"Content"`
	Group   string `mapstructure:"Group"`
}

// ViewConfig 描述一个视图及其模板。
type ViewConfig struct {
	ID       int64  `mapstructure:"ID"`
	Name     string `mapstructure:"Name"`
	Template string `mapstructure:"Template"`
	// ForceFilter 非 0 时视图强制使用该过滤器，访问者无法切换。
	ForceFilter int64 `mapstructure:"ForceFilter"`
	PerPage     int   `mapstructure:"PerPage"`
}

// FilterConfig 描述一个保存的过滤器。
type FilterConfig struct {
	ID      int64  `mapstructure:"ID"`
	Name    string `mapstructure:"Name"`
	PerPage int    `mapstructure:"PerPage"`
	Search  string `mapstructure:"Search"`
	// GroupBy 为 true 时每页展示一个分组。
	GroupBy bool `mapstructure:"GroupBy"`
}

// DataSourceConfig 对应一个 dataform 实例。
type DataSourceConfig struct {
	ID             int64          `mapstructure:"ID"`
	Name           string         `mapstructure:"Name"`
	Approval       bool           `mapstructure:"Approval"`
	SingleEditView int64          `mapstructure:"SingleEditView"`
	Views          []ViewConfig   `mapstructure:"View"`
	Filters        []FilterConfig `mapstructure:"Filter"`
	Entries        []EntryConfig  `mapstructure:"Entry"`
}

// Config 是 TOML 文件映射的整体结构。
type Config struct {
	Global      GlobalConfig       `mapstructure:",squash"`
	DataSources []DataSourceConfig `mapstructure:"DataSource"`
}

// ViewCount 返回所有数据源的视图总数，供启动日志使用。
func (c *Config) ViewCount() int {
	total := 0
	for _, ds := range c.DataSources {
		total += len(ds.Views)
	}
	return total
}

// EffectivePixURL 返回图标根地址，未配置时回退到 PublicURL/pix。
func (g GlobalConfig) EffectivePixURL() string {
	if g.PixURL != "" {
		return g.PixURL
	}
	return strings.TrimRight(g.PublicURL, "/") + "/pix"
}
