package viewpattern

import (
	"github.com/sirupsen/logrus"

	"github.com/dataform/viewpatterns/internal/markup"
)

// 过滤器哨兵 ID，与宿主过滤器管理器约定一致。
const (
	// FilterCancel 表示取消当前过滤器。
	FilterCancel int64 = 0
	// UserFilter 表示使用当前用户保存的偏好过滤器。
	UserFilter int64 = -1
	// UserFilterSet 表示以本次提交的表单值更新用户偏好过滤器。
	UserFilterSet int64 = -2
	// UserFilterReset 表示清空用户保存的偏好过滤器。
	UserFilterReset int64 = -3
)

// Filter 是宿主提供的当前搜索/排序/分页状态，对解析器只读。
type Filter struct {
	ID      int64
	Page    int
	PerPage int
	// PageNum 非 nil 表示按分组分页（每页一组），取值为分组数。
	PageNum  *int
	Search   string
	EntryIDs []int64
}

// DataSource 是视图所属的数据源（dataform 实例）。
type DataSource interface {
	ID() int64
	ApprovalEnabled() bool
	// SingleEditView 返回配置的单条编辑视图 ID。
	SingleEditView() (int64, bool)
}

// Actor 是当前访问者的能力集合。
type Actor interface {
	CanManageEntries() bool
	CanCreateEntries() bool
	CanApprove() bool
}

// View 是宿主拥有的视图实体，解析器只持有引用。
type View interface {
	ID() int64
	Name() string
	// BaseURL 返回视图地址；调用方会 Clone 后再修改。
	BaseURL() *markup.URL
	Filter() *Filter
	DataSource() DataSource
	IsForcingFilter() bool
	SiblingViews() []markup.Option
	Filters() []markup.Option
	Actor() Actor
}

// Entry 是当前条目，视图级模式不读取它，保留以便扩展。
type Entry struct {
	ID int64
}

// Localizer 查询本地化文案。
type Localizer interface {
	String(key string) string
}

// Output 渲染宿主 widget，默认实现为 *markup.Renderer。
type Output interface {
	SingleSelect(markup.SingleSelect) string
	PagingBar(markup.PagingBar) string
	PixIcon(name, alt string) string
}

// Env 汇总一次渲染需要的宿主依赖，替代框架的全局单例。
type Env struct {
	Strings           Localizer
	Output            Output
	SessionKey        func() string
	PortfoliosEnabled bool
	// Logger 为空时不输出调试日志。
	Logger logrus.FieldLogger
}

// Replacement 是单个标签的替换结果。
type Replacement struct {
	Tag   string
	Value string
}

// Replacements 按请求顺序保存替换结果；未识别的标签不出现在其中。
type Replacements []Replacement

// Lookup 返回标签的替换值，以及该标签是否被识别。
func (r Replacements) Lookup(tag string) (string, bool) {
	for _, item := range r {
		if item.Tag == tag {
			return item.Value, true
		}
	}
	return "", false
}

// Map 转换为 tag → value 映射，便于 JSON 输出。
func (r Replacements) Map() map[string]string {
	out := make(map[string]string, len(r))
	for _, item := range r {
		out[item.Tag] = item.Value
	}
	return out
}
