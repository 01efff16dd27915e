package host

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dataform/viewpatterns/internal/config"
	"github.com/dataform/viewpatterns/internal/markup"
	"github.com/dataform/viewpatterns/internal/viewpattern"
)

// ErrViewNotFound 表示请求的视图不存在或不属于请求的数据源。
var ErrViewNotFound = errors.New("view not found")

// DataSource 是内存中的 dataform 实例。
type DataSource struct {
	cfg     config.DataSourceConfig
	views   []markup.Option
	filters map[int64]config.FilterConfig
	order   []markup.Option
}

func (d *DataSource) ID() int64             { return d.cfg.ID }
func (d *DataSource) Name() string          { return d.cfg.Name }
func (d *DataSource) ApprovalEnabled() bool { return d.cfg.Approval }

// Views 返回数据源下的视图选项（ID 与名称），按配置顺序。
func (d *DataSource) Views() []markup.Option {
	return append([]markup.Option(nil), d.views...)
}

func (d *DataSource) SingleEditView() (int64, bool) {
	return d.cfg.SingleEditView, d.cfg.SingleEditView > 0
}

// Host 持有全部数据源与视图定义，启动时构建一次，之后只读。
type Host struct {
	publicURL string
	actor     Actor
	sources   map[int64]*DataSource
	views     map[int64]viewDef
}

type viewDef struct {
	cfg    config.ViewConfig
	source *DataSource
}

// New 根据配置构建宿主。
func New(cfg *config.Config) (*Host, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	h := &Host{
		publicURL: strings.TrimRight(cfg.Global.PublicURL, "/"),
		actor:     ActorForRole(cfg.Global.Role),
		sources:   make(map[int64]*DataSource, len(cfg.DataSources)),
		views:     make(map[int64]viewDef),
	}

	for _, dsCfg := range cfg.DataSources {
		if _, exists := h.sources[dsCfg.ID]; exists {
			return nil, fmt.Errorf("duplicate datasource %d", dsCfg.ID)
		}
		ds := &DataSource{cfg: dsCfg, filters: make(map[int64]config.FilterConfig, len(dsCfg.Filters))}
		for _, v := range dsCfg.Views {
			if _, exists := h.views[v.ID]; exists {
				return nil, fmt.Errorf("duplicate view %d", v.ID)
			}
			ds.views = append(ds.views, markup.Option{Value: strconv.FormatInt(v.ID, 10), Label: v.Name})
			h.views[v.ID] = viewDef{cfg: v, source: ds}
		}
		for _, f := range dsCfg.Filters {
			ds.filters[f.ID] = f
			ds.order = append(ds.order, markup.Option{Value: strconv.FormatInt(f.ID, 10), Label: f.Name})
		}
		h.sources[dsCfg.ID] = ds
	}
	return h, nil
}

// Actor 返回当前访问者。
func (h *Host) Actor() Actor {
	return h.actor
}

// DataSources 返回按 ID 排序的数据源。
func (h *Host) DataSources() []*DataSource {
	result := make([]*DataSource, 0, len(h.sources))
	for _, ds := range h.sources {
		result = append(result, ds)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}

// View 按请求构建视图：校验视图归属，并根据请求参数选出当前过滤器。
func (h *Host) View(req Request) (*View, error) {
	def, ok := h.views[req.View]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrViewNotFound, req.View)
	}
	if req.DataSource != 0 && req.DataSource != def.source.ID() {
		return nil, fmt.Errorf("%w: %d in datasource %d", ErrViewNotFound, req.View, req.DataSource)
	}

	return &View{
		host:    h,
		def:     def,
		filter:  h.selectFilter(def, req),
		request: req,
	}, nil
}

// selectFilter 依次处理强制过滤器、用户偏好哨兵与保存的过滤器，未知 ID 回退到默认过滤器。
func (h *Host) selectFilter(def viewDef, req Request) *viewpattern.Filter {
	f := &viewpattern.Filter{PerPage: def.cfg.PerPage}
	id := req.Filter
	if def.cfg.ForceFilter != 0 {
		id = def.cfg.ForceFilter
	}

	switch id {
	case viewpattern.UserFilter, viewpattern.UserFilterSet:
		f.ID = viewpattern.UserFilter
		f.Search = req.UserSearch
		if req.UserPerPage > 0 {
			f.PerPage = req.UserPerPage
		}
	case viewpattern.FilterCancel, viewpattern.UserFilterReset:
	default:
		if saved, ok := def.source.filters[id]; ok {
			f.ID = saved.ID
			f.Search = saved.Search
			if saved.PerPage > 0 {
				f.PerPage = saved.PerPage
			}
			if saved.GroupBy {
				groups := len(groupEntries(filterEntries(def.source.cfg.Entries, f.Search)))
				f.PageNum = &groups
			}
		}
	}

	f.Page = req.Page
	if len(req.EntryIDs) > 0 {
		f.EntryIDs = append([]int64(nil), req.EntryIDs...)
	}
	return f
}

// filterEntries 返回内容包含 search（忽略大小写）的条目。
func filterEntries(entries []config.EntryConfig, search string) []config.EntryConfig {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return entries
	}
	var result []config.EntryConfig
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Content), needle) {
			result = append(result, e)
		}
	}
	return result
}

// groupEntries 按 Group 字段分组，分组顺序为首次出现顺序。
func groupEntries(entries []config.EntryConfig) [][]config.EntryConfig {
	var groups [][]config.EntryConfig
	index := map[string]int{}
	for _, e := range entries {
		idx, ok := index[e.Group]
		if !ok {
			idx = len(groups)
			index[e.Group] = idx
			groups = append(groups, nil)
		}
		groups[idx] = append(groups[idx], e)
	}
	return groups
}
