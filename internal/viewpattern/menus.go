package viewpattern

import (
	"strconv"

	"github.com/dataform/viewpatterns/internal/markup"
)

var menuHandlers = map[string]tagFunc{
	TagViewsMenu: func(r *Resolver, _ *Entry, opts *Options) string {
		return r.viewsMenu(opts)
	},
	TagFiltersMenu: func(r *Resolver, _ *Entry, opts *Options) string {
		return r.filtersMenu(opts)
	},
}

func resolveMenu(r *Resolver, tag string, entry *Entry, opts *Options) string {
	return r.dispatch(menuHandlers, tag, entry, opts)
}

// viewsMenu 输出同一数据源下的视图跳转菜单，只有一个视图时不输出。
func (r *Resolver) viewsMenu(opts *Options) string {
	views := r.view.SiblingViews()
	if len(views) <= 1 {
		return ""
	}

	u := r.jumpURL()
	u.SetInt("filter", opts.Filter.ID)

	return r.env.Output.SingleSelect(markup.SingleSelect{
		URL:      u,
		Name:     "view",
		Options:  views,
		Selected: strconv.FormatInt(r.view.ID(), 10),
		Nothing:  &markup.Option{Value: "", Label: r.str("choosedots")},
		FormID:   "viewbrowse_jump",
		Label:    r.str("viewcurrent"),
		Method:   "post",
	})
}

// filtersMenu 输出过滤器跳转菜单，附加 "使用/重置我的偏好" 两个哨兵项，
// 当前有生效的过滤器时再附加 "取消过滤器"。
func (r *Resolver) filtersMenu(opts *Options) string {
	if !r.userPrefAllowed(opts) {
		return ""
	}

	filters := append([]markup.Option(nil), r.view.Filters()...)
	filters = setOption(filters, UserFilter, r.str("filteruserpref"))
	filters = setOption(filters, UserFilterReset, r.str("filteruserreset"))
	if opts.Filter.ID != FilterCancel {
		filters = setOption(filters, FilterCancel, r.str("filtercancel"))
	}

	u := r.jumpURL()
	u.SetInt("view", r.view.ID())

	return r.env.Output.SingleSelect(markup.SingleSelect{
		URL:      u,
		Name:     "filter",
		Options:  filters,
		Selected: strconv.FormatInt(opts.Filter.ID, 10),
		Nothing:  &markup.Option{Value: "", Label: r.str("choosedots")},
		FormID:   "filterbrowse_jump",
		Label:    r.str("filtercurrent"),
		Method:   "post",
	})
}

// jumpURL 返回去掉查询串的视图地址，附带数据源 ID 与 sesskey。
func (r *Resolver) jumpURL() *markup.URL {
	u := markup.MustParseURL(r.view.BaseURL().OmitQuery())
	u.SetInt("d", r.view.DataSource().ID())
	u.Set("sesskey", r.sessionKey())
	return u
}

// setOption 以 ID 为键写入选项，已存在时原位替换文案。
func setOption(options []markup.Option, id int64, label string) []markup.Option {
	value := strconv.FormatInt(id, 10)
	for i := range options {
		if options[i].Value == value {
			options[i].Label = label
			return options
		}
	}
	return append(options, markup.Option{Value: value, Label: label})
}
