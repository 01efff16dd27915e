package viewpattern

import (
	"strconv"

	"github.com/dataform/viewpatterns/internal/markup"
)

// perPageChoices 是快速每页条数下拉框的固定取值。
var perPageChoices = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 15, 20, 30, 40, 50, 100, 200, 300, 400, 500, 1000}

var userPrefHandlers = map[string]tagFunc{
	TagQuickSearch: func(r *Resolver, _ *Entry, opts *Options) string {
		return r.quickSearch(opts)
	},
	TagQuickPerPage: func(r *Resolver, _ *Entry, opts *Options) string {
		return r.quickPerPage(opts)
	},
}

func resolveUserPref(r *Resolver, tag string, entry *Entry, opts *Options) string {
	if !r.userPrefAllowed(opts) {
		return ""
	}
	return r.dispatch(userPrefHandlers, tag, entry, opts)
}

// userPrefAllowed：视图未强制过滤器，且当前过滤器为未保存的默认值或已有条目。
func (r *Resolver) userPrefAllowed(opts *Options) bool {
	if r.view.IsForcingFilter() {
		return false
	}
	return opts.Filter.ID == FilterCancel || opts.EntriesCount > 0
}

// userPrefURL 返回快速表单回传地址，filter 固定为 UserFilterSet。
func (r *Resolver) userPrefURL() *markup.URL {
	u := r.jumpURL()
	u.SetInt("view", r.view.ID())
	u.SetInt("filter", UserFilterSet)
	return u
}

func (r *Resolver) quickSearch(opts *Options) string {
	u := r.userPrefURL()

	value := ""
	if opts.Filter.ID == UserFilter {
		value = opts.Filter.Search
	}

	label := markup.Label(r.str("search"), "usersearch")
	input := markup.EmptyTag("input",
		markup.A("type", "text"),
		markup.A("id", "usersearch"),
		markup.A("name", "usersearch"),
		markup.A("value", value),
		markup.A("size", "20"),
	)

	// 表单没有提交按钮，由客户端脚本触发提交。
	form := markup.Tag("form",
		markup.HiddenInputs(u.Params())+"&nbsp;"+label+"&nbsp;"+input+"&nbsp;",
		markup.A("method", "post"),
		markup.A("action", u.OmitQuery()),
	)
	return markup.Tag("div", form, markup.A("class", "singleselect"))
}

func (r *Resolver) quickPerPage(opts *Options) string {
	selected := 0
	if opts.Filter.ID == UserFilter && opts.Filter.PerPage > 0 {
		selected = opts.Filter.PerPage
	}

	return r.env.Output.SingleSelect(markup.SingleSelect{
		URL:      r.userPrefURL(),
		Name:     "userperpage",
		Options:  markup.IntOptions(perPageChoices...),
		Selected: strconv.Itoa(selected),
		Nothing:  &markup.Option{Value: "", Label: r.str("choosedots")},
		FormID:   "perpage_jump",
		Label:    r.str("filterperpage"),
		Method:   "post",
	})
}
