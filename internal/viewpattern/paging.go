package viewpattern

import (
	"github.com/dataform/viewpatterns/internal/markup"
)

var pagingHandlers = map[string]tagFunc{
	TagPagingBar: (*Resolver).pagingBar,
}

func resolvePaging(r *Resolver, tag string, entry *Entry, opts *Options) string {
	return r.dispatch(pagingHandlers, tag, entry, opts)
}

// pagingBar 按顺序判断三种互斥的分页模式：
//  1. 过滤器限定了条目 ID 集合（查看详情），输出 "返回列表" 链接；
//  2. 过滤器按分组分页，每页一组；
//  3. 普通分页，且过滤后的条目数与总数不同。
func (r *Resolver) pagingBar(_ *Entry, opts *Options) string {
	f := opts.Filter

	if len(f.EntryIDs) > 0 {
		u := r.view.BaseURL().Clone()
		if f.Page > 0 {
			u.SetInt("page", int64(f.Page))
		}
		if opts.ReturnView > 0 {
			u.SetInt("view", opts.ReturnView)
		}
		u.Remove("eids")
		return markup.Link(u.String(), markup.Text(r.str("viewreturntolist")))
	}

	if f.PageNum != nil {
		return r.env.Output.PagingBar(markup.PagingBar{
			TotalCount: *f.PageNum,
			Page:       f.Page,
			PerPage:    1,
			BaseURL:    r.view.BaseURL(),
			PageVar:    "page",
		})
	}

	if f.PerPage > 0 && opts.EntriesCount > 0 && opts.EntriesFilterCount > 0 &&
		opts.EntriesCount != opts.EntriesFilterCount {
		return r.env.Output.PagingBar(markup.PagingBar{
			TotalCount: opts.EntriesFilterCount,
			Page:       f.Page,
			PerPage:    f.PerPage,
			BaseURL:    r.view.BaseURL(),
			PageVar:    "page",
		})
	}

	return ""
}
