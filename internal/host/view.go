package host

import (
	"strconv"
	"strings"

	"github.com/dataform/viewpatterns/internal/config"
	"github.com/dataform/viewpatterns/internal/markup"
	"github.com/dataform/viewpatterns/internal/viewpattern"
)

// EntriesTag 是视图模板中条目列表的位置，由宿主而非模式解析器填充。
const EntriesTag = "##entries##"

// View 是一次请求中的视图实例，实现 viewpattern.View。
type View struct {
	host    *Host
	def     viewDef
	filter  *viewpattern.Filter
	request Request
}

var _ viewpattern.View = (*View)(nil)

func (v *View) ID() int64                          { return v.def.cfg.ID }
func (v *View) Name() string                       { return v.def.cfg.Name }
func (v *View) Filter() *viewpattern.Filter        { return v.filter }
func (v *View) DataSource() viewpattern.DataSource { return v.def.source }
func (v *View) IsForcingFilter() bool              { return v.def.cfg.ForceFilter != 0 }
func (v *View) SiblingViews() []markup.Option {
	return append([]markup.Option(nil), v.def.source.views...)
}
func (v *View) Filters() []markup.Option { return append([]markup.Option(nil), v.def.source.order...) }
func (v *View) Actor() viewpattern.Actor { return v.host.actor }

// Template 返回视图模板原文。
func (v *View) Template() string {
	return v.def.cfg.Template
}

// BaseURL 返回视图地址，携带数据源、视图与当前过滤状态。
func (v *View) BaseURL() *markup.URL {
	u := markup.MustParseURL(v.host.publicURL + "/view")
	u.SetInt("d", v.def.source.ID())
	u.SetInt("view", v.ID())
	if !v.IsForcingFilter() && v.filter.ID != viewpattern.FilterCancel {
		u.SetInt("filter", v.filter.ID)
		if v.filter.ID == viewpattern.UserFilter {
			if v.filter.Search != "" {
				u.Set("usersearch", v.filter.Search)
			}
			if v.request.UserPerPage > 0 {
				u.Set("userperpage", strconv.Itoa(v.request.UserPerPage))
			}
		}
	}
	if len(v.filter.EntryIDs) > 0 {
		ids := make([]string, len(v.filter.EntryIDs))
		for i, id := range v.filter.EntryIDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		u.Set("eids", strings.Join(ids, ","))
	}
	return u
}

// Entries 返回当前页要展示的条目，以及条目总数与过滤后的数量。
func (v *View) Entries() (page []config.EntryConfig, total, filtered int) {
	all := v.def.source.cfg.Entries
	total = len(all)

	if len(v.filter.EntryIDs) > 0 {
		wanted := make(map[int64]struct{}, len(v.filter.EntryIDs))
		for _, id := range v.filter.EntryIDs {
			wanted[id] = struct{}{}
		}
		for _, e := range all {
			if _, ok := wanted[e.ID]; ok {
				page = append(page, e)
			}
		}
		return page, total, len(page)
	}

	matched := filterEntries(all, v.filter.Search)
	filtered = len(matched)

	if v.filter.PageNum != nil {
		groups := groupEntries(matched)
		if v.filter.Page < len(groups) {
			page = groups[v.filter.Page]
		}
		return page, total, filtered
	}

	if v.filter.PerPage <= 0 {
		return matched, total, filtered
	}
	start := v.filter.Page * v.filter.PerPage
	if start >= len(matched) {
		return nil, total, filtered
	}
	end := start + v.filter.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, filtered
}

// Rendered 是一次视图渲染的结果。
type Rendered struct {
	HTML         string
	Replacements viewpattern.Replacements
}

// Render 计算条目计数、解析模板中的视图模式，最后填充条目列表。
// opts 中调用方提供的开关（edit、hidenewentry 等）会被保留。
func (v *View) Render(env viewpattern.Env, opts *viewpattern.Options) Rendered {
	opts, entries := v.prepareOptions(opts)

	resolver := viewpattern.New(v, env)
	text := v.Template()
	replacements := resolver.Replacements(resolver.Search(text), nil, opts)
	html := replacements.Apply(text)
	html = strings.ReplaceAll(html, EntriesTag, renderEntries(entries))

	return Rendered{HTML: html, Replacements: replacements}
}

// RenderOptions 返回与 Render 相同的解析选项：条目计数与返回视图由宿主写入，
// opts 为空时新建。
func (v *View) RenderOptions(opts *viewpattern.Options) *viewpattern.Options {
	opts, _ = v.prepareOptions(opts)
	return opts
}

func (v *View) prepareOptions(opts *viewpattern.Options) (*viewpattern.Options, []config.EntryConfig) {
	if opts == nil {
		opts = &viewpattern.Options{}
	}
	entries, total, filtered := v.Entries()
	opts.EntriesCount = total
	opts.EntriesFilterCount = filtered
	if v.request.ReturnView > 0 {
		opts.ReturnView = v.request.ReturnView
	}
	return opts, entries
}

func renderEntries(entries []config.EntryConfig) string {
	var items strings.Builder
	for _, e := range entries {
		id := strconv.FormatInt(e.ID, 10)
		selector := markup.Checkbox(false, markup.A("name", "entryselector"), markup.A("value", id))
		items.WriteString(markup.Tag("li", selector+" "+markup.Text(e.Content),
			markup.A("class", "entry"),
			markup.A("data-entry", id),
		))
	}
	return markup.Tag("ul", items.String(), markup.A("class", "entries"))
}
