package viewpattern

import (
	"fmt"

	"github.com/dataform/viewpatterns/internal/markup"
)

// bulkItemType 是客户端批量操作分发器识别的条目类型。
const bulkItemType = "entry"

var actionHandlers = map[string]tagFunc{
	TagAddNewEntry:   (*Resolver).addNewEntry,
	TagAddNewEntries: (*Resolver).addNewEntries,
	TagSelectAllNone: func(_ *Resolver, _ *Entry, _ *Options) string {
		return markup.Checkbox(false, markup.A("onclick", "select_allnone('"+bulkItemType+"', this.checked)"))
	},
	TagMultiDuplicate: func(r *Resolver, _ *Entry, opts *Options) string {
		return r.bulkButton(opts, "multiduplicate", "duplicate")
	},
	TagMultiEdit: func(r *Resolver, _ *Entry, opts *Options) string {
		if !r.showEntryActions(opts) {
			return ""
		}
		return r.bulkButton(opts, "multiedit", "editentries")
	},
	TagMultiEditIcon: func(r *Resolver, _ *Entry, opts *Options) string {
		if !r.showEntryActions(opts) {
			return ""
		}
		return r.bulkIconButton(opts, "multiedit", "t/edit", "editentries")
	},
	TagMultiDelete: func(r *Resolver, _ *Entry, opts *Options) string {
		if !r.showEntryActions(opts) {
			return ""
		}
		return r.bulkButton(opts, "multidelete", "delete")
	},
	TagMultiDeleteIcon: func(r *Resolver, _ *Entry, opts *Options) string {
		if !r.showEntryActions(opts) {
			return ""
		}
		return r.bulkIconButton(opts, "multidelete", "t/delete", "delete")
	},
	TagMultiApprove: func(r *Resolver, _ *Entry, opts *Options) string {
		if !r.canApprove() {
			return ""
		}
		return r.bulkButton(opts, "multiapprove", "approve")
	},
	TagMultiApproveIcon: func(r *Resolver, _ *Entry, opts *Options) string {
		if !r.canApprove() {
			return ""
		}
		return r.bulkIconButton(opts, "multiapprove", "i/tick_green_big", "approve")
	},
	TagMultiExport: func(r *Resolver, _ *Entry, opts *Options) string {
		return r.exportButton(opts, "", markup.Text(r.str("multiexport")))
	},
	TagMultiExportIcon: func(r *Resolver, _ *Entry, opts *Options) string {
		return r.exportButton(opts, "", r.env.Output.PixIcon("t/portfolioadd", r.str("multiexport")))
	},
	TagMultiExportCSV: func(r *Resolver, _ *Entry, opts *Options) string {
		return r.exportButton(opts, "spreadsheet", r.env.Output.PixIcon("f/ods", r.str("multiexport")))
	},
}

func resolveAction(r *Resolver, tag string, entry *Entry, opts *Options) string {
	return r.dispatch(actionHandlers, tag, entry, opts)
}

func (r *Resolver) showEntryActions(opts *Options) bool {
	return opts.ShowEntryActions || r.view.Actor().CanManageEntries()
}

func (r *Resolver) canApprove() bool {
	return r.view.DataSource().ApprovalEnabled() && r.view.Actor().CanApprove()
}

func (r *Resolver) canAddEntries(opts *Options) bool {
	return !opts.HideNewEntry && r.view.Actor().CanCreateEntries()
}

// addNewEntry 输出新建条目链接，配置了单条编辑视图时跳转到该视图。
func (r *Resolver) addNewEntry(_ *Entry, opts *Options) string {
	if !r.canAddEntries(opts) {
		return ""
	}
	u := opts.BaseURL.Clone()
	if viewID, ok := r.view.DataSource().SingleEditView(); ok {
		u.SetInt("view", viewID)
	}
	u.Set("new", "1")
	label := markup.Tag("span", markup.Text(r.str("entryaddnew")))
	return markup.Link(u.String(), label, markup.A("class", "addnewentry"))
}

// addNewEntries 输出 1..20 的数量下拉框，选中后请求批量新建。
func (r *Resolver) addNewEntries(_ *Entry, opts *Options) string {
	if !r.canAddEntries(opts) {
		return ""
	}
	return r.env.Output.SingleSelect(markup.SingleSelect{
		URL:     opts.BaseURL.Clone(),
		Name:    "new",
		Options: markup.RangeOptions(1, 20),
		Nothing: &markup.Option{Value: "0", Label: r.str("dots")},
		FormID:  "newentries_jump",
		Label:   r.str("entryaddmultinew"),
	})
}

// bulkAction 生成客户端批量操作分发器的调用脚本。
func bulkAction(u *markup.URL, action string, extra ...string) string {
	script := fmt.Sprintf("bulk_action('%s', '%s', '%s'", bulkItemType, u.String(), action)
	for _, arg := range extra {
		script += ", " + arg
	}
	return script + ")"
}

func (r *Resolver) bulkButton(opts *Options, name, action string) string {
	return markup.EmptyTag("input",
		markup.A("type", "button"),
		markup.A("name", name),
		markup.A("value", r.str(name)),
		markup.A("onclick", bulkAction(opts.BaseURL, action)),
	)
}

func (r *Resolver) bulkIconButton(opts *Options, name, icon, action string) string {
	return markup.Tag("button", r.env.Output.PixIcon(icon, r.str(name)),
		markup.A("type", "button"),
		markup.A("name", name),
		markup.A("onclick", bulkAction(opts.BaseURL, action)),
	)
}

// exportButton 是三个导出标签共用的按钮，format 非空时附加到地址上。
func (r *Resolver) exportButton(opts *Options, format, content string) string {
	if !r.env.PortfoliosEnabled {
		return ""
	}
	u := opts.BaseURL.Clone()
	if format != "" {
		u.Set("format", format)
	}
	return markup.Tag("button", content,
		markup.A("type", "button"),
		markup.A("name", "multiexport"),
		markup.A("onclick", bulkAction(u, "export", "-1")),
	)
}
