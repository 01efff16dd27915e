package host

import (
	"errors"
	"strings"
	"testing"

	"github.com/dataform/viewpatterns/internal/config"
	"github.com/dataform/viewpatterns/internal/i18n"
	"github.com/dataform/viewpatterns/internal/markup"
	"github.com/dataform/viewpatterns/internal/viewpattern"
)

func testConfig(role string) *config.Config {
	return &config.Config{
		Global: config.GlobalConfig{PublicURL: "http://lms.local", Role: role},
		DataSources: []config.DataSourceConfig{
			{
				ID:             3,
				Name:           "birds",
				Approval:       true,
				SingleEditView: 8,
				Views: []config.ViewConfig{
					{ID: 7, Name: "List", PerPage: 2, Template: "<p>##numentriesdisplayed##/##numentriestotal##</p>##entries####pagingbar##"},
					{ID: 8, Name: "Edit", Template: "##addnewentry##"},
					{ID: 9, Name: "Forced", ForceFilter: 11, Template: "##quicksearch##|##filtersmenu##"},
				},
				Filters: []config.FilterConfig{
					{ID: 11, Name: "Herons", Search: "heron"},
					{ID: 12, Name: "By family", GroupBy: true},
				},
				Entries: []config.EntryConfig{
					{ID: 1, Content: "Grey heron", Group: "Ardeidae"},
					{ID: 2, Content: "Purple heron", Group: "Ardeidae"},
					{ID: 3, Content: "Hoopoe", Group: "Upupidae"},
				},
			},
		},
	}
}

func newTestHost(t *testing.T, role string) *Host {
	t.Helper()
	h, err := New(testConfig(role))
	if err != nil {
		t.Fatalf("构建宿主失败: %v", err)
	}
	return h
}

func testEnv() viewpattern.Env {
	strs := i18n.MustNew("en", nil)
	return viewpattern.Env{
		Strings:    strs,
		Output:     markup.NewRenderer("http://lms.local/pix", strs),
		SessionKey: func() string { return "sk" },
	}
}

func TestViewRejectsUnknownOrForeignView(t *testing.T) {
	h := newTestHost(t, "student")
	if _, err := h.View(Request{View: 99}); !errors.Is(err, ErrViewNotFound) {
		t.Fatalf("未知视图应返回 ErrViewNotFound，得到 %v", err)
	}
	if _, err := h.View(Request{View: 7, DataSource: 4}); !errors.Is(err, ErrViewNotFound) {
		t.Fatalf("数据源不匹配应返回 ErrViewNotFound，得到 %v", err)
	}
}

func TestSelectFilter(t *testing.T) {
	h := newTestHost(t, "student")

	cases := []struct {
		name    string
		req     Request
		id      int64
		search  string
		perPage int
	}{
		{"default", Request{View: 7}, 0, "", 2},
		{"saved", Request{View: 7, Filter: 11}, 11, "heron", 2},
		{"unknown falls back", Request{View: 7, Filter: 55}, 0, "", 2},
		{"user set", Request{View: 7, Filter: viewpattern.UserFilterSet, UserSearch: "hoo", UserPerPage: 5}, viewpattern.UserFilter, "hoo", 5},
		{"user reset", Request{View: 7, Filter: viewpattern.UserFilterReset, UserSearch: "hoo"}, 0, "", 2},
		{"forced", Request{View: 9, Filter: 12}, 11, "heron", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := h.View(tc.req)
			if err != nil {
				t.Fatalf("View 失败: %v", err)
			}
			f := v.Filter()
			if f.ID != tc.id || f.Search != tc.search || f.PerPage != tc.perPage {
				t.Fatalf("过滤器不符: %+v", f)
			}
		})
	}
}

func TestGroupByFilterSetsPageNum(t *testing.T) {
	h := newTestHost(t, "student")
	v, err := h.View(Request{View: 7, Filter: 12, Page: 1})
	if err != nil {
		t.Fatalf("View 失败: %v", err)
	}
	if v.Filter().PageNum == nil || *v.Filter().PageNum != 2 {
		t.Fatalf("应有 2 个分组: %+v", v.Filter())
	}
	page, total, filtered := v.Entries()
	if total != 3 || filtered != 3 || len(page) != 1 || page[0].Content != "Hoopoe" {
		t.Fatalf("分组分页结果错误: %+v %d %d", page, total, filtered)
	}
}

func TestEntriesPaging(t *testing.T) {
	h := newTestHost(t, "student")
	v, _ := h.View(Request{View: 7, Page: 1})
	page, total, filtered := v.Entries()
	if total != 3 || filtered != 3 || len(page) != 1 || page[0].ID != 3 {
		t.Fatalf("分页结果错误: %+v %d %d", page, total, filtered)
	}

	v, _ = h.View(Request{View: 7, Page: 5})
	if page, _, _ := v.Entries(); len(page) != 0 {
		t.Fatalf("越界页应为空: %+v", page)
	}

	v, _ = h.View(Request{View: 7, EntryIDs: []int64{2}})
	page, _, filtered = v.Entries()
	if filtered != 1 || page[0].ID != 2 {
		t.Fatalf("eids 选择错误: %+v", page)
	}
}

func TestBaseURLCarriesFilterState(t *testing.T) {
	h := newTestHost(t, "student")

	v, _ := h.View(Request{View: 7})
	if got := v.BaseURL().String(); got != "http://lms.local/view?d=3&view=7" {
		t.Fatalf("默认地址错误: %s", got)
	}

	v, _ = h.View(Request{View: 7, Filter: viewpattern.UserFilterSet, UserSearch: "grey heron", UserPerPage: 5, EntryIDs: []int64{1, 2}})
	want := "http://lms.local/view?d=3&view=7&filter=-1&usersearch=grey+heron&userperpage=5&eids=1%2C2"
	if got := v.BaseURL().String(); got != want {
		t.Fatalf("用户过滤器地址错误: %s", got)
	}

	v, _ = h.View(Request{View: 9})
	if got := v.BaseURL().String(); got != "http://lms.local/view?d=3&view=9" {
		t.Fatalf("强制过滤器不应写入地址: %s", got)
	}
}

func TestRenderFillsPatternsAndEntries(t *testing.T) {
	h := newTestHost(t, "student")
	v, _ := h.View(Request{View: 7, Filter: 11})

	out := v.Render(testEnv(), nil)
	if !strings.HasPrefix(out.HTML, "<p>2/3</p><ul class=\"entries\">") {
		t.Fatalf("渲染结果错误: %s", out.HTML)
	}
	if !strings.Contains(out.HTML, "Purple heron") || strings.Contains(out.HTML, "Hoopoe") {
		t.Fatalf("条目过滤错误: %s", out.HTML)
	}
	if _, ok := out.Replacements.Lookup(viewpattern.TagPagingBar); !ok {
		t.Fatalf("应解析分页标签")
	}
	if strings.Contains(out.HTML, "##") {
		t.Fatalf("不应残留标签: %s", out.HTML)
	}
}

func TestRenderReturnLinkUsesRet(t *testing.T) {
	h := newTestHost(t, "student")
	v, _ := h.View(Request{View: 7, EntryIDs: []int64{1}, ReturnView: 8})
	out := v.Render(testEnv(), nil)
	if !strings.Contains(out.HTML, `<a href="http://lms.local/view?d=3&amp;view=8">Return to list</a>`) {
		t.Fatalf("返回链接错误: %s", out.HTML)
	}
}

func TestRenderAddNewEntryByRole(t *testing.T) {
	guest := newTestHost(t, "guest")
	v, _ := guest.View(Request{View: 8})
	if out := v.Render(testEnv(), nil); out.HTML != "" {
		t.Fatalf("guest 不应看到新建链接: %s", out.HTML)
	}

	student := newTestHost(t, "student")
	v, _ = student.View(Request{View: 8})
	out := v.Render(testEnv(), nil)
	if !strings.Contains(out.HTML, "view=8&amp;sesskey=sk&amp;new=1") {
		t.Fatalf("新建链接应指向单条编辑视图: %s", out.HTML)
	}
}

func TestRenderForcedViewHidesUserPreferences(t *testing.T) {
	h := newTestHost(t, "teacher")
	v, _ := h.View(Request{View: 9})
	if out := v.Render(testEnv(), nil); out.HTML != "|" {
		t.Fatalf("强制过滤器视图不应输出偏好控件: %q", out.HTML)
	}
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest(map[string]string{
		"d":           "3",
		"view":        " 7 ",
		"filter":      "-2",
		"eids":        "1,2,3",
		"usersearch":  "heron",
		"userperpage": "20",
		"ret":         "8",
		"page":        "-4",
		"other":       "ignored",
	})
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if req.DataSource != 3 || req.View != 7 || req.Filter != -2 || req.ReturnView != 8 {
		t.Fatalf("解析结果错误: %+v", req)
	}
	if len(req.EntryIDs) != 3 || req.EntryIDs[2] != 3 {
		t.Fatalf("eids 解析错误: %+v", req.EntryIDs)
	}
	if req.Page != 0 {
		t.Fatalf("负页码应归零: %d", req.Page)
	}

	if _, err := ParseRequest(map[string]string{"view": "abc"}); err == nil {
		t.Fatalf("非法 view 应报错")
	}
}

func TestActorForRole(t *testing.T) {
	if a := ActorForRole("Teacher"); !a.CanManageEntries() || !a.CanApprove() || !a.CanCreateEntries() {
		t.Fatalf("teacher 能力错误: %+v", a)
	}
	if a := ActorForRole("student"); a.CanManageEntries() || !a.CanCreateEntries() {
		t.Fatalf("student 能力错误: %+v", a)
	}
	if a := ActorForRole("nobody"); a.Role != "guest" || a.CanCreateEntries() {
		t.Fatalf("未知角色应按 guest 处理: %+v", a)
	}
}

func TestRenderOptionsMatchRender(t *testing.T) {
	h := newTestHost(t, "student")
	v, _ := h.View(Request{View: 7, Filter: 11, ReturnView: 8})

	opts := v.RenderOptions(&viewpattern.Options{HideNewEntry: true})
	if opts.EntriesCount != 3 || opts.EntriesFilterCount != 2 || opts.ReturnView != 8 || !opts.HideNewEntry {
		t.Fatalf("解析选项错误: %+v", opts)
	}
	if fresh := v.RenderOptions(nil); fresh.EntriesCount != 3 {
		t.Fatalf("nil 选项应被新建并填充: %+v", fresh)
	}
}

func TestParseRequestSkipsEmptyEntryIDs(t *testing.T) {
	req, err := ParseRequest(map[string]string{"view": "7", "eids": "1,,2, "})
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if len(req.EntryIDs) != 2 || req.EntryIDs[0] != 1 || req.EntryIDs[1] != 2 {
		t.Fatalf("空元素应被忽略: %+v", req.EntryIDs)
	}

	req, err = ParseRequest(map[string]string{"view": "7", "eids": ","})
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if len(req.EntryIDs) != 0 {
		t.Fatalf("只有分隔符时不应产生 ID: %+v", req.EntryIDs)
	}
}
