package markup

import (
	"strconv"
	"strings"
)

// Translator 为 widget 提供本地化文案。
type Translator interface {
	String(key string) string
}

// Option 是下拉框中的一项，Value 为提交值，Label 为显示文本。
type Option struct {
	Value string
	Label string
}

// SingleSelect 描述一个选中即跳转的下拉表单，URL 中的参数会作为 hidden input 回传。
type SingleSelect struct {
	URL      *URL
	Name     string
	Options  []Option
	Selected string
	// Nothing 为可选的占位项（例如 "Choose..."），nil 表示不输出。
	Nothing *Option
	FormID  string
	Label   string
	// Method 默认为 get。
	Method string
}

// PagingBar 描述分页条；Page 从 0 开始计数。
type PagingBar struct {
	TotalCount int
	Page       int
	PerPage    int
	BaseURL    *URL
	PageVar    string
}

const pagingMaxDisplay = 18

// Renderer 汇总 widget 渲染所需的宿主依赖：图标地址与本地化文案。
type Renderer struct {
	pixURL string
	t      Translator
}

// NewRenderer 创建渲染器，pixURL 为图标根地址。
func NewRenderer(pixURL string, t Translator) *Renderer {
	return &Renderer{pixURL: strings.TrimRight(pixURL, "/"), t: t}
}

// PixIcon 输出指向 pixURL/<name> 的图标。
func (r *Renderer) PixIcon(name, alt string) string {
	return EmptyTag("img",
		A("src", r.pixURL+"/"+strings.TrimLeft(name, "/")),
		A("alt", alt),
		A("title", alt),
		A("class", "icon"),
	)
}

// SingleSelect 输出 <div class="singleselect"> 包裹的跳转表单。
func (r *Renderer) SingleSelect(s SingleSelect) string {
	method := s.Method
	if method == "" {
		method = "get"
	}
	selectID := s.FormID + "_" + s.Name
	if s.FormID == "" {
		selectID = "single_select_" + s.Name
	}

	var options strings.Builder
	if s.Nothing != nil {
		options.WriteString(renderOption(*s.Nothing, s.Selected))
	}
	for _, opt := range s.Options {
		options.WriteString(renderOption(opt, s.Selected))
	}

	var body strings.Builder
	var action string
	if s.URL != nil {
		body.WriteString(HiddenInputs(s.URL.Params()))
		action = s.URL.OmitQuery()
	}
	if s.Label != "" {
		body.WriteString(Label(s.Label, selectID))
		body.WriteString("&nbsp;")
	}
	body.WriteString(Tag("select", options.String(),
		A("id", selectID),
		A("name", s.Name),
		A("class", "select autosubmit"),
	))
	body.WriteString(Tag("noscript", EmptyTag("input", A("type", "submit"), A("value", r.str("go")))))

	form := Tag("form", Tag("div", body.String()),
		A("method", method),
		A("action", action),
		A("id", s.FormID),
	)
	return Tag("div", form, A("class", "singleselect"))
}

// PagingBar 输出分页条；总数不超过一页时返回空串。
func (r *Renderer) PagingBar(p PagingBar) string {
	if p.PerPage <= 0 || p.TotalCount <= p.PerPage {
		return ""
	}
	pageVar := p.PageVar
	if pageVar == "" {
		pageVar = "page"
	}
	link := func(page int, text string) string {
		u := p.BaseURL.Clone().Set(pageVar, strconv.Itoa(page))
		return Link(u.String(), text)
	}

	lastPage := (p.TotalCount + p.PerPage - 1) / p.PerPage
	var parts []string
	parts = append(parts, Text(r.str("page"))+":")

	if p.Page > 0 {
		parts = append(parts, "("+link(p.Page-1, Text(r.str("previous")))+")")
	}

	current := 0
	if p.Page > pagingMaxDisplay*2/3 {
		current = p.Page - pagingMaxDisplay/3
		parts = append(parts, link(0, "1"), "...")
	}
	for shown := 0; shown < pagingMaxDisplay && current < lastPage; shown++ {
		label := strconv.Itoa(current + 1)
		if current == p.Page {
			parts = append(parts, Tag("span", label, A("class", "current-page")))
		} else {
			parts = append(parts, link(current, label))
		}
		current++
	}
	if current < lastPage {
		parts = append(parts, "...", link(lastPage-1, strconv.Itoa(lastPage)))
	}

	if p.Page+1 < lastPage {
		parts = append(parts, "("+link(p.Page+1, Text(r.str("next")))+")")
	}

	return Tag("div", strings.Join(parts, " "), A("class", "paging"))
}

func (r *Renderer) str(key string) string {
	if r.t == nil {
		return key
	}
	return r.t.String(key)
}

func renderOption(opt Option, selected string) string {
	attrs := []Attr{A("value", opt.Value)}
	if opt.Value == selected {
		attrs = append(attrs, A("selected", "selected"))
	}
	return Tag("option", Text(opt.Label), attrs...)
}

// IntOptions 将整数列表转换为值与文本相同的选项。
func IntOptions(values ...int) []Option {
	result := make([]Option, len(values))
	for i, v := range values {
		s := strconv.Itoa(v)
		result[i] = Option{Value: s, Label: s}
	}
	return result
}

// RangeOptions 返回 [from, to] 闭区间的整数选项。
func RangeOptions(from, to int) []Option {
	if to < from {
		return nil
	}
	values := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		values = append(values, i)
	}
	return IntOptions(values...)
}
