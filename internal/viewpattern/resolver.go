package viewpattern

import (
	"strings"

	"github.com/sirupsen/logrus"
)

var defaultCatalogue = MustCatalogue(defaultGroups()...)

// DefaultCatalogue 返回内置标签目录。
func DefaultCatalogue() *Catalogue {
	return defaultCatalogue
}

// Resolver 针对单个视图解析模板标签，生命周期为一次页面渲染。
type Resolver struct {
	view      View
	env       Env
	catalogue *Catalogue
}

// New 使用内置目录创建解析器。
func New(view View, env Env) *Resolver {
	return NewWithCatalogue(view, env, defaultCatalogue)
}

// NewWithCatalogue 使用自定义目录创建解析器，便于宿主扩展标签。
func NewWithCatalogue(view View, env Env, catalogue *Catalogue) *Resolver {
	return &Resolver{view: view, env: env, catalogue: catalogue}
}

// View 返回正在解析的视图，供自定义分组的解析器使用。
func (r *Resolver) View() View {
	return r.view
}

// Env 返回渲染上下文。
func (r *Resolver) Env() Env {
	return r.env
}

// Patterns 返回目录中全部标签定义。
func (r *Resolver) Patterns() []Pattern {
	return r.catalogue.Patterns()
}

// Search 返回 text 中出现的已知标签，顺序为目录顺序。
func (r *Resolver) Search(text string) []string {
	var found []string
	for _, p := range r.catalogue.ordered {
		if strings.Contains(text, p.Tag) {
			found = append(found, p.Tag)
		}
	}
	return found
}

// MenuCategory 是标签选择器中的一个分组。
type MenuCategory struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Tags     []string `json:"tags"`
}

// Menu 是按分类分组的标签菜单，分类顺序为首次出现顺序。
type Menu []MenuCategory

// Menu 构建编辑器使用的标签菜单；showAll 为 false 时只包含 ShowInMenu 的标签。
func (r *Resolver) Menu(showAll bool) Menu {
	var menu Menu
	index := make(map[Category]int)
	for _, p := range r.catalogue.ordered {
		if !showAll && !p.ShowInMenu {
			continue
		}
		cat := p.Category
		if cat == "" {
			cat = categoryDefault
		}
		idx, ok := index[cat]
		if !ok {
			idx = len(menu)
			index[cat] = idx
			menu = append(menu, MenuCategory{Category: cat, Label: r.str(string(cat))})
		}
		menu[idx].Tags = append(menu[idx].Tags, p.Tag)
	}
	return menu
}

// Replacements 解析 tags 中每个已识别的标签。opts 的 Filter 与 BaseURL 在任何分类
// 解析器运行之前写入；未知标签不出现在结果中，已识别但当前不可用的标签解析为空串。
func (r *Resolver) Replacements(tags []string, entry *Entry, opts *Options) Replacements {
	if opts == nil {
		opts = &Options{}
	}
	opts.Filter = r.view.Filter()
	if opts.Filter == nil {
		opts.Filter = &Filter{}
	}
	opts.BaseURL = r.view.BaseURL().Clone().Set("sesskey", r.sessionKey())

	result := make(Replacements, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	dropped := 0
	for _, tag := range tags {
		if _, dup := seen[tag]; dup {
			continue
		}
		g, ok := r.catalogue.group(tag)
		if !ok {
			dropped++
			continue
		}
		seen[tag] = struct{}{}
		value := ""
		if g.Resolve != nil {
			value = g.Resolve(r, tag, entry, opts)
		}
		result = append(result, Replacement{Tag: tag, Value: value})
	}

	if r.env.Logger != nil {
		r.env.Logger.WithFields(logrus.Fields{
			"action":    "resolve_patterns",
			"view_id":   r.view.ID(),
			"view_name": r.view.Name(),
			"requested": len(tags),
			"resolved":  len(result),
			"dropped":   dropped,
			"edit":      opts.Edit,
		}).Debug("view patterns resolved")
	}
	return result
}

// Apply 把替换结果写回模板文本。
func (r Replacements) Apply(text string) string {
	if len(r) == 0 {
		return text
	}
	pairs := make([]string, 0, len(r)*2)
	for _, item := range r {
		pairs = append(pairs, item.Tag, item.Value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// Render 搜索模板中的标签、解析并完成替换。
func (r *Resolver) Render(text string, entry *Entry, opts *Options) string {
	return r.Replacements(r.Search(text), entry, opts).Apply(text)
}

// tagFunc 是分类内单个标签的计算函数。
type tagFunc func(r *Resolver, entry *Entry, opts *Options) string

// dispatch 在分类的标签表中查找计算函数，未登记的标签解析为空串。
func (r *Resolver) dispatch(handlers map[string]tagFunc, tag string, entry *Entry, opts *Options) string {
	if h, ok := handlers[tag]; ok {
		return h(r, entry, opts)
	}
	return ""
}

func (r *Resolver) str(key string) string {
	if r.env.Strings == nil {
		return key
	}
	return r.env.Strings.String(key)
}

func (r *Resolver) sessionKey() string {
	if r.env.SessionKey == nil {
		return ""
	}
	return r.env.SessionKey()
}
