package viewpattern

import (
	"errors"
	"fmt"
)

// Category 是标签所属分类的文案键，Menu 输出时再本地化。
type Category string

const (
	CategoryInfo     Category = "entries"
	CategoryMenu     Category = "menus"
	CategoryUserPref Category = "userpref"
	CategoryAction   Category = "generalactions"
	CategoryPaging   Category = "pagingbar"

	// categoryDefault 是分类为空时使用的菜单分组。
	categoryDefault Category = "views"
)

// 内置标签。
const (
	TagNumEntriesTotal     = "##numentriestotal##"
	TagNumEntriesDisplayed = "##numentriesdisplayed##"

	TagViewsMenu   = "##viewsmenu##"
	TagFiltersMenu = "##filtersmenu##"

	TagQuickSearch  = "##quicksearch##"
	TagQuickPerPage = "##quickperpage##"

	TagAddNewEntry      = "##addnewentry##"
	TagAddNewEntries    = "##addnewentries##"
	TagSelectAllNone    = "##selectallnone##"
	TagMultiDuplicate   = "##multiduplicate##"
	TagMultiEdit        = "##multiedit##"
	TagMultiEditIcon    = "##multiedit:icon##"
	TagMultiDelete      = "##multidelete##"
	TagMultiDeleteIcon  = "##multidelete:icon##"
	TagMultiApprove     = "##multiapprove##"
	TagMultiApproveIcon = "##multiapprove:icon##"
	TagMultiExport      = "##multiexport##"
	TagMultiExportIcon  = "##multiexport:icon##"
	TagMultiExportCSV   = "##multiexport:csv##"
	TagMultiImport      = "##multiimport##"
	TagMultiImportIcon  = "##multiimporty:icon##"

	TagPagingBar = "##pagingbar##"
)

// ErrDuplicatePattern 表示同一个标签被登记到多个分组。
var ErrDuplicatePattern = errors.New("pattern already registered")

// Pattern 是目录中的一条标签定义。
type Pattern struct {
	Tag        string
	ShowInMenu bool
	Category   Category
}

// CategoryResolver 计算某个已识别标签的替换值。
type CategoryResolver func(r *Resolver, tag string, entry *Entry, opts *Options) string

// Group 是同一分类下的一组标签及其解析器。Resolve 为空时组内标签解析为空串。
// 未设置 Category 的 Pattern 继承分组的 Category。
type Group struct {
	Category Category
	Patterns []Pattern
	Resolve  CategoryResolver
}

// Catalogue 是有序、无重复的标签目录。
type Catalogue struct {
	groups  []Group
	ordered []Pattern
	byTag   map[string]int
}

// NewCatalogue 依次登记各分组，遇到重复标签返回 ErrDuplicatePattern。
func NewCatalogue(groups ...Group) (*Catalogue, error) {
	c := &Catalogue{byTag: make(map[string]int)}
	for gi, g := range groups {
		patterns := make([]Pattern, len(g.Patterns))
		for i, p := range g.Patterns {
			if p.Category == "" {
				p.Category = g.Category
			}
			patterns[i] = p
			if p.Tag == "" {
				return nil, fmt.Errorf("分组 %s 存在空标签", g.Category)
			}
			if prev, exists := c.byTag[p.Tag]; exists {
				return nil, fmt.Errorf("%w: %s (%s, %s)", ErrDuplicatePattern, p.Tag, groups[prev].Category, g.Category)
			}
			c.byTag[p.Tag] = gi
			c.ordered = append(c.ordered, p)
		}
		g.Patterns = patterns
		c.groups = append(c.groups, g)
	}
	return c, nil
}

// MustCatalogue 在登记失败时 panic，适合包级默认目录。
func MustCatalogue(groups ...Group) *Catalogue {
	c, err := NewCatalogue(groups...)
	if err != nil {
		panic(err)
	}
	return c
}

// Patterns 返回全部标签定义，顺序即目录顺序。
func (c *Catalogue) Patterns() []Pattern {
	return append([]Pattern(nil), c.ordered...)
}

// Tags 返回某个分类下的标签。
func (c *Catalogue) Tags(cat Category) []string {
	var tags []string
	for _, g := range c.groups {
		if g.Category != cat {
			continue
		}
		for _, p := range g.Patterns {
			tags = append(tags, p.Tag)
		}
	}
	return tags
}

// group 返回标签所属分组；未知标签返回 false。
func (c *Catalogue) group(tag string) (Group, bool) {
	idx, ok := c.byTag[tag]
	if !ok {
		return Group{}, false
	}
	return c.groups[idx], true
}

func patternsOf(cat Category, tags ...string) []Pattern {
	result := make([]Pattern, len(tags))
	for i, tag := range tags {
		result[i] = Pattern{Tag: tag, ShowInMenu: true, Category: cat}
	}
	return result
}

// defaultGroups 按 info、menu、userpref、action、paging 顺序返回内置分组。
func defaultGroups() []Group {
	return []Group{
		{
			Category: CategoryInfo,
			Patterns: patternsOf(CategoryInfo, TagNumEntriesTotal, TagNumEntriesDisplayed),
			Resolve:  resolveInfo,
		},
		{
			Category: CategoryMenu,
			Patterns: patternsOf(CategoryMenu, TagViewsMenu, TagFiltersMenu),
			Resolve:  resolveMenu,
		},
		{
			Category: CategoryUserPref,
			Patterns: patternsOf(CategoryUserPref, TagQuickSearch, TagQuickPerPage),
			Resolve:  resolveUserPref,
		},
		{
			Category: CategoryAction,
			Patterns: patternsOf(CategoryAction,
				TagAddNewEntry,
				TagAddNewEntries,
				TagSelectAllNone,
				TagMultiDuplicate,
				TagMultiEdit,
				TagMultiEditIcon,
				TagMultiDelete,
				TagMultiDeleteIcon,
				TagMultiApprove,
				TagMultiApproveIcon,
				TagMultiExport,
				TagMultiExportIcon,
				TagMultiExportCSV,
				// 导入按钮尚无解析分支，解析结果为空串。
				TagMultiImport,
				TagMultiImportIcon,
			),
			Resolve: resolveAction,
		},
		{
			Category: CategoryPaging,
			Patterns: patternsOf(CategoryPaging, TagPagingBar),
			Resolve:  resolvePaging,
		},
	}
}
