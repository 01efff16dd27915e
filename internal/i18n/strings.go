package i18n

// defaultStrings 是内置的英文文案，键与视图模式分类/按钮一一对应。
var defaultStrings = map[string]string{
	"views":          "Views",
	"entries":        "Entries",
	"menus":          "Menus",
	"userpref":       "User preferences",
	"generalactions": "General actions",
	"pagingbar":      "Paging bar",

	"entryaddnew":      "Add a new entry",
	"entryaddmultinew": "Add new entries",
	"dots":             "...",
	"choosedots":       "Choose...",
	"multiduplicate":   "Duplicate",
	"multiedit":        "Edit",
	"multidelete":      "Delete",
	"multiapprove":     "Approve",
	"multiexport":      "Export",

	"viewcurrent":      "Current view",
	"viewreturntolist": "Return to list",
	"filtercurrent":    "Current filter",
	"filteruserpref":   "** My saved filter",
	"filteruserreset":  "** Reset my saved filter",
	"filtercancel":     "** Cancel filter",
	"filterperpage":    "Per page",
	"search":           "Search",

	"page":     "Page",
	"previous": "Previous",
	"next":     "Next",
	"go":       "Go",
}
