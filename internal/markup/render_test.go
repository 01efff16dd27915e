package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mapTranslator map[string]string

func (m mapTranslator) String(key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}

func newTestRenderer() *Renderer {
	return NewRenderer("http://lms.local/pix/", mapTranslator{
		"page":     "Page",
		"previous": "Previous",
		"next":     "Next",
		"go":       "Go",
	})
}

func TestPixIcon(t *testing.T) {
	got := newTestRenderer().PixIcon("t/edit", "Edit")
	assert.Equal(t, `<img src="http://lms.local/pix/t/edit" alt="Edit" title="Edit" class="icon" />`, got)
}

func TestSingleSelectRendersHiddenParamsAndSelection(t *testing.T) {
	r := newTestRenderer()
	got := r.SingleSelect(SingleSelect{
		URL:      MustParseURL("/view.php?d=3&sesskey=k"),
		Name:     "view",
		Options:  []Option{{"1", "List"}, {"2", "Grid"}},
		Selected: "2",
		Nothing:  &Option{Value: "", Label: "Choose..."},
		FormID:   "viewbrowse_jump",
		Label:    "Current view",
		Method:   "post",
	})

	assert.True(t, strings.HasPrefix(got, `<div class="singleselect"><form method="post" action="/view.php" id="viewbrowse_jump">`))
	assert.Contains(t, got, `<input type="hidden" name="d" value="3" />`)
	assert.Contains(t, got, `<input type="hidden" name="sesskey" value="k" />`)
	assert.Contains(t, got, `<label for="viewbrowse_jump_view">Current view</label>`)
	assert.Contains(t, got, `<option value="">Choose...</option>`)
	assert.Contains(t, got, `<option value="2" selected="selected">Grid</option>`)
	assert.Contains(t, got, `<option value="1">List</option>`)
}

func TestPagingBar(t *testing.T) {
	r := newTestRenderer()
	base := MustParseURL("/view.php?d=3")

	t.Run("single page renders nothing", func(t *testing.T) {
		assert.Equal(t, "", r.PagingBar(PagingBar{TotalCount: 5, PerPage: 10, BaseURL: base}))
	})

	t.Run("zero perpage renders nothing", func(t *testing.T) {
		assert.Equal(t, "", r.PagingBar(PagingBar{TotalCount: 5, BaseURL: base}))
	})

	t.Run("middle page has previous and next", func(t *testing.T) {
		got := r.PagingBar(PagingBar{TotalCount: 25, Page: 1, PerPage: 10, BaseURL: base, PageVar: "page"})
		assert.Contains(t, got, `(<a href="/view.php?d=3&amp;page=0">Previous</a>)`)
		assert.Contains(t, got, `<span class="current-page">2</span>`)
		assert.Contains(t, got, `<a href="/view.php?d=3&amp;page=2">3</a>`)
		assert.Contains(t, got, `(<a href="/view.php?d=3&amp;page=2">Next</a>)`)
	})

	t.Run("last page has no next", func(t *testing.T) {
		got := r.PagingBar(PagingBar{TotalCount: 25, Page: 2, PerPage: 10, BaseURL: base})
		assert.NotContains(t, got, "Next")
	})

	t.Run("long range is elided", func(t *testing.T) {
		got := r.PagingBar(PagingBar{TotalCount: 100, Page: 50, PerPage: 1, BaseURL: base})
		assert.Contains(t, got, `<a href="/view.php?d=3&amp;page=0">1</a> ...`)
		assert.Contains(t, got, `... <a href="/view.php?d=3&amp;page=99">100</a>`)
		assert.Contains(t, got, `<span class="current-page">51</span>`)
	})
}

func TestRangeOptions(t *testing.T) {
	opts := RangeOptions(1, 3)
	assert.Equal(t, []Option{{"1", "1"}, {"2", "2"}, {"3", "3"}}, opts)
	assert.Nil(t, RangeOptions(3, 1))
}
