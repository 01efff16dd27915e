package viewpattern

import (
	"github.com/dataform/viewpatterns/internal/i18n"
	"github.com/dataform/viewpatterns/internal/markup"
)

type fakeDataSource struct {
	id         int64
	approval   bool
	singleEdit int64
}

func (d *fakeDataSource) ID() int64             { return d.id }
func (d *fakeDataSource) ApprovalEnabled() bool { return d.approval }
func (d *fakeDataSource) SingleEditView() (int64, bool) {
	return d.singleEdit, d.singleEdit > 0
}

type fakeActor struct {
	manage  bool
	create  bool
	approve bool
}

func (a *fakeActor) CanManageEntries() bool { return a.manage }
func (a *fakeActor) CanCreateEntries() bool { return a.create }
func (a *fakeActor) CanApprove() bool       { return a.approve }

type fakeView struct {
	id      int64
	name    string
	baseURL string
	filter  *Filter
	ds      *fakeDataSource
	forcing bool
	views   []markup.Option
	filters []markup.Option
	actor   *fakeActor
}

func (v *fakeView) ID() int64                     { return v.id }
func (v *fakeView) Name() string                  { return v.name }
func (v *fakeView) BaseURL() *markup.URL          { return markup.MustParseURL(v.baseURL) }
func (v *fakeView) Filter() *Filter               { return v.filter }
func (v *fakeView) DataSource() DataSource        { return v.ds }
func (v *fakeView) IsForcingFilter() bool         { return v.forcing }
func (v *fakeView) SiblingViews() []markup.Option { return v.views }
func (v *fakeView) Filters() []markup.Option      { return v.filters }
func (v *fakeView) Actor() Actor                  { return v.actor }

func newFakeView() *fakeView {
	return &fakeView{
		id:      7,
		name:    "List",
		baseURL: "http://lms.local/mod/dataform/view.php?d=3&view=7",
		filter:  &Filter{},
		ds:      &fakeDataSource{id: 3},
		views:   []markup.Option{{Value: "7", Label: "List"}, {Value: "8", Label: "Grid"}},
		filters: []markup.Option{{Value: "11", Label: "Recent"}},
		actor:   &fakeActor{},
	}
}

func newTestEnv() Env {
	strs := i18n.MustNew("en", nil)
	return Env{
		Strings:    strs,
		Output:     markup.NewRenderer("http://lms.local/pix", strs),
		SessionKey: func() string { return "sk" },
	}
}

func newTestResolver(v *fakeView) *Resolver {
	return New(v, newTestEnv())
}

// resolveOne 解析单个标签并断言它被识别。
func resolveOne(r *Resolver, tag string, opts *Options) (string, bool) {
	return r.Replacements([]string{tag}, nil, opts).Lookup(tag)
}
