package viewpattern

import "strconv"

var infoHandlers = map[string]tagFunc{
	TagNumEntriesTotal: func(_ *Resolver, _ *Entry, opts *Options) string {
		return strconv.Itoa(opts.EntriesCount)
	},
	TagNumEntriesDisplayed: func(_ *Resolver, _ *Entry, opts *Options) string {
		return strconv.Itoa(opts.EntriesFilterCount)
	},
}

func resolveInfo(r *Resolver, tag string, entry *Entry, opts *Options) string {
	return r.dispatch(infoHandlers, tag, entry, opts)
}
