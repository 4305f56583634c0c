// Package radar runs the full filter and rank pipeline over a candidate list
package radar

import (
	"github.com/uberswe/domainRadar/pkg/domain"
	"github.com/uberswe/domainRadar/pkg/filter"
	"github.com/uberswe/domainRadar/pkg/rank"
)

// HighlightCount is the number of top ranked domains reported as highlights
const HighlightCount = 12

// Report is the outcome of one pipeline pass
type Report struct {
	Items      []domain.Result
	Total      int   // candidates before filtering
	PatternErr error // compile error of the configured regex, which was ignored
}

// Rank filters candidates with cfg and orders the survivors by cfg.SortBy.
// candidates is only read.
func Rank(candidates []string, cfg domain.FilterConfig) Report {
	return Report{
		Items:      rank.Sort(filter.Filter(candidates, cfg), cfg.SortBy),
		Total:      len(candidates),
		PatternErr: filter.CompilePattern(cfg.Regex).Err(),
	}
}

// Highlights returns the names of the first HighlightCount ranked items
func (r Report) Highlights() []string {
	n := min(len(r.Items), HighlightCount)
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = r.Items[i].Domain
	}
	return names
}

// Top returns at most limit ranked items. A non-positive limit returns all of them.
func (r Report) Top(limit int) []domain.Result {
	return r.Page(0, limit)
}

// Page returns at most limit ranked items starting at offset.
// A negative offset counts as 0, a non-positive limit returns the rest of the list.
func (r Report) Page(offset, limit int) []domain.Result {
	offset = max(offset, 0)
	if offset >= len(r.Items) {
		return []domain.Result{}
	}
	end := len(r.Items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return r.Items[offset:end]
}
