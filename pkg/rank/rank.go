// Package rank orders filtered domains by a selectable key
package rank

import (
	"sort"

	"github.com/uberswe/domainRadar/pkg/domain"
)

// Sort returns a new slice with items ordered by key.
// Ties on the primary key are broken by ascending length, except for the
// pure length orderings where ties keep their incoming order.
// Unknown keys sort by score.
func Sort(items []domain.Result, key domain.SortKey) []domain.Result {
	sorted := make([]domain.Result, len(items))
	copy(sorted, items)

	less := lessFunc(key)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(&sorted[i], &sorted[j])
	})
	return sorted
}

func lessFunc(key domain.SortKey) func(a, b *domain.Result) bool {
	switch key {
	case domain.SortLengthAsc:
		return func(a, b *domain.Result) bool { return a.Length < b.Length }
	case domain.SortLengthDesc:
		return func(a, b *domain.Result) bool { return a.Length > b.Length }
	case domain.SortHyphen:
		return func(a, b *domain.Result) bool {
			if a.HyphenCount != b.HyphenCount {
				return a.HyphenCount < b.HyphenCount
			}
			return a.Length < b.Length
		}
	case domain.SortReadable:
		return func(a, b *domain.Result) bool {
			if a.ReadableRatio != b.ReadableRatio {
				return a.ReadableRatio > b.ReadableRatio
			}
			return a.Length < b.Length
		}
	default:
		return func(a, b *domain.Result) bool {
			if a.Score != b.Score {
				return a.Score > b.Score
			}
			return a.Length < b.Length
		}
	}
}
