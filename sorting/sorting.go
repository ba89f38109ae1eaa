// Package sorting orders repository lists for display.
package sorting

import (
	"cmp"
	"slices"

	"githubsearch/models"
)

// SortBy returns a copy of repos ordered by sortType, leaving the input
// untouched. Every order is descending; ties keep their input order. Unknown
// sort types fall back to models.SortRecent.
func SortBy(repos []models.Repository, sortType models.SortType) []models.Repository {
	sorted := make([]models.Repository, len(repos))
	copy(sorted, repos)
	slices.SortStableFunc(sorted, comparator(sortType))
	return sorted
}

func comparator(sortType models.SortType) func(a, b models.Repository) int {
	switch sortType {
	case models.SortStars:
		return func(a, b models.Repository) int {
			return cmp.Compare(b.StargazersCount, a.StargazersCount)
		}
	case models.SortForks:
		return func(a, b models.Repository) int {
			return cmp.Compare(b.ForksCount, a.ForksCount)
		}
	default:
		return func(a, b models.Repository) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	}
}

// IsSorted reports whether repos is already in sortType order.
func IsSorted(repos []models.Repository, sortType models.SortType) bool {
	return slices.IsSortedFunc(repos, comparator(sortType))
}
