package sorting

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"githubsearch/models"
)

func names(repos []models.Repository) []string {
	out := make([]string, len(repos))
	for i, r := range repos {
		out[i] = r.Name
	}
	return out
}

func TestSortBy(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repos := []models.Repository{
		{Name: "a", StargazersCount: 3, ForksCount: 2, CreatedAt: base},
		{Name: "b", StargazersCount: 10, ForksCount: 5, CreatedAt: base.Add(48 * time.Hour)},
		{Name: "c", StargazersCount: 1, ForksCount: 1, CreatedAt: base.Add(24 * time.Hour)},
	}

	tests := []struct {
		name     string
		sortType models.SortType
		expected []string
	}{
		{name: "recent", sortType: models.SortRecent, expected: []string{"b", "c", "a"}},
		{name: "stars", sortType: models.SortStars, expected: []string{"b", "a", "c"}},
		{name: "forks", sortType: models.SortForks, expected: []string{"b", "a", "c"}},
		{name: "unknown falls back to recent", sortType: models.SortType("size"), expected: []string{"b", "c", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sorted := SortBy(repos, tt.sortType)
			assert.Equal(t, tt.expected, names(sorted))
			assert.Equal(t, []string{"a", "b", "c"}, names(repos), "input must not be mutated")
		})
	}
}

func TestSortByForksScenario(t *testing.T) {
	repos := []models.Repository{{ForksCount: 2}, {ForksCount: 5}, {ForksCount: 1}}

	sorted := SortBy(repos, models.SortForks)

	got := []int{sorted[0].ForksCount, sorted[1].ForksCount, sorted[2].ForksCount}
	assert.Equal(t, []int{5, 2, 1}, got)
}

func TestSortByStableTies(t *testing.T) {
	repos := []models.Repository{
		{Name: "first", StargazersCount: 7},
		{Name: "second", StargazersCount: 7},
		{Name: "third", StargazersCount: 9},
		{Name: "fourth", StargazersCount: 7},
	}

	sorted := SortBy(repos, models.SortStars)
	assert.Equal(t, []string{"third", "first", "second", "fourth"}, names(sorted))
}

func TestSortByEmpty(t *testing.T) {
	sorted := SortBy(nil, models.SortStars)
	assert.NotNil(t, sorted)
	assert.Empty(t, sorted)
}

func TestSortByProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 200; i++ {
		repos := make([]models.Repository, rng.Intn(30))
		for j := range repos {
			repos[j] = models.Repository{
				StargazersCount: rng.Intn(20),
				ForksCount:      rng.Intn(20),
				CreatedAt:       base.Add(time.Duration(rng.Intn(1000)) * time.Hour),
			}
		}

		for _, st := range []models.SortType{models.SortRecent, models.SortStars, models.SortForks} {
			sorted := SortBy(repos, st)
			require.Len(t, sorted, len(repos))
			require.True(t, IsSorted(sorted, st))

			for k := 1; k < len(sorted); k++ {
				switch st {
				case models.SortStars:
					require.GreaterOrEqual(t, sorted[k-1].StargazersCount, sorted[k].StargazersCount)
				case models.SortForks:
					require.GreaterOrEqual(t, sorted[k-1].ForksCount, sorted[k].ForksCount)
				default:
					require.False(t, sorted[k-1].CreatedAt.Before(sorted[k].CreatedAt))
				}
			}

			// idempotent
			require.Equal(t, sorted, SortBy(sorted, st))
		}
	}
}
