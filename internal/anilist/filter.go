package anilist

import (
	"fmt"
	"strings"
)

// FilterState is a multi-select filter selection as submitted by the
// browse view. Empty categories contribute no clause.
type FilterState struct {
	Genres []string
	Status []string
	Years  []int
	Types  []string
	Sort   string
}

const defaultFilterSort = "TRENDING_DESC"

// BuildFilterQuery deterministically compiles a filter state into one
// GraphQL document.
//
// Known approximation: the catalog has no MANHWA/MANHUA media type, so
// those selections are mapped onto the coarser MANGA type. Filtering by
// them therefore over-matches; the views label results by country of
// origin instead.
//
// Year bounds are inclusive: [min, max] becomes
// startDate_greater: <min>0101, startDate_lesser: <max>1231.
func BuildFilterQuery(f FilterState) string {
	sort := f.Sort
	if sort == "" {
		sort = defaultFilterSort
	}

	var clauses []string

	if len(f.Genres) > 0 {
		quoted := make([]string, 0, len(f.Genres))
		for _, g := range f.Genres {
			quoted = append(quoted, fmt.Sprintf("%q", g))
		}
		clauses = append(clauses, fmt.Sprintf("genre_in: [%s]", strings.Join(quoted, ", ")))
	}

	if len(f.Status) > 0 {
		clauses = append(clauses, fmt.Sprintf("status_in: [%s]", strings.Join(f.Status, ", ")))
	}

	if len(f.Years) > 0 {
		minYear, maxYear := f.Years[0], f.Years[0]
		for _, y := range f.Years[1:] {
			if y < minYear {
				minYear = y
			}
			if y > maxYear {
				maxYear = y
			}
		}
		clauses = append(clauses, fmt.Sprintf("startDate_greater: %d0101, startDate_lesser: %d1231", minYear, maxYear))
	}

	// Any explicit type selection (MANGA, MANHWA, MANHUA) lands on the
	// coarser MANGA type; no selection browses anime.
	mediaArgs := "type: ANIME"
	if len(f.Types) > 0 {
		mediaArgs = "type: MANGA"
	}
	mediaArgs = fmt.Sprintf("sort: %s, %s", sort, mediaArgs)
	if len(clauses) > 0 {
		mediaArgs = fmt.Sprintf("%s, %s", mediaArgs, strings.Join(clauses, ", "))
	}

	return fmt.Sprintf(`
query {
  Page(page: 1, perPage: 50) {
    media(%s) {
      id
      type
      title { romaji english native userPreferred }
      coverImage { extraLarge large medium color }
      format
      status
      averageScore
      episodes
      chapters
      genres
      startDate { year }
    }
  }
}`, mediaArgs)
}
