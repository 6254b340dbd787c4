package anilist

import (
	"strings"
	"testing"
)

func TestBuildFilterQueryYearBounds(t *testing.T) {
	query := BuildFilterQuery(FilterState{
		Genres: []string{"Action"},
		Years:  []int{2023, 2020, 2021},
	})

	if !strings.Contains(query, "startDate_greater: 20200101") {
		t.Errorf("missing lower year bound in query:\n%s", query)
	}
	if !strings.Contains(query, "startDate_lesser: 20231231") {
		t.Errorf("missing upper year bound in query:\n%s", query)
	}
	if strings.Count(query, "genre_in") != 1 {
		t.Errorf("expected exactly one genre_in clause in query:\n%s", query)
	}
	if !strings.Contains(query, `genre_in: ["Action"]`) {
		t.Errorf("genre values must be quoted in query:\n%s", query)
	}
}

func TestBuildFilterQueryTypeMapping(t *testing.T) {
	cases := []struct {
		name  string
		types []string
		want  string
	}{
		{"no selection browses anime", nil, "type: ANIME"},
		{"manga stays manga", []string{"MANGA"}, "type: MANGA"},
		{"manhwa coarsens to manga", []string{"MANHWA"}, "type: MANGA"},
		{"manhua coarsens to manga", []string{"MANHUA"}, "type: MANGA"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			query := BuildFilterQuery(FilterState{Types: tc.types})
			if !strings.Contains(query, tc.want) {
				t.Errorf("expected %q in query:\n%s", tc.want, query)
			}
		})
	}
}

func TestBuildFilterQuerySort(t *testing.T) {
	if q := BuildFilterQuery(FilterState{}); !strings.Contains(q, "sort: TRENDING_DESC") {
		t.Errorf("expected default sort in query:\n%s", q)
	}
	if q := BuildFilterQuery(FilterState{Sort: "SCORE_DESC"}); !strings.Contains(q, "sort: SCORE_DESC") {
		t.Errorf("expected explicit sort in query:\n%s", q)
	}
}

func TestBuildFilterQueryStatus(t *testing.T) {
	query := BuildFilterQuery(FilterState{Status: []string{"RELEASING", "FINISHED"}})
	if !strings.Contains(query, "status_in: [RELEASING, FINISHED]") {
		t.Errorf("expected status clause in query:\n%s", query)
	}
}

func TestBuildFilterQueryDeterministic(t *testing.T) {
	state := FilterState{
		Genres: []string{"Action", "Romance"},
		Status: []string{"RELEASING"},
		Years:  []int{2022},
		Types:  []string{"MANGA"},
	}
	if BuildFilterQuery(state) != BuildFilterQuery(state) {
		t.Error("identical states must compile to identical queries")
	}
}
