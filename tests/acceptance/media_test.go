package acceptance

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/animeworld/animeworld-api/internal/dto"
)

func (s *Suite) TestTrendingEndpoint() {
	resp, err := http.Get(s.BaseURL + "/api/media/trending?type=ANIME&limit=10")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var body dto.MediaListResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))

	s.False(body.Fallback, "Stub catalog is healthy, no fallback expected")
	s.Require().NotEmpty(body.Items)
	s.Equal(1, body.Items[0].Rank)
	s.NotEmpty(body.Items[0].DisplayTitle)
}

func (s *Suite) TestSearchRejectsShortTerm() {
	resp, err := http.Get(s.BaseURL + "/api/media/search?q=ab")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestMediaDetail() {
	resp, err := http.Get(s.BaseURL + "/api/media/21")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var detail map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&detail))
	s.EqualValues(21, detail["id"])
}

func (s *Suite) TestMediaEpisodesAreSimulated() {
	resp, err := http.Get(s.BaseURL + "/api/media/21/episodes")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		Simulated bool `json:"simulated"`
		Episodes  []struct {
			Number    int  `json:"number"`
			Simulated bool `json:"simulated"`
		} `json:"episodes"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))

	s.True(body.Simulated)
	s.Require().NotEmpty(body.Episodes)
	s.True(body.Episodes[0].Simulated)
}

func (s *Suite) TestFilterEndpoint() {
	reqBody, err := json.Marshal(dto.FilterRequest{
		Genres: []string{"Action"},
		Years:  []int{2020, 2023},
	})
	s.Require().NoError(err)

	resp, err := http.Post(s.BaseURL+"/api/media/filter", "application/json", bytes.NewBuffer(reqBody))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *Suite) TestInvalidMediaID() {
	resp, err := http.Get(s.BaseURL + "/api/media/not-a-number")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}
