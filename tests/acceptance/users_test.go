package acceptance

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/animeworld/animeworld-api/internal/dto"
)

func (s *Suite) postUser(req dto.CreateUserRequest) *http.Response {
	body, err := json.Marshal(req)
	s.Require().NoError(err)

	resp, err := http.Post(
		s.BaseURL+"/api/users",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	return resp
}

func (s *Suite) TestCreateUser_FirstSignIn() {
	resp := s.postUser(dto.CreateUserRequest{
		ExternalID: "google-oauth2|1001",
		Email:      "first@example.com",
		FirstName:  "First",
		LastName:   "User",
		GoogleAuth: true,
	})
	defer resp.Body.Close()

	s.Equal(http.StatusCreated, resp.StatusCode)

	var envelope dto.UserEnvelope
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&envelope))

	s.Equal(dto.UserStatusCreated, envelope.Status)
	s.Require().NotNil(envelope.User)
	s.NotEmpty(envelope.User.ID)
	s.Equal("google-oauth2|1001", envelope.User.ExternalID)
	s.Equal("first", envelope.User.Username, "Username should derive from email local part")
	s.Equal("First User", envelope.User.DisplayName)
	s.Equal("+91", envelope.User.CountryCode)
	s.False(envelope.User.IsAdmin)
}

func (s *Suite) TestCreateUser_RepeatSignIn() {
	resp1 := s.postUser(dto.CreateUserRequest{
		ExternalID: "google-oauth2|2002",
		Email:      "repeat@example.com",
	})
	resp1.Body.Close()
	s.Equal(http.StatusCreated, resp1.StatusCode)

	resp2 := s.postUser(dto.CreateUserRequest{
		ExternalID: "google-oauth2|2002",
		Email:      "repeat@example.com",
	})
	defer resp2.Body.Close()

	s.Equal(http.StatusOK, resp2.StatusCode, "Repeat sign-in should return 200, not 201")

	var envelope dto.UserEnvelope
	s.Require().NoError(json.NewDecoder(resp2.Body).Decode(&envelope))
	s.Equal(dto.UserStatusUpdated, envelope.Status)

	listResp, err := http.Get(s.BaseURL + "/api/users")
	s.Require().NoError(err)
	defer listResp.Body.Close()

	var list struct {
		Count int `json:"count"`
	}
	s.Require().NoError(json.NewDecoder(listResp.Body).Decode(&list))
	s.Equal(1, list.Count, "Repeat sign-in must not create a second record")
}

func (s *Suite) TestCreateUser_MissingExternalID() {
	resp := s.postUser(dto.CreateUserRequest{
		Email: "no-id@example.com",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&errResp))
	s.Equal("Validation failed", errResp.Error)
}

func (s *Suite) TestGetUserByExternalID() {
	created := s.postUser(dto.CreateUserRequest{
		ExternalID: "firebase-3003",
		Email:      "lookup@example.com",
	})
	created.Body.Close()

	resp, err := http.Get(s.BaseURL + "/api/users/firebase-3003")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *Suite) TestGetUserByExternalID_NotFound() {
	resp, err := http.Get(s.BaseURL + "/api/users/does-not-exist")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusNotFound, resp.StatusCode)
}
