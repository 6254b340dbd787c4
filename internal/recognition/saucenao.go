package recognition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/animeworld/animeworld-api/internal/domain"
)

// matchThreshold is the similarity percentage above which a reverse image
// search hit counts as a positive match. Below it the raw score is still
// reported for display.
const matchThreshold = 70.0

// SauceNAO index ids for the databases the views care about.
var sauceNAODatabases = map[int]string{
	1:  "Pixiv Images",
	2:  "Pixiv Historical",
	5:  "MangaDex",
	6:  "H-Manga",
	37: "MangaDex (Historical)",
}

// SauceNAOClient runs reverse image search over static illustration, the
// second provider in the analysis chain.
type SauceNAOClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewSauceNAOClient(endpoint, apiKey string, timeout time.Duration) *SauceNAOClient {
	return &SauceNAOClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type sauceNAOResponse struct {
	Results []struct {
		Header struct {
			Similarity string `json:"similarity"`
			IndexID    int    `json:"index_id"`
		} `json:"header"`
		Data struct {
			Title   *string `json:"title"`
			EngName *string `json:"eng_name"`
			Source  *string `json:"source"`
		} `json:"data"`
	} `json:"results"`
}

// Search uploads the image and normalizes the top result against the
// match threshold.
func (s *SauceNAOClient) Search(ctx context.Context, filename string, image []byte) (*domain.RecognitionResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := map[string]string{
		"output_type": "2",
		"api_key":     s.apiKey,
		"db":          "999",
		"numres":      "1",
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("failed to build upload form: %w", err)
		}
	}

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to write upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("saucenao request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("saucenao returned status %d", resp.StatusCode)
	}

	var data sauceNAOResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode saucenao response: %w", err)
	}

	if len(data.Results) == 0 {
		return noMatch(domain.SourceSauceNAO, "No match found in the SauceNAO databases"), nil
	}

	best := data.Results[0]
	similarity, err := strconv.ParseFloat(best.Header.Similarity, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse similarity %q: %w", best.Header.Similarity, err)
	}

	title := ""
	if best.Data.Title != nil {
		title = *best.Data.Title
	} else if best.Data.EngName != nil {
		title = *best.Data.EngName
	} else if best.Data.Source != nil {
		title = *best.Data.Source
	}

	kind := domain.RecognitionUnknown
	switch best.Header.IndexID {
	case 5, 6, 37:
		kind = domain.RecognitionManga
	case 1, 2:
		kind = domain.RecognitionAnime
	}

	dbName := sauceNAODatabases[best.Header.IndexID]
	if dbName == "" {
		dbName = fmt.Sprintf("Database %d", best.Header.IndexID)
	}

	result := &domain.RecognitionResult{
		Matched:       similarity > matchThreshold,
		Confidence:    int(math.Round(similarity)),
		MediaKind:     kind,
		Title:         title,
		Description:   fmt.Sprintf("Found in %s", dbName),
		SourceAPI:     domain.SourceSauceNAO,
		RawSimilarity: similarity,
	}
	if !result.Matched {
		result.Description = fmt.Sprintf("Best candidate below the match threshold (%s)", dbName)
	}

	return result, nil
}
