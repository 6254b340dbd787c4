package recognition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/animeworld/animeworld-api/internal/domain"
)

// TraceMoeClient matches anime scene screenshots against the trace.moe
// index. Requested with anilistInfo so matches carry catalog ids directly.
type TraceMoeClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewTraceMoeClient(endpoint string, timeout time.Duration) *TraceMoeClient {
	return &TraceMoeClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type traceMoeResponse struct {
	Error  string `json:"error"`
	Result []struct {
		Similarity float64 `json:"similarity"`
		Episode    any     `json:"episode"`
		From       float64 `json:"from"`
		AniList    *struct {
			ID    int `json:"id"`
			Title struct {
				Romaji  *string `json:"romaji"`
				English *string `json:"english"`
			} `json:"title"`
		} `json:"anilist"`
	} `json:"result"`
}

// Search uploads the image and normalizes the best match. A result with
// catalog info is a positive match; anything else reports no-match so the
// analyzer falls through to the next provider.
func (t *TraceMoeClient) Search(ctx context.Context, filename string, image []byte) (*domain.RecognitionResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to write upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint+"?anilistInfo", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("trace.moe request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trace.moe returned status %d", resp.StatusCode)
	}

	var data traceMoeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode trace.moe response: %w", err)
	}
	if data.Error != "" {
		return nil, fmt.Errorf("trace.moe error: %s", data.Error)
	}

	if len(data.Result) == 0 {
		return noMatch(domain.SourceTraceMoe, "No anime scene match found in the trace.moe index"), nil
	}

	best := data.Result[0]
	if best.AniList == nil || best.Similarity <= 0 {
		return noMatch(domain.SourceTraceMoe, "No anime scene match found in the trace.moe index"), nil
	}

	title := ""
	if best.AniList.Title.Romaji != nil {
		title = *best.AniList.Title.Romaji
	} else if best.AniList.Title.English != nil {
		title = *best.AniList.Title.English
	}

	episode := parseEpisode(best.Episode)
	description := "Scene from episode Unknown"
	if episode > 0 {
		description = fmt.Sprintf("Scene from episode %d", episode)
	}

	return &domain.RecognitionResult{
		Matched:       true,
		Confidence:    int(math.Round(best.Similarity * 100)),
		MediaKind:     domain.RecognitionAnime,
		Title:         title,
		MediaID:       best.AniList.ID,
		Description:   description,
		SourceAPI:     domain.SourceTraceMoe,
		Episode:       episode,
		Timestamp:     formatTimestamp(best.From),
		RawSimilarity: best.Similarity,
	}, nil
}

// parseEpisode tolerates the index's loose episode field, which can be a
// number, a string, or absent.
func parseEpisode(v any) int {
	switch e := v.(type) {
	case float64:
		return int(e)
	case int:
		return e
	default:
		return 0
	}
}

func formatTimestamp(seconds float64) string {
	mins := int(seconds) / 60
	secs := int(seconds) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

func noMatch(source, description string) *domain.RecognitionResult {
	return &domain.RecognitionResult{
		Matched:     false,
		Confidence:  0,
		MediaKind:   domain.RecognitionUnknown,
		Description: description,
		SourceAPI:   source,
	}
}
