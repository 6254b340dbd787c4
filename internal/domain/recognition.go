package domain

// RecognitionKind is the media family a recognition provider attributes an
// image to. Broader than MediaKind: SauceNAO distinguishes manhwa sources
// even though the catalog folds them into MANGA.
type RecognitionKind string

const (
	RecognitionAnime   RecognitionKind = "ANIME"
	RecognitionManga   RecognitionKind = "MANGA"
	RecognitionManhwa  RecognitionKind = "MANHWA"
	RecognitionUnknown RecognitionKind = "UNKNOWN"
)

// Recognition source API markers. SourceSimulation marks canned results
// produced when no real provider key is configured; it must never be
// confused with a genuine provider answer.
const (
	SourceTraceMoe   = "trace.moe"
	SourceSauceNAO   = "saucenao"
	SourceSimulation = "simulation"
)

// RecognitionResult is the normalized outcome of one image analysis
// attempt, regardless of which provider produced it. Constructed fresh per
// request and never persisted.
type RecognitionResult struct {
	Matched       bool            `json:"matched"`
	Confidence    int             `json:"confidence"`
	MediaKind     RecognitionKind `json:"mediaKind"`
	Title         string          `json:"title,omitempty"`
	MediaID       int             `json:"mediaId,omitempty"`
	Description   string          `json:"description"`
	SourceAPI     string          `json:"sourceApi"`
	Episode       int             `json:"episode,omitempty"`
	Timestamp     string          `json:"timestamp,omitempty"`
	RawSimilarity float64         `json:"rawSimilarity,omitempty"`
}
