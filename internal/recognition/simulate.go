package recognition

import (
	"hash/fnv"

	"github.com/animeworld/animeworld-api/internal/domain"
)

// simulatedResults are the canned outcomes used when no API key is
// configured. They reference real catalog entries so the follow-up title
// resolution step behaves exactly like a live result.
var simulatedResults = []domain.RecognitionResult{
	{
		Matched:     true,
		Confidence:  85,
		MediaKind:   domain.RecognitionManga,
		Title:       "One Piece",
		MediaID:     13,
		Description: "Chapter 1044: The warrior of liberation",
		SourceAPI:   domain.SourceSimulation,
	},
	{
		Matched:     true,
		Confidence:  78,
		MediaKind:   domain.RecognitionManhwa,
		Title:       "Solo Leveling",
		MediaID:     113415,
		Description: "Chapter 179: The final battle",
		SourceAPI:   domain.SourceSimulation,
	},
	{
		Matched:     false,
		Confidence:  45,
		MediaKind:   domain.RecognitionUnknown,
		Description: "No confident match found. Try a clearer screenshot or panel.",
		SourceAPI:   domain.SourceSimulation,
	},
}

// SimulatedResult picks a canned recognition outcome. The choice is a pure
// function of the upload so repeated analyses of the same file agree.
func SimulatedResult(filename string, image []byte) *domain.RecognitionResult {
	h := fnv.New32a()
	h.Write([]byte(filename))
	idx := (uint32(len(image)) + h.Sum32()) % uint32(len(simulatedResults))

	result := simulatedResults[idx]
	return &result
}
