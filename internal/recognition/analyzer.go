package recognition

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/animeworld/animeworld-api/internal/config"
	"github.com/animeworld/animeworld-api/internal/domain"
	"go.uber.org/zap"
)

// Validation errors, reported before any network call is made.
var (
	ErrUnsupportedFormat = errors.New("unsupported image format, upload JPEG, PNG, WebP or GIF")
	ErrTooLarge          = errors.New("image too large")
)

// ErrProviderUnavailable reports that no configured provider answered.
// It marks a transient outage the caller can retry, not a negative match.
var ErrProviderUnavailable = errors.New("recognition providers unavailable")

var supportedFormats = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// TitleResolver resolves a recognized title to a catalog id. Satisfied by
// the anilist client.
type TitleResolver interface {
	SearchFirstID(ctx context.Context, title string, kind domain.MediaKind) (int, error)
}

// Analyzer identifies source media from an uploaded image by trying
// providers in fixed priority order: the scene matcher first (tuned for
// animated frames), then reverse image search (tuned for static panels).
// Each analysis builds a fresh RecognitionResult; nothing is persisted.
type Analyzer struct {
	traceMoe *TraceMoeClient
	sauceNAO *SauceNAOClient
	maxBytes int64
	simulate bool
	logger   *zap.Logger
}

// NewAnalyzer creates an analyzer from configuration. A missing SauceNAO
// key enables simulation mode for that provider.
func NewAnalyzer(cfg config.RecognitionConfig, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		traceMoe: NewTraceMoeClient(cfg.TraceMoeEndpoint, cfg.RequestTimeout.Duration),
		sauceNAO: NewSauceNAOClient(cfg.SauceNAOEndpoint, cfg.SauceNAOKey, cfg.RequestTimeout.Duration),
		maxBytes: cfg.MaxUploadBytes,
		simulate: cfg.SimulationMode(),
		logger:   logger,
	}
}

// SimulationMode reports whether the reverse-image-search provider runs on
// canned results.
func (a *Analyzer) SimulationMode() bool {
	return a.simulate
}

// Validate rejects unsupported or oversized uploads locally, with a
// specific reason per violation. It must be called before reading the
// upload so that invalid files trigger zero network activity.
func (a *Analyzer) Validate(contentType string, size int64) error {
	if !supportedFormats[contentType] {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, contentType)
	}
	if size > a.maxBytes {
		return fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrTooLarge, size, a.maxBytes)
	}
	return nil
}

// Analyze runs the provider chain over one upload. The scene matcher's
// answer is final when it carries a catalog id; otherwise the reverse
// image search (or, without a key, its simulation) decides. A scene
// matcher outage falls through to the reverse search; when that is also
// unreachable the analysis fails with ErrProviderUnavailable rather than
// fabricating a match.
func (a *Analyzer) Analyze(ctx context.Context, filename, contentType string, r io.Reader, size int64) (*domain.RecognitionResult, error) {
	if err := a.Validate(contentType, size); err != nil {
		return nil, err
	}

	image, err := io.ReadAll(io.LimitReader(r, a.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(image)) > a.maxBytes {
		return nil, fmt.Errorf("%w: upload exceeds the %d byte limit", ErrTooLarge, a.maxBytes)
	}

	result, err := a.traceMoe.Search(ctx, filename, image)
	if err != nil {
		a.logger.Warn("scene matcher unavailable, falling through", zap.Error(err))
	} else if result.Matched {
		return result, nil
	}

	if a.simulate {
		return SimulatedResult(filename, image), nil
	}

	result, err = a.sauceNAO.Search(ctx, filename, image)
	if err != nil {
		a.logger.Warn("reverse image search unavailable", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	return result, nil
}

// ResolveTitle attempts one best-effort catalog lookup for a positive
// match that carries a title but no id. Failure is reported to the
// caller, never retried.
func (a *Analyzer) ResolveTitle(ctx context.Context, resolver TitleResolver, result *domain.RecognitionResult) error {
	if !result.Matched || result.MediaID != 0 || result.Title == "" {
		return nil
	}

	kind := domain.KindAnime
	if result.MediaKind == domain.RecognitionManga || result.MediaKind == domain.RecognitionManhwa {
		kind = domain.KindManga
	}

	id, err := resolver.SearchFirstID(ctx, result.Title, kind)
	if err != nil {
		return fmt.Errorf("failed to resolve %q to a catalog id: %w", result.Title, err)
	}

	result.MediaID = id
	return nil
}
