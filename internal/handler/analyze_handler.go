package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/animeworld/animeworld-api/internal/dto"
	"github.com/animeworld/animeworld-api/internal/recognition"
)

// AnalyzeHandler handles image recognition uploads
type AnalyzeHandler struct {
	analyzer *recognition.Analyzer
	resolver recognition.TitleResolver
	logger   *zap.Logger
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(analyzer *recognition.Analyzer, resolver recognition.TitleResolver, logger *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		resolver: resolver,
		logger:   logger,
	}
}

// Analyze handles a multipart image upload and returns the recognition
// result. The analyzer validates the upload against the multipart header
// before reading the file, so invalid uploads never touch a provider.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: "Missing image file in form field 'image'",
		})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	result, err := h.analyzer.Analyze(c.Request.Context(), header.Filename, contentType, file, header.Size)
	if err != nil {
		switch {
		case errors.Is(err, recognition.ErrTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
				Error:   "Validation failed",
				Message: err.Error(),
			})
		case errors.Is(err, recognition.ErrUnsupportedFormat):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Validation failed",
				Message: err.Error(),
			})
		case errors.Is(err, recognition.ErrProviderUnavailable):
			c.Header("Retry-After", "30")
			c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
				Error:   "Service unavailable",
				Message: "Recognition providers are unavailable, try again later",
			})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "Internal server error",
				Message: err.Error(),
			})
		}
		return
	}

	response := dto.AnalyzeResponse{Result: result}
	if err := h.analyzer.ResolveTitle(c.Request.Context(), h.resolver, result); err != nil {
		// The match itself is still useful without a catalog id.
		h.logger.Warn("title resolution failed", zap.String("title", result.Title), zap.Error(err))
		response.ResolveFailed = true
	}

	c.JSON(http.StatusOK, response)
}
