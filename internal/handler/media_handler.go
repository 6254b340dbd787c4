package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/animeworld/animeworld-api/internal/anilist"
	"github.com/animeworld/animeworld-api/internal/demo"
	"github.com/animeworld/animeworld-api/internal/domain"
	"github.com/animeworld/animeworld-api/internal/dto"
	"github.com/animeworld/animeworld-api/internal/service"
)

// minSearchLength is the shortest search term worth sending upstream.
// Shorter terms return enormous result sets with no useful ranking.
const minSearchLength = 3

const (
	defaultTrendingLimit = 10
	defaultPerPage       = 20
	defaultScheduleDays  = 7
	maxScheduleDays      = 14
	defaultStudioLimit   = 20
)

// MediaHandler handles catalog requests
type MediaHandler struct {
	mediaService service.MediaService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
	}
}

// Trending handles the trending list. Upstream failures fall back to a
// static list, so this endpoint never returns an error status.
func (h *MediaHandler) Trending(c *gin.Context) {
	kind := parseKind(c.Query("type"))
	limit := parseInt(c.Query("limit"), defaultTrendingLimit)

	items, fallback := h.mediaService.Trending(c.Request.Context(), kind, limit)
	c.JSON(http.StatusOK, dto.MediaListResponse{Items: items, Fallback: fallback})
}

// Search handles catalog title search
func (h *MediaHandler) Search(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if utf8.RuneCountInString(term) < minSearchLength {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: "Search term must be at least 3 characters",
		})
		return
	}

	kind := parseKind(c.Query("type"))
	page := parseInt(c.Query("page"), 1)
	perPage := parseInt(c.Query("perPage"), defaultPerPage)

	items, err := h.mediaService.Search(c.Request.Context(), term, kind, page, perPage)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MediaListResponse{Items: items})
}

// Filter handles multi-select catalog filtering
func (h *MediaHandler) Filter(c *gin.Context) {
	var req dto.FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	items, err := h.mediaService.Filter(c.Request.Context(), anilist.FilterState{
		Genres: req.Genres,
		Status: req.Status,
		Years:  req.Years,
		Types:  req.Types,
		Sort:   req.Sort,
	})
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MediaListResponse{Items: items})
}

// Upcoming handles the not-yet-released listing
func (h *MediaHandler) Upcoming(c *gin.Context) {
	perPage := parseInt(c.Query("perPage"), defaultPerPage)

	items, err := h.mediaService.Upcoming(c.Request.Context(), perPage)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Schedule handles the grouped airing schedule
func (h *MediaHandler) Schedule(c *gin.Context) {
	days := parseInt(c.Query("days"), defaultScheduleDays)
	if days < 1 {
		days = 1
	}
	if days > maxScheduleDays {
		days = maxScheduleDays
	}
	perPage := parseInt(c.Query("perPage"), 50)

	schedule, err := h.mediaService.Schedule(c.Request.Context(), days, perPage)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ScheduleResponse{Schedule: schedule})
}

// ByID handles the detail view
func (h *MediaHandler) ByID(c *gin.Context) {
	id, ok := h.mediaID(c)
	if !ok {
		return
	}

	detail, err := h.mediaService.ByID(c.Request.Context(), id)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Recommendations handles the related-titles listing
func (h *MediaHandler) Recommendations(c *gin.Context) {
	id, ok := h.mediaID(c)
	if !ok {
		return
	}

	recs, err := h.mediaService.Recommendations(c.Request.Context(), id)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// Episodes handles the synthesized episode listing for one entry
func (h *MediaHandler) Episodes(c *gin.Context) {
	id, ok := h.mediaID(c)
	if !ok {
		return
	}

	detail, err := h.mediaService.ByID(c.Request.Context(), id)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	episodes := demo.Episodes(id, detail.Episodes)
	c.JSON(http.StatusOK, gin.H{
		"mediaId":   id,
		"title":     detail.DisplayTitle,
		"episodes":  episodes,
		"simulated": true,
	})
}

// Chapters handles the synthesized chapter listing for one entry
func (h *MediaHandler) Chapters(c *gin.Context) {
	id, ok := h.mediaID(c)
	if !ok {
		return
	}

	detail, err := h.mediaService.ByID(c.Request.Context(), id)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	chapters := demo.Chapters(id, detail.Chapters)
	c.JSON(http.StatusOK, gin.H{
		"mediaId":   id,
		"title":     detail.DisplayTitle,
		"chapters":  chapters,
		"simulated": true,
	})
}

// Studios handles the popular studio name listing
func (h *MediaHandler) Studios(c *gin.Context) {
	limit := parseInt(c.Query("limit"), defaultStudioLimit)

	studios, err := h.mediaService.Studios(c.Request.Context(), limit)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"studios": studios})
}

func (h *MediaHandler) mediaID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: "Media id must be a positive integer",
		})
		return 0, false
	}
	return id, true
}

func (h *MediaHandler) upstreamError(c *gin.Context, err error) {
	if errors.Is(err, anilist.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not found",
			Message: "Media not found",
		})
		return
	}
	c.JSON(http.StatusBadGateway, dto.ErrorResponse{
		Error:   "Upstream error",
		Message: err.Error(),
	})
}

func parseKind(raw string) domain.MediaKind {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "MANGA", "MANHWA", "MANHUA":
		return domain.KindManga
	default:
		return domain.KindAnime
	}
}

func parseInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
