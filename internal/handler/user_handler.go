package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/animeworld/animeworld-api/internal/dto"
	"github.com/animeworld/animeworld-api/internal/repository"
	"github.com/animeworld/animeworld-api/internal/service"
)

// UserHandler handles user record requests
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateOrTouch handles the sign-in callback from the identity provider.
// Returns 201 with the new record on first sign-in, 200 with the existing
// record on repeats.
func (h *UserHandler) CreateOrTouch(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	envelope, err := h.userService.CreateOrTouch(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
		return
	}

	status := http.StatusOK
	if envelope.Status == dto.UserStatusCreated {
		status = http.StatusCreated
	}
	c.JSON(status, envelope)
}

// List handles listing all user records
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// GetByExternalID handles fetching a single record by provider id
func (h *UserHandler) GetByExternalID(c *gin.Context) {
	externalID := c.Param("externalId")

	user, err := h.userService.GetByExternalID(c.Request.Context(), externalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "Not found",
				Message: "User not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, user)
}
