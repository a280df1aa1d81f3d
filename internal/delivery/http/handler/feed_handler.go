package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rithm-app/rithm-backend/internal/domain"
	"github.com/rithm-app/rithm-backend/internal/usecase/feed"
)

type FeedHandler struct {
	feedUseCase *feed.FeedUseCase
}

func NewFeedHandler(feedUseCase *feed.FeedUseCase) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
	}
}

// NextCandidates handles GET /feed/next
// @Summary Next candidate page
// @Description Return the next batch of swipeable profiles
// @Tags feed
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /feed/next [get]
func (h *FeedHandler) NextCandidates(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return
	}

	limit := feed.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 50 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "invalid limit",
			})
			return
		}
		limit = parsed
	}

	candidates, err := h.feedUseCase.NextCandidates(c.Request.Context(), userID, limit)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "profile not found",
			})
		case errors.Is(err, domain.ErrIncompleteProfile):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error: "complete your profile before swiping",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "failed to load candidates",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}
