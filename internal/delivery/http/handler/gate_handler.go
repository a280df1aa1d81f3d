package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rithm-app/rithm-backend/internal/usecase/gate"
)

type GateHandler struct {
	gateUseCase *gate.GateUseCase
}

func NewGateHandler(gateUseCase *gate.GateUseCase) *GateHandler {
	return &GateHandler{
		gateUseCase: gateUseCase,
	}
}

// Check handles GET /gate/check. The web client calls it on every
// navigation; the answer is always allow or redirect, never an error.
// @Summary Route gating check
// @Description Decide whether the session may visit the given path
// @Tags gate
// @Produce json
// @Param path query string true "Navigation target"
// @Success 200 {object} gate.Decision
// @Failure 400 {object} ErrorResponse
// @Router /gate/check [get]
func (h *GateHandler) Check(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "path is required",
		})
		return
	}

	var userID *uuid.UUID
	if id, ok := currentUserID(c); ok {
		userID = &id
	}

	decision := h.gateUseCase.Evaluate(c.Request.Context(), userID, path)
	c.JSON(http.StatusOK, decision)
}
