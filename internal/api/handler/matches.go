package handler

import (
	"net/http"
	"strconv"

	"travelmatch/backend/internal/match"
	"travelmatch/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type createMatchInput struct {
	ReceiverID   string  `json:"receiverId" binding:"required"`
	TravelPlanID *string `json:"travelPlanId"`
}

// CreateMatch opens a pending match request from the acting user.
func (h *Handler) CreateMatch(c *gin.Context) {
	var input createMatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "receiverId is required"})
		return
	}

	m, err := h.Matches.Create(actingUser(c), input.ReceiverID, input.TravelPlanID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// ListMatches pages through the acting user's sent or received requests.
func (h *Handler) ListMatches(c *gin.Context) {
	direction := c.DefaultQuery("direction", match.DirectionReceived)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "0"))

	var status *models.MatchStatus
	if raw := c.Query("status"); raw != "" {
		st := models.MatchStatus(raw)
		status = &st
	}

	matches, total, err := h.Matches.List(actingUser(c), direction, status, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches, "total": total})
}

type respondToMatchInput struct {
	Status models.MatchStatus `json:"status" binding:"required"`
}

// RespondToMatch executes the receiver-only accept/reject transition.
func (h *Handler) RespondToMatch(c *gin.Context) {
	var input respondToMatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	m, err := h.Matches.Transition(c.Param("id"), actingUser(c), input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteMatch hard-deletes a match the acting user participates in.
func (h *Handler) DeleteMatch(c *gin.Context) {
	if err := h.Matches.Delete(c.Param("id"), actingUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SuggestMatches returns ranked candidates for the acting user.
func (h *Handler) SuggestMatches(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	var travelPlanID *string
	if raw := c.Query("travelPlanId"); raw != "" {
		travelPlanID = &raw
	}

	suggestions, err := h.Matches.Suggest(actingUser(c), travelPlanID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
