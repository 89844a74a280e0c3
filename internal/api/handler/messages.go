package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type sendMessageInput struct {
	ReceiverID string  `json:"receiverId" binding:"required"`
	Content    string  `json:"content" binding:"required"`
	MatchID    *string `json:"matchId"`
}

// SendMessage is the REST path to the same gate the websocket uses; offline
// senders or bots can persist messages without a live connection.
func (h *Handler) SendMessage(c *gin.Context) {
	var input sendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "receiverId and content are required"})
		return
	}

	view, err := h.Messages.Send(actingUser(c), input.ReceiverID, input.Content, input.MatchID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetConversation pages through the exchange with one counterpart.
func (h *Handler) GetConversation(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "0"))

	msgs, total, err := h.Messages.GetConversation(actingUser(c), c.Param("userId"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs, "total": total})
}

// ListConversations returns the derived conversation list for the acting user.
func (h *Handler) ListConversations(c *gin.Context) {
	summaries, err := h.Messages.GetConversations(actingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": summaries})
}

type markReadInput struct {
	MessageIDs []string `json:"messageIds" binding:"required"`
}

// MarkMessagesRead flips the read flag on messages addressed to the caller.
func (h *Handler) MarkMessagesRead(c *gin.Context) {
	var input markReadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "messageIds is required"})
		return
	}

	if err := h.Messages.MarkRead(input.MessageIDs, actingUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteMessage soft-deletes one of the caller's own messages.
func (h *Handler) DeleteMessage(c *gin.Context) {
	if err := h.Messages.SoftDelete(c.Param("id"), actingUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetOnlineStatus answers whether a user is reachable right now, with the
// advisory last-seen timestamp from Redis as a fallback signal.
func (h *Handler) GetOnlineStatus(c *gin.Context) {
	userID := c.Param("id")
	online := h.Hub.Registry.Online(userID)

	lastSeen, err := h.Storage.GetLastSeen(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"online": online, "lastSeen": lastSeen})
}
