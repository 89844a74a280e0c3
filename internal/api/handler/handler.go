package handler

import (
	"travelmatch/backend/internal/chathub"
	"travelmatch/backend/internal/config"
	"travelmatch/backend/internal/match"
	"travelmatch/backend/internal/messaging"
	"travelmatch/backend/internal/storage"
	"travelmatch/backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// Handler wires the HTTP surface to the services and the delivery engine.
type Handler struct {
	Hub      *chathub.Manager
	Matches  *match.Service
	Messages *messaging.Service
	Storage  storage.Storage
	Cfg      *config.Config
}

func NewHandler(hub *chathub.Manager, matches *match.Service, messages *messaging.Service, s storage.Storage, cfg *config.Config) *Handler {
	return &Handler{
		Hub:      hub,
		Matches:  matches,
		Messages: messages,
		Storage:  s,
		Cfg:      cfg,
	}
}

// RegisterRoutes mounts every endpoint on the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/token", h.IssueToken)
	r.GET("/ws", h.ServeWebSocket)

	authed := r.Group("/", h.AuthRequired())
	{
		authed.POST("/matches", h.CreateMatch)
		authed.GET("/matches", h.ListMatches)
		authed.GET("/matches/suggestions", h.SuggestMatches)
		authed.POST("/matches/:id/respond", h.RespondToMatch)
		authed.DELETE("/matches/:id", h.DeleteMatch)

		authed.POST("/messages", h.SendMessage)
		authed.POST("/messages/read", h.MarkMessagesRead)
		authed.DELETE("/messages/:id", h.DeleteMessage)
		authed.GET("/conversations", h.ListConversations)
		authed.GET("/conversations/:userId", h.GetConversation)
		authed.GET("/users/:id/online", h.GetOnlineStatus)
	}
}

// respondError maps a typed service error onto the HTTP response.
func respondError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), gin.H{
		"code":  apperrors.CodeOf(err),
		"error": err.Error(),
	})
}
