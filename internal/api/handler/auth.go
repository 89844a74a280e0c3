package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	jwt "github.com/golang-jwt/jwt/v5"
)

const userIDKey = "userID"

// generateJWT signs a token carrying the user ID.
func (h *Handler) generateJWT(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
		"iss":     "travelmatch-service",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.Cfg.JWTSecret))
}

// validateAndGetUserID parses a signed token and extracts the user ID.
func (h *Handler) validateAndGetUserID(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(h.Cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", jwt.ErrTokenMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return userID, nil
}

type issueTokenInput struct {
	UserID string `json:"userId" binding:"required"`
}

// IssueToken exchanges a user ID for a signed JWT. The surrounding identity
// service is expected to sit in front of this endpoint in production; the
// core itself only verifies signatures, it does not authenticate people.
func (h *Handler) IssueToken(c *gin.Context) {
	var input issueTokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	user, err := h.Storage.GetUser(input.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}
	if user == nil || !user.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	token, err := h.generateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "userId": user.ID})
}

// AuthRequired resolves the acting user from the Bearer token and stores it
// on the context for the handlers.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := h.userFromRequest(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing token"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// userFromRequest extracts and validates the token from the Authorization
// header, falling back to the token query parameter for websocket clients
// that cannot set headers.
func (h *Handler) userFromRequest(c *gin.Context) (string, error) {
	tokenString := ""
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
	} else {
		tokenString = c.Query("token")
	}
	if tokenString == "" {
		return "", jwt.ErrTokenMalformed
	}
	return h.validateAndGetUserID(tokenString)
}

// actingUser returns the verified user ID set by AuthRequired.
func actingUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}
