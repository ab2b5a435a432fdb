package routes

import (
	"context"
	"errors"
	"net/http"

	"socially/internal/logger"
	"socially/internal/relay"
	"socially/models"
	"socially/utils"

	"github.com/gin-gonic/gin"
)

const chatFailureMessage = "Failed to process chat message"

// Relayer forwards one chat message to the assistant backend
type Relayer interface {
	Relay(ctx context.Context, message string) (string, error)
}

func SetupChatRoutes(router *gin.Engine, relayer Relayer) {
	api := router.Group("/api")

	// One message in, one reply out. No history, no session.
	api.POST("/chat", func(c *gin.Context) {
		var req models.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				utils.RespondWithTooLarge(c, tooLarge.Limit)
				return
			}
			utils.RespondWithBadRequest(c, "message is required")
			return
		}

		reply, err := relayer.Relay(c.Request.Context(), req.Message)
		if err != nil {
			logger.FromContext(c.Request.Context()).Error("Chat API Error",
				"kind", relay.Kind(err),
				"error", err,
			)
			utils.RespondWithInternalError(c, chatErrorMessage(err))
			return
		}

		c.JSON(http.StatusOK, models.ChatResponse{Message: reply})
	})
}

// chatErrorMessage only surfaces the upstream status; other failures stay generic
func chatErrorMessage(err error) string {
	var upstream *relay.UpstreamError
	if errors.As(err, &upstream) {
		return chatFailureMessage + ": " + upstream.Error()
	}
	return chatFailureMessage
}
