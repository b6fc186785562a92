package routes

import (
	"fmt"
	"net/http"
	"strings"

	"ai-document-orchestrator/internal/logger"
	"ai-document-orchestrator/internal/session"
	"ai-document-orchestrator/internal/telemetry"
	"ai-document-orchestrator/models"
	"ai-document-orchestrator/services"
	"ai-document-orchestrator/utils"

	"github.com/gin-gonic/gin"
)

func SetupAlertRoutes(router *gin.Engine, store session.Store, webhook *services.WebhookClient, metrics *telemetry.Metrics) {
	alerts := router.Group("/alerts")

	alerts.POST("/send", func(c *gin.Context) {
		var req models.SendAlertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
			return
		}

		if strings.TrimSpace(req.RecipientEmail) == "" {
			utils.RespondWithBadRequest(c, "Please enter a recipient email.", nil)
			return
		}

		state, err := store.Get(c.Request.Context(), req.SessionID)
		if err == session.ErrNotFound {
			utils.RespondWithNotFound(c, "No extraction found for this session. Run an extraction first.")
			return
		}
		if err != nil {
			logger.Error("Failed to load session", "error", err)
			utils.RespondWithInternalError(c, "Failed to load session state.", nil)
			return
		}

		alert := &models.AlertContext{
			Question:       state.Question,
			StructuredData: state.StructuredData,
			RawText:        state.RawText,
			RecipientEmail: req.RecipientEmail,
		}

		outcome := webhook.Deliver(c.Request.Context(), alert)

		switch {
		case outcome.TransportError != "":
			if metrics != nil {
				metrics.RecordDelivery("transport_error")
			}
			utils.RespondWithBadGateway(c, "delivery_transport_error",
				fmt.Sprintf("Error sending to n8n: %s", outcome.TransportError),
				gin.H{"error": outcome.TransportError})
		case !outcome.Delivered:
			if metrics != nil {
				metrics.RecordDelivery("rejected")
			}
			utils.RespondWithBadGateway(c, "webhook_rejected",
				fmt.Sprintf("n8n returned status %d", outcome.StatusCode),
				gin.H{"status": outcome.StatusCode, "body": outcome.Body})
		default:
			if metrics != nil {
				metrics.RecordDelivery("delivered")
			}
			resp := models.SendAlertResponse{
				Delivered:  true,
				StatusCode: outcome.StatusCode,
			}
			if outcome.JSON != nil {
				resp.Response = outcome.JSON
			} else {
				resp.ResponseText = outcome.Body
			}
			c.JSON(http.StatusOK, resp)
		}
	})
}
