package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"ai-document-orchestrator/internal/config"
	"ai-document-orchestrator/internal/logger"
	"ai-document-orchestrator/internal/session"
	"ai-document-orchestrator/internal/telemetry"
	"ai-document-orchestrator/models"
	"ai-document-orchestrator/services"
	"ai-document-orchestrator/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const rawTextPreviewLimit = 4000

func SetupDocumentRoutes(router *gin.Engine, cfg *config.Config, store session.Store, extractor *services.StructuredExtractor, metrics *telemetry.Metrics) {
	docs := router.Group("/documents")

	docs.POST("/extract", func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			utils.RespondWithBadRequest(c, "Please upload a document first.", nil)
			return
		}

		question := strings.TrimSpace(c.PostForm("question"))
		if question == "" {
			utils.RespondWithBadRequest(c, "Please enter a question.", nil)
			return
		}

		if fileHeader.Size > cfg.MaxFileSize {
			utils.RespondWithError(c, http.StatusRequestEntityTooLarge, "file_too_large",
				"Uploaded file exceeds the maximum allowed size.",
				gin.H{"max_file_size": cfg.MaxFileSize})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to open uploaded file.", gin.H{"error": err.Error()})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to read uploaded file.", gin.H{"error": err.Error()})
			return
		}

		start := time.Now()
		rawText, err := services.ExtractText(fileHeader.Filename, data)
		if err != nil {
			if metrics != nil {
				metrics.RecordExtraction(time.Since(start).Seconds(), fileExt(fileHeader.Filename), "error")
			}
			utils.RespondWithUnprocessable(c, "decode_failed", err.Error())
			return
		}

		if strings.TrimSpace(rawText) == "" {
			if metrics != nil {
				metrics.RecordExtraction(time.Since(start).Seconds(), fileExt(fileHeader.Filename), "empty")
			}
			utils.RespondWithUnprocessable(c, "empty_document", "Could not extract any text from this document.")
			return
		}

		if metrics != nil {
			metrics.RecordExtraction(time.Since(start).Seconds(), fileExt(fileHeader.Filename), "success")
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.ExtractionTimeout)
		defer cancel()

		structured := extractor.Extract(ctx, rawText, question)

		state := &session.State{
			ID:             uuid.NewString(),
			Question:       question,
			RawText:        rawText,
			StructuredData: structured,
			CreatedAt:      time.Now(),
		}

		if err := store.Save(c.Request.Context(), state); err != nil {
			logger.Error("Failed to save session", "error", err)
			utils.RespondWithInternalError(c, "Failed to store session state.", nil)
			return
		}

		resp := models.ExtractResponse{
			SessionID:      state.ID,
			Question:       question,
			StructuredData: structured,
			RawTextPreview: previewText(rawText),
		}

		// Pretty display is best-effort; malformed model output stays raw
		var record models.StructuredRecord
		if err := json.Unmarshal([]byte(structured), &record); err == nil {
			resp.Parsed = json.RawMessage(structured)
		}

		c.JSON(http.StatusOK, resp)
	})

	router.DELETE("/sessions/:id", func(c *gin.Context) {
		if err := store.Delete(c.Request.Context(), c.Param("id")); err != nil {
			utils.RespondWithInternalError(c, "Failed to delete session.", nil)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "session deleted"})
	})
}

func previewText(text string) string {
	runes := []rune(text)
	if len(runes) <= rawTextPreviewLimit {
		return text
	}
	return string(runes[:rawTextPreviewLimit])
}

func fileExt(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		return strings.ToLower(filename[idx+1:])
	}
	return "unknown"
}
