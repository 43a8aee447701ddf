package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mailsift/mailsift/internal/core"
	"github.com/mailsift/mailsift/internal/models"
	"go.uber.org/zap"
)

// AnalyzeHandler handles POST /gmail/analyze: fetch recent inbox messages
// for the supplied token, classify them and return the confirmed spam.
func AnalyzeHandler(service *core.AnalysisService, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.AnalyzeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Invalid request body",
				Details: err.Error(),
			})
		}
		if req.AccessToken == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Missing access_token in request body",
			})
		}

		result, err := service.Analyze(c.Request().Context(), req.AccessToken)
		if err != nil {
			var authErr *core.AuthError
			if errors.As(err, &authErr) {
				logger.Warn("Credential rejected by provider", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Error:   "Authentication error with Google. Please re-authenticate.",
					Details: authErr.Details,
				})
			}

			logger.Error("Inbox analysis failed", zap.Error(err))
			details := err.Error()
			var provErr *core.ProviderError
			if errors.As(err, &provErr) {
				details = provErr.Details
			}
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "Failed to analyze inbox for spam.",
				Details: details,
			})
		}

		return c.JSON(http.StatusOK, toAnalyzeResponse(result))
	}
}

func toAnalyzeResponse(result *core.AnalysisResult) models.AnalyzeResponse {
	resp := models.AnalyzeResponse{
		SpamMessages:  toAnalyzedMessages(result.Spam),
		OtherMessages: toAnalyzedMessages(result.Other),
		Summary: models.Summary{
			TotalScannedLocally:         result.Summary.TotalScannedLocally,
			TotalSuspectedByLocalFilter: result.Summary.TotalSuspectedByLocalFilter,
			TotalConfirmedSpamByAI:      result.Summary.TotalConfirmedSpamByAI,
		},
	}
	if result.Summary.TotalScannedLocally == 0 {
		resp.Summary.Message = "No messages found to analyze."
	}
	return resp
}

func toAnalyzedMessages(analyzed []core.AnalyzedMessage) []models.AnalyzedMessage {
	out := make([]models.AnalyzedMessage, 0, len(analyzed))
	for _, am := range analyzed {
		out = append(out, models.AnalyzedMessage{
			MessageID: am.Message.ID,
			ThreadID:  am.Message.ThreadID,
			From:      am.Message.From,
			Subject:   am.Message.Subject,
			Snippet:   am.Message.Snippet,
			AIAnalysis: models.AIAnalysis{
				IsSpam:             am.Classification.IsSpam,
				Reason:             am.Classification.Reason,
				HasUnsubscribeLink: am.Classification.HasUnsubscribeLink,
				IdentifiedLink:     am.Classification.IdentifiedLink,
			},
		})
	}
	return out
}
