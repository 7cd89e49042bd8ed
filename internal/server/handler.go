package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/heartbeam/matchsim/internal/profile"
	"github.com/heartbeam/matchsim/internal/scoring"
)

// submitFormRequest is the payload the signup front end posts: the raw form
// answers plus the transcribed voice responses.
type submitFormRequest struct {
	FormData        map[string]any `json:"form_data"`
	VoiceTranscript string         `json:"voice_transcript"`
}

type submitFormResponse struct {
	Success bool                 `json:"success"`
	Data    *scoring.ScoreResult `json:"data,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// handleSubmitForm formats the submitted fields and transcript into a partner
// description, forwards it to the scoring backend and relays the result. All
// failures come back as a typed user message with a stable JSON shape; raw
// backend detail stays in the logs.
func (s *Server) handleSubmitForm(c *gin.Context) {
	var req submitFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("rejecting malformed submit request", zap.Error(err))
		c.JSON(http.StatusBadRequest, submitFormResponse{
			Success: false,
			Error:   "Invalid JSON in request body.",
		})
		return
	}

	fields, err := profile.FromMap(req.FormData)
	if err != nil {
		s.logger.Debug("rejecting undecodable form data", zap.Error(err))
		c.JSON(http.StatusBadRequest, submitFormResponse{
			Success: false,
			Error:   "Form data could not be read.",
		})
		return
	}

	description := profile.Describe(fields, req.VoiceTranscript)

	s.logger.Debug("formatted profile description",
		zap.Int("form_fields", len(req.FormData)),
		zap.Int("transcript_length", len(req.VoiceTranscript)),
		zap.Int("description_length", len(description)),
	)

	result, err := s.scorer.Submit(c.Request.Context(), description)
	if err != nil {
		kind, _ := scoring.KindOf(err)
		s.logger.Warn("submission failed",
			zap.String("kind", kind.String()),
			zap.Error(err),
		)
		c.JSON(statusForKind(kind), submitFormResponse{
			Success: false,
			Error:   scoring.UserMessage(err),
		})
		return
	}

	s.logger.Info("submission scored", zap.Float64("score", result.Score))

	c.JSON(http.StatusOK, submitFormResponse{
		Success: true,
		Data:    result,
	})
}

// statusForKind maps a failure kind to the proxy's status code. Validation is
// the client's fault; everything else is a backend-side problem surfaced as a
// bad gateway.
func statusForKind(kind scoring.Kind) int {
	if kind == scoring.KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}
