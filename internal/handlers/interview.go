package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/mockmentor-backend/internal/platform/apierr"
	"github.com/yungbote/mockmentor-backend/internal/platform/logger"
	"github.com/yungbote/mockmentor-backend/internal/services"
	"github.com/yungbote/mockmentor-backend/internal/store"
)

type InterviewHandler struct {
	log              *logger.Logger
	interviewService services.InterviewService
}

func NewInterviewHandler(log *logger.Logger, interviewService services.InterviewService) *InterviewHandler {
	return &InterviewHandler{
		log:              log.With("handler", "InterviewHandler"),
		interviewService: interviewService,
	}
}

type StartInterviewRequest struct {
	Type         string `json:"type" binding:"required"`
	Difficulty   string `json:"difficulty" binding:"required"`
	Topic        string `json:"topic" binding:"required"`
	Requirements string `json:"requirements"`
}

type StartInterviewResponse struct {
	SessionID        string `json:"session_id"`
	Difficulty       string `json:"difficulty"`
	Topic            string `json:"topic"`
	Type             string `json:"type"`
	ProblemStatement string `json:"problem_statement"`
}

func (h *InterviewHandler) StartInterview(c *gin.Context) {
	var req StartInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := h.interviewService.Start(c.Request.Context(), req.Type, req.Difficulty, req.Topic, req.Requirements)
	if err != nil {
		h.respondServiceError(c, "StartInterview", err)
		return
	}
	RespondOK(c, StartInterviewResponse{
		SessionID:        result.SessionID,
		Difficulty:       result.Metadata.Difficulty,
		Topic:            result.Metadata.Topic,
		Type:             result.Metadata.Type,
		ProblemStatement: result.ProblemStatement,
	})
}

type TurnRequest struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (h *InterviewHandler) SubmitTurn(c *gin.Context) {
	id := c.Param("id")
	var req TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if strings.TrimSpace(req.Message) == "" && strings.TrimSpace(req.Code) == "" {
		RespondError(c, http.StatusBadRequest, "empty_turn", fmt.Errorf("turn needs a message or code"))
		return
	}

	reply, err := h.interviewService.SubmitTurn(c.Request.Context(), id, req.Message, req.Code)
	if err != nil {
		h.respondServiceError(c, "SubmitTurn", err)
		return
	}
	RespondOK(c, gin.H{"reply": reply})
}

func (h *InterviewHandler) GetTranscript(c *gin.Context) {
	id := c.Param("id")
	transcript, err := h.interviewService.GetTranscript(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, "GetTranscript", err)
		return
	}
	RespondOK(c, gin.H{"transcript": transcript})
}

// respondServiceError maps core failures onto the wire. Collaborator and
// storage failure text is passed through, not reinterpreted.
func (h *InterviewHandler) respondServiceError(c *gin.Context, op string, err error) {
	ae := classifyError(err)
	if ae.Status >= http.StatusInternalServerError {
		h.log.Error(op+" failed", "code", ae.Code, "error", err)
	} else {
		h.log.Debug(op+" rejected", "code", ae.Code, "error", err)
	}
	RespondError(c, ae.Status, ae.Code, ae.Err)
}

func classifyError(err error) *apierr.Error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apierr.New(http.StatusNotFound, "session_not_found", err)
	case errors.Is(err, store.ErrCorrupt):
		return apierr.New(http.StatusUnprocessableEntity, "session_corrupt", err)
	case errors.Is(err, services.ErrGeneration):
		return apierr.New(http.StatusBadGateway, "problem_generation_failed", err)
	case errors.Is(err, services.ErrResponse):
		return apierr.New(http.StatusBadGateway, "interviewer_response_failed", err)
	case errors.Is(err, store.ErrStorage):
		return apierr.New(http.StatusInternalServerError, "session_storage_failed", err)
	default:
		return apierr.New(http.StatusInternalServerError, "internal_error", err)
	}
}
