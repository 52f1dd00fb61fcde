package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yungbote/mockmentor-backend/internal/platform/logger"
	"github.com/yungbote/mockmentor-backend/internal/services"
	"github.com/yungbote/mockmentor-backend/internal/store"
	"github.com/yungbote/mockmentor-backend/internal/types"
)

type fakeInterviewService struct {
	startResult *services.StartResult
	startErr    error
	reply       string
	turnErr     error
	transcript  []types.TranscriptEntry
	getErr      error
}

func (s *fakeInterviewService) Start(_ context.Context, itype, difficulty, topic, _ string) (*services.StartResult, error) {
	if s.startErr != nil {
		return nil, s.startErr
	}
	if s.startResult != nil {
		return s.startResult, nil
	}
	return &services.StartResult{
		SessionID: "20250101-120000-abcdefgh1234",
		Metadata: types.InterviewMetadata{
			Difficulty: difficulty,
			Topic:      topic,
			Type:       itype,
		},
		ProblemStatement: "Reverse a linked list.",
	}, nil
}

func (s *fakeInterviewService) SubmitTurn(_ context.Context, _, _, _ string) (string, error) {
	if s.turnErr != nil {
		return "", s.turnErr
	}
	return s.reply, nil
}

func (s *fakeInterviewService) GetTranscript(_ context.Context, _ string) ([]types.TranscriptEntry, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.transcript, nil
}

func newTestRouter(svc services.InterviewService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	h := NewInterviewHandler(log, svc)

	r := gin.New()
	api := r.Group("/api")
	{
		api.POST("/interviews", h.StartInterview)
		api.POST("/interviews/:id/turns", h.SubmitTurn)
		api.GET("/interviews/:id/transcript", h.GetTranscript)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStartInterview(t *testing.T) {
	r := newTestRouter(&fakeInterviewService{})

	w := doJSON(t, r, http.MethodPost, "/api/interviews", gin.H{
		"type":       "coding",
		"difficulty": "medium",
		"topic":      "arrays",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp StartInterviewResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SessionID == "" {
		t.Error("response missing session_id")
	}
	if resp.ProblemStatement != "Reverse a linked list." {
		t.Errorf("problem_statement = %q", resp.ProblemStatement)
	}
	if resp.Type != "coding" || resp.Difficulty != "medium" || resp.Topic != "arrays" {
		t.Errorf("metadata echo = %+v", resp)
	}
}

func TestStartInterview_MissingFields(t *testing.T) {
	r := newTestRouter(&fakeInterviewService{})

	w := doJSON(t, r, http.MethodPost, "/api/interviews", gin.H{"type": "coding"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var envelope ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Error.Code != "invalid_request" {
		t.Errorf("code = %q, want invalid_request", envelope.Error.Code)
	}
}

func TestSubmitTurn(t *testing.T) {
	r := newTestRouter(&fakeInterviewService{reply: "What is the complexity?"})

	w := doJSON(t, r, http.MethodPost, "/api/interviews/a/turns", gin.H{"message": "two pointers"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Reply != "What is the complexity?" {
		t.Errorf("reply = %q", resp.Reply)
	}
}

func TestSubmitTurn_EmptyTurn(t *testing.T) {
	r := newTestRouter(&fakeInterviewService{reply: "unused"})

	w := doJSON(t, r, http.MethodPost, "/api/interviews/a/turns", gin.H{"message": "   ", "code": ""})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var envelope ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Error.Code != "empty_turn" {
		t.Errorf("code = %q, want empty_turn", envelope.Error.Code)
	}
}

func TestGetTranscript(t *testing.T) {
	r := newTestRouter(&fakeInterviewService{
		transcript: []types.TranscriptEntry{
			{Speaker: types.SpeakerCandidate, Text: "hello"},
			{Speaker: types.SpeakerInterviewer, Text: "welcome"},
		},
	})

	w := doJSON(t, r, http.MethodGet, "/api/interviews/a/transcript", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Transcript []types.TranscriptEntry `json:"transcript"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Transcript) != 2 {
		t.Fatalf("transcript length = %d, want 2", len(resp.Transcript))
	}
	if resp.Transcript[0].Speaker != types.SpeakerCandidate || resp.Transcript[1].Speaker != types.SpeakerInterviewer {
		t.Errorf("transcript speakers = %+v", resp.Transcript)
	}
}

func TestServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found",
			err:        fmt.Errorf("load: %w", store.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "session_not_found",
		},
		{
			name:       "corrupt",
			err:        fmt.Errorf("load: %w", store.ErrCorrupt),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "session_corrupt",
		},
		{
			name:       "generation",
			err:        fmt.Errorf("%w: upstream", services.ErrGeneration),
			wantStatus: http.StatusBadGateway,
			wantCode:   "problem_generation_failed",
		},
		{
			name:       "response",
			err:        fmt.Errorf("%w: upstream", services.ErrResponse),
			wantStatus: http.StatusBadGateway,
			wantCode:   "interviewer_response_failed",
		},
		{
			name:       "storage",
			err:        fmt.Errorf("save: %w", store.ErrStorage),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "session_storage_failed",
		},
		{
			name:       "unclassified",
			err:        errors.New("something else"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeInterviewService{turnErr: tt.err})

			w := doJSON(t, r, http.MethodPost, "/api/interviews/a/turns", gin.H{"message": "hi"})
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var envelope ErrorEnvelope
			if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decode error envelope: %v", err)
			}
			if envelope.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", envelope.Error.Code, tt.wantCode)
			}
			if envelope.Error.Message == "" {
				t.Error("error message is empty")
			}
		})
	}
}
