package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/mockmentor-backend/internal/platform/logger"
	"github.com/yungbote/mockmentor-backend/internal/prompts"
	"github.com/yungbote/mockmentor-backend/internal/store"
	"github.com/yungbote/mockmentor-backend/internal/types"
)

// StartResult is what a freshly created session hands back to the client.
type StartResult struct {
	SessionID        string
	Metadata         types.InterviewMetadata
	ProblemStatement string
}

// InterviewService owns the session lifecycle: creation, turn advancement,
// and transcript access. Every operation round-trips the store; the service
// holds no session state between requests beyond the per-id turn locks.
type InterviewService interface {
	Start(ctx context.Context, itype, difficulty, topic, requirements string) (*StartResult, error)
	SubmitTurn(ctx context.Context, id, message, code string) (string, error)
	GetTranscript(ctx context.Context, id string) ([]types.TranscriptEntry, error)
}

type interviewService struct {
	log       *logger.Logger
	store     store.Store
	generator GeneratorService
	responder ResponderService
	catalogue *prompts.Catalogue
	locks     *sessionLocks
}

func NewInterviewService(baseLog *logger.Logger, st store.Store, generator GeneratorService, responder ResponderService, catalogue *prompts.Catalogue) InterviewService {
	return &interviewService{
		log:       baseLog.With("service", "InterviewService"),
		store:     st,
		generator: generator,
		responder: responder,
		catalogue: catalogue,
		locks:     newSessionLocks(),
	}
}

// Start always creates a brand-new session; it never touches an existing
// record.
func (s *interviewService) Start(ctx context.Context, itype, difficulty, topic, requirements string) (*StartResult, error) {
	problem, err := s.generator.GenerateProblem(ctx, requirements, difficulty, topic, itype)
	if err != nil {
		return nil, err
	}

	opening := s.catalogue.OpeningMessage()
	now := time.Now().UTC()
	record := &types.SessionRecord{
		ID: types.NewSessionID(),
		Metadata: types.InterviewMetadata{
			Difficulty: difficulty,
			Topic:      topic,
			Type:       itype,
		},
		ProblemStatement:   problem,
		InterviewerContext: s.generator.InitInterviewer(problem, itype),
		Display: []types.DisplayTurn{
			{Candidate: nil, Interviewer: types.StrPtr(opening)},
		},
		Transcript: []types.TranscriptEntry{},
		CandidateContext: []types.ChatMessage{
			{Role: types.RoleSystem, Content: s.catalogue.CandidateSystem()},
			{Role: types.RoleUser, Content: "Your problem: " + problem},
			{Role: types.RoleUser, Content: opening},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Create(ctx, record); err != nil {
		return nil, err
	}

	s.log.Info("interview session created",
		"session_id", record.ID,
		"type", itype,
		"difficulty", difficulty,
		"topic", topic,
	)
	return &StartResult{
		SessionID:        record.ID,
		Metadata:         record.Metadata,
		ProblemStatement: problem,
	}, nil
}

// SubmitTurn advances one interaction turn. The three conversation views are
// updated together and persisted in a single save; if the responder fails the
// stored record is left exactly as it was.
func (s *interviewService) SubmitTurn(ctx context.Context, id, message, code string) (string, error) {
	l := s.locks.acquire(id)
	defer s.locks.release(id, l)

	record, err := s.store.Load(ctx, id)
	if err != nil {
		return "", err
	}

	display := append(record.Display[:len(record.Display):len(record.Display)], types.DisplayTurn{
		Candidate: types.StrPtr(message),
	})

	newContext, newDisplay, err := s.responder.Respond(ctx, code, record.InterviewerContext, display)
	if err != nil {
		return "", err
	}

	reply, err := latestInterviewerReply(newContext)
	if err != nil {
		return "", err
	}

	record.InterviewerContext = newContext
	record.Display = newDisplay
	record.Transcript = append(record.Transcript,
		types.TranscriptEntry{Speaker: types.SpeakerCandidate, Text: message},
		types.TranscriptEntry{Speaker: types.SpeakerInterviewer, Text: reply},
	)
	record.UpdatedAt = time.Now().UTC()

	if err := s.store.Save(ctx, record); err != nil {
		return "", err
	}

	s.log.Debug("turn completed", "session_id", id, "turns", len(record.Transcript)/2)
	return reply, nil
}

func (s *interviewService) GetTranscript(ctx context.Context, id string) ([]types.TranscriptEntry, error) {
	record, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return record.Transcript, nil
}

// latestInterviewerReply extracts the interviewer's reply from the tail of
// the advanced context.
func latestInterviewerReply(msgs []types.ChatMessage) (string, error) {
	if len(msgs) == 0 {
		return "", fmt.Errorf("%w: responder returned empty context", ErrResponse)
	}
	last := msgs[len(msgs)-1]
	if last.Role != types.RoleAssistant || last.Content == "" {
		return "", fmt.Errorf("%w: responder context does not end with an interviewer reply", ErrResponse)
	}
	return last.Content, nil
}
