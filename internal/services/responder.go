package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/yungbote/mockmentor-backend/internal/platform/logger"
	"github.com/yungbote/mockmentor-backend/internal/platform/openai"
	"github.com/yungbote/mockmentor-backend/internal/types"
)

// ErrResponse marks a failure to advance the interviewer's side of the
// conversation.
var ErrResponse = errors.New("interviewer response failed")

// ResponderService advances the interviewer dialogue one turn. The display
// working copy must end with a pending turn: a candidate half and an absent
// interviewer half. Respond returns new context and display slices and leaves
// its inputs untouched.
type ResponderService interface {
	Respond(ctx context.Context, candidateCode string, interviewerContext []types.ChatMessage, display []types.DisplayTurn) ([]types.ChatMessage, []types.DisplayTurn, error)
}

type responderService struct {
	log *logger.Logger
	ai  openai.Client
}

func NewResponderService(baseLog *logger.Logger, ai openai.Client) ResponderService {
	return &responderService{
		log: baseLog.With("service", "ResponderService"),
		ai:  ai,
	}
}

func (s *responderService) Respond(ctx context.Context, candidateCode string, interviewerContext []types.ChatMessage, display []types.DisplayTurn) ([]types.ChatMessage, []types.DisplayTurn, error) {
	if len(display) == 0 {
		return nil, nil, fmt.Errorf("%w: display has no turns", ErrResponse)
	}
	pending := display[len(display)-1]
	if pending.Candidate == nil || pending.Interviewer != nil {
		return nil, nil, fmt.Errorf("%w: display has no pending candidate turn", ErrResponse)
	}

	newContext := slices.Clone(interviewerContext)
	newContext = append(newContext, types.ChatMessage{
		Role:    types.RoleUser,
		Content: candidateTurnContent(*pending.Candidate, candidateCode),
	})

	reply, err := s.ai.Chat(ctx, newContext)
	if err != nil {
		s.log.Error("interviewer reply failed", "error", err)
		return nil, nil, fmt.Errorf("%w: %v", ErrResponse, err)
	}
	newContext = append(newContext, types.ChatMessage{Role: types.RoleAssistant, Content: reply})

	newDisplay := slices.Clone(display)
	newDisplay[len(newDisplay)-1] = types.DisplayTurn{
		Candidate:   pending.Candidate,
		Interviewer: types.StrPtr(reply),
	}
	return newContext, newDisplay, nil
}

// candidateTurnContent folds the candidate's chat message and current code
// into the single user message the interviewer model sees.
func candidateTurnContent(message, code string) string {
	message = strings.TrimSpace(message)
	code = strings.TrimSpace(code)
	if code == "" {
		return message
	}
	var b strings.Builder
	b.WriteString(message)
	if message != "" {
		b.WriteString("\n\n")
	}
	b.WriteString("The candidate's current code:\n```\n")
	b.WriteString(code)
	b.WriteString("\n```")
	return b.String()
}
