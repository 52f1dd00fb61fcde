package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yungbote/mockmentor-backend/internal/platform/logger"
	"github.com/yungbote/mockmentor-backend/internal/platform/openai"
	"github.com/yungbote/mockmentor-backend/internal/prompts"
	"github.com/yungbote/mockmentor-backend/internal/types"
)

// ErrGeneration marks a failure to produce a problem statement.
var ErrGeneration = errors.New("problem generation failed")

// GeneratorService produces the problem statement for a new interview and
// builds the interviewer's initial conversation context.
type GeneratorService interface {
	GenerateProblem(ctx context.Context, requirements, difficulty, topic, itype string) (string, error)
	InitInterviewer(problemStatement, itype string) []types.ChatMessage
}

type generatorService struct {
	log       *logger.Logger
	ai        openai.Client
	catalogue *prompts.Catalogue
}

func NewGeneratorService(baseLog *logger.Logger, ai openai.Client, catalogue *prompts.Catalogue) GeneratorService {
	return &generatorService{
		log:       baseLog.With("service", "GeneratorService"),
		ai:        ai,
		catalogue: catalogue,
	}
}

func (s *generatorService) GenerateProblem(ctx context.Context, requirements, difficulty, topic, itype string) (string, error) {
	system, user := s.catalogue.ProblemPrompt(requirements, difficulty, topic, itype)
	statement, err := s.ai.Chat(ctx, []types.ChatMessage{
		{Role: types.RoleSystem, Content: system},
		{Role: types.RoleUser, Content: user},
	})
	if err != nil {
		s.log.Error("problem generation failed", "topic", topic, "difficulty", difficulty, "error", err)
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return statement, nil
}

func (s *generatorService) InitInterviewer(problemStatement, itype string) []types.ChatMessage {
	return []types.ChatMessage{
		{Role: types.RoleSystem, Content: s.catalogue.InterviewerSystem(problemStatement, itype)},
	}
}
