package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yungbote/mockmentor-backend/internal/prompts"
	"github.com/yungbote/mockmentor-backend/internal/types"
)

func TestGenerator_GenerateProblem(t *testing.T) {
	catalogue, err := prompts.Load()
	if err != nil {
		t.Fatalf("prompts.Load failed: %v", err)
	}
	client := &fakeChatClient{reply: "Implement an LRU cache."}
	svc := NewGeneratorService(nopLogger(), client, catalogue)

	statement, err := svc.GenerateProblem(context.Background(), "must support O(1) ops", "medium", "caching", "coding")
	if err != nil {
		t.Fatalf("GenerateProblem failed: %v", err)
	}
	if statement != "Implement an LRU cache." {
		t.Errorf("statement = %q", statement)
	}

	if len(client.gotMessages) != 2 {
		t.Fatalf("sent %d messages, want 2", len(client.gotMessages))
	}
	if client.gotMessages[0].Role != types.RoleSystem {
		t.Errorf("first message role = %q, want system", client.gotMessages[0].Role)
	}
	user := client.gotMessages[1]
	if user.Role != types.RoleUser {
		t.Errorf("second message role = %q, want user", user.Role)
	}
	for _, want := range []string{"medium", "caching", "must support O(1) ops"} {
		if !strings.Contains(user.Content, want) {
			t.Errorf("user prompt missing %q: %q", want, user.Content)
		}
	}
}

func TestGenerator_GenerateProblemFailure(t *testing.T) {
	catalogue, err := prompts.Load()
	if err != nil {
		t.Fatalf("prompts.Load failed: %v", err)
	}
	svc := NewGeneratorService(nopLogger(), &fakeChatClient{err: errors.New("timeout")}, catalogue)

	_, err = svc.GenerateProblem(context.Background(), "", "easy", "strings", "coding")
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("GenerateProblem = %v, want ErrGeneration", err)
	}
}

func TestGenerator_InitInterviewer(t *testing.T) {
	catalogue, err := prompts.Load()
	if err != nil {
		t.Fatalf("prompts.Load failed: %v", err)
	}
	svc := NewGeneratorService(nopLogger(), &fakeChatClient{}, catalogue)

	ictx := svc.InitInterviewer("Reverse a linked list.", "coding")
	if len(ictx) != 1 {
		t.Fatalf("context length = %d, want 1", len(ictx))
	}
	if ictx[0].Role != types.RoleSystem {
		t.Errorf("role = %q, want system", ictx[0].Role)
	}
	if !strings.Contains(ictx[0].Content, "Reverse a linked list.") {
		t.Errorf("system prompt missing problem statement: %q", ictx[0].Content)
	}
}
