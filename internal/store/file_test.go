package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yungbote/mockmentor-backend/internal/types"
)

func testRecord(id string) *types.SessionRecord {
	return &types.SessionRecord{
		ID:               id,
		Metadata:         types.InterviewMetadata{Difficulty: "medium", Topic: "arrays", Type: "coding"},
		ProblemStatement: "Find the duplicate number in an array.",
		InterviewerContext: []types.ChatMessage{
			{Role: types.RoleSystem, Content: "You are an interviewer."},
		},
		Display: []types.DisplayTurn{
			{Candidate: nil, Interviewer: types.StrPtr("Welcome!")},
		},
		Transcript: []types.TranscriptEntry{},
	}
}

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	return s
}

func TestFileStore_CreateAndLoad(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()
	record := testRecord(types.NewSessionID())

	if err := s.Create(ctx, record); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	loaded, err := s.Load(ctx, record.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.ProblemStatement != record.ProblemStatement {
		t.Errorf("got problem %q, want %q", loaded.ProblemStatement, record.ProblemStatement)
	}
	if loaded.Metadata != record.Metadata {
		t.Errorf("got metadata %+v, want %+v", loaded.Metadata, record.Metadata)
	}
	if len(loaded.Transcript) != 0 {
		t.Errorf("fresh record transcript length = %d, want 0", len(loaded.Transcript))
	}
}

func TestFileStore_CreateExisting(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()
	record := testRecord(types.NewSessionID())

	if err := s.Create(ctx, record); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	err := s.Create(ctx, record)
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("Create on existing id = %v, want ErrStorage", err)
	}
}

func TestFileStore_LoadMissing(t *testing.T) {
	s := newTestFileStore(t)

	_, err := s.Load(context.Background(), "20240101-120000-nosuchsuffix")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load missing = %v, want ErrNotFound", err)
	}
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	root := t.TempDir()
	s, err := NewFileStore(root, nil)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	cases := []struct {
		name string
		body string
	}{
		{name: "not_json", body: "{ this is not json"},
		{name: "invalid_record", body: `{"id":"x","problem_statement":""}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := "20240101-120000-" + tc.name
			path := filepath.Join(root, id+".json")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}
			_, err := s.Load(context.Background(), id)
			if !errors.Is(err, ErrCorrupt) {
				t.Fatalf("Load corrupt = %v, want ErrCorrupt", err)
			}
		})
	}
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()
	record := testRecord(types.NewSessionID())

	if err := s.Create(ctx, record); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	record.Transcript = append(record.Transcript,
		types.TranscriptEntry{Speaker: types.SpeakerCandidate, Text: "I'll use a hash map"},
		types.TranscriptEntry{Speaker: types.SpeakerInterviewer, Text: "Walk me through it."},
	)
	if err := s.Save(ctx, record); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := s.Load(ctx, record.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Transcript) != 2 {
		t.Fatalf("transcript length = %d, want 2", len(loaded.Transcript))
	}
	if loaded.Transcript[0].Text != "I'll use a hash map" {
		t.Errorf("transcript[0].Text = %q", loaded.Transcript[0].Text)
	}
}

func TestFileStore_NoTempFilesLeft(t *testing.T) {
	root := t.TempDir()
	s, err := NewFileStore(root, nil)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	ctx := context.Background()
	record := testRecord(types.NewSessionID())
	if err := s.Create(ctx, record); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := s.Save(ctx, record); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("stray temp file left behind: %s", e.Name())
		}
	}
}

func TestFileStore_RejectsPathEscapingIDs(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	for _, id := range []string{"", "../outside", "a/b", `a\b`} {
		if _, err := s.Load(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Load(%q) = %v, want ErrNotFound", id, err)
		}
	}
}

func TestFileStore_Isolation(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	a := testRecord(types.NewSessionID())
	b := testRecord(types.NewSessionID())
	b.ProblemStatement = "Reverse a linked list."

	if err := s.Create(ctx, a); err != nil {
		t.Fatalf("Create a failed: %v", err)
	}
	if err := s.Create(ctx, b); err != nil {
		t.Fatalf("Create b failed: %v", err)
	}

	a.Transcript = append(a.Transcript,
		types.TranscriptEntry{Speaker: types.SpeakerCandidate, Text: "hi"},
		types.TranscriptEntry{Speaker: types.SpeakerInterviewer, Text: "hello"},
	)
	if err := s.Save(ctx, a); err != nil {
		t.Fatalf("Save a failed: %v", err)
	}

	loadedB, err := s.Load(ctx, b.ID)
	if err != nil {
		t.Fatalf("Load b failed: %v", err)
	}
	if len(loadedB.Transcript) != 0 {
		t.Errorf("session b transcript length = %d, want 0", len(loadedB.Transcript))
	}
	if loadedB.ProblemStatement != "Reverse a linked list." {
		t.Errorf("session b problem = %q", loadedB.ProblemStatement)
	}
}
