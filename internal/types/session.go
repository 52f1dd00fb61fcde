package types

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one role-tagged message in an LLM conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type InterviewMetadata struct {
	Difficulty string `json:"difficulty"`
	Topic      string `json:"topic"`
	Type       string `json:"type"`
}

// DisplayTurn is one UI-facing exchange. Either half may be absent: the seed
// turn has no candidate half, and a turn in flight has no interviewer half.
type DisplayTurn struct {
	Candidate   *string `json:"candidate"`
	Interviewer *string `json:"interviewer"`
}

type Speaker string

const (
	SpeakerCandidate   Speaker = "candidate"
	SpeakerInterviewer Speaker = "interviewer"
)

// TranscriptEntry is one entry in the flattened audit log. Entries strictly
// alternate candidate/interviewer, candidate first.
type TranscriptEntry struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// SessionRecord is the single durable document for one interview. The three
// conversation views are projections of the same logical conversation and are
// only ever updated together, in one save.
type SessionRecord struct {
	ID                 string            `json:"id"`
	Metadata           InterviewMetadata `json:"metadata"`
	ProblemStatement   string            `json:"problem_statement"`
	InterviewerContext []ChatMessage     `json:"interviewer_context"`
	Display            []DisplayTurn     `json:"display"`
	Transcript         []TranscriptEntry `json:"transcript"`
	// CandidateContext is the candidate-simulation conversation seeded at
	// creation. It is persisted for auditability but never advanced by turns.
	CandidateContext []ChatMessage `json:"candidate_context,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Validate reports whether a loaded record is structurally sound. Stores treat
// a failure here the same as an unparseable document.
func (r *SessionRecord) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("record has empty id")
	}
	if strings.TrimSpace(r.ProblemStatement) == "" {
		return fmt.Errorf("record %s has empty problem statement", r.ID)
	}
	if len(r.Display) == 0 {
		return fmt.Errorf("record %s has no display turns", r.ID)
	}
	if len(r.Transcript)%2 != 0 {
		return fmt.Errorf("record %s has odd transcript length %d", r.ID, len(r.Transcript))
	}
	for i, entry := range r.Transcript {
		want := SpeakerCandidate
		if i%2 == 1 {
			want = SpeakerInterviewer
		}
		if entry.Speaker != want {
			return fmt.Errorf("record %s transcript entry %d has speaker %q, want %q", r.ID, i, entry.Speaker, want)
		}
	}
	return nil
}

const sessionIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewSessionID returns a fresh session handle: a second-resolution UTC
// timestamp plus a random suffix. Ids sort chronologically; the suffix
// disambiguates sessions created in the same second.
func NewSessionID() string {
	suffix := make([]byte, 12)
	for i := range suffix {
		suffix[i] = sessionIDAlphabet[rand.IntN(len(sessionIDAlphabet))]
	}
	return time.Now().UTC().Format("20060102-150405") + "-" + string(suffix)
}

// StrPtr is a convenience for building optional display halves.
func StrPtr(s string) *string { return &s }
