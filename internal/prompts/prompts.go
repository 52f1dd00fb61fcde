// Package prompts holds the static prompt catalogue and fixed canned messages
// for the interview collaborators. The catalogue ships embedded in the binary.
package prompts

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var rawCatalogue []byte

type problemGeneration struct {
	System       string `yaml:"system"`
	UserTemplate string `yaml:"user_template"`
}

type interviewer struct {
	Base  string            `yaml:"base"`
	Types map[string]string `yaml:"types"`
}

type candidate struct {
	System string `yaml:"system"`
}

type Catalogue struct {
	FixedMessages     map[string]string `yaml:"fixed_messages"`
	ProblemGeneration problemGeneration `yaml:"problem_generation"`
	Candidate         candidate         `yaml:"candidate"`
	Interviewer       interviewer       `yaml:"interviewer"`
	DefaultType       string            `yaml:"default_type"`
}

// Load parses the embedded catalogue.
func Load() (*Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(rawCatalogue, &c); err != nil {
		return nil, fmt.Errorf("parse prompt catalogue: %w", err)
	}
	if strings.TrimSpace(c.FixedMessages["start"]) == "" {
		return nil, fmt.Errorf("prompt catalogue missing fixed start message")
	}
	if strings.TrimSpace(c.ProblemGeneration.System) == "" || strings.TrimSpace(c.ProblemGeneration.UserTemplate) == "" {
		return nil, fmt.Errorf("prompt catalogue missing problem generation prompts")
	}
	if strings.TrimSpace(c.Interviewer.Base) == "" {
		return nil, fmt.Errorf("prompt catalogue missing interviewer base prompt")
	}
	if _, ok := c.Interviewer.Types[c.DefaultType]; !ok {
		return nil, fmt.Errorf("prompt catalogue default type %q has no interviewer prompt", c.DefaultType)
	}
	return &c, nil
}

// OpeningMessage is the canned interviewer message that seeds every session.
func (c *Catalogue) OpeningMessage() string {
	return c.FixedMessages["start"]
}

// CandidateSystem is the system prompt for the simulated-candidate agent.
func (c *Catalogue) CandidateSystem() string {
	return c.Candidate.System
}

// ProblemPrompt renders the system and user prompts for problem generation.
func (c *Catalogue) ProblemPrompt(requirements, difficulty, topic, itype string) (system, user string) {
	if strings.TrimSpace(requirements) == "" {
		requirements = "none"
	}
	r := strings.NewReplacer(
		"{difficulty}", difficulty,
		"{topic}", topic,
		"{type}", c.normalizeType(itype),
		"{requirements}", requirements,
	)
	return c.ProblemGeneration.System, r.Replace(c.ProblemGeneration.UserTemplate)
}

// InterviewerSystem renders the interviewer system prompt for a session: the
// base instructions, the type-specific focus, and the problem statement.
func (c *Catalogue) InterviewerSystem(problemStatement, itype string) string {
	var b strings.Builder
	b.WriteString(c.Interviewer.Base)
	if focus := c.Interviewer.Types[c.normalizeType(itype)]; focus != "" {
		b.WriteString("\n\n")
		b.WriteString(focus)
	}
	b.WriteString("\n\nProblem statement:\n")
	b.WriteString(problemStatement)
	return b.String()
}

// normalizeType maps an arbitrary client-supplied interview type onto a
// catalogue key, falling back to the default type.
func (c *Catalogue) normalizeType(itype string) string {
	key := strings.ReplaceAll(strings.TrimSpace(strings.ToLower(itype)), " ", "_")
	if _, ok := c.Interviewer.Types[key]; ok {
		return key
	}
	return c.DefaultType
}
