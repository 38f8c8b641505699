package model

import (
	"time"

	"github.com/google/uuid"
)

// QuestionKind classifies a question in a message's question hierarchy.
// Kinds carry a strict priority order, purpose being the highest.
type QuestionKind string

const (
	QuestionPurpose  QuestionKind = "purpose"  // what for
	QuestionCause    QuestionKind = "cause"    // why
	QuestionMethod   QuestionKind = "method"   // how
	QuestionContent  QuestionKind = "content"  // what
	QuestionAgent    QuestionKind = "agent"    // who
	QuestionLocation QuestionKind = "location" // where
	QuestionTime     QuestionKind = "time"     // when
)

// QuestionKinds returns all kinds in descending priority order.
func QuestionKinds() []QuestionKind {
	return []QuestionKind{
		QuestionPurpose, QuestionCause, QuestionMethod,
		QuestionContent, QuestionAgent, QuestionLocation, QuestionTime,
	}
}

// Priority returns the rank of the kind, 0 being the highest (purpose).
// Unknown kinds rank below all known ones.
func (k QuestionKind) Priority() int {
	for i, known := range QuestionKinds() {
		if k == known {
			return i
		}
	}
	return len(QuestionKinds())
}

// Message is a unit of communication between modules. It is created by a
// producer, mutated only by the admission gate (normalization rewrites
// Content and Purpose, the gate sets Verdict, InterpretationTag and
// SpiralGrade), and destroyed when its recipient consumes it.
type Message struct {
	ID                string                  `yaml:"id" json:"id"`
	Content           string                  `yaml:"content" json:"content"`
	Purpose           string                  `yaml:"purpose" json:"purpose"` // empty means "not yet stated"
	SenderID          string                  `yaml:"sender" json:"sender"`
	RecipientID       string                  `yaml:"recipient" json:"recipient"`
	QuestionHierarchy map[QuestionKind]string `yaml:"questions,omitempty" json:"questions,omitempty"`
	InterpretationTag string                  `yaml:"interpretation_tag,omitempty" json:"interpretation_tag,omitempty"`
	SpiralGrade       int                     `yaml:"spiral_grade,omitempty" json:"spiral_grade,omitempty"`
	Verdict           *Verdict                `yaml:"verdict,omitempty" json:"verdict,omitempty"`
	CreatedAt         time.Time               `yaml:"created_at,omitempty" json:"created_at"`
}

// NewMessage builds a purpose-centered message. A non-empty purpose is
// seeded into the question hierarchy so the purpose question always stays
// primary.
func NewMessage(content, purpose, senderID, recipientID string) *Message {
	hierarchy := make(map[QuestionKind]string)
	if purpose != "" {
		hierarchy[QuestionPurpose] = purpose
	}
	return &Message{
		ID:                uuid.NewString(),
		Content:           content,
		Purpose:           purpose,
		SenderID:          senderID,
		RecipientID:       recipientID,
		QuestionHierarchy: hierarchy,
		CreatedAt:         time.Now().UTC(),
	}
}

// SetQuestion records an additional question in the hierarchy.
func (m *Message) SetQuestion(kind QuestionKind, text string) {
	if m.QuestionHierarchy == nil {
		m.QuestionHierarchy = make(map[QuestionKind]string)
	}
	m.QuestionHierarchy[kind] = text
}
