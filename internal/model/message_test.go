package model

import "testing"

func TestQuestionKindPriority(t *testing.T) {
	if QuestionPurpose.Priority() != 0 {
		t.Errorf("purpose must rank highest, got %d", QuestionPurpose.Priority())
	}

	kinds := QuestionKinds()
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1].Priority() >= kinds[i].Priority() {
			t.Errorf("%s does not outrank %s", kinds[i-1], kinds[i])
		}
	}

	if QuestionKind("color").Priority() <= QuestionTime.Priority() {
		t.Error("unknown kinds must rank below all known ones")
	}
}

func TestNewMessage(t *testing.T) {
	msg := NewMessage("content", "um zu wirken", "producer-1", "consumer-1")

	if msg.ID == "" {
		t.Error("expected a generated ID")
	}
	if msg.QuestionHierarchy[QuestionPurpose] != "um zu wirken" {
		t.Errorf("purpose not seeded into the hierarchy: %v", msg.QuestionHierarchy)
	}
	if msg.CreatedAt.IsZero() {
		t.Error("expected a creation timestamp")
	}

	other := NewMessage("content", "um zu wirken", "producer-1", "consumer-1")
	if other.ID == msg.ID {
		t.Error("two messages share an ID")
	}
}

func TestNewMessage_EmptyPurposeNotSeeded(t *testing.T) {
	msg := NewMessage("content", "", "producer-1", "consumer-1")
	if _, ok := msg.QuestionHierarchy[QuestionPurpose]; ok {
		t.Error("empty purpose must not enter the hierarchy")
	}
}
