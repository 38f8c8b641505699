package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/ezchajim/azilut/internal/glossary"
	"github.com/ezchajim/azilut/internal/model"
)

// countingNormalizer counts how often the wrapped rewrite actually runs.
type countingNormalizer struct {
	inner *glossary.Normalizer
	calls int
}

func (n *countingNormalizer) Normalize(text string) (string, []model.ChangeRecord) {
	n.calls++
	return n.inner.Normalize(text)
}

func newCounting() *countingNormalizer {
	return &countingNormalizer{inner: glossary.NewNormalizer(glossary.Default())}
}

func TestKey(t *testing.T) {
	if Key("a") == Key("b") {
		t.Error("distinct texts share a key")
	}
	if Key("a") != Key("a") {
		t.Error("key is not stable")
	}
	if !strings.HasPrefix(Key("a"), "azilut:v1:") {
		t.Errorf("key missing namespace prefix: %q", Key("a"))
	}
}

func TestCachedNormalizer_Memoizes(t *testing.T) {
	counting := newCounting()
	cached := NewCachedNormalizer(counting, time.Minute, time.Minute)

	first, firstChanges := cached.Normalize("Die Kabbala wird zerbrechen.")
	second, secondChanges := cached.Normalize("Die Kabbala wird zerbrechen.")

	if counting.calls != 1 {
		t.Errorf("expected 1 inner call, got %d", counting.calls)
	}
	if first != second {
		t.Errorf("cached rewrite differs: %q vs %q", first, second)
	}
	if first != "Die Qabbala wird bersten." {
		t.Errorf("rewrite wrong: %q", first)
	}
	if len(firstChanges) != 2 || len(secondChanges) != 2 {
		t.Errorf("change counts: %d vs %d", len(firstChanges), len(secondChanges))
	}
}

func TestCachedNormalizer_DistinctTextsMiss(t *testing.T) {
	counting := newCounting()
	cached := NewCachedNormalizer(counting, time.Minute, time.Minute)

	cached.Normalize("erster Text")
	cached.Normalize("zweiter Text")
	if counting.calls != 2 {
		t.Errorf("expected 2 inner calls, got %d", counting.calls)
	}
}

func TestCachedNormalizer_AuditLogIsolation(t *testing.T) {
	cached := NewCachedNormalizer(newCounting(), time.Minute, time.Minute)

	_, changes := cached.Normalize("Die Kabbala bleibt.")
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	changes[0].Original = "tampered"

	_, again := cached.Normalize("Die Kabbala bleibt.")
	if again[0].Original != "Kabbala" {
		t.Errorf("cached audit log was mutated through a caller's copy: %q", again[0].Original)
	}
}

func TestCachedNormalizer_Flush(t *testing.T) {
	counting := newCounting()
	cached := NewCachedNormalizer(counting, time.Minute, time.Minute)

	cached.Normalize("ein Text")
	cached.Flush()
	cached.Normalize("ein Text")

	if counting.calls != 2 {
		t.Errorf("expected recomputation after flush, got %d calls", counting.calls)
	}
}
