package glossary

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ezchajim/azilut/internal/model"
)

// contextRunes is the snippet window on each side of a replacement.
const contextRunes = 20

// Normalizer rewrites text against a rule table. Normalize is a pure
// function over its input (timestamps aside) and safe for concurrent use;
// aggregate statistics are kept out of it and only collected when the
// caller passes a Stats accumulator explicitly.
type Normalizer struct {
	table *Table
}

// NewNormalizer creates a normalizer over the given table.
func NewNormalizer(table *Table) *Normalizer {
	return &Normalizer{table: table}
}

// Table returns the rule table the normalizer applies.
func (n *Normalizer) Table() *Table { return n.table }

// Normalize rewrites text, applying categories in their fixed order and
// rules in declared order. Each rule sees the output of the rules before
// it. One ChangeRecord is appended per match, with Position an offset into
// the final rewritten text and Context a clamped window around the
// replacement site in that final text. A record whose replacement a later
// rule rewrites again is superseded by the later record, so every
// surviving record locates its replacement in the returned text. Never
// fails; empty input yields ("", nil).
func (n *Normalizer) Normalize(text string) (string, []model.ChangeRecord) {
	if text == "" {
		return "", nil
	}

	out := text
	var records []model.ChangeRecord
	for _, cat := range n.table.categories {
		for _, cr := range cat.rules {
			out, records = applyRule(out, records, cat.category, cr)
		}
	}

	// Context snippets are only meaningful against the final text.
	for i := range records {
		records[i].Context = snippet(out, records[i].Position, records[i].Position+len(records[i].Replacement))
	}
	return out, records
}

// NormalizeWithStats is Normalize plus explicit aggregate accounting.
func (n *Normalizer) NormalizeWithStats(text string, stats *Stats) (string, []model.ChangeRecord) {
	out, records := n.Normalize(text)
	if stats != nil {
		stats.record(len(records))
	}
	return out, records
}

// edit describes one replacement in the coordinates of the text the rule
// was applied to.
type edit struct {
	oldStart, oldEnd, delta int
}

// applyRule replaces every match of one rule, recording each change at its
// position in the rule's output text and shifting all earlier records into
// the new coordinate space.
func applyRule(text string, records []model.ChangeRecord, cat model.Category, cr compiledRule) (string, []model.ChangeRecord) {
	locs := cr.re.FindAllStringIndex(text, -1)
	if locs == nil {
		return text, records
	}

	var b strings.Builder
	b.Grow(len(text))
	edits := make([]edit, 0, len(locs))
	fresh := make([]model.ChangeRecord, 0, len(locs))
	prev := 0
	for _, loc := range locs {
		b.WriteString(text[prev:loc[0]])
		fresh = append(fresh, model.ChangeRecord{
			Category:    cat,
			Original:    text[loc[0]:loc[1]],
			Replacement: cr.rule.Replacement,
			Position:    b.Len(),
			Timestamp:   time.Now().UTC(),
		})
		b.WriteString(cr.rule.Replacement)
		edits = append(edits, edit{oldStart: loc[0], oldEnd: loc[1], delta: len(cr.rule.Replacement) - (loc[1] - loc[0])})
		prev = loc[1]
	}
	b.WriteString(text[prev:])

	// Earlier records hold positions in the pre-rule text; remap them so
	// every record stays valid against the text as it now stands. A
	// record whose replacement this rule rewrote again is superseded:
	// its replacement no longer exists in the output, so the fresh
	// record for the later rewrite takes its place in the audit log.
	kept := records[:0]
	for _, rec := range records {
		end := rec.Position + len(rec.Replacement)
		shift := 0
		superseded := false
		for _, e := range edits {
			if e.oldEnd <= rec.Position {
				shift += e.delta
			} else if e.oldStart < end {
				superseded = true
				break
			}
		}
		if superseded {
			continue
		}
		rec.Position += shift
		kept = append(kept, rec)
	}
	return b.String(), append(kept, fresh...)
}

// snippet returns text around [start,end), widened by contextRunes runes on
// each side and clamped to the text bounds.
func snippet(text string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		start = end
	}
	lo := start
	for i := 0; i < contextRunes && lo > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:lo])
		lo -= size
	}
	hi := end
	for i := 0; i < contextRunes && hi < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[hi:])
		hi += size
	}
	return text[lo:hi]
}

// Stats is an optional, explicitly passed accumulator for aggregate
// normalization accounting. Safe for concurrent use.
type Stats struct {
	mu           sync.Mutex
	normalized   int
	replacements int
}

func (s *Stats) record(replacements int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.normalized++
	s.replacements += replacements
}

// Snapshot returns the number of normalize calls and total replacements
// recorded so far.
func (s *Stats) Snapshot() (normalized, replacements int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.normalized, s.replacements
}
