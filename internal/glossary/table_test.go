package glossary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ezchajim/azilut/internal/model"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write table: %v", err)
	}
	return path
}

func TestLoad_ValidTable(t *testing.T) {
	path := writeTable(t, `
version: "1.0"
categories:
  - name: terminology
    rules:
      - pattern: Kabbala
        replacement: Qabbala
  - name: lexical_repair
    rules:
      - pattern: zerbrechen
        replacement: bersten
`)

	table, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if table.Version() != "1.0" {
		t.Errorf("expected version 1.0, got %s", table.Version())
	}
	if table.Len() != 2 {
		t.Errorf("expected 2 rules, got %d", table.Len())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, ok := err.(*ConfigurationError); !ok {
		t.Errorf("expected ConfigurationError, got %T", err)
	}
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "unknown category",
			content: `
categories:
  - name: emphasis
    rules:
      - {pattern: a, replacement: b}
`,
			wantErr: "unknown category",
		},
		{
			name: "duplicate category",
			content: `
categories:
  - name: terminology
    rules:
      - {pattern: a, replacement: b}
  - name: terminology
    rules:
      - {pattern: c, replacement: d}
`,
			wantErr: "declared twice",
		},
		{
			name: "duplicate pattern within category",
			content: `
categories:
  - name: terminology
    rules:
      - {pattern: Kabbala, replacement: Qabbala}
      - {pattern: Kabbala, replacement: Qabala}
`,
			wantErr: "duplicate pattern",
		},
		{
			name: "empty pattern",
			content: `
categories:
  - name: terminology
    rules:
      - {pattern: "", replacement: b}
`,
			wantErr: "empty pattern",
		},
		{
			name: "empty replacement",
			content: `
categories:
  - name: terminology
    rules:
      - {pattern: a, replacement: ""}
`,
			wantErr: "empty replacement",
		},
		{
			name:    "not yaml",
			content: "{{{",
			wantErr: "parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTable(t, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestDefault_TableIsValid(t *testing.T) {
	table := Default()
	if table.Len() == 0 {
		t.Fatal("expected built-in rules")
	}
	if table.Version() == "" {
		t.Error("expected a version")
	}
}

func TestCheck_ReportsViolations(t *testing.T) {
	table := Default()

	violations := table.Check("Die Kabbala wird zerbrechen, die Kabbala bleibt.")
	if len(violations) != 2 {
		t.Fatalf("expected 2 violations, got %d: %+v", len(violations), violations)
	}

	// Category order: terminology before lexical_repair.
	if violations[0].Pattern != "Kabbala" || violations[0].Count != 2 {
		t.Errorf("expected Kabbala twice, got %+v", violations[0])
	}
	if violations[0].Replacement != "Qabbala" {
		t.Errorf("expected replacement Qabbala, got %s", violations[0].Replacement)
	}
	if violations[1].Pattern != "zerbrechen" {
		t.Errorf("expected zerbrechen violation, got %+v", violations[1])
	}
}

func TestCheck_CleanText(t *testing.T) {
	table := Default()
	if got := table.Check("Die Qabbala lehrt Tiqqun."); got != nil {
		t.Errorf("expected no violations, got %+v", got)
	}
	if got := table.Check(""); got != nil {
		t.Errorf("expected no violations for empty text, got %+v", got)
	}
}

func TestCheck_WholeTokenOnly(t *testing.T) {
	table, err := New("", map[model.Category][]model.Rule{
		model.CategoryTerminology: {{Pattern: "Kawana", Replacement: "Qawana"}},
	})
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	if got := table.Check("Kawanas"); got != nil {
		t.Errorf("expected no match inside a longer token, got %+v", got)
	}
}
