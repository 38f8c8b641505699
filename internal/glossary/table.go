package glossary

import (
	"fmt"
	"os"
	"regexp"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/ezchajim/azilut/internal/model"
)

// ConfigurationError reports a rule source that is missing or malformed.
// It is fatal at startup: the system must not run with a partially loaded
// table.
type ConfigurationError struct {
	Path   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("glossary configuration: %s", e.Reason)
	}
	return fmt.Sprintf("glossary configuration %s: %s", e.Path, e.Reason)
}

// compiledRule is a rule with its whole-token matcher precompiled.
type compiledRule struct {
	rule model.Rule
	re   *regexp.Regexp
}

// categoryRules holds one category's rules in declared order.
type categoryRules struct {
	category model.Category
	rules    []compiledRule
}

// Table is the ordered, immutable rule collection. Categories are applied
// in the fixed order model.Categories declares; within a category, rules
// keep their declared order. Safe for concurrent use after construction.
type Table struct {
	version    string
	categories []categoryRules
}

// tableFile mirrors the on-disk YAML layout. Categories are a list so the
// declared rule order survives parsing.
type tableFile struct {
	Version    string `yaml:"version"`
	Categories []struct {
		Name  string       `yaml:"name"`
		Rules []model.Rule `yaml:"rules"`
	} `yaml:"categories"`
}

// Load reads and validates a rule table from a YAML file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Path: path, Reason: err.Error()}
	}

	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &ConfigurationError{Path: path, Reason: fmt.Sprintf("parse: %v", err)}
	}

	byCategory := make(map[model.Category][]model.Rule)
	for _, c := range file.Categories {
		cat := model.Category(c.Name)
		if !cat.Valid() {
			return nil, &ConfigurationError{Path: path, Reason: fmt.Sprintf("unknown category %q", c.Name)}
		}
		if _, dup := byCategory[cat]; dup {
			return nil, &ConfigurationError{Path: path, Reason: fmt.Sprintf("category %q declared twice", c.Name)}
		}
		byCategory[cat] = c.Rules
	}

	table, err := build(file.Version, byCategory)
	if err != nil {
		if cfgErr, ok := err.(*ConfigurationError); ok {
			cfgErr.Path = path
		}
		return nil, err
	}
	return table, nil
}

// build validates rules and compiles matchers, ordering categories into
// their fixed application order.
func build(version string, byCategory map[model.Category][]model.Rule) (*Table, error) {
	table := &Table{version: version}
	for _, cat := range model.Categories() {
		rules, ok := byCategory[cat]
		if !ok {
			continue
		}
		compiled := categoryRules{category: cat}
		seen := make(map[string]bool, len(rules))
		for _, r := range rules {
			if r.Pattern == "" {
				return nil, &ConfigurationError{Reason: fmt.Sprintf("category %q: empty pattern", cat)}
			}
			if r.Replacement == "" {
				return nil, &ConfigurationError{Reason: fmt.Sprintf("category %q: pattern %q has empty replacement", cat, r.Pattern)}
			}
			// Within one category each source token maps to exactly
			// one replacement.
			if seen[r.Pattern] {
				return nil, &ConfigurationError{Reason: fmt.Sprintf("category %q: duplicate pattern %q", cat, r.Pattern)}
			}
			seen[r.Pattern] = true
			compiled.rules = append(compiled.rules, compiledRule{rule: r, re: compilePattern(r.Pattern)})
		}
		table.categories = append(table.categories, compiled)
	}
	return table, nil
}

// compilePattern builds a whole-token matcher for a literal pattern.
// Word boundaries are only asserted on sides whose edge rune is an ASCII
// word character; RE2's \b cannot anchor against Hebrew or other
// non-ASCII script.
func compilePattern(pattern string) *regexp.Regexp {
	expr := regexp.QuoteMeta(pattern)
	first, _ := utf8.DecodeRuneInString(pattern)
	last, _ := utf8.DecodeLastRuneInString(pattern)
	if isASCIIWord(first) {
		expr = `\b` + expr
	}
	if isASCIIWord(last) {
		expr += `\b`
	}
	return regexp.MustCompile(expr)
}

func isASCIIWord(r rune) bool {
	return r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
}

// Version returns the declared rule table version, if any.
func (t *Table) Version() string { return t.version }

// Len returns the total number of rules across all categories.
func (t *Table) Len() int {
	n := 0
	for _, c := range t.categories {
		n += len(c.rules)
	}
	return n
}

// Violation reports a non-canonical term found by Check.
type Violation struct {
	Category    model.Category `json:"category"`
	Pattern     string         `json:"pattern"`
	Replacement string         `json:"replacement"`
	Count       int            `json:"count"`
}

// Check scans text for rule matches without rewriting anything, returning
// one violation per matching rule in category then rule order.
func (t *Table) Check(text string) []Violation {
	if text == "" {
		return nil
	}
	var violations []Violation
	for _, cat := range t.categories {
		for _, cr := range cat.rules {
			if n := len(cr.re.FindAllStringIndex(text, -1)); n > 0 {
				violations = append(violations, Violation{
					Category:    cat.category,
					Pattern:     cr.rule.Pattern,
					Replacement: cr.rule.Replacement,
					Count:       n,
				})
			}
		}
	}
	return violations
}
