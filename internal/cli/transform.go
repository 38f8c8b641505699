package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezchajim/azilut/internal/glossary"
	"github.com/ezchajim/azilut/internal/model"
)

var (
	transformGlossary string
	transformFile     string
	transformJSON     bool
	transformStats    bool
)

// transformCmd represents the transform command
var transformCmd = &cobra.Command{
	Use:   "transform [text]",
	Short: "Rewrite text to canonical terminology with a change audit",
	Long: `Transform rewrites text against the glossary rule table: terminology
repairs first, then lexical repairs, then transliterations. Every change
is reported with its category, position in the rewritten text, and a
context snippet.

Example:
  azilut transform "Die Kabbala lehrt Tikkun"
  azilut transform --file manuscript.txt
  azilut transform --glossary rules.yaml --json "Kawana zerbrechen"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTransform,
}

func init() {
	rootCmd.AddCommand(transformCmd)

	transformCmd.Flags().StringVar(&transformGlossary, "glossary", "", "rule table YAML (default: built-in table)")
	transformCmd.Flags().StringVar(&transformFile, "file", "", "read input text from file instead of argument")
	transformCmd.Flags().BoolVar(&transformJSON, "json", false, "emit rewritten text and changes as JSON")
	transformCmd.Flags().BoolVar(&transformStats, "stats", false, "print aggregate statistics")
}

func runTransform(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}

	table, err := loadTable(transformGlossary)
	if err != nil {
		return err
	}

	normalizer := glossary.NewNormalizer(table)
	var stats glossary.Stats
	rewritten, changes := normalizer.NormalizeWithStats(text, &stats)

	if transformJSON {
		return json.NewEncoder(os.Stdout).Encode(struct {
			Rewritten string               `json:"rewritten"`
			Changes   []model.ChangeRecord `json:"changes"`
		}{rewritten, changes})
	}

	fmt.Println(rewritten)
	if len(changes) > 0 {
		fmt.Fprintf(os.Stderr, "\n%d changes:\n", len(changes))
		for _, change := range changes {
			fmt.Fprintf(os.Stderr, "  [%s] %s -> %s @%d\n", change.Category, change.Original, change.Replacement, change.Position)
		}
	}
	if transformStats {
		normalized, replacements := stats.Snapshot()
		fmt.Fprintf(os.Stderr, "\ntexts normalized: %d, terms replaced: %d\n", normalized, replacements)
	}
	return nil
}

func readInput(args []string) (string, error) {
	if transformFile != "" {
		data, err := os.ReadFile(transformFile)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 1 {
		return args[0], nil
	}
	return "", fmt.Errorf("provide text as an argument or via --file")
}
