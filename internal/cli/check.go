package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	checkGlossary   string
	checkExtensions []string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Report non-canonical terminology in files without rewriting",
	Long: `Check walks a file or directory tree and reports every glossary
violation: which deprecated terms appear, how often, and what the
canonical form is. Nothing is modified.

Example:
  azilut check manuscript.txt
  azilut check ./docs --ext .md,.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkGlossary, "glossary", "", "rule table YAML (default: built-in table)")
	checkCmd.Flags().StringSliceVar(&checkExtensions, "ext", []string{".md", ".txt", ".yaml"}, "file extensions to check in directory mode")
}

func runCheck(cmd *cobra.Command, args []string) error {
	root := args[0]
	table, err := loadTable(checkGlossary)
	if err != nil {
		return err
	}

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}

	filesChecked := 0
	filesWithViolations := 0

	checkOne := func(path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		filesChecked++
		violations := table.Check(string(data))
		if len(violations) == 0 {
			return nil
		}
		filesWithViolations++
		fmt.Printf("%s:\n", path)
		for _, v := range violations {
			fmt.Printf("  %s (%dx) -> %s  [%s]\n", v.Pattern, v.Count, v.Replacement, v.Category)
		}
		return nil
	}

	if !info.IsDir() {
		if err := checkOne(root); err != nil {
			return err
		}
	} else {
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			if !hasExtension(path, checkExtensions) {
				return nil
			}
			return checkOne(path)
		})
		if err != nil {
			return err
		}
	}

	fmt.Printf("\n%d files checked, %d with violations\n", filesChecked, filesWithViolations)
	if filesWithViolations > 0 {
		return fmt.Errorf("%d files use non-canonical terminology", filesWithViolations)
	}
	return nil
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}
