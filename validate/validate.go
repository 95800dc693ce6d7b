// Command validate checks Path of Faith content pack files. Arguments are
// YAML files or directories of them; with no arguments it scans $CONTENT_DIR,
// or ./configs when unset. For each pack it checks:
//   - YAML structure with no unknown keys
//   - everything the server enforces on load (pattern, decks, question bank)
//   - duplicate question prompts and duplicate options
//   - empty alternatives in free-text answers ("a||b")
//   - board coverage: decks whose tile never appears on the board
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/wricardo/path-of-faith/game/config"
	"github.com/wricardo/path-of-faith/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// Errors make the pack invalid; Info lines describe a valid pack and
// Warnings flag content that loads but is probably a mistake.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
	Info     []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single content pack file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	content, err := config.ParseFile(filePath)
	if err != nil {
		result.fail("%v", err)
		return result
	}

	lintQuestions(content, &result)
	if !result.Valid {
		return result
	}
	checkCoverage(content, &result)

	board := engine.BuildBoard(content.Pattern)
	result.Info = append(result.Info,
		fmt.Sprintf("✓ Name: %s", content.Name),
		fmt.Sprintf("✓ Rules: %s, %s, starting faith %d", content.QuestionStyle, content.AdvancePolicy, content.StartingFaith),
		fmt.Sprintf("✓ Pattern: %d tiles", len(content.Pattern)),
		fmt.Sprintf("✓ Questions: %d", len(content.Questions)),
	)
	for _, kind := range engine.AllTileKinds {
		if n := engine.CountTileKind(board, kind); n > 0 {
			result.Info = append(result.Info, fmt.Sprintf("✓ %s tiles: %d", kind, n))
		}
	}
	return result
}

// lintQuestions reports duplicated prompts and options and malformed
// free-text answers.
func lintQuestions(content *engine.Content, result *ValidationResult) {
	seen := make(map[string]int)
	for i, q := range content.Questions {
		key := lintKey(q.Prompt)
		if first, dup := seen[key]; dup {
			result.fail("question %d duplicates question %d: %q", i+1, first+1, key)
		} else {
			seen[key] = i
		}

		options := make([]string, 0, len(q.Options))
		for _, opt := range q.Options {
			o := lintKey(opt)
			if slices.Contains(options, o) {
				result.fail("question %d has duplicate option %q", i+1, o)
			}
			options = append(options, o)
		}

		if content.QuestionStyle == engine.FreeText {
			for _, answer := range []string{q.Answer.PT, q.Answer.EN} {
				if answer == "" {
					continue
				}
				for _, alt := range strings.Split(answer, "|") {
					if strings.TrimSpace(alt) == "" {
						result.fail("question %d has an empty answer alternative in %q", i+1, answer)
						break
					}
				}
			}
		}

		if q.Prompt.EN == "" {
			result.warn("question %d has no English prompt", i+1)
		}
	}
}

// lintKey is the comparable form of a localized string.
func lintKey(t engine.Text) string {
	s := t.PT
	if s == "" {
		s = t.EN
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// checkCoverage warns about content that can never be drawn because its tile
// kind is not on the board.
func checkCoverage(content *engine.Content, result *ValidationResult) {
	board := engine.BuildBoard(content.Pattern)
	decks := []struct {
		kind  engine.TileKind
		cards []engine.Card
	}{
		{engine.TileBlessing, content.Decks.Blessing},
		{engine.TileObstacle, content.Decks.Obstacle},
		{engine.TileMission, content.Decks.Mission},
		{engine.TileTithe, content.Decks.Tithe},
		{engine.TileTemptation, content.Decks.Temptation},
	}
	for _, d := range decks {
		if len(d.cards) > 0 && engine.CountTileKind(board, d.kind) == 0 {
			result.warn("%s deck has %d cards but no %s tile is on the board", d.kind, len(d.cards), d.kind)
		}
	}
	if len(content.Questions) > 0 && engine.CountTileKind(board, engine.TileQuestion) == 0 {
		result.warn("%d questions but no question tile is on the board", len(content.Questions))
	}
}

// collectFiles expands directories into their .yaml and .yml files.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(arg, pattern))
			if err != nil {
				return nil, err
			}
			files = append(files, matches...)
		}
	}
	slices.Sort(files)
	return files, nil
}

// main validates each pack, printing a concise report and exiting with
// non-zero status if any are invalid.
func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		dir := os.Getenv("CONTENT_DIR")
		if dir == "" {
			dir = "configs"
		}
		args = []string{dir}
	}

	files, err := collectFiles(args)
	if err != nil {
		fmt.Printf("Error finding content packs: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Println("No content packs found")
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Info {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
		for _, w := range result.Warnings {
			fmt.Println("  ⚠️  " + w)
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All content packs are valid!")
	} else {
		fmt.Println("❌ Some content packs have errors")
		os.Exit(1)
	}
}
