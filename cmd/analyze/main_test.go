package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/path-of-faith/game/config"
	"github.com/wricardo/path-of-faith/game/engine"
)

func loadPack(t *testing.T, name string) *engine.Content {
	t.Helper()
	manager, err := config.NewManager("", nil)
	require.NoError(t, err)
	content, err := manager.LoadConfig(name)
	require.NoError(t, err)
	return content
}

func TestSimulate_Reproducible(t *testing.T) {
	content := engine.DefaultContent()
	opts := SimOptions{Games: 20, Turns: 10, Players: 3, Seed: 99, Accuracy: 0.5}

	first, err := simulate(content, opts)
	require.NoError(t, err)
	second, err := simulate(content, opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSimulate_PositionsMatchLandedTiles(t *testing.T) {
	content := engine.DefaultContent()
	content.Decks.Obstacle = []engine.Card{
		{Text: engine.Text{PT: "Tropeço: volta 2.", EN: "Stumble: move back 2."}, Move: intPtr(-2)},
	}
	report, err := simulate(content, SimOptions{Games: 30, Turns: 20, Players: 2, Seed: 5, Accuracy: 0.5})
	require.NoError(t, err)
	require.Positive(t, report.Landings[engine.TileObstacle])

	board := engine.BuildBoard(content.Pattern)
	byKind := make(map[engine.TileKind]int)
	for i, n := range report.Positions {
		byKind[board.At(i)] += n
	}
	for _, kind := range engine.AllTileKinds {
		assert.Equal(t, report.Landings[kind], byKind[kind], "landings on %s", kind)
	}
}

func intPtr(v int) *int { return &v }

func TestSimulate_Totals(t *testing.T) {
	content := engine.DefaultContent()
	opts := SimOptions{Games: 50, Turns: 20, Players: 4, Seed: 1, Accuracy: 1}

	report, err := simulate(content, opts)
	require.NoError(t, err)

	assert.Equal(t, opts.Games*opts.Turns*opts.Players, report.Rolls+report.Rests, "every turn is a roll or a rest")

	landings := 0
	for _, n := range report.Landings {
		landings += n
	}
	assert.Equal(t, report.Rolls, landings)

	positions := 0
	for _, n := range report.Positions {
		positions += n
	}
	assert.Equal(t, report.Rolls, positions)

	assert.Len(t, report.FinalFaith, opts.Games*opts.Players)
	wins := 0
	for _, w := range report.SeatWins {
		wins += w
	}
	assert.Equal(t, opts.Games, wins)

	assert.Positive(t, report.Questions)
	assert.Equal(t, report.Questions, report.Correct, "accuracy 1 answers every question correctly")
}

func TestSimulate_NeverCorrect(t *testing.T) {
	report, err := simulate(engine.DefaultContent(), SimOptions{Games: 10, Turns: 10, Players: 2, Seed: 5, Accuracy: 0})
	require.NoError(t, err)
	assert.Zero(t, report.Correct)
}

func TestSimulate_FreeTextAcknowledgePack(t *testing.T) {
	content := loadPack(t, "heritage")
	require.Equal(t, engine.FreeText, content.QuestionStyle)

	report, err := simulate(content, SimOptions{Games: 10, Turns: 15, Players: 2, Seed: 3, Accuracy: 1})
	require.NoError(t, err)

	assert.Positive(t, report.Questions)
	assert.Equal(t, report.Questions, report.Correct)
}

func TestReport_MeanFaith(t *testing.T) {
	assert.Zero(t, (&Report{}).MeanFaith())
	assert.InDelta(t, 2.5, (&Report{FinalFaith: []int{1, 2, 3, 4}}).MeanFaith(), 1e-9)
}

func TestPrintReport(t *testing.T) {
	report, err := simulate(engine.DefaultContent(), SimOptions{Games: 5, Turns: 5, Players: 2, Seed: 1, Accuracy: 0.5})
	require.NoError(t, err)

	var buf bytes.Buffer
	printReport(&buf, report)
	out := buf.String()

	assert.Contains(t, out, "=== Analyzing classic ===")
	assert.Contains(t, out, "Landings by tile kind:")
	assert.Contains(t, out, "Final faith: mean")
	assert.Contains(t, out, "Leader by seat: 1:")
}

func TestCommand_Run(t *testing.T) {
	dir := t.TempDir()
	pack := "name: Tiny\npattern: [start, challenge, sabbath]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiny.yaml"), []byte(pack), 0o644))

	var buf bytes.Buffer
	err := newCommand(&buf).Run(context.Background(), []string{"analyze", "--content-dir", dir, "--games", "3", "--turns", "5", "tiny", "classic"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "=== Analyzing Tiny ===")
	assert.Contains(t, out, "=== Analyzing classic ===")
	assert.Contains(t, out, "No question tile was ever reached")
}

func TestCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown pack", args: []string{"analyze", "--games", "1", "nope"}},
		{name: "zero games", args: []string{"analyze", "--games", "0"}},
		{name: "missing content dir", args: []string{"analyze", "--content-dir", "/non/existent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Error(t, newCommand(&buf).Run(context.Background(), tt.args))
		})
	}
}
