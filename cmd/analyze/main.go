// Command analyze runs seeded Monte-Carlo games on content packs and prints
// how often each tile kind is landed on, how faith is distributed at the end,
// and whether the first seat has an edge.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/path-of-faith/game/config"
	"github.com/wricardo/path-of-faith/game/dice"
	"github.com/wricardo/path-of-faith/game/engine"
)

// SimOptions controls a simulation run.
type SimOptions struct {
	Games    int
	Turns    int // turns per player
	Players  int
	Seed     uint64
	Accuracy float64 // probability of answering a question correctly
}

// Report aggregates the outcome of many simulated games.
type Report struct {
	Pack       string
	Games      int
	Rolls      int
	Rests      int
	Questions  int
	Correct    int
	Landings   map[engine.TileKind]int
	Positions  [engine.BoardSize]int // landed index, before any card move
	FinalFaith []int
	SeatWins   []int
}

// MeanFaith is the average final faith over all players of all games.
func (r *Report) MeanFaith() float64 {
	if len(r.FinalFaith) == 0 {
		return 0
	}
	sum := 0
	for _, f := range r.FinalFaith {
		sum += f
	}
	return float64(sum) / float64(len(r.FinalFaith))
}

// simulate plays opts.Games games of content. Every game uses its own seed
// derived from opts.Seed, so a report is reproducible.
func simulate(content *engine.Content, opts SimOptions) (*Report, error) {
	players := engine.ClampPlayers(opts.Players)
	report := &Report{
		Pack:     content.Name,
		Games:    opts.Games,
		Landings: make(map[engine.TileKind]int),
		SeatWins: make([]int, players),
	}

	for g := 0; g < opts.Games; g++ {
		src := dice.NewSeededSource(opts.Seed + uint64(g))
		roller := dice.NewRoller(src, nil)
		eng, err := engine.NewEngine(content, roller, players)
		if err != nil {
			return nil, err
		}

		for t := 0; t < opts.Turns*players; t++ {
			if err := playTurn(eng, roller, opts.Accuracy, report); err != nil {
				return nil, fmt.Errorf("game %d turn %d: %w", g+1, t+1, err)
			}
		}

		state := eng.GetState()
		for _, p := range state.Players {
			report.FinalFaith = append(report.FinalFaith, p.Faith)
		}
		report.SeatWins[engine.Leader(state.Players)]++
	}
	return report, nil
}

// playTurn rolls for the current player, answers any question and closes
// the turn if it is being held.
func playTurn(eng *engine.GameEngine, roller *dice.Roller, accuracy float64, report *Report) error {
	out, err := eng.RequestRoll(engine.DefaultLang)
	if err != nil {
		return err
	}
	if out.Rested {
		report.Rests++
	} else {
		report.Rolls++
		report.Landings[out.Tile]++
		report.Positions[engine.Wrap(out.From+out.Steps)]++
	}

	if q := eng.GetState().PendingQuestion; q != nil {
		report.Questions++
		correct := float64(roller.Pick(1000)) < accuracy*1000
		if err := answer(eng, q, correct); err != nil {
			return err
		}
		if correct {
			report.Correct++
		}
	}

	if eng.GetState().AwaitingAck {
		return eng.AcknowledgeAndAdvance()
	}
	return nil
}

func answer(eng *engine.GameEngine, q *engine.TriviaQuestion, correct bool) error {
	if eng.GetContent().QuestionStyle == engine.FreeText {
		reply := ""
		if correct {
			reply = strings.Split(q.Answer.PT, "|")[0]
		}
		_, err := eng.SubmitTextAnswer(reply, engine.DefaultLang)
		return err
	}
	option := q.Correct
	if !correct {
		option = (q.Correct + 1) % len(q.Options)
	}
	_, err := eng.SubmitAnswer(option, engine.DefaultLang)
	return err
}

func printReport(w io.Writer, r *Report) {
	fmt.Fprintf(w, "\n=== Analyzing %s ===\n", r.Pack)
	fmt.Fprintf(w, "Games: %d | Rolls: %d | Rests: %d\n", r.Games, r.Rolls, r.Rests)

	fmt.Fprintln(w, "Landings by tile kind:")
	for _, kind := range engine.AllTileKinds {
		n := r.Landings[kind]
		pct := 0.0
		if r.Rolls > 0 {
			pct = 100 * float64(n) / float64(r.Rolls)
		}
		fmt.Fprintf(w, "  %-11s %7d  %5.1f%%\n", kind, n, pct)
	}

	hottest := 0
	for i, n := range r.Positions {
		if n > r.Positions[hottest] {
			hottest = i
		}
	}
	fmt.Fprintf(w, "Most landed position: %d (%d times)\n", hottest, r.Positions[hottest])

	if r.Questions > 0 {
		fmt.Fprintf(w, "Questions: %d asked, %d answered correctly\n", r.Questions, r.Correct)
	}

	if len(r.FinalFaith) > 0 {
		fmt.Fprintf(w, "Final faith: mean %.2f, min %d, max %d\n",
			r.MeanFaith(), slices.Min(r.FinalFaith), slices.Max(r.FinalFaith))
	}

	fmt.Fprint(w, "Leader by seat:")
	for i, wins := range r.SeatWins {
		fmt.Fprintf(w, " %d:%d", i+1, wins)
	}
	fmt.Fprintln(w)

	if r.Rolls > 0 && r.Landings[engine.TileQuestion] == 0 {
		fmt.Fprintln(w, "⚠️  No question tile was ever reached")
	}
}

// run analyzes the named packs, or every available pack when none are named.
func run(ctx context.Context, cmd *cli.Command, w io.Writer) error {
	manager, err := config.NewManager(cmd.String("content-dir"), nil)
	if err != nil {
		return err
	}

	names := cmd.Args().Slice()
	if len(names) == 0 {
		infos, err := manager.ListConfigs()
		if err != nil {
			return err
		}
		for _, info := range infos {
			names = append(names, info.ConfigID)
		}
	}

	opts := SimOptions{
		Games:    cmd.Int("games"),
		Turns:    cmd.Int("turns"),
		Players:  cmd.Int("players"),
		Seed:     cmd.Uint64("seed"),
		Accuracy: cmd.Float("accuracy"),
	}
	if opts.Games <= 0 || opts.Turns <= 0 {
		return fmt.Errorf("games and turns must be positive")
	}

	for _, name := range names {
		content, err := manager.LoadConfig(name)
		if err != nil {
			return err
		}
		report, err := simulate(content, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		printReport(w, report)
	}
	return nil
}

func newCommand(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Simulate games on content packs and report tile and faith statistics",
		ArgsUsage: "[pack...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "content-dir", Usage: "Directory of YAML content packs", Sources: cli.EnvVars("CONTENT_DIR")},
			&cli.IntFlag{Name: "games", Value: 1000, Usage: "Games to simulate per pack"},
			&cli.IntFlag{Name: "turns", Value: 30, Usage: "Turns per player in each game"},
			&cli.IntFlag{Name: "players", Value: 4, Usage: "Players per game (2-6)"},
			&cli.Uint64Flag{Name: "seed", Value: 1, Usage: "Base random seed"},
			&cli.FloatFlag{Name: "accuracy", Value: 0.5, Usage: "Probability of answering a question correctly"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, w)
		},
	}
}

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}
