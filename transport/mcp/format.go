package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/path-of-faith/game/engine"
	"github.com/wricardo/path-of-faith/game/service"
)

const instructions = `Path of Faith - Complete Instructions

GAME OBJECTIVE:
Walk the 40-tile path collecting faith points. Every player starts at the
START tile with 3 faith. There is no end condition: play as many rounds as you
like and compare faith.

TURN FLOW:
1. roll_dice plays the current player's turn.
   - If the player has rest turns pending, they rest instead: one rest turn is
     used up, they gain 2 faith and the turn passes. No dice are rolled.
   - Otherwise two six-sided dice are rolled and the player moves forward by
     the sum, wrapping around the board.
2. The tile landed on is resolved (see TILES).
3. On a question tile the turn stays with the player until they answer with
   answer_question (multiple choice) or answer_text (free text).
4. Packs with the "acknowledge" advance policy hold every turn until
   next_turn is called. With the "immediate" policy the turn passes by itself
   after non-question tiles; after a question call next_turn.

TILES:
- start: nothing happens
- question: Bible trivia. Correct answer +2 faith, wrong answer -1 faith
- challenge: a group challenge; no effect on faith
- blessing: draw a blessing card (gain faith, sometimes move)
- obstacle: draw an obstacle card (lose faith, sometimes move back)
- sabbath: rest; +2 faith now and the next turn is skipped (with another +2)
- tithe: give the tithe, -1 faith
- mission: a mission is fulfilled, +1 faith
- temptation: yield to temptation, -1 faith

Faith can go negative. Card moves are applied without resolving the new tile.

TIPS:
- Check game_state before acting: a pending question blocks rolling.
- describe_tile tells you what any board position does.
- Multiple-choice options are zero-based: the first option is 0.`

// tileLetters is the one-character board notation used in state summaries.
var tileLetters = map[engine.TileKind]string{
	engine.TileStart:      "S",
	engine.TileQuestion:   "Q",
	engine.TileChallenge:  "C",
	engine.TileBlessing:   "B",
	engine.TileObstacle:   "O",
	engine.TileSabbath:    "R",
	engine.TileTithe:      "T",
	engine.TileMission:    "M",
	engine.TileTemptation: "X",
}

func tileEffect(kind engine.TileKind) string {
	switch kind {
	case engine.TileStart:
		return "Nothing happens."
	case engine.TileQuestion:
		return fmt.Sprintf("Bible trivia: correct answer %+d faith, wrong answer %d faith. The turn waits for the answer.",
			engine.CorrectAnswerBonus, engine.WrongAnswerPenalty)
	case engine.TileChallenge:
		return "A group challenge. No effect on faith."
	case engine.TileBlessing:
		return "Draw a blessing card: gain faith and sometimes move forward."
	case engine.TileObstacle:
		return "Draw an obstacle card: lose faith and sometimes move back."
	case engine.TileSabbath:
		return fmt.Sprintf("Rest: %+d faith now and the next turn is skipped with another %+d.",
			engine.SabbathBonus, engine.SabbathBonus)
	case engine.TileTithe:
		return "Give the tithe: -1 faith."
	case engine.TileMission:
		return "Fulfil a mission: +1 faith."
	case engine.TileTemptation:
		return "Yield to temptation: -1 faith."
	default:
		return "Unknown tile."
	}
}

func formatSessionInfo(session *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\nConfig: %s\nCreated: %s\n",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"))
	if len(session.Board) > 0 {
		b.WriteString("\n" + formatBoard(session.Board, session.GameState))
	}
	b.WriteString("\n" + formatGameState(session.GameState))
	return b.String()
}

// formatBoard renders the board as a letter strip with a legend and the
// players' positions underneath.
func formatBoard(board []engine.TileKind, state *engine.GameState) string {
	var b strings.Builder
	b.WriteString("Board: ")
	for _, kind := range board {
		letter, ok := tileLetters[kind]
		if !ok {
			letter = "?"
		}
		b.WriteString(letter)
	}
	b.WriteString("\nLegend: S start, Q question, C challenge, B blessing, O obstacle, R sabbath, T tithe, M mission, X temptation\n")
	if state != nil {
		for i, p := range state.Players {
			fmt.Fprintf(&b, "       %s^ %d %s\n", strings.Repeat(" ", p.Position), i+1, p.Name)
		}
	}
	return b.String()
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Config: %s | Round: %d | Turns played: %d\n\n",
		state.ConfigName, state.Round, state.TurnsPlayed)

	leader := engine.Leader(state.Players)
	for i, p := range state.Players {
		marker := "  "
		if i == state.Current {
			marker = "> "
		}
		fmt.Fprintf(&result, "%s%s [%s] position %d, faith %d", marker, p.Name, p.ID, p.Position, p.Faith)
		if p.SkipTurns > 0 {
			fmt.Fprintf(&result, ", resting %d", p.SkipTurns)
		}
		if i == leader {
			result.WriteString(" (leader)")
		}
		result.WriteString("\n")
	}

	if q := state.PendingQuestion; q != nil {
		result.WriteString("\nPending question: " + q.Prompt.In(engine.LangEN) + "\n")
		if len(q.Options) > 0 {
			for i, opt := range q.Options {
				fmt.Fprintf(&result, "  %d. %s\n", i, opt.In(engine.LangEN))
			}
			result.WriteString("Answer with answer_question.\n")
		} else {
			result.WriteString("Answer with answer_text.\n")
		}
	} else if state.AwaitingAck {
		result.WriteString("\nWaiting for next_turn.\n")
	}

	if state.Message != "" {
		fmt.Fprintf(&result, "\nMessage: %s", state.Message)
	}

	return result.String()
}

func formatRollResult(result *service.RollResult) string {
	var b strings.Builder
	if r := result.Roll; r != nil {
		if r.Rested {
			fmt.Fprintf(&b, "Player %s rested (faith %+d).\n", r.PlayerID, r.FaithDelta)
		} else {
			fmt.Fprintf(&b, "Player %s rolled %v: %d -> %d (%s), faith %+d\n",
				r.PlayerID, r.Dice, r.From, r.To, r.Tile, r.FaithDelta)
		}
	}
	for _, e := range result.Events {
		fmt.Fprintf(&b, "- [%s] %s\n", e.Type, e.Message)
	}
	b.WriteString("\n" + formatGameState(result.GameState))
	return b.String()
}

func formatAnswerResult(result *service.AnswerResult) string {
	var b strings.Builder
	if a := result.Answer; a != nil {
		verdict := "Wrong"
		if a.Correct {
			verdict = "Correct"
		}
		fmt.Fprintf(&b, "%s! Faith %+d. Expected: %s\n", verdict, a.FaithDelta, a.Expected)
	}
	for _, e := range result.Events {
		fmt.Fprintf(&b, "- [%s] %s\n", e.Type, e.Message)
	}
	b.WriteString("\n" + formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Turn History (Page %d/%d), total actions: %d\n\n",
		history.Page, history.TotalPages, history.TotalTurns)

	for _, t := range history.Turns {
		fmt.Fprintf(&b, "#%d round %d %s %s", t.Seq, t.Round, t.PlayerName, t.Action)
		switch t.Action {
		case engine.ActionRoll:
			fmt.Fprintf(&b, " %v %d->%d %s", t.Dice, t.From, t.To, t.Tile)
		case engine.ActionAnswer:
			if t.Correct != nil && *t.Correct {
				b.WriteString(" correct")
			} else {
				b.WriteString(" wrong")
			}
		}
		fmt.Fprintf(&b, " [faith %d -> %d]\n", t.FaithBefore, t.FaithAfter)
	}

	return b.String()
}
