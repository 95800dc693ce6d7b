package engine

import "time"

// MovePlayer advances a player by steps around the ring.
func (p *Player) MovePlayer(steps int) {
	p.Position = Wrap(p.Position + steps)
}

// applyCard applies a card's optional deltas to p.
func (p *Player) applyCard(c Card) {
	if c.Points != nil {
		p.Faith += *c.Points
	}
	if c.Move != nil {
		p.MovePlayer(*c.Move)
	}
}

// resolveTile applies the rule of the tile p is standing on and records what
// happened in out. It may open a pending question on the state.
func (e *GameEngine) resolveTile(p *Player, out *RollOutcome, lang Lang) {
	kind := e.board.At(p.Position)
	out.Tile = kind

	switch kind {
	case TileBlessing:
		e.drawCard(p, out, e.content.Decks.Blessing, lang)
	case TileObstacle:
		e.drawCard(p, out, e.content.Decks.Obstacle, lang)
	case TileMission:
		e.drawCard(p, out, e.content.Decks.Mission, lang)
	case TileTithe:
		e.drawCard(p, out, e.content.Decks.Tithe, lang)
	case TileTemptation:
		e.drawCard(p, out, e.content.Decks.Temptation, lang)

	case TileSabbath:
		p.SkipTurns++
		p.Faith += SabbathBonus
		out.Events = append(out.Events, msgSabbath.In(lang))

	case TileQuestion:
		if len(e.content.Questions) == 0 {
			return
		}
		q := e.content.Questions[e.roller.Pick(len(e.content.Questions))]
		e.state.PendingQuestion = &q
		out.Question = &q
		out.Events = append(out.Events, localize(msgQuestion, lang, q.Prompt.In(lang)))

	case TileChallenge:
		out.Events = append(out.Events, msgChallenge.In(lang))

	default:
		// start: no effect
	}
}

func (e *GameEngine) drawCard(p *Player, out *RollOutcome, deck []Card, lang Lang) {
	if len(deck) == 0 {
		return
	}
	c := deck[e.roller.Pick(len(deck))]
	p.applyCard(c)
	out.Card = &c
	out.Events = append(out.Events, c.In(lang))
}

// addRecord appends an action to the game's history
func (gs *GameState) addRecord(rec TurnRecord, now time.Time) {
	rec.Seq = gs.TotalActions + 1
	rec.Round = gs.Round
	rec.Timestamp = now.Unix()
	gs.History = append(gs.History, rec)
	gs.TotalActions++
}
