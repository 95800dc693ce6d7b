package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wricardo/path-of-faith/game/dice"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game lifecycle
	Initialize(playerCount int, names ...string) *GameState
	Reset() *GameState
	GetState() *GameState
	SetState(state *GameState) error

	// Turn intents
	RequestRoll(lang Lang) (*RollOutcome, error)
	SubmitAnswer(option int, lang Lang) (*AnswerOutcome, error)
	SubmitTextAnswer(reply string, lang Lang) (*AnswerOutcome, error)
	AcknowledgeAndAdvance() error

	// Queries
	CurrentPlayer() *Player
	CanRoll() bool
	GetBoard() Board
	GetContent() *Content
	GetHistory() []TurnRecord
	GetLastRecord() *TurnRecord
}

// GameEngine implements the Engine interface. It is not safe for concurrent
// use; callers serialize access.
type GameEngine struct {
	state   *GameState
	content *Content
	board   Board
	roller  *dice.Roller
	now     func() time.Time
}

// NewEngine creates a game engine for content with playerCount players. A nil
// roller draws from crypto/rand.
func NewEngine(content *Content, roller *dice.Roller, playerCount int, names ...string) (*GameEngine, error) {
	if err := ValidateContent(content); err != nil {
		return nil, err
	}
	if roller == nil {
		roller = dice.NewRoller(dice.NewCryptoSource(), nil)
	}

	e := &GameEngine{
		content: content,
		board:   BuildBoard(content.Pattern),
		roller:  roller,
		now:     time.Now,
	}
	e.Initialize(playerCount, names...)
	return e, nil
}

// NewEngineWithDefaults creates a two-player engine with the classic content
func NewEngineWithDefaults() *GameEngine {
	e, err := NewEngine(DefaultContent(), nil, MinPlayers)
	if err != nil {
		panic("engine: default content is invalid: " + err.Error())
	}
	return e
}

// Initialize starts a new game, replacing every player. playerCount is clamped
// to [MinPlayers, MaxPlayers]; blank or missing names default to "Player N".
func (e *GameEngine) Initialize(playerCount int, names ...string) *GameState {
	n := ClampPlayers(playerCount)
	palette := e.content.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	players := make([]Player, n)
	for i := range players {
		name := fmt.Sprintf("Player %d", i+1)
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		players[i] = Player{
			ID:       uuid.NewString(),
			Name:     name,
			Position: 0,
			Faith:    e.content.StartingFaith,
			Color:    palette[i%len(palette)],
		}
	}

	var history []TurnRecord
	total := 0
	if e.state != nil {
		history = e.state.History
		total = e.state.TotalActions
	}

	e.state = &GameState{
		Players:       players,
		Current:       0,
		Round:         1,
		ConfigName:    e.content.Name,
		QuestionStyle: e.content.QuestionStyle,
		AdvancePolicy: e.content.AdvancePolicy,
		History:       history,
		TotalActions:  total,
	}
	if e.state.History == nil {
		e.state.History = []TurnRecord{}
	}
	return e.state
}

// Reset starts a new game with the same seats and names. The cumulative
// history is kept.
func (e *GameEngine) Reset() *GameState {
	names := make([]string, len(e.state.Players))
	for i, p := range e.state.Players {
		names[i] = p.Name
	}
	return e.Initialize(len(names), names...)
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState replaces the game state, e.g. when a host application restores a
// saved game.
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if len(state.Players) < MinPlayers || len(state.Players) > MaxPlayers {
		return fmt.Errorf("state must have between %d and %d players, got %d", MinPlayers, MaxPlayers, len(state.Players))
	}
	if state.Current < 0 || state.Current >= len(state.Players) {
		return fmt.Errorf("current player index %d out of range", state.Current)
	}
	if q := state.PendingQuestion; q != nil {
		if err := checkAnswerable(*q, e.content.QuestionStyle); err != nil {
			return fmt.Errorf("pending question %w", err)
		}
	}
	for i := range state.Players {
		state.Players[i].Position = Wrap(state.Players[i].Position)
	}
	e.state = state
	return nil
}

// CurrentPlayer returns the player whose turn it is.
func (e *GameEngine) CurrentPlayer() *Player {
	return e.state.CurrentPlayer()
}

// CanRoll reports whether RequestRoll would be accepted.
func (e *GameEngine) CanRoll() bool {
	return e.state.PendingQuestion == nil && !e.state.AwaitingAck
}

// GetBoard returns a copy of the board.
func (e *GameEngine) GetBoard() Board {
	return e.board
}

// GetContent returns the content pack the engine was built with.
func (e *GameEngine) GetContent() *Content {
	return e.content
}

// GetHistory returns the complete action history
func (e *GameEngine) GetHistory() []TurnRecord {
	return e.state.History
}

// GetLastRecord returns the last recorded action, or nil if none
func (e *GameEngine) GetLastRecord() *TurnRecord {
	if len(e.state.History) == 0 {
		return nil
	}
	return &e.state.History[len(e.state.History)-1]
}

// RequestRoll plays the current player's turn. A player with pending skip
// turns rests instead of rolling; otherwise two dice move the player and the
// landed tile is resolved.
func (e *GameEngine) RequestRoll(lang Lang) (*RollOutcome, error) {
	s := e.state
	if s.PendingQuestion != nil {
		return nil, ErrQuestionPending
	}
	if s.AwaitingAck {
		return nil, ErrAwaitingAcknowledgement
	}

	p := s.CurrentPlayer()
	faithBefore := p.Faith
	out := &RollOutcome{
		PlayerID: p.ID,
		From:     p.Position,
		Events:   []string{},
	}
	rec := TurnRecord{
		PlayerID:    p.ID,
		PlayerName:  p.Name,
		From:        p.Position,
		FaithBefore: faithBefore,
	}

	if p.SkipTurns > 0 {
		p.SkipTurns--
		p.Faith += SabbathBonus
		out.Rested = true
		out.Tile = e.board.At(p.Position)
		out.Events = append(out.Events, msgRest.In(lang))
		rec.Action = ActionRest
	} else {
		roll := e.roller.Roll(DiceCount, DieSides)
		out.Dice = roll.Dice
		out.Steps = roll.Total()
		p.MovePlayer(out.Steps)
		out.Events = append(out.Events, localize(msgRolled, lang, out.Steps))
		e.resolveTile(p, out, lang)
		rec.Action = ActionRoll
		rec.Dice = roll.Dice
	}

	out.To = p.Position
	out.FaithDelta = p.Faith - faithBefore
	rec.To = p.Position
	rec.Tile = out.Tile
	rec.FaithAfter = p.Faith
	s.addRecord(rec, e.now())
	e.setEvents(out.Events)

	if s.PendingQuestion == nil && s.AdvancePolicy == AdvanceImmediate {
		e.advance()
		out.Advanced = true
	} else {
		s.AwaitingAck = true
	}
	return out, nil
}

// SubmitAnswer scores the chosen option of the pending multiple-choice
// question. The turn does not advance.
func (e *GameEngine) SubmitAnswer(option int, lang Lang) (*AnswerOutcome, error) {
	q, err := e.pendingQuestion(MultipleChoice)
	if err != nil {
		return nil, err
	}
	if option < 0 || option >= len(q.Options) {
		return nil, ErrInvalidOption
	}
	return e.scoreAnswer(option == q.Correct, q.Options[q.Correct].In(lang), lang), nil
}

// SubmitTextAnswer scores a free-text reply to the pending question. Matching
// ignores case, accents and punctuation. The turn does not advance.
func (e *GameEngine) SubmitTextAnswer(reply string, lang Lang) (*AnswerOutcome, error) {
	q, err := e.pendingQuestion(FreeText)
	if err != nil {
		return nil, err
	}
	return e.scoreAnswer(MatchesAnswer(reply, q.Answer), displayAnswer(q.Answer, lang), lang), nil
}

func (e *GameEngine) pendingQuestion(style QuestionStyle) (*TriviaQuestion, error) {
	if e.state.PendingQuestion == nil {
		return nil, ErrNoPendingQuestion
	}
	if e.content.QuestionStyle != style {
		return nil, ErrWrongQuestionStyle
	}
	return e.state.PendingQuestion, nil
}

func (e *GameEngine) scoreAnswer(correct bool, expected string, lang Lang) *AnswerOutcome {
	s := e.state
	p := s.CurrentPlayer()
	faithBefore := p.Faith

	out := &AnswerOutcome{PlayerID: p.ID, Correct: correct, Expected: expected}
	if correct {
		p.Faith += CorrectAnswerBonus
		out.Events = []string{msgCorrect.In(lang)}
	} else {
		p.Faith += WrongAnswerPenalty
		out.Events = []string{localize(msgWrong, lang, expected)}
	}
	out.FaithDelta = p.Faith - faithBefore

	s.PendingQuestion = nil
	s.addRecord(TurnRecord{
		Action:      ActionAnswer,
		PlayerID:    p.ID,
		PlayerName:  p.Name,
		From:        p.Position,
		To:          p.Position,
		Tile:        e.board.At(p.Position),
		FaithBefore: faithBefore,
		FaithAfter:  p.Faith,
		Correct:     &correct,
	}, e.now())
	e.setEvents(out.Events)
	return out
}

// AcknowledgeAndAdvance closes a held turn: it clears the event message and
// any unanswered question, then passes the turn to the next player. Returns
// ErrNothingToAcknowledge when no turn is being held.
func (e *GameEngine) AcknowledgeAndAdvance() error {
	s := e.state
	if !s.AwaitingAck && s.PendingQuestion == nil {
		return ErrNothingToAcknowledge
	}
	p := s.CurrentPlayer()
	s.addRecord(TurnRecord{
		Action:      ActionAdvance,
		PlayerID:    p.ID,
		PlayerName:  p.Name,
		From:        p.Position,
		To:          p.Position,
		FaithBefore: p.Faith,
		FaithAfter:  p.Faith,
	}, e.now())

	s.PendingQuestion = nil
	e.setEvents(nil)
	e.advance()
	return nil
}

// advance moves the turn pointer to the next seat.
func (e *GameEngine) advance() {
	s := e.state
	s.AwaitingAck = false
	s.Current = (s.Current + 1) % len(s.Players)
	s.TurnsPlayed++
	if s.Current == 0 {
		s.Round++
	}
}

func (e *GameEngine) setEvents(events []string) {
	e.state.Events = events
	e.state.Message = ""
	if len(events) > 0 {
		e.state.Message = events[len(events)-1]
	}
}
