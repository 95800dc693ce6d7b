package engine

import "slices"

// TileKind is the category of a board position; it selects the resolution rule
// applied when a player lands there.
type TileKind string

const (
	TileStart      TileKind = "start"
	TileQuestion   TileKind = "question"
	TileChallenge  TileKind = "challenge"
	TileBlessing   TileKind = "blessing"
	TileObstacle   TileKind = "obstacle"
	TileSabbath    TileKind = "sabbath"
	TileTithe      TileKind = "tithe"
	TileMission    TileKind = "mission"
	TileTemptation TileKind = "temptation"

	// Game constants
	BoardSize            = 40
	MinPlayers           = 2
	MaxPlayers           = 6
	DefaultStartingFaith = 3
	DiceCount            = 2
	DieSides             = 6
	SabbathBonus         = 2
	CorrectAnswerBonus   = 2
	WrongAnswerPenalty   = -1
	MissionPoints        = 1
	TithePoints          = -1
	TemptationPoints     = -1
	OptionsPerQuestion   = 3
)

// AllTileKinds lists every tile kind in board-legend order.
var AllTileKinds = []TileKind{
	TileStart, TileQuestion, TileChallenge, TileBlessing, TileObstacle,
	TileSabbath, TileTithe, TileMission, TileTemptation,
}

// QuestionStyle selects how trivia questions are asked and answered.
type QuestionStyle string

const (
	MultipleChoice QuestionStyle = "multiple_choice"
	FreeText       QuestionStyle = "free_text"
)

// AdvancePolicy decides when the turn pointer moves after a roll.
type AdvancePolicy string

const (
	// AdvanceImmediate passes the turn inside RequestRoll unless a question
	// was opened.
	AdvanceImmediate AdvancePolicy = "immediate"
	// AdvanceOnAcknowledge holds every turn until AcknowledgeAndAdvance.
	AdvanceOnAcknowledge AdvancePolicy = "acknowledge"
)

// Text is a string localized in both supported languages.
type Text struct {
	PT string `json:"pt" yaml:"pt"`
	EN string `json:"en" yaml:"en"`
}

// In returns the text for lang, falling back to Portuguese when the
// English string is missing.
func (t Text) In(lang Lang) string {
	if lang == LangEN && t.EN != "" {
		return t.EN
	}
	return t.PT
}

// Card is a flavor record drawn from a deck. Points and Move are optional.
type Card struct {
	Text   `yaml:",inline"`
	Points *int `json:"points,omitempty" yaml:"points,omitempty"`
	Move   *int `json:"move,omitempty" yaml:"move,omitempty"`
}

// TriviaQuestion is either a multiple-choice record (Options + Correct) or a
// free-text pair (Answer). Answers are never serialized to clients.
type TriviaQuestion struct {
	Prompt  Text   `json:"prompt" yaml:"prompt"`
	Options []Text `json:"options,omitempty" yaml:"options,omitempty"`
	Correct int    `json:"-" yaml:"correct"`
	Answer  Text   `json:"-" yaml:"answer,omitempty"`
}

// Decks groups the card decks drawn by tile resolution.
type Decks struct {
	Blessing   []Card `json:"blessing" yaml:"blessing"`
	Obstacle   []Card `json:"obstacle" yaml:"obstacle"`
	Mission    []Card `json:"mission" yaml:"mission"`
	Tithe      []Card `json:"tithe" yaml:"tithe"`
	Temptation []Card `json:"temptation" yaml:"temptation"`
}

// Content is a complete content pack: board pattern, rules policies, decks
// and the question bank.
type Content struct {
	Name          string           `json:"name" yaml:"name"`
	Description   string           `json:"description" yaml:"description"`
	QuestionStyle QuestionStyle    `json:"question_style" yaml:"question_style"`
	AdvancePolicy AdvancePolicy    `json:"advance_policy" yaml:"advance_policy"`
	StartingFaith int              `json:"starting_faith" yaml:"starting_faith"`
	Pattern       []TileKind       `json:"pattern" yaml:"pattern"`
	Palette       []string         `json:"palette" yaml:"palette"`
	Decks         Decks            `json:"decks" yaml:"decks"`
	Questions     []TriviaQuestion `json:"questions" yaml:"questions"`
}

// Player is one participant's mutable state.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Position  int    `json:"position"`
	Faith     int    `json:"faith"`
	SkipTurns int    `json:"skip_turns"`
	Color     string `json:"color"`
}

// GameState represents the complete game state
type GameState struct {
	Players         []Player        `json:"players"`
	Current         int             `json:"current"`
	PendingQuestion *TriviaQuestion `json:"pending_question,omitempty"`
	// AwaitingAck is set while the current turn is held for an explicit
	// AcknowledgeAndAdvance.
	AwaitingAck   bool          `json:"awaiting_ack"`
	Message       string        `json:"message,omitempty"`
	Events        []string      `json:"events,omitempty"`
	Round         int           `json:"round"`
	TurnsPlayed   int           `json:"turns_played"`
	ConfigName    string        `json:"config_name"`
	QuestionStyle QuestionStyle `json:"question_style"`
	AdvancePolicy AdvancePolicy `json:"advance_policy"`
	History       []TurnRecord  `json:"history"`
	TotalActions  int           `json:"total_actions"`
}

// CurrentPlayer returns the player whose turn it is.
func (gs *GameState) CurrentPlayer() *Player {
	return &gs.Players[gs.Current]
}

// Clone returns a deep copy of the state that shares nothing mutable with gs.
func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}
	c := *gs
	c.Players = slices.Clone(gs.Players)
	c.Events = slices.Clone(gs.Events)
	c.History = slices.Clone(gs.History)
	if gs.PendingQuestion != nil {
		q := *gs.PendingQuestion
		q.Options = slices.Clone(q.Options)
		c.PendingQuestion = &q
	}
	return &c
}

// Action names recorded in the turn history.
const (
	ActionRoll    = "roll"
	ActionRest    = "rest"
	ActionAnswer  = "answer"
	ActionAdvance = "advance"
)

// TurnRecord represents a single action in the game history
type TurnRecord struct {
	Seq         int      `json:"seq"`
	Round       int      `json:"round"`
	Action      string   `json:"action"`
	PlayerID    string   `json:"player_id"`
	PlayerName  string   `json:"player_name"`
	Dice        []int    `json:"dice,omitempty"`
	From        int      `json:"from"`
	To          int      `json:"to"`
	Tile        TileKind `json:"tile,omitempty"`
	FaithBefore int      `json:"faith_before"`
	FaithAfter  int      `json:"faith_after"`
	Correct     *bool    `json:"correct,omitempty"`
	Timestamp   int64    `json:"timestamp"`
}

// RollOutcome describes what a RequestRoll did.
type RollOutcome struct {
	PlayerID   string          `json:"player_id"`
	Rested     bool            `json:"rested"`
	Dice       []int           `json:"dice,omitempty"`
	Steps      int             `json:"steps"`
	From       int             `json:"from"`
	To         int             `json:"to"`
	Tile       TileKind        `json:"tile"`
	Card       *Card           `json:"card,omitempty"`
	Question   *TriviaQuestion `json:"question,omitempty"`
	FaithDelta int             `json:"faith_delta"`
	Events     []string        `json:"events"`
	Advanced   bool            `json:"advanced"`
}

// AnswerOutcome describes the scoring of a submitted answer.
type AnswerOutcome struct {
	PlayerID   string   `json:"player_id"`
	Correct    bool     `json:"correct"`
	FaithDelta int      `json:"faith_delta"`
	Expected   string   `json:"expected"`
	Events     []string `json:"events"`
}
