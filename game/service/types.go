package service

import (
	"time"

	"github.com/wricardo/path-of-faith/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	ConfigName     string            `json:"config_name"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
	Board          []engine.TileKind `json:"board"`
	CanRoll        bool              `json:"can_roll"`
}

// RollResult contains the result of a roll request
type RollResult struct {
	Roll      *engine.RollOutcome `json:"roll"`
	GameState *engine.GameState   `json:"game_state"`
	Message   string              `json:"message"`
	Events    []GameEvent         `json:"events"`
}

// AnswerResult contains the result of an answered question
type AnswerResult struct {
	Answer    *engine.AnswerOutcome `json:"answer"`
	GameState *engine.GameState     `json:"game_state"`
	Message   string                `json:"message"`
	Events    []GameEvent           `json:"events"`
}

// Event types reported in GameEvent.Type.
const (
	EventRoll      = "roll"
	EventRest      = "rest"
	EventCard      = "card"
	EventQuestion  = "question"
	EventSabbath   = "sabbath"
	EventChallenge = "challenge"
	EventCorrect   = "correct"
	EventWrong     = "wrong"
	EventAdvance   = "advance"
	EventReset     = "reset"
)

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	PlayerID  string    `json:"player_id,omitempty"`
	Position  int       `json:"position"`
}

// HistoryOptions configures turn history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated turn history
type HistoryResponse struct {
	Turns       []engine.TurnRecord `json:"turns"`
	TotalTurns  int                 `json:"total_turns"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// ConfigInfo provides information about a content pack
type ConfigInfo struct {
	Filename      string               `json:"filename,omitempty"`
	ConfigID      string               `json:"config_id"` // The identifier to use for session creation
	Name          string               `json:"name"`      // Display name
	Description   string               `json:"description"`
	QuestionStyle engine.QuestionStyle `json:"question_style"`
	AdvancePolicy engine.AdvancePolicy `json:"advance_policy"`
	StartingFaith int                  `json:"starting_faith"`
	Questions     int                  `json:"questions"`
	Builtin       bool                 `json:"builtin"`
}
