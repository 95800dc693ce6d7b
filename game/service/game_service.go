package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/path-of-faith/game/engine"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrConfigNotFound       = errors.New("configuration not found")
	ErrInvalidConfig        = errors.New("invalid configuration")
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string, playerCount int, names ...string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Turn Operations
	Roll(ctx context.Context, sessionID string, lang engine.Lang) (*RollResult, error)
	Answer(ctx context.Context, sessionID string, option int, lang engine.Lang) (*AnswerResult, error)
	AnswerText(ctx context.Context, sessionID, reply string, lang engine.Lang) (*AnswerResult, error)
	Advance(ctx context.Context, sessionID string) (*engine.GameState, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetTurnHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.Content, error)
	SaveConfig(ctx context.Context, configName string, content *engine.Content) error
}

// SessionSpec describes the game a new session should host.
type SessionSpec struct {
	ConfigID    string
	Content     *engine.Content
	PlayerCount int
	Names       []string
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, spec SessionSpec) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles content pack loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.Content, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() (string, *engine.Content)
	SaveConfig(name string, content *engine.Content) error
}

// Session represents an active game session
type Session struct {
	ID             string
	ConfigID       string
	Engine         *engine.GameEngine
	Content        *engine.Content
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
