package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wricardo/path-of-faith/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	logger   *zap.Logger
	mu       sync.RWMutex
	now      func() time.Time
}

// NewGameService creates a new game service instance. A nil logger disables
// turn logging.
func NewGameService(sessions SessionManager, configs ConfigManager, logger *zap.Logger) GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateSession creates a new game session with playerCount players.
// An empty configName selects the default pack.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string, playerCount int, names ...string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var content *engine.Content
	var err error
	configID := configName
	if configName != "" {
		content, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if errors.Is(err, ErrConfigNotFound) {
				if available, listErr := s.configs.ListConfigs(); listErr == nil && len(available) > 0 {
					ids := make([]string, 0, len(available))
					for _, cfg := range available {
						ids = append(ids, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available configs: %s", ErrConfigNotFound, configName, strings.Join(ids, ", "))
				}
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		configID, content = s.configs.GetDefault()
	}

	// Let session manager generate the ID
	sess, err := s.sessions.Create("", SessionSpec{
		ConfigID:    configID,
		Content:     content,
		PlayerCount: playerCount,
		Names:       names,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("session created",
		zap.String("session_id", sess.ID),
		zap.String("config", configID),
		zap.Int("players", len(sess.Engine.GetState().Players)),
	)
	return s.sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.logger.Info("session deleted", zap.String("session_id", sessionID))
	return nil
}

// Roll plays the current player's turn: either a rest or a dice roll
func (s *gameServiceImpl) Roll(ctx context.Context, sessionID string, lang engine.Lang) (*RollResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	out, err := sess.Engine.RequestRoll(lang)
	if err != nil {
		return nil, err
	}
	state := sess.Engine.GetState()

	s.logger.Info("turn played",
		zap.String("session_id", sess.ID),
		zap.String("player_id", out.PlayerID),
		zap.Bool("rested", out.Rested),
		zap.Ints("dice", out.Dice),
		zap.Int("from", out.From),
		zap.Int("to", out.To),
		zap.String("tile", string(out.Tile)),
		zap.Int("faith_delta", out.FaithDelta),
		zap.Bool("advanced", out.Advanced),
	)

	return &RollResult{
		Roll:      out,
		GameState: state.Clone(),
		Message:   state.Message,
		Events:    s.rollEvents(out),
	}, nil
}

// Answer scores an option index against the pending multiple-choice question
func (s *gameServiceImpl) Answer(ctx context.Context, sessionID string, option int, lang engine.Lang) (*AnswerResult, error) {
	return s.answer(sessionID, func(eng *engine.GameEngine) (*engine.AnswerOutcome, error) {
		return eng.SubmitAnswer(option, lang)
	})
}

// AnswerText scores a free-text reply against the pending question
func (s *gameServiceImpl) AnswerText(ctx context.Context, sessionID, reply string, lang engine.Lang) (*AnswerResult, error) {
	return s.answer(sessionID, func(eng *engine.GameEngine) (*engine.AnswerOutcome, error) {
		return eng.SubmitTextAnswer(reply, lang)
	})
}

func (s *gameServiceImpl) answer(sessionID string, submit func(*engine.GameEngine) (*engine.AnswerOutcome, error)) (*AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	out, err := submit(sess.Engine)
	if err != nil {
		return nil, err
	}
	state := sess.Engine.GetState()

	s.logger.Info("question answered",
		zap.String("session_id", sess.ID),
		zap.String("player_id", out.PlayerID),
		zap.Bool("correct", out.Correct),
		zap.Int("faith_delta", out.FaithDelta),
	)

	typ := EventWrong
	if out.Correct {
		typ = EventCorrect
	}
	events := make([]GameEvent, 0, len(out.Events))
	for _, msg := range out.Events {
		events = append(events, s.event(typ, msg, out.PlayerID, state.CurrentPlayer().Position))
	}

	return &AnswerResult{
		Answer:    out,
		GameState: state.Clone(),
		Message:   state.Message,
		Events:    events,
	}, nil
}

// Advance acknowledges the held turn and passes it to the next player
func (s *gameServiceImpl) Advance(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.Engine.AcknowledgeAndAdvance(); err != nil {
		return nil, err
	}
	state := sess.Engine.GetState()
	s.logger.Info("turn advanced",
		zap.String("session_id", sess.ID),
		zap.Int("current", state.Current),
		zap.Int("round", state.Round),
	)
	return state.Clone(), nil
}

// Reset starts a new game in the session with the same players
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.Reset()
	s.logger.Info("game reset", zap.String("session_id", sess.ID))
	return state.Clone(), nil
}

// GetGameState retrieves a snapshot of the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.GetState().Clone(), nil
}

// GetTurnHistory returns paginated turn history
func (s *gameServiceImpl) GetTurnHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return paginate(sess.Engine.GetHistory(), opts), nil
}

// ListConfigs returns available content packs
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific content pack. An empty name selects the
// default pack.
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.Content, error) {
	if configName == "" {
		_, content := s.configs.GetDefault()
		return content, nil
	}
	return s.configs.LoadConfig(configName)
}

// SaveConfig stores a content pack in the content directory
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, content *engine.Content) error {
	if err := s.configs.SaveConfig(configName, content); err != nil {
		return err
	}
	s.logger.Info("config saved", zap.String("config", configName))
	return nil
}

// touch looks up a session and refreshes its last-access time. Callers hold
// the write lock: sessionInfo reads LastAccessedAt under the read lock.
func (s *gameServiceImpl) touch(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	return sess, nil
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	board := sess.Engine.GetBoard()
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     sess.ConfigID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState().Clone(),
		Board:          board[:],
		CanRoll:        sess.Engine.CanRoll(),
	}
}

// rollEvents types the engine's event messages: the first is the roll or
// rest itself, the optional second describes the landed tile.
func (s *gameServiceImpl) rollEvents(out *engine.RollOutcome) []GameEvent {
	first := EventRoll
	if out.Rested {
		first = EventRest
	}
	tileEvent := EventChallenge
	switch {
	case out.Question != nil:
		tileEvent = EventQuestion
	case out.Card != nil:
		tileEvent = EventCard
	case out.Tile == engine.TileSabbath:
		tileEvent = EventSabbath
	}

	events := make([]GameEvent, 0, len(out.Events)+1)
	for i, msg := range out.Events {
		typ := first
		if i > 0 {
			typ = tileEvent
		}
		events = append(events, s.event(typ, msg, out.PlayerID, out.To))
	}
	if out.Advanced {
		events = append(events, s.event(EventAdvance, "", out.PlayerID, out.To))
	}
	return events
}

func (s *gameServiceImpl) event(typ, msg, playerID string, position int) GameEvent {
	return GameEvent{
		Type:      typ,
		Message:   msg,
		Timestamp: s.now(),
		PlayerID:  playerID,
		Position:  position,
	}
}

// paginate slices history according to opts, applying defaults: page 1,
// limit 20 (max 100), newest first.
func paginate(history []engine.TurnRecord, opts HistoryOptions) *HistoryResponse {
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := min(start+opts.Limit, total)

	turns := []engine.TurnRecord{}
	if start < total {
		if opts.Order == "desc" {
			for i := total - 1 - start; i >= total-end; i-- {
				turns = append(turns, history[i])
			}
		} else {
			turns = append(turns, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Turns:       turns,
		TotalTurns:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}
}
