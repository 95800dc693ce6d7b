package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/path-of-faith/game/dice"
	"github.com/wricardo/path-of-faith/game/engine"
	"github.com/wricardo/path-of-faith/game/service"
	"github.com/wricardo/path-of-faith/game/session"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	roller   *dice.Roller
}

// NewMockSessionManager creates a manager whose engines draw die faces from
// values (zero-based, so 0 rolls a 1).
func NewMockSessionManager(values ...int) *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
		roller:   dice.NewRoller(dice.NewSequenceSource(values...), nil),
	}
}

func (m *MockSessionManager) Create(id string, spec service.SessionSpec) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}
	if _, exists := m.sessions[id]; exists {
		return nil, service.ErrSessionAlreadyExists
	}

	eng, err := engine.NewEngine(spec.Content, m.roller, spec.PlayerCount, spec.Names...)
	if err != nil {
		return nil, err
	}

	sess := &service.Session{
		ID:             id,
		ConfigID:       spec.ConfigID,
		Engine:         eng,
		Content:        spec.Content,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	m.sessions[id] = sess
	return sess, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	sess, exists := m.sessions[id]
	if !exists {
		return nil, service.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return service.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if sess, exists := m.sessions[id]; exists {
		sess.LastAccessedAt = time.Now()
		return nil
	}
	return service.ErrSessionNotFound
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.Content
	saved   map[string]*engine.Content
}

func NewMockConfigManager() *MockConfigManager {
	freeText := engine.DefaultContent()
	freeText.Name = "free"
	freeText.QuestionStyle = engine.FreeText
	freeText.AdvancePolicy = engine.AdvanceOnAcknowledge

	return &MockConfigManager{
		configs: map[string]*engine.Content{
			"classic": engine.DefaultContent(),
			"free":    freeText,
		},
		saved: make(map[string]*engine.Content),
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.Content, error) {
	content, exists := m.configs[name]
	if !exists {
		return nil, service.ErrConfigNotFound
	}
	return content, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for id, content := range m.configs {
		result = append(result, &service.ConfigInfo{
			ConfigID:      id,
			Name:          content.Name,
			QuestionStyle: content.QuestionStyle,
			AdvancePolicy: content.AdvancePolicy,
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() (string, *engine.Content) {
	return "classic", m.configs["classic"]
}

func (m *MockConfigManager) SaveConfig(name string, content *engine.Content) error {
	if err := engine.ValidateContent(content); err != nil {
		return fmt.Errorf("%w: %v", service.ErrInvalidConfig, err)
	}
	m.saved[name] = content
	return nil
}

func newTestService(values ...int) service.GameService {
	return service.NewGameService(NewMockSessionManager(values...), NewMockConfigManager(), nil)
}

// Test cases
func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(0)

	tests := []struct {
		name        string
		configName  string
		players     int
		wantPlayers int
		wantConfig  string
		wantErr     error
	}{
		{name: "default config", configName: "", players: 2, wantPlayers: 2, wantConfig: "classic"},
		{name: "specific config", configName: "free", players: 4, wantPlayers: 4, wantConfig: "free"},
		{name: "clamped low", configName: "classic", players: 0, wantPlayers: 2, wantConfig: "classic"},
		{name: "clamped high", configName: "classic", players: 12, wantPlayers: 6, wantConfig: "classic"},
		{name: "missing config", configName: "nonexistent", players: 2, wantErr: service.ErrConfigNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := svc.CreateSession(ctx, tt.configName, tt.players)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CreateSession() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateSession() unexpected error: %v", err)
			}
			if len(info.GameState.Players) != tt.wantPlayers {
				t.Errorf("Expected %d players, got %d", tt.wantPlayers, len(info.GameState.Players))
			}
			if info.ConfigName != tt.wantConfig {
				t.Errorf("Expected config %q, got %q", tt.wantConfig, info.ConfigName)
			}
			if len(info.Board) != engine.BoardSize {
				t.Errorf("Expected a %d-tile board, got %d", engine.BoardSize, len(info.Board))
			}
		})
	}
}

func TestGameService_CreateSession_ListsAvailableConfigs(t *testing.T) {
	svc := newTestService(0)
	_, err := svc.CreateSession(context.Background(), "nope", 2)
	if err == nil {
		t.Fatal("Expected error for unknown config")
	}
	if !strings.Contains(err.Error(), "classic") || !strings.Contains(err.Error(), "free") {
		t.Errorf("Expected available configs in error, got %q", err.Error())
	}
}

func TestGameService_CreateSession_Names(t *testing.T) {
	svc := newTestService(0)
	info, err := svc.CreateSession(context.Background(), "", 3, "Ana", "", "Carla")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Ana", "Player 2", "Carla"}
	for i, p := range info.GameState.Players {
		if p.Name != want[i] {
			t.Errorf("Player %d: expected %q, got %q", i, want[i], p.Name)
		}
	}
}

func TestGameService_Roll(t *testing.T) {
	ctx := context.Background()
	// 1+2 = 3 lands on a challenge tile
	svc := newTestService(0, 1)
	info, _ := svc.CreateSession(ctx, "classic", 2)

	result, err := svc.Roll(ctx, info.ID, engine.LangEN)
	if err != nil {
		t.Fatalf("Roll() error: %v", err)
	}
	if result.Roll.Steps != 3 || result.Roll.Tile != engine.TileChallenge {
		t.Errorf("Expected 3 steps onto a challenge, got %d onto %s", result.Roll.Steps, result.Roll.Tile)
	}
	if result.GameState.Current != 1 {
		t.Errorf("Expected turn to pass to player 1, got %d", result.GameState.Current)
	}

	var types []string
	for _, ev := range result.Events {
		types = append(types, ev.Type)
	}
	want := []string{service.EventRoll, service.EventChallenge, service.EventAdvance}
	if strings.Join(types, ",") != strings.Join(want, ",") {
		t.Errorf("Expected events %v, got %v", want, types)
	}
	if result.Message != "Faith Challenge: reflect and move on." {
		t.Errorf("Unexpected message %q", result.Message)
	}
}

func TestGameService_Roll_SessionNotFound(t *testing.T) {
	svc := newTestService(0)
	_, err := svc.Roll(context.Background(), "nonexistent", engine.LangPT)
	if !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestGameService_QuestionFlow(t *testing.T) {
	ctx := context.Background()
	// 1+5 = 6 lands on a question; the draw picks question 0 (Noah, option 1)
	svc := newTestService(0, 4, 0)
	info, _ := svc.CreateSession(ctx, "classic", 2)

	result, err := svc.Roll(ctx, info.ID, engine.LangEN)
	if err != nil {
		t.Fatal(err)
	}
	if result.Roll.Question == nil {
		t.Fatalf("Expected a question, landed on %s", result.Roll.Tile)
	}
	if result.GameState.PendingQuestion == nil {
		t.Fatal("Expected the question to be pending")
	}
	if result.Events[1].Type != service.EventQuestion {
		t.Errorf("Expected question event, got %s", result.Events[1].Type)
	}

	if _, err := svc.Roll(ctx, info.ID, engine.LangEN); !errors.Is(err, engine.ErrQuestionPending) {
		t.Errorf("Expected ErrQuestionPending, got %v", err)
	}
	if _, err := svc.AnswerText(ctx, info.ID, "Noah", engine.LangEN); !errors.Is(err, engine.ErrWrongQuestionStyle) {
		t.Errorf("Expected ErrWrongQuestionStyle, got %v", err)
	}
	if got, _ := svc.GetSession(ctx, info.ID); got.CanRoll {
		t.Error("Expected CanRoll to be false while a question is pending")
	}

	answer, err := svc.Answer(ctx, info.ID, 1, engine.LangEN)
	if err != nil {
		t.Fatal(err)
	}
	if !answer.Answer.Correct || answer.Answer.FaithDelta != engine.CorrectAnswerBonus {
		t.Errorf("Expected a correct answer worth %d, got %+v", engine.CorrectAnswerBonus, answer.Answer)
	}
	if answer.Events[0].Type != service.EventCorrect {
		t.Errorf("Expected correct event, got %s", answer.Events[0].Type)
	}
	if answer.GameState.Current != 0 {
		t.Error("Answering must not advance the turn")
	}

	state, err := svc.Advance(ctx, info.ID)
	if err != nil {
		t.Fatal(err)
	}
	if state.Current != 1 {
		t.Errorf("Expected player 1 after advance, got %d", state.Current)
	}

	if _, err := svc.Advance(ctx, info.ID); !errors.Is(err, engine.ErrNothingToAcknowledge) {
		t.Errorf("Expected ErrNothingToAcknowledge, got %v", err)
	}
}

func TestGameService_AnswerText(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(0, 4, 0)
	info, _ := svc.CreateSession(ctx, "free", 2)

	if _, err := svc.Roll(ctx, info.ID, engine.LangPT); err != nil {
		t.Fatal(err)
	}
	result, err := svc.AnswerText(ctx, info.ID, "noe", engine.LangPT)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Answer.Correct {
		t.Errorf("Expected 'noe' to match 'Noé', got %+v", result.Answer)
	}
	if !result.GameState.AwaitingAck {
		t.Error("Expected the acknowledge policy to hold the turn")
	}
}

func TestGameService_AnswerWithoutQuestion(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(0)
	info, _ := svc.CreateSession(ctx, "classic", 2)

	if _, err := svc.Answer(ctx, info.ID, 0, engine.LangPT); !errors.Is(err, engine.ErrNoPendingQuestion) {
		t.Errorf("Expected ErrNoPendingQuestion, got %v", err)
	}
}

func TestGameService_Reset(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(0, 1)
	info, _ := svc.CreateSession(ctx, "classic", 3, "Ana", "Bruno", "Carla")

	if _, err := svc.Roll(ctx, info.ID, engine.LangPT); err != nil {
		t.Fatal(err)
	}

	state, err := svc.Reset(ctx, info.ID)
	if err != nil {
		t.Fatalf("Reset() error: %v", err)
	}
	if state.Current != 0 || state.Players[0].Position != 0 {
		t.Error("Expected a fresh game after reset")
	}
	if state.Players[1].Name != "Bruno" {
		t.Errorf("Expected names to survive reset, got %q", state.Players[1].Name)
	}
	if len(state.History) != 1 {
		t.Errorf("Expected history to survive reset, got %d records", len(state.History))
	}
}

func TestGameService_GetGameStateIsSnapshot(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(0)
	info, _ := svc.CreateSession(ctx, "classic", 2)

	state, err := svc.GetGameState(ctx, info.ID)
	if err != nil {
		t.Fatal(err)
	}
	state.Players[0].Faith = 100

	again, _ := svc.GetGameState(ctx, info.ID)
	if again.Players[0].Faith == 100 {
		t.Error("GetGameState must return a snapshot")
	}
}

func TestGameService_GetTurnHistory(t *testing.T) {
	ctx := context.Background()
	// 1+1 = 2 is a blessing, 2 more steps reach the obstacle at 4: no questions
	svc := newTestService(0, 0)
	info, _ := svc.CreateSession(ctx, "classic", 2)

	for i := 0; i < 4; i++ {
		if _, err := svc.Roll(ctx, info.ID, engine.LangPT); err != nil {
			t.Fatalf("Roll %d: %v", i, err)
		}
	}

	history, err := svc.GetTurnHistory(ctx, info.ID, service.HistoryOptions{Page: 1, Limit: 3})
	if err != nil {
		t.Fatal(err)
	}
	if history.TotalTurns != 4 || history.TotalPages != 2 {
		t.Errorf("Expected 4 turns over 2 pages, got %d over %d", history.TotalTurns, history.TotalPages)
	}
	if len(history.Turns) != 3 || history.Turns[0].Seq != 4 {
		t.Errorf("Expected newest-first page of 3, got %+v", history.Turns)
	}
	if !history.HasNext || history.HasPrevious {
		t.Error("Unexpected pagination flags on page 1")
	}

	if _, err := svc.GetTurnHistory(ctx, "missing", service.HistoryOptions{}); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

// Run with -race: reads refresh the last-access time while other readers
// copy it into SessionInfo.
func TestGameService_ConcurrentReads(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(session.NewManager(nil, nil), NewMockConfigManager(), nil)
	info, err := svc.CreateSession(ctx, "classic", 2)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if _, err := svc.GetSession(ctx, info.ID); err != nil {
					errs <- err
					return
				}
				if _, err := svc.GetGameState(ctx, info.ID); err != nil {
					errs <- err
					return
				}
				if _, err := svc.ListSessions(ctx); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent read failed: %v", err)
	}

	got, err := svc.GetSession(ctx, info.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.LastAccessedAt.Before(info.LastAccessedAt) {
		t.Errorf("Expected last access to move forward, got %v before %v", got.LastAccessedAt, info.LastAccessedAt)
	}
}

func TestGameService_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(0)

	a, _ := svc.CreateSession(ctx, "", 2)
	b, _ := svc.CreateSession(ctx, "free", 3)

	sessions, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Errorf("Expected 2 sessions, got %d", len(sessions))
	}

	got, err := svc.GetSession(ctx, b.ID)
	if err != nil || got.ConfigName != "free" {
		t.Errorf("GetSession() = %+v, %v", got, err)
	}

	if err := svc.DeleteSession(ctx, a.ID); err != nil {
		t.Fatalf("DeleteSession() error: %v", err)
	}
	if _, err := svc.GetSession(ctx, a.ID); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound after delete, got %v", err)
	}
	if err := svc.DeleteSession(ctx, a.ID); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound on second delete, got %v", err)
	}
}

func TestGameService_Configs(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(0)

	configs, err := svc.ListConfigs(ctx)
	if err != nil || len(configs) != 2 {
		t.Fatalf("ListConfigs() = %d configs, %v", len(configs), err)
	}

	content, err := svc.LoadConfig(ctx, "free")
	if err != nil || content.QuestionStyle != engine.FreeText {
		t.Errorf("LoadConfig() = %+v, %v", content, err)
	}

	bad := engine.DefaultContent()
	bad.Pattern = nil
	if err := svc.SaveConfig(ctx, "bad", bad); !errors.Is(err, service.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if err := svc.SaveConfig(ctx, "good", engine.DefaultContent()); err != nil {
		t.Errorf("SaveConfig() error: %v", err)
	}
}
