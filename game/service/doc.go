// Package service provides the business logic layer for Path of Faith.
//
// The service layer sits between the transports (HTTP, WebSocket, MCP) and
// the game engine. It owns:
//   - Multi-session game management
//   - Content pack lookup through a ConfigManager
//   - Turn orchestration (roll, answer, advance, reset) with typed events
//   - Paginated turn history
//
// GameService is the main interface. SessionManager stores sessions and
// ConfigManager resolves content packs; both are implemented in sibling
// packages and injected at construction.
//
// Concurrency:
//
// Engines are not safe for concurrent use, so the service serializes every
// mutating call behind a single lock. Returned game states are snapshots and
// may be encoded after the lock is released.
//
// Usage:
//
//	sessions := session.NewManager(roller, logger)
//	configs, _ := config.NewManager("content", logger)
//	svc := service.NewGameService(sessions, configs, logger)
//
//	info, err := svc.CreateSession(ctx, "classic", 3, "Ana", "Bruno", "Carla")
//	if err != nil {
//		return err
//	}
//	result, err := svc.Roll(ctx, info.ID, engine.LangPT)
package service
