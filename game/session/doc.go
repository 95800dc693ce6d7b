// Package session provides in-memory session management for Path of Faith.
//
// A session is one running game: its engine, the content pack it was
// created from and its access timestamps. The Manager is safe for concurrent
// use; the engines it hands out are not, and callers (the service layer)
// serialize access to them.
//
// Session IDs are short random hex strings and are matched
// case-insensitively. Every engine created by a Manager shares the Manager's
// dice roller, so a seeded roller makes a whole server reproducible.
//
// Usage:
//
//	manager := session.NewManager(roller, logger)
//	sess, err := manager.Create("", service.SessionSpec{
//		ConfigID:    "classic",
//		Content:     engine.DefaultContent(),
//		PlayerCount: 4,
//	})
//
// Sessions are never written to disk. Idle sessions are removed with
// CleanupExpiredSessions.
package session
