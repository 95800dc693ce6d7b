// Package api provides the HTTP REST API for Path of Faith.
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Create a game ({"config_id", "players", "names"})
//   - GET /api/sessions - List games (?sort=created|accessed, ?order, ?limit)
//   - GET /api/sessions/{id} - Get one game
//   - DELETE /api/sessions/{id} - Delete a game
//
// Turns:
//   - GET /api/sessions/{id}/state - Current game state
//   - POST /api/sessions/{id}/roll - Roll for the current player
//   - POST /api/sessions/{id}/answer - Answer the pending question
//     ({"option": 1} or {"answer": "Noah"})
//   - POST /api/sessions/{id}/advance - Acknowledge the turn and pass it on
//   - POST /api/sessions/{id}/reset - Start a new game with the same players
//   - GET /api/sessions/{id}/history - Paginated turn log (?page, ?limit, ?order)
//
// Content packs and board:
//   - GET /api/configs - List content packs
//   - GET /api/configs/{name} - Get a content pack (answers omitted)
//   - PUT /api/configs/{name} - Store a YAML content pack
//   - GET /api/board - Tile kinds, labels and colors (?session or ?config)
//
// Other:
//   - GET /api/health
//   - GET /ws?session={id} - WebSocket state updates
//
// Turn endpoints take the response language from ?lang=pt|en or the
// Accept-Language header. Errors are JSON with a stable code:
//
//	{
//	  "error": "a question is pending and must be answered first",
//	  "code": "question_pending"
//	}
package api
