// Package websocket pushes live game updates to browsers and other
// spectators.
//
// A central Hub tracks clients per session and owns the client set on its
// Run goroutine. Clients connect with ?session=<id>; IDs match
// case-insensitively. Every mutating API call publishes the new game state
// with BroadcastState, and clients of the same session receive it as one JSON
// text frame:
//
//	{"session_id":"a1b2","event":"state_update","game_state":{...},"timestamp":"..."}
//
// Incoming frames are read only to keep ping/pong flowing. Clients that fall
// behind are dropped rather than blocking the hub.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
package websocket
