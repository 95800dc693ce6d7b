// Package mcp provides a Model Context Protocol server for Path of Faith.
//
// The server is a thin client of the REST API: every tool call becomes an
// HTTP request and the JSON response is rendered as plain text for the agent.
//
// MCP Tools:
//   - create_session, list_sessions, get_session: manage games
//   - game_state: players, faith, pending question
//   - roll_dice: play the current player's turn
//   - answer_question: answer a multiple-choice question by option index
//   - answer_text: answer a free-text question
//   - next_turn: acknowledge the turn and pass it on
//   - reset_game: new game with the same players
//   - turn_history: paginated turn log
//   - describe_tile: what a board position does
//   - list_configs: available content packs
//   - game_instructions: the rules
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer()) for local MCP clients
//   - HTTP: the /mcp endpoint of the main server
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
