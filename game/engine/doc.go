// Package engine provides the core game logic for Path of Faith (Caminho da Fé).
//
// The engine package implements the game mechanics including:
//   - A fixed 40-tile ring board built from a repeating pattern
//   - Two-dice movement with wrap-around in both directions
//   - Tile resolution: card decks, Sabbath rest, trivia questions
//   - Turn order for 2 to 6 players and the faith-point counter
//   - Content pack validation and the built-in classic pack
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState is the single explicit state value a
// presentation layer renders; Content is the content pack (board pattern,
// decks, question bank and rule policies) the engine is built from.
//
// Usage:
//
//	eng, err := engine.NewEngine(engine.DefaultContent(), nil, 3)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	out, err := eng.RequestRoll(engine.LangEN)
//	if out.Question != nil {
//		eng.SubmitAnswer(1, engine.LangEN)
//		eng.AcknowledgeAndAdvance()
//	}
//
// Turn Rules:
//
// A player with pending skip turns rests instead of rolling and gains +2
// faith. Otherwise the player rolls two dice, moves, and the landed tile is
// resolved. Landing on a question holds the turn until the question is
// answered and acknowledged; with the acknowledge policy every turn is held.
// While a turn is held, further rolls are rejected.
package engine
