// Package config loads Path of Faith content packs.
//
// A content pack is a YAML document describing one flavor of the game: the
// board pattern, starting faith, player palette, question style, advance
// policy, the card decks and the question bank. Omitted settings default to
// the classic rules (multiple-choice questions, immediate advance, 3 faith).
//
//	name: heritage
//	question_style: free_text
//	advance_policy: acknowledge
//	pattern: [start, question, blessing, challenge, ...]
//	decks:
//	  blessing:
//	    - pt: "Cântico de louvor: +1."
//	      en: "Song of praise: +1."
//	      points: 1
//	questions:
//	  - prompt: {pt: "Quem construiu a arca?", en: "Who built the ark?"}
//	    answer: {pt: "Noé", en: "Noah"}
//
// Built-in packs: "classic" (the default) and every file under packs/, which
// is embedded in the binary. A content directory may add packs or shadow
// built-ins; its files are parsed lazily and cached until RefreshCache.
//
// Every pack is validated with engine.ValidateContent before use. Parse
// failures wrap ErrInvalidConfig; unknown IDs wrap ErrConfigNotFound.
package config
