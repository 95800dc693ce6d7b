package engine

import (
	"fmt"
	"slices"
)

// DefaultPalette is the round-robin player color palette.
var DefaultPalette = []string{"#2563eb", "#dc2626", "#16a34a", "#d97706", "#7c3aed", "#db2777"}

// ValidateContent validates a content pack for correctness and playability
func ValidateContent(content *Content) error {
	if content == nil {
		return fmt.Errorf("content validation: content is nil")
	}
	if content.Name == "" {
		return fmt.Errorf("content validation: name is required")
	}

	switch content.QuestionStyle {
	case MultipleChoice, FreeText:
	default:
		return fmt.Errorf("content validation: question_style must be %q or %q, got %q", MultipleChoice, FreeText, content.QuestionStyle)
	}
	switch content.AdvancePolicy {
	case AdvanceImmediate, AdvanceOnAcknowledge:
	default:
		return fmt.Errorf("content validation: advance_policy must be %q or %q, got %q", AdvanceImmediate, AdvanceOnAcknowledge, content.AdvancePolicy)
	}
	if content.StartingFaith < 0 {
		return fmt.Errorf("content validation: starting_faith must be non-negative, got %d", content.StartingFaith)
	}

	// Pattern
	if len(content.Pattern) == 0 {
		return fmt.Errorf("content validation: pattern is required")
	}
	if len(content.Pattern) > BoardSize {
		return fmt.Errorf("content validation: pattern must have at most %d tiles, got %d", BoardSize, len(content.Pattern))
	}
	if content.Pattern[0] != TileStart {
		return fmt.Errorf("content validation: pattern must begin with %q, got %q", TileStart, content.Pattern[0])
	}
	used := make(map[TileKind]bool)
	for i, kind := range content.Pattern {
		if !slices.Contains(AllTileKinds, kind) {
			return fmt.Errorf("content validation: unknown tile kind %q at pattern index %d", kind, i)
		}
		used[kind] = true
	}

	if len(content.Palette) == 0 {
		return fmt.Errorf("content validation: palette must list at least one color")
	}

	// Decks are only required for kinds that appear on the board. Singleton
	// decks carry a fixed faith effect and never move the player.
	decks := []struct {
		kind      TileKind
		cards     []Card
		singleton bool
		points    int
	}{
		{TileBlessing, content.Decks.Blessing, false, 0},
		{TileObstacle, content.Decks.Obstacle, false, 0},
		{TileMission, content.Decks.Mission, true, MissionPoints},
		{TileTithe, content.Decks.Tithe, true, TithePoints},
		{TileTemptation, content.Decks.Temptation, true, TemptationPoints},
	}
	for _, d := range decks {
		if d.singleton {
			for i, c := range d.cards {
				if c.Move != nil {
					return fmt.Errorf("content validation: decks.%s[%d] must not move the player", d.kind, i)
				}
				if c.Points == nil || *c.Points != d.points {
					return fmt.Errorf("content validation: decks.%s[%d] must have points %d", d.kind, i, d.points)
				}
			}
		}
		if !used[d.kind] {
			continue
		}
		if len(d.cards) == 0 {
			return fmt.Errorf("content validation: decks.%s must not be empty", d.kind)
		}
		if d.singleton && len(d.cards) != 1 {
			return fmt.Errorf("content validation: decks.%s must hold exactly one card, got %d", d.kind, len(d.cards))
		}
		for i, c := range d.cards {
			if c.PT == "" && c.EN == "" {
				return fmt.Errorf("content validation: decks.%s[%d] has no text", d.kind, i)
			}
		}
	}

	if used[TileQuestion] && len(content.Questions) == 0 {
		return fmt.Errorf("content validation: questions must not be empty when the board has question tiles")
	}
	for i, q := range content.Questions {
		if q.Prompt.PT == "" && q.Prompt.EN == "" {
			return fmt.Errorf("content validation: questions[%d] has no prompt", i)
		}
		if err := checkAnswerable(q, content.QuestionStyle); err != nil {
			return fmt.Errorf("content validation: questions[%d] %w", i, err)
		}
	}

	return nil
}

// checkAnswerable reports whether q can be scored under style.
func checkAnswerable(q TriviaQuestion, style QuestionStyle) error {
	switch style {
	case MultipleChoice:
		if len(q.Options) != OptionsPerQuestion {
			return fmt.Errorf("must have %d options, got %d", OptionsPerQuestion, len(q.Options))
		}
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			return fmt.Errorf("correct index %d out of range", q.Correct)
		}
	case FreeText:
		if len(acceptedAnswers(q.Answer)) == 0 {
			return fmt.Errorf("must have an answer")
		}
	}
	return nil
}

// DefaultContent returns the built-in "classic" pack: the classic board,
// multiple-choice questions and immediate turn advance. Each call returns a
// fresh copy.
func DefaultContent() *Content {
	return &Content{
		Name:          "classic",
		Description:   "Caminho da Fé: classic board with multiple-choice Bible questions",
		QuestionStyle: MultipleChoice,
		AdvancePolicy: AdvanceImmediate,
		StartingFaith: DefaultStartingFaith,
		Pattern:       slices.Clone(ClassicPattern),
		Palette:       slices.Clone(DefaultPalette),
		Decks: Decks{
			Blessing: []Card{
				{Text: Text{PT: "Ajudaste um irmão: +2 pontos.", EN: "You helped a brother: +2 points."}, Points: intPtr(2)},
				{Text: Text{PT: "Estudo bíblico frutífero: +1.", EN: "Fruitful Bible study: +1."}, Points: intPtr(1)},
				{Text: Text{PT: "Oração respondida: +2.", EN: "Answered prayer: +2."}, Points: intPtr(2)},
			},
			Obstacle: []Card{
				{Text: Text{PT: "Tentação: -2 pontos.", EN: "Temptation: -2 points."}, Points: intPtr(-2)},
				{Text: Text{PT: "Dúvidas: -1 ponto.", EN: "Doubts: -1 point."}, Points: intPtr(-1)},
				{Text: Text{PT: "Tropeço: volta 2.", EN: "Stumble: move back 2."}, Move: intPtr(-2)},
			},
			Mission: []Card{
				{Text: Text{PT: "Apoio à missão: +1.", EN: "Mission support: +1."}, Points: intPtr(1)},
			},
			Tithe: []Card{
				{Text: Text{PT: "Dízimo: dás 1 ponto de fé.", EN: "Tithe: you give 1 faith point."}, Points: intPtr(-1)},
			},
			Temptation: []Card{
				{Text: Text{PT: "Tentação: -1 ponto.", EN: "Temptation: -1 point."}, Points: intPtr(-1)},
			},
		},
		Questions: []TriviaQuestion{
			{
				Prompt:  Text{PT: "Quem construiu a arca?", EN: "Who built the ark?"},
				Options: []Text{{PT: "Moisés", EN: "Moses"}, {PT: "Noé", EN: "Noah"}, {PT: "Abraão", EN: "Abraham"}},
				Correct: 1,
				Answer:  Text{PT: "Noé", EN: "Noah"},
			},
			{
				Prompt:  Text{PT: "Quem foi engolido por um grande peixe?", EN: "Who was swallowed by a great fish?"},
				Options: []Text{{PT: "Jonas", EN: "Jonah"}, {PT: "Pedro", EN: "Peter"}, {PT: "Elias", EN: "Elijah"}},
				Correct: 0,
				Answer:  Text{PT: "Jonas", EN: "Jonah"},
			},
			{
				Prompt: Text{PT: "Quem foram os três amigos de Daniel?", EN: "Name Daniel's three friends."},
				Options: []Text{
					{PT: "Pedro, Tiago, João", EN: "Peter, James, John"},
					{PT: "Arão, Hur, Josué", EN: "Aaron, Hur, Joshua"},
					{PT: "Sadraque, Mesaque, Abednego", EN: "Shadrach, Meshach, Abednego"},
				},
				Correct: 2,
				Answer:  Text{PT: "Sadraque, Mesaque, Abednego", EN: "Shadrach, Meshach, Abednego"},
			},
			{
				Prompt:  Text{PT: "Quem derrotou o gigante Golias?", EN: "Who defeated the giant Goliath?"},
				Options: []Text{{PT: "Saul", EN: "Saul"}, {PT: "Sansão", EN: "Samson"}, {PT: "Davi", EN: "David"}},
				Correct: 2,
				Answer:  Text{PT: "Davi", EN: "David"},
			},
			{
				Prompt:  Text{PT: "Em que dia Deus descansou?", EN: "On which day did God rest?"},
				Options: []Text{{PT: "No sétimo", EN: "The seventh"}, {PT: "No primeiro", EN: "The first"}, {PT: "No sexto", EN: "The sixth"}},
				Correct: 0,
				Answer:  Text{PT: "sétimo|no sétimo|7", EN: "seventh|the seventh|7"},
			},
		},
	}
}
