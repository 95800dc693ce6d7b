package engine

// Board is the fixed 40-tile ring. It is a value type, so every holder owns
// an immutable copy.
type Board [BoardSize]TileKind

// ClassicPattern is the 39-tile pattern repeated around the board.
var ClassicPattern = []TileKind{
	TileStart, TileQuestion, TileBlessing, TileChallenge, TileObstacle,
	TileSabbath, TileQuestion, TileMission, TileQuestion, TileTithe,
	TileQuestion, TileBlessing, TileChallenge, TileObstacle, TileSabbath,
	TileQuestion, TileMission, TileQuestion, TileTemptation, TileQuestion,
	TileBlessing, TileChallenge, TileObstacle, TileSabbath, TileQuestion,
	TileMission, TileQuestion, TileTithe, TileQuestion, TileBlessing,
	TileChallenge, TileObstacle, TileSabbath, TileQuestion, TileMission,
	TileQuestion, TileTemptation, TileQuestion, TileBlessing,
}

// BuildBoard repeats pattern around the ring and truncates it to BoardSize.
// Index 0 is forced to TileStart.
func BuildBoard(pattern []TileKind) Board {
	var b Board
	if len(pattern) == 0 {
		pattern = ClassicPattern
	}
	for i := range b {
		b[i] = pattern[i%len(pattern)]
	}
	b[0] = TileStart
	return b
}

// At returns the tile at position p, wrapping in both directions.
func (b Board) At(p int) TileKind {
	return b[Wrap(p)]
}

// BoardTile is a renderer-friendly view of a single position.
type BoardTile struct {
	Index int      `json:"index"`
	Kind  TileKind `json:"kind"`
	Label string   `json:"label"`
	Color string   `json:"color"`
}

// Describe returns labelled tiles for rendering.
func (b Board) Describe(lang Lang) []BoardTile {
	tiles := make([]BoardTile, len(b))
	for i, kind := range b {
		tiles[i] = BoardTile{
			Index: i,
			Kind:  kind,
			Label: TileLabel(kind, lang),
			Color: TileColor(kind),
		}
	}
	return tiles
}
