package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildBoard_ClassicPattern(t *testing.T) {
	b := BuildBoard(ClassicPattern)

	assert.Len(t, b, BoardSize)
	assert.Equal(t, TileStart, b[0])
	assert.Equal(t, TileTithe, b[9])
	assert.Equal(t, TileSabbath, b[5])
	// 39 wraps onto the first pattern element
	assert.Equal(t, TileStart, b[39])
}

func TestBuildBoard_ForcesStartAtZero(t *testing.T) {
	b := BuildBoard([]TileKind{TileBlessing, TileObstacle})
	assert.Equal(t, TileStart, b[0])
	assert.Equal(t, TileObstacle, b[1])
	assert.Equal(t, TileBlessing, b[2])
}

func TestBuildBoard_EmptyPatternUsesClassic(t *testing.T) {
	assert.Equal(t, BuildBoard(ClassicPattern), BuildBoard(nil))
}

func TestBoard_AtWraps(t *testing.T) {
	b := BuildBoard(ClassicPattern)
	assert.Equal(t, b[9], b.At(49))
	assert.Equal(t, b[39], b.At(-1))
}

func TestBoard_Describe(t *testing.T) {
	tiles := BuildBoard(ClassicPattern).Describe(LangEN)
	assert.Len(t, tiles, BoardSize)
	assert.Equal(t, "Earthly Life (Start)", tiles[0].Label)
	assert.Equal(t, "Tithe", tiles[9].Label)
	assert.Equal(t, "#f3e8ff", tiles[9].Color)

	pt := BuildBoard(ClassicPattern).Describe(LangPT)
	assert.Equal(t, "Dízimo", pt[9].Label)
}

func TestCountTileKind(t *testing.T) {
	b := BuildBoard(ClassicPattern)
	total := 0
	for _, kind := range AllTileKinds {
		total += CountTileKind(b, kind)
	}
	assert.Equal(t, BoardSize, total)
	assert.Equal(t, 2, CountTileKind(b, TileStart))
}

func TestTileLabel_Unknown(t *testing.T) {
	assert.Equal(t, "lava", TileLabel("lava", LangEN))
	assert.Equal(t, "#f0f0f0", TileColor("lava"))
}
