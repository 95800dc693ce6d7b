package engine

// Wrap reduces a position onto the board, handling negative values.
func Wrap(p int) int {
	return ((p % BoardSize) + BoardSize) % BoardSize
}

// ClampPlayers bounds a requested player count to [MinPlayers, MaxPlayers].
func ClampPlayers(n int) int {
	if n < MinPlayers {
		return MinPlayers
	}
	if n > MaxPlayers {
		return MaxPlayers
	}
	return n
}

// CountTileKind counts the positions of a specific kind on the board
func CountTileKind(b Board, kind TileKind) int {
	count := 0
	for _, k := range b {
		if k == kind {
			count++
		}
	}
	return count
}

// Leader returns the index of the player with the most faith; ties go to the
// earliest seat. Returns -1 for an empty list.
func Leader(players []Player) int {
	best := -1
	for i, p := range players {
		if best == -1 || p.Faith > players[best].Faith {
			best = i
		}
	}
	return best
}

func intPtr(v int) *int {
	return &v
}
