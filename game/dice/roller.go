package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged dice rolling and
// uniform draws.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewRoller creates a Roller drawing from src. A nil logger disables logging.
func NewRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Roll throws count dice with the given number of sides and logs the result
// at debug level.
//
// Precondition: count >= 1, sides >= 2.
func (r *Roller) Roll(count, sides int) Roll {
	faces := make([]int, count)
	for i := range faces {
		faces[i] = r.src.Intn(sides) + 1
	}
	result := Roll{Dice: faces}
	r.logger.Debug("dice roll",
		zap.Int("count", count),
		zap.Int("sides", sides),
		zap.Ints("dice", result.Dice),
		zap.Int("total", result.Total()),
	)
	return result
}

// Pick returns a uniform index in [0, n), used for deck and question draws.
func (r *Roller) Pick(n int) int {
	return r.src.Intn(n)
}
