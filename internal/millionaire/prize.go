package millionaire

var prizes = [LevelCount]int64{
	100, 200, 300, 500, 1_000,
	2_000, 4_000, 8_000, 16_000, 32_000,
	64_000, 125_000, 250_000, 500_000, 1_000_000,
}

// checkpointLevels are the "fireproof" levels: once answered, their amount
// is kept even if a later answer is wrong.
var checkpointLevels = []int{4, 9, 14}

// Prize returns the table amount for a fully answered level, or 0 when level
// is out of range (e.g. -1 for "nothing answered yet").
func Prize(level int) int64 {
	if level < MinLevel || level > MaxLevel {
		return 0
	}
	return prizes[level]
}

// MaxPrize is what a won game pays.
func MaxPrize() int64 {
	return prizes[MaxLevel]
}

// CheckpointPrize returns the guaranteed amount for a game whose highest
// answered level is answeredLevel.
func CheckpointPrize(answeredLevel int) int64 {
	best := -1
	for _, l := range checkpointLevels {
		if l <= answeredLevel {
			best = l
		}
	}
	return Prize(best)
}

// IsCheckpoint reports whether level is a fireproof level.
func IsCheckpoint(level int) bool {
	for _, l := range checkpointLevels {
		if l == level {
			return true
		}
	}
	return false
}

// PrizeTable returns a copy of the level → amount table.
func PrizeTable() []int64 {
	out := make([]int64, LevelCount)
	copy(out, prizes[:])
	return out
}
