package tetris

import "time"

var lineAwards = [4]int{40, 100, 300, 1200}

// Award is the score for clearing lines rows at once on level.
func Award(lines, level int) int {
	if lines <= 0 {
		return 0
	}
	if lines > len(lineAwards) {
		lines = len(lineAwards)
	}
	return lineAwards[lines-1] * level
}

// LevelFor derives the level from a cumulative score.
func LevelFor(score int) int {
	return score/1000 + 1
}

const (
	baseInterval = 1000 * time.Millisecond
	levelStep    = 100 * time.Millisecond
	minInterval  = 100 * time.Millisecond
)

// IntervalFor is the gravity period at level.
func IntervalFor(level int) time.Duration {
	interval := baseInterval - time.Duration(level-1)*levelStep
	if interval < minInterval {
		return minInterval
	}
	return interval
}
