// Package scoring implements the discrete score ladder used for article reactions.
package scoring

// Direction of a score step
type Direction string

// enum of step directions
const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ladder is the ordered set of allowed article scores
var ladder = [...]int{-10, -7, -4, 0, 4, 7, 10}

// Ladder returns a copy of the allowed scores in ascending order
func Ladder() []int {
	res := make([]int, len(ladder))
	copy(res, ladder[:])
	return res
}

// Min returns the lowest ladder value
func Min() int { return ladder[0] }

// Max returns the highest ladder value
func Max() int { return ladder[len(ladder)-1] }

// Number covers inputs the ladder can step from. Current scores are normally ints,
// but externally written values may be anything.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Next returns the ladder value one step from current in the given direction.
// Up picks the smallest value strictly greater than current, down the largest value strictly
// less than current. Stepping past either end clamps to that end, there is no wraparound.
func Next[N Number](current N, dir Direction) int {
	c := float64(current)
	if dir == Up {
		for _, v := range ladder {
			if float64(v) > c {
				return v
			}
		}
		return Max()
	}

	for i := len(ladder) - 1; i >= 0; i-- {
		if float64(ladder[i]) < c {
			return ladder[i]
		}
	}
	return Min()
}

// Nearest snaps an arbitrary score to the closest ladder value.
// Ties resolve toward zero, so a machine score never looks stronger than it is.
func Nearest(v float64) int {
	best := ladder[0]
	bestDist := abs(v - float64(best))
	for _, l := range ladder[1:] {
		d := abs(v - float64(l))
		if d < bestDist || (d == bestDist && abs(float64(l)) < abs(float64(best))) {
			best, bestDist = l, d
		}
	}
	return best
}

// IsMember reports whether v is one of the ladder values
func IsMember(v int) bool {
	for _, l := range ladder {
		if l == v {
			return true
		}
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
