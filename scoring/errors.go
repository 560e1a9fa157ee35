package scoring

import (
	"errors"
	"math"
)

// ErrNotFound marks a lookup of a user, food or plan that does not exist.
var ErrNotFound = errors.New("not found")

// NotFoundError carries the message shown to the user; errors.Is(err, ErrNotFound) holds for it.
type NotFoundError struct{ Msg string }

func (e *NotFoundError) Error() string { return e.Msg }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func netCarbs(carbs, fiber float64) float64 {
	return math.Max(0, carbs-fiber)
}
