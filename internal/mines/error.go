package mines

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds          = errors.New("position out of bounds")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

func outOfBounds(x, y, size int) error {
	return fmt.Errorf("%w: (%d, %d) not in [0, %d)", ErrOutOfBounds, x, y, size)
}
