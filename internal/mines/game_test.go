package mines

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cornerMineSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSessionFromLayout(3, layoutWith(3, [2]int{0, 0}))
	require.NoError(t, err)
	return s
}

func TestNewSessionStartsHidden(t *testing.T) {
	s, err := NewSession(20, DefaultMineProbability, testRand())
	require.NoError(t, err)
	assert.Equal(t, 20, s.Size())
	assert.Equal(t, 20, s.Board().Size())
	assert.Zero(t, s.Revealed().Count())
	assert.Zero(t, s.Detonated().Count())
	for _, c := range s.View() {
		assert.Equal(t, Unknown, c)
	}
}

func TestNewSessionNilRand(t *testing.T) {
	s, err := NewSession(4, 0.5, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Size())
}

func TestClickMineDetonates(t *testing.T) {
	s := cornerMineSession(t)

	click, err := s.Click(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Click{X: 0, Y: 0, Outcome: Detonated}, click)

	detonated, err := s.Detonated().IsDetonated(0, 0)
	require.NoError(t, err)
	assert.True(t, detonated)
	revealed, err := s.Revealed().IsRevealed(0, 0)
	require.NoError(t, err)
	assert.False(t, revealed)

	// detonating twice changes nothing
	_, err = s.Click(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Detonated().Count())
	assert.Zero(t, s.Revealed().Count())
}

func TestClickZeroFloodFills(t *testing.T) {
	s := cornerMineSession(t)

	click, err := s.Click(2, 2)
	require.NoError(t, err)
	assert.Equal(t, Revealed, click.Outcome)
	assert.Equal(t, 8, click.Revealed)

	revealed, err := s.Revealed().IsRevealed(0, 0)
	require.NoError(t, err)
	assert.False(t, revealed)
	detonated, err := s.Detonated().IsDetonated(0, 0)
	require.NoError(t, err)
	assert.False(t, detonated)
}

func TestClickNumberRevealsSingleCell(t *testing.T) {
	s := cornerMineSession(t)

	click, err := s.Click(1, 0)
	require.NoError(t, err)
	assert.Equal(t, Click{X: 1, Y: 0, Outcome: Revealed, Revealed: 1}, click)
	assert.Equal(t, 1, s.Revealed().Count())

	click, err = s.Click(1, 0)
	require.NoError(t, err)
	assert.Equal(t, Unchanged, click.Outcome)
	assert.Equal(t, 1, s.Revealed().Count())
}

func TestDetonationIndependence(t *testing.T) {
	r := testRand()
	s, err := NewSession(12, 0.25, r)
	require.NoError(t, err)

	for range 300 {
		_, err := s.Click(r.IntN(12), r.IntN(12))
		require.NoError(t, err)
	}
	for y := range 12 {
		for x := range 12 {
			revealed, err := s.Revealed().IsRevealed(x, y)
			require.NoError(t, err)
			detonated, err := s.Detonated().IsDetonated(x, y)
			require.NoError(t, err)
			assert.False(t, revealed && detonated, "cell (%d, %d)", x, y)

			c, err := s.Board().Get(x, y)
			require.NoError(t, err)
			if c.IsMine() {
				assert.False(t, revealed)
			} else {
				assert.False(t, detonated)
			}
		}
	}
}

func TestClickOutOfBounds(t *testing.T) {
	s := cornerMineSession(t)
	for _, p := range [][2]int{{-1, 0}, {3, 0}, {0, 3}, {0, -7}} {
		_, err := s.Click(p[0], p[1])
		assert.ErrorIs(t, err, ErrOutOfBounds)
	}
	_, err := s.Detonated().IsDetonated(3, 3)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestHandleInputMapsPixels(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		x, y   int
	}{
		{"origin", 0, 0, 0, 0},
		{"inside first tile", 39.9, 39, 0, 0},
		{"tile edge", 40, 0, 1, 0},
		{"last tile", 119, 80, 2, 2},
		{"fractional", 41.5, 79.99, 1, 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := cornerMineSession(t)
			click, err := s.HandleInput(test.px, test.py, 40)
			require.NoError(t, err)
			assert.Equal(t, test.x, click.X)
			assert.Equal(t, test.y, click.Y)
		})
	}
}

func TestHandleInputDispatch(t *testing.T) {
	s := cornerMineSession(t)

	click, err := s.HandleInput(10, 10, 40)
	require.NoError(t, err)
	assert.Equal(t, Detonated, click.Outcome)

	click, err = s.HandleInput(100, 100, 40)
	require.NoError(t, err)
	assert.Equal(t, 8, click.Revealed)

	assert.Equal(t, Grid{
		ExplodedMine, 1, 0,
		1, 1, 0,
		0, 0, 0,
	}, s.View())
}

func TestHandleInputRejects(t *testing.T) {
	s := cornerMineSession(t)

	for _, p := range [][2]float64{
		{-1, 0}, {0, -0.5}, {120, 0}, {0, 120},
		{math.NaN(), 0}, {0, math.Inf(1)}, {math.Inf(-1), 3},
	} {
		_, err := s.HandleInput(p[0], p[1], 40)
		assert.ErrorIs(t, err, ErrOutOfBounds, "pixel %v", p)
	}

	_, err := s.HandleInput(0, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	assert.Zero(t, s.Revealed().Count())
	assert.Zero(t, s.Detonated().Count())
}

func TestViewToString(t *testing.T) {
	s := cornerMineSession(t)
	_, err := s.Click(1, 1)
	require.NoError(t, err)
	_, err = s.Click(0, 0)
	require.NoError(t, err)

	assert.Equal(t, "X     \n  1   \n      \n", s.View().ToString(3))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "detonated", Detonated.String())
	assert.Equal(t, "Outcome(9)", Outcome(9).String())
	b, err := Revealed.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "revealed", string(b))
}
