package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/campo-minato/internal/mines"
)

func newSession(t *testing.T) *mines.Session {
	t.Helper()
	s, err := mines.NewSessionFromLayout(4, make([]bool, 16))
	require.NoError(t, err)
	return s
}

func TestCreateAndWith(t *testing.T) {
	s := New(10, time.Minute)
	session := newSession(t)

	id, err := s.Create(session)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, s.Len())

	err = s.With(id, func(got *mines.Session) error {
		assert.Same(t, session, got)
		return nil
	})
	assert.NoError(t, err)
}

func TestWithPassesError(t *testing.T) {
	s := New(10, time.Minute)
	id, err := s.Create(newSession(t))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.With(id, func(*mines.Session) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestNotFound(t *testing.T) {
	s := New(10, time.Minute)
	err := s.With("missing", func(*mines.Session) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete("missing"), ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := New(10, time.Minute)
	id, err := s.Create(newSession(t))
	require.NoError(t, err)

	require.NoError(t, s.Delete(id))
	assert.Zero(t, s.Len())
	err = s.With(id, func(*mines.Session) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLimit(t *testing.T) {
	s := New(2, time.Minute)
	for range 2 {
		_, err := s.Create(newSession(t))
		require.NoError(t, err)
	}
	_, err := s.Create(newSession(t))
	assert.ErrorIs(t, err, ErrFull)
}

func TestSweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New(10, time.Minute)
	s.now = func() time.Time { return now }

	stale, err := s.Create(newSession(t))
	require.NoError(t, err)
	now = now.Add(45 * time.Second)
	fresh, err := s.Create(newSession(t))
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	assert.Equal(t, 1, s.Sweep())
	assert.ErrorIs(t, s.With(stale, func(*mines.Session) error { return nil }), ErrNotFound)
	assert.NoError(t, s.With(fresh, func(*mines.Session) error { return nil }))

	// With refreshed fresh
	now = now.Add(59 * time.Second)
	assert.Zero(t, s.Sweep())
}

func TestConcurrentClicks(t *testing.T) {
	s := New(10, time.Minute)
	id, err := s.Create(newSession(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.With(id, func(session *mines.Session) error {
				_, err := session.Click(i%4, i/4)
				return err
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	err = s.With(id, func(session *mines.Session) error {
		assert.Equal(t, 16, session.Revealed().Count())
		return nil
	})
	assert.NoError(t, err)
}
