package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRegistry_GetOrCreate(t *testing.T) {
	r := NewSessionRegistry[*int]()

	calls := 0
	create := func() (*int, error) {
		calls++
		v := calls
		return &v, nil
	}

	a, err := r.GetOrCreate(1, create)
	require.NoError(t, err)
	b, err := r.GetOrCreate(1, create)
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, r.Len())

	_, err = r.GetOrCreate(2, func() (*int, error) { return nil, errors.New("boom") })
	assert.Error(t, err)
	assert.Equal(t, 1, r.Len())

	c, err := r.GetOrCreate(2, create)
	require.NoError(t, err)
	assert.Equal(t, 2, *c)
	assert.Equal(t, 2, r.Len())
}

func TestSessionRegistry_EvictIdle(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r := NewSessionRegistry[string]()
	r.now = func() time.Time { return now }

	_, _ = r.GetOrCreate(1, func() (string, error) { return "old", nil })

	now = now.Add(time.Hour)
	_, _ = r.GetOrCreate(2, func() (string, error) { return "fresh", nil })

	evicted := r.EvictIdle(30 * time.Minute)
	assert.Equal(t, 1, evicted)

	assert.Equal(t, 1, r.Len())

	v, err := r.GetOrCreate(2, func() (string, error) { return "recreated", nil })
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)

	v, err = r.GetOrCreate(1, func() (string, error) { return "recreated", nil })
	require.NoError(t, err)
	assert.Equal(t, "recreated", v)
}
