package shows

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShow(t *testing.T, capacity int) *AutoShow {
	t.Helper()
	s, err := NewAutoShow("Lahore Auto Expo", "Lahore", "Expo Centre", time.Now().AddDate(0, 1, 0), valueobject.NewMoneyPKRFromFloat(1500), capacity)
	require.NoError(t, err)
	return s
}

func TestNewAutoShow(t *testing.T) {
	s := newShow(t, 100)
	assert.Equal(t, StatusUpcoming, s.Status)
	assert.Equal(t, 0, s.Registered)

	_, err := NewAutoShow("", "Lahore", "Expo Centre", time.Now(), valueobject.ZeroPKR(), 10)
	assert.Error(t, err)
}

func TestShowLifecycle(t *testing.T) {
	s := newShow(t, 100)

	require.NoError(t, s.Open())
	assert.Equal(t, StatusOpen, s.Status)

	require.NoError(t, s.Close())
	assert.Equal(t, StatusClosed, s.Status)

	assert.Error(t, s.Open())
	require.NoError(t, s.Cancel())
	assert.Error(t, s.Cancel())
}

func TestRegister(t *testing.T) {
	s := newShow(t, 2)

	// not open yet
	_, err := s.Register(uuid.New())
	assert.Error(t, err)

	require.NoError(t, s.Open())

	reg, err := s.Register(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, s.ID, reg.ShowID)
	assert.Equal(t, 1, s.Registered)

	_, err = s.Register(uuid.New())
	require.NoError(t, err)
	assert.True(t, s.IsFull())

	_, err = s.Register(uuid.New())
	assert.Error(t, err)
	assert.Equal(t, 2, s.Registered)
}

func TestUnlimitedCapacity(t *testing.T) {
	s := newShow(t, 0)
	require.NoError(t, s.Open())

	for range 10 {
		_, err := s.Register(uuid.New())
		require.NoError(t, err)
	}
	assert.False(t, s.IsFull())
}
