package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapGameStateError(t *testing.T) {
	tests := []struct {
		name     string
		turn     int
		phase    string
		err      error
		expected string
		isNil    bool
	}{
		{
			name:  "nil error returns nil",
			turn:  5,
			phase: "end turn",
			err:   nil,
			isNil: true,
		},
		{
			name:     "end turn error",
			turn:     12,
			phase:    "end turn",
			err:      ErrGameOver,
			expected: "game turn 12 [end turn]: game is over",
		},
		{
			name:     "economy error",
			turn:     3,
			phase:    "economy",
			err:      fmt.Errorf("roster out of sync"),
			expected: "game turn 3 [economy]: roster out of sync",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapGameStateError(tt.turn, tt.phase, tt.err)
			if tt.isNil {
				assert.Nil(t, wrapped)
				return
			}
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.expected, wrapped.Error())
			assert.True(t, errors.Is(wrapped, tt.err))
		})
	}
}

func TestWrapUnitError(t *testing.T) {
	u := NewUnit(PlayerFaction, UnitLand, UnitStats{Strength: 10}, Coordinate{2, 3})

	assert.Nil(t, WrapUnitError(u, "move", nil))

	err := WrapUnitError(u, "move", ErrNoPath)
	require.Error(t, err)
	assert.Equal(t, "Player unit at (2,3): move: no path to destination", err.Error())
	assert.ErrorIs(t, err, ErrNoPath)

	err = WrapUnitError(nil, "attack", ErrNoSelection)
	assert.Equal(t, "attack: no unit selected", err.Error())
}

func TestGameError(t *testing.T) {
	t.Run("with faction", func(t *testing.T) {
		err := NewGameError(7, EnemyFaction, "recruit", ErrInsufficientGold)
		assert.Equal(t, "turn 7: Enemy recruit: insufficient gold", err.Error())
		assert.True(t, errors.Is(err, ErrInsufficientGold))
	})

	t.Run("without faction", func(t *testing.T) {
		err := NewGameError(50, NeutralFaction, "turn limit check", ErrGameOver)
		assert.Equal(t, "turn 50: turn limit check: game is over", err.Error())
	})

	t.Run("errors.As functionality", func(t *testing.T) {
		gameErr := NewGameError(9, PlayerFaction, "charge", ErrOutOfRange)
		wrapped := fmt.Errorf("dispatch: %w", gameErr)

		var extracted *GameError
		require.True(t, errors.As(wrapped, &extracted))
		assert.Equal(t, 9, extracted.Turn)
		assert.Equal(t, PlayerFaction, extracted.Faction)
		assert.Equal(t, "charge", extracted.Operation)
	})
}
