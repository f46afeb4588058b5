package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/HexTactics/internal/testutil"
)

type stubFaction bool

func (s stubFaction) IsDestroyed() bool { return bool(s) }

func TestCheckDestruction(t *testing.T) {
	wc := NewWinConditionChecker(testutil.NopLogger(), 10)

	tests := []struct {
		name          string
		player, enemy bool
		expected      Outcome
	}{
		{"both standing", false, false, OutcomeNone},
		{"enemy destroyed", false, true, OutcomeGameWon},
		{"player destroyed", true, false, OutcomeGameOver},
		{"both destroyed", true, true, OutcomeGameWon},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, wc.CheckDestruction(stubFaction(tt.player), stubFaction(tt.enemy)))
		})
	}
}

func TestCheckEndOfTurn(t *testing.T) {
	wc := NewWinConditionChecker(testutil.NopLogger(), 3)
	alive := stubFaction(false)

	assert.Equal(t, OutcomeNone, wc.CheckEndOfTurn(alive, alive, 2))
	assert.Equal(t, OutcomeNone, wc.CheckEndOfTurn(alive, alive, 3))
	assert.Equal(t, OutcomeOutOfTurns, wc.CheckEndOfTurn(alive, alive, 4))

	// Destruction takes priority over the turn limit
	assert.Equal(t, OutcomeGameOver, wc.CheckEndOfTurn(stubFaction(true), alive, 4))
	assert.Equal(t, 3, wc.MaxTurns())
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "None", OutcomeNone.String())
	assert.Equal(t, "GameWon", OutcomeGameWon.String())
	assert.Equal(t, "GameOver", OutcomeGameOver.String())
	assert.Equal(t, "OutOfTurns", OutcomeOutOfTurns.String())
	assert.False(t, OutcomeNone.IsTerminal())
	assert.True(t, OutcomeOutOfTurns.IsTerminal())
}
