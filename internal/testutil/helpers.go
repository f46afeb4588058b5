package testutil

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// ScriptedDice returns queued values from Intn, in order. Values are clamped
// to [0, n). Once the script runs out it returns 0, the lowest roll.
type ScriptedDice struct {
	values []int
	Calls  int
}

// NewScriptedDice queues raw Intn results.
func NewScriptedDice(values ...int) *ScriptedDice {
	return &ScriptedDice{values: values}
}

// DiceForDamage queues the Intn results that make RollDamage return each of
// the given damage amounts (multiples of 100).
func DiceForDamage(damage ...int) *ScriptedDice {
	values := make([]int, len(damage))
	for i, d := range damage {
		values[i] = d/100 - 1
	}
	return NewScriptedDice(values...)
}

// Intn implements core.Dice.
func (d *ScriptedDice) Intn(n int) int {
	d.Calls++
	if len(d.values) == 0 {
		return 0
	}
	v := d.values[0]
	d.values = d.values[1:]
	return max(0, min(v, n-1))
}

// AssertPanic asserts that the given function panics
func AssertPanic(t *testing.T, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic but none occurred: %v", msgAndArgs)
		}
	}()
	f()
}
