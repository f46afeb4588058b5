package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/HexTactics/internal/game/anim"
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/events"
	"github.com/mitchelldurbincs/HexTactics/internal/game/mapgen"
	"github.com/mitchelldurbincs/HexTactics/internal/game/states"
	"github.com/mitchelldurbincs/HexTactics/internal/testutil"
)

func TestMoveUnit(t *testing.T) {
	f := newFixture(t, plains7x5,
		mapgen.Placement{Capital: at(0, 0), LandUnits: []core.Coordinate{at(1, 2)}},
		mapgen.Placement{Capital: at(6, 4)},
	)
	b := f.board
	u := f.unitAt(at(1, 2))
	require.NoError(t, b.SelectUnit(u))

	require.NoError(t, b.MoveUnit(u, b.Node(at(3, 2))))

	assert.Nil(t, b.Node(at(1, 2)).OccupyingUnit, "origin cleared")
	assert.Same(t, u, b.Node(at(3, 2)).OccupyingUnit)
	assert.Equal(t, at(3, 2), u.Position())
	assert.Equal(t, 1, u.MoveLeft)
	assert.False(t, b.IsBusy())

	moved := f.recorder.OfType(events.TypeUnitMoved)
	require.Len(t, moved, 1)
	e := moved[0].(*events.UnitMovedEvent)
	assert.Equal(t, at(1, 2), e.From)
	assert.Equal(t, at(3, 2), e.To)
	assert.Equal(t, 2, e.Cost)

	require.Len(t, f.sink.paths, 1)
	assert.Equal(t, at(1, 2), f.sink.paths[0][0])
	assert.Equal(t, at(3, 2), f.sink.paths[0][2])
	assert.Equal(t, 1, f.sink.moves)

	// Selection follows the unit with its reduced allowance
	assert.Same(t, b.Node(at(3, 2)), b.Selection().Node)
	for n := range b.MoveRange() {
		assert.Equal(t, 1, n.Position.DistanceTo(at(3, 2)))
	}
}

func TestMoveUnitRejected(t *testing.T) {
	layout := `
		. . . . . . .
		. . . . . . .
		. . . ~ . . .
		. . . . . . .
		. . . . . . .`

	tests := []struct {
		name    string
		prepare func(b *Board, u *core.Unit)
		dest    core.Coordinate
		wantErr error
	}{
		{"too far", nil, at(5, 2), core.ErrOutOfRange},
		{"sea", nil, at(3, 2), core.ErrNoPath},
		{"occupied", nil, at(6, 4), core.ErrNoPath},
		{"spent", func(b *Board, u *core.Unit) { u.MoveLeft = 0 }, at(2, 2), core.ErrNoMovesLeft},
		{"dead", func(b *Board, u *core.Unit) { u.TakeDamage(u.Strength) }, at(2, 2), core.ErrNoSelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, layout,
				mapgen.Placement{Capital: at(0, 0), LandUnits: []core.Coordinate{at(1, 2)}},
				mapgen.Placement{Capital: at(6, 3), LandUnits: []core.Coordinate{at(6, 4)}},
			)
			u := f.unitAt(at(1, 2))
			if tt.prepare != nil {
				tt.prepare(f.board, u)
			}

			err := f.board.MoveUnit(u, f.board.Node(tt.dest))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Same(t, u, f.board.Node(at(1, 2)).OccupyingUnit, "unit stays put")
			assert.False(t, f.board.IsBusy())
			assert.Len(t, f.recorder.OfType(events.TypeActionRejected), 1)
			assert.Empty(t, f.recorder.OfType(events.TypeUnitMoved))
		})
	}
}

func TestMoveUnitWithTicker(t *testing.T) {
	ticker := anim.NewTicker(testutil.NopLogger())
	f := newFixture(t, plains7x5,
		mapgen.Placement{Capital: at(0, 0), LandUnits: []core.Coordinate{at(1, 2)}},
		mapgen.Placement{Capital: at(6, 4)},
		withScheduler(ticker),
	)
	b := f.board
	u := f.unitAt(at(1, 2))

	require.NoError(t, b.MoveUnit(u, b.Node(at(3, 2))))
	assert.True(t, b.IsBusy())
	assert.Same(t, u, b.Node(at(1, 2)).OccupyingUnit, "nothing committed while in flight")

	// Everything else is refused while the move plays
	assert.ErrorIs(t, b.SelectAtPosition(at(0, 0)), core.ErrBusy)
	assert.ErrorIs(t, b.MoveUnit(u, b.Node(at(2, 2))), core.ErrBusy)
	_, err := b.RecruitArmy()
	assert.ErrorIs(t, err, core.ErrBusy)
	assert.ErrorIs(t, b.EndTurn(), core.ErrBusy)
	assert.Equal(t, states.PhasePlayerTurn, b.Phase())

	// Two nodes at the default 150ms a step
	ticker.Advance(150 * time.Millisecond)
	assert.True(t, b.IsBusy())
	ticker.Advance(150 * time.Millisecond)

	assert.False(t, b.IsBusy())
	assert.Nil(t, b.Node(at(1, 2)).OccupyingUnit)
	assert.Same(t, u, b.Node(at(3, 2)).OccupyingUnit)
	assert.Equal(t, 2, f.sink.moves)
}

func TestStartCombat(t *testing.T) {
	layout := `
		. . . . . . .
		. . . . . . .
		. . . h . . .
		. . . . . . .
		. . . . . . .`
	f := newFixture(t, layout,
		mapgen.Placement{Capital: at(0, 0), LandUnits: []core.Coordinate{at(2, 2)}},
		mapgen.Placement{Capital: at(6, 4), LandUnits: []core.Coordinate{at(3, 2)}},
		withDice(testutil.DiceForDamage(300, 200)),
	)
	b := f.board
	attacker := f.unitAt(at(2, 2))
	defender := f.unitAt(at(3, 2))

	require.NoError(t, b.StartCombat(attacker, b.Node(at(3, 2))))

	// Defender on a hill (defense 2) answers with 200 + 2*100
	assert.Equal(t, 700, defender.Strength)
	assert.Equal(t, 600, attacker.Strength)
	assert.Equal(t, 0, attacker.AttacksLeft)
	assert.False(t, b.IsBusy())
	assert.Equal(t, 1, f.sink.lunges)

	resolved := f.recorder.OfType(events.TypeCombatResolved)
	require.Len(t, resolved, 1)
	e := resolved[0].(*events.CombatResolvedEvent)
	assert.Equal(t, 300, e.DamageDealt)
	assert.Equal(t, 400, e.DamageTaken)
	assert.False(t, e.Charge)
	assert.Empty(t, f.recorder.OfType(events.TypePieceDestroyed))

	// No second attack this turn
	err := b.StartCombat(attacker, b.Node(at(3, 2)))
	assert.ErrorIs(t, err, core.ErrNoAttacksLeft)
}

func TestStartCombatRejected(t *testing.T) {
	f := newFixture(t, plains7x5,
		mapgen.Placement{Capital: at(0, 0), LandUnits: []core.Coordinate{at(2, 2), at(2, 3)}},
		mapgen.Placement{Capital: at(6, 4), LandUnits: []core.Coordinate{at(5, 2)}},
	)
	b := f.board
	u := f.unitAt(at(2, 2))

	assert.ErrorIs(t, b.StartCombat(u, b.Node(at(5, 2))), core.ErrNotAdjacent)
	assert.ErrorIs(t, b.StartCombat(u, b.Node(at(3, 2))), core.ErrNoTarget)
	assert.ErrorIs(t, b.StartCombat(u, b.Node(at(2, 3))), core.ErrNoTarget, "friendly unit")
	assert.ErrorIs(t, b.StartCombat(f.unitAt(at(5, 2)), b.Node(at(4, 2))), core.ErrNotOwned)
	assert.ErrorIs(t, b.StartCombat(u, nil), core.ErrInvalidCoordinates)
	assert.Equal(t, 1, u.AttacksLeft)
}

func TestCombatDestroysDefender(t *testing.T) {
	f := newFixture(t, plains7x5,
		mapgen.Placement{Capital: at(0, 0), LandUnits: []core.Coordinate{at(2, 2)}},
		mapgen.Placement{Capital: at(6, 4), LandUnits: []core.Coordinate{at(3, 2), at(5, 0)}},
		withDice(testutil.DiceForDamage(300, 400)),
	)
	b := f.board
	attacker := f.unitAt(at(2, 2))
	defender := f.unitAt(at(3, 2))
	defender.Strength = 300

	require.NoError(t, b.StartCombat(attacker, b.Node(at(3, 2))))

	// The dying defender still strikes back
	assert.Equal(t, 600, attacker.Strength)
	assert.False(t, defender.IsAlive())
	assert.Nil(t, b.Node(at(3, 2)).OccupyingUnit)
	assert.False(t, b.EnemyFaction().Owns(defender))
	assert.Len(t, b.EnemyFaction().Units(), 1)

	destroyed := f.recorder.OfType(events.TypePieceDestroyed)
	require.Len(t, destroyed, 1)
	assert.Equal(t, defender.ID(), destroyed[0].(*events.PieceDestroyedEvent).PieceID)

	// A second notification is a no-op
	b.NotifyGamePieceDestruction(defender)
	assert.Len(t, f.recorder.OfType(events.TypePieceDestroyed), 1)
	assert.Equal(t, states.PhasePlayerTurn, b.Phase(), "losing a unit never ends the match")
}

func TestCombatDestroysAttacker(t *testing.T) {
	f := newFixture(t, plains7x5,
		mapgen.Placement{Capital: at(0, 0), LandUnits: []core.Coordinate{at(2, 2)}},
		mapgen.Placement{Capital: at(6, 4), LandUnits: []core.Coordinate{at(3, 2)}},
		withDice(testutil.DiceForDamage(100, 500)),
	)
	b := f.board
	attacker := f.unitAt(at(2, 2))
	attacker.Strength = 500
	require.NoError(t, b.SelectUnit(attacker))

	require.NoError(t, b.StartCombat(attacker, b.Node(at(3, 2))))

	assert.False(t, attacker.IsAlive())
	assert.Nil(t, b.Node(at(2, 2)).OccupyingUnit)
	assert.Empty(t, b.PlayerFaction().Units())
	assert.Equal(t, SelectionIdle, b.Selection().Mode, "dead unit is deselected")
	assert.Equal(t, 900, f.unitAt(at(3, 2)).Strength)
}

func TestDestroyingLastBuildingWins(t *testing.T) {
	f := newFixture(t, plains7x5,
		mapgen.Placement{Capital: at(0, 0), LandUnits: []core.Coordinate{at(5, 4)}},
		mapgen.Placement{Capital: at(6, 4)},
		withDice(testutil.DiceForDamage(300, 100)),
	)
	b := f.board
	attacker := f.unitAt(at(5, 4))
	capital := b.EnemyFaction().Capital()
	capital.Durability = 300

	require.NoError(t, b.StartCombat(attacker, b.Node(at(6, 4))))

	// Building roll 100 plus capital defense 2*100
	assert.Equal(t, 700, attacker.Strength)
	assert.Nil(t, b.Node(at(6, 4)).LocalBuilding)
	assert.True(t, b.EnemyFaction().IsDestroyed())
	assert.Nil(t, b.EnemyFaction().Capital())

	assert.Equal(t, states.PhaseGameWon, b.Phase())
	assert.True(t, b.IsOver())
	assert.Equal(t, core.PlayerFaction, b.Context().Winner)

	types := f.recorder.Types()
	assert.Contains(t, types, events.TypeFactionDestroyed)
	ended := f.recorder.OfType(events.TypeGameEnded)
	require.Len(t, ended, 1)
	assert.Equal(t, "GameWon", ended[0].(*events.GameEndedEvent).Outcome)
	assert.Equal(t, core.PlayerFaction, ended[0].(*events.GameEndedEvent).Winner)

	// Nothing is accepted once the match is decided
	assert.ErrorIs(t, b.SelectAtPosition(at(5, 4)), core.ErrGameOver)
	assert.ErrorIs(t, b.EndTurn(), core.ErrGameOver)
	_, err := b.RecruitArmy()
	assert.ErrorIs(t, err, core.ErrGameOver)
}

func TestLosingLastBuildingLoses(t *testing.T) {
	f := newFixture(t, plains7x5,
		mapgen.Placement{Capital: at(0, 0)},
		mapgen.Placement{Capital: at(6, 4)},
	)
	b := f.board
	capital := b.PlayerFaction().Capital()
	capital.TakeDamage(capital.Durability)

	b.NotifyGamePieceDestruction(capital)

	assert.Equal(t, states.PhaseGameOver, b.Phase())
	assert.Equal(t, core.EnemyFaction, b.Context().Winner)
	ended := f.recorder.OfType(events.TypeGameEnded)
	require.Len(t, ended, 1)
	assert.Equal(t, "GameOver", ended[0].(*events.GameEndedEvent).Outcome)
}

func TestLosingATownKeepsPlaying(t *testing.T) {
	f := newFixture(t, plains7x5,
		mapgen.Placement{Capital: at(0, 0)},
		mapgen.Placement{Capital: at(6, 4), Towns: []core.Coordinate{at(4, 4)}},
	)
	b := f.board
	town := b.Node(at(4, 4)).LocalBuilding
	require.NotNil(t, town)

	b.NotifyGamePieceDestruction(town)

	assert.Nil(t, b.Node(at(4, 4)).LocalBuilding)
	assert.Len(t, b.EnemyFaction().Buildings(), 1)
	assert.Equal(t, states.PhasePlayerTurn, b.Phase())
	assert.Empty(t, f.recorder.OfType(events.TypeFactionDestroyed))
}

func TestStartCharge(t *testing.T) {
	f := newFixture(t, plains7x5,
		mapgen.Placement{Capital: at(0, 0), LandUnits: []core.Coordinate{at(0, 2)}},
		mapgen.Placement{Capital: at(6, 4), LandUnits: []core.Coordinate{at(3, 2)}},
		withDice(testutil.DiceForDamage(300, 200)),
	)
	b := f.board
	u := f.unitAt(at(0, 2))
	target := b.Node(at(3, 2))

	require.NoError(t, b.SelectUnit(u))
	require.True(t, b.ChargeRange().Contains(target))
	assert.Same(t, b.Node(at(2, 2)), b.ApproachNode(target))

	require.NoError(t, b.StartCharge(u, target))

	assert.Equal(t, at(2, 2), u.Position())
	assert.Same(t, u, b.Node(at(2, 2)).OccupyingUnit)
	assert.Nil(t, b.Node(at(0, 2)).OccupyingUnit)
	assert.Equal(t, 1, u.MoveLeft)
	assert.Equal(t, 0, u.AttacksLeft)
	assert.Equal(t, 800, u.Strength)
	assert.Equal(t, 700, target.OccupyingUnit.Strength)
	assert.False(t, b.IsBusy())

	types := f.recorder.Types()
	moved := indexOf(types, events.TypeUnitMoved)
	fought := indexOf(types, events.TypeCombatResolved)
	require.GreaterOrEqual(t, moved, 0)
	assert.Greater(t, fought, moved, "move lands before the attack")
	assert.True(t, f.recorder.OfType(events.TypeCombatResolved)[0].(*events.CombatResolvedEvent).Charge)
}

func TestStartChargeWithTicker(t *testing.T) {
	ticker := anim.NewTicker(testutil.NopLogger())
	f := newFixture(t, plains7x5,
		mapgen.Placement{Capital: at(0, 0), LandUnits: []core.Coordinate{at(0, 2)}},
		mapgen.Placement{Capital: at(6, 4), LandUnits: []core.Coordinate{at(3, 2)}},
		withDice(testutil.DiceForDamage(300, 200)),
		withScheduler(ticker),
	)
	b := f.board
	u := f.unitAt(at(0, 2))

	require.NoError(t, b.StartCharge(u, b.Node(at(3, 2))))
	assert.True(t, b.IsBusy())

	ticker.Advance(300 * time.Millisecond)
	assert.Equal(t, at(2, 2), u.Position(), "approach finished")
	assert.True(t, b.IsBusy(), "lunge still to play")
	assert.Empty(t, f.recorder.OfType(events.TypeCombatResolved))

	ticker.Advance(250 * time.Millisecond)
	assert.False(t, b.IsBusy())
	assert.Len(t, f.recorder.OfType(events.TypeCombatResolved), 1)
}

func TestStartChargeRejected(t *testing.T) {
	f := newFixture(t, plains7x5,
		mapgen.Placement{Capital: at(0, 0), LandUnits: []core.Coordinate{at(0, 2)}},
		mapgen.Placement{Capital: at(6, 4), LandUnits: []core.Coordinate{at(3, 2), at(6, 0)}},
	)
	b := f.board
	u := f.unitAt(at(0, 2))

	assert.ErrorIs(t, b.StartCharge(u, b.Node(at(6, 0))), core.ErrOutOfRange)
	assert.ErrorIs(t, b.StartCharge(u, b.Node(at(2, 0))), core.ErrOutOfRange, "empty node")

	u.AttacksLeft = 0
	assert.ErrorIs(t, b.StartCharge(u, b.Node(at(3, 2))), core.ErrNoAttacksLeft)
	u.AttacksLeft, u.MoveLeft = 1, 0
	assert.ErrorIs(t, b.StartCharge(u, b.Node(at(3, 2))), core.ErrNoMovesLeft)
	assert.Equal(t, at(0, 2), u.Position())
}

func TestActAtPosition(t *testing.T) {
	f := newFixture(t, plains7x5,
		mapgen.Placement{Capital: at(0, 0), LandUnits: []core.Coordinate{at(0, 2), at(0, 4)}},
		mapgen.Placement{Capital: at(6, 4), LandUnits: []core.Coordinate{at(3, 2), at(6, 0)}},
		withDice(testutil.DiceForDamage(100, 100, 100, 100)),
	)
	b := f.board
	u := f.unitAt(at(0, 2))

	// Without a selection a click selects
	require.NoError(t, b.ActAtPosition(at(0, 2)))
	assert.Same(t, u, b.Selection().Unit)

	// Another friendly unit switches the selection
	require.NoError(t, b.ActAtPosition(at(0, 4)))
	assert.Same(t, f.unitAt(at(0, 4)), b.Selection().Unit)
	require.NoError(t, b.ActAtPosition(at(0, 2)))

	// A node outside every range becomes a node selection
	require.NoError(t, b.ActAtPosition(at(6, 2)))
	assert.Equal(t, SelectionNode, b.Selection().Mode)

	// Charge range
	require.NoError(t, b.ActAtPosition(at(0, 2)))
	require.NoError(t, b.ActAtPosition(at(3, 2)))
	assert.Equal(t, at(2, 2), u.Position())
	assert.Equal(t, 0, u.AttacksLeft)
	require.Len(t, f.recorder.OfType(events.TypeCombatResolved), 1)

	// Move range with the move left over
	require.Same(t, u, b.Selection().Unit)
	require.NoError(t, b.ActAtPosition(at(2, 1)))
	assert.Equal(t, at(2, 1), u.Position())
	assert.Equal(t, 0, u.MoveLeft)

	assert.ErrorIs(t, b.ActAtPosition(at(-1, 0)), core.ErrInvalidCoordinates)
}

func TestRecruitArmy(t *testing.T) {
	f := newFixture(t, plains7x5,
		mapgen.Placement{Capital: at(0, 0)},
		mapgen.Placement{Capital: at(6, 4)},
		withSettings(func(s *Settings) { s.StartingGold = 10 }),
	)
	b := f.board

	u, err := b.RecruitArmy()
	require.NoError(t, err)
	assert.Equal(t, 0, b.PlayerFaction().Gold())
	assert.Equal(t, at(0, 0), u.Position())
	assert.Same(t, u, b.Node(at(0, 0)).OccupyingUnit)
	assert.Equal(t, core.UnitLand, u.Type)
	assert.Equal(t, 1000, u.Strength)
	assert.True(t, b.PlayerFaction().Owns(u))

	recruited := f.recorder.OfType(events.TypeUnitRecruited)
	require.Len(t, recruited, 1)
	assert.Equal(t, 0, recruited[0].(*events.UnitRecruitedEvent).GoldLeft)

	// Straight away again: nothing changes
	_, err = b.RecruitArmy()
	assert.Error(t, err)
	assert.Equal(t, 0, b.PlayerFaction().Gold())
	assert.Len(t, b.PlayerFaction().Units(), 1)
}

func TestRecruitArmyRefused(t *testing.T) {
	tests := []struct {
		name    string
		gold    int
		prepare func(b *Board)
		wantErr error
	}{
		{"capital occupied", 50, func(b *Board) { _, _ = b.RecruitArmy() }, core.ErrCapitalOccupied},
		{"short of gold", 9, nil, core.ErrInsufficientGold},
		{"no capital", 50, func(b *Board) {
			capital := b.PlayerFaction().Capital()
			b.PlayerFaction().Remove(capital)
			b.Node(capital.Position()).LocalBuilding = nil
		}, core.ErrNoCapital},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, plains7x5,
				mapgen.Placement{Capital: at(0, 0), Towns: []core.Coordinate{at(0, 2)}},
				mapgen.Placement{Capital: at(6, 4)},
				withSettings(func(s *Settings) { s.StartingGold = tt.gold }),
			)
			if tt.prepare != nil {
				tt.prepare(f.board)
			}
			gold := f.board.PlayerFaction().Gold()
			units := len(f.board.PlayerFaction().Units())

			_, err := f.board.RecruitArmy()
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, gold, f.board.PlayerFaction().Gold())
			assert.Len(t, f.board.PlayerFaction().Units(), units)
		})
	}
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
