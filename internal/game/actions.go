package game

import (
	"errors"
	"time"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/events"
	"github.com/mitchelldurbincs/HexTactics/internal/game/pathfinding"
)

// guard rejects player input outside the player turn or while an action is
// in flight.
func (b *Board) guard(action string) error {
	phase := b.Phase()
	var err error
	switch {
	case phase.IsTerminal():
		err = core.ErrGameOver
	case !phase.CanReceiveActions():
		err = core.ErrNotPlayerTurn
	case b.busy:
		err = core.ErrBusy
	}
	if err != nil {
		return b.reject(action, err)
	}
	return nil
}

// reject logs and publishes a refused action and returns it as a GameError.
func (b *Board) reject(action string, err error) error {
	turn := b.Turn()
	level := b.logger.Warn()
	if errors.Is(err, core.ErrNoPath) {
		level = b.logger.Info()
	}
	level.Err(err).
		Str("action", action).
		Int("turn", turn).
		Str("phase", b.Phase().String()).
		Msg("Action rejected")

	b.bus.Publish(events.NewActionRejectedEvent(b.gameID, turn, action, err))
	return core.NewGameError(turn, b.player.Tag, action, err)
}

// checkActor makes sure u is a live player unit standing on the board.
func (b *Board) checkActor(u *core.Unit) error {
	switch {
	case u == nil || !u.IsAlive():
		return core.ErrNoSelection
	case u.Faction() != b.player.Tag || !b.player.Owns(u):
		return core.ErrNotOwned
	case b.graph.Node(u.Position()) == nil:
		return core.ErrInvalidCoordinates
	}
	return nil
}

// MoveUnit walks u to dest along the cheapest path. The move is committed
// when the scheduler reports the walk complete; until then the board is
// busy.
func (b *Board) MoveUnit(u *core.Unit, dest *core.Node) error {
	const action = "move"
	if err := b.guard(action); err != nil {
		return err
	}
	if err := b.checkActor(u); err != nil {
		return b.reject(action, err)
	}
	if dest == nil {
		return b.reject(action, core.ErrInvalidCoordinates)
	}
	if !u.CanMove() {
		return b.reject(action, core.ErrNoMovesLeft)
	}

	origin := b.graph.Node(u.Position())
	path, err := b.finder.FindPath(origin, dest, u.Type, false)
	if err != nil {
		return b.reject(action, core.WrapUnitError(u, action, err))
	}
	if len(path) == 0 {
		return nil
	}
	if cost := pathfinding.PathCost(path); cost > u.MoveLeft {
		return b.reject(action, core.WrapUnitError(u, action, core.ErrOutOfRange))
	}

	b.busy = true
	b.walk(u, origin, path, func() { b.finishAction() })
	return nil
}

// StartCombat attacks the hostile piece on an adjacent node.
func (b *Board) StartCombat(attacker *core.Unit, target *core.Node) error {
	const action = "attack"
	if err := b.guard(action); err != nil {
		return err
	}
	if err := b.checkActor(attacker); err != nil {
		return b.reject(action, err)
	}
	if err := b.checkTarget(attacker, target); err != nil {
		return b.reject(action, core.WrapUnitError(attacker, action, err))
	}

	b.busy = true
	b.lunge(attacker, target, false, func() { b.finishAction() })
	return nil
}

// StartCharge moves to the target's approach node and attacks from there.
// The target must be in the attacker's charge range.
func (b *Board) StartCharge(attacker *core.Unit, target *core.Node) error {
	const action = "charge"
	if err := b.guard(action); err != nil {
		return err
	}
	if err := b.checkActor(attacker); err != nil {
		return b.reject(action, err)
	}
	if target == nil {
		return b.reject(action, core.ErrInvalidCoordinates)
	}
	switch {
	case !attacker.CanMove():
		return b.reject(action, core.WrapUnitError(attacker, action, core.ErrNoMovesLeft))
	case !attacker.CanAttack():
		return b.reject(action, core.WrapUnitError(attacker, action, core.ErrNoAttacksLeft))
	}

	r := b.ranges.Compute(attacker)
	approach := r.Approach[target]
	if !r.Charge.Contains(target) || approach == nil {
		return b.reject(action, core.WrapUnitError(attacker, action, core.ErrOutOfRange))
	}

	origin := b.graph.Node(attacker.Position())
	path, err := b.finder.FindPath(origin, approach, attacker.Type, false)
	if err != nil {
		return b.reject(action, core.WrapUnitError(attacker, action, err))
	}
	if pathfinding.PathCost(path) > attacker.MoveLeft {
		return b.reject(action, core.WrapUnitError(attacker, action, core.ErrOutOfRange))
	}

	b.busy = true
	b.walk(attacker, origin, path, func() {
		if b.IsOver() || b.checkTarget(attacker, target) != nil {
			b.logger.Debug().Str("target", target.Position.String()).Msg("Charge target gone after approach")
			b.finishAction()
			return
		}
		b.lunge(attacker, target, true, func() { b.finishAction() })
	})
	return nil
}

// RecruitArmy buys a land unit at the player's capital.
func (b *Board) RecruitArmy() (*core.Unit, error) {
	const action = "recruit"
	if err := b.guard(action); err != nil {
		return nil, err
	}
	price := b.settings.ArmyPrice
	u, err := b.player.RecruitArmy(core.UnitLand, b.settings.Land, price)
	if err != nil {
		return nil, b.reject(action, err)
	}

	b.bus.Publish(events.NewUnitRecruitedEvent(b.gameID, b.Turn(), u, price, b.player.Gold()))
	b.refreshSelection()
	return u, nil
}

// checkTarget is the adjacency and hostility check shared by player and
// enemy attacks.
func (b *Board) checkTarget(attacker *core.Unit, target *core.Node) error {
	switch {
	case target == nil:
		return core.ErrInvalidCoordinates
	case !attacker.CanAttack():
		return core.ErrNoAttacksLeft
	}
	origin := b.graph.Node(attacker.Position())
	if origin == nil || !origin.IsNeighbor(target) {
		return core.ErrNotAdjacent
	}
	if target.HostileTo(attacker.Faction()) == nil {
		return core.ErrNoTarget
	}
	return nil
}

// walk schedules the move along path and commits occupancy when it
// completes. path excludes origin.
func (b *Board) walk(u *core.Unit, origin *core.Node, path []*core.Node, then func()) {
	coords := make([]core.Coordinate, 0, len(path)+1)
	coords = append(coords, origin.Position)
	for _, n := range path {
		coords = append(coords, n.Position)
	}
	b.collab.Highlights.ShowPath(coords)

	duration := time.Duration(len(path)) * b.settings.MoveStep
	b.collab.Scheduler.ScheduleOverDuration(duration,
		func(t float64) { b.collab.Motion.MoveProgress(u, coords, t) },
		func() {
			dest := path[len(path)-1]
			cost := pathfinding.PathCost(path)

			if origin.OccupyingUnit == u {
				origin.OccupyingUnit = nil
			}
			dest.OccupyingUnit = u
			u.SetPosition(dest.Position)
			u.SpendMove(cost)
			b.collab.Motion.MotionDone(u)

			b.logger.Debug().
				Str("unit", u.ID()).
				Str("from", origin.Position.String()).
				Str("to", dest.Position.String()).
				Int("cost", cost).
				Int("move_left", u.MoveLeft).
				Msg("Unit moved")
			b.bus.Publish(events.NewUnitMovedEvent(b.gameID, b.Turn(), u, origin.Position, dest.Position, cost))
			then()
		})
}

// lunge schedules the attack animation and resolves combat when it lands.
func (b *Board) lunge(attacker *core.Unit, target *core.Node, charge bool, then func()) {
	b.collab.Scheduler.ScheduleOverDuration(b.settings.AttackLunge,
		func(t float64) { b.collab.Motion.LungeProgress(attacker, target.Position, t) },
		func() {
			b.collab.Motion.MotionDone(attacker)
			b.resolveCombat(attacker, target, charge)
			then()
		})
}

func (b *Board) finishAction() {
	b.busy = false
	b.refreshSelection()
}
