package main

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexTactics/internal/game"
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// Autopilot plays the player faction through the board's public actions.
// Each unit attacks the weakest adjacent enemy, otherwise charges,
// otherwise walks toward the nearest enemy building. Spare gold is spent
// on recruits before the turn is ended.
type Autopilot struct {
	board  *game.Board
	logger zerolog.Logger
}

// TurnStats counts what the autopilot did in one turn.
type TurnStats struct {
	Attacks  int
	Charges  int
	Moves    int
	Recruits int
}

func NewAutopilot(board *game.Board, logger zerolog.Logger) *Autopilot {
	return &Autopilot{
		board:  board,
		logger: logger.With().Str("component", "Autopilot").Logger(),
	}
}

// PlayTurn acts with every player unit, recruits, then ends the turn.
// The board must be driven by a synchronous scheduler.
func (a *Autopilot) PlayTurn() (TurnStats, error) {
	var stats TurnStats
	b := a.board

	for _, u := range b.PlayerFaction().Units() {
		if b.IsOver() {
			return stats, nil
		}
		if !u.IsAlive() {
			continue
		}
		a.actWith(u, &stats)
	}
	b.ClearSelection()

	for !b.IsOver() && b.PlayerFaction().Gold() >= b.Settings().ArmyPrice {
		u, err := b.RecruitArmy()
		if err != nil {
			a.logger.Debug().Err(err).Msg("Recruit skipped")
			break
		}
		stats.Recruits++
		// Clear the capital so the next turn can recruit again.
		a.actWith(u, &stats)
		b.ClearSelection()
	}

	if b.IsOver() {
		return stats, nil
	}
	return stats, b.EndTurn()
}

func (a *Autopilot) actWith(u *core.Unit, stats *TurnStats) {
	b := a.board
	if err := b.SelectUnit(u); err != nil {
		a.logger.Debug().Err(err).Str("unit", u.ID()).Msg("Unit not selectable")
		return
	}

	if target := weakest(b.AttackRange().Sorted(), u.Faction()); target != nil {
		if err := b.StartCombat(u, target); err == nil {
			stats.Attacks++
			return
		}
	}
	if target := weakest(b.ChargeRange().Sorted(), u.Faction()); target != nil {
		if err := b.StartCharge(u, target); err == nil {
			stats.Charges++
			return
		}
	}
	if dest := a.stepToward(u); dest != nil {
		if err := b.MoveUnit(u, dest); err == nil {
			stats.Moves++
		}
	}
}

// stepToward picks the free node in move range closest to the nearest
// enemy building, if it is closer than where u stands.
func (a *Autopilot) stepToward(u *core.Unit) *core.Node {
	goal, ok := a.objective(u.Position())
	if !ok {
		return nil
	}
	best, bestDist := (*core.Node)(nil), u.Position().DistanceTo(goal)
	for _, n := range a.board.MoveRange().Sorted() {
		if n.IsOccupied() {
			continue
		}
		if d := n.Position.DistanceTo(goal); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

func (a *Autopilot) objective(from core.Coordinate) (core.Coordinate, bool) {
	var goal core.Coordinate
	found := false
	for _, bld := range a.board.EnemyFaction().Buildings() {
		if !found || from.DistanceTo(bld.Position()) < from.DistanceTo(goal) {
			goal, found = bld.Position(), true
		}
	}
	return goal, found
}

// weakest returns the node whose hostile piece has the least strength
// left. Ties keep the first node.
func weakest(nodes []*core.Node, tag core.FactionTag) *core.Node {
	var best *core.Node
	bestHealth := 0
	for _, n := range nodes {
		d := n.HostileTo(tag)
		if d == nil {
			continue
		}
		if h := health(d); best == nil || h < bestHealth {
			best, bestHealth = n, h
		}
	}
	return best
}

func health(d core.Deployable) int {
	switch p := d.(type) {
	case *core.Unit:
		return p.Strength
	case *core.Building:
		return p.Durability
	}
	return 0
}
