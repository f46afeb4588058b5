package game

import (
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/events"
	"github.com/mitchelldurbincs/HexTactics/internal/game/rules"
	"github.com/mitchelldurbincs/HexTactics/internal/game/states"
)

// resolveCombat runs one exchange between attacker and whatever hostile
// piece holds target. Both rolls happen before either is applied, so a
// defender that dies still retaliates.
func (b *Board) resolveCombat(attacker *core.Unit, target *core.Node, charge bool) {
	defender := target.HostileTo(attacker.Faction())
	if defender == nil || !attacker.IsAlive() {
		b.logger.Debug().Str("target", target.Position.String()).Msg("Nothing left to fight")
		return
	}

	attacker.SpendAttack()
	dealt, taken := core.RollExchange(attacker, defender, target, b.dice, b.settings.DefenseMultiplier)
	result := core.CombatResult{
		Attacker:          attacker,
		Defender:          defender,
		Location:          target.Position,
		DamageDealt:       dealt,
		DamageTaken:       taken,
		DefenderDestroyed: defender.TakeDamage(dealt),
		AttackerDestroyed: attacker.TakeDamage(taken),
		Charge:            charge,
	}

	b.logger.Info().
		Str("attacker", attacker.ID()).
		Str("attacker_faction", attacker.Faction().String()).
		Str("defender", defender.ID()).
		Str("defender_category", defender.Category().String()).
		Str("location", target.Position.String()).
		Int("dealt", dealt).
		Int("taken", taken).
		Bool("charge", charge).
		Msg("Combat resolved")
	b.bus.Publish(events.NewCombatResolvedEvent(b.gameID, b.Turn(), result))

	if result.DefenderDestroyed {
		b.NotifyGamePieceDestruction(defender)
	}
	if result.AttackerDestroyed {
		b.NotifyGamePieceDestruction(attacker)
	}
}

// enemyAttack is the AI's attack hook. The AI has already waited out the
// lunge, so combat resolves straight away.
func (b *Board) enemyAttack(attacker *core.Unit, target *core.Node) error {
	if b.IsOver() {
		return core.ErrGameOver
	}
	if err := b.checkTarget(attacker, target); err != nil {
		return core.WrapUnitError(attacker, "attack", err)
	}
	b.resolveCombat(attacker, target, false)
	return nil
}

// NotifyGamePieceDestruction is the single place a destroyed piece leaves
// the board: its node reference and roster entry are cleared together.
// Losing a building may destroy the faction, which ends the match. Calls
// for a piece that is already gone are ignored.
func (b *Board) NotifyGamePieceDestruction(d core.Deployable) {
	f := b.factionOf(d.Faction())
	if f == nil || !f.Remove(d) {
		b.logger.Debug().Str("piece", d.ID()).Msg("Destruction already handled")
		return
	}

	if n := b.graph.Node(d.Position()); n != nil {
		switch p := d.(type) {
		case *core.Unit:
			if n.OccupyingUnit == p {
				n.OccupyingUnit = nil
			}
		case *core.Building:
			if n.LocalBuilding == p {
				n.LocalBuilding = nil
			}
		}
	}

	b.logger.Info().
		Str("piece", d.ID()).
		Str("faction", d.Faction().String()).
		Str("category", d.Category().String()).
		Str("position", d.Position().String()).
		Msg("Piece destroyed")
	b.bus.Publish(events.NewPieceDestroyedEvent(b.gameID, b.Turn(), d))

	if u, ok := d.(*core.Unit); ok && b.selection.Unit == u {
		b.ClearSelection()
	}

	if d.Category() != core.CategoryBuilding || !f.IsDestroyed() {
		return
	}
	b.logger.Info().Str("faction", f.Tag.String()).Msg("Faction destroyed")
	b.bus.Publish(events.NewFactionDestroyedEvent(b.gameID, b.Turn(), f.Tag))

	if outcome := b.win.CheckDestruction(b.player, b.enemy); outcome.IsTerminal() {
		b.finish(outcome, f.Tag.String()+" faction destroyed")
	}
}

var outcomePhases = map[rules.Outcome]states.GamePhase{
	rules.OutcomeGameWon:    states.PhaseGameWon,
	rules.OutcomeGameOver:   states.PhaseGameOver,
	rules.OutcomeOutOfTurns: states.PhaseOutOfTurns,
}

// finish moves the machine to the terminal phase for outcome.
func (b *Board) finish(outcome rules.Outcome, reason string) {
	phase, ok := outcomePhases[outcome]
	if !ok || b.IsOver() {
		return
	}
	if err := b.machine.TransitionTo(phase, reason); err != nil {
		b.logger.Error().Err(err).Str("outcome", outcome.String()).Msg("Failed to end match")
		return
	}

	b.ClearSelection()
	ctx := b.machine.GetContext()
	b.bus.Publish(events.NewGameEndedEvent(b.gameID, ctx.Turn, outcome.String(), ctx.Winner, ctx.GetElapsedTime()))
}
