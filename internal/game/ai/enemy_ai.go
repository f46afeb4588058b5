// Package ai drives the non-player faction.
package ai

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/faction"
)

// Scheduler to avoid importing the board's collaborator set
type Scheduler interface {
	ScheduleOverDuration(d time.Duration, onStep func(t float64), onComplete func())
}

// AttackFunc resolves one queued attack. It is called from the scheduler's
// completion callback.
type AttackFunc func(attacker *core.Unit, target *core.Node) error

// Attack is a planned attack of one unit against an adjacent node.
type Attack struct {
	Attacker *core.Unit
	Target   *core.Node
}

// Timing spaces the queued attacks out so they play one after another.
type Timing struct {
	Stagger time.Duration
	Lunge   time.Duration
}

// EnemyAI is a single-pass greedy policy: every unit attacks the weakest
// adjacent hostile unit, if there is one.
type EnemyAI struct {
	faction   *faction.Faction
	graph     *core.Graph
	scheduler Scheduler
	attack    AttackFunc
	timing    Timing
	logger    zerolog.Logger
}

// New creates an EnemyAI for f.
func New(f *faction.Faction, graph *core.Graph, scheduler Scheduler, attack AttackFunc, timing Timing, logger zerolog.Logger) *EnemyAI {
	return &EnemyAI{
		faction:   f,
		graph:     graph,
		scheduler: scheduler,
		attack:    attack,
		timing:    timing,
		logger:    logger.With().Str("component", "EnemyAI").Str("faction", f.Tag.String()).Logger(),
	}
}

// Plan picks a target for every unit that has one, in roster order.
func (ai *EnemyAI) Plan() []Attack {
	var plan []Attack
	for _, u := range ai.faction.Units() {
		if !u.CanAttack() {
			continue
		}
		if target := ai.weakestAdjacent(u); target != nil {
			plan = append(plan, Attack{Attacker: u, Target: target})
		}
	}
	return plan
}

// weakestAdjacent returns the neighbor holding the hostile unit with the
// lowest strength. Ties go to the first neighbor in direction order.
func (ai *EnemyAI) weakestAdjacent(u *core.Unit) *core.Node {
	node := ai.graph.Node(u.Position())
	if node == nil {
		return nil
	}
	var best *core.Node
	for _, nb := range node.Neighbors() {
		other := nb.OccupyingUnit
		if other == nil || other.Faction() == u.Faction() || !other.IsAlive() {
			continue
		}
		if best == nil || other.Strength < best.OccupyingUnit.Strength {
			best = nb
		}
	}
	return best
}

// PerformAiActions queues the planned attacks with an accumulating delay and
// calls onDone with the number of attacks that actually resolved once the
// last one is through, or straight away when there is nothing to do. It
// returns the number of attacks queued.
func (ai *EnemyAI) PerformAiActions(onDone func(resolved int)) int {
	plan := ai.Plan()
	ai.logger.Info().Int("attacks", len(plan)).Msg("Enemy turn planned")

	if len(plan) == 0 {
		if onDone != nil {
			onDone(0)
		}
		return 0
	}

	remaining := len(plan)
	resolved := 0
	for i, a := range plan {
		delay := time.Duration(i)*ai.timing.Stagger + ai.timing.Lunge
		ai.scheduler.ScheduleOverDuration(delay, nil, func() {
			if ai.execute(a) {
				resolved++
			}
			remaining--
			if remaining == 0 && onDone != nil {
				onDone(resolved)
			}
		})
	}
	return len(plan)
}

// execute re-checks the attack, since earlier attacks in the queue may have
// destroyed either side.
func (ai *EnemyAI) execute(a Attack) bool {
	if !a.Attacker.IsAlive() {
		ai.logger.Debug().Str("unit", a.Attacker.ID()).Msg("Attacker destroyed before its turn")
		return false
	}
	if target := a.Target.OccupyingUnit; target == nil || target.Faction() == a.Attacker.Faction() {
		ai.logger.Debug().Str("target", a.Target.Position.String()).Msg("Target gone, attack skipped")
		return false
	}
	if err := ai.attack(a.Attacker, a.Target); err != nil {
		ai.logger.Warn().Err(err).Str("unit", a.Attacker.ID()).Msg("Queued attack failed")
		return false
	}
	return true
}
