// Package game ties the hex graph, both factions, the enemy AI and the turn
// state machine together behind the Board.
package game

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexTactics/internal/game/ai"
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/events"
	"github.com/mitchelldurbincs/HexTactics/internal/game/faction"
	"github.com/mitchelldurbincs/HexTactics/internal/game/pathfinding"
	"github.com/mitchelldurbincs/HexTactics/internal/game/rules"
	"github.com/mitchelldurbincs/HexTactics/internal/game/states"
)

// SelectionMode is the board's selection sub-state within the player turn.
type SelectionMode int

const (
	SelectionIdle SelectionMode = iota
	SelectionUnit
	SelectionNode
)

func (m SelectionMode) String() string {
	switch m {
	case SelectionUnit:
		return "UnitSelected"
	case SelectionNode:
		return "NodeSelected"
	default:
		return "Idle"
	}
}

// Selection is what the player currently has selected. Unit is set only in
// SelectionUnit mode; Node is the selected unit's node or the selected node.
type Selection struct {
	Mode SelectionMode
	Unit *core.Unit
	Node *core.Node
}

// Board owns the match. It is driven from a single goroutine: scheduler
// callbacks must run on the same goroutine as the calls that queued them.
type Board struct {
	gameID   string
	settings Settings

	graph   *core.Graph
	finder  *pathfinding.PathFinder
	ranges  *rules.RangeCalculator
	win     *rules.WinConditionChecker
	player  *faction.Faction
	enemy   *faction.Faction
	enemyAI *ai.EnemyAI
	economy *EconomyManager
	turns   *TurnProcessor
	machine *states.StateMachine
	bus     *events.EventBus
	dice    core.Dice
	collab  Collaborators
	logger  zerolog.Logger

	selection Selection
	current   rules.Ranges
	busy      bool
}

func (b *Board) GameID() string                    { return b.gameID }
func (b *Board) Settings() Settings                { return b.settings }
func (b *Board) Graph() *core.Graph                { return b.graph }
func (b *Board) Bus() *events.EventBus             { return b.bus }
func (b *Board) PlayerFaction() *faction.Faction   { return b.player }
func (b *Board) EnemyFaction() *faction.Faction    { return b.enemy }
func (b *Board) Phase() states.GamePhase           { return b.machine.CurrentPhase() }
func (b *Board) History() []states.Transition      { return b.machine.GetHistory() }
func (b *Board) Context() *states.GameContext      { return b.machine.GetContext() }
func (b *Board) IsBusy() bool                      { return b.busy }
func (b *Board) Selection() Selection              { return b.selection }
func (b *Board) MoveRange() core.NodeSet           { return b.current.Move }
func (b *Board) AttackRange() core.NodeSet         { return b.current.Attack }
func (b *Board) ChargeRange() core.NodeSet         { return b.current.Charge }
func (b *Board) Node(c core.Coordinate) *core.Node { return b.graph.Node(c) }

// Turn is the 1-based number of the turn in progress.
func (b *Board) Turn() int { return b.machine.GetContext().Turn }

// IsOver reports whether the match has reached a terminal phase.
func (b *Board) IsOver() bool { return b.Phase().IsTerminal() }

// ApproachNode returns the node a charge against target moves through, or
// nil if target is not in the current charge range.
func (b *Board) ApproachNode(target *core.Node) *core.Node {
	if b.current.Approach == nil {
		return nil
	}
	return b.current.Approach[target]
}

// EndTurn hands the turn to the enemy. See TurnProcessor.EndTurn.
func (b *Board) EndTurn() error {
	return b.turns.EndTurn()
}

func (b *Board) factionOf(tag core.FactionTag) *faction.Faction {
	switch tag {
	case core.PlayerFaction:
		return b.player
	case core.EnemyFaction:
		return b.enemy
	}
	return nil
}

// FactionInfo summarizes f for the status panel.
func (b *Board) FactionInfo(f *faction.Faction) FactionInfo {
	ctx := b.machine.GetContext()
	return FactionInfo{
		Tag:       f.Tag,
		Gold:      f.Gold(),
		Income:    f.CalculateIncome(),
		Expenses:  f.CalculateExpenses(),
		Units:     len(f.Units()),
		Buildings: len(f.Buildings()),
		Turn:      ctx.Turn,
		MaxTurns:  ctx.MaxTurns,
		Phase:     b.Phase().String(),
	}
}

// NodeInfo snapshots n and whatever stands on it.
func (b *Board) NodeInfo(n *core.Node) NodeInfo {
	info := NodeInfo{
		Position:     n.Position,
		Terrain:      n.Terrain,
		MovementCost: n.MovementCost,
		Passability:  n.Passability,
		DefenseTotal: n.CalculateDefenseTotal(),
		TaxTotal:     n.CalculateTaxTotal(),
		Unit:         newUnitInfo(n.OccupyingUnit),
	}
	if bld := n.LocalBuilding; bld != nil {
		var capital *core.Building
		if f := b.factionOf(bld.Faction()); f != nil {
			capital = f.Capital()
		}
		info.Building = newBuildingInfo(bld, capital)
	}
	return info
}
