package game

import (
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/events"
	"github.com/mitchelldurbincs/HexTactics/internal/game/rules"
)

// SelectAtPosition selects the player unit at c, or the node itself when
// there is none.
func (b *Board) SelectAtPosition(c core.Coordinate) error {
	if err := b.guard("select"); err != nil {
		return err
	}
	n := b.graph.Node(c)
	if n == nil {
		return b.reject("select", core.ErrInvalidCoordinates)
	}
	if u := n.OccupyingUnit; u != nil && u.Faction() == b.player.Tag {
		return b.SelectUnit(u)
	}
	return b.SelectNode(n)
}

// ActAtPosition is the primary click. With a unit selected it attacks,
// charges or moves depending on which range c falls in; anything else
// becomes a new selection.
func (b *Board) ActAtPosition(c core.Coordinate) error {
	if err := b.guard("act"); err != nil {
		return err
	}
	n := b.graph.Node(c)
	if n == nil {
		return b.reject("act", core.ErrInvalidCoordinates)
	}

	u := b.selection.Unit
	if b.selection.Mode != SelectionUnit || u == nil {
		return b.SelectAtPosition(c)
	}
	if other := n.OccupyingUnit; other != nil && other.Faction() == u.Faction() {
		return b.SelectUnit(other)
	}

	switch {
	case b.current.Attack.Contains(n):
		return b.StartCombat(u, n)
	case b.current.Charge.Contains(n):
		return b.StartCharge(u, n)
	case b.current.Move.Contains(n):
		return b.MoveUnit(u, n)
	}
	return b.SelectNode(n)
}

// SelectUnit selects one of the player's units and recomputes its ranges.
func (b *Board) SelectUnit(u *core.Unit) error {
	if err := b.guard("select"); err != nil {
		return err
	}
	if err := b.checkActor(u); err != nil {
		return b.reject("select", err)
	}

	b.selection = Selection{Mode: SelectionUnit, Unit: u, Node: b.graph.Node(u.Position())}
	b.current = b.ranges.Compute(u)
	b.pushSelection()

	b.bus.Publish(events.NewUnitSelectedEvent(b.gameID, b.Turn(), u.ID(), u.Position(),
		b.current.Move.Len(), b.current.Attack.Len(), b.current.Charge.Len()))
	return nil
}

// SelectNode selects a node for inspection. It never has ranges.
func (b *Board) SelectNode(n *core.Node) error {
	if err := b.guard("select"); err != nil {
		return err
	}
	if n == nil {
		return b.reject("select", core.ErrInvalidCoordinates)
	}
	b.selection = Selection{Mode: SelectionNode, Node: n}
	b.current = rules.EmptyRanges()
	b.pushSelection()
	return nil
}

// ClearSelection drops any selection and its highlights. It is always
// allowed.
func (b *Board) ClearSelection() {
	b.selection = Selection{}
	b.current = rules.EmptyRanges()
	b.collab.Highlights.ClearHighlights()
	b.collab.Info.ShowUnitInfo(nil)
	b.pushFactionInfo()
}

// refreshSelection recomputes ranges after an action resolves. A selected
// unit that died in the meantime is dropped.
func (b *Board) refreshSelection() {
	switch b.selection.Mode {
	case SelectionUnit:
		u := b.selection.Unit
		if u == nil || !u.IsAlive() || b.IsOver() {
			b.ClearSelection()
			return
		}
		b.selection.Node = b.graph.Node(u.Position())
		b.current = b.ranges.Compute(u)
		b.pushSelection()
	case SelectionNode:
		b.pushSelection()
	default:
		b.pushFactionInfo()
	}
}

func (b *Board) pushSelection() {
	h := b.collab.Highlights
	h.ClearHighlights()
	for _, n := range b.current.Move.Sorted() {
		h.SetNodeStatus(n.Position, StatusInteractable)
	}
	for _, n := range b.current.Attack.Sorted() {
		h.SetNodeStatus(n.Position, StatusAttackable)
	}
	for _, n := range b.current.Charge.Sorted() {
		h.SetNodeStatus(n.Position, StatusAttackable)
	}
	if b.selection.Node != nil {
		h.SetNodeStatus(b.selection.Node.Position, StatusSelected)
		b.collab.Info.ShowNodeInfo(b.NodeInfo(b.selection.Node))
	}
	b.collab.Info.ShowUnitInfo(newUnitInfo(b.selection.Unit))
	b.pushFactionInfo()
}

func (b *Board) pushFactionInfo() {
	b.collab.Info.ShowFactionInfo(b.FactionInfo(b.player))
}
