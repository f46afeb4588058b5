package game

import (
	"fmt"
	"time"

	"github.com/mitchelldurbincs/HexTactics/internal/game/anim"
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// NodeStatus is the overlay state the board asks the highlight sink to show.
type NodeStatus int

const (
	StatusClear NodeStatus = iota
	StatusInteractable
	StatusAttackable
	StatusSelected
	// Covered and Shadowed are reserved for fog of war, which the board
	// never sets.
	StatusCovered
	StatusShadowed
)

func (s NodeStatus) String() string {
	switch s {
	case StatusClear:
		return "Clear"
	case StatusInteractable:
		return "Interactable"
	case StatusAttackable:
		return "Attackable"
	case StatusSelected:
		return "Selected"
	case StatusCovered:
		return "Covered"
	case StatusShadowed:
		return "Shadowed"
	default:
		return fmt.Sprintf("NodeStatus(%d)", int(s))
	}
}

// HighlightSink shows selection and range overlays. It is advisory only;
// nothing on the board reads it back.
type HighlightSink interface {
	ClearHighlights()
	SetNodeStatus(c core.Coordinate, status NodeStatus)
	ShowPath(path []core.Coordinate)
}

// InfoSink receives read-only snapshots for display. A nil unit clears the
// unit panel.
type InfoSink interface {
	ShowNodeInfo(info NodeInfo)
	ShowUnitInfo(info *UnitInfo)
	ShowFactionInfo(info FactionInfo)
}

// MotionSink follows in-flight moves and attacks so a client can ease
// pieces between nodes. t runs from 0 to 1.
type MotionSink interface {
	MoveProgress(u *core.Unit, path []core.Coordinate, t float64)
	LungeProgress(u *core.Unit, target core.Coordinate, t float64)
	MotionDone(u *core.Unit)
}

// Scheduler runs onComplete once d has elapsed, calling onStep along the
// way. anim.Immediate and anim.Ticker both satisfy it.
type Scheduler interface {
	ScheduleOverDuration(d time.Duration, onStep func(t float64), onComplete func())
}

// Collaborators are the board's outward-facing hooks. Any nil field gets a
// no-op (or, for the scheduler, anim.Immediate).
type Collaborators struct {
	Scheduler  Scheduler
	Highlights HighlightSink
	Info       InfoSink
	Motion     MotionSink
}

func (c Collaborators) withDefaults() Collaborators {
	if c.Scheduler == nil {
		c.Scheduler = anim.Immediate{}
	}
	if c.Highlights == nil {
		c.Highlights = nopHighlights{}
	}
	if c.Info == nil {
		c.Info = nopInfo{}
	}
	if c.Motion == nil {
		c.Motion = nopMotion{}
	}
	return c
}

type nopHighlights struct{}

func (nopHighlights) ClearHighlights()                          {}
func (nopHighlights) SetNodeStatus(core.Coordinate, NodeStatus) {}
func (nopHighlights) ShowPath([]core.Coordinate)                {}

type nopInfo struct{}

func (nopInfo) ShowNodeInfo(NodeInfo)       {}
func (nopInfo) ShowUnitInfo(*UnitInfo)      {}
func (nopInfo) ShowFactionInfo(FactionInfo) {}

type nopMotion struct{}

func (nopMotion) MoveProgress(*core.Unit, []core.Coordinate, float64) {}
func (nopMotion) LungeProgress(*core.Unit, core.Coordinate, float64)  {}
func (nopMotion) MotionDone(*core.Unit)                               {}

// UnitInfo is a snapshot of one unit.
type UnitInfo struct {
	ID            string
	Faction       core.FactionTag
	Type          core.UnitType
	Position      core.Coordinate
	Strength      int
	Upkeep        int
	MoveLeft      int
	MoveAllowance int
	AttacksLeft   int
	NumAttacks    int
}

// BuildingInfo is a snapshot of one building.
type BuildingInfo struct {
	ID         string
	Faction    core.FactionTag
	Position   core.Coordinate
	Defense    int
	Tax        int
	Durability int
	IsCapital  bool
}

// NodeInfo is a snapshot of one node and whatever stands on it.
type NodeInfo struct {
	Position     core.Coordinate
	Terrain      core.Terrain
	MovementCost int
	Passability  core.Passability
	DefenseTotal int
	TaxTotal     int
	Unit         *UnitInfo
	Building     *BuildingInfo
}

// FactionInfo summarizes one faction for the status panel.
type FactionInfo struct {
	Tag       core.FactionTag
	Gold      int
	Income    int
	Expenses  int
	Units     int
	Buildings int
	Turn      int
	MaxTurns  int
	Phase     string
}

func newUnitInfo(u *core.Unit) *UnitInfo {
	if u == nil {
		return nil
	}
	return &UnitInfo{
		ID:            u.ID(),
		Faction:       u.Faction(),
		Type:          u.Type,
		Position:      u.Position(),
		Strength:      u.Strength,
		Upkeep:        u.Upkeep,
		MoveLeft:      u.MoveLeft,
		MoveAllowance: u.MoveAllowance,
		AttacksLeft:   u.AttacksLeft,
		NumAttacks:    u.NumAttacks,
	}
}

func newBuildingInfo(b *core.Building, capital *core.Building) *BuildingInfo {
	if b == nil {
		return nil
	}
	return &BuildingInfo{
		ID:         b.ID(),
		Faction:    b.Faction(),
		Position:   b.Position(),
		Defense:    b.Defense,
		Tax:        b.Tax,
		Durability: b.Durability,
		IsCapital:  b == capital,
	}
}
