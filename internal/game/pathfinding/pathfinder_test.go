package pathfinding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/testutil"
)

func newFinder(g *core.Graph) *PathFinder {
	return New(g, testutil.NopLogger())
}

func at(x, y int) core.Coordinate { return core.NewCoordinate(x, y) }

func assertValidPath(t *testing.T, start *core.Node, path []*core.Node, unitType core.UnitType, ignoreDestination bool) {
	t.Helper()
	prev := start
	for i, n := range path {
		assert.True(t, prev.IsNeighbor(n), "step %d: %s is not adjacent to %s", i, n.Position, prev.Position)
		last := i == len(path)-1
		if !(last && ignoreDestination) {
			assert.False(t, n.IsOccupied(), "step %d: %s is occupied", i, n.Position)
			assert.True(t, n.CanEnter(unitType), "step %d: %s is not passable", i, n.Position)
		}
		prev = n
	}
}

func TestFindNodesInRangePlainsRings(t *testing.T) {
	g := testutil.LayoutGraph(testutil.PlainsLayout5)
	pf := newFinder(g)
	center := g.Node(at(2, 2))

	tests := []struct {
		maxCost int
		want    int
	}{
		{0, 0},
		{1, 6},
		{2, 18},
	}
	for _, tt := range tests {
		nodes := pf.FindNodesInRange(center, tt.maxCost, core.UnitLand)
		assert.Equal(t, tt.want, nodes.Len(), "range %d", tt.maxCost)
		assert.False(t, nodes.Contains(center), "start is never in range")
		for n := range nodes {
			assert.LessOrEqual(t, center.Position.DistanceTo(n.Position), tt.maxCost)
		}
	}
}

func TestFindNodesInRangeTerrainCost(t *testing.T) {
	g := testutil.LayoutGraph(". f . . .")
	pf := newFinder(g)
	start := g.Node(at(0, 0))

	assert.ElementsMatch(t, []core.Coordinate{}, pf.FindNodesInRange(start, 1, core.UnitLand).Coordinates())
	assert.ElementsMatch(t, []core.Coordinate{at(1, 0)}, pf.FindNodesInRange(start, 2, core.UnitLand).Coordinates())
	assert.ElementsMatch(t, []core.Coordinate{at(1, 0), at(2, 0)}, pf.FindNodesInRange(start, 3, core.UnitLand).Coordinates())
}

func TestFindNodesInRangeFirstReachedCostStands(t *testing.T) {
	// (1,1) is first reached through the forest at cost 3. The plains route
	// at cost 2 turns up later and is ignored, so (2,1) costs 4.
	g := testutil.LayoutGraph(`
		. f .
		. . .`)
	pf := newFinder(g)
	start := g.Node(at(0, 0))

	nodes := pf.FindNodesInRange(start, 3, core.UnitLand)
	assert.ElementsMatch(t,
		[]core.Coordinate{at(1, 0), at(2, 0), at(0, 1), at(1, 1)},
		nodes.Coordinates())
	assert.False(t, nodes.Contains(g.Node(at(2, 1))))

	assert.True(t, pf.FindNodesInRange(start, 4, core.UnitLand).Contains(g.Node(at(2, 1))))
}

func TestFindNodesInRangeSkipsBlockedNodes(t *testing.T) {
	g := testutil.LayoutGraph(". . . . .")
	testutil.PlaceUnit(g, core.EnemyFaction, core.UnitLand, testutil.LandStats, at(1, 0))
	pf := newFinder(g)

	nodes := pf.FindNodesInRange(g.Node(at(0, 0)), 4, core.UnitLand)
	assert.Equal(t, 0, nodes.Len(), "an occupied node is neither entered nor expanded")

	g = testutil.LayoutGraph(". ~ . . .")
	pf = newFinder(g)
	assert.Equal(t, 0, pf.FindNodesInRange(g.Node(at(0, 0)), 4, core.UnitLand).Len(), "sea blocks the row")
}

func TestFindNodesInRangeUnitTypes(t *testing.T) {
	g := testutil.LayoutGraph("w w . w")
	pf := newFinder(g)

	naval := pf.FindNodesInRange(g.Node(at(0, 0)), 5, core.UnitNaval)
	assert.ElementsMatch(t, []core.Coordinate{at(1, 0)}, naval.Coordinates())

	land := pf.FindNodesInRange(g.Node(at(2, 0)), 5, core.UnitLand)
	assert.Equal(t, 0, land.Len())
}

func TestFindNodesInRangeMonotonic(t *testing.T) {
	g := testutil.LayoutGraph(`
		. . f h . w ~
		f . . . h . .
		. ~ ~ . . f .
		. h . f . . .
		w w . . . h .
		. . f . ~ . .`)
	testutil.PlaceUnit(g, core.EnemyFaction, core.UnitLand, testutil.LandStats, at(3, 3))
	pf := newFinder(g)

	for _, start := range []core.Coordinate{at(0, 0), at(3, 2), at(6, 5)} {
		prev := core.NewNodeSet()
		for r := 0; r <= 8; r++ {
			cur := pf.FindNodesInRange(g.Node(start), r, core.UnitLand)
			assert.True(t, prev.IsSubsetOf(cur), "start %s: range %d not a subset of range %d", start, r-1, r)
			prev = cur
		}
	}
}

func TestFindPathStraightLine(t *testing.T) {
	g := testutil.PlainsGraph(5, 5)
	pf := newFinder(g)
	start, end := g.Node(at(0, 0)), g.Node(at(4, 4))

	path, err := pf.FindPath(start, end, core.UnitLand, false)
	require.NoError(t, err)
	require.NotEmpty(t, path)

	assert.Len(t, path, start.Position.DistanceTo(end.Position))
	assert.Same(t, end, path[len(path)-1])
	assert.NotContains(t, path, start)
	assertValidPath(t, start, path, core.UnitLand, false)
}

func TestFindPathSameNode(t *testing.T) {
	g := testutil.PlainsGraph(3, 3)
	pf := newFinder(g)
	n := g.Node(at(1, 1))

	path, err := pf.FindPath(n, n, core.UnitLand, false)
	require.NoError(t, err)
	assert.NotNil(t, path)
	assert.Empty(t, path)
}

func TestFindPathNilNodes(t *testing.T) {
	g := testutil.PlainsGraph(3, 3)
	pf := newFinder(g)

	_, err := pf.FindPath(nil, g.Node(at(0, 0)), core.UnitLand, false)
	assert.ErrorIs(t, err, core.ErrInvalidCoordinates)
}

func TestFindPathNoRoute(t *testing.T) {
	g := testutil.LayoutGraph(`
		. ~ .
		. ~ .
		. ~ .`)
	pf := newFinder(g)

	_, err := pf.FindPath(g.Node(at(0, 0)), g.Node(at(2, 0)), core.UnitLand, false)
	assert.ErrorIs(t, err, core.ErrNoPath)

	_, err = pf.FindPath(g.Node(at(0, 0)), g.Node(at(1, 1)), core.UnitLand, false)
	assert.ErrorIs(t, err, core.ErrNoPath, "destination itself is impassable")
}

func TestFindPathAvoidsDifficultTerrain(t *testing.T) {
	g := testutil.LayoutGraph(`
		. f f .
		. . . .`)
	pf := newFinder(g)
	start := g.Node(at(0, 0))

	path, err := pf.FindPath(start, g.Node(at(3, 0)), core.UnitLand, false)
	require.NoError(t, err)
	assertValidPath(t, start, path, core.UnitLand, false)

	assert.Equal(t, 4, PathCost(path))
	for _, n := range path {
		assert.NotEqual(t, core.TerrainForest, n.Terrain, "%s", n.Position)
	}
}

func TestFindPathRoutesAroundUnits(t *testing.T) {
	g := testutil.PlainsGraph(5, 3)
	blocker := testutil.PlaceUnit(g, core.PlayerFaction, core.UnitLand, testutil.LandStats, at(2, 1))
	pf := newFinder(g)
	start := g.Node(at(0, 1))

	path, err := pf.FindPath(start, g.Node(at(4, 1)), core.UnitLand, false)
	require.NoError(t, err)
	assertValidPath(t, start, path, core.UnitLand, false)
	assert.NotContains(t, path, g.Node(blocker.Position()))
}

func TestFindPathIgnoreDestination(t *testing.T) {
	g := testutil.PlainsGraph(5, 1)
	testutil.PlaceUnit(g, core.EnemyFaction, core.UnitLand, testutil.LandStats, at(4, 0))
	pf := newFinder(g)
	start, target := g.Node(at(0, 0)), g.Node(at(4, 0))

	_, err := pf.FindPath(start, target, core.UnitLand, false)
	assert.ErrorIs(t, err, core.ErrNoPath, "occupied destination is normally refused")

	path, err := pf.FindPath(start, target, core.UnitLand, true)
	require.NoError(t, err)
	require.Len(t, path, 4)
	assert.Same(t, target, path[3])
	assert.Same(t, g.Node(at(3, 0)), path[2], "approach node is one step back from the target")
	assertValidPath(t, start, path, core.UnitLand, true)
}

func TestFindPathNaval(t *testing.T) {
	g := testutil.LayoutGraph(`
		w w w
		. . w
		w w w`)
	pf := newFinder(g)
	start := g.Node(at(0, 0))

	path, err := pf.FindPath(start, g.Node(at(0, 2)), core.UnitNaval, false)
	require.NoError(t, err)
	assertValidPath(t, start, path, core.UnitNaval, false)
	for _, n := range path {
		assert.Equal(t, core.TerrainWater, n.Terrain)
	}
}

func TestSearchesResetScratchState(t *testing.T) {
	g := testutil.LayoutGraph(`
		. . f . .
		. h . . .
		. . . f .`)
	pf := newFinder(g)
	start, end := g.Node(at(0, 0)), g.Node(at(4, 2))

	first, err := pf.FindPath(start, end, core.UnitLand, false)
	require.NoError(t, err)
	before := pf.FindNodesInRange(start, 3, core.UnitLand)

	_, _ = pf.FindPath(end, start, core.UnitLand, false)
	_ = pf.FindNodesInRange(end, 5, core.UnitLand)

	second, err := pf.FindPath(start, end, core.UnitLand, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.ElementsMatch(t, before.Coordinates(), pf.FindNodesInRange(start, 3, core.UnitLand).Coordinates())
}

func TestPathCost(t *testing.T) {
	g := testutil.LayoutGraph(". f h w ~")
	path := []*core.Node{g.Node(at(1, 0)), g.Node(at(2, 0)), g.Node(at(3, 0)), g.Node(at(4, 0))}

	assert.Equal(t, 0, PathCost(nil))
	assert.Equal(t, 2+2+1+1, PathCost(path))
}
