package game

import (
	"container/heap"

	"grid-tactics/internal/models"
)

// moveNode is a frontier entry in the movement search.
type moveNode struct {
	x, y  int
	cost  int // cumulative terrain cost to enter (x, y)
	index int // heap index
}

type moveFrontier []*moveNode

func (f moveFrontier) Len() int            { return len(f) }
func (f moveFrontier) Less(i, j int) bool  { return f[i].cost < f[j].cost }
func (f moveFrontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i]; f[i].index = i; f[j].index = j }
func (f *moveFrontier) Push(x interface{}) { n := x.(*moveNode); n.index = len(*f); *f = append(*f, n) }
func (f *moveFrontier) Pop() interface{} {
	old := *f
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*f = old[:len(old)-1]
	return n
}

// Movement is 4-connected; no diagonals.
var moveDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// ReachableTiles returns every tile the unit can end its move on this turn:
// a Dijkstra expansion from the unit's position where entering a tile costs
// that tile's terrain movement cost and the cumulative cost may not exceed
// the unit's movement budget. Tiles holding other live units are impassable:
// they block traversal, not just stopping. The unit's own tile is excluded
// from the result.
func ReachableTiles(grid *Grid, cfg *models.GameConfig, roster []*models.Unit, unit *models.Unit) []models.Tile {
	occupied := make(map[[2]int]bool, len(roster))
	for _, other := range roster {
		if other.ID != unit.ID && other.Alive() {
			occupied[[2]int{other.X, other.Y}] = true
		}
	}

	key := func(x, y int) int { return y*grid.Width + x }

	start := &moveNode{x: unit.X, y: unit.Y, cost: 0}
	frontier := &moveFrontier{start}
	heap.Init(frontier)

	best := map[int]int{key(unit.X, unit.Y): 0}
	settled := make(map[int]bool)
	var reachable []models.Tile

	for frontier.Len() > 0 {
		cur := heap.Pop(frontier).(*moveNode)
		k := key(cur.x, cur.y)
		if settled[k] {
			continue
		}
		settled[k] = true

		if cur.cost > 0 {
			reachable = append(reachable, models.Tile{X: cur.x, Y: cur.y})
		}

		for _, d := range moveDirs {
			nx, ny := cur.x+d[0], cur.y+d[1]
			if !grid.InBounds(nx, ny) || occupied[[2]int{nx, ny}] {
				continue
			}
			nk := key(nx, ny)
			if settled[nk] {
				continue
			}
			cost := cur.cost + cfg.Terrain[grid.kindAt(nx, ny)].MovementCost
			if cost > unit.Movement {
				continue
			}
			if prev, ok := best[nk]; ok && cost >= prev {
				continue
			}
			best[nk] = cost
			heap.Push(frontier, &moveNode{x: nx, y: ny, cost: cost})
		}
	}
	return reachable
}
