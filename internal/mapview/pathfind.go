package mapview

import "container/heap"

// Step costs in movement-budget units.
const (
	baseStepCost     = 1.0
	diagonalStepCost = 1.5
)

// ReachableCell is one cell a token can reach, with the accumulated cost of
// the cheapest route to it.
type ReachableCell struct {
	X    int
	Y    int
	Cost float64
}

type reachNode struct {
	cell  Cell
	cost  float64
	seq   int // insertion order, breaks cost ties so results are reproducible
	index int // heap index
}

type reachQueue []*reachNode

func (q reachQueue) Len() int { return len(q) }
func (q reachQueue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	return q[i].seq < q[j].seq
}
func (q reachQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *reachQueue) Push(x any) {
	n := x.(*reachNode)
	n.index = len(*q)
	*q = append(*q, n)
}
func (q *reachQueue) Pop() any {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	return n
}

// stepDirs is the 8-connected neighbourhood, orthogonals first.
var stepDirs = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// ReachableCells runs a cost-limited Dijkstra expansion from origin and
// returns every cell reachable within budget, cheapest-settled first. The
// origin itself is included at cost 0. Terrain multiplies the cost of the
// step entering a cell; closed walls block the step crossing them; diagonal
// steps additionally require both orthogonal components to be clear so routes
// cannot cut a wall corner. A nil wall set degrades to a plain weighted
// expansion, which legacy maps without wall data rely on.
func ReachableCells(origin Cell, budget float64, walls *WallSet, terrain TerrainMap) []ReachableCell {
	if budget <= 0 {
		return nil
	}

	start := &reachNode{cell: origin, cost: 0, seq: 0}
	q := &reachQueue{start}
	heap.Init(q)
	seq := 1

	best := map[Cell]float64{origin: 0}
	settled := map[Cell]bool{}
	out := []ReachableCell{}

	for q.Len() > 0 {
		cur := heap.Pop(q).(*reachNode)
		if settled[cur.cell] {
			continue
		}
		settled[cur.cell] = true
		out = append(out, ReachableCell{X: cur.cell.X, Y: cur.cell.Y, Cost: cur.cost})

		for _, d := range stepDirs {
			next := Cell{X: cur.cell.X + d[0], Y: cur.cell.Y + d[1]}
			if settled[next] {
				continue
			}
			diagonal := d[0] != 0 && d[1] != 0
			if walls != nil && !walls.Empty() {
				if walls.BlocksStep(cur.cell, next) {
					continue
				}
				if diagonal {
					// No squeezing diagonally past a wall corner.
					if walls.BlocksStep(cur.cell, Cell{X: cur.cell.X + d[0], Y: cur.cell.Y}) ||
						walls.BlocksStep(cur.cell, Cell{X: cur.cell.X, Y: cur.cell.Y + d[1]}) {
						continue
					}
				}
			}
			step := baseStepCost
			if diagonal {
				step = diagonalStepCost
			}
			cost := cur.cost + step*terrain.CostAt(next)
			if cost > budget {
				continue
			}
			if prev, ok := best[next]; ok && cost >= prev {
				continue
			}
			best[next] = cost
			heap.Push(q, &reachNode{cell: next, cost: cost, seq: seq})
			seq++
		}
	}
	return out
}
