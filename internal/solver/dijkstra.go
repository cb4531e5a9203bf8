// Package solver runs shortest-path searches over visibility graphs.
package solver

import (
	"container/heap"

	"deepspace-navigator/internal/geometry"
	"deepspace-navigator/internal/visibility"
)

// item is an entry of the Dijkstra frontier
type item struct {
	nodeID int     // ID of the node in the graph
	dist   float64 // Cost from start to this node
	seq    int     // push order, breaks distance ties
	index  int     // Index in the heap
}

// priorityQueue implements heap.Interface ordered by (dist, seq)
type priorityQueue []*item

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	it := x.(*item)
	it.index = len(*pq)
	*pq = append(*pq, it)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*pq = old[0 : n-1]
	return it
}

// ShortestPath runs Dijkstra from node from to node to. It returns the path's
// points, its length, and false when the two nodes are not connected.
//
// Relaxation only accepts strictly shorter distances and the frontier breaks
// ties by push order, so among equal-length routes the one discovered first
// through the graph's adjacency order wins.
func ShortestPath(g *visibility.Graph, from, to int) ([]geometry.Point, float64, bool) {
	n := g.NodeCount()
	if n == 0 || from < 0 || from >= n || to < 0 || to >= n {
		return nil, 0, false
	}
	if from == to {
		return []geometry.Point{g.Node(from)}, 0, true
	}

	dist := make([]float64, n)
	parent := make([]int, n)
	open := make([]*item, n)
	done := make([]bool, n)
	for i := range parent {
		parent[i] = -1
	}

	pq := &priorityQueue{}
	seq := 0
	open[from] = &item{nodeID: from}
	heap.Push(pq, open[from])

	for pq.Len() > 0 {
		current := heap.Pop(pq).(*item)
		u := current.nodeID
		open[u] = nil
		done[u] = true

		if u == to {
			return reconstruct(g, parent, to), dist[to], true
		}

		for _, e := range g.Neighbors(u) {
			v := e.To
			if done[v] {
				continue
			}
			tentative := dist[u] + e.Cost

			if it := open[v]; it == nil {
				seq++
				dist[v] = tentative
				parent[v] = u
				open[v] = &item{nodeID: v, dist: tentative, seq: seq}
				heap.Push(pq, open[v])
			} else if tentative < it.dist {
				dist[v] = tentative
				parent[v] = u
				it.dist = tentative
				heap.Fix(pq, it.index)
			}
		}
	}

	// No path found
	return nil, 0, false
}

func reconstruct(g *visibility.Graph, parent []int, to int) []geometry.Point {
	var ids []int
	for id := to; id != -1; id = parent[id] {
		ids = append(ids, id)
	}
	path := make([]geometry.Point, len(ids))
	for i, id := range ids {
		path[len(ids)-1-i] = g.Node(id)
	}
	return path
}
