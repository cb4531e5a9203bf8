package visibility

import (
	"deepspace-navigator/internal/geometry"
)

// Edge represents a connection between two nodes with a cost
type Edge struct {
	To   int     // Index of the destination node
	Cost float64 // Euclidean distance
}

// Graph is an undirected weighted graph whose nodes live in an index arena
// and are addressed by integer handles. The source is always handle 0; the
// target is handle 1 unless it coincides with the source.
type Graph struct {
	nodes []geometry.Point
	index map[geometry.Key]int
	edges [][]Edge
	count int

	source, target int
}

func newGraph(capacity int) *Graph {
	return &Graph{
		nodes: make([]geometry.Point, 0, capacity),
		index: make(map[geometry.Key]int, capacity),
		edges: make([][]Edge, 0, capacity),
	}
}

// addNode registers p unless a node with the same grid key exists, and
// returns the node's handle either way
func (g *Graph) addNode(p geometry.Point) int {
	key := p.Key()
	if id, ok := g.index[key]; ok {
		return id
	}
	id := len(g.nodes)
	g.nodes = append(g.nodes, p)
	g.edges = append(g.edges, nil)
	g.index[key] = id
	return id
}

// addEdge appends an undirected edge; callers guarantee i != j
func (g *Graph) addEdge(i, j int, cost float64) {
	g.edges[i] = append(g.edges[i], Edge{To: j, Cost: cost})
	g.edges[j] = append(g.edges[j], Edge{To: i, Cost: cost})
	g.count++
}

// Source returns the handle of the route's start node
func (g *Graph) Source() int {
	return g.source
}

// Target returns the handle of the route's end node
func (g *Graph) Target() int {
	return g.target
}

// NodeCount returns the number of distinct nodes
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of undirected edges
func (g *Graph) EdgeCount() int {
	return g.count
}

// Node returns the point stored under handle id
func (g *Graph) Node(id int) geometry.Point {
	return g.nodes[id]
}

// Nodes returns a copy of all node points in insertion order
func (g *Graph) Nodes() []geometry.Point {
	out := make([]geometry.Point, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Lookup returns the handle of the node at p's grid key
func (g *Graph) Lookup(p geometry.Point) (int, bool) {
	id, ok := g.index[p.Key()]
	return id, ok
}

// Neighbors returns the adjacency list of node id in insertion order. The
// slice is shared with the graph and must not be modified.
func (g *Graph) Neighbors(id int) []Edge {
	return g.edges[id]
}

// HasEdge reports whether i and j are adjacent
func (g *Graph) HasEdge(i, j int) bool {
	for _, e := range g.edges[i] {
		if e.To == j {
			return true
		}
	}
	return false
}

// Lines returns every edge once as a two-point line, ordered by the lower
// endpoint handle and then by adjacency order. This is what a presentation
// layer draws as candidate edges.
func (g *Graph) Lines() [][2]geometry.Point {
	lines := make([][2]geometry.Point, 0, g.count)
	for i, adj := range g.edges {
		for _, e := range adj {
			if i < e.To {
				lines = append(lines, [2]geometry.Point{g.nodes[i], g.nodes[e.To]})
			}
		}
	}
	return lines
}

// Stats summarises the graph for logs and metrics
type Stats struct {
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
}

func (g *Graph) Stats() Stats {
	return Stats{Nodes: g.NodeCount(), Edges: g.EdgeCount()}
}
