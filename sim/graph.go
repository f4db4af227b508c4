package sim

import (
	"fmt"
	"slices"
)

// NeighborGraph maps each worker id to its adjacent worker ids.
// Adjacency order follows the edge list; duplicate edges are kept.
type NeighborGraph map[uint32][]uint32

// GraphValidationError reports an edge that cannot belong to the graph.
type GraphValidationError struct {
	WorkerID uint32
	Edge     Edge
	Reason   string
}

func (e *GraphValidationError) Error() string {
	return fmt.Sprintf("neighbor graph: edge (%d,%d): worker %d %s", e.Edge[0], e.Edge[1], e.WorkerID, e.Reason)
}

// BuildNeighborGraph converts the raw edge list into adjacency lists over
// exactly the given workers. Every worker gets an entry, even with no edges.
// All edges are validated before the graph is returned.
func BuildNeighborGraph(edges []Edge, workers []Worker) (NeighborGraph, error) {
	ids := WorkerIDs(workers)
	known := make(map[uint32]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}

	for _, e := range edges {
		for _, end := range e {
			if !known[end] {
				return nil, &GraphValidationError{WorkerID: end, Edge: e, Reason: "is not a valid worker ID"}
			}
		}
		if e[0] == e[1] {
			return nil, &GraphValidationError{WorkerID: e[0], Edge: e, Reason: "cannot neighbor itself"}
		}
	}

	graph := make(NeighborGraph, len(ids))
	for _, id := range ids {
		graph[id] = []uint32{}
	}
	for _, e := range edges {
		graph[e[0]] = append(graph[e[0]], e[1])
		graph[e[1]] = append(graph[e[1]], e[0])
	}
	return graph, nil
}

// Neighbors returns the adjacency list of id (nil for unknown ids).
func (g NeighborGraph) Neighbors(id uint32) []uint32 {
	return g[id]
}

// Adjacent reports whether b appears in a's adjacency list.
func (g NeighborGraph) Adjacent(a, b uint32) bool {
	return slices.Contains(g[a], b)
}

// GraphCache reuses the last built graph while the edge list and worker id
// set stay unchanged between ticks.
type GraphCache struct {
	edges []Edge
	ids   []uint32
	graph NeighborGraph
	hits  int
}

// Get returns the graph for the given tick inputs, rebuilding when they differ
// from the previous call.
func (c *GraphCache) Get(edges []Edge, workers []Worker) (NeighborGraph, error) {
	ids := WorkerIDs(workers)
	if c.graph != nil && slices.Equal(c.edges, edges) && slices.Equal(c.ids, ids) {
		c.hits++
		return c.graph, nil
	}
	graph, err := BuildNeighborGraph(edges, workers)
	if err != nil {
		c.graph = nil
		return nil, err
	}
	c.edges = slices.Clone(edges)
	c.ids = ids
	c.graph = graph
	return graph, nil
}

// Hits returns how many calls were served from the cache.
func (c *GraphCache) Hits() int {
	return c.hits
}
