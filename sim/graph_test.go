package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// basicWorkers is a gatekeeper with an empty desk and a Matrix worker holding
// one unfinished and one finished pearl.
func basicWorkers() []Worker {
	return []Worker{
		{ID: 0, Flavor: "Vector", Desk: []Pearl{}},
		{ID: 1, Flavor: "Matrix", Desk: []Pearl{basicPearl(), {ID: 67890, Layers: []Layer{}}}},
	}
}

func TestWorkerIDs_SortedGatekeeperFirst(t *testing.T) {
	workers := []Worker{{ID: 3}, {ID: 0}, {ID: 2}}
	assert.Equal(t, []uint32{0, 2, 3}, WorkerIDs(workers))
	assert.Equal(t, []uint32{}, WorkerIDs(nil))
}

func TestBuildNeighborGraph_SingleEdge(t *testing.T) {
	g, err := BuildNeighborGraph([]Edge{{0, 1}}, basicWorkers())
	require.NoError(t, err)

	assert.Equal(t, []uint32{1}, g[0])
	assert.Equal(t, []uint32{0}, g[1])
}

func TestBuildNeighborGraph_IsolatedWorkerHasEntry(t *testing.T) {
	workers := append(basicWorkers(), Worker{ID: 7, Flavor: "General"})
	g, err := BuildNeighborGraph([]Edge{{0, 1}}, workers)
	require.NoError(t, err)

	nbrs, ok := g[7]
	assert.True(t, ok, "isolated worker must still have an entry")
	assert.Empty(t, nbrs)
}

func TestBuildNeighborGraph_EncounterOrderAndDuplicates(t *testing.T) {
	workers := []Worker{{ID: 0}, {ID: 1}, {ID: 2}, {ID: 3}}
	g, err := BuildNeighborGraph([]Edge{{2, 1}, {1, 3}, {0, 1}, {1, 2}}, workers)
	require.NoError(t, err)

	assert.Equal(t, []uint32{2, 3, 0, 2}, g[1])
	assert.Equal(t, []uint32{1, 1}, g[2])
}

func TestBuildNeighborGraph_UnknownWorker(t *testing.T) {
	// GIVEN workers {0,1} and an edge to worker 2
	_, err := BuildNeighborGraph([]Edge{{0, 1}, {1, 2}}, basicWorkers())

	// THEN building fails naming worker 2
	var ge *GraphValidationError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, uint32(2), ge.WorkerID)
}

func TestBuildNeighborGraph_SelfLoop(t *testing.T) {
	_, err := BuildNeighborGraph([]Edge{{1, 1}}, basicWorkers())
	var ge *GraphValidationError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, uint32(1), ge.WorkerID)
}

func TestBuildNeighborGraph_Symmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 12).Draw(t, "workers")
		workers := make([]Worker, n)
		for i := range workers {
			workers[i] = Worker{ID: uint32(i)}
		}
		pairs := rapid.SliceOfN(rapid.IntRange(0, n*n-1), 0, 30).Draw(t, "edges")
		var edges []Edge
		for _, p := range pairs {
			a, b := uint32(p/n), uint32(p%n)
			if a != b {
				edges = append(edges, Edge{a, b})
			}
		}

		g, err := BuildNeighborGraph(edges, workers)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(g) != n {
			t.Fatalf("expected %d entries, got %d", n, len(g))
		}
		for a := range g {
			for b := range g {
				if g.Adjacent(a, b) != g.Adjacent(b, a) {
					t.Fatalf("asymmetric adjacency between %d and %d", a, b)
				}
			}
		}
	})
}

func TestGraphCache_ReusesUnchangedInputs(t *testing.T) {
	var c GraphCache
	edges := []Edge{{0, 1}}

	g1, err := c.Get(edges, basicWorkers())
	require.NoError(t, err)
	g2, err := c.Get([]Edge{{0, 1}}, basicWorkers())
	require.NoError(t, err)

	assert.Equal(t, 1, c.Hits())
	assert.Equal(t, g1, g2)
}

func TestGraphCache_RebuildsOnChange(t *testing.T) {
	var c GraphCache
	workers := append(basicWorkers(), Worker{ID: 2})

	_, err := c.Get([]Edge{{0, 1}}, workers)
	require.NoError(t, err)
	g, err := c.Get([]Edge{{0, 1}, {1, 2}}, workers)
	require.NoError(t, err)

	assert.Equal(t, 0, c.Hits())
	assert.Equal(t, []uint32{0, 2}, g[1])

	// AND a worker leaving invalidates the cached graph
	_, err = c.Get([]Edge{{0, 1}, {1, 2}}, basicWorkers())
	assert.Error(t, err)
}
