package sim

import "slices"

// GatekeeperID is the worker that pearls enter and leave the network through.
// Finished pearls that reach it stay on its desk.
const GatekeeperID uint32 = 0

// Color labels a layer's material and indexes the AbilityTable.
type Color string

// Layer is one removable coat of a pearl.
type Layer struct {
	Color     Color  `json:"color"`
	Thickness uint32 `json:"thickness"`
}

// Pearl is the unit of work. ID is stable across ticks.
type Pearl struct {
	ID     uint32  `json:"id"`
	Layers []Layer `json:"layers"`
}

// IsFinished reports whether every layer has been removed.
func (p Pearl) IsFinished() bool {
	return len(p.Layers) == 0
}

// Worker is a node of the network. Desk order is the order reported by the
// simulation and is significant for tie-breaking.
type Worker struct {
	ID     uint32  `json:"id"`
	Flavor string  `json:"flavor"`
	Desk   []Pearl `json:"desk"`
}

// Edge is an undirected adjacency between two worker ids.
type Edge [2]uint32

// State is the full simulation snapshot for one tick.
// Score is informational and not consulted by routing.
type State struct {
	Workers     []Worker `json:"workers"`
	NeighborMap []Edge   `json:"neighbor_map"`
	Score       uint32   `json:"score"`
}

// WorkerIDs returns the ids of all workers sorted ascending, so the
// gatekeeper comes first.
func WorkerIDs(workers []Worker) []uint32 {
	ids := make([]uint32, 0, len(workers))
	for _, w := range workers {
		ids = append(ids, w.ID)
	}
	slices.Sort(ids)
	return ids
}

// workerIndex maps worker id to its position in workers.
func workerIndex(workers []Worker) map[uint32]int {
	idx := make(map[uint32]int, len(workers))
	for i, w := range workers {
		idx[w.ID] = i
	}
	return idx
}
