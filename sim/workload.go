package sim

// PearlCounts is a per-tick view of how many pearls sit on each worker's desk.
type PearlCounts map[uint32]int

// NewPearlCounts snapshots desk sizes.
func NewPearlCounts(workers []Worker) PearlCounts {
	counts := make(PearlCounts, len(workers))
	for _, w := range workers {
		counts[w.ID] = len(w.Desk)
	}
	return counts
}

// Clone returns an independent copy, used as the projected snapshot that is
// mutated while a tick's offloads are decided.
func (c PearlCounts) Clone() PearlCounts {
	out := make(PearlCounts, len(c))
	for id, n := range c {
		out[id] = n
	}
	return out
}

// Transfer moves one pearl from one worker's count to another's.
func (c PearlCounts) Transfer(from, to uint32) {
	c[from]--
	c[to]++
}

// IdleNeighbors returns the neighbors of id with no pearls, in graph order.
func IdleNeighbors(id uint32, graph NeighborGraph, counts PearlCounts) []uint32 {
	var idle []uint32
	for _, nbr := range graph.Neighbors(id) {
		if counts[nbr] == 0 {
			idle = append(idle, nbr)
		}
	}
	return idle
}
