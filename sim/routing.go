package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/pearlsim/sim/trace"
)

// Router decides one action per non-idle worker each tick. It owns the
// cross-tick PathMemory; everything else is rebuilt from the State.
type Router struct {
	abilities *AbilityTable
	paths     *PathMemory
	trace     *trace.DecisionTrace
	tick      int
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithTrace records every decision into dt.
func WithTrace(dt *trace.DecisionTrace) RouterOption {
	return func(r *Router) { r.trace = dt }
}

// WithPathMemory starts the router from existing path memory instead of an
// empty one.
func WithPathMemory(pm *PathMemory) RouterOption {
	return func(r *Router) { r.paths = pm }
}

// NewRouter creates a Router over an immutable ability table.
func NewRouter(abilities *AbilityTable, opts ...RouterOption) *Router {
	r := &Router{abilities: abilities, paths: NewPathMemory()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Paths exposes the router's path memory for inspection.
func (r *Router) Paths() *PathMemory {
	return r.paths
}

// Tick returns the number of ticks decided so far.
func (r *Router) Tick() int {
	return r.tick
}

// offload is a candidate (pearl, idle neighbor) pair.
type offload struct {
	pearlID  uint32
	to       uint32
	ownTime  uint64
	peerTime uint64
}

// DecideActions computes this tick's actions. Workers are visited in state
// order; workers with empty desks get no action. For each worker the first
// applicable rule wins: return a finished pearl, offload to an idle neighbor,
// or nom locally.
//
// Offloads update a projected copy of the pearl counts so that two workers do
// not both offload into the same idle neighbor within one tick. A tick that
// fails is not counted by Tick.
func (r *Router) DecideActions(state *State, graph NeighborGraph) (ActionSet, error) {
	tick := r.tick + 1
	current := NewPearlCounts(state.Workers)
	projected := current.Clone()
	index := workerIndex(state.Workers)
	actions := make(ActionSet)

	for i := range state.Workers {
		w := &state.Workers[i]
		if current[w.ID] == 0 {
			continue
		}

		if w.ID != GatekeeperID {
			returned, err := r.returnFinished(tick, w, actions)
			if err != nil {
				return nil, err
			}
			if returned {
				continue
			}
		}

		cand, ok, err := r.bestOffload(w, state.Workers, index, graph, projected)
		if err != nil {
			return nil, err
		}
		if ok {
			actions[w.ID] = Pass{PearlID: cand.pearlID, ToWorker: cand.to}
			r.paths.Push(cand.pearlID, w.ID)
			projected.Transfer(w.ID, cand.to)
			r.trace.Record(trace.DecisionRecord{
				Tick: tick, WorkerID: w.ID, PearlID: cand.pearlID, Rule: trace.RuleOffload,
				ToWorker: cand.to, OwnTime: cand.ownTime, PeerTime: cand.peerTime,
			})
			logrus.Debugf("[tick %07d] worker %d offloads pearl %d to %d (own=%d peer=%d)",
				tick, w.ID, cand.pearlID, cand.to, cand.ownTime, cand.peerTime)
			continue
		}

		pearlID, ownTime, ok, err := r.bestNom(w)
		if err != nil {
			return nil, err
		}
		if !ok {
			logrus.Debugf("[tick %07d] worker %d holds only finished pearls, idling", tick, w.ID)
			continue
		}
		actions[w.ID] = Nom{PearlID: pearlID}
		r.trace.Record(trace.DecisionRecord{
			Tick: tick, WorkerID: w.ID, PearlID: pearlID, Rule: trace.RuleNom, OwnTime: ownTime,
		})
		logrus.Debugf("[tick %07d] worker %d noms pearl %d (time=%d)", tick, w.ID, pearlID, ownTime)
	}
	r.tick = tick
	return actions, nil
}

// returnFinished passes the first finished pearl on the desk back to the
// worker that offloaded it here. Only one pearl is returned per tick.
func (r *Router) returnFinished(tick int, w *Worker, actions ActionSet) (bool, error) {
	for _, p := range w.Desk {
		if !p.IsFinished() {
			continue
		}
		to, err := r.paths.Pop(p.ID)
		if err != nil {
			return false, fmt.Errorf("worker %d: %w", w.ID, err)
		}
		actions[w.ID] = Pass{PearlID: p.ID, ToWorker: to}
		r.trace.Record(trace.DecisionRecord{
			Tick: tick, WorkerID: w.ID, PearlID: p.ID, Rule: trace.RuleReturn, ToWorker: to,
		})
		logrus.Debugf("[tick %07d] worker %d returns finished pearl %d to %d", tick, w.ID, p.ID, to)
		return true, nil
	}
	return false, nil
}

// bestOffload scans idle neighbors in graph order and desk pearls in desk
// order. A pair qualifies when the neighbor is strictly faster, or equally
// fast while this worker holds more than one pearl. Each qualifying pair
// replaces the previous candidate, so the last one scanned is returned even
// if an earlier pair would have been faster. Finished pearls never qualify.
func (r *Router) bestOffload(w *Worker, workers []Worker, index map[uint32]int, graph NeighborGraph, projected PearlCounts) (offload, bool, error) {
	var (
		best  offload
		found bool
	)
	for _, nbrID := range IdleNeighbors(w.ID, graph, projected) {
		pos, ok := index[nbrID]
		if !ok {
			return offload{}, false, &GraphValidationError{WorkerID: nbrID, Edge: Edge{w.ID, nbrID}, Reason: "is not a valid worker ID"}
		}
		nbr := &workers[pos]
		for _, p := range w.Desk {
			if p.IsFinished() {
				continue
			}
			ownTime, err := ProcessingTime(p, w.Flavor, r.abilities)
			if err != nil {
				return offload{}, false, fmt.Errorf("worker %d: %w", w.ID, err)
			}
			peerTime, err := ProcessingTime(p, nbr.Flavor, r.abilities)
			if err != nil {
				return offload{}, false, fmt.Errorf("worker %d: %w", nbr.ID, err)
			}
			if peerTime < ownTime || (peerTime == ownTime && len(w.Desk) > 1) {
				best = offload{pearlID: p.ID, to: nbrID, ownTime: ownTime, peerTime: peerTime}
				found = true
			}
		}
	}
	return best, found, nil
}

// bestNom picks the unfinished pearl this worker processes fastest.
// Ties keep the earliest pearl on the desk.
func (r *Router) bestNom(w *Worker) (uint32, uint64, bool, error) {
	var (
		bestID   uint32
		bestTime uint64
		found    bool
	)
	for _, p := range w.Desk {
		if p.IsFinished() {
			continue
		}
		t, err := ProcessingTime(p, w.Flavor, r.abilities)
		if err != nil {
			return 0, 0, false, fmt.Errorf("worker %d: %w", w.ID, err)
		}
		if !found || t < bestTime {
			bestID, bestTime, found = p.ID, t, true
		}
	}
	return bestID, bestTime, found, nil
}
