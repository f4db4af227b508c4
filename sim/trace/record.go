// Package trace provides decision-trace recording for per-tick routing analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Rule names the routing rule that produced a decision.
type Rule string

const (
	// RuleReturn sends a finished pearl back along its recorded path.
	RuleReturn Rule = "return"
	// RuleOffload hands a pearl to an idle neighbor.
	RuleOffload Rule = "offload"
	// RuleNom processes a pearl locally.
	RuleNom Rule = "nom"
)

// DecisionRecord captures a single worker's decision for one tick.
type DecisionRecord struct {
	Tick     int
	WorkerID uint32
	PearlID  uint32
	Rule     Rule
	ToWorker uint32 // destination for return/offload; unset for nom
	OwnTime  uint64 // processing time at WorkerID; 0 for return
	PeerTime uint64 // processing time at ToWorker; offload only
}
