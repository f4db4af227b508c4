package trace

// TraceSummary aggregates statistics from a DecisionTrace.
type TraceSummary struct {
	TotalDecisions          int
	Ticks                   int
	ReturnCount             int
	OffloadCount            int
	NomCount                int
	UniqueDestinations      int
	DestinationDistribution map[uint32]int // worker ID → pearls passed to it
	MeanOffloadGain         float64        // mean (OwnTime - PeerTime) over offloads
}

// Summarize computes aggregate statistics from a DecisionTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(dt *DecisionTrace) *TraceSummary {
	summary := &TraceSummary{
		DestinationDistribution: make(map[uint32]int),
	}
	if dt == nil {
		return summary
	}

	summary.TotalDecisions = len(dt.Decisions)
	ticks := make(map[int]bool)
	totalGain := 0.0
	for _, d := range dt.Decisions {
		ticks[d.Tick] = true
		switch d.Rule {
		case RuleReturn:
			summary.ReturnCount++
			summary.DestinationDistribution[d.ToWorker]++
		case RuleOffload:
			summary.OffloadCount++
			summary.DestinationDistribution[d.ToWorker]++
			totalGain += float64(d.OwnTime) - float64(d.PeerTime)
		case RuleNom:
			summary.NomCount++
		}
	}
	if summary.OffloadCount > 0 {
		summary.MeanOffloadGain = totalGain / float64(summary.OffloadCount)
	}
	summary.Ticks = len(ticks)
	summary.UniqueDestinations = len(summary.DestinationDistribution)

	return summary
}
