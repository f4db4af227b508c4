package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	dt := NewDecisionTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN summarized
	summary := Summarize(dt)

	// THEN all counts are zero
	if summary.TotalDecisions != 0 || summary.Ticks != 0 {
		t.Errorf("expected 0 decisions and ticks, got %d/%d", summary.TotalDecisions, summary.Ticks)
	}
	if summary.ReturnCount != 0 || summary.OffloadCount != 0 || summary.NomCount != 0 {
		t.Error("expected 0 per-rule counts")
	}
	if summary.MeanOffloadGain != 0 {
		t.Error("expected 0 offload gain")
	}
	if len(summary.DestinationDistribution) != 0 {
		t.Error("expected empty destination distribution")
	}
}

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalDecisions != 0 || summary.DestinationDistribution == nil {
		t.Errorf("expected zero summary with initialized map, got %+v", summary)
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with decisions of every rule across two ticks
	dt := NewDecisionTrace(TraceConfig{Level: TraceLevelDecisions})
	dt.Record(DecisionRecord{Tick: 1, WorkerID: 1, PearlID: 10, Rule: RuleOffload, ToWorker: 0, OwnTime: 6, PeerTime: 3})
	dt.Record(DecisionRecord{Tick: 1, WorkerID: 2, PearlID: 20, Rule: RuleNom, OwnTime: 4})
	dt.Record(DecisionRecord{Tick: 2, WorkerID: 1, PearlID: 30, Rule: RuleOffload, ToWorker: 3, OwnTime: 2, PeerTime: 2})
	dt.Record(DecisionRecord{Tick: 2, WorkerID: 3, PearlID: 40, Rule: RuleReturn, ToWorker: 1})

	// WHEN summarized
	summary := Summarize(dt)

	// THEN counts match
	if summary.TotalDecisions != 4 {
		t.Errorf("expected 4 total decisions, got %d", summary.TotalDecisions)
	}
	if summary.Ticks != 2 {
		t.Errorf("expected 2 ticks, got %d", summary.Ticks)
	}
	if summary.OffloadCount != 2 || summary.NomCount != 1 || summary.ReturnCount != 1 {
		t.Errorf("unexpected rule counts: offload=%d nom=%d return=%d",
			summary.OffloadCount, summary.NomCount, summary.ReturnCount)
	}
	if summary.UniqueDestinations != 3 {
		t.Errorf("expected 3 unique destinations, got %d", summary.UniqueDestinations)
	}
	if summary.MeanOffloadGain != 1.5 {
		t.Errorf("expected mean offload gain 1.5, got %f", summary.MeanOffloadGain)
	}
}
