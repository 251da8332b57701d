package types

import "testing"

func TestReadinessOrder(t *testing.T) {
	order := []ReadinessState{StateUnreachable, StateServiceOnline, StateEngineStarting, StateReady}
	for i := 1; i < len(order); i++ {
		if order[i].Rank() <= order[i-1].Rank() {
			t.Fatalf("%s should rank above %s", order[i], order[i-1])
		}
	}
}

func TestReadinessKnown(t *testing.T) {
	for _, s := range []ReadinessState{StateReady, StateEngineStarting, StateServiceOnline, StateUnreachable} {
		if !s.Known() { t.Fatalf("%s should be known", s) }
	}
	if ReadinessState("napping").Known() { t.Fatalf("unexpected known state") }
	if ReadinessState("").Known() { t.Fatalf("empty state should be unknown") }
}

func TestTroubleshootAllOK(t *testing.T) {
	r := TroubleshootReport{Stages: []StageResult{
		{Stage: StageEcho, OK: true},
		{Stage: StageService, OK: true},
	}}
	if !r.AllOK() { t.Fatalf("expected all ok") }
	r.Stages = append(r.Stages, StageResult{Stage: StageEngineAPI, OK: false})
	if r.AllOK() { t.Fatalf("expected failure to be reported") }
}
