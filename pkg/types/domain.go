package types

import "time"

// ReadinessState is the client's composite verdict about the remote host,
// ordered from most to least ready. It is derived fresh on every poll and
// never cached across calls.
type ReadinessState string

const (
	// StateReady means the inference API itself answered a health probe.
	StateReady ReadinessState = "ready"
	// StateEngineStarting means the availability service is reachable and
	// reports the engine process running, but the inference API does not
	// answer yet.
	StateEngineStarting ReadinessState = "engine_starting"
	// StateServiceOnline means the availability service is reachable but the
	// engine process is not observed running.
	StateServiceOnline ReadinessState = "service_online"
	// StateUnreachable means no response from the host within the probe
	// timeouts (asleep, powered off, or off the mesh).
	StateUnreachable ReadinessState = "unreachable"
)

// Rank returns the position of s in the readiness order; higher is more
// ready. Unknown states rank below unreachable.
func (s ReadinessState) Rank() int {
	switch s {
	case StateReady:
		return 3
	case StateEngineStarting:
		return 2
	case StateServiceOnline:
		return 1
	case StateUnreachable:
		return 0
	}
	return -1
}

// Known reports whether s is one of the four defined states.
func (s ReadinessState) Known() bool { return s.Rank() >= 0 }

// HostDescriptor identifies the compute host on the overlay network.
// Immutable per session; collected once by `wakectl setup` and persisted.
type HostDescriptor struct {
	// Stable overlay-network address of the host.
	// example: 100.74.12.33
	Addr string `json:"addr" yaml:"addr" toml:"addr" example:"100.74.12.33"`
	// Port the availability service listens on.
	// example: 8790
	ServicePort int `json:"service_port" yaml:"service_port" toml:"service_port" example:"8790"`
	// Port the inference engine's HTTP API listens on.
	// example: 11434
	EnginePort int `json:"engine_port" yaml:"engine_port" toml:"engine_port" example:"11434"`
}

// WakeReason is the terminal reason of a wake attempt loop.
type WakeReason string

const (
	WakeSucceeded   WakeReason = "succeeded"
	WakeTimedOut    WakeReason = "timed_out"
	WakeUnreachable WakeReason = "unreachable"
)

// WakeOutcome summarizes one bounded wake attempt loop.
type WakeOutcome struct {
	RequestedAt time.Time      `json:"requested_at"`
	State       ReadinessState `json:"state"`
	Attempts    int            `json:"attempts"`
	Reason      WakeReason     `json:"reason"`
}

// Stage names the probe layers checked by test/troubleshoot, in diagnostic
// order from the lowest layer up.
type Stage string

const (
	StageOverlayLink   Stage = "overlay_link"
	StageEcho          Stage = "echo"
	StageService       Stage = "service"
	StageEngineProcess Stage = "engine_process"
	StageEngineAPI     Stage = "engine_api"
)

// StageResult is one entry of a troubleshoot report. Detail carries the
// explanation shown to the user whether the stage passed or failed.
type StageResult struct {
	Stage   Stage         `json:"stage"`
	OK      bool          `json:"ok"`
	Detail  string        `json:"detail"`
	Latency time.Duration `json:"latency"`
}

// TroubleshootReport holds one StageResult per stage, in order, regardless
// of how many stages failed.
type TroubleshootReport struct {
	Host   HostDescriptor `json:"host"`
	Stages []StageResult  `json:"stages"`
}

// AllOK reports whether every stage passed.
func (r TroubleshootReport) AllOK() bool {
	for _, s := range r.Stages {
		if !s.OK {
			return false
		}
	}
	return true
}
