package cli

import (
	"fmt"

	"waked/internal/config"
	"waked/pkg/types"
)

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

func describeState(s types.ReadinessState) string {
	switch s {
	case types.StateReady:
		return "inference API is serving requests"
	case types.StateEngineStarting:
		return "engine process is up but the API is not serving yet"
	case types.StateServiceOnline:
		return "host is awake; engine process is not running"
	case types.StateUnreachable:
		return "no response from the host"
	}
	return "unknown state"
}

func printWakeOutcome(out types.WakeOutcome, cfg config.ClientConfig) {
	switch out.Reason {
	case types.WakeSucceeded:
		fmt.Printf("succeeded after %d attempt(s): %s\n", out.Attempts, describeState(out.State))
	case types.WakeUnreachable:
		fmt.Printf("gave up after %d attempt(s): host %s unreachable; check power and mesh connectivity\n",
			out.Attempts, cfg.Host.Addr)
	case types.WakeTimedOut:
		fmt.Printf("gave up after %d attempt(s): host reachable but engine never became ready (last state %s); check engine logs on the host\n",
			out.Attempts, out.State)
	}
}

func stageHint(s types.Stage) string {
	switch s {
	case types.StageOverlayLink:
		return "bring the mesh client up on this machine (e.g. `tailscale up`)"
	case types.StageEcho:
		return "host may be asleep or powered off; check power and the mesh admin panel"
	case types.StageService:
		return "waked is not answering; if the host is up, check the waked unit/service"
	case types.StageEngineProcess:
		return "run `wakectl wake` to start the engine"
	case types.StageEngineAPI:
		return "engine is starting or wedged; check engine logs on the host"
	}
	return ""
}
