// Package orchestrator aggregates the per-layer probes into the ordered
// readiness verdict and drives the bounded wake loop. It owns all polling
// discipline; the availability service stays stateless.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"waked/internal/probe"
	"waked/pkg/types"
)

// Probes is the slice of the prober the orchestrator consumes.
type Probes interface {
	Echo(ctx context.Context) error
	ServiceStatus(ctx context.Context) (types.StatusReport, error)
	TriggerWake(ctx context.Context) (types.WakeResponse, error)
	EngineHealth(ctx context.Context) error
}

// OverlayCheck inspects local mesh membership; injected so troubleshoot is
// testable without touching real interfaces.
type OverlayCheck func() (string, error)

// Orchestrator drives status aggregation, the wake loop, and troubleshoot.
type Orchestrator struct {
	probes      Probes
	host        types.HostDescriptor
	interval    time.Duration
	maxAttempts int
	clock       Clock
	overlay     OverlayCheck
	log         zerolog.Logger
}

// New builds an Orchestrator with the given poll discipline.
func New(probes Probes, host types.HostDescriptor, interval time.Duration, maxAttempts int, log zerolog.Logger) *Orchestrator {
	if interval <= 0 {
		interval = time.Second
	}
	if maxAttempts <= 0 {
		maxAttempts = 30
	}
	return &Orchestrator{
		probes:      probes,
		host:        host,
		interval:    interval,
		maxAttempts: maxAttempts,
		clock:       realClock{},
		overlay:     probe.OverlayLink,
		log:         log,
	}
}

// CheckStatus derives the readiness state from live probes, in order:
// echo, service status, engine health. It is side-effect free and never
// caches; any probe failure short-circuits to the state it implies.
func (o *Orchestrator) CheckStatus(ctx context.Context) types.ReadinessState {
	if err := o.probes.Echo(ctx); err != nil {
		o.log.Debug().Err(err).Msg("echo probe failed")
		return types.StateUnreachable
	}
	report, err := o.probes.ServiceStatus(ctx)
	if err != nil {
		o.log.Debug().Err(err).Msg("service probe failed")
		return types.StateUnreachable
	}
	if !report.EngineRunning {
		return types.StateServiceOnline
	}
	if err := o.probes.EngineHealth(ctx); err != nil {
		o.log.Debug().Err(err).Msg("engine probe failed")
		return types.StateEngineStarting
	}
	return types.StateReady
}

// Wake drives the full wake attempt: an initial status check, the wake
// trigger, then a bounded poll until ready or the attempt ceiling. Ready and
// engine_starting short-circuit as succeeded; engine_starting still gets a
// courtesy trigger since the call is idempotent. A failed trigger does not
// abort the loop; the host may come up on its own within the window.
func (o *Orchestrator) Wake(ctx context.Context) types.WakeOutcome {
	requested := o.clock.Now()

	state := o.CheckStatus(ctx)
	switch state {
	case types.StateReady:
		return types.WakeOutcome{RequestedAt: requested, State: state, Attempts: 1, Reason: types.WakeSucceeded}
	case types.StateEngineStarting:
		if _, err := o.probes.TriggerWake(ctx); err != nil {
			o.log.Debug().Err(err).Msg("courtesy wake trigger failed")
		}
		return types.WakeOutcome{RequestedAt: requested, State: state, Attempts: 1, Reason: types.WakeSucceeded}
	}

	if resp, err := o.probes.TriggerWake(ctx); err != nil {
		o.log.Debug().Err(err).Msg("wake trigger failed")
	} else {
		o.log.Info().Str("status", resp.Status).Msg("wake signal delivered")
	}

	final, polled := pollUntil(ctx, o.clock, o.interval, o.maxAttempts-1,
		o.CheckStatus,
		func(s types.ReadinessState) bool { return s == types.StateReady },
	)
	attempts := 1 + polled
	if polled == 0 {
		// Ceiling of one: the initial check was the only attempt.
		final = state
	}
	if final == types.StateReady {
		return types.WakeOutcome{RequestedAt: requested, State: final, Attempts: attempts, Reason: types.WakeSucceeded}
	}
	reason := types.WakeTimedOut
	if final == types.StateUnreachable {
		reason = types.WakeUnreachable
	}
	return types.WakeOutcome{RequestedAt: requested, State: final, Attempts: attempts, Reason: reason}
}

// Troubleshoot probes every layer independently, never short-circuiting, so
// the report shows exactly which layers fail even when lower ones already
// did. Stages appear in diagnostic order from the lowest layer up.
func (o *Orchestrator) Troubleshoot(ctx context.Context) types.TroubleshootReport {
	report := types.TroubleshootReport{Host: o.host}
	report.Stages = append(report.Stages,
		o.runStage(types.StageOverlayLink, func(context.Context) (string, error) {
			detail, err := o.overlay()
			if err != nil {
				return "", err
			}
			return "overlay link up via " + detail, nil
		}, ctx),
		o.runStage(types.StageEcho, func(ctx context.Context) (string, error) {
			if err := o.probes.Echo(ctx); err != nil {
				return "", err
			}
			return fmt.Sprintf("host %s answers echo", o.host.Addr), nil
		}, ctx),
	)

	svcStage := o.runStageStatus(ctx)
	report.Stages = append(report.Stages, svcStage.result, svcStage.process)

	report.Stages = append(report.Stages, o.runStage(types.StageEngineAPI, func(ctx context.Context) (string, error) {
		if err := o.probes.EngineHealth(ctx); err != nil {
			return "", err
		}
		return fmt.Sprintf("inference api answers on port %d", o.host.EnginePort), nil
	}, ctx))

	return report
}

func (o *Orchestrator) runStage(stage types.Stage, fn func(context.Context) (string, error), ctx context.Context) types.StageResult {
	start := o.clock.Now()
	detail, err := fn(ctx)
	res := types.StageResult{Stage: stage, Latency: o.clock.Now().Sub(start)}
	if err != nil {
		res.Detail = err.Error()
		return res
	}
	res.OK = true
	res.Detail = detail
	return res
}

type statusStages struct {
	result  types.StageResult
	process types.StageResult
}

// runStageStatus checks the service once and derives both the service stage
// and the engine-process stage from the same report, so troubleshoot does
// not double-poke the service.
func (o *Orchestrator) runStageStatus(ctx context.Context) statusStages {
	start := o.clock.Now()
	report, err := o.probes.ServiceStatus(ctx)
	lat := o.clock.Now().Sub(start)
	if err != nil {
		return statusStages{
			result:  types.StageResult{Stage: types.StageService, Detail: err.Error(), Latency: lat},
			process: types.StageResult{Stage: types.StageEngineProcess, Detail: "unknown: service did not respond", Latency: 0},
		}
	}
	svc := types.StageResult{
		Stage:   types.StageService,
		OK:      true,
		Detail:  fmt.Sprintf("service up %ds on %s", report.UptimeSeconds, report.HostAddress),
		Latency: lat,
	}
	proc := types.StageResult{Stage: types.StageEngineProcess, Latency: 0}
	if report.EngineRunning {
		proc.OK = true
		proc.Detail = fmt.Sprintf("engine process running (pid %d)", report.EnginePID)
	} else {
		proc.Detail = "engine process not running; `wakectl wake` will start it"
	}
	return statusStages{result: svc, process: proc}
}
