package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"waked/pkg/types"
)

var (
	wakeTriggersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "waked",
			Subsystem: "engine",
			Name:      "wake_triggers_total",
			Help:      "Total /wake requests by result",
		},
		[]string{"result"},
	)

	spawnFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "waked",
			Subsystem: "engine",
			Name:      "spawn_failures_total",
			Help:      "Total failed engine spawn attempts",
		},
	)
)

func init() {
	prometheus.MustRegister(wakeTriggersTotal, spawnFailuresTotal)
}

// Inspector answers "is process <name> in the process table". It must be
// side-effect free.
type Inspector interface {
	FindProcess(name string) (pid int, running bool, err error)
}

// Spawner starts the engine as a detached process and returns its pid.
type Spawner func() (pid int, err error)

// Supervisor implements the availability service's two operations: report
// composite status and ensure the engine process is running. It holds no
// per-request state; every call inspects the live process table. The mutex
// only serializes the check-then-start window so two near-simultaneous wake
// requests cannot both spawn the engine.
type Supervisor struct {
	mu        sync.Mutex
	inspector Inspector
	spawn     Spawner
	procName  string
	hostAddr  string
	startedAt time.Time
	log       zerolog.Logger
}

// NewSupervisor wires an inspector and spawner for the named engine process.
func NewSupervisor(inspector Inspector, spawn Spawner, procName, hostAddr string, log zerolog.Logger) *Supervisor {
	return &Supervisor{
		inspector: inspector,
		spawn:     spawn,
		procName:  procName,
		hostAddr:  hostAddr,
		startedAt: time.Now(),
		log:       log,
	}
}

// Status composes a fresh StatusReport from a live process-table lookup.
// No side effects. An inspector error is reported as "not running" rather
// than failing the request; the service answering at all is the signal the
// client actually needs.
func (s *Supervisor) Status() types.StatusReport {
	pid, running, err := s.inspector.FindProcess(s.procName)
	if err != nil {
		s.log.Warn().Err(err).Str("process", s.procName).Msg("process lookup failed")
		pid, running = 0, false
	}
	return types.StatusReport{
		Status:        "awake",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		EngineRunning: running,
		EnginePID:     pid,
		HostAddress:   s.hostAddr,
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
	}
}

// Wake ensures the engine process is started. Idempotent: if the engine is
// already in the process table this is a no-op. The call returns as soon as
// the start signal is issued; it never waits for the engine to finish
// initializing, and a failed spawn is logged and counted but still
// acknowledged, because readiness convergence is the client's job.
func (s *Supervisor) Wake() types.WakeResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	pid, running, err := s.inspector.FindProcess(s.procName)
	if err != nil {
		s.log.Warn().Err(err).Str("process", s.procName).Msg("process lookup failed; attempting spawn")
	}
	if running {
		wakeTriggersTotal.WithLabelValues("already_awake").Inc()
		return types.WakeResponse{
			Status:  types.WakeStatusAlreadyAwake,
			Message: fmt.Sprintf("engine already running (pid %d)", pid),
		}
	}

	newPID, err := s.spawn()
	if err != nil {
		spawnFailuresTotal.Inc()
		wakeTriggersTotal.WithLabelValues("spawn_failed").Inc()
		s.log.Error().Err(err).Str("process", s.procName).Msg("engine spawn failed")
		return types.WakeResponse{
			Status:  types.WakeStatusWakeTriggered,
			Message: "engine start issued; spawn failed, see service logs",
		}
	}
	wakeTriggersTotal.WithLabelValues("wake_triggered").Inc()
	s.log.Info().Int("pid", newPID).Str("process", s.procName).Msg("engine start issued")
	return types.WakeResponse{
		Status:  types.WakeStatusWakeTriggered,
		Message: fmt.Sprintf("engine start issued (pid %d)", newPID),
	}
}
