package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"waked/internal/config"
	"waked/pkg/types"
)

func portOf(t *testing.T, ts *httptest.Server) int {
	t.Helper()
	u, err := url.Parse(ts.URL)
	if err != nil { t.Fatalf("parse url: %v", err) }
	n, err := strconv.Atoi(u.Port())
	if err != nil { t.Fatalf("port: %v", err) }
	return n
}

func runCmd(t *testing.T, args ...string) error {
	t.Helper()
	root := BuildRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func TestSetupWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := runCmd(t, "--config", path, "setup", "--host", "100.74.12.33"); err != nil {
		t.Fatalf("setup: %v", err)
	}
	cfg, err := config.LoadClient(path)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Host.Addr != "100.74.12.33" || cfg.Host.ServicePort != 8790 || cfg.Host.EnginePort != 11434 {
		t.Fatalf("unexpected host: %+v", cfg.Host)
	}
	if cfg.MaxAttempts != 30 || cfg.PollIntervalSec != 1 { t.Fatalf("unexpected cfg: %+v", cfg) }
}

func TestSetupRequiresHost(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := runCmd(t, "--config", path, "setup"); err == nil {
		t.Fatalf("expected missing --host error")
	}
}

func TestStatusWithoutConfigSuggestsSetup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	err := runCmd(t, "--config", path, "status")
	if err == nil || !strings.Contains(err.Error(), "setup") {
		t.Fatalf("expected setup hint, got %v", err)
	}
}

// fakeHost stands up availability service and engine endpoints and a matching
// client config, returning the config path.
func fakeHost(t *testing.T, engineRunning bool) string {
	t.Helper()
	engine := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Ollama is running"))
	}))
	t.Cleanup(engine.Close)
	svc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/status":
			_ = json.NewEncoder(w).Encode(types.StatusReport{Status: "awake", EngineRunning: engineRunning, EnginePID: 7, HostAddress: "127.0.0.1"})
		case "/wake":
			_ = json.NewEncoder(w).Encode(types.WakeResponse{Status: types.WakeStatusAlreadyAwake})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(svc.Close)

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := config.ClientConfig{
		Host:            types.HostDescriptor{Addr: "127.0.0.1", ServicePort: portOf(t, svc), EnginePort: portOf(t, engine)},
		EchoTimeoutSec:  1, ServiceTimeoutSec: 1, EngineTimeoutSec: 1,
		PollIntervalSec: 1,
		MaxAttempts:     2,
	}
	if err := config.SaveClient(path, cfg); err != nil { t.Fatalf("save: %v", err) }
	return path
}

func TestStatusAgainstReadyHost(t *testing.T) {
	path := fakeHost(t, true)
	if err := runCmd(t, "--config", path, "status"); err != nil {
		t.Fatalf("status: %v", err)
	}
}

func TestStatusServiceOnlineIsNotAnError(t *testing.T) {
	// service_online is still a response; only unreachable exits non-zero.
	path := fakeHost(t, false)
	if err := runCmd(t, "--config", path, "status"); err != nil {
		t.Fatalf("status: %v", err)
	}
}

func TestWakeAgainstReadyHost(t *testing.T) {
	path := fakeHost(t, true)
	if err := runCmd(t, "--config", path, "wake"); err != nil {
		t.Fatalf("wake: %v", err)
	}
}

func TestTestCommandReportsFailure(t *testing.T) {
	// Engine not running: engine_process stage fails, so `test` exits non-zero.
	path := fakeHost(t, false)
	if err := runCmd(t, "--config", path, "test"); err == nil {
		t.Fatalf("expected failure report")
	}
}

func TestDescribeStateCoversAll(t *testing.T) {
	for _, s := range []types.ReadinessState{types.StateReady, types.StateEngineStarting, types.StateServiceOnline, types.StateUnreachable} {
		if describeState(s) == "" || describeState(s) == "unknown state" {
			t.Fatalf("missing description for %s", s)
		}
	}
}

func TestStageHints(t *testing.T) {
	for _, s := range []types.Stage{types.StageOverlayLink, types.StageEcho, types.StageService, types.StageEngineProcess, types.StageEngineAPI} {
		if stageHint(s) == "" { t.Fatalf("missing hint for %s", s) }
	}
}
