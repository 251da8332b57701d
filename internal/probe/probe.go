// Package probe implements the client-side probes against the compute host:
// a low-level echo, the availability service's HTTP API, and the inference
// engine's own health endpoint. Each probe carries its own timeout so a hung
// layer cannot block the others.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"waked/pkg/types"
)

// Probe error taxonomy. The orchestrator converts these into readiness
// states rather than surfacing them; they are only shown directly in
// troubleshoot output.
var (
	ErrNetworkUnreachable = errors.New("network unreachable")
	ErrServiceTimeout     = errors.New("availability service not responding")
	ErrEngineNotReady     = errors.New("engine api not responding")
)

// Timeouts bounds each probe stage independently.
type Timeouts struct {
	Echo    time.Duration
	Service time.Duration
	Engine  time.Duration
}

// DefaultTimeouts matches the few-seconds discipline of the probes.
func DefaultTimeouts() Timeouts {
	return Timeouts{Echo: 3 * time.Second, Service: 5 * time.Second, Engine: 3 * time.Second}
}

// Prober issues probes against one host descriptor.
type Prober struct {
	host     types.HostDescriptor
	timeouts Timeouts
	client   *http.Client
	log      zerolog.Logger
}

// New builds a Prober. The HTTP client carries no global timeout; every
// request applies its stage timeout via context.
func New(host types.HostDescriptor, t Timeouts, log zerolog.Logger) *Prober {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   t.Service,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:    10,
		IdleConnTimeout: 90 * time.Second,
	}
	return &Prober{
		host:     host,
		timeouts: t,
		client:   &http.Client{Transport: tr, Timeout: 0},
		log:      log,
	}
}

// Host returns the descriptor this prober targets.
func (p *Prober) Host() types.HostDescriptor { return p.host }

func (p *Prober) serviceURL(path string) string {
	return "http://" + net.JoinHostPort(p.host.Addr, strconv.Itoa(p.host.ServicePort)) + path
}

func (p *Prober) engineURL(path string) string {
	return "http://" + net.JoinHostPort(p.host.Addr, strconv.Itoa(p.host.EnginePort)) + path
}

// ServiceStatus calls GET /status on the availability service. Transport
// errors and timeouts come back wrapped in ErrServiceTimeout.
func (p *Prober) ServiceStatus(ctx context.Context) (types.StatusReport, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeouts.Service)
	defer cancel()
	var report types.StatusReport
	if err := p.getJSON(ctx, p.serviceURL("/status"), &report); err != nil {
		return types.StatusReport{}, fmt.Errorf("%w: %v", ErrServiceTimeout, err)
	}
	return report, nil
}

// TriggerWake calls GET /wake on the availability service. The response
// acknowledges signal delivery only.
func (p *Prober) TriggerWake(ctx context.Context) (types.WakeResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeouts.Service)
	defer cancel()
	var resp types.WakeResponse
	if err := p.getJSON(ctx, p.serviceURL("/wake"), &resp); err != nil {
		return types.WakeResponse{}, fmt.Errorf("%w: %v", ErrServiceTimeout, err)
	}
	return resp, nil
}

// EngineHealth probes the engine's HTTP API root. Any HTTP answer below 500
// counts as healthy; the engine serving requests at all is the signal.
func (p *Prober) EngineHealth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeouts.Engine)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.engineURL("/"), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEngineNotReady, err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEngineNotReady, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: engine returned %d", ErrEngineNotReady, resp.StatusCode)
	}
	return nil
}

func (p *Prober) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
