package types

// StatusReport is returned by GET /status on the availability service.
// Its mere arrival proves the host is awake; the fields describe the engine.
type StatusReport struct {
	// Fixed marker, always "awake" when the service answers at all.
	// example: awake
	Status string `json:"status" example:"awake"`
	// Service-local time in RFC3339.
	// example: 2025-11-02T14:05:00Z
	Timestamp string `json:"timestamp" example:"2025-11-02T14:05:00Z"`
	// Whether the inference engine process is observed in the process table.
	// example: true
	EngineRunning bool `json:"engine_running" example:"true"`
	// PID of the engine process when running.
	// example: 41712
	EnginePID int `json:"engine_pid,omitempty" example:"41712"`
	// Overlay address the service believes it is reachable on.
	// example: 100.74.12.33
	HostAddress string `json:"host_address" example:"100.74.12.33"`
	// Uptime of the availability service in seconds.
	// example: 86400
	UptimeSeconds int64 `json:"uptime_seconds" example:"86400"`
}

// Wake statuses returned by GET /wake.
const (
	WakeStatusAlreadyAwake  = "already_awake"
	WakeStatusWakeTriggered = "wake_triggered"
)

// WakeResponse acknowledges a wake signal. It reports signal delivery only;
// whether the engine actually becomes ready is observed via later /status
// polls, never via this response.
type WakeResponse struct {
	// Either "already_awake" or "wake_triggered".
	// example: wake_triggered
	Status string `json:"status" example:"wake_triggered"`
	// Human-readable note about what the service did.
	// example: engine start issued
	Message string `json:"message" example:"engine start issued"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: not found
	Error string `json:"error" example:"not found"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}
