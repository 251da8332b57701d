package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"waked/pkg/types"
)

// ServiceConfig holds runtime parameters for the availability service.
// Zero values mean "unspecified" and are replaced by defaults in main.
type ServiceConfig struct {
	Addr          string   `json:"addr" yaml:"addr" toml:"addr"`
	HostAddress   string   `json:"host_address" yaml:"host_address" toml:"host_address"`
	EngineProcess string   `json:"engine_process" yaml:"engine_process" toml:"engine_process"`
	EngineCommand []string `json:"engine_command" yaml:"engine_command" toml:"engine_command"`
	EngineLogFile string   `json:"engine_log_file" yaml:"engine_log_file" toml:"engine_log_file"`
}

// ClientConfig is what `wakectl setup` persists: the host descriptor plus
// the polling discipline. Timeouts are seconds.
type ClientConfig struct {
	Host types.HostDescriptor `json:"host" yaml:"host" toml:"host"`

	EchoTimeoutSec    int `json:"echo_timeout_sec" yaml:"echo_timeout_sec" toml:"echo_timeout_sec"`
	ServiceTimeoutSec int `json:"service_timeout_sec" yaml:"service_timeout_sec" toml:"service_timeout_sec"`
	EngineTimeoutSec  int `json:"engine_timeout_sec" yaml:"engine_timeout_sec" toml:"engine_timeout_sec"`
	PollIntervalSec   int `json:"poll_interval_sec" yaml:"poll_interval_sec" toml:"poll_interval_sec"`
	MaxAttempts       int `json:"max_attempts" yaml:"max_attempts" toml:"max_attempts"`
}

// LoadService reads a service configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func LoadService(path string) (ServiceConfig, error) {
	var cfg ServiceConfig
	if err := load(path, &cfg); err != nil {
		return ServiceConfig{}, err
	}
	return cfg, nil
}

// LoadClient reads a client configuration file based on its extension.
func LoadClient(path string) (ClientConfig, error) {
	var cfg ClientConfig
	if err := load(path, &cfg); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

// SaveClient writes the client configuration, encoding by extension.
// Parent directories are created as needed.
func SaveClient(path string, cfg ClientConfig) error {
	if path == "" {
		return fmt.Errorf("empty config path")
	}
	var (
		b   []byte
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		b, err = yaml.Marshal(cfg)
	case ".json":
		b, err = json.MarshalIndent(cfg, "", "  ")
	case ".toml":
		b, err = toml.Marshal(cfg)
	default:
		return fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func load(path string, out any) error {
	if path == "" {
		return fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, out)
	case ".json":
		return json.Unmarshal(b, out)
	case ".toml":
		return toml.Unmarshal(b, out)
	default:
		return fmt.Errorf("unsupported config extension: %s", ext)
	}
}

// Validate checks that a client config describes a usable host.
func (c ClientConfig) Validate() error {
	if strings.TrimSpace(c.Host.Addr) == "" {
		return fmt.Errorf("host addr is required; run `wakectl setup` first")
	}
	if c.Host.ServicePort <= 0 || c.Host.ServicePort > 65535 {
		return fmt.Errorf("invalid service port %d", c.Host.ServicePort)
	}
	if c.Host.EnginePort <= 0 || c.Host.EnginePort > 65535 {
		return fmt.Errorf("invalid engine port %d", c.Host.EnginePort)
	}
	return nil
}
