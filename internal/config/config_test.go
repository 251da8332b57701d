package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"waked/pkg/types"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadServiceYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "waked.yaml", "addr: :8790\nhost_address: 100.74.12.33\nengine_process: ollama\nengine_command: [ollama, serve]\n")
	cfg, err := LoadService(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Addr != ":8790" || cfg.HostAddress != "100.74.12.33" || cfg.EngineProcess != "ollama" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.EngineCommand) != 2 || cfg.EngineCommand[0] != "ollama" {
		t.Fatalf("unexpected engine command: %v", cfg.EngineCommand)
	}
}

func TestLoadClientTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "wakectl.toml", "poll_interval_sec=2\nmax_attempts=15\n[host]\naddr=\"100.74.12.33\"\nservice_port=8790\nengine_port=11434\n")
	cfg, err := LoadClient(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Host.Addr != "100.74.12.33" || cfg.Host.ServicePort != 8790 || cfg.Host.EnginePort != 11434 {
		t.Fatalf("unexpected host: %+v", cfg.Host)
	}
	if cfg.PollIntervalSec != 2 || cfg.MaxAttempts != 15 { t.Fatalf("unexpected cfg: %+v", cfg) }
}

func TestSaveLoadClientRoundTrip(t *testing.T) {
	d := t.TempDir()
	p := filepath.Join(d, "nested", "config.yaml")
	in := ClientConfig{
		Host:            types.HostDescriptor{Addr: "100.1.2.3", ServicePort: 8790, EnginePort: 11434},
		PollIntervalSec: 1,
		MaxAttempts:     30,
	}
	if err := SaveClient(p, in); err != nil { t.Fatalf("save: %v", err) }
	out, err := LoadClient(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if out != in { t.Fatalf("round trip mismatch: %+v vs %+v", out, in) }
}

func TestLoadErrors(t *testing.T) {
	if _, err := LoadClient(""); err == nil { t.Fatalf("expected error on empty path") }
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.ini", "addr=:1\n")
	if _, err := LoadService(p); err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported extension error, got %v", err)
	}
	if _, err := LoadService(filepath.Join(d, "missing.yaml")); err == nil {
		t.Fatalf("expected error on missing file")
	}
	if err := SaveClient(filepath.Join(d, "cfg.ini"), ClientConfig{}); err == nil {
		t.Fatalf("expected unsupported extension error on save")
	}
}

func TestClientValidate(t *testing.T) {
	good := ClientConfig{Host: types.HostDescriptor{Addr: "100.1.2.3", ServicePort: 8790, EnginePort: 11434}}
	if err := good.Validate(); err != nil { t.Fatalf("unexpected: %v", err) }
	bad := good
	bad.Host.Addr = " "
	if err := bad.Validate(); err == nil { t.Fatalf("expected addr error") }
	bad = good
	bad.Host.ServicePort = 0
	if err := bad.Validate(); err == nil { t.Fatalf("expected port error") }
	bad = good
	bad.Host.EnginePort = 70000
	if err := bad.Validate(); err == nil { t.Fatalf("expected engine port error") }
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil { t.Skip("no home dir") }
	got, err := ExpandHome("~/x/y")
	if err != nil { t.Fatalf("expand: %v", err) }
	if got != filepath.Join(home, "x", "y") { t.Fatalf("got %q", got) }
	got, err = ExpandHome("/abs/path")
	if err != nil || got != "/abs/path" { t.Fatalf("got %q err %v", got, err) }
}
