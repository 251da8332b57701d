// Package cli implements the wakectl command tree. Each subcommand maps a
// human intent (status, wake, test, troubleshoot) onto the orchestrator and
// exits non-zero when the terminal state is not the expected one.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"waked/internal/config"
	"waked/internal/orchestrator"
	"waked/internal/probe"
	"waked/pkg/types"
)

// Execute runs the wakectl command tree.
func Execute() error {
	return BuildRootCmd().Execute()
}

// BuildRootCmd constructs the Cobra command tree.
func BuildRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wakectl",
		Short:         "Wake the remote inference host and track its readiness",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", config.DefaultClientPath(), "Client config file (written by `wakectl setup`)")
	root.PersistentFlags().String("log-level", "warn", "Log level: debug|info|warn|error")

	root.AddCommand(
		newSetupCmd(),
		newStatusCmd(),
		newWakeCmd(),
		newTestCmd(),
		newTroubleshootCmd(),
	)
	return root
}

func newSetupCmd() *cobra.Command {
	var (
		host        string
		servicePort int
		enginePort  int
		interval    int
		maxAttempts int
	)
	cmd := &cobra.Command{
		Use:     "setup",
		Short:   "Persist the host descriptor and polling discipline",
		Example: "  wakectl setup --host 100.74.12.33",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.ClientConfig{
				Host:            types.HostDescriptor{Addr: host, ServicePort: servicePort, EnginePort: enginePort},
				PollIntervalSec: interval,
				MaxAttempts:     maxAttempts,
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString("config")
			if err := config.SaveClient(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "Overlay address of the compute host (required)")
	cmd.Flags().IntVar(&servicePort, "service-port", 8790, "Availability service port")
	cmd.Flags().IntVar(&enginePort, "engine-port", 11434, "Inference engine API port")
	cmd.Flags().IntVar(&interval, "interval", 1, "Wake poll interval in seconds")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 30, "Wake poll attempt ceiling")
	_ = cmd.MarkFlagRequired("host")
	return cmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report the host's current readiness state",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, _, err := buildOrchestrator(cmd)
			if err != nil {
				return err
			}
			state := o.CheckStatus(cmd.Context())
			fmt.Printf("%s\t%s\n", state, describeState(state))
			if state == types.StateUnreachable {
				return fmt.Errorf("host unreachable")
			}
			return nil
		},
	}
}

func newWakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wake",
		Short: "Wake the host and poll until the inference API is ready",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, cfg, err := buildOrchestrator(cmd)
			if err != nil {
				return err
			}
			out := o.Wake(cmd.Context())
			printWakeOutcome(out, cfg)
			if out.Reason != types.WakeSucceeded {
				return fmt.Errorf("wake %s after %d attempts", out.Reason, out.Attempts)
			}
			return nil
		},
	}
}

func newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Run one full probe pass and report per-stage latencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, _, err := buildOrchestrator(cmd)
			if err != nil {
				return err
			}
			report := o.Troubleshoot(cmd.Context())
			for _, s := range report.Stages {
				fmt.Printf("%-16s %s  %8s  %s\n", s.Stage, passFail(s.OK), s.Latency.Round(time.Millisecond), s.Detail)
			}
			if !report.AllOK() {
				return fmt.Errorf("one or more stages failed")
			}
			fmt.Println("all stages passed")
			return nil
		},
	}
}

func newTroubleshootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "troubleshoot",
		Short: "Probe each layer independently and explain what fails",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, _, err := buildOrchestrator(cmd)
			if err != nil {
				return err
			}
			report := o.Troubleshoot(cmd.Context())
			fmt.Printf("host %s (service :%d, engine :%d)\n\n", report.Host.Addr, report.Host.ServicePort, report.Host.EnginePort)
			for _, s := range report.Stages {
				fmt.Printf("%s %-16s %s\n", passFail(s.OK), s.Stage, s.Detail)
				if !s.OK {
					if hint := stageHint(s.Stage); hint != "" {
						fmt.Printf("  hint: %s\n", hint)
					}
				}
			}
			if !report.AllOK() {
				return fmt.Errorf("troubleshoot found failures")
			}
			return nil
		},
	}
}

// buildOrchestrator loads the persisted client config and wires the probes.
func buildOrchestrator(cmd *cobra.Command) (*orchestrator.Orchestrator, config.ClientConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadClient(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, config.ClientConfig{}, fmt.Errorf("no client config at %s; run `wakectl setup` first", path)
		}
		return nil, config.ClientConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, config.ClientConfig{}, err
	}

	level, _ := cmd.Flags().GetString("log-level")
	logger := newLogger(level)

	timeouts := probe.DefaultTimeouts()
	if cfg.EchoTimeoutSec > 0 {
		timeouts.Echo = time.Duration(cfg.EchoTimeoutSec) * time.Second
	}
	if cfg.ServiceTimeoutSec > 0 {
		timeouts.Service = time.Duration(cfg.ServiceTimeoutSec) * time.Second
	}
	if cfg.EngineTimeoutSec > 0 {
		timeouts.Engine = time.Duration(cfg.EngineTimeoutSec) * time.Second
	}

	p := probe.New(cfg.Host, timeouts, logger)
	o := orchestrator.New(p, cfg.Host, time.Duration(cfg.PollIntervalSec)*time.Second, cfg.MaxAttempts, logger)
	return o, cfg, nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).With().Timestamp().Logger()
}
