package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"waked/internal/config"
	"waked/internal/engine"
	"waked/internal/httpapi"
)

func main() {
	// Flags with environment variable defaults
	defaultAddr := ":8790"
	if v := os.Getenv("WAKED_ADDR"); v != "" {
		defaultAddr = v
	}
	addr := flag.String("addr", defaultAddr, "HTTP listen address, e.g. :8790")
	configPath := flag.String("config", os.Getenv("WAKED_CONFIG"), "Optional config file (.yaml/.json/.toml)")
	hostAddr := flag.String("host-address", os.Getenv("WAKED_HOST_ADDRESS"), "Overlay address this host is reachable on (default: autodetect)")
	engineProc := flag.String("engine-process", envOr("WAKED_ENGINE_PROCESS", "ollama"), "Engine process name to look for in the process table")
	engineCmd := flag.String("engine-command", envOr("WAKED_ENGINE_COMMAND", "ollama serve"), "Command used to start the engine")
	engineLog := flag.String("engine-log", os.Getenv("WAKED_ENGINE_LOG"), "File receiving spawned engine output (empty discards)")
	corsEnabled := flag.Bool("cors-enabled", false, "Enable CORS middleware")
	corsOrigins := flag.String("cors-origins", "*", "Comma-separated allowed CORS origins")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("component", "waked").Logger()

	var cfg config.ServiceConfig
	if *configPath != "" {
		path, err := config.ExpandHome(*configPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("resolve config path")
		}
		cfg, err = config.LoadService(path)
		if err != nil {
			logger.Fatal().Err(err).Str("path", path).Msg("load config")
		}
	}
	// Flags (and their env-backed defaults) fill whatever the file left unset;
	// explicitly passed flags win over the file.
	cfg = mergeConfig(cfg, config.ServiceConfig{
		Addr:          *addr,
		HostAddress:   *hostAddr,
		EngineProcess: *engineProc,
		EngineCommand: strings.Fields(*engineCmd),
		EngineLogFile: *engineLog,
	}, flagsSet())
	if cfg.HostAddress == "" {
		if h, err := os.Hostname(); err == nil {
			cfg.HostAddress = h
		}
	}
	if len(cfg.EngineCommand) == 0 {
		logger.Fatal().Msg("engine command must not be empty")
	}

	sup := engine.NewSupervisor(
		engine.NewInspector(),
		engine.CommandSpawner(cfg.EngineCommand, cfg.EngineLogFile),
		cfg.EngineProcess,
		cfg.HostAddress,
		logger,
	)

	httpapi.SetLogger(logger)
	httpapi.SetCORSOptions(*corsEnabled, splitCSV(*corsOrigins), []string{http.MethodGet}, nil)
	srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(sup)}

	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("engine_process", cfg.EngineProcess).Msg("waked listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			// Failing to bind is the one fatal condition; everything else is
			// reported per-request.
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
}

// flagsSet reports which flags were passed on the command line.
func flagsSet() map[string]bool {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// mergeConfig fills unset file fields from flag values; flags passed
// explicitly always win.
func mergeConfig(base, flags config.ServiceConfig, set map[string]bool) config.ServiceConfig {
	out := base
	if out.Addr == "" || set["addr"] {
		out.Addr = flags.Addr
	}
	if (out.HostAddress == "" && flags.HostAddress != "") || set["host-address"] {
		out.HostAddress = flags.HostAddress
	}
	if out.EngineProcess == "" || set["engine-process"] {
		out.EngineProcess = flags.EngineProcess
	}
	if len(out.EngineCommand) == 0 || set["engine-command"] {
		out.EngineCommand = flags.EngineCommand
	}
	if (out.EngineLogFile == "" && flags.EngineLogFile != "") || set["engine-log"] {
		out.EngineLogFile = flags.EngineLogFile
	}
	return out
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
