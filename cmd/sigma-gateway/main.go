// sigma-gateway: HTTP/WebSocket service that routes pin prompts to
// configured LLM endpoints.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sigmapin/go-sigma/internal/config"
	"github.com/sigmapin/go-sigma/internal/log"
	"github.com/sigmapin/go-sigma/pkg/gateway"
	"github.com/sigmapin/go-sigma/pkg/llm"
)

var (
	configPath = flag.String("config", "", "Optional YAML config file")
	listen     = flag.String("listen", "", "Listen address, overrides config (e.g. :8090)")
	debug      = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadGateway(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	level := cfg.LogLevel
	if *debug {
		level = "debug"
	}
	log.Init(level)

	if token, ok := config.AuthToken(); ok && strings.TrimSpace(token) == "" {
		log.Error("auth token env is set but empty", "env", config.EnvAuthToken)
		os.Exit(1)
	}

	var queryOpts []llm.Option
	queryOpts = append(queryOpts, llm.WithTimeout(cfg.QueryTimeout.Std()), llm.WithLogger(log.L()))
	if cfg.Auth.Token != "" {
		queryOpts = append(queryOpts, llm.WithAuthToken(cfg.Auth.Token))
		if cfg.Auth.Scheme != "" {
			queryOpts = append(queryOpts, llm.WithAuthScheme(cfg.Auth.Scheme))
		}
	}

	srv := gateway.New(
		gateway.WithRegistryPath(cfg.RegistryPath),
		gateway.WithQuerier(llm.New(queryOpts...)),
		gateway.WithOverrideSource(config.DefaultEndpoint),
		gateway.WithQueryTimeout(cfg.QueryTimeout.Std()),
		gateway.WithLogger(log.L()),
	)

	go func() {
		if err := srv.Listen(cfg.Listen); err != nil {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	if err := srv.Shutdown(); err != nil {
		log.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
