package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML configs can use "5s" syntax.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Gateway holds configuration for the sigma-gateway service.
type Gateway struct {
	// Listen is the address the HTTP server binds to, e.g. ":8090".
	Listen string `yaml:"listen"`

	// RegistryPath points at the llms.txt endpoint registry.
	RegistryPath string `yaml:"registry_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// QueryTimeout bounds a single upstream LLM request.
	QueryTimeout Duration `yaml:"query_timeout"`

	// Auth configures the Authorization header sent to LLM endpoints.
	Auth GatewayAuth `yaml:"auth"`
}

// GatewayAuth is the optional upstream Authorization configuration.
type GatewayAuth struct {
	Token  string `yaml:"token"`
	Scheme string `yaml:"scheme"`
}

// DefaultGateway returns the gateway defaults used when no config file
// is supplied.
func DefaultGateway() *Gateway {
	return &Gateway{
		Listen:       ":8090",
		RegistryPath: DefaultRegistryFile,
		LogLevel:     "info",
		QueryTimeout: Duration(30 * time.Second),
	}
}

// LoadGateway reads a YAML gateway config from path. An empty path
// yields the defaults. Environment variables override file values.
func LoadGateway(path string) (*Gateway, error) {
	cfg := DefaultGateway()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read gateway config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse gateway config: %w", err)
		}
	}

	cfg.applyEnv()

	if cfg.Listen == "" {
		cfg.Listen = ":8090"
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = Duration(30 * time.Second)
	}
	return cfg, nil
}

// applyEnv lets the environment override file values so containerised
// deployments need no config file at all.
func (g *Gateway) applyEnv() {
	if p := os.Getenv(EnvRegistryPath); p != "" {
		g.RegistryPath = p
	}
	if token, ok := AuthToken(); ok {
		g.Auth.Token = token
	}
	if scheme, ok := AuthScheme(); ok {
		g.Auth.Scheme = scheme
	}
	if port := os.Getenv("PORT"); port != "" {
		g.Listen = ":" + port
	}
}
