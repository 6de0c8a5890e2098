package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadGatewayDefaults(t *testing.T) {
	cfg, err := LoadGateway("")
	if err != nil {
		t.Fatalf("LoadGateway failed: %v", err)
	}
	if cfg.Listen != ":8090" || cfg.RegistryPath != DefaultRegistryFile {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadGatewayFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	doc := `listen: ":9000"
registry_path: /etc/sigma/llms.txt
log_level: debug
query_timeout: 5s
auth:
  token: secret
  scheme: Token
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGateway(path)
	if err != nil {
		t.Fatalf("LoadGateway failed: %v", err)
	}
	if cfg.Listen != ":9000" || cfg.RegistryPath != "/etc/sigma/llms.txt" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.QueryTimeout.Std() != 5*time.Second {
		t.Errorf("QueryTimeout = %v, want 5s", cfg.QueryTimeout)
	}
	if cfg.Auth.Token != "secret" || cfg.Auth.Scheme != "Token" {
		t.Errorf("unexpected auth: %+v", cfg.Auth)
	}
}

func TestLoadGatewayEnvOverride(t *testing.T) {
	t.Setenv(EnvRegistryPath, "/tmp/other.txt")
	t.Setenv("PORT", "7777")
	t.Setenv(EnvAuthToken, "envtok")

	cfg, err := LoadGateway("")
	if err != nil {
		t.Fatalf("LoadGateway failed: %v", err)
	}
	if cfg.RegistryPath != "/tmp/other.txt" {
		t.Errorf("RegistryPath = %q, want env override", cfg.RegistryPath)
	}
	if cfg.Listen != ":7777" {
		t.Errorf("Listen = %q, want PORT override", cfg.Listen)
	}
	if cfg.Auth.Token != "envtok" {
		t.Errorf("Auth.Token = %q, want env override", cfg.Auth.Token)
	}
}

func TestLoadGatewayMissingFile(t *testing.T) {
	if _, err := LoadGateway(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
