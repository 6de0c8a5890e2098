// Package config provides configuration helpers for go-sigma commands.
package config

import (
	"os"
)

// Environment variables honoured across commands.
const (
	EnvRegistryPath    = "SIGMA_LLMS_PATH"
	EnvDefaultEndpoint = "SIGMA_DEFAULT_LLM"
	EnvAuthToken       = "SIGMA_LLM_AUTH_TOKEN"
	EnvAuthScheme      = "SIGMA_LLM_AUTH_SCHEME"
)

// DefaultRegistryFile is the conventional registry document name.
const DefaultRegistryFile = "llms.txt"

// RegistryPath returns the registry document path from SIGMA_LLMS_PATH.
// Falls back to the provided default if not set.
func RegistryPath(defaultPath string) string {
	if p := os.Getenv(EnvRegistryPath); p != "" {
		return p
	}
	if defaultPath != "" {
		return defaultPath
	}
	return DefaultRegistryFile
}

// DefaultEndpoint returns the ambient endpoint override from
// SIGMA_DEFAULT_LLM. The second result reports whether the variable is
// set at all, so a set-but-blank value can be rejected by the resolver.
func DefaultEndpoint() (string, bool) {
	return os.LookupEnv(EnvDefaultEndpoint)
}

// AuthToken returns the optional LLM auth token from SIGMA_LLM_AUTH_TOKEN.
// The second result reports whether the variable is set.
func AuthToken() (string, bool) {
	return os.LookupEnv(EnvAuthToken)
}

// AuthScheme returns the Authorization scheme from SIGMA_LLM_AUTH_SCHEME.
// The second result reports whether the variable is set; unset means the
// caller should use the Bearer default.
func AuthScheme() (string, bool) {
	return os.LookupEnv(EnvAuthScheme)
}
