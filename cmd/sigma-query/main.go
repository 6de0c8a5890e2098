// sigma-query sends a prompt to a configured LLM endpoint and prints
// the normalized reply.
//
// Usage:
//
//	sigma-query [flags] [prompt]
//
// The prompt is read from stdin when omitted. Endpoint selection
// honours SIGMA_DEFAULT_LLM unless -name is given; auth comes from
// SIGMA_LLM_AUTH_TOKEN / SIGMA_LLM_AUTH_SCHEME.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sigmapin/go-sigma/internal/config"
	"github.com/sigmapin/go-sigma/pkg/llm"
	"github.com/sigmapin/go-sigma/pkg/registry"
)

var (
	name     = flag.String("name", "", "Endpoint name (case-insensitive). Defaults to configured entry.")
	path     = flag.String("path", "", "Optional llms.txt path. Expands environment variables and ~.")
	extra    = flag.String("extra", "", "JSON object merged into the request body for provider options.")
	timeout  = flag.Duration("timeout", 10*time.Second, "Request timeout.")
	showJSON = flag.Bool("show-json", false, "Pretty-print the JSON response body when available.")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	prompt, err := readPrompt(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var extraPayload map[string]any
	if *extra != "" {
		if err := json.Unmarshal([]byte(*extra), &extraPayload); err != nil {
			fmt.Fprintf(os.Stderr, "failed to parse -extra JSON: %v\n", err)
			return 1
		}
	}

	registryPath := *path
	if registryPath == "" {
		registryPath = config.RegistryPath("")
	}
	reg, err := registry.Load(registryPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	override, overrideSet := config.DefaultEndpoint()
	ep, err := reg.Resolve(*name, override, overrideSet)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	opts := []llm.Option{llm.WithTimeout(*timeout)}
	if token, ok := config.AuthToken(); ok {
		if strings.TrimSpace(token) == "" {
			fmt.Fprintf(os.Stderr, "%s is set but empty\n", config.EnvAuthToken)
			return 1
		}
		opts = append(opts, llm.WithAuthToken(token))
		if scheme, ok := config.AuthScheme(); ok {
			opts = append(opts, llm.WithAuthScheme(scheme))
		}
	}

	resp, err := llm.New(opts...).Query(context.Background(), ep, prompt, extraPayload)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Println(resp.Text)
	if *showJSON {
		if resp.JSON == nil {
			fmt.Fprintln(os.Stderr, "no JSON payload available")
			return 1
		}
		pretty, err := json.MarshalIndent(resp.JSON, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode JSON response: %v\n", err)
			return 1
		}
		fmt.Println(string(pretty))
	}
	return 0
}

// readPrompt returns the CLI prompt, reading stdin when the argument
// is absent.
func readPrompt(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read prompt from stdin: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("prompt is required when standard input is empty")
	}
	return strings.TrimRight(string(data), "\n"), nil
}
