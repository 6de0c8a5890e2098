// llms lists or resolves configured LLM endpoints from llms.txt.
//
// Usage:
//
//	llms [flags] [path]
//
// Listing prints every endpoint; -resolve (or -name) picks a single
// endpoint honouring the SIGMA_DEFAULT_LLM override.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/sigmapin/go-sigma/internal/config"
	"github.com/sigmapin/go-sigma/pkg/registry"
)

var (
	name    = flag.String("name", "", "Endpoint name to resolve (case-insensitive). Implies -resolve.")
	resolve = flag.Bool("resolve", false, "Resolve a single endpoint instead of listing all endpoints.")
	jsonOut = flag.Bool("json", false, "Emit machine-readable JSON instead of formatted text.")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	path := flag.Arg(0)
	if path == "" {
		path = config.RegistryPath("")
	}
	reg, err := registry.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *resolve || *name != "" {
		override, overrideSet := config.DefaultEndpoint()
		ep, err := reg.Resolve(*name, override, overrideSet)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if *jsonOut {
			out, _ := json.Marshal(map[string]any{
				"name":       ep.Name,
				"url":        ep.URL,
				"is_default": *name == "" && !overrideSet,
			})
			fmt.Println(string(out))
		} else {
			fmt.Printf("%s\t%s\n", ep.Name, ep.URL)
		}
		return 0
	}

	if *jsonOut {
		if reg == nil {
			reg = registry.Registry{}
		}
		out, _ := json.Marshal(reg)
		fmt.Println(string(out))
		return 0
	}
	for _, ep := range reg {
		fmt.Printf("%s\t%s\n", ep.Name, ep.URL)
	}
	return 0
}
