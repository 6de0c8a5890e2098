// pin-sim simulates a sigma pin: it connects to the gateway
// WebSocket, sends a prompt, and prints the reply.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sigmapin/go-sigma/internal/httpc"
	"github.com/sigmapin/go-sigma/pkg/gateway"
)

var (
	gatewayURL = flag.String("gateway", "ws://localhost:8090", "Gateway WebSocket base URL")
	pinID      = flag.String("id", "pin-sim", "Pin identifier")
	name       = flag.String("name", "", "Endpoint name (case-insensitive)")
	timeout    = flag.Duration("timeout", 30*time.Second, "Reply timeout")
	skipCheck  = flag.Bool("skip-health-check", false, "Skip the gateway health check before dialing")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	prompt := flag.Arg(0)
	if prompt == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil || len(data) == 0 {
			fmt.Fprintln(os.Stderr, "prompt is required (argument or stdin)")
			return 1
		}
		prompt = strings.TrimRight(string(data), "\n")
	}

	base := strings.TrimSuffix(*gatewayURL, "/")
	if !*skipCheck {
		if err := checkGateway(base); err != nil {
			fmt.Fprintf(os.Stderr, "gateway health check: %v\n", err)
			return 1
		}
	}

	url := base + "/ws/pin/" + *pinID
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect to gateway: %v\n", err)
		return 1
	}
	defer ws.Close()

	if err := ws.WriteJSON(gateway.QueryRequest{Prompt: prompt, Name: *name}); err != nil {
		fmt.Fprintf(os.Stderr, "send prompt: %v\n", err)
		return 1
	}

	ws.SetReadDeadline(time.Now().Add(*timeout))
	var reply gateway.PinReply
	if err := ws.ReadJSON(&reply); err != nil {
		fmt.Fprintf(os.Stderr, "read reply: %v\n", err)
		return 1
	}
	if reply.Error != "" {
		fmt.Fprintln(os.Stderr, reply.Error)
		return 1
	}
	fmt.Println(reply.Text)
	return 0
}

// checkGateway hits the gateway health endpoint over plain HTTP before
// the WebSocket dial, so a wrong address fails with a clear error.
func checkGateway(base string) error {
	healthURL := base + "/health"
	switch {
	case strings.HasPrefix(healthURL, "ws://"):
		healthURL = "http://" + strings.TrimPrefix(healthURL, "ws://")
	case strings.HasPrefix(healthURL, "wss://"):
		healthURL = "https://" + strings.TrimPrefix(healthURL, "wss://")
	}
	resp, err := httpc.Get(healthURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, healthURL)
	}
	return nil
}
