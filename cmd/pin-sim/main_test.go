package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCheckGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	// ws:// base must be probed over http://.
	wsBase := "ws://" + strings.TrimPrefix(srv.URL, "http://")
	if err := checkGateway(wsBase); err != nil {
		t.Fatalf("checkGateway(%q) = %v, want nil", wsBase, err)
	}
	if err := checkGateway(srv.URL); err != nil {
		t.Fatalf("checkGateway(%q) = %v, want nil", srv.URL, err)
	}
}

func TestCheckGatewayUnhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := checkGateway(srv.URL)
	if err == nil {
		t.Fatal("expected an error for a 503 health response")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error %q does not mention the status code", err)
	}
}
