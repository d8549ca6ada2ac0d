package server_test

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/JaimeStill/portfolio-admin/internal/config"
	"github.com/JaimeStill/portfolio-admin/internal/server"
	"github.com/JaimeStill/portfolio-admin/pkg/lifecycle"
	"github.com/JaimeStill/portfolio-admin/pkg/logging"
)

func TestServer_ServesUntilShutdown(t *testing.T) {
	cfg := &config.ServerConfig{Host: "127.0.0.1", Port: 1}
	if err := cfg.Finalize(); err != nil {
		t.Fatal(err)
	}
	cfg.Port = 0

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "pong")
	})

	srv := server.New(cfg, handler, logging.Discard())
	lc := lifecycle.New()
	if err := srv.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}

	resp, err := client.Get("http://" + srv.Addr() + "/ping")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "pong" {
		t.Errorf("body = %q", body)
	}

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	if _, err := client.Get("http://" + srv.Addr() + "/ping"); err == nil {
		t.Error("server still answering after shutdown")
	}
}

func TestServer_BindFailure(t *testing.T) {
	cfg := &config.ServerConfig{Host: "256.0.0.1", Port: 8080}
	if err := cfg.Finalize(); err != nil {
		t.Fatal(err)
	}

	srv := server.New(cfg, http.NotFoundHandler(), logging.Discard())
	if err := srv.Start(lifecycle.New()); err == nil {
		t.Error("Start() succeeded on an invalid address")
	}
}
