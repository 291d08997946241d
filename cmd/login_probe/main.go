// LOGIN PROBE - cmd/login_probe/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"auwalk/internal/history"
	"auwalk/internal/probe"
	"auwalk/pkg/config"
	"auwalk/pkg/logger"
)

func main() {
	cfg := config.Load()

	// stdout carries the report; logs go to stderr
	log := logger.NewWithWriter("login-probe", os.Stderr, cfg.Log.Level)

	if err := cfg.ValidateProbe(); err != nil {
		log.Fatal("Invalid configuration", map[string]interface{}{"error": err.Error()})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := history.NewNop()
	if cfg.History.RedisURL != "" {
		client, err := history.Connect(ctx, cfg.History.RedisURL, cfg.History.Password, cfg.History.DB)
		if err != nil {
			log.Warn("Probe history disabled", map[string]interface{}{"error": err.Error()})
		} else {
			defer client.Close()
			recorder = history.NewRedisRecorder(client, cfg.History.Key, cfg.History.Limit)
		}
	}

	log.Debug("Probing login endpoint", map[string]interface{}{"url": cfg.Probe.LoginURL()})

	client := probe.NewClient(cfg.Probe.LoginURL(), cfg.Probe.Timeout)
	runner := probe.NewRunner(client, probe.NewReporter(os.Stdout), recorder, log)
	runner.Run(ctx, probe.DefaultCases(cfg.Probe))
}
