// Command simd runs the grid-world simulation and serves agent telemetry
// over HTTP/WebSocket and QUIC.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zeusync/behave/internal/observability/log"
	"github.com/zeusync/behave/internal/sim"
)

func main() {
	cfgPath := flag.String("config", "", "path to a YAML config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := zapcore.InfoLevel
	if *debug {
		level = zapcore.DebugLevel
	}
	logger := log.New(level)
	defer func() { _ = logger.Sync() }()

	cfg := sim.DefaultConfig()
	if *cfgPath != "" {
		var err error
		if cfg, err = sim.LoadConfig(*cfgPath); err != nil {
			logger.Fatal("config load failed", zap.Error(err))
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	world := sim.NewWorld(cfg.World.Width, cfg.World.Height, cfg.World.Traps, cfg.World.Artifacts, cfg.World.Seed)
	manager := sim.NewManager(logger)

	for i := 0; i < cfg.Scouts; i++ {
		root, err := sim.NewScoutTree(world)
		if err != nil {
			logger.Fatal("scout tree build failed", zap.Error(err))
		}
		agent := sim.NewAgent(fmt.Sprintf("scout-%d", i), root, logger)
		sim.SeedScout(agent.Blackboard(), i%cfg.World.Width, i%cfg.World.Height)
		manager.Add(agent)
	}
	for i := 0; i < cfg.Idlers; i++ {
		root, err := sim.NewIdleTree(world)
		if err != nil {
			logger.Fatal("idle tree build failed", zap.Error(err))
		}
		agent := sim.NewAgent(fmt.Sprintf("idler-%d", i), root, logger)
		sim.SeedScout(agent.Blackboard(), cfg.World.Width/2, cfg.World.Height/2)
		manager.Add(agent)
	}

	stateServer := sim.NewStateServer(manager, world, cfg.TickInterval, logger)
	httpServer := &http.Server{Addr: cfg.HTTPAddr, Handler: stateServer.Handler()}
	go func() {
		logger.Info("http telemetry listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server stopped", zap.Error(err))
		}
	}()

	telemetry := sim.NewTelemetryServer(manager, cfg.TickInterval, logger)
	go func() {
		if err := telemetry.Listen(ctx, cfg.QUICAddr); err != nil {
			logger.Error("quic server stopped", zap.Error(err))
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	logger.Info("simulation started",
		zap.Int("scouts", cfg.Scouts),
		zap.Int("idlers", cfg.Idlers),
		zap.Duration("tick_interval", cfg.TickInterval),
	)

	ticker := time.NewTicker(cfg.TickInterval)
	defer ticker.Stop()
	last := time.Now()

loop:
	for {
		select {
		case <-stopCh:
			break loop
		case now := <-ticker.C:
			if err := manager.Update(ctx, now.Sub(last)); err != nil {
				logger.Error("tick failed", zap.Error(err))
			}
			last = now
		}
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", zap.Error(err))
	}
	logger.Info("simulation stopped")
}
