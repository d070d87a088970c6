package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/token-calc/internal/config"
	"github.com/rovshanmuradov/token-calc/internal/events"
	"github.com/rovshanmuradov/token-calc/internal/logger"
	"github.com/rovshanmuradov/token-calc/internal/portfolio"
	"github.com/rovshanmuradov/token-calc/internal/ui"
)

const (
	logRingSize     = 200
	shutdownTimeout = 2 * time.Second
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := pflag.StringP("config", "c", "", "path to config file (json, yaml or toml)")
	debug := pflag.Bool("debug", false, "enable debug logging")
	pflag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// The terminal belongs to the UI, so logs go to a rotating file and the
	// in-memory ring shown on the portfolio screen.
	ring := logger.NewRing(logRingSize)
	appLogger, logCloser := logger.CreateTUILogger(cfg.DebugLogging || *debug, logger.FileOptions{
		Path:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		Compress:   true,
	}, ring)
	defer func() {
		_ = appLogger.Sync()
		_ = logCloser.Close()
	}()

	appLogger.Info("Starting token calculator TUI",
		zap.String("token", cfg.TokenName),
		zap.String("export_dir", cfg.ExportDir))

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus := events.NewBus(appLogger, cfg.BusBuffer)
	pf := portfolio.New(appLogger)
	detachPortfolio := pf.Attach(bus)

	sender := ui.NewUpdateSender(ui.Bus, appLogger)
	detachUI := sender.Forward(bus)

	services := ui.NewRealServiceProvider(rootCtx, cfg, appLogger, bus, pf, ring)
	program := tea.NewProgram(
		ui.NewSafeModel(NewAppModel(services), appLogger),
		tea.WithAltScreen(),
	)

	g, gctx := errgroup.WithContext(rootCtx)
	g.Go(func() error {
		defer stop()
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		program.Quit()
		return nil
	})

	exitCode := 0
	if err := g.Wait(); err != nil {
		appLogger.Error("TUI application failed", zap.Error(err))
		exitCode = 1
	}

	appLogger.Info("Shutting down TUI application")
	detachUI()
	sender.Close()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := bus.Shutdown(ctx); err != nil {
		appLogger.Warn("Event bus shutdown failed", zap.Error(err))
	}
	detachPortfolio()

	summary := pf.Summary()
	stats := bus.Stats()
	appLogger.Info("Session summary",
		zap.Int("calculators", summary.Calculators),
		zap.String("total_invested", summary.TotalInvested.StringFixed(2)),
		zap.Uint64("events_published", stats.Published),
		zap.Uint64("events_dropped", stats.Dropped))

	return exitCode
}
