package ui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/token-calc/internal/calculator"
	"github.com/rovshanmuradov/token-calc/internal/config"
	"github.com/rovshanmuradov/token-calc/internal/events"
	"github.com/rovshanmuradov/token-calc/internal/export"
	"github.com/rovshanmuradov/token-calc/internal/logger"
	"github.com/rovshanmuradov/token-calc/internal/portfolio"
)

// ServiceProvider gives screens access to the application services.
type ServiceProvider interface {
	GetLogger() *zap.Logger
	GetConfig() *config.Config
	GetContext() context.Context
	GetEventBus() *events.Bus
	GetPortfolio() *portfolio.Portfolio
	GetLogs() *logger.Ring

	// Calculator session management
	NewSession() *calculator.Session
	GetSession(id string) (*calculator.Session, bool)
	CloseSession(id string) error

	// Export writes the current portfolio and announces the file on the bus.
	Export(format export.ExportFormat, onlyTargeted bool) (string, error)
}

// RealServiceProvider implements ServiceProvider with real services
type RealServiceProvider struct {
	logger    *zap.Logger
	config    *config.Config
	context   context.Context
	bus       *events.Bus
	portfolio *portfolio.Portfolio
	exporter  *export.SnapshotExporter
	logs      *logger.Ring

	mu       sync.Mutex
	sessions map[string]*calculator.Session
	unsubs   map[string]func()
}

// NewRealServiceProvider creates a new real service provider
func NewRealServiceProvider(
	ctx context.Context,
	cfg *config.Config,
	logger *zap.Logger,
	bus *events.Bus,
	pf *portfolio.Portfolio,
	logs *logger.Ring,
) *RealServiceProvider {
	return &RealServiceProvider{
		logger:    logger.Named("ui_service_provider"),
		config:    cfg,
		context:   ctx,
		bus:       bus,
		portfolio: pf,
		exporter:  export.NewSnapshotExporter(logger),
		logs:      logs,
		sessions:  make(map[string]*calculator.Session),
		unsubs:    make(map[string]func()),
	}
}

// GetLogger returns the logger
func (p *RealServiceProvider) GetLogger() *zap.Logger {
	return p.logger
}

// GetConfig returns the config
func (p *RealServiceProvider) GetConfig() *config.Config {
	return p.config
}

// GetContext returns the context
func (p *RealServiceProvider) GetContext() context.Context {
	return p.context
}

// GetEventBus returns the event bus
func (p *RealServiceProvider) GetEventBus() *events.Bus {
	return p.bus
}

// GetPortfolio returns the portfolio
func (p *RealServiceProvider) GetPortfolio() *portfolio.Portfolio {
	return p.portfolio
}

// GetLogs returns the in-memory log ring, which may be nil
func (p *RealServiceProvider) GetLogs() *logger.Ring {
	return p.logs
}

// NewSession opens a calculator seeded from the configuration and publishes
// its first snapshot.
func (p *RealServiceProvider) NewSession() *calculator.Session {
	in := calculator.DefaultInput()
	in.TokenName = p.config.TokenName
	in.TradingFees = p.config.TradingFees

	session := calculator.NewSession(in, p.logger)

	p.mu.Lock()
	p.sessions[session.ID()] = session
	p.unsubs[session.ID()] = session.Subscribe(events.SnapshotPublisher(p.bus))
	p.mu.Unlock()

	// The opened event goes through the same queue as later changes so
	// subscribers see it first.
	if err := p.bus.Publish(events.NewCalculatorOpened(session.Snapshot())); err != nil {
		p.logger.Warn("Calculator opened event not published",
			zap.String("session_id", session.ID()),
			zap.Error(err))
	}

	p.logger.Info("Calculator opened", zap.String("session_id", session.ID()))
	return session
}

// GetSession returns an open calculator
func (p *RealServiceProvider) GetSession(id string) (*calculator.Session, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	session, ok := p.sessions[id]
	return session, ok
}

// CloseSession detaches and forgets a calculator
func (p *RealServiceProvider) CloseSession(id string) error {
	p.mu.Lock()
	_, ok := p.sessions[id]
	if ok {
		p.unsubs[id]()
		delete(p.sessions, id)
		delete(p.unsubs, id)
	}
	p.mu.Unlock()

	if !ok {
		return fmt.Errorf("calculator %s not found", id)
	}

	if err := p.bus.Publish(events.NewCalculatorClosed(id)); err != nil {
		return fmt.Errorf("publish close of %s: %w", id, err)
	}
	p.logger.Info("Calculator closed", zap.String("session_id", id))
	return nil
}

// Export writes the portfolio to the configured export directory
func (p *RealServiceProvider) Export(format export.ExportFormat, onlyTargeted bool) (string, error) {
	snaps := p.portfolio.Snapshots()
	if len(snaps) == 0 {
		return "", errors.New("portfolio is empty")
	}

	path, err := p.exporter.Export(snaps, export.ExportOptions{
		Format:       format,
		OnlyTargeted: onlyTargeted,
		OutputDir:    p.config.ExportDir,
	})
	if err != nil {
		return "", err
	}

	count := len(snaps)
	if onlyTargeted {
		count = 0
		for _, snap := range snaps {
			if snap.Input.Target.Set {
				count++
			}
		}
	}

	if err := p.bus.Publish(events.NewExportCompleted(path, count)); err != nil {
		p.logger.Debug("Export event not published", zap.Error(err))
		PublishSuccess(fmt.Sprintf("Exported %d calculator(s) to %s", count, path), "Export completed")
	}
	return path, nil
}
