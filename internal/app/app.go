package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/chrissnell/divegas/internal/controllers/restserver"
	"github.com/chrissnell/divegas/internal/log"
	"github.com/chrissnell/divegas/pkg/config"
	"github.com/chrissnell/divegas/pkg/nitrox"
	"go.uber.org/zap"
)

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	calculators    *nitrox.Calculators
	logger         *zap.SugaredLogger
}

// New creates a new application instance using the default calculators
func New(configProvider config.ConfigProvider, logger *zap.SugaredLogger) *App {
	return &App{
		configProvider: configProvider,
		calculators:    nitrox.NewCalculators(),
		logger:         logger,
	}
}

// Run starts the REST server and blocks until a shutdown signal arrives or
// ctx is cancelled
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfgData, err := a.configProvider.LoadConfig()
	if err != nil {
		return err
	}

	a.logger.Infow("calculator defaults",
		"water_type", cfgData.Calculator.WaterType,
		"water_density", cfgData.Calculator.DefaultWaterDensity().KilogramsPerCubicMeter(),
		"partial_pressure_limit", cfgData.Calculator.PartialPressureLimit,
	)

	rest, err := restserver.NewController(ctx, &wg, cfgData, a.calculators, a.logger)
	if err != nil {
		return err
	}
	if err := rest.StartController(); err != nil {
		return err
	}

	log.Info("Application started successfully")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	log.Info("waiting for the REST server to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
