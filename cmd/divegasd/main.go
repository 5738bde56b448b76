package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrissnell/divegas/internal/app"
	"github.com/chrissnell/divegas/internal/constants"
	"github.com/chrissnell/divegas/internal/log"
	"github.com/chrissnell/divegas/pkg/config"
)

func main() {
	cfgFile := flag.String("config", "", "Path to YAML configuration file (built-in defaults are used when empty)")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", constants.AppName, constants.Version)
		os.Exit(0)
	}

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	provider, err := configProvider(*cfgFile)
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	application := app.New(provider, log.GetSugaredLogger())
	if err := application.Run(context.Background()); err != nil {
		log.Errorf("Application error: %v", err)
		os.Exit(1)
	}
}

// defaultProvider serves the built-in defaults when no file is given
type defaultProvider struct{}

func (defaultProvider) LoadConfig() (*config.ConfigData, error) {
	return config.Default(), nil
}

func configProvider(cfgFile string) (config.ConfigProvider, error) {
	if cfgFile == "" {
		log.Info("no -config given; using built-in defaults")
		return defaultProvider{}, nil
	}

	filename, err := filepath.Abs(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("error resolving config path %s: %w", cfgFile, err)
	}

	return config.NewYAMLProvider(filename), nil
}
