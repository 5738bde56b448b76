package config

import (
	"fmt"

	"github.com/chrissnell/divegas/pkg/nitrox"
	"github.com/chrissnell/divegas/pkg/units"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	LoadConfig() (*ConfigData, error)
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Server     ServerData     `json:"server"`
	Calculator CalculatorData `json:"calculator"`
}

// ServerData holds the REST server settings
type ServerData struct {
	ListenAddr  string `json:"listen_addr,omitempty"`
	HTTPPort    int    `json:"http_port,omitempty"`
	TLSCertPath string `json:"tls_cert_path,omitempty"`
	TLSKeyPath  string `json:"tls_key_path,omitempty"`
}

// CalculatorData holds defaults applied to calculations when a request
// doesn't specify them
type CalculatorData struct {
	WaterType            nitrox.WaterType `json:"water_type,omitempty"`
	WaterDensity         float64          `json:"water_density,omitempty"`
	PartialPressureLimit float64          `json:"partial_pressure_limit,omitempty"`
}

// Default values
const (
	DefaultListenAddr = "0.0.0.0"
	DefaultHTTPPort   = 8080
)

// ApplyDefaults fills in unset values and validates the rest
func (c *ConfigData) ApplyDefaults() error {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}

	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = DefaultHTTPPort
	}
	if c.Server.HTTPPort < 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid server.http_port %d", c.Server.HTTPPort)
	}

	if (c.Server.TLSCertPath == "") != (c.Server.TLSKeyPath == "") {
		return fmt.Errorf("server.tls_cert_path and server.tls_key_path must be set together")
	}

	if c.Calculator.WaterType == "" {
		c.Calculator.WaterType = nitrox.FreshWater
	} else {
		wt, err := nitrox.ParseWaterType(string(c.Calculator.WaterType))
		if err != nil {
			return fmt.Errorf("calculator.water_type: %w", err)
		}
		c.Calculator.WaterType = wt
	}

	if c.Calculator.WaterDensity < 0 {
		return fmt.Errorf("calculator.water_density must not be negative, got %v", c.Calculator.WaterDensity)
	}

	if c.Calculator.PartialPressureLimit == 0 {
		c.Calculator.PartialPressureLimit = nitrox.DefaultPartialPressureLimit
	}
	if c.Calculator.PartialPressureLimit < 0 {
		return fmt.Errorf("calculator.partial_pressure_limit must be positive, got %v", c.Calculator.PartialPressureLimit)
	}

	return nil
}

// DefaultWaterDensity returns the configured density override, or the
// density of the configured water type
func (c CalculatorData) DefaultWaterDensity() units.Density {
	if c.WaterDensity > 0 {
		return units.DensityFromKilogramsPerCubicMeter(c.WaterDensity)
	}
	return c.WaterType.Density()
}

// Default returns a configuration with every default applied
func Default() *ConfigData {
	cfg := &ConfigData{}
	// defaults alone always validate
	_ = cfg.ApplyDefaults()
	return cfg
}
