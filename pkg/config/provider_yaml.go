package config

import (
	"fmt"
	"os"

	"github.com/chrissnell/divegas/pkg/nitrox"
	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

type serverYAML struct {
	ListenAddr  string `yaml:"listen_addr,omitempty"`
	HTTPPort    int    `yaml:"http_port,omitempty"`
	TLSCertPath string `yaml:"tls_cert_path,omitempty"`
	TLSKeyPath  string `yaml:"tls_key_path,omitempty"`
}

type calculatorYAML struct {
	WaterType            string  `yaml:"water_type,omitempty"`
	WaterDensity         float64 `yaml:"water_density,omitempty"`
	PartialPressureLimit float64 `yaml:"partial_pressure_limit,omitempty"`
}

// LoadConfig reads the YAML file and returns the configuration with
// defaults applied
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	return ParseYAML(cfgFile)
}

// ParseYAML decodes a YAML document into a validated ConfigData
func ParseYAML(data []byte) (*ConfigData, error) {
	var yamlConfig struct {
		Server     serverYAML     `yaml:"server,omitempty"`
		Calculator calculatorYAML `yaml:"calculator,omitempty"`
	}

	if err := yaml.UnmarshalStrict(data, &yamlConfig); err != nil {
		return nil, fmt.Errorf("error parsing YAML config: %w", err)
	}

	config := &ConfigData{
		Server: ServerData{
			ListenAddr:  yamlConfig.Server.ListenAddr,
			HTTPPort:    yamlConfig.Server.HTTPPort,
			TLSCertPath: yamlConfig.Server.TLSCertPath,
			TLSKeyPath:  yamlConfig.Server.TLSKeyPath,
		},
	}
	config.Calculator.WaterType = nitrox.WaterType(yamlConfig.Calculator.WaterType)
	config.Calculator.WaterDensity = yamlConfig.Calculator.WaterDensity
	config.Calculator.PartialPressureLimit = yamlConfig.Calculator.PartialPressureLimit

	if err := config.ApplyDefaults(); err != nil {
		return nil, err
	}

	return config, nil
}
