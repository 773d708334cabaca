package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"hslc/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	ConversionConfig struct {
		Target        common.Space `yaml:"target" validate:"oneof=0 1 2 3"`
		Tolerance     float64      `yaml:"tolerance" validate:"gt=0,lt=1"`
		MaxIterations int          `yaml:"max_iterations" validate:"min=1"`
		Workers       int          `yaml:"workers" validate:"min=1,max=256"`
	}

	ShellConfig struct {
		Prompt      string `yaml:"prompt"`
		ColorErrors bool   `yaml:"color_errors"`
	}

	WheelConfig struct {
		Steps         int     `yaml:"steps" validate:"min=2"`
		Saturation    float64 `yaml:"saturation" validate:"gte=0,lte=1"`
		Lightness     float64 `yaml:"lightness" validate:"gte=0,lte=1"`
		LabelTemplate string  `yaml:"label_template" validate:"required"`
		SwatchSize    int     `yaml:"swatch_size" validate:"min=1,max=1024"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Conversion ConversionConfig `yaml:"conversion"`
		Shell      ShellConfig      `yaml:"shell"`
		Wheel      WheelConfig      `yaml:"wheel"`
		Logging    LoggingConfig    `yaml:"logging"`
		Reporting  ReporterConfig   `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	LabelTemplateFieldName TemplateFieldName = "label_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(LabelTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// unknown keys are errors
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("configuration sanitization failed: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
