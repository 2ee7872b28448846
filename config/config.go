// Package config loads the knobs for a training run.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	DataDir         string  `yaml:"data_dir"`
	TrainImages     string  `yaml:"train_images"`
	TrainLabels     string  `yaml:"train_labels"`
	TestImages      string  `yaml:"test_images"`
	TestLabels      string  `yaml:"test_labels"`
	Epochs          int     `yaml:"epochs"`
	LearningRate    float64 `yaml:"learning_rate"`
	Seed            int64   `yaml:"seed"`
	MaxTrain        int     `yaml:"max_train"`
	MaxTest         int     `yaml:"max_test"`
	Shuffle         bool    `yaml:"shuffle"`
	LogEvery        int     `yaml:"log_every"`
	LoadDir         string  `yaml:"load_dir"`
	ExportDir       string  `yaml:"export_dir"`
	ExportPrecision int     `yaml:"export_precision"`
	ReportDir       string  `yaml:"report_dir"`
	GradCheck       bool    `yaml:"gradcheck"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	DataDir      string
	Epochs       int
	LearningRate float64
	Seed         int64
	MaxTrain     int
	MaxTest      int
	LoadDir      string
	ExportDir    string
	GradCheck    bool
}

// Default returns the reference configuration: one pass over the MNIST
// training set with learning rate 1.
func Default() *Config {
	return &Config{
		DataDir:         "data",
		TrainImages:     "train-images-idx3-ubyte",
		TrainLabels:     "train-labels-idx1-ubyte",
		TestImages:      "t10k-images-idx3-ubyte",
		TestLabels:      "t10k-labels-idx1-ubyte",
		Epochs:          1,
		LearningRate:    1,
		LogEvery:        1000,
		ExportDir:       "weights",
		ExportPrecision: 5,
		ReportDir:       ".",
	}
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse decodes YAML on top of Default. Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates c using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.DataDir != "" {
		c.DataDir = o.DataDir
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.MaxTrain > 0 {
		c.MaxTrain = o.MaxTrain
	}
	if o.MaxTest > 0 {
		c.MaxTest = o.MaxTest
	}
	if o.LoadDir != "" {
		c.LoadDir = o.LoadDir
	}
	if o.ExportDir != "" {
		c.ExportDir = o.ExportDir
	}
	if o.GradCheck {
		c.GradCheck = true
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	if c.TrainImages == "" || c.TrainLabels == "" {
		return errors.New("train_images and train_labels must be set")
	}
	if c.MaxTrain < 0 || c.MaxTest < 0 {
		return errors.New("max_train and max_test must be >= 0")
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 1000
	}
	return nil
}

// HasTestSet reports whether a test set is configured.
func (c *Config) HasTestSet() bool {
	return c.TestImages != "" && c.TestLabels != ""
}

// Path resolves a data file name against DataDir.
func (c *Config) Path(name string) string {
	if filepath.IsAbs(name) || c.DataDir == "" {
		return name
	}
	return filepath.Join(c.DataDir, name)
}
