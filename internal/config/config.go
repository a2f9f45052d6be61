package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DataPath  string `mapstructure:"data_path" yaml:"data_path"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	ChartsDir string `mapstructure:"charts_dir" yaml:"charts_dir"`

	// Prediction
	Seed         int64   `mapstructure:"seed" yaml:"seed"`
	TestFraction float64 `mapstructure:"test_fraction" yaml:"test_fraction"`
	SampleRows   int     `mapstructure:"sample_rows" yaml:"sample_rows"`
	CompareRows  int     `mapstructure:"compare_rows" yaml:"compare_rows"`

	// Presentation
	HistBins      int     `mapstructure:"hist_bins" yaml:"hist_bins"`
	PreviewRows   int     `mapstructure:"preview_rows" yaml:"preview_rows"`
	ChartWidthIn  float64 `mapstructure:"chart_width_in" yaml:"chart_width_in"`
	ChartHeightIn float64 `mapstructure:"chart_height_in" yaml:"chart_height_in"`
}

// Dir returns ~/.moviescope.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".moviescope"), nil
}

// Defaults returns the built-in configuration used when no file or env sets a key.
func Defaults() *Global {
	return &Global{
		DataPath:      filepath.Join("data", "tmdb_5000_movies.csv"),
		ChartsDir:     "charts",
		Seed:          42,
		TestFraction:  0.2,
		SampleRows:    20,
		CompareRows:   50,
		HistBins:      20,
		PreviewRows:   5,
		ChartWidthIn:  6,
		ChartHeightIn: 4,
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.moviescope/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("MOVIESCOPE")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("data_path", d.DataPath)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("charts_dir", d.ChartsDir)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("test_fraction", d.TestFraction)
	v.SetDefault("sample_rows", d.SampleRows)
	v.SetDefault("compare_rows", d.CompareRows)
	v.SetDefault("hist_bins", d.HistBins)
	v.SetDefault("preview_rows", d.PreviewRows)
	v.SetDefault("chart_width_in", d.ChartWidthIn)
	v.SetDefault("chart_height_in", d.ChartHeightIn)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; a broken one is not.
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Keys lists the settable configuration keys in display order.
func Keys() []string {
	return []string{
		"data_path", "delimiter", "charts_dir", "seed", "test_fraction", "sample_rows",
		"compare_rows", "hist_bins", "preview_rows", "chart_width_in", "chart_height_in",
	}
}
