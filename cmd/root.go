package cmd

import (
	"errors"
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/moviescope-cli/internal/config"
	"github.com/KaramelBytes/moviescope-cli/internal/dashboard"
	"github.com/KaramelBytes/moviescope-cli/internal/dataset"
	"github.com/KaramelBytes/moviescope-cli/internal/predict"
	"github.com/spf13/cobra"
)

var (
	// Global flags (override config if set)
	cfgFile       string
	debug         bool
	flagDataPath  string
	flagChartsDir string
	flagDelimiter string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "moviescope",
	Short: "MovieScope: explore the TMDB movie dataset and predict ratings",
	Long: `MovieScope is an interactive dashboard for the TMDB 5000 movies dataset.
It filters movies by numeric ranges, renders scatter and histogram charts, and
fits a linear regression that predicts vote_average from budget, revenue,
popularity and vote_count.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.moviescope/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagDataPath, "data", "", "path to the movies CSV/TSV (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagChartsDir, "charts-dir", "", "directory for rendered charts (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config, using defaults: %v\n", err)
		c = cfgpkg.Defaults()
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("data") && flagDataPath != "" {
		cfg.DataPath = flagDataPath
	}
	if f.Changed("charts-dir") && flagChartsDir != "" {
		cfg.ChartsDir = flagChartsDir
	}
	if f.Changed("delimiter") {
		cfg.Delimiter = flagDelimiter
	}
	debugf("config: data=%s charts=%s seed=%d test_fraction=%.2f", cfg.DataPath, cfg.ChartsDir, cfg.Seed, cfg.TestFraction)
}

func debugf(format string, args ...any) {
	if debug {
		fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
	}
}

// loadDataset reads the configured dataset. A failure here is fatal for every section.
func loadDataset() (*dataset.Dataset, error) {
	if cfg == nil || cfg.DataPath == "" {
		return nil, errors.New("no dataset configured (use --data or `moviescope config set data_path <file>`)")
	}
	delim, err := dataset.ParseDelimiter(cfg.Delimiter)
	if err != nil {
		return nil, err
	}
	ds, err := dataset.Load(cfg.DataPath, dataset.LoadOptions{Delimiter: delim})
	if err != nil {
		return nil, err
	}
	debugf("loaded %d movies from %s", ds.Len(), ds.Path)
	return ds, nil
}

func dashboardOptions() dashboard.Options {
	opt := dashboard.DefaultOptions()
	if cfg == nil {
		return opt
	}
	if cfg.HistBins > 0 {
		opt.HistBins = cfg.HistBins
	}
	opt.Predict = predict.Options{
		Seed:         cfg.Seed,
		TestFraction: cfg.TestFraction,
		SampleRows:   cfg.SampleRows,
		CompareRows:  cfg.CompareRows,
	}
	return opt
}

// chartSize returns the PNG size in inches.
func chartSize() (w, h float64) {
	w, h = 6, 4
	if cfg != nil && cfg.ChartWidthIn > 0 {
		w = cfg.ChartWidthIn
	}
	if cfg != nil && cfg.ChartHeightIn > 0 {
		h = cfg.ChartHeightIn
	}
	return w, h
}
