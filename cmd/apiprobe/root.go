package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apiprobe/apiprobe/internal/config"
)

const version = "1.0.0"

// Exit codes: 0 when every test passed, 1 when any test failed, 2 for
// run-fatal errors (bad config, unreadable suite, unwritable report).
const (
	exitTestFailure = 1
	exitFatal       = 2
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "apiprobe",
		Short: "apiprobe - declarative HTTP API test runner",
		Long: `apiprobe issues HTTP requests against a configured base URL and validates
status codes, response latency, and JSON field presence via dotted paths.

It runs a built-in suite or one loaded from YAML, writes a report artifact
(text, JSON or xlsx), and can serve a local mock API to test against,
generate suite skeletons from OpenAPI documents, and re-run a suite on a
fixed interval.`,
		Version: version,
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFatal)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(mockCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(initCmd)
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	// .env is optional; env vars it sets feed the APIPROBE_* resolution below
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}

		// Search config in current directory
		viper.AddConfigPath(cwd)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("APIPROBE")
	viper.AutomaticEnv()

	setDefaults()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults mirrors config.Default into viper
func setDefaults() {
	defaults := config.Default()

	viper.SetDefault("base_url", defaults.BaseURL)
	viper.SetDefault("timeout_seconds", defaults.TimeoutSeconds)
	viper.SetDefault("max_response_time_seconds", defaults.MaxResponseTimeSeconds)
	viper.SetDefault("log_dir", defaults.LogDir)
	viper.SetDefault("report_dir", defaults.ReportDir)
	viper.SetDefault("report_format", defaults.ReportFormat)
	viper.SetDefault("mock.host", defaults.Mock.Host)
	viper.SetDefault("mock.port", defaults.Mock.Port)
	viper.SetDefault("mock.max_recorded", defaults.Mock.MaxRecorded)
}

// resolveConfig materializes the effective configuration from viper
// (flags > env > config file > defaults) and validates it
func resolveConfig() (*config.Config, error) {
	cfg := &config.Config{
		BaseURL:                viper.GetString("base_url"),
		TimeoutSeconds:         viper.GetFloat64("timeout_seconds"),
		MaxResponseTimeSeconds: viper.GetFloat64("max_response_time_seconds"),
		LogDir:                 viper.GetString("log_dir"),
		ReportDir:              viper.GetString("report_dir"),
		ReportFormat:           viper.GetString("report_format"),
		DefaultHeaders:         viper.GetStringMapString("default_headers"),
		Mock: config.MockConfig{
			Host:        viper.GetString("mock.host"),
			Port:        viper.GetInt("mock.port"),
			MaxRecorded: viper.GetInt("mock.max_recorded"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger creates the process logger, writing to stderr and the log file.
// The returned func closes the file.
func newLogger(cfg *config.Config) (*log.Logger, func(), error) {
	if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(cfg.LogDir, "apiprobe.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := log.New(io.MultiWriter(os.Stderr, f), "", log.LstdFlags)
	return logger, func() { f.Close() }, nil
}
