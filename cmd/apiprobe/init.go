package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/apiprobe/apiprobe/internal/config"
	"github.com/apiprobe/apiprobe/internal/suite"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize apiprobe with default configuration and directories",
	Long: `Creates the default configuration file (config.yaml), a sample suite file
(suite.yaml) holding the built-in test definitions, and the log and report
directories.

Existing files are not overwritten unless --force is used.`,
	RunE: runInit,
}

var (
	initForce bool
	initPath  string
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing files")
	initCmd.Flags().StringVarP(&initPath, "path", "p", ".", "Path where to initialize (default: current directory)")
}

func runInit(cmd *cobra.Command, args []string) error {
	absPath, err := filepath.Abs(initPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	cfg := config.Default()
	configFile := filepath.Join(absPath, "config.yaml")
	suiteFile := filepath.Join(absPath, "suite.yaml")

	for _, file := range []string{configFile, suiteFile} {
		if _, err := os.Stat(file); err == nil && !initForce {
			return fmt.Errorf("%s already exists. Use --force to overwrite", filepath.Base(file))
		}
	}

	// Create output directories
	for _, dir := range []string{cfg.LogDir, cfg.ReportDir} {
		target := dir
		if !filepath.IsAbs(target) {
			target = filepath.Join(absPath, target)
		}
		if err := os.MkdirAll(target, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", target, err)
		}
		fmt.Printf("Created directory: %s\n", target)
	}

	configData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to generate config: %w", err)
	}
	configHeader := `# apiprobe configuration
# base_url is the target root every relative test path is joined to.
# The default points at the built-in mock server (apiprobe mock).

`
	if err := os.WriteFile(configFile, append([]byte(configHeader), configData...), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	fmt.Printf("Created config file: %s\n", configFile)

	suiteData, err := yaml.Marshal(suite.Builtin())
	if err != nil {
		return fmt.Errorf("failed to generate suite: %w", err)
	}
	suiteHeader := `# apiprobe sample suite - the built-in test definitions.
# Run it with: apiprobe run --suite suite.yaml

`
	if err := os.WriteFile(suiteFile, append([]byte(suiteHeader), suiteData...), 0644); err != nil {
		return fmt.Errorf("failed to write suite file: %w", err)
	}
	fmt.Printf("Created suite file: %s\n", suiteFile)

	fmt.Println()
	fmt.Println("Initialization complete! Try it end to end with:")
	fmt.Println()
	fmt.Printf("  cd %s\n", absPath)
	fmt.Println("  apiprobe mock &")
	fmt.Println("  apiprobe run")
	fmt.Println()

	return nil
}
