package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/apiprobe/apiprobe/internal/openapi"
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a suite skeleton from an OpenAPI 3 document",
	Long: `Reads an OpenAPI 3 document and derives a suite file from its operations.

Every GET and POST operation becomes one test definition, named after its
operationId, expecting the lowest declared 2xx status, with required JSON
paths taken from the response schema's top-level required properties. The
generated file is a starting point; edit expectations before relying on it.`,
	RunE: runGen,
}

var (
	genSpecFile string
	genOutFile  string
)

func init() {
	genCmd.Flags().StringVar(&genSpecFile, "spec", "", "OpenAPI 3 document to read (required)")
	genCmd.Flags().StringVarP(&genOutFile, "out", "o", "suite.yaml", "suite file to write")
	genCmd.MarkFlagRequired("spec")
}

func runGen(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(genSpecFile)
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI document: %w", err)
	}

	s, err := openapi.NewGenerator().GenerateSuite(content)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode suite: %w", err)
	}

	header := fmt.Sprintf("# Suite generated from %s\n# Review expected statuses and required paths before use.\n\n", genSpecFile)
	if err := os.WriteFile(genOutFile, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("failed to write suite file: %w", err)
	}

	fmt.Printf("Generated %d test definitions: %s\n", len(s.Tests), genOutFile)
	return nil
}
