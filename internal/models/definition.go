package models

import (
	"fmt"
	"strings"
)

// TestDefinition describes one HTTP check: the request to send and the
// expectations the response must meet.
type TestDefinition struct {
	Name              string            `yaml:"name" json:"name"`
	Method            string            `yaml:"method" json:"method"`
	Path              string            `yaml:"path" json:"path"`
	ExpectedStatus    int               `yaml:"expected_status" json:"expected_status"`
	Body              map[string]any    `yaml:"body,omitempty" json:"body,omitempty"`
	Headers           map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
	RequiredJSONPaths []string          `yaml:"required_json_paths,omitempty" json:"required_json_paths,omitempty"`
}

// Supported request methods
const (
	MethodGet  = "GET"
	MethodPost = "POST"
)

// ValidMethods returns all methods a definition may use
func ValidMethods() []string {
	return []string{MethodGet, MethodPost}
}

// Validate checks that the definition is runnable
func (d *TestDefinition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("test definition has no name")
	}
	method := strings.ToUpper(d.Method)
	supported := false
	for _, m := range ValidMethods() {
		if method == m {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("test %q: unsupported method %q", d.Name, d.Method)
	}
	if d.Path == "" {
		return fmt.Errorf("test %q: path is required", d.Name)
	}
	if d.ExpectedStatus < 100 || d.ExpectedStatus > 599 {
		return fmt.Errorf("test %q: expected_status %d is not a valid HTTP status", d.Name, d.ExpectedStatus)
	}
	return nil
}

// Suite is an ordered collection of test definitions run as one unit.
// Definitions execute strictly in the order listed.
type Suite struct {
	Name  string           `yaml:"name" json:"name"`
	Tests []TestDefinition `yaml:"tests" json:"tests"`
}

// Validate checks every definition and enforces unique test names
func (s *Suite) Validate() error {
	if len(s.Tests) == 0 {
		return fmt.Errorf("suite %q has no tests", s.Name)
	}
	seen := make(map[string]bool, len(s.Tests))
	for i := range s.Tests {
		if err := s.Tests[i].Validate(); err != nil {
			return err
		}
		name := s.Tests[i].Name
		if seen[name] {
			return fmt.Errorf("duplicate test name %q", name)
		}
		seen[name] = true
	}
	return nil
}
