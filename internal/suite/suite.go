package suite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/apiprobe/apiprobe/internal/models"
)

// Load reads a YAML suite file, applies defaults and validates it. A test
// may omit method (defaults to GET) and expected_status (defaults to 200).
func Load(path string) (*models.Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	var s models.Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse suite file %s: %w", path, err)
	}

	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	applyDefaults(&s)

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid suite %s: %w", path, err)
	}
	return &s, nil
}

func applyDefaults(s *models.Suite) {
	for i := range s.Tests {
		if s.Tests[i].Method == "" {
			s.Tests[i].Method = models.MethodGet
		}
		if s.Tests[i].ExpectedStatus == 0 {
			s.Tests[i].ExpectedStatus = 200
		}
	}
}

// Builtin returns the default suite. It exercises the endpoints the
// built-in mock server provides, so it runs green out of the box against
// `apiprobe mock`.
func Builtin() *models.Suite {
	return &models.Suite{
		Name: "default",
		Tests: []models.TestDefinition{
			{
				Name:           "get single user",
				Method:         models.MethodGet,
				Path:           "/users/2",
				ExpectedStatus: 200,
				RequiredJSONPaths: []string{
					"data.id", "data.email", "data.first_name", "data.last_name",
				},
			},
			{
				Name:              "list users page 2",
				Method:            models.MethodGet,
				Path:              "/users?page=2",
				ExpectedStatus:    200,
				RequiredJSONPaths: []string{"page", "data"},
			},
			{
				Name:           "create user",
				Method:         models.MethodPost,
				Path:           "/users",
				ExpectedStatus: 201,
				Body: map[string]any{
					"name": "probe bot",
					"job":  "automation tester",
				},
				RequiredJSONPaths: []string{"name", "job", "id", "createdAt"},
			},
			{
				Name:           "login without password",
				Method:         models.MethodPost,
				Path:           "/login",
				ExpectedStatus: 400,
				Body: map[string]any{
					"email": "probe@example.com",
				},
				RequiredJSONPaths: []string{"error"},
			},
		},
	}
}
