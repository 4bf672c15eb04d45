package openapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/apiprobe/apiprobe/internal/models"
)

// Generator builds suite skeletons from OpenAPI 3 documents. Every GET and
// POST operation in the document becomes one test definition; other methods
// are skipped.
type Generator struct{}

// NewGenerator creates an OpenAPI suite generator
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateSuite parses and validates an OpenAPI 3 document and derives a
// suite from its operations. Definitions are emitted in path order, GET
// before POST within a path, so regenerating from the same document yields
// the same suite.
func (g *Generator) GenerateSuite(content []byte) (*models.Suite, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true

	doc, err := loader.LoadFromData(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}

	suite := &models.Suite{Name: suiteName(doc)}

	paths := doc.Paths.Map()
	patterns := make([]string, 0, len(paths))
	for pattern := range paths {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)

	for _, pattern := range patterns {
		item := paths[pattern]
		if item == nil {
			continue
		}
		if item.Get != nil {
			suite.Tests = append(suite.Tests, g.buildDefinition(models.MethodGet, pattern, item.Get))
		}
		if item.Post != nil {
			suite.Tests = append(suite.Tests, g.buildDefinition(models.MethodPost, pattern, item.Post))
		}
	}

	if err := suite.Validate(); err != nil {
		return nil, fmt.Errorf("document yields no usable suite: %w", err)
	}
	return suite, nil
}

// buildDefinition derives one test definition from an operation
func (g *Generator) buildDefinition(method, pattern string, op *openapi3.Operation) models.TestDefinition {
	name := op.OperationID
	if name == "" {
		name = fmt.Sprintf("%s_%s", strings.ToLower(method), sanitizePath(pattern))
	}

	status := expectedStatus(op)
	return models.TestDefinition{
		Name:              name,
		Method:            method,
		Path:              pattern,
		ExpectedStatus:    status,
		RequiredJSONPaths: requiredPaths(op, status),
	}
}

// suiteName derives the suite name from the document title
func suiteName(doc *openapi3.T) string {
	if doc.Info != nil && doc.Info.Title != "" {
		return doc.Info.Title
	}
	return "generated"
}

// expectedStatus picks the lowest declared 2xx status, defaulting to 200
// when the operation declares none
func expectedStatus(op *openapi3.Operation) int {
	if op.Responses == nil {
		return 200
	}

	status := 0
	for code := range op.Responses.Map() {
		var parsed int
		if _, err := fmt.Sscanf(code, "%d", &parsed); err != nil {
			continue
		}
		if parsed < 200 || parsed > 299 {
			continue
		}
		if status == 0 || parsed < status {
			status = parsed
		}
	}
	if status == 0 {
		return 200
	}
	return status
}

// requiredPaths derives dotted paths from the top-level required properties
// of the expected response's JSON schema
func requiredPaths(op *openapi3.Operation, status int) []string {
	if op.Responses == nil {
		return nil
	}
	response := op.Responses.Status(status)
	if response == nil || response.Value == nil {
		return nil
	}

	for mediaType, content := range response.Value.Content {
		if !strings.Contains(mediaType, "json") {
			continue
		}
		if content.Schema == nil || content.Schema.Value == nil {
			return nil
		}
		required := make([]string, len(content.Schema.Value.Required))
		copy(required, content.Schema.Value.Required)
		return required
	}
	return nil
}

// sanitizePath converts a path pattern to a valid test name segment
func sanitizePath(pattern string) string {
	result := strings.ReplaceAll(pattern, "{", "")
	result = strings.ReplaceAll(result, "}", "")
	result = strings.ReplaceAll(result, "/", "_")
	result = strings.TrimPrefix(result, "_")
	result = strings.TrimSuffix(result, "_")
	if result == "" {
		return "root"
	}
	return result
}
