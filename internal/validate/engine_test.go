package validate

import (
	"reflect"
	"testing"
	"time"

	"github.com/apiprobe/apiprobe/internal/models"
)

func TestValidate_AllChecksPass(t *testing.T) {
	engine := NewEngine(time.Second)
	def := models.TestDefinition{
		Name:              "get single user",
		Method:            "GET",
		Path:              "/users/2",
		ExpectedStatus:    200,
		RequiredJSONPaths: []string{"data.id", "data.email"},
	}
	outcome := models.Outcome{
		StatusCode: 200,
		Elapsed:    300 * time.Millisecond,
		Body:       []byte(`{"data":{"id":2,"email":"a@b.com"}}`),
	}

	result := engine.Validate(def, outcome)

	if !result.Passed {
		t.Fatalf("Expected passed result, got failure details %v", result.FailureDetails)
	}
	if len(result.FailureDetails) != 0 {
		t.Errorf("Expected empty failure details, got %v", result.FailureDetails)
	}
	if result.Name != "get single user" {
		t.Errorf("Expected result name 'get single user', got %q", result.Name)
	}
	if result.StatusObserved != 200 {
		t.Errorf("Expected observed status 200, got %d", result.StatusObserved)
	}
	if result.ElapsedSeconds != 0.3 {
		t.Errorf("Expected elapsed 0.3s, got %v", result.ElapsedSeconds)
	}
}

func TestValidate_StatusMismatch(t *testing.T) {
	engine := NewEngine(time.Second)
	def := models.TestDefinition{
		Name:           "create user",
		Method:         "POST",
		Path:           "/users",
		ExpectedStatus: 201,
	}
	outcome := models.Outcome{
		StatusCode: 400,
		Elapsed:    100 * time.Millisecond,
		Body:       []byte(`{}`),
	}

	result := engine.Validate(def, outcome)

	if result.Passed {
		t.Error("Expected failed result on status mismatch")
	}
	want := []string{"expected status 201, got 400"}
	if !reflect.DeepEqual(result.FailureDetails, want) {
		t.Errorf("Expected details %v, got %v", want, result.FailureDetails)
	}
}

func TestValidate_NegativeTestPasses(t *testing.T) {
	// A definition may expect a non-2xx status; with no required paths the
	// body content is irrelevant.
	engine := NewEngine(time.Second)
	def := models.TestDefinition{
		Name:           "login without password",
		Method:         "POST",
		Path:           "/login",
		ExpectedStatus: 400,
	}
	outcome := models.Outcome{
		StatusCode: 400,
		Elapsed:    50 * time.Millisecond,
		Body:       []byte(`{"error":"missing password"}`),
	}

	result := engine.Validate(def, outcome)

	if !result.Passed {
		t.Errorf("Expected passed result, got failure details %v", result.FailureDetails)
	}
}

func TestValidate_LatencyOverThreshold(t *testing.T) {
	engine := NewEngine(time.Second)
	def := models.TestDefinition{
		Name:           "slow endpoint",
		Method:         "GET",
		Path:           "/slow",
		ExpectedStatus: 200,
	}
	outcome := models.Outcome{
		StatusCode: 200,
		Elapsed:    2500 * time.Millisecond,
		Body:       []byte(`{}`),
	}

	result := engine.Validate(def, outcome)

	if result.Passed {
		t.Error("Expected failed result on latency over threshold")
	}
	want := []string{"latency 2.5s exceeds threshold 1.0s"}
	if !reflect.DeepEqual(result.FailureDetails, want) {
		t.Errorf("Expected details %v, got %v", want, result.FailureDetails)
	}
}

func TestValidate_LatencyAtThresholdPasses(t *testing.T) {
	engine := NewEngine(time.Second)
	def := models.TestDefinition{
		Name:           "on the line",
		Method:         "GET",
		Path:           "/ok",
		ExpectedStatus: 200,
	}
	outcome := models.Outcome{
		StatusCode: 200,
		Elapsed:    time.Second,
		Body:       []byte(`{}`),
	}

	result := engine.Validate(def, outcome)

	if !result.Passed {
		t.Errorf("Expected elapsed equal to threshold to pass, got %v", result.FailureDetails)
	}
}

func TestValidate_NoResponse(t *testing.T) {
	engine := NewEngine(time.Second)
	def := models.TestDefinition{
		Name:              "unreachable",
		Method:            "GET",
		Path:              "/users",
		ExpectedStatus:    200,
		RequiredJSONPaths: []string{"data"},
	}
	outcome := models.Outcome{Err: "connection refused"}

	result := engine.Validate(def, outcome)

	if result.Passed {
		t.Error("Expected failed result on transport failure")
	}
	want := []string{"no response received"}
	if !reflect.DeepEqual(result.FailureDetails, want) {
		t.Errorf("Expected details %v, got %v", want, result.FailureDetails)
	}
	if result.Err != "connection refused" {
		t.Errorf("Expected transport error to be carried, got %q", result.Err)
	}
}

func TestValidate_DetailsInCheckOrder(t *testing.T) {
	// Every check runs; no failure short-circuits the rest, and details
	// appear as status, latency, then paths in definition order.
	engine := NewEngine(time.Second)
	def := models.TestDefinition{
		Name:              "everything wrong",
		Method:            "GET",
		Path:              "/users/2",
		ExpectedStatus:    200,
		RequiredJSONPaths: []string{"data.id", "data.email"},
	}
	outcome := models.Outcome{
		StatusCode: 500,
		Elapsed:    3 * time.Second,
		Body:       []byte(`{"error":"boom"}`),
	}

	result := engine.Validate(def, outcome)

	want := []string{
		"expected status 200, got 500",
		"latency 3.0s exceeds threshold 1.0s",
		`missing JSON path "data.id"`,
		`missing JSON path "data.email"`,
	}
	if !reflect.DeepEqual(result.FailureDetails, want) {
		t.Errorf("Expected details %v, got %v", want, result.FailureDetails)
	}
}

func TestValidate_MissingPathsIndependent(t *testing.T) {
	// One missing path must not mask detection of another.
	engine := NewEngine(time.Second)
	def := models.TestDefinition{
		Name:              "partial body",
		Method:            "GET",
		Path:              "/users/2",
		ExpectedStatus:    200,
		RequiredJSONPaths: []string{"data.id", "data.missing", "data.email", "data.ghost"},
	}
	outcome := models.Outcome{
		StatusCode: 200,
		Elapsed:    100 * time.Millisecond,
		Body:       []byte(`{"data":{"id":2,"email":"a@b.com"}}`),
	}

	result := engine.Validate(def, outcome)

	want := []string{
		`missing JSON path "data.missing"`,
		`missing JSON path "data.ghost"`,
	}
	if !reflect.DeepEqual(result.FailureDetails, want) {
		t.Errorf("Expected details %v, got %v", want, result.FailureDetails)
	}
}

func TestValidate_BodyNotJSON(t *testing.T) {
	engine := NewEngine(time.Second)
	def := models.TestDefinition{
		Name:              "html response",
		Method:            "GET",
		Path:              "/users",
		ExpectedStatus:    200,
		RequiredJSONPaths: []string{"data"},
	}
	outcome := models.Outcome{
		StatusCode: 200,
		Elapsed:    100 * time.Millisecond,
		Body:       []byte("<html>not json</html>"),
	}

	result := engine.Validate(def, outcome)

	want := []string{"response body is not valid JSON"}
	if !reflect.DeepEqual(result.FailureDetails, want) {
		t.Errorf("Expected details %v, got %v", want, result.FailureDetails)
	}
}

func TestValidate_NonJSONBodyIgnoredWithoutPaths(t *testing.T) {
	// Body parseability only matters when the definition requires paths.
	engine := NewEngine(time.Second)
	def := models.TestDefinition{
		Name:           "plain text ok",
		Method:         "GET",
		Path:           "/health",
		ExpectedStatus: 200,
	}
	outcome := models.Outcome{
		StatusCode: 200,
		Elapsed:    10 * time.Millisecond,
		Body:       []byte("OK"),
	}

	result := engine.Validate(def, outcome)

	if !result.Passed {
		t.Errorf("Expected passed result, got failure details %v", result.FailureDetails)
	}
}

func TestValidate_PathResolution(t *testing.T) {
	body := []byte(`{
		"page": 2,
		"data": {
			"id": 2,
			"flag": false,
			"items": [{"id": 10}, {"id": 11}]
		}
	}`)

	tests := []struct {
		name    string
		path    string
		present bool
	}{
		{"top level key", "page", true},
		{"nested key", "data.id", true},
		{"false value still present", "data.flag", true},
		{"numeric segment indexes array", "data.items.0.id", true},
		{"second element", "data.items.1.id", true},
		{"index out of range", "data.items.2.id", false},
		{"missing top level", "total", false},
		{"missing nested", "data.name", false},
		{"descending into scalar", "data.id.value", false},
		{"numeric segment on object", "data.0", false},
	}

	engine := NewEngine(time.Second)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := models.TestDefinition{
				Name:              "path probe",
				Method:            "GET",
				Path:              "/probe",
				ExpectedStatus:    200,
				RequiredJSONPaths: []string{tt.path},
			}
			outcome := models.Outcome{
				StatusCode: 200,
				Elapsed:    10 * time.Millisecond,
				Body:       body,
			}

			result := engine.Validate(def, outcome)

			if result.Passed != tt.present {
				t.Errorf("Path %q: expected present=%v, got details %v",
					tt.path, tt.present, result.FailureDetails)
			}
		})
	}
}

func TestValidate_Idempotent(t *testing.T) {
	engine := NewEngine(time.Second)
	def := models.TestDefinition{
		Name:              "repeatable",
		Method:            "GET",
		Path:              "/users/2",
		ExpectedStatus:    201,
		RequiredJSONPaths: []string{"data.id", "nope"},
	}
	outcome := models.Outcome{
		StatusCode: 200,
		Elapsed:    2 * time.Second,
		Body:       []byte(`{"data":{"id":2}}`),
	}

	first := engine.Validate(def, outcome)
	second := engine.Validate(def, outcome)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results, got %+v and %+v", first, second)
	}
}
