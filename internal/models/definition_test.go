package models

import (
	"testing"
)

func TestTestDefinition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		def     TestDefinition
		wantErr bool
	}{
		{
			name: "valid GET",
			def: TestDefinition{
				Name:           "get user",
				Method:         "GET",
				Path:           "/users/2",
				ExpectedStatus: 200,
			},
			wantErr: false,
		},
		{
			name: "valid POST with body",
			def: TestDefinition{
				Name:           "create user",
				Method:         "POST",
				Path:           "/users",
				ExpectedStatus: 201,
				Body:           map[string]any{"name": "probe"},
			},
			wantErr: false,
		},
		{
			name: "lowercase method accepted",
			def: TestDefinition{
				Name:           "get user",
				Method:         "get",
				Path:           "/users/2",
				ExpectedStatus: 200,
			},
			wantErr: false,
		},
		{
			name: "missing name",
			def: TestDefinition{
				Method:         "GET",
				Path:           "/users",
				ExpectedStatus: 200,
			},
			wantErr: true,
		},
		{
			name: "blank name",
			def: TestDefinition{
				Name:           "   ",
				Method:         "GET",
				Path:           "/users",
				ExpectedStatus: 200,
			},
			wantErr: true,
		},
		{
			name: "unsupported method",
			def: TestDefinition{
				Name:           "delete user",
				Method:         "DELETE",
				Path:           "/users/2",
				ExpectedStatus: 204,
			},
			wantErr: true,
		},
		{
			name: "missing path",
			def: TestDefinition{
				Name:           "get user",
				Method:         "GET",
				ExpectedStatus: 200,
			},
			wantErr: true,
		},
		{
			name: "status out of range",
			def: TestDefinition{
				Name:           "get user",
				Method:         "GET",
				Path:           "/users/2",
				ExpectedStatus: 99,
			},
			wantErr: true,
		},
		{
			name: "status zero",
			def: TestDefinition{
				Name:   "get user",
				Method: "GET",
				Path:   "/users/2",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidMethods(t *testing.T) {
	methods := ValidMethods()

	expected := []string{"GET", "POST"}
	if len(methods) != len(expected) {
		t.Fatalf("Expected %d methods, got %d", len(expected), len(methods))
	}
	for i, m := range expected {
		if methods[i] != m {
			t.Errorf("Expected method %q at index %d, got %q", m, i, methods[i])
		}
	}
}

func TestSuite_Validate(t *testing.T) {
	valid := TestDefinition{
		Name:           "get user",
		Method:         "GET",
		Path:           "/users/2",
		ExpectedStatus: 200,
	}

	t.Run("valid suite", func(t *testing.T) {
		s := Suite{Name: "default", Tests: []TestDefinition{valid}}
		if err := s.Validate(); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("empty suite", func(t *testing.T) {
		s := Suite{Name: "empty"}
		if err := s.Validate(); err == nil {
			t.Error("Expected error for suite with no tests")
		}
	})

	t.Run("duplicate names", func(t *testing.T) {
		s := Suite{Name: "dup", Tests: []TestDefinition{valid, valid}}
		if err := s.Validate(); err == nil {
			t.Error("Expected error for duplicate test names")
		}
	})

	t.Run("invalid definition", func(t *testing.T) {
		bad := valid
		bad.Method = "PATCH"
		s := Suite{Name: "bad", Tests: []TestDefinition{bad}}
		if err := s.Validate(); err == nil {
			t.Error("Expected error for unsupported method")
		}
	})
}

func TestOutcome_Received(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    bool
	}{
		{"response arrived", Outcome{StatusCode: 200}, true},
		{"transport failure", Outcome{Err: "connection refused"}, false},
		{"zero value", Outcome{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outcome.Received(); got != tt.want {
				t.Errorf("Received() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReport_Failed(t *testing.T) {
	r := Report{Summary: RunSummary{Total: 4, Passed: 4}}
	if r.Failed() {
		t.Error("Expected Failed() to be false when no test failed")
	}

	r.Summary.Failed = 1
	if !r.Failed() {
		t.Error("Expected Failed() to be true when a test failed")
	}
}
