package tool_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/felixgeelhaar/porkbun-domain-mcp/domain/tool"
)

func TestToolBuilder_Basic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		toolName    string
		description string
		wantErr     error
	}{
		{
			name:        "valid tool",
			toolName:    "test_tool",
			description: "A test tool",
			wantErr:     nil,
		},
		{
			name:        "empty name fails",
			toolName:    "",
			description: "Should fail",
			wantErr:     tool.ErrEmptyName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			builder := tool.NewBuilder(tt.toolName).
				WithDescription(tt.description).
				WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
					return tool.Result{Output: input}, nil
				})

			built, err := builder.Build()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Build() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr == nil {
				if built.Name() != tt.toolName {
					t.Errorf("Name() = %v, want %v", built.Name(), tt.toolName)
				}
				if built.Description() != tt.description {
					t.Errorf("Description() = %v, want %v", built.Description(), tt.description)
				}
			}
		})
	}
}

func TestToolBuilder_ReadOnly(t *testing.T) {
	t.Parallel()

	built := tool.NewBuilder("read_only_tool").
		WithDescription("A read-only tool").
		ReadOnly().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			return tool.Result{Output: input}, nil
		}).
		MustBuild()

	annotations := built.Annotations()
	if !annotations.ReadOnly {
		t.Error("ReadOnly should be true")
	}
	if annotations.RiskLevel != tool.RiskNone {
		t.Errorf("RiskLevel = %v, want %v", annotations.RiskLevel, tool.RiskNone)
	}
}

func TestToolExecute_NoHandler(t *testing.T) {
	t.Parallel()

	built, err := tool.NewBuilder("no_handler").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	_, err = built.Execute(context.Background(), json.RawMessage(`{}`))
	if !errors.Is(err, tool.ErrNoHandler) {
		t.Errorf("Execute() error = %v, want %v", err, tool.ErrNoHandler)
	}
}

func TestObjectSchema(t *testing.T) {
	t.Parallel()

	schema := tool.ObjectSchema(map[string]json.RawMessage{
		"domain": json.RawMessage(`{"type":"string"}`),
	}, []string{"domain"})

	if schema.IsEmpty() {
		t.Error("ObjectSchema should not be empty")
	}

	var parsed struct {
		Type     string   `json:"type"`
		Required []string `json:"required"`
	}
	if err := json.Unmarshal(schema.Raw(), &parsed); err != nil {
		t.Fatalf("failed to parse schema: %v", err)
	}
	if parsed.Type != "object" {
		t.Errorf("type = %s, want object", parsed.Type)
	}
	if len(parsed.Required) != 1 || parsed.Required[0] != "domain" {
		t.Errorf("required = %v, want [domain]", parsed.Required)
	}
}
