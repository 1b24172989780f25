package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/jsamuelsen11/go-operation-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-operation-service/internal/ports"
)

func TestToPipelineListResponse(t *testing.T) {
	t.Parallel()

	infos := []ports.PipelineInfo{
		{Name: "cache.invalidate", Description: "Clear cache keys", Actions: []string{"cache.invalidate"}},
		{Name: "empty"},
	}

	got := dto.ToPipelineListResponse(infos)

	if got.Count != 2 {
		t.Fatalf("Count = %d, want 2", got.Count)
	}
	if got.Pipelines[0].Name != "cache.invalidate" {
		t.Errorf("Pipelines[0].Name = %q, want %q", got.Pipelines[0].Name, "cache.invalidate")
	}
	if len(got.Pipelines[0].Actions) != 1 || got.Pipelines[0].Actions[0] != "cache.invalidate" {
		t.Errorf("Pipelines[0].Actions = %v, want [cache.invalidate]", got.Pipelines[0].Actions)
	}
	if got.Pipelines[1].Actions == nil {
		t.Error("Pipelines[1].Actions = nil, want empty slice")
	}
}

func TestToPipelineListResponse_EmptyEncodesArray(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(dto.ToPipelineListResponse(nil))
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `{"pipelines":[],"count":0}` {
		t.Errorf("JSON = %s, want %s", data, `{"pipelines":[],"count":0}`)
	}
}

func TestExecuteResponse_JSONSerialization(t *testing.T) {
	t.Parallel()

	resp := dto.ToExecuteResponse(&ports.ExecuteResult{
		OperationID: "op-1",
		Pipeline:    "record.get",
		Output:      map[string]any{"key": "k"},
	})

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	for _, key := range []string{"operation_id", "pipeline", "output"} {
		if _, ok := m[key]; !ok {
			t.Errorf("JSON missing key %q", key)
		}
	}
	if m["operation_id"] != "op-1" {
		t.Errorf("operation_id = %v, want %q", m["operation_id"], "op-1")
	}
}

func TestExecuteResponse_NilOutputIsNull(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(dto.ToExecuteResponse(&ports.ExecuteResult{OperationID: "op", Pipeline: "p"}))
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `{"operation_id":"op","pipeline":"p","output":null}`
	if string(data) != want {
		t.Errorf("JSON = %s, want %s", data, want)
	}
}
