package ports

import (
	"context"
	"encoding/json"
)

// PipelineService runs named pipelines as operations.
// Implemented by the application layer; called by inbound adapters (handlers).
type PipelineService interface {
	// ListPipelines returns the registered pipelines sorted by name.
	ListPipelines(ctx context.Context) []PipelineInfo

	// ExecutePipeline runs the named pipeline as one operation and returns
	// its output once the operation has closed.
	// Returns domain.ErrNotFound if no pipeline has that name.
	// Returns domain.ErrValidation if the input cannot be decoded.
	ExecutePipeline(ctx context.Context, req ExecuteRequest) (*ExecuteResult, error)
}

// PipelineInfo describes a registered pipeline.
type PipelineInfo struct {
	Name        string
	Description string
	Actions     []string
}

// ExecuteRequest carries one pipeline invocation.
type ExecuteRequest struct {
	Pipeline    string
	OperationID string
	Origin      string
	Input       json.RawMessage
}

// ExecuteResult is the outcome of a closed operation.
type ExecuteResult struct {
	OperationID string
	Pipeline    string
	Output      any
}
