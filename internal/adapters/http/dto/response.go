// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import "github.com/jsamuelsen11/go-operation-service/internal/ports"

// PipelineResponse describes one registered pipeline.
type PipelineResponse struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Actions     []string `json:"actions"`
}

// PipelineListResponse lists the registered pipelines.
type PipelineListResponse struct {
	Pipelines []PipelineResponse `json:"pipelines"`
	Count     int                `json:"count"`
}

// ToPipelineListResponse converts pipeline descriptions to a list response.
func ToPipelineListResponse(infos []ports.PipelineInfo) PipelineListResponse {
	items := make([]PipelineResponse, len(infos))
	for i, info := range infos {
		actions := info.Actions
		if actions == nil {
			actions = []string{}
		}
		items[i] = PipelineResponse{
			Name:        info.Name,
			Description: info.Description,
			Actions:     actions,
		}
	}
	return PipelineListResponse{Pipelines: items, Count: len(items)}
}

// ExecuteResponse is returned once the operation has closed successfully.
type ExecuteResponse struct {
	OperationID string `json:"operation_id"`
	Pipeline    string `json:"pipeline"`
	Output      any    `json:"output"`
}

// ToExecuteResponse converts an execution result to its HTTP form.
func ToExecuteResponse(result *ports.ExecuteResult) ExecuteResponse {
	return ExecuteResponse{
		OperationID: result.OperationID,
		Pipeline:    result.Pipeline,
		Output:      result.Output,
	}
}

// HealthResponse is returned by the liveness and readiness endpoints.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
