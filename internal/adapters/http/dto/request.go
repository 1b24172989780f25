package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/jsamuelsen11/go-operation-service/internal/domain"
	"github.com/jsamuelsen11/go-operation-service/internal/ports"
)

// ExecutePipelineRequest is the decoded form of
// POST /api/v1/pipelines/{name}/execute. The whole request body is the
// pipeline input; the operation ID and origin come from headers.
type ExecutePipelineRequest struct {
	Pipeline    string
	OperationID string
	Origin      string
	Body        []byte
}

// Validate checks that a pipeline is named and that the body, when present,
// is a single well-formed JSON value.
func (r *ExecutePipelineRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Pipeline) == "" {
		fields["pipeline"] = domain.MsgRequired
	}
	if body := bytes.TrimSpace(r.Body); len(body) > 0 && !json.Valid(body) {
		fields["input"] = "must be valid JSON"
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToPort converts the request to the service port's form. An empty body
// becomes a JSON null input.
func (r *ExecutePipelineRequest) ToPort() ports.ExecuteRequest {
	input := json.RawMessage("null")
	if body := bytes.TrimSpace(r.Body); len(body) > 0 {
		input = json.RawMessage(body)
	}
	return ports.ExecuteRequest{
		Pipeline:    r.Pipeline,
		OperationID: strings.TrimSpace(r.OperationID),
		Origin:      strings.TrimSpace(r.Origin),
		Input:       input,
	}
}
