// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/go-operation-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-operation-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/go-operation-service/internal/ports"
)

// PipelineHandler lists pipelines and runs them as operations.
type PipelineHandler struct {
	svc ports.PipelineService
}

// NewPipelineHandler creates a new PipelineHandler with the given service port.
func NewPipelineHandler(svc ports.PipelineService) *PipelineHandler {
	return &PipelineHandler{svc: svc}
}

// ListPipelines handles GET /api/v1/pipelines.
func (h *PipelineHandler) ListPipelines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.ToPipelineListResponse(h.svc.ListPipelines(r.Context())))
}

// ExecutePipeline handles POST /api/v1/pipelines/{name}/execute.
//
// The body is the pipeline input. The request ID becomes the operation ID
// and the request origin becomes the operation origin, so both show up on
// every log line the operation writes. The response is sent only after the
// operation has closed, which means deferred actions and the notice and task
// flush have completed.
func (h *PipelineHandler) ExecutePipeline(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	ctx := r.Context()
	req := dto.ExecutePipelineRequest{
		Pipeline:    chi.URLParam(r, "name"),
		OperationID: middleware.RequestIDFromContext(ctx),
		Origin:      middleware.OriginFromContext(ctx),
		Body:        body,
	}
	if req.OperationID == "" {
		req.OperationID = r.Header.Get(middleware.HeaderRequestID)
	}
	if req.Origin == "" {
		req.Origin = r.Header.Get(middleware.HeaderOrigin)
	}
	if err := req.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	result, err := h.svc.ExecutePipeline(ctx, req.ToPort())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToExecuteResponse(result))
}
