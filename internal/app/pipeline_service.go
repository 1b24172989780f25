// Package app provides application services that orchestrate use cases by
// coordinating between the operation core and infrastructure through port
// interfaces.
package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/go-operation-service/internal/app/executor"
	"github.com/jsamuelsen11/go-operation-service/internal/app/operation"
	"github.com/jsamuelsen11/go-operation-service/internal/app/pipeline"
	"github.com/jsamuelsen11/go-operation-service/internal/ports"
)

// Compile-time check that PipelineService implements ports.PipelineService.
var _ ports.PipelineService = (*PipelineService)(nil)

// PipelineService implements ports.PipelineService by looking pipelines up in
// a registry and running each request as one operation through the
// executor. It handles input decoding and structured logging but contains no
// pipeline logic.
type PipelineService struct {
	registry      *pipeline.Registry
	executor      *executor.Executor
	defaultOrigin string
	logger        *slog.Logger
}

// NewPipelineService creates a PipelineService. defaultOrigin is used for
// requests that do not name their origin. A nil logger discards output.
func NewPipelineService(registry *pipeline.Registry, exec *executor.Executor, defaultOrigin string, logger *slog.Logger) *PipelineService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &PipelineService{
		registry:      registry,
		executor:      exec,
		defaultOrigin: defaultOrigin,
		logger:        logger,
	}
}

// ListPipelines returns the registered pipelines sorted by name.
func (s *PipelineService) ListPipelines(_ context.Context) []ports.PipelineInfo {
	pipelines := s.registry.List()
	infos := make([]ports.PipelineInfo, 0, len(pipelines))
	for _, p := range pipelines {
		infos = append(infos, ports.PipelineInfo{
			Name:        p.Name,
			Description: p.Description,
			Actions:     p.ActionNames(),
		})
	}
	return infos
}

// ExecutePipeline decodes the request input and runs the named pipeline as a
// single operation.
func (s *PipelineService) ExecutePipeline(ctx context.Context, req ports.ExecuteRequest) (*ports.ExecuteResult, error) {
	p, err := s.registry.Get(req.Pipeline)
	if err != nil {
		return nil, err
	}

	input, err := p.DecodeInput(req.Input)
	if err != nil {
		return nil, err
	}

	id := strings.TrimSpace(req.OperationID)
	if id == "" {
		id = uuid.NewString()
	}
	origin := strings.TrimSpace(req.Origin)
	if origin == "" {
		origin = s.defaultOrigin
	}

	s.logger.InfoContext(ctx, "executing pipeline",
		slog.String("pipeline", p.Name),
		slog.String("operation_id", id),
		slog.String("origin", origin),
	)

	cfg := operation.Config{ID: id, Name: p.Name, Origin: origin}
	output, err := s.executor.Run(ctx, cfg, p.Actions, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "pipeline failed",
			slog.String("operation", "ExecutePipeline"),
			slog.String("pipeline", p.Name),
			slog.String("operation_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return &ports.ExecuteResult{OperationID: id, Pipeline: p.Name, Output: output}, nil
}
