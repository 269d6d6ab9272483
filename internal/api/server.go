package api

import (
	"context"

	"hookgate/internal/ingest"
	"hookgate/internal/model"
	"hookgate/internal/observability"
	"hookgate/internal/processor"

	"github.com/go-logr/logr"
)

type RateLimitPolicy struct {
	Enabled         bool
	IngestPerMinute int
}

type ServerOptions struct {
	Registry  *ingest.Registry
	Processor processor.Processor
	Logger    logr.Logger
	Rate      RateLimitPolicy
	Metrics   *observability.WebhookMetrics
}

type Server struct {
	registry    *ingest.Registry
	processor   processor.Processor
	logger      logr.Logger
	rateLimiter *ingestRateLimiter
	metrics     *observability.WebhookMetrics
}

func NewServer(opts ServerOptions) *Server {
	reg := opts.Registry
	if reg == nil {
		reg = ingest.NewRegistry()
	}
	proc := opts.Processor
	if proc == nil {
		proc = processor.Func(func(context.Context, model.WebhookEvent) (processor.Result, error) {
			return processor.Result{Success: true, Message: "webhook received"}, nil
		})
	}
	return &Server{
		registry:    reg,
		processor:   proc,
		logger:      opts.Logger,
		rateLimiter: newIngestRateLimiter(opts.Rate),
		metrics:     opts.Metrics,
	}
}

func (s *Server) observe(provider model.Provider, outcome string) {
	if s.metrics != nil {
		s.metrics.Observe(string(provider), outcome)
	}
}
