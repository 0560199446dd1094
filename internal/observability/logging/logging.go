// Package logging builds the process-wide slog logger with service metadata and trace correlation.
package logging

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// Module names the component that emitted a log record.
type Module string

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type Options struct {
	Service      ServiceInfo
	Environment  Environment
	Level        slog.Leveler
	Module       Module
	GCPProjectID string
}

// NewLogger returns a text logger in dev and a JSON logger elsewhere. Every record carries the
// service attributes and, when the context holds a span, its trace and span ids.
func NewLogger(w io.Writer, opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	var base slog.Handler
	if opts.Environment == EnvDev {
		base = slog.NewTextHandler(w, handlerOpts)
	} else {
		base = slog.NewJSONHandler(w, handlerOpts)
	}

	attrs := []slog.Attr{
		slog.String("service", opts.Service.Name),
		slog.String("version", opts.Service.Version),
		slog.String("env", string(opts.Environment)),
	}
	if opts.Service.Revision != "" {
		attrs = append(attrs, slog.String("revision", opts.Service.Revision))
	}
	if opts.Module != "" {
		attrs = append(attrs, slog.String("module", string(opts.Module)))
	}

	return slog.New(&traceHandler{
		Handler:   base.WithAttrs(attrs),
		projectID: opts.GCPProjectID,
	})
}

type traceHandler struct {
	slog.Handler
	projectID string
}

func (h *traceHandler) Handle(ctx context.Context, record slog.Record) error {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		record.AddAttrs(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		)
		record.AddAttrs(gcpTraceAttrs(spanCtx, h.projectID)...)
	}

	return h.Handler.Handle(ctx, record)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithAttrs(attrs), projectID: h.projectID}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithGroup(name), projectID: h.projectID}
}

// WithModule returns a logger tagged with a different module.
func WithModule(logger *slog.Logger, module Module) *slog.Logger {
	return logger.With(slog.String("module", string(module)))
}
