package tracing

import (
	"context"

	"github.com/programme-lv/writing/writing/domain"
	"github.com/programme-lv/writing/writing/srvc"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SubmRepoTracer wraps a SubmRepo with a client span per query.
type SubmRepoTracer struct {
	repo   srvc.SubmRepo
	driver string
	tracer trace.Tracer
}

func NewSubmRepoTracer(repo srvc.SubmRepo, driver string) *SubmRepoTracer {
	return &SubmRepoTracer{
		repo:   repo,
		driver: driver,
		tracer: otel.Tracer(tracerName),
	}
}

func (t *SubmRepoTracer) ListByUser(ctx context.Context, userID string) ([]domain.WritingSubm, error) {
	ctx, span := t.tracer.Start(ctx, "SubmRepo.ListByUser", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(attribute.String("db.system", t.driver))

	subms, err := t.repo.ListByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(subms)))
	return subms, nil
}
