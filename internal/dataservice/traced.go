package dataservice

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"boatyard/internal/domain"
)

// Traced wraps a Service and records one span per call
type Traced struct {
	next   Service
	tracer oteltrace.Tracer
}

// NewTraced creates a tracing decorator around next
func NewTraced(next Service, tracer oteltrace.Tracer) *Traced {
	return &Traced{next: next, tracer: tracer}
}

func (t *Traced) FetchBoats(ctx context.Context, filter domain.Filter) ([]domain.Boat, error) {
	ctx, span := t.tracer.Start(ctx, "dataservice.FetchBoats",
		oteltrace.WithAttributes(attribute.String("boat.filter", string(filter))))
	defer span.End()

	boats, err := t.next.FetchBoats(ctx, filter)
	finish(span, err)
	span.SetAttributes(attribute.Int("boat.count", len(boats)))
	return boats, err
}

func (t *Traced) FetchReviews(ctx context.Context, boatID string) ([]domain.Review, error) {
	ctx, span := t.tracer.Start(ctx, "dataservice.FetchReviews",
		oteltrace.WithAttributes(attribute.String("boat.id", boatID)))
	defer span.End()

	reviews, err := t.next.FetchReviews(ctx, boatID)
	finish(span, err)
	span.SetAttributes(attribute.Int("review.count", len(reviews)))
	return reviews, err
}

func (t *Traced) UpdateBoats(ctx context.Context, batch domain.UpdateBatch) error {
	ctx, span := t.tracer.Start(ctx, "dataservice.UpdateBoats",
		oteltrace.WithAttributes(attribute.Int("batch.size", batch.Len())))
	defer span.End()

	err := t.next.UpdateBoats(ctx, batch)
	finish(span, err)
	return err
}

func (t *Traced) FetchBoatTypes(ctx context.Context) ([]domain.BoatType, error) {
	ctx, span := t.tracer.Start(ctx, "dataservice.FetchBoatTypes")
	defer span.End()

	types, err := t.next.FetchBoatTypes(ctx)
	finish(span, err)
	return types, err
}

func (t *Traced) CreateBoat(ctx context.Context, boat domain.Boat) (domain.Boat, error) {
	ctx, span := t.tracer.Start(ctx, "dataservice.CreateBoat",
		oteltrace.WithAttributes(attribute.String("boat.type", boat.BoatTypeID)))
	defer span.End()

	created, err := t.next.CreateBoat(ctx, boat)
	finish(span, err)
	if err == nil {
		span.SetAttributes(attribute.String("boat.id", created.ID))
	}
	return created, err
}

func finish(span oteltrace.Span, err error) {
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, MessageOf(err))
}
