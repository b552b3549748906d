package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "fulfillment/commands"

// ApplyTransitionCommandHandler is the single write path for state changes.
// For one order it runs at most one transition at a time and commits it only
// if the stored version did not move since it was loaded.
//
// Example:
//
//	handler := NewApplyTransitionCommandHandler(uowFactory, locker, notifier, metrics, engine, time.Now)
//	updated, err := handler.Handle(ctx, cmd)
//	if errs.IsRetryable(err) {
//	    // reload and retry
//	}
type ApplyTransitionCommandHandler struct {
	writer orderWriter
	engine services.TransitionEngine
	tracer trace.Tracer
}

func NewApplyTransitionCommandHandler(
	uowFactory OrderUoWFactory,
	locker OrderLocker,
	publisher EventPublisher,
	observer TransitionObserver,
	engine services.TransitionEngine,
	clock Clock,
) ApplyTransitionCommandHandler {
	return ApplyTransitionCommandHandler{
		writer: newOrderWriter(uowFactory, locker, publisher, observer, clock),
		engine: engine,
		tracer: otel.Tracer(tracerName),
	}
}

// Handle applies the transition and returns the committed order. Asking for
// the state a machine is already in returns the stored order unchanged: no
// version bump and no events.
func (h *ApplyTransitionCommandHandler) Handle(ctx context.Context, cmd ApplyTransitionCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := h.tracer.Start(ctx, "app.ApplyTransition", trace.WithAttributes(
		attribute.Int64("order.id", cmd.OrderID()),
		attribute.String("transition.machine", cmd.Machine().String()),
		attribute.String("transition.target", cmd.Target().String()),
		attribute.String("transition.actor", cmd.Actor().String()),
	))
	defer span.End()

	replayed := false
	updated, err := h.writer.write(ctx, cmd.OrderID(), func(current *order.Order) (*order.Order, error) {
		req := services.TransitionRequest{
			Machine: cmd.Machine(),
			Target:  cmd.Target(),
			Details: cmd.Details(),
			Actor:   cmd.Actor(),
		}
		if h.engine.IsNoOp(current, req) {
			replayed = true
			return nil, nil
		}
		if expected, ok := cmd.ExpectedVersion(); ok && expected != current.Version() {
			return nil, errs.NewVersionConflictError(current.ID(), expected, current.Version())
		}
		return h.engine.Plan(current, req, h.writer.clock())
	})

	outcome := transitionOutcome(err, replayed)
	h.writer.observer.ObserveTransition(cmd.Machine().String(), outcome)
	span.SetAttributes(attribute.String("transition.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transition rejected")
		return nil, err
	}
	span.SetAttributes(attribute.Int64("order.version", updated.Version()))
	return updated, nil
}

func transitionOutcome(err error, replayed bool) string {
	switch {
	case err == nil && replayed:
		return metrics.OutcomeReplayed
	case err == nil:
		return metrics.OutcomeApplied
	case errors.Is(err, errs.ErrIllegalTransition):
		return metrics.OutcomeIllegal
	case errors.Is(err, errs.ErrConsistencyViolation):
		return metrics.OutcomeConsistencyViolation
	case errors.Is(err, errs.ErrVersionConflict):
		return metrics.OutcomeVersionConflict
	case errors.Is(err, errs.ErrLockTimeout):
		return metrics.OutcomeLockTimeout
	case errors.Is(err, errs.ErrObjectNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
