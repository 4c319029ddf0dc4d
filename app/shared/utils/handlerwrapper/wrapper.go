// Package handlerwrapper provides the common tracing/logging/metrics wrapper
// every module's watermill handlers run inside.
package handlerwrapper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/copperhead-cup/cup-bot/app/shared/observability/attr"
	"github.com/copperhead-cup/cup-bot/app/shared/utils"
)

// Result is one outbound event produced by a handler. The router publishes
// it to Topic.
type Result struct {
	Topic   string
	Payload any
}

// MetricsRecorder is the slice of the module metrics interfaces the wrapper
// needs; every module's metrics satisfy it.
type MetricsRecorder interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
}

// Wrap turns a typed payload handler into a watermill message.HandlerFunc.
// It unmarshals the payload, threads the correlation ID into the context,
// records attempt/outcome metrics and a span, and converts the returned
// Results into messages carrying their publish topic in metadata.
func Wrap[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics MetricsRecorder,
	helpers utils.Helpers,
	fn func(ctx context.Context, payload *T) ([]Result, error),
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx, span := tracer.Start(msg.Context(), handlerName, trace.WithAttributes(
			attribute.String("handler", handlerName),
			attribute.String("message_id", msg.UUID),
		))
		defer span.End()

		correlationID := middleware.MessageCorrelationID(msg)
		ctx = attr.WithCorrelationID(ctx, correlationID)

		metrics.RecordOperationAttempt(ctx, handlerName)
		start := time.Now()
		defer func() {
			metrics.RecordOperationDuration(ctx, handlerName, time.Since(start))
		}()

		logger.InfoContext(ctx, handlerName+" triggered",
			attr.ExtractCorrelationID(ctx),
			attr.String("message_id", msg.UUID),
		)

		var payload T
		if err := helpers.UnmarshalPayload(msg, &payload); err != nil {
			logger.ErrorContext(ctx, "Failed to unmarshal payload",
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			metrics.RecordOperationFailure(ctx, handlerName)
			span.RecordError(err)
			return nil, fmt.Errorf("%s: %w", handlerName, err)
		}

		results, err := fn(ctx, &payload)
		if err != nil {
			logger.ErrorContext(ctx, "Error in "+handlerName,
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			metrics.RecordOperationFailure(ctx, handlerName)
			span.RecordError(err)
			return nil, err
		}

		messages := make([]*message.Message, 0, len(results))
		for _, result := range results {
			out, err := helpers.CreateResultMessage(msg, result.Payload, result.Topic)
			if err != nil {
				metrics.RecordOperationFailure(ctx, handlerName)
				return nil, err
			}
			messages = append(messages, out)
		}

		metrics.RecordOperationSuccess(ctx, handlerName)
		return messages, nil
	}
}
