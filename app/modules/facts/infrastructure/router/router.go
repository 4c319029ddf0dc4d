// Package factrouter subscribes the facts module's handlers to the match
// lifecycle topics and publishes whatever they emit.
package factrouter

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/copperhead-cup/cup-bot/app/eventbus"
	factservice "github.com/copperhead-cup/cup-bot/app/modules/facts/application"
	facthandlers "github.com/copperhead-cup/cup-bot/app/modules/facts/infrastructure/handlers"
	"github.com/copperhead-cup/cup-bot/app/shared/events/matchevents"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/attr"
	sharedmetrics "github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
	"github.com/copperhead-cup/cup-bot/app/shared/utils"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

// FactRouter wires fact handlers into the shared watermill router.
type FactRouter struct {
	logger             *slog.Logger
	Router             *message.Router
	subscriber         eventbus.EventBus
	publisher          eventbus.EventBus
	helper             utils.Helpers
	tracer             trace.Tracer
	metricsBuilder     *metrics.PrometheusMetricsBuilder
	prometheusRegistry *prometheus.Registry
	metricsEnabled     bool
}

func NewFactRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	helper utils.Helpers,
	tracer trace.Tracer,
	prometheusRegistry *prometheus.Registry,
) *FactRouter {
	inTestEnv := os.Getenv(TestEnvironmentFlag) == TestEnvironmentValue

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && !inTestEnv {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}
	return &FactRouter{
		logger:             logger,
		Router:             router,
		subscriber:         subscriber,
		publisher:          publisher,
		helper:             helper,
		tracer:             tracer,
		metricsBuilder:     metricsBuilder,
		prometheusRegistry: prometheusRegistry,
		metricsEnabled:     prometheusRegistry != nil && !inTestEnv,
	}
}

// Configure adds middleware and registers the fact handlers.
func (r *FactRouter) Configure(routerCtx context.Context, service factservice.Service, factMetrics sharedmetrics.FactMetrics) error {
	if r.metricsEnabled && r.metricsBuilder != nil {
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	handlers := facthandlers.NewFactHandlers(service, r.logger, r.tracer, r.helper, factMetrics)

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{MaxRetries: 3}.Middleware,
	)

	if err := r.RegisterHandlers(routerCtx, handlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

// RegisterHandlers subscribes each topic and publishes handler output to the
// topic each outbound message carries in metadata.
func (r *FactRouter) RegisterHandlers(ctx context.Context, handlers facthandlers.Handlers) error {
	eventsToHandlers := map[string]message.HandlerFunc{
		matchevents.MatchStatusUpdatedV1: handlers.HandleMatchStatusUpdated,
		matchevents.MatchClosedV1:        handlers.HandleMatchClosed,
		matchevents.MatchReopenedV1:      handlers.HandleMatchReopened,
		matchevents.MatchDeletedV1:       handlers.HandleMatchDeleted,
	}

	for topic, handlerFunc := range eventsToHandlers {
		handlerName := fmt.Sprintf("facts.%s", topic)
		r.Router.AddHandler(
			handlerName,
			topic,
			r.subscriber,
			"",
			nil,
			func(msg *message.Message) ([]*message.Message, error) {
				messages, err := handlerFunc(msg)
				if err != nil {
					r.logger.ErrorContext(ctx, "Error processing message",
						attr.String("message_id", msg.UUID),
						attr.Any("error", err),
					)
					return nil, err
				}
				for _, m := range messages {
					publishTopic := m.Metadata.Get("topic")
					if publishTopic == "" {
						r.logger.Error("message missing publish topic, dropped",
							attr.String("handler", handlerName),
							attr.String("message_id", m.UUID),
						)
						continue
					}
					if err := r.publisher.Publish(publishTopic, m); err != nil {
						return nil, fmt.Errorf("failed to publish to %s: %w", publishTopic, err)
					}
				}
				return nil, nil
			},
		)
	}
	return nil
}

func (r *FactRouter) Close() error {
	return r.Router.Close()
}
