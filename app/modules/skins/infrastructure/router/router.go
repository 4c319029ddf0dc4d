// Package skinsrouter subscribes the skins module's handlers to the match
// status topic and publishes whatever they emit.
package skinsrouter

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
	skinsservice "github.com/copperhead-cup/cup-bot/app/modules/skins/application"
	skinshandlers "github.com/copperhead-cup/cup-bot/app/modules/skins/infrastructure/handlers"
	"github.com/copperhead-cup/cup-bot/app/shared/events/matchevents"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/attr"
	sharedmetrics "github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
	"github.com/copperhead-cup/cup-bot/app/shared/utils"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

// SkinsRouter wires skins handlers into the shared watermill router.
type SkinsRouter struct {
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

func NewSkinsRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	helper utils.Helpers,
	tracer trace.Tracer,
	prometheusRegistry *prometheus.Registry,
) *SkinsRouter {
	inTestEnv := os.Getenv(TestEnvironmentFlag) == TestEnvironmentValue

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && !inTestEnv {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}
	return &SkinsRouter{
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

// Configure adds middleware and registers the skins handlers.
func (r *SkinsRouter) Configure(routerCtx context.Context, service skinsservice.Service, skinsMetrics sharedmetrics.SkinsMetrics) error {
	if r.metricsEnabled && r.metricsBuilder != nil {
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	handlers := skinshandlers.NewSkinsHandlers(service, r.logger, r.tracer, r.helper, skinsMetrics)

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
func (r *SkinsRouter) RegisterHandlers(ctx context.Context, handlers skinshandlers.Handlers) error {
	eventsToHandlers := map[string]message.HandlerFunc{
		matchevents.MatchStatusUpdatedV1: handlers.HandleMatchStatusUpdated,
	}

	for topic, handlerFunc := range eventsToHandlers {
		handlerName := fmt.Sprintf("skins.%s", topic)
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

func (r *SkinsRouter) Close() error {
	return r.Router.Close()
}
