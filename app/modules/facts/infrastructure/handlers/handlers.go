// Package facthandlers converts match lifecycle events into fact rebuilds
// and deletions.
package facthandlers

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	factservice "github.com/copperhead-cup/cup-bot/app/modules/facts/application"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
	"github.com/copperhead-cup/cup-bot/app/shared/utils"
)

// Handlers is the facts module's message-handler surface.
type Handlers interface {
	HandleMatchStatusUpdated(msg *message.Message) ([]*message.Message, error)
	HandleMatchClosed(msg *message.Message) ([]*message.Message, error)
	HandleMatchReopened(msg *message.Message) ([]*message.Message, error)
	HandleMatchDeleted(msg *message.Message) ([]*message.Message, error)
}

// FactHandlers implements Handlers.
type FactHandlers struct {
	service factservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
	helpers utils.Helpers
	metrics metrics.FactMetrics
}

// NewFactHandlers creates the fact handler set.
func NewFactHandlers(
	service factservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	helpers utils.Helpers,
	factMetrics metrics.FactMetrics,
) *FactHandlers {
	return &FactHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		helpers: helpers,
		metrics: factMetrics,
	}
}

var _ Handlers = (*FactHandlers)(nil)
