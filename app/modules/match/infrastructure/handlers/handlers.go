// Package matchhandlers converts match-module events into service calls and
// service outcomes back into outbound events.
package matchhandlers

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	matchservice "github.com/copperhead-cup/cup-bot/app/modules/match/application"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
	"github.com/copperhead-cup/cup-bot/app/shared/utils"
)

// Handlers is the match module's message-handler surface.
type Handlers interface {
	HandleHoleUpsertRequest(msg *message.Message) ([]*message.Message, error)
	HandleRecomputeRequest(msg *message.Message) ([]*message.Message, error)
}

// MatchHandlers implements Handlers.
type MatchHandlers struct {
	service matchservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
	helpers utils.Helpers
	metrics metrics.MatchMetrics
}

// NewMatchHandlers creates the match handler set.
func NewMatchHandlers(
	service matchservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	helpers utils.Helpers,
	matchMetrics metrics.MatchMetrics,
) *MatchHandlers {
	return &MatchHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		helpers: helpers,
		metrics: matchMetrics,
	}
}

var _ Handlers = (*MatchHandlers)(nil)
