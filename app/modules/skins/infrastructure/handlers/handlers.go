// Package skinshandlers recomputes round skins off match status updates.
package skinshandlers

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	skinsservice "github.com/copperhead-cup/cup-bot/app/modules/skins/application"
	"github.com/copperhead-cup/cup-bot/app/shared/events/matchevents"
	"github.com/copperhead-cup/cup-bot/app/shared/events/skinsevents"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
	"github.com/copperhead-cup/cup-bot/app/shared/utils"
	"github.com/copperhead-cup/cup-bot/app/shared/utils/handlerwrapper"
)

// Handlers is the skins module's message-handler surface.
type Handlers interface {
	HandleMatchStatusUpdated(msg *message.Message) ([]*message.Message, error)
}

// SkinsHandlers implements Handlers.
type SkinsHandlers struct {
	service skinsservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
	helpers utils.Helpers
	metrics metrics.SkinsMetrics
}

// NewSkinsHandlers creates the skins handler set.
func NewSkinsHandlers(
	service skinsservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	helpers utils.Helpers,
	skinsMetrics metrics.SkinsMetrics,
) *SkinsHandlers {
	return &SkinsHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		helpers: helpers,
		metrics: skinsMetrics,
	}
}

// HandleMatchStatusUpdated reruns the round's skins after any effective
// match recompute. Rounds without a skins game publish nothing.
func (h *SkinsHandlers) HandleMatchStatusUpdated(msg *message.Message) ([]*message.Message, error) {
	return handlerwrapper.Wrap(
		"HandleMatchStatusUpdated",
		h.logger,
		h.tracer,
		h.metrics,
		h.helpers,
		func(ctx context.Context, payload *matchevents.MatchStatusUpdatedPayloadV1) ([]handlerwrapper.Result, error) {
			outcome, err := h.service.RecomputeRoundSkins(ctx, payload.RoundID)
			if err != nil {
				return nil, err
			}
			if !outcome.Enabled {
				return nil, nil
			}
			return []handlerwrapper.Result{{
				Topic: skinsevents.RoundSkinsUpdatedV1,
				Payload: skinsevents.RoundSkinsUpdatedPayloadV1{
					RoundID:      outcome.RoundID,
					SkinsAwarded: len(outcome.Result.Skins),
					SkinValue:    outcome.Result.SkinValue,
				},
			}}, nil
		},
	)(msg)
}

var _ Handlers = (*SkinsHandlers)(nil)
