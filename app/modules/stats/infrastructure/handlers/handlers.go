// Package stathandlers converts fact-change events into scope refolds.
package stathandlers

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	statservice "github.com/copperhead-cup/cup-bot/app/modules/stats/application"
	"github.com/copperhead-cup/cup-bot/app/shared/events/factevents"
	"github.com/copperhead-cup/cup-bot/app/shared/events/statevents"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
	"github.com/copperhead-cup/cup-bot/app/shared/utils"
	"github.com/copperhead-cup/cup-bot/app/shared/utils/handlerwrapper"
)

// Handlers is the stats module's message-handler surface.
type Handlers interface {
	HandleFactsRebuilt(msg *message.Message) ([]*message.Message, error)
	HandleFactsDeleted(msg *message.Message) ([]*message.Message, error)
}

// StatHandlers implements Handlers.
type StatHandlers struct {
	service statservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
	helpers utils.Helpers
	metrics metrics.StatMetrics
}

// NewStatHandlers creates the stat handler set.
func NewStatHandlers(
	service statservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	helpers utils.Helpers,
	statMetrics metrics.StatMetrics,
) *StatHandlers {
	return &StatHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		helpers: helpers,
		metrics: statMetrics,
	}
}

// HandleFactsRebuilt refolds the affected players' scopes after a fact
// rebuild. Rebuild and delete carry the same shape and trigger the same
// refold; only the surviving fact set differs.
func (h *StatHandlers) HandleFactsRebuilt(msg *message.Message) ([]*message.Message, error) {
	return handlerwrapper.Wrap(
		"HandleFactsRebuilt",
		h.logger,
		h.tracer,
		h.metrics,
		h.helpers,
		func(ctx context.Context, payload *factevents.PlayerFactsRebuiltPayloadV1) ([]handlerwrapper.Result, error) {
			return h.refold(ctx, statservice.RefoldRequest{
				RoundID:      payload.RoundID,
				TournamentID: payload.TournamentID,
				PlayerIDs:    payload.PlayerIDs,
			})
		},
	)(msg)
}

// HandleFactsDeleted refolds the affected players' scopes after facts were
// removed.
func (h *StatHandlers) HandleFactsDeleted(msg *message.Message) ([]*message.Message, error) {
	return handlerwrapper.Wrap(
		"HandleFactsDeleted",
		h.logger,
		h.tracer,
		h.metrics,
		h.helpers,
		func(ctx context.Context, payload *factevents.PlayerFactsDeletedPayloadV1) ([]handlerwrapper.Result, error) {
			return h.refold(ctx, statservice.RefoldRequest{
				RoundID:      payload.RoundID,
				TournamentID: payload.TournamentID,
				PlayerIDs:    payload.PlayerIDs,
			})
		},
	)(msg)
}

func (h *StatHandlers) refold(ctx context.Context, req statservice.RefoldRequest) ([]handlerwrapper.Result, error) {
	refolds, err := h.service.RefoldScopes(ctx, req)
	if err != nil {
		return nil, err
	}

	events := make([]handlerwrapper.Result, 0, len(refolds))
	for _, refold := range refolds {
		scopes := append(refold.Recomputed, refold.Deleted...)
		if len(scopes) == 0 {
			continue
		}
		events = append(events, handlerwrapper.Result{
			Topic: statevents.PlayerStatsRecomputedV1,
			Payload: statevents.PlayerStatsRecomputedPayloadV1{
				PlayerID: refold.PlayerID,
				Scopes:   scopes,
			},
		})
	}
	return events, nil
}

var _ Handlers = (*StatHandlers)(nil)
