package matchhandlers

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	matchservice "github.com/copperhead-cup/cup-bot/app/modules/match/application"
	"github.com/copperhead-cup/cup-bot/app/shared/events/matchevents"
	"github.com/copperhead-cup/cup-bot/app/shared/utils/handlerwrapper"
)

// HandleHoleUpsertRequest writes one hole entry and chains into a recompute
// request. Invalid entries surface as a recompute-failed event rather than a
// redelivery loop.
func (h *MatchHandlers) HandleHoleUpsertRequest(msg *message.Message) ([]*message.Message, error) {
	return handlerwrapper.Wrap(
		"HandleHoleUpsertRequest",
		h.logger,
		h.tracer,
		h.metrics,
		h.helpers,
		func(ctx context.Context, payload *matchevents.MatchHoleUpsertRequestedPayloadV1) ([]handlerwrapper.Result, error) {
			result, err := h.service.UpsertHoleScore(ctx, payload.MatchID, payload.HoleNumber, matchservice.HoleEntry{
				TeamAGross:        payload.TeamAGross,
				TeamBGross:        payload.TeamBGross,
				TeamAPlayersGross: payload.TeamAPlayersGross,
				TeamBPlayersGross: payload.TeamBPlayersGross,
				TeamADrive:        payload.TeamADrive,
				TeamBDrive:        payload.TeamBDrive,
				Clear:             payload.Clear,
			})
			if err != nil {
				return nil, err
			}

			if result.Failure != nil {
				return []handlerwrapper.Result{
					{Topic: matchevents.MatchRecomputeFailedV1, Payload: *result.Failure},
				}, nil
			}

			return []handlerwrapper.Result{
				{Topic: matchevents.MatchRecomputeRequestedV1, Payload: *result.Success},
			}, nil
		},
	)(msg)
}
