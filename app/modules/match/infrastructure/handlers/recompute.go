package matchhandlers

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	matchservice "github.com/copperhead-cup/cup-bot/app/modules/match/application"
	"github.com/copperhead-cup/cup-bot/app/shared/events/matchevents"
	"github.com/copperhead-cup/cup-bot/app/shared/utils/handlerwrapper"
)

// HandleRecomputeRequest runs the recompute and fans out the resulting
// events: a status update on every effective run, plus a closed or reopened
// event on a lifecycle transition. A hash-skipped run publishes nothing.
func (h *MatchHandlers) HandleRecomputeRequest(msg *message.Message) ([]*message.Message, error) {
	return handlerwrapper.Wrap(
		"HandleRecomputeRequest",
		h.logger,
		h.tracer,
		h.metrics,
		h.helpers,
		func(ctx context.Context, payload *matchevents.MatchRecomputeRequestedPayloadV1) ([]handlerwrapper.Result, error) {
			result, err := h.service.RecomputeMatch(ctx, payload.MatchID, payload.Force)
			if err != nil {
				return nil, err
			}

			if result.Failure != nil {
				return []handlerwrapper.Result{
					{Topic: matchevents.MatchRecomputeFailedV1, Payload: *result.Failure},
				}, nil
			}

			out := *result.Success
			if out.Skipped {
				return nil, nil
			}

			events := []handlerwrapper.Result{{
				Topic: matchevents.MatchStatusUpdatedV1,
				Payload: matchevents.MatchStatusUpdatedPayloadV1{
					MatchID:      out.MatchID,
					RoundID:      out.RoundID,
					TournamentID: out.TournamentID,
					Format:       out.Format,
					Closed:       out.Status.Closed,
					Winner:       out.Result.Winner,
					Margin:       out.Status.Margin,
					Thru:         out.Status.Thru,
					Scoreline:    out.Result.Scoreline,
				},
			}}

			switch out.Transition {
			case matchservice.TransitionClosed:
				events = append(events, handlerwrapper.Result{
					Topic: matchevents.MatchClosedV1,
					Payload: matchevents.MatchClosedPayloadV1{
						MatchID:      out.MatchID,
						RoundID:      out.RoundID,
						TournamentID: out.TournamentID,
					},
				})
			case matchservice.TransitionReopened:
				events = append(events, handlerwrapper.Result{
					Topic: matchevents.MatchReopenedV1,
					Payload: matchevents.MatchReopenedPayloadV1{
						MatchID:      out.MatchID,
						RoundID:      out.RoundID,
						TournamentID: out.TournamentID,
					},
				})
			}
			return events, nil
		},
	)(msg)
}
