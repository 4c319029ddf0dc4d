package facthandlers

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/copperhead-cup/cup-bot/app/shared/events/factevents"
	"github.com/copperhead-cup/cup-bot/app/shared/events/matchevents"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
	"github.com/copperhead-cup/cup-bot/app/shared/utils/handlerwrapper"
)

// HandleMatchClosed rebuilds the closed match's fact set. The rebuilt event
// carries the affected players so the stats module knows which scopes moved.
func (h *FactHandlers) HandleMatchClosed(msg *message.Message) ([]*message.Message, error) {
	return handlerwrapper.Wrap(
		"HandleMatchClosed",
		h.logger,
		h.tracer,
		h.metrics,
		h.helpers,
		func(ctx context.Context, payload *matchevents.MatchClosedPayloadV1) ([]handlerwrapper.Result, error) {
			return h.rebuildFacts(ctx, payload.MatchID)
		},
	)(msg)
}

// HandleMatchStatusUpdated rebuilds facts on every effective recompute, not
// just the close transition: a hole edit on an already-closed match changes
// scoring totals and the scoreline without reopening it, and the stored
// facts have to follow.
func (h *FactHandlers) HandleMatchStatusUpdated(msg *message.Message) ([]*message.Message, error) {
	return handlerwrapper.Wrap(
		"HandleMatchStatusUpdated",
		h.logger,
		h.tracer,
		h.metrics,
		h.helpers,
		func(ctx context.Context, payload *matchevents.MatchStatusUpdatedPayloadV1) ([]handlerwrapper.Result, error) {
			if !payload.Closed {
				// Open matches carry no facts; the reopened and deleted
				// topics own the delete path.
				return nil, nil
			}
			return h.rebuildFacts(ctx, payload.MatchID)
		},
	)(msg)
}

func (h *FactHandlers) rebuildFacts(ctx context.Context, matchID sharedtypes.MatchID) ([]handlerwrapper.Result, error) {
	result, err := h.service.RebuildFacts(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if result.Failure != nil {
		return []handlerwrapper.Result{
			{Topic: factevents.FactBuildFailedV1, Payload: *result.Failure},
		}, nil
	}

	out := *result.Success
	if len(out.PlayerIDs) == 0 {
		return nil, nil
	}

	topic := factevents.PlayerFactsRebuiltV1
	if out.Deleted {
		// The close was undone before we ran; stale facts were
		// dropped instead.
		topic = factevents.PlayerFactsDeletedV1
	}
	return []handlerwrapper.Result{{
		Topic: topic,
		Payload: factevents.PlayerFactsRebuiltPayloadV1{
			MatchID:      out.MatchID,
			RoundID:      out.RoundID,
			TournamentID: out.TournamentID,
			PlayerIDs:    out.PlayerIDs,
		},
	}}, nil
}

// HandleMatchReopened deletes the reopened match's facts.
func (h *FactHandlers) HandleMatchReopened(msg *message.Message) ([]*message.Message, error) {
	return handlerwrapper.Wrap(
		"HandleMatchReopened",
		h.logger,
		h.tracer,
		h.metrics,
		h.helpers,
		func(ctx context.Context, payload *matchevents.MatchReopenedPayloadV1) ([]handlerwrapper.Result, error) {
			return h.deleteFacts(ctx, payload.MatchID, payload.RoundID, payload.TournamentID)
		},
	)(msg)
}

// HandleMatchDeleted deletes the removed match's facts.
func (h *FactHandlers) HandleMatchDeleted(msg *message.Message) ([]*message.Message, error) {
	return handlerwrapper.Wrap(
		"HandleMatchDeleted",
		h.logger,
		h.tracer,
		h.metrics,
		h.helpers,
		func(ctx context.Context, payload *matchevents.MatchDeletedPayloadV1) ([]handlerwrapper.Result, error) {
			return h.deleteFacts(ctx, payload.MatchID, payload.RoundID, payload.TournamentID)
		},
	)(msg)
}

func (h *FactHandlers) deleteFacts(ctx context.Context, matchID sharedtypes.MatchID, roundID sharedtypes.RoundID, tournamentID sharedtypes.TournamentID) ([]handlerwrapper.Result, error) {
	result, err := h.service.DeleteFacts(ctx, matchID, roundID, tournamentID)
	if err != nil {
		return nil, err
	}

	if result.Failure != nil {
		return []handlerwrapper.Result{
			{Topic: factevents.FactBuildFailedV1, Payload: *result.Failure},
		}, nil
	}

	out := *result.Success
	if len(out.PlayerIDs) == 0 {
		// Nothing was stored; stats have nothing to refold.
		return nil, nil
	}
	return []handlerwrapper.Result{
		{Topic: factevents.PlayerFactsDeletedV1, Payload: out},
	}, nil
}
