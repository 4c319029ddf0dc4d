package matchhandlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	matchservice "github.com/copperhead-cup/cup-bot/app/modules/match/application"
	matchdomain "github.com/copperhead-cup/cup-bot/app/modules/match/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/events/matchevents"
	"github.com/copperhead-cup/cup-bot/app/shared/observability"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
	"github.com/copperhead-cup/cup-bot/app/shared/utils"
	"github.com/copperhead-cup/cup-bot/app/shared/utils/results"
)

func newHandlers(service matchservice.Service) *MatchHandlers {
	logger := observability.NoOpLogger
	return NewMatchHandlers(
		service,
		logger,
		noop.NewTracerProvider().Tracer("test"),
		utils.NewHelpers(logger),
		metrics.NoOpMatchMetrics{},
	)
}

func eventMessage(t *testing.T, payload any) *message.Message {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), data)
}

func topicsOf(msgs []*message.Message) []string {
	topics := make([]string, len(msgs))
	for i, m := range msgs {
		topics[i] = m.Metadata.Get("topic")
	}
	return topics
}

func TestHandleRecomputeRequest_ClosedTransition(t *testing.T) {
	matchID := sharedtypes.MatchID(uuid.New())
	roundID := sharedtypes.RoundID(uuid.New())

	service := &FakeMatchService{
		RecomputeMatchFunc: func(ctx context.Context, id sharedtypes.MatchID, force bool) (matchservice.RecomputeResult, error) {
			require.Equal(t, matchID, id)
			require.False(t, force)
			leader := sharedtypes.TeamA
			return results.SuccessResult[matchservice.RecomputeOutcome, matchevents.MatchRecomputeFailedPayloadV1](
				matchservice.RecomputeOutcome{
					MatchID:    matchID,
					RoundID:    roundID,
					Format:     sharedtypes.FormatSingles,
					Status:     matchdomain.MatchStatus{Leader: &leader, Margin: 3, Thru: 17, Closed: true},
					Result:     matchdomain.MatchResult{Winner: sharedtypes.WinnerTeamA, Scoreline: "3&1"},
					Transition: matchservice.TransitionClosed,
				}), nil
		},
	}

	msgs, err := newHandlers(service).HandleRecomputeRequest(
		eventMessage(t, matchevents.MatchRecomputeRequestedPayloadV1{MatchID: matchID}))
	require.NoError(t, err)
	require.Equal(t, []string{
		matchevents.MatchStatusUpdatedV1,
		matchevents.MatchClosedV1,
	}, topicsOf(msgs))

	var status matchevents.MatchStatusUpdatedPayloadV1
	require.NoError(t, json.Unmarshal(msgs[0].Payload, &status))
	require.True(t, status.Closed)
	require.Equal(t, "3&1", status.Scoreline)
	require.Equal(t, roundID, status.RoundID)
}

func TestHandleRecomputeRequest_ReopenedTransition(t *testing.T) {
	matchID := sharedtypes.MatchID(uuid.New())

	service := &FakeMatchService{
		RecomputeMatchFunc: func(ctx context.Context, id sharedtypes.MatchID, force bool) (matchservice.RecomputeResult, error) {
			return results.SuccessResult[matchservice.RecomputeOutcome, matchevents.MatchRecomputeFailedPayloadV1](
				matchservice.RecomputeOutcome{
					MatchID:    matchID,
					Transition: matchservice.TransitionReopened,
				}), nil
		},
	}

	msgs, err := newHandlers(service).HandleRecomputeRequest(
		eventMessage(t, matchevents.MatchRecomputeRequestedPayloadV1{MatchID: matchID}))
	require.NoError(t, err)
	require.Equal(t, []string{
		matchevents.MatchStatusUpdatedV1,
		matchevents.MatchReopenedV1,
	}, topicsOf(msgs))
}

func TestHandleRecomputeRequest_SkippedPublishesNothing(t *testing.T) {
	service := &FakeMatchService{
		RecomputeMatchFunc: func(ctx context.Context, id sharedtypes.MatchID, force bool) (matchservice.RecomputeResult, error) {
			return results.SuccessResult[matchservice.RecomputeOutcome, matchevents.MatchRecomputeFailedPayloadV1](
				matchservice.RecomputeOutcome{MatchID: id, Skipped: true}), nil
		},
	}

	msgs, err := newHandlers(service).HandleRecomputeRequest(
		eventMessage(t, matchevents.MatchRecomputeRequestedPayloadV1{MatchID: sharedtypes.MatchID(uuid.New())}))
	require.NoError(t, err)
	require.Empty(t, msgs)
}

func TestHandleRecomputeRequest_ForcedBypassesHashSkip(t *testing.T) {
	matchID := sharedtypes.MatchID(uuid.New())

	service := &FakeMatchService{
		RecomputeMatchFunc: func(ctx context.Context, id sharedtypes.MatchID, force bool) (matchservice.RecomputeResult, error) {
			require.True(t, force, "forced request must reach the service with force set")
			return results.SuccessResult[matchservice.RecomputeOutcome, matchevents.MatchRecomputeFailedPayloadV1](
				matchservice.RecomputeOutcome{
					MatchID: matchID,
					Format:  sharedtypes.FormatSingles,
				}), nil
		},
	}

	msgs, err := newHandlers(service).HandleRecomputeRequest(
		eventMessage(t, matchevents.MatchRecomputeRequestedPayloadV1{MatchID: matchID, Force: true}))
	require.NoError(t, err)
	require.Equal(t, []string{matchevents.MatchStatusUpdatedV1}, topicsOf(msgs))
}

func TestHandleRecomputeRequest_FailurePublishesFailedEvent(t *testing.T) {
	service := &FakeMatchService{
		RecomputeMatchFunc: func(ctx context.Context, id sharedtypes.MatchID, force bool) (matchservice.RecomputeResult, error) {
			return results.FailureResult[matchservice.RecomputeOutcome, matchevents.MatchRecomputeFailedPayloadV1](
				matchevents.MatchRecomputeFailedPayloadV1{MatchID: id, Reason: "match not found"}), nil
		},
	}

	msgs, err := newHandlers(service).HandleRecomputeRequest(
		eventMessage(t, matchevents.MatchRecomputeRequestedPayloadV1{MatchID: sharedtypes.MatchID(uuid.New())}))
	require.NoError(t, err)
	require.Equal(t, []string{matchevents.MatchRecomputeFailedV1}, topicsOf(msgs))
}

func TestHandleHoleUpsertRequest_ChainsIntoRecompute(t *testing.T) {
	matchID := sharedtypes.MatchID(uuid.New())
	var gotEntry matchservice.HoleEntry
	var gotHole int

	service := &FakeMatchService{
		UpsertHoleScoreFunc: func(ctx context.Context, id sharedtypes.MatchID, holeNumber int, entry matchservice.HoleEntry) (matchservice.UpsertHoleResult, error) {
			gotHole = holeNumber
			gotEntry = entry
			return results.SuccessResult[matchevents.MatchRecomputeRequestedPayloadV1, matchevents.MatchRecomputeFailedPayloadV1](
				matchevents.MatchRecomputeRequestedPayloadV1{MatchID: id}), nil
		},
	}

	four := 4
	msgs, err := newHandlers(service).HandleHoleUpsertRequest(
		eventMessage(t, matchevents.MatchHoleUpsertRequestedPayloadV1{
			MatchID:    matchID,
			HoleNumber: 7,
			TeamAGross: &four,
		}))
	require.NoError(t, err)
	require.Equal(t, []string{matchevents.MatchRecomputeRequestedV1}, topicsOf(msgs))
	require.Equal(t, 7, gotHole)
	require.Equal(t, 4, *gotEntry.TeamAGross)
}

func TestHandleHoleUpsertRequest_BadPayloadErrors(t *testing.T) {
	service := &FakeMatchService{}
	msg := message.NewMessage(watermill.NewUUID(), []byte("not json"))

	_, err := newHandlers(service).HandleHoleUpsertRequest(msg)
	require.Error(t, err)
}
