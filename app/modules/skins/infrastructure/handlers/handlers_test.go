package skinshandlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	skinsservice "github.com/copperhead-cup/cup-bot/app/modules/skins/application"
	skinsdomain "github.com/copperhead-cup/cup-bot/app/modules/skins/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/events/matchevents"
	"github.com/copperhead-cup/cup-bot/app/shared/events/skinsevents"
	"github.com/copperhead-cup/cup-bot/app/shared/observability"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
	"github.com/copperhead-cup/cup-bot/app/shared/utils"
)

// FakeSkinsService is a programmable stub for skinsservice.Service.
type FakeSkinsService struct {
	RecomputeRoundSkinsFunc func(ctx context.Context, roundID sharedtypes.RoundID) (skinsservice.RecomputeOutcome, error)
}

func (f *FakeSkinsService) RecomputeRoundSkins(ctx context.Context, roundID sharedtypes.RoundID) (skinsservice.RecomputeOutcome, error) {
	if f.RecomputeRoundSkinsFunc != nil {
		return f.RecomputeRoundSkinsFunc(ctx, roundID)
	}
	return skinsservice.RecomputeOutcome{RoundID: roundID}, nil
}

func (f *FakeSkinsService) GetRoundSkins(ctx context.Context, roundID sharedtypes.RoundID) (*skinsdomain.Result, error) {
	return nil, nil
}

var _ skinsservice.Service = (*FakeSkinsService)(nil)

func newHandlers(service skinsservice.Service) *SkinsHandlers {
	logger := observability.NoOpLogger
	return NewSkinsHandlers(
		service,
		logger,
		noop.NewTracerProvider().Tracer("test"),
		utils.NewHelpers(logger),
		metrics.NoOpSkinsMetrics{},
	)
}

func eventMessage(t *testing.T, payload any) *message.Message {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), data)
}

func TestHandleMatchStatusUpdated_PublishesRoundSkins(t *testing.T) {
	roundID := sharedtypes.RoundID(uuid.New())

	service := &FakeSkinsService{
		RecomputeRoundSkinsFunc: func(ctx context.Context, id sharedtypes.RoundID) (skinsservice.RecomputeOutcome, error) {
			return skinsservice.RecomputeOutcome{
				RoundID: id,
				Enabled: true,
				Result: skinsdomain.Result{
					Skins: []skinsdomain.HoleSkin{
						{Hole: 3, Winner: "amos", Value: 50},
						{Hole: 12, Winner: "bert", Value: 50},
					},
					SkinValue: 50,
				},
			}, nil
		},
	}

	msgs, err := newHandlers(service).HandleMatchStatusUpdated(
		eventMessage(t, matchevents.MatchStatusUpdatedPayloadV1{RoundID: roundID}))
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, skinsevents.RoundSkinsUpdatedV1, msgs[0].Metadata.Get("topic"))

	var payload skinsevents.RoundSkinsUpdatedPayloadV1
	require.NoError(t, json.Unmarshal(msgs[0].Payload, &payload))
	require.Equal(t, roundID, payload.RoundID)
	require.Equal(t, 2, payload.SkinsAwarded)
	require.Equal(t, 50.0, payload.SkinValue)
}

func TestHandleMatchStatusUpdated_DisabledRoundPublishesNothing(t *testing.T) {
	service := &FakeSkinsService{
		RecomputeRoundSkinsFunc: func(ctx context.Context, id sharedtypes.RoundID) (skinsservice.RecomputeOutcome, error) {
			return skinsservice.RecomputeOutcome{RoundID: id}, nil
		},
	}

	msgs, err := newHandlers(service).HandleMatchStatusUpdated(
		eventMessage(t, matchevents.MatchStatusUpdatedPayloadV1{RoundID: sharedtypes.RoundID(uuid.New())}))
	require.NoError(t, err)
	require.Empty(t, msgs)
}

func TestHandleMatchStatusUpdated_ServiceErrorPropagates(t *testing.T) {
	service := &FakeSkinsService{
		RecomputeRoundSkinsFunc: func(ctx context.Context, id sharedtypes.RoundID) (skinsservice.RecomputeOutcome, error) {
			return skinsservice.RecomputeOutcome{}, errors.New("round lookup failed")
		},
	}

	_, err := newHandlers(service).HandleMatchStatusUpdated(
		eventMessage(t, matchevents.MatchStatusUpdatedPayloadV1{RoundID: sharedtypes.RoundID(uuid.New())}))
	require.Error(t, err)
}

func TestHandleMatchStatusUpdated_BadPayloadErrors(t *testing.T) {
	msg := message.NewMessage(watermill.NewUUID(), []byte("not json"))
	_, err := newHandlers(&FakeSkinsService{}).HandleMatchStatusUpdated(msg)
	require.Error(t, err)
}
