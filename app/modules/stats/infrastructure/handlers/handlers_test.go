package stathandlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	statservice "github.com/copperhead-cup/cup-bot/app/modules/stats/application"
	statdomain "github.com/copperhead-cup/cup-bot/app/modules/stats/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/events/factevents"
	"github.com/copperhead-cup/cup-bot/app/shared/events/statevents"
	"github.com/copperhead-cup/cup-bot/app/shared/observability"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
	"github.com/copperhead-cup/cup-bot/app/shared/utils"
)

// FakeStatService is a programmable stub for statservice.Service.
type FakeStatService struct {
	RefoldScopesFunc func(ctx context.Context, req statservice.RefoldRequest) ([]statservice.PlayerRefold, error)
}

func (f *FakeStatService) RefoldScopes(ctx context.Context, req statservice.RefoldRequest) ([]statservice.PlayerRefold, error) {
	if f.RefoldScopesFunc != nil {
		return f.RefoldScopesFunc(ctx, req)
	}
	return nil, nil
}

func (f *FakeStatService) GetPlayerStats(ctx context.Context, playerID sharedtypes.PlayerID, scope statdomain.Scope) (*statdomain.PlayerStats, error) {
	return nil, nil
}

func (f *FakeStatService) GetStandings(ctx context.Context, scope statdomain.Scope) ([]statdomain.PlayerStats, error) {
	return nil, nil
}

var _ statservice.Service = (*FakeStatService)(nil)

func newHandlers(service statservice.Service) *StatHandlers {
	logger := observability.NoOpLogger
	return NewStatHandlers(
		service,
		logger,
		noop.NewTracerProvider().Tracer("test"),
		utils.NewHelpers(logger),
		metrics.NoOpStatMetrics{},
	)
}

func eventMessage(t *testing.T, payload any) *message.Message {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), data)
}

func TestHandleFactsRebuilt_EmitsOneEventPerPlayer(t *testing.T) {
	roundID := sharedtypes.RoundID(uuid.New())
	var gotReq statservice.RefoldRequest

	service := &FakeStatService{
		RefoldScopesFunc: func(ctx context.Context, req statservice.RefoldRequest) ([]statservice.PlayerRefold, error) {
			gotReq = req
			return []statservice.PlayerRefold{
				{PlayerID: "amos", Recomputed: []string{"series:all"}},
				{PlayerID: "bert", Recomputed: []string{"series:all"}},
			}, nil
		},
	}

	msgs, err := newHandlers(service).HandleFactsRebuilt(
		eventMessage(t, factevents.PlayerFactsRebuiltPayloadV1{
			RoundID:   roundID,
			PlayerIDs: []sharedtypes.PlayerID{"amos", "bert"},
		}))
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, roundID, gotReq.RoundID)

	for _, m := range msgs {
		require.Equal(t, statevents.PlayerStatsRecomputedV1, m.Metadata.Get("topic"))
	}
	var payload statevents.PlayerStatsRecomputedPayloadV1
	require.NoError(t, json.Unmarshal(msgs[0].Payload, &payload))
	require.Equal(t, sharedtypes.PlayerID("amos"), payload.PlayerID)
}

func TestHandleFactsDeleted_DeletedScopesStillAnnounced(t *testing.T) {
	service := &FakeStatService{
		RefoldScopesFunc: func(ctx context.Context, req statservice.RefoldRequest) ([]statservice.PlayerRefold, error) {
			return []statservice.PlayerRefold{
				{PlayerID: "amos", Deleted: []string{"series:all"}},
			}, nil
		},
	}

	msgs, err := newHandlers(service).HandleFactsDeleted(
		eventMessage(t, factevents.PlayerFactsDeletedPayloadV1{
			PlayerIDs: []sharedtypes.PlayerID{"amos"},
		}))
	require.NoError(t, err)
	require.Len(t, msgs, 1)
}

func TestHandleFactsRebuilt_NoScopesPublishesNothing(t *testing.T) {
	service := &FakeStatService{
		RefoldScopesFunc: func(ctx context.Context, req statservice.RefoldRequest) ([]statservice.PlayerRefold, error) {
			return []statservice.PlayerRefold{{PlayerID: "amos"}}, nil
		},
	}

	msgs, err := newHandlers(service).HandleFactsRebuilt(
		eventMessage(t, factevents.PlayerFactsRebuiltPayloadV1{
			PlayerIDs: []sharedtypes.PlayerID{"amos"},
		}))
	require.NoError(t, err)
	require.Empty(t, msgs)
}
