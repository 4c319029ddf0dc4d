// Package statevents defines the versioned topics and payloads emitted by
// the stats module.
package statevents

import (
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

const (
	// PlayerStatsRecomputedV1 announces refreshed aggregates for a player.
	PlayerStatsRecomputedV1 = "stats.player.recomputed.v1"
)

// PlayerStatsRecomputedPayloadV1 names the scopes that were refolded.
type PlayerStatsRecomputedPayloadV1 struct {
	PlayerID sharedtypes.PlayerID `json:"player_id"`
	Scopes   []string             `json:"scopes"`
}
