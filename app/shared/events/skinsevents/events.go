// Package skinsevents defines the versioned topics and payloads emitted by
// the skins module.
package skinsevents

import (
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

const (
	// RoundSkinsUpdatedV1 announces a recomputed skins leaderboard.
	RoundSkinsUpdatedV1 = "skins.round.updated.v1"
)

// RoundSkinsUpdatedPayloadV1 summarizes the recomputed leaderboard.
type RoundSkinsUpdatedPayloadV1 struct {
	RoundID      sharedtypes.RoundID `json:"round_id"`
	SkinsAwarded int                 `json:"skins_awarded"`
	SkinValue    float64             `json:"skin_value"`
}
