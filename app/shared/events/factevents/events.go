// Package factevents defines the versioned topics and payloads emitted by
// the facts module and consumed by the stats module.
package factevents

import (
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

const (
	// PlayerFactsRebuiltV1 announces a fresh fact set for a closed match.
	PlayerFactsRebuiltV1 = "facts.player.rebuilt.v1"

	// PlayerFactsDeletedV1 announces that a match's facts were removed
	// (match reopened, cleared, or deleted).
	PlayerFactsDeletedV1 = "facts.player.deleted.v1"

	// FactBuildFailedV1 carries a business failure out of a fact rebuild.
	FactBuildFailedV1 = "facts.build.failed.v1"
)

// PlayerFactsRebuiltPayloadV1 lists the players whose stat scopes are stale.
type PlayerFactsRebuiltPayloadV1 struct {
	MatchID      sharedtypes.MatchID      `json:"match_id"`
	RoundID      sharedtypes.RoundID      `json:"round_id"`
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	PlayerIDs    []sharedtypes.PlayerID   `json:"player_ids"`
}

// PlayerFactsDeletedPayloadV1 lists the players whose stat scopes are stale.
type PlayerFactsDeletedPayloadV1 struct {
	MatchID      sharedtypes.MatchID      `json:"match_id"`
	RoundID      sharedtypes.RoundID      `json:"round_id"`
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	PlayerIDs    []sharedtypes.PlayerID   `json:"player_ids"`
}

// FactBuildFailedPayloadV1 reports a rebuild that could not proceed.
type FactBuildFailedPayloadV1 struct {
	MatchID sharedtypes.MatchID `json:"match_id"`
	Reason  string              `json:"reason"`
}
