// Package matchevents defines the versioned topics and payloads emitted and
// consumed by the match module.
package matchevents

import (
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

const (
	// MatchRecomputeRequestedV1 asks the match module to recompute one
	// match's status from its stored hole inputs. Fired after any hole
	// input mutation, including no-op writes; the service short-circuits
	// on an unchanged input hash.
	MatchRecomputeRequestedV1 = "match.recompute.requested.v1"

	// MatchStatusUpdatedV1 announces a recomputed status/result.
	MatchStatusUpdatedV1 = "match.status.updated.v1"

	// MatchClosedV1 announces that a match transitioned to closed.
	MatchClosedV1 = "match.closed.v1"

	// MatchReopenedV1 announces that a previously closed match is open
	// again (a hole edit undid the closure). Facts must be deleted.
	MatchReopenedV1 = "match.reopened.v1"

	// MatchDeletedV1 announces a match removal; derived facts follow it.
	MatchDeletedV1 = "match.deleted.v1"

	// MatchRecomputeFailedV1 carries a business failure out of a recompute.
	MatchRecomputeFailedV1 = "match.recompute.failed.v1"

	// MatchHoleUpsertRequestedV1 carries one hole's raw scores into the
	// match module. The API publishes it for every scorecard keystroke.
	MatchHoleUpsertRequestedV1 = "match.hole.upsert.requested.v1"
)

// MatchHoleUpsertRequestedPayloadV1 is the format-neutral hole entry. Fields
// the round's format does not use are ignored.
type MatchHoleUpsertRequestedPayloadV1 struct {
	MatchID           sharedtypes.MatchID `json:"match_id"`
	HoleNumber        int                 `json:"hole_number"`
	TeamAGross        *int                `json:"team_a_gross,omitempty"`
	TeamBGross        *int                `json:"team_b_gross,omitempty"`
	TeamAPlayersGross []*int              `json:"team_a_players_gross,omitempty"`
	TeamBPlayersGross []*int              `json:"team_b_players_gross,omitempty"`
	TeamADrive        *int                `json:"team_a_drive,omitempty"`
	TeamBDrive        *int                `json:"team_b_drive,omitempty"`
	Clear             bool                `json:"clear,omitempty"`
}

// MatchRecomputeRequestedPayloadV1 triggers a full recomputation. Force
// bypasses the input-hash short-circuit so derived state is regenerated even
// when the hole inputs are unchanged.
type MatchRecomputeRequestedPayloadV1 struct {
	MatchID sharedtypes.MatchID `json:"match_id"`
	Force   bool                `json:"force,omitempty"`
}

// MatchStatusUpdatedPayloadV1 is published after every effective recompute.
type MatchStatusUpdatedPayloadV1 struct {
	MatchID      sharedtypes.MatchID      `json:"match_id"`
	RoundID      sharedtypes.RoundID      `json:"round_id"`
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	Format       sharedtypes.Format       `json:"format"`
	Closed       bool                     `json:"closed"`
	Winner       sharedtypes.Winner       `json:"winner"`
	Margin       int                      `json:"margin"`
	Thru         int                      `json:"thru"`
	Scoreline    string                   `json:"scoreline"`
}

// MatchClosedPayloadV1 tells the facts module to (re)build facts.
type MatchClosedPayloadV1 struct {
	MatchID      sharedtypes.MatchID      `json:"match_id"`
	RoundID      sharedtypes.RoundID      `json:"round_id"`
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
}

// MatchReopenedPayloadV1 tells the facts module to delete facts.
type MatchReopenedPayloadV1 struct {
	MatchID      sharedtypes.MatchID      `json:"match_id"`
	RoundID      sharedtypes.RoundID      `json:"round_id"`
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
}

// MatchDeletedPayloadV1 tells the facts module the match is gone.
type MatchDeletedPayloadV1 struct {
	MatchID      sharedtypes.MatchID      `json:"match_id"`
	RoundID      sharedtypes.RoundID      `json:"round_id"`
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
}

// MatchRecomputeFailedPayloadV1 reports a recompute that could not proceed.
type MatchRecomputeFailedPayloadV1 struct {
	MatchID sharedtypes.MatchID `json:"match_id"`
	Reason  string              `json:"reason"`
}
