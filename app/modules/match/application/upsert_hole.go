package matchservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	matchdomain "github.com/copperhead-cup/cup-bot/app/modules/match/domain"
	matchdb "github.com/copperhead-cup/cup-bot/app/modules/match/infrastructure/repositories"
	"github.com/copperhead-cup/cup-bot/app/shared/events/matchevents"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
	"github.com/copperhead-cup/cup-bot/app/shared/utils/results"
)

// UpsertHoleScore writes one hole's raw entry and returns the recompute
// request to publish. The write itself never computes status; the recompute
// path owns all derived state.
func (s *MatchService) UpsertHoleScore(ctx context.Context, matchID sharedtypes.MatchID, holeNumber int, entry HoleEntry) (UpsertHoleResult, error) {
	return withTelemetry(s, ctx, "UpsertHoleScore", matchID.String(), func(ctx context.Context) (UpsertHoleResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (UpsertHoleResult, error) {
			return s.upsertHoleLogic(ctx, db, matchID, holeNumber, entry)
		})
	})
}

func (s *MatchService) upsertHoleLogic(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, holeNumber int, entry HoleEntry) (UpsertHoleResult, error) {
	fail := func(reason string) UpsertHoleResult {
		return results.FailureResult[matchevents.MatchRecomputeRequestedPayloadV1, matchevents.MatchRecomputeFailedPayloadV1](
			matchevents.MatchRecomputeFailedPayloadV1{MatchID: matchID, Reason: reason})
	}

	if holeNumber < 1 || holeNumber > sharedtypes.HolesPerRound {
		return fail(fmt.Sprintf("hole number %d out of range", holeNumber)), nil
	}

	match, _, err := s.repo.GetMatch(ctx, db, matchID)
	if err != nil {
		if errors.Is(err, matchdb.ErrNotFound) {
			return fail("match not found"), nil
		}
		return UpsertHoleResult{}, fmt.Errorf("failed to load match: %w", err)
	}

	if entry.Clear {
		match.Holes[holeNumber-1] = nil
	} else {
		match.Holes[holeNumber-1] = holeInputFor(match.Format, entry)
	}

	if err := s.repo.UpdateHoles(ctx, db, matchID, match); err != nil {
		return UpsertHoleResult{}, fmt.Errorf("failed to persist holes: %w", err)
	}

	return results.SuccessResult[matchevents.MatchRecomputeRequestedPayloadV1, matchevents.MatchRecomputeFailedPayloadV1](
		matchevents.MatchRecomputeRequestedPayloadV1{MatchID: matchID}), nil
}

// holeInputFor maps the neutral wire entry onto the format's variant.
// Fields the format does not use are dropped, so a best-ball entry can never
// smuggle in a team gross.
func holeInputFor(format sharedtypes.Format, entry HoleEntry) matchdomain.HoleInput {
	switch format {
	case sharedtypes.FormatSingles:
		return matchdomain.SinglesHole{
			AGross: entry.TeamAGross,
			BGross: entry.TeamBGross,
		}
	case sharedtypes.FormatTwoManScramble:
		return matchdomain.ScrambleHole{
			AGross: entry.TeamAGross,
			BGross: entry.TeamBGross,
			ADrive: entry.TeamADrive,
			BDrive: entry.TeamBDrive,
		}
	case sharedtypes.FormatTwoManBestBall, sharedtypes.FormatTwoManShamble:
		return matchdomain.PairHole{
			AGross: pairEntry(entry.TeamAPlayersGross),
			BGross: pairEntry(entry.TeamBPlayersGross),
			ADrive: entry.TeamADrive,
			BDrive: entry.TeamBDrive,
		}
	default:
		return nil
	}
}

func pairEntry(scores []*int) [2]*int {
	var out [2]*int
	for i := 0; i < len(scores) && i < 2; i++ {
		out[i] = scores[i]
	}
	return out
}
