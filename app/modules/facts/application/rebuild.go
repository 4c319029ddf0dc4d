package factservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	factdomain "github.com/copperhead-cup/cup-bot/app/modules/facts/domain"
	matchdb "github.com/copperhead-cup/cup-bot/app/modules/match/infrastructure/repositories"
	"github.com/copperhead-cup/cup-bot/app/shared/events/factevents"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/attr"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
	"github.com/copperhead-cup/cup-bot/app/shared/utils/results"
)

// RebuildFacts derives the per-player fact set from the match's stored state
// and replaces the previous set in one transaction. A match that turns out
// to be open (the close was undone before this ran) has its facts deleted
// instead.
func (s *FactService) RebuildFacts(ctx context.Context, matchID sharedtypes.MatchID) (RebuildResult, error) {
	return withTelemetry(s, ctx, "RebuildFacts", matchID.String(), func(ctx context.Context) (RebuildResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (RebuildResult, error) {
			return s.rebuildFactsLogic(ctx, db, matchID)
		})
	})
}

func (s *FactService) rebuildFactsLogic(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (RebuildResult, error) {
	match, _, err := s.matchRepo.GetMatch(ctx, db, matchID)
	if err != nil {
		if errors.Is(err, matchdb.ErrNotFound) {
			return results.FailureResult[RebuildOutcome, factevents.FactBuildFailedPayloadV1](
				factevents.FactBuildFailedPayloadV1{
					MatchID: matchID,
					Reason:  "match not found",
				}), nil
		}
		return RebuildResult{}, fmt.Errorf("failed to load match: %w", err)
	}

	fc, err := s.contexts.BuildFactContext(ctx, match.RoundID)
	if err != nil {
		// Missing round context degrades the snapshots, not the build.
		s.logger.WarnContext(ctx, "Round context unavailable, building facts with defaults",
			attr.MatchID("match_id", matchID),
			attr.RoundID("round_id", match.RoundID),
			attr.ExtractCorrelationID(ctx),
			attr.Error(err),
		)
		fc = factdomain.FactContext{
			TournamentID: match.TournamentID,
			RoundID:      match.RoundID,
		}
	}

	facts := factdomain.BuildFacts(match, fc)
	if facts == nil {
		// Not closed anymore: a racing edit reopened it between the close
		// event and this handler. Drop whatever facts exist.
		playerIDs, err := s.repo.DeleteForMatch(ctx, db, matchID)
		if err != nil {
			return RebuildResult{}, fmt.Errorf("failed to delete facts for open match: %w", err)
		}
		s.metrics.RecordFactsDeleted(ctx, len(playerIDs))
		return results.SuccessResult[RebuildOutcome, factevents.FactBuildFailedPayloadV1](
			RebuildOutcome{
				MatchID:      matchID,
				RoundID:      match.RoundID,
				TournamentID: match.TournamentID,
				PlayerIDs:    playerIDs,
				Deleted:      true,
			}), nil
	}

	if err := s.repo.ReplaceForMatch(ctx, db, matchID, facts); err != nil {
		return RebuildResult{}, fmt.Errorf("failed to replace facts: %w", err)
	}
	s.metrics.RecordFactsRebuilt(ctx, len(facts))

	playerIDs := make([]sharedtypes.PlayerID, len(facts))
	for i := range facts {
		playerIDs[i] = facts[i].PlayerID
	}

	return results.SuccessResult[RebuildOutcome, factevents.FactBuildFailedPayloadV1](
		RebuildOutcome{
			MatchID:      matchID,
			RoundID:      match.RoundID,
			TournamentID: match.TournamentID,
			PlayerIDs:    playerIDs,
		}), nil
}

// DeleteFacts removes a match's fact set. The match row itself may already be
// gone, so the round and tournament IDs ride in from the triggering event.
func (s *FactService) DeleteFacts(ctx context.Context, matchID sharedtypes.MatchID, roundID sharedtypes.RoundID, tournamentID sharedtypes.TournamentID) (DeleteResult, error) {
	return withTelemetry(s, ctx, "DeleteFacts", matchID.String(), func(ctx context.Context) (DeleteResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (DeleteResult, error) {
			playerIDs, err := s.repo.DeleteForMatch(ctx, db, matchID)
			if err != nil {
				return DeleteResult{}, fmt.Errorf("failed to delete facts: %w", err)
			}
			s.metrics.RecordFactsDeleted(ctx, len(playerIDs))

			return results.SuccessResult[factevents.PlayerFactsDeletedPayloadV1, factevents.FactBuildFailedPayloadV1](
				factevents.PlayerFactsDeletedPayloadV1{
					MatchID:      matchID,
					RoundID:      roundID,
					TournamentID: tournamentID,
					PlayerIDs:    playerIDs,
				}), nil
		})
	})
}

// GetFactsForMatch retrieves a match's fact set.
func (s *FactService) GetFactsForMatch(ctx context.Context, matchID sharedtypes.MatchID) ([]factdomain.PlayerMatchFact, error) {
	return s.repo.GetForMatch(ctx, nil, matchID)
}

// GetFactsForPlayer retrieves a player's facts in an optional scope window.
func (s *FactService) GetFactsForPlayer(ctx context.Context, playerID sharedtypes.PlayerID, tournamentID *sharedtypes.TournamentID, roundID *sharedtypes.RoundID) ([]factdomain.PlayerMatchFact, error) {
	return s.repo.GetForPlayer(ctx, nil, playerID, tournamentID, roundID)
}
