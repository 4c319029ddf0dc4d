package matchservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	matchdomain "github.com/copperhead-cup/cup-bot/app/modules/match/domain"
	matchdb "github.com/copperhead-cup/cup-bot/app/modules/match/infrastructure/repositories"
	"github.com/copperhead-cup/cup-bot/app/shared/events/matchevents"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/attr"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
	"github.com/copperhead-cup/cup-bot/app/shared/utils/results"
)

// RecomputeMatch recomputes the match's status and result from its stored
// hole inputs. The summarizer is a pure function of those inputs, so a
// trigger whose underlying write changed nothing is detected by the input
// hash and skipped without republishing.
func (s *MatchService) RecomputeMatch(ctx context.Context, matchID sharedtypes.MatchID, force bool) (RecomputeResult, error) {
	return withTelemetry(s, ctx, "RecomputeMatch", matchID.String(), func(ctx context.Context) (RecomputeResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (RecomputeResult, error) {
			return s.recomputeMatchLogic(ctx, db, matchID, force)
		})
	})
}

func (s *MatchService) recomputeMatchLogic(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, force bool) (RecomputeResult, error) {
	match, lastHash, err := s.repo.GetMatch(ctx, db, matchID)
	if err != nil {
		if errors.Is(err, matchdb.ErrNotFound) {
			return results.FailureResult[RecomputeOutcome, matchevents.MatchRecomputeFailedPayloadV1](
				matchevents.MatchRecomputeFailedPayloadV1{
					MatchID: matchID,
					Reason:  "match not found",
				}), nil
		}
		return RecomputeResult{}, fmt.Errorf("failed to load match: %w", err)
	}

	inputsHash := match.InputsHash()
	if !force && inputsHash == lastHash {
		s.metrics.RecordRecomputeSkipped(ctx)
		s.logger.DebugContext(ctx, "Recompute skipped, inputs unchanged",
			attr.MatchID("match_id", matchID),
			attr.ExtractCorrelationID(ctx),
		)
		return results.SuccessResult[RecomputeOutcome, matchevents.MatchRecomputeFailedPayloadV1](
			RecomputeOutcome{
				MatchID:      matchID,
				RoundID:      match.RoundID,
				TournamentID: match.TournamentID,
				Format:       match.Format,
				Status:       match.Status,
				Result:       match.Result,
				Transition:   TransitionNone,
				Skipped:      true,
			}), nil
	}

	wasClosed := match.Status.Closed
	summary := match.Summarize()

	if err := s.repo.UpdateDerivedState(ctx, db, matchID, summary.Status, summary.Result, inputsHash); err != nil {
		return RecomputeResult{}, fmt.Errorf("failed to persist derived state: %w", err)
	}

	transition := TransitionNone
	switch {
	case summary.Status.Closed && !wasClosed:
		transition = TransitionClosed
		s.metrics.RecordMatchClosed(ctx)
	case !summary.Status.Closed && wasClosed:
		transition = TransitionReopened
		s.metrics.RecordMatchReopened(ctx)
	}

	return results.SuccessResult[RecomputeOutcome, matchevents.MatchRecomputeFailedPayloadV1](
		RecomputeOutcome{
			MatchID:      matchID,
			RoundID:      match.RoundID,
			TournamentID: match.TournamentID,
			Format:       match.Format,
			Status:       summary.Status,
			Result:       summary.Result,
			Transition:   transition,
		}), nil
}

// CreateMatch persists a new match with empty derived state. The first
// recompute fills it in.
func (s *MatchService) CreateMatch(ctx context.Context, match *matchdomain.Match) (*matchdomain.Match, error) {
	match.TeamA = matchdomain.NormalizeSide(match.TeamA, match.Format)
	match.TeamB = matchdomain.NormalizeSide(match.TeamB, match.Format)
	if err := s.repo.CreateMatch(ctx, nil, match); err != nil {
		return nil, err
	}
	return match, nil
}

// GetMatch retrieves one match.
func (s *MatchService) GetMatch(ctx context.Context, matchID sharedtypes.MatchID) (*matchdomain.Match, error) {
	match, _, err := s.repo.GetMatch(ctx, nil, matchID)
	return match, err
}

// GetMatchesForRound retrieves all of a round's matches in creation order.
func (s *MatchService) GetMatchesForRound(ctx context.Context, roundID sharedtypes.RoundID) ([]*matchdomain.Match, error) {
	return s.repo.GetMatchesForRound(ctx, nil, roundID)
}

// DeleteMatch removes a match; the success payload fans out so downstream
// facts and stats follow it.
func (s *MatchService) DeleteMatch(ctx context.Context, matchID sharedtypes.MatchID) (DeleteResult, error) {
	return withTelemetry(s, ctx, "DeleteMatch", matchID.String(), func(ctx context.Context) (DeleteResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (DeleteResult, error) {
			match, _, err := s.repo.GetMatch(ctx, db, matchID)
			if err != nil {
				if errors.Is(err, matchdb.ErrNotFound) {
					return results.FailureResult[matchevents.MatchDeletedPayloadV1, matchevents.MatchRecomputeFailedPayloadV1](
						matchevents.MatchRecomputeFailedPayloadV1{
							MatchID: matchID,
							Reason:  "match not found",
						}), nil
				}
				return DeleteResult{}, fmt.Errorf("failed to load match: %w", err)
			}

			if err := s.repo.DeleteMatch(ctx, db, matchID); err != nil {
				return DeleteResult{}, fmt.Errorf("failed to delete match: %w", err)
			}

			return results.SuccessResult[matchevents.MatchDeletedPayloadV1, matchevents.MatchRecomputeFailedPayloadV1](
				matchevents.MatchDeletedPayloadV1{
					MatchID:      matchID,
					RoundID:      match.RoundID,
					TournamentID: match.TournamentID,
				}), nil
		})
	})
}
