package skinsservice

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	skinsdomain "github.com/copperhead-cup/cup-bot/app/modules/skins/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// RecomputeOutcome reports one skins recompute. Enabled is false when the
// round has no skins game; nothing is computed or stored then.
type RecomputeOutcome struct {
	RoundID sharedtypes.RoundID
	Enabled bool
	Result  skinsdomain.Result
}

// Service is the interface for the skins service.
type Service interface {
	RecomputeRoundSkins(ctx context.Context, roundID sharedtypes.RoundID) (RecomputeOutcome, error)
	GetRoundSkins(ctx context.Context, roundID sharedtypes.RoundID) (*skinsdomain.Result, error)
}

var _ Service = (*SkinsService)(nil)

// RecomputeRoundSkins rebuilds the round's skins state from every match's
// current hole scores. The computation is total, so it simply reruns on
// every match change in the round.
func (s *SkinsService) RecomputeRoundSkins(ctx context.Context, roundID sharedtypes.RoundID) (RecomputeOutcome, error) {
	return instrument(s, ctx, "RecomputeRoundSkins", roundID.String(), func(ctx context.Context) (RecomputeOutcome, error) {
		round, err := s.rounds.GetRound(ctx, roundID)
		if err != nil {
			return RecomputeOutcome{}, fmt.Errorf("failed to load round: %w", err)
		}
		if !round.Skins.Enabled {
			return RecomputeOutcome{RoundID: roundID}, nil
		}

		handicaps, err := s.rounds.CourseHandicapsForRound(ctx, roundID)
		if err != nil {
			return RecomputeOutcome{}, fmt.Errorf("failed to load course handicaps: %w", err)
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (RecomputeOutcome, error) {
			matches, err := s.matchRepo.GetMatchesForRound(ctx, db, roundID)
			if err != nil {
				return RecomputeOutcome{}, fmt.Errorf("failed to load matches: %w", err)
			}

			entrants := skinsdomain.EntrantsFromMatches(matches, handicaps)
			result := skinsdomain.Compute(skinsdomain.Config{
				Pot:       round.Skins.Pot,
				Mode:      skinsdomain.Mode(round.Skins.Mode),
				Allowance: round.Skins.Allowance,
			}, entrants, round.Course.HoleHandicaps)

			if err := s.repo.UpsertRoundSkins(ctx, db, roundID, result); err != nil {
				return RecomputeOutcome{}, err
			}
			s.metrics.RecordSkinsAwarded(ctx, len(result.Skins))

			return RecomputeOutcome{RoundID: roundID, Enabled: true, Result: result}, nil
		})
	})
}

// GetRoundSkins retrieves the stored skins state for a round.
func (s *SkinsService) GetRoundSkins(ctx context.Context, roundID sharedtypes.RoundID) (*skinsdomain.Result, error) {
	return s.repo.GetRoundSkins(ctx, nil, roundID)
}
