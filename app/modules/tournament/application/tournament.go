package tournamentservice

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	tournamentdomain "github.com/copperhead-cup/cup-bot/app/modules/tournament/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/attr"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// CreateTournament persists a new tournament.
func (s *TournamentService) CreateTournament(ctx context.Context, t *tournamentdomain.Tournament) (*tournamentdomain.Tournament, error) {
	return instrument(s, ctx, "CreateTournament", t.Name, func(ctx context.Context) (*tournamentdomain.Tournament, error) {
		if err := s.repo.CreateTournament(ctx, nil, t); err != nil {
			return nil, err
		}
		return t, nil
	})
}

// GetTournament retrieves one tournament.
func (s *TournamentService) GetTournament(ctx context.Context, id sharedtypes.TournamentID) (*tournamentdomain.Tournament, error) {
	return s.repo.GetTournament(ctx, nil, id)
}

// UpdateRoster replaces the tournament's roster wholesale.
func (s *TournamentService) UpdateRoster(ctx context.Context, id sharedtypes.TournamentID, roster []tournamentdomain.RosterEntry) error {
	_, err := instrument(s, ctx, "UpdateRoster", id.String(), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.repo.UpdateRoster(ctx, nil, id, roster)
	})
	return err
}

// CreateRound inserts the round and appends it to the tournament's round
// list. Both writes share one transaction so a crash between them cannot
// orphan the round.
func (s *TournamentService) CreateRound(ctx context.Context, round *tournamentdomain.Round) (*tournamentdomain.Round, error) {
	return instrument(s, ctx, "CreateRound", round.Name, func(ctx context.Context) (*tournamentdomain.Round, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (*tournamentdomain.Round, error) {
			if err := s.repo.CreateRound(ctx, db, round); err != nil {
				return nil, err
			}
			added, err := s.repo.AppendRoundID(ctx, db, round.TournamentID, round.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to link round into tournament: %w", err)
			}
			if !added {
				s.metrics.RecordListAppendConflict(ctx)
			}
			return round, nil
		})
	})
}

// GetRound retrieves one round.
func (s *TournamentService) GetRound(ctx context.Context, id sharedtypes.RoundID) (*tournamentdomain.Round, error) {
	return s.repo.GetRound(ctx, nil, id)
}

// GetRoundsForTournament retrieves a tournament's rounds in creation order.
func (s *TournamentService) GetRoundsForTournament(ctx context.Context, id sharedtypes.TournamentID) ([]*tournamentdomain.Round, error) {
	return s.repo.GetRoundsForTournament(ctx, nil, id)
}

// RegisterMatch links a match into the round's match list under the round's
// row lock.
func (s *TournamentService) RegisterMatch(ctx context.Context, roundID sharedtypes.RoundID, matchID sharedtypes.MatchID) error {
	_, err := instrument(s, ctx, "RegisterMatch", roundID.String(), func(ctx context.Context) (struct{}, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (struct{}, error) {
			added, err := s.repo.AppendMatchID(ctx, db, roundID, matchID)
			if err != nil {
				return struct{}{}, err
			}
			if !added {
				s.metrics.RecordListAppendConflict(ctx)
				s.logger.DebugContext(ctx, "Match already registered on round",
					attr.RoundID("round_id", roundID),
					attr.ExtractCorrelationID(ctx),
				)
			}
			return struct{}{}, nil
		})
	})
	return err
}
