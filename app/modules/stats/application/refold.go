package statservice

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	statdomain "github.com/copperhead-cup/cup-bot/app/modules/stats/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// scopeQuery pairs an aggregation scope with the fact filter that feeds it.
type scopeQuery struct {
	scope        statdomain.Scope
	tournamentID *sharedtypes.TournamentID
	roundID      *sharedtypes.RoundID
}

func scopeQueriesFor(req RefoldRequest) []scopeQuery {
	queries := []scopeQuery{
		{scope: statdomain.Scope{Kind: statdomain.ScopeSeries, ID: statdomain.SeriesScopeID}},
	}
	if uuid.UUID(req.TournamentID) != uuid.Nil {
		tid := req.TournamentID
		queries = append(queries, scopeQuery{
			scope:        statdomain.Scope{Kind: statdomain.ScopeTournament, ID: tid.String()},
			tournamentID: &tid,
		})
	}
	if uuid.UUID(req.RoundID) != uuid.Nil {
		rid := req.RoundID
		queries = append(queries, scopeQuery{
			scope:   statdomain.Scope{Kind: statdomain.ScopeRound, ID: rid.String()},
			roundID: &rid,
		})
	}
	return queries
}

func scopeLabel(scope statdomain.Scope) string {
	return string(scope.Kind) + ":" + scope.ID
}

// RefoldScopes rebuilds the series, tournament, and round aggregates for each
// named player. One transaction covers the whole batch so a standings read
// never sees half the players moved.
func (s *StatService) RefoldScopes(ctx context.Context, req RefoldRequest) ([]PlayerRefold, error) {
	return instrument(s, ctx, "RefoldScopes", req.RoundID.String(), func(ctx context.Context) ([]PlayerRefold, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) ([]PlayerRefold, error) {
			return s.refoldScopesLogic(ctx, db, req)
		})
	})
}

func (s *StatService) refoldScopesLogic(ctx context.Context, db bun.IDB, req RefoldRequest) ([]PlayerRefold, error) {
	queries := scopeQueriesFor(req)
	out := make([]PlayerRefold, 0, len(req.PlayerIDs))

	recomputed, deleted := 0, 0
	for _, playerID := range req.PlayerIDs {
		refold := PlayerRefold{PlayerID: playerID}

		for _, q := range queries {
			facts, err := s.factRepo.GetForPlayer(ctx, db, playerID, q.tournamentID, q.roundID)
			if err != nil {
				return nil, fmt.Errorf("failed to load facts for player %s: %w", playerID, err)
			}

			stats, ok := statdomain.Fold(playerID, q.scope, facts)
			if !ok {
				// Empty fact set: the aggregate disappears rather than
				// lingering as zeros.
				if err := s.repo.Delete(ctx, db, playerID, q.scope); err != nil {
					return nil, err
				}
				refold.Deleted = append(refold.Deleted, scopeLabel(q.scope))
				deleted++
				continue
			}

			if err := s.repo.Upsert(ctx, db, stats); err != nil {
				return nil, err
			}
			refold.Recomputed = append(refold.Recomputed, scopeLabel(q.scope))
			recomputed++
		}

		out = append(out, refold)
	}

	s.metrics.RecordScopesRecomputed(ctx, recomputed)
	s.metrics.RecordScopesDeleted(ctx, deleted)
	return out, nil
}

// GetPlayerStats retrieves one player's aggregate in one scope.
func (s *StatService) GetPlayerStats(ctx context.Context, playerID sharedtypes.PlayerID, scope statdomain.Scope) (*statdomain.PlayerStats, error) {
	return s.repo.Get(ctx, nil, playerID, scope)
}

// GetStandings retrieves every player's aggregate in one scope, ranked by
// points with wins then player ID breaking ties.
func (s *StatService) GetStandings(ctx context.Context, scope statdomain.Scope) ([]statdomain.PlayerStats, error) {
	standings, err := s.repo.ListForScope(ctx, nil, scope)
	if err != nil {
		return nil, err
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		return standings[i].PlayerID < standings[j].PlayerID
	})
	return standings, nil
}
