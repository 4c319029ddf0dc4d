package tournamentservice

import (
	"context"
	"fmt"

	factdomain "github.com/copperhead-cup/cup-bot/app/modules/facts/domain"
	matchdomain "github.com/copperhead-cup/cup-bot/app/modules/match/domain"
	tournamentdomain "github.com/copperhead-cup/cup-bot/app/modules/tournament/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// BuildFactContext loads the round and its tournament and flattens them into
// the lookup tables the fact builder consumes.
func (s *TournamentService) BuildFactContext(ctx context.Context, roundID sharedtypes.RoundID) (factdomain.FactContext, error) {
	return instrument(s, ctx, "BuildFactContext", roundID.String(), func(ctx context.Context) (factdomain.FactContext, error) {
		round, tournament, err := s.loadRoundContext(ctx, roundID)
		if err != nil {
			return factdomain.FactContext{}, err
		}

		fc := factdomain.FactContext{
			TournamentID: tournament.ID,
			RoundID:      round.ID,
			CoursePar:    round.Course.Par,
			HolePars:     round.Course.HolePars,
			PointsValue:  tournament.PointsValue,

			TierByPlayer:          make(map[sharedtypes.PlayerID]sharedtypes.Tier, len(tournament.Roster)),
			HandicapIndexByPlayer: make(map[sharedtypes.PlayerID]float64, len(tournament.Roster)),
			CaptainByTeam:         make(map[sharedtypes.TeamSide]sharedtypes.PlayerID, 2),
			CoCaptainByTeam:       make(map[sharedtypes.TeamSide]sharedtypes.PlayerID, 2),
		}

		for _, entry := range tournament.Roster {
			fc.TierByPlayer[entry.PlayerID] = entry.Tier
			fc.HandicapIndexByPlayer[entry.PlayerID] = entry.HandicapIndex
		}

		caps := tournament.Captains
		if caps.CaptainA != "" {
			fc.CaptainByTeam[sharedtypes.TeamA] = caps.CaptainA
		}
		if caps.CaptainB != "" {
			fc.CaptainByTeam[sharedtypes.TeamB] = caps.CaptainB
		}
		if caps.CoCaptainA != "" {
			fc.CoCaptainByTeam[sharedtypes.TeamA] = caps.CoCaptainA
		}
		if caps.CoCaptainB != "" {
			fc.CoCaptainByTeam[sharedtypes.TeamB] = caps.CoCaptainB
		}

		return fc, nil
	})
}

// AllocateRoundStrokes computes course handicaps for the named players on the
// round's course, spins the group down against its lowest, and returns each
// player's stroke holes.
func (s *TournamentService) AllocateRoundStrokes(ctx context.Context, roundID sharedtypes.RoundID, playerIDs []sharedtypes.PlayerID) ([][sharedtypes.HolesPerRound]int, error) {
	return instrument(s, ctx, "AllocateRoundStrokes", roundID.String(), func(ctx context.Context) ([][sharedtypes.HolesPerRound]int, error) {
		round, tournament, err := s.loadRoundContext(ctx, roundID)
		if err != nil {
			return nil, err
		}

		courseHandicaps := make([]float64, len(playerIDs))
		for i, id := range playerIDs {
			courseHandicaps[i] = courseHandicap(tournament, round.Course, id)
		}
		return matchdomain.AllocateField(courseHandicaps, round.Course.HoleHandicaps), nil
	})
}

// CourseHandicapsForRound computes every rostered player's unrounded course
// handicap on the round's course.
func (s *TournamentService) CourseHandicapsForRound(ctx context.Context, roundID sharedtypes.RoundID) (map[sharedtypes.PlayerID]float64, error) {
	return instrument(s, ctx, "CourseHandicapsForRound", roundID.String(), func(ctx context.Context) (map[sharedtypes.PlayerID]float64, error) {
		round, tournament, err := s.loadRoundContext(ctx, roundID)
		if err != nil {
			return nil, err
		}

		out := make(map[sharedtypes.PlayerID]float64, len(tournament.Roster))
		for _, entry := range tournament.Roster {
			out[entry.PlayerID] = courseHandicap(tournament, round.Course, entry.PlayerID)
		}
		return out, nil
	})
}

func (s *TournamentService) loadRoundContext(ctx context.Context, roundID sharedtypes.RoundID) (*tournamentdomain.Round, *tournamentdomain.Tournament, error) {
	round, err := s.repo.GetRound(ctx, nil, roundID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load round: %w", err)
	}
	tournament, err := s.repo.GetTournament(ctx, nil, round.TournamentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load tournament: %w", err)
	}
	return round, tournament, nil
}

func courseHandicap(t *tournamentdomain.Tournament, course tournamentdomain.Course, id sharedtypes.PlayerID) float64 {
	return matchdomain.CourseHandicap(t.HandicapIndexOf(id), course.Slope, course.Rating, course.Par)
}
