package matchservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	matchdomain "github.com/copperhead-cup/cup-bot/app/modules/match/domain"
	"github.com/copperhead-cup/cup-bot/app/modules/match/infrastructure/parsers"
	matchdb "github.com/copperhead-cup/cup-bot/app/modules/match/infrastructure/repositories"
	"github.com/copperhead-cup/cup-bot/app/shared/events/matchevents"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
	"github.com/copperhead-cup/cup-bot/app/shared/utils/results"
)

// ImportScorecard bulk-loads hole scores from an uploaded CSV or XLSX file.
// Rows are matched to the lineup by player ID; unmatched rows are ignored so
// a shared scorecard covering several matches imports cleanly. Scrambles
// cannot be imported because the file carries individual balls.
func (s *MatchService) ImportScorecard(ctx context.Context, matchID sharedtypes.MatchID, fileName string, fileData []byte) (UpsertHoleResult, error) {
	return withTelemetry(s, ctx, "ImportScorecard", matchID.String(), func(ctx context.Context) (UpsertHoleResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (UpsertHoleResult, error) {
			return s.importScorecardLogic(ctx, db, matchID, fileName, fileData)
		})
	})
}

func (s *MatchService) importScorecardLogic(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, fileName string, fileData []byte) (UpsertHoleResult, error) {
	fail := func(reason string) UpsertHoleResult {
		return results.FailureResult[matchevents.MatchRecomputeRequestedPayloadV1, matchevents.MatchRecomputeFailedPayloadV1](
			matchevents.MatchRecomputeFailedPayloadV1{MatchID: matchID, Reason: reason})
	}

	parser, err := parsers.ForFile(fileName)
	if err != nil {
		return fail(fmt.Sprintf("cannot import %s: %v", fileName, err)), nil
	}
	card, err := parser.Parse(fileData, fileName)
	if err != nil {
		return fail(fmt.Sprintf("failed to parse %s: %v", fileName, err)), nil
	}

	match, _, err := s.repo.GetMatch(ctx, db, matchID)
	if err != nil {
		if errors.Is(err, matchdb.ErrNotFound) {
			return fail("match not found"), nil
		}
		return UpsertHoleResult{}, fmt.Errorf("failed to load match: %w", err)
	}
	if match.Format == sharedtypes.FormatTwoManScramble {
		return fail("scramble matches carry team scores and cannot be imported per player"), nil
	}

	matched := applyScorecard(match, card)
	if matched == 0 {
		return fail("no scorecard rows matched the lineup"), nil
	}

	if err := s.repo.UpdateHoles(ctx, db, matchID, match); err != nil {
		return UpsertHoleResult{}, fmt.Errorf("failed to persist holes: %w", err)
	}

	return results.SuccessResult[matchevents.MatchRecomputeRequestedPayloadV1, matchevents.MatchRecomputeFailedPayloadV1](
		matchevents.MatchRecomputeRequestedPayloadV1{MatchID: matchID}), nil
}

// applyScorecard overlays parsed rows onto the match's hole entries, seat by
// seat. Holes the file does not cover keep their existing entries.
func applyScorecard(match *matchdomain.Match, card *parsers.ParsedScorecard) int {
	teamA := matchdomain.NormalizeSide(match.TeamA, match.Format)
	teamB := matchdomain.NormalizeSide(match.TeamB, match.Format)

	matched := 0
	for _, row := range card.Rows {
		if seat := seatOf(teamA, row.PlayerID); seat >= 0 {
			overlayRow(match, sharedtypes.TeamA, seat, row)
			matched++
		}
		if seat := seatOf(teamB, row.PlayerID); seat >= 0 {
			overlayRow(match, sharedtypes.TeamB, seat, row)
			matched++
		}
	}
	return matched
}

func seatOf(side []matchdomain.PlayerSide, id sharedtypes.PlayerID) int {
	for seat, p := range side {
		if p.PlayerID != "" && p.PlayerID == id {
			return seat
		}
	}
	return -1
}

func overlayRow(match *matchdomain.Match, team sharedtypes.TeamSide, seat int, row parsers.PlayerScoreRow) {
	for i := 0; i < sharedtypes.HolesPerRound; i++ {
		if row.Holes[i] == nil {
			continue
		}
		score := *row.Holes[i]

		switch match.Format {
		case sharedtypes.FormatSingles:
			hole, _ := match.Holes[i].(matchdomain.SinglesHole)
			if team == sharedtypes.TeamA {
				hole.AGross = &score
			} else {
				hole.BGross = &score
			}
			match.Holes[i] = hole

		case sharedtypes.FormatTwoManBestBall, sharedtypes.FormatTwoManShamble:
			hole, _ := match.Holes[i].(matchdomain.PairHole)
			if team == sharedtypes.TeamA {
				hole.AGross[seat] = &score
			} else {
				hole.BGross[seat] = &score
			}
			match.Holes[i] = hole
		}
	}
}
