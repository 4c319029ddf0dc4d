// Package sharedtypes holds the scalar types shared by every module.
package sharedtypes

import "github.com/google/uuid"

// HolesPerRound is fixed; the engine has no concept of 9-hole matches.
const HolesPerRound = 18

// PlayerID is an opaque roster slug, stable across tournaments.
type PlayerID string

// TournamentID identifies a tournament (a trip/season of rounds).
type TournamentID uuid.UUID

func (id TournamentID) String() string { return uuid.UUID(id).String() }

func (id TournamentID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *TournamentID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

// RoundID identifies one round (a session of matches played in one format).
type RoundID uuid.UUID

func (id RoundID) String() string { return uuid.UUID(id).String() }

func (id RoundID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *RoundID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

// MatchID identifies a single match within a round.
type MatchID uuid.UUID

func (id MatchID) String() string { return uuid.UUID(id).String() }

func (id MatchID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *MatchID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

// TeamSide names one of the two sides of a match.
type TeamSide string

const (
	TeamA TeamSide = "teamA"
	TeamB TeamSide = "teamB"
)

// Opponent returns the other side.
func (s TeamSide) Opponent() TeamSide {
	if s == TeamA {
		return TeamB
	}
	return TeamA
}

// HoleResult is the outcome of a single hole. The empty value is never
// stored; an undecided hole is represented by a nil *HoleResult.
type HoleResult string

const (
	HoleWonByTeamA HoleResult = "teamA"
	HoleWonByTeamB HoleResult = "teamB"
	HoleHalved     HoleResult = "AS"
)

// Winner is the final result of a match: a side, or "AS" for a halved match.
type Winner string

const (
	WinnerTeamA     Winner = "teamA"
	WinnerTeamB     Winner = "teamB"
	WinnerAllSquare Winner = "AS"
	WinnerNone      Winner = ""
)

// Format selects the scoring rules for every match in a round. It is
// immutable once the round has matches.
type Format string

const (
	FormatSingles        Format = "singles"
	FormatTwoManBestBall Format = "twoManBestBall"
	FormatTwoManShamble  Format = "twoManShamble"
	FormatTwoManScramble Format = "twoManScramble"
)

// PlayersPerSide returns how many players each side carries in this format.
func (f Format) PlayersPerSide() int {
	if f == FormatSingles {
		return 1
	}
	return 2
}

// TeamScored reports whether the format records one gross score per team
// rather than per player.
func (f Format) TeamScored() bool { return f == FormatTwoManScramble }

// TracksDrives reports whether the format records whose drive was used.
func (f Format) TracksDrives() bool {
	return f == FormatTwoManScramble || f == FormatTwoManShamble
}

// Tier is a roster flight/division label ("A", "B", ...). Unknown is the
// fallback when a player is missing from the tournament roster.
type Tier string

const TierUnknown Tier = "Unknown"

// MatchOutcome is a single player's result in one match.
type MatchOutcome string

const (
	OutcomeWin    MatchOutcome = "win"
	OutcomeLoss   MatchOutcome = "loss"
	OutcomeHalved MatchOutcome = "halved"
)
