// Package parsers reads uploaded scorecard files into a neutral row shape
// the match service maps onto hole entries.
package parsers

import (
	"errors"

	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// PlayerScoreRow is one player's line on a scorecard: an identifier and up
// to 18 hole scores. Missing holes stay nil.
type PlayerScoreRow struct {
	PlayerID sharedtypes.PlayerID
	Holes    [sharedtypes.HolesPerRound]*int
}

// ParsedScorecard is the neutral output of any parser.
type ParsedScorecard struct {
	FileName string
	Rows     []PlayerScoreRow
}

// Parser turns file bytes into a ParsedScorecard.
type Parser interface {
	Parse(fileData []byte, fileName string) (*ParsedScorecard, error)
}

// ErrUnsupportedFormat means no parser exists for the file extension.
var ErrUnsupportedFormat = errors.New("unsupported scorecard format")
