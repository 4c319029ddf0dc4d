package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// CSVParser reads comma-separated scorecards. The header row needs a player
// column plus numeric hole columns; any other columns are ignored.
type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

func (p *CSVParser) Parse(fileData []byte, fileName string) (*ParsedScorecard, error) {
	reader := csv.NewReader(strings.NewReader(string(fileData)))
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}
		rows = append(rows, record)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV must contain a header and at least one data row")
	}

	playerIdx, holeColumns := scanHeader(rows[0])
	if playerIdx < 0 {
		playerIdx = 0
	}
	if len(holeColumns) == 0 {
		return nil, fmt.Errorf("CSV header has no hole columns")
	}

	card := &ParsedScorecard{FileName: fileName}
	for _, row := range rows[1:] {
		scoreRow, ok := parseRow(row, playerIdx, holeColumns)
		if ok {
			card.Rows = append(card.Rows, scoreRow)
		}
	}
	return card, nil
}

// scanHeader locates the player column and maps column index to hole number.
func scanHeader(header []string) (int, map[int]int) {
	playerIdx := -1
	holeColumns := map[int]int{}

	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		switch name {
		case "player", "player_id", "playerid", "name":
			if playerIdx < 0 {
				playerIdx = i
			}
			continue
		}
		if hole, err := strconv.Atoi(name); err == nil && hole >= 1 && hole <= sharedtypes.HolesPerRound {
			holeColumns[i] = hole
		}
	}
	return playerIdx, holeColumns
}

func parseRow(row []string, playerIdx int, holeColumns map[int]int) (PlayerScoreRow, bool) {
	if playerIdx >= len(row) {
		return PlayerScoreRow{}, false
	}
	playerID := strings.TrimSpace(row[playerIdx])
	if playerID == "" {
		return PlayerScoreRow{}, false
	}

	out := PlayerScoreRow{PlayerID: sharedtypes.PlayerID(playerID)}
	for col, hole := range holeColumns {
		if col >= len(row) {
			continue
		}
		raw := strings.TrimSpace(row[col])
		if raw == "" {
			continue
		}
		score, err := strconv.Atoi(raw)
		if err != nil || score <= 0 {
			continue
		}
		out.Holes[hole-1] = &score
	}
	return out, true
}
