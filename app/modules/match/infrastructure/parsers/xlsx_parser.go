package parsers

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXParser reads the first sheet of a workbook using the same header
// conventions as the CSV parser.
type XLSXParser struct{}

func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

func (p *XLSXParser) Parse(fileData []byte, fileName string) (*ParsedScorecard, error) {
	f, err := excelize.OpenReader(bytes.NewReader(fileData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse XLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file contains no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("XLSX must contain a header and at least one data row")
	}

	playerIdx, holeColumns := scanHeader(rows[0])
	if playerIdx < 0 {
		playerIdx = 0
	}
	if len(holeColumns) == 0 {
		return nil, fmt.Errorf("XLSX header has no hole columns")
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
