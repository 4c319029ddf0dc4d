package parsers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

func TestCSVParser_Parse(t *testing.T) {
	data := []byte("player,1,2,3,notes\namos,4,5,,front nine\nbert,3,4,5,\n,9,9,9,\n")

	card, err := NewCSVParser().Parse(data, "scores.csv")
	require.NoError(t, err)
	require.Len(t, card.Rows, 2, "rows without a player identifier are skipped")

	amos := card.Rows[0]
	require.Equal(t, sharedtypes.PlayerID("amos"), amos.PlayerID)
	require.Equal(t, 4, *amos.Holes[0])
	require.Equal(t, 5, *amos.Holes[1])
	require.Nil(t, amos.Holes[2], "empty cells stay unentered")
	require.Nil(t, amos.Holes[17])
}

func TestCSVParser_RejectsHeaderWithoutHoles(t *testing.T) {
	_, err := NewCSVParser().Parse([]byte("player,notes\namos,hi\n"), "bad.csv")
	require.Error(t, err)
}

func TestCSVParser_IgnoresGarbageScores(t *testing.T) {
	data := []byte("player,1,2\namos,four,-2\n")

	card, err := NewCSVParser().Parse(data, "scores.csv")
	require.NoError(t, err)
	require.Len(t, card.Rows, 1)
	require.Nil(t, card.Rows[0].Holes[0])
	require.Nil(t, card.Rows[0].Holes[1], "non-positive scores are dropped")
}

func TestXLSXParser_Parse(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"player", 1, 2, 3}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"amos", 4, 5, 3}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"bert", 5, "", 4}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	card, err := NewXLSXParser().Parse(buf.Bytes(), "scores.xlsx")
	require.NoError(t, err)
	require.Len(t, card.Rows, 2)
	require.Equal(t, 3, *card.Rows[0].Holes[2])
	require.Nil(t, card.Rows[1].Holes[1])
}

func TestForFile(t *testing.T) {
	p, err := ForFile("round1.CSV")
	require.NoError(t, err)
	require.IsType(t, &CSVParser{}, p)

	p, err = ForFile("round1.xlsx")
	require.NoError(t, err)
	require.IsType(t, &XLSXParser{}, p)

	_, err = ForFile("round1.pdf")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
