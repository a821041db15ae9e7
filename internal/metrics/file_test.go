package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYAML_Structured(t *testing.T) {
	input := `
mode: dream_team_pct
key_players: [Kohli, Bumrah]
weights:
  Kohli: 80
  Bumrah: 65.5
`
	f, err := ParseYAML(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, ModeDreamTeamPct, f.Mode)
	assert.Equal(t, []string{"Kohli", "Bumrah"}, f.KeyPlayers)
	assert.Equal(t, map[string]float64{"Kohli": 80, "Bumrah": 65.5}, f.Weights)
}

func TestParseYAML_BareMapping(t *testing.T) {
	f, err := ParseYAML(strings.NewReader("Kohli: 42\nSmith: 17\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultMode, f.Mode)
	assert.Equal(t, map[string]float64{"Kohli": 42, "Smith": 17}, f.Weights)
}

func TestParseYAML_Errors(t *testing.T) {
	_, err := ParseYAML(strings.NewReader("mode: strike_rate\n"))
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = ParseYAML(strings.NewReader("Kohli: lots\n"))
	assert.ErrorIs(t, err, ErrInvalidFile)

	f, err := ParseYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Weights)
}

func TestParseCSV(t *testing.T) {
	f, err := ParseCSV(strings.NewReader("player,value\nKohli,80\nSmith, 12.5\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Kohli": 80, "Smith": 12.5}, f.Weights)

	f, err = ParseCSV(strings.NewReader("Kohli,80\n"))
	require.NoError(t, err)
	assert.Equal(t, 80.0, f.Weights["Kohli"])

	_, err = ParseCSV(strings.NewReader("Kohli,80\nSmith,lots\n"))
	assert.ErrorIs(t, err, ErrInvalidFile)

	_, err = ParseCSV(strings.NewReader("Kohli,80\nKohli,10\n"))
	assert.ErrorIs(t, err, ErrInvalidFile)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "weights.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("mode: average_points\nweights:\n  Kohli: 5\n"), 0o644))
	f, err := LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, ModeAveragePoints, f.Mode)

	csvPath := filepath.Join(dir, "weights.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Kohli,5\n"), 0o644))
	f, err = LoadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, 5.0, f.Weights["Kohli"])

	txtPath := filepath.Join(dir, "weights.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("Kohli 5"), 0o644))
	_, err = LoadFile(txtPath)
	assert.ErrorIs(t, err, ErrInvalidFile)
}
