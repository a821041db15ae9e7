package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/xi-generator/internal/lineup"
)

func testBatch() *lineup.Batch {
	roles := []lineup.Role{
		lineup.RoleWicketKeeper,
		lineup.RoleBatter, lineup.RoleBatter, lineup.RoleBatter, lineup.RoleBatter,
		lineup.RoleAllRounder, lineup.RoleAllRounder,
		lineup.RoleBowler, lineup.RoleBowler, lineup.RoleBowler, lineup.RoleBowler,
	}
	players := make([]lineup.Player, len(roles))
	for i, role := range roles {
		team := "IND"
		if i%2 == 1 {
			team = "AUS"
		}
		players[i] = lineup.Player{Name: fmt.Sprintf("Player %d", i+1), Role: role, RealTeam: team}
	}

	l := lineup.Lineup{
		Players:     players,
		Captain:     players[2],
		ViceCaptain: players[7],
		TeamCounts:  [2]int{6, 5},
		Formation:   [4]int{1, 4, 2, 4},
		Attempts:    1,
	}
	second := l
	second.Index = 1
	second.Captain, second.ViceCaptain = players[0], players[10]

	return &lineup.Batch{
		ID:      "batch-1",
		Teams:   [2]string{"IND", "AUS"},
		Lineups: []lineup.Lineup{l, second},
	}
}

func TestHeader(t *testing.T) {
	assert.Equal(t, []string{
		"P1", "P2", "P3", "P4", "P5", "P6", "P7", "P8", "P9", "P10", "P11",
		"Captain", "Vice", "Formation", "IND", "AUS",
	}, Header([2]string{"IND", "AUS"}))
}

func TestWriteCSV(t *testing.T) {
	data, err := CSV(testBatch())
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Header([2]string{"IND", "AUS"}), rows[0])
	assert.Equal(t, "Player 1", rows[1][0])
	assert.Equal(t, "Player 11", rows[1][10])
	assert.Equal(t, []string{"Player 3", "Player 8", "1-4-2-4", "6", "5"}, rows[1][11:])
	assert.Equal(t, []string{"Player 1", "Player 11"}, rows[2][11:13])
}

func TestWriteCSV_EmptyBatch(t *testing.T) {
	_, err := CSV(&lineup.Batch{})
	assert.Error(t, err)
	_, err = CSV(nil)
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "xi_IND_vs_AUS_20240309_140500.csv", FileName(testBatch(), now))
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, testBatch()))
	out := buf.String()

	assert.Contains(t, out, "Team 1\n")
	assert.Contains(t, out, "Team 2\n")
	assert.Contains(t, out, "  3. Player 3 [BAT, IND] (C)\n")
	assert.Contains(t, out, "  8. Player 8 [BOWL, AUS] (VC)\n")
	assert.Contains(t, out, "Counts: 6-5 (IND-AUS)")
	assert.Contains(t, out, "Formation: 1-4-2-4 (WK-BAT-ALL-BOWL)")
	assert.Equal(t, 2, strings.Count(out, "(C)"))
}
