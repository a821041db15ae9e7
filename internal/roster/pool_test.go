package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/xi-generator/internal/lineup"
)

func sampleRoster() []Entry {
	return []Entry{
		{Team: "IND", Role: "BAT", Player: "Kohli", Active: true},
		{Team: "IND", Role: "WK", Player: "Pant", Active: true},
		{Team: "ENG", Role: "BAT", Player: "Root", Active: true},
		{Team: "AUS", Role: "bowl", Player: "Cummins", Active: true},
		{Team: "AUS", Role: "WK", Player: "Carey", Active: false},
		{Team: "AUS", Role: "ALL", Player: "Marsh", Active: true},
		{Team: "IND", Role: "ALL", Player: "Kohli", Active: true},
		{Team: "IND", Role: "COACH", Player: "Dravid", Active: true},
		{Team: "NZ", Role: "BAT", Player: "Williamson", Active: false},
	}
}

func TestTeams(t *testing.T) {
	assert.Equal(t, []string{"IND", "ENG", "AUS"}, Teams(sampleRoster()))
	assert.Empty(t, Teams(nil))
}

func TestFilter(t *testing.T) {
	filtered := Filter(sampleRoster(), "IND", "AUS")
	for _, e := range filtered {
		assert.True(t, e.Active)
		assert.Contains(t, []string{"IND", "AUS"}, e.Team)
	}
	assert.Len(t, filtered, 6)
}

func TestBuildPool(t *testing.T) {
	pool, err := BuildPool(sampleRoster(), "IND", "AUS")
	require.NoError(t, err)

	assert.Equal(t, [2]string{"IND", "AUS"}, pool.Teams())
	assert.Equal(t, []lineup.Player{
		{Name: "Pant", Role: lineup.RoleWicketKeeper, RealTeam: "IND"},
		{Name: "Kohli", Role: lineup.RoleBatter, RealTeam: "IND"},
		{Name: "Marsh", Role: lineup.RoleAllRounder, RealTeam: "AUS"},
		{Name: "Cummins", Role: lineup.RoleBowler, RealTeam: "AUS"},
	}, pool.Players())

	_, ok := pool.Index("Carey")
	assert.False(t, ok, "inactive players are excluded")
	_, ok = pool.Index("Dravid")
	assert.False(t, ok, "unknown roles are dropped")
}

func TestBuildPool_Errors(t *testing.T) {
	_, err := BuildPool(sampleRoster(), "IND", "IND")
	assert.ErrorIs(t, err, lineup.ErrInvalidConfig)

	_, err = BuildPool(sampleRoster(), "NZ", "SA")
	assert.ErrorIs(t, err, lineup.ErrEmptyPool)
}

func TestBuildPool_TeamWithoutPlayers(t *testing.T) {
	_, err := BuildPool(sampleRoster(), "IND", "NZ")
	assert.ErrorIs(t, err, lineup.ErrEmptyPool)
	assert.Contains(t, err.Error(), "no active players for NZ")
}
