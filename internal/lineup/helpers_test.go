package lineup

import (
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/stitts-dev/xi-generator/pkg/logger"
)

const (
	teamA = "IND"
	teamB = "AUS"
)

// buildPlayers returns perRole players of every listed role for both teams.
func buildPlayers(perRole int, roles ...Role) []Player {
	if len(roles) == 0 {
		roles = Roles
	}
	var players []Player
	for _, team := range []string{teamA, teamB} {
		for _, role := range roles {
			for i := 0; i < perRole; i++ {
				players = append(players, Player{
					Name:     fmt.Sprintf("%s-%s-%d", team, role, i),
					Role:     role,
					RealTeam: team,
				})
			}
		}
	}
	return players
}

func newTestPool(t *testing.T, players []Player) *Pool {
	t.Helper()
	pool, err := NewPool(teamA, teamB, players)
	require.NoError(t, err)
	return pool
}

func uniformWeights(pool *Pool) map[string]float64 {
	weights := make(map[string]float64, pool.Len())
	for _, p := range pool.Players() {
		weights[p.Name] = 1
	}
	return weights
}

func testLogger() *logrus.Entry {
	return logrus.NewEntry(logger.Discard())
}

func newTestGenerator(t *testing.T, pool *Pool, opts Options) *Generator {
	t.Helper()
	weights, err := NewWeightVector(pool, uniformWeights(pool))
	require.NoError(t, err)
	if opts.Source == nil {
		opts.Source = rand.NewSource(42)
	}
	gen, err := NewGenerator(pool, weights, opts, testLogger())
	require.NoError(t, err)
	return gen
}
