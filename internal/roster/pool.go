package roster

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/xi-generator/internal/lineup"
	"github.com/stitts-dev/xi-generator/pkg/logger"
)

// Teams returns the distinct real teams with at least one active player, in
// the order they first appear.
func Teams(entries []Entry) []string {
	seen := make(map[string]bool)
	var teams []string
	for _, e := range entries {
		if !e.Active || seen[e.Team] {
			continue
		}
		seen[e.Team] = true
		teams = append(teams, e.Team)
	}
	return teams
}

// Filter keeps the active entries of the two teams.
func Filter(entries []Entry, team1, team2 string) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Active && (e.Team == team1 || e.Team == team2) {
			out = append(out, e)
		}
	}
	return out
}

// BuildPool turns roster rows into the player pool for a match between team1
// and team2. Inactive rows and other teams are ignored, rows with an unknown
// role are dropped, and a name listed more than once keeps its first row in
// WK, BAT, ALL, BOWL order. Both teams need at least one active player.
func BuildPool(entries []Entry, team1, team2 string) (*lineup.Pool, error) {
	log := logger.WithService("roster").WithFields(logrus.Fields{
		"team1": team1,
		"team2": team2,
	})

	byRole := make(map[lineup.Role][]Entry, len(lineup.Roles))
	for _, e := range Filter(entries, team1, team2) {
		role, err := lineup.ParseRole(e.Role)
		if err != nil {
			log.WithField("player", e.Player).WithError(err).Warn("Dropping roster row with unknown role")
			continue
		}
		byRole[role] = append(byRole[role], e)
	}

	seen := make(map[string]bool)
	var players []lineup.Player
	for _, role := range lineup.Roles {
		for _, e := range byRole[role] {
			if seen[e.Player] {
				log.WithFields(logrus.Fields{
					"player": e.Player,
					"role":   e.Role,
					"team":   e.Team,
				}).Warn("Ignoring duplicate roster row")
				continue
			}
			seen[e.Player] = true
			players = append(players, lineup.Player{
				Name:     e.Player,
				Role:     role,
				RealTeam: e.Team,
			})
		}
	}

	pool, err := lineup.NewPool(team1, team2, players)
	if err != nil {
		return nil, err
	}
	for _, team := range pool.Teams() {
		if !hasTeam(players, team) {
			return nil, fmt.Errorf("%w: no active players for %s", lineup.ErrEmptyPool, team)
		}
	}
	for _, role := range lineup.Roles {
		if pool.RoleCount(role) == 0 {
			log.WithField("role", role).Warn("No active players for role")
		}
	}
	log.WithField("pool_size", pool.Len()).Debug("Player pool built")
	return pool, nil
}

func hasTeam(players []lineup.Player, team string) bool {
	for _, p := range players {
		if p.RealTeam == team {
			return true
		}
	}
	return false
}
