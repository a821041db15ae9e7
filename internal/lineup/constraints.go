package lineup

import (
	"fmt"
	"slices"
)

// ConstraintSet holds the structural rules of a completed lineup. It is a
// value type with no hidden state, so validating the same lineup twice always
// yields the same answer.
type ConstraintSet struct {
	LineupSize     int
	RequiredRoles  []Role
	MaxPerRealTeam int
}

// NewConstraintSet returns the standard rules: 11 players, every role
// represented, at most maxPerRealTeam players from one real team.
func NewConstraintSet(maxPerRealTeam int) ConstraintSet {
	return ConstraintSet{
		LineupSize:     DefaultLineupSize,
		RequiredRoles:  Roles,
		MaxPerRealTeam: maxPerRealTeam,
	}
}

// Check validates the rules themselves.
func (c ConstraintSet) Check() error {
	if c.LineupSize <= 0 {
		return fmt.Errorf("%w: lineup size must be positive, got %d", ErrInvalidConfig, c.LineupSize)
	}
	if c.MaxPerRealTeam <= 0 {
		return fmt.Errorf("%w: max players per real team must be positive, got %d", ErrInvalidConfig, c.MaxPerRealTeam)
	}
	if len(c.RequiredRoles) > c.LineupSize {
		return fmt.Errorf("%w: %d required roles cannot fit in %d players", ErrInvalidConfig, len(c.RequiredRoles), c.LineupSize)
	}
	return nil
}

// IsComplete reports whether the lineup holds exactly LineupSize distinct players.
func (c ConstraintSet) IsComplete(l Lineup) bool {
	return len(l.Players) == c.LineupSize && distinctPlayers(l) == c.LineupSize
}

func distinctPlayers(l Lineup) int {
	seen := make(map[string]struct{}, len(l.Players))
	for _, p := range l.Players {
		seen[p.Name] = struct{}{}
	}
	return len(seen)
}

// IsRoleSatisfied reports whether every required role has a representative.
func (c ConstraintSet) IsRoleSatisfied(l Lineup) bool {
	return c.missingRole(l) == ""
}

// RealTeamCounts counts lineup members per real team.
func (c ConstraintSet) RealTeamCounts(l Lineup) map[string]int {
	counts := make(map[string]int, 2)
	for _, p := range l.Players {
		counts[p.RealTeam]++
	}
	return counts
}

// SatisfiesCap reports whether no real team exceeds MaxPerRealTeam.
func (c ConstraintSet) SatisfiesCap(l Lineup) bool {
	for _, n := range c.RealTeamCounts(l) {
		if n > c.MaxPerRealTeam {
			return false
		}
	}
	return true
}

// HasValidCaptaincy reports whether captain and vice are distinct members.
func (c ConstraintSet) HasValidCaptaincy(l Lineup) bool {
	if l.Captain.Name == "" || l.Captain.Name == l.ViceCaptain.Name {
		return false
	}
	var captain, vice bool
	for _, p := range l.Players {
		captain = captain || p.Name == l.Captain.Name
		vice = vice || p.Name == l.ViceCaptain.Name
	}
	return captain && vice
}

// IsValid is the acceptance test of the generation loop.
func (c ConstraintSet) IsValid(l Lineup) bool {
	return c.Validate(l) == nil
}

// Validate returns the first violated rule.
func (c ConstraintSet) Validate(l Lineup) error {
	if !c.IsComplete(l) {
		return fmt.Errorf("lineup needs %d distinct players, got %d", c.LineupSize, distinctPlayers(l))
	}
	if role := c.missingRole(l); role != "" {
		return fmt.Errorf("lineup has no %s player", role)
	}
	counts := c.RealTeamCounts(l)
	for _, team := range teamOrder(l) {
		if n := counts[team]; n > c.MaxPerRealTeam {
			return fmt.Errorf("too many players from %s: %d > %d", team, n, c.MaxPerRealTeam)
		}
	}
	if !c.HasValidCaptaincy(l) {
		return fmt.Errorf("captain %q and vice %q must be distinct lineup members", l.Captain.Name, l.ViceCaptain.Name)
	}
	return nil
}

// teamOrder lists the lineup's real teams in first-appearance order.
func teamOrder(l Lineup) []string {
	var teams []string
	for _, p := range l.Players {
		if !slices.Contains(teams, p.RealTeam) {
			teams = append(teams, p.RealTeam)
		}
	}
	return teams
}

func (c ConstraintSet) missingRole(l Lineup) Role {
	present := make(map[Role]bool, len(c.RequiredRoles))
	for _, p := range l.Players {
		present[p.Role] = true
	}
	for _, role := range c.RequiredRoles {
		if !present[role] {
			return role
		}
	}
	return ""
}
