package lineup

import (
	"sort"
)

// Builder constructs one candidate lineup per call. It keeps no state between
// attempts; everything an attempt touches lives in its candidate.
type Builder struct {
	pool        *Pool
	constraints ConstraintSet
	captainPool []int
	everyone    []int
}

// NewBuilder prepares a builder. captainPool holds the pool indices eligible
// for captaincy; when empty the whole pool is used.
func NewBuilder(pool *Pool, constraints ConstraintSet, captainPool []int) *Builder {
	everyone := make([]int, pool.Len())
	for i := range everyone {
		everyone[i] = i
	}
	if len(captainPool) == 0 {
		captainPool = everyone
	}
	return &Builder{
		pool:        pool,
		constraints: constraints,
		captainPool: captainPool,
		everyone:    everyone,
	}
}

type candidate struct {
	members    []int
	inLineup   []bool
	teamCounts [2]int
	captain    int
	vice       int
}

func (c *candidate) add(i, team int) {
	c.members = append(c.members, i)
	c.inLineup[i] = true
	c.teamCounts[team]++
}

// Build runs captain/vice selection, mandatory role fill and remainder fill.
// A returned error aborts only this attempt.
func (b *Builder) Build(s *Sampler) (*candidate, error) {
	c := &candidate{
		members:  make([]int, 0, b.constraints.LineupSize),
		inLineup: make([]bool, b.pool.Len()),
	}

	leaders, err := s.Draw(b.captainPool, 2)
	if err != nil {
		return nil, abort(err, "captain pool has %d players, need 2", len(b.captainPool))
	}
	c.captain, c.vice = leaders[0], leaders[1]
	for _, i := range leaders {
		c.add(i, b.pool.teamIdx[i])
	}

	for _, role := range b.constraints.RequiredRoles {
		if b.hasRole(c, role) {
			continue
		}
		pick, err := b.drawEligible(s, c, b.pool.byRole[role])
		if err != nil {
			return nil, abort(err, "no eligible %s player under team cap %d", role, b.constraints.MaxPerRealTeam)
		}
		c.add(pick, b.pool.teamIdx[pick])
	}

	for len(c.members) < b.constraints.LineupSize {
		pick, err := b.drawEligible(s, c, b.everyone)
		if err != nil {
			return nil, abort(err, "only %d of %d players selectable under team cap %d",
				len(c.members), b.constraints.LineupSize, b.constraints.MaxPerRealTeam)
		}
		c.add(pick, b.pool.teamIdx[pick])
	}

	return c, nil
}

// drawEligible draws one player from `from` who is not yet selected and whose
// real team is still under the cap. The eligible set is rebuilt every call so
// probabilities always come from the original weights of what is left.
func (b *Builder) drawEligible(s *Sampler, c *candidate, from []int) (int, error) {
	eligible := make([]int, 0, len(from))
	for _, i := range from {
		if c.inLineup[i] || c.teamCounts[b.pool.teamIdx[i]] >= b.constraints.MaxPerRealTeam {
			continue
		}
		eligible = append(eligible, i)
	}
	if len(eligible) == 0 {
		return -1, ErrInsufficientCandidates
	}
	return s.DrawOne(eligible)
}

func (b *Builder) hasRole(c *candidate, role Role) bool {
	for _, i := range c.members {
		if b.pool.players[i].Role == role {
			return true
		}
	}
	return false
}

// lineup materializes a candidate with players ordered by role, then pool order.
func (b *Builder) lineup(c *candidate) Lineup {
	ordered := make([]int, len(c.members))
	copy(ordered, c.members)
	sort.Ints(ordered)

	l := Lineup{
		Players:     make([]Player, len(ordered)),
		Captain:     b.pool.players[c.captain],
		ViceCaptain: b.pool.players[c.vice],
		TeamCounts:  c.teamCounts,
	}
	for k, i := range ordered {
		p := b.pool.players[i]
		l.Players[k] = p
		l.Formation[p.Role.rank()]++
	}
	return l
}
