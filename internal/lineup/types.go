package lineup

import (
	"fmt"
	"sort"
	"strings"
)

// Role is a player's positional category.
type Role string

const (
	RoleWicketKeeper Role = "WK"
	RoleBatter       Role = "BAT"
	RoleAllRounder   Role = "ALL"
	RoleBowler       Role = "BOWL"
)

// Roles lists every role in display and fill order.
var Roles = []Role{RoleWicketKeeper, RoleBatter, RoleAllRounder, RoleBowler}

// DefaultLineupSize is the number of players in a lineup.
const DefaultLineupSize = 11

// ParseRole accepts a role code in any letter case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if r.rank() < 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

func (r Role) rank() int {
	for i, role := range Roles {
		if role == r {
			return i
		}
	}
	return -1
}

// Player is one eligible member of the pool.
type Player struct {
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	RealTeam string `json:"real_team"`
}

// Pool is the immutable set of players a batch draws from. Players are kept
// ordered by role, then by the order they were supplied.
type Pool struct {
	players []Player
	teams   [2]string
	teamIdx []int
	byRole  map[Role][]int
	index   map[string]int
}

// NewPool validates players against the two real teams and indexes them.
func NewPool(team1, team2 string, players []Player) (*Pool, error) {
	if team1 == "" || team2 == "" {
		return nil, fmt.Errorf("%w: two real teams are required", ErrInvalidConfig)
	}
	if team1 == team2 {
		return nil, fmt.Errorf("%w: real teams must differ, both are %q", ErrInvalidConfig, team1)
	}
	if len(players) == 0 {
		return nil, ErrEmptyPool
	}

	sorted := make([]Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Role.rank() < sorted[j].Role.rank()
	})

	p := &Pool{
		players: sorted,
		teams:   [2]string{team1, team2},
		teamIdx: make([]int, len(sorted)),
		byRole:  make(map[Role][]int, len(Roles)),
		index:   make(map[string]int, len(sorted)),
	}

	for i, player := range sorted {
		if player.Name == "" {
			return nil, fmt.Errorf("%w: player at position %d has no name", ErrInvalidConfig, i)
		}
		if player.Role.rank() < 0 {
			return nil, fmt.Errorf("%w: %q for player %s", ErrUnknownRole, player.Role, player.Name)
		}
		if _, dup := p.index[player.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate player %s", ErrInvalidConfig, player.Name)
		}
		switch player.RealTeam {
		case team1:
			p.teamIdx[i] = 0
		case team2:
			p.teamIdx[i] = 1
		default:
			return nil, fmt.Errorf("%w: player %s plays for %q, not %s or %s",
				ErrInvalidConfig, player.Name, player.RealTeam, team1, team2)
		}
		p.index[player.Name] = i
		p.byRole[player.Role] = append(p.byRole[player.Role], i)
	}

	return p, nil
}

// Len returns the number of players in the pool.
func (p *Pool) Len() int { return len(p.players) }

// Teams returns the two real team names in order.
func (p *Pool) Teams() [2]string { return p.teams }

// Player returns the player at index i.
func (p *Pool) Player(i int) Player { return p.players[i] }

// Players returns a copy of the ordered player list.
func (p *Pool) Players() []Player {
	out := make([]Player, len(p.players))
	copy(out, p.players)
	return out
}

// Index looks a player up by name.
func (p *Pool) Index(name string) (int, bool) {
	i, ok := p.index[name]
	return i, ok
}

// FirstNames returns the names of the first n players in pool order.
func (p *Pool) FirstNames(n int) []string {
	if n > len(p.players) {
		n = len(p.players)
	}
	names := make([]string, 0, n)
	for _, player := range p.players[:n] {
		names = append(names, player.Name)
	}
	return names
}

// RoleCount returns how many pool players have the given role.
func (p *Pool) RoleCount(role Role) int { return len(p.byRole[role]) }

// Lineup is an accepted, immutable lineup.
type Lineup struct {
	Index       int      `json:"index"`
	Players     []Player `json:"players"`
	Captain     Player   `json:"captain"`
	ViceCaptain Player   `json:"vice_captain"`
	TeamCounts  [2]int   `json:"team_counts"`
	Formation   [4]int   `json:"formation"`
	Attempts    int      `json:"attempts"`
}

// FormationLabel renders the formation as WK-BAT-ALL-BOWL counts, e.g. "1-4-2-4".
func (l Lineup) FormationLabel() string {
	parts := make([]string, len(l.Formation))
	for i, n := range l.Formation {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, "-")
}

// Names returns the lineup's player names in order.
func (l Lineup) Names() []string {
	names := make([]string, len(l.Players))
	for i, p := range l.Players {
		names[i] = p.Name
	}
	return names
}

// Batch is the ordered output of one generation request.
type Batch struct {
	ID       string    `json:"id"`
	Teams    [2]string `json:"teams"`
	Lineups  []Lineup  `json:"lineups"`
	Attempts int       `json:"attempts"`
}

// TeamCount pairs a real team with its player count in a lineup.
type TeamCount struct {
	Team  string `json:"team"`
	Count int    `json:"count"`
}

// Record is the flat shape consumed by display and export layers.
type Record struct {
	Players     []string    `json:"players"`
	Captain     string      `json:"captain"`
	ViceCaptain string      `json:"vice_captain"`
	Formation   string      `json:"formation"`
	RoleCounts  []int       `json:"role_counts"`
	TeamCounts  []TeamCount `json:"team_counts"`
}

// Records flattens the batch in generation order.
func (b *Batch) Records() []Record {
	records := make([]Record, len(b.Lineups))
	for i, l := range b.Lineups {
		roleCounts := l.Formation
		records[i] = Record{
			Players:     l.Names(),
			Captain:     l.Captain.Name,
			ViceCaptain: l.ViceCaptain.Name,
			Formation:   l.FormationLabel(),
			RoleCounts:  roleCounts[:],
			TeamCounts: []TeamCount{
				{Team: b.Teams[0], Count: l.TeamCounts[0]},
				{Team: b.Teams[1], Count: l.TeamCounts[1]},
			},
		}
	}
	return records
}
