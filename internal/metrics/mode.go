package metrics

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/stitts-dev/xi-generator/internal/lineup"
)

var (
	ErrUnknownMode = errors.New("unknown metric mode")
	ErrOutOfRange  = errors.New("metric value out of range")
)

// Mode names the per-player statistic used as a selection weight.
type Mode string

const (
	ModeFantasyPoints Mode = "fantasy_points"
	ModeDreamTeamPct  Mode = "dream_team_pct"
	ModeAveragePoints Mode = "average_points"
)

// DefaultMode is used when a request names none.
const DefaultMode = ModeFantasyPoints

// DefaultKeyPlayerCount is how many leading pool players become key players
// when none are chosen.
const DefaultKeyPlayerCount = 5

type modeSpec struct {
	label        string
	defaultValue float64
	max          float64 // 0 means unbounded
}

var modes = map[Mode]modeSpec{
	ModeFantasyPoints: {label: "Fantasy Points", defaultValue: 30},
	ModeDreamTeamPct:  {label: "Dream Team % Inclusion", defaultValue: 50, max: 100},
	ModeAveragePoints: {label: "Average Points", defaultValue: 30},
}

// Modes lists the supported modes in display order.
var Modes = []Mode{ModeFantasyPoints, ModeDreamTeamPct, ModeAveragePoints}

// ParseMode accepts a mode key or its display label. Empty means DefaultMode.
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultMode, nil
	}
	key := Mode(strings.ToLower(strings.ReplaceAll(s, "-", "_")))
	if _, ok := modes[key]; ok {
		return key, nil
	}
	for m, def := range modes {
		if strings.EqualFold(def.label, s) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Label is the human readable name of the mode.
func (m Mode) Label() string { return modes[m].label }

// Default is the value assumed for a player with no explicit metric.
func (m Mode) Default() float64 { return modes[m].defaultValue }

// Check rejects values the mode cannot hold.
func (m Mode) Check(player string, v float64) error {
	def, ok := modes[m]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMode, string(m))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %s has %v, must be a non-negative number", ErrOutOfRange, player, v)
	}
	if def.max > 0 && v > def.max {
		return fmt.Errorf("%w: %s has %v, %s is at most %v", ErrOutOfRange, player, v, def.label, def.max)
	}
	return nil
}

// Fill returns a value for every pool player: the given value when present,
// the mode default otherwise. Names outside the pool are rejected.
func Fill(pool *lineup.Pool, mode Mode, values map[string]float64) (map[string]float64, error) {
	for name := range values {
		if _, ok := pool.Index(name); !ok {
			return nil, fmt.Errorf("%w: weight for %q", lineup.ErrUnknownPlayer, name)
		}
	}

	filled := make(map[string]float64, pool.Len())
	for _, p := range pool.Players() {
		v, ok := values[p.Name]
		if !ok {
			v = mode.Default()
		}
		if err := mode.Check(p.Name, v); err != nil {
			return nil, err
		}
		filled[p.Name] = v
	}
	return filled, nil
}

// Resolve fills missing values and normalizes them into the pool's weight
// vector.
func Resolve(pool *lineup.Pool, mode Mode, values map[string]float64) (*lineup.WeightVector, error) {
	filled, err := Fill(pool, mode, values)
	if err != nil {
		return nil, err
	}
	return lineup.NewWeightVector(pool, filled)
}

// DefaultKeyPlayers returns the first DefaultKeyPlayerCount players of the pool.
func DefaultKeyPlayers(pool *lineup.Pool) []string {
	return pool.FirstNames(DefaultKeyPlayerCount)
}
