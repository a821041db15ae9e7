package lineup

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/stitts-dev/xi-generator/pkg/logger"
)

// Options configures one generation batch.
type Options struct {
	TeamCount      int      `json:"team_count"`
	MaxPerRealTeam int      `json:"max_per_real_team"`
	KeyPlayers     []string `json:"key_players,omitempty"`
	UseKeyPlayers  bool     `json:"use_key_players"`
	// MaxAttempts bounds the attempts per lineup; 0 retries forever.
	MaxAttempts int `json:"max_attempts"`
	Workers     int `json:"workers"`
	// Source is the master random source. Every lineup draws from its own
	// source seeded from it, so a seeded batch is reproducible for any
	// worker count. Seeded from the clock when nil.
	Source rand.Source `json:"-"`
}

// Generator turns a pool, its weights and the batch options into lineups by
// rejection sampling.
type Generator struct {
	pool        *Pool
	weights     *WeightVector
	constraints ConstraintSet
	builder     *Builder
	opts        Options
	logger      *logrus.Entry

	mu     sync.Mutex
	master rand.Source
}

// NewGenerator performs every distribution-level check up front so that
// Generate only ever fails on infeasible constraints or cancellation.
func NewGenerator(pool *Pool, weights *WeightVector, opts Options, log *logrus.Entry) (*Generator, error) {
	if pool == nil || pool.Len() == 0 {
		return nil, ErrEmptyPool
	}
	if weights == nil || weights.Len() != pool.Len() {
		return nil, fmt.Errorf("%w: weight vector does not match the pool", ErrInvalidWeights)
	}
	if opts.TeamCount <= 0 {
		return nil, fmt.Errorf("%w: team count must be positive, got %d", ErrInvalidConfig, opts.TeamCount)
	}
	if opts.MaxAttempts < 0 {
		return nil, fmt.Errorf("%w: max attempts must not be negative, got %d", ErrInvalidConfig, opts.MaxAttempts)
	}

	constraints := NewConstraintSet(opts.MaxPerRealTeam)
	if err := constraints.Check(); err != nil {
		return nil, err
	}
	if pool.Len() < constraints.LineupSize {
		return nil, fmt.Errorf("%w: %d players, need %d", ErrPoolTooSmall, pool.Len(), constraints.LineupSize)
	}

	var captainPool []int
	if opts.UseKeyPlayers {
		seen := make(map[int]bool, len(opts.KeyPlayers))
		for _, name := range opts.KeyPlayers {
			i, ok := pool.Index(name)
			if !ok {
				return nil, fmt.Errorf("%w: key player %q", ErrUnknownPlayer, name)
			}
			if seen[i] {
				continue
			}
			seen[i] = true
			captainPool = append(captainPool, i)
		}
	}

	if opts.Workers < 1 {
		opts.Workers = 1
	}
	master := opts.Source
	if master == nil {
		master = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	if log == nil {
		log = logger.WithService("lineup-generator")
	}

	return &Generator{
		pool:        pool,
		weights:     weights,
		constraints: constraints,
		builder:     NewBuilder(pool, constraints, captainPool),
		opts:        opts,
		logger:      log,
		master:      master,
	}, nil
}

// Constraints returns the rules every generated lineup satisfies.
func (g *Generator) Constraints() ConstraintSet { return g.constraints }

// Generate produces exactly TeamCount lineups in index order, or fails without
// returning any of them.
func (g *Generator) Generate(ctx context.Context) (*Batch, error) {
	start := time.Now()
	batch := &Batch{
		ID:      uuid.New().String(),
		Teams:   g.pool.Teams(),
		Lineups: make([]Lineup, g.opts.TeamCount),
	}
	log := g.logger.WithField("batch_id", batch.ID)
	log.WithFields(logrus.Fields{
		"pool_size":       g.pool.Len(),
		"team_count":      g.opts.TeamCount,
		"max_per_team":    g.constraints.MaxPerRealTeam,
		"use_key_players": g.opts.UseKeyPlayers,
		"captain_pool":    len(g.builder.captainPool),
		"max_attempts":    g.opts.MaxAttempts,
		"workers":         g.opts.Workers,
	}).Info("Starting lineup generation")

	seeds := g.seeds(g.opts.TeamCount)

	var err error
	if g.opts.Workers == 1 {
		for i := range batch.Lineups {
			batch.Lineups[i], err = g.GenerateLineup(ctx, i, g.sampler(seeds[i]))
			if err != nil {
				break
			}
		}
	} else {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(g.opts.Workers)
		for i := range batch.Lineups {
			eg.Go(func() error {
				l, err := g.GenerateLineup(egCtx, i, g.sampler(seeds[i]))
				if err != nil {
					return err
				}
				batch.Lineups[i] = l
				return nil
			})
		}
		err = eg.Wait()
	}

	batchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		batchesTotal.WithLabelValues("failed").Inc()
		log.WithError(err).Warn("Lineup generation failed")
		return nil, err
	}

	for _, l := range batch.Lineups {
		batch.Attempts += l.Attempts
	}
	batchesTotal.WithLabelValues("ok").Inc()
	log.WithFields(logrus.Fields{
		"lineups_generated": len(batch.Lineups),
		"attempts":          batch.Attempts,
		"execution_time":    time.Since(start),
	}).Info("Lineup generation completed")

	return batch, nil
}

// GenerateLineup runs the build/validate loop for the lineup at index.
func (g *Generator) GenerateLineup(ctx context.Context, index int, s *Sampler) (Lineup, error) {
	var reason string
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return Lineup{}, err
		}
		if g.opts.MaxAttempts > 0 && attempt > g.opts.MaxAttempts {
			return Lineup{}, &GenerationExhaustedError{Index: index, Attempts: g.opts.MaxAttempts, Reason: reason}
		}
		attemptsTotal.Inc()

		c, err := g.builder.Build(s)
		if err != nil {
			reason = attemptReason(err)
			attemptsRejected.WithLabelValues("build").Inc()
			g.logger.WithFields(logrus.Fields{
				"lineup":  index + 1,
				"attempt": attempt,
			}).WithError(err).Debug("Lineup attempt aborted")
			continue
		}

		l := g.builder.lineup(c)
		if err := g.constraints.Validate(l); err != nil {
			reason = err.Error()
			attemptsRejected.WithLabelValues("validate").Inc()
			g.logger.WithFields(logrus.Fields{
				"lineup":  index + 1,
				"attempt": attempt,
			}).WithError(err).Debug("Lineup rejected")
			continue
		}

		l.Index = index
		l.Attempts = attempt
		lineupsGenerated.Inc()
		attemptsPerLineup.Observe(float64(attempt))
		return l, nil
	}
}

func (g *Generator) sampler(seed uint64) *Sampler {
	return NewSampler(g.weights, rand.NewSource(seed))
}

func (g *Generator) seeds(n int) []uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = g.master.Uint64()
	}
	return seeds
}

func attemptReason(err error) string {
	var ae *attemptError
	if errors.As(err, &ae) {
		return ae.reason
	}
	return err.Error()
}
