package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/rand"

	"github.com/stitts-dev/xi-generator/internal/export"
	"github.com/stitts-dev/xi-generator/internal/lineup"
	"github.com/stitts-dev/xi-generator/internal/metrics"
	"github.com/stitts-dev/xi-generator/internal/roster"
	"github.com/stitts-dev/xi-generator/pkg/logger"
)

type generateFlags struct {
	team1, team2 string
	weightsPath  string
	mode         string
	keyPlayers   []string
	noKeyPlayers bool
	seed         uint64
	output       string
	format       string
}

func newGenerateCommand(v *viper.Viper) *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate a batch of lineups",
		Long: `Generate a batch of lineups from the roster.

When --team1/--team2 are omitted the first two teams of the roster are used.
Players missing from the weights file get the default value of the metric
mode. Without --key-players the first five players of the pool are eligible
for captaincy, unless --no-key-players is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, v, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.team1, "team1", "", "first real team")
	flags.StringVar(&f.team2, "team2", "", "second real team")
	flags.StringVar(&f.weightsPath, "weights", "", "weights file (.yaml, .yml or .csv)")
	flags.StringVar(&f.mode, "mode", "", "metric mode (fantasy_points, dream_team_pct, average_points); overrides the weights file")
	flags.StringSliceVar(&f.keyPlayers, "key-players", nil, "players eligible for captain and vice")
	flags.BoolVar(&f.noKeyPlayers, "no-key-players", false, "draw captain and vice from the whole pool")
	flags.Uint64Var(&f.seed, "seed", 0, "random seed for a reproducible batch")
	flags.StringVarP(&f.output, "out", "o", "", "output file (default: stdout)")
	flags.StringVar(&f.format, "format", "", "output format: text or csv (default: csv for --out, text otherwise)")

	flags.Int("teams", 0, "number of lineups (default $DEFAULT_TEAM_COUNT)")
	flags.Int("max-per-team", 0, "max players from one real team (default $DEFAULT_MAX_PER_TEAM)")
	flags.Int("max-attempts", 0, "attempts per lineup before giving up, 0 for unbounded (default $MAX_ATTEMPTS)")
	flags.Int("workers", 0, "lineups generated in parallel (default $GENERATION_WORKERS)")
	_ = v.BindPFlag("DEFAULT_TEAM_COUNT", flags.Lookup("teams"))
	_ = v.BindPFlag("DEFAULT_MAX_PER_TEAM", flags.Lookup("max-per-team"))
	_ = v.BindPFlag("MAX_ATTEMPTS", flags.Lookup("max-attempts"))
	_ = v.BindPFlag("GENERATION_WORKERS", flags.Lookup("workers"))

	return cmd
}

func runGenerate(cmd *cobra.Command, v *viper.Viper, f generateFlags) error {
	format := strings.ToLower(f.format)
	if format == "" {
		format = "text"
		if f.output != "" {
			format = "csv"
		}
	}
	if format != "text" && format != "csv" {
		return fmt.Errorf("unknown output format: %q", f.format)
	}

	entries, err := roster.LoadFile(v.GetString("ROSTER_PATH"))
	if err != nil {
		return err
	}
	team1, team2 := f.team1, f.team2
	if team1 == "" || team2 == "" {
		teams := roster.Teams(entries)
		if len(teams) < 2 {
			return fmt.Errorf("roster needs two teams with active players, found %d", len(teams))
		}
		if team1 == "" {
			team1 = teams[0]
		}
		if team2 == "" {
			for _, t := range teams {
				if t != team1 {
					team2 = t
					break
				}
			}
		}
	}

	pool, err := roster.BuildPool(entries, team1, team2)
	if err != nil {
		return fmt.Errorf("error building player pool: %w", err)
	}

	weightsFile := &metrics.File{Mode: metrics.DefaultMode}
	if f.weightsPath != "" {
		if weightsFile, err = metrics.LoadFile(f.weightsPath); err != nil {
			return err
		}
	}
	mode := weightsFile.Mode
	if f.mode != "" {
		if mode, err = metrics.ParseMode(f.mode); err != nil {
			return err
		}
	}
	weights, err := metrics.Resolve(pool, mode, weightsFile.Weights)
	if err != nil {
		return fmt.Errorf("error resolving weights: %w", err)
	}

	keyPlayers := f.keyPlayers
	if len(keyPlayers) == 0 {
		keyPlayers = weightsFile.KeyPlayers
	}
	if !f.noKeyPlayers && len(keyPlayers) == 0 {
		keyPlayers = metrics.DefaultKeyPlayers(pool)
	}

	opts := lineup.Options{
		TeamCount:      v.GetInt("DEFAULT_TEAM_COUNT"),
		MaxPerRealTeam: v.GetInt("DEFAULT_MAX_PER_TEAM"),
		KeyPlayers:     keyPlayers,
		UseKeyPlayers:  !f.noKeyPlayers,
		MaxAttempts:    v.GetInt("MAX_ATTEMPTS"),
		Workers:        v.GetInt("GENERATION_WORKERS"),
	}
	if cmd.Flags().Changed("seed") {
		opts.Source = rand.NewSource(f.seed)
	}

	gen, err := lineup.NewGenerator(pool, weights, opts, logger.WithService(name).WithField("mode", mode))
	if err != nil {
		return err
	}
	batch, err := gen.Generate(cmd.Context())
	if err != nil {
		return err
	}

	out, err := openOutput(cmd, f.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if format == "csv" {
		err = export.WriteCSV(out, batch)
	} else {
		err = export.WriteText(out, batch)
	}
	if err != nil {
		return err
	}
	if f.output != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d lineups to %s\n", len(batch.Lineups), f.output)
	}
	return nil
}
