// Command optimize drives the co-evolutionary team optimizer: each
// invocation loads (or initializes) a checkpoint and runs a fixed number
// of generations, writing the checkpoint and a ranked CSV export back
// out after every generation. State lives entirely on disk between runs,
// so the command is meant to be invoked repeatedly (a cron job, a
// shell loop) rather than left running.
package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wallacewatler/battlesim/internal/catalog"
	"github.com/wallacewatler/battlesim/internal/optimize"
)

func main() {
	v := viper.New()
	v.SetDefault("rule-gen", 6)
	v.SetDefault("resources", "resources/x_y")
	v.SetDefault("seed", 1)
	v.SetDefault("iterations", 1)
	v.SetDefault("checkpoint", "solver_state.json")
	v.SetDefault("ranking-csv", "maximizer_meta.csv")
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "optimize",
		Short: "run optimizer generations, persisting state between invocations",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := zerolog.New(os.Stderr).With().Timestamp().Logger()

			cat, err := catalog.Load(catalog.RuleGen(v.GetInt("rule-gen")), v.GetString("resources"))
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}

			rng := rand.New(rand.NewSource(v.GetInt64("seed")))
			checkpointPath := v.GetString("checkpoint")

			solver, err := optimize.LoadCheckpoint(checkpointPath, cat, log)
			if errors.Is(err, os.ErrNotExist) {
				log.Info().Str("path", checkpointPath).Msg("no checkpoint found, initializing fresh population")
				solver = optimize.NewSolver(cat, log, rng)
			} else if err != nil {
				return fmt.Errorf("load checkpoint: %w", err)
			}

			iterations := v.GetInt("iterations")
			for i := 0; i < iterations; i++ {
				solver.DoIter(rng)

				if err := solver.SaveCheckpoint(checkpointPath); err != nil {
					return fmt.Errorf("save checkpoint: %w", err)
				}
				if err := solver.WriteMaximizerRankingCSV(v.GetString("ranking-csv")); err != nil {
					return fmt.Errorf("write ranking csv: %w", err)
				}
			}

			return nil
		},
	}

	flags := root.Flags()
	flags.Int("rule-gen", 6, "rule generation to load the catalog under")
	flags.String("resources", "resources/x_y", "directory holding moves.json/species.json")
	flags.Int64("seed", 1, "PRNG seed")
	flags.Int("iterations", 1, "number of DoIter generations to run this invocation")
	flags.String("checkpoint", "solver_state.json", "path to the solver state checkpoint")
	flags.String("ranking-csv", "maximizer_meta.csv", "path to write the ranked maximizer population")
	_ = v.BindPFlags(flags)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
