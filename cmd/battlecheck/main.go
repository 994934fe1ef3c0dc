// Command battlecheck runs one battle between two randomly generated
// teams and prints the resulting payoff, a quick sanity check that a
// catalog and rule generation combination produces a sane search.
package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/wallacewatler/battlesim/internal/battle"
	"github.com/wallacewatler/battlesim/internal/catalog"
)

func main() {
	var ruleGen int
	var resourcesDir string
	var seed int64
	var verbose bool

	root := &cobra.Command{
		Use:   "battlecheck",
		Short: "play one battle between two random teams and print the payoff",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := zerolog.New(os.Stderr).With().Timestamp().Logger()
			if !verbose {
				log = log.Level(zerolog.WarnLevel)
			}

			cat, err := catalog.Load(catalog.RuleGen(ruleGen), resourcesDir)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}

			rng := rand.New(rand.NewSource(seed))
			minimizer := battle.NewTeamBuild(cat, rng)
			maximizer := battle.NewTeamBuild(cat, rng)

			payoff := battle.RunBattle(cat, log, &minimizer, &maximizer, rng)
			fmt.Printf("payoff (maximizer's perspective): %+.4f\n", payoff)
			return nil
		},
	}

	root.Flags().IntVar(&ruleGen, "rule-gen", 6, "rule generation to load the catalog under")
	root.Flags().StringVar(&resourcesDir, "resources", "resources/x_y", "directory holding moves.json/species.json")
	root.Flags().Int64Var(&seed, "seed", 1, "PRNG seed for both team generation and the battle itself")
	root.Flags().BoolVar(&verbose, "verbose", false, "log battle progress to stderr")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
