/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arjohnson15/workoutapp/internal/catalog"
	"github.com/arjohnson15/workoutapp/internal/docstore"
	"github.com/arjohnson15/workoutapp/internal/store"
)

var seedBuiltin bool

// seedCmd replaces the exercise catalog with a fresh import.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import the exercise catalog, replacing the current one",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		docs, err := docstore.Open(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("open document store: %w", err)
		}
		defer docs.Close()

		source := cfg.ExerciseSource
		if seedBuiltin {
			source = catalog.SourceBuiltin
		}
		fetcher := catalog.NewFetcher(&http.Client{Timeout: 60 * time.Second}, cfg.ExercisesURL)
		exercises, err := catalog.Import(cmd.Context(), store.NewExerciseRepository(docs), catalog.NewLoader(source, fetcher))
		if err != nil {
			return err
		}

		categories := catalog.Categories(exercises)
		muscles := catalog.Muscles(exercises)
		log.Infof("imported %d exercises", len(exercises))
		log.Infof("%d categories: %v", len(categories), categories)
		log.Infof("%d muscles: %v", len(muscles), muscles)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().BoolVar(&seedBuiltin, "builtin", false, "seed the builtin exercise list instead of downloading")
}
