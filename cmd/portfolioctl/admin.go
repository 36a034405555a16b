package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"research-portfolio/internal/app"
	"research-portfolio/internal/storage"
)

func init() {
	rootCmd.AddCommand(migrateCmd, reindexCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := storage.New(cfg.DBDriver, cfg.DSN())
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		if err := storage.Migrate(db); err != nil {
			return err
		}
		if humanOutput {
			fmt.Printf("%s schema is up to date\n", cfg.DBDriver)
			return nil
		}
		return outputJSON(map[string]string{"status": "migrated", "driver": cfg.DBDriver})
	},
}

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Embed every paper into the Qdrant index",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if a.Indexer == nil {
				return errors.New("QDRANT_URL not configured")
			}
			stats, err := a.Indexer.Reindex(ctx, a.Catalog.Papers())
			if err != nil {
				return err
			}
			if humanOutput {
				fmt.Printf("%d papers, %d indexed, %d failed\n", stats.Papers, stats.Indexed, stats.Failed)
				return nil
			}
			return outputJSON(stats)
		})
	},
}
