package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"research-portfolio/internal/app"
	"research-portfolio/internal/service"
)

func init() {
	rootCmd.AddCommand(syncCmd, checkCmd, reanalyzeCmd, consolidateCmd, importCmd, repairCmd)

	reanalyzeCmd.Flags().IntVar(&reanalyzeLimit, "limit", 10, "Papers per page")
	reanalyzeCmd.Flags().StringVar(&reanalyzeRunID, "run-id", "", "Resume a checkpointed run")
	reanalyzeCmd.Flags().BoolVar(&reanalyzeAll, "all", false, "Keep paging until no papers remain")
	reanalyzeCmd.Flags().Int64Var(&reanalyzePaper, "paper", 0, "Reanalyze a single paper by id")

	importCmd.Flags().BoolVar(&importClear, "clear", false, "Delete every paper before importing")
	importCmd.Flags().StringVar(&importRunID, "run-id", "", "Resume a checkpointed import")
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import new PDFs from the file store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			res, err := a.Sync.Sync(ctx)
			if err != nil {
				return err
			}
			out := newBatchOutput("sync", "", res.Summary, res.Results)
			out.Extra = map[string]any{
				"totalFiles":     res.TotalFiles,
				"newPapers":      res.NewPapers,
				"themesCreated":  res.ThemesCreated,
				"metadataSource": res.MetadataSource,
			}
			return outputBatch(out)
		})
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "List the PDFs a sync would import",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			res, err := a.Sync.CheckNew(ctx)
			if err != nil {
				return err
			}
			if !humanOutput {
				return outputJSON(map[string]any{
					"totalFiles":   res.TotalFiles,
					"existing":     res.Existing,
					"newFileNames": res.NewFileNames,
					"needsSync":    len(res.NewFileNames) > 0,
				})
			}
			fmt.Printf("%d files, %d already imported, %d new\n", res.TotalFiles, res.Existing, len(res.NewFileNames))
			for _, name := range res.NewFileNames {
				fmt.Printf("  %s\n", name)
			}
			return nil
		})
	},
}

var (
	reanalyzeLimit int
	reanalyzeRunID string
	reanalyzeAll   bool
	reanalyzePaper int64
)

var reanalyzeCmd = &cobra.Command{
	Use:   "reanalyze",
	Short: "Refresh model summaries and themes",
	Long: `Reanalyze papers that have stored text, in id order, one page per call.
Each page is checkpointed; --run-id resumes after the last processed paper
and --all keeps paging until the run is complete.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if reanalyzePaper > 0 {
				p, err := a.Reanalyze.One(ctx, reanalyzePaper)
				if err != nil {
					return err
				}
				if humanOutput {
					fmt.Printf("Paper %q re-analyzed\n", p.Title)
					return nil
				}
				return outputJSON(map[string]any{"paperId": p.ID, "title": p.Title})
			}
			return runReanalyze(ctx, a.Reanalyze)
		})
	},
}

func runReanalyze(ctx context.Context, svc service.ReanalyzeService) error {
	req := service.ReanalyzeRequest{Limit: reanalyzeLimit, RunID: reanalyzeRunID}
	total := BatchOutput{Kind: "reanalyze"}
	for {
		res, err := svc.Batch(ctx, req)
		if err != nil {
			return err
		}
		page := newBatchOutput("reanalyze", res.RunID, res.Summary, res.Results)
		total.RunID = page.RunID
		total.Total += page.Total
		total.Succeeded += page.Succeeded
		total.Failed += page.Failed
		total.Skipped += page.Skipped
		total.Cancelled = page.Cancelled
		total.Failures = append(total.Failures, page.Failures...)
		total.HasMore = res.HasMore

		if !reanalyzeAll || !res.HasMore || res.Summary.Cancelled {
			break
		}
		req.RunID = res.RunID
	}
	return outputBatch(total)
}

var consolidateCmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Replace every theme with the consolidated set and reassign papers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			res, err := a.Maintenance.Consolidate(ctx)
			if err != nil {
				return err
			}
			out := newBatchOutput("consolidate", "", res.Summary, res.Results)
			out.Extra = map[string]any{"themeCount": res.ThemeCount}
			return outputBatch(out)
		})
	},
}

var (
	importClear bool
	importRunID string
)

var importCmd = &cobra.Command{
	Use:   "import-csv FILE",
	Short: "Import papers from a CSV export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening CSV: %w", err)
		}
		defer f.Close()

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			res, err := a.Imports.Import(ctx, service.ImportRequest{CSV: f, ClearExisting: importClear, RunID: importRunID})
			if err != nil {
				return err
			}
			return outputBatch(newBatchOutput("import-csv", res.RunID, res.Summary, res.Results))
		})
	},
}

var repairCmd = &cobra.Command{
	Use:   "repair-arrays",
	Short: "Flatten double-nested author and keyword lists",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			n, err := a.Maintenance.RepairArrays(ctx)
			if err != nil {
				return err
			}
			if humanOutput {
				fmt.Printf("Fixed %d papers with double-nested arrays\n", n)
				return nil
			}
			return outputJSON(map[string]int{"fixed": n})
		})
	},
}
