package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	healthuc "github.com/kailas-cloud/promptsearch/internal/usecase/health"
)

var errUnhealthy = errors.New("store is unhealthy")

func newHealthCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check store connectivity and the search index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, a, err := openApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.close()

			report := healthuc.New(a.backend.DB, a.backend.Index).Check(ctx)

			out := cmd.OutOrStdout()
			if flags.jsonOutput {
				if err := printJSON(out, report); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(out, "status: %s\n", report.Status)
				names := make([]string, 0, len(report.Checks))
				for name := range report.Checks {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintf(out, "  %-13s %s\n", name, report.Checks[name])
				}
			}

			if report.Status == healthuc.Unhealthy {
				return errUnhealthy
			}
			return nil
		},
	}
}

func newReindexCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Drop and rebuild the prompt search index (valkey, redis)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, a, err := openApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.close()

			if a.backend.Reindex == nil {
				return fmt.Errorf("driver %s has no search index", a.cfg.Database.Driver)
			}
			if err := a.backend.Reindex.Reindex(ctx); err != nil {
				return err
			}
			a.logger.Info("Prompt index rebuilt", zap.String("driver", a.cfg.Database.Driver))
			fmt.Fprintln(cmd.OutOrStdout(), "Index rebuilt")
			return nil
		},
	}
}
