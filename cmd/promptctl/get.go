package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	promptuc "github.com/kailas-cloud/promptsearch/internal/usecase/prompt"
)

func newGetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a stored prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, a, err := openApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.close()

			rec, err := promptuc.New(a.backend.Records).Get(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flags.jsonOutput {
				return printJSON(out, seedPrompt{
					ID:          rec.ID(),
					UserID:      rec.OwnerID(),
					Title:       rec.Title(),
					Description: rec.Description(),
					Text:        rec.Body(),
					Category:    rec.Category(),
					Tags:        rec.Tags(),
					IsPrivate:   rec.IsPrivate(),
					CreatedAt:   rec.CreatedAt(),
				})
			}
			_, err = fmt.Fprintf(out, "id:          %s\nowner:       %s\nprivate:     %t\ntitle:       %s\n"+
				"description: %s\ncategory:    %s\ntags:        %s\n\n%s\n",
				rec.ID(), rec.OwnerID(), rec.IsPrivate(), rec.Title(),
				rec.Description(), rec.Category(), strings.Join(rec.Tags(), ", "), rec.Body())
			return err
		},
	}
}

func newDeleteCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Remove stored prompts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, a, err := openApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.close()

			svc := promptuc.New(a.backend.Records)
			for _, id := range args {
				if err := svc.Delete(ctx, id); err != nil {
					return err
				}
				if !flags.jsonOutput {
					fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
				}
			}
			if flags.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]any{"deleted": args})
			}
			return nil
		},
	}
}
