package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/promptsearch/internal/backend"
	"github.com/kailas-cloud/promptsearch/internal/domain/search/result"
)

func newSearchCmd(flags *globalFlags) *cobra.Command {
	var (
		requester string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Rank prompts against a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, a, err := openApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.close()

			svc, err := backend.NewSearch(a.backend, a.cfg.Search)
			if err != nil {
				return err
			}
			resp, err := svc.Search(ctx, requester, strings.Join(args, " "), limit)
			if err != nil {
				return err
			}

			if flags.jsonOutput {
				return printJSON(cmd.OutOrStdout(), responseView(&resp))
			}
			return printResponse(cmd.OutOrStdout(), &resp)
		},
	}
	cmd.Flags().StringVar(&requester, "as", "", "Search as this user id (includes their private prompts)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum results (0 selects the configured default)")
	return cmd
}

type resultView struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	IsPrivate     bool     `json:"isPrivate"`
	UserID        string   `json:"userId"`
	Score         float64  `json:"score"`
	FieldsMatched []string `json:"fieldsMatched"`
	IsExactMatch  bool     `json:"isExactMatch"`
}

type searchView struct {
	Results    []resultView `json:"results"`
	Total      int          `json:"total"`
	DurationMs int64        `json:"durationMs"`
	Message    string       `json:"message"`
}

func responseView(resp *result.Response) searchView {
	v := searchView{
		Results:    make([]resultView, len(resp.Results)),
		Total:      resp.Total(),
		DurationMs: resp.DurationMs(),
		Message:    resp.Message,
	}
	for i := range resp.Results {
		r := &resp.Results[i]
		rec := r.Record()
		v.Results[i] = resultView{
			ID:            rec.ID(),
			Title:         rec.Title(),
			Category:      rec.Category(),
			IsPrivate:     rec.IsPrivate(),
			UserID:        rec.OwnerID(),
			Score:         r.Score(),
			FieldsMatched: r.MatchedFields().Strings(),
			IsExactMatch:  r.IsExactMatch(),
		}
	}
	return v
}

func printResponse(w io.Writer, resp *result.Response) error {
	if _, err := fmt.Fprintf(w, "%s (%dms)\n", resp.Message, resp.DurationMs()); err != nil {
		return err
	}
	for i := range resp.Results {
		r := &resp.Results[i]
		rec := r.Record()
		marker := ""
		if r.IsExactMatch() {
			marker = " [exact]"
		}
		if rec.IsPrivate() {
			marker += " [private]"
		}
		if _, err := fmt.Fprintf(w, "%2d. %.4f  %s  %s%s  (%s)\n",
			i+1, r.Score(), rec.ID(), rec.Title(), marker, r.MatchedFields()); err != nil {
			return err
		}
	}
	return nil
}
