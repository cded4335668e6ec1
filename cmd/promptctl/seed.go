package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	domprompt "github.com/kailas-cloud/promptsearch/internal/domain/prompt"
	promptuc "github.com/kailas-cloud/promptsearch/internal/usecase/prompt"
)

// seedPrompt is one entry of a seed file.
type seedPrompt struct {
	ID          string   `yaml:"id" json:"id"`
	UserID      string   `yaml:"userId" json:"userId"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Text        string   `yaml:"text" json:"text"`
	Category    string   `yaml:"category" json:"category"`
	Tags        []string `yaml:"tags" json:"tags"`
	IsPrivate   bool     `yaml:"isPrivate" json:"isPrivate"`
	CreatedAt   int64    `yaml:"createdAt" json:"createdAt"`
}

// parseSeed decodes a YAML list of prompts into ingestion inputs.
func parseSeed(data []byte) ([]promptuc.Input, error) {
	var entries []seedPrompt
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	inputs := make([]promptuc.Input, len(entries))
	for i, e := range entries {
		inputs[i] = promptuc.Input{
			ID:      e.ID,
			OwnerID: e.UserID,
			Fields: domprompt.Fields{
				Title:       e.Title,
				Description: e.Description,
				Body:        e.Text,
				Category:    e.Category,
				Tags:        e.Tags,
			},
			Private:   e.IsPrivate,
			CreatedAt: e.CreatedAt,
		}
	}
	return inputs, nil
}

func newSeedCmd(flags *globalFlags) *cobra.Command {
	var (
		file      string
		batchSize int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load prompts from a YAML file into the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(filepath.Clean(file))
			if err != nil {
				return fmt.Errorf("read seed file: %w", err)
			}
			inputs, err := parseSeed(data)
			if err != nil {
				return err
			}

			ctx, a, err := openApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.close()

			svc := promptuc.New(a.backend.Records).WithBatchSize(batchSize)
			records, err := svc.Import(ctx, inputs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flags.jsonOutput {
				ids := make([]string, len(records))
				for i := range records {
					ids[i] = records[i].ID()
				}
				return printJSON(out, map[string]any{"stored": len(records), "ids": ids})
			}
			_, err = fmt.Fprintf(out, "Stored %d prompts from %s\n", len(records), file)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with a list of prompts")
	cmd.Flags().IntVar(&batchSize, "batch-size", promptuc.DefaultBatchSize, "Prompts written per store round-trip")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
