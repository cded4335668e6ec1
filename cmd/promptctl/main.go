// Command promptctl seeds, inspects and searches a prompt store from the shell.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/promptsearch/internal/backend"
	"github.com/kailas-cloud/promptsearch/internal/config"
	logpkg "github.com/kailas-cloud/promptsearch/internal/logger"
	"github.com/kailas-cloud/promptsearch/internal/version"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	env        string
	jsonOutput bool
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:          "promptctl",
		Short:        "Manage and search a promptsearch store",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to a config file (overrides --env)")
	rootCmd.PersistentFlags().StringVar(&flags.env, "env", config.GetEnv(), "Config environment (config/<env>.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flags.jsonOutput, "json", "j", false, "Output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(flags),
		newSeedCmd(flags),
		newSearchCmd(flags),
		newGetCmd(flags),
		newDeleteCmd(flags),
		newHealthCmd(flags),
		newReindexCmd(flags),
	)
	return rootCmd
}

func newVersionCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if flags.jsonOutput {
				return printJSON(out, map[string]string{
					"version": version.Version,
					"commit":  version.Commit,
					"date":    version.Date,
				})
			}
			_, err := fmt.Fprintf(out, "promptctl %s\n", version.String())
			return err
		},
	}
}

// app is an opened store plus the logger bound to the command context.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	backend *backend.Backend
}

func (a *app) close() {
	a.backend.Close()
	_ = a.logger.Sync()
}

func openApp(ctx context.Context, flags *globalFlags) (context.Context, *app, error) {
	var (
		cfg config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFile(flags.configPath)
	} else {
		cfg, err = config.Load(flags.env)
	}
	if err != nil {
		return ctx, nil, err
	}

	env := flags.env
	if env == "" {
		env = "local"
	}
	logger, err := logpkg.New(env, cfg.Logging)
	if err != nil {
		return ctx, nil, err
	}

	b, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return ctx, nil, err
	}
	return logpkg.ContextWithLogger(ctx, logger), &app{cfg: cfg, logger: logger, backend: b}, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
