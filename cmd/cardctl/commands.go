package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"bizcard/internal/adapters/seed"
	"bizcard/internal/app"
	"bizcard/internal/config"
	"bizcard/internal/domain"
	"bizcard/internal/usecases"
	"bizcard/pkg/log"
	"bizcard/pkg/socialurl"
)

type rootOptions struct {
	configPath string
	envFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "cardctl",
		Short:        "Manage digital business cards",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&opts.envFile, "env", ".env", "path to a .env file")

	root.AddCommand(
		newPlatformsCmd(),
		newResolveCmd(),
		newImportCmd(opts),
		newMigrateCmd(opts),
	)
	return root
}

func newPlatformsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List supported social platforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, p := range socialurl.SupportedPlatforms() {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

type resolveOutput struct {
	Platform   string `json:"platform"`
	Username   string `json:"username"`
	ProfileURL string `json:"profile_url"`
	IsValid    bool   `json:"is_valid"`
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <platform> <username>",
		Short: "Resolve a username to a profile URL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := socialurl.Generate(args[0], args[1])
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resolveOutput{
				Platform:   res.Platform,
				Username:   res.Username,
				ProfileURL: res.ProfileURL,
				IsValid:    res.IsValid,
			})
		},
	}
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import cards from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}

			cfg, logger, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer logger.Close()

			ctx := log.WithUserID(cmd.Context(), userID)
			repo, err := app.OpenStore(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer repo.Close()

			cards, err := usecases.NewImportCardsUseCase(repo).Execute(ctx, userID, inputs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imported %d cards\n", len(cards))
			for _, c := range cards {
				visibility := "private"
				if c.IsPublic {
					visibility = domain.ShareURL(cfg.Server.BaseURL, c.ID)
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", c.ID, c.Title, visibility)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "owner of the imported cards")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

// migrator is implemented by SQL-backed stores.
type migrator interface {
	Migrate() error
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer logger.Close()

			dbCfg := cfg.Database
			dbCfg.AutoMigrate = false
			repo, err := app.OpenStore(cmd.Context(), dbCfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			m, ok := repo.(migrator)
			if !ok {
				return errors.New("the memory store has no schema to migrate")
			}
			if err := m.Migrate(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

// setup loads configuration and installs a logger on stderr so command
// output stays clean.
func setup(cmd *cobra.Command, opts *rootOptions) (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(opts.configPath, opts.envFile)
	if err != nil {
		return nil, nil, err
	}
	logger := app.SetupLogger(cfg.Log, cmd.ErrOrStderr())
	return cfg, logger, nil
}
