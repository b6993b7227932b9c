package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/novelsync/internal/client/auth"
	"github.com/iudanet/novelsync/internal/client/iocli"
	"github.com/iudanet/novelsync/internal/client/storage/boltdb"
	"github.com/iudanet/novelsync/internal/config"
	"github.com/iudanet/novelsync/internal/logging"
)

// globalFlags are the flags shared by every command.
type globalFlags struct {
	ConfigPath string
	DBPath     string
	Verbose    bool
}

// Execute runs the command line and releases resources afterwards.
func Execute(ctx context.Context, version string, args []string) error {
	c := &Cli{now: time.Now}
	defer func() {
		if err := c.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}()

	root := c.newRootCommand(version)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (c *Cli) newRootCommand(version string) *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "novelsync",
		Short: "Sync a translated-novel library through a GitHub Gist",
		Long: `novelsync keeps a library of translated novels, AI model settings and
cover history in sync between devices, using a private GitHub Gist as storage.

Credentials are read from NOVELSYNC_GIST_TOKEN or from the encrypted store
written by 'novelsync login'.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd.Context(), flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "path to config file (default: $XDG_CONFIG_HOME/novelsync/config.yaml)")
	root.PersistentFlags().StringVar(&flags.DBPath, "db", "", "path to the local library database")
	root.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		c.newLoginCommand(),
		c.newLogoutCommand(),
		c.newLinkCommand(),
		c.newStatusCommand(),
		c.newSyncCommand(),
		c.newPullCommand(),
		c.newPushCommand(),
		c.newWatchCommand(),
		c.newHistoryCommand(),
		c.newDiffCommand(),
		c.newExportCommand(),
		c.newImportCommand(),
		c.newLibraryCommand(),
	)
	return root
}

// open loads the configuration and opens the local store.
func (c *Cli) open(ctx context.Context, flags globalFlags) error {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}
	if flags.DBPath != "" {
		cfg.DBPath = flags.DBPath
	}
	if flags.Verbose {
		cfg.Log.Level = "debug"
	}

	logger, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	c.closers = append(c.closers, logCloser)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	store, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	c.closers = append(c.closers, store)

	c.io = iocli.NewStdio()
	c.cfg = cfg
	c.logger = logger
	c.library = store
	c.vault = auth.NewVault(store, logger)
	logger.Debug("library opened", "db", cfg.DBPath)
	return nil
}

func (c *Cli) newLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Store the GitHub token encrypted with a passphrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLogin(cmd.Context())
		},
	}
}

func (c *Cli) newLogoutCommand() *cobra.Command {
	var forgetRemote bool
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Delete the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLogout(cmd.Context(), forgetRemote)
		},
	}
	cmd.Flags().BoolVar(&forgetRemote, "forget-remote", false, "also clear the remote id and the sync history")
	return cmd
}

func (c *Cli) newLinkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "link <gist-id>",
		Short: "Use an existing remote gist, e.g. one created on another device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLink(cmd.Context(), args[0])
		},
	}
}

func (c *Cli) newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the account, the remote and the local library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStatus(cmd.Context())
		},
	}
}

func (c *Cli) newSyncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Download, merge and upload the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSync(cmd.Context())
		},
	}
}

func (c *Cli) newPullCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Apply the remote library locally without uploading",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPull(cmd.Context())
		},
	}
}

func (c *Cli) newPushCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Overwrite the remote with the local library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPush(cmd.Context())
		},
	}
}

func (c *Cli) newWatchCommand() *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Sync periodically until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), interval)
		},
	}
	cmd.Flags().DurationVarP(&interval, "interval", "i", 0, "time between syncs (default: the stored sync interval)")
	return cmd
}

func (c *Cli) newHistoryCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List revisions of the remote gist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runHistory(cmd.Context(), limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of revisions to show (0 for all)")
	return cmd
}

func (c *Cli) newDiffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <version>",
		Short: "Show the files changed by a remote revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDiff(cmd.Context(), args[0])
		},
	}
}

func (c *Cli) newExportCommand() *cobra.Command {
	var withKeys bool
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the local library to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], withKeys)
		},
	}
	cmd.Flags().BoolVar(&withKeys, "with-keys", false, "include AI model API keys")
	return cmd
}

func (c *Cli) newImportCommand() *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load novels, models and settings from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), args[0], replace)
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "replace the whole library instead of merging into it")
	return cmd
}

func (c *Cli) newLibraryCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "library",
		Aliases: []string{"ls"},
		Short:   "List the novels of the local library",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLibrary(cmd.Context())
		},
	}
}
