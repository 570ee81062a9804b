// Package cli implements the inventory command line: the interactive menu and one-shot commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/abgdnv/inventory/internal/config"
	"github.com/abgdnv/inventory/internal/inventory/store"
	"github.com/abgdnv/inventory/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const serviceName = "inventory"

// Options configures the command tree. Zero values fall back to the process defaults.
type Options struct {
	Sources config.Sources
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// app holds what every command needs once the configuration has been loaded.
type app struct {
	opts    Options
	catalog store.CatalogStore
	logger  *slog.Logger

	catalogPath string
	logLevel    string
}

// Execute builds the command tree and runs it with args.
// Errors are printed to Stderr in a user-readable form and returned.
func Execute(ctx context.Context, opts Options, args []string) error {
	cmd := NewRootCommand(opts)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), describeError(err))
		return err
	}
	return nil
}

// NewRootCommand creates the inventory root command. Without a subcommand it runs the interactive menu.
func NewRootCommand(opts Options) *cobra.Command {
	a := &app{opts: opts}

	rootCmd := &cobra.Command{
		Use:           "inventory",
		Short:         "Manage a product inventory stored in a JSON file",
		Long:          "inventory keeps a catalog of products and their suppliers in a JSON file. Run it without arguments for the interactive menu.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			menu := NewMenu(a.catalog, a.logger, cmd.InOrStdin(), cmd.OutOrStdout())
			return menu.Run(cmd.Context())
		},
	}
	if opts.Stdin != nil {
		rootCmd.SetIn(opts.Stdin)
	}
	if opts.Stdout != nil {
		rootCmd.SetOut(opts.Stdout)
	}
	if opts.Stderr != nil {
		rootCmd.SetErr(opts.Stderr)
	}

	rootCmd.PersistentFlags().StringVarP(&a.catalogPath, "file", "f", "", "inventory file (overrides catalog.path)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides log.level)")

	rootCmd.AddCommand(newListCommand(a))
	rootCmd.AddCommand(newFindCommand(a))
	rootCmd.AddCommand(newAddCommand(a))
	rootCmd.AddCommand(newModifyCommand(a))
	rootCmd.AddCommand(newDeleteCommand(a))
	rootCmd.AddCommand(newTotalCommand(a))
	rootCmd.AddCommand(newSupplierCommand(a))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// setup loads the configuration, builds the logger and loads the catalog.
func (a *app) setup(cmd *cobra.Command) error {
	src := a.opts.Sources
	if src == (config.Sources{}) {
		src = config.DefaultSources()
	}
	cfg, err := config.Load(serviceName, src)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cmd.Flags().Changed("file") {
		cfg.Catalog.Path = a.catalogPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	a.logger = logger.New(cfg.Log.Level, cmd.ErrOrStderr()).With("component", "cli")
	ctx := logger.WithSessionID(cmd.Context(), uuid.NewString())
	cmd.SetContext(ctx)
	a.logger.DebugContext(ctx, "Configuration loaded", "config", cfg.String())

	catalog := store.NewFileStore(cfg.Catalog.Path)
	if err := catalog.Load(); err != nil {
		a.logger.ErrorContext(ctx, "Unable to load catalog", "path", cfg.Catalog.Path, "error", err)
		return err
	}
	a.catalog = catalog
	a.logger.DebugContext(ctx, "Catalog loaded", "path", cfg.Catalog.Path)
	return nil
}
