// Package cli implements transferctl, the administrator command line.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yigit/creditbridge/internal/app/services"
)

// Runtime is what the commands operate on. It is built lazily so that
// --help works without a database.
type Runtime struct {
	Resolution services.ResolutionService
	Catalog    services.CatalogService
	// Migrate applies schema migrations and seeds default data.
	Migrate func(ctx context.Context) error
	Close   func()
}

// Loader builds a Runtime from a config file path
type Loader func(configPath string) (*Runtime, error)

type app struct {
	load       Loader
	configPath string
	runtime    *Runtime
}

// NewRootCommand builds the transferctl command tree. The runtime it loads
// is left open; use Execute to have it closed.
func NewRootCommand(load Loader) *cobra.Command {
	return (&app{load: load}).rootCommand()
}

// Execute runs the command tree, closes the runtime and prints any error in red
func Execute(ctx context.Context, load Loader) error {
	a := &app{load: load}
	return a.execute(ctx, a.rootCommand())
}

func (a *app) execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if a.runtime != nil && a.runtime.Close != nil {
		a.runtime.Close()
	}
	if err != nil {
		printError(root.ErrOrStderr(), err)
	}
	return err
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "transferctl",
		Short:         "Review and decide transfer credit requests",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config.yaml (default configs/config.yaml)")

	root.AddCommand(
		a.migrateCommand(),
		a.pendingCommand(),
		a.schoolsCommand(),
		a.coursesCommand(),
		a.precedentsCommand(),
	)
	return root
}

func (a *app) rt() (*Runtime, error) {
	if a.runtime != nil {
		return a.runtime, nil
	}
	if a.load == nil {
		return nil, errors.New("no runtime loader configured")
	}
	runtime, err := a.load(a.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	a.runtime = runtime
	return runtime, nil
}

func (a *app) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and seed default data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := a.rt()
			if err != nil {
				return err
			}
			if err := runtime.Migrate(cmd.Context()); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Database is up to date")
			return nil
		},
	}
}
