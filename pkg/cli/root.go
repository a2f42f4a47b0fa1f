// Package cli implements the hivebridge command-line interface.
package cli

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"hive-bridge/internal/config"
	"hive-bridge/internal/domain"
	"hive-bridge/internal/hive"
	"hive-bridge/internal/metastore"
	"hive-bridge/internal/remote"
)

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// stack bundles the catalog and its teardown for one CLI invocation.
type stack struct {
	catalog domain.Catalog
	close   func()
}

func newRootCmd() *cobra.Command {
	var (
		metaDBPath   string
		remoteDriver string
		remoteDSN    string
		logLevel     string
	)

	rootCmd := &cobra.Command{
		Use:           "hivebridge",
		Short:         "Catalog bridge for a remote Hive-compatible metadata service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(".env"); err != nil {
				return err
			}
			// Flags win over the environment.
			applyEnvDefault(cmd.Flags(), "meta-db", "META_DB_PATH", &metaDBPath)
			applyEnvDefault(cmd.Flags(), "remote-driver", "REMOTE_DRIVER", &remoteDriver)
			applyEnvDefault(cmd.Flags(), "remote-dsn", "REMOTE_DSN", &remoteDSN)
			applyEnvDefault(cmd.Flags(), "log-level", "LOG_LEVEL", &logLevel)

			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: (&config.Config{LogLevel: logLevel}).SlogLevel(),
			}))
			slog.SetDefault(logger)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&metaDBPath, "meta-db", "hive_bridge_meta.sqlite", "path to the SQLite metastore file")
	flags.StringVar(&remoteDriver, "remote-driver", "sqlite3", "database/sql driver for the remote service")
	flags.StringVar(&remoteDSN, "remote-dsn", "", "DSN for the remote service connection")
	flags.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	open := func() (*stack, error) {
		return openStack(metaDBPath, remoteDriver, remoteDSN)
	}

	rootCmd.AddCommand(newDatabasesCmd(open))
	rootCmd.AddCommand(newTablesCmd(open))
	return rootCmd
}

func applyEnvDefault(flags *pflag.FlagSet, name, envKey string, target *string) {
	if !flags.Changed(name) {
		if v := os.Getenv(envKey); v != "" {
			*target = v
		}
	}
}

func openStack(metaDBPath, remoteDriver, remoteDSN string) (*stack, error) {
	metaDB, err := metastore.OpenSQLite(metaDBPath)
	if err != nil {
		return nil, err
	}
	if err := metastore.RunMigrations(metaDB); err != nil {
		_ = metaDB.Close()
		return nil, err
	}

	remoteDB, err := sql.Open(remoteDriver, remoteDSN)
	if err != nil {
		_ = metaDB.Close()
		return nil, fmt.Errorf("open remote connection: %w", err)
	}

	provider := remote.NewSessionProvider()
	provider.Activate(remote.NewSession(remote.ConnForDriver(remoteDB, remoteDriver)))

	return &stack{
		catalog: hive.New(metastore.NewCatalog(metaDB), provider, hive.WithLogger(slog.Default())),
		close: func() {
			_ = remoteDB.Close()
			_ = metaDB.Close()
		},
	}, nil
}
