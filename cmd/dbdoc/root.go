package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/config"
	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/introspect"
)

var (
	version = "dev"
	commit  = "none"
)

// app carries the resolved global state shared by every command.
type app struct {
	stdout io.Writer
	stderr io.Writer
	env    []string

	configPath string
	connection string
	log        logOptions

	cfg     config.Config
	cfgPath string
	logger  *slog.Logger
}

// Execute runs the CLI and returns the process exit code. A nil env reads
// the process environment.
func Execute(args []string, stdout, stderr io.Writer, env []string) int {
	rootCmd := newRootCmd(&app{stdout: stdout, stderr: stderr, env: env})
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dbdoc",
		Short: "Document database tables in an Excel workbook",
		Long: `dbdoc-go fills an xlsx template with table and column metadata read from a
database, and turns descriptions edited in that workbook back into SQL Server
extended-property scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := newLogger(a.stderr, a.log)
			if err != nil {
				return err
			}
			a.logger = logger

			cfg, path, err := config.Load(a.configPath, a.env)
			if err != nil {
				return err
			}
			a.cfg, a.cfgPath = cfg, path
			a.logger.Debug("config loaded", "path", path, "connection", cfg.CurrentConnection)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/dbdoc/config.json)")
	flags.StringVarP(&a.connection, "connection", "c", "", "Connection name (default: current_connection)")
	addLogFlags(flags, &a.log)

	rootCmd.AddCommand(newTablesCmd(a))
	rootCmd.AddCommand(newColumnsCmd(a))
	rootCmd.AddCommand(newExportCmd(a))
	rootCmd.AddCommand(newHarvestCmd(a))
	rootCmd.AddCommand(newRememberCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))

	return rootCmd
}

// connectionName resolves --connection against the current connection.
func (a *app) connectionName() string {
	if a.connection != "" {
		return a.connection
	}
	return a.cfg.CurrentConnection
}

func (a *app) openSource() (introspect.Source, error) {
	conn, err := a.cfg.Connection(a.connectionName())
	if err != nil {
		return nil, err
	}
	a.logger.Debug("opening database", "connection", a.connectionName(), "driver", conn.Driver, "schema", conn.Schema)
	return introspect.Open(conn.Driver, conn.DSN, conn.Schema)
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(a.stdout, "dbdoc version %s (commit: %s)\n", version, commit)
			return err
		},
	}
}
