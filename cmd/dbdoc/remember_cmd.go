package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/config"
)

var errNoConfigPath = errors.New("no config path: pass --config")

func newRememberCmd(a *app) *cobra.Command {
	var tables []string

	cmd := &cobra.Command{
		Use:   "remember",
		Short: "Store the table selection of the current connection",
		Long: `Remember saves --tables as the default export selection of the connection.
An empty list forgets the selection.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if a.cfgPath == "" {
				return errNoConfigPath
			}

			// env overrides must not leak into the saved file
			raw, _, err := config.LoadFile(a.cfgPath, a.env)
			if errors.Is(err, config.ErrConfigNotFound) {
				raw = config.Default()
			} else if err != nil {
				return err
			}

			name := a.connectionName()
			if _, err := a.cfg.Connection(name); err != nil {
				return err
			}
			raw.Remember(name, tables)
			if err := config.Save(a.cfgPath, raw); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			a.logger.Info("selection saved", "connection", name, "tables", len(tables), "path", a.cfgPath)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&tables, "tables", nil, "Tables to remember")

	return cmd
}
