package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc"
)

var errNoTemplate = errors.New("no template: pass --template or set template_path")

func newExportCmd(a *app) *cobra.Command {
	var (
		tables       []string
		templatePath string
		outputPath   string
		keepTemplate bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write table documentation into a copy of the template",
		Long: `Export introspects the selected tables and fills the template workbook with
one index row and one sheet per table. Without --tables the remembered
selection of the connection is used, and without one every table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if templatePath == "" {
				templatePath = a.cfg.TemplatePath
			}
			if templatePath == "" {
				return errNoTemplate
			}
			if outputPath == "" {
				outputPath = filepath.Join(a.cfg.OutputDir, uuid.NewString()+".xlsx")
			}
			if len(tables) == 0 {
				tables = a.cfg.RememberedTables(a.connectionName())
			}

			src, err := a.openSource()
			if err != nil {
				return err
			}
			defer src.Close()

			described, err := src.Describe(cmd.Context(), tables)
			if err != nil {
				return err
			}

			opts := dbdoc.DefaultOptions()
			opts.TableTemplate = a.cfg.TableSheetTemplate
			opts.KeepTemplate = keepTemplate
			opts.Logger = a.logger
			if err := dbdoc.ExportFile(templatePath, outputPath, described, opts); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			_, err = fmt.Fprintln(a.stdout, outputPath)
			return err
		},
	}

	cmd.Flags().StringSliceVar(&tables, "tables", nil, "Tables to document (default: remembered selection, else all)")
	cmd.Flags().StringVar(&templatePath, "template", "", "Template workbook (default: template_path)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output workbook (default: <output_dir>/<uuid>.xlsx)")
	cmd.Flags().BoolVar(&keepTemplate, "keep-template", false, "Keep the per-table template sheet")

	return cmd
}
