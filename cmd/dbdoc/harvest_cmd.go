package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc"
	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/models"
	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/sqlscript"
)

func newHarvestCmd(a *app) *cobra.Command {
	var (
		outputDir    string
		schema       string
		mode         string
		escapeQuotes bool
		dryRun       bool
		format       string
	)

	cmd := &cobra.Command{
		Use:   "harvest WORKBOOK",
		Short: "Turn edited descriptions into extended-property scripts",
		Long: `Harvest reads every sheet of an edited workbook and writes TableSP.sql and
ColumnSP.sql. With --mode replace (the default) earlier scripts are removed and
rewritten; with --mode append each run appends another block.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			scriptMode, err := sqlscript.ParseWriteMode(mode)
			if err != nil {
				return err
			}
			if format != "text" && format != "yaml" {
				return fmt.Errorf("unsupported format %q: use 'text' or 'yaml'", format)
			}
			if outputDir == "" {
				outputDir = a.cfg.OutputDir
			}

			opts := dbdoc.DefaultOptions()
			opts.TableTemplate = a.cfg.TableSheetTemplate
			opts.Logger = a.logger
			opts.Renderer = sqlscript.MSSQL{Schema: schema}
			if escapeQuotes {
				opts.Renderer = sqlscript.EscapeQuotes(opts.Renderer)
			}

			if dryRun {
				pairs, err := dbdoc.ReadPairs(args[0], opts)
				if err != nil {
					return err
				}
				return printPairs(a.stdout, pairs, format)
			}

			if scriptMode == sqlscript.ModeReplace {
				if err := sqlscript.Clean(outputDir); err != nil {
					return err
				}
			}
			opts.ScriptMode = scriptMode

			_, res, err := dbdoc.HarvestFile(args[0], outputDir, opts)
			if err != nil {
				return fmt.Errorf("harvest failed: %w", err)
			}

			_, err = fmt.Fprintf(a.stdout, "%s (%d tables)\n%s (%d columns)\n",
				res.TableFile, res.Tables, res.ColumnFile, res.Columns)
			return err
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for the scripts (default: output_dir)")
	cmd.Flags().StringVar(&schema, "schema", sqlscript.DefaultSchema, "Schema qualifying every table")
	cmd.Flags().StringVar(&mode, "mode", sqlscript.ModeReplace.String(), "Script write mode: replace, append")
	cmd.Flags().BoolVar(&escapeQuotes, "escape-quotes", false, "Double single quotes in names and descriptions")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print harvested pairs instead of writing scripts")
	cmd.Flags().StringVar(&format, "format", "text", "Dry-run format: text, yaml")

	return cmd
}

func printPairs(w io.Writer, pairs []models.Pair, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(pairs); err != nil {
			return err
		}
		return enc.Close()
	}

	for _, p := range pairs {
		name := p.Name
		if p.Kind == models.KindColumn {
			name = p.TableName + "." + p.Name
		}
		if _, err := fmt.Fprintf(w, "%-6s %s: %s\n", p.Kind, name, p.Description); err != nil {
			return err
		}
	}
	return nil
}
