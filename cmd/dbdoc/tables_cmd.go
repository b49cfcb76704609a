package main

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTablesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List tables; remembered ones are marked with *",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := a.openSource()
			if err != nil {
				return err
			}
			defer src.Close()

			names, err := src.Tables(cmd.Context())
			if err != nil {
				return err
			}

			remembered := a.cfg.RememberedTables(a.connectionName())
			for _, name := range names {
				mark := " "
				if slices.Contains(remembered, name) {
					mark = "*"
				}
				if _, err := fmt.Fprintf(a.stdout, "%s %s\n", mark, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newColumnsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "columns TABLE",
		Short: "Print the column grid of one table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.openSource()
			if err != nil {
				return err
			}
			defer src.Close()

			tables, err := src.Describe(cmd.Context(), args)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NO\tNAME\tTYPE\tNULL\tPK\tFK\tREFERENCE\tIDENTITY\tDEFAULT\tDESCRIPTION")
			for _, c := range tables[0].Columns {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					c.Ordinal, c.Name, c.FullType, yes(c.Nullable), yes(c.IsPrimaryKey), yes(c.IsForeignKey),
					c.FKReference, yes(c.IsIdentity), c.Default, c.Description)
			}
			return w.Flush()
		},
	}
}

func yes(b bool) string {
	if b {
		return "Y"
	}
	return ""
}
