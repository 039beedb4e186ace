package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sadopc/schemasketch/internal/schema"
)

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe [sketch]",
		Short: "Print the tables, columns and types of a sketch file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 && args[0] != "-" {
				path = args[0]
			}
			sk, err := readSketch(path, cmd.InOrStdin())
			if err != nil {
				return err
			}
			describe(cmd.OutOrStdout(), sk)
			return nil
		},
	}
}

func describe(w io.Writer, sk *schema.Schema) {
	if sk.Len() == 0 {
		_, _ = fmt.Fprintln(w, "(0 tables)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Table", "Column", "Type"})

	for i, tbl := range sk.Tables() {
		if i > 0 {
			t.AppendSeparator()
		}
		if len(tbl.Columns) == 0 {
			t.AppendRow(table.Row{tbl.Name, "", ""})
			continue
		}
		for j, c := range tbl.Columns {
			name := ""
			if j == 0 {
				name = tbl.Name
			}
			typ := c.Type.SQL()
			if !c.Type.Known() {
				typ += " (?)"
			}
			t.AppendRow(table.Row{name, c.Name, typ})
		}
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d tables, %d columns)\n", sk.Len(), sk.ColumnCount())
}
