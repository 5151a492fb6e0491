package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	recordio "github.com/matzehuels/featuremap/pkg/io"
	"github.com/matzehuels/featuremap/pkg/pipeline"
	"github.com/matzehuels/featuremap/pkg/store"
)

// storeCommand creates the store command for managing named records.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage named records",
		Long: `Manage named records in the record store.

Records are kept in a SQLite file in the user config directory, or in the
database named by --store / $` + store.EnvDSN + ` (a file path, sqlite:PATH
or a postgres:// URL). Stored records are served by 'serve' under
/v1/records/{name}.`,
	}

	cmd.AddCommand(c.storePutCommand())
	cmd.AddCommand(c.storeGetCommand())
	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeDeleteCommand())

	return cmd
}

// storePutCommand creates the "store put" subcommand.
func (c *CLI) storePutCommand() *cobra.Command {
	var name string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "put [input]",
		Short: "Parse a record and store it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			if name == "" {
				name = filepath.Base(basePath("", args[0]))
			}
			return c.runStorePut(cmd.Context(), name, opts)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "record name (default: input file name)")
	cmd.Flags().StringVar(&opts.Crop, "crop", "", "store only a coordinate window, e.g. 1000:5000")
	cmd.Flags().BoolVar(&opts.Circular, "circular", false, "force circular topology")
	cmd.Flags().StringVar(&opts.Theme, "theme", "", "TOML theme applied while parsing")

	return cmd
}

func (c *CLI) runStorePut(ctx context.Context, name string, opts pipeline.Options) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	rec, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}

	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Put(ctx, name, rec); err != nil {
		return err
	}
	printSuccess("Stored %s", StyleHighlight.Render(name))
	printDetail("%s, %s bp, %d features", rec.Topology, humanize.Comma(int64(rec.Length)), len(rec.Features))
	return nil
}

// storeGetCommand creates the "store get" subcommand.
func (c *CLI) storeGetCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get [name]",
		Short: "Write a stored record as JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			rec, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return recordio.WriteYAML(rec, stdout)
			}
			if err := recordio.Export(rec, output); err != nil {
				return err
			}
			printSuccess("Wrote %s", args[0])
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, .json or .yaml (default: YAML on stdout)")

	return cmd
}

// storeListCommand creates the "store list" subcommand.
func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			entries, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("No stored records")
				return nil
			}
			fmt.Fprintln(stdout, renderEntries(entries))
			return nil
		},
	}
}

// renderEntries formats store entries as a table.
func renderEntries(entries []store.Entry) string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			e.Name,
			e.Topology.String(),
			humanize.Comma(int64(e.Length)),
			strconv.Itoa(e.Features),
			humanize.Time(e.UpdatedAt),
		}
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers("Name", "Topology", "Length", "Features", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return tableHeaderStyle
			case col == 0:
				return StyleHighlight.PaddingRight(1)
			case col == 4:
				return StyleDim.PaddingRight(1)
			}
			return lipgloss.NewStyle().PaddingRight(1)
		})
	return t.Render()
}

// storeDeleteCommand creates the "store delete" subcommand.
func (c *CLI) storeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [name...]",
		Aliases: []string{"rm"},
		Short:   "Delete stored records",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			for _, name := range args {
				if err := st.Delete(ctx, name); err != nil {
					return err
				}
			}
			printSuccess("Deleted %s", strings.Join(args, ", "))
			return nil
		},
	}
}
