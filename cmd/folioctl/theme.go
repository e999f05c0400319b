package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *cli) themeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Inspect or change the accent colour",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Print the current accent",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			st, err := c.client().Theme(ctx)
			if err != nil {
				return failure(err, "could not read the accent colour")
			}
			fmt.Fprintf(c.out, "%s %s (hsl %s)\n", st.Hex, st.Name, st.HSL)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set COLOR",
		Short: "Select a new accent colour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			st, err := c.client().SetTheme(ctx, args[0])
			if err != nil {
				return failure(err, "could not change the accent colour")
			}
			fmt.Fprintf(c.out, "accent is now %s %s\n", st.Hex, st.Name)
			return nil
		},
	}

	palette := &cobra.Command{
		Use:   "palette",
		Short: "List the selectable colours",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			swatches, err := c.client().Palette(ctx)
			if err != nil {
				return failure(err, "could not read the palette")
			}
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			defer tw.Flush()
			for _, s := range swatches {
				fmt.Fprintf(tw, "%s\t%s\n", s.Name, s.Value)
			}
			return nil
		},
	}

	cmd.AddCommand(get, set, palette)
	return cmd
}
