package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/statcard/pkg/quote"
)

func (c *CLI) quoteCommand() *cobra.Command {
	var (
		refresh bool
		all     bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Show the quote of the hour",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				for _, q := range quote.All() {
					fmt.Fprintf(c.out, "%s\n  %s\n", q.Quote, StyleDim.Render("- "+q.Author))
				}
				return nil
			}

			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			svc, err := newServices(ctx, cfg, loggerFromContext(ctx), true)
			if err != nil {
				return err
			}
			defer svc.Close()

			q, hit, err := svc.quotes.Get(ctx, refresh)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				return enc.Encode(q)
			}
			fmt.Fprintln(c.out, StyleTitle.Render(q.Quote))
			fmt.Fprintln(c.out, StyleDim.Render("- "+q.Author))
			if hit {
				printDetail("cached")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "generate a new quote instead of the cached one")
	cmd.Flags().BoolVar(&all, "all", false, "list the built-in quotes")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
