package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/samvad-hq/city-pulse/internal/app"
	"github.com/spf13/cobra"
)

func newCitiesCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "cities [query]",
		Short: "List or search the available cities",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return r.with(cmd, func(ctx context.Context, a *app.App) error {
				selected, _ := a.Selection.Current(ctx)
				matches := a.Cities.Search(query)
				if len(matches) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "no cities match %q\n", query)
					return nil
				}
				rows := make([][]string, 0, len(matches))
				for _, c := range matches {
					mark := ""
					if c.Name == selected.Name {
						mark = "*"
					}
					rows = append(rows, []string{mark, c.DisplayName, c.Name})
				}
				return renderTable(cmd.OutOrStdout(), []string{"", "City", "Slug"}, rows)
			})
		},
	}
}

func newCityCommand(r *runner) *cobra.Command {
	city := &cobra.Command{
		Use:   "city",
		Short: "Show or change the selected city",
	}
	city.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the selected city",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return r.with(cmd, func(ctx context.Context, a *app.App) error {
					c, ok := a.Selection.Current(ctx)
					if !ok {
						fmt.Fprintln(cmd.OutOrStdout(), "no city selected")
						return nil
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", c.DisplayName, c.Name)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "select <name>",
			Short: "Remember a city for news requests",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name := strings.Join(args, " ")
				return r.with(cmd, func(ctx context.Context, a *app.App) error {
					c, err := a.Selection.Select(ctx, strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "selected %s\n", c.DisplayName)
					return nil
				})
			},
		},
	)
	return city
}
