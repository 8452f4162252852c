package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/samvad-hq/city-pulse/internal/app"
	"github.com/spf13/cobra"
)

func newNewsCommand(r *runner) *cobra.Command {
	var save []int

	cmd := &cobra.Command{
		Use:   "news [city]",
		Short: "Fetch the latest news for a city",
		Long: `Fetch the latest news for a city. Without an argument the selected city is used.
Use --save to bookmark articles by their row number.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return r.with(cmd, func(ctx context.Context, a *app.App) error {
				city, err := a.ResolveCity(ctx, name)
				if err != nil {
					return err
				}
				articles, err := a.Feed.Refresh(ctx, city)
				if err != nil {
					return err
				}

				a.Surface.Load(ctx)
				for _, n := range save {
					if n < 1 || n > len(articles) {
						return fmt.Errorf("--save %d out of range (1-%d)", n, len(articles))
					}
					if err := a.Surface.AddBookmark(ctx, articles[n-1]); err != nil {
						return err
					}
				}

				if len(articles) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "no news for %s\n", city)
					return nil
				}
				rows := make([][]string, 0, len(articles))
				for i, art := range articles {
					mark := ""
					if a.Surface.IsBookmarked(art.URL) {
						mark = "★"
					}
					rows = append(rows, []string{strconv.Itoa(i + 1), mark, truncate(art.Title, 70), art.Date, art.URL})
				}
				return renderTable(cmd.OutOrStdout(), []string{"#", "", "Title", "Published", "URL"}, rows)
			})
		},
	}
	cmd.Flags().IntSliceVar(&save, "save", nil, "bookmark the articles at these row numbers")
	return cmd
}
