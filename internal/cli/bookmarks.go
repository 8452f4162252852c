package cli

import (
	"context"
	"fmt"

	"github.com/samvad-hq/city-pulse/internal/app"
	"github.com/samvad-hq/city-pulse/internal/domain"
	"github.com/spf13/cobra"
)

func newBookmarksCommand(r *runner) *cobra.Command {
	bm := &cobra.Command{
		Use:     "bookmarks",
		Aliases: []string{"bm"},
		Short:   "Manage saved articles",
	}
	bm.AddCommand(
		newBookmarksListCommand(r),
		newBookmarksAddCommand(r),
		newBookmarksRemoveCommand(r),
		newBookmarksCheckCommand(r),
	)
	return bm
}

func newBookmarksListCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved articles in the order they were added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, a *app.App) error {
				a.Surface.Load(ctx)
				saved := a.Surface.Bookmarks()
				if len(saved) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no bookmarks yet")
					return nil
				}
				rows := make([][]string, 0, len(saved))
				for _, art := range saved {
					rows = append(rows, []string{truncate(art.Title, 70), art.Date, art.URL})
				}
				return renderTable(cmd.OutOrStdout(), []string{"Title", "Published", "URL"}, rows)
			})
		},
	}
}

func newBookmarksAddCommand(r *runner) *cobra.Command {
	var art domain.Article

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Bookmark an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			art.URL = args[0]
			return r.with(cmd, func(ctx context.Context, a *app.App) error {
				a.Surface.Load(ctx)
				if a.Surface.IsBookmarked(art.URL) {
					fmt.Fprintf(cmd.OutOrStdout(), "already bookmarked %s\n", art.URL)
					return nil
				}
				if err := a.Surface.AddBookmark(ctx, art); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "bookmarked %s\n", art.URL)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&art.Title, "title", "", "article title")
	cmd.Flags().StringVar(&art.Description, "description", "", "article description")
	cmd.Flags().StringVar(&art.Image, "image", "", "article image url")
	cmd.Flags().StringVar(&art.Date, "date", "", "publication date")
	return cmd
}

func newBookmarksRemoveCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <url>",
		Short: "Remove a bookmarked article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, a *app.App) error {
				a.Surface.Load(ctx)
				if err := a.Surface.RemoveBookmark(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				return nil
			})
		},
	}
}

func newBookmarksCheckCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "check <url>",
		Short: "Report whether an article is bookmarked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, a *app.App) error {
				ok, err := a.Bookmarks.IsBookmarked(ctx, args[0])
				if err != nil {
					return err
				}
				if ok {
					fmt.Fprintln(cmd.OutOrStdout(), "bookmarked")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "not bookmarked")
				}
				return nil
			})
		},
	}
}
