// Package cli implements the citypulse command tree.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/samvad-hq/city-pulse/internal/app"
	"github.com/spf13/cobra"
)

// AppFactory builds the runtime a command operates on. Commands close it when done.
type AppFactory func(ctx context.Context) (*app.App, error)

// NewRootCommand assembles the citypulse command tree.
func NewRootCommand(factory AppFactory) *cobra.Command {
	var noColor bool

	root := &cobra.Command{
		Use:   "citypulse",
		Short: "City news, bookmarks and emergency alerts",
		Long: `citypulse shows local news for a chosen city, keeps bookmarked articles
for offline reference and lists current emergency alerts.

Example usage:
  citypulse cities san           # Search the city list
  citypulse city select seattle  # Remember a city
  citypulse news                 # Latest news for the selected city
  citypulse bookmarks list       # Saved articles
  citypulse alerts               # Emergency alerts by severity`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	r := &runner{factory: factory}
	root.AddCommand(
		newCitiesCommand(r),
		newCityCommand(r),
		newNewsCommand(r),
		newBookmarksCommand(r),
		newAlertsCommand(time.Now),
	)
	return root
}

type runner struct {
	factory AppFactory
}

// with builds the app, runs fn and closes the app afterwards.
func (r *runner) with(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := r.factory(ctx)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	runErr := fn(ctx, a)
	if err := a.Close(); err != nil && runErr == nil {
		return err
	}
	return runErr
}
