package cli

import (
	"time"

	"github.com/samvad-hq/city-pulse/internal/catalog"
	"github.com/spf13/cobra"
)

func newAlertsCommand(now func() time.Time) *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "List emergency alerts, most severe first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			alerts := catalog.Alerts(now())
			rows := make([][]string, 0, len(alerts))
			for _, al := range alerts {
				rows = append(rows, []string{
					severityLabel(al.Severity),
					catalog.SeverityColor(al.Severity),
					al.Title,
					al.Timestamp.Format(time.Kitchen),
					truncate(al.Description, 80),
				})
			}
			return renderTable(cmd.OutOrStdout(), []string{"Severity", "Color", "Alert", "Time", "Details"}, rows)
		},
	}
}
