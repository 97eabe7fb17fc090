package board

import (
	"fmt"
	"io"
	"text/tabwriter"
)

const NoDeparturesMessage = "次の列車が見つかりません"

// Render writes the snapshot as a plain text board, one block per panel
func Render(w io.Writer, snapshot *Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "札幌地下鉄 到着案内\t%s\n", snapshot.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(tw, "ダイヤ\t%s (自動判定: %s, 運行日 %s)\n", snapshot.DayType.Label(), snapshot.AutoDayType.Label(), snapshot.ServiceDate)

	for _, panel := range snapshot.Panels {
		fmt.Fprintf(tw, "\n%s\n", panel.Title)

		switch panel.Status {
		case PanelStatusOK:
			for _, departure := range panel.Departures {
				destination := fmt.Sprintf("(%s)", departure.DisplayDestination())
				if departure.Remark != "" {
					destination = fmt.Sprintf("%s  [%s]", destination, departure.Remark)
				}

				fmt.Fprintf(tw, "  %s\t%s\tあと %d 分\n", departure.ScheduledTime, destination, departure.MinutesUntil)
			}
		case PanelStatusNoDepartures:
			fmt.Fprintf(tw, "  %s\n", NoDeparturesMessage)
		default:
			fmt.Fprintf(tw, "  %s\n", panel.Message)
		}
	}

	return tw.Flush()
}
