package cmd

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jeremy159/ab-helpers/internal/accrual"
	"github.com/jeremy159/ab-helpers/internal/schedule"
)

func NewNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Show the next occurrence of each cadence",
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := schedule.New(accrual.Timezone)
			if err != nil {
				return err
			}

			now := time.Now()
			for _, job := range accrual.Jobs() {
				next, err := sched.Next(job.Cron, now)
				if err != nil {
					return err
				}
				pterm.Info.Printf("Next %s run:\n", job.Name)
				pterm.Info.Printf("   %s\n", next.Format(schedule.RunLayout))
			}

			return nil
		},
	}
}
