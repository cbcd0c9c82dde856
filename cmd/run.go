package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeremy159/ab-helpers/internal/accrual"
	"github.com/jeremy159/ab-helpers/internal/config"
)

type runRunner struct {
	cfg *config.Config
}

func NewRunCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:       "run [weekly|monthly|all]",
		Short:     "Run an accrual job once, now",
		Long:      `Run an accrual job once, now, outside its cadence. Defaults to all jobs.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"weekly", "monthly", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			which := "all"
			if len(args) == 1 {
				which = args[0]
			}
			runner := &runRunner{cfg: cfg}
			return runner.Run(which)
		},
	}
}

func (r *runRunner) Run(which string) error {
	var jobs []accrual.Job

	switch which {
	case "weekly":
		jobs = []accrual.Job{accrual.Weekly}
	case "monthly":
		jobs = []accrual.Job{accrual.Monthly}
	case "all":
		jobs = accrual.Jobs()
	default:
		return fmt.Errorf("unknown job %q (want weekly, monthly or all)", which)
	}

	for _, job := range jobs {
		if err := runJob(r.cfg, job); err != nil {
			return fmt.Errorf("%s: %w", job.Name, err)
		}
	}

	return nil
}
