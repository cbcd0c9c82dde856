package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jeremy159/ab-helpers/internal/accrual"
	"github.com/jeremy159/ab-helpers/internal/app"
	"github.com/jeremy159/ab-helpers/internal/config"
	"github.com/jeremy159/ab-helpers/internal/schedule"
)

type serveRunner struct {
	cfg *config.Config
}

func NewServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the interest scheduler until interrupted",
		Long: `Run the interest scheduler until interrupted.

Each cadence fire opens a fresh ledger session, runs its accrual job and
closes the session again. A job failure stops the process.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &serveRunner{cfg: cfg}
			return runner.Run()
		},
	}
}

func (r *serveRunner) Run() error {
	// Fail on missing settings before anything is scheduled.
	if err := r.cfg.Validate(); err != nil {
		return err
	}

	sched, err := schedule.New(accrual.Timezone)
	if err != nil {
		return err
	}

	for _, job := range accrual.Jobs() {
		job := job

		next, err := sched.Next(job.Cron, time.Now())
		if err != nil {
			return err
		}
		pterm.Info.Printf("Next %s run:\n", job.Name)
		pterm.Info.Printf("   %s\n", next.Format(schedule.RunLayout))

		// Any job fault is fatal: this is a low-frequency batch tool,
		// not a server, and a failed run needs an operator anyway.
		err = sched.Register(job.Name, job.Cron, func() {
			if err := runJob(r.cfg, job); err != nil {
				pterm.Error.Printf("%s failed: %v\n", job.Name, err)
				os.Exit(1)
			}
		})
		if err != nil {
			return err
		}
	}

	sched.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	pterm.Info.Println("Stopping scheduler")
	<-sched.Stop().Done()

	return nil
}

// runJob opens a ledger session, runs one accrual pass and closes the
// session again.
func runJob(cfg *config.Config, job accrual.Job) error {
	application, cleanup, err := app.NewApp(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	runner := accrual.NewRunner(application.Ledger, cfg.Payee.Name)
	return runner.Run(job)
}
