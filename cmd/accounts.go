package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jeremy159/ab-helpers/internal/app"
	"github.com/jeremy159/ab-helpers/internal/config"
	"github.com/jeremy159/ab-helpers/internal/ledger"
	"github.com/jeremy159/ab-helpers/internal/money"
	"github.com/jeremy159/ab-helpers/internal/notetag"
)

type accountsRunner struct {
	cfg *config.Config
}

func NewAccountsCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List ledger accounts and their interest tags",
		Long: `List ledger accounts and their interest tags.

Shows which accounts would be eligible for accrual: open accounts carrying
a parsable interestRate tag in their note.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &accountsRunner{cfg: cfg}
			return runner.Run()
		},
	}
}

func (r *accountsRunner) Run() error {
	application, cleanup, err := app.NewApp(r.cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	accounts, err := application.Ledger.Accounts()
	if err != nil {
		return fmt.Errorf("failed to get accounts: %w", err)
	}

	headers := []string{"Name", "ID", "Status", "Rate"}
	tableData := pterm.TableData{headers}

	for _, acc := range accounts {
		status := pterm.Green("open")
		if acc.Closed {
			status = pterm.Gray("closed")
		}

		rate := "-"
		note, ok, err := application.Ledger.Note(ledger.AccountNoteKey(acc.ID))
		if err != nil {
			return fmt.Errorf("failed to read note for %s: %w", acc.Name, err)
		}
		if ok {
			if parsed, ok := notetag.Rate(note); ok {
				rate = money.FormatPercent(parsed)
			}
		}

		row := []string{acc.Name, acc.ID, status, rate}
		tableData = append(tableData, row)
	}

	pterm.DefaultSection.Printf("Account List")
	pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
	pterm.Info.Printf("Total: %d accounts\n", len(accounts))

	return nil
}
