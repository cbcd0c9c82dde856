package cmd

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jeremy159/ab-helpers/internal/app"
	"github.com/jeremy159/ab-helpers/internal/config"
	"github.com/jeremy159/ab-helpers/internal/ledger"
)

func NewNoteCmd(cfg *config.Config) *cobra.Command {
	noteCmd := &cobra.Command{
		Use:   "note",
		Short: "Read or write an account's free-text note",
		Long: `Read or write an account's free-text note.

Notes carry the per-account accrual configuration, for example a tag like
"interestRate:0.0699".`,
	}

	noteCmd.AddCommand(newNoteGetCmd(cfg))
	noteCmd.AddCommand(newNoteSetCmd(cfg))

	return noteCmd
}

func newNoteGetCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "get <account-id>",
		Short: "Print an account's note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, cleanup, err := app.NewApp(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			note, ok, err := application.Ledger.Note(ledger.AccountNoteKey(args[0]))
			if err != nil {
				return fmt.Errorf("failed to read note: %w", err)
			}
			if !ok {
				pterm.Warning.Printf("Account %s has no note\n", args[0])
				return nil
			}

			fmt.Println(note)
			return nil
		},
	}
}

func newNoteSetCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "set <account-id> <note>",
		Short: "Replace an account's note",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, cleanup, err := app.NewApp(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			note := strings.Join(args[1:], " ")
			if err := application.Ledger.SetNote(ledger.AccountNoteKey(args[0]), note); err != nil {
				return fmt.Errorf("failed to save note: %w", err)
			}

			pterm.Success.Printf("Note saved for account %s\n", args[0])
			return nil
		},
	}
}
