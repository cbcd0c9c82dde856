// Package accrual computes and posts loan interest into the ledger. The two
// production jobs (weekly car loan, monthly mortgage) share one runner and
// differ only in their Job configuration.
package accrual

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/jeremy159/ab-helpers/internal/interest"
	"github.com/jeremy159/ab-helpers/internal/ledger"
	"github.com/jeremy159/ab-helpers/internal/money"
	"github.com/jeremy159/ab-helpers/internal/notetag"
)

// Job is the static configuration of one accrual cadence.
type Job struct {
	Name         string // operator-facing label
	Cron         string // five-field cron expression, evaluated in Timezone
	AccountID    string // the single account this job may touch
	PeriodicRate float64
	CutoffMonths int // balance cutoff: payment date minus CutoffMonths/CutoffDays
	CutoffDays   int
	NoteFormat   string // note on the imported transaction, %s = display rate
}

// Runner executes accrual jobs against one ledger session.
type Runner struct {
	ledger    ledger.Ledger
	payeeName string
}

func NewRunner(l ledger.Ledger, payeeName string) *Runner {
	return &Runner{ledger: l, payeeName: payeeName}
}

// Run applies one accrual pass for the job's account. An account is eligible
// when it matches the job's id, is not closed, and carries a parsable
// interestRate tag in its note; everything else is skipped silently.
//
// Run is not idempotent: invoked twice against unchanged transactions it
// imports an equivalent interest transaction again. Run-once-per-cadence
// discipline belongs to the scheduler, not here.
func (r *Runner) Run(job Job) error {
	payeeID, err := r.ledger.EnsurePayee(r.payeeName)
	if err != nil {
		return fmt.Errorf("failed to ensure payee %q: %w", r.payeeName, err)
	}

	accounts, err := r.ledger.Accounts()
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	for _, account := range accounts {
		if account.Closed || account.ID != job.AccountID {
			continue
		}

		note, ok, err := r.ledger.Note(ledger.AccountNoteKey(account.ID))
		if err != nil {
			return fmt.Errorf("failed to read note for %s: %w", account.Name, err)
		}
		if !ok {
			continue
		}

		displayRate, ok := notetag.Rate(note)
		if !ok {
			continue
		}

		if err := r.accrue(job, account, payeeID, displayRate); err != nil {
			return err
		}
	}

	return nil
}

func (r *Runner) accrue(job Job, account *ledger.Account, payeeID string, displayRate float64) error {
	transactions, err := r.ledger.Transactions(account.ID)
	if err != nil {
		return fmt.Errorf("failed to query transactions for %s: %w", account.Name, err)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("account %s has no transactions to accrue against", account.Name)
	}

	// The most recent transaction is the payment being matched.
	payment := transactions[0]
	cutoff := payment.Date.AddDate(0, -job.CutoffMonths, -job.CutoffDays)

	balance, err := r.ledger.Balance(account.ID, cutoff)
	if err != nil {
		return fmt.Errorf("failed to query balance for %s: %w", account.Name, err)
	}

	result := interest.Apply(balance, payment.Amount, job.PeriodicRate)
	percent := money.FormatPercent(displayRate)

	pterm.DefaultSection.Printf("%s", account.Name)
	pterm.Info.Printf("Balance:     %s\n", money.FromCents(balance))
	pterm.Info.Printf("   as of %s\n", cutoff.Format(ledger.DateLayout))
	pterm.Info.Printf("Payment on:  %s\n", payment.Date.Format(ledger.DateLayout))
	pterm.Info.Printf("Interest:    %s (%s)\n", money.FromCents(result.Interest), percent)
	pterm.Info.Printf("New balance: %s\n", money.FromCents(result.NewBalance))

	if result.Interest == 0 {
		return nil
	}

	txn := &ledger.NewTransaction{
		Date:    payment.Date,
		PayeeID: payeeID,
		Amount:  result.Interest,
		Cleared: true,
		Notes:   fmt.Sprintf(job.NoteFormat, percent),
	}
	if err := r.ledger.ImportTransactions(account.ID, []*ledger.NewTransaction{txn}); err != nil {
		return fmt.Errorf("failed to import interest transaction for %s: %w", account.Name, err)
	}

	return nil
}
