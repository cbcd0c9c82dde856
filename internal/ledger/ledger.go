// Package ledger defines the boundary to the budget backend. The accrual
// jobs only ever talk to the Ledger interface; the sqlite-backed budget
// file implementation lives in the budgetfile subpackage.
package ledger

import "time"

// DateLayout is the wire format for transaction dates in the budget file.
const DateLayout = "2006-01-02"

type Account struct {
	ID     string
	Name   string
	Closed bool
}

type Transaction struct {
	ID      string
	Date    time.Time
	Amount  int64 // minor currency units, signed
	PayeeID string
	Cleared bool
	Notes   string
}

// NewTransaction is a transaction to be imported into the ledger.
type NewTransaction struct {
	Date    time.Time
	PayeeID string
	Amount  int64
	Cleared bool
	Notes   string
}

// Ledger is one session against the budget backend. A session is opened per
// job invocation and closed when the job finishes; implementations are not
// required to be safe for concurrent use.
type Ledger interface {
	Accounts() ([]*Account, error)

	// Transactions returns the account's transactions ordered by date
	// descending, most recent first.
	Transactions(accountID string) ([]*Transaction, error)

	// Balance sums transaction amounts strictly before cutoff. Split
	// transactions contribute their legs, never the grouping row.
	Balance(accountID string, cutoff time.Time) (int64, error)

	// LastTransactionDate returns the date of the most recent positive
	// (payment) transaction strictly before cutoff. ok is false when the
	// account has none.
	LastTransactionDate(accountID string, cutoff time.Time) (date time.Time, ok bool, err error)

	// EnsurePayee returns the id of the payee with the given name,
	// creating it first if needed.
	EnsurePayee(name string) (string, error)

	ImportTransactions(accountID string, txns []*NewTransaction) error

	// Note reads the free-text note stored under an entity key. An empty
	// note reports ok == false, same as a missing one.
	Note(key string) (note string, ok bool, err error)
	SetNote(key, note string) error

	Close() error
}

// AccountNoteKey is the notes-table key under which an account's free-text
// note is stored.
func AccountNoteKey(accountID string) string {
	return "account-" + accountID
}
