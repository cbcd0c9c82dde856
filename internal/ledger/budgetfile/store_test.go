package budgetfile

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jeremy159/ab-helpers/internal/ledger"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "budget.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

func (s *Store) mustExec(t *testing.T, query string, args ...any) {
	t.Helper()
	if _, err := s.db.Exec(query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

func seedAccount(t *testing.T, s *Store, id, name string, closed bool) {
	s.mustExec(t, `INSERT INTO accounts (id, name, closed) VALUES (?, ?, ?)`, id, name, closed)
}

func seedTransaction(t *testing.T, s *Store, id, accountID, date string, amount int64) {
	s.mustExec(t, `
		INSERT INTO transactions (id, account_id, date, amount, cleared)
		VALUES (?, ?, ?, ?, 1)
	`, id, accountID, date, amount)
}

func cutoff(s string) time.Time {
	t, _ := time.Parse(ledger.DateLayout, s)
	return t
}

func TestAccounts(t *testing.T) {
	s := openTestStore(t)
	seedAccount(t, s, "b1", "Mortgage", false)
	seedAccount(t, s, "a1", "Kia Carnival", true)

	accounts, err := s.Accounts()
	if err != nil {
		t.Fatalf("Accounts: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("got %d accounts, want 2", len(accounts))
	}
	// Ordered by name.
	if accounts[0].Name != "Kia Carnival" || !accounts[0].Closed {
		t.Errorf("first account = %+v", accounts[0])
	}
	if accounts[1].Name != "Mortgage" || accounts[1].Closed {
		t.Errorf("second account = %+v", accounts[1])
	}
}

func TestTransactionsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	seedAccount(t, s, "a1", "Kia", false)
	seedTransaction(t, s, "t1", "a1", "2023-12-28", 30000)
	seedTransaction(t, s, "t2", "a1", "2024-01-04", 30000)
	seedTransaction(t, s, "t3", "a1", "2023-11-30", -150000)

	transactions, err := s.Transactions("a1")
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(transactions) != 3 {
		t.Fatalf("got %d transactions, want 3", len(transactions))
	}
	if transactions[0].ID != "t2" {
		t.Errorf("newest transaction = %s, want t2", transactions[0].ID)
	}
	if !transactions[0].Date.Equal(cutoff("2024-01-04")) {
		t.Errorf("newest date = %v", transactions[0].Date)
	}
}

func TestBalanceStrictlyBeforeCutoff(t *testing.T) {
	s := openTestStore(t)
	seedAccount(t, s, "a1", "Kia", false)
	seedTransaction(t, s, "t1", "a1", "2023-12-01", -150000)
	seedTransaction(t, s, "t2", "a1", "2024-01-03", 30000)
	seedTransaction(t, s, "t3", "a1", "2024-01-04", 30000)

	// The cutoff-day transaction is excluded.
	balance, err := s.Balance("a1", cutoff("2024-01-03"))
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != -150000 {
		t.Errorf("balance = %d, want -150000", balance)
	}

	balance, err = s.Balance("a1", cutoff("2024-01-04"))
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != -120000 {
		t.Errorf("balance = %d, want -120000", balance)
	}
}

func TestBalanceEmptyAccount(t *testing.T) {
	s := openTestStore(t)
	seedAccount(t, s, "a1", "Kia", false)

	balance, err := s.Balance("a1", cutoff("2024-01-01"))
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 0 {
		t.Errorf("balance = %d, want 0", balance)
	}
}

func TestBalanceGroupsSplits(t *testing.T) {
	s := openTestStore(t)
	seedAccount(t, s, "a1", "Mortgage", false)

	// A split payment: the grouping row carries the total and must not be
	// double counted with its legs.
	s.mustExec(t, `
		INSERT INTO transactions (id, account_id, date, amount, is_parent)
		VALUES ('p1', 'a1', '2024-01-02', 150000, 1)
	`)
	s.mustExec(t, `
		INSERT INTO transactions (id, account_id, date, amount, parent_id)
		VALUES ('c1', 'a1', '2024-01-02', 100000, 'p1')
	`)
	s.mustExec(t, `
		INSERT INTO transactions (id, account_id, date, amount, parent_id)
		VALUES ('c2', 'a1', '2024-01-02', 50000, 'p1')
	`)

	balance, err := s.Balance("a1", cutoff("2024-02-01"))
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 150000 {
		t.Errorf("balance = %d, want 150000 (legs only)", balance)
	}
}

func TestLastTransactionDate(t *testing.T) {
	s := openTestStore(t)
	seedAccount(t, s, "a1", "Kia", false)
	seedTransaction(t, s, "t1", "a1", "2023-12-28", 30000)
	seedTransaction(t, s, "t2", "a1", "2024-01-04", -500) // not a payment
	seedTransaction(t, s, "t3", "a1", "2024-01-11", 30000)

	date, ok, err := s.LastTransactionDate("a1", cutoff("2024-01-11"))
	if err != nil {
		t.Fatalf("LastTransactionDate: %v", err)
	}
	if !ok || !date.Equal(cutoff("2023-12-28")) {
		t.Fatalf("got (%v, %v), want 2023-12-28", date, ok)
	}

	_, ok, err = s.LastTransactionDate("a1", cutoff("2023-01-01"))
	if err != nil {
		t.Fatalf("LastTransactionDate: %v", err)
	}
	if ok {
		t.Fatal("expected no payment before 2023")
	}
}

func TestEnsurePayee(t *testing.T) {
	s := openTestStore(t)

	id, err := s.EnsurePayee("Loan Interest")
	if err != nil {
		t.Fatalf("EnsurePayee: %v", err)
	}
	if id == "" {
		t.Fatal("expected a payee id")
	}

	again, err := s.EnsurePayee("Loan Interest")
	if err != nil {
		t.Fatalf("EnsurePayee: %v", err)
	}
	if again != id {
		t.Fatalf("second call returned %s, want %s", again, id)
	}
}

func TestImportTransactions(t *testing.T) {
	s := openTestStore(t)
	seedAccount(t, s, "a1", "Kia", false)
	payeeID, err := s.EnsurePayee("Loan Interest")
	if err != nil {
		t.Fatalf("EnsurePayee: %v", err)
	}

	err = s.ImportTransactions("a1", []*ledger.NewTransaction{{
		Date:    cutoff("2024-01-04"),
		PayeeID: payeeID,
		Amount:  -200,
		Cleared: true,
		Notes:   "Intérêt pour 1 semaine à 6.99%",
	}})
	if err != nil {
		t.Fatalf("ImportTransactions: %v", err)
	}

	transactions, err := s.Transactions("a1")
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(transactions))
	}
	txn := transactions[0]
	if txn.Amount != -200 || !txn.Cleared || txn.PayeeID != payeeID {
		t.Errorf("imported transaction = %+v", txn)
	}
	if txn.ID == "" {
		t.Error("imported transaction must get an id")
	}
}

func TestNoteRoundTrip(t *testing.T) {
	s := openTestStore(t)
	key := ledger.AccountNoteKey("a1")

	if _, ok, err := s.Note(key); err != nil || ok {
		t.Fatalf("expected absent note, got ok=%v err=%v", ok, err)
	}

	if err := s.SetNote(key, "interestRate:0.0699"); err != nil {
		t.Fatalf("SetNote: %v", err)
	}
	note, ok, err := s.Note(key)
	if err != nil || !ok || note != "interestRate:0.0699" {
		t.Fatalf("Note = (%q, %v, %v)", note, ok, err)
	}

	// Overwrite, then blank out. A blank note reads as absent.
	if err := s.SetNote(key, "paid off"); err != nil {
		t.Fatalf("SetNote: %v", err)
	}
	note, _, _ = s.Note(key)
	if note != "paid off" {
		t.Fatalf("note = %q after overwrite", note)
	}

	if err := s.SetNote(key, ""); err != nil {
		t.Fatalf("SetNote: %v", err)
	}
	if _, ok, _ := s.Note(key); ok {
		t.Fatal("blank note must read as absent")
	}
}
