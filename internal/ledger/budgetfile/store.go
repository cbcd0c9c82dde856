// Package budgetfile implements the ledger boundary on top of the local
// sqlite cache copy of a budget file. Keeping the cache in sync with the
// remote server is the official client's concern, not this tool's.
package budgetfile

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jeremy159/ab-helpers/internal/ledger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Store struct {
	db *sql.DB
}

var _ ledger.Ledger = (*Store)(nil)

// Open opens (creating and migrating if needed) the budget cache at path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("can not create cache directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("can not open budget cache: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("can not connect with budget cache: %w", err)
	}
	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to migrate budget cache: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to set up migrate driver : %w", err)
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create iofs source driver : %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to set up migrate instance : %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migration(up) : %w", err)
	}

	return nil
}

func (s *Store) Accounts() ([]*ledger.Account, error) {
	rows, err := s.db.Query(`
		SELECT id, name, closed
		FROM accounts
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*ledger.Account
	for rows.Next() {
		acc := &ledger.Account{}
		if err := rows.Scan(&acc.ID, &acc.Name, &acc.Closed); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}

	return accounts, rows.Err()
}

// Transactions returns the account's transactions newest first. Grouping
// rows of split transactions are skipped, their legs carry the amounts.
func (s *Store) Transactions(accountID string) ([]*ledger.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT id, date, amount, COALESCE(payee_id, ''), cleared, notes
		FROM transactions
		WHERE account_id = ? AND is_parent = 0
		ORDER BY date DESC, id DESC
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*ledger.Transaction
	for rows.Next() {
		txn := &ledger.Transaction{}
		var date string
		err := rows.Scan(&txn.ID, &date, &txn.Amount, &txn.PayeeID, &txn.Cleared, &txn.Notes)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Date, err = time.Parse(ledger.DateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("invalid date on transaction %s: %w", txn.ID, err)
		}
		transactions = append(transactions, txn)
	}

	return transactions, rows.Err()
}

func (s *Store) Balance(accountID string, cutoff time.Time) (int64, error) {
	var balance sql.NullInt64
	err := s.db.QueryRow(`
		SELECT SUM(amount)
		FROM transactions
		WHERE account_id = ? AND date < ? AND is_parent = 0
	`, accountID, cutoff.Format(ledger.DateLayout)).Scan(&balance)

	if err != nil {
		return 0, fmt.Errorf("failed to calculate balance: %w", err)
	}

	if balance.Valid {
		return balance.Int64, nil
	}
	return 0, nil
}

func (s *Store) LastTransactionDate(accountID string, cutoff time.Time) (time.Time, bool, error) {
	var date string
	err := s.db.QueryRow(`
		SELECT date
		FROM transactions
		WHERE account_id = ? AND date < ? AND amount > 0 AND is_parent = 0
		ORDER BY date DESC
		LIMIT 1
	`, accountID, cutoff.Format(ledger.DateLayout)).Scan(&date)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to query last transaction date: %w", err)
	}

	parsed, err := time.Parse(ledger.DateLayout, date)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid transaction date %q: %w", date, err)
	}
	return parsed, true, nil
}

func (s *Store) EnsurePayee(name string) (string, error) {
	var id string
	err := s.db.QueryRow(`SELECT id FROM payees WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("failed to look up payee %q: %w", name, err)
	}

	id = uuid.NewString()
	if _, err := s.db.Exec(`INSERT INTO payees (id, name) VALUES (?, ?)`, id, name); err != nil {
		return "", fmt.Errorf("failed to create payee %q: %w", name, err)
	}
	return id, nil
}

func (s *Store) ImportTransactions(accountID string, txns []*ledger.NewTransaction) error {
	dbTx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction : %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare(`
		INSERT INTO transactions (id, account_id, date, amount, payee_id, cleared, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare transaction SQL : %w", err)
	}
	defer stmt.Close()

	for _, txn := range txns {
		_, err := stmt.Exec(
			uuid.NewString(), accountID, txn.Date.Format(ledger.DateLayout),
			txn.Amount, txn.PayeeID, txn.Cleared, txn.Notes,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction : %w", err)
		}
	}

	return dbTx.Commit()
}

func (s *Store) Note(key string) (string, bool, error) {
	var note string
	err := s.db.QueryRow(`SELECT note FROM notes WHERE id = ?`, key).Scan(&note)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to query note %q: %w", key, err)
	}
	if note == "" {
		return "", false, nil
	}
	return note, true, nil
}

func (s *Store) SetNote(key, note string) error {
	_, err := s.db.Exec(`
		INSERT INTO notes (id, note) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET note = excluded.note
	`, key, note)
	if err != nil {
		return fmt.Errorf("failed to save note %q: %w", key, err)
	}
	return nil
}
