package app

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/jeremy159/ab-helpers/internal/config"
	"github.com/jeremy159/ab-helpers/internal/ledger"
	"github.com/jeremy159/ab-helpers/internal/ledger/budgetfile"
)

type App struct {
	Ledger ledger.Ledger
	Config *config.Config
}

// NewApp validates the configuration and opens one ledger session, then
// returns the App entity with its cleanup function. Callers run cleanup when
// the job is done; a failure to close the session is fatal because a
// half-written budget cache must not be reused silently.
func NewApp(cfg *config.Config) (*App, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	store, err := budgetfile.Open(cfg.CachePath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open budget cache: %w", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			pterm.Error.Printf("Error closing budget cache: %v\n", err)
			os.Exit(1)
		}
	}

	return &App{
		Ledger: store,
		Config: cfg,
	}, cleanup, nil
}
