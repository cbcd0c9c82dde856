package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jeremy159/ab-helpers/internal/errhandler"
)

type initRunner struct{}

func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Interactively write the configuration file",
		Long: `Interactively write the configuration file.

Prompts for the Actual server settings and saves them to the application
config directory. Environment variables still override the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &initRunner{}
			return runner.Run()
		},
	}
}

func (r *initRunner) Run() error {
	serverURL := viper.GetString("server.url")
	serverPassword := viper.GetString("server.password")
	filePassword := viper.GetString("file.password")
	syncID := viper.GetString("sync.id")
	cacheDir := viper.GetString("cache.dir")
	payeeName := viper.GetString("payee.name")

	required := func(name string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", name)
			}
			return nil
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Actual server URL").
				Validate(required("server URL")).
				Value(&serverURL),
			huh.NewInput().
				Title("Server password").
				EchoMode(huh.EchoModePassword).
				Validate(required("server password")).
				Value(&serverPassword),
			huh.NewInput().
				Title("Budget file password (optional)").
				EchoMode(huh.EchoModePassword).
				Value(&filePassword),
			huh.NewInput().
				Title("Sync id").
				Description("The budget file's sync id on the server").
				Validate(required("sync id")).
				Value(&syncID),
			huh.NewInput().
				Title("Cache directory").
				Value(&cacheDir),
			huh.NewInput().
				Title("Interest payee name").
				Value(&payeeName),
		),
	)

	if err := form.Run(); err != nil {
		errhandler.HandleError(err)
		return nil
	}

	viper.Set("server.url", serverURL)
	viper.Set("server.password", serverPassword)
	viper.Set("file.password", filePassword)
	viper.Set("sync.id", syncID)
	viper.Set("cache.dir", cacheDir)
	viper.Set("payee.name", payeeName)

	appDir, err := getAppDataDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")
	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	pterm.Success.Printf("Configuration saved to %s\n", configPath)

	return nil
}
