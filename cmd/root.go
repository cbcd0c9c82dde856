package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jeremy159/ab-helpers/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

func Execute() {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	// Matches the dotenv convention of the Node scripts this replaces: a
	// local .env can carry the ACTUAL_* settings.
	_ = godotenv.Load()

	if err := initConfig(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "ab-helpers",
		Short: "ab-helpers posts recurring loan interest into an Actual budget ledger",
		Long: `ab-helpers posts recurring loan interest into an Actual budget ledger.

It compounds interest on tagged loan accounts and imports the matching
transactions on a weekly and a monthly cadence.`,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")

	rootCmd.AddCommand(NewServeCmd(cfg))
	rootCmd.AddCommand(NewRunCmd(cfg))
	rootCmd.AddCommand(NewNextCmd())
	rootCmd.AddCommand(NewAccountsCmd(cfg))
	rootCmd.AddCommand(NewNoteCmd(cfg))
	rootCmd.AddCommand(NewInitCmd())

	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		errMsg := err.Error()
		displayMsg := capitalize(errMsg)

		pterm.Error.Println(displayMsg)
		os.Exit(1)
	}
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := getAppDataDir()
		if err != nil {
			return fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("ACTUAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	// Register every key so env-only values survive Unmarshal.
	viper.SetDefault("server.url", "")
	viper.SetDefault("server.password", "")
	viper.SetDefault("file.password", "")
	viper.SetDefault("sync.id", "")
	viper.SetDefault("cache.dir", "./cache")
	viper.SetDefault("payee.name", "Loan Interest")

	// Legacy name still honored by the original scripts.
	_ = viper.BindEnv("payee.name", "INTEREST_PAYEE_NAME", "ACTUAL_PAYEE_NAME")

	if err := viper.ReadInConfig(); err != nil {

		if cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("config file error: %w", err)
		}
	}

	cfg = config.NewDefault()
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode into struct, %v", err)
	}

	cfg.ConfigPath = viper.ConfigFileUsed()

	return nil
}

func getAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".ab-helpers"), nil
	}

	return filepath.Join(configDir, "ab-helpers"), nil
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
