package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/revolut2camt/internal/config"
)

func newInitCommand() *cobra.Command {
	var name, iban, currency string
	var address []string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a revolut2camt.yaml config for an account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if len(address) != 2 {
				return fmt.Errorf("exactly two --address-line values are required, got %d", len(address))
			}

			cfg := config.Default(name, iban, [2]string{address[0], address[1]})
			cfg.Account.Currency = currency
			return runInit(cmd.OutOrStdout(), absDir, cfg, force)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "account owner name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&iban, "iban", "", "account IBAN (required)")
	_ = cmd.MarkFlagRequired("iban")
	cmd.Flags().StringArrayVar(&address, "address-line", nil, "owner address line, given twice")
	cmd.Flags().StringVar(&currency, "currency", config.DefaultCurrency, "account currency")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")

	return cmd
}

func runInit(out io.Writer, dir string, cfg *config.Config, force bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "Initialized revolut2camt config at %s\n", path)
	return nil
}
