package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/revolut2camt/internal/camt"
	"github.com/cleared-dev/revolut2camt/internal/codes"
	"github.com/cleared-dev/revolut2camt/internal/config"
	"github.com/cleared-dev/revolut2camt/internal/id"
	"github.com/cleared-dev/revolut2camt/internal/importer"
	"github.com/cleared-dev/revolut2camt/internal/logger"
	"github.com/cleared-dev/revolut2camt/internal/statement"
)

type convertOptions struct {
	input        string
	configPath   string
	iban         string
	output       string
	format       string
	workers      int
	allowUnknown bool
}

func newConvertCommand() *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a ledger CSV export to a camt.053 XML statement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "ledger CSV file (required)")
	_ = cmd.MarkFlagRequired("input")
	cmd.Flags().StringVar(&opts.configPath, "config", config.FileName, "config file")
	cmd.Flags().StringVar(&opts.iban, "iban", "", "override the configured IBAN")
	cmd.Flags().StringVar(&opts.output, "output", "", "output XML path (default <IBAN>_<from>_<to>.xml)")
	cmd.Flags().StringVar(&opts.format, "format", "revolut", "ledger format")
	cmd.Flags().IntVar(&opts.workers, "workers", 1, "entries built concurrently")
	cmd.Flags().BoolVar(&opts.allowUnknown, "allow-unknown-types", false, "map unknown transaction types to the generic code")

	return cmd
}

func runConvert(cmd *cobra.Command, opts convertOptions) error {
	log := logger.FromContext(cmd.Context())

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.iban != "" {
		cfg = cfg.WithIBAN(opts.iban)
	}
	if opts.allowUnknown {
		cfg.Statement.AllowUnknownCategories = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", opts.configPath, err)
	}

	registry := importer.DefaultRegistry()
	parser := registry.Get(opts.format)
	if parser == nil {
		return fmt.Errorf("unsupported format %q (available: %s)", opts.format, strings.Join(registry.Formats(), ", "))
	}

	f, err := os.Open(opts.input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	recs, err := importer.Load(parser, f)
	if err != nil {
		return fmt.Errorf("loading %s: %w", opts.input, err)
	}
	log.Info().Str("input", opts.input).Int("records", len(recs)).Msg("ledger loaded")

	stmt, err := statement.Convert(recs, cfg.AccountConfig(), statement.Options{Workers: opts.workers})
	if err != nil {
		var uce *codes.UnknownCategoryError
		if errors.As(err, &uce) {
			return fmt.Errorf("converting %s: %w (known types: %s; use --allow-unknown-types to map it to %s)",
				opts.input, err, joinCategories(), codes.FallbackCode)
		}
		return fmt.Errorf("converting %s: %w", opts.input, err)
	}
	log.Debug().
		Int("entries", len(stmt.Entries)).
		Str("message_id", stmt.Header.MessageID).
		Msg("statement assembled")

	var buf bytes.Buffer
	if err := camt.Encode(&buf, stmt); err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = id.OutputFileName(stmt.Account.IBAN, stmt.From, stmt.To)
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	log.Info().Str("output", output).Msg("statement written")

	printSummary(cmd.OutOrStdout(), len(stmt.Entries), stmt.Summary.Credit.Count, stmt.Summary.Debit.Count, output)
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w (run `revolut2camt init` to create one)", err)
	}
	return cfg, err
}

func joinCategories() string {
	cats := codes.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func printSummary(w io.Writer, total, credits, debits int, output string) {
	fmt.Fprintf(w, "Converted %d transactions (%d CRDT, %d DBIT) -> %s\n", total, credits, debits, output)
}
