package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/formalbridge/waterfall/internal/audit"
	"github.com/formalbridge/waterfall/internal/cli"
	"github.com/formalbridge/waterfall/internal/config"
	"github.com/formalbridge/waterfall/internal/ingest"
	"github.com/formalbridge/waterfall/internal/storage"
)

func auditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit <ledger-file>",
		Short: "Run a statutory distribution audit over a creditor ledger",
		Long: `Audit an uploaded creditor ledger (CSV or XLSX).

Every amount cell is sanitized with disclosed warnings, every creditor name
is scanned against the Crown Preference and employee preferential rule
tables, and the consolidated integrity report decides whether distribution
may proceed. With --distribution-date and a net property figure, the
s.176A prescribed part is calculated once the ledger is clear.

Examples:
  # Audit with automatic column detection
  waterfall audit creditors.csv

  # Explicit column mapping
  waterfall audit creditors.xlsx --name-column "Creditor" --amount-column "Claim (£)"

  # Include the prescribed part once clear
  waterfall audit creditors.csv --distribution-date 2024-01-01 --net-property 450000

  # Persist the run for later certification
  waterfall audit creditors.csv --save`,
		Args: cobra.ExactArgs(1),
		RunE: runAudit,
	}

	cmd.Flags().String("name-column", "", "Header of the creditor name column")
	cmd.Flags().String("amount-column", "", "Header of the claim amount column")
	cmd.Flags().String("tier-column", "", "Header of the statutory tier column")

	cmd.Flags().String("distribution-date", "", "Distribution date for the prescribed part (YYYY-MM-DD)")
	cmd.Flags().String("net-property", "", "Net floating-charge property available, in pounds")
	cmd.Flags().String("total-assets", "", "Total realisable assets; net property is derived from the ledger")

	cmd.Flags().String("output", "table", "Output format (table, json)")
	cmd.Flags().Bool("save", false, "Save the run to the audit history database")
	cmd.Flags().Bool("no-progress", false, "Disable the row progress bar")

	return cmd
}

func runAudit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	nameCol, _ := cmd.Flags().GetString("name-column")
	amountCol, _ := cmd.Flags().GetString("amount-column")
	tierCol, _ := cmd.Flags().GetString("tier-column")
	dateStr, _ := cmd.Flags().GetString("distribution-date")
	netStr, _ := cmd.Flags().GetString("net-property")
	assetsStr, _ := cmd.Flags().GetString("total-assets")
	output, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	opts := audit.Options{
		Mapping: ingest.ColumnMapping{
			Name:   nameCol,
			Amount: amountCol,
			Tier:   tierCol,
		},
		ShowProgress: !noProgress && output == "table",
	}

	if dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fmt.Errorf("invalid --distribution-date %q: %w", dateStr, err)
		}
		opts.DistributionDate = date
	}
	if netStr != "" {
		net, err := decimal.NewFromString(netStr)
		if err != nil {
			return fmt.Errorf("invalid --net-property %q: %w", netStr, err)
		}
		opts.NetProperty = &net
	}
	if assetsStr != "" {
		assets, err := decimal.NewFromString(assetsStr)
		if err != nil {
			return fmt.Errorf("invalid --total-assets %q: %w", assetsStr, err)
		}
		opts.TotalAssets = &assets
	}

	run, err := audit.Execute(args[0], opts)
	if err != nil {
		return err
	}

	if save {
		store, err := storage.NewAuditStore(config.DatabasePath())
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		if err := store.Migrate(ctx); err != nil {
			return err
		}
		if err := store.SaveRun(ctx, run); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved run %s\n", run.ID)
	}

	switch output {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(run)
	default:
		cli.RenderReport(os.Stdout, run)
		if run.PrescribedPart != nil {
			fmt.Println()
			cli.RenderPrescribedPart(os.Stdout, run.PrescribedPart)
		}
		return nil
	}
}
