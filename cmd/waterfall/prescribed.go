package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/formalbridge/waterfall/internal/cli"
	"github.com/formalbridge/waterfall/internal/prescribedpart"
)

func prescribedPartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prescribed-part",
		Short: "Calculate the s.176A prescribed part",
		Long: `Calculate the Section 176A Insolvency Act 1986 prescribed part for a
net property figure and distribution date.

The cap is date-versioned: distributions on or after 6 April 2020 use the
£800,000 cap (SI 2020/211), earlier distributions the £600,000 cap.

Examples:
  waterfall prescribed-part --net 450000 --date 2024-01-01
  waterfall prescribed-part --net 5000000 --date 2019-06-30 --output json`,
		RunE: runPrescribedPart,
	}

	cmd.Flags().String("net", "", "Net floating-charge property, in pounds (required)")
	cmd.Flags().String("date", "", "Distribution date (YYYY-MM-DD, required)")
	cmd.Flags().String("output", "table", "Output format (table, json)")
	_ = cmd.MarkFlagRequired("net")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func runPrescribedPart(cmd *cobra.Command, _ []string) error {
	netStr, _ := cmd.Flags().GetString("net")
	dateStr, _ := cmd.Flags().GetString("date")
	output, _ := cmd.Flags().GetString("output")

	net, err := decimal.NewFromString(netStr)
	if err != nil {
		return fmt.Errorf("invalid --net %q: %w", netStr, err)
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid --date %q: %w", dateStr, err)
	}

	result := prescribedpart.Calculate(net, date)

	if output == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	cli.RenderPrescribedPart(os.Stdout, &result)
	return nil
}
