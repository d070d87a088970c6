package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/token-calc/internal/calculator"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// fieldFlags maps calculator fields to their command line flags.
var fieldFlags = map[calculator.Field]string{
	calculator.FieldTokenName:         "token",
	calculator.FieldCurrentPrice:      "price",
	calculator.FieldCirculatingSupply: "circulating-supply",
	calculator.FieldTotalSupply:       "total-supply",
	calculator.FieldMarketCap:         "market-cap",
	calculator.FieldInvestmentAmount:  "invest",
	calculator.FieldTargetCurrency:    "target",
	calculator.FieldTargetTokens:      "target-tokens",
	calculator.FieldUpcomingUnlock:    "unlock",
	calculator.FieldTradingFees:       "fees",
}

type computeOptions struct {
	values map[calculator.Field]*string
	output string
}

func newComputeCmd(root *rootOptions) *cobra.Command {
	opts := &computeOptions{values: make(map[calculator.Field]*string)}

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute investment outcomes for one token",
		Example: `  calc compute --price 2 --invest 1000 --target 4 --fees 0.0005 --unlock 10
  calc compute --token ETH --price 3000 --invest 600 --target-tokens 1.5 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompute(cmd, root, opts)
		},
	}

	bindFieldFlags(cmd.Flags(), opts.values)
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputTable, "output format: table or json")
	cmd.MarkFlagsMutuallyExclusive(fieldFlags[calculator.FieldTargetCurrency], fieldFlags[calculator.FieldTargetTokens])

	return cmd
}

// bindFieldFlags registers one string flag per field. Values are kept as text
// so they go through the same coercion as interactive input.
func bindFieldFlags(fs *pflag.FlagSet, values map[calculator.Field]*string) {
	for _, field := range calculator.Fields {
		values[field] = fs.String(fieldFlags[field], "", field.Label())
	}
}

func runCompute(cmd *cobra.Command, root *rootOptions, opts *computeOptions) error {
	if opts.output != outputTable && opts.output != outputJSON {
		return fmt.Errorf("unsupported output %q", opts.output)
	}

	in := calculator.DefaultInput()
	in.TokenName = root.cfg.TokenName
	in.TradingFees = root.cfg.TradingFees

	session := calculator.NewSession(in, root.logger)

	// Fields are applied in display order so the price is known before a
	// target is converted.
	for _, field := range calculator.Fields {
		if cmd.Flags().Changed(fieldFlags[field]) {
			session.Set(field, *opts.values[field])
		}
	}

	snap := session.Snapshot()
	root.logger.Debug("Computed investment",
		zap.String("token", snap.Input.TokenName),
		zap.Uint64("edits", snap.Revision))

	if opts.output == outputJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(snap)
	}
	return renderTable(cmd.OutOrStdout(), snap)
}

func renderTable(w io.Writer, snap calculator.Snapshot) error {
	fmt.Fprintln(w, snap.Input.TokenName)

	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value")
	for _, row := range calculator.ResultRows(snap.Output) {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	fmt.Fprintln(w, snap.Output.BreakEvenNote())
	return nil
}
