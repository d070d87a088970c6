package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/token-calc/internal/calculator"
	"github.com/rovshanmuradov/token-calc/internal/portfolio"
)

// ExportFormat represents the export file format
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

// fixedDigits matches the precision shown on screen.
const fixedDigits = 12

// ParseFormat validates a format name.
func ParseFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// ExportOptions configures the export behavior
type ExportOptions struct {
	Format       ExportFormat
	TokenFilter  string // only calculators for this token name
	OnlyTargeted bool   // only calculators with a price target
	OutputDir    string
}

// SnapshotExporter writes calculator snapshots to disk.
type SnapshotExporter struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewSnapshotExporter creates a new exporter
func NewSnapshotExporter(logger *zap.Logger) *SnapshotExporter {
	return &SnapshotExporter{
		logger: logger.Named("export"),
		now:    time.Now,
	}
}

// Export writes the snapshots selected by options and returns the file path.
func (se *SnapshotExporter) Export(snaps []calculator.Snapshot, options ExportOptions) (string, error) {
	filtered := se.filterSnapshots(snaps, options)
	if len(filtered) == 0 {
		return "", fmt.Errorf("no calculators match the export criteria")
	}

	if err := os.MkdirAll(options.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	var write func([]calculator.Snapshot, io.Writer) error
	switch options.Format {
	case FormatCSV:
		write = se.exportToCSV
	case FormatJSON:
		write = se.exportToJSON
	default:
		return "", fmt.Errorf("unsupported format: %s", options.Format)
	}

	file, outputPath, err := createUnique(options.OutputDir, se.generateFilename(options), string(options.Format))
	if err != nil {
		return "", err
	}
	if err := write(filtered, file); err != nil {
		file.Close()
		os.Remove(outputPath)
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", outputPath, err)
	}

	se.logger.Info("Portfolio exported",
		zap.String("file", outputPath),
		zap.Int("count", len(filtered)),
		zap.String("format", string(options.Format)))

	return outputPath, nil
}

func (se *SnapshotExporter) filterSnapshots(snaps []calculator.Snapshot, options ExportOptions) []calculator.Snapshot {
	var filtered []calculator.Snapshot
	for _, snap := range snaps {
		if options.TokenFilter != "" && !strings.EqualFold(snap.Input.TokenName, options.TokenFilter) {
			continue
		}
		if options.OnlyTargeted && !snap.Input.Target.Set {
			continue
		}
		filtered = append(filtered, snap)
	}
	return filtered
}

func (se *SnapshotExporter) generateFilename(options ExportOptions) string {
	timestamp := se.now().Format("20060102_150405")

	prefix := "portfolio"
	if options.TokenFilter != "" {
		prefix += "_" + sanitize(options.TokenFilter)
	}
	if options.OnlyTargeted {
		prefix += "_targeted"
	}

	return prefix + "_" + timestamp
}

// maxNameAttempts bounds the numbered suffixes tried for one file name.
const maxNameAttempts = 100

// createUnique creates dir/base.ext, or dir/base_N.ext when that name is
// taken, without ever truncating an existing file.
func createUnique(dir, base, ext string) (*os.File, string, error) {
	for i := 0; i < maxNameAttempts; i++ {
		name := base
		if i > 0 {
			name = fmt.Sprintf("%s_%d", base, i)
		}
		path := filepath.Join(dir, name+"."+ext)

		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return file, path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("failed to create export file: %w", err)
		}
	}
	return nil, "", fmt.Errorf("no free file name for %s in %s", base, dir)
}

// CSVHeaders returns the column names of a CSV export.
func CSVHeaders() []string {
	return []string{
		"session_id", "revision", "updated_at", "token_name",
		"current_price", "circulating_supply", "total_supply", "market_cap",
		"investment_amount", "upcoming_unlock", "trading_fees",
		"expected_price_target", "expected_price_target_tokens",
		"tokens_purchased", "future_value", "break_even_price", "new_price_after_unlock",
	}
}

// CSVRecord renders one snapshot as a CSV row. Numbers are fixed-point with
// the on-screen precision; unset values are empty.
func CSVRecord(snap calculator.Snapshot) []string {
	in, out := snap.Input, snap.Output
	return []string{
		snap.SessionID,
		fmt.Sprint(snap.Revision),
		snap.At.UTC().Format(time.RFC3339),
		in.TokenName,
		fixed(in.CurrentPrice),
		fixed(in.CirculatingSupply),
		fixed(in.TotalSupply),
		fixed(in.MarketCap),
		fixed(in.InvestmentAmount),
		fixed(in.UpcomingUnlock),
		fixed(in.TradingFees),
		fixedOptional(snap.TargetCurrency),
		fixedOptional(snap.TargetTokens),
		fixed(out.TokensPurchased),
		fixedOptional(out.FutureValue),
		fixed(out.BreakEvenPrice),
		fixed(out.NewPriceAfterUnlock),
	}
}

func (se *SnapshotExporter) exportToCSV(snaps []calculator.Snapshot, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(CSVHeaders()); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, snap := range snaps {
		if err := writer.Write(CSVRecord(snap)); err != nil {
			return fmt.Errorf("failed to write calculator %s: %w", snap.SessionID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// Document is the layout of a JSON export.
type Document struct {
	ExportTime  time.Time             `json:"export_time"`
	Count       int                   `json:"count"`
	Summary     portfolio.Summary     `json:"summary"`
	Calculators []calculator.Snapshot `json:"calculators"`
}

func (se *SnapshotExporter) exportToJSON(snaps []calculator.Snapshot, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	doc := Document{
		ExportTime:  se.now(),
		Count:       len(snaps),
		Summary:     portfolio.Summarize(snaps),
		Calculators: snaps,
	}
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func fixed(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(fixedDigits)
}

func fixedOptional(v calculator.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return fixed(v.Float64)
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '_'
		}
	}, s)
}
